package google

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/sirupsen/logrus"
	gadomain "github.com/vfg2006/ga-importer/infrastructure/integrator/google/domain"
	"github.com/vfg2006/ga-importer/infrastructure/integrator/google/gaclient"
	"github.com/vfg2006/ga-importer/internal/datatable"
	"github.com/vfg2006/ga-importer/internal/domain"
)

// metricMapping converte valores do GA em uma métrica do arquivo
type metricMapping struct {
	gaMetrics []string
	compute   func(values map[string]float64) float64
}

func direct(gaMetric string) metricMapping {
	return metricMapping{
		gaMetrics: []string{gaMetric},
		compute:   func(values map[string]float64) float64 { return values[gaMetric] },
	}
}

var metricMappings = map[domain.MetricIndex]metricMapping{
	domain.MetricNbUniqVisitors: direct("ga:users"),
	domain.MetricNbVisits:       direct("ga:sessions"),
	domain.MetricNbActions:      direct("ga:pageviews"),
	domain.MetricSumVisitLength: direct("ga:sessionDuration"),
	domain.MetricBounceCount:    direct("ga:bounces"),
	domain.MetricNbVisitsConverted: {
		gaMetrics: []string{"ga:sessions", "ga:goalConversionRateAll"},
		compute: func(values map[string]float64) float64 {
			return math.Round(values["ga:sessions"] * values["ga:goalConversionRateAll"] / 100)
		},
	},
	domain.MetricNbConversions:    direct("ga:goalCompletionsAll"),
	domain.MetricRevenue:          direct("ga:goalValueAll"),
	domain.MetricPageNbHits:       direct("ga:pageviews"),
	domain.MetricPageSumTimeSpent: direct("ga:timeOnPage"),
	domain.MetricPageSumTimeGeneration: {
		// o GA informa milissegundos
		gaMetrics: []string{"ga:pageLoadTime"},
		compute:   func(values map[string]float64) float64 { return values["ga:pageLoadTime"] / 1000 },
	},
	domain.MetricPageNbHitsWithTimeGeneration: direct("ga:pageLoadSample"),
}

// QueryService consulta uma vista do GA e devolve tabelas com as métricas do arquivo
type QueryService struct {
	client   gaclient.Client
	factory  *QueryFactory
	viewID   string
	pageSize int
	logger   logrus.FieldLogger
}

func NewQueryService(client gaclient.Client, factory *QueryFactory, viewID string, pageSize int, logger logrus.FieldLogger) *QueryService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &QueryService{
		client:   client,
		factory:  factory,
		viewID:   viewID,
		pageSize: pageSize,
		logger:   logger,
	}
}

// Query percorre todas as páginas do relatório. Cada linha da tabela
// resultante traz os valores das dimensões em Metadata.
func (s *QueryService) Query(ctx context.Context, day domain.Date, metrics []domain.MetricIndex, opts domain.QueryOptions) (*datatable.Table, error) {
	gaMetrics, err := gaMetricsFor(metrics)
	if err != nil {
		return nil, err
	}

	orderByMetric, err := OrderByMetric(gaMetrics, opts)
	if err != nil {
		return nil, err
	}
	if len(opts.OrderBys) == 0 {
		opts.OrderBys = []domain.OrderBy{{Field: orderByMetric, Order: "DESC"}}
	}

	request, warnings := s.factory.Make(s.viewID, day, gaMetrics, opts)
	for _, w := range warnings {
		s.logger.WithField("view_id", s.viewID).Error("google: Unexpected error: " + w.String())
	}

	result := datatable.New()
	pageToken := ""
	for {
		request.ReportRequests[0].PageSize = s.pageSize
		request.ReportRequests[0].PageToken = pageToken

		resp, err := s.client.BatchGet(ctx, request)
		if err != nil {
			return nil, fmt.Errorf("erro ao consultar o GA (vista %s, dia %s): %w", s.viewID, day, err)
		}
		if len(resp.Reports) == 0 {
			break
		}

		report := resp.Reports[0]
		if err := appendRows(result, report, metrics); err != nil {
			return nil, err
		}

		s.logger.WithFields(logrus.Fields{
			"view_id":    s.viewID,
			"day":        day.String(),
			"dimensions": opts.Dimensions,
			"rows":       len(report.Data.Rows),
		}).Debug("google: página do relatório recebida")

		if report.NextPageToken == "" {
			break
		}
		pageToken = report.NextPageToken
	}

	return result, nil
}

func gaMetricsFor(metrics []domain.MetricIndex) ([]string, error) {
	seen := map[string]bool{}
	var gaMetrics []string

	for _, metric := range metrics {
		mapping, ok := metricMappings[metric]
		if !ok {
			continue
		}
		for _, name := range mapping.gaMetrics {
			if !seen[name] {
				seen[name] = true
				gaMetrics = append(gaMetrics, name)
			}
		}
	}

	if len(gaMetrics) == 0 {
		return nil, fmt.Errorf("nenhuma métrica do GA corresponde às métricas pedidas: %v", metrics)
	}
	return gaMetrics, nil
}

func appendRows(table *datatable.Table, report gadomain.Report, metrics []domain.MetricIndex) error {
	header := report.ColumnHeader
	entries := header.MetricHeader.MetricHeaderEntries

	for _, gaRow := range report.Data.Rows {
		row := datatable.NewRow("")
		row.Metadata = make(map[string]string, len(header.Dimensions))
		for i, name := range header.Dimensions {
			if i < len(gaRow.Dimensions) {
				row.Metadata[name] = gaRow.Dimensions[i]
			}
		}

		values := map[string]float64{}
		if len(gaRow.Metrics) > 0 {
			for i, raw := range gaRow.Metrics[0].Values {
				if i >= len(entries) {
					break
				}
				value, err := strconv.ParseFloat(raw, 64)
				if err != nil {
					return fmt.Errorf("valor inválido para %s: %q: %w", entries[i].Name, raw, err)
				}
				values[entries[i].Name] = value
			}
		}

		for _, metric := range metrics {
			if mapping, ok := metricMappings[metric]; ok {
				row.Columns[metric] = mapping.compute(values)
			}
		}

		table.AddRow(row)
	}

	return nil
}
