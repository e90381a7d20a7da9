package google

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	gadomain "github.com/vfg2006/ga-importer/infrastructure/integrator/google/domain"
	"github.com/vfg2006/ga-importer/internal/domain"
)

const segmentDimension = "ga:segment"

var ErrNoOrderByMetric = errors.New("Not sure what metric to use to order results")

// ordem de preferência quando nenhum order by pedido está entre as métricas
var fallbackOrderByMetrics = []string{
	"ga:uniquePageviews",
	"ga:uniqueScreenviews",
	"ga:pageviews",
	"ga:screenviews",
	"ga:sessions",
	"ga:goalCompletionsAll",
}

// QueryWarning aponta um order by sobre um campo que não foi consultado.
// A requisição é montada mesmo assim.
type QueryWarning struct {
	Field      string
	Metrics    []string
	Dimensions []string
}

func (w QueryWarning) String() string {
	return fmt.Sprintf("trying to order by %s, but field is not in list of metrics/dimensions being queried: %s/%s",
		w.Field, strings.Join(w.Metrics, ", "), strings.Join(w.Dimensions, ", "))
}

type QueryFactory struct{}

func NewQueryFactory() *QueryFactory {
	return &QueryFactory{}
}

// Make monta a requisição de um único relatório para o dia informado
func (f *QueryFactory) Make(viewID string, date domain.Date, metrics []string, opts domain.QueryOptions) (*gadomain.GetReportsRequest, []QueryWarning) {
	dimensions := make([]gadomain.Dimension, 0, len(opts.Dimensions)+1)
	for _, name := range opts.Dimensions {
		dimensions = append(dimensions, gadomain.Dimension{Name: name})
	}

	var segments []gadomain.Segment
	if opts.Segment != nil {
		segments = append(segments, makeSegment(opts.Segment))
		dimensions = append(dimensions, gadomain.Dimension{Name: segmentDimension})
	}

	gaMetrics := make([]gadomain.Metric, 0, len(metrics))
	for _, name := range metrics {
		gaMetrics = append(gaMetrics, gadomain.Metric{Expression: name})
	}

	day := date.String()
	request := gadomain.ReportRequest{
		ViewID:     viewID,
		DateRanges: []gadomain.DateRange{{StartDate: day, EndDate: day}},
		Dimensions: dimensions,
		Metrics:    gaMetrics,
		Segments:   segments,
	}

	var warnings []QueryWarning
	if len(opts.OrderBys) > 0 {
		warnings = checkOrderBys(opts.OrderBys, metrics, opts.Dimensions)
		request.OrderBys = makeOrderBys(opts.OrderBys)
	}

	return &gadomain.GetReportsRequest{ReportRequests: []gadomain.ReportRequest{request}}, warnings
}

// OrderByMetric escolhe a métrica usada para ordenar os resultados
func OrderByMetric(metrics []string, opts domain.QueryOptions) (string, error) {
	for _, entry := range opts.OrderBys {
		if slices.Contains(metrics, entry.Field) {
			return entry.Field, nil
		}
	}

	for _, candidate := range fallbackOrderByMetrics {
		if slices.Contains(metrics, candidate) {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w, got: %s", ErrNoOrderByMetric, strings.Join(metrics, ", "))
}

func makeSegment(segment *domain.Segment) gadomain.Segment {
	if segment.SegmentID != "" {
		return gadomain.Segment{SegmentID: segment.SegmentID}
	}
	return gadomain.Segment{DynamicSegment: segment.DynamicSegment}
}

func makeOrderBys(orderBys []domain.OrderBy) []gadomain.OrderBy {
	result := make([]gadomain.OrderBy, 0, len(orderBys))
	for _, entry := range orderBys {
		order := strings.ToUpper(entry.Order)
		switch order {
		case "DESC":
			order = "DESCENDING"
		case "ASC":
			order = "ASCENDING"
		}

		result = append(result, gadomain.OrderBy{
			FieldName: entry.Field,
			OrderType: "VALUE",
			SortOrder: order,
		})
	}
	return result
}

func checkOrderBys(orderBys []domain.OrderBy, metrics, dimensions []string) []QueryWarning {
	var warnings []QueryWarning
	for _, entry := range orderBys {
		if slices.Contains(metrics, entry.Field) || slices.Contains(dimensions, entry.Field) {
			continue
		}
		warnings = append(warnings, QueryWarning{
			Field:      entry.Field,
			Metrics:    metrics,
			Dimensions: dimensions,
		})
	}
	return warnings
}
