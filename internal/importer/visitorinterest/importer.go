package visitorinterest

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ga-importer/internal/datatable"
	"github.com/vfg2006/ga-importer/internal/domain"
	"github.com/vfg2006/ga-importer/internal/importer"
	"github.com/vfg2006/ga-importer/internal/importer/gap"
)

const PluginName = "VisitorInterest"

const (
	VisitsCountRecordName   = "VisitorInterest_visitsByVisitCount"
	DaysSinceLastRecordName = "VisitorInterest_daysSinceLastVisit"
	TimeSpentRecordName     = "VisitorInterest_timeGap"
)

type dimensionRecord struct {
	dimension  string
	gap        gap.Gap
	recordName string
}

var dimensionRecords = []dimensionRecord{
	{dimension: "ga:sessionCount", gap: gap.VisitNumberGap, recordName: VisitsCountRecordName},
	{dimension: "ga:daysSinceLastSession", gap: gap.DaysSinceLastVisitGap, recordName: DaysSinceLastRecordName},
	{dimension: "ga:sessionDurationBucket", gap: gap.SecondsGap, recordName: TimeSpentRecordName},
}

type Importer struct {
	querier importer.Querier
	siteID  int
}

func New(querier importer.Querier, siteID int) *Importer {
	return &Importer{querier: querier, siteID: siteID}
}

// NewFactory valida as definições de faixas antes de registrar o importador
func NewFactory() (importer.Factory, error) {
	if err := validateGaps(dimensionRecords); err != nil {
		return nil, err
	}
	return func(querier importer.Querier, siteID int) importer.RecordImporter {
		return New(querier, siteID)
	}, nil
}

func validateGaps(records []dimensionRecord) error {
	for _, dr := range records {
		if err := dr.gap.Validate(); err != nil {
			return fmt.Errorf("visitorinterest: %s: %w", dr.recordName, err)
		}
	}
	return nil
}

func (i *Importer) PluginName() string {
	return PluginName
}

func (i *Importer) ImportRecords(ctx context.Context, day domain.Date) ([]domain.ArchiveRecord, error) {
	var records []domain.ArchiveRecord

	for _, dr := range dimensionRecords {
		record, err := i.queryDimension(ctx, day, dr)
		if err != nil {
			return nil, err
		}

		// tabelas de faixas não são truncadas
		blobs, err := importer.BlobRecords(dr.recordName, record, 0, 0, domain.MetricNbVisits)
		if err != nil {
			return nil, err
		}
		records = append(records, blobs...)
	}

	return records, nil
}

func (i *Importer) queryDimension(ctx context.Context, day domain.Date, dr dimensionRecord) (*datatable.Table, error) {
	table, err := i.querier.Query(ctx, day, domain.ConversionAwareVisitMetrics(), domain.QueryOptions{
		Dimensions: []string{dr.dimension},
	})
	if err != nil {
		return nil, fmt.Errorf("visitorinterest: erro ao consultar %s: %w", dr.dimension, err)
	}
	defer table.Release()

	record := dr.gap.EmptyTable()
	for _, row := range table.Rows() {
		raw := row.Dimension(dr.dimension)

		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"site_id":   i.siteID,
				"dimension": dr.dimension,
				"value":     raw,
			}).Warn("visitorinterest: valor de dimensão não numérico ignorado")
			continue
		}

		importer.AddRowToTable(record, row, dr.gap.Label(value))
	}

	return record, nil
}
