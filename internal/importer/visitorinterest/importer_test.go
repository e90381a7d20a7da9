package visitorinterest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ga-importer/internal/datatable"
	"github.com/vfg2006/ga-importer/internal/domain"
	"github.com/vfg2006/ga-importer/internal/importer/gap"
	"github.com/vfg2006/ga-importer/internal/importer/mocks"
	"go.uber.org/mock/gomock"
)

func dimensionTable(dimension string, values map[string]float64) *datatable.Table {
	table := datatable.New()
	for value, visits := range values {
		row := datatable.NewRow("")
		row.Metadata = map[string]string{dimension: value}
		row.Columns[domain.MetricNbVisits] = visits
		table.AddRow(row)
	}
	return table
}

func queryFor(dimension string) gomock.Matcher {
	return gomock.Cond(func(x any) bool {
		opts, ok := x.(domain.QueryOptions)
		return ok && len(opts.Dimensions) == 1 && opts.Dimensions[0] == dimension
	})
}

func TestImporter_ImportRecords(t *testing.T) {
	ctrl := gomock.NewController(t)
	querier := mocks.NewMockQuerier(ctrl)

	querier.EXPECT().Query(gomock.Any(), gomock.Any(), domain.ConversionAwareVisitMetrics(), queryFor("ga:sessionCount")).
		Return(dimensionTable("ga:sessionCount", map[string]float64{"1": 10, "12": 3, "13": 2, "250": 1}), nil)
	querier.EXPECT().Query(gomock.Any(), gomock.Any(), gomock.Any(), queryFor("ga:daysSinceLastSession")).
		Return(dimensionTable("ga:daysSinceLastSession", map[string]float64{"0": 4, "abc": 9}), nil)
	querier.EXPECT().Query(gomock.Any(), gomock.Any(), gomock.Any(), queryFor("ga:sessionDurationBucket")).
		Return(dimensionTable("ga:sessionDurationBucket", map[string]float64{"45": 6, "5000": 2}), nil)

	records, err := New(querier, 1).ImportRecords(context.Background(), domain.NewDate(2024, 3, 10))
	require.NoError(t, err)
	require.Len(t, records, 3)

	tests := []struct {
		name       string
		record     domain.ArchiveRecord
		recordName string
		rowCount   int
		visits     map[string]float64
	}{
		{
			name:       "Número de visitas",
			record:     records[0],
			recordName: VisitsCountRecordName,
			rowCount:   13,
			visits:     map[string]float64{"1 - 1": 10, "9 - 14": 5, "101%2B": 1, "2 - 2": 0},
		},
		{
			name:       "Dias desde a última visita ignora valores inválidos",
			record:     records[1],
			recordName: DaysSinceLastRecordName,
			rowCount:   14,
			visits:     map[string]float64{"0 - 0": 4, "365%2B": 0},
		},
		{
			name:       "Duração da visita",
			record:     records[2],
			recordName: TimeSpentRecordName,
			rowCount:   10,
			visits:     map[string]float64{"31 - 60": 6, "1801%2B": 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.recordName, tt.record.Name)

			table, _, err := datatable.Unserialize(tt.record.Blob)
			require.NoError(t, err)
			assert.Equal(t, tt.rowCount, table.RowCount())

			for label, visits := range tt.visits {
				row := table.RowFromLabel(label)
				require.NotNil(t, row, label)
				assert.Equal(t, visits, row.Get(domain.MetricNbVisits), label)
			}
		})
	}
}

func TestNewFactory(t *testing.T) {
	factory, err := NewFactory()
	require.NoError(t, err)

	imp := factory(mocks.NewMockQuerier(gomock.NewController(t)), 1)
	assert.Equal(t, PluginName, imp.PluginName())
}

func TestValidateGaps(t *testing.T) {
	tests := []struct {
		name    string
		records []dimensionRecord
		wantErr bool
	}{
		{name: "Definições atuais", records: dimensionRecords},
		{
			name:    "Faixas vazias",
			records: []dimensionRecord{{dimension: "ga:sessionCount", gap: gap.Gap{}, recordName: VisitsCountRecordName}},
			wantErr: true,
		},
		{
			name: "Faixas fora de ordem",
			records: []dimensionRecord{{
				dimension:  "ga:sessionCount",
				gap:        gap.Gap{gap.Closed(5, 8), gap.Closed(1, 2)},
				recordName: VisitsCountRecordName,
			}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateGaps(tt.records)
			if tt.wantErr {
				assert.ErrorIs(t, err, gap.ErrInvalidGap)
				assert.Contains(t, err.Error(), VisitsCountRecordName)
				return
			}
			assert.NoError(t, err)
		})
	}
}
