package google

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gadomain "github.com/vfg2006/ga-importer/infrastructure/integrator/google/domain"
	"github.com/vfg2006/ga-importer/infrastructure/integrator/google/gaclient"
	"github.com/vfg2006/ga-importer/infrastructure/integrator/google/mocks"
	"github.com/vfg2006/ga-importer/internal/domain"
	"go.uber.org/mock/gomock"
)

func reportPage(nextPageToken string, rows ...gadomain.ReportRow) *gadomain.GetReportsResponse {
	return &gadomain.GetReportsResponse{Reports: []gadomain.Report{{
		ColumnHeader: gadomain.ColumnHeader{
			Dimensions: []string{"ga:source"},
			MetricHeader: gadomain.MetricHeader{MetricHeaderEntries: []gadomain.MetricHeaderEntry{
				{Name: "ga:sessions"},
				{Name: "ga:goalConversionRateAll"},
			}},
		},
		Data:          gadomain.ReportData{Rows: rows},
		NextPageToken: nextPageToken,
	}}}
}

func reportRow(source string, values ...string) gadomain.ReportRow {
	return gadomain.ReportRow{
		Dimensions: []string{source},
		Metrics:    []gadomain.DateRangeValues{{Values: values}},
	}
}

func TestQueryService_Query(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)

	var tokens []string
	client.EXPECT().BatchGet(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req *gadomain.GetReportsRequest) (*gadomain.GetReportsResponse, error) {
			r := req.ReportRequests[0]
			tokens = append(tokens, r.PageToken)

			assert.Equal(t, "999", r.ViewID)
			assert.Equal(t, 2, r.PageSize)
			assert.Equal(t, []gadomain.Metric{{Expression: "ga:sessions"}, {Expression: "ga:goalConversionRateAll"}}, r.Metrics)
			assert.Equal(t, []gadomain.OrderBy{{FieldName: "ga:sessions", OrderType: "VALUE", SortOrder: "DESCENDING"}}, r.OrderBys)

			if r.PageToken == "" {
				return reportPage("2", reportRow("google", "10", "20.0"), reportRow("bing", "4", "0")), nil
			}
			return reportPage("", reportRow("(direct)", "5", "40")), nil
		}).Times(2)

	service := NewQueryService(client, NewQueryFactory(), "999", 2, nil)
	table, err := service.Query(context.Background(), domain.NewDate(2024, 3, 10),
		[]domain.MetricIndex{domain.MetricNbVisits, domain.MetricNbVisitsConverted},
		domain.QueryOptions{Dimensions: []string{"ga:source"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"", "2"}, tokens)
	require.Equal(t, 3, table.RowCount())

	rows := table.Rows()
	assert.Equal(t, "google", rows[0].Dimension("ga:source"))
	assert.Equal(t, float64(10), rows[0].Get(domain.MetricNbVisits))
	assert.Equal(t, float64(2), rows[0].Get(domain.MetricNbVisitsConverted))
	assert.Equal(t, "(direct)", rows[2].Dimension("ga:source"))
	assert.Equal(t, float64(2), rows[2].Get(domain.MetricNbVisitsConverted))
}

func TestQueryService_Query_Erros(t *testing.T) {
	t.Run("Limite da API é propagado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockClient(ctrl)
		client.EXPECT().BatchGet(gomock.Any(), gomock.Any()).Return(nil, errors.Wrap(gaclient.ErrRateLimited, "quota"))

		service := NewQueryService(client, NewQueryFactory(), "999", 100, nil)
		_, err := service.Query(context.Background(), domain.NewDate(2024, 3, 10),
			domain.ConversionAwareVisitMetrics(), domain.QueryOptions{})
		assert.True(t, errors.Is(err, gaclient.ErrRateLimited))
	})

	t.Run("Sem métrica para ordenar", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockClient(ctrl)

		service := NewQueryService(client, NewQueryFactory(), "999", 100, nil)
		_, err := service.Query(context.Background(), domain.NewDate(2024, 3, 10),
			[]domain.MetricIndex{domain.MetricNbUniqVisitors}, domain.QueryOptions{})
		assert.ErrorIs(t, err, ErrNoOrderByMetric)
	})

	t.Run("Valor de métrica inválido", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockClient(ctrl)
		client.EXPECT().BatchGet(gomock.Any(), gomock.Any()).Return(reportPage("", reportRow("google", "abc", "1")), nil)

		service := NewQueryService(client, NewQueryFactory(), "999", 100, nil)
		_, err := service.Query(context.Background(), domain.NewDate(2024, 3, 10),
			[]domain.MetricIndex{domain.MetricNbVisits}, domain.QueryOptions{})
		assert.Error(t, err)
	})
}
