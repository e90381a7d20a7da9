package google

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gadomain "github.com/vfg2006/ga-importer/infrastructure/integrator/google/domain"
	"github.com/vfg2006/ga-importer/internal/domain"
)

func TestQueryFactory_Make(t *testing.T) {
	factory := NewQueryFactory()
	day := domain.NewDate(2024, 3, 10)

	t.Run("Sem opções", func(t *testing.T) {
		req, warnings := factory.Make("123", day, []string{"ga:sessions"}, domain.QueryOptions{})

		require.Len(t, req.ReportRequests, 1)
		r := req.ReportRequests[0]
		assert.Equal(t, "123", r.ViewID)
		assert.Equal(t, []gadomain.DateRange{{StartDate: "2024-03-10", EndDate: "2024-03-10"}}, r.DateRanges)
		assert.Empty(t, r.Dimensions)
		assert.Empty(t, r.Segments)
		assert.Empty(t, r.OrderBys)
		assert.Equal(t, []gadomain.Metric{{Expression: "ga:sessions"}}, r.Metrics)
		assert.Empty(t, warnings)
	})

	t.Run("Segmento adiciona dimensão ga:segment", func(t *testing.T) {
		req, _ := factory.Make("123", day, []string{"ga:sessions"}, domain.QueryOptions{
			Dimensions: []string{"ga:source"},
			Segment:    &domain.Segment{DynamicSegment: "sessions::condition::ga:medium==organic"},
		})

		r := req.ReportRequests[0]
		assert.Equal(t, []gadomain.Dimension{{Name: "ga:source"}, {Name: "ga:segment"}}, r.Dimensions)
		assert.Equal(t, []gadomain.Segment{{DynamicSegment: "sessions::condition::ga:medium==organic"}}, r.Segments)
	})

	t.Run("Segmento salvo tem prioridade", func(t *testing.T) {
		req, _ := factory.Make("123", day, []string{"ga:sessions"}, domain.QueryOptions{
			Segment: &domain.Segment{SegmentID: "gaid::-5", DynamicSegment: "ignorado"},
		})
		assert.Equal(t, []gadomain.Segment{{SegmentID: "gaid::-5"}}, req.ReportRequests[0].Segments)
	})

	t.Run("Order by traduz a direção", func(t *testing.T) {
		req, warnings := factory.Make("123", day, []string{"ga:sessions", "ga:users"}, domain.QueryOptions{
			Dimensions: []string{"ga:source"},
			OrderBys: []domain.OrderBy{
				{Field: "ga:sessions", Order: "desc"},
				{Field: "ga:source", Order: "ASC"},
				{Field: "ga:users", Order: "histogram"},
			},
		})

		assert.Equal(t, []gadomain.OrderBy{
			{FieldName: "ga:sessions", OrderType: "VALUE", SortOrder: "DESCENDING"},
			{FieldName: "ga:source", OrderType: "VALUE", SortOrder: "ASCENDING"},
			{FieldName: "ga:users", OrderType: "VALUE", SortOrder: "HISTOGRAM"},
		}, req.ReportRequests[0].OrderBys)
		assert.Empty(t, warnings)
	})

	t.Run("Order by fora da consulta gera aviso", func(t *testing.T) {
		req, warnings := factory.Make("123", day, []string{"ga:sessions"}, domain.QueryOptions{
			Segment:  &domain.Segment{SegmentID: "gaid::-5"},
			OrderBys: []domain.OrderBy{{Field: "ga:segment", Order: "DESC"}},
		})

		require.Len(t, warnings, 1)
		assert.Equal(t, "ga:segment", warnings[0].Field)
		assert.Contains(t, warnings[0].String(), "trying to order by ga:segment")
		assert.Len(t, req.ReportRequests[0].OrderBys, 1)
	})
}

func TestOrderByMetric(t *testing.T) {
	tests := []struct {
		name     string
		metrics  []string
		opts     domain.QueryOptions
		expected string
		wantErr  bool
	}{
		{
			name:     "Order by pedido entre as métricas",
			metrics:  []string{"ga:sessions", "ga:users"},
			opts:     domain.QueryOptions{OrderBys: []domain.OrderBy{{Field: "ga:source"}, {Field: "ga:users"}}},
			expected: "ga:users",
		},
		{
			name:     "Prefere pageviews a sessions",
			metrics:  []string{"ga:sessions", "ga:pageviews"},
			expected: "ga:pageviews",
		},
		{
			name:     "Usa unique pageviews primeiro",
			metrics:  []string{"ga:pageviews", "ga:uniquePageviews"},
			expected: "ga:uniquePageviews",
		},
		{
			name:     "Conversões como último recurso",
			metrics:  []string{"ga:goalValueAll", "ga:goalCompletionsAll"},
			expected: "ga:goalCompletionsAll",
		},
		{
			name:    "Sem métrica conhecida",
			metrics: []string{"ga:users", "ga:bounces"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metric, err := OrderByMetric(tt.metrics, tt.opts)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrNoOrderByMetric)
				assert.Contains(t, err.Error(), "got: ga:users, ga:bounces")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, metric)
		})
	}
}
