package domain

import "strconv"

// MetricIndex identifica uma coluna de métrica nas tabelas de arquivo
type MetricIndex int

const (
	MetricNbUniqVisitors               MetricIndex = 1
	MetricNbVisits                     MetricIndex = 2
	MetricNbActions                    MetricIndex = 3
	MetricMaxActions                   MetricIndex = 4
	MetricSumVisitLength               MetricIndex = 5
	MetricBounceCount                  MetricIndex = 6
	MetricNbVisitsConverted            MetricIndex = 7
	MetricNbConversions                MetricIndex = 8
	MetricRevenue                      MetricIndex = 9
	MetricPageNbHits                   MetricIndex = 12
	MetricPageSumTimeSpent             MetricIndex = 13
	MetricPageSumTimeGeneration        MetricIndex = 30
	MetricPageNbHitsWithTimeGeneration MetricIndex = 31
)

var metricNames = map[MetricIndex]string{
	MetricNbUniqVisitors:               "nb_uniq_visitors",
	MetricNbVisits:                     "nb_visits",
	MetricNbActions:                    "nb_actions",
	MetricMaxActions:                   "max_actions",
	MetricSumVisitLength:               "sum_visit_length",
	MetricBounceCount:                  "bounce_count",
	MetricNbVisitsConverted:            "nb_visits_converted",
	MetricNbConversions:                "nb_conversions",
	MetricRevenue:                      "revenue",
	MetricPageNbHits:                   "nb_hits",
	MetricPageSumTimeSpent:             "sum_time_spent",
	MetricPageSumTimeGeneration:        "sum_time_generation",
	MetricPageNbHitsWithTimeGeneration: "nb_hits_with_time_generation",
}

// Name retorna o nome legível da métrica, usado nos registros numéricos
func (m MetricIndex) Name() string {
	if name, ok := metricNames[m]; ok {
		return name
	}
	return strconv.Itoa(int(m))
}

// VisitMetrics são as métricas de visita importadas para relatórios por dimensão
func VisitMetrics() []MetricIndex {
	return []MetricIndex{
		MetricNbUniqVisitors,
		MetricNbVisits,
		MetricNbActions,
		MetricSumVisitLength,
		MetricBounceCount,
		MetricNbVisitsConverted,
	}
}

// ConversionAwareVisitMetrics inclui as métricas de conversão de metas
func ConversionAwareVisitMetrics() []MetricIndex {
	return append(VisitMetrics(), MetricNbConversions, MetricRevenue)
}

// ActionMetrics são as métricas usadas em relatórios de ações (páginas, eventos)
func ActionMetrics() []MetricIndex {
	return []MetricIndex{
		MetricPageNbHits,
		MetricPageSumTimeSpent,
		MetricPageSumTimeGeneration,
		MetricPageNbHitsWithTimeGeneration,
	}
}
