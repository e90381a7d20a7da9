package domain

// Segment restringe a consulta por um segmento salvo ou dinâmico
type Segment struct {
	SegmentID      string `json:"segmentId,omitempty"`
	DynamicSegment string `json:"dynamicSegment,omitempty"`
}

type OrderBy struct {
	Field string `json:"field"`
	Order string `json:"order"`
}

// QueryOptions são as opções aceitas na montagem de uma consulta ao GA
type QueryOptions struct {
	Dimensions []string
	Segment    *Segment
	OrderBys   []OrderBy
}

// Tipos de referência usados como rótulo na tabela de tipos de referrer
const (
	ReferrerTypeDirectEntry   = 1
	ReferrerTypeSearchEngine  = 2
	ReferrerTypeWebsite       = 3
	ReferrerTypeCampaign      = 6
	ReferrerTypeSocialNetwork = 7
)
