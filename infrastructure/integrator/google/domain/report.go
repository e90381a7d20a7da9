package gadomain

// GetReportsRequest é o corpo do reports:batchGet da Reporting API v4
type GetReportsRequest struct {
	ReportRequests []ReportRequest `json:"reportRequests"`
}

type ReportRequest struct {
	ViewID     string      `json:"viewId"`
	DateRanges []DateRange `json:"dateRanges"`
	Dimensions []Dimension `json:"dimensions,omitempty"`
	Metrics    []Metric    `json:"metrics"`
	Segments   []Segment   `json:"segments,omitempty"`
	OrderBys   []OrderBy   `json:"orderBys,omitempty"`
	PageSize   int         `json:"pageSize,omitempty"`
	PageToken  string      `json:"pageToken,omitempty"`
}

type DateRange struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type Dimension struct {
	Name string `json:"name"`
}

type Metric struct {
	Expression string `json:"expression"`
}

type Segment struct {
	SegmentID      string `json:"segmentId,omitempty"`
	DynamicSegment string `json:"dynamicSegment,omitempty"`
}

type OrderBy struct {
	FieldName string `json:"fieldName"`
	OrderType string `json:"orderType"`
	SortOrder string `json:"sortOrder"`
}

type GetReportsResponse struct {
	Reports []Report `json:"reports"`
}

type Report struct {
	ColumnHeader  ColumnHeader `json:"columnHeader"`
	Data          ReportData   `json:"data"`
	NextPageToken string       `json:"nextPageToken,omitempty"`
}

type ColumnHeader struct {
	Dimensions   []string     `json:"dimensions"`
	MetricHeader MetricHeader `json:"metricHeader"`
}

type MetricHeader struct {
	MetricHeaderEntries []MetricHeaderEntry `json:"metricHeaderEntries"`
}

type MetricHeaderEntry struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type ReportData struct {
	Rows     []ReportRow `json:"rows"`
	RowCount int         `json:"rowCount"`
}

type ReportRow struct {
	Dimensions []string          `json:"dimensions"`
	Metrics    []DateRangeValues `json:"metrics"`
}

type DateRangeValues struct {
	Values []string `json:"values"`
}

// MetricIndex retorna a posição da métrica no cabeçalho ou -1
func (h ColumnHeader) MetricIndex(name string) int {
	for i, entry := range h.MetricHeader.MetricHeaderEntries {
		if entry.Name == name {
			return i
		}
	}
	return -1
}
