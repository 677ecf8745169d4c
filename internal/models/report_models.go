package models

// ValueFormat hints how a computed value should be rendered.
type ValueFormat string

const (
	FormatCurrency ValueFormat = "currency"
	FormatCount    ValueFormat = "count"
	FormatPercent  ValueFormat = "percent"
	FormatMinutes  ValueFormat = "minutes"
)

// Trend is the delta of a KPI against the prior comparison period.
type Trend struct {
	PriorValue float64 `json:"prior_value"`
	Delta      float64 `json:"delta"`
	Percent    float64 `json:"percent"` // 0 when the prior value is 0
}

// KPI is a single computed business metric, already in display units.
type KPI struct {
	ID     string        `json:"id"`
	Label  string        `json:"label"`
	Value  float64       `json:"value"`
	Format ValueFormat   `json:"format"`
	Trend  *Trend        `json:"trend,omitempty"`
	Drill  *DrillRequest `json:"drill,omitempty"`
}

// ChartPoint is one time bucket of a series. Buckets with no matching
// records report 0, not an absence.
type ChartPoint struct {
	Key   string        `json:"key"` // bucket start, YYYY-MM-DD
	Label string        `json:"label"`
	Value float64       `json:"value"`
	Drill *DrillRequest `json:"drill,omitempty"`
}

// ChartSeries is one named line of a chart.
type ChartSeries struct {
	Name   string       `json:"name"`
	Points []ChartPoint `json:"points"`
}

// Chart is a time-bucketed series covering the whole resolved window.
type Chart struct {
	ID          string        `json:"id"`
	Label       string        `json:"label"`
	Format      ValueFormat   `json:"format"`
	Granularity string        `json:"granularity"` // day, week, month
	Series      []ChartSeries `json:"series"`
}

// TableColumn describes one aggregate column of the grouped table.
type TableColumn struct {
	Key    string      `json:"key"`
	Label  string      `json:"label"`
	Format ValueFormat `json:"format"`
}

// TableRow is one group of the report table. Values is keyed by column key;
// Drill reproduces exactly the records summed into this row.
type TableRow struct {
	Key    string             `json:"key"`
	Label  string             `json:"label"`
	Values map[string]float64 `json:"values"`
	Drill  *DrillRequest      `json:"drill,omitempty"`
}

// Table is the grouped drill-down table of a report.
type Table struct {
	GroupBy GroupBy       `json:"group_by"`
	Columns []TableColumn `json:"columns"`
	Rows    []TableRow    `json:"rows"`
}

// Insight is a short narrative derived from threshold checks over KPIs.
type Insight struct {
	ID       string        `json:"id"`
	Severity string        `json:"severity"` // info, warning
	Text     string        `json:"text"`
	Drill    *DrillRequest `json:"drill,omitempty"`
}

// ReportData is the full computed output for one (report, dataset, filters)
// tuple.
type ReportData struct {
	ReportID       string          `json:"report_id"`
	Title          string          `json:"title"`
	DatasetVersion int64           `json:"dataset_version"`
	Filters        ResolvedFilters `json:"filters"`
	KPIs           []KPI           `json:"kpis"`
	Charts         []Chart         `json:"charts"`
	Table          Table           `json:"table"`
	Insights       []Insight       `json:"insights"`
}

// DrillFilters is the exact filter subset that produced a displayed
// aggregate. Dates are inclusive YYYY-MM-DD strings so a request round-trips
// through JSON unchanged.
type DrillFilters struct {
	Start    string  `json:"start" validate:"required,datetime=2006-01-02"`
	End      string  `json:"end" validate:"required,datetime=2006-01-02"`
	GroupBy  GroupBy `json:"group_by,omitempty"`
	GroupKey *string `json:"group_key,omitempty"`
}

// DrillRequest maps a displayed KPI, chart point or table row back to the
// raw records behind it.
type DrillRequest struct {
	Title   string       `json:"title"`
	Kinds   []RecordKind `json:"kinds" validate:"required,min=1,dive,oneof=appointments transactions clients staff inventory messages"`
	Filters DrillFilters `json:"filters"`
}

// DrillResult carries only the record kinds the request asked for.
type DrillResult struct {
	Appointments []Appointment   `json:"appointments,omitempty"`
	Transactions []Transaction   `json:"transactions,omitempty"`
	Clients      []Client        `json:"clients,omitempty"`
	Inventory    []InventoryItem `json:"inventory,omitempty"`
	Messages     []Message       `json:"messages,omitempty"`
}
