package services

import (
	"fmt"
	"sort"

	"pawsuite_backend/internal/models"
)

// ChartSpec declares one chart of a report: which shared metric it buckets
// over time.
type ChartSpec struct {
	ID     string
	Label  string
	Metric string
}

// ReportDefinition maps a report id to its KPI, chart and table column
// definitions plus default filter overrides. Definitions only name metric
// ids; the formulas live in the metric registry so independently defined
// reports cannot drift apart.
type ReportDefinition struct {
	ID           string
	Title        string
	KPIMetrics   []string
	Charts       []ChartSpec
	TableMetrics []string
	PrimarySort  string // metric id rows are ordered by, descending
	Defaults     models.FilterState
}

// ReportByID resolves a report id against the closed registry. Unknown ids
// are a configuration error, not an empty report.
func ReportByID(id string) (ReportDefinition, error) {
	def, ok := reportRegistry[id]
	if !ok {
		return ReportDefinition{}, fmt.Errorf("%w: %q", ErrUnknownReport, id)
	}
	return def, nil
}

// ReportIDs lists the registered report ids in stable order.
func ReportIDs() []string {
	ids := make([]string, 0, len(reportRegistry))
	for id := range reportRegistry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

var reportRegistry = map[string]ReportDefinition{
	"sales-summary": {
		ID:    "sales-summary",
		Title: "Sales Summary",
		KPIMetrics: []string{
			"gross-sales", "net-sales", "discounts", "refunds",
			"tax-total", "tips", "total-collected", "transaction-count", "avg-ticket",
		},
		Charts: []ChartSpec{
			{ID: "net-sales-over-time", Label: "Net Sales", Metric: "net-sales"},
			{ID: "collected-over-time", Label: "Total Collected", Metric: "total-collected"},
		},
		TableMetrics: []string{"transaction-count", "gross-sales", "discounts", "net-sales"},
		PrimarySort:  "net-sales",
		Defaults: models.FilterState{
			Preset:  models.PresetLast30,
			GroupBy: models.GroupByService,
		},
	},
	"true-profit": {
		ID:    "true-profit",
		Title: "True Profit",
		KPIMetrics: []string{
			"net-sales", "product-cost", "true-profit",
			"service-minutes", "revenue-per-minute", "tax-total", "total-collected",
		},
		Charts: []ChartSpec{
			{ID: "true-profit-over-time", Label: "True Profit", Metric: "true-profit"},
		},
		TableMetrics: []string{"net-sales", "product-cost", "true-profit"},
		PrimarySort:  "true-profit",
		Defaults: models.FilterState{
			Preset:  models.PresetLast30,
			GroupBy: models.GroupByGroomer,
		},
	},
	"groomer-performance": {
		ID:    "groomer-performance",
		Title: "Groomer Performance",
		KPIMetrics: []string{
			"appointment-count", "completed-appointments", "cancellation-rate",
			"no-show-rate", "service-minutes", "revenue-per-minute", "net-sales",
		},
		Charts: []ChartSpec{
			{ID: "appointments-over-time", Label: "Appointments", Metric: "appointment-count"},
		},
		TableMetrics: []string{"appointment-count", "completed-appointments", "service-minutes", "net-sales"},
		PrimarySort:  "net-sales",
		Defaults: models.FilterState{
			Preset:  models.PresetLast30,
			GroupBy: models.GroupByGroomer,
		},
	},
	"client-insights": {
		ID:    "client-insights",
		Title: "Client Insights",
		KPIMetrics: []string{
			"new-clients", "transaction-count", "avg-ticket", "messages-sent", "net-sales",
		},
		Charts: []ChartSpec{
			{ID: "new-clients-over-time", Label: "New Clients", Metric: "new-clients"},
		},
		TableMetrics: []string{"transaction-count", "net-sales"},
		PrimarySort:  "net-sales",
		Defaults: models.FilterState{
			Preset:  models.PresetLast90,
			GroupBy: models.GroupByClient,
		},
	},
	"inventory-health": {
		ID:    "inventory-health",
		Title: "Inventory Health",
		KPIMetrics: []string{
			"retail-units", "inventory-value", "low-stock-items", "product-cost", "net-sales",
		},
		Charts: []ChartSpec{
			{ID: "retail-units-over-time", Label: "Retail Units Sold", Metric: "retail-units"},
		},
		TableMetrics: []string{"retail-units", "net-sales"},
		PrimarySort:  "net-sales",
		Defaults: models.FilterState{
			Preset:  models.PresetLast30,
			GroupBy: models.GroupByCategory,
		},
	},
}
