package services

import (
	"fmt"
	"math"
	"sort"
	"time"

	"pawsuite_backend/internal/models"
)

// AnalyticsEngine computes KPIs, chart series, grouped tables and narrative
// insights for a report over a normalized dataset. Every metric it surfaces
// comes from the shared metric registry, so any two reports exposing the
// same metric over the same resolved filters agree exactly.
type AnalyticsEngine struct {
	cache *reportCache
}

// NewAnalyticsEngine creates an engine with an empty memo cache.
func NewAnalyticsEngine() *AnalyticsEngine {
	return &AnalyticsEngine{cache: newReportCache()}
}

// ComputeReportData produces the full presentation payload for one report.
// Output is deterministic for a fixed (report, dataset version, filters)
// tuple and is served from the memo cache on repeat calls.
func (e *AnalyticsEngine) ComputeReportData(reportID string, ds *models.NormalizedDataset, rf models.ResolvedFilters) (*models.ReportData, error) {
	def, err := ReportByID(reportID)
	if err != nil {
		return nil, err
	}
	if rf.GroupBy == "" {
		rf.GroupBy = def.Defaults.GroupBy
	}
	if !validGroupBy(rf.GroupBy) {
		return nil, fmt.Errorf("%w: unknown group_by %q", ErrValidation, rf.GroupBy)
	}

	key := cacheKey(ds.Version, reportID, rf)
	if cached, ok := e.cache.get(key); ok {
		return cached, nil
	}

	current := scopeFor(ds, rf.Current)
	var prior *Scope
	if rf.Prior != nil {
		p := scopeFor(ds, *rf.Prior)
		prior = &p
	}

	kpis, err := e.buildKPIs(def, current, prior, rf)
	if err != nil {
		return nil, err
	}
	charts, err := e.buildCharts(def, ds, rf)
	if err != nil {
		return nil, err
	}
	table, err := e.buildTable(def, ds, rf, current)
	if err != nil {
		return nil, err
	}

	data := &models.ReportData{
		ReportID:       def.ID,
		Title:          def.Title,
		DatasetVersion: ds.Version,
		Filters:        rf,
		KPIs:           kpis,
		Charts:         charts,
		Table:          table,
		Insights:       e.buildInsights(kpis, rf),
	}
	e.cache.put(key, data)
	return data, nil
}

func (e *AnalyticsEngine) buildKPIs(def ReportDefinition, current Scope, prior *Scope, rf models.ResolvedFilters) ([]models.KPI, error) {
	kpis := make([]models.KPI, 0, len(def.KPIMetrics))
	for _, metricID := range def.KPIMetrics {
		metric, err := MetricByID(metricID)
		if err != nil {
			return nil, err
		}
		kpi := models.KPI{
			ID:     metric.ID,
			Label:  metric.Label,
			Value:  displayValue(metric.Format, metric.Fn(current)),
			Format: metric.Format,
			Drill: &models.DrillRequest{
				Title:   metric.Label,
				Kinds:   metric.Kinds,
				Filters: windowFilters(rf.Current),
			},
		}
		if prior != nil {
			priorValue := displayValue(metric.Format, metric.Fn(*prior))
			delta := kpi.Value - priorValue
			percent := 0.0
			if priorValue != 0 {
				percent = delta / math.Abs(priorValue) * 100
			}
			kpi.Trend = &models.Trend{PriorValue: priorValue, Delta: delta, Percent: percent}
		}
		kpis = append(kpis, kpi)
	}
	return kpis, nil
}

func (e *AnalyticsEngine) buildCharts(def ReportDefinition, ds *models.NormalizedDataset, rf models.ResolvedFilters) ([]models.Chart, error) {
	granularity := granularityFor(rf.Current)
	charts := make([]models.Chart, 0, len(def.Charts))
	for _, spec := range def.Charts {
		metric, err := MetricByID(spec.Metric)
		if err != nil {
			return nil, err
		}
		chart := models.Chart{
			ID:          spec.ID,
			Label:       spec.Label,
			Format:      metric.Format,
			Granularity: granularity,
			Series: []models.ChartSeries{
				{Name: "current", Points: e.seriesPoints(metric, ds, rf.Current, granularity)},
			},
		}
		if rf.Prior != nil {
			chart.Series = append(chart.Series, models.ChartSeries{
				Name:   "prior",
				Points: e.seriesPoints(metric, ds, *rf.Prior, granularity),
			})
		}
		charts = append(charts, chart)
	}
	return charts, nil
}

// seriesPoints evaluates the metric per bucket. Buckets are contiguous,
// cover the whole window, and report 0 when empty.
func (e *AnalyticsEngine) seriesPoints(metric MetricDef, ds *models.NormalizedDataset, window models.Period, granularity string) []models.ChartPoint {
	buckets := buildBuckets(window, granularity)
	points := make([]models.ChartPoint, 0, len(buckets))
	for _, bucket := range buckets {
		points = append(points, models.ChartPoint{
			Key:   bucket.Start.Format(dateLayout),
			Label: bucketLabel(bucket.Start, granularity),
			Value: displayValue(metric.Format, metric.Fn(scopeFor(ds, bucket))),
			Drill: &models.DrillRequest{
				Title:   metric.Label,
				Kinds:   metric.Kinds,
				Filters: windowFilters(bucket),
			},
		})
	}
	return points
}

func (e *AnalyticsEngine) buildTable(def ReportDefinition, ds *models.NormalizedDataset, rf models.ResolvedFilters, current Scope) (models.Table, error) {
	columnIDs := visibleColumns(def, rf.VisibleColumns)
	columns := make([]models.TableColumn, 0, len(columnIDs))
	for _, id := range columnIDs {
		metric, err := MetricByID(id)
		if err != nil {
			return models.Table{}, err
		}
		columns = append(columns, models.TableColumn{Key: metric.ID, Label: metric.Label, Format: metric.Format})
	}
	sortMetric, err := MetricByID(def.PrimarySort)
	if err != nil {
		return models.Table{}, err
	}

	type group struct {
		label string
		scope Scope
	}
	groups := make(map[string]*group)
	ensure := func(key, label string) *group {
		g, ok := groups[key]
		if !ok {
			g = &group{label: label, scope: Scope{Inventory: ds.Inventory, InventoryByID: ds.InventoryByID}}
			groups[key] = g
		}
		return g
	}
	for _, tx := range current.Transactions {
		key, label := transactionGroupKey(tx, rf.GroupBy, ds)
		g := ensure(key, label)
		g.scope.Transactions = append(g.scope.Transactions, tx)
	}
	for _, a := range current.Appointments {
		key, label, ok := appointmentGroupKey(a, rf.GroupBy, ds)
		if !ok {
			continue
		}
		g := ensure(key, label)
		g.scope.Appointments = append(g.scope.Appointments, a)
	}

	rows := make([]models.TableRow, 0, len(groups))
	for key, g := range groups {
		values := make(map[string]float64, len(columnIDs))
		for _, id := range columnIDs {
			metric, _ := MetricByID(id)
			values[id] = displayValue(metric.Format, metric.Fn(g.scope))
		}
		groupKey := key
		filters := windowFilters(rf.Current)
		filters.GroupBy = rf.GroupBy
		filters.GroupKey = &groupKey
		rows = append(rows, models.TableRow{
			Key:    key,
			Label:  g.label,
			Values: values,
			Drill: &models.DrillRequest{
				Title:   g.label,
				Kinds:   []models.RecordKind{models.KindTransactions, models.KindAppointments},
				Filters: filters,
			},
		})
	}

	sortValue := func(row models.TableRow) float64 {
		if v, ok := row.Values[sortMetric.ID]; ok {
			return v
		}
		return displayValue(sortMetric.Format, sortMetric.Fn(groups[row.Key].scope))
	}
	sort.SliceStable(rows, func(i, j int) bool {
		vi, vj := sortValue(rows[i]), sortValue(rows[j])
		if vi != vj {
			return vi > vj
		}
		return rows[i].Key < rows[j].Key
	})

	return models.Table{GroupBy: rf.GroupBy, Columns: columns, Rows: rows}, nil
}

// buildInsights derives short narrative strings from threshold checks over
// the already-computed KPIs. Insight ids are stable so output stays
// reproducible.
func (e *AnalyticsEngine) buildInsights(kpis []models.KPI, rf models.ResolvedFilters) []models.Insight {
	insights := []models.Insight{}
	byID := make(map[string]models.KPI, len(kpis))
	for _, k := range kpis {
		byID[k.ID] = k
	}

	if k, ok := byID["net-sales"]; ok && k.Trend != nil {
		drill := &models.DrillRequest{
			Title:   "Net sales transactions",
			Kinds:   []models.RecordKind{models.KindTransactions},
			Filters: windowFilters(rf.Current),
		}
		if k.Trend.Percent <= -10 {
			insights = append(insights, models.Insight{
				ID:       "net-sales-decline",
				Severity: "warning",
				Text:     fmt.Sprintf("Net sales are down %.1f%% versus the prior period.", -k.Trend.Percent),
				Drill:    drill,
			})
		} else if k.Trend.Percent >= 10 {
			insights = append(insights, models.Insight{
				ID:       "net-sales-growth",
				Severity: "info",
				Text:     fmt.Sprintf("Net sales are up %.1f%% versus the prior period.", k.Trend.Percent),
				Drill:    drill,
			})
		}
	}
	if k, ok := byID["cancellation-rate"]; ok && k.Value > 15 {
		insights = append(insights, models.Insight{
			ID:       "high-cancellation-rate",
			Severity: "warning",
			Text:     fmt.Sprintf("%.1f%% of appointments in this period were cancelled.", k.Value),
			Drill: &models.DrillRequest{
				Title:   "Appointments in period",
				Kinds:   []models.RecordKind{models.KindAppointments},
				Filters: windowFilters(rf.Current),
			},
		})
	}
	if k, ok := byID["no-show-rate"]; ok && k.Value > 10 {
		insights = append(insights, models.Insight{
			ID:       "high-no-show-rate",
			Severity: "warning",
			Text:     fmt.Sprintf("%.1f%% of appointments in this period were no-shows.", k.Value),
			Drill: &models.DrillRequest{
				Title:   "Appointments in period",
				Kinds:   []models.RecordKind{models.KindAppointments},
				Filters: windowFilters(rf.Current),
			},
		})
	}
	if k, ok := byID["low-stock-items"]; ok && k.Value > 0 {
		insights = append(insights, models.Insight{
			ID:       "low-stock",
			Severity: "warning",
			Text:     fmt.Sprintf("%d inventory items are at or below their reorder threshold.", int(k.Value)),
			Drill: &models.DrillRequest{
				Title:   "Low stock items",
				Kinds:   []models.RecordKind{models.KindInventory},
				Filters: windowFilters(rf.Current),
			},
		})
	}
	return insights
}

// displayValue converts a metric's canonical value into display units.
// Currency metrics are computed in cents and shown in major units; nothing
// else is converted.
func displayValue(format models.ValueFormat, raw float64) float64 {
	if format == models.FormatCurrency {
		return raw / 100
	}
	return raw
}

func windowFilters(p models.Period) models.DrillFilters {
	return models.DrillFilters{
		Start: p.Start.Format(dateLayout),
		End:   p.End.Format(dateLayout),
	}
}

// visibleColumns intersects the report's table metrics with the user's
// column selection, preserving report order. An empty selection shows every
// column.
func visibleColumns(def ReportDefinition, selected []string) []string {
	if len(selected) == 0 {
		return def.TableMetrics
	}
	want := make(map[string]bool, len(selected))
	for _, s := range selected {
		want[s] = true
	}
	columns := make([]string, 0, len(def.TableMetrics))
	for _, id := range def.TableMetrics {
		if want[id] {
			columns = append(columns, id)
		}
	}
	if len(columns) == 0 {
		return def.TableMetrics
	}
	return columns
}

// granularityFor picks the chart bucket size from the window length.
func granularityFor(p models.Period) string {
	days := p.Days()
	switch {
	case days <= 31:
		return "day"
	case days <= 182:
		return "week"
	default:
		return "month"
	}
}

// buildBuckets slices the window into contiguous periods of the given
// granularity. The first and last buckets are clipped to the window so the
// buckets exactly cover it with no gap and no overlap.
func buildBuckets(p models.Period, granularity string) []models.Period {
	var buckets []models.Period
	cursor := p.Start
	for !cursor.After(p.End) {
		var next time.Time
		switch granularity {
		case "week":
			// advance to the Monday of the following ISO week
			daysToMonday := (8 - int(cursor.Weekday())) % 7
			if daysToMonday == 0 {
				daysToMonday = 7
			}
			next = cursor.AddDate(0, 0, daysToMonday)
		case "month":
			next = time.Date(cursor.Year(), cursor.Month(), 1, 0, 0, 0, 0, cursor.Location()).AddDate(0, 1, 0)
		default:
			next = cursor.AddDate(0, 0, 1)
		}
		end := next.AddDate(0, 0, -1)
		if end.After(p.End) {
			end = p.End
		}
		buckets = append(buckets, models.Period{Start: cursor, End: end})
		cursor = next
	}
	return buckets
}

func bucketLabel(start time.Time, granularity string) string {
	switch granularity {
	case "week":
		return weekKey(start)
	case "month":
		return start.Format("Jan 2006")
	default:
		return start.Format("Jan 2")
	}
}
