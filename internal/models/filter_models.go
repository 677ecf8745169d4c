package models

import (
	"fmt"
	"strings"
	"time"
)

// DatePreset selects a relative date window anchored on "today" in the
// business's local time zone. PresetCustom requires explicit start/end dates.
type DatePreset string

const (
	PresetCustom      DatePreset = "custom"
	PresetLast7       DatePreset = "last-7"
	PresetLast30      DatePreset = "last-30"
	PresetLast90      DatePreset = "last-90"
	PresetMonthToDate DatePreset = "month-to-date"
	PresetYearToDate  DatePreset = "year-to-date"
)

// GroupBy is the closed set of table grouping dimensions.
type GroupBy string

const (
	GroupByDay           GroupBy = "day"
	GroupByGroomer       GroupBy = "groomer"
	GroupByService       GroupBy = "service"
	GroupByPaymentMethod GroupBy = "payment-method"
	GroupByClient        GroupBy = "client"
	GroupByCategory      GroupBy = "category"
)

// FilterState is the user-facing filter selection for a report. Zero values
// mean "not set by the user" and are filled from the report's defaults.
type FilterState struct {
	Preset         DatePreset `json:"preset,omitempty" form:"preset"`
	StartDate      string     `json:"start_date,omitempty" form:"start_date"` // YYYY-MM-DD, custom only
	EndDate        string     `json:"end_date,omitempty" form:"end_date"`
	Compare        *bool      `json:"compare,omitempty" form:"compare"`
	GroupBy        GroupBy    `json:"group_by,omitempty" form:"group_by"`
	VisibleColumns []string   `json:"visible_columns,omitempty" form:"columns"`
}

// Period is an inclusive calendar-date window. Start and End are midnight
// times in the business location.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Days returns the window length in calendar days. Endpoints are re-anchored
// to UTC midnight first so windows spanning a DST transition still count
// whole dates, not 24-hour spans.
func (p Period) Days() int {
	start := time.Date(p.Start.Year(), p.Start.Month(), p.Start.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(p.End.Year(), p.End.Month(), p.End.Day(), 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours()/24) + 1
}

// Contains reports whether d falls inside the window.
func (p Period) Contains(d time.Time) bool {
	return !d.Before(p.Start) && !d.After(p.End)
}

// ResolvedFilters is a fully concrete filter specification: explicit current
// window, and the derived prior window of identical length when comparison is
// enabled.
type ResolvedFilters struct {
	Preset         DatePreset `json:"preset"`
	Current        Period     `json:"current"`
	Prior          *Period    `json:"prior,omitempty"`
	GroupBy        GroupBy    `json:"group_by"`
	VisibleColumns []string   `json:"visible_columns,omitempty"`
}

// CacheKey returns a canonical string for memoizing computed reports. Two
// ResolvedFilters values that select the same data produce the same key.
func (rf ResolvedFilters) CacheKey() string {
	prior := "-"
	if rf.Prior != nil {
		prior = rf.Prior.Start.Format("2006-01-02") + ".." + rf.Prior.End.Format("2006-01-02")
	}
	return fmt.Sprintf("%s|%s..%s|%s|%s|%s",
		rf.Preset,
		rf.Current.Start.Format("2006-01-02"), rf.Current.End.Format("2006-01-02"),
		prior,
		rf.GroupBy,
		strings.Join(rf.VisibleColumns, ","),
	)
}
