package services

import (
	"fmt"
	"time"

	"pawsuite_backend/internal/models"
)

// FilterResolver turns user-facing filter selections into fully concrete
// date windows. It owns the only clock read in the pipeline: once a
// FilterState is resolved, every downstream computation is a pure function
// of its inputs.
type FilterResolver struct {
	loc *time.Location
	now func() time.Time
}

// NewFilterResolver creates a resolver anchored in the business time zone.
// A nil now defaults to time.Now; tests inject a fixed clock.
func NewFilterResolver(loc *time.Location, now func() time.Time) *FilterResolver {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &FilterResolver{loc: loc, now: now}
}

// ApplyReportDefaults merges the report's declared default overrides under
// any values the user has not explicitly set. User selections always win;
// defaults only fill gaps, so applying twice yields the same result.
func (r *FilterResolver) ApplyReportDefaults(reportID string, fs models.FilterState) (models.FilterState, error) {
	def, err := ReportByID(reportID)
	if err != nil {
		return models.FilterState{}, err
	}
	d := def.Defaults
	if fs.Preset == "" {
		fs.Preset = d.Preset
		if fs.StartDate == "" {
			fs.StartDate = d.StartDate
		}
		if fs.EndDate == "" {
			fs.EndDate = d.EndDate
		}
	}
	if fs.Compare == nil {
		fs.Compare = d.Compare
	}
	if fs.GroupBy == "" {
		fs.GroupBy = d.GroupBy
	}
	if fs.VisibleColumns == nil {
		fs.VisibleColumns = d.VisibleColumns
	}
	return fs, nil
}

// Resolve turns a FilterState into explicit inclusive date windows. When
// comparison is enabled the prior window has the same day length and ends
// the day before the current window starts.
func (r *FilterResolver) Resolve(fs models.FilterState) (models.ResolvedFilters, error) {
	current, err := r.resolveWindow(fs)
	if err != nil {
		return models.ResolvedFilters{}, err
	}

	rf := models.ResolvedFilters{
		Preset:         fs.Preset,
		Current:        current,
		GroupBy:        fs.GroupBy,
		VisibleColumns: fs.VisibleColumns,
	}
	if fs.Compare != nil && *fs.Compare {
		days := current.Days()
		priorEnd := current.Start.AddDate(0, 0, -1)
		rf.Prior = &models.Period{
			Start: priorEnd.AddDate(0, 0, -(days - 1)),
			End:   priorEnd,
		}
	}
	return rf, nil
}

func (r *FilterResolver) resolveWindow(fs models.FilterState) (models.Period, error) {
	today := r.today()
	switch fs.Preset {
	case models.PresetLast7:
		return models.Period{Start: today.AddDate(0, 0, -6), End: today}, nil
	case models.PresetLast30:
		return models.Period{Start: today.AddDate(0, 0, -29), End: today}, nil
	case models.PresetLast90:
		return models.Period{Start: today.AddDate(0, 0, -89), End: today}, nil
	case models.PresetMonthToDate:
		start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, r.loc)
		return models.Period{Start: start, End: today}, nil
	case models.PresetYearToDate:
		start := time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, r.loc)
		return models.Period{Start: start, End: today}, nil
	case models.PresetCustom:
		return r.resolveCustom(fs)
	default:
		return models.Period{}, fmt.Errorf("%w: unknown date preset %q", ErrValidation, fs.Preset)
	}
}

func (r *FilterResolver) resolveCustom(fs models.FilterState) (models.Period, error) {
	if fs.StartDate == "" || fs.EndDate == "" {
		return models.Period{}, fmt.Errorf("%w: custom preset requires start_date and end_date", ErrValidation)
	}
	start, err := time.ParseInLocation(dateLayout, fs.StartDate, r.loc)
	if err != nil {
		return models.Period{}, fmt.Errorf("%w: invalid start_date %q", ErrValidation, fs.StartDate)
	}
	end, err := time.ParseInLocation(dateLayout, fs.EndDate, r.loc)
	if err != nil {
		return models.Period{}, fmt.Errorf("%w: invalid end_date %q", ErrValidation, fs.EndDate)
	}
	if start.After(end) {
		return models.Period{}, fmt.Errorf("%w: start_date %s is after end_date %s", ErrValidation, fs.StartDate, fs.EndDate)
	}
	return models.Period{Start: start, End: end}, nil
}

// today is the current calendar date at midnight in the business location.
func (r *FilterResolver) today() time.Time {
	now := r.now().In(r.loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, r.loc)
}
