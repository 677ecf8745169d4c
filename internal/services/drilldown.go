package services

import (
	"fmt"
	"time"

	"pawsuite_backend/internal/models"
)

// DrillResolver maps a displayed KPI, chart point or table row back to the
// raw records behind it. It reapplies exactly the filter subset captured in
// the request, through the same scope and group-key functions the analytics
// engine used, so the returned records always sum back to the value that
// triggered the drill. Read-only: it never touches the dataset or cache.
type DrillResolver struct {
	loc *time.Location
}

// NewDrillResolver creates a resolver anchored in the business time zone.
func NewDrillResolver(loc *time.Location) *DrillResolver {
	if loc == nil {
		loc = time.UTC
	}
	return &DrillResolver{loc: loc}
}

// ResolveDrill returns the records backing the request, limited to the
// requested record kinds.
func (r *DrillResolver) ResolveDrill(req models.DrillRequest, ds *models.NormalizedDataset) (*models.DrillResult, error) {
	if len(req.Kinds) == 0 {
		return nil, fmt.Errorf("%w: drill request names no record kinds", ErrValidation)
	}
	start, err := time.ParseInLocation(dateLayout, req.Filters.Start, r.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid drill start date %q", ErrValidation, req.Filters.Start)
	}
	end, err := time.ParseInLocation(dateLayout, req.Filters.End, r.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid drill end date %q", ErrValidation, req.Filters.End)
	}
	if start.After(end) {
		return nil, fmt.Errorf("%w: drill start %s is after end %s", ErrValidation, req.Filters.Start, req.Filters.End)
	}
	if req.Filters.GroupBy != "" && !validGroupBy(req.Filters.GroupBy) {
		return nil, fmt.Errorf("%w: unknown group_by %q", ErrValidation, req.Filters.GroupBy)
	}

	scope := scopeFor(ds, models.Period{Start: start, End: end})
	if req.Filters.GroupBy != "" && req.Filters.GroupKey != nil {
		scope = restrictToGroup(scope, req.Filters.GroupBy, *req.Filters.GroupKey, ds)
	}

	result := &models.DrillResult{}
	for _, kind := range req.Kinds {
		switch kind {
		case models.KindTransactions:
			result.Transactions = scope.Transactions
		case models.KindAppointments:
			result.Appointments = scope.Appointments
		case models.KindClients:
			result.Clients = scope.NewClients
		case models.KindMessages:
			result.Messages = scope.Messages
		case models.KindInventory:
			result.Inventory = scope.Inventory
		}
	}
	return result, nil
}

// restrictToGroup keeps only the records that belong to one table row.
func restrictToGroup(s Scope, groupBy models.GroupBy, groupKey string, ds *models.NormalizedDataset) Scope {
	out := Scope{Inventory: s.Inventory, InventoryByID: s.InventoryByID}
	for _, tx := range s.Transactions {
		if key, _ := transactionGroupKey(tx, groupBy, ds); key == groupKey {
			out.Transactions = append(out.Transactions, tx)
		}
	}
	for _, a := range s.Appointments {
		if key, _, ok := appointmentGroupKey(a, groupBy, ds); ok && key == groupKey {
			out.Appointments = append(out.Appointments, a)
		}
	}
	out.NewClients = s.NewClients
	out.Messages = s.Messages
	return out
}
