package services

import (
	"pawsuite_backend/internal/models"
)

// scopeFor slices the dataset down to one date window. Both the analytics
// engine and the drill-down resolver build scopes through this function, so
// a drill always sees exactly the records its KPI or row was summed from.
//
// Voided transactions never enter a scope; refunded ones stay in scope and
// contribute their refund amount.
func scopeFor(ds *models.NormalizedDataset, p models.Period) Scope {
	s := Scope{
		Inventory:     ds.Inventory,
		InventoryByID: ds.InventoryByID,
	}
	for _, tx := range ds.Transactions {
		if tx.Status != models.TransactionVoided && p.Contains(tx.Date) {
			s.Transactions = append(s.Transactions, tx)
		}
	}
	for _, a := range ds.Appointments {
		if p.Contains(a.Date) {
			s.Appointments = append(s.Appointments, a)
		}
	}
	windowEnd := p.End.AddDate(0, 0, 1) // timestamps before the day after End
	for _, c := range ds.Clients {
		if !c.CreatedAt.IsZero() && !c.CreatedAt.Before(p.Start) && c.CreatedAt.Before(windowEnd) {
			s.NewClients = append(s.NewClients, c)
		}
	}
	for _, m := range ds.Messages {
		if !m.SentAt.Before(p.Start) && m.SentAt.Before(windowEnd) {
			s.Messages = append(s.Messages, m)
		}
	}
	return s
}

// transactionGroupKey assigns a transaction to exactly one table row for the
// given grouping. Every transaction maps to some key (dangling references
// fall back to a stable bucket), which is what keeps the sum over all rows
// equal to the report-level KPI.
func transactionGroupKey(tx models.Transaction, g models.GroupBy, ds *models.NormalizedDataset) (string, string) {
	switch g {
	case models.GroupByDay:
		return tx.DayKey, tx.DayKey
	case models.GroupByGroomer:
		if tx.GroomerID == "" {
			return "unassigned", "Unassigned"
		}
		if staff, ok := ds.StaffByID[tx.GroomerID]; ok {
			return tx.GroomerID, staff.FullName
		}
		return tx.GroomerID, tx.GroomerID
	case models.GroupByService:
		if tx.PrimaryService != "" {
			return tx.PrimaryService, tx.PrimaryService
		}
		return "retail", "Retail & Other"
	case models.GroupByPaymentMethod:
		if tx.PaymentMethod == "" {
			return "unknown", "Unknown"
		}
		return tx.PaymentMethod, tx.PaymentMethod
	case models.GroupByClient:
		if tx.ClientID == "" {
			return "walk-in", "Walk-in"
		}
		if client, ok := ds.ClientsByID[tx.ClientID]; ok {
			return tx.ClientID, client.FullName
		}
		return tx.ClientID, tx.ClientID
	case models.GroupByCategory:
		hasService := false
		hasRetail := false
		for _, item := range tx.Items {
			switch item.Kind {
			case models.LineService:
				hasService = true
			case models.LineRetail:
				hasRetail = true
			}
		}
		if hasService {
			return "services", "Services"
		}
		if hasRetail {
			return "retail", "Retail"
		}
		return "other", "Other"
	default:
		return "all", "All"
	}
}

// appointmentGroupKey assigns an appointment to a table row where the
// grouping partitions appointments at all. Payment method and category are
// transaction-only dimensions, so rows under those groupings carry no
// appointment-based values.
func appointmentGroupKey(a models.Appointment, g models.GroupBy, ds *models.NormalizedDataset) (string, string, bool) {
	switch g {
	case models.GroupByDay:
		return a.DayKey, a.DayKey, true
	case models.GroupByGroomer:
		if a.GroomerID == "" {
			return "unassigned", "Unassigned", true
		}
		if staff, ok := ds.StaffByID[a.GroomerID]; ok {
			return a.GroomerID, staff.FullName, true
		}
		return a.GroomerID, a.GroomerID, true
	case models.GroupByService:
		if a.PrimaryService == "" {
			return "retail", "Retail & Other", true
		}
		return a.PrimaryService, a.PrimaryService, true
	case models.GroupByClient:
		if a.ClientID == "" {
			return "walk-in", "Walk-in", true
		}
		if client, ok := ds.ClientsByID[a.ClientID]; ok {
			return a.ClientID, client.FullName, true
		}
		return a.ClientID, a.ClientID, true
	default:
		return "", "", false
	}
}

// validGroupBy reports whether g names a known grouping dimension.
func validGroupBy(g models.GroupBy) bool {
	switch g {
	case models.GroupByDay, models.GroupByGroomer, models.GroupByService,
		models.GroupByPaymentMethod, models.GroupByClient, models.GroupByCategory:
		return true
	}
	return false
}
