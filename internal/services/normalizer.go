package services

import (
	"fmt"
	"sync/atomic"
	"time"

	"pawsuite_backend/internal/models"
	"pawsuite_backend/pkg/utils"
)

const dateLayout = "2006-01-02"

// Normalizer converts raw heterogeneous records into the canonical,
// cents-denominated dataset every report computes from. It never mutates its
// input and never aborts wholesale: malformed records are repaired or dropped
// with a warning.
type Normalizer struct {
	loc     *time.Location
	version atomic.Int64
}

// NewNormalizer creates a Normalizer anchored in the business time zone.
func NewNormalizer(loc *time.Location) *Normalizer {
	if loc == nil {
		loc = time.UTC
	}
	return &Normalizer{loc: loc}
}

// Normalize produces a new NormalizedDataset version from the supplied raw
// collections.
func (n *Normalizer) Normalize(raw models.RawRecords) *models.NormalizedDataset {
	ds := &models.NormalizedDataset{
		Version:          n.version.Add(1),
		AppointmentsByID: make(map[string]*models.Appointment),
		ClientsByID:      make(map[string]*models.Client),
		StaffByID:        make(map[string]*models.StaffMember),
		InventoryByID:    make(map[string]*models.InventoryItem),
	}

	for _, rs := range raw.Staff {
		if rs.ID == "" {
			ds.Warnings = append(ds.Warnings, warn(models.KindStaff, "", "missing id, record dropped"))
			continue
		}
		ds.Staff = append(ds.Staff, models.StaffMember{
			ID:        rs.ID,
			FullName:  rs.FullName,
			Role:      rs.Role,
			Phone:     optional(rs.Phone),
			Email:     optional(rs.Email),
			Active:    rs.Active,
			IsGroomer: rs.IsGroomer,
		})
	}
	for i := range ds.Staff {
		ds.StaffByID[ds.Staff[i].ID] = &ds.Staff[i]
	}

	for _, rc := range raw.Clients {
		if rc.ID == "" {
			ds.Warnings = append(ds.Warnings, warn(models.KindClients, "", "missing id, record dropped"))
			continue
		}
		pets := make([]models.Pet, 0, len(rc.Pets))
		for _, rp := range rc.Pets {
			pets = append(pets, models.Pet{
				Name:           rp.Name,
				WeightLbs:      rp.WeightLbs,
				WeightCategory: weightCategory(rp.WeightLbs),
			})
		}
		ds.Clients = append(ds.Clients, models.Client{
			ID:        rc.ID,
			FullName:  rc.FullName,
			Phone:     optional(rc.Phone),
			Email:     optional(rc.Email),
			Pets:      pets,
			CreatedAt: n.parseTimestamp(rc.CreatedAt),
		})
	}
	for i := range ds.Clients {
		ds.ClientsByID[ds.Clients[i].ID] = &ds.Clients[i]
	}

	for _, ra := range raw.Appointments {
		appt, w := n.normalizeAppointment(ra, ds)
		ds.Warnings = append(ds.Warnings, w...)
		if appt != nil {
			ds.Appointments = append(ds.Appointments, *appt)
		}
	}
	for i := range ds.Appointments {
		ds.AppointmentsByID[ds.Appointments[i].ID] = &ds.Appointments[i]
	}

	for _, rt := range raw.Transactions {
		tx, w := n.normalizeTransaction(rt, ds)
		ds.Warnings = append(ds.Warnings, w...)
		if tx != nil {
			ds.Transactions = append(ds.Transactions, *tx)
		}
	}

	for _, ri := range raw.Inventory {
		if ri.ID == "" {
			ds.Warnings = append(ds.Warnings, warn(models.KindInventory, "", "missing id, record dropped"))
			continue
		}
		category := models.InventoryCategory(ri.Category)
		if category != models.CategoryRetail && category != models.CategorySupply {
			ds.Warnings = append(ds.Warnings, warn(models.KindInventory, ri.ID,
				fmt.Sprintf("unknown category %q, treated as supply", ri.Category)))
			category = models.CategorySupply
		}
		ds.Inventory = append(ds.Inventory, models.InventoryItem{
			ID:               ri.ID,
			Name:             ri.Name,
			Category:         category,
			SKU:              ri.SKU,
			QuantityOnHand:   ri.QuantityOnHand,
			UnitPriceCents:   utils.ToCents(ri.UnitPrice),
			UnitCostCents:    utils.ToCents(ri.UnitCost),
			ReorderThreshold: ri.ReorderThreshold,
		})
	}
	for i := range ds.Inventory {
		ds.InventoryByID[ds.Inventory[i].ID] = &ds.Inventory[i]
	}

	for _, rm := range raw.Messages {
		if rm.ID == "" {
			ds.Warnings = append(ds.Warnings, warn(models.KindMessages, "", "missing id, record dropped"))
			continue
		}
		sentAt, err := time.Parse(time.RFC3339, rm.SentAt)
		if err != nil {
			ds.Warnings = append(ds.Warnings, warn(models.KindMessages, rm.ID, "unparseable sent_at, record dropped"))
			continue
		}
		ds.Messages = append(ds.Messages, models.Message{
			ID:       rm.ID,
			ClientID: rm.ClientID,
			SentAt:   sentAt.In(n.loc),
		})
	}

	if len(ds.Warnings) > 0 {
		utils.LogWarn("Normalization produced warnings", map[string]interface{}{
			"dataset_version": ds.Version,
			"count":           len(ds.Warnings),
		})
	}
	return ds
}

func (n *Normalizer) normalizeAppointment(ra models.RawAppointment, ds *models.NormalizedDataset) (*models.Appointment, []models.Warning) {
	var warnings []models.Warning
	if ra.ID == "" {
		return nil, append(warnings, warn(models.KindAppointments, "", "missing id, record dropped"))
	}
	date, err := time.ParseInLocation(dateLayout, ra.Date, n.loc)
	if err != nil {
		return nil, append(warnings, warn(models.KindAppointments, ra.ID, "unparseable date, record dropped"))
	}

	status := models.AppointmentStatus(ra.Status)
	switch status {
	case models.AppointmentScheduled, models.AppointmentCompleted, models.AppointmentCancelled, models.AppointmentNoShow:
	default:
		warnings = append(warnings, warn(models.KindAppointments, ra.ID,
			fmt.Sprintf("unknown status %q, treated as scheduled", ra.Status)))
		status = models.AppointmentScheduled
	}

	services := make([]models.ServiceLine, 0, len(ra.Services))
	primary := ""
	for _, rs := range ra.Services {
		line := models.ServiceLine{
			ServiceID:  rs.ServiceID,
			Name:       rs.Name,
			PriceCents: utils.ToCents(rs.Price),
			Role:       models.ServiceRole(rs.Role),
		}
		if line.Role != models.RoleMain && line.Role != models.RoleAddOn {
			line.Role = models.RoleAddOn
		}
		if primary == "" && line.Role == models.RoleMain {
			primary = line.Name
		}
		services = append(services, line)
	}
	if primary == "" && len(services) > 0 {
		primary = services[0].Name
	}

	start := minuteOfDay(ra.StartTime)
	end := minuteOfDay(ra.EndTime)
	duration := end - start
	if duration < 0 {
		warnings = append(warnings, warn(models.KindAppointments, ra.ID, "end time before start time, duration set to 0"))
		duration = 0
	}

	eligible := false
	if staff, ok := ds.StaffByID[ra.GroomerID]; ok {
		eligible = staff.IsGroomer
	}

	return &models.Appointment{
		ID:                ra.ID,
		ClientID:          ra.ClientID,
		PetName:           ra.PetName,
		PetWeightLbs:      ra.PetWeightLbs,
		PetWeightCategory: weightCategory(ra.PetWeightLbs),
		GroomerID:         ra.GroomerID,
		GroomerEligible:   eligible,
		Date:              date,
		StartMinute:       start,
		EndMinute:         end,
		DurationMinutes:   duration,
		Services:          services,
		TotalCents:        utils.ToCents(ra.TotalPrice),
		Status:            status,
		CreatedAt:         n.parseTimestamp(ra.CreatedAt),
		PrimaryService:    primary,
		DayKey:            date.Format(dateLayout),
		WeekKey:           weekKey(date),
		MonthKey:          date.Format("2006-01"),
	}, warnings
}

func (n *Normalizer) normalizeTransaction(rt models.RawTransaction, ds *models.NormalizedDataset) (*models.Transaction, []models.Warning) {
	var warnings []models.Warning
	if rt.ID == "" {
		return nil, append(warnings, warn(models.KindTransactions, "", "missing id, record dropped"))
	}
	date, err := time.ParseInLocation(dateLayout, rt.Date, n.loc)
	if err != nil {
		return nil, append(warnings, warn(models.KindTransactions, rt.ID, "unparseable date, record dropped"))
	}

	status := models.TransactionStatus(rt.Status)
	switch status {
	case models.TransactionCompleted, models.TransactionRefunded, models.TransactionVoided:
	default:
		warnings = append(warnings, warn(models.KindTransactions, rt.ID,
			fmt.Sprintf("unknown status %q, treated as completed", rt.Status)))
		status = models.TransactionCompleted
	}

	items := make([]models.LineItem, 0, len(rt.Items))
	retailOnly := len(rt.Items) > 0
	for _, ri := range rt.Items {
		kind := models.LineItemKind(ri.Kind)
		if kind != models.LineService && kind != models.LineRetail && kind != models.LineFee {
			warnings = append(warnings, warn(models.KindTransactions, rt.ID,
				fmt.Sprintf("unknown line kind %q on item %q, treated as fee", ri.Kind, ri.ID)))
			kind = models.LineFee
		}
		if kind != models.LineRetail {
			retailOnly = false
		}
		items = append(items, models.LineItem{
			ID:             ri.ID,
			Name:           ri.Name,
			Kind:           kind,
			Quantity:       ri.Quantity,
			UnitPriceCents: utils.ToCents(ri.UnitPrice),
			TotalCents:     utils.ToCents(ri.Total),
		})
	}

	tx := models.Transaction{
		ID:            rt.ID,
		AppointmentID: rt.AppointmentID,
		ClientID:      rt.ClientID,
		Date:          date,
		Items:         items,
		SubtotalCents: utils.ToCents(rt.Subtotal),
		DiscountCents: utils.ToCents(rt.Discount),
		FeeCents:      utils.ToCents(rt.AdditionalFees),
		TaxCents:      utils.ToCents(rt.Tax),
		TotalCents:    utils.ToCents(rt.Total),
		TipCents:      utils.ToCents(rt.Tip),
		RefundCents:   utils.ToCents(rt.Refund),
		PaymentMethod: rt.PaymentMethod,
		Status:        status,
		DayKey:        date.Format(dateLayout),
		WeekKey:       weekKey(date),
		MonthKey:      date.Format("2006-01"),
	}

	// The stored total is never trusted: recompute the monetary identity and
	// keep the recomputed value when they disagree, however small the gap.
	recomputed := tx.SubtotalCents - tx.DiscountCents + tx.FeeCents + tx.TaxCents
	if recomputed != tx.TotalCents {
		warnings = append(warnings, warn(models.KindTransactions, rt.ID,
			fmt.Sprintf("stored total %d disagrees with recomputed %d, recomputed total kept", tx.TotalCents, recomputed)))
		tx.TotalCents = recomputed
	}

	// A dangling appointment reference is informational, not a foreign key:
	// the transaction stays but reports as standalone, whatever its line mix.
	if rt.AppointmentID != "" {
		if appt, ok := ds.AppointmentsByID[rt.AppointmentID]; ok {
			tx.Type = models.TypeAppointmentSale
			tx.GroomerID = appt.GroomerID
			tx.PrimaryService = appt.PrimaryService
		} else {
			tx.Type = models.TypeStandaloneSale
		}
	} else if retailOnly {
		tx.Type = models.TypeRetailSale
	} else {
		tx.Type = models.TypeStandaloneSale
	}

	return &tx, warnings
}

func (n *Normalizer) parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t.In(n.loc)
}

func warn(kind models.RecordKind, id, reason string) models.Warning {
	return models.Warning{RecordKind: kind, RecordID: id, Reason: reason}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// weightCategory buckets a pet weight in pounds.
func weightCategory(lbs float64) models.WeightCategory {
	switch {
	case lbs <= 15:
		return models.WeightXS
	case lbs <= 30:
		return models.WeightS
	case lbs <= 60:
		return models.WeightM
	case lbs <= 90:
		return models.WeightL
	default:
		return models.WeightXL
	}
}

// weekKey formats an ISO year-week bucket, e.g. 2024-W04.
func weekKey(d time.Time) string {
	year, week := d.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// minuteOfDay parses an HH:MM clock time into minutes from midnight,
// returning 0 for anything unparseable.
func minuteOfDay(s string) int {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0
	}
	return t.Hour()*60 + t.Minute()
}
