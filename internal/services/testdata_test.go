package services

import (
	"testing"
	"time"

	"pawsuite_backend/internal/models"
)

// The shared fixture covers three periods: December 2023 (prior-period
// sales), January 2024 (the worked reconciliation scenario) and February
// 2024 (retail sale, repaired total, dangling appointment reference).
func fixtureRaw() models.RawRecords {
	return models.RawRecords{
		Staff: []models.RawStaffMember{
			{ID: "g1", FullName: "Riley Chen", Role: "groomer", Active: true, IsGroomer: true},
			{ID: "s2", FullName: "Dana Brooks", Role: "front-desk", Active: true, IsGroomer: false},
		},
		Clients: []models.RawClient{
			{
				ID: "c1", FullName: "Maya Flores", Phone: "555-0101",
				Pets:      []models.RawPet{{Name: "Biscuit", WeightLbs: 22}},
				CreatedAt: "2024-01-05T10:00:00Z",
			},
			{
				ID: "c2", FullName: "Jordan Lee",
				Pets:      []models.RawPet{{Name: "Atlas", WeightLbs: 75}},
				CreatedAt: "2023-11-01T09:00:00Z",
			},
		},
		Appointments: []models.RawAppointment{
			{
				ID: "a1", ClientID: "c1", PetName: "Biscuit", PetWeightLbs: 22, GroomerID: "g1",
				Date: "2024-01-10", StartTime: "09:00", EndTime: "10:00",
				Services: []models.RawServiceItem{
					{ServiceID: "sv1", Name: "Full Groom", Price: 50.00, Role: "main"},
				},
				TotalPrice: 50.00, Status: "completed", CreatedAt: "2024-01-02T12:00:00Z",
			},
			{
				ID: "a2", ClientID: "c2", PetName: "Atlas", PetWeightLbs: 75, GroomerID: "g1",
				Date: "2023-12-20", StartTime: "10:00", EndTime: "11:30",
				Services: []models.RawServiceItem{
					{ServiceID: "sv1", Name: "Full Groom", Price: 60.00, Role: "main"},
				},
				TotalPrice: 60.00, Status: "completed",
			},
			{
				ID: "a3", ClientID: "c1", PetName: "Biscuit", PetWeightLbs: 22, GroomerID: "g1",
				Date: "2024-01-20", StartTime: "14:00", EndTime: "15:00",
				Services: []models.RawServiceItem{
					{ServiceID: "sv1", Name: "Full Groom", Price: 50.00, Role: "main"},
				},
				TotalPrice: 50.00, Status: "cancelled",
			},
		},
		Transactions: []models.RawTransaction{
			{
				ID: "t0", AppointmentID: "a2", ClientID: "c2", Date: "2023-12-20",
				Items: []models.RawLineItem{
					{ID: "sv1", Name: "Full Groom", Kind: "service", Quantity: 1, UnitPrice: 60.00, Total: 60.00},
				},
				Subtotal: 60.00, Tax: 4.80, Total: 64.80, Tip: 5.00,
				PaymentMethod: "card", Status: "completed", Type: "appointment",
			},
			{
				ID: "t1", AppointmentID: "a1", ClientID: "c1", Date: "2024-01-10",
				Items: []models.RawLineItem{
					{ID: "sv1", Name: "Full Groom", Kind: "service", Quantity: 1, UnitPrice: 50.00, Total: 50.00},
				},
				Subtotal: 50.00, Discount: 5.00, AdditionalFees: 2.00, Tax: 10.00, Total: 57.00, Tip: 10.00,
				PaymentMethod: "card", Status: "completed", Type: "appointment",
			},
			{
				ID: "t2", ClientID: "c2", Date: "2024-02-15",
				Items: []models.RawLineItem{
					{ID: "r1", Name: "Oatmeal Shampoo", Kind: "retail", Quantity: 2, UnitPrice: 15.00, Total: 30.00},
				},
				Subtotal: 30.00, Tax: 2.40, Total: 32.40,
				PaymentMethod: "cash", Status: "completed", Type: "retail",
			},
			{
				// voided: must never enter any scope
				ID: "t3", ClientID: "c1", Date: "2024-01-12",
				Subtotal: 99.00, Total: 99.00,
				PaymentMethod: "card", Status: "voided", Type: "standalone",
			},
			{
				// stored total disagrees with the identity; normalizer repairs it
				ID: "t4", ClientID: "c1", Date: "2024-02-20",
				Subtotal: 10.00, Total: 12.00,
				PaymentMethod: "cash", Status: "completed", Type: "standalone",
			},
			{
				// dangling appointment reference
				ID: "t5", AppointmentID: "ghost", ClientID: "c2", Date: "2024-02-21",
				Subtotal: 8.00, Total: 8.00,
				Status: "completed", Type: "appointment",
			},
		},
		Inventory: []models.RawInventoryItem{
			{ID: "r1", Name: "Oatmeal Shampoo", Category: "retail", SKU: "SH-001", QuantityOnHand: 3, UnitPrice: 15.00, UnitCost: 9.00, ReorderThreshold: 5},
			{ID: "sup1", Name: "Clipper Oil", Category: "supply", QuantityOnHand: 50, UnitPrice: 0, UnitCost: 2.00, ReorderThreshold: 10},
		},
		Messages: []models.RawMessage{
			{ID: "m1", ClientID: "c1", SentAt: "2024-01-11T15:00:00Z", Body: "Biscuit is ready for pickup!"},
		},
	}
}

func fixtureDataset(t *testing.T) *models.NormalizedDataset {
	t.Helper()
	return NewNormalizer(time.UTC).Normalize(fixtureRaw())
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

func period(t *testing.T, start, end string) models.Period {
	t.Helper()
	return models.Period{Start: mustDate(t, start), End: mustDate(t, end)}
}

// januaryFilters is the worked scenario window: only transaction t1 is in
// scope.
func januaryFilters(t *testing.T) models.ResolvedFilters {
	t.Helper()
	return models.ResolvedFilters{
		Preset:  models.PresetCustom,
		Current: period(t, "2024-01-01", "2024-01-31"),
		GroupBy: models.GroupByDay,
	}
}
