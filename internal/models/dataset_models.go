package models

import "time"

// All monetary fields on normalized entities are integer cents. Conversion
// back to display units happens only when report output is assembled.

// AppointmentStatus is the closed set of appointment states.
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
	AppointmentNoShow    AppointmentStatus = "no-show"
)

// TransactionStatus is the closed set of transaction states.
type TransactionStatus string

const (
	TransactionCompleted TransactionStatus = "completed"
	TransactionRefunded  TransactionStatus = "refunded"
	TransactionVoided    TransactionStatus = "voided"
)

// TransactionType distinguishes how a sale originated.
type TransactionType string

const (
	TypeAppointmentSale TransactionType = "appointment"
	TypeRetailSale      TransactionType = "retail"
	TypeStandaloneSale  TransactionType = "standalone"
)

// WeightCategory buckets pet weight for reporting.
type WeightCategory string

const (
	WeightXS WeightCategory = "xs"
	WeightS  WeightCategory = "s"
	WeightM  WeightCategory = "m"
	WeightL  WeightCategory = "l"
	WeightXL WeightCategory = "xl"
)

// ServiceRole marks a service line as the main service or an add-on.
type ServiceRole string

const (
	RoleMain  ServiceRole = "main"
	RoleAddOn ServiceRole = "add-on"
)

// LineItemKind is the closed set of transaction line kinds.
type LineItemKind string

const (
	LineService LineItemKind = "service"
	LineRetail  LineItemKind = "retail"
	LineFee     LineItemKind = "fee"
)

// InventoryCategory splits retail-priced items from internal supplies.
type InventoryCategory string

const (
	CategoryRetail InventoryCategory = "retail"
	CategorySupply InventoryCategory = "supply"
)

// ServiceLine is a normalized service line on an appointment.
type ServiceLine struct {
	ServiceID  string      `json:"service_id"`
	Name       string      `json:"name"`
	PriceCents int64       `json:"price_cents"`
	Role       ServiceRole `json:"role"`
}

// Appointment is a normalized grooming appointment with derived fields
// resolved (groomer eligibility, weight bucket, calendar bucket keys).
type Appointment struct {
	ID                string            `json:"id"`
	ClientID          string            `json:"client_id"`
	PetName           string            `json:"pet_name"`
	PetWeightLbs      float64           `json:"pet_weight_lbs"`
	PetWeightCategory WeightCategory    `json:"pet_weight_category"`
	GroomerID         string            `json:"groomer_id"`
	GroomerEligible   bool              `json:"groomer_eligible"`
	Date              time.Time         `json:"date"`
	StartMinute       int               `json:"start_minute"` // minutes from midnight
	EndMinute         int               `json:"end_minute"`
	DurationMinutes   int               `json:"duration_minutes"`
	Services          []ServiceLine     `json:"services"`
	TotalCents        int64             `json:"total_cents"`
	Status            AppointmentStatus `json:"status"`
	CreatedAt         time.Time         `json:"created_at"`
	PrimaryService    string            `json:"primary_service"`
	DayKey            string            `json:"day_key"`
	WeekKey           string            `json:"week_key"`
	MonthKey          string            `json:"month_key"`
}

// LineItem is a normalized transaction line.
type LineItem struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Kind           LineItemKind `json:"kind"`
	Quantity       int          `json:"quantity"`
	UnitPriceCents int64        `json:"unit_price_cents"`
	TotalCents     int64        `json:"total_cents"`
}

// Transaction is a normalized point-of-sale transaction. The monetary
// identity TotalCents = SubtotalCents - DiscountCents + FeeCents + TaxCents
// holds for every normalized transaction; the normalizer repairs records
// that violate it and records a warning.
type Transaction struct {
	ID            string            `json:"id"`
	AppointmentID string            `json:"appointment_id,omitempty"`
	ClientID      string            `json:"client_id"`
	Date          time.Time         `json:"date"`
	Items         []LineItem        `json:"items"`
	SubtotalCents int64             `json:"subtotal_cents"`
	DiscountCents int64             `json:"discount_cents"`
	FeeCents      int64             `json:"fee_cents"`
	TaxCents      int64             `json:"tax_cents"`
	TotalCents    int64             `json:"total_cents"`
	TipCents      int64             `json:"tip_cents"`
	RefundCents   int64             `json:"refund_cents"`
	PaymentMethod string            `json:"payment_method"`
	Status        TransactionStatus `json:"status"`
	Type          TransactionType   `json:"type"`
	// Derived via reference resolution. GroomerID and PrimaryService come
	// from the linked appointment when one exists.
	GroomerID      string `json:"groomer_id,omitempty"`
	PrimaryService string `json:"primary_service,omitempty"`
	DayKey         string `json:"day_key"`
	WeekKey        string `json:"week_key"`
	MonthKey       string `json:"month_key"`
}

// Pet is the normalized pet subset carried on a client.
type Pet struct {
	Name           string         `json:"name"`
	WeightLbs      float64        `json:"weight_lbs"`
	WeightCategory WeightCategory `json:"weight_category"`
}

// Client is a normalized client record.
type Client struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Phone     *string   `json:"phone,omitempty"`
	Email     *string   `json:"email,omitempty"`
	Pets      []Pet     `json:"pets"`
	CreatedAt time.Time `json:"created_at"`
}

// StaffMember is a normalized employee record.
type StaffMember struct {
	ID        string  `json:"id"`
	FullName  string  `json:"full_name"`
	Role      string  `json:"role"`
	Phone     *string `json:"phone,omitempty"`
	Email     *string `json:"email,omitempty"`
	Active    bool    `json:"active"`
	IsGroomer bool    `json:"is_groomer"`
}

// InventoryItem is a normalized stocked item.
type InventoryItem struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Category         InventoryCategory `json:"category"`
	SKU              string            `json:"sku,omitempty"`
	QuantityOnHand   int               `json:"quantity_on_hand"`
	UnitPriceCents   int64             `json:"unit_price_cents"`
	UnitCostCents    int64             `json:"unit_cost_cents"`
	ReorderThreshold int               `json:"reorder_threshold"`
}

// Message is a normalized client message; analytics only counts it.
type Message struct {
	ID       string    `json:"id"`
	ClientID string    `json:"client_id"`
	SentAt   time.Time `json:"sent_at"`
}

// RecordKind names a normalized collection, used by drill requests and
// normalization warnings.
type RecordKind string

const (
	KindAppointments RecordKind = "appointments"
	KindTransactions RecordKind = "transactions"
	KindClients      RecordKind = "clients"
	KindStaff        RecordKind = "staff"
	KindInventory    RecordKind = "inventory"
	KindMessages     RecordKind = "messages"
)

// Warning records a non-fatal normalization issue. The offending record is
// repaired or dropped and computation proceeds.
type Warning struct {
	RecordKind RecordKind `json:"record_kind"`
	RecordID   string     `json:"record_id"`
	Reason     string     `json:"reason"`
}

// NormalizedDataset is the immutable aggregate of normalized collections for
// one computation cycle. Version increases monotonically so computed reports
// can be memoized and invalidated.
type NormalizedDataset struct {
	Version      int64           `json:"version"`
	Appointments []Appointment   `json:"appointments"`
	Transactions []Transaction   `json:"transactions"`
	Clients      []Client        `json:"clients"`
	Staff        []StaffMember   `json:"staff"`
	Inventory    []InventoryItem `json:"inventory"`
	Messages     []Message       `json:"messages"`
	Warnings     []Warning       `json:"warnings"`

	// Lookup indexes built once by the normalizer.
	AppointmentsByID map[string]*Appointment   `json:"-"`
	ClientsByID      map[string]*Client        `json:"-"`
	StaffByID        map[string]*StaffMember   `json:"-"`
	InventoryByID    map[string]*InventoryItem `json:"-"`
}
