package models

// Raw input records as supplied by the data-supply collaborator (JSON document
// or database rows). Currency fields are float64 in major units and dates are
// strings; the normalizer converts both exactly once at the boundary.

// RawServiceItem is a service line on an appointment.
type RawServiceItem struct {
	ServiceID string  `json:"service_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Role      string  `json:"role"` // "main" or "add-on"
}

// RawAppointment represents a grooming appointment as stored.
type RawAppointment struct {
	ID           string           `json:"id"`
	ClientID     string           `json:"client_id"`
	PetName      string           `json:"pet_name"`
	PetWeightLbs float64          `json:"pet_weight_lbs"`
	GroomerID    string           `json:"groomer_id"`
	Date         string           `json:"date"`       // YYYY-MM-DD
	StartTime    string           `json:"start_time"` // HH:MM, 24h
	EndTime      string           `json:"end_time"`
	Services     []RawServiceItem `json:"services"`
	TotalPrice   float64          `json:"total_price"`
	Status       string           `json:"status"` // scheduled, completed, cancelled, no-show
	CreatedAt    string           `json:"created_at,omitempty"` // RFC3339
}

// RawLineItem is a line on a point-of-sale transaction.
type RawLineItem struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Kind      string  `json:"kind"` // service, retail, fee
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Total     float64 `json:"total"`
}

// RawTransaction represents a point-of-sale transaction as stored.
type RawTransaction struct {
	ID             string        `json:"id"`
	AppointmentID  string        `json:"appointment_id,omitempty"`
	ClientID       string        `json:"client_id"`
	Date           string        `json:"date"` // YYYY-MM-DD
	Items          []RawLineItem `json:"items"`
	Subtotal       float64       `json:"subtotal"`
	Discount       float64       `json:"discount"`
	AdditionalFees float64       `json:"additional_fees"`
	Tax            float64       `json:"tax"`
	Total          float64       `json:"total"`
	Tip            float64       `json:"tip"`
	Refund         float64       `json:"refund"`
	PaymentMethod  string        `json:"payment_method"`
	Status         string        `json:"status"` // completed, refunded, voided
	Type           string        `json:"type"`   // appointment, retail, standalone
}

// RawPet is the pet subset carried on a client record.
type RawPet struct {
	Name      string  `json:"name"`
	WeightLbs float64 `json:"weight_lbs"`
}

// RawClient represents a client as stored.
type RawClient struct {
	ID        string   `json:"id"`
	FullName  string   `json:"full_name"`
	Phone     string   `json:"phone,omitempty"`
	Email     string   `json:"email,omitempty"`
	Pets      []RawPet `json:"pets"`
	CreatedAt string   `json:"created_at,omitempty"` // RFC3339
}

// RawStaffMember represents an employee as stored.
type RawStaffMember struct {
	ID        string `json:"id"`
	FullName  string `json:"full_name"`
	Role      string `json:"role"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
	Active    bool   `json:"active"`
	IsGroomer bool   `json:"is_groomer"`
}

// RawInventoryItem represents a stocked item as stored.
type RawInventoryItem struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Category         string  `json:"category"` // retail, supply
	SKU              string  `json:"sku,omitempty"`
	QuantityOnHand   int     `json:"quantity_on_hand"`
	UnitPrice        float64 `json:"unit_price"`
	UnitCost         float64 `json:"unit_cost"`
	ReorderThreshold int     `json:"reorder_threshold"`
}

// RawMessage represents a client message; its body is opaque to analytics.
type RawMessage struct {
	ID       string `json:"id"`
	ClientID string `json:"client_id"`
	SentAt   string `json:"sent_at"` // RFC3339
	Body     string `json:"body,omitempty"`
}

// RawRecords bundles every raw collection for one normalization cycle.
type RawRecords struct {
	Appointments []RawAppointment   `json:"appointments"`
	Transactions []RawTransaction   `json:"transactions"`
	Clients      []RawClient        `json:"clients"`
	Staff        []RawStaffMember   `json:"staff"`
	Inventory    []RawInventoryItem `json:"inventory"`
	Messages     []RawMessage       `json:"messages"`
}
