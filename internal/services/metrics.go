package services

import (
	"fmt"

	"pawsuite_backend/internal/models"
)

// Scope is the filtered slice of the dataset a metric reduces over. The
// analytics engine builds one Scope per period (current, prior, bucket, table
// row) and every metric sees the same records, which is what makes two
// reports agree bit-for-bit on a shared metric.
type Scope struct {
	Transactions  []models.Transaction
	Appointments  []models.Appointment
	NewClients    []models.Client
	Messages      []models.Message
	Inventory     []models.InventoryItem
	InventoryByID map[string]*models.InventoryItem
}

// MetricFunc is one pure, order-insensitive reduction over a Scope. Money
// metrics return integer cents (as float64); conversion to display units
// happens only at KPI assembly.
type MetricFunc func(s Scope) float64

// MetricDef binds a metric id to its single shared reduction. Reports
// reference metrics by id and never restate a formula.
type MetricDef struct {
	ID     string
	Label  string
	Format models.ValueFormat
	Kinds  []models.RecordKind // record kinds a drill into this metric surfaces
	Fn     MetricFunc
}

// MetricByID resolves a metric id against the registry.
func MetricByID(id string) (MetricDef, error) {
	def, ok := metricRegistry[id]
	if !ok {
		return MetricDef{}, fmt.Errorf("%w: %q", ErrUnknownMetric, id)
	}
	return def, nil
}

// Shared reductions. Every derived metric is built from these so that e.g.
// net-sales is one formula no matter which report asks for it.

func sumSubtotal(s Scope) float64 {
	var total int64
	for _, tx := range s.Transactions {
		total += tx.SubtotalCents
	}
	return float64(total)
}

func sumDiscount(s Scope) float64 {
	var total int64
	for _, tx := range s.Transactions {
		total += tx.DiscountCents
	}
	return float64(total)
}

func sumRefund(s Scope) float64 {
	var total int64
	for _, tx := range s.Transactions {
		total += tx.RefundCents
	}
	return float64(total)
}

func sumTax(s Scope) float64 {
	var total int64
	for _, tx := range s.Transactions {
		total += tx.TaxCents
	}
	return float64(total)
}

func sumTips(s Scope) float64 {
	var total int64
	for _, tx := range s.Transactions {
		total += tx.TipCents
	}
	return float64(total)
}

// netSales is the one shared definition: subtotal minus discounts minus
// refunds over the transactions in scope.
func netSales(s Scope) float64 {
	return sumSubtotal(s) - sumDiscount(s) - sumRefund(s)
}

// totalCollected is everything that actually changed hands: repaired totals
// plus tips, less refunds.
func totalCollected(s Scope) float64 {
	var total int64
	for _, tx := range s.Transactions {
		total += tx.TotalCents + tx.TipCents - tx.RefundCents
	}
	return float64(total)
}

func transactionCount(s Scope) float64 {
	return float64(len(s.Transactions))
}

func productCost(s Scope) float64 {
	var total int64
	for _, tx := range s.Transactions {
		for _, item := range tx.Items {
			if item.Kind != models.LineRetail {
				continue
			}
			if inv, ok := s.InventoryByID[item.ID]; ok {
				total += inv.UnitCostCents * int64(item.Quantity)
			}
		}
	}
	return float64(total)
}

func serviceMinutes(s Scope) float64 {
	var total int
	for _, a := range s.Appointments {
		if a.Status == models.AppointmentCompleted {
			total += a.DurationMinutes
		}
	}
	return float64(total)
}

func appointmentCount(s Scope) float64 {
	return float64(len(s.Appointments))
}

func appointmentsWithStatus(s Scope, status models.AppointmentStatus) float64 {
	count := 0
	for _, a := range s.Appointments {
		if a.Status == status {
			count++
		}
	}
	return float64(count)
}

// ratio defines division-by-zero to 0 instead of propagating a fault.
func ratio(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

var metricRegistry = map[string]MetricDef{
	"gross-sales": {
		ID: "gross-sales", Label: "Gross Sales", Format: models.FormatCurrency,
		Kinds: []models.RecordKind{models.KindTransactions},
		Fn:    sumSubtotal,
	},
	"discounts": {
		ID: "discounts", Label: "Discounts", Format: models.FormatCurrency,
		Kinds: []models.RecordKind{models.KindTransactions},
		Fn:    sumDiscount,
	},
	"refunds": {
		ID: "refunds", Label: "Refunds", Format: models.FormatCurrency,
		Kinds: []models.RecordKind{models.KindTransactions},
		Fn:    sumRefund,
	},
	"net-sales": {
		ID: "net-sales", Label: "Net Sales", Format: models.FormatCurrency,
		Kinds: []models.RecordKind{models.KindTransactions},
		Fn:    netSales,
	},
	"tax-total": {
		ID: "tax-total", Label: "Tax", Format: models.FormatCurrency,
		Kinds: []models.RecordKind{models.KindTransactions},
		Fn:    sumTax,
	},
	"tips": {
		ID: "tips", Label: "Tips", Format: models.FormatCurrency,
		Kinds: []models.RecordKind{models.KindTransactions},
		Fn:    sumTips,
	},
	"total-collected": {
		ID: "total-collected", Label: "Total Collected", Format: models.FormatCurrency,
		Kinds: []models.RecordKind{models.KindTransactions},
		Fn:    totalCollected,
	},
	"transaction-count": {
		ID: "transaction-count", Label: "Transactions", Format: models.FormatCount,
		Kinds: []models.RecordKind{models.KindTransactions},
		Fn:    transactionCount,
	},
	"avg-ticket": {
		ID: "avg-ticket", Label: "Average Ticket", Format: models.FormatCurrency,
		Kinds: []models.RecordKind{models.KindTransactions},
		Fn: func(s Scope) float64 {
			return ratio(totalCollected(s), transactionCount(s))
		},
	},
	"appointment-count": {
		ID: "appointment-count", Label: "Appointments", Format: models.FormatCount,
		Kinds: []models.RecordKind{models.KindAppointments},
		Fn:    appointmentCount,
	},
	"completed-appointments": {
		ID: "completed-appointments", Label: "Completed Appointments", Format: models.FormatCount,
		Kinds: []models.RecordKind{models.KindAppointments},
		Fn: func(s Scope) float64 {
			return appointmentsWithStatus(s, models.AppointmentCompleted)
		},
	},
	"cancellation-rate": {
		ID: "cancellation-rate", Label: "Cancellation Rate", Format: models.FormatPercent,
		Kinds: []models.RecordKind{models.KindAppointments},
		Fn: func(s Scope) float64 {
			return ratio(appointmentsWithStatus(s, models.AppointmentCancelled), appointmentCount(s)) * 100
		},
	},
	"no-show-rate": {
		ID: "no-show-rate", Label: "No-Show Rate", Format: models.FormatPercent,
		Kinds: []models.RecordKind{models.KindAppointments},
		Fn: func(s Scope) float64 {
			return ratio(appointmentsWithStatus(s, models.AppointmentNoShow), appointmentCount(s)) * 100
		},
	},
	"service-minutes": {
		ID: "service-minutes", Label: "Service Minutes", Format: models.FormatMinutes,
		Kinds: []models.RecordKind{models.KindAppointments},
		Fn:    serviceMinutes,
	},
	"revenue-per-minute": {
		ID: "revenue-per-minute", Label: "Revenue per Minute", Format: models.FormatCurrency,
		Kinds: []models.RecordKind{models.KindTransactions, models.KindAppointments},
		Fn: func(s Scope) float64 {
			return ratio(netSales(s), serviceMinutes(s))
		},
	},
	"product-cost": {
		ID: "product-cost", Label: "Product Cost", Format: models.FormatCurrency,
		Kinds: []models.RecordKind{models.KindTransactions, models.KindInventory},
		Fn:    productCost,
	},
	"true-profit": {
		ID: "true-profit", Label: "True Profit", Format: models.FormatCurrency,
		Kinds: []models.RecordKind{models.KindTransactions, models.KindInventory},
		Fn: func(s Scope) float64 {
			return netSales(s) - productCost(s)
		},
	},
	"new-clients": {
		ID: "new-clients", Label: "New Clients", Format: models.FormatCount,
		Kinds: []models.RecordKind{models.KindClients},
		Fn: func(s Scope) float64 {
			return float64(len(s.NewClients))
		},
	},
	"messages-sent": {
		ID: "messages-sent", Label: "Messages", Format: models.FormatCount,
		Kinds: []models.RecordKind{models.KindMessages},
		Fn: func(s Scope) float64 {
			return float64(len(s.Messages))
		},
	},
	"retail-units": {
		ID: "retail-units", Label: "Retail Units Sold", Format: models.FormatCount,
		Kinds: []models.RecordKind{models.KindTransactions},
		Fn: func(s Scope) float64 {
			units := 0
			for _, tx := range s.Transactions {
				for _, item := range tx.Items {
					if item.Kind == models.LineRetail {
						units += item.Quantity
					}
				}
			}
			return float64(units)
		},
	},
	"low-stock-items": {
		ID: "low-stock-items", Label: "Low Stock Items", Format: models.FormatCount,
		Kinds: []models.RecordKind{models.KindInventory},
		Fn: func(s Scope) float64 {
			count := 0
			for _, item := range s.Inventory {
				if item.QuantityOnHand <= item.ReorderThreshold {
					count++
				}
			}
			return float64(count)
		},
	},
	"inventory-value": {
		ID: "inventory-value", Label: "Inventory Value", Format: models.FormatCurrency,
		Kinds: []models.RecordKind{models.KindInventory},
		Fn: func(s Scope) float64 {
			var total int64
			for _, item := range s.Inventory {
				total += item.UnitCostCents * int64(item.QuantityOnHand)
			}
			return float64(total)
		},
	},
}
