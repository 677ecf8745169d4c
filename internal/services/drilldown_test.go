package services

import (
	"errors"
	"testing"
	"time"

	"pawsuite_backend/internal/models"
)

func netOf(txs []models.Transaction) float64 {
	var cents int64
	for _, tx := range txs {
		cents += tx.SubtotalCents - tx.DiscountCents - tx.RefundCents
	}
	return float64(cents) / 100
}

func TestDrillFromKPIReconciles(t *testing.T) {
	ds := fixtureDataset(t)
	data, err := NewAnalyticsEngine().ComputeReportData("sales-summary", ds, januaryFilters(t))
	if err != nil {
		t.Fatal(err)
	}
	kpi := kpiByID(t, data, "net-sales")
	if kpi.Drill == nil {
		t.Fatal("KPI carries no drill request")
	}

	result, err := NewDrillResolver(time.UTC).ResolveDrill(*kpi.Drill, ds)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Transactions) != 1 || result.Transactions[0].ID != "t1" {
		t.Fatalf("drill returned %+v, want exactly t1", result.Transactions)
	}
	if got := netOf(result.Transactions); got != kpi.Value {
		t.Errorf("drilled records sum to %v, KPI shows %v", got, kpi.Value)
	}
}

func TestDrillFromTableRowReconciles(t *testing.T) {
	ds := fixtureDataset(t)
	rf := models.ResolvedFilters{
		Preset:  models.PresetCustom,
		Current: period(t, "2023-12-01", "2024-02-29"),
		GroupBy: models.GroupByPaymentMethod,
	}
	data, err := NewAnalyticsEngine().ComputeReportData("sales-summary", ds, rf)
	if err != nil {
		t.Fatal(err)
	}

	resolver := NewDrillResolver(time.UTC)
	for _, row := range data.Table.Rows {
		if row.Drill == nil {
			t.Fatalf("row %s carries no drill request", row.Key)
		}
		result, err := resolver.ResolveDrill(*row.Drill, ds)
		if err != nil {
			t.Fatal(err)
		}
		if got := netOf(result.Transactions); got != row.Values["net-sales"] {
			t.Errorf("row %s: drilled records sum to %v, row shows %v", row.Key, got, row.Values["net-sales"])
		}
	}
}

func TestDrillFromChartPointReconciles(t *testing.T) {
	ds := fixtureDataset(t)
	data, err := NewAnalyticsEngine().ComputeReportData("sales-summary", ds, januaryFilters(t))
	if err != nil {
		t.Fatal(err)
	}

	resolver := NewDrillResolver(time.UTC)
	for _, point := range data.Charts[0].Series[0].Points {
		if point.Drill == nil {
			t.Fatalf("chart point %s carries no drill request", point.Key)
		}
		result, err := resolver.ResolveDrill(*point.Drill, ds)
		if err != nil {
			t.Fatal(err)
		}
		if got := netOf(result.Transactions); got != point.Value {
			t.Errorf("bucket %s: drilled records sum to %v, point shows %v", point.Key, got, point.Value)
		}
	}
}

func TestDrillLimitsRecordKinds(t *testing.T) {
	ds := fixtureDataset(t)
	req := models.DrillRequest{
		Kinds:   []models.RecordKind{models.KindTransactions},
		Filters: models.DrillFilters{Start: "2024-01-01", End: "2024-01-31"},
	}
	result, err := NewDrillResolver(time.UTC).ResolveDrill(req, ds)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Transactions) == 0 {
		t.Error("expected transactions in the window")
	}
	if result.Appointments != nil || result.Clients != nil || result.Messages != nil || result.Inventory != nil {
		t.Error("unrequested record kinds were populated")
	}
}

func TestDrillExcludesVoided(t *testing.T) {
	ds := fixtureDataset(t)
	req := models.DrillRequest{
		Kinds:   []models.RecordKind{models.KindTransactions},
		Filters: models.DrillFilters{Start: "2024-01-12", End: "2024-01-12"},
	}
	result, err := NewDrillResolver(time.UTC).ResolveDrill(req, ds)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Transactions) != 0 {
		t.Errorf("voided transaction surfaced in drill: %+v", result.Transactions)
	}
}

func TestDrillGroupRestriction(t *testing.T) {
	ds := fixtureDataset(t)
	key := "cash"
	req := models.DrillRequest{
		Kinds: []models.RecordKind{models.KindTransactions},
		Filters: models.DrillFilters{
			Start:    "2023-12-01",
			End:      "2024-02-29",
			GroupBy:  models.GroupByPaymentMethod,
			GroupKey: &key,
		},
	}
	result, err := NewDrillResolver(time.UTC).ResolveDrill(req, ds)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Transactions) != 2 {
		t.Fatalf("got %d cash transactions, want 2", len(result.Transactions))
	}
	for _, tx := range result.Transactions {
		if tx.PaymentMethod != "cash" {
			t.Errorf("transaction %s has payment method %q", tx.ID, tx.PaymentMethod)
		}
	}
}

func TestDrillValidation(t *testing.T) {
	ds := fixtureDataset(t)
	resolver := NewDrillResolver(time.UTC)
	cases := []models.DrillRequest{
		{Filters: models.DrillFilters{Start: "2024-01-01", End: "2024-01-31"}},
		{Kinds: []models.RecordKind{models.KindTransactions}, Filters: models.DrillFilters{Start: "bad", End: "2024-01-31"}},
		{Kinds: []models.RecordKind{models.KindTransactions}, Filters: models.DrillFilters{Start: "2024-02-01", End: "2024-01-31"}},
		{Kinds: []models.RecordKind{models.KindTransactions}, Filters: models.DrillFilters{Start: "2024-01-01", End: "2024-01-31", GroupBy: "mood"}},
	}
	for i, req := range cases {
		if _, err := resolver.ResolveDrill(req, ds); !errors.Is(err, ErrValidation) {
			t.Errorf("case %d: err = %v, want ErrValidation", i, err)
		}
	}
}
