package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pawsuite_backend/internal/datasupply"
	"pawsuite_backend/internal/models"
	"pawsuite_backend/internal/router"
	"pawsuite_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type stubSupplier struct {
	records models.RawRecords
	err     error
}

func (s *stubSupplier) FetchRaw() (models.RawRecords, error) {
	return s.records, s.err
}

func stubRecords() models.RawRecords {
	return models.RawRecords{
		Staff: []models.RawStaffMember{
			{ID: "g1", FullName: "Riley Chen", Role: "groomer", Active: true, IsGroomer: true},
		},
		Clients: []models.RawClient{
			{ID: "c1", FullName: "Maya Flores", CreatedAt: "2024-01-05T10:00:00Z"},
		},
		Appointments: []models.RawAppointment{
			{
				ID: "a1", ClientID: "c1", GroomerID: "g1",
				Date: "2024-01-10", StartTime: "09:00", EndTime: "10:00",
				Services: []models.RawServiceItem{
					{ServiceID: "sv1", Name: "Full Groom", Price: 50.00, Role: "main"},
				},
				TotalPrice: 50.00, Status: "completed",
			},
		},
		Transactions: []models.RawTransaction{
			{
				ID: "t1", AppointmentID: "a1", ClientID: "c1", Date: "2024-01-10",
				Subtotal: 50.00, Discount: 5.00, AdditionalFees: 2.00, Tax: 10.00, Total: 57.00, Tip: 10.00,
				PaymentMethod: "card", Status: "completed", Type: "appointment",
			},
		},
	}
}

func testServer(t *testing.T, loaded bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := datasupply.NewStore(&stubSupplier{records: stubRecords()}, services.NewNormalizer(time.UTC))
	if loaded {
		if _, err := store.Reload(); err != nil {
			t.Fatal(err)
		}
	}
	now := func() time.Time { return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC) }

	engine := gin.New()
	router.Setup(engine, store, services.NewFilterResolver(time.UTC, now), services.NewAnalyticsEngine(), services.NewDrillResolver(time.UTC))
	return engine
}

func doRequest(t *testing.T, engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestListReports(t *testing.T) {
	rec := doRequest(t, testServer(t, true), http.MethodGet, "/api/v1/reports", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Reports []struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		} `json:"reports"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Reports) != 5 {
		t.Errorf("got %d reports, want 5", len(resp.Reports))
	}
}

func TestGetReport(t *testing.T) {
	rec := doRequest(t, testServer(t, true), http.MethodGet,
		"/api/v1/reports/sales-summary?preset=custom&start_date=2024-01-01&end_date=2024-01-31", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var data models.ReportData
	if err := json.Unmarshal(rec.Body.Bytes(), &data); err != nil {
		t.Fatal(err)
	}
	if data.ReportID != "sales-summary" {
		t.Errorf("report_id = %q", data.ReportID)
	}
	for _, k := range data.KPIs {
		if k.ID == "net-sales" && k.Value != 45.00 {
			t.Errorf("net-sales = %v, want 45.00", k.Value)
		}
	}
}

func TestGetReportUnknown(t *testing.T) {
	rec := doRequest(t, testServer(t, true), http.MethodGet, "/api/v1/reports/payroll", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestGetReportInvalidFilters(t *testing.T) {
	rec := doRequest(t, testServer(t, true), http.MethodGet,
		"/api/v1/reports/sales-summary?preset=custom&start_date=2024-01-01", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400, body %s", rec.Code, rec.Body.String())
	}
}

func TestGetReportBeforeLoad(t *testing.T) {
	rec := doRequest(t, testServer(t, false), http.MethodGet, "/api/v1/reports/sales-summary", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestDrill(t *testing.T) {
	body := `{"kinds":["transactions"],"filters":{"start":"2024-01-01","end":"2024-01-31"}}`
	rec := doRequest(t, testServer(t, true), http.MethodPost, "/api/v1/reports/sales-summary/drill", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var result models.DrillResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatal(err)
	}
	if len(result.Transactions) != 1 || result.Transactions[0].ID != "t1" {
		t.Errorf("transactions = %+v, want exactly t1", result.Transactions)
	}
	if len(result.Appointments) != 0 {
		t.Error("appointments returned but not requested")
	}
}

func TestDrillValidation(t *testing.T) {
	server := testServer(t, true)
	cases := []string{
		`{"filters":{"start":"2024-01-01","end":"2024-01-31"}}`,
		`{"kinds":["transactions"],"filters":{"start":"January 1st","end":"2024-01-31"}}`,
		`{"kinds":["payroll"],"filters":{"start":"2024-01-01","end":"2024-01-31"}}`,
		`not json`,
	}
	for i, body := range cases {
		rec := doRequest(t, server, http.MethodPost, "/api/v1/reports/sales-summary/drill", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("case %d: status = %d, want 400", i, rec.Code)
		}
	}
}

func TestDatasetSummaryAndReload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := datasupply.NewStore(&stubSupplier{records: stubRecords()}, services.NewNormalizer(time.UTC))
	if _, err := store.Reload(); err != nil {
		t.Fatal(err)
	}
	engine := gin.New()
	router.Setup(engine, store, services.NewFilterResolver(time.UTC, nil), services.NewAnalyticsEngine(), services.NewDrillResolver(time.UTC))

	rec := doRequest(t, engine, http.MethodGet, "/api/v1/dataset/summary", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("summary status = %d", rec.Code)
	}
	var before struct {
		Version      int64 `json:"version"`
		Transactions int   `json:"transactions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &before); err != nil {
		t.Fatal(err)
	}
	if before.Transactions != 1 {
		t.Errorf("transactions = %d, want 1", before.Transactions)
	}

	rec = doRequest(t, engine, http.MethodPost, "/api/v1/dataset/reload", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("reload status = %d", rec.Code)
	}
	var after struct {
		Version int64 `json:"version"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &after); err != nil {
		t.Fatal(err)
	}
	if after.Version != before.Version+1 {
		t.Errorf("version %d after reload, want %d", after.Version, before.Version+1)
	}
}

func TestReloadSupplierFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := datasupply.NewStore(&stubSupplier{err: errors.New("connection refused")}, services.NewNormalizer(time.UTC))
	engine := gin.New()
	router.Setup(engine, store, services.NewFilterResolver(time.UTC, nil), services.NewAnalyticsEngine(), services.NewDrillResolver(time.UTC))

	rec := doRequest(t, engine, http.MethodPost, "/api/v1/dataset/reload", "")
	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}
