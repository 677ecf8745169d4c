package datasupply

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"pawsuite_backend/internal/services"
)

const sampleDocument = `{
	"staff": [{"id": "g1", "full_name": "Riley Chen", "role": "groomer", "active": true, "is_groomer": true}],
	"clients": [{"id": "c1", "full_name": "Maya Flores", "pets": [{"name": "Biscuit", "weight_lbs": 22}]}],
	"transactions": [{
		"id": "t1", "client_id": "c1", "date": "2024-01-10",
		"subtotal": 50.00, "discount": 5.00, "additional_fees": 2.00, "tax": 10.00,
		"total": 57.00, "tip": 10.00,
		"payment_method": "card", "status": "completed", "type": "standalone"
	}]
}`

func TestFileSupplier(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	if err := os.WriteFile(path, []byte(sampleDocument), 0o644); err != nil {
		t.Fatal(err)
	}

	raw, err := NewFileSupplier(path).FetchRaw()
	if err != nil {
		t.Fatal(err)
	}
	if len(raw.Transactions) != 1 || raw.Transactions[0].ID != "t1" {
		t.Errorf("transactions = %+v", raw.Transactions)
	}
	if len(raw.Staff) != 1 || !raw.Staff[0].IsGroomer {
		t.Errorf("staff = %+v", raw.Staff)
	}
}

func TestFileSupplierErrors(t *testing.T) {
	if _, err := NewFileSupplier("/nonexistent/records.json").FetchRaw(); err == nil {
		t.Error("expected an error for a missing file")
	}

	path := filepath.Join(t.TempDir(), "records.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileSupplier(path).FetchRaw(); err == nil {
		t.Error("expected an error for malformed JSON")
	}
}

func TestStoreLifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	if err := os.WriteFile(path, []byte(sampleDocument), 0o644); err != nil {
		t.Fatal(err)
	}
	store := NewStore(NewFileSupplier(path), services.NewNormalizer(time.UTC))

	if _, err := store.Current(); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("err = %v, want ErrNotLoaded before the first reload", err)
	}

	first, err := store.Reload()
	if err != nil {
		t.Fatal(err)
	}
	if len(first.Transactions) != 1 {
		t.Errorf("got %d transactions", len(first.Transactions))
	}

	second, err := store.Reload()
	if err != nil {
		t.Fatal(err)
	}
	if second.Version != first.Version+1 {
		t.Errorf("versions %d then %d", first.Version, second.Version)
	}

	current, err := store.Current()
	if err != nil {
		t.Fatal(err)
	}
	if current != second {
		t.Error("Current did not return the latest reload")
	}
}
