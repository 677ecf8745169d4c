package datasupply

import (
	"errors"
	"sync"

	"pawsuite_backend/internal/models"
	"pawsuite_backend/internal/services"
)

// Supplier loads the raw record collections the engine consumes. The engine
// itself never performs I/O; suppliers are the only components that do.
type Supplier interface {
	FetchRaw() (models.RawRecords, error)
}

// ErrNotLoaded is returned when a dataset is requested before the first
// successful reload.
var ErrNotLoaded = errors.New("dataset not loaded")

// Store owns the current normalized dataset for the running application.
// Reload pulls fresh raw records from the supplier and produces a new
// dataset version; readers always see a complete, immutable dataset.
type Store struct {
	mu         sync.RWMutex
	supplier   Supplier
	normalizer *services.Normalizer
	current    *models.NormalizedDataset
}

// NewStore creates a Store; call Reload before serving reports.
func NewStore(supplier Supplier, normalizer *services.Normalizer) *Store {
	return &Store{supplier: supplier, normalizer: normalizer}
}

// Reload fetches raw records and swaps in a freshly normalized dataset.
func (s *Store) Reload() (*models.NormalizedDataset, error) {
	raw, err := s.supplier.FetchRaw()
	if err != nil {
		return nil, err
	}
	ds := s.normalizer.Normalize(raw)
	s.mu.Lock()
	s.current = ds
	s.mu.Unlock()
	return ds, nil
}

// Current returns the latest normalized dataset.
func (s *Store) Current() (*models.NormalizedDataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, ErrNotLoaded
	}
	return s.current, nil
}
