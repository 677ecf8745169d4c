package datasupply

import (
	"encoding/json"
	"fmt"
	"os"

	"pawsuite_backend/internal/models"
)

// FileSupplier loads raw records from a single JSON document of the shape
// {"appointments": [...], "transactions": [...], ...}.
type FileSupplier struct {
	path string
}

// NewFileSupplier creates a supplier reading from the given path.
func NewFileSupplier(path string) *FileSupplier {
	return &FileSupplier{path: path}
}

// FetchRaw reads and decodes the document.
func (f *FileSupplier) FetchRaw() (models.RawRecords, error) {
	content, err := os.ReadFile(f.path)
	if err != nil {
		return models.RawRecords{}, fmt.Errorf("could not read data file %s: %w", f.path, err)
	}
	var raw models.RawRecords
	if err := json.Unmarshal(content, &raw); err != nil {
		return models.RawRecords{}, fmt.Errorf("could not decode data file %s: %w", f.path, err)
	}
	return raw, nil
}
