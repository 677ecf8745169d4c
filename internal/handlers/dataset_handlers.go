package handlers

import (
	"net/http"

	"pawsuite_backend/internal/datasupply"
	"pawsuite_backend/internal/models"
	"pawsuite_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// DatasetHandler exposes the current dataset's lifecycle: reloading from the
// supplier and inspecting normalization output.
type DatasetHandler struct {
	store *datasupply.Store
}

// NewDatasetHandler creates a new instance of DatasetHandler.
func NewDatasetHandler(store *datasupply.Store) *DatasetHandler {
	return &DatasetHandler{store: store}
}

type datasetSummary struct {
	Version      int64            `json:"version"`
	Appointments int              `json:"appointments"`
	Transactions int              `json:"transactions"`
	Clients      int              `json:"clients"`
	Staff        int              `json:"staff"`
	Inventory    int              `json:"inventory"`
	Messages     int              `json:"messages"`
	Warnings     []models.Warning `json:"warnings"`
}

func summarize(ds *models.NormalizedDataset) datasetSummary {
	return datasetSummary{
		Version:      ds.Version,
		Appointments: len(ds.Appointments),
		Transactions: len(ds.Transactions),
		Clients:      len(ds.Clients),
		Staff:        len(ds.Staff),
		Inventory:    len(ds.Inventory),
		Messages:     len(ds.Messages),
		Warnings:     ds.Warnings,
	}
}

// Reload re-pulls raw records from the supplier and normalizes a new
// dataset version.
func (h *DatasetHandler) Reload(c *gin.Context) {
	ds, err := h.store.Reload()
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadGateway, "SUPPLIER_FAILED", "Failed to load raw records", err.Error()))
		return
	}
	c.JSON(http.StatusOK, summarize(ds))
}

// Summary reports the current dataset version, record counts and
// normalization warnings.
func (h *DatasetHandler) Summary(c *gin.Context) {
	ds, err := h.store.Current()
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusServiceUnavailable, "DATASET_NOT_LOADED", "Dataset not loaded yet", err.Error()))
		return
	}
	c.JSON(http.StatusOK, summarize(ds))
}
