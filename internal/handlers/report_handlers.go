package handlers

import (
	"errors"
	"net/http"
	"strings"

	"pawsuite_backend/internal/datasupply"
	"pawsuite_backend/internal/models"
	"pawsuite_backend/internal/services"
	"pawsuite_backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ReportHandler serves computed reports and drill-downs over the current
// normalized dataset.
type ReportHandler struct {
	store    *datasupply.Store
	resolver *services.FilterResolver
	engine   *services.AnalyticsEngine
	drills   *services.DrillResolver
	validate *validator.Validate
}

// NewReportHandler creates a new instance of ReportHandler.
func NewReportHandler(store *datasupply.Store, resolver *services.FilterResolver, engine *services.AnalyticsEngine, drills *services.DrillResolver) *ReportHandler {
	return &ReportHandler{
		store:    store,
		resolver: resolver,
		engine:   engine,
		drills:   drills,
		validate: validator.New(),
	}
}

// parseFilterState reads the common report query parameters into a
// FilterState; anything absent stays unset and is filled from the report's
// defaults.
func parseFilterState(c *gin.Context) models.FilterState {
	var fs models.FilterState
	fs.Preset = models.DatePreset(c.Query("preset"))
	fs.StartDate = c.Query("start_date")
	fs.EndDate = c.Query("end_date")
	fs.GroupBy = models.GroupBy(c.Query("group_by"))
	if compare := c.Query("compare"); compare != "" {
		enabled := compare == "true" || compare == "1"
		fs.Compare = &enabled
	}
	if columns := c.Query("columns"); columns != "" {
		fs.VisibleColumns = strings.Split(columns, ",")
	}
	return fs
}

// ListReports returns the registered report ids and titles.
func (h *ReportHandler) ListReports(c *gin.Context) {
	type reportInfo struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	ids := services.ReportIDs()
	reports := make([]reportInfo, 0, len(ids))
	for _, id := range ids {
		def, err := services.ReportByID(id)
		if err != nil {
			utils.RespondInternalError(c, err.Error())
			return
		}
		reports = append(reports, reportInfo{ID: def.ID, Title: def.Title})
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

// GetReport computes one report for the current dataset and the requested
// filters.
func (h *ReportHandler) GetReport(c *gin.Context) {
	reportID := c.Param("reportId")

	fs, err := h.resolver.ApplyReportDefaults(reportID, parseFilterState(c))
	if err != nil {
		if errors.Is(err, services.ErrUnknownReport) {
			utils.RespondNotFound(c, err.Error())
			return
		}
		utils.RespondInternalError(c, err.Error())
		return
	}
	rf, err := h.resolver.Resolve(fs)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.RespondValidationFailed(c, err.Error())
			return
		}
		utils.RespondInternalError(c, err.Error())
		return
	}

	ds, err := h.store.Current()
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusServiceUnavailable, "DATASET_NOT_LOADED", "Dataset not loaded yet", err.Error()))
		return
	}

	data, err := h.engine.ComputeReportData(reportID, ds, rf)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownReport):
			utils.RespondNotFound(c, err.Error())
		case errors.Is(err, services.ErrValidation):
			utils.RespondValidationFailed(c, err.Error())
		default:
			utils.RespondInternalError(c, err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, data)
}

// Drill resolves the raw records behind a displayed KPI, chart point or
// table row.
func (h *ReportHandler) Drill(c *gin.Context) {
	if _, err := services.ReportByID(c.Param("reportId")); err != nil {
		utils.RespondNotFound(c, err.Error())
		return
	}

	var req models.DrillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid drill request body", err.Error()))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	ds, err := h.store.Current()
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusServiceUnavailable, "DATASET_NOT_LOADED", "Dataset not loaded yet", err.Error()))
		return
	}

	result, err := h.drills.ResolveDrill(req, ds)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.RespondValidationFailed(c, err.Error())
			return
		}
		utils.RespondInternalError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, result)
}
