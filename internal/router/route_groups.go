package router

import (
	"pawsuite_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupReportRoutes sets up the report and drill-down routes.
func SetupReportRoutes(apiGroup *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	reportRoutes := apiGroup.Group("/reports")
	{
		reportRoutes.GET("", reportHandler.ListReports)
		reportRoutes.GET("/:reportId", reportHandler.GetReport)
		reportRoutes.POST("/:reportId/drill", reportHandler.Drill)
	}
}

// SetupDatasetRoutes sets up the dataset lifecycle routes.
func SetupDatasetRoutes(apiGroup *gin.RouterGroup, datasetHandler *handlers.DatasetHandler) {
	datasetRoutes := apiGroup.Group("/dataset")
	{
		datasetRoutes.POST("/reload", datasetHandler.Reload)
		datasetRoutes.GET("/summary", datasetHandler.Summary)
	}
}
