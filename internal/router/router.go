package router

import (
	"pawsuite_backend/internal/datasupply"
	"pawsuite_backend/internal/handlers"
	"pawsuite_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, store *datasupply.Store, resolver *services.FilterResolver, analytics *services.AnalyticsEngine, drills *services.DrillResolver) {
	reportHandler := handlers.NewReportHandler(store, resolver, analytics, drills)
	datasetHandler := handlers.NewDatasetHandler(store)

	apiV1 := engine.Group("/api/v1")
	{
		SetupReportRoutes(apiV1, reportHandler)
		SetupDatasetRoutes(apiV1, datasetHandler)
	}
}
