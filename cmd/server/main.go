package main

import (
	"log"
	"net/http"
	"os"
	"strings"

	"pawsuite_backend/internal/datasupply"
	"pawsuite_backend/internal/router"
	"pawsuite_backend/internal/services"
	"pawsuite_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	utils.InitLogger()

	loc := utils.GetenvLocation("TZ_BUSINESS", "America/New_York")
	normalizer := services.NewNormalizer(loc)

	supplier, err := buildSupplier()
	if err != nil {
		utils.LogError(err, "Failed to configure data supplier")
		log.Fatalf("Failed to configure data supplier: %v", err)
	}

	store := datasupply.NewStore(supplier, normalizer)
	if ds, err := store.Reload(); err != nil {
		utils.LogError(err, "Initial dataset load failed")
		log.Fatalf("Initial dataset load failed: %v", err)
	} else {
		utils.LogInfo("Dataset loaded", map[string]interface{}{
			"version":      ds.Version,
			"transactions": len(ds.Transactions),
			"appointments": len(ds.Appointments),
			"warnings":     len(ds.Warnings),
		})
	}

	resolver := services.NewFilterResolver(loc, nil)
	analytics := services.NewAnalyticsEngine()
	drills := services.NewDrillResolver(loc)

	engine := gin.Default()
	engine.Use(utils.GinLogger())

	corsAllowedOriginsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	var allowedOrigins []string
	if corsAllowedOriginsEnv != "" {
		allowedOrigins = strings.Split(corsAllowedOriginsEnv, ",")
	} else {
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:3001"}
	}

	config := cors.DefaultConfig()
	config.AllowOrigins = allowedOrigins
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type"}
	engine.Use(cors.New(config))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.Setup(engine, store, resolver, analytics, drills)

	port := utils.Getenv("PORT", "8080")
	utils.LogInfo("Server starting", map[string]interface{}{"port": port})
	if err := engine.Run(":" + port); err != nil {
		utils.LogError(err, "Failed to start server")
		log.Fatalf("Failed to start server: %v", err)
	}
}

// buildSupplier picks the data source from the environment: a JSON document
// for development and demos, or the operational Postgres database.
func buildSupplier() (datasupply.Supplier, error) {
	switch source := utils.Getenv("DATA_SOURCE", "file"); source {
	case "postgres":
		db, err := datasupply.OpenPostgres(
			utils.Getenv("DB_HOST", "localhost"),
			utils.Getenv("DB_PORT", "5432"),
			utils.Getenv("DB_USER", "pawsuite_user"),
			utils.Getenv("DB_PASSWORD", "pawsuite_password"),
			utils.Getenv("DB_NAME", "pawsuite_db"),
			utils.Getenv("DB_SSLMODE", "disable"),
		)
		if err != nil {
			return nil, err
		}
		return datasupply.NewPostgresSupplier(db), nil
	default:
		return datasupply.NewFileSupplier(utils.Getenv("DATA_FILE", "data/records.json")), nil
	}
}
