package router

import (
	"net/http"
	"os"
	"strings"

	"xero_backend/internal/clients"
	"xero_backend/internal/handlers"
	"xero_backend/internal/repositories"
	"xero_backend/internal/services"
	"xero_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewEngine builds a gin engine with the shared middleware every service
// uses: request logging, recovery, CORS and a health probe.
func NewEngine() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
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
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowCredentials = true
	engine.Use(cors.New(config))

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	return engine
}

// SetupInventory wires the inventory service routes: the store itself, the
// persistence gateway and the data-upload endpoint.
func SetupInventory(engine *gin.Engine, inventoryService services.InventoryService,
	snapshotService services.SnapshotService, aggregatorService services.AggregatorService) {

	inventoryHandler := handlers.NewInventoryHandler(inventoryService)
	snapshotHandler := handlers.NewSnapshotHandler(snapshotService)
	aggregatorHandler := handlers.NewAggregatorHandler(aggregatorService)

	apiV1 := engine.Group("/api/v1")
	SetupInventoryRoutes(apiV1, inventoryHandler)
	SetupSnapshotRoutes(apiV1, snapshotHandler)
	SetupAggregatorRoutes(apiV1, aggregatorHandler)
}

// SetupLedger wires the ledger service routes.
func SetupLedger(engine *gin.Engine, ledgerService services.LedgerService) {
	ledgerHandler := handlers.NewLedgerHandler(ledgerService)

	apiV1 := engine.Group("/api/v1")
	SetupLedgerRoutes(apiV1, ledgerHandler)
}

// SetupPricing wires the pricing service routes. The inventory and ledger
// clients are resolved from configuration by the caller and injected here.
func SetupPricing(engine *gin.Engine, inventoryClient clients.InventoryClient,
	ledgerClient clients.LedgerClient, lowStockThreshold int) {

	pricingService := services.NewPricingService(inventoryClient, ledgerClient, lowStockThreshold)
	pricingHandler := handlers.NewPricingHandler(pricingService)

	apiV1 := engine.Group("/api/v1")
	SetupPricingRoutes(apiV1, pricingHandler)
}

// SetupProfile wires the business-profile service routes.
func SetupProfile(engine *gin.Engine, profileRepo repositories.ProfileRepository) {
	profileService := services.NewProfileService(profileRepo)
	profileHandler := handlers.NewProfileHandler(profileService)

	apiV1 := engine.Group("/api/v1")
	SetupProfileRoutes(apiV1, profileHandler)
}
