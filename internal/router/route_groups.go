package router

import (
	"xero_backend/internal/handlers"
	"xero_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupInventoryRoutes sets up the item table routes.
func SetupInventoryRoutes(apiGroup *gin.RouterGroup, inventoryHandler *handlers.InventoryHandler) {
	itemRoutes := apiGroup.Group("/items")
	itemRoutes.Use(middleware.AuthMiddleware())
	{
		itemRoutes.PUT("", inventoryHandler.AddOrUpdateItem)
		itemRoutes.GET("", inventoryHandler.ListItems)
		itemRoutes.GET("/search", inventoryHandler.SearchItems)
		itemRoutes.GET("/expiring", inventoryHandler.ListExpiring)
		itemRoutes.GET("/low-stock", inventoryHandler.ListLowStock)
		itemRoutes.GET("/barcode/:barcode", inventoryHandler.GetItemByBarcode)
		itemRoutes.GET("/:id", inventoryHandler.GetItem)
		itemRoutes.DELETE("/:id", inventoryHandler.RemoveItem)
	}
}

// SetupSnapshotRoutes sets up the persistence gateway admin routes.
func SetupSnapshotRoutes(apiGroup *gin.RouterGroup, snapshotHandler *handlers.SnapshotHandler) {
	snapshotRoutes := apiGroup.Group("/admin/snapshot")
	snapshotRoutes.Use(middleware.AuthMiddleware())
	{
		snapshotRoutes.POST("", snapshotHandler.TakeSnapshot)
		snapshotRoutes.POST("/restore", snapshotHandler.RestoreSnapshot)
	}
}

// SetupAggregatorRoutes sets up the inventory data upload route.
func SetupAggregatorRoutes(apiGroup *gin.RouterGroup, aggregatorHandler *handlers.AggregatorHandler) {
	aggregatorRoutes := apiGroup.Group("/aggregator")
	aggregatorRoutes.Use(middleware.AuthMiddleware())
	{
		aggregatorRoutes.POST("/upload", aggregatorHandler.UploadInventoryData)
	}
}

// SetupLedgerRoutes sets up the transaction ledger routes.
func SetupLedgerRoutes(apiGroup *gin.RouterGroup, ledgerHandler *handlers.LedgerHandler) {
	ledgerRoutes := apiGroup.Group("/transactions")
	ledgerRoutes.Use(middleware.AuthMiddleware())
	{
		ledgerRoutes.POST("", ledgerHandler.RecordTransaction)
		ledgerRoutes.GET("", ledgerHandler.ListTransactions)
		ledgerRoutes.GET("/:id", ledgerHandler.GetTransaction)
	}
}

// SetupPricingRoutes sets up the price adjustment routes.
func SetupPricingRoutes(apiGroup *gin.RouterGroup, pricingHandler *handlers.PricingHandler) {
	pricingRoutes := apiGroup.Group("/pricing")
	pricingRoutes.Use(middleware.AuthMiddleware())
	{
		pricingRoutes.POST("/adjust/:id", pricingHandler.AdjustPrice)
		pricingRoutes.GET("/rules", pricingHandler.ListRules)
		pricingRoutes.PATCH("/rules/:name", pricingHandler.SetRuleActive)
	}
}

// SetupProfileRoutes sets up the business profile routes.
func SetupProfileRoutes(apiGroup *gin.RouterGroup, profileHandler *handlers.ProfileHandler) {
	profileRoutes := apiGroup.Group("/profiles")
	profileRoutes.Use(middleware.AuthMiddleware())
	{
		profileRoutes.POST("", profileHandler.CreateProfile)
		profileRoutes.PUT("", profileHandler.UpdateProfile)
		profileRoutes.GET("/:owner_id", profileHandler.GetProfile)
		profileRoutes.GET("/:owner_id/steps", profileHandler.GetCompletedSteps)
		profileRoutes.POST("/steps/:step_id", profileHandler.SaveCompletedStep)
	}
}
