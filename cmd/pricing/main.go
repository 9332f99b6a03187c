package main

import (
	"log"
	"strconv"

	"xero_backend/internal/clients"
	"xero_backend/internal/router"
	"xero_backend/internal/services"
	"xero_backend/pkg/utils"
)

func main() {
	utils.InitLogger()
	utils.InitJWTSecret()

	// Collaborator addresses are injected from configuration; the pricing
	// service never hardcodes a peer address.
	inventoryBaseURL := utils.Getenv("INVENTORY_BASE_URL", "http://localhost:8081")
	ledgerBaseURL := utils.Getenv("LEDGER_BASE_URL", "http://localhost:8082")

	serviceToken := utils.Getenv("SERVICE_TOKEN", "")
	if serviceToken == "" {
		token, err := utils.GenerateServiceToken("pricing-service")
		if err != nil {
			log.Fatalf("Failed to generate service token: %v", err)
		}
		serviceToken = token
	}

	inventoryClient := clients.NewInventoryClient(inventoryBaseURL, serviceToken)
	ledgerClient := clients.NewLedgerClient(ledgerBaseURL, serviceToken)

	lowStockThreshold := services.DefaultLowStockThreshold
	if threshold, err := strconv.Atoi(utils.Getenv("LOW_STOCK_THRESHOLD", "")); err == nil && threshold > 0 {
		lowStockThreshold = threshold
	}

	engine := router.NewEngine()
	router.SetupPricing(engine, inventoryClient, ledgerClient, lowStockThreshold)

	port := utils.Getenv("PORT", "8083")
	utils.LogInfo("Pricing service starting", map[string]interface{}{
		"port":               port,
		"inventory_base_url": inventoryBaseURL,
		"ledger_base_url":    ledgerBaseURL,
	})
	if err := engine.Run(":" + port); err != nil {
		utils.LogError(err, "Failed to start server")
		log.Fatalf("Failed to start server: %v", err)
	}
}
