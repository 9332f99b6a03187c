package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"xero_backend/internal/database"
	"xero_backend/internal/repositories"
	"xero_backend/internal/router"
	"xero_backend/internal/services"
	"xero_backend/pkg/utils"
)

func main() {
	utils.InitLogger()
	utils.InitJWTSecret()

	statusCfg := services.DefaultStatusConfig()
	if threshold, err := strconv.Atoi(utils.Getenv("LOW_STOCK_THRESHOLD", "")); err == nil && threshold > 0 {
		statusCfg.LowStockThreshold = threshold
	}
	if days, err := strconv.Atoi(utils.Getenv("EXPIRING_SOON_DAYS", "")); err == nil && days > 0 {
		statusCfg.ExpiringSoonWindow = time.Duration(days) * 24 * time.Hour
	}

	inventoryRepo := repositories.NewInventoryRepository()
	snapshotStore := buildSnapshotStore()

	inventoryService := services.NewInventoryService(inventoryRepo, statusCfg)
	snapshotService := services.NewSnapshotService(inventoryRepo, snapshotStore)
	aggregatorService := services.NewAggregatorService(services.NoopParser{}, inventoryService)

	// Restore the previous state before serving. A missing snapshot is a
	// cold start; a corrupt one must never be served.
	restoreCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := snapshotService.RestoreLatest(restoreCtx); err != nil {
		if errors.Is(err, services.ErrSnapshotMissing) {
			utils.LogInfo("No snapshot found, starting with an empty store")
		} else {
			cancel()
			log.Fatalf("Failed to restore inventory snapshot: %v", err)
		}
	} else {
		utils.LogInfo("Inventory state restored from snapshot")
	}
	cancel()

	engine := router.NewEngine()
	router.SetupInventory(engine, inventoryService, snapshotService, aggregatorService)

	port := utils.Getenv("PORT", "8081")
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: engine,
	}

	go func() {
		utils.LogInfo("Inventory service starting", map[string]interface{}{"port": port})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Snapshot before the process goes away; restart-class events rely on it.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := snapshotService.TakeSnapshot(shutdownCtx); err != nil {
		utils.LogError(err, "Failed to take shutdown snapshot")
	} else {
		utils.LogInfo("Shutdown snapshot taken")
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.LogError(err, "Server shutdown failed")
	}
}

// buildSnapshotStore picks the snapshot backend from SNAPSHOT_BACKEND.
func buildSnapshotStore() repositories.SnapshotStore {
	backend := utils.Getenv("SNAPSHOT_BACKEND", "postgres")
	switch backend {
	case "redis":
		rdb := database.InitRedis(utils.Getenv("REDIS_ADDR", "localhost:6379"))
		utils.LogInfo("Snapshot store initialized", map[string]interface{}{"backend": "redis"})
		return repositories.NewRedisSnapshotStore(rdb)
	case "postgres":
		dbHost := utils.Getenv("DB_HOST", "localhost")
		dbPort := utils.Getenv("DB_PORT", "5432")
		dbUser := utils.Getenv("DB_USER", "xero_user")
		dbPassword := utils.Getenv("DB_PASSWORD", "xero_password")
		dbName := utils.Getenv("DB_NAME", "xero_inventory_db")
		dbSSLMode := utils.Getenv("DB_SSLMODE", "disable")
		dbSchemaPath := utils.Getenv("DB_SCHEMA_PATH", "")

		database.InitDB(dbHost, dbPort, dbUser, dbPassword, dbName, dbSSLMode, dbSchemaPath)
		utils.LogInfo("Snapshot store initialized", map[string]interface{}{"backend": "postgres"})
		return repositories.NewPostgresSnapshotStore(database.GetDB())
	default:
		log.Fatalf("Unknown SNAPSHOT_BACKEND %q (want postgres or redis)", backend)
		return nil
	}
}
