package main

import (
	"log"

	"xero_backend/internal/database"
	"xero_backend/internal/repositories"
	"xero_backend/internal/router"
	"xero_backend/pkg/utils"
)

func main() {
	utils.InitLogger()
	utils.InitJWTSecret()

	dbHost := utils.Getenv("DB_HOST", "localhost")
	dbPort := utils.Getenv("DB_PORT", "5432")
	dbUser := utils.Getenv("DB_USER", "xero_user")
	dbPassword := utils.Getenv("DB_PASSWORD", "xero_password")
	dbName := utils.Getenv("DB_NAME", "xero_profile_db")
	dbSSLMode := utils.Getenv("DB_SSLMODE", "disable")
	dbSchemaPath := utils.Getenv("DB_SCHEMA_PATH", "")

	database.InitDB(dbHost, dbPort, dbUser, dbPassword, dbName, dbSSLMode, dbSchemaPath)
	utils.LogInfo("Database initialized", map[string]interface{}{"configured_from_env": true})

	profileRepo := repositories.NewProfileRepository(database.GetDB())

	engine := router.NewEngine()
	router.SetupProfile(engine, profileRepo)

	port := utils.Getenv("PORT", "8084")
	utils.LogInfo("Profile service starting", map[string]interface{}{"port": port})
	if err := engine.Run(":" + port); err != nil {
		utils.LogError(err, "Failed to start server")
		log.Fatalf("Failed to start server: %v", err)
	}
}
