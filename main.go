package main

import (
	"log"
	"os"

	"github.com/Arjun-P-716/CardBay/config"
	"github.com/Arjun-P-716/CardBay/routes"
	"github.com/Arjun-P-716/CardBay/utils"
)

func main() {
	// Initialize logger
	if err := utils.InitLogger(); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	// Load environment variables
	if _, err := config.LoadConfig(); err != nil {
		utils.LogError("Error loading config: %v", err)
		log.Fatal("Error loading config:", err)
	}

	// Initialize database
	config.InitDB()

	// Seed the admin account and the settings singleton
	if err := config.EnsureAdminAccount(); err != nil {
		utils.LogError("Failed to ensure admin account: %v", err)
		log.Fatal("Failed to ensure admin account:", err)
	}
	if err := config.EnsureSettings(); err != nil {
		utils.LogError("Failed to ensure settings: %v", err)
		log.Fatal("Failed to ensure settings:", err)
	}

	// Initialize Google OAuth
	config.InitGoogleOAuth()

	// Set up router
	router := routes.SetupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = utils.DefaultPort
	}

	utils.LogInfo("Server starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		utils.LogError("Error starting server: %v", err)
		log.Fatal("Error starting server:", err)
	}
}
