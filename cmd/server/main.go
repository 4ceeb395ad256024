package main

import (
	"log"

	"checkout-api/internal/api"
	"checkout-api/internal/config"
	"checkout-api/internal/database"
	"checkout-api/internal/services"
	"checkout-api/internal/signals"
	"checkout-api/pkg/logging"

	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize configuration
	if err := config.InitConfig(); err != nil {
		log.Fatal("Failed to initialize config:", err)
	}

	// Initialize logging
	logging.InitLogging()

	// Initialize database
	if err := database.InitDatabase(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	// Register payment event receivers
	receiptService := services.NewReceiptService()
	if receiptService.Configured() {
		signals.PaymentCompleted.Connect(receiptService.OnPaymentCompleted)
	}
	if config.AppConfig.WebhookCallbackURL != "" {
		webhookNotifier := services.NewWebhookNotifier()
		signals.PaymentStatusUpdated.Connect(webhookNotifier.OnPaymentStatusUpdated)
	}

	// Set Gin mode
	gin.SetMode(config.AppConfig.Mode)

	// Create Gin engine
	r := gin.Default()

	// Setup routes
	api.SetupRoutes(r)

	// Start server
	port := config.AppConfig.Port
	logging.Infof("Starting server on port %s", port)

	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
