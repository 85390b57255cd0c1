package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/propfolio/mls-deal-analyzer/client"
	"github.com/propfolio/mls-deal-analyzer/config"
	"github.com/propfolio/mls-deal-analyzer/handler"
	"github.com/propfolio/mls-deal-analyzer/service"
	"github.com/propfolio/mls-deal-analyzer/store"
)

func main() {
	// Initialize configuration
	cfg := config.LoadConfig()

	// Initialize persistence
	propertyStore, err := store.New(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open property store: %v", err)
	}
	defer propertyStore.Close()

	// Initialize Tesseract client (scanned-listing fallback)
	tesseractClient := client.NewTesseractClient(cfg.TesseractDataPath)
	defer tesseractClient.Close()

	// Initialize PDF processor
	pdfProcessor := service.NewPDFProcessor()

	// Initialize service layer
	listingService := service.NewListingService(tesseractClient, pdfProcessor, propertyStore)

	// Initialize handler layer
	propertyHandler := handler.NewPropertyHandler(listingService)
	defaultsHandler := handler.NewDefaultsHandler(listingService)

	// Setup Gin router
	router := gin.Default()
	router.MaxMultipartMemory = cfg.MaxFileSize

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "MLS Deal Analyzer",
		})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		listings := api.Group("/listings")
		{
			listings.POST("/extract", propertyHandler.ExtractListing)
			listings.POST("/analyze", propertyHandler.AnalyzeText)
			listings.POST("/calculate", propertyHandler.Calculate)
		}

		properties := api.Group("/properties")
		{
			properties.GET("", propertyHandler.ListProperties)
			properties.GET("/:id", propertyHandler.GetProperty)
			properties.PUT("/:id", propertyHandler.SaveProperty)
			properties.DELETE("/:id", propertyHandler.DeleteProperty)
		}

		defaults := api.Group("/defaults")
		{
			defaults.GET("", defaultsHandler.GetDefaults)
			defaults.PUT("", defaultsHandler.UpdateDefaults)
		}
	}

	// Start server
	log.Printf("Starting MLS Deal Analyzer on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
