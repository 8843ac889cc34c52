package main

import (
	"log"

	"github.com/Aashish23092/drive-decision/client"
	"github.com/Aashish23092/drive-decision/config"
	"github.com/Aashish23092/drive-decision/handler"
	"github.com/Aashish23092/drive-decision/service"

	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize configuration
	cfg := config.LoadConfig()

	settingsStore, err := config.NewSettingsStore(cfg.SettingsPath)
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}
	if err := settingsStore.Watch(); err != nil {
		log.Printf("Warning: settings hot reload disabled: %v", err)
	}
	defer settingsStore.Close()

	// Initialize OCR engine
	var recognizer service.TextRecognizer
	switch cfg.OCREngine {
	case config.EnginePaddle:
		recognizer = client.NewPaddleClient(cfg.PaddleAPIURL)
	default:
		log.Println("TESSDATA_PREFIX set to:", cfg.TesseractDataPath)
		tesseractClient := client.NewTesseractClient(cfg.TesseractDataPath, cfg.OCRLanguages)
		defer tesseractClient.Close()
		recognizer = tesseractClient
	}

	// Initialize service layer
	analysisService := service.NewAnalysisService(recognizer, cfg.RecognitionTimeout)

	// Initialize handler layer
	analysisHandler := handler.NewAnalysisHandler(analysisService, settingsStore, cfg.MaxFileSize)
	settingsHandler := handler.NewSettingsHandler(settingsStore)

	// Setup Gin router
	router := gin.Default()

	// Configure max multipart memory (32 MB)
	router.MaxMultipartMemory = 32 << 20

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "Drive Decision",
			"engine":  cfg.OCREngine,
		})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		api.POST("/analyze", analysisHandler.Analyze)
		api.GET("/settings", settingsHandler.GetSettings)
		api.PUT("/settings", settingsHandler.UpdateSettings)
	}

	// Start server
	log.Printf("Starting Drive Decision service on port %s (OCR engine: %s)", cfg.ServerPort, cfg.OCREngine)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
