package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"solar-dispatch/internal/api/handlers"
	"solar-dispatch/internal/api/middleware"
	"solar-dispatch/internal/store"
	"solar-dispatch/internal/weather"
)

func main() {
	// Get configuration from environment
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	// The store is optional: without it, only inline series requests work.
	var st *store.Store
	if path := os.Getenv("STORE_PATH"); path != "" {
		var err error
		st, err = store.Open(path)
		if err != nil {
			log.Fatalf("Failed to open store at %s: %v", path, err)
		}
		log.Printf("Using store at %s", path)
	} else {
		log.Printf("STORE_PATH not set; running without persistence")
	}

	// The weather proxy is optional too.
	var wc *weather.Client
	if key := os.Getenv("OPENWEATHER_API_KEY"); key != "" {
		wc = weather.NewClient(key, "", 10*time.Second)
	} else {
		log.Printf("OPENWEATHER_API_KEY not set; weather endpoint disabled")
	}

	// Set up Gin router
	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	// Apply middleware
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	// Initialize handlers
	simulateHandler := handlers.NewSimulateHandler(st)
	runsHandler := handlers.NewRunsHandler(st)
	tariffHandler := handlers.NewTariffHandler()
	roiHandler := handlers.NewROIHandler()
	weatherHandler := handlers.NewWeatherHandler(wc)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		api.POST("/simulate", simulateHandler.RunSimulation)
		api.GET("/simulations", runsHandler.ListRuns)
		api.GET("/simulations/:id", runsHandler.GetRun)

		api.POST("/tariff/windows", tariffHandler.Windows)
		api.POST("/roi", roiHandler.Calculate)

		api.GET("/weather/current", weatherHandler.Current)
	}

	// Start server
	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting API server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
