package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gamebites/backend/config"
	httpDelivery "github.com/gamebites/backend/internal/delivery/http"
	"github.com/gamebites/backend/internal/infrastructure/catalog"
	"github.com/gamebites/backend/internal/infrastructure/prefs"
	"github.com/gamebites/backend/internal/infrastructure/rates"
	"github.com/gamebites/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting GameBites Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Catalog: %s", cfg.Catalog.BaseURL)
	log.Printf("Rates: %s (snapshot TTL %s)", cfg.Rates.BaseURL, cfg.Rates.SnapshotTTL)

	// Initialize infrastructure dependencies
	catalogClient := catalog.NewClient(cfg.Catalog.BaseURL)
	rateClient := rates.NewClient(cfg.Rates.BaseURL, cfg.Rates.SnapshotTTL)
	store := prefs.NewMemoryStore()

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		catalogClient.SetDebug(true)
		rateClient.SetDebug(true)
		log.Printf("Client debug mode enabled")
	}

	// Initialize usecase layer
	scanService := usecase.NewScanService(
		catalogClient,
		rateClient,
		store,
		usecase.ScanServiceConfig{
			DebounceDelay: cfg.Scan.DebounceDelay,
		},
	)

	// Warm the catalog snapshot. A failure is logged, not fatal: annotate
	// requests retry the fetch and answer 503 until it succeeds.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := scanService.Init(ctx); err != nil {
		log.Printf("WARNING: catalog warm-up failed, no badges until it recovers: %v", err)
	}
	cancel()

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(scanService, store)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
