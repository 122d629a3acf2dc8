package main

import (
	"fmt"
	"log"
	"os"

	"github.com/smartcart/backend/config"
	httpDelivery "github.com/smartcart/backend/internal/delivery/http"
	"github.com/smartcart/backend/internal/domain"
	"github.com/smartcart/backend/internal/infrastructure/cache"
	"github.com/smartcart/backend/internal/infrastructure/catalog"
	"github.com/smartcart/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting SmartCart Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache()
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	var catalogClient domain.CatalogClient
	if cfg.Catalog.BaseURL != "" {
		client := catalog.NewClient(cfg.Catalog.APIKey, cfg.Catalog.BaseURL)
		if cfg.Server.Environment == "development" {
			client.SetDebug(true)
		}
		catalogClient = client
		log.Printf("Catalog feed configured: %s", cfg.Catalog.BaseURL)
	} else {
		log.Printf("No catalog feed configured; requests must supply their own offers")
	}

	// Initialize usecase layer
	recommender := usecase.NewRecommendationService(usecase.RecommendationConfig{
		PairStoreLimit:     cfg.Search.PairStoreLimit,
		TripleStoreLimit:   cfg.Search.TripleStoreLimit,
		MaxRecommendations: cfg.Search.MaxRecommendations,
		EnableDebugLogging: cfg.Matching.EnableDebugLogging,
	})

	resolver := usecase.NewListResolver(usecase.ResolverConfig{
		MinConfidence:       cfg.Matching.MinConfidence,
		EnableFuzzyMatching: cfg.Matching.EnableFuzzyMatching,
		EnableDebugLogging:  cfg.Matching.EnableDebugLogging,
	})

	log.Printf("Search limits: pairs=%d, triples=%d, recommendations=%d",
		cfg.Search.PairStoreLimit, cfg.Search.TripleStoreLimit, cfg.Search.MaxRecommendations)
	log.Printf("Matching: confidence=%.0f%%, fuzzy=%v",
		cfg.Matching.MinConfidence, cfg.Matching.EnableFuzzyMatching)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(recommender, resolver, catalogClient, memoryCache, cfg.Cache.TTL)

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
