package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/claimcheck/backend/config"
	httpDelivery "github.com/claimcheck/backend/internal/delivery/http"
	"github.com/claimcheck/backend/internal/domain"
	"github.com/claimcheck/backend/internal/infrastructure/cache"
	"github.com/claimcheck/backend/internal/infrastructure/openfoodfacts"
	"github.com/claimcheck/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting ClaimCheck Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Cache Type: %s (TTL %s)", cfg.Cache.Type, cfg.Cache.TTL)

	// Initialize infrastructure dependencies
	productCache, err := newCache(cfg.Cache)
	if err != nil {
		log.Fatalf("Failed to initialize cache: %v", err)
	}

	offClient := openfoodfacts.NewClient(openfoodfacts.ClientConfig{
		BaseURL:                  cfg.OpenFoodFacts.BaseURL,
		UserAgent:                cfg.OpenFoodFacts.UserAgent,
		Timeout:                  cfg.OpenFoodFacts.Timeout,
		ProductRequestsPerMinute: cfg.OpenFoodFacts.ProductRequestsPerMinute,
		SearchRequestsPerMinute:  cfg.OpenFoodFacts.SearchRequestsPerMinute,
	})

	debug := cfg.Server.Environment == "development"
	if debug {
		offClient.SetDebug(true)
		log.Printf("Open Food Facts client debug mode enabled")
	}
	log.Printf("Open Food Facts API configured: %s", cfg.OpenFoodFacts.BaseURL)

	// Initialize usecase layer
	productService := usecase.NewProductService(
		productCache,
		offClient,
		usecase.ProductServiceConfig{CacheTTL: cfg.Cache.TTL},
	)
	claimAnalyzer := usecase.NewClaimAnalyzer(usecase.ClaimAnalyzerConfig{
		EnableDebugLogging: debug,
	})
	recommender := usecase.NewRecommender(productService, usecase.RecommenderConfig{
		MaxAlternatives: cfg.Recommendation.MaxAlternatives,
		SearchPageSize:  cfg.Recommendation.SearchPageSize,
	})
	analysisService := usecase.NewAnalysisService(productService, claimAnalyzer, recommender)

	log.Printf("Recommendations: max=%d, page size=%d",
		cfg.Recommendation.MaxAlternatives, cfg.Recommendation.SearchPageSize)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(analysisService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// newCache builds the cache repository selected by configuration.
// Type "none" returns a nil repository so every lookup reaches Open Food Facts.
func newCache(cfg config.CacheConfig) (domain.CacheRepository, error) {
	switch cfg.Type {
	case "redis":
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		redisCache, err := cache.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		return redisCache, nil
	case "memory":
		return cache.NewMemoryCache(), nil
	default:
		return nil, nil
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
