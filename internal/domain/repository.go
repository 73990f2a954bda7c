package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// ProductClient defines the interface for interacting with the Open Food Facts API
type ProductClient interface {
	GetProduct(ctx context.Context, barcode string) (*Product, error)
	SearchProducts(ctx context.Context, query SearchQuery) ([]Product, error)
}

// ProductLookup resolves a barcode to a product record
type ProductLookup interface {
	GetProduct(ctx context.Context, barcode string) (*Product, error)
}

// ClaimAnalyzer judges a marketing claim against an ingredient list
type ClaimAnalyzer interface {
	Analyze(ctx context.Context, claim, ingredients string) (Findings, error)
}

// AlternativeRecommender suggests healthier substitutes for a product
type AlternativeRecommender interface {
	Recommend(ctx context.Context, barcode string) ([]Alternative, error)
}
