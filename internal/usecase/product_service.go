package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/claimcheck/backend/internal/domain"
)

var (
	barcodeSeparatorRegex = regexp.MustCompile(`[\s\-]+`)
	barcodeDigitsRegex    = regexp.MustCompile(`^[0-9]{1,32}$`)
)

// ProductServiceConfig holds configuration for the product service
type ProductServiceConfig struct {
	CacheTTL time.Duration
}

// ProductService looks up Open Food Facts products with caching
type ProductService struct {
	cache    domain.CacheRepository
	client   domain.ProductClient
	cacheTTL time.Duration
}

// NewProductService creates a new product service with dependencies
func NewProductService(
	cache domain.CacheRepository,
	client domain.ProductClient,
	config ProductServiceConfig,
) *ProductService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}

	return &ProductService{
		cache:    cache,
		client:   client,
		cacheTTL: cacheTTL,
	}
}

// GetProduct resolves a barcode to a product.
// Flow: normalize barcode -> check cache -> Open Food Facts -> cache -> return
func (s *ProductService) GetProduct(ctx context.Context, barcode string) (*domain.Product, error) {
	normalized, ok := NormalizeBarcode(barcode)
	if !ok {
		return nil, domain.ErrProductNotFound
	}

	cacheKey := productCacheKey(normalized)

	var cached domain.Product
	if s.getFromCache(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	product, err := s.client.GetProduct(ctx, normalized)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("looking up barcode %s: %w", normalized, err)
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	s.setInCache(ctx, cacheKey, product)
	return product, nil
}

// SearchCategory lists products in an Open Food Facts category with caching
func (s *ProductService) SearchCategory(ctx context.Context, categoryTag string, pageSize int) ([]domain.Product, error) {
	cacheKey := fmt.Sprintf("search:%s:%d", strings.ToLower(categoryTag), pageSize)

	var cached []domain.Product
	if s.getFromCache(ctx, cacheKey, &cached) {
		return cached, nil
	}

	products, err := s.client.SearchProducts(ctx, domain.SearchQuery{
		CategoryTag: categoryTag,
		PageSize:    pageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("searching category %s: %w", categoryTag, err)
	}

	s.setInCache(ctx, cacheKey, products)
	return products, nil
}

// NormalizeBarcode strips spaces and dashes and checks the result is numeric
func NormalizeBarcode(barcode string) (string, bool) {
	normalized := barcodeSeparatorRegex.ReplaceAllString(strings.TrimSpace(barcode), "")
	if !barcodeDigitsRegex.MatchString(normalized) {
		return "", false
	}
	return normalized, true
}

func productCacheKey(barcode string) string {
	return "product:" + barcode
}

// getFromCache decodes a cached value into out. Cached values come back in
// their generic JSON form, so they are re-encoded into the target type.
func (s *ProductService) getFromCache(ctx context.Context, key string, out interface{}) bool {
	if s.cache == nil {
		return false
	}

	value, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			log.Printf("[CACHE] Get %s failed: %v", key, err)
		}
		return false
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		log.Printf("[CACHE] Discarding undecodable entry %s: %v", key, err)
		return false
	}
	return true
}

// setInCache stores a value; failures are logged and otherwise ignored
func (s *ProductService) setInCache(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.cacheTTL); err != nil {
		log.Printf("[CACHE] Set %s failed: %v", key, err)
	}
}
