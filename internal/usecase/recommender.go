package usecase

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"

	"github.com/claimcheck/backend/internal/domain"
)

// Ranks used when a product lacks a grade or NOVA group; unknown sorts last
const (
	unknownGradeRank = 6
	unknownNovaRank  = 5
)

// CategoryProducts looks up products and lists products of a category
type CategoryProducts interface {
	GetProduct(ctx context.Context, barcode string) (*domain.Product, error)
	SearchCategory(ctx context.Context, categoryTag string, pageSize int) ([]domain.Product, error)
}

// RecommenderConfig holds configuration for the alternative recommender
type RecommenderConfig struct {
	MaxAlternatives int
	SearchPageSize  int
}

// Recommender suggests healthier products from the same category
type Recommender struct {
	products        CategoryProducts
	maxAlternatives int
	searchPageSize  int
}

// NewRecommender creates a recommender backed by products
func NewRecommender(products CategoryProducts, config RecommenderConfig) *Recommender {
	maxAlternatives := config.MaxAlternatives
	if maxAlternatives <= 0 {
		maxAlternatives = 5
	}
	pageSize := config.SearchPageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	return &Recommender{
		products:        products,
		maxAlternatives: maxAlternatives,
		searchPageSize:  pageSize,
	}
}

// Recommend returns healthier alternatives to the product with barcode.
// Candidates come from the product's most specific category and must beat it
// on Nutri-Score, or tie on Nutri-Score and beat it on NOVA group.
func (r *Recommender) Recommend(ctx context.Context, barcode string) ([]domain.Alternative, error) {
	product, err := r.products.GetProduct(ctx, barcode)
	if err != nil {
		return nil, fmt.Errorf("loading product for recommendations: %w", err)
	}
	if !product.HasIngredients() {
		return []domain.Alternative{}, nil
	}

	category := mostSpecificCategory(product)
	if category == "" {
		log.Printf("[RECOMMEND] Product %s has no category; skipping", product.Code)
		return []domain.Alternative{}, nil
	}

	candidates, err := r.products.SearchCategory(ctx, category, r.searchPageSize)
	if err != nil {
		return nil, err
	}

	baseline := scoreOf(product)
	healthier := make([]domain.Product, 0, len(candidates))
	seen := map[string]bool{product.Code: true}
	for _, c := range candidates {
		if seen[c.Code] || strings.TrimSpace(c.ProductName) == "" {
			continue
		}
		seen[c.Code] = true
		if scoreOf(&c).betterThan(baseline) {
			healthier = append(healthier, c)
		}
	}

	sort.SliceStable(healthier, func(i, j int) bool {
		si, sj := scoreOf(&healthier[i]), scoreOf(&healthier[j])
		if si != sj {
			return si.betterThan(sj)
		}
		return strings.ToLower(healthier[i].ProductName) < strings.ToLower(healthier[j].ProductName)
	})

	if len(healthier) > r.maxAlternatives {
		healthier = healthier[:r.maxAlternatives]
	}

	alternatives := make([]domain.Alternative, 0, len(healthier))
	for _, p := range healthier {
		alternatives = append(alternatives, toAlternative(p))
	}

	log.Printf("[RECOMMEND] %d alternatives for %s in %s", len(alternatives), product.Code, category)
	return alternatives, nil
}

// healthScore orders products by Nutri-Score grade, then NOVA group; lower is better
type healthScore struct {
	grade int
	nova  int
}

func (s healthScore) betterThan(other healthScore) bool {
	if s.grade != other.grade {
		return s.grade < other.grade
	}
	return s.nova < other.nova
}

func scoreOf(p *domain.Product) healthScore {
	return healthScore{grade: gradeRank(p.NutritionGrades), nova: novaRank(p.NovaGroup)}
}

func gradeRank(grade string) int {
	g := strings.ToLower(strings.TrimSpace(grade))
	if len(g) == 1 && g[0] >= 'a' && g[0] <= 'e' {
		return int(g[0]-'a') + 1
	}
	return unknownGradeRank
}

func novaRank(group string) int {
	n, err := strconv.Atoi(strings.TrimSpace(group))
	if err != nil || n < 1 || n > 4 {
		return unknownNovaRank
	}
	return n
}

// mostSpecificCategory returns the last category tag, which Open Food Facts
// orders from broadest to narrowest
func mostSpecificCategory(p *domain.Product) string {
	for i := len(p.CategoriesTags) - 1; i >= 0; i-- {
		if tag := strings.TrimSpace(p.CategoriesTags[i]); tag != "" {
			return tag
		}
	}
	return ""
}

func toAlternative(p domain.Product) domain.Alternative {
	summary := p.Summary()
	return domain.Alternative{
		Code:            p.Code,
		ProductName:     summary.ProductName,
		Brands:          p.Brands,
		NutritionGrades: summary.NutritionGrades,
		NovaGroup:       summary.NovaGroup,
		Categories:      summary.Categories,
		ImageURL:        p.ImageURL,
	}
}
