package openfoodfacts

import (
	"strings"

	"github.com/claimcheck/backend/internal/domain"
)

// MapToProduct converts an Open Food Facts product to our domain Product model
func MapToProduct(p *APIProduct, fallbackCode string) *domain.Product {
	code := strings.TrimSpace(p.Code)
	if code == "" {
		code = fallbackCode
	}

	return &domain.Product{
		Code:            code,
		ProductName:     strings.TrimSpace(p.ProductName),
		Brands:          strings.TrimSpace(p.Brands),
		IngredientsText: strings.TrimSpace(p.IngredientsText),
		NovaGroup:       string(p.NovaGroup),
		NutritionGrades: normalizeGrade(p.NutritionGrades),
		Categories:      strings.TrimSpace(p.Categories),
		CategoriesTags:  cleanTags(p.CategoriesTags),
		ImageURL:        p.ImageFrontSmall,
	}
}

// MapToProducts converts a page of search results, skipping entries without a barcode
func MapToProducts(products []APIProduct) []domain.Product {
	result := make([]domain.Product, 0, len(products))
	for i := range products {
		if strings.TrimSpace(products[i].Code) == "" {
			continue
		}
		result = append(result, *MapToProduct(&products[i], ""))
	}
	return result
}

// normalizeGrade lowercases a Nutri-Score grade and drops placeholder values
// such as "unknown" or "not-applicable"
func normalizeGrade(grade string) string {
	g := strings.ToLower(strings.TrimSpace(grade))
	switch g {
	case "a", "b", "c", "d", "e":
		return g
	default:
		return ""
	}
}

func cleanTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			cleaned = append(cleaned, tag)
		}
	}
	return cleaned
}
