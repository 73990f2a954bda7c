package domain

import "strings"

// Fallback values used when Open Food Facts omits a field
const (
	UnknownValue       = "Unknown"
	UnknownProductName = "Unknown Product"
	UnknownCategory    = "Unknown Category"
)

// Product represents a food product record from Open Food Facts.
// Empty strings mean the source did not provide the field.
type Product struct {
	Code            string   `json:"code"`
	ProductName     string   `json:"product_name"`
	Brands          string   `json:"brands,omitempty"`
	IngredientsText string   `json:"ingredients_text"`
	NovaGroup       string   `json:"nova_group,omitempty"`
	NutritionGrades string   `json:"nutrition_grades,omitempty"`
	Categories      string   `json:"categories,omitempty"`
	CategoriesTags  []string `json:"categories_tags,omitempty"`
	ImageURL        string   `json:"image_url,omitempty"`
}

// HasIngredients reports whether the product carries any ingredient text
func (p *Product) HasIngredients() bool {
	return p != nil && strings.TrimSpace(p.IngredientsText) != ""
}

// Summary returns the client-facing view of the product with defaults applied
func (p *Product) Summary() ProductSummary {
	return ProductSummary{
		ProductName:     valueOr(p.ProductName, UnknownProductName),
		IngredientsText: p.IngredientsText,
		NovaGroup:       valueOr(p.NovaGroup, UnknownValue),
		NutritionGrades: valueOr(p.NutritionGrades, UnknownValue),
		Categories:      valueOr(p.Categories, UnknownCategory),
	}
}

// ProductSummary is the product section of an analysis response
type ProductSummary struct {
	ProductName     string `json:"product_name"`
	IngredientsText string `json:"ingredients_text"`
	NovaGroup       string `json:"nova_group"`
	NutritionGrades string `json:"nutrition_grades"`
	Categories      string `json:"categories"`
}

// Alternative is a substitute product suggested by the recommender
type Alternative struct {
	Code            string `json:"code"`
	ProductName     string `json:"product_name"`
	Brands          string `json:"brands,omitempty"`
	NutritionGrades string `json:"nutrition_grades"`
	NovaGroup       string `json:"nova_group"`
	Categories      string `json:"categories"`
	ImageURL        string `json:"image_url,omitempty"`
}

// SearchQuery describes an Open Food Facts category search
type SearchQuery struct {
	CategoryTag string
	PageSize    int
}

func valueOr(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
