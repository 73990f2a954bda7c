package openfoodfacts

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapToProduct(t *testing.T) {
	t.Run("complete product", func(t *testing.T) {
		api := &APIProduct{
			Code:            "5449000000996",
			ProductName:     "  Coca-Cola ",
			Brands:          "Coca-Cola",
			IngredientsText: "Carbonated water, sugar, colour (caramel E150d), phosphoric acid, natural flavourings, caffeine",
			NovaGroup:       "4",
			NutritionGrades: "E",
			Categories:      "Beverages, Sodas",
			CategoriesTags:  []string{"en:beverages", " ", "en:sodas"},
			ImageFrontSmall: "https://images.openfoodfacts.org/coke.jpg",
		}

		product := MapToProduct(api, "ignored")

		assert.Equal(t, "5449000000996", product.Code)
		assert.Equal(t, "Coca-Cola", product.ProductName)
		assert.Equal(t, "4", product.NovaGroup)
		assert.Equal(t, "e", product.NutritionGrades)
		assert.Equal(t, []string{"en:beverages", "en:sodas"}, product.CategoriesTags)
		assert.Equal(t, "https://images.openfoodfacts.org/coke.jpg", product.ImageURL)
	})

	t.Run("missing code falls back to requested barcode", func(t *testing.T) {
		product := MapToProduct(&APIProduct{ProductName: "Water"}, "0001")

		assert.Equal(t, "0001", product.Code)
		assert.Nil(t, product.CategoriesTags)
	})
}

func TestNormalizeGrade(t *testing.T) {
	tests := map[string]string{
		"a":              "a",
		"B":              "b",
		" e ":            "e",
		"unknown":        "",
		"not-applicable": "",
		"":               "",
	}

	for input, want := range tests {
		assert.Equal(t, want, normalizeGrade(input), "normalizeGrade(%q)", input)
	}
}

func TestFlexString_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  flexString
	}{
		{"number", `{"nova_group": 3}`, "3"},
		{"string", `{"nova_group": "2"}`, "2"},
		{"null", `{"nova_group": null}`, ""},
		{"missing", `{}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p APIProduct
			require.NoError(t, json.Unmarshal([]byte(tt.input), &p))
			assert.Equal(t, tt.want, p.NovaGroup)
		})
	}

	t.Run("rejects objects", func(t *testing.T) {
		var p APIProduct
		assert.Error(t, json.Unmarshal([]byte(`{"nova_group": {"x": 1}}`), &p))
	})
}
