package openfoodfacts

import (
	"bytes"
	"encoding/json"
	"strings"
)

// productFields lists the fields requested from Open Food Facts for every product
var productFields = []string{
	"code",
	"product_name",
	"brands",
	"ingredients_text",
	"nova_group",
	"nutrition_grades",
	"categories",
	"categories_tags",
	"image_front_small_url",
}

// APIProduct is a product as returned by the Open Food Facts v2 API
type APIProduct struct {
	Code            string     `json:"code"`
	ProductName     string     `json:"product_name"`
	Brands          string     `json:"brands"`
	IngredientsText string     `json:"ingredients_text"`
	NovaGroup       flexString `json:"nova_group"`
	NutritionGrades string     `json:"nutrition_grades"`
	Categories      string     `json:"categories"`
	CategoriesTags  []string   `json:"categories_tags"`
	ImageFrontSmall string     `json:"image_front_small_url"`
}

// ProductResponse is the envelope of GET /api/v2/product/{barcode}
type ProductResponse struct {
	Code          string      `json:"code"`
	Status        int         `json:"status"`
	StatusVerbose string      `json:"status_verbose"`
	Product       *APIProduct `json:"product"`
}

// SearchResponse is the envelope of GET /api/v2/search
type SearchResponse struct {
	Count    int          `json:"count"`
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
	Products []APIProduct `json:"products"`
}

// flexString decodes a JSON string or number into text.
// Open Food Facts sends nova_group as a number on some products and a string on others.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}
