package usecase

import (
	"context"
	"testing"

	"github.com/claimcheck/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCategoryProducts serves a fixed product and category listing
type fakeCategoryProducts struct {
	product     *domain.Product
	productErr  error
	candidates  []domain.Product
	searchErr   error
	searchedTag string
	pageSize    int
}

func (f *fakeCategoryProducts) GetProduct(ctx context.Context, barcode string) (*domain.Product, error) {
	if f.productErr != nil {
		return nil, f.productErr
	}
	return f.product, nil
}

func (f *fakeCategoryProducts) SearchCategory(ctx context.Context, categoryTag string, pageSize int) ([]domain.Product, error) {
	f.searchedTag = categoryTag
	f.pageSize = pageSize
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.candidates, nil
}

func cola() *domain.Product {
	return &domain.Product{
		Code:            "100",
		ProductName:     "Cola",
		IngredientsText: "water, sugar, caramel colour",
		NutritionGrades: "e",
		NovaGroup:       "4",
		CategoriesTags:  []string{"en:beverages", "en:sodas", "en:colas"},
	}
}

func alternativeNames(alternatives []domain.Alternative) []string {
	names := make([]string, 0, len(alternatives))
	for _, a := range alternatives {
		names = append(names, a.ProductName)
	}
	return names
}

func TestRecommender_Recommend(t *testing.T) {
	ctx := context.Background()

	t.Run("keeps only healthier candidates in order", func(t *testing.T) {
		products := &fakeCategoryProducts{
			product: cola(),
			candidates: []domain.Product{
				{Code: "100", ProductName: "Cola", NutritionGrades: "e", NovaGroup: "4"},
				{Code: "101", ProductName: "Diet Cola", NutritionGrades: "b", NovaGroup: "4"},
				{Code: "102", ProductName: "Sparkling Water", NutritionGrades: "a", NovaGroup: "1"},
				{Code: "103", ProductName: "Cherry Cola", NutritionGrades: "e", NovaGroup: "4"},
				{Code: "104", ProductName: "Lemonade", NutritionGrades: "e", NovaGroup: "3"},
				{Code: "105", ProductName: "Mystery Drink"},
				{Code: "106", ProductName: "", NutritionGrades: "a", NovaGroup: "1"},
				{Code: "102", ProductName: "Sparkling Water Duplicate", NutritionGrades: "a", NovaGroup: "1"},
				{Code: "107", ProductName: "apple juice", NutritionGrades: "b", NovaGroup: "4"},
			},
		}
		recommender := NewRecommender(products, RecommenderConfig{})

		alternatives, err := recommender.Recommend(ctx, "100")

		require.NoError(t, err)
		assert.Equal(t, []string{"Sparkling Water", "apple juice", "Diet Cola", "Lemonade"}, alternativeNames(alternatives))
		assert.Equal(t, "en:colas", products.searchedTag)
		assert.Equal(t, 50, products.pageSize)
	})

	t.Run("limits the number of alternatives", func(t *testing.T) {
		products := &fakeCategoryProducts{
			product: cola(),
			candidates: []domain.Product{
				{Code: "1", ProductName: "A", NutritionGrades: "a"},
				{Code: "2", ProductName: "B", NutritionGrades: "b"},
				{Code: "3", ProductName: "C", NutritionGrades: "c"},
			},
		}
		recommender := NewRecommender(products, RecommenderConfig{MaxAlternatives: 2, SearchPageSize: 10})

		alternatives, err := recommender.Recommend(ctx, "100")

		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B"}, alternativeNames(alternatives))
		assert.Equal(t, 10, products.pageSize)
	})

	t.Run("fills summary defaults", func(t *testing.T) {
		products := &fakeCategoryProducts{
			product:    cola(),
			candidates: []domain.Product{{Code: "1", ProductName: "Water", NutritionGrades: "a"}},
		}

		alternatives, err := NewRecommender(products, RecommenderConfig{}).Recommend(ctx, "100")

		require.NoError(t, err)
		require.Len(t, alternatives, 1)
		assert.Equal(t, "1", alternatives[0].Code)
		assert.Equal(t, "a", alternatives[0].NutritionGrades)
		assert.Equal(t, domain.UnknownValue, alternatives[0].NovaGroup)
		assert.Equal(t, domain.UnknownCategory, alternatives[0].Categories)
	})

	t.Run("product without category has no alternatives", func(t *testing.T) {
		product := cola()
		product.CategoriesTags = nil
		products := &fakeCategoryProducts{product: product}

		alternatives, err := NewRecommender(products, RecommenderConfig{}).Recommend(ctx, "100")

		require.NoError(t, err)
		assert.NotNil(t, alternatives)
		assert.Empty(t, alternatives)
		assert.Empty(t, products.searchedTag)
	})

	t.Run("product without ingredients has no alternatives", func(t *testing.T) {
		product := cola()
		product.IngredientsText = "  "
		products := &fakeCategoryProducts{product: product}

		alternatives, err := NewRecommender(products, RecommenderConfig{}).Recommend(ctx, "100")

		require.NoError(t, err)
		assert.Empty(t, alternatives)
	})

	t.Run("nothing healthier yields an empty list", func(t *testing.T) {
		product := cola()
		product.NutritionGrades = "a"
		product.NovaGroup = "1"
		products := &fakeCategoryProducts{
			product:    product,
			candidates: []domain.Product{{Code: "1", ProductName: "B", NutritionGrades: "b"}},
		}

		alternatives, err := NewRecommender(products, RecommenderConfig{}).Recommend(ctx, "100")

		require.NoError(t, err)
		assert.NotNil(t, alternatives)
		assert.Empty(t, alternatives)
	})

	t.Run("lookup errors are returned", func(t *testing.T) {
		products := &fakeCategoryProducts{productErr: domain.ErrProductNotFound}

		_, err := NewRecommender(products, RecommenderConfig{}).Recommend(ctx, "100")

		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})

	t.Run("search errors are returned", func(t *testing.T) {
		products := &fakeCategoryProducts{product: cola(), searchErr: domain.ErrRateLimited}

		_, err := NewRecommender(products, RecommenderConfig{}).Recommend(ctx, "100")

		assert.ErrorIs(t, err, domain.ErrRateLimited)
	})
}

func TestHealthScore(t *testing.T) {
	assert.Equal(t, 1, gradeRank("A"))
	assert.Equal(t, 5, gradeRank("e"))
	assert.Equal(t, unknownGradeRank, gradeRank("not-applicable"))
	assert.Equal(t, 2, novaRank(" 2 "))
	assert.Equal(t, unknownNovaRank, novaRank(""))
	assert.Equal(t, unknownNovaRank, novaRank("7"))

	assert.True(t, healthScore{grade: 2, nova: 4}.betterThan(healthScore{grade: 3, nova: 1}))
	assert.True(t, healthScore{grade: 3, nova: 1}.betterThan(healthScore{grade: 3, nova: 2}))
	assert.False(t, healthScore{grade: 3, nova: 2}.betterThan(healthScore{grade: 3, nova: 2}))
}
