package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/claimcheck/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLookup struct {
	product *domain.Product
	err     error
}

func (s *stubLookup) GetProduct(ctx context.Context, barcode string) (*domain.Product, error) {
	return s.product, s.err
}

type stubAnalyzer struct {
	findings domain.Findings
	err      error
	panics   bool
	calls    int
}

func (s *stubAnalyzer) Analyze(ctx context.Context, claim, ingredients string) (domain.Findings, error) {
	s.calls++
	if s.panics {
		panic("analyzer exploded")
	}
	return s.findings, s.err
}

type stubRecommender struct {
	alternatives []domain.Alternative
	err          error
	panics       bool
}

func (s *stubRecommender) Recommend(ctx context.Context, barcode string) ([]domain.Alternative, error) {
	if s.panics {
		panic("recommender exploded")
	}
	return s.alternatives, s.err
}

func sodaProduct() *domain.Product {
	return &domain.Product{
		Code:            "0001",
		ProductName:     "X",
		IngredientsText: "sugar, water",
	}
}

func TestAnalysisService_Analyze(t *testing.T) {
	ctx := context.Background()
	request := domain.AnalyzeRequest{Barcode: "0001", Claim: "no added sugar"}

	t.Run("product not found", func(t *testing.T) {
		analyzer := &stubAnalyzer{}
		svc := NewAnalysisService(&stubLookup{err: domain.ErrProductNotFound}, analyzer, &stubRecommender{})

		report, err := svc.Analyze(ctx, request)

		assert.ErrorIs(t, err, domain.ErrProductNotFound)
		assert.Nil(t, report)
		assert.Equal(t, 0, analyzer.calls)
	})

	t.Run("nil product is not found", func(t *testing.T) {
		svc := NewAnalysisService(&stubLookup{}, &stubAnalyzer{}, nil)

		_, err := svc.Analyze(ctx, request)

		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})

	t.Run("lookup failures are returned", func(t *testing.T) {
		lookupErr := errors.New("connection refused")
		svc := NewAnalysisService(&stubLookup{err: lookupErr}, &stubAnalyzer{}, nil)

		_, err := svc.Analyze(ctx, request)

		assert.ErrorIs(t, err, lookupErr)
	})

	t.Run("product without ingredients", func(t *testing.T) {
		product := sodaProduct()
		product.IngredientsText = "   "
		analyzer := &stubAnalyzer{}
		svc := NewAnalysisService(&stubLookup{product: product}, analyzer, nil)

		_, err := svc.Analyze(ctx, request)

		assert.ErrorIs(t, err, domain.ErrNoIngredients)
		assert.Equal(t, 0, analyzer.calls)
	})

	t.Run("analyzer error yields error analysis", func(t *testing.T) {
		analyzer := &stubAnalyzer{err: errors.New("model unavailable")}
		svc := NewAnalysisService(&stubLookup{product: sodaProduct()}, analyzer, &stubRecommender{})

		report, err := svc.Analyze(ctx, request)

		require.NoError(t, err)
		status, _ := report.ClaimAnalysis.Get(AnalysisStatusTitle)
		assert.Equal(t, "Error", status)
		technical, _ := report.ClaimAnalysis.Get(AnalysisTechnicalTitle)
		assert.Equal(t, "model unavailable", technical)
	})

	t.Run("analyzer panic yields error analysis", func(t *testing.T) {
		svc := NewAnalysisService(&stubLookup{product: sodaProduct()}, &stubAnalyzer{panics: true}, &stubRecommender{})

		report, err := svc.Analyze(ctx, request)

		require.NoError(t, err)
		status, _ := report.ClaimAnalysis.Get(AnalysisStatusTitle)
		assert.Equal(t, "Error", status)
		technical, _ := report.ClaimAnalysis.Get(AnalysisTechnicalTitle)
		assert.Contains(t, technical, "analyzer exploded")
	})

	t.Run("recommender error yields empty alternatives", func(t *testing.T) {
		svc := NewAnalysisService(&stubLookup{product: sodaProduct()}, NewClaimAnalyzer(ClaimAnalyzerConfig{}), &stubRecommender{err: domain.ErrRateLimited})

		report, err := svc.Analyze(ctx, request)

		require.NoError(t, err)
		assert.NotNil(t, report.Alternatives)
		assert.Empty(t, report.Alternatives)
	})

	t.Run("recommender panic yields empty alternatives", func(t *testing.T) {
		svc := NewAnalysisService(&stubLookup{product: sodaProduct()}, NewClaimAnalyzer(ClaimAnalyzerConfig{}), &stubRecommender{panics: true})

		report, err := svc.Analyze(ctx, request)

		require.NoError(t, err)
		assert.NotNil(t, report.Alternatives)
		assert.Empty(t, report.Alternatives)
	})

	t.Run("passes alternatives through", func(t *testing.T) {
		alternatives := []domain.Alternative{{Code: "0002", ProductName: "Water"}}
		svc := NewAnalysisService(&stubLookup{product: sodaProduct()}, NewClaimAnalyzer(ClaimAnalyzerConfig{}), &stubRecommender{alternatives: alternatives})

		report, err := svc.Analyze(ctx, request)

		require.NoError(t, err)
		assert.Equal(t, alternatives, report.Alternatives)
	})

	t.Run("builds the full report", func(t *testing.T) {
		svc := NewAnalysisService(&stubLookup{product: sodaProduct()}, NewClaimAnalyzer(ClaimAnalyzerConfig{}), nil)

		report, err := svc.Analyze(ctx, request)

		require.NoError(t, err)
		assert.Equal(t, "X", report.Product.ProductName)
		assert.Equal(t, "sugar, water", report.Product.IngredientsText)
		assert.Equal(t, domain.UnknownValue, report.Product.NovaGroup)
		assert.Equal(t, domain.UnknownValue, report.Product.NutritionGrades)
		assert.Equal(t, domain.UnknownCategory, report.Product.Categories)

		require.NotEmpty(t, report.ClaimAnalysis)
		claim, ok := report.ClaimAnalysis.Get("Claim")
		require.True(t, ok)
		assert.Equal(t, "no added sugar", claim)
		misleading, _ := report.ClaimAnalysis.Get("Is Misleading")
		assert.Equal(t, "Yes", misleading)
		conflicts, _ := report.ClaimAnalysis.Get("Conflicting Ingredients")
		assert.Equal(t, "sugar", conflicts)

		assert.NotNil(t, report.Alternatives)
		assert.Empty(t, report.Alternatives)
	})

	t.Run("unknown product name falls back", func(t *testing.T) {
		product := sodaProduct()
		product.ProductName = ""
		svc := NewAnalysisService(&stubLookup{product: product}, NewClaimAnalyzer(ClaimAnalyzerConfig{}), nil)

		report, err := svc.Analyze(ctx, request)

		require.NoError(t, err)
		assert.Equal(t, domain.UnknownProductName, report.Product.ProductName)
	})
}

func TestRecommendationResult_OrEmpty(t *testing.T) {
	assert.Equal(t, []domain.Alternative{}, RecommendationResult{}.OrEmpty())
	assert.Equal(t, []domain.Alternative{}, RecommendationResult{
		Alternatives: []domain.Alternative{{Code: "1"}},
		Err:          errors.New("boom"),
	}.OrEmpty())
	assert.Len(t, RecommendationResult{Alternatives: []domain.Alternative{{Code: "1"}}}.OrEmpty(), 1)
}
