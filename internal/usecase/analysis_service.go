package usecase

import (
	"context"
	"fmt"
	"log"

	"github.com/claimcheck/backend/internal/domain"
)

// ClaimResult is the outcome of one claim analyzer call
type ClaimResult struct {
	Findings domain.Findings
	Err      error
}

// Analysis returns the formatted findings, or the error-shaped analysis on failure
func (r ClaimResult) Analysis() domain.ClaimAnalysis {
	if r.Err != nil {
		return ErrorAnalysis(r.Err)
	}
	return FormatFindings(r.Findings)
}

// RecommendationResult is the outcome of one recommender call
type RecommendationResult struct {
	Alternatives []domain.Alternative
	Err          error
}

// OrEmpty returns the alternatives, or an empty list on failure or no results
func (r RecommendationResult) OrEmpty() []domain.Alternative {
	if r.Err != nil || len(r.Alternatives) == 0 {
		return []domain.Alternative{}
	}
	return r.Alternatives
}

// AnalysisService runs a claim analysis for a product barcode
type AnalysisService struct {
	products    domain.ProductLookup
	analyzer    domain.ClaimAnalyzer
	recommender domain.AlternativeRecommender
}

// NewAnalysisService creates a new analysis service with dependencies
func NewAnalysisService(
	products domain.ProductLookup,
	analyzer domain.ClaimAnalyzer,
	recommender domain.AlternativeRecommender,
) *AnalysisService {
	return &AnalysisService{
		products:    products,
		analyzer:    analyzer,
		recommender: recommender,
	}
}

// Analyze looks up the product, checks the claim and collects alternatives.
// Flow: lookup -> require ingredients -> analyze claim -> recommend -> report
//
// Only product lookup and ingredient validation abort the request; claim
// analysis and recommendation failures fall back to documented defaults.
func (s *AnalysisService) Analyze(ctx context.Context, request domain.AnalyzeRequest) (*domain.AnalysisReport, error) {
	log.Printf("[ANALYZE] Barcode: %q, Claim: %q", request.Barcode, request.Claim)

	product, err := s.products.GetProduct(ctx, request.Barcode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	if !product.HasIngredients() {
		return nil, domain.ErrNoIngredients
	}

	claimResult := s.analyzeClaim(ctx, request.Claim, product.IngredientsText)
	if claimResult.Err != nil {
		log.Printf("[ANALYZE] Claim analysis failed: %v", claimResult.Err)
	}

	recommendation := s.recommend(ctx, request.Barcode)
	if recommendation.Err != nil {
		log.Printf("[ANALYZE] Recommendations failed: %v", recommendation.Err)
	} else if len(recommendation.Alternatives) == 0 {
		log.Printf("[ANALYZE] No healthier alternatives found")
	}

	return &domain.AnalysisReport{
		Product:       product.Summary(),
		ClaimAnalysis: claimResult.Analysis(),
		Alternatives:  recommendation.OrEmpty(),
	}, nil
}

// analyzeClaim calls the analyzer, converting a panic into a failed result
func (s *AnalysisService) analyzeClaim(ctx context.Context, claim, ingredients string) (result ClaimResult) {
	defer func() {
		if r := recover(); r != nil {
			result = ClaimResult{Err: fmt.Errorf("claim analyzer panicked: %v", r)}
		}
	}()

	findings, err := s.analyzer.Analyze(ctx, claim, ingredients)
	return ClaimResult{Findings: findings, Err: err}
}

// recommend calls the recommender, converting a panic into a failed result
func (s *AnalysisService) recommend(ctx context.Context, barcode string) (result RecommendationResult) {
	if s.recommender == nil {
		return RecommendationResult{}
	}

	defer func() {
		if r := recover(); r != nil {
			result = RecommendationResult{Err: fmt.Errorf("recommender panicked: %v", r)}
		}
	}()

	alternatives, err := s.recommender.Recommend(ctx, barcode)
	return RecommendationResult{Alternatives: alternatives, Err: err}
}
