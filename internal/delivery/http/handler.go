package http

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/claimcheck/backend/internal/domain"
	"github.com/gin-gonic/gin"
)

// Client-facing error messages
const (
	productNotFoundMessage = "Product not found. Please check the barcode and try again."
	noIngredientsMessage   = "No ingredients found for this product."
	unexpectedErrorMessage = "An unexpected error occurred while analyzing the product."
	notFoundMessage        = "Not found"
	internalErrorMessage   = "Internal server error"
	rateLimitedMessage     = "Too many requests. Please slow down."
)

// ClaimAnalysisService produces an analysis report for a barcode and claim
type ClaimAnalysisService interface {
	Analyze(ctx context.Context, request domain.AnalyzeRequest) (*domain.AnalysisReport, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	analysisService ClaimAnalysisService
}

// NewHandler creates a new HTTP handler
func NewHandler(analysisService ClaimAnalysisService) *Handler {
	return &Handler{
		analysisService: analysisService,
	}
}

// Home renders the landing page
func (h *Handler) Home(c *gin.Context) {
	c.HTML(http.StatusOK, indexTemplateName, gin.H{
		"title": "ClaimCheck",
	})
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
	})
}

// Analyze checks a marketing claim against a product's ingredients.
// Form fields: barcode, claim.
func (h *Handler) Analyze(c *gin.Context) {
	requestID := c.GetString(requestIDKey)

	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ANALYZE] request=%s unexpected panic: %v", requestID, r)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":   unexpectedErrorMessage,
				"details": fmt.Sprint(r),
			})
		}
	}()

	request := domain.AnalyzeRequest{
		Barcode: c.PostForm("barcode"),
		Claim:   c.PostForm("claim"),
	}

	report, err := h.analysisService.Analyze(c.Request.Context(), request)
	if err != nil {
		status, body := analysisErrorResponse(err)
		log.Printf("[ANALYZE] request=%s failed with %d: %v", requestID, status, err)
		c.JSON(status, body)
		return
	}

	log.Printf("[ANALYZE] request=%s completed with %d alternatives", requestID, len(report.Alternatives))
	c.JSON(http.StatusOK, report)
}

// NotFound answers unknown routes
func (h *Handler) NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": notFoundMessage})
}

// analysisErrorResponse maps an analysis error to its status code and envelope
func analysisErrorResponse(err error) (int, gin.H) {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, gin.H{"error": productNotFoundMessage}
	case errors.Is(err, domain.ErrNoIngredients):
		return http.StatusBadRequest, gin.H{"error": noIngredientsMessage}
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, gin.H{"error": rateLimitedMessage}
	default:
		return http.StatusInternalServerError, gin.H{
			"error":   unexpectedErrorMessage,
			"details": err.Error(),
		}
	}
}
