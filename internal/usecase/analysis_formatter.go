package usecase

import (
	"fmt"
	"strings"

	"github.com/claimcheck/backend/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Error-shaped analysis returned when the analyzer fails
const (
	AnalysisStatusTitle    = "Analysis Status"
	AnalysisDetailsTitle   = "Details"
	AnalysisTechnicalTitle = "Technical Details"
	analysisFailedMessage  = "Failed to analyze claim. Please try again."
)

// FormatFindings builds a readable analysis from raw findings without
// modifying them. Keys become title-cased words; values become strings.
func FormatFindings(findings domain.Findings) domain.ClaimAnalysis {
	// cases.Caser keeps state between calls and must not be shared across goroutines
	caser := cases.Title(language.English)

	analysis := make(domain.ClaimAnalysis, 0, len(findings))
	for _, f := range findings {
		analysis = append(analysis, domain.AnalysisField{
			Title: FormatKey(caser, f.Key),
			Value: FormatValue(f.Value),
		})
	}
	return analysis
}

// FormatKey turns "contains_additives" into "Contains Additives"
func FormatKey(caser cases.Caser, key string) string {
	return caser.String(strings.ReplaceAll(key, "_", " "))
}

// FormatValue renders a finding value: lists are comma-joined, booleans are Yes/No
func FormatValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "Yes"
		}
		return "No"
	case []string:
		return strings.Join(v, ", ")
	case []interface{}:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = FormatValue(item)
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(v)
	}
}

// ErrorAnalysis is the analysis reported when the claim analyzer fails
func ErrorAnalysis(err error) domain.ClaimAnalysis {
	technical := "unknown error"
	if err != nil {
		technical = err.Error()
	}
	return domain.ClaimAnalysis{
		{Title: AnalysisStatusTitle, Value: "Error"},
		{Title: AnalysisDetailsTitle, Value: analysisFailedMessage},
		{Title: AnalysisTechnicalTitle, Value: technical},
	}
}
