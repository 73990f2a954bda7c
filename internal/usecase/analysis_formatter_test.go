package usecase

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/claimcheck/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func TestFormatKey(t *testing.T) {
	caser := cases.Title(language.English)

	tests := []struct {
		key  string
		want string
	}{
		{"contains_additives", "Contains Additives"},
		{"is_supported", "Is Supported"},
		{"verdict", "Verdict"},
		{"MATCHED_keywords", "Matched Keywords"},
		{"already Titled", "Already Titled"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatKey(caser, tt.key))
		})
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  string
	}{
		{"true", true, "Yes"},
		{"false", false, "No"},
		{"string list", []string{"sugar", "salt"}, "sugar, salt"},
		{"empty list", []string{}, ""},
		{"generic list", []interface{}{"sugar", true, 3}, "sugar, Yes, 3"},
		{"string", "High", "High"},
		{"integer", 42, "42"},
		{"float", 0.5, "0.5"},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatValue(tt.value))
		})
	}
}

func TestFormatFindings(t *testing.T) {
	findings := domain.Findings{
		{Key: "is_supported", Value: false},
		{Key: "matched_keywords", Value: []string{"no added sugar"}},
		{Key: "contains_additives", Value: true},
	}

	analysis := FormatFindings(findings)

	require.Len(t, analysis, 3)
	assert.Equal(t, domain.AnalysisField{Title: "Is Supported", Value: "No"}, analysis[0])
	assert.Equal(t, domain.AnalysisField{Title: "Matched Keywords", Value: "no added sugar"}, analysis[1])
	assert.Equal(t, domain.AnalysisField{Title: "Contains Additives", Value: "Yes"}, analysis[2])

	// Raw findings are left untouched
	assert.Equal(t, "is_supported", findings[0].Key)
	assert.Equal(t, false, findings[0].Value)
}

func TestErrorAnalysis(t *testing.T) {
	analysis := ErrorAnalysis(errors.New("boom"))

	status, ok := analysis.Get("Analysis Status")
	require.True(t, ok)
	assert.Equal(t, "Error", status)

	details, _ := analysis.Get("Details")
	assert.Equal(t, "Failed to analyze claim. Please try again.", details)

	technical, _ := analysis.Get("Technical Details")
	assert.Equal(t, "boom", technical)

	raw, err := json.Marshal(analysis)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"Analysis Status": "Error",
		"Details": "Failed to analyze claim. Please try again.",
		"Technical Details": "boom"
	}`, string(raw))
}
