package domain

import (
	"bytes"
	"encoding/json"
)

// AnalyzeRequest is the form payload accepted by POST /analyze
type AnalyzeRequest struct {
	Barcode string `form:"barcode"`
	Claim   string `form:"claim"`
}

// Finding is a single raw aspect produced by a claim analyzer.
// Value is a string, bool, []string or any other printable value.
type Finding struct {
	Key   string
	Value interface{}
}

// Findings is the ordered raw output of a claim analyzer
type Findings []Finding

// Add appends an aspect to the findings
func (f *Findings) Add(key string, value interface{}) {
	*f = append(*f, Finding{Key: key, Value: value})
}

// AnalysisField is one human-readable line of a claim analysis
type AnalysisField struct {
	Title string
	Value string
}

// ClaimAnalysis is an ordered mapping of readable titles to readable values.
// It is encoded as a JSON object whose keys keep insertion order.
type ClaimAnalysis []AnalysisField

// Get returns the value stored under title
func (a ClaimAnalysis) Get(title string) (string, bool) {
	for _, field := range a {
		if field.Title == title {
			return field.Value, true
		}
	}
	return "", false
}

// MarshalJSON encodes the analysis as an object, preserving field order
func (a ClaimAnalysis) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, field := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(field.Title)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(field.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// AnalysisReport is the success envelope returned by POST /analyze
type AnalysisReport struct {
	Product       ProductSummary `json:"product"`
	ClaimAnalysis ClaimAnalysis  `json:"claim_analysis"`
	Alternatives  []Alternative  `json:"alternatives"`
}
