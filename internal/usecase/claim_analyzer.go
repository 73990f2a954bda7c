package usecase

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/claimcheck/backend/internal/domain"
)

// Compiled regex patterns for claim and ingredient normalization
var (
	separatorRegex      = regexp.MustCompile(`[\-_/]+`)
	nonWordRegex        = regexp.MustCompile(`[^\p{L}\p{N}\s]+`)
	multipleSpacesRegex = regexp.MustCompile(`\s+`)

	// Splits an ingredient list into individual ingredient phrases
	ingredientSplitRegex = regexp.MustCompile(`[,;:()\[\]{}*]|\.\s|\.$|\s+and\s+|\s*&\s*`)
)

const generalCaveat = "Based on the ingredient list only; quantities and processing are not assessed"

// ClaimAnalyzerConfig holds configuration for the claim analyzer
type ClaimAnalyzerConfig struct {
	EnableDebugLogging bool
}

// ClaimAnalyzer checks marketing claims against ingredient lists using a
// fixed keyword rule table
type ClaimAnalyzer struct {
	rules              []claimRule
	enableDebugLogging bool
}

// NewClaimAnalyzer creates a claim analyzer with the built-in rules
func NewClaimAnalyzer(config ClaimAnalyzerConfig) *ClaimAnalyzer {
	return &ClaimAnalyzer{
		rules:              claimRules,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// ingredient is one entry of an ingredient list
type ingredient struct {
	original   string
	normalized string
}

// ruleMatch records a rule whose phrase was found in the claim
type ruleMatch struct {
	rule   *claimRule
	phrase string
	start  int
	end    int
}

// ruleOutcome is the evaluation of one matched rule against the ingredients
type ruleOutcome struct {
	match      ruleMatch
	found      []string // ingredient phrases matching the rule terms
	misleading bool
	verifiable bool
	caveats    []string
}

// Analyze judges claim against ingredients and returns the raw findings
func (a *ClaimAnalyzer) Analyze(ctx context.Context, claim, ingredients string) (domain.Findings, error) {
	if strings.TrimSpace(claim) == "" {
		return nil, domain.ErrEmptyClaim
	}
	if strings.TrimSpace(ingredients) == "" {
		return nil, domain.ErrNoIngredients
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	normalizedClaim := normalizeText(claim)
	items := splitIngredients(ingredients)
	if len(items) == 0 {
		return nil, domain.ErrNoIngredients
	}

	matches := a.matchRules(normalizedClaim)
	outcomes := make([]ruleOutcome, 0, len(matches))
	for _, m := range matches {
		outcome := evaluateRule(m, items, ingredients)
		if a.enableDebugLogging {
			log.Printf("[CLAIM] Rule %q via %q: found=%v misleading=%v",
				m.rule.category, m.phrase, outcome.found, outcome.misleading)
		}
		outcomes = append(outcomes, outcome)
	}

	return buildFindings(strings.TrimSpace(claim), outcomes, len(items)), nil
}

// matchRules finds rules whose phrases occur in the claim. A phrase lying
// strictly inside a longer phrase matched by another rule is dropped, so
// "no artificial sweeteners" does not also count as "no artificial".
func (a *ClaimAnalyzer) matchRules(normalizedClaim string) []ruleMatch {
	padded := " " + normalizedClaim + " "

	var candidates []ruleMatch
	for i := range a.rules {
		rule := &a.rules[i]
		var best *ruleMatch
		for _, phrase := range rule.phrases {
			idx := strings.Index(padded, " "+phrase+" ")
			if idx < 0 {
				continue
			}
			m := ruleMatch{rule: rule, phrase: phrase, start: idx, end: idx + len(phrase) + 1}
			if best == nil || m.end-m.start > best.end-best.start {
				best = &m
			}
		}
		if best != nil {
			candidates = append(candidates, *best)
		}
	}

	matches := make([]ruleMatch, 0, len(candidates))
	for i, m := range candidates {
		shadowed := false
		for j, other := range candidates {
			if i == j {
				continue
			}
			inside := other.start <= m.start && m.end <= other.end
			longer := other.end-other.start > m.end-m.start
			if inside && longer {
				shadowed = true
				break
			}
		}
		if !shadowed {
			matches = append(matches, m)
		}
	}
	return matches
}

// evaluateRule checks one matched rule against the ingredient list
func evaluateRule(m ruleMatch, items []ingredient, rawIngredients string) ruleOutcome {
	rule := m.rule
	outcome := ruleOutcome{match: m}

	for _, item := range items {
		text := item.normalized
		if rule.exclusions != nil {
			text = rule.exclusions.ReplaceAllString(text, " ")
		}
		if rule.terms.MatchString(text) {
			outcome.found = append(outcome.found, item.original)
		}
	}

	switch rule.kind {
	case kindFreeFrom:
		outcome.verifiable = true
		outcome.misleading = len(outcome.found) > 0
	case kindContains:
		outcome.verifiable = true
		outcome.misleading = len(outcome.found) == 0
	case kindUnverifiable:
		outcome.verifiable = false
	}

	if rule.caveat != "" {
		outcome.caveats = append(outcome.caveats, rule.caveat)
	}
	normalizedAll := normalizeText(rawIngredients)
	for _, cond := range rule.conditions {
		if cond.pattern.MatchString(normalizedAll) {
			outcome.caveats = append(outcome.caveats, cond.text)
		}
	}

	return outcome
}

// buildFindings aggregates rule outcomes into the ordered analysis aspects
func buildFindings(claim string, outcomes []ruleOutcome, ingredientCount int) domain.Findings {
	var (
		categories  []string
		keywords    []string
		conflicts   []string
		caveats     []string
		misleading  bool
		verifiable  bool
		conflictSet = map[string]bool{}
	)

	for _, o := range outcomes {
		categories = appendUnique(categories, o.match.rule.category)
		keywords = appendUnique(keywords, o.match.phrase)
		for _, c := range o.caveats {
			caveats = appendUnique(caveats, c)
		}

		if o.verifiable {
			verifiable = true
		}
		if o.misleading {
			misleading = true
		}

		// Free-from and unverifiable rules report what was found; contains
		// rules report nothing when their required ingredient is missing.
		if o.match.rule.kind != kindContains {
			for _, f := range o.found {
				if !conflictSet[f] {
					conflictSet[f] = true
					conflicts = append(conflicts, f)
				}
			}
		}
	}
	caveats = append(caveats, generalCaveat)

	recognized := len(outcomes) > 0
	supported := recognized && verifiable && !misleading

	if !recognized {
		categories = []string{"Unrecognized"}
	}

	var findings domain.Findings
	findings.Add("claim", claim)
	findings.Add("claim_categories", categories)
	findings.Add("recognized_claim", recognized)
	findings.Add("matched_keywords", keywords)
	findings.Add("conflicting_ingredients", conflicts)
	findings.Add("is_misleading", misleading)
	findings.Add("is_supported", supported)
	findings.Add("confidence", confidenceLevel(recognized, verifiable, misleading, outcomes, ingredientCount))
	findings.Add("caveats", caveats)
	findings.Add("verdict", verdict(claim, recognized, verifiable, misleading, conflicts, outcomes))
	return findings
}

func confidenceLevel(recognized, verifiable, misleading bool, outcomes []ruleOutcome, ingredientCount int) string {
	if !recognized || !verifiable {
		return "Low"
	}
	if misleading {
		evidence := 0
		for _, o := range outcomes {
			if !o.misleading {
				continue
			}
			if o.match.rule.kind == kindContains {
				evidence++
			} else {
				evidence += len(o.found)
			}
		}
		if evidence >= 2 {
			return "High"
		}
		return "Medium"
	}
	if ingredientCount >= 3 {
		return "High"
	}
	return "Medium"
}

func verdict(claim string, recognized, verifiable, misleading bool, conflicts []string, outcomes []ruleOutcome) string {
	switch {
	case !recognized:
		return "Claim not recognized; it cannot be checked against the ingredients"
	case misleading && len(conflicts) > 0:
		return fmt.Sprintf("Likely misleading: %s contradicts the claim %q", summarize(conflicts, 3), claim)
	case misleading:
		var missing []string
		for _, o := range outcomes {
			if o.misleading && o.match.rule.kind == kindContains {
				missing = append(missing, strings.ToLower(o.match.rule.category))
			}
		}
		return fmt.Sprintf("Likely misleading: no %s ingredient is listed", strings.Join(missing, " or "))
	case !verifiable:
		return "Cannot be verified from the ingredient list alone"
	default:
		return "Supported: no ingredient contradicts the claim"
	}
}

// summarize joins up to n items and notes how many were left out
func summarize(items []string, n int) string {
	if len(items) <= n {
		return strings.Join(items, ", ")
	}
	return fmt.Sprintf("%s and %d more", strings.Join(items[:n], ", "), len(items)-n)
}

// normalizeText lowercases s, turns separators into spaces and strips punctuation
func normalizeText(s string) string {
	result := strings.ToLower(s)
	result = separatorRegex.ReplaceAllString(result, " ")
	result = nonWordRegex.ReplaceAllString(result, " ")
	result = multipleSpacesRegex.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

// splitIngredients breaks an ingredient list into normalized ingredient phrases
func splitIngredients(text string) []ingredient {
	parts := ingredientSplitRegex.Split(text, -1)
	items := make([]ingredient, 0, len(parts))
	for _, part := range parts {
		original := strings.TrimSpace(multipleSpacesRegex.ReplaceAllString(part, " "))
		normalized := normalizeText(original)
		if normalized == "" {
			continue
		}
		items = append(items, ingredient{original: original, normalized: normalized})
	}
	return items
}

func appendUnique(list []string, value string) []string {
	for _, v := range list {
		if v == value {
			return list
		}
	}
	return append(list, value)
}
