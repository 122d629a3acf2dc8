package usecase

import (
	"context"
	"log"
	"regexp"
	"strings"

	"github.com/smartcart/backend/internal/domain"
)

// Package-level compiled regex patterns for performance
var (
	punctuationRegex    = regexp.MustCompile(`[^\w\s]`)
	multipleSpacesRegex = regexp.MustCompile(`\s+`)

	// Matches quantity/size patterns shoppers type into free-text lists,
	// e.g. "2x", "500 g", "1.5 l", "6 pack".
	quantityPatternRegex = regexp.MustCompile(
		`(?i)\b\d+\.?\d*\s*(?:x|kg|g|grams?|l|ml|liters?|litres?|oz|lbs?|pack|pk|ct|count|pcs?|units?)\b`,
	)
)

// Scoring weights for name resolution
const (
	coverageWeight       = 0.70 // fraction of query tokens found in the catalog name
	catalogWeight        = 0.30 // fraction of catalog name tokens found in the query
	substringBonus       = 15.0 // query is a substring of the catalog name or vice versa
	fuzzyTokenDiscount   = 0.8  // fuzzy token hits count at 80% of an exact hit
	defaultMinConfidence = 60.0
	defaultEditDistance  = 1
)

// listStopWords are words shoppers write that never narrow down a product.
var listStopWords = map[string]bool{
	"a": true, "an": true, "the": true, "of": true, "for": true,
	"some": true, "any": true, "fresh": true, "cheap": true, "big": true,
	"small": true, "bottle": true, "box": true, "bag": true, "can": true,
	"jar": true, "pack": true,
}

// ResolverConfig holds configuration for the list resolver
type ResolverConfig struct {
	MinConfidence       float64
	EnableFuzzyMatching bool
	FuzzyEditDistance   int
	EnableDebugLogging  bool
}

// ListResolver maps free-text shopping-list names to canonical catalog
// product names so the optimization engine only ever sees exact names.
type ListResolver struct {
	minConfidence       float64
	enableFuzzyMatching bool
	fuzzyEditDistance   int
	enableDebugLogging  bool
}

// NewListResolver creates a new list resolver with the given configuration
func NewListResolver(config ResolverConfig) *ListResolver {
	minConfidence := config.MinConfidence
	if minConfidence <= 0 {
		minConfidence = defaultMinConfidence
	}
	editDistance := config.FuzzyEditDistance
	if editDistance <= 0 {
		editDistance = defaultEditDistance
	}

	return &ListResolver{
		minConfidence:       minConfidence,
		enableFuzzyMatching: config.EnableFuzzyMatching,
		fuzzyEditDistance:   editDistance,
		enableDebugLogging:  config.EnableDebugLogging,
	}
}

// ResolveList rewrites each list item name to its best catalog match. Items
// that already match a catalog name exactly are left alone; items that cannot
// be resolved confidently keep their free-text name and fall out later as
// items without prices.
func (r *ListResolver) ResolveList(ctx context.Context, list []domain.ListItem, catalog []string) []domain.ListItem {
	known := make(map[string]bool, len(catalog))
	for _, name := range catalog {
		known[name] = true
	}

	resolved := make([]domain.ListItem, len(list))
	for i, item := range list {
		resolved[i] = item
		if known[item.Name] {
			continue
		}
		select {
		case <-ctx.Done():
			return resolved
		default:
		}

		name, confidence, err := r.ResolveName(item.Name, catalog)
		if err != nil {
			if r.enableDebugLogging {
				log.Printf("[RESOLVE] %q unresolved: %v", item.Name, err)
			}
			continue
		}
		if r.enableDebugLogging {
			log.Printf("[RESOLVE] %q -> %q (confidence %.1f)", item.Name, name, confidence)
		}
		resolved[i].Name = name
	}
	return resolved
}

// ResolveName finds the catalog product name that best matches a free-text
// item name. Returns ErrProductNotFound when nothing scores above zero and
// ErrLowConfidence when the best candidate is below the threshold.
func (r *ListResolver) ResolveName(freeText string, catalog []string) (string, float64, error) {
	if freeText == "" {
		return "", 0, domain.ErrInvalidRequest
	}

	queryTokens := tokenizeItemName(freeText)
	if len(queryTokens) == 0 {
		return "", 0, domain.ErrProductNotFound
	}

	bestName := ""
	bestScore := 0.0
	for _, candidate := range catalog {
		score := r.scoreCandidate(queryTokens, freeText, candidate)
		// Ties break lexicographically so resolution is deterministic.
		if score > bestScore || (score == bestScore && bestName != "" && candidate < bestName) {
			bestScore = score
			bestName = candidate
		}
	}

	if bestName == "" || bestScore == 0 {
		return "", 0, domain.ErrProductNotFound
	}
	if bestScore < r.minConfidence {
		return bestName, bestScore, domain.ErrLowConfidence
	}
	return bestName, bestScore, nil
}

// scoreCandidate computes a 0-100 similarity between the query tokens and a
// catalog product name.
func (r *ListResolver) scoreCandidate(queryTokens []string, freeText, candidate string) float64 {
	candidateTokens := tokenizeItemName(candidate)
	if len(candidateTokens) == 0 {
		return 0
	}

	queryHits := r.countHits(queryTokens, candidateTokens)
	candidateHits := r.countHits(candidateTokens, queryTokens)

	coverage := queryHits / float64(len(queryTokens))
	catalogCoverage := candidateHits / float64(len(candidateTokens))

	score := (coverage*coverageWeight + catalogCoverage*catalogWeight) * 100

	queryLower := strings.ToLower(strings.TrimSpace(freeText))
	candidateLower := strings.ToLower(candidate)
	if len(queryLower) > 3 &&
		(strings.Contains(candidateLower, queryLower) || strings.Contains(queryLower, candidateLower)) {
		score += substringBonus
	}

	if score > 100 {
		score = 100
	}
	return score
}

// countHits counts how many tokens of a appear in b, counting fuzzy hits at a
// discount when fuzzy matching is enabled.
func (r *ListResolver) countHits(a, b []string) float64 {
	set := make(map[string]bool, len(b))
	for _, t := range b {
		set[t] = true
	}

	hits := 0.0
	for _, t := range a {
		if set[t] {
			hits++
			continue
		}
		if !r.enableFuzzyMatching {
			continue
		}
		for _, other := range b {
			if fuzzyTokenMatch(t, other, r.fuzzyEditDistance) {
				hits += fuzzyTokenDiscount
				break
			}
		}
	}
	return hits
}

// tokenizeItemName splits a free-text item name into normalized lowercase
// tokens, stripping quantities, punctuation, stop words, and bare numbers.
func tokenizeItemName(s string) []string {
	cleaned := quantityPatternRegex.ReplaceAllString(strings.ToLower(s), " ")
	cleaned = punctuationRegex.ReplaceAllString(cleaned, " ")
	cleaned = multipleSpacesRegex.ReplaceAllString(cleaned, " ")

	var tokens []string
	for _, word := range strings.Fields(cleaned) {
		if len(word) <= 1 || listStopWords[word] || isNumeric(word) {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}

// isNumeric checks if a string contains only digits
func isNumeric(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}

// fuzzyTokenMatch checks if two tokens are within the edit distance
// threshold. Short tokens are excluded to avoid false positives.
func fuzzyTokenMatch(token1, token2 string, threshold int) bool {
	if token1 == token2 {
		return true
	}
	if len(token1) < 4 || len(token2) < 4 {
		return false
	}

	lenDiff := len(token1) - len(token2)
	if lenDiff < 0 {
		lenDiff = -lenDiff
	}
	if lenDiff > threshold {
		return false
	}

	return levenshteinDistance(token1, token2) <= threshold
}

// levenshteinDistance calculates the edit distance between two strings
func levenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	r1 := []rune(s1)
	r2 := []rune(s2)
	m := len(r1)
	n := len(r2)

	// Two rows instead of the full matrix
	prev := make([]int, n+1)
	curr := make([]int, n+1)

	for j := 0; j <= n; j++ {
		prev[j] = j
	}

	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[n]
}
