// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package crossref derives candidate claims from collected source text
// and groups sources that appear to support the same claim.
// See docs/ARCHITECTURE.md § Cross-Referencing.
package crossref

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/pdiddy/research-assistant/pkg/types"
)

const (
	defaultMaxFindings = 50
	defaultMinTokenLen = 5
)

// CrossReference extracts salient terms from every source and creates a
// Finding for each term shared by at least two distinct sources.
// Singleton matches are discarded. Findings beyond the configured cap
// are dropped, not queued.
//
// Average credibility and confidence are computed from the scores
// present at call time; when scoring runs afterwards, the engine calls
// RecomputeCredibility to refresh both.
func CrossReference(state *types.ResearchState, cfg types.CrossRefConfig) {
	maxFindings := cfg.MaxFindings
	if maxFindings <= 0 {
		maxFindings = defaultMaxFindings
	}
	minLen := cfg.MinTokenLen
	if minLen <= 0 {
		minLen = defaultMinTokenLen
	}

	// Term → supporting source IDs in discovery order. termOrder keeps
	// iteration deterministic across runs.
	supporters := make(map[string][]string)
	var termOrder []string

	for _, src := range state.OrderedSources() {
		for _, term := range SalientTerms(src.Title+" "+src.ContentSnippet, minLen) {
			if _, seen := supporters[term]; !seen {
				termOrder = append(termOrder, term)
			}
			if !containsID(supporters[term], src.ID) {
				supporters[term] = append(supporters[term], src.ID)
			}
		}
	}

	for _, term := range termOrder {
		if len(state.Findings) >= maxFindings {
			break
		}
		ids := supporters[term]
		if len(ids) < 2 {
			continue
		}
		f := types.Finding{
			Claim:             fmt.Sprintf("%d sources independently reference %q", len(ids), term),
			SupportingSources: ids,
		}
		f.AverageCredibility = averageCredibility(state, ids)
		f.Confidence = types.ConfidenceFor(len(ids), f.AverageCredibility)
		state.Findings = append(state.Findings, f)
	}
}

// RecomputeCredibility refreshes each finding's average credibility and
// confidence from the sources' current scores.
func RecomputeCredibility(state *types.ResearchState) {
	for i := range state.Findings {
		f := &state.Findings[i]
		f.AverageCredibility = averageCredibility(state, f.SupportingSources)
		f.Confidence = types.ConfidenceFor(len(f.SupportingSources), f.AverageCredibility)
	}
}

// averageCredibility is the arithmetic mean of the named sources'
// credibility scores. Unknown IDs contribute nothing.
func averageCredibility(state *types.ResearchState, ids []string) float64 {
	if len(ids) == 0 {
		return 0
	}
	var sum float64
	n := 0
	for _, id := range ids {
		if src := state.SourceByID(id); src != nil {
			sum += src.CredibilityScore
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// SalientTerms tokenizes text into lowercased alphanumeric terms,
// dropping stop-words and tokens shorter than minLen. Each term appears
// once, in first-occurrence order.
func SalientTerms(text string, minLen int) []string {
	var terms []string
	seen := make(map[string]bool)

	for _, tok := range tokenize(text) {
		if len(tok) < minLen || stopWords[tok] || seen[tok] {
			continue
		}
		seen[tok] = true
		terms = append(terms, tok)
	}
	return terms
}

// tokenize splits text on non-alphanumeric runes and lowercases the
// pieces. Digits are kept so terms like "covid19" survive.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func containsID(ids []string, id string) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
