// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package credibility assigns a deterministic, rule-based credibility
// score and category to each collected source.
// See docs/ARCHITECTURE.md § Credibility Scoring.
package credibility

import (
	"math"
	"net/url"
	"regexp"
	"strings"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// maxScore clamps the final score; only the retraction override goes
// below the predatory floor.
const (
	maxScore       = 0.95
	predatoryScore = 0.20
)

// doiPattern matches a DOI embedded anywhere in a URL path.
var doiPattern = regexp.MustCompile(`10\.\d{4,9}/[-._;()/:a-zA-Z0-9]+`)

// Evaluate computes the credibility score and category for a source.
// It is a pure function of the URL, the provider-reported citation
// count, and the number of findings the source appears in: identical
// inputs always produce identical output.
//
// The predatory check runs before the retraction check; a URL matching
// both yields the predatory score.
func Evaluate(rawURL string, citationCount, crossRefCount int) (float64, string) {
	host := hostOf(rawURL)

	if isPredatory(host) {
		return predatoryScore, "predatory_publisher"
	}

	if doi := ExtractDOI(rawURL); doi != "" && retractedDOIs[doi] {
		return 0.0, "retracted"
	}

	base, category := baseScore(host)
	score := base * citationModifier(citationCount) * crossRefModifier(crossRefCount)
	return math.Min(maxScore, score), category
}

// Score assigns credibility to every unscored source in the state. The
// cross-reference count for a source is the number of findings it
// supports, with a floor of 1. Sources that already carry a category are
// left untouched, so a repeated call cannot change assigned scores.
func Score(state *types.ResearchState) {
	counts := crossRefCounts(state)
	for _, src := range state.OrderedSources() {
		if src.CredibilityCategory != "" {
			continue
		}
		src.CredibilityScore, src.CredibilityCategory = Evaluate(src.URL, src.CitationCount, counts[src.ID])
	}
}

// crossRefCounts counts, per source, the findings it appears in. Every
// collected source gets at least 1.
func crossRefCounts(state *types.ResearchState) map[string]int {
	counts := make(map[string]int)
	for _, f := range state.Findings {
		for _, id := range f.SupportingSources {
			counts[id]++
		}
	}
	for _, src := range state.OrderedSources() {
		if counts[src.ID] < 1 {
			counts[src.ID] = 1
		}
	}
	return counts
}

// baseScore returns the longest-matching tier for a host.
func baseScore(host string) (float64, string) {
	best := -1
	for i, tier := range domainTable {
		if !matchesDomain(host, tier.pattern) {
			continue
		}
		if best < 0 || len(tier.pattern) > len(domainTable[best].pattern) {
			best = i
		}
	}
	if best < 0 {
		return defaultBase, defaultCategory
	}
	return domainTable[best].base, domainTable[best].category
}

func isPredatory(host string) bool {
	for _, d := range predatoryDomains {
		if matchesDomain(host, d) {
			return true
		}
	}
	return false
}

// matchesDomain reports whether host equals the pattern or is a
// subdomain of it. Bare TLD patterns like "gov" match any host under
// that TLD.
func matchesDomain(host, pattern string) bool {
	return host == pattern || strings.HasSuffix(host, "."+pattern)
}

// hostOf extracts the lowercased hostname from a URL, tolerating bare
// "example.org/path" spellings without a scheme.
func hostOf(rawURL string) string {
	s := strings.TrimSpace(rawURL)
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		u, err = url.Parse("https://" + s)
		if err != nil {
			return ""
		}
	}
	host := strings.ToLower(u.Hostname())
	return strings.TrimPrefix(host, "www.")
}

// ExtractDOI pulls a bare DOI out of a URL, lowercased for registry
// lookup. Returns "" when the URL carries no DOI.
func ExtractDOI(rawURL string) string {
	m := doiPattern.FindString(rawURL)
	return strings.ToLower(strings.TrimRight(m, "/."))
}

// citationModifier scales the base score by provider-reported citations.
func citationModifier(count int) float64 {
	switch {
	case count <= 0:
		return 0.8
	case count < 10:
		return 0.9
	case count < 100:
		return 1.0
	case count < 1000:
		return 1.1
	default:
		return 1.2
	}
}

// crossRefModifier scales the base score by cross-reference agreement.
func crossRefModifier(count int) float64 {
	switch {
	case count <= 1:
		return 0.9
	case count <= 3:
		return 1.0
	case count <= 6:
		return 1.1
	default:
		return 1.15
	}
}
