// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the research-assistant engine.
// See docs/ARCHITECTURE.md § Data Model.
package types

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// SourceType identifies which class of provider a source came from.
type SourceType string

const (
	SourceAcademic SourceType = "academic"
	SourceWeb      SourceType = "web"
	SourceNewsroom SourceType = "newsroom"
)

// Source is one retrieved document or reference. Identity fields are
// immutable once the source has been added to a ResearchState; only the
// credibility fields are assigned later, exactly once per run.
type Source struct {
	// ID is derived deterministically from the URL; see SourceID.
	ID string `json:"id" yaml:"id"`

	URL string `json:"url" yaml:"url"`

	Title string `json:"title" yaml:"title"`

	// Authors lists author names in provider order. May be empty.
	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty"`

	// PublicationDate is an opaque provider-reported string. It is not
	// required to parse as a date.
	PublicationDate string `json:"publication_date,omitempty" yaml:"publication_date,omitempty"`

	Type SourceType `json:"source_type" yaml:"source_type"`

	// ContentSnippet is a bounded excerpt of the document text.
	ContentSnippet string `json:"content_snippet,omitempty" yaml:"content_snippet,omitempty"`

	// CitationCount is the provider-reported citation count (0 if unknown).
	CitationCount int `json:"citation_count" yaml:"citation_count"`

	// OutboundCitations holds IDs of other sources this one is known to
	// cite. Entries may refer to sources that were never collected.
	OutboundCitations []string `json:"outbound_citations,omitempty" yaml:"outbound_citations,omitempty"`

	// CredibilityScore and CredibilityCategory are assigned by the
	// credibility scorer. Zero / empty until the scoring phase runs.
	CredibilityScore    float64 `json:"credibility_score" yaml:"credibility_score"`
	CredibilityCategory string  `json:"credibility_category,omitempty" yaml:"credibility_category,omitempty"`
}

// MaxSnippetLen bounds ContentSnippet length at normalization time.
const MaxSnippetLen = 500

// SourceID derives the stable source identifier from a URL. Distinct URLs
// map to distinct IDs; the same URL always maps to the same ID.
func SourceID(rawURL string) string {
	sum := sha256.Sum256([]byte(normalizeURL(rawURL)))
	return fmt.Sprintf("src-%x", sum[:12])
}

// normalizeURL strips scheme noise and trailing slashes so that trivially
// different spellings of the same address collapse to one identity.
func normalizeURL(raw string) string {
	s := strings.TrimSpace(strings.ToLower(raw))
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimPrefix(s, "www.")
	return strings.TrimRight(s, "/")
}
