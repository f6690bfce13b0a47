// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Confidence is the tier assigned to a finding from its supporter count
// and the average credibility of its supporters.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Finding is a claim inferred to be supported by two or more sources.
type Finding struct {
	// Claim is the text of the cross-referenced claim.
	Claim string `json:"claim" yaml:"claim"`

	// SupportingSources lists the IDs of the sources that agree on the
	// claim, in discovery order. Never empty.
	SupportingSources []string `json:"supporting_sources" yaml:"supporting_sources"`

	// Confidence is derived from the supporter count and average
	// credibility; it is never set independently.
	Confidence Confidence `json:"confidence" yaml:"confidence"`

	// AverageCredibility is the arithmetic mean of the supporters'
	// credibility scores at the time of the last recomputation.
	AverageCredibility float64 `json:"average_credibility" yaml:"average_credibility"`
}

// ConfidenceFor maps a supporter count and average credibility to a tier.
// Evaluated high before medium; everything else is low.
func ConfidenceFor(supporters int, avgCredibility float64) Confidence {
	switch {
	case supporters >= 4 && avgCredibility >= 0.7:
		return ConfidenceHigh
	case supporters >= 2 && avgCredibility >= 0.5:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
