// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package crossref

import (
	"reflect"
	"strings"
	"testing"

	"github.com/pdiddy/research-assistant/pkg/types"
)

func TestSalientTerms(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		minLen int
		want   []string
	}{
		{
			name:   "lowercases and drops short tokens",
			text:   "Quantum Error Correction in NISQ era",
			minLen: 5,
			want:   []string{"quantum", "error", "correction"},
		},
		{
			name:   "stop words removed",
			text:   "results about research between those methods",
			minLen: 5,
			want:   []string{"methods"},
		},
		{
			name:   "punctuation splits tokens",
			text:   "protein-folding: breakthrough, (alphafold)",
			minLen: 5,
			want:   []string{"protein", "folding", "breakthrough", "alphafold"},
		},
		{
			name:   "digits survive",
			text:   "covid19 transmission dynamics",
			minLen: 5,
			want:   []string{"covid19", "transmission", "dynamics"},
		},
		{
			name:   "duplicates collapse in first occurrence order",
			text:   "fusion energy fusion ignition energy",
			minLen: 5,
			want:   []string{"fusion", "energy", "ignition"},
		},
		{
			name:   "empty text",
			text:   "",
			minLen: 5,
			want:   nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SalientTerms(tt.text, tt.minLen)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SalientTerms(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func addSource(t *testing.T, state *types.ResearchState, url, title string) *types.Source {
	t.Helper()
	src := &types.Source{ID: types.SourceID(url), URL: url, Title: title}
	if !state.AddSource(src) {
		t.Fatalf("duplicate source %q", url)
	}
	return src
}

func TestCrossReference_RequiresTwoSupporters(t *testing.T) {
	state := types.NewResearchState("q", 1)
	a := addSource(t, state, "https://a.example.com", "superconductor discovery")
	b := addSource(t, state, "https://b.example.com", "superconductor materials")
	addSource(t, state, "https://c.example.com", "unrelated subject entirely")

	CrossReference(state, types.CrossRefConfig{})

	if len(state.Findings) != 1 {
		t.Fatalf("got %d findings, want 1: %+v", len(state.Findings), state.Findings)
	}
	f := state.Findings[0]
	want := []string{a.ID, b.ID}
	if !reflect.DeepEqual(f.SupportingSources, want) {
		t.Errorf("supporters = %v, want %v", f.SupportingSources, want)
	}
	if !strings.Contains(f.Claim, `"superconductor"`) {
		t.Errorf("claim %q does not mention the shared term", f.Claim)
	}
	if !strings.HasPrefix(f.Claim, "2 sources") {
		t.Errorf("claim %q does not state the supporter count", f.Claim)
	}
}

func TestCrossReference_SupportersInDiscoveryOrder(t *testing.T) {
	state := types.NewResearchState("q", 1)
	first := addSource(t, state, "https://one.example.com", "graphene batteries")
	second := addSource(t, state, "https://two.example.com", "graphene research")
	third := addSource(t, state, "https://three.example.com", "graphene review")

	CrossReference(state, types.CrossRefConfig{})

	if len(state.Findings) != 1 {
		t.Fatalf("got %d findings, want 1", len(state.Findings))
	}
	want := []string{first.ID, second.ID, third.ID}
	if !reflect.DeepEqual(state.Findings[0].SupportingSources, want) {
		t.Errorf("supporters = %v, want %v", state.Findings[0].SupportingSources, want)
	}
}

func TestCrossReference_CapAppliesInTermOrder(t *testing.T) {
	state := types.NewResearchState("q", 1)
	addSource(t, state, "https://a.example.com", "alpha bravo charlie")
	addSource(t, state, "https://b.example.com", "alpha bravo charlie")

	CrossReference(state, types.CrossRefConfig{MaxFindings: 2})

	if len(state.Findings) != 2 {
		t.Fatalf("got %d findings, want 2", len(state.Findings))
	}
	if !strings.Contains(state.Findings[0].Claim, `"alpha"`) {
		t.Errorf("first finding %q, want alpha", state.Findings[0].Claim)
	}
	if !strings.Contains(state.Findings[1].Claim, `"bravo"`) {
		t.Errorf("second finding %q, want bravo", state.Findings[1].Claim)
	}
}

func TestCrossReference_Deterministic(t *testing.T) {
	build := func() []types.Finding {
		state := types.NewResearchState("q", 1)
		addSource(t, state, "https://a.example.com", "fusion ignition milestone")
		addSource(t, state, "https://b.example.com", "fusion energy gain")
		addSource(t, state, "https://c.example.com", "ignition energy record")
		CrossReference(state, types.CrossRefConfig{})
		return state.Findings
	}
	first := build()
	for i := 0; i < 5; i++ {
		if got := build(); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d diverged:\n%+v\nwant\n%+v", i, got, first)
		}
	}
}

func TestRecomputeCredibility(t *testing.T) {
	state := types.NewResearchState("q", 1)
	a := addSource(t, state, "https://a.example.com", "alignment techniques")
	b := addSource(t, state, "https://b.example.com", "alignment evaluation")

	CrossReference(state, types.CrossRefConfig{})
	if len(state.Findings) != 1 {
		t.Fatalf("got %d findings, want 1", len(state.Findings))
	}
	if state.Findings[0].Confidence != types.ConfidenceLow {
		t.Errorf("pre-scoring confidence = %q, want low", state.Findings[0].Confidence)
	}

	a.CredibilityScore = 0.8
	b.CredibilityScore = 0.6
	RecomputeCredibility(state)

	f := state.Findings[0]
	if f.AverageCredibility != 0.7 {
		t.Errorf("average credibility = %v, want 0.7", f.AverageCredibility)
	}
	if f.Confidence != types.ConfidenceMedium {
		t.Errorf("confidence = %q, want medium", f.Confidence)
	}
}
