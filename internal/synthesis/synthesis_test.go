// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package synthesis

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/pdiddy/research-assistant/pkg/types"
)

type stubGenerator struct {
	text string
	err  error

	gotPrompt string
}

func (g *stubGenerator) Name() string { return "stub" }
func (g *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.gotPrompt = prompt
	return g.text, g.err
}

func promptState() *types.ResearchState {
	state := types.NewResearchState("is room-temperature superconductivity real", 1)
	urls := []string{
		"https://www.nature.com/articles/rt-sc",
		"https://arxiv.org/abs/2307.12008",
	}
	titles := []string{"Peer-reviewed replication attempt", "LK-99 preprint"}
	scores := []float64{0.95, 0.405}
	categories := []string{"top_tier_journal", "preprint_repository"}
	for i, u := range urls {
		state.AddSource(&types.Source{
			ID:                  types.SourceID(u),
			URL:                 u,
			Title:               titles[i],
			CredibilityScore:    scores[i],
			CredibilityCategory: categories[i],
		})
	}
	state.Findings = []types.Finding{
		{
			Claim:              "2 sources independently reference \"superconductivity\"",
			SupportingSources:  []string{state.SourceOrder[0], state.SourceOrder[1]},
			Confidence:         types.ConfidenceMedium,
			AverageCredibility: 0.68,
		},
	}
	return state
}

func TestBuildPrompt(t *testing.T) {
	state := promptState()
	prompt, err := BuildPrompt(state, types.SynthesisConfig{})
	if err != nil {
		t.Fatalf("BuildPrompt: %v", err)
	}

	for _, want := range []string{
		state.Query,
		"Cross-referenced findings (1):",
		`[medium, avg credibility 0.68, 2 sources]`,
		"[1] Peer-reviewed replication attempt",
		"[2] LK-99 preprint",
		"Credibility: 0.95 (top_tier_journal)",
		"Credibility: 0.41 (preprint_repository)",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q\n---\n%s", want, prompt)
		}
	}

	// Higher-authority source must be listed first.
	if strings.Index(prompt, "Peer-reviewed") > strings.Index(prompt, "LK-99") {
		t.Error("sources not ordered by authority")
	}
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	first, err := BuildPrompt(promptState(), types.SynthesisConfig{})
	if err != nil {
		t.Fatalf("BuildPrompt: %v", err)
	}
	for i := 0; i < 5; i++ {
		got, err := BuildPrompt(promptState(), types.SynthesisConfig{})
		if err != nil {
			t.Fatalf("BuildPrompt: %v", err)
		}
		if got != first {
			t.Fatalf("run %d produced a different prompt", i)
		}
	}
}

func TestTopFindings_OrderAndCap(t *testing.T) {
	findings := []types.Finding{
		{Claim: "low first", Confidence: types.ConfidenceLow, AverageCredibility: 0.9},
		{Claim: "medium weak", Confidence: types.ConfidenceMedium, AverageCredibility: 0.5},
		{Claim: "high", Confidence: types.ConfidenceHigh, AverageCredibility: 0.8},
		{Claim: "medium strong", Confidence: types.ConfidenceMedium, AverageCredibility: 0.7},
	}

	got := topFindings(findings, 3)
	if len(got) != 3 {
		t.Fatalf("got %d findings, want 3", len(got))
	}
	wantOrder := []string{"high", "medium strong", "medium weak"}
	for i, want := range wantOrder {
		if got[i].Claim != want {
			t.Errorf("position %d: %q, want %q", i, got[i].Claim, want)
		}
	}
}

func TestSynthesize_StoresResponse(t *testing.T) {
	state := promptState()
	gen := &stubGenerator{text: "  The evidence is thin [1].  "}

	if err := Synthesize(context.Background(), gen, state, types.SynthesisConfig{}); err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if state.Synthesis != "The evidence is thin [1]." {
		t.Errorf("Synthesis = %q, response not trimmed", state.Synthesis)
	}
	if !strings.Contains(gen.gotPrompt, state.Query) {
		t.Error("generator did not receive the rendered prompt")
	}
}

func TestSynthesize_GeneratorError(t *testing.T) {
	state := promptState()
	gen := &stubGenerator{err: fmt.Errorf("quota exhausted")}

	err := Synthesize(context.Background(), gen, state, types.SynthesisConfig{})
	if err == nil {
		t.Fatal("generator error not propagated")
	}
	if !strings.Contains(err.Error(), "quota exhausted") {
		t.Errorf("error %q does not wrap the cause", err)
	}
	if state.Synthesis != "" {
		t.Errorf("Synthesis = %q after failure, want empty", state.Synthesis)
	}
}

func TestSynthesize_EmptyResponseFails(t *testing.T) {
	state := promptState()
	gen := &stubGenerator{text: "   \n  "}

	if err := Synthesize(context.Background(), gen, state, types.SynthesisConfig{}); err == nil {
		t.Fatal("blank response accepted")
	}
	if state.Synthesis != "" {
		t.Errorf("Synthesis = %q after failure, want empty", state.Synthesis)
	}
}
