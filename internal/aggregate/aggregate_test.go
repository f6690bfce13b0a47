// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aggregate

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// stubProvider returns canned results or a canned error.
type stubProvider struct {
	name    string
	stype   types.SourceType
	results []RawResult
	err     error
}

func (s *stubProvider) Name() string           { return s.name }
func (s *stubProvider) Type() types.SourceType { return s.stype }
func (s *stubProvider) Search(_ context.Context, _ string, _ types.AggregateConfig) ([]RawResult, error) {
	return s.results, s.err
}

func TestAggregate_MergesAllProviders(t *testing.T) {
	providers := []Provider{
		&stubProvider{name: "academic", stype: types.SourceAcademic, results: []RawResult{
			{URL: "https://arxiv.org/abs/1", Title: "one"},
			{URL: "https://arxiv.org/abs/2", Title: "two"},
		}},
		&stubProvider{name: "web", stype: types.SourceWeb, results: []RawResult{
			{URL: "https://example.com/three", Title: "three"},
		}},
	}
	agg := New(providers, types.AggregateConfig{}, nil)
	state := types.NewResearchState("q", 1)

	out, err := agg.Aggregate(context.Background(), "q", state)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if out.Added != 3 {
		t.Errorf("Added = %d, want 3", out.Added)
	}
	if state.SourceCount() != 3 {
		t.Errorf("SourceCount = %d, want 3", state.SourceCount())
	}
	if len(out.ProviderErrors) != 0 {
		t.Errorf("ProviderErrors = %v, want none", out.ProviderErrors)
	}
}

func TestAggregate_ToleratesProviderFailures(t *testing.T) {
	providers := []Provider{
		&stubProvider{name: "academic", stype: types.SourceAcademic, err: fmt.Errorf("upstream 500")},
		&stubProvider{name: "newsroom", stype: types.SourceNewsroom, err: fmt.Errorf("timeout")},
		&stubProvider{name: "web", stype: types.SourceWeb, results: []RawResult{
			{URL: "https://example.com/only", Title: "only survivor"},
		}},
	}
	agg := New(providers, types.AggregateConfig{}, nil)
	state := types.NewResearchState("q", 1)

	out, err := agg.Aggregate(context.Background(), "q", state)
	if err != nil {
		t.Fatalf("Aggregate returned error despite one provider succeeding: %v", err)
	}
	if out.Added != 1 {
		t.Errorf("Added = %d, want 1", out.Added)
	}
	if len(out.ProviderErrors) != 2 {
		t.Errorf("got %d provider errors, want 2: %v", len(out.ProviderErrors), out.ProviderErrors)
	}
	for _, pe := range out.ProviderErrors {
		if !strings.Contains(pe, ":") {
			t.Errorf("provider error %q missing name prefix", pe)
		}
	}
}

func TestAggregate_DeduplicatesAcrossProviders(t *testing.T) {
	// Same document through two providers, spelled differently.
	providers := []Provider{
		&stubProvider{name: "academic", stype: types.SourceAcademic, results: []RawResult{
			{URL: "https://example.com/paper", Title: "canonical"},
		}},
		&stubProvider{name: "web", stype: types.SourceWeb, results: []RawResult{
			{URL: "http://www.example.com/paper/", Title: "mirror"},
		}},
	}
	agg := New(providers, types.AggregateConfig{}, nil)
	state := types.NewResearchState("q", 1)

	out, err := agg.Aggregate(context.Background(), "q", state)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if out.Added != 1 {
		t.Errorf("Added = %d, want 1", out.Added)
	}
	if out.Duplicates != 1 {
		t.Errorf("Duplicates = %d, want 1", out.Duplicates)
	}
	if state.SourceCount() != 1 {
		t.Errorf("SourceCount = %d, want 1", state.SourceCount())
	}
}

func TestAggregate_EmptyQuery(t *testing.T) {
	agg := New([]Provider{&stubProvider{name: "web", stype: types.SourceWeb}}, types.AggregateConfig{}, nil)
	if _, err := agg.Aggregate(context.Background(), "   ", types.NewResearchState("q", 1)); err == nil {
		t.Error("empty query did not fail")
	}
}

func TestAggregate_NoProviders(t *testing.T) {
	agg := New(nil, types.AggregateConfig{}, nil)
	if _, err := agg.Aggregate(context.Background(), "q", types.NewResearchState("q", 1)); err == nil {
		t.Error("empty provider set did not fail")
	}
}

func TestNormalize(t *testing.T) {
	long := strings.Repeat("x", types.MaxSnippetLen+100)

	t.Run("truncates snippet", func(t *testing.T) {
		src, ok := Normalize(RawResult{URL: "https://example.com/a", Snippet: long}, types.SourceWeb)
		if !ok {
			t.Fatal("Normalize dropped a valid result")
		}
		if len(src.ContentSnippet) != types.MaxSnippetLen {
			t.Errorf("snippet length = %d, want %d", len(src.ContentSnippet), types.MaxSnippetLen)
		}
	})

	t.Run("drops empty URL", func(t *testing.T) {
		if _, ok := Normalize(RawResult{Title: "no identity"}, types.SourceWeb); ok {
			t.Error("result without URL not dropped")
		}
	})

	t.Run("clamps negative citation count", func(t *testing.T) {
		src, _ := Normalize(RawResult{URL: "https://example.com/a", CitationCount: -5}, types.SourceAcademic)
		if src.CitationCount != 0 {
			t.Errorf("CitationCount = %d, want 0", src.CitationCount)
		}
	})

	t.Run("cited URLs become deduplicated IDs", func(t *testing.T) {
		src, _ := Normalize(RawResult{
			URL:       "https://example.com/a",
			CitedURLs: []string{"https://cited.example.com", "http://www.cited.example.com/", ""},
		}, types.SourceAcademic)
		if len(src.OutboundCitations) != 1 {
			t.Fatalf("OutboundCitations = %v, want one entry", src.OutboundCitations)
		}
		if src.OutboundCitations[0] != types.SourceID("https://cited.example.com") {
			t.Errorf("outbound ID = %q, want derived source ID", src.OutboundCitations[0])
		}
	})
}
