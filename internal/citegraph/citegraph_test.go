// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citegraph

import (
	"math"
	"reflect"
	"testing"

	"github.com/pdiddy/research-assistant/pkg/types"
)

func addSource(t *testing.T, state *types.ResearchState, url string, cites ...string) *types.Source {
	t.Helper()
	src := &types.Source{ID: types.SourceID(url), URL: url, OutboundCitations: cites}
	if !state.AddSource(src) {
		t.Fatalf("duplicate source %q", url)
	}
	return src
}

func TestBuild(t *testing.T) {
	state := types.NewResearchState("q", 1)
	b := addSource(t, state, "https://b.example.com")
	dangling := types.SourceID("https://never-collected.example.com")
	a := addSource(t, state, "https://a.example.com", b.ID, dangling)
	addSource(t, state, "https://c.example.com")

	Build(state)

	want := map[string][]string{a.ID: {b.ID, dangling}}
	if !reflect.DeepEqual(state.CitationGraph, want) {
		t.Errorf("CitationGraph = %v, want %v", state.CitationGraph, want)
	}
}

func TestCentrality(t *testing.T) {
	state := types.NewResearchState("q", 1)
	hub := addSource(t, state, "https://hub.example.com")
	a := addSource(t, state, "https://a.example.com", hub.ID)
	b := addSource(t, state, "https://b.example.com", hub.ID, a.ID)
	// Dangling edge must not create a node.
	addSource(t, state, "https://c.example.com", hub.ID, types.SourceID("https://missing.example.com"))

	got := Centrality(state)

	if got[hub.ID] != 3 {
		t.Errorf("hub centrality = %d, want 3", got[hub.ID])
	}
	if got[a.ID] != 1 {
		t.Errorf("a centrality = %d, want 1", got[a.ID])
	}
	if got[b.ID] != 0 {
		t.Errorf("b centrality = %d, want 0", got[b.ID])
	}
	if len(got) != 4 {
		t.Errorf("centrality has %d entries, want 4 (collected sources only)", len(got))
	}
}

func TestAuthority(t *testing.T) {
	tests := []struct {
		name        string
		credibility float64
		centrality  int
		want        float64
	}{
		{"uncited keeps bare credibility", 0.85, 0, 0.85},
		{"single citation", 0.5, 1, 0.5 * (1 + math.Log(2))},
		{"three in-graph citers", 0.5, 3, 1.1931},
		{"zero credibility stays zero", 0.0, 10, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Authority(tt.credibility, tt.centrality)
			if math.Abs(got-tt.want) > 1e-4 {
				t.Errorf("Authority(%v, %d) = %v, want %v", tt.credibility, tt.centrality, got, tt.want)
			}
		})
	}
}

func TestAuthorityRank_CitedBeatsHigherCredibility(t *testing.T) {
	state := types.NewResearchState("q", 1)
	cited := addSource(t, state, "https://cited.example.com")
	cited.CredibilityScore = 0.5
	lone := addSource(t, state, "https://lone.example.com")
	lone.CredibilityScore = 0.7
	for _, u := range []string{"https://x.example.com", "https://y.example.com", "https://z.example.com"} {
		addSource(t, state, u, cited.ID)
	}

	// cited: 0.5 * (1 + ln 4) ≈ 1.19 beats lone's bare 0.7.
	ranked := AuthorityRank(state, 2)
	if len(ranked) != 2 {
		t.Fatalf("got %d ranked sources, want 2", len(ranked))
	}
	if ranked[0].ID != cited.ID {
		t.Errorf("top source = %q, want the cited one", ranked[0].URL)
	}
	if ranked[1].ID != lone.ID {
		t.Errorf("second source = %q, want the lone one", ranked[1].URL)
	}
}

func TestAuthorityRank_TieBreaks(t *testing.T) {
	state := types.NewResearchState("q", 1)
	// Equal authority (no citations): credibility breaks the tie.
	low := addSource(t, state, "https://low.example.com")
	low.CredibilityScore = 0.4
	high := addSource(t, state, "https://high.example.com")
	high.CredibilityScore = 0.6
	// Fully tied with low: discovery order keeps low first.
	twin := addSource(t, state, "https://twin.example.com")
	twin.CredibilityScore = 0.4

	ranked := AuthorityRank(state, 0)
	wantOrder := []string{high.ID, low.ID, twin.ID}
	for i, want := range wantOrder {
		if ranked[i].ID != want {
			t.Errorf("position %d: got %q, want %q", i, ranked[i].URL, want)
		}
	}
}

func TestAuthorityRank_Deterministic(t *testing.T) {
	build := func() []string {
		state := types.NewResearchState("q", 1)
		a := addSource(t, state, "https://a.example.com")
		b := addSource(t, state, "https://b.example.com", a.ID)
		addSource(t, state, "https://c.example.com", a.ID, b.ID)
		for _, src := range state.OrderedSources() {
			src.CredibilityScore = 0.5
		}
		var ids []string
		for _, src := range AuthorityRank(state, 0) {
			ids = append(ids, src.ID)
		}
		return ids
	}
	first := build()
	for i := 0; i < 5; i++ {
		if got := build(); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d diverged: %v vs %v", i, got, first)
		}
	}
}

func TestRankWith_ProvisionalScores(t *testing.T) {
	state := types.NewResearchState("q", 1)
	a := addSource(t, state, "https://a.example.com")
	b := addSource(t, state, "https://b.example.com")

	// Stored scores are still zero; the supplied map decides the order.
	provisional := map[string]float64{a.ID: 0.3, b.ID: 0.9}
	ranked := RankWith(state, provisional, 0)
	if ranked[0].ID != b.ID {
		t.Errorf("top source = %q, want %q", ranked[0].URL, b.URL)
	}
	if a.CredibilityScore != 0 || b.CredibilityScore != 0 {
		t.Error("RankWith mutated stored credibility scores")
	}
}
