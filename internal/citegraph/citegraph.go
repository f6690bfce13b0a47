// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package citegraph builds the directed citation graph over collected
// sources and derives an authority ranking that combines credibility
// with in-degree centrality.
// See docs/ARCHITECTURE.md § Citation Graph.
package citegraph

import (
	"math"
	"sort"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// Build mirrors every source's outbound citations into the state's
// adjacency map. Edges to IDs that were never collected are kept;
// dangling references are tolerated, they simply resolve to no node.
func Build(state *types.ResearchState) {
	graph := make(map[string][]string)
	for _, src := range state.OrderedSources() {
		if len(src.OutboundCitations) == 0 {
			continue
		}
		edges := make([]string, len(src.OutboundCitations))
		copy(edges, src.OutboundCitations)
		graph[src.ID] = edges
	}
	state.CitationGraph = graph
}

// Centrality returns the in-degree of every collected source: the number
// of distinct in-graph sources citing it.
func Centrality(state *types.ResearchState) map[string]int {
	counts := make(map[string]int)
	for _, src := range state.OrderedSources() {
		counts[src.ID] = 0
	}
	for _, src := range state.OrderedSources() {
		for _, cited := range src.OutboundCitations {
			if _, known := counts[cited]; known {
				counts[cited]++
			}
		}
	}
	return counts
}

// Authority combines a credibility score with citation centrality. A
// source nobody cites keeps its bare credibility.
func Authority(credibility float64, centrality int) float64 {
	return credibility * (1 + math.Log(1+float64(centrality)))
}

// AuthorityRank returns the top-N sources ordered by authority
// descending, using the credibility scores stored on the sources. The
// sort is stable: ties break by credibility descending, then by
// discovery order. topN <= 0 returns the full ranking.
func AuthorityRank(state *types.ResearchState, topN int) []*types.Source {
	scores := make(map[string]float64)
	for _, src := range state.OrderedSources() {
		scores[src.ID] = src.CredibilityScore
	}
	return RankWith(state, scores, topN)
}

// RankWith ranks sources by authority using the supplied credibility
// scores instead of the stored ones. The citation follower uses this
// with provisional scores before the scoring phase has run.
func RankWith(state *types.ResearchState, credibility map[string]float64, topN int) []*types.Source {
	sources := state.OrderedSources()
	centrality := Centrality(state)

	ranked := make([]*types.Source, len(sources))
	copy(ranked, sources)

	authority := func(s *types.Source) float64 {
		return Authority(credibility[s.ID], centrality[s.ID])
	}

	// Input order is discovery order, so stability provides the final
	// tie-break for free.
	sort.SliceStable(ranked, func(i, j int) bool {
		ai, aj := authority(ranked[i]), authority(ranked[j])
		if ai != aj {
			return ai > aj
		}
		return credibility[ranked[i].ID] > credibility[ranked[j].ID]
	})

	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}
