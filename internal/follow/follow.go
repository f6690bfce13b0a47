// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package follow expands a research state by deriving follow-up queries
// from the most authoritative sources collected so far and re-invoking
// the aggregator, up to a configured depth.
// See docs/ARCHITECTURE.md § Citation Following.
package follow

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/research-assistant/internal/aggregate"
	"github.com/pdiddy/research-assistant/internal/citegraph"
	"github.com/pdiddy/research-assistant/internal/credibility"
	"github.com/pdiddy/research-assistant/pkg/types"
)

const defaultFanOut = 3

// Follower drives the citation-following loop.
type Follower struct {
	agg *aggregate.Aggregator
	cfg types.FollowConfig
	log *zap.Logger
}

// New creates a Follower over an aggregator.
func New(agg *aggregate.Aggregator, cfg types.FollowConfig, log *zap.Logger) *Follower {
	if log == nil {
		log = zap.NewNop()
	}
	return &Follower{agg: agg, cfg: cfg, log: log}
}

// Follow runs depth rounds 2..MaxDepth. Each round picks the top-K
// sources by the current authority ranking, turns each into one
// follow-up query, and fans those out through the aggregator. A round
// in which every follow-up query yields nothing ends the loop early;
// that is not an error.
func (f *Follower) Follow(ctx context.Context, state *types.ResearchState) {
	if state.MaxDepth <= 1 {
		return
	}

	fanOut := f.cfg.FanOut
	if fanOut <= 0 {
		fanOut = defaultFanOut
	}

	for depth := 2; depth <= state.MaxDepth; depth++ {
		queries := f.followUpQueries(state, fanOut)
		if len(queries) == 0 {
			f.log.Info("no follow-up candidates", zap.Int("depth", depth))
			return
		}

		var produced int64
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(fanOut)
		for _, q := range queries {
			q := q
			g.Go(func() error {
				out, err := f.agg.Aggregate(gctx, q, state)
				if err != nil {
					f.log.Warn("follow-up query failed",
						zap.Int("depth", depth),
						zap.String("query", q),
						zap.Error(err))
					return nil // individual failure is non-fatal
				}
				if out.Added > 0 || out.Duplicates > 0 {
					atomic.AddInt64(&produced, 1)
				}
				return nil
			})
		}
		g.Wait()

		f.log.Info("citation depth complete",
			zap.Int("depth", depth),
			zap.Int("queries", len(queries)),
			zap.Int64("productive", produced),
			zap.Int("sources", state.SourceCount()))

		if produced == 0 {
			return
		}
	}
}

// followUpQueries derives one query per top-authority source: the title,
// or a DOI extracted from the URL when the title is empty. Scores are
// provisional because the scoring phase has not run yet; the scorer is
// evaluated on the fly without touching the sources.
func (f *Follower) followUpQueries(state *types.ResearchState, topK int) []string {
	scores := make(map[string]float64)
	for _, src := range state.OrderedSources() {
		if src.CredibilityCategory != "" {
			scores[src.ID] = src.CredibilityScore
			continue
		}
		score, _ := credibility.Evaluate(src.URL, src.CitationCount, 1)
		scores[src.ID] = score
	}

	var queries []string
	for _, src := range citegraph.RankWith(state, scores, topK) {
		switch {
		case src.Title != "":
			queries = append(queries, src.Title)
		default:
			if doi := credibility.ExtractDOI(src.URL); doi != "" {
				queries = append(queries, doi)
			}
		}
	}
	return queries
}
