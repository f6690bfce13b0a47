// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package engine sequences the research phases over one research state
// and commits the result to the persistence layer.
// See docs/ARCHITECTURE.md § Orchestration.
package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pdiddy/research-assistant/internal/aggregate"
	"github.com/pdiddy/research-assistant/internal/citegraph"
	"github.com/pdiddy/research-assistant/internal/credibility"
	"github.com/pdiddy/research-assistant/internal/crossref"
	"github.com/pdiddy/research-assistant/internal/follow"
	"github.com/pdiddy/research-assistant/internal/synthesis"
	"github.com/pdiddy/research-assistant/pkg/types"
)

// Persister is the storage collaborator. Save must write the summary
// and the full record together.
type Persister interface {
	Save(ctx context.Context, state *types.ResearchState) (string, error)
}

// Engine drives one research run through its phases. It owns the
// research state exclusively for the duration of the run; no global
// state is consulted, so independent runs can proceed concurrently on
// separate Engine calls.
type Engine struct {
	agg      *aggregate.Aggregator
	follower *follow.Follower
	gen      synthesis.Generator
	store    Persister
	cfg      types.EngineConfig
	log      *zap.Logger
}

// New assembles an engine from its collaborators.
func New(agg *aggregate.Aggregator, follower *follow.Follower, gen synthesis.Generator, store Persister, cfg types.EngineConfig, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{agg: agg, follower: follower, gen: gen, store: store, cfg: cfg, log: log}
}

// PhaseError reports the phase at which a run failed and why.
type PhaseError struct {
	Phase types.Phase
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("research failed during %s: %v", e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error { return e.Err }

// Result is the outcome of one run. Exactly one of three shapes reaches
// the caller: a completed state with a research ID; a completed state
// with SaveErr set and no ID; or a nil-ID failed state paired with a
// PhaseError from Run.
type Result struct {
	State      *types.ResearchState
	ResearchID string

	// SaveErr is set when the pipeline completed but the save step
	// failed. The synthesis is still valid.
	SaveErr error
}

// Run executes the full pipeline for one query. Per-provider and
// per-depth failures are absorbed inside their phases; only a
// synthesizer failure fails the run.
func (e *Engine) Run(ctx context.Context, query string, maxDepth int) (*Result, error) {
	state := types.NewResearchState(query, maxDepth)

	e.log.Info("research run started",
		zap.String("query", query),
		zap.Int("max_depth", state.MaxDepth))

	state.Transition(types.PhaseAggregating)
	if _, err := e.agg.Aggregate(ctx, query, state); err != nil {
		return e.fail(state, err)
	}

	if state.MaxDepth > 1 {
		state.Transition(types.PhaseFollowingCitations)
		e.follower.Follow(ctx, state)
	}

	state.Transition(types.PhaseCrossReferencing)
	crossref.CrossReference(state, e.cfg.CrossRef)

	// Cross-reference counts first, scores second, then finding
	// credibility recomputed from the final scores.
	state.Transition(types.PhaseScoring)
	credibility.Score(state)
	crossref.RecomputeCredibility(state)

	state.Transition(types.PhaseGraphBuilding)
	citegraph.Build(state)

	state.Transition(types.PhaseSynthesizing)
	if err := synthesis.Synthesize(ctx, e.gen, state, e.cfg.Synthesis); err != nil {
		return e.fail(state, err)
	}

	state.Transition(types.PhaseCompleted)

	e.log.Info("research run completed",
		zap.Int("sources", state.SourceCount()),
		zap.Int("findings", len(state.Findings)))

	researchID, err := e.store.Save(ctx, state)
	if err != nil {
		e.log.Error("save failed after completed run", zap.Error(err))
		return &Result{
			State:   state,
			SaveErr: fmt.Errorf("completed but not saved: %w", err),
		}, nil
	}

	return &Result{State: state, ResearchID: researchID}, nil
}

// fail marks the run failed at its current phase and wraps the cause.
func (e *Engine) fail(state *types.ResearchState, cause error) (*Result, error) {
	phase := state.Phase
	state.Transition(types.PhaseFailed)
	e.log.Error("research run failed",
		zap.String("phase", string(phase)),
		zap.Error(cause))
	return &Result{State: state}, &PhaseError{Phase: phase, Err: cause}
}
