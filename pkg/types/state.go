// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"sync"
	"time"
)

// Phase is the lifecycle state of one research run.
type Phase string

const (
	PhaseCreated            Phase = "created"
	PhaseAggregating        Phase = "aggregating"
	PhaseFollowingCitations Phase = "following_citations"
	PhaseCrossReferencing   Phase = "cross_referencing"
	PhaseScoring            Phase = "scoring"
	PhaseGraphBuilding      Phase = "graph_building"
	PhaseSynthesizing       Phase = "synthesizing"
	PhaseCompleted          Phase = "completed"
	PhaseFailed             Phase = "failed"
)

// Terminal reports whether the phase permits no further mutation.
func (p Phase) Terminal() bool {
	return p == PhaseCompleted || p == PhaseFailed
}

// ResearchState is the aggregate record of one research run. It is owned
// by a single engine run; concurrent provider results are merged through
// AddSource, which is the only synchronized entry point.
type ResearchState struct {
	Query    string `json:"query" yaml:"query"`
	MaxDepth int    `json:"max_depth" yaml:"max_depth"`

	// Sources is keyed by source ID. SourceOrder preserves discovery
	// order for deterministic tie-breaking in the authority ranking.
	Sources     map[string]*Source `json:"sources" yaml:"sources"`
	SourceOrder []string           `json:"source_order" yaml:"source_order"`

	Findings []Finding `json:"findings,omitempty" yaml:"findings,omitempty"`

	// CitationGraph maps a source ID to the IDs it cites. It mirrors the
	// union of each source's outbound citations once the graph phase runs.
	CitationGraph map[string][]string `json:"citation_graph,omitempty" yaml:"citation_graph,omitempty"`

	Synthesis string `json:"synthesis,omitempty" yaml:"synthesis,omitempty"`

	StartedAt   time.Time `json:"started_at" yaml:"started_at"`
	CompletedAt time.Time `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`

	Phase Phase `json:"phase" yaml:"phase"`

	mu sync.Mutex
}

// NewResearchState creates the state for a query submission. MaxDepth is
// clamped to a minimum of 1.
func NewResearchState(query string, maxDepth int) *ResearchState {
	if maxDepth < 1 {
		maxDepth = 1
	}
	return &ResearchState{
		Query:     query,
		MaxDepth:  maxDepth,
		Sources:   make(map[string]*Source),
		StartedAt: time.Now().UTC(),
		Phase:     PhaseCreated,
	}
}

// AddSource inserts a source if its ID is not already present and reports
// whether the insert happened. An existing record is never overwritten, so
// re-discovery during citation-following cannot disturb assigned scores.
func (s *ResearchState) AddSource(src *Source) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Sources[src.ID]; ok {
		return false
	}
	s.Sources[src.ID] = src
	s.SourceOrder = append(s.SourceOrder, src.ID)
	return true
}

// SourceByID returns the source with the given ID, or nil.
func (s *ResearchState) SourceByID(id string) *Source {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Sources[id]
}

// OrderedSources returns the collected sources in discovery order.
func (s *ResearchState) OrderedSources() []*Source {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Source, 0, len(s.SourceOrder))
	for _, id := range s.SourceOrder {
		out = append(out, s.Sources[id])
	}
	return out
}

// SourceCount returns the number of collected sources.
func (s *ResearchState) SourceCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Sources)
}

// Transition moves the run to the next phase. It panics if called on a
// terminal state, which would indicate an engine sequencing bug.
func (s *ResearchState) Transition(next Phase) {
	if s.Phase.Terminal() {
		panic("types: transition on terminal research state")
	}
	s.Phase = next
	if next.Terminal() {
		s.CompletedAt = time.Now().UTC()
	}
}
