// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package aggregate fans a query out to the configured source providers,
// normalizes their results into Source records, and merges them into a
// research state. Individual provider failures are tolerated.
// See docs/ARCHITECTURE.md § Aggregation.
package aggregate

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// RawResult is the minimal record a provider returns for one hit. Only
// URL and Title are required; everything else is best-effort metadata.
type RawResult struct {
	URL   string
	Title string

	Authors []string

	// Date is an opaque provider-reported publication date string.
	Date string

	// Snippet is an excerpt of the document text; truncated to
	// types.MaxSnippetLen during normalization.
	Snippet string

	CitationCount int

	// CitedURLs lists URLs of works this result is known to cite.
	CitedURLs []string
}

// Provider searches a single external source. "No results" is an empty
// list, not an error; errors and timeouts are skippable transport
// failures.
type Provider interface {
	Name() string
	Type() types.SourceType
	Search(ctx context.Context, query string, cfg types.AggregateConfig) ([]RawResult, error)
}

// Aggregator fans queries out to all configured providers concurrently.
type Aggregator struct {
	providers []Provider
	cfg       types.AggregateConfig
	log       *zap.Logger
}

// New creates an Aggregator over the given providers.
func New(providers []Provider, cfg types.AggregateConfig, log *zap.Logger) *Aggregator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Aggregator{providers: providers, cfg: cfg, log: log}
}

// Output holds the outcome of one aggregation fan-out.
type Output struct {
	// Added is the number of sources newly inserted into the state.
	Added int

	// Duplicates counts results whose source ID was already present.
	Duplicates int

	// ProviderErrors records per-provider failures, formatted
	// "name: error". A failed provider never aborts the others.
	ProviderErrors []string
}

// Aggregate queries every provider concurrently, bounded by one worker
// per provider, and merges the normalized results into state. The merge
// is insert-if-absent keyed by source ID, so the final source set does
// not depend on provider completion order.
func (a *Aggregator) Aggregate(ctx context.Context, query string, state *types.ResearchState) (Output, error) {
	if strings.TrimSpace(query) == "" {
		return Output{}, fmt.Errorf("query is empty")
	}
	if len(a.providers) == 0 {
		return Output{}, fmt.Errorf("no source providers configured")
	}

	type providerResult struct {
		name    string
		stype   types.SourceType
		results []RawResult
		err     error
	}

	ch := make(chan providerResult, len(a.providers))
	var wg sync.WaitGroup

	for _, p := range a.providers {
		wg.Add(1)
		go func(p Provider) {
			defer wg.Done()
			pctx := ctx
			if a.cfg.Timeout > 0 {
				var cancel context.CancelFunc
				pctx, cancel = context.WithTimeout(ctx, a.cfg.Timeout)
				defer cancel()
			}
			results, err := p.Search(pctx, query, a.cfg)
			ch <- providerResult{name: p.Name(), stype: p.Type(), results: results, err: err}
		}(p)
	}

	go func() {
		wg.Wait()
		close(ch)
	}()

	var out Output
	for pr := range ch {
		if pr.err != nil {
			out.ProviderErrors = append(out.ProviderErrors, fmt.Sprintf("%s: %v", pr.name, pr.err))
			a.log.Warn("provider failed",
				zap.String("provider", pr.name),
				zap.Error(pr.err))
			continue
		}
		for _, raw := range pr.results {
			src, ok := Normalize(raw, pr.stype)
			if !ok {
				continue
			}
			if state.AddSource(src) {
				out.Added++
			} else {
				out.Duplicates++
			}
		}
	}

	a.log.Info("aggregation complete",
		zap.String("query", query),
		zap.Int("added", out.Added),
		zap.Int("duplicates", out.Duplicates),
		zap.Int("provider_errors", len(out.ProviderErrors)))

	return out, nil
}

// Normalize converts a raw provider hit into a Source record. Results
// without a URL have no identity and are dropped.
func Normalize(raw RawResult, stype types.SourceType) (*types.Source, bool) {
	if strings.TrimSpace(raw.URL) == "" {
		return nil, false
	}

	snippet := raw.Snippet
	if len(snippet) > types.MaxSnippetLen {
		snippet = snippet[:types.MaxSnippetLen]
	}

	citations := raw.CitationCount
	if citations < 0 {
		citations = 0
	}

	var outbound []string
	seen := make(map[string]bool)
	for _, cited := range raw.CitedURLs {
		if strings.TrimSpace(cited) == "" {
			continue
		}
		id := types.SourceID(cited)
		if !seen[id] {
			seen[id] = true
			outbound = append(outbound, id)
		}
	}

	return &types.Source{
		ID:                types.SourceID(raw.URL),
		URL:               raw.URL,
		Title:             strings.TrimSpace(raw.Title),
		Authors:           raw.Authors,
		PublicationDate:   raw.Date,
		Type:              stype,
		ContentSnippet:    snippet,
		CitationCount:     citations,
		OutboundCitations: outbound,
	}, true
}
