// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package synthesis formats the highest-authority sources and findings
// into a prompt and invokes the external text-generation capability.
// See docs/ARCHITECTURE.md § Synthesis.
package synthesis

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/pdiddy/research-assistant/internal/citegraph"
	"github.com/pdiddy/research-assistant/pkg/types"
)

const (
	defaultMaxFindings = 10
	defaultMaxSources  = 10
)

// Generator is the external text-generation capability. An empty
// response is a failure; the engine never substitutes placeholder text.
type Generator interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// synthesisPromptTmpl renders the final synthesis prompt. The section
// order and formatting are fixed so that identical state produces an
// identical prompt.
var synthesisPromptTmpl = template.Must(template.New("synthesis").
	Funcs(template.FuncMap{"inc": func(i int) int { return i + 1 }}).
	Parse(`You are a research synthesis assistant. Write a concise, well-organized answer to the research question below, grounded ONLY in the provided sources and findings.

Requirements:
- Cite sources inline by their bracketed number, e.g. [2].
- Give more weight to findings with higher confidence and to sources with higher credibility.
- Note disagreements or thin evidence explicitly; do not overstate.
- Do not introduce facts that are not supported by the listed sources.

Research question:
{{.Query}}

Cross-referenced findings ({{len .Findings}}):
{{range .Findings}}- [{{.Confidence}}, avg credibility {{printf "%.2f" .AverageCredibility}}, {{len .SupportingSources}} sources] {{.Claim}}
{{end}}
Top sources by authority:
{{range $i, $s := .Sources}}[{{inc $i}}] {{$s.Title}}
    URL: {{$s.URL}}
    Credibility: {{printf "%.2f" $s.CredibilityScore}} ({{$s.CredibilityCategory}})
{{end}}`))

// BuildPrompt renders the synthesis prompt from the research state:
// the original query, the top findings by confidence then average
// credibility, and the top authority-ranked sources.
func BuildPrompt(state *types.ResearchState, cfg types.SynthesisConfig) (string, error) {
	maxFindings := cfg.MaxFindings
	if maxFindings <= 0 {
		maxFindings = defaultMaxFindings
	}
	maxSources := cfg.MaxSources
	if maxSources <= 0 {
		maxSources = defaultMaxSources
	}

	findings := topFindings(state.Findings, maxFindings)
	sources := citegraph.AuthorityRank(state, maxSources)

	var buf bytes.Buffer
	err := synthesisPromptTmpl.Execute(&buf, struct {
		Query    string
		Findings []types.Finding
		Sources  []*types.Source
	}{
		Query:    state.Query,
		Findings: findings,
		Sources:  sources,
	})
	if err != nil {
		return "", fmt.Errorf("rendering synthesis prompt: %w", err)
	}
	return buf.String(), nil
}

// Synthesize builds the prompt and invokes the generator exactly once.
// Any failure, including an empty response, is returned to the caller;
// the engine treats it as fatal to the run.
func Synthesize(ctx context.Context, gen Generator, state *types.ResearchState, cfg types.SynthesisConfig) error {
	prompt, err := BuildPrompt(state, cfg)
	if err != nil {
		return err
	}

	text, err := gen.Generate(ctx, prompt)
	if err != nil {
		return fmt.Errorf("%s generation: %w", gen.Name(), err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("%s generation returned empty response", gen.Name())
	}

	state.Synthesis = text
	return nil
}

// confidenceRank orders tiers for prompt selection.
var confidenceRank = map[types.Confidence]int{
	types.ConfidenceHigh:   0,
	types.ConfidenceMedium: 1,
	types.ConfidenceLow:    2,
}

// topFindings returns up to n findings ordered by confidence tier, then
// average credibility descending. The sort is stable over creation
// order, keeping the selection deterministic.
func topFindings(findings []types.Finding, n int) []types.Finding {
	sorted := make([]types.Finding, len(findings))
	copy(sorted, findings)

	sort.SliceStable(sorted, func(i, j int) bool {
		ri, rj := confidenceRank[sorted[i].Confidence], confidenceRank[sorted[j].Confidence]
		if ri != rj {
			return ri < rj
		}
		return sorted[i].AverageCredibility > sorted[j].AverageCredibility
	})

	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
