// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aggregate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/pdiddy/research-assistant/internal/httputil"
	"github.com/pdiddy/research-assistant/pkg/types"
)

// openAlexSearchBase is the OpenAlex Works search endpoint. Declared as a
// var so tests can substitute an httptest server.
var openAlexSearchBase = "https://api.openalex.org/works"

// AcademicProvider queries the OpenAlex API. OpenAlex reports citation
// counts and the list of referenced works, which feed the credibility
// scorer and the citation graph.
type AcademicProvider struct {
	Client *http.Client
}

// Name returns the provider identifier.
func (p *AcademicProvider) Name() string { return "openalex" }

// Type returns the source class this provider produces.
func (p *AcademicProvider) Type() types.SourceType { return types.SourceAcademic }

// Search queries the OpenAlex API and returns raw results.
func (p *AcademicProvider) Search(ctx context.Context, query string, cfg types.AggregateConfig) ([]RawResult, error) {
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 10
	}
	if maxResults > 200 {
		maxResults = 200
	}

	params := url.Values{
		"search":   {query},
		"per_page": {fmt.Sprintf("%d", maxResults)},
		"page":     {"1"},
	}
	if cfg.OpenAlexEmail != "" {
		params.Set("mailto", cfg.OpenAlexEmail)
	}

	reqURL := openAlexSearchBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, p.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("OpenAlex API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OpenAlex API returned HTTP %d", resp.StatusCode)
	}

	var oar openAlexResponse
	if err := json.NewDecoder(resp.Body).Decode(&oar); err != nil {
		return nil, fmt.Errorf("parsing OpenAlex response: %w", err)
	}

	var results []RawResult
	for _, work := range oar.Results {
		r := RawResult{
			Title:         work.Title,
			Snippet:       reconstructAbstract(work.AbstractInvertedIndex),
			Date:          work.PublicationDate,
			CitationCount: work.CitedByCount,
			CitedURLs:     work.ReferencedWorks,
		}

		for _, authorship := range work.Authorships {
			if authorship.Author.DisplayName != "" {
				r.Authors = append(r.Authors, authorship.Author.DisplayName)
			}
		}

		// Prefer the DOI URL as the source identity; OpenAlex is
		// DOI-centric and the DOI survives re-discovery via other
		// providers.
		switch {
		case work.DOI != "":
			r.URL = work.DOI
		case work.ID != "":
			r.URL = work.ID
		default:
			continue
		}

		results = append(results, r)
	}
	return results, nil
}

// reconstructAbstract converts OpenAlex's abstract_inverted_index back to
// plain text. The inverted index maps each word to the positions where it
// appears.
func reconstructAbstract(invertedIndex map[string][]int) string {
	if len(invertedIndex) == 0 {
		return ""
	}

	type posWord struct {
		pos  int
		word string
	}
	var pairs []posWord
	for word, positions := range invertedIndex {
		for _, pos := range positions {
			pairs = append(pairs, posWord{pos: pos, word: word})
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].pos < pairs[j].pos
	})

	words := make([]string, len(pairs))
	for i, p := range pairs {
		words[i] = p.word
	}
	return strings.Join(words, " ")
}

// OpenAlex API JSON structures.
type openAlexResponse struct {
	Meta    openAlexMeta   `json:"meta"`
	Results []openAlexWork `json:"results"`
}

type openAlexMeta struct {
	Count   int `json:"count"`
	PerPage int `json:"per_page"`
	Page    int `json:"page"`
}

type openAlexWork struct {
	ID                    string               `json:"id"`
	Title                 string               `json:"title"`
	DOI                   string               `json:"doi"`
	PublicationDate       string               `json:"publication_date"`
	CitedByCount          int                  `json:"cited_by_count"`
	ReferencedWorks       []string             `json:"referenced_works"`
	Authorships           []openAlexAuthorship `json:"authorships"`
	AbstractInvertedIndex map[string][]int     `json:"abstract_inverted_index"`
}

type openAlexAuthorship struct {
	Author openAlexAuthor `json:"author"`
}

type openAlexAuthor struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}
