// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aggregate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/research-assistant/internal/httputil"
	"github.com/pdiddy/research-assistant/pkg/types"
)

// Endpoints are vars so tests can substitute httptest servers.
var (
	serpAPIBase       = "https://serpapi.com/search"
	webScrapeFallback = "https://html.duckduckgo.com/html/"
)

// WebProvider queries a general web search API. With an API key it uses
// the SerpAPI JSON endpoint; without one it scrapes the public HTML
// results page.
type WebProvider struct {
	Client *http.Client
}

// Name returns the provider identifier.
func (p *WebProvider) Name() string { return "websearch" }

// Type returns the source class this provider produces.
func (p *WebProvider) Type() types.SourceType { return types.SourceWeb }

// Search queries the web search backend and returns raw results. Web
// results carry no citation counts or outbound citations.
func (p *WebProvider) Search(ctx context.Context, query string, cfg types.AggregateConfig) ([]RawResult, error) {
	if cfg.SerpAPIKey != "" {
		return p.searchSerpAPI(ctx, query, cfg)
	}
	return p.searchScrape(ctx, query, cfg)
}

func (p *WebProvider) searchSerpAPI(ctx context.Context, query string, cfg types.AggregateConfig) ([]RawResult, error) {
	params := url.Values{
		"q":       {query},
		"api_key": {cfg.SerpAPIKey},
		"engine":  {"google"},
	}
	reqURL := serpAPIBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, p.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("search API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search API returned HTTP %d", resp.StatusCode)
	}

	var sr serpResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing search response: %w", err)
	}

	max := cfg.MaxResults
	if max <= 0 {
		max = 10
	}

	var results []RawResult
	for _, org := range sr.OrganicResults {
		if len(results) >= max {
			break
		}
		if org.Link == "" {
			continue
		}
		results = append(results, RawResult{
			URL:     org.Link,
			Title:   org.Title,
			Snippet: org.Snippet,
			Date:    org.Date,
		})
	}
	return results, nil
}

// searchScrape parses the public HTML results page with goquery. Selector
// layout follows the DuckDuckGo HTML endpoint.
func (p *WebProvider) searchScrape(ctx context.Context, query string, cfg types.AggregateConfig) ([]RawResult, error) {
	reqURL := webScrapeFallback + "?" + url.Values{"q": {query}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("results page request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("results page returned HTTP %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing results page: %w", err)
	}

	max := cfg.MaxResults
	if max <= 0 {
		max = 10
	}

	var results []RawResult
	doc.Find("div.result").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		link := s.Find("a.result__a")
		href, ok := link.Attr("href")
		if !ok || href == "" {
			return true
		}
		results = append(results, RawResult{
			URL:     resolveRedirect(href),
			Title:   strings.TrimSpace(link.Text()),
			Snippet: strings.TrimSpace(s.Find(".result__snippet").Text()),
		})
		return len(results) < max
	})
	return results, nil
}

// resolveRedirect unwraps the uddg redirect parameter the HTML endpoint
// wraps around result links. Unwrappable links are returned as-is.
func resolveRedirect(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	if u.Scheme == "" {
		return "https:" + href
	}
	return href
}

// SerpAPI JSON structures.
type serpResponse struct {
	OrganicResults []serpOrganic `json:"organic_results"`
}

type serpOrganic struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
	Date    string `json:"date"`
}
