// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aggregate

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// NewsroomProvider reads a curated RSS or Atom feed and filters items
// against the query. Feeds do not support server-side search, so the
// match happens client-side over title and description.
type NewsroomProvider struct {
	Client *http.Client
}

// Name returns the provider identifier.
func (p *NewsroomProvider) Name() string { return "newsroom" }

// Type returns the source class this provider produces.
func (p *NewsroomProvider) Type() types.SourceType { return types.SourceNewsroom }

// Search fetches the configured feed and returns items whose title or
// description mentions any query term.
func (p *NewsroomProvider) Search(ctx context.Context, query string, cfg types.AggregateConfig) ([]RawResult, error) {
	if cfg.NewsFeedURL == "" {
		return nil, fmt.Errorf("no news feed URL configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.NewsFeedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned HTTP %d", resp.StatusCode)
	}

	var feed newsFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing feed: %w", err)
	}

	items := make([]feedItem, 0, len(feed.Channel.Items)+len(feed.Entries))
	for _, it := range feed.Channel.Items {
		items = append(items, feedItem{
			title: it.Title, link: it.Link, text: it.Description, date: it.PubDate,
		})
	}
	for _, e := range feed.Entries {
		items = append(items, feedItem{
			title: e.Title, link: e.Link.Href, text: e.Summary, date: e.Updated,
		})
	}

	max := cfg.MaxResults
	if max <= 0 {
		max = 10
	}

	terms := strings.Fields(strings.ToLower(query))

	var results []RawResult
	for _, item := range items {
		if len(results) >= max {
			break
		}
		link := strings.TrimSpace(item.link)
		if link == "" || !matchesAny(item.title+" "+item.text, terms) {
			continue
		}
		results = append(results, RawResult{
			URL:     link,
			Title:   strings.TrimSpace(item.title),
			Snippet: strings.TrimSpace(item.text),
			Date:    item.date,
		})
	}
	return results, nil
}

// feedItem is the format-neutral view of one feed entry.
type feedItem struct {
	title string
	link  string
	text  string
	date  string
}

// matchesAny reports whether text contains at least one of the terms,
// case-insensitively. An empty term list matches everything.
func matchesAny(text string, terms []string) bool {
	if len(terms) == 0 {
		return true
	}
	lower := strings.ToLower(text)
	for _, t := range terms {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}

// Feed XML structures. RSS 2.0 wraps items in <channel>; Atom puts
// <entry> elements directly under the root.
type newsFeed struct {
	Channel rssChannel  `xml:"channel"`
	Entries []atomEntry `xml:"entry"`
}

type rssChannel struct {
	Items []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
}

type atomEntry struct {
	Title   string   `xml:"title"`
	Link    atomLink `xml:"link"`
	Summary string   `xml:"summary"`
	Updated string   `xml:"updated"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
}
