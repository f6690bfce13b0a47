package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make
// network requests.
type HTTPConfig struct {
	// Timeout is the per-request timeout applied to each provider call.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "research-assistant/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// AggregateConfig holds settings for the source aggregation phase.
type AggregateConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the maximum number of results requested per provider
	// per query (default 10).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// EnableAcademic controls whether the academic provider is used.
	EnableAcademic bool `json:"enable_academic" yaml:"enable_academic"`

	// EnableWeb controls whether the web search provider is used.
	EnableWeb bool `json:"enable_web" yaml:"enable_web"`

	// EnableNewsroom controls whether the newsroom feed provider is used.
	EnableNewsroom bool `json:"enable_newsroom" yaml:"enable_newsroom"`

	// OpenAlexEmail is sent as the mailto parameter for polite pool access.
	OpenAlexEmail string `json:"openalex_email,omitempty" yaml:"openalex_email,omitempty"`

	// SerpAPIKey authenticates against the web search API. When empty the
	// web provider falls back to scraping the public results page.
	SerpAPIKey string `json:"serpapi_key,omitempty" yaml:"serpapi_key,omitempty"`

	// NewsFeedURL is the RSS/Atom feed the newsroom provider reads.
	NewsFeedURL string `json:"news_feed_url,omitempty" yaml:"news_feed_url,omitempty"`
}

// FollowConfig holds settings for the citation-following phase.
type FollowConfig struct {
	// MaxDepth bounds citation following; 1 disables it.
	MaxDepth int `json:"max_depth" yaml:"max_depth"`

	// FanOut is the number of top-authority sources whose titles become
	// follow-up queries at each depth (default 3).
	FanOut int `json:"fan_out" yaml:"fan_out"`
}

// CrossRefConfig holds settings for the cross-referencing phase.
type CrossRefConfig struct {
	// MaxFindings caps the findings list (default 50). Candidates beyond
	// the cap are discarded.
	MaxFindings int `json:"max_findings" yaml:"max_findings"`

	// MinTokenLen is the minimum length of a salient term (default 5).
	MinTokenLen int `json:"min_token_len" yaml:"min_token_len"`
}

// AIConfig holds shared settings for the text-generation call.
type AIConfig struct {
	// Backend selects the generation API: "anthropic" or "openai".
	Backend string `json:"backend" yaml:"backend"`

	// Model is the model identifier.
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the generation API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// SynthesisConfig holds settings for the synthesis phase.
type SynthesisConfig struct {
	AIConfig `yaml:",inline"`

	// MaxFindings is the number of findings included in the prompt
	// (default 10).
	MaxFindings int `json:"max_findings" yaml:"max_findings"`

	// MaxSources is the number of authority-ranked sources included in
	// the prompt (default 10).
	MaxSources int `json:"max_sources" yaml:"max_sources"`
}

// StoreConfig holds settings for the persistence layer.
type StoreConfig struct {
	// DataDir is the directory holding the research database
	// (default "data").
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// EngineConfig groups all phase configurations for one research run.
type EngineConfig struct {
	Aggregate AggregateConfig `json:"aggregate" yaml:"aggregate"`
	Follow    FollowConfig    `json:"follow" yaml:"follow"`
	CrossRef  CrossRefConfig  `json:"cross_ref" yaml:"cross_ref"`
	Synthesis SynthesisConfig `json:"synthesis" yaml:"synthesis"`
	Store     StoreConfig     `json:"store" yaml:"store"`
}
