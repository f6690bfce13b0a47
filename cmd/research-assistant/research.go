// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/research-assistant/internal/aggregate"
	"github.com/pdiddy/research-assistant/internal/engine"
	"github.com/pdiddy/research-assistant/internal/follow"
	"github.com/pdiddy/research-assistant/internal/store"
	"github.com/pdiddy/research-assistant/internal/synthesis"
	"github.com/pdiddy/research-assistant/pkg/types"
)

var researchCmd = &cobra.Command{
	Use:   "research [query]",
	Short: "Run a research query through the full pipeline",
	Long: `Research fans the query out to the configured source providers,
follows citation trails up to --depth, cross-references claims, scores
source credibility, ranks sources by citation authority, and synthesizes
a cited answer. Completed runs are saved to the local database.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResearch,
}

func runResearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	cfg := engineConfigFromFlags(cmd)

	verbose, _ := cmd.Flags().GetBool("verbose")
	log, err := newLogger(verbose)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer log.Sync()

	gen, err := newGenerator(cfg.Synthesis)
	if err != nil {
		return err
	}

	st, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	client := &http.Client{Timeout: cfg.Aggregate.Timeout}
	providers := enabledProviders(cfg.Aggregate, client)

	agg := aggregate.New(providers, cfg.Aggregate, log)
	follower := follow.New(agg, cfg.Follow, log)
	eng := engine.New(agg, follower, gen, st, cfg, log)

	depth := cfg.Follow.MaxDepth
	if cmd.Flags().Changed("depth") || depth <= 0 {
		depth, _ = cmd.Flags().GetInt("depth")
	}
	result, err := eng.Run(context.Background(), query, depth)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result.State)
	}

	printRun(result)

	if result.SaveErr != nil {
		return result.SaveErr
	}
	return nil
}

// printRun writes the human-readable run outcome to stdout.
func printRun(result *engine.Result) {
	state := result.State

	fmt.Println(state.Synthesis)
	fmt.Println()
	fmt.Printf("%d sources, %d findings, depth %d, %s\n",
		state.SourceCount(), len(state.Findings), state.MaxDepth,
		state.CompletedAt.Sub(state.StartedAt).Round(time.Millisecond))

	if result.ResearchID != "" {
		fmt.Printf("Saved as %s\n", result.ResearchID)
	}
}

// enabledProviders builds the provider list from config. Each provider
// shares the same HTTP client; per-call timeouts come from the
// aggregator's context.
func enabledProviders(cfg types.AggregateConfig, client *http.Client) []aggregate.Provider {
	var providers []aggregate.Provider
	if cfg.EnableAcademic {
		providers = append(providers, &aggregate.AcademicProvider{Client: client})
	}
	if cfg.EnableWeb {
		providers = append(providers, &aggregate.WebProvider{Client: client})
	}
	if cfg.EnableNewsroom {
		providers = append(providers, &aggregate.NewsroomProvider{Client: client})
	}
	return providers
}

// newGenerator selects the text-generation backend from config.
func newGenerator(cfg types.SynthesisConfig) (synthesis.Generator, error) {
	switch cfg.Backend {
	case "anthropic", "":
		return &synthesis.AnthropicGenerator{
			APIKey: secretDefault("anthropic-api-key", cfg.APIKey),
			Model:  cfg.Model,
		}, nil
	case "openai":
		return synthesis.NewOpenAIGenerator(secretDefault("openai-api-key", cfg.APIKey), cfg.Model), nil
	default:
		return nil, fmt.Errorf("unsupported synthesis backend %q: use anthropic or openai", cfg.Backend)
	}
}

// engineConfigFromFlags merges config-file values with command flags.
// Flags win when set.
func engineConfigFromFlags(cmd *cobra.Command) types.EngineConfig {
	cfg := types.EngineConfig{
		Aggregate: types.AggregateConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("aggregate.timeout"),
				UserAgent: viper.GetString("aggregate.user_agent"),
			},
			MaxResults:     viper.GetInt("aggregate.max_results"),
			EnableAcademic: true,
			EnableWeb:      true,
			EnableNewsroom: true,
			OpenAlexEmail:  secretDefault("openalex-email", viper.GetString("aggregate.openalex_email")),
			SerpAPIKey:     secretDefault("serpapi-api-key", viper.GetString("aggregate.serpapi_key")),
			NewsFeedURL:    viper.GetString("aggregate.news_feed_url"),
		},
		Follow: types.FollowConfig{
			MaxDepth: viper.GetInt("follow.max_depth"),
			FanOut:   viper.GetInt("follow.fan_out"),
		},
		CrossRef: types.CrossRefConfig{
			MaxFindings: viper.GetInt("cross_ref.max_findings"),
			MinTokenLen: viper.GetInt("cross_ref.min_token_len"),
		},
		Synthesis: types.SynthesisConfig{
			AIConfig: types.AIConfig{
				Backend: viper.GetString("synthesis.backend"),
				Model:   viper.GetString("synthesis.model"),
			},
			MaxFindings: viper.GetInt("synthesis.max_findings"),
			MaxSources:  viper.GetInt("synthesis.max_sources"),
		},
		Store: types.StoreConfig{
			DataDir: viper.GetString("store.data_dir"),
		},
	}

	if cfg.Aggregate.Timeout <= 0 {
		cfg.Aggregate.Timeout = 15 * time.Second
	}
	if cfg.Aggregate.UserAgent == "" {
		cfg.Aggregate.UserAgent = "research-assistant/" + version
	}
	if cfg.Synthesis.Model == "" {
		cfg.Synthesis.Model = "claude-sonnet-4-5-20250929"
	}

	if v, _ := cmd.Flags().GetInt("max-results"); v > 0 {
		cfg.Aggregate.MaxResults = v
	}
	if v, _ := cmd.Flags().GetInt("fan-out"); v > 0 {
		cfg.Follow.FanOut = v
	}
	if v, _ := cmd.Flags().GetString("news-feed"); v != "" {
		cfg.Aggregate.NewsFeedURL = v
	}
	if v, _ := cmd.Flags().GetString("backend"); v != "" {
		cfg.Synthesis.Backend = v
	}
	if v, _ := cmd.Flags().GetString("model"); v != "" {
		cfg.Synthesis.Model = v
	}
	if v, _ := cmd.Flags().GetString("data-dir"); v != "" {
		cfg.Store.DataDir = v
	}

	if noAcademic, _ := cmd.Flags().GetBool("no-academic"); noAcademic {
		cfg.Aggregate.EnableAcademic = false
	}
	if noWeb, _ := cmd.Flags().GetBool("no-web"); noWeb {
		cfg.Aggregate.EnableWeb = false
	}
	if noNews, _ := cmd.Flags().GetBool("no-newsroom"); noNews {
		cfg.Aggregate.EnableNewsroom = false
	}
	if cfg.Aggregate.NewsFeedURL == "" {
		cfg.Aggregate.EnableNewsroom = false
	}

	return cfg
}

func init() {
	researchCmd.Flags().Int("depth", 1, "citation-following depth (1 disables following)")
	researchCmd.Flags().Int("fan-out", 3, "follow-up queries per citation depth")
	researchCmd.Flags().Int("max-results", 10, "maximum results per provider per query")
	researchCmd.Flags().String("news-feed", "", "RSS/Atom feed URL for the newsroom provider")
	researchCmd.Flags().String("backend", "", "synthesis backend: anthropic or openai")
	researchCmd.Flags().String("model", "", "synthesis model identifier")
	researchCmd.Flags().Bool("no-academic", false, "disable the academic provider")
	researchCmd.Flags().Bool("no-web", false, "disable the web search provider")
	researchCmd.Flags().Bool("no-newsroom", false, "disable the newsroom provider")
	researchCmd.Flags().Bool("json", false, "output the full research state as JSON")

	rootCmd.AddCommand(researchCmd)
}
