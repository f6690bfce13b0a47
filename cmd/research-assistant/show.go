// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/research-assistant/internal/citegraph"
	"github.com/pdiddy/research-assistant/internal/store"
	"github.com/pdiddy/research-assistant/pkg/types"
)

var showCmd = &cobra.Command{
	Use:   "show [research-id]",
	Short: "Display one saved research run",
	Long: `Show loads a saved run by its research ID and prints the synthesis,
the findings, and the sources ranked by authority. Use --format yaml or
--format json for the full serialized record.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	dataDir, _ := cmd.Flags().GetString("data-dir")

	st, err := store.Open(types.StoreConfig{DataDir: dataDir})
	if err != nil {
		return err
	}
	defer st.Close()

	state, err := st.Load(context.Background(), args[0])
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("no research run with ID %s", args[0])
	}
	if err != nil {
		return err
	}

	switch format, _ := cmd.Flags().GetString("format"); format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(state)
	case "yaml":
		data, err := yaml.Marshal(state)
		if err != nil {
			return fmt.Errorf("marshaling record: %w", err)
		}
		_, err = os.Stdout.Write(data)
		return err
	case "", "text":
		// fall through to the human-readable view
	default:
		return fmt.Errorf("unsupported format %q: use text, yaml, or json", format)
	}

	fmt.Printf("Query: %s\n", state.Query)
	fmt.Printf("Date:  %s\n\n", state.StartedAt.Format("2006-01-02 15:04:05"))
	fmt.Println(state.Synthesis)

	if len(state.Findings) > 0 {
		fmt.Printf("\nFindings (%d):\n", len(state.Findings))
		for _, f := range state.Findings {
			fmt.Printf("  [%-6s] %s (%d sources, avg credibility %.2f)\n",
				f.Confidence, f.Claim, len(f.SupportingSources), f.AverageCredibility)
		}
	}

	ranked := citegraph.AuthorityRank(state, 0)
	if len(ranked) > 0 {
		fmt.Printf("\nSources (%d, by authority):\n", len(ranked))
		for i, src := range ranked {
			title := src.Title
			if len(title) > 60 {
				title = title[:57] + "..."
			}
			fmt.Printf("  %2d. %-60s  %.2f %-20s %s\n",
				i+1, title, src.CredibilityScore, src.CredibilityCategory, src.URL)
		}
	}

	return nil
}

func init() {
	showCmd.Flags().String("format", "text", "output format: text, yaml, or json")

	rootCmd.AddCommand(showCmd)
}
