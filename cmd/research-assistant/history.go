// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-assistant/internal/store"
	"github.com/pdiddy/research-assistant/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history [filter]",
	Short: "List saved research runs",
	Long: `History lists saved research runs, newest first. An optional filter
matches as a substring against the stored queries.`,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	dataDir, _ := cmd.Flags().GetString("data-dir")
	limit, _ := cmd.Flags().GetInt("limit")

	st, err := store.Open(types.StoreConfig{DataDir: dataDir})
	if err != nil {
		return err
	}
	defer st.Close()

	filter := ""
	if len(args) > 0 {
		filter = strings.Join(args, " ")
	}

	summaries, err := st.Search(context.Background(), filter, limit)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summaries)
	}

	if len(summaries) == 0 {
		fmt.Println("No saved research runs.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-36s  %-19s  %-7s  %s\n",
		"ID", "Date", "Sources", "Query")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))

	for _, s := range summaries {
		query := s.Query
		if len(query) > 40 {
			query = query[:37] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-36s  %-19s  %-7d  %s\n",
			s.ResearchID, s.CreatedAt.Format("2006-01-02 15:04:05"), s.SourceCount, query)
	}

	fmt.Fprintf(os.Stdout, "\n%d runs\n", len(summaries))
	return nil
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum runs to list")
	historyCmd.Flags().Bool("json", false, "output summaries as JSON")

	rootCmd.AddCommand(historyCmd)
}
