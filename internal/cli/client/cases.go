package client

import (
	"fmt"
	"io"
	"net/url"
	"sort"

	"github.com/spf13/cobra"
)

// CaseCmd creates the case command.
func CaseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "case <id>",
		Short: "Show a single case",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var c Case
			if err := NewAPIClientWithCmd(cmd).Get(cmd.Context(), "/cases/"+url.PathEscape(args[0]), &c); err != nil {
				return fmt.Errorf("failed to get case: %w", err)
			}

			if wantsJSON(cmd) {
				return printJSON(cmd.OutOrStdout(), c)
			}
			printCase(cmd.OutOrStdout(), &c)
			return nil
		},
	}
}

func printCase(w io.Writer, c *Case) {
	fmt.Fprintf(w, "ID:       %s\n", c.ID)
	fmt.Fprintf(w, "Document: %s (batch %s, sentence %d)\n", c.DocID, c.Batch, c.SentenceNumber)
	if t := deref(c.Title); t != "" {
		fmt.Fprintf(w, "Title:    %s\n", t)
	}
	if v := deref(c.CourtType); v != "" {
		fmt.Fprintf(w, "Court:    %s\n", v)
	}
	if v := deref(c.CaseCategory); v != "" {
		fmt.Fprintf(w, "Category: %s\n", v)
	}
	if c.DateDecided != nil {
		fmt.Fprintf(w, "Decided:  %s\n", c.DateDecided.Format("2006-01-02"))
	}
	fmt.Fprintf(w, "\n%s\n", c.English)
	if v := deref(c.Tamil); v != "" {
		fmt.Fprintf(w, "\n%s\n", v)
	}
	if v := deref(c.AISummary); v != "" {
		fmt.Fprintf(w, "\nAI summary (relevance %d):\n%s\n", c.RelevanceScore, v)
	}
}

// StatsCmd creates the stats command.
func StatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show database statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var s Stats
			if err := NewAPIClientWithCmd(cmd).Get(cmd.Context(), "/stats", &s); err != nil {
				return fmt.Errorf("failed to get stats: %w", err)
			}

			if wantsJSON(cmd) {
				return printJSON(cmd.OutOrStdout(), s)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Total cases:         %d\n", s.TotalCases)
			fmt.Fprintf(w, "Languages supported: %d\n", s.LanguagesSupported)
			fmt.Fprintf(w, "Court jurisdictions: %d\n", s.CourtJurisdictions)
			fmt.Fprintf(w, "Last updated:        %s\n", s.LastUpdated.Format("2006-01-02 15:04"))
			if len(s.CategoriesCount) > 0 {
				fmt.Fprintln(w, "Categories:")
				names := make([]string, 0, len(s.CategoriesCount))
				for name := range s.CategoriesCount {
					names = append(names, name)
				}
				sort.Strings(names)
				for _, name := range names {
					fmt.Fprintf(w, "  %-20s %d\n", name, s.CategoriesCount[name])
				}
			}
			return nil
		},
	}
}
