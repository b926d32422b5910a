package client

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// SearchCmd creates the search command.
func SearchCmd() *cobra.Command {
	var (
		filters SearchFilters
		page    int
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search legal cases",
		Long:  "Searches cases by text across English, Tamil and titles, with optional filters.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := SearchRequest{
				Query: strings.Join(args, " "),
				Page:  page,
				Limit: limit,
			}
			if filters != (SearchFilters{}) {
				req.Filters = &filters
			}

			var resp SearchResponse
			if err := NewAPIClientWithCmd(cmd).Post(cmd.Context(), "/search", req, &resp); err != nil {
				return fmt.Errorf("search failed: %w", err)
			}

			if wantsJSON(cmd) {
				return printJSON(cmd.OutOrStdout(), resp)
			}
			printSearch(cmd.OutOrStdout(), &resp, req.Page)
			return nil
		},
	}

	cmd.Flags().StringVarP(&filters.Language, "language", "l", "", "Filter by language (english, tamil, bilingual)")
	cmd.Flags().StringVar(&filters.CourtType, "court", "", "Filter by court type")
	cmd.Flags().StringVarP(&filters.Category, "category", "c", "", "Filter by case category")
	cmd.Flags().StringVar(&filters.DateFrom, "from", "", "Decided on or after (YYYY-MM-DD)")
	cmd.Flags().StringVar(&filters.DateTo, "to", "", "Decided on or before (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&filters.EnableAISummary, "ai-summary", false, "Generate AI summaries for results")
	cmd.Flags().BoolVar(&filters.EnableRanking, "ranking", false, "Order results by relevance score")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "Page number")
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Results per page (max 100)")

	return cmd
}

func printSearch(w io.Writer, resp *SearchResponse, page int) {
	if len(resp.Cases) == 0 {
		fmt.Fprintln(w, "No cases found.")
		return
	}

	fmt.Fprintf(w, "Found %d cases (page %d, %dms):\n\n", resp.TotalCount, page, resp.ProcessingTime)
	for i, c := range resp.Cases {
		title := deref(c.Title)
		if title == "" {
			title = c.DocID
		}
		fmt.Fprintf(w, "%d. %s", i+1, title)
		if c.RelevanceScore > 0 {
			fmt.Fprintf(w, " (%d)", c.RelevanceScore)
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "   %s\n", truncate(c.English, 100))
		if s := deref(c.AISummary); s != "" {
			fmt.Fprintf(w, "   AI: %s\n", truncate(s, 100))
		}
		fmt.Fprintf(w, "   ID: %s\n", c.ID)
		if i < len(resp.Cases)-1 {
			fmt.Fprintln(w, strings.Repeat("-", 40))
		}
	}
	if resp.QueryAnalysis != nil {
		fmt.Fprintf(w, "\nIntent: %s, category: %s\n", resp.QueryAnalysis.Intent, resp.QueryAnalysis.Category)
	}
}

// SuggestCmd creates the suggest command.
func SuggestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <partial query>",
		Short: "Suggest completions for a partial query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"query": strings.Join(args, " ")}

			var resp struct {
				Suggestions []string `json:"suggestions"`
			}
			if err := NewAPIClientWithCmd(cmd).Post(cmd.Context(), "/search/suggestions", req, &resp); err != nil {
				return fmt.Errorf("suggestions failed: %w", err)
			}

			if wantsJSON(cmd) {
				return printJSON(cmd.OutOrStdout(), resp)
			}
			if len(resp.Suggestions) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No suggestions.")
				return nil
			}
			for _, s := range resp.Suggestions {
				fmt.Fprintln(cmd.OutOrStdout(), s)
			}
			return nil
		},
	}
}
