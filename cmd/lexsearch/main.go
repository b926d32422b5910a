package main

import (
	"fmt"
	"os"

	"github.com/cloo-solutions/lexsearch/internal/cli"
	"github.com/cloo-solutions/lexsearch/internal/cli/client"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "lexsearch",
		Short: "Lexsearch CLI - search bilingual legal case records",
		Long: `Lexsearch CLI queries a lexsearch server.

Environment variables:
  LEXSEARCH_API_URL       API base URL (default: http://localhost:8080)
  LEXSEARCH_ADMIN_TOKEN   Bearer token for admin commands`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().Bool("output", false, "Output as JSON")
	rootCmd.PersistentFlags().String("api-url", "", "API base URL (overrides env)")
	rootCmd.PersistentFlags().String("admin-token", "", "Admin bearer token (overrides env)")
	cli.AddHelpJSONFlag(rootCmd)

	rootCmd.AddCommand(client.SearchCmd())
	rootCmd.AddCommand(client.SuggestCmd())
	rootCmd.AddCommand(client.CaseCmd())
	rootCmd.AddCommand(client.StatsCmd())
	rootCmd.AddCommand(client.ImportCmd())

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
