package main

import (
	"fmt"
	"os"

	"github.com/cloo-solutions/lexsearch/internal/cli"
	"github.com/cloo-solutions/lexsearch/internal/cli/admin"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "lexsearchd",
		Short:        "Lexsearch daemon and admin CLI",
		Long:         "Lexsearch daemon for serving the search API, migrating the schema and importing datasets",
		SilenceUsage: true,
	}

	cli.AddHelpJSONFlag(rootCmd)
	rootCmd.AddCommand(admin.ServeCmd())
	rootCmd.AddCommand(admin.MigrateCmd())
	rootCmd.AddCommand(admin.ImportCmd())
	rootCmd.AddCommand(admin.PushCmd())

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
