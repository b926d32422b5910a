package admin

import (
	"fmt"

	"github.com/cloo-solutions/lexsearch/internal/database"
	"github.com/spf13/cobra"
)

// MigrateCmd returns the migrate command
func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "migrate [up|down|version]",
		Short:     "Manage the database schema",
		Long:      "Apply (up), revert (down) or inspect (version) the embedded migrations. Defaults to up.",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down", "version"},
		RunE:      runMigrate,
	}
	return cmd
}

func runMigrate(cmd *cobra.Command, args []string) error {
	action := "up"
	if len(args) == 1 {
		action = args[0]
	}

	cfg, log, err := loadRuntime()
	if err != nil {
		return err
	}
	defer log.Sync()

	var status database.MigrationStatus
	switch action {
	case "version":
		status, err = database.Version(cfg.DatabaseURL)
	case "down":
		status, err = database.Migrate(cfg.DatabaseURL, database.Down, log)
	default:
		status, err = database.Migrate(cfg.DatabaseURL, database.Up, log)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if status.Dirty {
		fmt.Fprintf(out, "Schema version %d (dirty)\n", status.Version)
		return nil
	}
	if action != "version" && !status.Changed {
		fmt.Fprintf(out, "No change, schema at version %d\n", status.Version)
		return nil
	}
	fmt.Fprintf(out, "Schema at version %d\n", status.Version)
	return nil
}
