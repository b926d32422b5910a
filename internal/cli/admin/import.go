package admin

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cloo-solutions/lexsearch/internal/dataset"
	"github.com/cloo-solutions/lexsearch/internal/repository"
	"github.com/cloo-solutions/lexsearch/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ImportCmd returns the import command
func ImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <path|s3://bucket/key>",
		Short: "Import a CSV dataset of legal cases",
		Long: `Import a CSV dataset from a local file or an S3 object.

Required columns: english, batch, sentence_number, doc_id.
Optional columns: tamil, court_type, case_category, date_decided, title, summary.
Invalid and duplicate rows are skipped and reported.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	cmd.Flags().Bool("errors", false, "Print every reported row error")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, log, err := loadRuntime()
	if err != nil {
		return err
	}
	defer log.Sync()

	store, err := newObjectStore(ctx, cfg)
	if err != nil {
		return err
	}
	loader := dataset.NewLoader(nil)
	if store != nil {
		loader = dataset.NewLoader(store)
	}

	rows, err := loader.Load(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to read dataset: %w", err)
	}
	log.Info("dataset loaded", zap.String("location", args[0]), zap.Int("rows", len(rows)))

	pool, err := openPool(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	importer := service.NewImportService(repository.NewCaseRepository(pool), log.Named("import"))
	result, err := importer.Import(ctx, rows)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, result.Message())
	if result.Failed > 0 {
		fmt.Fprintf(out, "%d rows skipped\n", result.Failed)
	}
	if verbose, _ := cmd.Flags().GetBool("errors"); verbose {
		for _, e := range result.Errors {
			fmt.Fprintf(out, "  row %d (%s): %s\n", e.Row, e.DocID, e.Reason)
		}
	}
	return nil
}
