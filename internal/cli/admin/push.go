package admin

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cloo-solutions/lexsearch/internal/dataset"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// PushCmd returns the dataset-push command
func PushCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dataset-push <file.csv> [key]",
		Short: "Upload a CSV dataset to object storage",
		Long: `Validate a local CSV dataset and upload it to the configured bucket.
The printed s3:// location can be passed to 'lexsearchd import'.
The key defaults to the file name.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runPush,
	}
	return cmd
}

func runPush(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	path := args[0]
	key := filepath.Base(path)
	if len(args) == 2 {
		key = args[1]
	}

	cfg, log, err := loadRuntime()
	if err != nil {
		return err
	}
	defer log.Sync()

	store, err := newObjectStore(ctx, cfg)
	if err != nil {
		return err
	}
	if store == nil {
		return errors.New("object storage is not configured (set LEXSEARCH_S3_ACCESS_KEY_ID and LEXSEARCH_S3_SECRET_ACCESS_KEY)")
	}

	// Reject malformed files before they reach the bucket.
	rows, err := dataset.NewLoader(nil).Load(ctx, path)
	if err != nil {
		return fmt.Errorf("invalid dataset: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	if err := store.EnsureBucket(ctx); err != nil {
		return err
	}
	if err := store.PutObject(ctx, key, "text/csv", f); err != nil {
		return err
	}

	meta, err := store.HeadObject(ctx, "", key)
	if err != nil {
		return err
	}

	location := fmt.Sprintf("s3://%s/%s", store.Bucket(), key)
	log.Info("dataset uploaded",
		zap.String("location", location),
		zap.Int("rows", len(rows)),
		zap.Int64("bytes", meta.ContentLength),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %d rows (%d bytes) to %s\n", len(rows), meta.ContentLength, location)
	return nil
}
