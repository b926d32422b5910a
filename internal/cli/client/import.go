package client

import (
	"fmt"
	"os"

	"github.com/cloo-solutions/lexsearch/internal/dataset"
	"github.com/cloo-solutions/lexsearch/internal/domain"
	"github.com/spf13/cobra"
)

// ImportCmd creates the import command.
func ImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Upload a CSV dataset to the server",
		Long: `Parses a local CSV dataset and posts it to /admin/import-dataset.

Set LEXSEARCH_ADMIN_TOKEN (or --admin-token) when the server requires one.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open dataset: %w", err)
			}
			defer f.Close()

			rows, err := dataset.DecodeCSV(f)
			if err != nil {
				return err
			}

			payload := struct {
				CSVData []ImportRow `json:"csvData"`
			}{CSVData: toImportRows(rows)}

			var resp ImportResponse
			if err := NewAPIClientWithCmd(cmd).Post(cmd.Context(), "/admin/import-dataset", payload, &resp); err != nil {
				return fmt.Errorf("import failed: %w", err)
			}

			if wantsJSON(cmd) {
				return printJSON(cmd.OutOrStdout(), resp)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, resp.Message)
			for _, e := range resp.Errors {
				fmt.Fprintf(w, "  row %d: %s\n", e.Row, e.Reason)
			}
			return nil
		},
	}
}

func toImportRows(rows []domain.ImportRow) []ImportRow {
	out := make([]ImportRow, len(rows))
	for i, r := range rows {
		out[i] = ImportRow{
			English:        r.English,
			Tamil:          r.Tamil,
			Batch:          r.Batch,
			SentenceNumber: r.SentenceNumber,
			DocID:          r.DocID,
			CourtType:      r.CourtType,
			CaseCategory:   r.CaseCategory,
			Title:          r.Title,
			Summary:        r.Summary,
			DateDecided:    r.DateDecidedText(),
		}
	}
	return out
}
