package handlers

import (
	"context"
	"net/http"

	"github.com/cloo-solutions/lexsearch/internal/api"
	"github.com/cloo-solutions/lexsearch/internal/domain"
	"github.com/cloo-solutions/lexsearch/internal/service"
)

type ImportService interface {
	Import(ctx context.Context, rows []domain.ImportRow) (*service.ImportResult, error)
}

type AdminHandler struct {
	importer ImportService
}

func NewAdminHandler(importer ImportService) *AdminHandler {
	return &AdminHandler{importer: importer}
}

// ImportDataset handles POST /admin/import-dataset. Bad rows are skipped and
// reported; only a malformed body fails the request.
func (h *AdminHandler) ImportDataset(w http.ResponseWriter, r *http.Request) {
	var req ImportRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	rows := make([]domain.ImportRow, len(req.CSVData))
	for i, row := range req.CSVData {
		rows[i] = row.toDomain()
	}

	result, err := h.importer.Import(r.Context(), rows)
	if err != nil {
		api.HandleError(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, ImportResponse{
		Message:       result.Message(),
		ImportedCount: result.ImportedCount,
		TotalRows:     result.TotalRows,
		Failed:        result.Failed,
		Errors:        result.Errors,
	})
}
