package handlers

import (
	"context"
	"net/http"

	"github.com/cloo-solutions/lexsearch/internal/api"
	"github.com/cloo-solutions/lexsearch/internal/domain"
	"github.com/go-chi/chi/v5"
)

type CaseService interface {
	Get(ctx context.Context, id string) (*domain.Case, error)
	Stats(ctx context.Context) (*domain.DatabaseStats, error)
}

type CaseHandler struct {
	svc CaseService
}

func NewCaseHandler(svc CaseService) *CaseHandler {
	return &CaseHandler{svc: svc}
}

// Get handles GET /cases/{id}.
func (h *CaseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		api.Error(w, http.StatusBadRequest, api.CodeValidation, "id is required")
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		api.HandleError(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, newCaseResponse(c))
}

// Stats handles GET /stats.
func (h *CaseHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		api.HandleError(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, stats)
}
