package handlers

import (
	"context"
	"net/http"

	"github.com/cloo-solutions/lexsearch/internal/api"
	"github.com/cloo-solutions/lexsearch/internal/domain"
	"github.com/cloo-solutions/lexsearch/internal/service"
)

type SearchService interface {
	Search(ctx context.Context, input service.SearchInput) (*domain.SearchResult, error)
	Suggest(ctx context.Context, partial string) []string
}

type SearchHandler struct {
	svc SearchService
}

func NewSearchHandler(svc SearchService) *SearchHandler {
	return &SearchHandler{svc: svc}
}

// Search handles POST /search.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	filters, err := req.Filters.toDomain()
	if err != nil {
		api.HandleError(w, r, err)
		return
	}

	input := service.SearchInput{
		Query:   req.Query,
		Filters: filters,
		Page:    service.DefaultPage,
		Limit:   service.DefaultLimit,
	}
	if req.Page != nil {
		input.Page = *req.Page
	}
	if req.Limit != nil {
		input.Limit = *req.Limit
	}

	result, err := h.svc.Search(r.Context(), input)
	if err != nil {
		api.HandleError(w, r, err)
		return
	}

	cases := make([]*CaseResponse, len(result.Cases))
	for i, c := range result.Cases {
		cases[i] = newCaseResponse(c)
	}

	api.JSON(w, http.StatusOK, SearchResponse{
		Cases:          cases,
		TotalCount:     result.TotalCount,
		ProcessingTime: result.ProcessingTime,
		QueryAnalysis:  result.QueryAnalysis,
	})
}

// Suggestions handles POST /search/suggestions.
func (h *SearchHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	var req SuggestionsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	api.JSON(w, http.StatusOK, SuggestionsResponse{
		Suggestions: h.svc.Suggest(r.Context(), *req.Query),
	})
}
