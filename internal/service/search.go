package service

import (
	"context"
	"strings"
	"time"

	"github.com/cloo-solutions/lexsearch/internal/domain"
	"github.com/cloo-solutions/lexsearch/internal/metrics"
	"github.com/cloo-solutions/lexsearch/internal/telemetry"
	"go.uber.org/zap"
)

// Search bounds.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// QueryAnalyzer classifies a free-text query.
type QueryAnalyzer interface {
	AnalyzeQuery(ctx context.Context, q string) domain.QueryAnalysis
}

// Suggester proposes completions for a partial query.
type Suggester interface {
	Suggest(ctx context.Context, partial string) []string
}

// CaseSearcher runs the filtered, paginated case query.
type CaseSearcher interface {
	Search(ctx context.Context, q string, filters domain.SearchFilters, page, limit int) ([]*domain.Case, int, error)
}

// HistoryRecorder stores an executed search.
type HistoryRecorder interface {
	Create(ctx context.Context, entry *domain.SearchHistoryEntry) error
}

// SearchInput represents input for search operation
type SearchInput struct {
	Query   string
	Filters domain.SearchFilters
	Page    int
	Limit   int
}

// Validate normalizes the query and checks paging bounds.
func (in *SearchInput) Validate() error {
	in.Query = strings.TrimSpace(in.Query)
	if in.Query == "" {
		return domain.ErrEmptyQuery
	}
	if in.Page < 1 {
		return domain.ErrInvalidPage
	}
	if in.Limit < 1 || in.Limit > MaxLimit {
		return domain.ErrInvalidLimit
	}
	return in.Filters.Validate()
}

// SearchService orchestrates analysis, retrieval, enrichment and history.
// A nil analyzer, suggester or enricher disables that step.
type SearchService struct {
	cases     CaseSearcher
	history   HistoryRecorder
	analyzer  QueryAnalyzer
	suggester Suggester
	enricher  *Enricher
	uuidGen   UUIDGenerator
	logger    *zap.Logger
}

func NewSearchService(
	cases CaseSearcher,
	history HistoryRecorder,
	analyzer QueryAnalyzer,
	suggester Suggester,
	enricher *Enricher,
	logger *zap.Logger,
) *SearchService {
	return &SearchService{
		cases:     cases,
		history:   history,
		analyzer:  analyzer,
		suggester: suggester,
		enricher:  enricher,
		uuidGen:   &DefaultUUIDGenerator{},
		logger:    logger,
	}
}

// Search returns one page of matching cases. Summaries are generated for
// cases on the page that lack one when the filters ask for it.
func (s *SearchService) Search(ctx context.Context, in SearchInput) (*domain.SearchResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	ctx, span := telemetry.StartSpan(ctx, "SearchService.Search", telemetry.SpanAttributes{Operation: "search"})
	defer span.End()

	start := time.Now()

	analysis := domain.DefaultQueryAnalysis()
	if s.analyzer != nil {
		analysis = s.analyzer.AnalyzeQuery(ctx, in.Query)
	}

	cases, total, err := s.cases.Search(ctx, in.Query, in.Filters, in.Page, in.Limit)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	if in.Filters.EnableAISummary && s.enricher != nil {
		for _, c := range cases {
			// A failed write leaves that case unenriched; the page is still served.
			_, _ = s.enricher.Enrich(ctx, c, SourceSearch)
		}
	}

	elapsed := time.Since(start).Milliseconds()
	s.recordHistory(ctx, in, total, elapsed)

	return &domain.SearchResult{
		Cases:          cases,
		TotalCount:     total,
		ProcessingTime: elapsed,
		QueryAnalysis:  &analysis,
	}, nil
}

func (s *SearchService) recordHistory(ctx context.Context, in SearchInput, total int, elapsed int64) {
	if s.history == nil {
		return
	}

	filters, err := in.Filters.Encode()
	if err != nil {
		s.logger.Warn("failed to encode search filters", zap.Error(err))
		filters = "{}"
	}

	entry := &domain.SearchHistoryEntry{
		ID:             s.uuidGen.NewString(),
		Query:          in.Query,
		Filters:        filters,
		ResultCount:    total,
		ProcessingTime: elapsed,
		CreatedAt:      time.Now().UTC(),
	}

	// The response does not wait on the caller staying connected for the audit row.
	if err := s.history.Create(context.WithoutCancel(ctx), entry); err != nil {
		metrics.SearchHistoryFailuresTotal.Inc()
		s.logger.Warn("failed to record search history", zap.String("query", in.Query), zap.Error(err))
	}
}

// Suggest returns up to domain.MaxSuggestions completions for a partial query.
// Blank input yields an empty list without calling the model.
func (s *SearchService) Suggest(ctx context.Context, partial string) []string {
	partial = strings.TrimSpace(partial)
	if partial == "" || s.suggester == nil {
		return []string{}
	}

	out := s.suggester.Suggest(ctx, partial)
	if out == nil {
		return []string{}
	}
	if len(out) > domain.MaxSuggestions {
		out = out[:domain.MaxSuggestions]
	}
	return out
}
