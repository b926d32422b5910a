package service

import (
	"context"

	"github.com/cloo-solutions/lexsearch/internal/domain"
	"go.uber.org/zap"
)

// CaseReader loads single cases and collection statistics.
type CaseReader interface {
	GetByID(ctx context.Context, id string) (*domain.Case, error)
	Stats(ctx context.Context) (*domain.DatabaseStats, error)
}

// CaseService serves case detail and stats reads.
type CaseService struct {
	cases    CaseReader
	enricher *Enricher
	logger   *zap.Logger
}

func NewCaseService(cases CaseReader, enricher *Enricher, logger *zap.Logger) *CaseService {
	return &CaseService{cases: cases, enricher: enricher, logger: logger}
}

// Get returns the case with id, summarizing it first when it has no summary.
// A failed summary write still returns the case as loaded.
func (s *CaseService) Get(ctx context.Context, id string) (*domain.Case, error) {
	c, err := s.cases.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.enricher != nil && !c.HasAISummary() {
		if _, err := s.enricher.Enrich(ctx, c, SourceCase); err != nil {
			s.logger.Debug("serving case without summary", zap.String("case_id", id))
		}
	}
	return c, nil
}

func (s *CaseService) Stats(ctx context.Context) (*domain.DatabaseStats, error) {
	return s.cases.Stats(ctx)
}
