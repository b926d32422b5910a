package jobs

import (
	"context"
	"fmt"

	"github.com/cloo-solutions/lexsearch/internal/domain"
	"github.com/cloo-solutions/lexsearch/internal/service"
	"github.com/cloo-solutions/lexsearch/internal/telemetry"
	"go.uber.org/zap"
)

// MissingSummaryLister returns cases that have never been summarized.
type MissingSummaryLister interface {
	ListMissingSummary(ctx context.Context, limit int) ([]*domain.Case, error)
}

// CaseEnricher summarizes one case.
type CaseEnricher interface {
	Enrich(ctx context.Context, c *domain.Case, source string) (bool, error)
}

// SummaryBackfill summarizes a batch of unsummarized cases per run, so that
// searches find summaries already in place.
type SummaryBackfill struct {
	cases     MissingSummaryLister
	enricher  CaseEnricher
	batchSize int
	logger    *zap.Logger
}

func NewSummaryBackfill(cases MissingSummaryLister, enricher CaseEnricher, batchSize int, logger *zap.Logger) *SummaryBackfill {
	if batchSize <= 0 {
		batchSize = 20
	}
	return &SummaryBackfill{
		cases:     cases,
		enricher:  enricher,
		batchSize: batchSize,
		logger:    logger,
	}
}

// ProcessJobs implements the JobProcessor interface
func (b *SummaryBackfill) ProcessJobs(ctx context.Context) error {
	ctx, span := telemetry.StartTransaction(ctx, "summary-backfill", "job")
	defer span.End()

	cases, err := b.cases.ListMissingSummary(ctx, b.batchSize)
	if err != nil {
		span.SetError(err)
		return fmt.Errorf("failed to fetch unsummarized cases: %w", err)
	}
	if len(cases) == 0 {
		return nil
	}

	var enriched, failed int
	for _, c := range cases {
		if err := ctx.Err(); err != nil {
			span.SetError(err)
			return err
		}
		ok, err := b.enricher.Enrich(ctx, c, service.SourceBackfill)
		switch {
		case err != nil:
			failed++
		case ok:
			enriched++
		}
	}

	b.logger.Info("summary backfill run",
		zap.Int("fetched", len(cases)),
		zap.Int("enriched", enriched),
		zap.Int("failed", failed),
	)
	return nil
}
