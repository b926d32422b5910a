package service

import (
	"context"
	"math"
	"time"

	"github.com/cloo-solutions/lexsearch/internal/domain"
	"github.com/cloo-solutions/lexsearch/internal/metrics"
	"github.com/cloo-solutions/lexsearch/internal/telemetry"
	"go.uber.org/zap"
)

// Enrichment sources, used as a metric label.
const (
	SourceSearch   = "search"
	SourceCase     = "case"
	SourceBackfill = "backfill"
)

// Summarizer produces a case summary. Implementations never fail; they return
// the unavailable sentinel instead.
type Summarizer interface {
	Summarize(ctx context.Context, english string, tamil *string) domain.CaseSummary
}

// SummaryWriter persists the derived summary fields of a case.
type SummaryWriter interface {
	UpdateAISummary(ctx context.Context, id, summary string, score int, at time.Time) error
}

// Enricher fills in the AI summary of cases that do not have one yet.
type Enricher struct {
	summarizer Summarizer
	store      SummaryWriter
	logger     *zap.Logger
	now        func() time.Time
}

func NewEnricher(summarizer Summarizer, store SummaryWriter, logger *zap.Logger) *Enricher {
	return &Enricher{
		summarizer: summarizer,
		store:      store,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Enrich summarizes c and persists the result. Cases that already carry a
// summary are left alone and report false. The in-memory case is only updated
// once the write succeeds.
func (e *Enricher) Enrich(ctx context.Context, c *domain.Case, source string) (bool, error) {
	if c.HasAISummary() {
		metrics.EnrichmentsTotal.WithLabelValues(source, "skipped").Inc()
		return false, nil
	}

	ctx, span := telemetry.StartSpan(ctx, "Enricher.Enrich", telemetry.SpanAttributes{
		CaseID:    c.ID,
		DocID:     c.DocID,
		Operation: source,
	})
	defer span.End()

	summary := e.summarizer.Summarize(ctx, c.English, c.Tamil)
	score := domain.ClampScore(int(math.Round(summary.RelevanceScore)))
	at := e.now()

	if err := e.store.UpdateAISummary(ctx, c.ID, summary.Summary, score, at); err != nil {
		span.SetError(err)
		metrics.EnrichmentsTotal.WithLabelValues(source, "failed").Inc()
		e.logger.Warn("failed to persist case summary",
			zap.String("case_id", c.ID),
			zap.String("source", source),
			zap.Error(err),
		)
		return false, err
	}

	c.ApplySummary(summary.Summary, score, at)
	outcome := "enriched"
	if summary.Summary == domain.UnavailableSummaryText {
		outcome = "unavailable"
	}
	metrics.EnrichmentsTotal.WithLabelValues(source, outcome).Inc()
	return true, nil
}
