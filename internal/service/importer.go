package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloo-solutions/lexsearch/internal/domain"
	"github.com/cloo-solutions/lexsearch/internal/metrics"
	"github.com/cloo-solutions/lexsearch/internal/telemetry"
	"go.uber.org/zap"
)

const (
	importProgressEvery = 100
	maxReportedErrors   = 50
)

// CaseCreator inserts new cases.
type CaseCreator interface {
	Create(ctx context.Context, c *domain.Case) error
}

// RowError describes one rejected import row. Row is 1-based.
type RowError struct {
	Row    int    `json:"row"`
	DocID  string `json:"docId,omitempty"`
	Reason string `json:"reason"`
}

// ImportResult summarizes a bulk import.
type ImportResult struct {
	TotalRows     int
	ImportedCount int
	Failed        int
	Errors        []RowError
}

// Message is the human readable outcome of the import.
func (r *ImportResult) Message() string {
	return fmt.Sprintf("Successfully imported %d out of %d cases", r.ImportedCount, r.TotalRows)
}

// ImportService loads dataset rows into the case store.
type ImportService struct {
	cases   CaseCreator
	uuidGen UUIDGenerator
	logger  *zap.Logger
}

func NewImportService(cases CaseCreator, logger *zap.Logger) *ImportService {
	return &ImportService{cases: cases, uuidGen: &DefaultUUIDGenerator{}, logger: logger}
}

// NewImportServiceWithUUIDGen creates an ImportService with a custom UUID generator (for testing)
func NewImportServiceWithUUIDGen(cases CaseCreator, uuidGen UUIDGenerator, logger *zap.Logger) *ImportService {
	return &ImportService{cases: cases, uuidGen: uuidGen, logger: logger}
}

// Import inserts every valid row. Invalid rows and rows the store rejects
// (duplicate doc_id, constraint failures) are counted and skipped. Only a
// cancelled context aborts the run.
func (s *ImportService) Import(ctx context.Context, rows []domain.ImportRow) (*ImportResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "ImportService.Import", telemetry.SpanAttributes{Operation: "import"})
	defer span.End()

	result := &ImportResult{TotalRows: len(rows), Errors: []RowError{}}

	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			span.SetError(err)
			return result, err
		}

		if err := s.importRow(ctx, row); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				span.SetError(err)
				return result, err
			}
			result.Failed++
			metrics.ImportRowsTotal.WithLabelValues(failureOutcome(err)).Inc()
			if len(result.Errors) < maxReportedErrors {
				result.Errors = append(result.Errors, RowError{Row: i + 1, DocID: row.DocID, Reason: err.Error()})
			}
			s.logger.Debug("skipping import row", zap.Int("row", i+1), zap.String("doc_id", row.DocID), zap.Error(err))
		} else {
			result.ImportedCount++
			metrics.ImportRowsTotal.WithLabelValues("imported").Inc()
		}

		if (i+1)%importProgressEvery == 0 {
			s.logger.Info("import progress",
				zap.Int("processed", i+1),
				zap.Int("imported", result.ImportedCount),
				zap.Int("total", result.TotalRows),
			)
		}
	}

	s.logger.Info("import finished",
		zap.Int("imported", result.ImportedCount),
		zap.Int("failed", result.Failed),
		zap.Int("total", result.TotalRows),
	)
	return result, nil
}

func (s *ImportService) importRow(ctx context.Context, row domain.ImportRow) error {
	if err := row.Validate(); err != nil {
		return err
	}
	c := row.ToCase(s.uuidGen.NewString())
	if err := c.Validate(); err != nil {
		return err
	}
	return s.cases.Create(ctx, c)
}

func failureOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrCaseAlreadyExists):
		return "duplicate"
	case domain.IsCode(err, domain.ErrCodeValidation):
		return "invalid"
	default:
		return "failed"
	}
}
