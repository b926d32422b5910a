package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cloo-solutions/lexsearch/internal/domain"
	"github.com/cloo-solutions/lexsearch/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockJobProcessor is a mock implementation of JobProcessor
type MockJobProcessor struct {
	mock.Mock
}

func (m *MockJobProcessor) ProcessJobs(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockMissingSummaryLister struct {
	mock.Mock
}

func (m *MockMissingSummaryLister) ListMissingSummary(ctx context.Context, limit int) ([]*domain.Case, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Case), args.Error(1)
}

type MockCaseEnricher struct {
	mock.Mock
}

func (m *MockCaseEnricher) Enrich(ctx context.Context, c *domain.Case, source string) (bool, error) {
	args := m.Called(ctx, c, source)
	return args.Bool(0), args.Error(1)
}

func TestWorker_StartStop(t *testing.T) {
	mockProcessor := new(MockJobProcessor)
	mockProcessor.On("ProcessJobs", mock.Anything).Return(nil)

	worker := NewWorker("test", mockProcessor, 100*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		worker.Start(ctx)
	}()

	time.Sleep(250 * time.Millisecond)

	worker.Stop()
	wg.Wait()

	mockProcessor.AssertCalled(t, "ProcessJobs", mock.Anything)
}

func TestWorker_ContextCancellation(t *testing.T) {
	mockProcessor := new(MockJobProcessor)
	mockProcessor.On("ProcessJobs", mock.Anything).Return(errors.New("transient"))

	worker := NewWorker("test", mockProcessor, 100*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		worker.Start(ctx)
	}()

	time.Sleep(150 * time.Millisecond)

	cancel()
	wg.Wait()

	// Stop after the loop already exited must not block or panic.
	worker.Stop()
	mockProcessor.AssertCalled(t, "ProcessJobs", mock.Anything)
}

func TestSummaryBackfill_ProcessJobs_NoCases(t *testing.T) {
	lister := new(MockMissingSummaryLister)
	enricher := new(MockCaseEnricher)

	lister.On("ListMissingSummary", mock.Anything, 20).Return([]*domain.Case{}, nil)

	err := NewSummaryBackfill(lister, enricher, 0, zap.NewNop()).ProcessJobs(context.Background())

	assert.NoError(t, err)
	enricher.AssertNotCalled(t, "Enrich", mock.Anything, mock.Anything, mock.Anything)
}

func TestSummaryBackfill_ProcessJobs(t *testing.T) {
	lister := new(MockMissingSummaryLister)
	enricher := new(MockCaseEnricher)

	c1 := domain.NewCase("c1", "one", "b1", 1, "D1")
	c2 := domain.NewCase("c2", "two", "b1", 2, "D2")

	lister.On("ListMissingSummary", mock.Anything, 5).Return([]*domain.Case{c1, c2}, nil)
	enricher.On("Enrich", mock.Anything, c1, service.SourceBackfill).Return(false, errors.New("write failed"))
	enricher.On("Enrich", mock.Anything, c2, service.SourceBackfill).Return(true, nil)

	err := NewSummaryBackfill(lister, enricher, 5, zap.NewNop()).ProcessJobs(context.Background())

	assert.NoError(t, err)
	enricher.AssertNumberOfCalls(t, "Enrich", 2)
}

func TestSummaryBackfill_ProcessJobs_ListError(t *testing.T) {
	lister := new(MockMissingSummaryLister)
	lister.On("ListMissingSummary", mock.Anything, 10).Return(nil, errors.New("database error"))

	err := NewSummaryBackfill(lister, new(MockCaseEnricher), 10, zap.NewNop()).ProcessJobs(context.Background())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch unsummarized cases")
}
