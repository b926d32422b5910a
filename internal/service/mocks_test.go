package service

import (
	"context"
	"time"

	"github.com/cloo-solutions/lexsearch/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockSummarizer struct {
	mock.Mock
}

func (m *MockSummarizer) Summarize(ctx context.Context, english string, tamil *string) domain.CaseSummary {
	args := m.Called(ctx, english, tamil)
	return args.Get(0).(domain.CaseSummary)
}

type MockAnalyzer struct {
	mock.Mock
}

func (m *MockAnalyzer) AnalyzeQuery(ctx context.Context, q string) domain.QueryAnalysis {
	args := m.Called(ctx, q)
	return args.Get(0).(domain.QueryAnalysis)
}

type MockSuggester struct {
	mock.Mock
}

func (m *MockSuggester) Suggest(ctx context.Context, partial string) []string {
	args := m.Called(ctx, partial)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]string)
}

// MockCaseRepository covers every case store interface used by the services.
type MockCaseRepository struct {
	mock.Mock
}

func (m *MockCaseRepository) Create(ctx context.Context, c *domain.Case) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCaseRepository) GetByID(ctx context.Context, id string) (*domain.Case, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Case), args.Error(1)
}

func (m *MockCaseRepository) Search(ctx context.Context, q string, filters domain.SearchFilters, page, limit int) ([]*domain.Case, int, error) {
	args := m.Called(ctx, q, filters, page, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.Case), args.Int(1), args.Error(2)
}

func (m *MockCaseRepository) UpdateAISummary(ctx context.Context, id, summary string, score int, at time.Time) error {
	args := m.Called(ctx, id, summary, score, at)
	return args.Error(0)
}

func (m *MockCaseRepository) Stats(ctx context.Context) (*domain.DatabaseStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DatabaseStats), args.Error(1)
}

type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) Create(ctx context.Context, entry *domain.SearchHistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type sequentialUUIDGen struct {
	ids []string
	n   int
}

func (g *sequentialUUIDGen) NewString() string {
	id := g.ids[g.n%len(g.ids)]
	g.n++
	return id
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }
