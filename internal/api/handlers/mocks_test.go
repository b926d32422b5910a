package handlers

import (
	"context"

	"github.com/cloo-solutions/lexsearch/internal/domain"
	"github.com/cloo-solutions/lexsearch/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockSearchService struct {
	mock.Mock
}

func (m *MockSearchService) Search(ctx context.Context, input service.SearchInput) (*domain.SearchResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SearchResult), args.Error(1)
}

func (m *MockSearchService) Suggest(ctx context.Context, partial string) []string {
	args := m.Called(ctx, partial)
	return args.Get(0).([]string)
}

type MockCaseService struct {
	mock.Mock
}

func (m *MockCaseService) Get(ctx context.Context, id string) (*domain.Case, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Case), args.Error(1)
}

func (m *MockCaseService) Stats(ctx context.Context) (*domain.DatabaseStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DatabaseStats), args.Error(1)
}

type MockImportService struct {
	mock.Mock
}

func (m *MockImportService) Import(ctx context.Context, rows []domain.ImportRow) (*service.ImportResult, error) {
	args := m.Called(ctx, rows)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ImportResult), args.Error(1)
}
