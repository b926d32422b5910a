package repository

import (
	"context"

	"github.com/cloo-solutions/lexsearch/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SearchHistoryRepository appends to the search audit log.
type SearchHistoryRepository struct {
	db dbtx
}

func NewSearchHistoryRepository(pool *pgxpool.Pool) *SearchHistoryRepository {
	return &SearchHistoryRepository{db: pool}
}

func (r *SearchHistoryRepository) Create(ctx context.Context, entry *domain.SearchHistoryEntry) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO search_history (id, query, filters, result_count, processing_time, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.ID,
		entry.Query,
		entry.Filters,
		entry.ResultCount,
		entry.ProcessingTime,
		entry.CreatedAt,
	)
	return err
}
