package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/cloo-solutions/lexsearch/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	other := errors.New("connection reset")
	serialization := &pgconn.PgError{Code: "40001"}

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", pgx.ErrNoRows, domain.ErrCaseNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), domain.ErrCaseNotFound},
		{"duplicate key", &pgconn.PgError{Code: "23505"}, domain.ErrCaseAlreadyExists},
		{"other pg error", serialization, serialization},
		{"passthrough", other, other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err, domain.ErrCaseNotFound, domain.ErrCaseAlreadyExists)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNullableString(t *testing.T) {
	assert.Nil(t, nullableString(nil))
	s := "high"
	assert.Equal(t, "high", nullableString(&s))
}

func TestSearchBuilder(t *testing.T) {
	lang := domain.LanguageTamil
	court := "high"
	empty := ""

	sql, args := searchBuilder("  land ", domain.SearchFilters{
		Language:      &lang,
		CourtType:     &court,
		Category:      &empty,
		EnableRanking: true,
	}).BuildPage(2, 10)

	assert.Contains(t, sql, "(english ILIKE $1 OR tamil ILIKE $2 OR title ILIKE $3 OR summary ILIKE $4)")
	assert.Contains(t, sql, "(tamil IS NOT NULL AND tamil <> '')")
	assert.Contains(t, sql, "court_type = $5")
	assert.NotContains(t, sql, "case_category =")
	assert.Contains(t, sql, "ORDER BY relevance_score DESC, created_at DESC, id ASC LIMIT 10 OFFSET 10")
	assert.Equal(t, []any{"%land%", "%land%", "%land%", "%land%", "high"}, args)
}

func TestSearchBuilder_EnglishAndRecency(t *testing.T) {
	lang := domain.LanguageEnglish
	sql, args := searchBuilder("", domain.SearchFilters{Language: &lang}).BuildPage(1, 5)

	assert.Contains(t, sql, "WHERE (tamil IS NULL OR tamil = '')")
	assert.Contains(t, sql, "ORDER BY created_at DESC, id ASC LIMIT 5 OFFSET 0")
	assert.Empty(t, args)
}
