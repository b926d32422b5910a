package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/cloo-solutions/lexsearch/internal/domain"
	"github.com/cloo-solutions/lexsearch/internal/query"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var caseProjection = query.NewProjection("legal_cases").
	Project("id", "id").
	Project("english", "english").
	Project("tamil", "tamil").
	Project("batch", "batch").
	Project("sentence_number", "sentenceNumber").
	Project("doc_id", "docId").
	Project("court_type", "courtType").
	Project("case_category", "caseCategory").
	Project("date_decided", "dateDecided").
	Project("title", "title").
	Project("summary", "summary").
	Project("ai_summary", "aiSummary").
	Project("relevance_score", "relevanceScore").
	Project("created_at", "createdAt").
	Project("updated_at", "updatedAt")

// Text predicate fields, ORed together.
var searchFields = []string{"english", "tamil", "title", "summary"}

var (
	recencyOrder = []query.SortField{
		{Field: "createdAt", Descending: true},
		{Field: "id"},
	}
	rankingOrder = []query.SortField{
		{Field: "relevanceScore", Descending: true},
		{Field: "createdAt", Descending: true},
		{Field: "id"},
	}
)

// CaseRepository is the Case Store backed by PostgreSQL.
type CaseRepository struct {
	db dbtx
}

func NewCaseRepository(pool *pgxpool.Pool) *CaseRepository {
	return &CaseRepository{db: pool}
}

func (r *CaseRepository) Create(ctx context.Context, c *domain.Case) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO legal_cases (id, english, tamil, batch, sentence_number, doc_id, court_type, case_category,
		                          date_decided, title, summary, ai_summary, relevance_score, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		c.ID, c.English, nullableString(c.Tamil), c.Batch, c.SentenceNumber, c.DocID,
		nullableString(c.CourtType), nullableString(c.CaseCategory), c.DateDecided,
		nullableString(c.Title), nullableString(c.Summary), nullableString(c.AISummary),
		c.RelevanceScore, c.CreatedAt, c.UpdatedAt,
	)
	return MapError(err, domain.ErrCaseNotFound, domain.ErrCaseAlreadyExists)
}

func (r *CaseRepository) GetByID(ctx context.Context, id string) (*domain.Case, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrCaseNotFound
	}

	sql := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", caseProjection.Columns(), caseProjection.Table())
	c, err := scanCase(r.db.QueryRow(ctx, sql, id))
	if err != nil {
		return nil, MapError(err, domain.ErrCaseNotFound, domain.ErrCaseAlreadyExists)
	}
	return c, nil
}

// Search returns one page of cases matching query and filters, plus the total
// number of matches across all pages.
func (r *CaseRepository) Search(ctx context.Context, q string, filters domain.SearchFilters, page, limit int) ([]*domain.Case, int, error) {
	b := searchBuilder(q, filters)

	countSQL, countArgs := b.BuildCount()
	var total int
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count cases: %w", err)
	}

	pageSQL, pageArgs := b.BuildPage(page, limit)
	rows, err := r.db.Query(ctx, pageSQL, pageArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("search cases: %w", err)
	}
	defer rows.Close()

	cases, err := scanCases(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("scan cases: %w", err)
	}
	return cases, total, nil
}

func searchBuilder(q string, filters domain.SearchFilters) *query.Builder {
	order := recencyOrder
	if filters.EnableRanking {
		order = rankingOrder
	}

	b := query.NewBuilder(caseProjection, order...).
		WhereSearch(q, searchFields...)

	if filters.Language != nil {
		switch {
		case *filters.Language == domain.LanguageEnglish:
			b.WhereBlank("tamil")
		case filters.Language.RequiresSecondaryText():
			b.WhereNotBlank("tamil")
		}
	}

	return b.
		WhereEquals("courtType", filters.CourtType).
		WhereEquals("caseCategory", filters.Category).
		WhereGTE("dateDecided", filters.DateFrom).
		WhereLTE("dateDecided", filters.DateTo)
}

// UpdateAISummary stores an enrichment result. Concurrent writers overwrite
// each other; the last write wins.
func (r *CaseRepository) UpdateAISummary(ctx context.Context, id, summary string, score int, at time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE legal_cases SET ai_summary = $1, relevance_score = $2, updated_at = $3 WHERE id = $4`,
		summary, domain.ClampScore(score), at, id,
	)
	if err != nil {
		return fmt.Errorf("update ai summary: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCaseNotFound
	}
	return nil
}

// ListMissingSummary returns the oldest cases that have not been enriched yet.
func (r *CaseRepository) ListMissingSummary(ctx context.Context, limit int) ([]*domain.Case, error) {
	sql, args := query.NewBuilder(caseProjection, query.SortField{Field: "createdAt"}).
		WhereNull("aiSummary").
		BuildLimit(limit)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list cases missing summary: %w", err)
	}
	defer rows.Close()
	return scanCases(rows)
}

func (r *CaseRepository) Stats(ctx context.Context) (*domain.DatabaseStats, error) {
	var (
		stats     domain.DatabaseStats
		bilingual int
		last      *time.Time
	)
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE tamil IS NOT NULL AND tamil <> ''),
		        COUNT(DISTINCT court_type),
		        MAX(updated_at)
		 FROM legal_cases`,
	).Scan(&stats.TotalCases, &bilingual, &stats.CourtJurisdictions, &last)
	if err != nil {
		return nil, fmt.Errorf("case stats: %w", err)
	}

	switch {
	case bilingual > 0:
		stats.LanguagesSupported = 2
	case stats.TotalCases > 0:
		stats.LanguagesSupported = 1
	}

	stats.LastUpdated = time.Now().UTC()
	if last != nil {
		stats.LastUpdated = last.UTC()
	}

	rows, err := r.db.Query(ctx,
		`SELECT COALESCE(NULLIF(case_category, ''), $1), COUNT(*)
		 FROM legal_cases
		 GROUP BY 1`,
		domain.UncategorizedBucket,
	)
	if err != nil {
		return nil, fmt.Errorf("category stats: %w", err)
	}
	defer rows.Close()

	stats.CategoriesCount = make(map[string]int)
	for rows.Next() {
		var (
			category string
			count    int
		)
		if err := rows.Scan(&category, &count); err != nil {
			return nil, err
		}
		stats.CategoriesCount[category] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &stats, nil
}

func scanCase(row pgx.Row) (*domain.Case, error) {
	var c domain.Case
	err := row.Scan(
		&c.ID, &c.English, &c.Tamil, &c.Batch, &c.SentenceNumber, &c.DocID,
		&c.CourtType, &c.CaseCategory, &c.DateDecided, &c.Title, &c.Summary,
		&c.AISummary, &c.RelevanceScore, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func scanCases(rows pgx.Rows) ([]*domain.Case, error) {
	cases := make([]*domain.Case, 0)
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	return cases, rows.Err()
}
