package query

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testProjection() *Projection {
	return NewProjection("legal_cases").
		Project("id", "id").
		Project("english", "english").
		Project("tamil", "tamil").
		Project("title", "title").
		Project("court_type", "courtType").
		Project("date_decided", "dateDecided").
		Project("created_at", "createdAt")
}

func ptr(s string) *string { return &s }

func TestProjection_Column(t *testing.T) {
	p := testProjection()
	assert.Equal(t, "court_type", p.Column("courtType"))
	assert.Equal(t, "unknown", p.Column("unknown"))
	assert.Equal(t, "id, english, tamil, title, court_type, date_decided, created_at", p.Columns())
}

func TestBuilder_NoConditions(t *testing.T) {
	b := NewBuilder(testProjection(), SortField{Field: "createdAt", Descending: true})

	sql, args := b.BuildCount()
	assert.Equal(t, "SELECT COUNT(*) FROM legal_cases", sql)
	assert.Empty(t, args)

	sql, args = b.BuildPage(1, 10)
	assert.Equal(t, "SELECT id, english, tamil, title, court_type, date_decided, created_at FROM legal_cases ORDER BY created_at DESC LIMIT 10 OFFSET 0", sql)
	assert.Empty(t, args)
}

func TestBuilder_WhereSearch(t *testing.T) {
	b := NewBuilder(testProjection()).WhereSearch("  land ", "english", "tamil", "title")

	sql, args := b.BuildCount()
	assert.Equal(t, "SELECT COUNT(*) FROM legal_cases WHERE (english ILIKE $1 OR tamil ILIKE $2 OR title ILIKE $3)", sql)
	assert.Equal(t, []any{"%land%", "%land%", "%land%"}, args)
}

func TestBuilder_WhereSearch_Blank(t *testing.T) {
	b := NewBuilder(testProjection()).WhereSearch("   ", "english")
	sql, args := b.BuildCount()
	assert.Equal(t, "SELECT COUNT(*) FROM legal_cases", sql)
	assert.Nil(t, args)
}

func TestBuilder_WhereSearch_EscapesWildcards(t *testing.T) {
	b := NewBuilder(testProjection()).WhereSearch("100%_sure", "english")
	_, args := b.BuildCount()
	assert.Equal(t, []any{`%100\%\_sure%`}, args)
}

func TestBuilder_ParameterRenumbering(t *testing.T) {
	from := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	var to *time.Time

	b := NewBuilder(testProjection()).
		WhereSearch("property", "english", "title").
		WhereBlank("tamil").
		WhereEquals("courtType", ptr("high")).
		WhereEquals("courtType", ptr("")).
		WhereEquals("courtType", nil).
		WhereGTE("dateDecided", &from).
		WhereLTE("dateDecided", to)

	sql, args := b.BuildCount()
	assert.Equal(t,
		"SELECT COUNT(*) FROM legal_cases WHERE (english ILIKE $1 OR title ILIKE $2) AND (tamil IS NULL OR tamil = '') AND court_type = $3 AND date_decided >= $4",
		sql)
	assert.Equal(t, []any{"%property%", "%property%", "high", &from}, args)
}

func TestBuilder_WhereNotBlankAndNull(t *testing.T) {
	b := NewBuilder(testProjection()).WhereNotBlank("tamil").WhereNull("title")
	sql, _ := b.BuildCount()
	assert.Equal(t, "SELECT COUNT(*) FROM legal_cases WHERE (tamil IS NOT NULL AND tamil <> '') AND title IS NULL", sql)
}

func TestBuilder_BuildPage(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		want       string
	}{
		{"first page", 1, 10, " LIMIT 10 OFFSET 0"},
		{"second page", 2, 10, " LIMIT 10 OFFSET 10"},
		{"third page of five", 3, 5, " LIMIT 5 OFFSET 10"},
		{"page zero clamps", 0, 10, " LIMIT 10 OFFSET 0"},
		{"huge page saturates", math.MaxInt / 10, 100, fmt.Sprintf(" LIMIT 100 OFFSET %d", math.MaxInt)},
		{"page near wraparound saturates", math.MaxInt/100 + 2, 100, fmt.Sprintf(" LIMIT 100 OFFSET %d", math.MaxInt)},
		{"largest exact offset", math.MaxInt/100 + 1, 100, fmt.Sprintf(" LIMIT 100 OFFSET %d", math.MaxInt/100*100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, _ := NewBuilder(testProjection()).BuildPage(tt.page, tt.size)
			assert.Contains(t, sql, tt.want)
		})
	}
}

func TestBuilder_OrderByOverridesDefault(t *testing.T) {
	b := NewBuilder(testProjection(), SortField{Field: "createdAt", Descending: true}).
		OrderBy(SortField{Field: "title"}, SortField{Field: "id", Descending: true})

	sql, _ := b.Build()
	assert.Contains(t, sql, " ORDER BY title ASC, id DESC")
	assert.NotContains(t, sql, "created_at DESC")
}

func TestBuilder_BuildLimit(t *testing.T) {
	sql, _ := NewBuilder(testProjection(), SortField{Field: "createdAt"}).WhereNull("title").BuildLimit(25)
	assert.Equal(t, "SELECT id, english, tamil, title, court_type, date_decided, created_at FROM legal_cases WHERE title IS NULL ORDER BY created_at ASC LIMIT 25", sql)
}
