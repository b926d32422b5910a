// Package query composes parameterized SQL for filtered, sorted, paginated reads.
package query

import (
	"fmt"
	"math"
	"strings"
)

type condition struct {
	clause string
	args   []any
}

// SortField is one ORDER BY column, named by its logical field.
type SortField struct {
	Field      string
	Descending bool
}

// Builder accumulates ANDed conditions. Clauses carry "$%d" markers that are
// renumbered into positional parameters when the query is built.
type Builder struct {
	projection  *Projection
	conditions  []condition
	orderBy     []SortField
	defaultSort []SortField
}

// NewBuilder creates a Builder over p with optional default sort fields.
func NewBuilder(p *Projection, defaultSort ...SortField) *Builder {
	return &Builder{
		projection:  p,
		defaultSort: defaultSort,
	}
}

// WhereSearch adds (a ILIKE p OR b ILIKE p ...). No-op for blank search.
func (b *Builder) WhereSearch(search string, fields ...string) *Builder {
	search = strings.TrimSpace(search)
	if search == "" || len(fields) == 0 {
		return b
	}

	pattern := "%" + EscapeLike(search) + "%"
	clauses := make([]string, len(fields))
	args := make([]any, len(fields))
	for i, field := range fields {
		clauses[i] = fmt.Sprintf("%s ILIKE $%%d", b.projection.Column(field))
		args[i] = pattern
	}

	b.conditions = append(b.conditions, condition{
		clause: "(" + strings.Join(clauses, " OR ") + ")",
		args:   args,
	})
	return b
}

// WhereEquals adds field = value. No-op for nil or empty values.
func (b *Builder) WhereEquals(field string, value *string) *Builder {
	if value == nil || *value == "" {
		return b
	}
	b.conditions = append(b.conditions, condition{
		clause: fmt.Sprintf("%s = $%%d", b.projection.Column(field)),
		args:   []any{*value},
	})
	return b
}

// WhereGTE adds field >= value when value is non-nil.
func (b *Builder) WhereGTE(field string, value any) *Builder {
	return b.compare(field, ">=", value)
}

// WhereLTE adds field <= value when value is non-nil.
func (b *Builder) WhereLTE(field string, value any) *Builder {
	return b.compare(field, "<=", value)
}

// WhereBlank matches rows whose field is NULL or the empty string.
func (b *Builder) WhereBlank(field string) *Builder {
	col := b.projection.Column(field)
	b.conditions = append(b.conditions, condition{
		clause: fmt.Sprintf("(%s IS NULL OR %s = '')", col, col),
	})
	return b
}

// WhereNotBlank matches rows whose field is non-NULL and non-empty.
func (b *Builder) WhereNotBlank(field string) *Builder {
	col := b.projection.Column(field)
	b.conditions = append(b.conditions, condition{
		clause: fmt.Sprintf("(%s IS NOT NULL AND %s <> '')", col, col),
	})
	return b
}

// WhereNull matches rows whose field is NULL.
func (b *Builder) WhereNull(field string) *Builder {
	b.conditions = append(b.conditions, condition{
		clause: b.projection.Column(field) + " IS NULL",
	})
	return b
}

// OrderBy overrides the default sort.
func (b *Builder) OrderBy(fields ...SortField) *Builder {
	b.orderBy = fields
	return b
}

// Build returns an unpaginated SELECT.
func (b *Builder) Build() (string, []any) {
	where, args := b.buildWhere()
	return fmt.Sprintf("SELECT %s FROM %s%s%s",
		b.projection.Columns(), b.projection.Table(), where, b.buildOrderBy()), args
}

// BuildCount returns SELECT COUNT(*) over the same conditions.
func (b *Builder) BuildCount() (string, []any) {
	where, args := b.buildWhere()
	return fmt.Sprintf("SELECT COUNT(*) FROM %s%s", b.projection.Table(), where), args
}

// BuildPage returns a SELECT limited to one page. Page numbering starts at 1.
// An offset that would overflow saturates at math.MaxInt, which selects no rows.
func (b *Builder) BuildPage(page, pageSize int) (string, []any) {
	where, args := b.buildWhere()
	offset := pageOffset(page, pageSize)
	return fmt.Sprintf("SELECT %s FROM %s%s%s LIMIT %d OFFSET %d",
		b.projection.Columns(), b.projection.Table(), where, b.buildOrderBy(), pageSize, offset), args
}

// BuildLimit returns a SELECT capped at limit rows.
func (b *Builder) BuildLimit(limit int) (string, []any) {
	sql, args := b.Build()
	return fmt.Sprintf("%s LIMIT %d", sql, limit), args
}

func pageOffset(page, pageSize int) int {
	if page < 1 || pageSize < 1 {
		return 0
	}
	if page-1 > math.MaxInt/pageSize {
		return math.MaxInt
	}
	return (page - 1) * pageSize
}

func (b *Builder) compare(field, op string, value any) *Builder {
	if isNil(value) {
		return b
	}
	b.conditions = append(b.conditions, condition{
		clause: fmt.Sprintf("%s %s $%%d", b.projection.Column(field), op),
		args:   []any{value},
	})
	return b
}

func (b *Builder) buildOrderBy() string {
	fields := b.orderBy
	if len(fields) == 0 {
		fields = b.defaultSort
	}
	if len(fields) == 0 {
		return ""
	}

	parts := make([]string, len(fields))
	for i, f := range fields {
		dir := "ASC"
		if f.Descending {
			dir = "DESC"
		}
		parts[i] = b.projection.Column(f.Field) + " " + dir
	}
	return " ORDER BY " + strings.Join(parts, ", ")
}

func (b *Builder) buildWhere() (string, []any) {
	if len(b.conditions) == 0 {
		return "", nil
	}

	clauses := make([]string, 0, len(b.conditions))
	var args []any
	idx := 1
	for _, cond := range b.conditions {
		clause := cond.clause
		for _, arg := range cond.args {
			clause = strings.Replace(clause, "$%d", fmt.Sprintf("$%d", idx), 1)
			args = append(args, arg)
			idx++
		}
		clauses = append(clauses, clause)
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE metacharacters so s matches literally.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}
