package query

import (
	"reflect"
	"strings"
)

// Projection maps logical field names to table columns.
type Projection struct {
	table      string
	columns    map[string]string
	columnList []string
}

func NewProjection(table string) *Projection {
	return &Projection{
		table:   table,
		columns: make(map[string]string),
	}
}

// Project registers column under the logical name field.
func (p *Projection) Project(column, field string) *Projection {
	p.columns[field] = column
	p.columnList = append(p.columnList, column)
	return p
}

func (p *Projection) Table() string {
	return p.table
}

// Column returns the column for field, or field itself when unmapped.
func (p *Projection) Column(field string) string {
	if col, ok := p.columns[field]; ok {
		return col
	}
	return field
}

// Columns returns the projected columns in registration order.
func (p *Projection) Columns() string {
	return strings.Join(p.columnList, ", ")
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return v.IsNil()
	}
	return false
}
