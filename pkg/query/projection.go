// Package query provides a fluent SQL query builder with automatic
// parameter numbering, driven by projections that map struct fields
// to table columns.
package query

import (
	"fmt"
	"strings"
)

// ProjectionMap maps view field names to table columns for a single
// aliased table, optionally extended with columns from joined tables.
type ProjectionMap struct {
	schema string
	table  string
	alias  string
	fields []string
	cols   map[string]string
}

// NewProjectionMap creates a projection for the given schema-qualified
// table with the provided alias.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema: schema,
		table:  table,
		alias:  alias,
		cols:   make(map[string]string),
	}
}

// Project registers a column of the projected table under a view field name.
func (p *ProjectionMap) Project(column, field string) *ProjectionMap {
	return p.ProjectAs(p.alias+"."+column, field)
}

// ProjectAs registers an arbitrary column expression under a view field
// name. Use this for columns contributed by joined tables.
func (p *ProjectionMap) ProjectAs(expr, field string) *ProjectionMap {
	p.fields = append(p.fields, field)
	p.cols[field] = expr
	return p
}

// Alias returns the table alias.
func (p *ProjectionMap) Alias() string {
	return p.alias
}

// Table returns the aliased table reference for a FROM clause.
func (p *ProjectionMap) Table() string {
	return fmt.Sprintf("%s.%s %s", p.schema, p.table, p.alias)
}

// Column resolves a view field name to its column expression.
// Unknown fields are returned unchanged.
func (p *ProjectionMap) Column(field string) string {
	if col, ok := p.cols[field]; ok {
		return col
	}
	return field
}

// Columns returns the comma-separated column list in registration order.
func (p *ProjectionMap) Columns() string {
	return strings.Join(p.ColumnList(), ", ")
}

// ColumnList returns the column expressions in registration order.
func (p *ProjectionMap) ColumnList() []string {
	list := make([]string, len(p.fields))
	for i, field := range p.fields {
		list[i] = p.cols[field]
	}
	return list
}
