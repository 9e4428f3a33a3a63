// Package table provides the in-memory columnar table shared by the decoder,
// the filter engine and the composition operations.
//
// A Table is an ordered set of named columns that all share the same row
// count. Cell values are stored as interface{} with the concrete Go types
// int64, float64, string, bool, time.Time or nil, as declared by the
// column's Type. Operations never mutate a table; they return new ones.
package table

import (
	"fmt"
)

// Type is the declared element type of a column.
type Type int

const (
	TypeInteger Type = iota
	TypeFloat
	TypeString
	TypeBoolean
	TypeDate
	TypeNull // column with no concrete type, e.g. entirely null
)

// String returns a human-readable name for the type.
func (t Type) String() string {
	switch t {
	case TypeInteger:
		return "integer"
	case TypeFloat:
		return "float"
	case TypeString:
		return "string"
	case TypeBoolean:
		return "boolean"
	case TypeDate:
		return "date"
	case TypeNull:
		return "null"
	default:
		return "unknown"
	}
}

// Column is a named, typed sequence of cell values.
type Column struct {
	Name   string
	Type   Type
	Values []interface{}
}

// Spec describes a column without values, used when building tables from
// row maps.
type Spec struct {
	Name string
	Type Type
}

// Table is an ordered set of named columns with a common row count.
type Table struct {
	cols  []Column
	index map[string]int
}

// New builds a table from columns. All columns must have the same number of
// values and unique names.
func New(cols ...Column) (*Table, error) {
	t := &Table{index: make(map[string]int, len(cols))}
	for _, col := range cols {
		if len(t.cols) > 0 && len(col.Values) != len(t.cols[0].Values) {
			return nil, fmt.Errorf("column %q has %d values, want %d",
				col.Name, len(col.Values), len(t.cols[0].Values))
		}
		if _, exists := t.index[col.Name]; exists {
			return nil, fmt.Errorf("duplicate column %q", col.Name)
		}
		t.index[col.Name] = len(t.cols)
		t.cols = append(t.cols, col)
	}
	return t, nil
}

// Empty returns a zero-row table with the given column names, all typed
// null. With no names it has no columns at all.
func Empty(names ...string) *Table {
	t := &Table{index: make(map[string]int, len(names))}
	for _, name := range names {
		if _, exists := t.index[name]; exists {
			continue
		}
		t.index[name] = len(t.cols)
		t.cols = append(t.cols, Column{Name: name, Type: TypeNull})
	}
	return t
}

// FromRows builds a table with the given ordered schema from row maps.
// Keys absent from a row become nil cells.
func FromRows(schema []Spec, rows []map[string]interface{}) *Table {
	t := &Table{index: make(map[string]int, len(schema))}
	for _, spec := range schema {
		if _, exists := t.index[spec.Name]; exists {
			continue
		}
		values := make([]interface{}, len(rows))
		for i, row := range rows {
			values[i] = row[spec.Name]
		}
		t.index[spec.Name] = len(t.cols)
		t.cols = append(t.cols, Column{Name: spec.Name, Type: spec.Type, Values: values})
	}
	return t
}

// NumRows returns the row count.
func (t *Table) NumRows() int {
	if len(t.cols) == 0 {
		return 0
	}
	return len(t.cols[0].Values)
}

// NumColumns returns the column count.
func (t *Table) NumColumns() int { return len(t.cols) }

// ColumnNames returns the column names in declaration order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.cols))
	for i, col := range t.cols {
		names[i] = col.Name
	}
	return names
}

// Columns returns the columns in declaration order. Callers must not modify
// the returned values.
func (t *Table) Columns() []Column { return t.cols }

// Column returns the named column and whether it exists.
func (t *Table) Column(name string) (Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, false
	}
	return t.cols[i], true
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Specs returns the table's schema as column specs in declaration order.
func (t *Table) Specs() []Spec {
	specs := make([]Spec, len(t.cols))
	for i, col := range t.cols {
		specs[i] = Spec{Name: col.Name, Type: col.Type}
	}
	return specs
}

// Row returns row i as a map from column name to cell value.
func (t *Table) Row(i int) map[string]interface{} {
	row := make(map[string]interface{}, len(t.cols))
	for _, col := range t.cols {
		row[col.Name] = col.Values[i]
	}
	return row
}

// Gather returns a new table containing the given rows, in order. Row
// indices must be valid.
func (t *Table) Gather(indices []int) *Table {
	out := &Table{index: make(map[string]int, len(t.cols))}
	for _, col := range t.cols {
		values := make([]interface{}, len(indices))
		for i, idx := range indices {
			values[i] = col.Values[idx]
		}
		out.index[col.Name] = len(out.cols)
		out.cols = append(out.cols, Column{Name: col.Name, Type: col.Type, Values: values})
	}
	return out
}

// Project returns a new table with only the requested columns that exist in
// the schema, in the requested order. Unknown names are skipped.
func (t *Table) Project(names []string) *Table {
	out := &Table{index: make(map[string]int)}
	for _, name := range names {
		i, ok := t.index[name]
		if !ok {
			continue
		}
		if _, dup := out.index[name]; dup {
			continue
		}
		out.index[name] = len(out.cols)
		out.cols = append(out.cols, t.cols[i])
	}
	return out
}

// WithColumnType returns a new table where the named column carries the
// given declared type. Cell values are left untouched.
func (t *Table) WithColumnType(name string, typ Type) *Table {
	out := &Table{index: make(map[string]int, len(t.cols))}
	for _, col := range t.cols {
		if col.Name == name {
			col.Type = typ
		}
		out.index[col.Name] = len(out.cols)
		out.cols = append(out.cols, col)
	}
	return out
}

// Concatenate stacks the rows of all tables in input order, keeping only
// the columns present in every table. Column order follows the first table.
// An empty input yields an empty table with no columns.
func Concatenate(tables []*Table) *Table {
	if len(tables) == 0 {
		return Empty()
	}

	// Column-name intersection across all tables, ordered by the first.
	shared := make([]string, 0, tables[0].NumColumns())
	for _, name := range tables[0].ColumnNames() {
		inAll := true
		for _, other := range tables[1:] {
			if !other.HasColumn(name) {
				inAll = false
				break
			}
		}
		if inAll {
			shared = append(shared, name)
		}
	}

	out := &Table{index: make(map[string]int, len(shared))}
	for _, name := range shared {
		colType := TypeNull
		var values []interface{}
		for _, src := range tables {
			col, _ := src.Column(name)
			// First concrete type wins; all-null sources stay TypeNull.
			if colType == TypeNull && col.Type != TypeNull {
				colType = col.Type
			}
			values = append(values, col.Values...)
		}
		out.index[name] = len(out.cols)
		out.cols = append(out.cols, Column{Name: name, Type: colType, Values: values})
	}
	return out
}
