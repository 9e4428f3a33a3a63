package engine

import (
	"fmt"
	"strings"

	"github.com/vegasq/sharecat/predicate"
	"github.com/vegasq/sharecat/table"
)

// InvalidPredicateError reports a predicate string rejected by the strict
// filter path.
type InvalidPredicateError struct {
	Text string
	Err  error
}

func (e *InvalidPredicateError) Error() string {
	return fmt.Sprintf("invalid predicate %q: %v", e.Text, e.Err)
}

func (e *InvalidPredicateError) Unwrap() error { return e.Err }

// UnknownColumnError reports a reference to a column absent from the active
// schema.
type UnknownColumnError struct {
	Column string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("unknown column %q", e.Column)
}

// InvalidDateError reports a text value that fails ISO-8601 parsing against
// a date column.
type InvalidDateError struct {
	Column string
	Text   string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date %q for column %q: want YYYY-MM-DD", e.Text, e.Column)
}

// IncompatibleTypesError reports a predicate value that cannot be compared
// against a column's declared type.
type IncompatibleTypesError struct {
	Column     string
	ColumnType table.Type
	ValueKind  predicate.Kind
}

func (e *IncompatibleTypesError) Error() string {
	return fmt.Sprintf("cannot compare %s column %q with %s value",
		e.ColumnType, e.Column, e.ValueKind)
}

// NoMatchingColumnsError reports a text search whose requested columns are
// all absent from the schema. It is distinct from a search that matches
// zero rows, which is a normal empty result.
type NoMatchingColumnsError struct {
	Columns []string
}

func (e *NoMatchingColumnsError) Error() string {
	return fmt.Sprintf("no matching columns for text search: %s", strings.Join(e.Columns, ", "))
}
