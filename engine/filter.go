// Package engine applies parsed predicates to decoded tables and composes
// per-file results into a final answer.
//
// Filtering comes in two flavors that callers rely on: the lenient path used
// while executing a query, where a predicate that cannot be applied degrades
// to a no-op, and the strict path used on already-materialized results,
// where the first bad predicate aborts the whole operation.
package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/vegasq/sharecat/predicate"
	"github.com/vegasq/sharecat/table"
)

const dateLayout = "2006-01-02"

// boundPredicate is a predicate resolved against a concrete column, with
// date text already coerced.
type boundPredicate struct {
	col  table.Column
	pred predicate.Predicate
}

// Filter applies predicate strings to a table, combining them with logical
// AND. Predicates that fail to parse, reference unknown columns, or cannot
// be compared against the column type are logged and skipped rather than
// failing the operation. The input table is not modified.
func Filter(t *table.Table, filters []string, log zerolog.Logger) *table.Table {
	bound := make([]boundPredicate, 0, len(filters))
	for _, text := range filters {
		b, err := bindPredicate(t, text)
		if err != nil {
			log.Warn().Err(err).Str("predicate", text).Msg("skipping unusable predicate")
			continue
		}
		bound = append(bound, b)
	}
	return applyBound(t, bound)
}

// FilterStrict applies predicate strings to a table, combining them with
// logical AND. Every predicate must parse and resolve against the schema;
// the first failure aborts and no partial filtering is applied. The input
// table is not modified.
func FilterStrict(t *table.Table, filters []string) (*table.Table, error) {
	bound := make([]boundPredicate, 0, len(filters))
	for _, text := range filters {
		b, err := bindPredicate(t, text)
		if err != nil {
			return nil, err
		}
		bound = append(bound, b)
	}
	return applyBound(t, bound), nil
}

// bindPredicate parses a predicate string and resolves it against the
// table's schema, coercing date text against date columns.
func bindPredicate(t *table.Table, text string) (boundPredicate, error) {
	pred, err := predicate.Parse(text)
	if err != nil {
		return boundPredicate{}, &InvalidPredicateError{Text: text, Err: err}
	}

	col, ok := t.Column(pred.Column)
	if !ok {
		return boundPredicate{}, &UnknownColumnError{Column: pred.Column}
	}

	pred, err = coerceForColumn(col, pred)
	if err != nil {
		return boundPredicate{}, err
	}
	return boundPredicate{col: col, pred: pred}, nil
}

// coerceForColumn adapts a predicate value to a column's declared type and
// rejects comparisons that are not defined for it.
func coerceForColumn(col table.Column, pred predicate.Predicate) (predicate.Predicate, error) {
	kind := pred.Value.Kind()
	if kind == predicate.KindNull || col.Type == table.TypeNull {
		// Null compares against anything via the structural rules.
		return pred, nil
	}

	switch col.Type {
	case table.TypeInteger, table.TypeFloat:
		if kind == predicate.KindInteger || kind == predicate.KindFloat {
			return pred, nil
		}
	case table.TypeString:
		if kind == predicate.KindText {
			return pred, nil
		}
	case table.TypeBoolean:
		if kind == predicate.KindBool {
			return pred, nil
		}
	case table.TypeDate:
		if kind == predicate.KindText {
			day, err := time.Parse(dateLayout, pred.Value.Text())
			if err != nil {
				return predicate.Predicate{}, &InvalidDateError{Column: col.Name, Text: pred.Value.Text()}
			}
			pred.Value = predicate.Int(day.Unix())
			return pred, nil
		}
	}

	return predicate.Predicate{}, &IncompatibleTypesError{
		Column:     col.Name,
		ColumnType: col.Type,
		ValueKind:  kind,
	}
}

// applyBound keeps the rows matching every bound predicate.
func applyBound(t *table.Table, bound []boundPredicate) *table.Table {
	if len(bound) == 0 {
		return t
	}

	keep := make([]int, 0, t.NumRows())
	for i := 0; i < t.NumRows(); i++ {
		match := true
		for _, b := range bound {
			v := cellValue(b.col.Type, b.col.Values[i])
			if !b.pred.Matches(v) {
				match = false
				break
			}
		}
		if match {
			keep = append(keep, i)
		}
	}
	return t.Gather(keep)
}

// cellValue converts a cell into a predicate value according to the
// column's declared type. Date cells become Unix-timestamp integers so they
// compare against coerced date predicates.
func cellValue(colType table.Type, cell interface{}) predicate.Value {
	if cell == nil {
		return predicate.Null()
	}

	switch v := cell.(type) {
	case int64:
		return predicate.Int(v)
	case int32:
		return predicate.Int(int64(v))
	case int:
		return predicate.Int(int64(v))
	case float64:
		return predicate.Float(v)
	case float32:
		return predicate.Float(float64(v))
	case string:
		return predicate.Text(v)
	case bool:
		return predicate.Bool(v)
	case time.Time:
		if colType == table.TypeDate {
			return predicate.Int(v.Unix())
		}
		return predicate.Text(v.Format(time.RFC3339))
	default:
		return predicate.Text(fmt.Sprint(v))
	}
}

// cellText renders a cell for text search.
func cellText(cell interface{}) (string, bool) {
	if cell == nil {
		return "", false
	}
	switch v := cell.(type) {
	case string:
		return v, true
	case time.Time:
		return v.Format(dateLayout), true
	default:
		return fmt.Sprint(v), true
	}
}

// Select keeps only the columns present in both the requested list and the
// schema, preserving the requested order. An empty request or an empty
// intersection leaves the table unchanged; the latter is logged since the
// caller asked for columns that do not exist.
func Select(t *table.Table, columns []string, log zerolog.Logger) *table.Table {
	if len(columns) == 0 {
		return t
	}
	projected := t.Project(columns)
	if projected.NumColumns() == 0 {
		log.Warn().
			Str("requested", strings.Join(columns, ",")).
			Msg("no requested columns exist in schema, keeping all columns")
		return t
	}
	return projected
}
