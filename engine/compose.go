package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vegasq/sharecat/predicate"
	"github.com/vegasq/sharecat/table"
)

// JoinType selects the join semantics.
type JoinType int

const (
	JoinInner JoinType = iota
	JoinLeft
	JoinRight
	JoinOuter
	JoinCross
)

// String returns the lower-case name of the join type.
func (jt JoinType) String() string {
	switch jt {
	case JoinInner:
		return "inner"
	case JoinLeft:
		return "left"
	case JoinRight:
		return "right"
	case JoinOuter:
		return "outer"
	case JoinCross:
		return "cross"
	default:
		return "unknown"
	}
}

// ParseJoinType maps a name like "inner" or "LEFT" to a JoinType.
func ParseJoinType(name string) (JoinType, bool) {
	switch strings.ToLower(name) {
	case "inner":
		return JoinInner, true
	case "left":
		return JoinLeft, true
	case "right":
		return JoinRight, true
	case "outer", "full":
		return JoinOuter, true
	case "cross":
		return JoinCross, true
	default:
		return 0, false
	}
}

// Join combines two query results on the given key columns. File counts
// add. Join-key columns that carry no concrete type on one side (for
// example from an empty source) take the other side's type first, so an
// empty result still joins against a typed key; a key column missing from
// one side entirely appears in the result with the other side's name and
// type. On column-name collisions outside the join keys the left column
// wins: the result carries left values and right-only rows are nil there.
// Null join keys never match.
func Join(left, right *QueryResult, on []string, how JoinType) *QueryResult {
	lt, rt := left.Table, right.Table

	// Type erasure from empty sources must not break key matching.
	for _, key := range on {
		lcol, lok := lt.Column(key)
		rcol, rok := rt.Column(key)
		if !lok || !rok {
			continue
		}
		if lcol.Type == table.TypeNull && rcol.Type != table.TypeNull {
			lt = lt.WithColumnType(key, rcol.Type)
		}
		if rcol.Type == table.TypeNull && lcol.Type != table.TypeNull {
			rt = rt.WithColumnType(key, lcol.Type)
		}
	}

	schema := joinSchema(lt, rt)

	var rows []map[string]interface{}
	switch how {
	case JoinCross:
		rows = crossRows(lt, rt)
	case JoinLeft:
		rows = sidedRows(lt, rt, on, true, false)
	case JoinRight:
		rows = sidedRows(lt, rt, on, false, true)
	case JoinOuter:
		rows = sidedRows(lt, rt, on, true, true)
	default:
		rows = sidedRows(lt, rt, on, false, false)
	}

	return &QueryResult{
		Table:          table.FromRows(schema, rows),
		FilesProcessed: left.FilesProcessed + right.FilesProcessed,
		TotalFiles:     left.TotalFiles + right.TotalFiles,
	}
}

// joinSchema is the left schema followed by the right columns absent from
// the left. Join keys the left side lacks entirely come from the right,
// keeping their type.
func joinSchema(lt, rt *table.Table) []table.Spec {
	schema := lt.Specs()
	for _, spec := range rt.Specs() {
		if lt.HasColumn(spec.Name) {
			continue
		}
		schema = append(schema, spec)
	}
	return schema
}

// sidedRows produces inner-join rows plus, when requested, the unmatched
// rows of either side padded with nils.
func sidedRows(lt, rt *table.Table, on []string, keepLeft, keepRight bool) []map[string]interface{} {
	rightMatched := make([]bool, rt.NumRows())
	var rows []map[string]interface{}

	for i := 0; i < lt.NumRows(); i++ {
		lrow := lt.Row(i)
		matched := false
		for j := 0; j < rt.NumRows(); j++ {
			rrow := rt.Row(j)
			if !keysMatch(lt, rt, i, j, on) {
				continue
			}
			matched = true
			rightMatched[j] = true
			rows = append(rows, mergeRows(lrow, rrow))
		}
		if !matched && keepLeft {
			rows = append(rows, lrow)
		}
	}

	if keepRight {
		shadowed := shadowedColumns(lt, rt, on)
		for j := 0; j < rt.NumRows(); j++ {
			if rightMatched[j] {
				continue
			}
			row := rt.Row(j)
			// Colliding non-key columns resolve to the left value on every
			// row; right-only rows have none, so the cell stays nil.
			for _, name := range shadowed {
				delete(row, name)
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// shadowedColumns lists the right columns hidden by same-named left columns
// outside the join keys.
func shadowedColumns(lt, rt *table.Table, on []string) []string {
	keys := make(map[string]bool, len(on))
	for _, key := range on {
		keys[key] = true
	}

	var names []string
	for _, spec := range rt.Specs() {
		if !keys[spec.Name] && lt.HasColumn(spec.Name) {
			names = append(names, spec.Name)
		}
	}
	return names
}

// crossRows produces the cartesian product of both tables.
func crossRows(lt, rt *table.Table) []map[string]interface{} {
	rows := make([]map[string]interface{}, 0, lt.NumRows()*rt.NumRows())
	for i := 0; i < lt.NumRows(); i++ {
		lrow := lt.Row(i)
		for j := 0; j < rt.NumRows(); j++ {
			rows = append(rows, mergeRows(lrow, rt.Row(j)))
		}
	}
	return rows
}

// keysMatch reports whether two rows agree on every join-key column.
func keysMatch(lt, rt *table.Table, i, j int, on []string) bool {
	for _, key := range on {
		lcol, lok := lt.Column(key)
		rcol, rok := rt.Column(key)
		if !lok || !rok {
			return false
		}
		lv := cellValue(lcol.Type, lcol.Values[i])
		rv := cellValue(rcol.Type, rcol.Values[j])
		if lv.Kind() == predicate.KindNull || rv.Kind() == predicate.KindNull {
			return false
		}
		if cmp, ok := lv.Compare(rv); ok {
			if cmp != 0 {
				return false
			}
			continue
		}
		if !lv.Equal(rv) {
			return false
		}
	}
	return true
}

// mergeRows overlays a right row onto a copy of a left row. Keys already
// present on the left keep the left value.
func mergeRows(lrow, rrow map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{}, len(lrow)+len(rrow))
	for k, v := range lrow {
		merged[k] = v
	}
	for k, v := range rrow {
		if _, exists := merged[k]; !exists {
			merged[k] = v
		}
	}
	return merged
}

// TextSearch keeps the rows where any of the requested columns contains the
// query as a case-insensitive substring. An empty query is a no-op. An
// empty column list, or one where none of the requested columns exist in
// the schema, fails with NoMatchingColumnsError; zero matching rows is a
// normal empty result.
func TextSearch(t *table.Table, query string, columns []string) (*table.Table, error) {
	if query == "" {
		return t, nil
	}

	var candidates []table.Column
	for _, name := range columns {
		if col, ok := t.Column(name); ok {
			candidates = append(candidates, col)
		}
	}
	if len(candidates) == 0 {
		return nil, &NoMatchingColumnsError{Columns: columns}
	}

	needle := strings.ToLower(query)
	keep := make([]int, 0, t.NumRows())
	for i := 0; i < t.NumRows(); i++ {
		for _, col := range candidates {
			text, ok := cellText(col.Values[i])
			if ok && strings.Contains(strings.ToLower(text), needle) {
				keep = append(keep, i)
				break
			}
		}
	}
	return t.Gather(keep), nil
}

// GroupCount is one aggregation bucket: a distinct column value and the
// number of rows carrying it.
type GroupCount struct {
	Value interface{}
	Count uint64
}

// AggregateByColumn groups rows by the column's value, including a null
// bucket, and returns the buckets sorted by descending count. Buckets with
// equal counts keep first-seen order; only the count ordering is
// contractual.
func AggregateByColumn(t *table.Table, column string) ([]GroupCount, error) {
	col, ok := t.Column(column)
	if !ok {
		return nil, &UnknownColumnError{Column: column}
	}

	buckets := make(map[string]int)
	var groups []GroupCount
	for _, cell := range col.Values {
		key := groupKey(cell)
		if idx, seen := buckets[key]; seen {
			groups[idx].Count++
			continue
		}
		buckets[key] = len(groups)
		groups = append(groups, GroupCount{Value: cell, Count: 1})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Count > groups[j].Count
	})
	return groups, nil
}

// groupKey renders a cell as a collision-safe bucket key.
func groupKey(cell interface{}) string {
	if cell == nil {
		return "\x00null"
	}
	return fmt.Sprintf("%T\x00%#v", cell, cell)
}
