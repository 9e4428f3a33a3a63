package engine

import (
	"github.com/vegasq/sharecat/table"
)

// QueryResult is a materialized table plus bookkeeping on the remote files
// behind it. FilesProcessed counts files that contributed at least one row;
// TotalFiles counts every file the manifest returned after partition
// pruning. Results are immutable: every operation returns a new one.
type QueryResult struct {
	Table          *table.Table
	FilesProcessed uint64
	TotalFiles     uint64
}

// Filter returns a new result with the strict filter applied. The first
// unusable predicate aborts with no partial filtering.
func (r *QueryResult) Filter(filters []string) (*QueryResult, error) {
	filtered, err := FilterStrict(r.Table, filters)
	if err != nil {
		return nil, err
	}
	return &QueryResult{
		Table:          filtered,
		FilesProcessed: r.FilesProcessed,
		TotalFiles:     r.TotalFiles,
	}, nil
}

// Search returns a new result holding the rows where any of the given
// columns contains text, case-insensitively.
func (r *QueryResult) Search(text string, columns []string) (*QueryResult, error) {
	found, err := TextSearch(r.Table, text, columns)
	if err != nil {
		return nil, err
	}
	return &QueryResult{
		Table:          found,
		FilesProcessed: r.FilesProcessed,
		TotalFiles:     r.TotalFiles,
	}, nil
}

// AggregateBy groups the result's rows by a column and returns buckets
// sorted by descending count.
func (r *QueryResult) AggregateBy(column string) ([]GroupCount, error) {
	return AggregateByColumn(r.Table, column)
}

// Concatenate stacks the rows of all tables, keeping the column-name
// intersection. See table.Concatenate.
func Concatenate(tables []*table.Table) *table.Table {
	return table.Concatenate(tables)
}
