// Package output provides formatters for rendering query results.
//
// Currently supported formats:
//   - JSON Lines: one JSON object per row
//   - CSV: comma-separated values with header row
//   - Table: aligned ASCII table
//
// Example usage:
//
//	formatter := output.NewJSONFormatter(os.Stdout)
//	if err := formatter.Format(result.Table); err != nil {
//	    log.Fatal(err)
//	}
package output

import (
	"io"

	"github.com/vegasq/sharecat/table"
)

// Formatter renders a table to an output writer.
type Formatter interface {
	// Format writes the table in the formatter's specific format
	Format(t *table.Table) error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}

// New returns the formatter for a format name: "json", "jsonl", "csv" or
// "table". Unknown names fall back to JSON Lines.
func New(format string, w io.Writer) Formatter {
	switch format {
	case "csv":
		return NewCSVFormatter(w)
	case "table":
		return NewTableFormatter(w)
	default:
		return NewJSONFormatter(w)
	}
}
