package output

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/vegasq/sharecat/table"
)

// TableFormatter outputs rows as an aligned ASCII table
type TableFormatter struct {
	writer io.Writer
}

// NewTableFormatter creates a new ASCII table formatter
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// SetOutput sets the output writer
func (f *TableFormatter) SetOutput(w io.Writer) {
	f.writer = w
}

// Format writes the table with aligned columns and a header row
func (f *TableFormatter) Format(t *table.Table) error {
	w := tablewriter.NewWriter(f.writer)
	w.SetHeader(t.ColumnNames())
	w.SetAutoFormatHeaders(false)

	for i := 0; i < t.NumRows(); i++ {
		w.Append(renderRow(t, i))
	}

	w.Render()
	return nil
}
