package output

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/vegasq/sharecat/table"
)

// CSVFormatter outputs rows as CSV format
type CSVFormatter struct {
	writer io.Writer
}

// NewCSVFormatter creates a new CSV formatter
func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{writer: w}
}

// SetOutput sets the output writer
func (c *CSVFormatter) SetOutput(w io.Writer) {
	c.writer = w
}

// Format writes the table as CSV with a header row. Column order follows
// the table's declared order; nil cells become empty fields.
func (c *CSVFormatter) Format(t *table.Table) error {
	csvWriter := csv.NewWriter(c.writer)

	if t.NumColumns() > 0 {
		if err := csvWriter.Write(t.ColumnNames()); err != nil {
			return err
		}
	}

	for i := 0; i < t.NumRows(); i++ {
		if err := csvWriter.Write(renderRow(t, i)); err != nil {
			return err
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}
	return nil
}

// renderRow converts row i into string fields in column order.
func renderRow(t *table.Table, i int) []string {
	fields := make([]string, 0, t.NumColumns())
	for _, col := range t.Columns() {
		cell := col.Values[i]
		if cell == nil {
			fields = append(fields, "")
			continue
		}
		fields = append(fields, fmt.Sprint(cell))
	}
	return fields
}
