// Package reader decodes fetched parquet file bytes into tables.
//
// It uses the parquet-go library for the binary format and maps the
// parquet schema onto the declared column types of package table. Only
// flat schemas are decoded; nested group fields are skipped.
package reader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/vegasq/sharecat/table"
)

// ParquetDecoder decodes parquet bytes into tables. The zero value is
// ready to use.
type ParquetDecoder struct{}

// NewParquetDecoder creates a parquet decoder.
func NewParquetDecoder() *ParquetDecoder {
	return &ParquetDecoder{}
}

// Decode reads all rows of a parquet file held in memory and returns them
// as a typed table. Column order follows the parquet schema.
func (d *ParquetDecoder) Decode(data []byte) (*table.Table, error) {
	pf, err := parquet.OpenFile(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	specs := columnSpecs(pf.Schema())

	reader := parquet.NewReader(pf)
	defer func() { _ = reader.Close() }()

	rows := make([]map[string]interface{}, 0, pf.NumRows())
	for {
		row := make(map[string]interface{})
		err := reader.Read(&row)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		for _, spec := range specs {
			row[spec.Name] = normalizeCell(spec.Type, row[spec.Name])
		}
		rows = append(rows, row)
	}

	return table.FromRows(specs, rows), nil
}

// columnSpecs maps the top-level leaf fields of a parquet schema onto
// column specs. Group fields have no flat representation and are skipped.
func columnSpecs(schema *parquet.Schema) []table.Spec {
	var specs []table.Spec
	for _, field := range schema.Fields() {
		if len(field.Fields()) > 0 {
			continue
		}
		specs = append(specs, table.Spec{Name: field.Name(), Type: fieldType(field)})
	}
	return specs
}

// fieldType maps a parquet leaf field to a declared column type.
func fieldType(field parquet.Field) table.Type {
	typ := field.Type()
	if typ == nil {
		return table.TypeNull
	}

	if lt := typ.LogicalType(); lt != nil {
		switch {
		case lt.UTF8 != nil:
			return table.TypeString
		case lt.Date != nil, lt.Timestamp != nil:
			return table.TypeDate
		}
	}

	switch typ.Kind() {
	case parquet.Boolean:
		return table.TypeBoolean
	case parquet.Int32, parquet.Int64, parquet.Int96:
		return table.TypeInteger
	case parquet.Float, parquet.Double:
		return table.TypeFloat
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return table.TypeString
	default:
		return table.TypeNull
	}
}

// normalizeCell converts a decoded parquet value to the canonical cell
// representation for its declared column type.
func normalizeCell(colType table.Type, cell interface{}) interface{} {
	if cell == nil {
		return nil
	}

	switch colType {
	case table.TypeInteger:
		switch v := cell.(type) {
		case int32:
			return int64(v)
		case int:
			return int64(v)
		}
	case table.TypeFloat:
		if v, ok := cell.(float32); ok {
			return float64(v)
		}
	case table.TypeString:
		if v, ok := cell.([]byte); ok {
			return string(v)
		}
	case table.TypeDate:
		switch v := cell.(type) {
		case time.Time:
			return v
		case int32:
			// DATE is days since the Unix epoch.
			return time.Unix(int64(v)*86400, 0).UTC()
		case int64:
			// TIMESTAMP columns decode as microseconds by default.
			return time.UnixMicro(v).UTC()
		}
	}
	return cell
}
