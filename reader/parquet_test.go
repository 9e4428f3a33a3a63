package reader

import (
	"bytes"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vegasq/sharecat/table"
)

func writeParquet[T any](t *testing.T, rows []T) []byte {
	t.Helper()
	var buf bytes.Buffer
	writer := parquet.NewGenericWriter[T](&buf)
	_, err := writer.Write(rows)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return buf.Bytes()
}

func TestDecode(t *testing.T) {
	type row struct {
		ID     int64   `parquet:"id"`
		Name   string  `parquet:"name"`
		Score  float64 `parquet:"score"`
		Active bool    `parquet:"active"`
	}
	data := writeParquet(t, []row{
		{ID: 1, Name: "alpha", Score: 1.5, Active: true},
		{ID: 2, Name: "beta", Score: 2.5, Active: false},
	})

	tbl, err := NewParquetDecoder().Decode(data)
	require.NoError(t, err)

	assert.Equal(t, 2, tbl.NumRows())
	assert.Equal(t, []string{"id", "name", "score", "active"}, tbl.ColumnNames())

	id, _ := tbl.Column("id")
	assert.Equal(t, table.TypeInteger, id.Type)
	name, _ := tbl.Column("name")
	assert.Equal(t, table.TypeString, name.Type)
	score, _ := tbl.Column("score")
	assert.Equal(t, table.TypeFloat, score.Type)
	active, _ := tbl.Column("active")
	assert.Equal(t, table.TypeBoolean, active.Type)

	first := tbl.Row(0)
	assert.Equal(t, int64(1), first["id"])
	assert.Equal(t, "alpha", first["name"])
	assert.Equal(t, 1.5, first["score"])
	assert.Equal(t, true, first["active"])
}

func TestDecode_OptionalColumn(t *testing.T) {
	type row struct {
		ID   int64   `parquet:"id"`
		Note *string `parquet:"note,optional"`
	}
	note := "present"
	data := writeParquet(t, []row{
		{ID: 1, Note: &note},
		{ID: 2, Note: nil},
	})

	tbl, err := NewParquetDecoder().Decode(data)
	require.NoError(t, err)

	col, ok := tbl.Column("note")
	require.True(t, ok)
	assert.Equal(t, table.TypeString, col.Type)
	assert.Equal(t, "present", tbl.Row(0)["note"])
	assert.Nil(t, tbl.Row(1)["note"])
}

func TestDecode_DateColumn(t *testing.T) {
	type row struct {
		Day int32 `parquet:"day,date"`
	}
	data := writeParquet(t, []row{{Day: 19000}})

	tbl, err := NewParquetDecoder().Decode(data)
	require.NoError(t, err)

	col, ok := tbl.Column("day")
	require.True(t, ok)
	assert.Equal(t, table.TypeDate, col.Type)
	assert.Equal(t, time.Unix(19000*86400, 0).UTC(), tbl.Row(0)["day"])
}

func TestDecode_Empty(t *testing.T) {
	type row struct {
		ID int64 `parquet:"id"`
	}
	data := writeParquet(t, []row{})

	tbl, err := NewParquetDecoder().Decode(data)
	require.NoError(t, err)

	assert.Equal(t, 0, tbl.NumRows())
	assert.Equal(t, []string{"id"}, tbl.ColumnNames())
}

func TestDecode_InvalidBytes(t *testing.T) {
	_, err := NewParquetDecoder().Decode([]byte("not a parquet file"))
	assert.Error(t, err)
}
