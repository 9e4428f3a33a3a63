package table

import (
	"reflect"
	"testing"
)

func testTable(t *testing.T) *Table {
	t.Helper()
	tbl, err := New(
		Column{Name: "id", Type: TypeInteger, Values: []interface{}{int64(1), int64(2), int64(3)}},
		Column{Name: "status", Type: TypeString, Values: []interface{}{"active", "closed", "active"}},
		Column{Name: "score", Type: TypeFloat, Values: []interface{}{1.5, 2.5, 3.5}},
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return tbl
}

func TestNew_Validation(t *testing.T) {
	_, err := New(
		Column{Name: "a", Type: TypeInteger, Values: []interface{}{int64(1)}},
		Column{Name: "b", Type: TypeInteger, Values: []interface{}{int64(1), int64(2)}},
	)
	if err == nil {
		t.Error("New() with mismatched lengths should fail")
	}

	_, err = New(
		Column{Name: "a", Type: TypeInteger, Values: []interface{}{int64(1)}},
		Column{Name: "a", Type: TypeInteger, Values: []interface{}{int64(2)}},
	)
	if err == nil {
		t.Error("New() with duplicate names should fail")
	}
}

func TestTable_Basics(t *testing.T) {
	tbl := testTable(t)

	if tbl.NumRows() != 3 {
		t.Errorf("NumRows() = %d, want 3", tbl.NumRows())
	}
	if tbl.NumColumns() != 3 {
		t.Errorf("NumColumns() = %d, want 3", tbl.NumColumns())
	}
	if got := tbl.ColumnNames(); !reflect.DeepEqual(got, []string{"id", "status", "score"}) {
		t.Errorf("ColumnNames() = %v", got)
	}

	row := tbl.Row(1)
	if row["id"] != int64(2) || row["status"] != "closed" {
		t.Errorf("Row(1) = %v", row)
	}

	col, ok := tbl.Column("status")
	if !ok || col.Type != TypeString {
		t.Errorf("Column(status) = %+v, %v", col, ok)
	}
	if _, ok := tbl.Column("missing"); ok {
		t.Error("Column(missing) should not exist")
	}
}

func TestTable_Gather(t *testing.T) {
	tbl := testTable(t)
	picked := tbl.Gather([]int{2, 0})

	if picked.NumRows() != 2 {
		t.Fatalf("NumRows() = %d, want 2", picked.NumRows())
	}
	if picked.Row(0)["id"] != int64(3) || picked.Row(1)["id"] != int64(1) {
		t.Errorf("Gather order wrong: %v, %v", picked.Row(0), picked.Row(1))
	}

	empty := tbl.Gather(nil)
	if empty.NumRows() != 0 || empty.NumColumns() != 3 {
		t.Errorf("Gather(nil) = %d rows, %d columns", empty.NumRows(), empty.NumColumns())
	}
}

func TestTable_Project(t *testing.T) {
	tbl := testTable(t)

	projected := tbl.Project([]string{"score", "id", "missing"})
	if got := projected.ColumnNames(); !reflect.DeepEqual(got, []string{"score", "id"}) {
		t.Errorf("Project columns = %v, want [score id]", got)
	}
	if projected.NumRows() != 3 {
		t.Errorf("Project NumRows() = %d, want 3", projected.NumRows())
	}

	none := tbl.Project([]string{"nope"})
	if none.NumColumns() != 0 {
		t.Errorf("Project of unknown columns = %v", none.ColumnNames())
	}
}

func TestFromRows(t *testing.T) {
	schema := []Spec{{Name: "id", Type: TypeInteger}, {Name: "name", Type: TypeString}}
	rows := []map[string]interface{}{
		{"id": int64(1), "name": "a"},
		{"id": int64(2)}, // name absent, becomes nil
	}

	tbl := FromRows(schema, rows)
	if tbl.NumRows() != 2 {
		t.Fatalf("NumRows() = %d, want 2", tbl.NumRows())
	}
	if tbl.Row(1)["name"] != nil {
		t.Errorf("missing key should be nil, got %v", tbl.Row(1)["name"])
	}
}

func TestWithColumnType(t *testing.T) {
	tbl := Empty("id")
	typed := tbl.WithColumnType("id", TypeInteger)

	col, _ := typed.Column("id")
	if col.Type != TypeInteger {
		t.Errorf("retyped column = %v, want integer", col.Type)
	}
	// Original is untouched.
	col, _ = tbl.Column("id")
	if col.Type != TypeNull {
		t.Errorf("original column mutated to %v", col.Type)
	}
}

func TestConcatenate(t *testing.T) {
	t1, _ := New(
		Column{Name: "id", Type: TypeInteger, Values: []interface{}{int64(1)}},
		Column{Name: "status", Type: TypeString, Values: []interface{}{"a"}},
		Column{Name: "only_here", Type: TypeFloat, Values: []interface{}{1.0}},
	)
	t2, _ := New(
		Column{Name: "status", Type: TypeString, Values: []interface{}{"b", "c"}},
		Column{Name: "id", Type: TypeInteger, Values: []interface{}{int64(2), int64(3)}},
	)

	combined := Concatenate([]*Table{t1, t2})

	// Schema law: intersection of column names, in the first table's order.
	if got := combined.ColumnNames(); !reflect.DeepEqual(got, []string{"id", "status"}) {
		t.Errorf("ColumnNames() = %v, want [id status]", got)
	}
	if combined.NumRows() != 3 {
		t.Errorf("NumRows() = %d, want 3", combined.NumRows())
	}
	if combined.Row(2)["id"] != int64(3) {
		t.Errorf("rows not stacked in input order: %v", combined.Row(2))
	}
}

func TestConcatenate_EdgeCases(t *testing.T) {
	if got := Concatenate(nil); got.NumRows() != 0 || got.NumColumns() != 0 {
		t.Errorf("Concatenate(nil) = %d rows, %d columns", got.NumRows(), got.NumColumns())
	}

	// A table whose column carries no concrete type must not erase the
	// type contributed by another table.
	empty := Empty("id")
	typed, _ := New(Column{Name: "id", Type: TypeInteger, Values: []interface{}{int64(1)}})

	combined := Concatenate([]*Table{empty, typed})
	col, _ := combined.Column("id")
	if col.Type != TypeInteger {
		t.Errorf("column type = %v, want integer", col.Type)
	}
}
