package predicate

import (
	"errors"
	"testing"
)

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Predicate
	}{
		{"int equality", "book_id = 123", Predicate{Column: "book_id", Op: Eq, Value: Int(123)}},
		{"string not equal", "status != 'Pending'", Predicate{Column: "status", Op: Neq, Value: Text("Pending")}},
		{"double quoted string", `name = "Alice"`, Predicate{Column: "name", Op: Eq, Value: Text("Alice")}},
		{"greater than", "age > 30", Predicate{Column: "age", Op: Gt, Value: Int(30)}},
		{"less than", "age < 30", Predicate{Column: "age", Op: Lt, Value: Int(30)}},
		{"greater equal", "price >= 9.99", Predicate{Column: "price", Op: Gte, Value: Float(9.99)}},
		{"less equal", "price <= 100.0", Predicate{Column: "price", Op: Lte, Value: Float(100.0)}},
		{"negative integer", "delta = -5", Predicate{Column: "delta", Op: Eq, Value: Int(-5)}},
		{"explicit plus sign", "delta = +5", Predicate{Column: "delta", Op: Eq, Value: Int(5)}},
		{"negative float", "delta = -5.5", Predicate{Column: "delta", Op: Eq, Value: Float(-5.5)}},
		{"bool true", "active = true", Predicate{Column: "active", Op: Eq, Value: Bool(true)}},
		{"bool upper false", "active != FALSE", Predicate{Column: "active", Op: Neq, Value: Bool(false)}},
		{"null literal", "deleted_at = null", Predicate{Column: "deleted_at", Op: Eq, Value: Null()}},
		{"upper null literal", "deleted_at != NULL", Predicate{Column: "deleted_at", Op: Neq, Value: Null()}},
		{"qualified column", "orders.status = 'open'", Predicate{Column: "orders.status", Op: Eq, Value: Text("open")}},
		{"no whitespace", "a=1", Predicate{Column: "a", Op: Eq, Value: Int(1)}},
		{"padded whitespace", "  a  =  1  ", Predicate{Column: "a", Op: Eq, Value: Int(1)}},
		{"escaped single quote", `note = 'it\'s fine'`, Predicate{Column: "note", Op: Eq, Value: Text("it's fine")}},
		{"escaped double quote", `note = "say \"hi\""`, Predicate{Column: "note", Op: Eq, Value: Text(`say "hi"`)}},
		{"numeric column name", "col2 = 7", Predicate{Column: "col2", Op: Eq, Value: Int(7)}},
		{"empty string value", "name = ''", Predicate{Column: "name", Op: Eq, Value: Text("")}},
		{"digits in quotes stay text", "zip = '01234'", Predicate{Column: "zip", Op: Eq, Value: Text("01234")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			if got.Column != tt.want.Column || got.Op != tt.want.Op || !got.Value.Equal(tt.want.Value) {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"whitespace only", "   "},
		{"missing operator", "age 30"},
		{"missing value", "age >"},
		{"missing column", "= 30"},
		{"unterminated single quote", "name = 'alice"},
		{"unterminated double quote", `name = "alice`},
		{"trailing characters", "age > 30 extra"},
		{"trailing after string", "name = 'a' b"},
		{"two operators", "age > > 30"},
		{"bare word value", "status = pending"},
		{"bare minus", "age = -"},
		{"dot without fraction", "price = 3."},
		{"exponent notation rejected", "price = 1e5"},
		{"boolean combinator rejected", "a = 1 and b = 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", tt.input)
			}
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("Parse(%q) error = %T, want *ParseError", tt.input, err)
			}
			if parseErr.Input != tt.input {
				t.Errorf("ParseError.Input = %q, want %q", parseErr.Input, tt.input)
			}
		})
	}
}

func TestParse_ErrorOffset(t *testing.T) {
	_, err := Parse("age > 30 extra")
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("error = %T, want *ParseError", err)
	}
	if parseErr.Offset != 9 {
		t.Errorf("Offset = %d, want 9", parseErr.Offset)
	}
}

// Canonical form of a parsed predicate must re-parse to the identical
// triple.
func TestParse_RoundTrip(t *testing.T) {
	inputs := []string{
		"book_id = 123",
		"status != 'Pending'",
		"price >= 9.99",
		"price <= -0.5",
		"active = true",
		"deleted_at = null",
		`note = 'it\'s "quoted"'`,
		"score > 100.0",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			first, err := Parse(input)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", input, err)
			}
			second, err := Parse(first.String())
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", first.String(), err)
			}
			if first.Column != second.Column || first.Op != second.Op || !first.Value.Equal(second.Value) {
				t.Errorf("round trip of %q: %+v != %+v", input, first, second)
			}
		})
	}
}

func TestParse_NumberTyping(t *testing.T) {
	intPred, err := Parse("n = 42")
	if err != nil {
		t.Fatal(err)
	}
	if intPred.Value.Kind() != KindInteger || intPred.Value.Int() != 42 {
		t.Errorf("42 parsed as %v, want integer 42", intPred.Value)
	}

	floatPred, err := Parse("n = 42.0")
	if err != nil {
		t.Fatal(err)
	}
	if floatPred.Value.Kind() != KindFloat || floatPred.Value.Float() != 42.0 {
		t.Errorf("42.0 parsed as %v, want float 42.0", floatPred.Value)
	}
}
