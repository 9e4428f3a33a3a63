// Package predicate implements the comparison expression language used to
// prune and filter shared table data.
//
// A predicate is a single flat comparison of the form "column op value",
// for example:
//
//	book_id = 123
//	status != 'Pending'
//	price >= 9.99
//
// There are no boolean combinators; callers combine predicates with
// logical AND by passing several of them.
package predicate

// Operator is a comparison operator.
type Operator int

const (
	Eq  Operator = iota // =
	Neq                 // !=
	Gt                  // >
	Lt                  // <
	Gte                 // >=
	Lte                 // <=
)

// String returns the source form of the operator.
func (op Operator) String() string {
	switch op {
	case Eq:
		return "="
	case Neq:
		return "!="
	case Gt:
		return ">"
	case Lt:
		return "<"
	case Gte:
		return ">="
	case Lte:
		return "<="
	default:
		return "?"
	}
}

// Predicate is a parsed comparison. It is pure data: it holds no reference
// to any table and can be evaluated against any value.
type Predicate struct {
	Column string
	Op     Operator
	Value  Value
}

// String returns the canonical textual form of the predicate. Parsing the
// result yields an identical predicate.
func (p Predicate) String() string {
	return p.Column + " " + p.Op.String() + " " + p.Value.String()
}

// Matches evaluates the predicate operator against a candidate value.
//
// Integer and float values cross-compare numerically, text compares
// lexicographically, booleans and nulls support equality only. When the two
// kinds have no defined comparison, = and != fall back to comparing raw
// textual renderings and the ordering operators never match.
func (p Predicate) Matches(v Value) bool {
	if cmp, ok := compareOrder(v, p.Value); ok {
		switch p.Op {
		case Eq:
			return cmp == 0
		case Neq:
			return cmp != 0
		case Gt:
			return cmp > 0
		case Lt:
			return cmp < 0
		case Gte:
			return cmp >= 0
		case Lte:
			return cmp <= 0
		default:
			return false
		}
	}

	// Equality between bools, between nulls, or across mismatched kinds.
	equal := false
	if v.Kind() == p.Value.Kind() {
		equal = v.Equal(p.Value)
	} else {
		equal = v.raw() == p.Value.raw()
	}

	switch p.Op {
	case Eq:
		return equal
	case Neq:
		return !equal
	default:
		return false
	}
}
