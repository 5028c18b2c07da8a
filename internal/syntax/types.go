package syntax

import "go/token"

// Kind identifies which of the three literal forms a Literal uses.
type Kind int

const (
	// List is `[e1, e2, ...]`, with or without a trailing comma.
	List Kind = iota
	// Repeat is `[elem; count]`.
	Repeat
	// Map is `{k1 => v1, k2 => v2, ...}`, with or without a trailing comma.
	Map
)

func (k Kind) String() string {
	switch k {
	case List:
		return "list"
	case Repeat:
		return "repeat"
	case Map:
		return "map"
	default:
		return "unknown"
	}
}

// Expr is one unevaluated element expression, kept as source text.
type Expr struct {
	// Text is the trimmed source of the expression. Nested literals are still
	// in their unexpanded form.
	Text string
	// Offset is the byte offset of Text within the scanned source.
	Offset int
	// Nested holds literals written inside this expression, in source order.
	Nested []*Literal
}

// Entry is one key => value pair of a map literal.
type Entry struct {
	Key   Expr
	Value Expr
}

// Literal is a parsed literal form. Trailing commas are dropped during
// parsing, so `[1, 2,]` and `[1, 2]` produce equal values.
type Literal struct {
	Kind Kind
	// Type is the written container type (`[]uint32`, `map[string]int`), or
	// empty for an untyped literal.
	Type string

	Elems   []Expr  // List
	Elem    Expr    // Repeat
	Count   Expr    // Repeat
	Entries []Entry // Map

	// Start and End delimit the whole literal, marker included, as byte
	// offsets [Start, End) in the scanned source.
	Start, End int
	// Pos is the position of the marker, for diagnostics.
	Pos token.Position
}

// Typed reports whether the literal names its container type.
func (l *Literal) Typed() bool {
	return l.Type != ""
}

// Keys returns the key expressions of a map literal in declaration order.
func (l *Literal) Keys() []Expr {
	keys := make([]Expr, 0, len(l.Entries))
	for _, e := range l.Entries {
		keys = append(keys, e.Key)
	}
	return keys
}

// Size returns the number of elements or entries the literal declares. For
// the repeat form the count is only known at run time and Size returns 1,
// the number of element expressions.
func (l *Literal) Size() int {
	switch l.Kind {
	case List:
		return len(l.Elems)
	case Map:
		return len(l.Entries)
	default:
		return 1
	}
}
