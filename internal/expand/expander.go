package expand

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/scanner"
	"go/token"

	"github.com/vk/litgen/internal/syntax"
)

// Names bound inside inline expansions. The prefix keeps them clear of any
// identifier an element expression may reference.
const (
	countConst = "__lit_n"
	countVar   = "__lit_count"
	elemVar    = "__lit_elem"
	indexVar   = "__lit_i"
	sliceVar   = "__lit_vs"
	mapVar     = "__lit_m"
)

// Expander turns parsed literals into Go expressions. It is not safe for
// concurrent use; create one per file.
type Expander struct {
	// Marker is the identifier introducing literals, used in diagnostics.
	Marker string
	// Runtime is the package name untyped literals call into.
	Runtime string

	fset        *token.FileSet
	errs        scanner.ErrorList
	usedRuntime bool
	stats       Stats
}

// Stats counts the literals an Expander has expanded, nested ones included.
type Stats struct {
	Lists   int
	Repeats int
	Maps    int
	Typed   int
	Untyped int
}

// Total returns the number of literals expanded.
func (s Stats) Total() int {
	return s.Lists + s.Repeats + s.Maps
}

// NewExpander returns an Expander whose untyped expansions call the package
// imported under runtimeName.
func NewExpander(marker, runtimeName string) *Expander {
	return &Expander{Marker: marker, Runtime: runtimeName, fset: token.NewFileSet()}
}

// UsedRuntime reports whether any expansion so far referenced the runtime
// package.
func (x *Expander) UsedRuntime() bool {
	return x.usedRuntime
}

// Stats returns the counters accumulated so far.
func (x *Expander) Stats() Stats {
	return x.stats
}

// Err returns the accumulated errors as a sorted scanner.ErrorList, or nil.
func (x *Expander) Err() error {
	x.errs.Sort()
	return x.errs.Err()
}

func (x *Expander) errorf(lit *syntax.Literal, format string, args ...any) {
	x.errs.Add(lit.Pos, fmt.Sprintf(format, args...))
}

// Literal returns the Go expression replacing lit. On failure it records an
// error, retrievable with Err, and returns false.
func (x *Expander) Literal(lit *syntax.Literal) (string, bool) {
	if lit.Typed() {
		x.stats.Typed++
	} else {
		x.stats.Untyped++
	}

	switch lit.Kind {
	case syntax.List:
		x.stats.Lists++
		return x.list(lit)
	case syntax.Repeat:
		x.stats.Repeats++
		return x.repeat(lit)
	case syntax.Map:
		x.stats.Maps++
		return x.mapping(lit)
	default:
		x.errorf(lit, "unknown literal kind %v", lit.Kind)
		return "", false
	}
}

// element returns the Go text of e with nested literals expanded. The
// expression is reprinted from its syntax tree, so comments inside an
// element are dropped and a trailing line comment cannot swallow the
// generated code that follows it.
func (x *Expander) element(lit *syntax.Literal, e syntax.Expr) (string, bool) {
	ok := true
	text := syntax.Substitute(e, func(n *syntax.Literal) string {
		out, nestedOK := x.Literal(n)
		ok = ok && nestedOK
		return out
	})
	if !ok {
		return "", false
	}

	node, err := parser.ParseExprFrom(x.fset, "", text, 0)
	if err != nil {
		x.errorf(lit, "invalid element %q: %v", e.Text, err)
		return "", false
	}
	return x.print(lit, node)
}

// elements expands every expression in exprs.
func (x *Expander) elements(lit *syntax.Literal, exprs []syntax.Expr) ([]string, bool) {
	out := make([]string, 0, len(exprs))
	for _, e := range exprs {
		text, ok := x.element(lit, e)
		if !ok {
			return nil, false
		}
		out = append(out, text)
	}
	return out, true
}

// containerType parses the written type of lit.
func (x *Expander) containerType(lit *syntax.Literal) (ast.Expr, bool) {
	node, err := parser.ParseExprFrom(x.fset, "", lit.Type, 0)
	if err != nil {
		x.errorf(lit, "invalid literal type %q: %v", lit.Type, err)
		return nil, false
	}
	return node, true
}

func (x *Expander) print(lit *syntax.Literal, node ast.Node) (string, bool) {
	var buf bytes.Buffer
	if err := format.Node(&buf, x.fset, node); err != nil {
		x.errorf(lit, "cannot print expression: %v", err)
		return "", false
	}
	return buf.String(), true
}
