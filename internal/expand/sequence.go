package expand

import (
	"fmt"
	"go/ast"
	"strings"

	"github.com/vk/litgen/internal/oracle"
	"github.com/vk/litgen/internal/syntax"
)

// list expands `[e1, ..., eN]`. A typed literal becomes a closure that
// allocates exactly N slots, sized by the oracle, and appends each element
// once in order:
//
//	func() []T {
//		const __lit_n = len([...]struct{}{{}, {}})
//		__lit_vs := make([]T, 0, __lit_n)
//		__lit_vs = append(__lit_vs, e1)
//		__lit_vs = append(__lit_vs, e2)
//		return __lit_vs
//	}()
//
// An untyped literal becomes a call to the runtime Vec.
func (x *Expander) list(lit *syntax.Literal) (string, bool) {
	elems, ok := x.elements(lit, lit.Elems)
	if !ok {
		return "", false
	}

	if !lit.Typed() {
		if len(elems) == 0 {
			x.errorf(lit, "cannot infer the element type of an empty literal; write %s []T{}", x.Marker)
			return "", false
		}
		x.usedRuntime = true
		return fmt.Sprintf("%s.Vec(%s)", x.Runtime, strings.Join(elems, ", ")), true
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "func() %s {\n", lit.Type)
	fmt.Fprintf(&sb, "\t%s\n", oracle.Decl(countConst, lit.Elems))
	fmt.Fprintf(&sb, "\t%s := make(%s, 0, %s)\n", sliceVar, lit.Type, countConst)
	for _, e := range elems {
		fmt.Fprintf(&sb, "\t%s = append(%s, %s)\n", sliceVar, sliceVar, e)
	}
	fmt.Fprintf(&sb, "\treturn %s\n", sliceVar)
	sb.WriteString("}()")
	return sb.String(), true
}

// repeat expands `[elem; count]`. The count is bound before anything else,
// then the element is evaluated once and copied into every slot:
//
//	func() []T {
//		__lit_count := count
//		var __lit_elem T = elem
//		__lit_vs := make([]T, __lit_count)
//		for __lit_i := range __lit_vs {
//			__lit_vs[__lit_i] = __lit_elem
//		}
//		return __lit_vs
//	}()
//
// make only accepts integer sizes, so a non-integer count fails to compile.
// An untyped literal becomes a call to the runtime Repeat, which takes the
// count as its first argument so it is still evaluated first.
func (x *Expander) repeat(lit *syntax.Literal) (string, bool) {
	count, ok := x.element(lit, lit.Count)
	if !ok {
		return "", false
	}
	elem, ok := x.element(lit, lit.Elem)
	if !ok {
		return "", false
	}

	if !lit.Typed() {
		x.usedRuntime = true
		return fmt.Sprintf("%s.Repeat(%s, %s)", x.Runtime, count, elem), true
	}

	elemType, ok := x.sliceElem(lit)
	if !ok {
		return "", false
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "func() %s {\n", lit.Type)
	fmt.Fprintf(&sb, "\t%s := %s\n", countVar, count)
	fmt.Fprintf(&sb, "\tvar %s %s = %s\n", elemVar, elemType, elem)
	fmt.Fprintf(&sb, "\t%s := make(%s, %s)\n", sliceVar, lit.Type, countVar)
	fmt.Fprintf(&sb, "\tfor %s := range %s {\n", indexVar, sliceVar)
	fmt.Fprintf(&sb, "\t\t%s[%s] = %s\n", sliceVar, indexVar, elemVar)
	sb.WriteString("\t}\n")
	fmt.Fprintf(&sb, "\treturn %s\n", sliceVar)
	sb.WriteString("}()")
	return sb.String(), true
}

// sliceElem returns the element type of a typed sequence literal.
func (x *Expander) sliceElem(lit *syntax.Literal) (string, bool) {
	node, ok := x.containerType(lit)
	if !ok {
		return "", false
	}
	slice, isSlice := node.(*ast.ArrayType)
	if !isSlice || slice.Len != nil {
		x.errorf(lit, "sequence literal type %q is not a slice type", lit.Type)
		return "", false
	}
	return x.print(lit, slice.Elt)
}
