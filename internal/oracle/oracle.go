// Package oracle counts literal elements at compile time.
//
// The count is produced as Go source: every element expression is replaced by
// the zero-size placeholder struct{}{}, the placeholders form an array
// literal, and the length of that array is taken with len. Because the
// operand is an array value with no calls or receives, the Go compiler treats
// the whole expression as an integer constant, so it can initialise a const
// and costs nothing at run time. No element expression is ever copied into
// the count.
package oracle

import (
	"fmt"
	"strings"
)

// placeholder is the element written in place of each counted expression.
const placeholder = "{}"

// Count returns the number of elements in exprs. The elements themselves are
// never inspected.
func Count[E any](exprs []E) int {
	return len(exprs)
}

// Expr returns a Go constant expression whose value is n.
//
//	Expr(0) == "len([...]struct{}{})"
//	Expr(3) == "len([...]struct{}{{}, {}, {}})"
func Expr(n int) string {
	if n < 0 {
		panic(fmt.Sprintf("oracle: negative element count %d", n))
	}
	var sb strings.Builder
	sb.Grow(len("len([...]struct{}{})") + n*len(placeholder+", "))
	sb.WriteString("len([...]struct{}{")
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(placeholder)
	}
	sb.WriteString("})")
	return sb.String()
}

// Decl returns a const declaration binding name to the element count of exprs.
func Decl[E any](name string, exprs []E) string {
	return fmt.Sprintf("const %s = %s", name, Expr(Count(exprs)))
}
