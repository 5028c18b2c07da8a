// Package expand turns the literals found by package syntax into Go.
//
// A typed literal (LIT []T{...} or LIT map[K]V{...}) is inlined as an
// immediately invoked closure. List and map closures size their container
// with a constant produced by package oracle, so the element count is known
// at compile time and no element is evaluated to obtain it.
//
// An untyped literal (LIT[...] or LIT{...}) becomes a call into the runtime
// package lit, leaving element type inference to the Go compiler.
//
// File applies the expansion to a whole source file, adds the runtime import
// when needed and formats the result.
package expand
