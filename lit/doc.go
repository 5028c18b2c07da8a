// Package lit provides pre-sized container constructors for slices and maps.
//
// Each constructor allocates its result exactly once, sized from the number
// of arguments it was handed, and then fills it in argument order:
//
//	xs := lit.Vec(1, 2, 3)                // []int, len 3, cap 3
//	ys := lit.Repeat(100, uint32(42))     // []uint32, 100 copies of 42
//	jobs := lit.Dict(
//		lit.KV("John", "Sailor"),
//		lit.KV("Peter", "Baker"),
//	)                                     // map[string]string, 2 keys
//
// The litgen code generator emits calls into this package for untyped
// literals, where Go's type inference supplies the element types. Typed
// literals are expanded inline instead and do not depend on it.
//
// # Evaluation
//
// Arguments are ordinary Go function arguments, so every expression is
// evaluated exactly once, left to right. Repeat takes the count first so the
// count is bound before the element value is produced.
//
// # Duplicate keys
//
// Dict inserts pairs in order. When two keys compare equal the later pair
// overwrites the earlier one, and the resulting map only holds distinct keys.
package lit
