package lit

// Integer is the set of types accepted as a repeat count.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Pair is a single key/value entry handed to Dict.
type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

// KV builds a Pair. It exists so Dict calls can infer K and V.
func KV[K comparable, V any](key K, value V) Pair[K, V] {
	return Pair[K, V]{Key: key, Value: value}
}

// Vec returns a new slice holding elems in order. The slice never aliases the
// variadic argument and its capacity equals its length.
func Vec[T any](elems ...T) []T {
	vs := make([]T, 0, len(elems))
	vs = append(vs, elems...)
	return vs
}

// Repeat returns a slice of count copies of elem. A count of zero or less
// yields an empty slice.
func Repeat[N Integer, T any](count N, elem T) []T {
	n := 0
	if count > 0 {
		n = int(count)
	}
	vs := make([]T, n)
	for i := range vs {
		vs[i] = elem
	}
	return vs
}

// Dict returns a map pre-sized for len(pairs) entries. Later pairs overwrite
// earlier pairs with an equal key.
func Dict[K comparable, V any](pairs ...Pair[K, V]) map[K]V {
	m := make(map[K]V, len(pairs))
	for _, p := range pairs {
		m[p.Key] = p.Value
	}
	return m
}
