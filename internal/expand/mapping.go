package expand

import (
	"fmt"
	"strings"

	"github.com/vk/litgen/internal/oracle"
	"github.com/vk/litgen/internal/syntax"
)

// mapping expands `{k1 => v1, ..., kN => vN}`. A typed literal becomes a
// closure that sizes the map with the oracle over the keys and assigns each
// pair once in declaration order, so a repeated key keeps its last value:
//
//	func() map[K]V {
//		const __lit_n = len([...]struct{}{{}, {}})
//		__lit_m := make(map[K]V, __lit_n)
//		__lit_m[k1] = v1
//		__lit_m[k2] = v2
//		return __lit_m
//	}()
//
// An untyped literal becomes a runtime Dict call over KV pairs.
func (x *Expander) mapping(lit *syntax.Literal) (string, bool) {
	keys := make([]string, 0, len(lit.Entries))
	values := make([]string, 0, len(lit.Entries))
	for _, entry := range lit.Entries {
		key, ok := x.element(lit, entry.Key)
		if !ok {
			return "", false
		}
		value, ok := x.element(lit, entry.Value)
		if !ok {
			return "", false
		}
		keys = append(keys, key)
		values = append(values, value)
	}

	if !lit.Typed() {
		if len(keys) == 0 {
			x.errorf(lit, "cannot infer the key and value types of an empty literal; write %s map[K]V{}", x.Marker)
			return "", false
		}
		x.usedRuntime = true
		pairs := make([]string, 0, len(keys))
		for i := range keys {
			pairs = append(pairs, fmt.Sprintf("%s.KV(%s, %s)", x.Runtime, keys[i], values[i]))
		}
		return fmt.Sprintf("%s.Dict(%s)", x.Runtime, strings.Join(pairs, ", ")), true
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "func() %s {\n", lit.Type)
	fmt.Fprintf(&sb, "\t%s\n", oracle.Decl(countConst, lit.Keys()))
	fmt.Fprintf(&sb, "\t%s := make(%s, %s)\n", mapVar, lit.Type, countConst)
	for i := range keys {
		fmt.Fprintf(&sb, "\t%s[%s] = %s\n", mapVar, keys[i], values[i])
	}
	fmt.Fprintf(&sb, "\treturn %s\n", mapVar)
	sb.WriteString("}()")
	return sb.String(), true
}
