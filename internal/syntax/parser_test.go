package syntax

import (
	"go/scanner"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ignorePositions compares literals by structure only.
var ignorePositions = cmp.Options{
	cmpopts.IgnoreFields(Literal{}, "Start", "End", "Pos"),
	cmpopts.IgnoreFields(Expr{}, "Offset", "Nested"),
}

func exprs(texts ...string) []Expr {
	out := make([]Expr, 0, len(texts))
	for _, text := range texts {
		out = append(out, Expr{Text: text})
	}
	return out
}

// findOne wraps src in a function body and returns its single literal.
func findOne(t *testing.T, body string) *Literal {
	t.Helper()
	src := "package p\n\nfunc f() {\n\tx := " + body + "\n\t_ = x\n}\n"
	lits, err := Find("test.golit", []byte(src), "LIT")
	require.NoError(t, err)
	require.Len(t, lits, 1)
	return lits[0]
}

func TestFind_Forms(t *testing.T) {
	testCases := []struct {
		name     string
		body     string
		expected *Literal
	}{
		{
			name:     "empty list",
			body:     "LIT[]",
			expected: &Literal{Kind: List, Elems: []Expr{}},
		},
		{
			name:     "typed empty list",
			body:     "LIT []uint32{}",
			expected: &Literal{Kind: List, Type: "[]uint32", Elems: []Expr{}},
		},
		{
			name:     "single element",
			body:     "LIT[42]",
			expected: &Literal{Kind: List, Elems: exprs("42")},
		},
		{
			name:     "list with calls and composite literals",
			body:     "LIT[f(1, 2), Point{X: 1, Y: 2}, []int{3, 4}]",
			expected: &Literal{Kind: List, Elems: exprs("f(1, 2)", "Point{X: 1, Y: 2}", "[]int{3, 4}")},
		},
		{
			name:     "repeat",
			body:     "LIT[42; 100]",
			expected: &Literal{Kind: Repeat, Elem: Expr{Text: "42"}, Count: Expr{Text: "100"}},
		},
		{
			name:     "typed repeat",
			body:     "LIT []uint32{42; n * 2}",
			expected: &Literal{Kind: Repeat, Type: "[]uint32", Elem: Expr{Text: "42"}, Count: Expr{Text: "n * 2"}},
		},
		{
			name: "map",
			body: `LIT{"John" => "Sailor"}`,
			expected: &Literal{Kind: Map, Entries: []Entry{
				{Key: Expr{Text: `"John"`}, Value: Expr{Text: `"Sailor"`}},
			}},
		},
		{
			name:     "typed empty map",
			body:     "LIT map[uint32]uint32{}",
			expected: &Literal{Kind: Map, Type: "map[uint32]uint32", Entries: []Entry{}},
		},
		{
			name: "map with struct value type",
			body: `LIT map[string]struct{}{"a" => struct{}{}}`,
			expected: &Literal{Kind: Map, Type: "map[string]struct{}", Entries: []Entry{
				{Key: Expr{Text: `"a"`}, Value: Expr{Text: "struct{}{}"}},
			}},
		},
		{
			name: "map values that compare with >=",
			body: `LIT{"big" => n >= 10}`,
			expected: &Literal{Kind: Map, Entries: []Entry{
				{Key: Expr{Text: `"big"`}, Value: Expr{Text: "n >= 10"}},
			}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := findOne(t, tc.body)
			if diff := cmp.Diff(tc.expected, got, ignorePositions); diff != "" {
				t.Errorf("literal mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFind_TrailingCommaNormalizes(t *testing.T) {
	pairs := []struct{ plain, trailing string }{
		{"LIT[1, 2, 3]", "LIT[1, 2, 3,]"},
		{"LIT []uint32{1, 2, 3}", "LIT []uint32{1, 2, 3,}"},
		{`LIT{"a" => 1, "b" => 2}`, `LIT{"a" => 1, "b" => 2,}`},
	}

	for _, pair := range pairs {
		t.Run(pair.trailing, func(t *testing.T) {
			plain := findOne(t, pair.plain)
			trailing := findOne(t, pair.trailing)
			if diff := cmp.Diff(plain, trailing, ignorePositions); diff != "" {
				t.Errorf("trailing comma changed the literal (-plain +trailing):\n%s", diff)
			}
		})
	}
}

func TestFind_Multiline(t *testing.T) {
	got := findOne(t, `LIT{
		"John" => "Sailor",
		"Peter" => "Baker",
		"Sally" => "Royal Chef",
		"Ben" => "Programmer"
	}`)

	require.Equal(t, Map, got.Kind)
	require.Len(t, got.Entries, 4)
	assert.Equal(t, `"Ben"`, got.Entries[3].Key.Text)
	assert.Equal(t, `"Programmer"`, got.Entries[3].Value.Text)
}

func TestFind_Nested(t *testing.T) {
	src := "package p\n\nvar x = LIT[LIT[1, 2], LIT[3]]\n"

	lits, err := Find("nested.golit", []byte(src), "LIT")
	require.NoError(t, err)
	require.Len(t, lits, 1, "only the outer literal is returned at the top level")

	outer := lits[0]
	require.Len(t, outer.Elems, 2)
	require.Len(t, outer.Elems[0].Nested, 1)
	assert.Len(t, outer.Elems[0].Nested[0].Elems, 2)
	require.Len(t, outer.Elems[1].Nested, 1)
	assert.Len(t, outer.Elems[1].Nested[0].Elems, 1)

	replaced := Substitute(outer.Elems[0], func(*Literal) string { return "inner" })
	assert.Equal(t, "inner", replaced)
}

func TestFind_Offsets(t *testing.T) {
	src := "package p\n\nvar x = LIT[ 10,  20 ]\n"

	lits, err := Find("offsets.golit", []byte(src), "LIT")
	require.NoError(t, err)
	require.Len(t, lits, 1)

	lit := lits[0]
	assert.Equal(t, "LIT[ 10,  20 ]", src[lit.Start:lit.End])
	assert.Equal(t, 3, lit.Pos.Line)
	for _, e := range lit.Elems {
		assert.Equal(t, e.Text, src[e.Offset:e.Offset+len(e.Text)])
	}
}

func TestFind_IgnoresNonLiterals(t *testing.T) {
	src := `package p

// LIT[1, 2] in a comment is ignored.
var s = "LIT[1, 2]"
var y = other.LIT[0]
func LIT() {}
`
	lits, err := Find("ignore.golit", []byte(src), "LIT")
	require.NoError(t, err)
	assert.Empty(t, lits)
}

func TestFind_CustomMarker(t *testing.T) {
	src := "package p\n\nvar x = VEC[1, 2]\nvar y = LIT[3]\n"

	lits, err := Find("marker.golit", []byte(src), "VEC")
	require.NoError(t, err)
	require.Len(t, lits, 1)
	assert.Len(t, lits[0].Elems, 2)
}

func TestFind_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		body    string
		message string
	}{
		{name: "empty element", body: "LIT[1,,2]", message: "missing element"},
		{name: "lone comma", body: "LIT[,]", message: "missing element"},
		{name: "malformed element", body: "LIT[1 +]", message: "invalid expression"},
		{name: "unterminated", body: "LIT[1, 2", message: "unterminated literal"},
		{name: "double semicolon", body: "LIT[1; 2; 3]", message: "[elem; count]"},
		{name: "semicolon and comma", body: "LIT[1, 2; 3]", message: "[elem; count]"},
		{name: "missing count", body: "LIT[1;]", message: "missing expression"},
		{name: "arrow in list", body: "LIT[1 => 2]", message: "only valid in map literals"},
		{name: "map entry without arrow", body: `LIT{"a"}`, message: "key => value"},
		{name: "map entry with two arrows", body: `LIT{"a" => 1 => 2}`, message: "more than one =>"},
		{name: "semicolon in map", body: `LIT{"a" => 1; "b" => 2}`, message: "unexpected ; in map literal"},
		{name: "plain assignment", body: `LIT{a = 1}`, message: "unexpected = in literal"},
		{name: "unbalanced type", body: "LIT []int]{1}", message: "unbalanced ] in literal type"},
		{name: "typed map with list body", body: "LIT map[string]int{1, 2}", message: "key => value"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			src := "package p\n\nvar x = " + tc.body + "\n"

			_, err := Find("bad.golit", []byte(src), "LIT")

			require.Error(t, err)
			var list scanner.ErrorList
			require.ErrorAs(t, err, &list)
			assert.True(t, strings.Contains(err.Error(), tc.message), "error %q should contain %q", err.Error(), tc.message)
			assert.Equal(t, "bad.golit", list[0].Pos.Filename)
		})
	}
}

func TestLiteral_Helpers(t *testing.T) {
	m := findOne(t, `LIT{"a" => 1, "b" => 2, "a" => 3}`)
	assert.Equal(t, 3, m.Size())
	var keys []string
	for _, k := range m.Keys() {
		keys = append(keys, k.Text)
	}
	assert.Equal(t, []string{`"a"`, `"b"`, `"a"`}, keys)
	assert.False(t, m.Typed())

	l := findOne(t, "LIT []int{1, 2}")
	assert.Equal(t, 2, l.Size())
	assert.True(t, l.Typed())

	assert.Equal(t, "repeat", Repeat.String())
}
