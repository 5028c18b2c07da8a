package expand

import (
	"bytes"
	"context"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"path"
	"path/filepath"
	"strings"

	"github.com/vk/litgen/internal/ctxlog"
	"github.com/vk/litgen/internal/syntax"
	"golang.org/x/tools/go/ast/astutil"
)

// Options controls how a file is rewritten.
type Options struct {
	// Marker is the identifier that introduces a literal.
	Marker string
	// RuntimeImport is the import path of the constructor package used by
	// untyped literals.
	RuntimeImport string
	// RuntimeName is the name the constructor package is referenced by.
	RuntimeName string
	// Header is written as a line comment above the package clause. The
	// placeholder {{file}} is replaced with the base name of the input.
	Header string
}

// Output is a rewritten file.
type Output struct {
	Source []byte
	Stats  Stats
}

// File rewrites every literal in src and returns formatted Go source.
// Errors in literal syntax are reported as a scanner.ErrorList positioned in
// the input file.
func File(ctx context.Context, filename string, src []byte, opts Options) (*Output, error) {
	logger := ctxlog.FromContext(ctx).With("file", filename)

	lits, err := syntax.Find(filename, src, opts.Marker)
	if err != nil {
		return nil, err
	}

	x := NewExpander(opts.Marker, opts.RuntimeName)
	var buf bytes.Buffer
	last := 0
	for _, lit := range lits {
		out, ok := x.Literal(lit)
		if !ok {
			continue
		}
		buf.Write(src[last:lit.Start])
		buf.WriteString(out)
		last = lit.End
	}
	if err := x.Err(); err != nil {
		return nil, err
	}
	buf.Write(src[last:])

	stats := x.Stats()
	logger.Debug("Expanded literals.", "lists", stats.Lists, "repeats", stats.Repeats, "maps", stats.Maps, "typed", stats.Typed, "untyped", stats.Untyped)

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, filename, buf.Bytes(), parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("expanded source does not parse: %w", err)
	}

	if x.UsedRuntime() {
		name := opts.RuntimeName
		if name == path.Base(opts.RuntimeImport) {
			name = ""
		}
		astutil.AddNamedImport(fset, f, name, opts.RuntimeImport)
	}
	dropGenerateDirectives(f)

	var out bytes.Buffer
	writeHeader(&out, opts.Header, filepath.Base(filename))
	if err := format.Node(&out, fset, f); err != nil {
		return nil, fmt.Errorf("formatting expanded source: %w", err)
	}
	return &Output{Source: out.Bytes(), Stats: stats}, nil
}

// dropGenerateDirectives removes //go:generate lines so that running
// go generate over the output does not invoke the generator again.
func dropGenerateDirectives(f *ast.File) {
	groups := f.Comments[:0]
	for _, group := range f.Comments {
		kept := group.List[:0]
		for _, c := range group.List {
			if !strings.HasPrefix(c.Text, "//go:generate") {
				kept = append(kept, c)
			}
		}
		if len(kept) == 0 {
			continue
		}
		group.List = kept
		groups = append(groups, group)
	}
	f.Comments = groups
}

func writeHeader(w *bytes.Buffer, header, base string) {
	if header == "" {
		return
	}
	header = strings.ReplaceAll(header, "{{file}}", base)
	for _, line := range strings.Split(header, "\n") {
		fmt.Fprintf(w, "// %s\n", line)
	}
	w.WriteString("\n")
}
