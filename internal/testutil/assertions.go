package testutil

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// ReadGenerated returns the content of a generated file relative to the
// harness directory.
func ReadGenerated(t *testing.T, result *HarnessResult, name string) string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join(result.Dir, name))
	require.NoError(t, err, "generated file %s is missing", name)
	return string(content)
}

// TypeCheckPackage type-checks the generated files of one package that has
// no imports and returns the checked package.
func TypeCheckPackage(t *testing.T, result *HarnessResult, names ...string) *types.Package {
	t.Helper()
	fset := token.NewFileSet()
	var files []*ast.File
	for _, name := range names {
		f, err := parser.ParseFile(fset, name, ReadGenerated(t, result, name), 0)
		require.NoError(t, err)
		files = append(files, f)
	}

	var conf types.Config
	pkg, err := conf.Check(files[0].Name.Name, fset, files, nil)
	require.NoError(t, err, "generated code does not type-check")
	return pkg
}
