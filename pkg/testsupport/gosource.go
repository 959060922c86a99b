package testsupport

import (
	"go/ast"
	"go/parser"
	"go/token"
	"sort"
	"testing"
)

// MustParseGo parses generated Go source and fails the test on syntax errors.
func MustParseGo(t *testing.T, src []byte) *ast.File {
	t.Helper()

	file, err := parser.ParseFile(token.NewFileSet(), "generated.go", src, parser.ParseComments)
	if err != nil {
		t.Fatalf("generated source does not parse: %v\n%s", err, src)
	}
	return file
}

// MethodNames returns the sorted names of the methods declared on recv,
// whether the receiver is a value or a pointer.
func MethodNames(file *ast.File, recv string) []string {
	var out []string
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv == nil || len(fn.Recv.List) == 0 {
			continue
		}
		typ := fn.Recv.List[0].Type
		if star, ok := typ.(*ast.StarExpr); ok {
			typ = star.X
		}
		if ident, ok := typ.(*ast.Ident); ok && ident.Name == recv {
			out = append(out, fn.Name.Name)
		}
	}
	sort.Strings(out)
	return out
}

// FuncNames returns the sorted names of the plain functions in file.
func FuncNames(file *ast.File) []string {
	var out []string
	for _, decl := range file.Decls {
		if fn, ok := decl.(*ast.FuncDecl); ok && fn.Recv == nil {
			out = append(out, fn.Name.Name)
		}
	}
	sort.Strings(out)
	return out
}

// ImportPaths returns the import paths of file keyed by their explicit name,
// or by the path itself for unnamed imports.
func ImportPaths(file *ast.File) map[string]string {
	out := make(map[string]string, len(file.Imports))
	for _, imp := range file.Imports {
		path := imp.Path.Value[1 : len(imp.Path.Value)-1]
		name := path
		if imp.Name != nil {
			name = imp.Name.Name
		}
		out[name] = path
	}
	return out
}
