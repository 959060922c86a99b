// Package golang extracts record schemas from Go source files.
package golang

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"
	"strings"

	"github.com/goliatone/go-buildergen/pkg/schema"
)

// Marker is the comment directive that opts a struct into generation when no
// type names are requested explicitly.
const Marker = "//buildergen:builder"

// Extractor implements schema.Extractor for Go source files.
type Extractor struct{}

var (
	_ schema.Extractor  = (*Extractor)(nil)
	_ schema.TypeLister = (*Extractor)(nil)
)

// New constructs a Go source extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract parses doc as a Go file and returns the requested struct types in
// the requested order. Without type names it returns every struct carrying
// the Marker directive, in declaration order.
func (e *Extractor) Extract(ctx context.Context, doc schema.Document, typeNames ...string) (schema.File, error) {
	if err := ctx.Err(); err != nil {
		return schema.File{}, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return schema.File{}, errors.New("golang extractor: document payload is empty")
	}

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, doc.Location(), raw, parser.ParseComments)
	if err != nil {
		return schema.File{}, fmt.Errorf("golang extractor: parse %s: %w", doc.Location(), err)
	}

	decls := collectTypeDecls(file)
	if len(typeNames) == 0 {
		typeNames = markedTypes(decls)
		if len(typeNames) == 0 {
			return schema.File{}, fmt.Errorf("golang extractor: %s: no type names given and no struct marked with %s", doc.Location(), Marker)
		}
	}

	out := schema.File{
		Package: file.Name.Name,
		Origin:  doc.Location(),
		Imports: collectImports(file),
		Structs: make([]schema.StructSpec, 0, len(typeNames)),
	}
	for _, name := range typeNames {
		decl, ok := findDecl(decls, name)
		if !ok {
			return schema.File{}, fmt.Errorf("golang extractor: %s: %w: %s", doc.Location(), schema.ErrTypeNotFound, name)
		}
		spec, err := structSpec(decl)
		if err != nil {
			return schema.File{}, err
		}
		out.Structs = append(out.Structs, spec)
	}
	return out, nil
}

// ListTypes returns the names of every struct type declared in doc, in
// declaration order.
func (e *Extractor) ListTypes(ctx context.Context, doc schema.Document) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := parser.ParseFile(token.NewFileSet(), doc.Location(), doc.Raw(), parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("golang extractor: parse %s: %w", doc.Location(), err)
	}
	var out []string
	for _, d := range collectTypeDecls(file) {
		if _, isStruct := d.spec.Type.(*ast.StructType); isStruct {
			out = append(out, d.spec.Name.Name)
		}
	}
	return out, nil
}

type typeDecl struct {
	spec *ast.TypeSpec
	doc  *ast.CommentGroup
}

func collectTypeDecls(file *ast.File) []typeDecl {
	var out []typeDecl
	for _, d := range file.Decls {
		gd, ok := d.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, s := range gd.Specs {
			ts, ok := s.(*ast.TypeSpec)
			if !ok || ts.Name == nil {
				continue
			}
			doc := ts.Doc
			if doc == nil && len(gd.Specs) == 1 {
				doc = gd.Doc
			}
			out = append(out, typeDecl{spec: ts, doc: doc})
		}
	}
	return out
}

func markedTypes(decls []typeDecl) []string {
	var out []string
	for _, d := range decls {
		if _, isStruct := d.spec.Type.(*ast.StructType); !isStruct {
			continue
		}
		if hasMarker(d.doc) {
			out = append(out, d.spec.Name.Name)
		}
	}
	return out
}

func hasMarker(cg *ast.CommentGroup) bool {
	if cg == nil {
		return false
	}
	for _, c := range cg.List {
		if strings.TrimSpace(c.Text) == Marker {
			return true
		}
	}
	return false
}

func findDecl(decls []typeDecl, name string) (typeDecl, bool) {
	for _, d := range decls {
		if d.spec.Name.Name == name {
			return d, true
		}
	}
	return typeDecl{}, false
}

func structSpec(decl typeDecl) (schema.StructSpec, error) {
	ts := decl.spec
	name := ts.Name.Name
	if ts.TypeParams != nil && len(ts.TypeParams.List) > 0 {
		return schema.StructSpec{}, &schema.ShapeError{Type: name, Reason: "generic records are not supported"}
	}
	if ts.Assign.IsValid() {
		return schema.StructSpec{}, &schema.ShapeError{Type: name, Reason: "type aliases are not supported"}
	}
	st, ok := ts.Type.(*ast.StructType)
	if !ok {
		return schema.StructSpec{}, &schema.ShapeError{Type: name, Reason: "only struct types with named fields are supported"}
	}

	var fields []schema.FieldSpec
	if st.Fields != nil {
		for _, f := range st.Fields.List {
			if len(f.Names) == 0 {
				return schema.StructSpec{}, &schema.ShapeError{
					Type:   name,
					Field:  exprName(f.Type),
					Reason: "embedded fields are not supported",
				}
			}
			doc := commentText(f.Doc)
			if doc == "" {
				doc = commentText(f.Comment)
			}
			tag := ""
			if f.Tag != nil {
				if unquoted, err := strconv.Unquote(f.Tag.Value); err == nil {
					tag = unquoted
				}
			}
			for _, n := range f.Names {
				fields = append(fields, schema.FieldSpec{
					Name: n.Name,
					Type: schema.TypeExprFromAST(f.Type),
					Doc:  doc,
					Tag:  tag,
				})
			}
		}
	}
	if len(fields) == 0 {
		return schema.StructSpec{}, &schema.ShapeError{Type: name, Reason: "record has no named fields"}
	}

	spec := schema.NewStructSpec(name, fields...)
	spec.Doc = docText(decl.doc)
	if err := spec.Validate(); err != nil {
		return schema.StructSpec{}, err
	}
	return spec, nil
}

func collectImports(file *ast.File) []schema.Import {
	out := make([]schema.Import, 0, len(file.Imports))
	for _, imp := range file.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}
		i := schema.Import{Path: path}
		if imp.Name != nil {
			switch imp.Name.Name {
			case "_", ".":
				continue
			default:
				i.Name = imp.Name.Name
			}
		}
		out = append(out, i)
	}
	return out
}

// docText returns the doc comment without directive lines such as the
// generation marker.
func docText(cg *ast.CommentGroup) string {
	return strings.TrimSpace(cg.Text())
}

func commentText(cg *ast.CommentGroup) string {
	if cg == nil {
		return ""
	}
	return strings.TrimSpace(cg.Text())
}

func exprName(expr ast.Expr) string {
	switch v := expr.(type) {
	case *ast.Ident:
		return v.Name
	case *ast.StarExpr:
		return exprName(v.X)
	case *ast.SelectorExpr:
		return v.Sel.Name
	case *ast.IndexExpr:
		return exprName(v.X)
	case *ast.IndexListExpr:
		return exprName(v.X)
	default:
		return ""
	}
}
