package schema

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	gotoken "go/token"
	"go/types"
	"sort"
	"strings"
)

// TypeExpr is a Go type expression as written in a record declaration. It is
// kept syntactic on purpose: classification happens on spelling, never on
// resolved type identity.
type TypeExpr struct {
	expr ast.Expr
}

// ParseTypeExpr parses src as a Go type expression.
func ParseTypeExpr(src string) (TypeExpr, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return TypeExpr{}, errors.New("schema: type expression is empty")
	}
	expr, err := parser.ParseExpr(src)
	if err != nil {
		return TypeExpr{}, fmt.Errorf("schema: parse type %q: %w", src, err)
	}
	return TypeExpr{expr: expr}, nil
}

// MustParseTypeExpr panics when src is not a valid expression.
func MustParseTypeExpr(src string) TypeExpr {
	t, err := ParseTypeExpr(src)
	if err != nil {
		panic(err)
	}
	return t
}

// TypeExprFromAST wraps an expression taken from a parsed file or built by
// hand.
func TypeExprFromAST(expr ast.Expr) TypeExpr {
	return TypeExpr{expr: expr}
}

// AST returns the underlying expression. Callers must not mutate it.
func (t TypeExpr) AST() ast.Expr {
	return t.expr
}

// IsZero reports whether the expression is unset.
func (t TypeExpr) IsZero() bool {
	return t.expr == nil
}

// String renders the expression in canonical Go syntax.
func (t TypeExpr) String() string {
	if t.expr == nil {
		return ""
	}
	return types.ExprString(t.expr)
}

// MarshalText renders the expression for JSON and YAML encoders.
func (t TypeExpr) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Qualifiers returns the sorted package qualifiers referenced by the
// expression, e.g. "time" for map[string]time.Duration.
func (t TypeExpr) Qualifiers() []string {
	if t.expr == nil {
		return nil
	}
	seen := map[string]struct{}{}
	ast.Inspect(t.expr, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		if ident, ok := sel.X.(*ast.Ident); ok {
			seen[ident.Name] = struct{}{}
		}
		return false
	})
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// FieldSpec is one named field of a record declaration.
type FieldSpec struct {
	Name string
	Type TypeExpr
	// Doc holds the field's doc comment text, if any.
	Doc string
	// Tag holds the raw struct tag without backquotes.
	Tag string
}

// Field builds a FieldSpec from a type written in Go syntax. It panics on an
// invalid type so schema literals fail loudly.
func Field(name, typ string) FieldSpec {
	return FieldSpec{Name: name, Type: MustParseTypeExpr(typ)}
}

// AnnotatedFieldSpec is a FieldSpec after optionality analysis. InnerType is
// set if and only if IsOptional is true.
type AnnotatedFieldSpec struct {
	FieldSpec
	IsOptional bool
	InnerType  TypeExpr
}

// StructSpec is the ordered schema of one record type. Field order follows the
// declaration and drives setter order and required-field validation order.
type StructSpec struct {
	TypeName string
	Doc      string
	Fields   []AnnotatedFieldSpec
}

// NewStructSpec builds an unannotated StructSpec from explicit field specs,
// the entry point for schemas that do not come from a parsed declaration.
func NewStructSpec(typeName string, fields ...FieldSpec) StructSpec {
	spec := StructSpec{TypeName: typeName, Fields: make([]AnnotatedFieldSpec, 0, len(fields))}
	for _, f := range fields {
		spec.Fields = append(spec.Fields, AnnotatedFieldSpec{FieldSpec: f})
	}
	return spec
}

// FieldSpecs returns the plain field descriptors in declaration order.
func (s StructSpec) FieldSpecs() []FieldSpec {
	out := make([]FieldSpec, 0, len(s.Fields))
	for _, f := range s.Fields {
		out = append(out, f.FieldSpec)
	}
	return out
}

// Validate checks the shape rules every extractor guarantees: a name, at
// least one field, named and unique fields with types, and the
// IsOptional/InnerType pairing.
func (s StructSpec) Validate() error {
	if strings.TrimSpace(s.TypeName) == "" {
		return &ShapeError{Reason: "record type name is empty"}
	}
	if !gotoken.IsIdentifier(s.TypeName) {
		return &ShapeError{Type: s.TypeName, Reason: "record type name is not an identifier"}
	}
	if len(s.Fields) == 0 {
		return &ShapeError{Type: s.TypeName, Reason: "record has no named fields"}
	}
	seen := make(map[string]struct{}, len(s.Fields))
	for _, f := range s.Fields {
		switch {
		case f.Name == "":
			return &ShapeError{Type: s.TypeName, Reason: "field is not named"}
		case f.Name == "_":
			return &ShapeError{Type: s.TypeName, Field: f.Name, Reason: "blank field cannot be set"}
		case !gotoken.IsIdentifier(f.Name):
			return &ShapeError{Type: s.TypeName, Field: f.Name, Reason: "field name is not an identifier"}
		case f.Type.IsZero():
			return &ShapeError{Type: s.TypeName, Field: f.Name, Reason: "field has no declared type"}
		case f.IsOptional == f.InnerType.IsZero():
			return &ShapeError{Type: s.TypeName, Field: f.Name, Reason: "optional flag and inner type disagree"}
		}
		if _, dup := seen[f.Name]; dup {
			return &ShapeError{Type: s.TypeName, Field: f.Name, Reason: "duplicate field name"}
		}
		seen[f.Name] = struct{}{}
	}
	return nil
}

// Import is one import declaration of the file a record came from.
type Import struct {
	Name string `json:"name,omitempty"`
	Path string `json:"path"`
}

// LocalName returns the identifier the import is referenced by. Without an
// explicit name it guesses from the path the way goimports does for the
// common layouts (trailing major version, gopkg.in suffix, go- prefix).
func (i Import) LocalName() string {
	if i.Name != "" {
		return i.Name
	}
	parts := strings.Split(i.Path, "/")
	last := parts[len(parts)-1]
	if len(parts) > 1 && isMajorVersion(last) {
		last = parts[len(parts)-2]
	}
	if dot := strings.Index(last, ".v"); dot > 0 && isMajorVersion(last[dot+1:]) {
		last = last[:dot]
	}
	last = strings.TrimPrefix(last, "go-")
	return strings.NewReplacer("-", "_", ".", "_").Replace(last)
}

func isMajorVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// File groups the records extracted from one document along with the context
// a generated companion file needs.
type File struct {
	// Package is the package name the generated code belongs to.
	Package string
	// Origin is the document location, used in the generated header.
	Origin  string
	Imports []Import
	Structs []StructSpec
}

// Struct returns the record with the given name.
func (f File) Struct(name string) (StructSpec, bool) {
	for _, s := range f.Structs {
		if s.TypeName == name {
			return s, true
		}
	}
	return StructSpec{}, false
}

// TypeNames returns the record names in extraction order.
func (f File) TypeNames() []string {
	out := make([]string, 0, len(f.Structs))
	for _, s := range f.Structs {
		out = append(out, s.TypeName)
	}
	return out
}
