// Package optionality decides which record fields are optional.
//
// A field is optional when its declared type is spelled as the wrapper
// Option (bare or package qualified) applied to exactly one type argument.
// The check is textual: a local generic type that happens to be called
// Option is classified the same way.
package optionality

import (
	"errors"
	"fmt"
	"go/ast"

	"github.com/goliatone/go-buildergen/pkg/schema"
)

// WrapperName is the only recognised optional wrapper spelling.
const WrapperName = "Option"

// ErrMalformedWrapper is returned when a type is spelled like the wrapper but
// carries no type argument.
var ErrMalformedWrapper = errors.New("optionality: wrapper has no type argument")

// MalformedWrapperError names the field whose wrapper carries no argument.
type MalformedWrapperError struct {
	Type  string
	Field string
	Expr  string
}

func (e *MalformedWrapperError) Error() string {
	return fmt.Sprintf("optionality: type %s: field %s: %s has no type argument", e.Type, e.Field, e.Expr)
}

func (e *MalformedWrapperError) Unwrap() error {
	return ErrMalformedWrapper
}

// IsOptional reports whether t is the wrapper applied to one type argument.
func IsOptional(t schema.TypeExpr) bool {
	_, ok := InnerType(t)
	return ok
}

// InnerType returns the wrapped type when IsOptional(t) holds. It never
// panics: malformed wrappers report false.
func InnerType(t schema.TypeExpr) (schema.TypeExpr, bool) {
	head, args, ok := wrapperParts(t.AST())
	if !ok || head != WrapperName || len(args) != 1 {
		return schema.TypeExpr{}, false
	}
	if !isTypeShaped(args[0]) {
		return schema.TypeExpr{}, false
	}
	return schema.TypeExprFromAST(args[0]), true
}

// isMalformed reports a wrapper spelling with an empty argument list.
func isMalformed(t schema.TypeExpr) bool {
	head, args, ok := wrapperParts(t.AST())
	return ok && head == WrapperName && len(args) == 0
}

// wrapperParts splits an instantiation into the head identifier and its
// argument list. Package qualifiers are dropped from the head.
func wrapperParts(expr ast.Expr) (string, []ast.Expr, bool) {
	var (
		x    ast.Expr
		args []ast.Expr
	)
	switch v := expr.(type) {
	case *ast.IndexExpr:
		x, args = v.X, []ast.Expr{v.Index}
	case *ast.IndexListExpr:
		x, args = v.X, v.Indices
	default:
		return "", nil, false
	}
	switch h := x.(type) {
	case *ast.Ident:
		return h.Name, args, true
	case *ast.SelectorExpr:
		return h.Sel.Name, args, true
	default:
		return "", nil, false
	}
}

// isTypeShaped filters out index expressions that cannot be types, such as
// Option[3].
func isTypeShaped(expr ast.Expr) bool {
	switch v := expr.(type) {
	case *ast.Ident, *ast.SelectorExpr, *ast.StarExpr, *ast.ArrayType, *ast.MapType,
		*ast.ChanType, *ast.FuncType, *ast.InterfaceType, *ast.StructType,
		*ast.IndexExpr, *ast.IndexListExpr:
		return true
	case *ast.ParenExpr:
		return isTypeShaped(v.X)
	default:
		return false
	}
}
