// Package openapi extracts record schemas from the component schemas of an
// OpenAPI 3 document.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-buildergen/pkg/schema"
)

// OptionImportPath is the import path of the wrapper non-required properties
// are declared with.
const OptionImportPath = "github.com/goliatone/go-buildergen/pkg/option"

// Options configures the extractor.
type Options struct {
	// Package names the package of the generated file. OpenAPI documents do
	// not carry one.
	Package string
	// ResolveReferences allows external references and validates the
	// document before extraction.
	ResolveReferences bool
}

// Extractor implements schema.Extractor using kin-openapi.
type Extractor struct {
	options Options
}

var (
	_ schema.Extractor  = (*Extractor)(nil)
	_ schema.TypeLister = (*Extractor)(nil)
)

// New constructs an Extractor with the given options.
func New(options Options) *Extractor {
	return &Extractor{options: options}
}

// Extract converts the requested component schemas into records. A requested
// name matches either the component key or its Go spelling. Without names
// every object component with properties is extracted, sorted by name.
func (e *Extractor) Extract(ctx context.Context, doc schema.Document, typeNames ...string) (schema.File, error) {
	if err := ctx.Err(); err != nil {
		return schema.File{}, err
	}
	components, err := e.load(ctx, doc)
	if err != nil {
		return schema.File{}, err
	}

	keys, err := selectComponents(components, typeNames)
	if err != nil {
		return schema.File{}, err
	}

	out := schema.File{
		Package: e.options.Package,
		Origin:  doc.Location(),
		Structs: make([]schema.StructSpec, 0, len(keys)),
	}
	records := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		records[key] = struct{}{}
	}
	mapper := &typeMapper{components: components, records: records}

	needsOption := false
	for _, key := range keys {
		record, optional, err := mapper.convertComponent(key, components[key])
		if err != nil {
			return schema.File{}, err
		}
		needsOption = needsOption || optional
		out.Structs = append(out.Structs, record)
	}
	if needsOption {
		out.Imports = append(out.Imports, schema.Import{Path: OptionImportPath})
	}
	return out, nil
}

// ListTypes returns the Go names of every object component with properties,
// sorted by component key.
func (e *Extractor) ListTypes(ctx context.Context, doc schema.Document) ([]string, error) {
	components, err := e.load(ctx, doc)
	if err != nil {
		return nil, err
	}
	keys, err := selectComponents(components, nil)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		out = append(out, exportedName(key))
	}
	return out, nil
}

func (e *Extractor) load(ctx context.Context, doc schema.Document) (openapi3.Schemas, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi extractor: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: e.options.ResolveReferences,
	}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi extractor: load document: %w", err)
	}
	if e.options.ResolveReferences {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi extractor: validate: %w", err)
		}
	}

	var components openapi3.Schemas
	if spec.Components != nil {
		components = spec.Components.Schemas
	}
	if len(components) == 0 {
		return nil, errors.New("openapi extractor: document does not declare component schemas")
	}
	return components, nil
}

func selectComponents(components openapi3.Schemas, typeNames []string) ([]string, error) {
	if len(typeNames) == 0 {
		keys := make([]string, 0, len(components))
		for key, ref := range components {
			if ref != nil && ref.Value != nil && isObject(ref.Value) && len(ref.Value.Properties) > 0 {
				keys = append(keys, key)
			}
		}
		sort.Strings(keys)
		if len(keys) == 0 {
			return nil, errors.New("openapi extractor: no object component schemas found")
		}
		return keys, nil
	}

	keys := make([]string, 0, len(typeNames))
	for _, name := range typeNames {
		key, ok := lookupComponent(components, name)
		if !ok {
			return nil, fmt.Errorf("openapi extractor: %w: %s", schema.ErrTypeNotFound, name)
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func lookupComponent(components openapi3.Schemas, name string) (string, bool) {
	if _, ok := components[name]; ok {
		return name, true
	}
	for key := range components {
		if exportedName(key) == name {
			return key, true
		}
	}
	return "", false
}

// typeMapper converts component schemas while tracking which components are
// emitted as records in the same file.
type typeMapper struct {
	components openapi3.Schemas
	records    map[string]struct{}
}

func (m *typeMapper) convertComponent(key string, ref *openapi3.SchemaRef) (schema.StructSpec, bool, error) {
	typeName := exportedName(key)
	if ref == nil || ref.Value == nil {
		return schema.StructSpec{}, false, &schema.ShapeError{Type: typeName, Reason: "component schema is unresolved"}
	}
	src := ref.Value
	if !isObject(src) {
		return schema.StructSpec{}, false, &schema.ShapeError{Type: typeName, Reason: "only object schemas are supported"}
	}
	if len(src.Properties) == 0 {
		return schema.StructSpec{}, false, &schema.ShapeError{Type: typeName, Reason: "record has no named fields"}
	}

	required := make(map[string]struct{}, len(src.Required))
	for _, name := range src.Required {
		required[name] = struct{}{}
	}

	names := make([]string, 0, len(src.Properties))
	for name := range src.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]schema.FieldSpec, 0, len(names))
	anyOptional := false
	for _, name := range names {
		goType, err := m.goTypeOf(src.Properties[name], nil)
		if err != nil {
			var shape *schema.ShapeError
			if errors.As(err, &shape) {
				shape.Type, shape.Field = typeName, exportedName(name)
			}
			return schema.StructSpec{}, false, err
		}
		if _, ok := required[name]; !ok {
			goType = "option.Option[" + goType + "]"
			anyOptional = true
		}
		typ, err := schema.ParseTypeExpr(goType)
		if err != nil {
			return schema.StructSpec{}, false, fmt.Errorf("openapi extractor: %s.%s: %w", typeName, name, err)
		}
		fields = append(fields, schema.FieldSpec{
			Name: exportedName(name),
			Type: typ,
			Doc:  sanitizeDoc(propertyDescription(src.Properties[name])),
			Tag:  fmt.Sprintf(`json:"%s"`, name),
		})
	}

	spec := schema.NewStructSpec(typeName, fields...)
	spec.Doc = sanitizeDoc(src.Description)
	if err := spec.Validate(); err != nil {
		return schema.StructSpec{}, false, err
	}
	return spec, anyOptional, nil
}

func propertyDescription(ref *openapi3.SchemaRef) string {
	if ref == nil || ref.Value == nil {
		return ""
	}
	return ref.Value.Description
}

func isObject(s *openapi3.Schema) bool {
	t := firstSchemaType(s.Type)
	return t == "object" || (t == "" && len(s.Properties) > 0)
}

// goTypeOf maps a property schema to Go syntax. A reference to a component
// extracted into the same file resolves to that record by name, so recursive
// documents terminate. References to scalar, array or map components are
// inlined. A reference to an object record that is not being extracted is
// rejected, since the generated file could not name it.
func (m *typeMapper) goTypeOf(ref *openapi3.SchemaRef, visiting []string) (string, error) {
	if ref == nil {
		return "any", nil
	}
	if ref.Ref != "" {
		if key := refName(ref.Ref); key != "" {
			if _, ok := m.records[key]; ok {
				return exportedName(key), nil
			}
			target := ref.Value
			if target == nil {
				if resolved, ok := m.components[key]; ok && resolved != nil {
					target = resolved.Value
				}
			}
			if target == nil {
				return "", &schema.ShapeError{Reason: fmt.Sprintf("reference %q is unresolved", ref.Ref)}
			}
			if isObject(target) && len(target.Properties) > 0 {
				return "", &schema.ShapeError{Reason: fmt.Sprintf("references record %s which is not extracted", exportedName(key))}
			}
			for _, seen := range visiting {
				if seen == key {
					return "", &schema.ShapeError{Reason: fmt.Sprintf("reference %q is cyclic", ref.Ref)}
				}
			}
			return m.goTypeOf(&openapi3.SchemaRef{Value: target}, append(visiting, key))
		}
	}
	src := ref.Value
	if src == nil {
		return "any", nil
	}
	switch firstSchemaType(src.Type) {
	case "string":
		return "string", nil
	case "integer":
		if src.Format == "int32" {
			return "int32", nil
		}
		return "int64", nil
	case "number":
		if src.Format == "float" {
			return "float32", nil
		}
		return "float64", nil
	case "boolean":
		return "bool", nil
	case "array":
		item, err := m.goTypeOf(src.Items, visiting)
		if err != nil {
			return "", err
		}
		return "[]" + item, nil
	case "object":
		if ap := src.AdditionalProperties.Schema; ap != nil {
			value, err := m.goTypeOf(ap, visiting)
			if err != nil {
				return "", err
			}
			return "map[string]" + value, nil
		}
		if has := src.AdditionalProperties.Has; has != nil && *has {
			return "map[string]any", nil
		}
		return "any", nil
	default:
		return "any", nil
	}
}

func refName(ref string) string {
	if !strings.HasPrefix(ref, "#/") {
		return ""
	}
	return ref[strings.LastIndex(ref, "/")+1:]
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
