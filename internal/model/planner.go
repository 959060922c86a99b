package model

import (
	"errors"
	"fmt"
	"go/token"
	"sort"
	"strings"

	"github.com/goliatone/go-buildergen/pkg/schema"
)

const receiverName = "b"

// builderMembers are the identifiers the generated builder declares itself.
var builderMembers = map[string]struct{}{
	"Build":    {},
	"TryBuild": {},
	"slots":    {},
}

// recordMembers are the identifiers the generated code adds to the record.
var recordMembers = map[string]struct{}{
	"Builder": {},
}

// Planner derives builder models from annotated record schemas.
type Planner struct {
	opts Options
}

// New creates a Planner with the supplied options.
func New(options Options) *Planner {
	opts := defaultOptions()
	if options.Namer != nil {
		opts.Namer = options.Namer
	}
	if options.OptionImport != "" {
		opts.OptionImport = options.OptionImport
	}
	if options.BuilderImport != "" {
		opts.BuilderImport = options.BuilderImport
	}
	return &Planner{opts: opts}
}

// Plan turns the annotated records of file into a FileModel. Records keep
// their extraction order and fields keep their declaration order.
func (p *Planner) Plan(file schema.File) (FileModel, error) {
	if !token.IsIdentifier(file.Package) {
		return FileModel{}, fmt.Errorf("model: package name %q is not an identifier", file.Package)
	}
	if len(file.Structs) == 0 {
		return FileModel{}, errors.New("model: no records to plan")
	}

	taken := make(map[string]struct{})
	for _, s := range file.Structs {
		taken[s.TypeName] = struct{}{}
	}

	used, err := referencedImports(file)
	if err != nil {
		return FileModel{}, err
	}
	for local := range used {
		taken[local] = struct{}{}
	}

	builders := make([]BuilderModel, 0, len(file.Structs))
	needOption := false
	for _, s := range file.Structs {
		if err := s.Validate(); err != nil {
			return FileModel{}, err
		}
		if err := checkMembers(s); err != nil {
			return FileModel{}, err
		}
		name := p.opts.Namer(s.TypeName)
		ctor := constructorName(s.TypeName, name)
		for _, ident := range []string{name, ctor} {
			if !token.IsIdentifier(ident) {
				return FileModel{}, &schema.ShapeError{Type: s.TypeName, Reason: fmt.Sprintf("generated name %q is not an identifier", ident)}
			}
			if _, clash := taken[ident]; clash {
				return FileModel{}, &schema.ShapeError{Type: s.TypeName, Reason: fmt.Sprintf("generated name %s collides with another declaration", ident)}
			}
			taken[ident] = struct{}{}
		}
		bm := BuilderModel{
			RecordName:      s.TypeName,
			BuilderName:     name,
			ConstructorName: ctor,
			RecordDocLines:  docLines(s.Doc),
		}
		for _, f := range s.Fields {
			if !f.IsOptional {
				bm.HasRequired = true
				needOption = true
			}
		}
		builders = append(builders, bm)
	}

	out := FileModel{
		Package: file.Package,
		Source:  file.Origin,
	}
	for local, imp := range used {
		spec := ImportSpec{Path: imp.Path}
		if imp.Name != "" || (schema.Import{Path: imp.Path}).LocalName() != local {
			spec.Name = local
		}
		out.Imports = append(out.Imports, spec)
	}

	optionPkg := ""
	if needOption {
		optionPkg = p.runtimeImport(&out, used, taken, p.opts.OptionImport, "option")
	}
	out.BuilderPkg = p.runtimeImport(&out, used, taken, p.opts.BuilderImport, "builder")

	for i, s := range file.Structs {
		builders[i].Fields = slots(s, optionPkg)
	}
	out.Builders = builders

	sortImports(out.Imports)
	return out, nil
}

// sortImports orders standard library packages first, then everything else,
// each group by path, and marks where the second group starts.
func sortImports(imports []ImportSpec) {
	for i := range imports {
		imports[i].Std = isStdlibPath(imports[i].Path)
	}
	sort.Slice(imports, func(i, j int) bool {
		a, b := imports[i], imports[j]
		if a.Std != b.Std {
			return a.Std
		}
		if a.Path == b.Path {
			return a.Name < b.Name
		}
		return a.Path < b.Path
	})
	for i := 1; i < len(imports); i++ {
		imports[i].NewGroup = imports[i-1].Std && !imports[i].Std
	}
}

// isStdlibPath reports whether path looks like a standard library package:
// its first element carries no dot.
func isStdlibPath(path string) bool {
	first, _, _ := strings.Cut(path, "/")
	return first != "" && !strings.Contains(first, ".")
}

// runtimeImport returns the identifier a runtime package is referenced by.
// A source import of the same path is reused; otherwise the package is added
// under its default name, or a numbered alias when that name is taken.
func (p *Planner) runtimeImport(out *FileModel, used map[string]schema.Import, taken map[string]struct{}, path, base string) string {
	for local, imp := range used {
		if imp.Path == path {
			return local
		}
	}
	local := uniqueName(base, taken)
	taken[local] = struct{}{}
	spec := ImportSpec{Path: path}
	if local != base {
		spec.Name = local
	}
	out.Imports = append(out.Imports, spec)
	return local
}

func referencedImports(file schema.File) (map[string]schema.Import, error) {
	byLocal := make(map[string]schema.Import, len(file.Imports))
	for _, imp := range file.Imports {
		byLocal[imp.LocalName()] = imp
	}
	used := make(map[string]schema.Import)
	for _, s := range file.Structs {
		for _, f := range s.Fields {
			for _, q := range f.Type.Qualifiers() {
				imp, ok := byLocal[q]
				if !ok {
					return nil, &schema.ShapeError{
						Type:   s.TypeName,
						Field:  f.Name,
						Reason: fmt.Sprintf("type %s references package %q which is not imported", f.Type, q),
					}
				}
				used[q] = imp
			}
		}
	}
	return used, nil
}

func checkMembers(s schema.StructSpec) error {
	for _, f := range s.Fields {
		if _, clash := builderMembers[f.Name]; clash {
			return &schema.ShapeError{Type: s.TypeName, Field: f.Name, Reason: "field name collides with a generated builder member"}
		}
		if _, clash := recordMembers[f.Name]; clash {
			return &schema.ShapeError{Type: s.TypeName, Field: f.Name, Reason: "field name collides with the generated Builder method"}
		}
	}
	return nil
}

func slots(s schema.StructSpec, optionPkg string) []Slot {
	out := make([]Slot, 0, len(s.Fields))
	for _, f := range s.Fields {
		declared := f.Type.String()
		slot := Slot{
			Name:         f.Name,
			ParamName:    paramName(f.Name),
			Optional:     f.IsOptional,
			DeclaredType: declared,
			Tag:          f.Tag,
			DocLines:     docLines(f.Doc),
		}
		if f.IsOptional {
			slot.SlotType = declared
			slot.ParamType = f.InnerType.String()
		} else {
			slot.SlotType = optionPkg + ".Option[" + declared + "]"
			slot.ParamType = declared
		}
		out = append(out, slot)
	}
	return out
}
