package model

// Slot describes one field of a generated builder: its storage slot, its
// setter and how the finalizer moves it into the record.
type Slot struct {
	// Name is the record field name. The setter carries the same name.
	Name string `json:"name"`
	// ParamName is the setter parameter identifier.
	ParamName string `json:"paramName"`
	// Optional is true when the declared type is the Option wrapper.
	Optional bool `json:"optional"`
	// DeclaredType is the field type as written in the record.
	DeclaredType string `json:"declaredType"`
	// SlotType is the storage type: the declared type for optional fields,
	// the runtime Option wrapper around it for required ones.
	SlotType string `json:"slotType"`
	// ParamType is the setter parameter type: the wrapper's inner type for
	// optional fields, the declared type for required ones.
	ParamType string `json:"paramType"`
	// Tag is the raw struct tag of the record field.
	Tag string `json:"tag,omitempty"`
	// DocLines holds the field documentation, one entry per line.
	DocLines []string `json:"docLines,omitempty"`
}

// BuilderModel is everything a renderer needs to emit one builder.
type BuilderModel struct {
	RecordName      string   `json:"recordName"`
	BuilderName     string   `json:"builderName"`
	ConstructorName string   `json:"constructorName"`
	HasRequired     bool     `json:"hasRequired"`
	RecordDocLines  []string `json:"recordDocLines,omitempty"`
	Fields          []Slot   `json:"fields"`
}

// ImportSpec is one import of the generated file.
type ImportSpec struct {
	Name string `json:"name,omitempty"`
	Path string `json:"path"`
	// Std marks standard library packages, which render in their own group
	// ahead of every other import.
	Std bool `json:"std,omitempty"`
	// NewGroup is set on the first import of every group after the first.
	NewGroup bool `json:"newGroup,omitempty"`
}

// FileModel groups the builders generated into one file.
type FileModel struct {
	Package string       `json:"package"`
	Source  string       `json:"source,omitempty"`
	Imports []ImportSpec `json:"imports"`
	// BuilderPkg is the identifier the builder runtime package is imported as.
	BuilderPkg string         `json:"builderPkg"`
	Builders   []BuilderModel `json:"builders"`
}

// Builder returns the builder model for the given record.
func (f FileModel) Builder(record string) (BuilderModel, bool) {
	for _, b := range f.Builders {
		if b.RecordName == record {
			return b, true
		}
	}
	return BuilderModel{}, false
}
