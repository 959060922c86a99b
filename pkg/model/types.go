package model

import internalmodel "github.com/goliatone/go-buildergen/internal/model"

type Slot = internalmodel.Slot
type BuilderModel = internalmodel.BuilderModel
type ImportSpec = internalmodel.ImportSpec
type FileModel = internalmodel.FileModel

const (
	DefaultOptionImport  = internalmodel.DefaultOptionImport
	DefaultBuilderImport = internalmodel.DefaultBuilderImport
)

// DefaultNamer appends "Builder" to the record name.
func DefaultNamer(record string) string {
	return internalmodel.DefaultNamer(record)
}
