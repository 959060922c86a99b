package buildergen

import (
	internalGolang "github.com/goliatone/go-buildergen/internal/golang"
	internalLoader "github.com/goliatone/go-buildergen/internal/loader"
	internalOpenAPI "github.com/goliatone/go-buildergen/internal/openapi"
	"github.com/goliatone/go-buildergen/pkg/optionality"
	"github.com/goliatone/go-buildergen/pkg/schema"
)

// NewLoader constructs a loader using the internal implementation while keeping
// the concrete type hidden from consumers.
func NewLoader(options ...schema.LoaderOption) schema.Loader {
	cfg := schema.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// NewGoExtractor constructs the extractor for Go source files.
func NewGoExtractor() schema.Extractor {
	return internalGolang.New()
}

// NewOpenAPIExtractor constructs the extractor for OpenAPI 3 documents.
// packageName becomes the package clause of the generated file.
func NewOpenAPIExtractor(packageName string, resolveReferences bool) schema.Extractor {
	return internalOpenAPI.New(internalOpenAPI.Options{
		Package:           packageName,
		ResolveReferences: resolveReferences,
	})
}

// NewAnalyzer constructs the optionality analyzer with the given policy for
// wrappers that carry no type argument.
func NewAnalyzer(policy optionality.Policy) *optionality.Analyzer {
	return optionality.New(policy)
}
