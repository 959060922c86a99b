package model

const (
	// DefaultOptionImport is the runtime package providing Option.
	DefaultOptionImport = "github.com/goliatone/go-buildergen/pkg/option"
	// DefaultBuilderImport is the runtime package providing the build helpers.
	DefaultBuilderImport = "github.com/goliatone/go-buildergen/pkg/builder"
)

// Options configures the behaviour of the Planner. Options are constructed by
// the public adapter in pkg/model and passed into New.
type Options struct {
	// Namer derives the builder type name from the record name.
	Namer         func(string) string
	OptionImport  string
	BuilderImport string
}

func defaultOptions() Options {
	return Options{
		Namer:         DefaultNamer,
		OptionImport:  DefaultOptionImport,
		BuilderImport: DefaultBuilderImport,
	}
}
