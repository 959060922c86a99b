package model

import (
	"github.com/goliatone/go-buildergen/internal/model"
	"github.com/goliatone/go-buildergen/pkg/schema"
)

// Planner converts annotated record schemas into builder models.
type Planner interface {
	Plan(file schema.File) (FileModel, error)
}

// PlannerOption configures the planner behaviour.
type PlannerOption func(*plannerOptions)

type plannerOptions struct {
	namer         func(string) string
	optionImport  string
	builderImport string
}

// WithNamer overrides how builder type names are derived from record names.
func WithNamer(namer func(string) string) PlannerOption {
	return func(opts *plannerOptions) {
		opts.namer = namer
	}
}

// WithRuntimeImports overrides the import paths of the Option wrapper and the
// build helpers, for projects that vendor the runtime under another path.
func WithRuntimeImports(optionPath, builderPath string) PlannerOption {
	return func(opts *plannerOptions) {
		opts.optionImport = optionPath
		opts.builderImport = builderPath
	}
}

// NewPlanner returns a Planner backed by the internal implementation.
func NewPlanner(options ...PlannerOption) Planner {
	cfg := plannerOptions{}
	for _, opt := range options {
		opt(&cfg)
	}

	return model.New(model.Options{
		Namer:         cfg.namer,
		OptionImport:  cfg.optionImport,
		BuilderImport: cfg.builderImport,
	})
}
