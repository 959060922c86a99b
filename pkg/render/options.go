package render

// DefaultGenerator is the tool name written into generated file headers.
const DefaultGenerator = "buildergen"

// RenderOptions describe per-request settings renderers can use without
// mutating the planned model.
type RenderOptions struct {
	// Generator names the tool in the "Code generated by" header. Empty
	// selects DefaultGenerator.
	Generator string
	// EmitRecords asks source renderers to declare the record types next to
	// their builders, for inputs that do not declare them in Go already.
	EmitRecords bool
	// SkipFormat returns the raw template output, which helps when debugging
	// templates that produce invalid source.
	SkipFormat bool
}

// GeneratorName returns the configured generator name or the default.
func (o RenderOptions) GeneratorName() string {
	if o.Generator == "" {
		return DefaultGenerator
	}
	return o.Generator
}
