package optionality

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-buildergen/pkg/schema"
)

// Policy selects how a wrapper without a type argument is handled.
type Policy int

const (
	// PolicyAbort fails the whole generation with a MalformedWrapperError.
	PolicyAbort Policy = iota
	// PolicyTreatAsRequired classifies the field as required.
	PolicyTreatAsRequired
)

// ParsePolicy maps the configuration spelling ("abort", "required") to a
// Policy. The empty string selects PolicyAbort.
func ParsePolicy(raw string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "abort":
		return PolicyAbort, nil
	case "required":
		return PolicyTreatAsRequired, nil
	default:
		return PolicyAbort, fmt.Errorf("optionality: unknown malformed wrapper policy %q", raw)
	}
}

func (p Policy) String() string {
	switch p {
	case PolicyTreatAsRequired:
		return "required"
	default:
		return "abort"
	}
}

// Analyzer annotates record fields with their optionality.
type Analyzer struct {
	Policy Policy
}

// New returns an Analyzer using the given policy.
func New(policy Policy) *Analyzer {
	return &Analyzer{Policy: policy}
}

// Annotate returns a copy of spec with IsOptional and InnerType filled in for
// every field. Previous annotations are discarded.
func (a *Analyzer) Annotate(spec schema.StructSpec) (schema.StructSpec, error) {
	out := schema.StructSpec{
		TypeName: spec.TypeName,
		Doc:      spec.Doc,
		Fields:   make([]schema.AnnotatedFieldSpec, 0, len(spec.Fields)),
	}
	for _, f := range spec.Fields {
		if isMalformed(f.Type) && a.policy() == PolicyAbort {
			return schema.StructSpec{}, &MalformedWrapperError{
				Type:  spec.TypeName,
				Field: f.Name,
				Expr:  f.Type.String(),
			}
		}
		annotated := schema.AnnotatedFieldSpec{FieldSpec: f.FieldSpec}
		if inner, ok := InnerType(f.Type); ok {
			annotated.IsOptional = true
			annotated.InnerType = inner
		}
		out.Fields = append(out.Fields, annotated)
	}
	return out, nil
}

// AnnotateFile annotates every record of f.
func (a *Analyzer) AnnotateFile(f schema.File) (schema.File, error) {
	out := f
	out.Structs = make([]schema.StructSpec, 0, len(f.Structs))
	for _, s := range f.Structs {
		annotated, err := a.Annotate(s)
		if err != nil {
			return schema.File{}, err
		}
		out.Structs = append(out.Structs, annotated)
	}
	return out, nil
}

func (a *Analyzer) policy() Policy {
	if a == nil {
		return PolicyAbort
	}
	return a.Policy
}
