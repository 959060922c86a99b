package optionality_test

import (
	"errors"
	"go/ast"
	"testing"

	"github.com/goliatone/go-buildergen/pkg/optionality"
	"github.com/goliatone/go-buildergen/pkg/schema"
)

func TestInnerType(t *testing.T) {
	t.Parallel()

	cases := []struct {
		typ      string
		optional bool
		inner    string
	}{
		{typ: "Option[string]", optional: true, inner: "string"},
		{typ: "option.Option[string]", optional: true, inner: "string"},
		{typ: "option.Option[[]string]", optional: true, inner: "[]string"},
		{typ: "Option[map[string]*Package]", optional: true, inner: "map[string]*Package"},
		{typ: "Option[Option[int]]", optional: true, inner: "Option[int]"},
		{typ: "Option[time.Duration]", optional: true, inner: "time.Duration"},
		{typ: "Option[Pair[int, string]]", optional: true, inner: "Pair[int, string]"},
		{typ: "string", optional: false},
		{typ: "Option", optional: false},
		{typ: "*Option[string]", optional: false},
		{typ: "[]Option[string]", optional: false},
		{typ: "Optional[string]", optional: false},
		{typ: "option[string]", optional: false},
		{typ: "Option[int, string]", optional: false},
		{typ: "Option[3]", optional: false},
		{typ: "Maybe[string]", optional: false},
	}

	for _, tc := range cases {
		t.Run(tc.typ, func(t *testing.T) {
			typ := schema.MustParseTypeExpr(tc.typ)
			if got := optionality.IsOptional(typ); got != tc.optional {
				t.Fatalf("IsOptional(%s) = %v, want %v", tc.typ, got, tc.optional)
			}
			inner, ok := optionality.InnerType(typ)
			if ok != tc.optional {
				t.Fatalf("InnerType(%s) ok = %v, want %v", tc.typ, ok, tc.optional)
			}
			if got := inner.String(); got != tc.inner {
				t.Fatalf("InnerType(%s) = %q, want %q", tc.typ, got, tc.inner)
			}
		})
	}
}

func TestInnerTypeLocalLookalikeIsOptional(t *testing.T) {
	t.Parallel()

	// Spelling decides, not identity: any one-argument Option counts.
	typ := schema.MustParseTypeExpr("mypkg.Option[int]")
	if !optionality.IsOptional(typ) {
		t.Fatalf("expected look-alike wrapper to be classified optional")
	}
}

func malformedWrapper() schema.TypeExpr {
	return schema.TypeExprFromAST(&ast.IndexListExpr{X: ast.NewIdent("Option")})
}

func TestMalformedWrapperIsNotOptional(t *testing.T) {
	t.Parallel()

	if optionality.IsOptional(malformedWrapper()) {
		t.Fatalf("wrapper without argument must not be optional")
	}
	if _, ok := optionality.InnerType(malformedWrapper()); ok {
		t.Fatalf("wrapper without argument must not yield an inner type")
	}
}

func TestAnalyzerAnnotate(t *testing.T) {
	t.Parallel()

	spec := schema.NewStructSpec("Package",
		schema.Field("Name", "option.Option[string]"),
		schema.Field("Version", "string"),
	)
	got, err := optionality.New(optionality.PolicyAbort).Annotate(spec)
	if err != nil {
		t.Fatalf("annotate: %v", err)
	}
	if err := got.Validate(); err != nil {
		t.Fatalf("annotated spec invalid: %v", err)
	}
	if !got.Fields[0].IsOptional || got.Fields[0].InnerType.String() != "string" {
		t.Fatalf("Name annotation = %+v", got.Fields[0])
	}
	if got.Fields[1].IsOptional || !got.Fields[1].InnerType.IsZero() {
		t.Fatalf("Version annotation = %+v", got.Fields[1])
	}
	if spec.Fields[0].IsOptional {
		t.Fatalf("Annotate must not mutate its input")
	}
}

func TestAnalyzerMalformedWrapperPolicies(t *testing.T) {
	t.Parallel()

	spec := schema.NewStructSpec("Broken",
		schema.Field("Ok", "string"),
		schema.FieldSpec{Name: "Bad", Type: malformedWrapper()},
	)

	_, err := optionality.New(optionality.PolicyAbort).Annotate(spec)
	if !errors.Is(err, optionality.ErrMalformedWrapper) {
		t.Fatalf("expected ErrMalformedWrapper, got %v", err)
	}
	var mwe *optionality.MalformedWrapperError
	if !errors.As(err, &mwe) || mwe.Field != "Bad" || mwe.Type != "Broken" {
		t.Fatalf("unexpected error detail: %#v", err)
	}

	got, err := optionality.New(optionality.PolicyTreatAsRequired).Annotate(spec)
	if err != nil {
		t.Fatalf("annotate with required policy: %v", err)
	}
	if got.Fields[1].IsOptional {
		t.Fatalf("malformed wrapper should be required under PolicyTreatAsRequired")
	}
}

func TestParsePolicy(t *testing.T) {
	t.Parallel()

	for raw, want := range map[string]optionality.Policy{
		"":         optionality.PolicyAbort,
		"abort":    optionality.PolicyAbort,
		"Required": optionality.PolicyTreatAsRequired,
	} {
		got, err := optionality.ParsePolicy(raw)
		if err != nil {
			t.Fatalf("ParsePolicy(%q): %v", raw, err)
		}
		if got != want {
			t.Fatalf("ParsePolicy(%q) = %v, want %v", raw, got, want)
		}
	}
	if _, err := optionality.ParsePolicy("ignore"); err == nil {
		t.Fatalf("expected error for unknown policy")
	}
}
