package model

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-buildergen/pkg/optionality"
	"github.com/goliatone/go-buildergen/pkg/schema"
)

func annotated(t *testing.T, file schema.File) schema.File {
	t.Helper()
	out, err := optionality.New(optionality.PolicyAbort).AnnotateFile(file)
	if err != nil {
		t.Fatalf("annotate: %v", err)
	}
	return out
}

func manifestFile(t *testing.T) schema.File {
	return annotated(t, schema.File{
		Package: "manifest",
		Origin:  "manifest.go",
		Imports: []schema.Import{
			{Path: "time"},
			{Path: "github.com/goliatone/go-buildergen/pkg/option"},
		},
		Structs: []schema.StructSpec{
			schema.NewStructSpec("Manifest",
				schema.Field("Package", "option.Option[Package]"),
				schema.Field("Workspace", "option.Option[Workspace]"),
			),
			schema.NewStructSpec("Workspace",
				schema.FieldSpec{Name: "Members", Type: schema.MustParseTypeExpr("[]string"), Doc: "Members lists\nthe crates."},
				schema.Field("Updated", "time.Time"),
			),
		},
	})
}

func TestPlanSlotsAndParams(t *testing.T) {
	fm, err := New(Options{}).Plan(manifestFile(t))
	if err != nil {
		t.Fatalf("plan: %v", err)
	}

	ws, ok := fm.Builder("Workspace")
	if !ok {
		t.Fatal("missing Workspace builder")
	}
	want := []Slot{
		{Name: "Members", ParamName: "members", DeclaredType: "[]string", SlotType: "option.Option[[]string]", ParamType: "[]string", DocLines: []string{"Members lists", "the crates."}},
		{Name: "Updated", ParamName: "updated", DeclaredType: "time.Time", SlotType: "option.Option[time.Time]", ParamType: "time.Time"},
	}
	if diff := cmp.Diff(want, ws.Fields); diff != "" {
		t.Fatalf("workspace slots mismatch (-want +got):\n%s", diff)
	}
	if !ws.HasRequired || ws.BuilderName != "WorkspaceBuilder" || ws.ConstructorName != "NewWorkspaceBuilder" {
		t.Fatalf("unexpected names: %+v", ws)
	}

	m, _ := fm.Builder("Manifest")
	if m.HasRequired {
		t.Fatal("Manifest has only optional fields")
	}
	if got := m.Fields[0]; got.SlotType != "option.Option[Package]" || got.ParamType != "Package" || !got.Optional {
		t.Fatalf("optional slot = %+v", got)
	}
	if got := m.Fields[0].ParamName; got != "value" {
		t.Fatalf("keyword param name = %q", got)
	}

	wantImports := []ImportSpec{
		{Path: "time", Std: true},
		{Path: "github.com/goliatone/go-buildergen/pkg/builder", NewGroup: true},
		{Path: "github.com/goliatone/go-buildergen/pkg/option"},
	}
	if diff := cmp.Diff(wantImports, fm.Imports); diff != "" {
		t.Fatalf("imports mismatch (-want +got):\n%s", diff)
	}
	if fm.BuilderPkg != "builder" {
		t.Fatalf("builder pkg = %q", fm.BuilderPkg)
	}
}

func TestPlanReusesAliasedOptionImport(t *testing.T) {
	file := annotated(t, schema.File{
		Package: "p",
		Imports: []schema.Import{{Name: "opt", Path: DefaultOptionImport}},
		Structs: []schema.StructSpec{
			schema.NewStructSpec("Point", schema.Field("X", "int"), schema.Field("Label", "opt.Option[string]")),
		},
	})
	fm, err := New(Options{}).Plan(file)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if got := fm.Builders[0].Fields[0].SlotType; got != "opt.Option[int]" {
		t.Fatalf("required slot type = %q", got)
	}
	wantImports := []ImportSpec{
		{Path: DefaultBuilderImport},
		{Name: "opt", Path: DefaultOptionImport},
	}
	if diff := cmp.Diff(wantImports, fm.Imports); diff != "" {
		t.Fatalf("imports mismatch (-want +got):\n%s", diff)
	}
}

func TestPlanAliasesRuntimeImportsOnConflict(t *testing.T) {
	file := annotated(t, schema.File{
		Package: "p",
		Imports: []schema.Import{{Path: "example.com/other/option"}, {Path: "example.com/lib/builder"}},
		Structs: []schema.StructSpec{
			schema.NewStructSpec("Job",
				schema.Field("Mode", "option.Mode"),
				schema.Field("Step", "builder.Step"),
			),
		},
	})
	fm, err := New(Options{}).Plan(file)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if fm.BuilderPkg != "builder2" {
		t.Fatalf("builder pkg = %q", fm.BuilderPkg)
	}
	if got := fm.Builders[0].Fields[0].SlotType; got != "option2.Option[option.Mode]" {
		t.Fatalf("slot type = %q", got)
	}
	wantImports := []ImportSpec{
		{Path: "example.com/lib/builder"},
		{Path: "example.com/other/option"},
		{Name: "builder2", Path: DefaultBuilderImport},
		{Name: "option2", Path: DefaultOptionImport},
	}
	if diff := cmp.Diff(wantImports, fm.Imports); diff != "" {
		t.Fatalf("imports mismatch (-want +got):\n%s", diff)
	}
}

func TestPlanGroupsStandardLibraryImportsFirst(t *testing.T) {
	file := annotated(t, schema.File{
		Package: "p",
		Imports: []schema.Import{
			{Path: "example.com/units"},
			{Path: "time"},
			{Name: "tpl", Path: "text/template"},
		},
		Structs: []schema.StructSpec{
			schema.NewStructSpec("Job",
				schema.Field("Unit", "units.Duration"),
				schema.Field("Started", "time.Time"),
				schema.Field("Body", "*tpl.Template"),
			),
		},
	})
	fm, err := New(Options{}).Plan(file)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	wantImports := []ImportSpec{
		{Name: "tpl", Path: "text/template", Std: true},
		{Path: "time", Std: true},
		{Path: "example.com/units", NewGroup: true},
		{Path: DefaultBuilderImport},
		{Path: DefaultOptionImport},
	}
	if diff := cmp.Diff(wantImports, fm.Imports); diff != "" {
		t.Fatalf("imports mismatch (-want +got):\n%s", diff)
	}
}

func TestPlanOmitsOptionImportWithoutRequiredFields(t *testing.T) {
	file := annotated(t, schema.File{
		Package: "p",
		Structs: []schema.StructSpec{schema.NewStructSpec("Flags", schema.Field("Debug", "Option[bool]"))},
	})
	fm, err := New(Options{}).Plan(file)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if diff := cmp.Diff([]ImportSpec{{Path: DefaultBuilderImport}}, fm.Imports); diff != "" {
		t.Fatalf("imports mismatch (-want +got):\n%s", diff)
	}
}

func TestPlanRejectsCollisions(t *testing.T) {
	cases := map[string]schema.File{
		"build field":    {Package: "p", Structs: []schema.StructSpec{schema.NewStructSpec("T", schema.Field("Build", "int"))}},
		"trybuild field": {Package: "p", Structs: []schema.StructSpec{schema.NewStructSpec("T", schema.Field("TryBuild", "int"))}},
		"slots field":    {Package: "p", Structs: []schema.StructSpec{schema.NewStructSpec("T", schema.Field("slots", "int"))}},
		"builder field":  {Package: "p", Structs: []schema.StructSpec{schema.NewStructSpec("T", schema.Field("Builder", "int"))}},
		"builder type": {Package: "p", Structs: []schema.StructSpec{
			schema.NewStructSpec("T", schema.Field("A", "int")),
			schema.NewStructSpec("TBuilder", schema.Field("A", "int")),
		}},
		"unknown package": {Package: "p", Structs: []schema.StructSpec{schema.NewStructSpec("T", schema.Field("At", "time.Time"))}},
	}
	for name, file := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := New(Options{}).Plan(annotated(t, file))
			if !errors.Is(err, schema.ErrUnsupportedShape) {
				t.Fatalf("expected ErrUnsupportedShape, got %v", err)
			}
		})
	}
}

func TestPlanRequiresPackageName(t *testing.T) {
	file := annotated(t, schema.File{Structs: []schema.StructSpec{schema.NewStructSpec("T", schema.Field("A", "int"))}})
	if _, err := New(Options{}).Plan(file); err == nil {
		t.Fatal("expected error for missing package name")
	}
}

func TestPlanUnexportedRecordAndCustomNamer(t *testing.T) {
	file := annotated(t, schema.File{
		Package: "p",
		Structs: []schema.StructSpec{schema.NewStructSpec("point", schema.Field("X", "int"))},
	})
	fm, err := New(Options{Namer: func(r string) string { return r + "Maker" }}).Plan(file)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	b := fm.Builders[0]
	if b.BuilderName != "pointMaker" || b.ConstructorName != "newPointMaker" {
		t.Fatalf("names = %s, %s", b.BuilderName, b.ConstructorName)
	}
}

func TestParamName(t *testing.T) {
	cases := map[string]string{
		"Name":    "name",
		"ID":      "id",
		"URLPath": "urlPath",
		"members": "members",
		"Type":    "value",
		"B":       "value",
		"Range":   "value",
		"Ünicode": "ünicode",
	}
	for in, want := range cases {
		if got := paramName(in); got != want {
			t.Fatalf("paramName(%q) = %q, want %q", in, got, want)
		}
	}
}
