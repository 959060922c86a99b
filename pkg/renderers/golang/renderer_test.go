package golang_test

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-buildergen/pkg/model"
	"github.com/goliatone/go-buildergen/pkg/optionality"
	"github.com/goliatone/go-buildergen/pkg/render"
	"github.com/goliatone/go-buildergen/pkg/renderers/golang"
	"github.com/goliatone/go-buildergen/pkg/schema"
	"github.com/goliatone/go-buildergen/pkg/testsupport"
)

func planManifest(t *testing.T) model.FileModel {
	t.Helper()

	file := schema.File{
		Package: "manifest",
		Origin:  "/tmp/project/manifest.go",
		Imports: []schema.Import{{Path: model.DefaultOptionImport}},
		Structs: []schema.StructSpec{
			schema.NewStructSpec("Manifest",
				schema.Field("Package", "option.Option[Package]"),
				schema.Field("Workspace", "option.Option[Workspace]"),
			),
			schema.NewStructSpec("Workspace",
				schema.FieldSpec{Name: "Members", Type: schema.MustParseTypeExpr("[]string"), Doc: "Members lists the crates."},
				schema.FieldSpec{Name: "Name", Type: schema.MustParseTypeExpr("option.Option[string]"), Tag: `yaml:"name"`},
			),
		},
	}
	annotated, err := optionality.New(optionality.PolicyAbort).AnnotateFile(file)
	if err != nil {
		t.Fatalf("annotate: %v", err)
	}
	fm, err := model.NewPlanner().Plan(annotated)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	return fm
}

func renderGo(t *testing.T, fm model.FileModel, opts render.RenderOptions) []byte {
	t.Helper()

	r, err := golang.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := r.Render(context.Background(), fm, opts)
	if err != nil {
		t.Fatalf("render: %v\n%s", err, out)
	}
	return out
}

func TestRenderProducesBuilderAPI(t *testing.T) {
	out := renderGo(t, planManifest(t), render.RenderOptions{})
	file := testsupport.MustParseGo(t, out)

	if file.Name.Name != "manifest" {
		t.Fatalf("package = %s", file.Name.Name)
	}
	if diff := cmp.Diff([]string{"NewManifestBuilder", "NewWorkspaceBuilder"}, testsupport.FuncNames(file)); diff != "" {
		t.Fatalf("constructors mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Build", "Members", "Name", "TryBuild"}, testsupport.MethodNames(file, "WorkspaceBuilder")); diff != "" {
		t.Fatalf("workspace builder methods mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Builder"}, testsupport.MethodNames(file, "Manifest")); diff != "" {
		t.Fatalf("record methods mismatch (-want +got):\n%s", diff)
	}
	wantImports := map[string]string{
		model.DefaultBuilderImport: model.DefaultBuilderImport,
		model.DefaultOptionImport:  model.DefaultOptionImport,
	}
	if diff := cmp.Diff(wantImports, testsupport.ImportPaths(file)); diff != "" {
		t.Fatalf("imports mismatch (-want +got):\n%s", diff)
	}

	src := string(out)
	for _, want := range []string{
		"// Code generated by buildergen. DO NOT EDIT.\n// Source: manifest.go\n\npackage manifest\n",
		"func (b *WorkspaceBuilder) Members(members []string) *WorkspaceBuilder {\n\tb.slots.Members.Set(members)\n\treturn b\n}",
		"func (b *WorkspaceBuilder) Name(name string) *WorkspaceBuilder {",
		"func (b *ManifestBuilder) Package(value Package) *ManifestBuilder {",
		"\tif out.Members, ok = b.slots.Members.Take().Get(); !ok {\n\t\treturn Workspace{}, builder.NotSet(\"Workspace\", \"Members\")\n\t}\n",
		"\tout.Name = b.slots.Name.Take()\n",
		"func (b *WorkspaceBuilder) Build() Workspace {\n\treturn builder.Must(b.TryBuild())\n}",
		"// Members sets the Members field, replacing any earlier value.\n//\n// Members lists the crates.\n",
		"func (Manifest) Builder() *ManifestBuilder {\n\treturn NewManifestBuilder()\n}",
	} {
		if !strings.Contains(src, want) {
			t.Fatalf("generated source missing %q:\n%s", want, src)
		}
	}
	if strings.Contains(src, "type Manifest struct") {
		t.Fatal("records must not be declared unless requested")
	}
}

func TestRenderOnlyDeclaresOkForRequiredFields(t *testing.T) {
	out := string(renderGo(t, planManifest(t), render.RenderOptions{}))
	manifest := out[strings.Index(out, "func (b *ManifestBuilder) TryBuild"):]
	manifest = manifest[:strings.Index(manifest, "\n}\n")]
	if strings.Contains(manifest, "var ok bool") {
		t.Fatalf("optional-only builder declares ok:\n%s", manifest)
	}
	workspace := out[strings.Index(out, "func (b *WorkspaceBuilder) TryBuild"):]
	if !strings.Contains(workspace, "var ok bool") {
		t.Fatal("builder with required fields must declare ok")
	}
}

func TestRenderEmitsRecordsOnRequest(t *testing.T) {
	out := renderGo(t, planManifest(t), render.RenderOptions{EmitRecords: true, Generator: "gen"})
	src := string(out)
	testsupport.MustParseGo(t, out)

	for _, want := range []string{
		"// Code generated by gen. DO NOT EDIT.",
		"type Workspace struct {\n\t// Members lists the crates.\n\tMembers []string\n\tName    option.Option[string] `yaml:\"name\"`\n}",
		"// Manifest is a record assembled by ManifestBuilder.\ntype Manifest struct {",
	} {
		if !strings.Contains(src, want) {
			t.Fatalf("generated source missing %q:\n%s", want, src)
		}
	}
}

func TestRenderSkipFormatKeepsTemplateOutput(t *testing.T) {
	fm := planManifest(t)
	raw := renderGo(t, fm, render.RenderOptions{SkipFormat: true})
	formatted := renderGo(t, fm, render.RenderOptions{})
	if len(raw) == 0 || string(raw) == string(formatted) {
		t.Fatal("expected unformatted output to differ from gofmt output")
	}
}

func TestRenderReportsInvalidTemplateOutput(t *testing.T) {
	files := fstest.MapFS{"templates/file.tmpl": {Data: []byte("package {{ file.package }}\nfunc {")}}
	r, err := golang.New(golang.WithTemplatesFS(files))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := r.Render(context.Background(), planManifest(t), render.RenderOptions{})
	if err == nil {
		t.Fatal("expected format error")
	}
	if !strings.HasPrefix(string(out), "package manifest") {
		t.Fatalf("expected raw output alongside the error, got %q", out)
	}
}

func TestRenderRejectsEmptyModel(t *testing.T) {
	r, err := golang.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if _, err := r.Render(context.Background(), model.FileModel{Package: "p"}, render.RenderOptions{}); err == nil {
		t.Fatal("expected error for a model without builders")
	}
}

func TestRenderMatchesGolden(t *testing.T) {
	fm := testsupport.MustLoadFileModel(t, "testdata/manifest_model.json")
	renderer, err := golang.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := renderer.Render(testsupport.Context(), fm, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	const golden = "testdata/manifest_builder.golden"
	if testsupport.WriteMaybeGolden(t, golden, out) {
		return
	}
	if diff := testsupport.CompareGolden(testsupport.MustReadGoldenString(t, golden), string(out)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderGroupsStandardLibraryImports(t *testing.T) {
	file := schema.File{
		Package: "jobs",
		Imports: []schema.Import{{Path: "example.com/units"}, {Path: "time"}},
		Structs: []schema.StructSpec{
			schema.NewStructSpec("Job",
				schema.Field("Started", "time.Time"),
				schema.Field("Unit", "units.Duration"),
			),
		},
	}
	annotated, err := optionality.New(optionality.PolicyAbort).AnnotateFile(file)
	if err != nil {
		t.Fatalf("annotate: %v", err)
	}
	fm, err := model.NewPlanner().Plan(annotated)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}

	src := string(renderGo(t, fm, render.RenderOptions{}))
	want := "import (\n" +
		"\t\"time\"\n" +
		"\n" +
		"\t\"example.com/units\"\n" +
		"\t\"github.com/goliatone/go-buildergen/pkg/builder\"\n" +
		"\t\"github.com/goliatone/go-buildergen/pkg/option\"\n" +
		")\n"
	if !strings.Contains(src, want) {
		t.Fatalf("generated source missing grouped imports %q:\n%s", want, src)
	}

	manifest := string(renderGo(t, planManifest(t), render.RenderOptions{}))
	if strings.Contains(manifest, "import (\n\n") {
		t.Fatalf("import block without standard library packages starts with a blank line:\n%s", manifest)
	}
}
