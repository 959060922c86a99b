package render_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-buildergen/pkg/model"
	"github.com/goliatone/go-buildergen/pkg/render"
)

type stubRenderer struct {
	name string
}

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return "text/plain" }
func (s stubRenderer) Render(context.Context, model.FileModel, render.RenderOptions) ([]byte, error) {
	return []byte(s.name), nil
}

type extRenderer struct {
	stubRenderer
	ext string
}

func (e extRenderer) FileExtension() string { return e.ext }

func TestRegistryRegisterAndList(t *testing.T) {
	reg := render.NewRegistry()
	reg.MustRegister(stubRenderer{name: "json"})
	reg.MustRegister(stubRenderer{name: "Go"})

	if diff := cmp.Diff([]string{"go", "json"}, reg.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if err := reg.Register(stubRenderer{name: "GO"}); err == nil {
		t.Fatal("expected duplicate registration error")
	}
	if err := reg.Register(nil); err == nil {
		t.Fatal("expected nil renderer error")
	}
	if err := reg.Register(stubRenderer{name: "  "}); err == nil {
		t.Fatal("expected empty name error")
	}
}

func TestRegistryResolve(t *testing.T) {
	reg := render.NewRegistry()
	reg.MustRegister(stubRenderer{name: "go"})
	reg.MustRegister(stubRenderer{name: "json"})

	r, err := reg.Resolve("", "go")
	if err != nil || r.Name() != "go" {
		t.Fatalf("resolve fallback: %v %v", r, err)
	}
	if r, err := reg.Resolve(" JSON ", "go"); err != nil || r.Name() != "json" {
		t.Fatalf("resolve ignores case and spaces: %v %v", r, err)
	}

	_, err = reg.Resolve("xml", "go")
	if !errors.Is(err, render.ErrUnknownRenderer) {
		t.Fatalf("expected ErrUnknownRenderer, got %v", err)
	}
	if !strings.Contains(err.Error(), "available: go, json") {
		t.Fatalf("error does not list the renderers: %v", err)
	}
	if _, err := reg.Resolve("", ""); err == nil || errors.Is(err, render.ErrUnknownRenderer) {
		t.Fatalf("expected missing name error, got %v", err)
	}
}

func TestRegistryFileExtension(t *testing.T) {
	reg := render.NewRegistry()
	reg.MustRegister(extRenderer{stubRenderer: stubRenderer{name: "go"}, ext: ".go"})
	reg.MustRegister(extRenderer{stubRenderer: stubRenderer{name: "proto"}, ext: "proto"})
	reg.MustRegister(stubRenderer{name: "plain"})

	cases := []struct {
		name, want string
	}{
		{"", ".go"},
		{"go", ".go"},
		{"proto", ".proto"},
		{"plain", ".out"},
	}
	for _, tc := range cases {
		got, err := reg.FileExtension(tc.name, "go")
		if err != nil {
			t.Fatalf("%q: %v", tc.name, err)
		}
		if got != tc.want {
			t.Fatalf("FileExtension(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
	if _, err := reg.FileExtension("xml", "go"); !errors.Is(err, render.ErrUnknownRenderer) {
		t.Fatalf("expected ErrUnknownRenderer, got %v", err)
	}
}

func TestRenderOptionsGeneratorName(t *testing.T) {
	if got := (render.RenderOptions{}).GeneratorName(); got != render.DefaultGenerator {
		t.Fatalf("default generator = %q", got)
	}
	if got := (render.RenderOptions{Generator: "gen"}).GeneratorName(); got != "gen" {
		t.Fatalf("generator = %q", got)
	}
}
