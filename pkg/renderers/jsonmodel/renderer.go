// Package jsonmodel renders the planned builder model as JSON so the slot and
// setter types chosen for every field can be inspected without generating Go.
package jsonmodel

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/goliatone/go-buildergen/pkg/model"
	"github.com/goliatone/go-buildergen/pkg/render"
)

// Name is the registry name of the JSON renderer.
const Name = "json"

type Renderer struct {
	indent string
}

var (
	_ render.Renderer        = (*Renderer)(nil)
	_ render.FileExtensioner = (*Renderer)(nil)
)

type Option func(*Renderer)

// WithIndent overrides the two-space indentation. An empty string produces
// compact output.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

// New constructs the JSON renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{indent: "  "}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "application/json"
}

func (r *Renderer) FileExtension() string {
	return ".json"
}

type document struct {
	Generator string          `json:"generator"`
	File      model.FileModel `json:"file"`
}

func (r *Renderer) Render(ctx context.Context, file model.FileModel, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	payload := document{Generator: options.GeneratorName(), File: file}

	var (
		out []byte
		err error
	)
	if r.indent == "" {
		out, err = json.Marshal(payload)
	} else {
		out, err = json.MarshalIndent(payload, "", r.indent)
	}
	if err != nil {
		return nil, fmt.Errorf("json renderer: marshal model: %w", err)
	}
	return append(out, '\n'), nil
}
