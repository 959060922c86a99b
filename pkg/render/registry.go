package render

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrUnknownRenderer is returned when no renderer is registered under the
// requested name.
var ErrUnknownRenderer = errors.New("render: unknown renderer")

// FileExtensioner is implemented by renderers that know which file extension
// their output belongs in, e.g. ".go".
type FileExtensioner interface {
	FileExtension() string
}

// Registry maps renderer names, as accepted by -renderer, to renderers.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		renderers: make(map[string]Renderer),
	}
}

// Register adds renderer under its Name. Names are matched case-insensitively
// and must be unique.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return errors.New("render: renderer is required")
	}
	key := normalizeName(renderer.Name())
	if key == "" {
		return errors.New("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.renderers[key]; exists {
		return fmt.Errorf("render: renderer %q already registered", key)
	}
	r.renderers[key] = renderer
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// List returns the registered names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve returns the renderer registered as name, or as fallback when name
// is empty. An unknown name yields an error wrapping ErrUnknownRenderer that
// lists the available renderers.
func (r *Registry) Resolve(name, fallback string) (Renderer, error) {
	key := normalizeName(name)
	if key == "" {
		key = normalizeName(fallback)
	}
	if key == "" {
		return nil, errors.New("render: renderer name is required")
	}

	r.mu.RLock()
	renderer, ok := r.renderers[key]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownRenderer, key, strings.Join(r.List(), ", "))
	}
	return renderer, nil
}

// FileExtension resolves a renderer like Resolve and returns the extension
// its output is written with. Renderers that do not implement
// FileExtensioner produce ".out" files.
func (r *Registry) FileExtension(name, fallback string) (string, error) {
	renderer, err := r.Resolve(name, fallback)
	if err != nil {
		return "", err
	}
	if ext, ok := renderer.(FileExtensioner); ok {
		if e := ext.FileExtension(); e != "" {
			if !strings.HasPrefix(e, ".") {
				e = "." + e
			}
			return e, nil
		}
	}
	return ".out", nil
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
