package orchestrator

import (
	"fmt"
	"sort"
	"sync"

	"github.com/goliatone/go-buildergen/pkg/schema"
)

// ExtractorRegistry stores schema extractors by input format.
type ExtractorRegistry struct {
	mu         sync.RWMutex
	extractors map[schema.Format]schema.Extractor
}

// NewExtractorRegistry creates an empty extractor registry.
func NewExtractorRegistry() *ExtractorRegistry {
	return &ExtractorRegistry{
		extractors: make(map[schema.Format]schema.Extractor),
	}
}

// Register adds an extractor for format. Duplicate formats return an error.
func (r *ExtractorRegistry) Register(format schema.Format, extractor schema.Extractor) error {
	if extractor == nil {
		return fmt.Errorf("orchestrator: extractor is required")
	}
	if format == "" {
		return fmt.Errorf("orchestrator: extractor format is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.extractors[format]; exists {
		return fmt.Errorf("orchestrator: extractor %q already registered", format)
	}
	r.extractors[format] = extractor
	return nil
}

// Set registers extractor for format, replacing any previous one.
func (r *ExtractorRegistry) Set(format schema.Format, extractor schema.Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.extractors[format] = extractor
}

// MustRegister panics on registration failure.
func (r *ExtractorRegistry) MustRegister(format schema.Format, extractor schema.Extractor) {
	if err := r.Register(format, extractor); err != nil {
		panic(err)
	}
}

// Get retrieves the extractor for format.
func (r *ExtractorRegistry) Get(format schema.Format) (schema.Extractor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	extractor, ok := r.extractors[format]
	if !ok || extractor == nil {
		return nil, fmt.Errorf("orchestrator: no extractor for format %q", format)
	}
	return extractor, nil
}

// List returns the registered formats, sorted.
func (r *ExtractorRegistry) List() []schema.Format {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]schema.Format, 0, len(r.extractors))
	for format := range r.extractors {
		out = append(out, format)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Has reports whether an extractor is registered for format.
func (r *ExtractorRegistry) Has(format schema.Format) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.extractors[format]
	return ok
}
