package render

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-formkit/pkg/model"
)

var (
	// ErrUnknownRenderer is returned when no renderer is registered under a
	// name.
	ErrUnknownRenderer = errors.New("render: unknown renderer")
	// ErrDuplicateRenderer is returned when a second renderer claims a name.
	ErrDuplicateRenderer = errors.New("render: renderer already registered")
)

// Registry holds the renderers a form can be rendered with. Names are
// matched case-insensitively. The first registered renderer is the default
// until SetDefault picks another one.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
	fallback  string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{renderers: make(map[string]Renderer)}
}

func rendererKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Register adds renderer under its Name().
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return errors.New("render: renderer is required")
	}
	key := rendererKey(renderer.Name())
	if key == "" {
		return errors.New("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.renderers[key]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateRenderer, key)
	}
	r.renderers[key] = renderer
	if r.fallback == "" {
		r.fallback = key
	}
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// SetDefault picks the renderer used when Lookup or Render get no name.
func (r *Registry) SetDefault(name string) error {
	key := rendererKey(name)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.renderers[key]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRenderer, name)
	}
	r.fallback = key
	return nil
}

// Default names the renderer used for an empty name, "" when none is
// registered.
func (r *Registry) Default() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.fallback
}

// Lookup returns the named renderer, or the default one for an empty name.
func (r *Registry) Lookup(name string) (Renderer, error) {
	key := rendererKey(name)

	r.mu.RLock()
	defer r.mu.RUnlock()

	if key == "" {
		key = r.fallback
	}
	renderer, ok := r.renderers[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRenderer, name)
	}
	return renderer, nil
}

// Names lists the registered renderer names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Has reports whether a renderer is registered under name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.renderers[rendererKey(name)]
	return ok
}

// Render renders form with the named renderer, or the default one for an
// empty name.
func (r *Registry) Render(ctx context.Context, name string, form *model.FormModel, options RenderOptions) ([]byte, error) {
	if form == nil {
		return nil, errors.New("render: form model is nil")
	}
	renderer, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, form, options)
}
