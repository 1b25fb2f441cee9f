package widgets

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-formkit/pkg/model"
)

// Canonical widget names understood by the default registry.
const (
	WidgetText         = "text"
	WidgetPassword     = "password"
	WidgetEmail        = "email"
	WidgetNumber       = "number"
	WidgetURL          = "url"
	WidgetTel          = "tel"
	WidgetDate         = "date"
	WidgetDateTime     = "datetime"
	WidgetHidden       = "hidden"
	WidgetFile         = "file"
	WidgetRange        = "range"
	WidgetColor        = "color"
	WidgetTextarea     = "textarea"
	WidgetCheckbox     = "checkbox"
	WidgetRadio        = "radio"
	WidgetCheckboxList = "checkbox-list"
	WidgetRadioList    = "radio-list"
	WidgetSelect       = "select"
)

// ErrUnknownWidget reports a widget name missing from the registry.
var ErrUnknownWidget = errors.New("widgets: unknown widget")

// Renderer is the signature shared by every attribute widget.
type Renderer func(form *model.FormModel, attribute string, opts ...Option) (string, error)

// Descriptor bundles a renderer with the stylesheets it depends on.
type Descriptor struct {
	Name        string
	Renderer    Renderer
	Stylesheets []string
}

// Registry tracks widget descriptors keyed by name. Callers can register new
// widgets or override defaults.
type Registry struct {
	mu         sync.RWMutex
	components map[string]Descriptor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{components: make(map[string]Descriptor)}
}

// NewDefaultRegistry returns a registry holding every built-in widget.
func NewDefaultRegistry() *Registry {
	registry := NewRegistry()
	inputs := map[string]string{
		WidgetText:     "text",
		WidgetPassword: "password",
		WidgetEmail:    "email",
		WidgetNumber:   "number",
		WidgetURL:      "url",
		WidgetTel:      "tel",
		WidgetDate:     "date",
		WidgetDateTime: "datetime-local",
		WidgetHidden:   "hidden",
		WidgetFile:     "file",
		WidgetRange:    "range",
		WidgetColor:    "color",
	}
	for name, inputType := range inputs {
		registry.MustRegister(name, Descriptor{Renderer: inputRenderer(inputType)})
	}
	registry.MustRegister(WidgetTextarea, Descriptor{Renderer: Textarea})
	registry.MustRegister(WidgetCheckbox, Descriptor{Renderer: Checkbox})
	registry.MustRegister(WidgetRadio, Descriptor{Renderer: Radio})
	registry.MustRegister(WidgetCheckboxList, Descriptor{Renderer: CheckboxList})
	registry.MustRegister(WidgetRadioList, Descriptor{Renderer: RadioList})
	registry.MustRegister(WidgetSelect, Descriptor{Renderer: Select})
	return registry
}

func inputRenderer(inputType string) Renderer {
	return func(form *model.FormModel, attribute string, opts ...Option) (string, error) {
		return Input(form, attribute, inputType, opts...)
	}
}

var defaultRegistry = sync.OnceValue(NewDefaultRegistry)

// Clone returns a copy that can be mutated without touching r.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cloned := NewRegistry()
	for name, descriptor := range r.components {
		cloned.components[name] = cloneDescriptor(descriptor)
	}
	return cloned
}

// Register associates a descriptor with name, replacing existing entries.
func (r *Registry) Register(name string, descriptor Descriptor) error {
	if name = normalize(name); name == "" {
		return fmt.Errorf("widgets: widget name is required")
	}
	if descriptor.Renderer == nil {
		return fmt.Errorf("widgets: renderer for %q is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	descriptor.Name = name
	r.components[name] = cloneDescriptor(descriptor)
	return nil
}

// MustRegister is Register that panics on error.
func (r *Registry) MustRegister(name string, descriptor Descriptor) {
	if err := r.Register(name, descriptor); err != nil {
		panic(err)
	}
}

// Descriptor fetches a descriptor by name.
func (r *Registry) Descriptor(name string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	descriptor, ok := r.components[normalize(name)]
	if !ok {
		return Descriptor{}, false
	}
	return cloneDescriptor(descriptor), true
}

// Names returns the registered widget names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.components))
	for name := range r.components {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Stylesheets collects the de-duplicated stylesheets of the named widgets in
// first-seen order.
func (r *Registry) Stylesheets(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []string
	seen := make(map[string]struct{})
	for _, name := range names {
		descriptor, ok := r.components[normalize(name)]
		if !ok {
			continue
		}
		for _, href := range descriptor.Stylesheets {
			if href == "" {
				continue
			}
			if _, exists := seen[href]; exists {
				continue
			}
			seen[href] = struct{}{}
			out = append(out, href)
		}
	}
	return out
}

func cloneDescriptor(src Descriptor) Descriptor {
	return Descriptor{
		Name:        src.Name,
		Renderer:    src.Renderer,
		Stylesheets: slices.Clone(src.Stylesheets),
	}
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
