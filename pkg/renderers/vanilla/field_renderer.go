package vanilla

import (
	"fmt"
	"slices"

	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/render/template"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

// PartialField is the theme partial key used to lay out a single field.
const PartialField = "forms.field"

type fieldRenderer struct {
	templates template.TemplateRenderer
	registry  *widgets.Registry
	resolver  *widgets.Resolver
	config    widgets.Config
	partial   string

	used map[string]struct{}
}

func newFieldRenderer(templates template.TemplateRenderer, registry *widgets.Registry, resolver *widgets.Resolver, cfg widgets.Config, partial string) *fieldRenderer {
	if registry == nil {
		registry = widgets.NewDefaultRegistry()
	}
	return &fieldRenderer{
		templates: templates,
		registry:  registry,
		resolver:  resolver,
		config:    cfg,
		partial:   partial,
		used:      make(map[string]struct{}),
	}
}

func (r *fieldRenderer) options(extra []widgets.Option) []widgets.Option {
	opts := []widgets.Option{widgets.WithConfig(r.config), widgets.WithRegistry(r.registry)}
	if r.resolver != nil {
		opts = append(opts, widgets.WithResolver(r.resolver))
	}
	return append(opts, extra...)
}

func (r *fieldRenderer) render(form *model.FormModel, attribute string, extra []widgets.Option) (string, error) {
	opts := r.options(extra)
	parts, err := widgets.FieldParts(form, attribute, opts...)
	if err != nil {
		return "", fmt.Errorf("render field %q: %w", attribute, err)
	}
	r.used[parts.Widget] = struct{}{}

	if r.partial == "" || r.templates == nil {
		out, err := widgets.Field(form, attribute, opts...)
		if err != nil {
			return "", fmt.Errorf("render field %q: %w", attribute, err)
		}
		return out, nil
	}

	out, err := r.templates.RenderTemplate(r.partial, map[string]any{
		"attribute": attribute,
		"field": map[string]any{
			"id":        parts.ID,
			"widget":    parts.Widget,
			"label":     parts.Label,
			"input":     parts.Input,
			"hint":      parts.Hint,
			"error":     parts.Error,
			"container": map[string]any(parts.Container),
			"tag":       r.config.ContainerTag,
		},
	})
	if err != nil {
		return "", fmt.Errorf("render field %q with partial %q: %w", attribute, r.partial, err)
	}
	return out, nil
}

// fieldHelpers lets a custom form template place fields itself:
//
//	{{ field("email")|safe }}
//	{% if has_error("email") %}{{ error("email") }}{% endif %}
func fieldHelpers(form *model.FormModel, fields *fieldRenderer, options render.RenderOptions) map[string]any {
	return map[string]any{
		"field": func(attribute string) (string, error) {
			return fields.render(form, attribute, options.FieldOptions[attribute])
		},
		"label":     form.Label,
		"hint":      form.Hint,
		"error":     form.FirstError,
		"has_error": form.HasError,
		"input_id": func(attribute string) string {
			id, _ := form.InputID(attribute)
			return id
		},
		"input_name": func(attribute string) string {
			name, _ := form.InputName(attribute)
			return name
		},
	}
}

// usedWidgets lists the widgets rendered so far, sorted.
func (r *fieldRenderer) usedWidgets() []string {
	names := make([]string, 0, len(r.used))
	for name := range r.used {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
