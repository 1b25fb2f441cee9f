package widgets

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formkit/pkg/markup"
	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/validation"
)

// Parts holds the rendered pieces of a field before they are laid out.
type Parts struct {
	Widget    string
	ID        string
	Label     string
	Input     string
	Hint      string
	Error     string
	Container markup.Attributes
}

// Field renders label, input, hint and error through the configured
// template and wraps them in the container tag. Lines of the template whose
// tokens rendered empty are dropped.
func Field(form *model.FormModel, attribute string, opts ...Option) (string, error) {
	s := newSettings(opts)
	parts, err := fieldParts(form, attribute, s, opts)
	if err != nil {
		return "", err
	}
	cfg := s.cfg()
	template := cfg.template()
	if s.template != nil {
		template = *s.template
	}
	content := parts.Content(template)
	if cfg.ContainerTag == "" {
		return content, nil
	}
	return markup.Tag(cfg.ContainerTag, "\n"+content+"\n", parts.Container), nil
}

// FieldParts renders the pieces of a field without laying them out, for
// callers that compose fields with their own templates.
func FieldParts(form *model.FormModel, attribute string, opts ...Option) (Parts, error) {
	return fieldParts(form, attribute, newSettings(opts), opts)
}

func fieldParts(form *model.FormModel, attribute string, s *settings, opts []Option) (Parts, error) {
	id, err := inputID(form, attribute)
	if err != nil {
		return Parts{}, err
	}
	if override, ok := s.attrs["id"].(string); ok && override != "" {
		id = override
	}
	cfg := s.cfg()

	widget := resolveWidget(form, attribute, s)
	registry := s.registry
	if registry == nil {
		registry = defaultRegistry()
	}
	descriptor, ok := registry.Descriptor(widget)
	if !ok {
		return Parts{}, fmt.Errorf("%w: %q for attribute %q", ErrUnknownWidget, widget, attribute)
	}

	parts := Parts{Widget: descriptor.Name, ID: id}
	// Hidden inputs render without label, hint or error.
	hidden := descriptor.Name == WidgetHidden
	if !hidden {
		hintOpts := append([]Option{WithConfig(cfg), WithID(id + "-hint")}, s.hintOpts...)
		if parts.Hint, err = Hint(form, attribute, hintOpts...); err != nil {
			return Parts{}, err
		}
		errorOpts := append([]Option{WithConfig(cfg), WithID(id + "-error")}, s.errorOpts...)
		if parts.Error, err = Error(form, attribute, errorOpts...); err != nil {
			return Parts{}, err
		}
	}

	var describedBy []string
	if parts.Hint != "" {
		describedBy = append(describedBy, id+"-hint")
	}
	if parts.Error != "" {
		describedBy = append(describedBy, id+"-error")
	}
	inputOpts := []Option{WithConfig(cfg)}
	if len(describedBy) > 0 {
		inputOpts = append(inputOpts, WithAttribute("aria-describedby", strings.Join(describedBy, " ")))
	}
	inputOpts = append(inputOpts, opts...)
	if parts.Input, err = descriptor.Renderer(form, attribute, inputOpts...); err != nil {
		return Parts{}, err
	}

	if showLabel(descriptor.Name, s, cfg) {
		labelOpts := append([]Option{WithConfig(cfg), WithAttribute("for", id)}, s.labelOpts...)
		if parts.Label, err = Label(form, attribute, labelOpts...); err != nil {
			return Parts{}, err
		}
	}

	container := markup.Attributes{}
	container.AddClass(cfg.ContainerClass)
	if cfg.ContainerIDClass {
		container.AddClass("field-" + id)
	}
	if validation.HasRule(form.Rules(attribute), validation.RuleRequired) {
		container.AddClass(cfg.ContainerRequiredClass)
	}
	switch {
	case !cfg.stateOnContainer():
	case form.HasError(attribute):
		container.AddClass(cfg.ContainerInvalidClass)
	case form.Validated():
		container.AddClass(cfg.ContainerValidClass)
	}
	parts.Container = container.Merge(s.containerAttrs)
	return parts, nil
}

func showLabel(widget string, s *settings, cfg Config) bool {
	switch widget {
	case WidgetHidden:
		return false
	case WidgetCheckbox, WidgetRadio:
		return !encloseByLabel(s, cfg)
	}
	return true
}

// Content substitutes the parts into template.
func (p Parts) Content(template string) string {
	replacer := strings.NewReplacer(
		TokenLabel, p.Label,
		TokenInput, p.Input,
		TokenHint, p.Hint,
		TokenError, p.Error,
	)
	lines := strings.Split(template, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		rendered := replacer.Replace(line)
		if strings.TrimSpace(line) != "" && strings.TrimSpace(rendered) == "" {
			continue
		}
		out = append(out, rendered)
	}
	return strings.Join(out, "\n")
}
