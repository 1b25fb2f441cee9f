package uiconfig

import (
	"fmt"
	"maps"
	"slices"

	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

// Decorator applies the label, hint, placeholder and widget overrides to a
// form model. Overrides for attributes the model does not declare fail with
// model.ErrUnknownAttribute.
func (f Form) Decorator() model.Decorator {
	return model.DecoratorFunc(func(form *model.FormModel) error {
		for _, attribute := range slices.Sorted(maps.Keys(f.Fields)) {
			cfg := f.Fields[attribute]
			if err := applyField(form, attribute, cfg); err != nil {
				return fmt.Errorf("uiconfig: form %q field %q: %w", f.Name, attribute, err)
			}
		}
		return nil
	})
}

func applyField(form *model.FormModel, attribute string, cfg FieldConfig) error {
	if !form.Has(attribute) {
		return fmt.Errorf("%w: %s", model.ErrUnknownAttribute, attribute)
	}
	if cfg.Label != "" {
		if err := form.SetLabel(attribute, cfg.Label); err != nil {
			return err
		}
	}
	if cfg.Hint != "" {
		if err := form.SetHint(attribute, cfg.Hint); err != nil {
			return err
		}
	}
	if cfg.Placeholder != "" {
		if err := form.SetPlaceholder(attribute, cfg.Placeholder); err != nil {
			return err
		}
	}
	if cfg.Widget != "" {
		if err := form.SetWidget(attribute, cfg.Widget); err != nil {
			return err
		}
	}
	return nil
}

// FieldOptions converts items, prompts and classes into widget options keyed
// by attribute.
func (f Form) FieldOptions() map[string][]widgets.Option {
	out := make(map[string][]widgets.Option)
	for attribute, cfg := range f.Fields {
		var opts []widgets.Option
		if len(cfg.Items) > 0 {
			opts = append(opts, widgets.WithItems(widgets.ItemsOf(cfg.Items...)...))
		}
		if cfg.Prompt != "" {
			opts = append(opts, widgets.WithPrompt(cfg.Prompt))
		}
		if cfg.Class != "" {
			opts = append(opts, widgets.WithClass(cfg.Class))
		}
		if len(opts) > 0 {
			out[attribute] = opts
		}
	}
	return out
}

// Apply returns opts extended with the form overrides. The field order only
// applies when opts.Attributes is empty; field options declared in opts win
// over the configured ones, see widgets.MergeOptions.
func (f Form) Apply(opts render.RenderOptions) render.RenderOptions {
	if len(opts.Attributes) == 0 && len(f.Order) > 0 {
		opts.Attributes = slices.Clone(f.Order)
	}
	opts.Decorators = append(slices.Clone(opts.Decorators), f.Decorator())

	merged := f.FieldOptions()
	for attribute, extra := range opts.FieldOptions {
		merged[attribute] = widgets.MergeOptions(merged[attribute], extra)
	}
	if len(merged) > 0 {
		opts.FieldOptions = merged
	}
	return opts
}
