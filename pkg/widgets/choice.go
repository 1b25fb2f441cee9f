package widgets

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formkit/pkg/markup"
	"github.com/goliatone/go-formkit/pkg/model"
)

// Checkbox renders a hidden unchecked value ("0") followed by a checkbox with
// value "1", checked when the model value is true or equals the checkbox
// value. With EncloseCheckboxByLabel the checkbox is wrapped in its label.
func Checkbox(form *model.FormModel, attribute string, opts ...Option) (string, error) {
	return toggle(form, attribute, "checkbox", newSettings(opts))
}

// Radio renders a single radio button, see Checkbox.
func Radio(form *model.FormModel, attribute string, opts ...Option) (string, error) {
	return toggle(form, attribute, "radio", newSettings(opts))
}

func toggle(form *model.FormModel, attribute, inputType string, s *settings) (string, error) {
	value, err := form.Value(attribute)
	if err != nil {
		return "", err
	}
	cfg := s.cfg()
	attrs, err := baseAttributes(form, attribute, cfg, true)
	if err != nil {
		return "", err
	}
	attrs["type"] = inputType
	attrs["value"] = "1"
	attrs = attrs.Merge(s.attrs)
	if _, set := attrs["checked"]; !set {
		attrs["checked"] = isChecked(value, fmt.Sprint(attrs["value"]))
	}

	var out strings.Builder
	if !s.noUncheck {
		uncheck := "0"
		if s.uncheck != nil {
			uncheck = *s.uncheck
		}
		out.WriteString(markup.VoidTag("input", markup.Attributes{
			"type":  "hidden",
			"name":  attrs["name"],
			"value": uncheck,
		}))
	}

	input := markup.VoidTag("input", attrs)
	if !encloseByLabel(s, cfg) {
		out.WriteString(input)
		return out.String(), nil
	}
	labelSettings := newSettings(s.labelOpts)
	labelAttrs := markup.Attributes{}
	labelAttrs.AddClass(cfg.LabelClass)
	labelAttrs = labelAttrs.Merge(labelSettings.attrs)
	out.WriteString(markup.Tag("label", input+" "+labelText(form, attribute, labelSettings), labelAttrs))
	return out.String(), nil
}

func encloseByLabel(s *settings, cfg Config) bool {
	if s.enclose != nil {
		return *s.enclose
	}
	return cfg.EncloseCheckboxByLabel
}

// CheckboxList renders one labelled checkbox per item inside a <div>. A
// hidden empty value precedes the list so unchecking everything still posts
// the attribute.
func CheckboxList(form *model.FormModel, attribute string, opts ...Option) (string, error) {
	return list(form, attribute, "checkbox", newSettings(opts))
}

// RadioList renders one labelled radio button per item, see CheckboxList.
func RadioList(form *model.FormModel, attribute string, opts ...Option) (string, error) {
	return list(form, attribute, "radio", newSettings(opts))
}

func list(form *model.FormModel, attribute, inputType string, s *settings) (string, error) {
	value, err := form.Value(attribute)
	if err != nil {
		return "", err
	}
	cfg := s.cfg()
	base, err := baseAttributes(form, attribute, cfg, false)
	if err != nil {
		return "", err
	}
	name, _ := base["name"].(string)
	itemName := name
	role := "radiogroup"
	if inputType == "checkbox" {
		itemName = name + "[]"
		role = "group"
	}

	selected := selectedSet(value)
	lines := make([]string, 0, len(s.items))
	for _, item := range s.items {
		attrs := markup.Attributes{"type": inputType, "name": itemName, "value": item.Value}
		if _, ok := selected[item.Value]; ok {
			attrs["checked"] = true
		}
		if item.Disabled {
			attrs["disabled"] = true
		}
		attrs = attrs.Merge(item.Attributes)
		labelAttrs := markup.Attributes{}
		labelAttrs.AddClass(cfg.LabelClass)
		lines = append(lines, markup.Tag("label", markup.VoidTag("input", attrs)+" "+markup.Encode(item.Label), labelAttrs))
	}

	container := markup.Attributes{"id": base["id"], "role": role}
	applyState(container, form, attribute, cfg)
	container = container.Merge(s.attrs)

	var out strings.Builder
	if !s.noUncheck {
		uncheck := ""
		if s.uncheck != nil {
			uncheck = *s.uncheck
		}
		out.WriteString(markup.VoidTag("input", markup.Attributes{"type": "hidden", "name": name, "value": uncheck}))
	}
	out.WriteString(markup.Tag("div", strings.Join(lines, "\n"), container))
	return out.String(), nil
}

// Select renders a <select> with an optional prompt, items and groups.
// WithMultiple appends [] to the name and adds a hidden empty value so an
// empty selection still posts the attribute.
func Select(form *model.FormModel, attribute string, opts ...Option) (string, error) {
	s := newSettings(opts)
	value, err := form.Value(attribute)
	if err != nil {
		return "", err
	}
	attrs, err := baseAttributes(form, attribute, s.cfg(), true)
	if err != nil {
		return "", err
	}
	name, _ := attrs["name"].(string)
	if s.multiple {
		attrs["name"] = name + "[]"
		attrs["multiple"] = true
	}
	attrs = attrs.Merge(s.attrs)

	selected := selectedSet(value)
	var lines []string
	if s.prompt != nil {
		lines = append(lines, markup.Tag("option", markup.Encode(*s.prompt), markup.Attributes{"value": ""}))
	}
	for _, item := range s.items {
		lines = append(lines, option(item, selected))
	}
	for _, group := range s.groups {
		lines = append(lines, markup.OpenTag("optgroup", markup.Attributes{"label": group.Label}))
		for _, item := range group.Items {
			lines = append(lines, option(item, selected))
		}
		lines = append(lines, markup.CloseTag("optgroup"))
	}

	content := ""
	if len(lines) > 0 {
		content = "\n" + strings.Join(lines, "\n") + "\n"
	}

	var out strings.Builder
	if s.multiple && !s.noUncheck {
		uncheck := ""
		if s.uncheck != nil {
			uncheck = *s.uncheck
		}
		out.WriteString(markup.VoidTag("input", markup.Attributes{"type": "hidden", "name": name, "value": uncheck}))
	}
	out.WriteString(markup.Tag("select", content, attrs))
	return out.String(), nil
}

func option(item Item, selected map[string]struct{}) string {
	attrs := markup.Attributes{"value": item.Value}
	if _, ok := selected[item.Value]; ok {
		attrs["selected"] = true
	}
	if item.Disabled {
		attrs["disabled"] = true
	}
	return markup.Tag("option", markup.Encode(item.Label), attrs.Merge(item.Attributes))
}
