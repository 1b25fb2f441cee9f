package widgets

import (
	"github.com/goliatone/go-formkit/pkg/markup"
	"github.com/goliatone/go-formkit/pkg/model"
)

// Input renders <input type="inputType"> bound to attribute.
func Input(form *model.FormModel, attribute, inputType string, opts ...Option) (string, error) {
	return renderInput(form, attribute, inputType, newSettings(opts))
}

// TextInput renders a text input.
func TextInput(form *model.FormModel, attribute string, opts ...Option) (string, error) {
	return Input(form, attribute, "text", opts...)
}

// PasswordInput renders a password input. The current value is never echoed.
func PasswordInput(form *model.FormModel, attribute string, opts ...Option) (string, error) {
	return Input(form, attribute, "password", opts...)
}

// EmailInput renders an email input.
func EmailInput(form *model.FormModel, attribute string, opts ...Option) (string, error) {
	return Input(form, attribute, "email", opts...)
}

// NumberInput renders a number input.
func NumberInput(form *model.FormModel, attribute string, opts ...Option) (string, error) {
	return Input(form, attribute, "number", opts...)
}

// URLInput renders a url input.
func URLInput(form *model.FormModel, attribute string, opts ...Option) (string, error) {
	return Input(form, attribute, "url", opts...)
}

// TelInput renders a tel input.
func TelInput(form *model.FormModel, attribute string, opts ...Option) (string, error) {
	return Input(form, attribute, "tel", opts...)
}

// DateInput renders a date input; time values are formatted as 2006-01-02.
func DateInput(form *model.FormModel, attribute string, opts ...Option) (string, error) {
	return Input(form, attribute, "date", opts...)
}

// DateTimeInput renders a datetime-local input.
func DateTimeInput(form *model.FormModel, attribute string, opts ...Option) (string, error) {
	return Input(form, attribute, "datetime-local", opts...)
}

// HiddenInput renders a hidden input. It carries no classes or ARIA state.
func HiddenInput(form *model.FormModel, attribute string, opts ...Option) (string, error) {
	return Input(form, attribute, "hidden", opts...)
}

// FileInput renders a file input.
func FileInput(form *model.FormModel, attribute string, opts ...Option) (string, error) {
	return Input(form, attribute, "file", opts...)
}

// RangeInput renders a range input.
func RangeInput(form *model.FormModel, attribute string, opts ...Option) (string, error) {
	return Input(form, attribute, "range", opts...)
}

// ColorInput renders a color input.
func ColorInput(form *model.FormModel, attribute string, opts ...Option) (string, error) {
	return Input(form, attribute, "color", opts...)
}

func renderInput(form *model.FormModel, attribute, inputType string, s *settings) (string, error) {
	value, err := form.Value(attribute)
	if err != nil {
		return "", err
	}
	hidden := inputType == "hidden"
	attrs, err := baseAttributes(form, attribute, s.cfg(), !hidden)
	if err != nil {
		return "", err
	}
	attrs["type"] = inputType

	switch inputType {
	case "password", "file":
	default:
		attrs["value"] = formatValue(value, inputType)
	}
	if s.value != nil {
		attrs["value"] = *s.value
	}
	if placeholder := form.Placeholder(attribute); placeholder != "" && !hidden {
		attrs["placeholder"] = placeholder
	}
	return markup.VoidTag("input", attrs.Merge(s.attrs)), nil
}

// Textarea renders a <textarea> with the escaped value as content.
func Textarea(form *model.FormModel, attribute string, opts ...Option) (string, error) {
	s := newSettings(opts)
	value, err := form.Value(attribute)
	if err != nil {
		return "", err
	}
	attrs, err := baseAttributes(form, attribute, s.cfg(), true)
	if err != nil {
		return "", err
	}
	if placeholder := form.Placeholder(attribute); placeholder != "" {
		attrs["placeholder"] = placeholder
	}
	content := formatValue(value, "")
	if s.value != nil {
		content = *s.value
	}
	return markup.Tag("textarea", markup.Encode(content), attrs.Merge(s.attrs)), nil
}
