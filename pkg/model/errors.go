package model

import (
	"slices"

	"github.com/goliatone/go-formkit/pkg/validation"
)

// AddError records message for attribute. Tabular names are reduced to the
// bare attribute.
func (m *FormModel) AddError(attribute, message string) {
	name := m.errorKey(attribute)
	m.errors[name] = append(m.errors[name], message)
}

// AddErrors records several messages per attribute.
func (m *FormModel) AddErrors(errors map[string][]string) {
	for attribute, messages := range errors {
		for _, message := range messages {
			m.AddError(attribute, message)
		}
	}
}

// Errors returns the messages recorded for attribute.
func (m *FormModel) Errors(attribute string) []string {
	return append([]string(nil), m.errors[m.errorKey(attribute)]...)
}

// AllErrors returns a copy of every recorded message keyed by attribute.
func (m *FormModel) AllErrors() map[string][]string {
	out := make(map[string][]string, len(m.errors))
	for name, messages := range m.errors {
		out[name] = append([]string(nil), messages...)
	}
	return out
}

// FirstError returns the first message for attribute, or "".
func (m *FormModel) FirstError(attribute string) string {
	messages := m.errors[m.errorKey(attribute)]
	if len(messages) == 0 {
		return ""
	}
	return messages[0]
}

// FirstErrors returns the first message of every attribute with errors.
func (m *FormModel) FirstErrors() map[string]string {
	out := make(map[string]string, len(m.errors))
	for name, messages := range m.errors {
		if len(messages) > 0 {
			out[name] = messages[0]
		}
	}
	return out
}

// HasErrors reports whether any attribute has errors.
func (m *FormModel) HasErrors() bool {
	for _, messages := range m.errors {
		if len(messages) > 0 {
			return true
		}
	}
	return false
}

// HasError reports whether attribute has errors.
func (m *FormModel) HasError(attribute string) bool {
	return len(m.errors[m.errorKey(attribute)]) > 0
}

// ClearErrors removes errors for the given attributes, or all errors when
// none are given.
func (m *FormModel) ClearErrors(attributes ...string) {
	if len(attributes) == 0 {
		m.errors = make(map[string][]string)
		return
	}
	for _, attribute := range attributes {
		delete(m.errors, m.errorKey(attribute))
	}
}

// ErrorSummary lists messages in attribute declaration order followed by
// errors on undeclared keys. With showAll false only the first message of
// each attribute is included.
func (m *FormModel) ErrorSummary(showAll bool) []string {
	var out []string
	seen := make(map[string]struct{}, len(m.errors))
	appendMessages := func(name string) {
		messages := m.errors[name]
		if len(messages) == 0 {
			return
		}
		seen[name] = struct{}{}
		if showAll {
			out = append(out, messages...)
			return
		}
		out = append(out, messages[0])
	}
	for _, name := range m.order {
		appendMessages(name)
	}
	extra := make([]string, 0)
	for name := range m.errors {
		if _, ok := seen[name]; !ok {
			extra = append(extra, name)
		}
	}
	slices.Sort(extra)
	for _, name := range extra {
		appendMessages(name)
	}
	return out
}

// Validated reports whether Validate ran since the last Load.
func (m *FormModel) Validated() bool {
	return m.validated
}

// Validate clears previous errors, re-adds coercion failures from Load and
// runs the attribute rules. It returns true when no errors were recorded.
func (m *FormModel) Validate() bool {
	m.ClearErrors()
	for _, name := range m.order {
		if message, ok := m.invalid[name]; ok {
			m.AddError(name, message)
		}
	}

	rules := make(map[string][]validation.Rule, len(m.rules))
	for name, list := range m.rules {
		if _, failed := m.invalid[name]; failed {
			continue
		}
		rules[name] = list
	}
	result := validation.Validate(m, rules)
	for _, name := range m.order {
		for _, message := range result.ErrorsFor(name) {
			m.AddError(name, message)
		}
	}

	m.validated = true
	return !m.HasErrors()
}

func (m *FormModel) errorKey(attribute string) string {
	if attr, err := m.lookup(attribute); err == nil {
		return attr.name
	}
	return attribute
}
