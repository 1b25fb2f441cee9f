package model

import "github.com/goliatone/go-formkit/pkg/validation"

// Decorator enriches a form model after construction, e.g. translating labels
// or attaching rules imported from another source.
type Decorator interface {
	Decorate(*FormModel) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*FormModel) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(form *FormModel) error {
	return fn(form)
}

// Decorate applies decorators in order and stops at the first error.
func (m *FormModel) Decorate(decorators ...Decorator) error {
	for _, decorator := range decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(m); err != nil {
			return err
		}
	}
	return nil
}

// AddRules attaches rules after construction.
func (m *FormModel) AddRules(attribute string, rules ...validation.Rule) error {
	attr, err := m.lookup(attribute)
	if err != nil {
		return err
	}
	m.rules[attr.name] = append(m.rules[attr.name], rules...)
	return nil
}
