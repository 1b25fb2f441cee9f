package model

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/goliatone/go-formkit/pkg/markup"
	"github.com/goliatone/go-formkit/pkg/validation"
)

// FormModel binds form input to a typed target and tracks validation state.
// A FormModel lives for one request: load, validate, render, discard. It is
// not safe for concurrent mutation.
type FormModel struct {
	formName string
	target   any
	store    valueStore

	order      []string
	attributes map[string]*attribute
	rules      map[string][]validation.Rule

	errors    map[string][]string
	invalid   map[string]string
	validated bool
}

// New wraps target, which must be a non-nil pointer to a struct.
func New(target any, opts ...Option) (*FormModel, error) {
	rv := reflect.ValueOf(target)
	if !rv.IsValid() || rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: got %T", ErrInvalidTarget, target)
	}

	var attrs []*attribute
	if err := collectAttributes(rv.Elem().Type(), "", nil, nil, &attrs); err != nil {
		return nil, err
	}

	form := newFormModel(rv.Elem().Type().Name(), attrs, structStore{root: rv.Elem()})
	form.target = target

	if namer, ok := target.(FormNamer); ok {
		form.formName = namer.FormName()
	}
	if provider, ok := target.(LabelProvider); ok {
		form.applyLabels(provider.AttributeLabels())
	}
	if provider, ok := target.(HintProvider); ok {
		form.applyHints(provider.AttributeHints())
	}
	if provider, ok := target.(PlaceholderProvider); ok {
		form.applyPlaceholders(provider.AttributePlaceholders())
	}
	var provided map[string][]validation.Rule
	if provider, ok := target.(RuleProvider); ok {
		provided = provider.Rules()
	}

	if err := form.configure(provided, opts...); err != nil {
		return nil, err
	}
	return form, nil
}

// MustNew is New that panics on error, handy for package-level fixtures.
func MustNew(target any, opts ...Option) *FormModel {
	form, err := New(target, opts...)
	if err != nil {
		panic(err)
	}
	return form
}

func newFormModel(formName string, attrs []*attribute, store valueStore) *FormModel {
	form := &FormModel{
		formName:   formName,
		store:      store,
		order:      make([]string, 0, len(attrs)),
		attributes: make(map[string]*attribute, len(attrs)),
		rules:      make(map[string][]validation.Rule),
		errors:     make(map[string][]string),
		invalid:    make(map[string]string),
	}
	for _, attr := range attrs {
		if strings.TrimSpace(attr.label) == "" {
			attr.label = Humanize(attr.name)
		}
		form.order = append(form.order, attr.name)
		form.attributes[attr.name] = attr
	}
	return form
}

func (m *FormModel) configure(provided map[string][]validation.Rule, opts ...Option) error {
	cfg := config{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.formName != nil {
		m.formName = strings.TrimSpace(*cfg.formName)
	}
	m.applyLabels(cfg.labels)
	m.applyHints(cfg.hints)
	m.applyPlaceholders(cfg.placeholders)

	for _, rules := range []map[string][]validation.Rule{provided, cfg.rules} {
		for name, list := range rules {
			if _, ok := m.attributes[name]; !ok {
				return fmt.Errorf("%w: rules declared for %q", ErrUnknownAttribute, name)
			}
			m.rules[name] = append(m.rules[name], list...)
		}
	}
	return nil
}

func (m *FormModel) applyLabels(values map[string]string) {
	for name, value := range values {
		if attr, ok := m.attributes[name]; ok {
			attr.label = value
		}
	}
}

func (m *FormModel) applyHints(values map[string]string) {
	for name, value := range values {
		if attr, ok := m.attributes[name]; ok {
			attr.hint = value
		}
	}
}

func (m *FormModel) applyPlaceholders(values map[string]string) {
	for name, value := range values {
		if attr, ok := m.attributes[name]; ok {
			attr.placeholder = value
		}
	}
}

// FormName returns the scope used for input names and Load.
func (m *FormModel) FormName() string {
	return m.formName
}

// Target returns the wrapped struct pointer, or nil for dynamic models.
func (m *FormModel) Target() any {
	return m.target
}

// Attributes lists attribute names in declaration order.
func (m *FormModel) Attributes() []string {
	return append([]string(nil), m.order...)
}

// Has reports whether attribute (possibly tabular, e.g. "[0]name") exists.
func (m *FormModel) Has(attribute string) bool {
	_, err := m.lookup(attribute)
	return err == nil
}

func (m *FormModel) lookup(attribute string) (*attribute, error) {
	name, err := markup.AttributeName(attribute)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAttribute, attribute)
	}
	attr, ok := m.attributes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAttribute, attribute)
	}
	return attr, nil
}

// Kind returns the attribute kind, or "" for unknown attributes.
func (m *FormModel) Kind(attribute string) Kind {
	attr, err := m.lookup(attribute)
	if err != nil {
		return ""
	}
	return attr.kind
}

// Value returns the current attribute value.
func (m *FormModel) Value(attribute string) (any, error) {
	attr, err := m.lookup(attribute)
	if err != nil {
		return nil, err
	}
	return m.store.get(attr), nil
}

// SetValue coerces value into the attribute type and stores it.
func (m *FormModel) SetValue(attribute string, value any) error {
	attr, err := m.lookup(attribute)
	if err != nil {
		return err
	}
	coerced, err := coerce(attr, value)
	if err != nil {
		return fmt.Errorf("model: set %q: %w", attribute, err)
	}
	m.store.set(attr, coerced)
	return nil
}

// Label returns the attribute label; unknown attributes get a generated one.
func (m *FormModel) Label(attribute string) string {
	attr, err := m.lookup(attribute)
	if err != nil {
		return Humanize(attribute)
	}
	return attr.label
}

// Labels returns every attribute label.
func (m *FormModel) Labels() map[string]string {
	out := make(map[string]string, len(m.order))
	for _, name := range m.order {
		out[name] = m.attributes[name].label
	}
	return out
}

// SetLabel overrides a label after construction, e.g. after translation.
func (m *FormModel) SetLabel(attribute, label string) error {
	attr, err := m.lookup(attribute)
	if err != nil {
		return err
	}
	attr.label = label
	return nil
}

// Hint returns the attribute hint.
func (m *FormModel) Hint(attribute string) string {
	if attr, err := m.lookup(attribute); err == nil {
		return attr.hint
	}
	return ""
}

// SetHint overrides a hint after construction.
func (m *FormModel) SetHint(attribute, hint string) error {
	attr, err := m.lookup(attribute)
	if err != nil {
		return err
	}
	attr.hint = hint
	return nil
}

// Placeholder returns the attribute placeholder.
func (m *FormModel) Placeholder(attribute string) string {
	if attr, err := m.lookup(attribute); err == nil {
		return attr.placeholder
	}
	return ""
}

// SetPlaceholder overrides a placeholder after construction.
func (m *FormModel) SetPlaceholder(attribute, placeholder string) error {
	attr, err := m.lookup(attribute)
	if err != nil {
		return err
	}
	attr.placeholder = placeholder
	return nil
}

// SetWidget overrides the widget name after construction.
func (m *FormModel) SetWidget(attribute, widget string) error {
	attr, err := m.lookup(attribute)
	if err != nil {
		return err
	}
	attr.widget = widget
	return nil
}

// LabelKey returns the translation key declared with the labelKey tag.
func (m *FormModel) LabelKey(attribute string) string {
	if attr, err := m.lookup(attribute); err == nil {
		return attr.labelKey
	}
	return ""
}

// HintKey returns the translation key declared with the hintKey tag.
func (m *FormModel) HintKey(attribute string) string {
	if attr, err := m.lookup(attribute); err == nil {
		return attr.hintKey
	}
	return ""
}

// Widget returns the widget name declared with the widget tag.
func (m *FormModel) Widget(attribute string) string {
	if attr, err := m.lookup(attribute); err == nil {
		return attr.widget
	}
	return ""
}

// Rules returns the rules attached to attribute.
func (m *FormModel) Rules(attribute string) []validation.Rule {
	attr, err := m.lookup(attribute)
	if err != nil {
		return nil
	}
	return append([]validation.Rule(nil), m.rules[attr.name]...)
}

// AllRules returns a copy of every rule keyed by attribute.
func (m *FormModel) AllRules() map[string][]validation.Rule {
	out := make(map[string][]validation.Rule, len(m.rules))
	for name, rules := range m.rules {
		out[name] = append([]validation.Rule(nil), rules...)
	}
	return out
}

// InputName returns the HTML name for attribute.
func (m *FormModel) InputName(attribute string) (string, error) {
	return markup.InputName(m.formName, attribute)
}

// InputID returns the HTML id for attribute.
func (m *FormModel) InputID(attribute string) (string, error) {
	return markup.InputID(m.formName, attribute)
}
