package model

import (
	"fmt"
	"strings"
)

// DynamicAttribute declares one attribute of a map-backed form model.
type DynamicAttribute struct {
	Name        string
	Kind        Kind
	Label       string
	Hint        string
	Placeholder string
	Widget      string
	Default     any
}

// NewDynamic builds a form model backed by a map instead of a struct, for
// forms whose shape is only known at runtime (for example, an OpenAPI
// component schema).
func NewDynamic(formName string, declared []DynamicAttribute, opts ...Option) (*FormModel, error) {
	attrs := make([]*attribute, 0, len(declared))
	seen := make(map[string]struct{}, len(declared))
	for _, decl := range declared {
		name := strings.TrimSpace(decl.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: empty attribute name", ErrUnknownAttribute)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("model: duplicate attribute %q", name)
		}
		seen[name] = struct{}{}

		kind := decl.Kind
		if kind == "" {
			kind = KindString
		}
		typ, ok := typeForKind(kind)
		if !ok {
			return nil, fmt.Errorf("%w: attribute %q has kind %q", ErrUnsupportedType, name, decl.Kind)
		}
		attrs = append(attrs, &attribute{
			name:        name,
			typ:         typ,
			kind:        kind,
			label:       decl.Label,
			hint:        decl.Hint,
			placeholder: decl.Placeholder,
			widget:      decl.Widget,
		})
	}

	store := mapStore{values: make(map[string]any, len(attrs))}
	form := newFormModel(strings.TrimSpace(formName), attrs, store)
	for _, decl := range declared {
		if decl.Default == nil {
			continue
		}
		if err := form.SetValue(strings.TrimSpace(decl.Name), decl.Default); err != nil {
			return nil, fmt.Errorf("model: default for %q: %w", decl.Name, err)
		}
	}
	if err := form.configure(nil, opts...); err != nil {
		return nil, err
	}
	return form, nil
}

// Values returns a snapshot of every attribute value keyed by name.
func (m *FormModel) Values() map[string]any {
	out := make(map[string]any, len(m.order))
	for _, name := range m.order {
		out[name] = m.store.get(m.attributes[name])
	}
	return out
}
