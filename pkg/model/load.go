package model

import (
	"errors"
	"net/url"
	"slices"
	"strings"
)

// Load assigns data scoped by FormName. With an empty form name data is read
// flat. It returns false when the scope is missing or data is empty.
func (m *FormModel) Load(data map[string]any) bool {
	return m.LoadScoped(data, m.formName)
}

// LoadScoped assigns data using an explicit scope; "" reads data flat.
func (m *FormModel) LoadScoped(data map[string]any, scope string) bool {
	scope = strings.TrimSpace(scope)
	values := data
	if scope != "" {
		raw, ok := data[scope]
		if !ok {
			return false
		}
		values = asMap(raw)
		if values == nil {
			return false
		}
	} else if len(data) == 0 {
		return false
	}

	m.assign("", values)
	m.validated = false
	return true
}

// LoadValues parses bracketed request keys (LoginForm[user][login]) and
// loads the result.
func (m *FormModel) LoadValues(values url.Values) bool {
	return m.Load(ParseValues(values))
}

func (m *FormModel) assign(prefix string, values map[string]any) {
	for key, value := range values {
		path := joinAttribute(prefix, strings.TrimSpace(key))
		if attr, ok := m.attributes[path]; ok {
			m.assignInput(attr, value)
			continue
		}
		if nested := asMap(value); nested != nil && m.hasPrefix(path+".") {
			m.assign(path, nested)
		}
	}
}

// Assign stores a single user-supplied value the way Load does: a coercion
// failure is recorded as the attribute error and reported as false.
func (m *FormModel) Assign(attribute string, value any) (bool, error) {
	attr, err := m.lookup(attribute)
	if err != nil {
		return false, err
	}
	m.assignInput(attr, value)
	_, failed := m.invalid[attr.name]
	return !failed, nil
}

func (m *FormModel) assignInput(attr *attribute, value any) {
	coerced, err := coerce(attr, value)
	if err != nil {
		m.store.set(attr, coerced)
		message := invalidMessage(attr)
		m.invalid[attr.name] = message
		m.errors[attr.name] = []string{message}
		return
	}
	if stale, ok := m.invalid[attr.name]; ok {
		delete(m.invalid, attr.name)
		m.errors[attr.name] = slices.DeleteFunc(m.errors[attr.name], func(message string) bool {
			return message == stale
		})
		if len(m.errors[attr.name]) == 0 {
			delete(m.errors, attr.name)
		}
	}
	m.store.set(attr, coerced)
}

func (m *FormModel) hasPrefix(prefix string) bool {
	for _, name := range m.order {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

func invalidMessage(attr *attribute) string {
	switch attr.kind {
	case KindInt, KindUint, KindInts:
		return attr.label + " must be an integer."
	case KindFloat:
		return attr.label + " must be a number."
	case KindBool:
		return attr.label + " must be either true or false."
	case KindTime:
		return attr.label + " is not a valid date."
	default:
		return attr.label + " is invalid."
	}
}

func asMap(value any) map[string]any {
	switch v := value.(type) {
	case map[string]any:
		return v
	case map[string]string:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = item
		}
		return out
	case map[string][]string:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = item
		}
		return out
	default:
		return nil
	}
}

var errMalformedKey = errors.New("model: malformed bracket key")

// ParseValues turns request values with bracketed keys into nested maps:
// "LoginForm[user][login]" becomes {"LoginForm": {"user": {"login": ...}}}.
// Every submitted value is kept; scalar attributes later read the last one.
func ParseValues(values url.Values) map[string]any {
	out := make(map[string]any, len(values))
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	for _, key := range keys {
		segments, err := splitBracketKey(key)
		if err != nil {
			continue
		}
		insertValue(out, segments, values[key])
	}
	return out
}

func splitBracketKey(key string) ([]string, error) {
	open := strings.IndexByte(key, '[')
	if open < 0 {
		return []string{key}, nil
	}
	segments := []string{key[:open]}
	rest := key[open:]
	for rest != "" {
		if rest[0] != '[' {
			return nil, errMalformedKey
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return nil, errMalformedKey
		}
		segment := rest[1:end]
		if segment != "" {
			segments = append(segments, segment)
		}
		rest = rest[end+1:]
	}
	if segments[0] == "" {
		return nil, errMalformedKey
	}
	return segments, nil
}

func insertValue(dst map[string]any, segments []string, value []string) {
	head := segments[0]
	if len(segments) == 1 {
		if existing, ok := dst[head].([]string); ok {
			dst[head] = append(existing, value...)
			return
		}
		dst[head] = append([]string(nil), value...)
		return
	}
	child, ok := dst[head].(map[string]any)
	if !ok {
		child = make(map[string]any)
		dst[head] = child
	}
	insertValue(child, segments[1:], value)
}
