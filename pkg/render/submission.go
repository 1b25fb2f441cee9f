package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-formkit/pkg/model"
)

// HiddenField is a hidden input emitted right after the opening form tag.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{Name: strings.TrimSpace(name), Value: fmt.Sprint(value)}
}

// CSRFToken carries a CSRF token under the backend's input name (for example
// "_csrf" or "csrf_token").
func CSRFToken(name, token string) HiddenField {
	return Hidden(name, token)
}

// AttributeField carries a model attribute that is not shown, such as a
// record id or an optimistic-locking version. It is named like the visible
// inputs (Signup[version]) so Load reads it back with the rest of the form.
func AttributeField(form *model.FormModel, attribute string) (HiddenField, error) {
	if form == nil {
		return HiddenField{}, fmt.Errorf("render: hidden attribute %q: form model is nil", attribute)
	}
	name, err := form.InputName(attribute)
	if err != nil {
		return HiddenField{}, err
	}
	value, err := form.Value(attribute)
	if err != nil {
		return HiddenField{}, err
	}

	field := HiddenField{Name: name}
	switch v := value.(type) {
	case nil:
	case time.Time:
		if !v.IsZero() {
			field.Value = v.Format(time.RFC3339)
		}
	default:
		field.Value = fmt.Sprint(v)
	}
	return field, nil
}

// MergeHiddenFields returns a copy of base with fields applied. Empty names
// are ignored; later fields win on name collisions.
func MergeHiddenFields(base map[string]string, fields ...HiddenField) map[string]string {
	out := make(map[string]string, len(base)+len(fields))
	for name, value := range base {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			out[trimmed] = value
		}
	}
	for _, field := range fields {
		if name := strings.TrimSpace(field.Name); name != "" {
			out[name] = field.Value
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
