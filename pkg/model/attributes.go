package model

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"
	"unicode"
)

var timeType = reflect.TypeOf(time.Time{})

// attribute describes one bindable value.
type attribute struct {
	name  string
	typ   reflect.Type
	kind  Kind
	index []int
	// pointer marks scalar leaves declared as *T.
	pointer bool

	label       string
	hint        string
	placeholder string
	labelKey    string
	hintKey     string
	widget      string
}

// collectAttributes flattens the exported fields of t. visiting holds the
// struct types on the current path; a type nested inside itself fails with
// ErrUnsupportedType.
func collectAttributes(t reflect.Type, prefix string, index []int, visiting []reflect.Type, out *[]*attribute) error {
	visiting = append(visiting, t)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		tag := strings.TrimSpace(field.Tag.Get("form"))
		if tag == "-" {
			continue
		}

		fieldIndex := append(append([]int(nil), index...), i)
		fieldType := field.Type
		pointer := false
		if fieldType.Kind() == reflect.Pointer {
			fieldType = fieldType.Elem()
			pointer = true
		}

		if fieldType.Kind() == reflect.Struct && fieldType != timeType {
			nestedPrefix := prefix
			if !field.Anonymous || tag != "" {
				nestedPrefix = joinAttribute(prefix, attributeName(field.Name, tag))
			}
			if slices.Contains(visiting, fieldType) {
				return fmt.Errorf("%w: field %s.%s refers back to %s", ErrUnsupportedType, t.Name(), field.Name, fieldType)
			}
			if err := collectAttributes(fieldType, nestedPrefix, fieldIndex, visiting, out); err != nil {
				return err
			}
			continue
		}

		kind, ok := kindOf(fieldType)
		if !ok {
			return fmt.Errorf("%w: field %s.%s has type %s", ErrUnsupportedType, t.Name(), field.Name, field.Type)
		}

		*out = append(*out, &attribute{
			name:        joinAttribute(prefix, attributeName(field.Name, tag)),
			typ:         fieldType,
			kind:        kind,
			index:       fieldIndex,
			pointer:     pointer,
			label:       field.Tag.Get("label"),
			hint:        field.Tag.Get("hint"),
			placeholder: field.Tag.Get("placeholder"),
			labelKey:    field.Tag.Get("labelKey"),
			hintKey:     field.Tag.Get("hintKey"),
			widget:      field.Tag.Get("widget"),
		})
	}
	return nil
}

func kindOf(t reflect.Type) (Kind, bool) {
	if t == timeType {
		return KindTime, true
	}
	switch t.Kind() {
	case reflect.String:
		return KindString, true
	case reflect.Bool:
		return KindBool, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return KindInt, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return KindUint, true
	case reflect.Float32, reflect.Float64:
		return KindFloat, true
	case reflect.Slice:
		switch t.Elem().Kind() {
		case reflect.String:
			return KindStrings, true
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return KindInts, true
		}
	}
	return "", false
}

func typeForKind(kind Kind) (reflect.Type, bool) {
	switch kind {
	case KindString:
		return reflect.TypeOf(""), true
	case KindBool:
		return reflect.TypeOf(false), true
	case KindInt:
		return reflect.TypeOf(int(0)), true
	case KindUint:
		return reflect.TypeOf(uint(0)), true
	case KindFloat:
		return reflect.TypeOf(float64(0)), true
	case KindStrings:
		return reflect.TypeOf([]string(nil)), true
	case KindInts:
		return reflect.TypeOf([]int(nil)), true
	case KindTime:
		return timeType, true
	default:
		return nil, false
	}
}

func attributeName(fieldName, tag string) string {
	if name, _, _ := strings.Cut(tag, ","); strings.TrimSpace(name) != "" {
		return strings.TrimSpace(name)
	}
	return lowerCamel(fieldName)
}

// lowerCamel turns Go identifiers into attribute names: FirstName ->
// firstName, URLPath -> urlPath, ID -> id.
func lowerCamel(name string) string {
	runes := []rune(name)
	upper := 0
	for upper < len(runes) && unicode.IsUpper(runes[upper]) {
		upper++
	}
	switch {
	case upper == 0:
		return name
	case upper == len(runes):
		return strings.ToLower(name)
	case upper > 1:
		upper--
	}
	for i := 0; i < upper; i++ {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}

func joinAttribute(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

// Humanize generates a label from an attribute name: "firstName" -> "First
// Name", "user.email_address" -> "Email Address".
func Humanize(attribute string) string {
	if idx := strings.LastIndex(attribute, "."); idx >= 0 {
		attribute = attribute[idx+1:]
	}
	var words []string
	var current []rune
	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = current[:0]
		}
	}
	runes := []rune(attribute)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == ' ':
			flush()
			continue
		case unicode.IsUpper(r) && i > 0:
			prevLower := unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prevLower || (nextLower && unicode.IsUpper(runes[i-1])) {
				flush()
			}
		}
		current = append(current, r)
	}
	flush()

	for i, word := range words {
		wr := []rune(word)
		wr[0] = unicode.ToUpper(wr[0])
		words[i] = string(wr)
	}
	return strings.Join(words, " ")
}
