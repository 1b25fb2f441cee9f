package markup

import (
	"encoding/json"
	"fmt"
	stdhtml "html"
	"slices"
	"sort"
	"strconv"
	"strings"
)

// Attributes is the options map merged into every rendered tag. Values may be
// strings, numbers, booleans, nil, []string (class lists) or nested maps under
// the "data" and "aria" keys.
type Attributes map[string]any

// attributeOrder lists attributes rendered before the alphabetical remainder.
var attributeOrder = []string{
	"type",
	"id",
	"class",
	"name",
	"value",
	"href",
	"src",
	"for",
	"title",
	"alt",
	"role",
}

var attributeRank = func() map[string]int {
	rank := make(map[string]int, len(attributeOrder))
	for idx, name := range attributeOrder {
		rank[name] = idx
	}
	return rank
}()

// Clone returns a shallow copy; nested data/aria maps and class slices are
// copied too so callers can mutate the result freely.
func (a Attributes) Clone() Attributes {
	if a == nil {
		return Attributes{}
	}
	out := make(Attributes, len(a))
	for key, value := range a {
		switch v := value.(type) {
		case []string:
			out[key] = slices.Clone(v)
		case map[string]any:
			nested := make(map[string]any, len(v))
			for nk, nv := range v {
				nested[nk] = nv
			}
			out[key] = nested
		default:
			out[key] = value
		}
	}
	return out
}

// Merge applies overrides on top of a copy of a. Override values win, except
// "class" which is concatenated and "data"/"aria" maps which merge per key.
func (a Attributes) Merge(overrides Attributes) Attributes {
	out := a.Clone()
	for key, value := range overrides {
		switch key {
		case "class":
			out["class"] = mergeClasses(ClassList(out["class"]), ClassList(value))
		case "data", "aria":
			existing, _ := out[key].(map[string]any)
			incoming := toAnyMap(value)
			if existing == nil {
				existing = make(map[string]any, len(incoming))
			}
			for nk, nv := range incoming {
				existing[nk] = nv
			}
			out[key] = existing
		default:
			out[key] = value
		}
	}
	return out
}

// AddClass appends classes, skipping blanks and duplicates.
func (a Attributes) AddClass(classes ...string) {
	if a == nil {
		return
	}
	merged := mergeClasses(ClassList(a["class"]), classes)
	if len(merged) == 0 {
		delete(a, "class")
		return
	}
	a["class"] = merged
}

// HasClass reports whether class is present in the class list.
func (a Attributes) HasClass(class string) bool {
	return slices.Contains(ClassList(a["class"]), strings.TrimSpace(class))
}

// SetDefault stores value under key unless the key already exists.
func (a Attributes) SetDefault(key string, value any) {
	if a == nil {
		return
	}
	if _, exists := a[key]; exists {
		return
	}
	a[key] = value
}

// String renders the attribute list, see RenderAttributes.
func (a Attributes) String() string {
	return RenderAttributes(a)
}

// ClassList normalises a class value (string, []string or nil) into tokens.
func ClassList(value any) []string {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		return strings.Fields(v)
	case []string:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, strings.Fields(item)...)
		}
		return out
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, strings.Fields(fmt.Sprint(item))...)
		}
		return out
	default:
		return strings.Fields(fmt.Sprint(v))
	}
}

func mergeClasses(base []string, extra []string) []string {
	out := make([]string, 0, len(base)+len(extra))
	seen := make(map[string]struct{}, len(base)+len(extra))
	for _, list := range [][]string{base, extra} {
		for _, class := range list {
			for _, token := range strings.Fields(class) {
				if _, exists := seen[token]; exists {
					continue
				}
				seen[token] = struct{}{}
				out = append(out, token)
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func toAnyMap(value any) map[string]any {
	switch v := value.(type) {
	case map[string]any:
		return v
	case map[string]string:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = item
		}
		return out
	case Attributes:
		return map[string]any(v)
	default:
		return nil
	}
}

// RenderAttributes renders attrs as ` name="value"` pairs. Priority attributes
// come first in a fixed order, the rest follow sorted by name. Boolean true
// renders a bare attribute; false and nil values are omitted.
func RenderAttributes(attrs Attributes) string {
	if len(attrs) == 0 {
		return ""
	}

	flat := make(map[string]any, len(attrs))
	for key, value := range attrs {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if key == "data" || key == "aria" {
			for nested, nestedValue := range toAnyMap(value) {
				flat[key+"-"+nested] = nestedValue
			}
			continue
		}
		flat[key] = value
	}

	names := make([]string, 0, len(flat))
	for name := range flat {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ri, iok := attributeRank[names[i]]
		rj, jok := attributeRank[names[j]]
		switch {
		case iok && jok:
			return ri < rj
		case iok:
			return true
		case jok:
			return false
		default:
			return names[i] < names[j]
		}
	})

	var builder strings.Builder
	for _, name := range names {
		writeAttribute(&builder, name, flat[name])
	}
	return builder.String()
}

func writeAttribute(builder *strings.Builder, name string, value any) {
	if name == "class" {
		classes := ClassList(value)
		if len(classes) == 0 {
			return
		}
		value = strings.Join(classes, " ")
	}

	var rendered string
	switch v := value.(type) {
	case nil:
		return
	case bool:
		if v {
			builder.WriteByte(' ')
			builder.WriteString(name)
		}
		return
	case string:
		rendered = v
	case []string:
		rendered = strings.Join(v, " ")
	case int:
		rendered = strconv.Itoa(v)
	case int64:
		rendered = strconv.FormatInt(v, 10)
	case float64:
		rendered = strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		rendered = strconv.FormatFloat(float64(v), 'f', -1, 32)
	case fmt.Stringer:
		rendered = v.String()
	case map[string]any, []any:
		payload, err := json.Marshal(v)
		if err != nil {
			return
		}
		rendered = string(payload)
	default:
		rendered = fmt.Sprint(v)
	}

	builder.WriteByte(' ')
	builder.WriteString(name)
	builder.WriteString(`="`)
	builder.WriteString(stdhtml.EscapeString(rendered))
	builder.WriteByte('"')
}
