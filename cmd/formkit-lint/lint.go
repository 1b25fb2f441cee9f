package main

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sort"
	"strings"

	"github.com/goliatone/go-formkit/pkg/openapi"
	"github.com/goliatone/go-formkit/pkg/uiconfig"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

type violation struct {
	file     string
	location string
	message  string
}

// componentAttributes maps every mappable component schema to its attribute
// names. Components that cannot back a form are left out.
func componentAttributes(ctx context.Context, data []byte) (map[string][]string, error) {
	doc, err := openapi.Load(ctx, data)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]string)
	for _, name := range openapi.Components(doc) {
		schema, err := openapi.FromComponent(doc, name)
		if err != nil {
			continue
		}
		attributes := make([]string, 0, len(schema.Attributes))
		for _, attribute := range schema.Attributes {
			attributes = append(attributes, attribute.Name)
		}
		out[name] = attributes
	}
	return out, nil
}

// lintStore checks widget names against registry and, when
// components is non-nil, attribute names against the component schema named
// after each form.
func lintStore(store *uiconfig.Store, components map[string][]string, registry *widgets.Registry) []violation {
	var result []violation

	for _, name := range store.FormNames() {
		form, _ := store.Form(name)
		base := []string{"forms", name}

		var known []string
		if components != nil {
			attributes, ok := components[name]
			if !ok {
				result = append(result, violation{
					file:     form.Source,
					location: formatLocation(base),
					message:  fmt.Sprintf("no component schema named %q", name),
				})
			}
			known = attributes
		}

		for idx, attribute := range form.Order {
			if known != nil && !slices.Contains(known, attribute) {
				result = append(result, violation{
					file:     form.Source,
					location: formatLocation(appendPath(base, fmt.Sprintf("order[%d]", idx))),
					message:  fmt.Sprintf("unknown attribute %q", attribute),
				})
			}
		}

		for _, attribute := range slices.Sorted(maps.Keys(form.Fields)) {
			field := form.Fields[attribute]
			location := appendPath(base, "fields."+attribute)
			if known != nil && !slices.Contains(known, attribute) {
				result = append(result, violation{
					file:     form.Source,
					location: formatLocation(location),
					message:  fmt.Sprintf("unknown attribute %q", attribute),
				})
			}
			if field.Widget != "" {
				if _, ok := registry.Descriptor(field.Widget); !ok {
					result = append(result, violation{
						file:     form.Source,
						location: formatLocation(appendPath(location, "widget")),
						message:  fmt.Sprintf("unsupported widget %q (supported: %s)", field.Widget, strings.Join(registry.Names(), ", ")),
					})
				}
			}
			if field.Prompt != "" && len(field.Items) == 0 {
				result = append(result, violation{
					file:     form.Source,
					location: formatLocation(appendPath(location, "prompt")),
					message:  "prompt has no effect without items",
				})
			}
		}
	}
	return result
}

func sortViolations(violations []violation) {
	sort.Slice(violations, func(i, j int) bool {
		if violations[i].file == violations[j].file {
			if violations[i].location == violations[j].location {
				return violations[i].message < violations[j].message
			}
			return violations[i].location < violations[j].location
		}
		return violations[i].file < violations[j].file
	})
}

func appendPath(path []string, segment string) []string {
	next := append([]string(nil), path...)
	next = append(next, segment)
	return next
}

func formatLocation(path []string) string {
	return strings.Join(path, " > ")
}
