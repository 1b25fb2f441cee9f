package openapi

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/validation"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

// ErrComponentNotFound is returned when the document has no component schema
// with the requested name.
var ErrComponentNotFound = errors.New("openapi: component schema not found")

// maxDepth bounds nested object flattening; self-referencing schemas stop
// there.
const maxDepth = 8

// Schema is the form-facing view of a component schema.
type Schema struct {
	// Attributes are sorted by name; nested object properties are flattened
	// with dots ("address.city").
	Attributes []model.DynamicAttribute
	Rules      map[string][]validation.Rule
	// Labels come from property titles.
	Labels map[string]string
	// Items holds enum values for attributes rendered as choices.
	Items map[string][]string
}

// Load parses an OpenAPI document and resolves its local references.
func Load(ctx context.Context, data []byte) (*openapi3.T, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	return doc, nil
}

// Components lists the component schema names of doc, sorted.
func Components(doc *openapi3.T) []string {
	if doc == nil || doc.Components == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(doc.Components.Schemas))
}

// RulesFromDocument loads data and maps the named component schema.
func RulesFromDocument(ctx context.Context, data []byte, component string) (Schema, error) {
	doc, err := Load(ctx, data)
	if err != nil {
		return Schema{}, err
	}
	return FromComponent(doc, component)
}

// FromComponent maps the named component schema of doc.
func FromComponent(doc *openapi3.T, component string) (Schema, error) {
	component = strings.TrimSpace(component)
	if doc == nil || doc.Components == nil {
		return Schema{}, fmt.Errorf("%w: %q", ErrComponentNotFound, component)
	}
	ref, ok := doc.Components.Schemas[component]
	if !ok || ref == nil || ref.Value == nil {
		return Schema{}, fmt.Errorf("%w: %q", ErrComponentNotFound, component)
	}
	return FromSchema(ref.Value)
}

// FromSchema maps an object schema. Non-object schemas are rejected.
func FromSchema(schema *openapi3.Schema) (Schema, error) {
	if schema == nil || len(schema.Properties) == 0 {
		return Schema{}, errors.New("openapi: schema declares no properties")
	}
	out := Schema{
		Rules:  make(map[string][]validation.Rule),
		Labels: make(map[string]string),
		Items:  make(map[string][]string),
	}
	if err := out.collect(schema, "", 0, nil); err != nil {
		return Schema{}, err
	}
	slices.SortFunc(out.Attributes, func(a, b model.DynamicAttribute) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out, nil
}

func (s *Schema) collect(schema *openapi3.Schema, prefix string, depth int, visiting []*openapi3.Schema) error {
	if depth > maxDepth || slices.Contains(visiting, schema) {
		return nil
	}
	visiting = append(visiting, schema)

	for _, name := range slices.Sorted(maps.Keys(schema.Properties)) {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		property := ref.Value
		attribute := name
		if prefix != "" {
			attribute = prefix + "." + name
		}

		if schemaType(property) == openapi3.TypeObject && len(property.Properties) > 0 {
			if err := s.collect(property, attribute, depth+1, visiting); err != nil {
				return err
			}
			continue
		}

		kind, ok := kindOf(property)
		if !ok {
			return fmt.Errorf("openapi: property %q has unsupported type %q", attribute, schemaType(property))
		}
		decl := model.DynamicAttribute{
			Name:    attribute,
			Kind:    kind,
			Label:   strings.TrimSpace(property.Title),
			Hint:    strings.TrimSpace(property.Description),
			Default: property.Default,
		}
		if decl.Label != "" {
			s.Labels[attribute] = decl.Label
		}
		if property.Format == "date-time" {
			decl.Widget = widgets.WidgetDateTime
		}

		enum := enumValues(property)
		if len(enum) > 0 {
			s.Items[attribute] = enum
			if kind == model.KindStrings || kind == model.KindInts {
				decl.Widget = widgets.WidgetCheckboxList
			}
		}

		s.Attributes = append(s.Attributes, decl)
		if rules := rulesFor(property, slices.Contains(schema.Required, name), enum, kind); len(rules) > 0 {
			s.Rules[attribute] = rules
		}
	}
	return nil
}

// Form builds a map-backed form model for the schema.
func (s Schema) Form(formName string, opts ...model.Option) (*model.FormModel, error) {
	opts = append([]model.Option{model.WithRules(s.Rules)}, opts...)
	return model.NewDynamic(formName, s.Attributes, opts...)
}

// FieldOptions returns the enum items as widget options keyed by attribute.
func (s Schema) FieldOptions() map[string][]widgets.Option {
	out := make(map[string][]widgets.Option, len(s.Items))
	for attribute, values := range s.Items {
		out[attribute] = []widgets.Option{widgets.WithItems(widgets.ItemsOf(values...)...)}
	}
	return out
}

func schemaType(schema *openapi3.Schema) string {
	if schema.Type == nil {
		return ""
	}
	for _, value := range schema.Type.Slice() {
		if value != openapi3.TypeNull {
			return value
		}
	}
	return ""
}

func kindOf(schema *openapi3.Schema) (model.Kind, bool) {
	switch schemaType(schema) {
	case openapi3.TypeString, "":
		switch schema.Format {
		case "date", "date-time":
			return model.KindTime, true
		}
		return model.KindString, true
	case openapi3.TypeInteger:
		return model.KindInt, true
	case openapi3.TypeNumber:
		return model.KindFloat, true
	case openapi3.TypeBoolean:
		return model.KindBool, true
	case openapi3.TypeArray:
		if schema.Items == nil || schema.Items.Value == nil {
			return model.KindStrings, true
		}
		switch schemaType(schema.Items.Value) {
		case openapi3.TypeString, "":
			return model.KindStrings, true
		case openapi3.TypeInteger:
			return model.KindInts, true
		}
	}
	return "", false
}

func enumValues(schema *openapi3.Schema) []string {
	source := schema.Enum
	if len(source) == 0 && schemaType(schema) == openapi3.TypeArray && schema.Items != nil && schema.Items.Value != nil {
		source = schema.Items.Value.Enum
	}
	out := make([]string, 0, len(source))
	for _, value := range source {
		if value == nil {
			continue
		}
		out = append(out, formatEnum(value))
	}
	return out
}

func formatEnum(value any) string {
	if number, ok := value.(float64); ok {
		return strconv.FormatFloat(number, 'f', -1, 64)
	}
	return fmt.Sprint(value)
}

func rulesFor(schema *openapi3.Schema, required bool, enum []string, kind model.Kind) []validation.Rule {
	var rules []validation.Rule
	if required {
		rules = append(rules, validation.Required())
	}
	if schema.MinLength > 0 {
		rules = append(rules, validation.MinLength(int(schema.MinLength)))
	}
	if schema.MaxLength != nil {
		rules = append(rules, validation.MaxLength(int(*schema.MaxLength)))
	}
	if schema.Min != nil {
		rules = append(rules, validation.Min(*schema.Min))
	}
	if schema.Max != nil {
		rules = append(rules, validation.Max(*schema.Max))
	}
	if pattern := strings.TrimSpace(schema.Pattern); pattern != "" {
		rules = append(rules, validation.Pattern(pattern))
	}
	switch schema.Format {
	case "email":
		rules = append(rules, validation.Email())
	case "uri", "url":
		rules = append(rules, validation.URL())
	}
	if len(enum) > 0 && kind != model.KindStrings && kind != model.KindInts {
		rules = append(rules, validation.In(enum...))
	}
	return rules
}
