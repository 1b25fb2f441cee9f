package widgets

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-formkit/pkg/markup"
	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/validation"
)

// formatValue renders a model value for an input of inputType.
func formatValue(value any, inputType string) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "1"
		}
		return "0"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case time.Time:
		if v.IsZero() {
			return ""
		}
		switch inputType {
		case "date":
			return v.Format("2006-01-02")
		case "datetime-local":
			return v.Format("2006-01-02T15:04")
		case "time":
			return v.Format("15:04")
		default:
			return v.Format(time.RFC3339)
		}
	case []string:
		return strings.Join(v, ",")
	case []int:
		parts := make([]string, len(v))
		for idx, item := range v {
			parts[idx] = strconv.Itoa(item)
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(v)
	}
}

// selectedSet collects the values that mark options or list items selected.
func selectedSet(value any) map[string]struct{} {
	out := make(map[string]struct{})
	add := func(item string) {
		if item != "" {
			out[item] = struct{}{}
		}
	}
	switch v := value.(type) {
	case nil:
	case []string:
		for _, item := range v {
			add(item)
		}
	case []int:
		for _, item := range v {
			add(strconv.Itoa(item))
		}
	default:
		add(formatValue(v, ""))
	}
	return out
}

func isChecked(value any, checkedValue string) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	default:
		return formatValue(v, "") == checkedValue
	}
}

// baseAttributes computes id and name, plus the input class, rule-derived
// HTML5 attributes and validation state when stateful is set.
func baseAttributes(form *model.FormModel, attribute string, cfg Config, stateful bool) (markup.Attributes, error) {
	id, err := form.InputID(attribute)
	if err != nil {
		return nil, err
	}
	name, err := form.InputName(attribute)
	if err != nil {
		return nil, err
	}
	attrs := markup.Attributes{"id": id, "name": name}
	if !stateful {
		return attrs, nil
	}
	attrs.AddClass(cfg.InputClass)
	rules := form.Rules(attribute)
	if cfg.EnrichFromRules {
		attrs = attrs.Merge(validation.HTMLAttributes(rules))
	}
	if cfg.AriaRequired && validation.HasRule(rules, validation.RuleRequired) {
		attrs["aria-required"] = "true"
	}
	applyState(attrs, form, attribute, cfg)
	return attrs, nil
}

// applyState marks attrs invalid when the attribute has errors, or valid once
// the model passed validation for it. Classes are skipped when the config
// moves validation state to the container.
func applyState(attrs markup.Attributes, form *model.FormModel, attribute string, cfg Config) {
	switch {
	case form.HasError(attribute):
		attrs["aria-invalid"] = "true"
		if cfg.stateOnInput() {
			attrs.AddClass(cfg.InvalidClass)
		}
	case form.Validated():
		if cfg.stateOnInput() {
			attrs.AddClass(cfg.ValidClass)
		}
	}
}
