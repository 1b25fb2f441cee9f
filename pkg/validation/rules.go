package validation

import (
	"strconv"
	"strings"
)

// Canonical rule identifiers. Numeric bounds and length limits encode their
// threshold in Params["value"]; pattern rules keep the expression in
// Params["pattern"]; compare rules name the other attribute in
// Params["attribute"].
const (
	RuleRequired  = "required"
	RuleMin       = "min"
	RuleMax       = "max"
	RuleMinLength = "minLength"
	RuleMaxLength = "maxLength"
	RulePattern   = "pattern"
	RuleEmail     = "email"
	RuleURL       = "url"
	RuleInteger   = "integer"
	RuleNumber    = "number"
	RuleIn        = "in"
	RuleCompare   = "compare"
	RuleCustom    = "custom"
)

// Rule is a single validation constraint attached to an attribute. Rules are
// plain data so widgets can also map them onto HTML5 attributes.
type Rule struct {
	Kind    string            `json:"kind" yaml:"kind"`
	Params  map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
	Values  []string          `json:"values,omitempty" yaml:"values,omitempty"`
	Message string            `json:"message,omitempty" yaml:"message,omitempty"`
	// Check backs custom rules: it returns an error message, or "" when the
	// value passes.
	Check func(value any) string `json:"-" yaml:"-"`
}

// WithMessage returns a copy of the rule using message instead of the default.
func (r Rule) WithMessage(message string) Rule {
	r.Message = message
	return r
}

// Param returns a trimmed parameter value.
func (r Rule) Param(key string) string {
	if r.Params == nil {
		return ""
	}
	return strings.TrimSpace(r.Params[key])
}

// Required rejects empty values (nil, "", empty slices).
func Required() Rule {
	return Rule{Kind: RuleRequired}
}

// MinLength requires at least n characters.
func MinLength(n int) Rule {
	return Rule{Kind: RuleMinLength, Params: map[string]string{"value": strconv.Itoa(n)}}
}

// MaxLength allows at most n characters.
func MaxLength(n int) Rule {
	return Rule{Kind: RuleMaxLength, Params: map[string]string{"value": strconv.Itoa(n)}}
}

// Min requires a numeric value of at least n.
func Min(n float64) Rule {
	return Rule{Kind: RuleMin, Params: map[string]string{"value": formatFloat(n)}}
}

// Max requires a numeric value of at most n.
func Max(n float64) Rule {
	return Rule{Kind: RuleMax, Params: map[string]string{"value": formatFloat(n)}}
}

// Pattern requires the value to match expr (RE2 syntax).
func Pattern(expr string) Rule {
	return Rule{Kind: RulePattern, Params: map[string]string{"pattern": expr}}
}

// Email requires a bare email address.
func Email() Rule {
	return Rule{Kind: RuleEmail}
}

// URL requires an absolute http or https URL.
func URL() Rule {
	return Rule{Kind: RuleURL}
}

// Integer requires a whole number.
func Integer() Rule {
	return Rule{Kind: RuleInteger}
}

// Number requires a numeric value.
func Number() Rule {
	return Rule{Kind: RuleNumber}
}

// In restricts the value to the provided set, compared as strings.
func In(values ...string) Rule {
	return Rule{Kind: RuleIn, Values: append([]string(nil), values...)}
}

// CompareTo requires the value to equal another attribute, e.g. a password
// confirmation.
func CompareTo(attribute string) Rule {
	return Rule{Kind: RuleCompare, Params: map[string]string{"attribute": attribute}}
}

// Func wraps a custom check.
func Func(check func(value any) string) Rule {
	return Rule{Kind: RuleCustom, Check: check}
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
