package validation

import (
	"fmt"
	"net/mail"
	"net/url"
	"reflect"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

// DataSet is the read side of a form model the validator needs.
type DataSet interface {
	Value(attribute string) (any, error)
	Label(attribute string) string
}

// Result collects error messages keyed by attribute.
type Result struct {
	Errors map[string][]string
}

// Valid reports whether no errors were recorded.
func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

// ErrorsFor returns the messages recorded for attribute.
func (r Result) ErrorsFor(attribute string) []string {
	if r.Errors == nil {
		return nil
	}
	return r.Errors[attribute]
}

func (r *Result) add(attribute, message string) {
	if r.Errors == nil {
		r.Errors = make(map[string][]string)
	}
	r.Errors[attribute] = append(r.Errors[attribute], message)
}

var defaultMessages = map[string]string{
	RuleRequired:  "{label} cannot be blank.",
	RuleMin:       "{label} must be no less than {min}.",
	RuleMax:       "{label} must be no greater than {max}.",
	RuleMinLength: "{label} should contain at least {min} characters.",
	RuleMaxLength: "{label} should contain at most {max} characters.",
	RulePattern:   "{label} is invalid.",
	RuleEmail:     "{label} is not a valid email address.",
	RuleURL:       "{label} is not a valid URL.",
	RuleInteger:   "{label} must be an integer.",
	RuleNumber:    "{label} must be a number.",
	RuleIn:        "{label} is invalid.",
	RuleCompare:   "{label} must be equal to \"{other}\".",
	RuleCustom:    "{label} is invalid.",
}

// DefaultMessage returns the message template used for kind.
func DefaultMessage(kind string) string {
	if msg, ok := defaultMessages[kind]; ok {
		return msg
	}
	return "{label} is invalid."
}

// Validate runs every rule against data. Rules other than "required" skip
// empty values. Attributes unknown to data are skipped.
func Validate(data DataSet, rules map[string][]Rule) Result {
	var result Result
	if data == nil || len(rules) == 0 {
		return result
	}

	attributes := make([]string, 0, len(rules))
	for attribute := range rules {
		attributes = append(attributes, attribute)
	}
	slices.Sort(attributes)

	for _, attribute := range attributes {
		value, err := data.Value(attribute)
		if err != nil {
			continue
		}
		for _, rule := range rules[attribute] {
			if rule.Kind != RuleRequired && IsEmpty(value) {
				continue
			}
			if message, failed := check(data, attribute, value, rule); failed {
				result.add(attribute, message)
			}
		}
	}
	return result
}

// ValidateValue runs rules against a single value.
func ValidateValue(label string, value any, rules ...Rule) []string {
	data := singleValue{label: label, value: value}
	result := Validate(data, map[string][]Rule{"value": rules})
	return result.ErrorsFor("value")
}

type singleValue struct {
	label string
	value any
}

func (s singleValue) Value(string) (any, error) { return s.value, nil }
func (s singleValue) Label(string) string       { return s.label }

func check(data DataSet, attribute string, value any, rule Rule) (string, bool) {
	var (
		ok     bool
		tokens = map[string]string{}
		custom string
	)

	switch rule.Kind {
	case RuleRequired:
		ok = !IsEmpty(value)
	case RuleMinLength:
		tokens["min"] = rule.Param("value")
		limit, err := strconv.Atoi(tokens["min"])
		ok = err != nil || utf8.RuneCountInString(toString(value)) >= limit
	case RuleMaxLength:
		tokens["max"] = rule.Param("value")
		limit, err := strconv.Atoi(tokens["max"])
		ok = err != nil || utf8.RuneCountInString(toString(value)) <= limit
	case RuleMin:
		tokens["min"] = rule.Param("value")
		ok = compareNumber(value, tokens["min"], func(v, limit float64) bool { return v >= limit })
	case RuleMax:
		tokens["max"] = rule.Param("value")
		ok = compareNumber(value, tokens["max"], func(v, limit float64) bool { return v <= limit })
	case RulePattern:
		expr, err := compilePattern(rule.Param("pattern"))
		ok = err == nil && expr.MatchString(toString(value))
		if rule.Param("not") == "true" && err == nil {
			ok = !ok
		}
	case RuleEmail:
		ok = isEmail(toString(value))
	case RuleURL:
		ok = isURL(toString(value))
	case RuleInteger:
		ok = isInteger(value)
	case RuleNumber:
		_, ok = toFloat(value)
	case RuleIn:
		ok = inValues(value, rule.Values)
	case RuleCompare:
		other := rule.Param("attribute")
		tokens["other"] = data.Label(other)
		otherValue, err := data.Value(other)
		ok = err == nil && toString(value) == toString(otherValue)
	case RuleCustom:
		if rule.Check == nil {
			return "", false
		}
		custom = rule.Check(value)
		ok = custom == ""
	default:
		return "", false
	}

	if ok {
		return "", false
	}

	message := rule.Message
	if message == "" {
		message = custom
	}
	if message == "" {
		message = DefaultMessage(rule.Kind)
	}
	tokens["label"] = data.Label(attribute)
	tokens["value"] = toString(value)
	return formatMessage(message, tokens), true
}

func formatMessage(message string, tokens map[string]string) string {
	pairs := make([]string, 0, len(tokens)*2)
	for key, value := range tokens {
		pairs = append(pairs, "{"+key+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(message)
}

// IsEmpty reports whether value counts as blank: nil, whitespace-only
// strings, empty slices and maps, nil pointers and the zero time.
func IsEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case time.Time:
		return v.IsZero()
	case bool:
		return false
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

func toString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []string:
		return strings.Join(v, ",")
	case float64:
		return formatFloat(v)
	case float32:
		return formatFloat(float64(v))
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return v.Format("2006-01-02")
	default:
		return fmt.Sprint(v)
	}
}

func toFloat(value any) (float64, bool) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.String:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(rv.String()), 64)
		return parsed, err == nil
	default:
		return 0, false
	}
}

func compareNumber(value any, limitRaw string, cmp func(v, limit float64) bool) bool {
	limit, err := strconv.ParseFloat(limitRaw, 64)
	if err != nil {
		return true
	}
	number, ok := toFloat(value)
	if !ok {
		return false
	}
	return cmp(number, limit)
}

var integerExpr = regexp.MustCompile(`^\s*[+-]?\d+\s*$`)

func isInteger(value any) bool {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f == float64(int64(f))
	case reflect.String:
		return integerExpr.MatchString(rv.String())
	default:
		return false
	}
}

func isEmail(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	addr, err := mail.ParseAddress(value)
	if err != nil {
		return false
	}
	return addr.Address == value && strings.Contains(value[strings.LastIndex(value, "@")+1:], ".")
}

func isURL(value string) bool {
	parsed, err := url.ParseRequestURI(strings.TrimSpace(value))
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

func inValues(value any, allowed []string) bool {
	if values, ok := value.([]string); ok {
		for _, item := range values {
			if !slices.Contains(allowed, item) {
				return false
			}
		}
		return true
	}
	return slices.Contains(allowed, toString(value))
}

var patternCache sync.Map

func compilePattern(expr string) (*regexp.Regexp, error) {
	if cached, ok := patternCache.Load(expr); ok {
		return cached.(*regexp.Regexp), nil
	}
	compiled, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	patternCache.Store(expr, compiled)
	return compiled, nil
}
