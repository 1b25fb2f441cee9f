package markup

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidAttribute is returned for attribute expressions that cannot be
// mapped to an input name.
var ErrInvalidAttribute = errors.New("markup: invalid attribute")

var attributeExpr = regexp.MustCompile(`^(.*\])?([\w.+\-]+)(\[.*)?$`)

// idReplacements run in sequence so "[]" is dropped before brackets collapse.
var idReplacements = [][2]string{
	{"[]", ""},
	{"][", "-"},
	{"[", "-"},
	{"]", ""},
	{" ", "-"},
	{".", "-"},
}

// ParseAttribute splits a tabular attribute expression such as "[0]name[1]"
// into its prefix ("[0]"), bare name ("name") and suffix ("[1]").
func ParseAttribute(attribute string) (prefix, name, suffix string, err error) {
	trimmed := strings.TrimSpace(attribute)
	match := attributeExpr.FindStringSubmatch(trimmed)
	if match == nil {
		return "", "", "", fmt.Errorf("%w: %q must contain word characters only", ErrInvalidAttribute, attribute)
	}
	return match[1], match[2], match[3], nil
}

// AttributeName returns the bare attribute name of a tabular expression.
func AttributeName(attribute string) (string, error) {
	_, name, _, err := ParseAttribute(attribute)
	return name, err
}

// InputName derives the HTML name for attribute inside the form scope
// formName. Dotted names expand into nested brackets:
//
//	InputName("LoginForm", "login")       // LoginForm[login]
//	InputName("LoginForm", "[0]login")    // LoginForm[0][login]
//	InputName("LoginForm", "user.login")  // LoginForm[user][login]
//	InputName("", "user.login")           // user[login]
func InputName(formName, attribute string) (string, error) {
	prefix, name, suffix, err := ParseAttribute(attribute)
	if err != nil {
		return "", err
	}
	formName = strings.TrimSpace(formName)

	segments := splitDotted(name)
	if formName == "" {
		if prefix != "" {
			return "", fmt.Errorf("%w: form name cannot be empty for tabular inputs", ErrInvalidAttribute)
		}
		head := segments[0]
		return head + bracketed(segments[1:]) + suffix, nil
	}
	return formName + prefix + bracketed(segments) + suffix, nil
}

// InputID derives a lower-cased id from the input name, collapsing brackets,
// dots and spaces into dashes.
func InputID(formName, attribute string) (string, error) {
	name, err := InputName(formName, attribute)
	if err != nil {
		return "", err
	}
	id := strings.ToLower(name)
	for _, pair := range idReplacements {
		id = strings.ReplaceAll(id, pair[0], pair[1])
	}
	return id, nil
}

func splitDotted(name string) []string {
	parts := strings.Split(name, ".")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	if len(out) == 0 {
		return []string{name}
	}
	return out
}

func bracketed(segments []string) string {
	var builder strings.Builder
	for _, segment := range segments {
		builder.WriteByte('[')
		builder.WriteString(segment)
		builder.WriteByte(']')
	}
	return builder.String()
}
