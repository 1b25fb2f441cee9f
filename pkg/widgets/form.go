package widgets

import (
	"sort"
	"strings"

	"github.com/goliatone/go-formkit/pkg/markup"
)

// MethodOverrideField carries the real verb when a browser form posts on
// behalf of PUT, PATCH or DELETE.
const MethodOverrideField = "_method"

// Button renders <button type="button">.
func Button(content string, opts ...Option) string {
	return button("button", content, newSettings(opts))
}

// SubmitButton renders <button type="submit">.
func SubmitButton(content string, opts ...Option) string {
	return button("submit", content, newSettings(opts))
}

// ResetButton renders <button type="reset">.
func ResetButton(content string, opts ...Option) string {
	return button("reset", content, newSettings(opts))
}

func button(buttonType, content string, s *settings) string {
	attrs := markup.Attributes{"type": buttonType}
	attrs.AddClass(s.cfg().ButtonClass)
	body := markup.Encode(content)
	if s.raw {
		body = SanitizeHTML(content)
	}
	return markup.Tag("button", body, attrs.Merge(s.attrs))
}

// BeginForm opens a <form>. Methods other than GET and POST are sent as POST
// with a hidden _method field. Hidden fields render sorted by name.
func BeginForm(action, method string, hidden map[string]string, opts ...Option) string {
	s := newSettings(opts)
	method = strings.ToUpper(strings.TrimSpace(method))
	fields := make(map[string]string, len(hidden)+1)
	for name, value := range hidden {
		if name = strings.TrimSpace(name); name != "" {
			fields[name] = value
		}
	}
	formMethod := "post"
	switch method {
	case "GET":
		formMethod = "get"
	case "", "POST":
	default:
		fields[MethodOverrideField] = method
	}

	attrs := markup.Attributes{"action": action, "method": formMethod}
	var out strings.Builder
	out.WriteString(markup.OpenTag("form", attrs.Merge(s.attrs)))

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		out.WriteByte('\n')
		out.WriteString(markup.VoidTag("input", markup.Attributes{"type": "hidden", "name": name, "value": fields[name]}))
	}
	return out.String()
}

// EndForm closes the form opened by BeginForm.
func EndForm() string {
	return markup.CloseTag("form")
}
