package widgets

import (
	"strings"

	"github.com/goliatone/go-formkit/pkg/markup"
	"github.com/goliatone/go-formkit/pkg/model"
)

// Label renders <label for="id">. The model label is escaped unless
// WithoutEncoding is given, in which case it is sanitized HTML.
func Label(form *model.FormModel, attribute string, opts ...Option) (string, error) {
	s := newSettings(opts)
	id, err := inputID(form, attribute)
	if err != nil {
		return "", err
	}
	attrs := markup.Attributes{"for": id}
	attrs.AddClass(s.cfg().LabelClass)
	return markup.Tag("label", labelText(form, attribute, s), attrs.Merge(s.attrs)), nil
}

func labelText(form *model.FormModel, attribute string, s *settings) string {
	text := form.Label(attribute)
	if s.content != nil {
		text = *s.content
	}
	if s.raw {
		return SanitizeHTML(text)
	}
	return markup.Encode(text)
}

func inputID(form *model.FormModel, attribute string) (string, error) {
	if _, err := form.Value(attribute); err != nil {
		return "", err
	}
	return form.InputID(attribute)
}

// Hint renders the attribute hint with id "{id}-hint". It returns "" when
// the attribute has no hint.
func Hint(form *model.FormModel, attribute string, opts ...Option) (string, error) {
	s := newSettings(opts)
	id, err := inputID(form, attribute)
	if err != nil {
		return "", err
	}
	text := form.Hint(attribute)
	if s.content != nil {
		text = *s.content
	}
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	var body string
	switch {
	case s.markdown:
		if body, err = RenderMarkdown(text); err != nil {
			return "", err
		}
	case s.raw:
		body = SanitizeHTML(text)
	default:
		body = markup.Encode(text)
	}

	cfg := s.cfg()
	attrs := markup.Attributes{"id": id + "-hint"}
	attrs.AddClass(cfg.HintClass)
	return markup.Tag(cfg.hintTag(), body, attrs.Merge(s.attrs)), nil
}

// Error renders the first error of attribute with id "{id}-error". It
// returns "" when the attribute has no errors.
func Error(form *model.FormModel, attribute string, opts ...Option) (string, error) {
	s := newSettings(opts)
	id, err := inputID(form, attribute)
	if err != nil {
		return "", err
	}
	message := form.FirstError(attribute)
	if message == "" {
		return "", nil
	}
	body := markup.Encode(message)
	if s.raw {
		body = SanitizeHTML(message)
	}
	cfg := s.cfg()
	attrs := markup.Attributes{"id": id + "-error"}
	attrs.AddClass(cfg.ErrorClass)
	return markup.Tag(cfg.errorTag(), body, attrs.Merge(s.attrs)), nil
}

// ErrorSummary lists model errors plus any WithExtraErrors messages. It
// returns "" when there is nothing to report.
func ErrorSummary(form *model.FormModel, opts ...Option) string {
	s := newSettings(opts)
	cfg := s.cfg()

	var messages []string
	seen := make(map[string]struct{})
	for _, message := range append(form.ErrorSummary(s.showAll), s.extraErrors...) {
		if strings.TrimSpace(message) == "" {
			continue
		}
		if _, dup := seen[message]; dup {
			continue
		}
		seen[message] = struct{}{}
		messages = append(messages, message)
	}
	if len(messages) == 0 {
		return ""
	}

	header := cfg.SummaryHeader
	if s.header != nil {
		header = *s.header
	}

	var body strings.Builder
	if header != "" {
		body.WriteString(markup.Tag("p", markup.Encode(header), nil))
	}
	body.WriteString("<ul>")
	for _, message := range messages {
		body.WriteString(markup.Tag("li", markup.Encode(message), nil))
	}
	body.WriteString("</ul>")

	attrs := markup.Attributes{"role": "alert"}
	attrs.AddClass(cfg.SummaryClass)
	return markup.Tag("div", body.String(), attrs.Merge(s.attrs))
}
