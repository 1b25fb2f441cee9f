package tui

import (
	"fmt"
	"strings"
)

// OutputFormat selects how the answers collected for a form are encoded.
type OutputFormat string

const (
	// OutputFormatJSON encodes answers as a JSON object keyed by attribute.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded encodes answers the way a browser submits
	// the HTML form, keyed by input name.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText lists "Label: value" lines for people to read.
	OutputFormatPrettyText OutputFormat = "pretty"
)

var outputFormatAliases = map[string]OutputFormat{
	"json":       OutputFormatJSON,
	"form":       OutputFormatFormURLEncoded,
	"urlencoded": OutputFormatFormURLEncoded,
	"pretty":     OutputFormatPrettyText,
	"text":       OutputFormatPrettyText,
}

// ParseOutputFormat reads a format name as given on a command line. Matching
// ignores case; "urlencoded" and "text" are accepted aliases.
func ParseOutputFormat(name string) (OutputFormat, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return OutputFormatJSON, nil
	}
	if format, ok := outputFormatAliases[key]; ok {
		return format, nil
	}
	return "", fmt.Errorf("tui: unsupported output format %q", name)
}

// ContentType is the media type of answers encoded in f.
func (f OutputFormat) ContentType() string {
	switch f {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

func (f OutputFormat) valid() bool {
	switch f {
	case OutputFormatJSON, OutputFormatFormURLEncoded, OutputFormatPrettyText:
		return true
	}
	return false
}

// Theme holds the prefixes put in front of prompt messages, info lines and
// validation errors.
type Theme struct {
	PromptPrefix string
	InfoPrefix   string
	ErrorPrefix  string
}

// SubmitTransformer rewrites the collected answers, keyed by attribute,
// before they are encoded.
type SubmitTransformer func(map[string]any) (map[string]any, error)

// Option configures a Renderer.
type Option func(*Renderer)

// WithPromptDriver replaces the terminal prompts, e.g. with scripted answers.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat picks the answer encoding. New rejects unknown formats.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithSubmitTransformer runs fn on the answers after the form validated.
func WithSubmitTransformer(fn SubmitTransformer) Option {
	return func(r *Renderer) {
		r.submitTransformer = fn
	}
}

func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}

// WithChoices restricts attribute to values, prompted as a select. Without
// it an attribute with an "in" rule offers the rule values.
func WithChoices(attribute string, values ...string) Option {
	return func(r *Renderer) {
		attribute = strings.TrimSpace(attribute)
		if attribute == "" {
			return
		}
		if r.choices == nil {
			r.choices = make(map[string][]string)
		}
		r.choices[attribute] = append([]string(nil), values...)
	}
}

// WithMaxAttempts bounds how often an attribute that fails validation is
// asked again before Render returns ErrTooManyAttempts.
func WithMaxAttempts(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.maxAttempts = n
		}
	}
}
