package widgets

import (
	"github.com/goliatone/go-formkit/pkg/markup"
)

// Option customises a single widget call.
type Option func(*settings)

// Item is one choice of a select, radio list or checkbox list.
type Item struct {
	Value      string
	Label      string
	Disabled   bool
	Attributes markup.Attributes
}

// Group is a labelled set of select options rendered as <optgroup>.
type Group struct {
	Label string
	Items []Item
}

// ItemsOf builds items whose label equals their value.
func ItemsOf(values ...string) []Item {
	items := make([]Item, 0, len(values))
	for _, value := range values {
		items = append(items, Item{Value: value, Label: value})
	}
	return items
}

type settings struct {
	config *Config
	attrs  markup.Attributes

	content  *string
	raw      bool
	markdown bool
	value    *string

	items    []Item
	groups   []Group
	prompt   *string
	multiple bool

	uncheck   *string
	noUncheck bool
	enclose   *bool

	widget   string
	registry *Registry
	resolver *Resolver

	labelOpts      []Option
	hintOpts       []Option
	errorOpts      []Option
	containerAttrs markup.Attributes
	template       *string

	extraErrors []string
	showAll     bool
	header      *string
}

func newSettings(opts []Option) *settings {
	s := &settings{attrs: markup.Attributes{}}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *settings) cfg() Config {
	if s.config == nil {
		cfg := DefaultConfig()
		s.config = &cfg
	}
	return *s.config
}

// WithConfig sets the class/layout configuration.
func WithConfig(cfg Config) Option {
	return func(s *settings) {
		s.config = &cfg
	}
}

// WithAttributes merges attrs over the computed defaults.
func WithAttributes(attrs markup.Attributes) Option {
	return func(s *settings) {
		s.attrs = s.attrs.Merge(attrs)
	}
}

// WithAttribute sets a single attribute.
func WithAttribute(name string, value any) Option {
	return func(s *settings) {
		s.attrs = s.attrs.Merge(markup.Attributes{name: value})
	}
}

// WithClass appends CSS classes.
func WithClass(classes ...string) Option {
	return func(s *settings) {
		s.attrs.AddClass(classes...)
	}
}

// WithID overrides the generated id.
func WithID(id string) Option {
	return func(s *settings) {
		s.attrs["id"] = id
	}
}

// WithName overrides the generated input name.
func WithName(name string) Option {
	return func(s *settings) {
		s.attrs["name"] = name
	}
}

// WithValue overrides the value read from the model.
func WithValue(value string) Option {
	return func(s *settings) {
		s.value = &value
	}
}

// WithContent replaces the text taken from the model (label, hint, button).
func WithContent(content string) Option {
	return func(s *settings) {
		s.content = &content
	}
}

// WithoutEncoding treats content as HTML. It is sanitized, not escaped.
func WithoutEncoding() Option {
	return func(s *settings) {
		s.raw = true
	}
}

// WithMarkdown renders hint content as sanitized Markdown.
func WithMarkdown() Option {
	return func(s *settings) {
		s.markdown = true
	}
}

// WithItems sets the choices for selects and lists.
func WithItems(items ...Item) Option {
	return func(s *settings) {
		s.items = append(s.items, items...)
	}
}

// MergeOptions returns base followed by overrides. Scalar settings in
// overrides win by order; items and groups, which accumulate, are replaced
// instead when overrides declare their own.
func MergeOptions(base, overrides []Option) []Option {
	out := append([]Option(nil), base...)
	if len(overrides) == 0 {
		return out
	}
	declared := newSettings(overrides)
	if declared.items != nil || declared.groups != nil {
		out = append(out, func(s *settings) {
			if declared.items != nil {
				s.items = nil
			}
			if declared.groups != nil {
				s.groups = nil
			}
		})
	}
	return append(out, overrides...)
}

// WithGroups adds <optgroup> sections to a select.
func WithGroups(groups ...Group) Option {
	return func(s *settings) {
		s.groups = append(s.groups, groups...)
	}
}

// WithPrompt prepends an empty-valued option to a select.
func WithPrompt(prompt string) Option {
	return func(s *settings) {
		s.prompt = &prompt
	}
}

// WithMultiple turns a select into a multi-select.
func WithMultiple() Option {
	return func(s *settings) {
		s.multiple = true
	}
}

// WithUncheckValue sets the hidden value sent when nothing is checked.
func WithUncheckValue(value string) Option {
	return func(s *settings) {
		s.uncheck = &value
		s.noUncheck = false
	}
}

// WithoutUncheckValue drops the hidden unchecked input.
func WithoutUncheckValue() Option {
	return func(s *settings) {
		s.noUncheck = true
	}
}

// WithEncloseByLabel controls whether checkboxes and radios are wrapped in
// their label.
func WithEncloseByLabel(enclose bool) Option {
	return func(s *settings) {
		s.enclose = &enclose
	}
}

// WithWidget forces the widget used by Field.
func WithWidget(name string) Option {
	return func(s *settings) {
		s.widget = name
	}
}

// WithRegistry sets the component registry used by Field.
func WithRegistry(registry *Registry) Option {
	return func(s *settings) {
		s.registry = registry
	}
}

// WithResolver sets the resolver used by Field when no widget is declared.
func WithResolver(resolver *Resolver) Option {
	return func(s *settings) {
		s.resolver = resolver
	}
}

// WithLabelOptions passes options to the label rendered by Field.
func WithLabelOptions(opts ...Option) Option {
	return func(s *settings) {
		s.labelOpts = append(s.labelOpts, opts...)
	}
}

// WithHintOptions passes options to the hint rendered by Field.
func WithHintOptions(opts ...Option) Option {
	return func(s *settings) {
		s.hintOpts = append(s.hintOpts, opts...)
	}
}

// WithErrorOptions passes options to the error rendered by Field.
func WithErrorOptions(opts ...Option) Option {
	return func(s *settings) {
		s.errorOpts = append(s.errorOpts, opts...)
	}
}

// WithContainerAttributes merges attrs into the field container.
func WithContainerAttributes(attrs markup.Attributes) Option {
	return func(s *settings) {
		s.containerAttrs = s.containerAttrs.Merge(attrs)
	}
}

// WithTemplate overrides the field template for one call.
func WithTemplate(template string) Option {
	return func(s *settings) {
		s.template = &template
	}
}

// WithExtraErrors adds form-level messages to an error summary.
func WithExtraErrors(messages ...string) Option {
	return func(s *settings) {
		s.extraErrors = append(s.extraErrors, messages...)
	}
}

// WithShowAllErrors lists every message per attribute in a summary.
func WithShowAllErrors() Option {
	return func(s *settings) {
		s.showAll = true
	}
}

// WithHeader overrides the error summary header.
func WithHeader(header string) Option {
	return func(s *settings) {
		s.header = &header
	}
}
