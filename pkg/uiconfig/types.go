package uiconfig

import (
	"maps"
	"slices"

	"github.com/goliatone/go-formkit/pkg/widgets"
)

// Store keeps the parsed configurations and form overrides.
type Store struct {
	configs map[string]entry
	forms   map[string]Form
}

type entry struct {
	config widgets.Config
	source string
}

// Form holds the overrides declared for one form name.
type Form struct {
	Name   string
	Source string
	// Order limits and orders the rendered attributes.
	Order  []string
	Fields map[string]FieldConfig
}

// FieldConfig overrides the presentation of a single attribute.
type FieldConfig struct {
	Label       string   `json:"label" yaml:"label"`
	Hint        string   `json:"hint" yaml:"hint"`
	Placeholder string   `json:"placeholder" yaml:"placeholder"`
	Widget      string   `json:"widget" yaml:"widget"`
	Items       []string `json:"items" yaml:"items"`
	Prompt      string   `json:"prompt" yaml:"prompt"`
	Class       string   `json:"class" yaml:"class"`
}

// Config returns the named widget configuration.
func (s *Store) Config(name string) (widgets.Config, bool) {
	if s == nil {
		return widgets.Config{}, false
	}
	e, ok := s.configs[name]
	return e.config, ok
}

// Source reports the file a configuration was loaded from.
func (s *Store) Source(name string) string {
	if s == nil {
		return ""
	}
	return s.configs[name].source
}

// Names lists the configuration names, sorted.
func (s *Store) Names() []string {
	if s == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(s.configs))
}

// Form returns the overrides declared for formName.
func (s *Store) Form(formName string) (Form, bool) {
	if s == nil {
		return Form{}, false
	}
	form, ok := s.forms[formName]
	return form, ok
}

// FormNames lists the form override names, sorted.
func (s *Store) FormNames() []string {
	if s == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(s.forms))
}

// Empty reports whether the store holds neither configurations nor forms.
func (s *Store) Empty() bool {
	return s == nil || (len(s.configs) == 0 && len(s.forms) == 0)
}
