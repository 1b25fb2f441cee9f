package model

import (
	"errors"

	"github.com/goliatone/go-formkit/pkg/validation"
)

var (
	// ErrUnknownAttribute is returned when reading or writing an attribute the
	// model does not declare.
	ErrUnknownAttribute = errors.New("model: undefined attribute")
	// ErrUnsupportedType is returned at construction for fields whose type
	// cannot be bound to form input.
	ErrUnsupportedType = errors.New("model: unsupported attribute type")
	// ErrInvalidTarget is returned when New receives something other than a
	// non-nil struct pointer.
	ErrInvalidTarget = errors.New("model: target must be a non-nil pointer to a struct")
)

// Kind classifies attribute types for coercion and widget selection.
type Kind string

const (
	KindString  Kind = "string"
	KindBool    Kind = "bool"
	KindInt     Kind = "int"
	KindUint    Kind = "uint"
	KindFloat   Kind = "float"
	KindStrings Kind = "strings"
	KindInts    Kind = "ints"
	KindTime    Kind = "time"
)

// FormNamer overrides the default form name (the struct type name).
type FormNamer interface {
	FormName() string
}

// LabelProvider supplies attribute labels.
type LabelProvider interface {
	AttributeLabels() map[string]string
}

// HintProvider supplies attribute hints.
type HintProvider interface {
	AttributeHints() map[string]string
}

// PlaceholderProvider supplies attribute placeholders.
type PlaceholderProvider interface {
	AttributePlaceholders() map[string]string
}

// RuleProvider supplies validation rules keyed by attribute.
type RuleProvider interface {
	Rules() map[string][]validation.Rule
}

// Option customises a FormModel at construction.
type Option func(*config)

type config struct {
	formName     *string
	labels       map[string]string
	hints        map[string]string
	placeholders map[string]string
	rules        map[string][]validation.Rule
}

// WithFormName overrides the form name. An empty name makes input names flat.
func WithFormName(name string) Option {
	return func(cfg *config) {
		cfg.formName = &name
	}
}

// WithLabels overrides attribute labels.
func WithLabels(labels map[string]string) Option {
	return func(cfg *config) {
		cfg.labels = mergeStrings(cfg.labels, labels)
	}
}

// WithHints overrides attribute hints.
func WithHints(hints map[string]string) Option {
	return func(cfg *config) {
		cfg.hints = mergeStrings(cfg.hints, hints)
	}
}

// WithPlaceholders overrides attribute placeholders.
func WithPlaceholders(placeholders map[string]string) Option {
	return func(cfg *config) {
		cfg.placeholders = mergeStrings(cfg.placeholders, placeholders)
	}
}

// WithRules appends validation rules per attribute.
func WithRules(rules map[string][]validation.Rule) Option {
	return func(cfg *config) {
		if len(rules) == 0 {
			return
		}
		if cfg.rules == nil {
			cfg.rules = make(map[string][]validation.Rule, len(rules))
		}
		for attribute, list := range rules {
			cfg.rules[attribute] = append(cfg.rules[attribute], list...)
		}
	}
}

func mergeStrings(dst, src map[string]string) map[string]string {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for key, value := range src {
		dst[key] = value
	}
	return dst
}
