package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formkit/pkg/markup"
	"github.com/goliatone/go-formkit/pkg/model"
)

// Candidate describes the attribute a widget is being chosen for.
type Candidate struct {
	// Name is the bare attribute name, e.g. "user.email".
	Name     string
	Kind     model.Kind
	HasItems bool
}

// Matcher decides whether a widget should handle the candidate.
type Matcher func(Candidate) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Resolver picks a widget name for attributes that do not declare one.
// Higher priority wins; ties fall back to registration order.
type Resolver struct {
	mu    sync.RWMutex
	rules []rule
}

// NewResolver returns a resolver with the built-in matchers registered.
func NewResolver() *Resolver {
	r := &Resolver{}
	r.registerBuiltins()
	return r
}

var defaultResolver = sync.OnceValue(NewResolver)

// Register adds a matcher under name. Higher priority values take
// precedence.
func (r *Resolver) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget name for candidate.
func (r *Resolver) Resolve(candidate Candidate) (string, bool) {
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	if len(rules) == 0 {
		return "", false
	}
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(candidate) {
			return entry.name, true
		}
	}
	return "", false
}

func (r *Resolver) registerBuiltins() {
	r.Register(WidgetCheckbox, 90, func(c Candidate) bool {
		return c.Kind == model.KindBool
	})
	r.Register(WidgetCheckboxList, 85, func(c Candidate) bool {
		return c.HasItems && (c.Kind == model.KindStrings || c.Kind == model.KindInts)
	})
	r.Register(WidgetSelect, 80, func(c Candidate) bool {
		return c.HasItems
	})
	r.Register(WidgetPassword, 70, func(c Candidate) bool {
		return c.Kind == model.KindString && strings.Contains(leafName(c.Name), "password")
	})
	r.Register(WidgetEmail, 60, func(c Candidate) bool {
		return c.Kind == model.KindString && strings.Contains(leafName(c.Name), "email")
	})
	r.Register(WidgetDate, 60, func(c Candidate) bool {
		return c.Kind == model.KindTime
	})
	r.Register(WidgetNumber, 50, func(c Candidate) bool {
		switch c.Kind {
		case model.KindInt, model.KindUint, model.KindFloat:
			return true
		}
		return false
	})
	r.Register(WidgetURL, 40, func(c Candidate) bool {
		leaf := leafName(c.Name)
		return c.Kind == model.KindString && (strings.HasSuffix(leaf, "url") || leaf == "website")
	})
	r.Register(WidgetTel, 40, func(c Candidate) bool {
		return c.Kind == model.KindString && strings.Contains(leafName(c.Name), "phone")
	})
}

func leafName(name string) string {
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		name = name[idx+1:]
	}
	return strings.ToLower(name)
}

// resolveWidget picks the widget for attribute: explicit option, the model's
// widget tag, the resolver, then a text input.
func resolveWidget(form *model.FormModel, attribute string, s *settings) string {
	if widget := strings.TrimSpace(s.widget); widget != "" {
		return widget
	}
	if widget := strings.TrimSpace(form.Widget(attribute)); widget != "" {
		return widget
	}
	resolver := s.resolver
	if resolver == nil {
		resolver = defaultResolver()
	}
	name, _ := markup.AttributeName(attribute)
	candidate := Candidate{
		Name:     name,
		Kind:     form.Kind(attribute),
		HasItems: len(s.items) > 0 || len(s.groups) > 0,
	}
	if widget, ok := resolver.Resolve(candidate); ok {
		return widget
	}
	return WidgetText
}
