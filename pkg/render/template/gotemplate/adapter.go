package gotemplate

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"reflect"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-formkit/pkg/markup"
	"github.com/goliatone/go-formkit/pkg/render/template"
)

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	templates fs.FS
	extension string
	funcs     map[string]any
}

// WithFS loads templates from files.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithExtension overrides the ".tpl" suffix added to template names.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		cfg.extension = trimmed
	}
}

// WithFuncs exposes helpers to every template. pongo2.FilterFunction values
// register as filters; other functions are callable by name.
func WithFuncs(funcs map[string]any) Option {
	return func(cfg *config) {
		if len(funcs) == 0 {
			return
		}
		if cfg.funcs == nil {
			cfg.funcs = make(map[string]any, len(funcs))
		}
		for name, fn := range funcs {
			if name = strings.TrimSpace(name); name != "" && fn != nil {
				cfg.funcs[name] = fn
			}
		}
	}
}

// Engine renders form templates with pongo2. Parsed files are cached by
// path. Besides the pongo2 builtins it provides the attrs, classes and trim
// filters.
type Engine struct {
	mu        sync.RWMutex
	set       *pongo2.TemplateSet
	templates map[string]*pongo2.Template
	extension string
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New constructs an Engine reading templates from the WithFS bundle.
func New(options ...Option) (*Engine, error) {
	cfg := &config{extension: ".tpl"}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}
	if cfg.templates == nil {
		return nil, errors.New("gotemplate: template fs.FS is required")
	}

	set := pongo2.NewSet("formkit", pongo2.NewFSLoader(cfg.templates))
	set.Globals = make(pongo2.Context)
	registerFilters()

	for name, fn := range cfg.funcs {
		if filter, ok := fn.(pongo2.FilterFunction); ok {
			if !pongo2.FilterExists(name) {
				if err := pongo2.RegisterFilter(name, filter); err != nil {
					return nil, fmt.Errorf("gotemplate: register filter %q: %w", name, err)
				}
			}
			continue
		}
		if reflect.ValueOf(fn).Kind() != reflect.Func {
			return nil, fmt.Errorf("gotemplate: helper %q is %T, not a function", name, fn)
		}
		set.Globals[name] = fn
	}

	return &Engine{
		set:       set,
		templates: make(map[string]*pongo2.Template),
		extension: cfg.extension,
	}, nil
}

// RenderTemplate renders the named template; the extension is optional.
func (e *Engine) RenderTemplate(name string, data map[string]any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	path := name
	if !strings.HasSuffix(path, e.extension) {
		path += e.extension
	}
	tmpl, err := e.load(path)
	if err != nil {
		return "", err
	}
	rendered, err := execute(tmpl, data, out)
	if err != nil {
		return "", fmt.Errorf("gotemplate: execute template %q: %w", path, err)
	}
	return rendered, nil
}

// RenderString renders inline template source. The source is not cached.
func (e *Engine) RenderString(source string, data map[string]any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	tmpl, err := e.set.FromString(source)
	if err != nil {
		return "", fmt.Errorf("gotemplate: parse template string: %w", err)
	}
	rendered, err := execute(tmpl, data, out)
	if err != nil {
		return "", fmt.Errorf("gotemplate: execute template string: %w", err)
	}
	return rendered, nil
}

func (e *Engine) load(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.templates[path]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.templates[path]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load template %q: %w", path, err)
	}
	e.templates[path] = tmpl
	return tmpl, nil
}

// execute renders into a buffer first so a failing template writes nothing
// to out.
func execute(tmpl *pongo2.Template, data map[string]any, out []io.Writer) (string, error) {
	ctx := pongo2.Context{}
	maps.Copy(ctx, data)

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(ctx, &buf); err != nil {
		return "", err
	}
	if len(out) > 0 {
		if _, err := io.MultiWriter(out...).Write(buf.Bytes()); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func registerFilters() {
	for name, fn := range map[string]pongo2.FilterFunction{
		"attrs":   filterAttrs,
		"classes": filterClasses,
		"trim":    filterTrim,
	} {
		if !pongo2.FilterExists(name) {
			_ = pongo2.RegisterFilter(name, fn)
		}
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// filterAttrs renders an attribute map with markup ordering and escaping:
// <input{{ attrs|attrs }}>.
func filterAttrs(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	switch attrs := in.Interface().(type) {
	case markup.Attributes:
		return pongo2.AsSafeValue(markup.RenderAttributes(attrs)), nil
	case map[string]any:
		return pongo2.AsSafeValue(markup.RenderAttributes(markup.Attributes(attrs))), nil
	case map[string]string:
		converted := make(markup.Attributes, len(attrs))
		for key, value := range attrs {
			converted[key] = value
		}
		return pongo2.AsSafeValue(markup.RenderAttributes(converted)), nil
	default:
		return pongo2.AsValue(""), nil
	}
}

// filterClasses merges a class value with the parameter classes, dropping
// blanks and duplicates: {{ classes.fields|classes:"wide" }}.
func filterClasses(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	attrs := markup.Attributes{}
	classes := markup.ClassList(in.Interface())
	if param != nil && !param.IsNil() {
		classes = append(classes, markup.ClassList(param.Interface())...)
	}
	attrs.AddClass(classes...)
	return pongo2.AsValue(strings.Join(markup.ClassList(attrs["class"]), " ")), nil
}
