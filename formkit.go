package formkit

import (
	"context"
	"errors"
	"fmt"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formkit/components/timezones"
	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/openapi"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/renderers/tui"
	"github.com/goliatone/go-formkit/pkg/renderers/vanilla"
	"github.com/goliatone/go-formkit/pkg/uiconfig"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

// RenderOptions describes per-request overrides that renderers can use to
// surface server-side validation errors or limit the rendered fields.
type RenderOptions = render.RenderOptions

// DefaultRenderer is used when Render is called without a renderer name.
const DefaultRenderer = vanilla.Name

// Option configures a Generator.
type Option func(*config)

type config struct {
	vanilla  []vanilla.Option
	tui      []tui.Option
	theme    *theme.RendererConfig
	ui       *uiconfig.Store
	widget   *widgets.Config
	renderer string
	extra    []render.Renderer
}

// WithVanillaOptions forwards options to the HTML renderer.
func WithVanillaOptions(opts ...vanilla.Option) Option {
	return func(c *config) {
		c.vanilla = append(c.vanilla, opts...)
	}
}

// WithTUIOptions forwards options to the terminal renderer.
func WithTUIOptions(opts ...tui.Option) Option {
	return func(c *config) {
		c.tui = append(c.tui, opts...)
	}
}

// WithTheme sets the theme used when a request does not carry one.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(c *config) {
		c.theme = cfg
	}
}

// WithUIConfig applies per-form overrides (order, labels, items) looked up by
// form name.
func WithUIConfig(store *uiconfig.Store) Option {
	return func(c *config) {
		c.ui = store
	}
}

// WithWidgetConfig sets the widget configuration used when a request does not
// carry one.
func WithWidgetConfig(cfg widgets.Config) Option {
	return func(c *config) {
		c.widget = &cfg
	}
}

// WithDefaultRenderer changes the renderer used when none is named.
func WithDefaultRenderer(name string) Option {
	return func(c *config) {
		c.renderer = name
	}
}

// WithRenderer registers an additional renderer.
func WithRenderer(renderer render.Renderer) Option {
	return func(c *config) {
		if renderer != nil {
			c.extra = append(c.extra, renderer)
		}
	}
}

// Generator binds a renderer registry to shared defaults.
type Generator struct {
	registry *render.Registry
	theme    *theme.RendererConfig
	ui       *uiconfig.Store
	widget   *widgets.Config
}

// New builds a generator with the vanilla and tui renderers registered.
func New(opts ...Option) (*Generator, error) {
	cfg := config{renderer: DefaultRenderer}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	registry, err := DefaultWidgets()
	if err != nil {
		return nil, err
	}
	html, err := vanilla.New(append([]vanilla.Option{vanilla.WithRegistry(registry)}, cfg.vanilla...)...)
	if err != nil {
		return nil, fmt.Errorf("formkit: vanilla renderer: %w", err)
	}
	terminal, err := tui.New(cfg.tui...)
	if err != nil {
		return nil, fmt.Errorf("formkit: tui renderer: %w", err)
	}

	renderers := render.NewRegistry()
	for _, renderer := range append([]render.Renderer{html, terminal}, cfg.extra...) {
		if err := renderers.Register(renderer); err != nil {
			return nil, fmt.Errorf("formkit: %w", err)
		}
	}
	if err := renderers.SetDefault(cfg.renderer); err != nil {
		return nil, fmt.Errorf("formkit: default renderer: %w", err)
	}

	return &Generator{
		registry: renderers,
		theme:    cfg.theme,
		ui:       cfg.ui,
		widget:   cfg.widget,
	}, nil
}

// DefaultWidgets returns the built-in widgets plus the timezone select.
func DefaultWidgets() (*widgets.Registry, error) {
	registry := widgets.NewDefaultRegistry()
	if err := timezones.Register(registry); err != nil {
		return nil, fmt.Errorf("formkit: register %s widget: %w", timezones.Widget, err)
	}
	return registry, nil
}

// Registry exposes the underlying renderer registry.
func (g *Generator) Registry() *render.Registry {
	return g.registry
}

// Render renders form with the named renderer, or the default one when name
// is empty. Generator defaults fill the options the request leaves unset.
func (g *Generator) Render(ctx context.Context, name string, form *model.FormModel, options RenderOptions) ([]byte, error) {
	if form == nil {
		return nil, errors.New("formkit: form model is nil")
	}
	if options.Theme == nil {
		options.Theme = g.theme
	}
	if options.Config == nil && g.widget != nil {
		widgetConfig := *g.widget
		options.Config = &widgetConfig
	}
	if g.ui != nil {
		if overrides, ok := g.ui.Form(form.FormName()); ok {
			options = overrides.Apply(options)
		}
	}
	return g.registry.Render(ctx, name, form, options)
}

// RenderHTML renders form with the default vanilla renderer.
func RenderHTML(ctx context.Context, form *model.FormModel, options RenderOptions) ([]byte, error) {
	gen, err := New()
	if err != nil {
		return nil, err
	}
	return gen.Render(ctx, vanilla.Name, form, options)
}

// GenerateHTML maps the named component schema of an OpenAPI document onto a
// form and renders it. Enum values become choice items.
func GenerateHTML(ctx context.Context, document []byte, component string, options RenderOptions, opts ...Option) ([]byte, error) {
	form, schema, err := FormFromOpenAPI(ctx, document, component)
	if err != nil {
		return nil, err
	}
	options.FieldOptions = mergeFieldOptions(schema.FieldOptions(), options.FieldOptions)

	gen, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return gen.Render(ctx, "", form, options)
}

// FormFromOpenAPI builds a form named after component from an OpenAPI
// document. The returned schema carries the enum items.
func FormFromOpenAPI(ctx context.Context, document []byte, component string, opts ...model.Option) (*model.FormModel, openapi.Schema, error) {
	schema, err := openapi.RulesFromDocument(ctx, document, component)
	if err != nil {
		return nil, openapi.Schema{}, err
	}
	form, err := schema.Form(component, opts...)
	if err != nil {
		return nil, openapi.Schema{}, err
	}
	return form, schema, nil
}

// mergeFieldOptions lets override options win per attribute; override items
// replace the enum items.
func mergeFieldOptions(base, overrides map[string][]widgets.Option) map[string][]widgets.Option {
	if len(overrides) == 0 {
		return base
	}
	out := make(map[string][]widgets.Option, len(base)+len(overrides))
	for attribute, opts := range base {
		out[attribute] = append([]widgets.Option(nil), opts...)
	}
	for attribute, opts := range overrides {
		out[attribute] = widgets.MergeOptions(out[attribute], opts)
	}
	return out
}
