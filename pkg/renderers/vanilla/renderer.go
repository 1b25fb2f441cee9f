package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/render"
	rendertemplate "github.com/goliatone/go-formkit/pkg/render/template"
	gotemplate "github.com/goliatone/go-formkit/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

// Name is the registry key of the vanilla renderer.
const Name = "vanilla"

// StylesheetAsset is the key passed to the theme AssetURL resolver for the
// renderer stylesheet.
const StylesheetAsset = "vanilla.stylesheet"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	templateFuncs    map[string]any
	widgets          *widgets.Config
	registry         *widgets.Registry
	resolver         *widgets.Resolver
	chrome           ChromeClasses
	fieldPartial     string
	inlineStyles     bool
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithTemplateFuncs registers helpers on the default template engine. Render
// payload helpers with the same name take precedence.
func WithTemplateFuncs(funcs map[string]any) Option {
	return func(cfg *config) {
		if len(funcs) == 0 {
			return
		}
		if cfg.templateFuncs == nil {
			cfg.templateFuncs = make(map[string]any, len(funcs))
		}
		for name, fn := range funcs {
			cfg.templateFuncs[name] = fn
		}
	}
}

// WithConfig sets the widget configuration used when RenderOptions.Config is
// nil.
func WithConfig(widgetConfig widgets.Config) Option {
	return func(cfg *config) {
		cfg.widgets = &widgetConfig
	}
}

// WithRegistry swaps the widget registry.
func WithRegistry(registry *widgets.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.registry = registry
		}
	}
}

// WithResolver swaps the widget resolver.
func WithResolver(resolver *widgets.Resolver) Option {
	return func(cfg *config) {
		if resolver != nil {
			cfg.resolver = resolver
		}
	}
}

// WithChromeClasses overrides the classes of the form chrome. Empty entries
// keep the defaults.
func WithChromeClasses(classes ChromeClasses) Option {
	return func(cfg *config) {
		cfg.chrome = cfg.chrome.merge(classes)
	}
}

// WithFieldPartial lays every field out through the named template instead
// of the widget config template. A theme "forms.field" partial wins over it.
func WithFieldPartial(name string) Option {
	return func(cfg *config) {
		cfg.fieldPartial = strings.TrimSpace(name)
	}
}

// WithInlineStyles embeds the bundled stylesheet in a <style> block when the
// theme does not resolve a stylesheet URL.
func WithInlineStyles() Option {
	return func(cfg *config) {
		cfg.inlineStyles = true
	}
}

// Renderer renders a form model into a complete HTML form.
type Renderer struct {
	templates    rendertemplate.TemplateRenderer
	widgets      widgets.Config
	registry     *widgets.Registry
	resolver     *widgets.Resolver
	chrome       ChromeClasses
	fieldPartial string
	inlineStyles bool
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), chrome: DefaultChromeClasses()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tpl"),
			gotemplate.WithFuncs(cfg.templateFuncs),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	widgetConfig := widgets.DefaultConfig()
	if cfg.widgets != nil {
		widgetConfig = *cfg.widgets
	}
	registry := cfg.registry
	if registry == nil {
		registry = widgets.NewDefaultRegistry()
	}

	return &Renderer{
		templates:    renderer,
		widgets:      widgetConfig,
		registry:     registry,
		resolver:     cfg.resolver,
		chrome:       cfg.chrome,
		fieldPartial: cfg.fieldPartial,
		inlineStyles: cfg.inlineStyles,
	}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render lays out the form: opening tag with hidden fields, error summary,
// one block per attribute and the submit button. Server errors from
// options.Errors are recorded on form before rendering.
func (r *Renderer) Render(ctx context.Context, form *model.FormModel, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if form == nil {
		return nil, fmt.Errorf("vanilla renderer: form model is nil")
	}
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	decorators := append([]model.Decorator{render.Localizer(options)}, options.Decorators...)
	if err := form.Decorate(decorators...); err != nil {
		return nil, fmt.Errorf("vanilla renderer: decorate form: %w", err)
	}
	formErrors := render.ApplyErrorPayload(form, options.Errors)

	attributes, err := render.SelectAttributes(form, options.Attributes, options.Exclude)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: %w", err)
	}

	widgetConfig := r.widgets
	if options.Config != nil {
		widgetConfig = *options.Config
	}
	themeCtx := buildThemeContext(options.Theme)

	fields := newFieldRenderer(r.templates, r.registry, r.resolver, widgetConfig, r.partialFor(themeCtx))
	rendered := make([]string, 0, len(attributes))
	for _, attribute := range attributes {
		html, err := fields.render(form, attribute, options.FieldOptions[attribute])
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: %w", err)
		}
		rendered = append(rendered, html)
	}

	hidden := render.MergeHiddenFields(options.HiddenFields)
	formOpts := []widgets.Option{widgets.WithClass(r.chrome.Form)}
	if themeCtx.Name != "" {
		formOpts = append(formOpts, widgets.WithAttribute("data-theme", themeCtx.Name))
	}
	if themeCtx.Variant != "" {
		formOpts = append(formOpts, widgets.WithAttribute("data-theme-variant", themeCtx.Variant))
	}

	summary := widgets.ErrorSummary(form,
		widgets.WithConfig(widgetConfig),
		widgets.WithClass(r.chrome.Errors),
		widgets.WithExtraErrors(formErrors...),
		widgets.WithHeader(options.Translate("form.errors.header", widgetConfig.SummaryHeader)),
	)

	submitLabel := options.SubmitLabel
	if submitLabel == "" {
		submitLabel = options.Translate("form.submit", "Submit")
	}

	payload := map[string]any{
		"form_name":    form.FormName(),
		"form_open":    widgets.BeginForm(options.Action, options.Method, hidden, formOpts...),
		"form_close":   widgets.EndForm(),
		"summary":      summary,
		"fields":       rendered,
		"submit":       widgets.SubmitButton(submitLabel, widgets.WithConfig(widgetConfig)),
		"stylesheets":  r.stylesheets(options.Theme, fields.usedWidgets()),
		"inline_style": r.inlineStyle(themeCtx, options.Theme),
		"classes":      r.chrome.payload(),
		"locale":       options.Locale,
		"theme":        themeCtx.payload(),
	}
	maps.Copy(payload, fieldHelpers(form, fields, options))
	if options.Translator != nil {
		maps.Copy(payload, render.TemplateI18nFuncs(options))
	}

	result, err := r.templates.RenderTemplate(FormTemplate, payload)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) partialFor(themeCtx rendererTheme) string {
	if partial := strings.TrimSpace(themeCtx.Partials[PartialField]); partial != "" {
		return partial
	}
	return r.fieldPartial
}

func (r *Renderer) stylesheets(cfg *theme.RendererConfig, used []string) []string {
	var out []string
	if resolve := themeAssetResolver(cfg); resolve != nil {
		if href := strings.TrimSpace(resolve(StylesheetAsset)); href != "" {
			out = append(out, href)
		}
	}
	return append(out, r.registry.Stylesheets(used)...)
}

func (r *Renderer) inlineStyle(themeCtx rendererTheme, cfg *theme.RendererConfig) string {
	var parts []string
	if r.inlineStyles {
		resolved := ""
		if resolve := themeAssetResolver(cfg); resolve != nil {
			resolved = strings.TrimSpace(resolve(StylesheetAsset))
		}
		if resolved == "" {
			if css := defaultStylesheet(); css != "" {
				parts = append(parts, css)
			}
		}
	}
	if themeCtx.CSSVarsStyle != "" {
		parts = append(parts, themeCtx.CSSVarsStyle)
	}
	return strings.Join(parts, "\n")
}
