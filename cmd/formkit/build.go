package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"

	formkit "github.com/goliatone/go-formkit"
	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/openapi"
	"github.com/goliatone/go-formkit/pkg/renderers/tui"
	"github.com/goliatone/go-formkit/pkg/uiconfig"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

type options struct {
	document    string
	component   string
	remote      bool
	configDir   string
	preset      string
	valuesFile  string
	renderer    string
	format      string
	interactive bool
	validate    bool
	action      string
	method      string
	themeName   string
	variant     string
	tokens      map[string]string
	output      string
	watch       bool

	// driver replaces the terminal prompts in tests.
	driver tui.PromptDriver
}

// run builds the form described by opts and renders it once.
func run(ctx context.Context, opts options) ([]byte, error) {
	if strings.TrimSpace(opts.document) == "" {
		return nil, errors.New("an -openapi document is required")
	}
	if strings.TrimSpace(opts.component) == "" {
		return nil, errors.New("a -component name is required")
	}

	store, err := loadStore(opts.configDir)
	if err != nil {
		return nil, err
	}

	var readOpts []openapi.LoaderOption
	if opts.remote {
		readOpts = append(readOpts, openapi.WithHTTPClient(http.DefaultClient))
	}
	data, err := openapi.ReadDocument(ctx, opts.document, readOpts...)
	if err != nil {
		return nil, err
	}
	form, schema, err := formkit.FormFromOpenAPI(ctx, data, opts.component)
	if err != nil {
		return nil, err
	}

	if opts.valuesFile != "" {
		if err := loadValues(form, opts.valuesFile); err != nil {
			return nil, err
		}
	}

	renderOptions := formkit.RenderOptions{
		Action:       opts.action,
		Method:       opts.method,
		FieldOptions: schema.FieldOptions(),
	}
	if opts.preset != "" {
		cfg, err := resolvePreset(store, opts.preset)
		if err != nil {
			return nil, err
		}
		renderOptions.Config = &cfg
	}

	format, err := tui.ParseOutputFormat(opts.format)
	if err != nil {
		return nil, err
	}
	tuiOpts := []tui.Option{tui.WithOutputFormat(format)}
	if opts.driver != nil {
		tuiOpts = append(tuiOpts, tui.WithPromptDriver(opts.driver))
	}
	for attribute, items := range schema.Items {
		tuiOpts = append(tuiOpts, tui.WithChoices(attribute, items...))
	}

	gen, err := formkit.New(
		formkit.WithUIConfig(store),
		formkit.WithTheme(themeConfig(opts)),
		formkit.WithTUIOptions(tuiOpts...),
	)
	if err != nil {
		return nil, err
	}

	if opts.interactive && opts.renderer != tui.Name {
		terminal, err := tui.New(tuiOpts...)
		if err != nil {
			return nil, err
		}
		if err := terminal.Fill(ctx, form, renderOptions); err != nil {
			return nil, err
		}
	}
	if opts.validate {
		form.Validate()
	}
	return gen.Render(ctx, opts.renderer, form, renderOptions)
}

func loadStore(dir string) (*uiconfig.Store, error) {
	if dir == "" {
		return uiconfig.LoadFS(nil)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("config path %s is not a directory", dir)
	}
	return uiconfig.LoadFS(os.DirFS(dir))
}

// resolvePreset looks the name up in the loaded configs first, then in the
// bundled framework presets.
func resolvePreset(store *uiconfig.Store, name string) (widgets.Config, error) {
	if cfg, ok := store.Config(name); ok {
		return cfg, nil
	}
	presets, err := uiconfig.LoadPresets()
	if err != nil {
		return widgets.Config{}, err
	}
	if cfg, ok := presets.Config(name); ok {
		return cfg, nil
	}
	known := append(store.Names(), presets.Names()...)
	return widgets.Config{}, fmt.Errorf("unknown preset %q (known: %s)", name, strings.Join(known, ", "))
}

// loadValues reads a JSON or YAML file, scoped by the form name or flat.
func loadValues(form *model.FormModel, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("values %s: %w", path, err)
	}
	if !form.Load(values) {
		form.LoadScoped(values, "")
	}
	return nil
}

func themeConfig(opts options) *theme.RendererConfig {
	if opts.themeName == "" && len(opts.tokens) == 0 {
		return nil
	}
	cfg := &theme.RendererConfig{
		Theme:   opts.themeName,
		Variant: opts.variant,
		Tokens:  opts.tokens,
	}
	if len(opts.tokens) > 0 {
		cfg.CSSVars = make(map[string]string, len(opts.tokens))
		for key, value := range opts.tokens {
			cfg.CSSVars["--"+key] = value
		}
	}
	return cfg
}
