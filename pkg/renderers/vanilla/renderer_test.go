package vanilla_test

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/renderers/vanilla"
	"github.com/goliatone/go-formkit/pkg/testsupport"
	"github.com/goliatone/go-formkit/pkg/validation"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

type SignupForm struct {
	Email      string `hint:"We never share it"`
	Password   string
	Age        int
	Newsletter bool `label:"Send me news"`
	Nickname   string `labelKey:"signup.nickname"`
}

func (SignupForm) Rules() map[string][]validation.Rule {
	return map[string][]validation.Rule{
		"email": {validation.Required(), validation.Email()},
	}
}

func newRenderer(t *testing.T, opts ...vanilla.Option) *vanilla.Renderer {
	t.Helper()
	renderer, err := vanilla.New(opts...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return renderer
}

func renderForm(t *testing.T, renderer *vanilla.Renderer, form *model.FormModel, opts render.RenderOptions) string {
	t.Helper()
	out, err := renderer.Render(testsupport.Context(), form, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func assertContains(t *testing.T, html string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected output to contain %q\n%s", fragment, html)
		}
	}
}

func assertNotContains(t *testing.T, html string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if strings.Contains(html, fragment) {
			t.Fatalf("expected output not to contain %q\n%s", fragment, html)
		}
	}
}

func TestRendererImplementsContract(t *testing.T) {
	renderer := newRenderer(t)
	if renderer.Name() != "vanilla" {
		t.Fatalf("unexpected name %q", renderer.Name())
	}
	if renderer.ContentType() != "text/html; charset=utf-8" {
		t.Fatalf("unexpected content type %q", renderer.ContentType())
	}

	registry := render.NewRegistry()
	registry.MustRegister(renderer)
	if !registry.Has(vanilla.Name) {
		t.Fatalf("expected registry to expose vanilla renderer")
	}
}

func TestRenderFormChrome(t *testing.T) {
	renderer := newRenderer(t)
	form := testsupport.MustNewForm(t, &SignupForm{Email: "ada@example.com"})

	html := renderForm(t, renderer, form, render.RenderOptions{
		Action:       "/signup",
		Method:       "PUT",
		HiddenFields: map[string]string{"_csrf": "tok"},
	})

	assertContains(t, html,
		`<form class="formkit-form" action="/signup" method="post">`,
		`<input type="hidden" name="_csrf" value="tok">`,
		`<input type="hidden" name="_method" value="PUT">`,
		`<div class="formkit-fields">`,
		`<div class="field required">`,
		`<label for="signupform-email">Email</label>`,
		`<input type="email" id="signupform-email" name="SignupForm[email]" value="ada@example.com"`,
		`<div id="signupform-email-hint" class="hint">We never share it</div>`,
		`<input type="password" id="signupform-password" name="SignupForm[password]">`,
		`<input type="number" id="signupform-age" name="SignupForm[age]" value="0">`,
		`Send me news`,
		`<div class="formkit-actions">`,
		`<button type="submit">Submit</button>`,
		`</form>`,
	)
	assertNotContains(t, html, `role="alert"`, `<link`, `<style>`)

	if strings.Index(html, `name="_csrf"`) > strings.Index(html, `name="_method"`) {
		t.Fatalf("expected hidden fields sorted by name")
	}
}

func TestRenderSubsetAndExclude(t *testing.T) {
	renderer := newRenderer(t)
	form := testsupport.MustNewForm(t, &SignupForm{})

	html := renderForm(t, renderer, form, render.RenderOptions{
		Attributes: []string{"password", "email", "age"},
		Exclude:    []string{"age"},
	})

	password := strings.Index(html, `name="SignupForm[password]"`)
	email := strings.Index(html, `name="SignupForm[email]"`)
	if password < 0 || email < 0 || password > email {
		t.Fatalf("expected password before email\n%s", html)
	}
	assertNotContains(t, html, `SignupForm[age]`, `SignupForm[newsletter]`)

	if _, err := renderer.Render(testsupport.Context(), form, render.RenderOptions{Attributes: []string{"missing"}}); err == nil {
		t.Fatalf("expected unknown attribute error")
	}
}

func TestRenderMapsServerErrors(t *testing.T) {
	renderer := newRenderer(t)
	form := testsupport.MustNewForm(t, &SignupForm{Email: "ada@example.com"})

	html := renderForm(t, renderer, form, render.RenderOptions{
		Errors: map[string][]string{
			"SignupForm.email": {"Email is already taken."},
			"base":             {"Something went wrong."},
			"unknown.path":     {"Unknown failure."},
		},
	})

	assertContains(t, html,
		`<div class="error-summary formkit-errors" role="alert">`,
		`<li>Email is already taken.</li>`,
		`<li>Something went wrong.</li>`,
		`<li>Unknown failure.</li>`,
		`<div class="field required has-error">`,
		`<div id="signupform-email-error" class="error">Email is already taken.</div>`,
		`aria-invalid="true"`,
	)
	if !form.HasError("email") {
		t.Fatalf("expected server error recorded on the model")
	}
}

func TestRenderAfterValidation(t *testing.T) {
	renderer := newRenderer(t)
	form := testsupport.MustNewForm(t, &SignupForm{})
	if form.Validate() {
		t.Fatalf("expected validation failure")
	}

	html := renderForm(t, renderer, form, render.RenderOptions{})
	assertContains(t, html,
		`<li>Email cannot be blank.</li>`,
		`<div id="signupform-email-error" class="error">Email cannot be blank.</div>`,
	)
}

func TestRenderTranslatesLabelsAndChrome(t *testing.T) {
	renderer := newRenderer(t)
	form := testsupport.MustNewForm(t, &SignupForm{})

	translations := map[string]string{
		"signup.nickname":    "Apodo",
		"form.submit":        "Enviar",
		"form.errors.header": "Corrige los errores:",
	}
	translator := render.TranslatorFunc(func(locale, key string, _ ...any) (string, error) {
		if locale != "es" {
			return "", errors.New("unsupported locale")
		}
		if value, ok := translations[key]; ok {
			return value, nil
		}
		return "", errors.New("missing")
	})

	html := renderForm(t, renderer, form, render.RenderOptions{
		Locale:     "es",
		Translator: translator,
		Errors:     map[string][]string{"form": {"Intenta de nuevo."}},
	})

	assertContains(t, html,
		`<label for="signupform-nickname">Apodo</label>`,
		`<button type="submit">Enviar</button>`,
		`<p>Corrige los errores:</p>`,
	)
}

func TestRenderSubmitLabelOverride(t *testing.T) {
	renderer := newRenderer(t)
	form := testsupport.MustNewForm(t, &SignupForm{})

	html := renderForm(t, renderer, form, render.RenderOptions{SubmitLabel: "Create account"})
	assertContains(t, html, `<button type="submit">Create account</button>`)
}

func TestRenderAppliesDecoratorsAndFieldOptions(t *testing.T) {
	renderer := newRenderer(t)
	form := testsupport.MustNewForm(t, &SignupForm{})

	html := renderForm(t, renderer, form, render.RenderOptions{
		Attributes: []string{"nickname"},
		Decorators: []model.Decorator{
			model.DecoratorFunc(func(form *model.FormModel) error {
				return form.SetHint("nickname", "Shown on your profile")
			}),
		},
		FieldOptions: map[string][]widgets.Option{
			"nickname": {widgets.WithWidget(widgets.WidgetTextarea)},
		},
	})

	assertContains(t, html,
		`<div id="signupform-nickname-hint" class="hint">Shown on your profile</div>`,
		`<textarea id="signupform-nickname" name="SignupForm[nickname]"`,
	)
}

func TestRenderThemeAssets(t *testing.T) {
	renderer := newRenderer(t)
	form := testsupport.MustNewForm(t, &SignupForm{})

	html := renderForm(t, renderer, form, render.RenderOptions{Theme: testThemeConfig()})

	assertContains(t, html,
		`<link rel="stylesheet" href="/themes/acme/vanilla.stylesheet">`,
		"--brand: #123456;",
		`data-theme="acme"`,
		`data-theme-variant="dark"`,
	)
	assertNotContains(t, html, ".formkit-form {")
}

func TestRenderInlineStyles(t *testing.T) {
	renderer := newRenderer(t, vanilla.WithInlineStyles())
	form := testsupport.MustNewForm(t, &SignupForm{})

	html := renderForm(t, renderer, form, render.RenderOptions{})
	assertContains(t, html, "<style>", ".formkit-form {")
	assertNotContains(t, html, "<link")
}

func TestRenderThemeFieldPartial(t *testing.T) {
	renderer := newRenderer(t)
	form := testsupport.MustNewForm(t, &SignupForm{})

	cfg := testThemeConfig()
	cfg.Partials = map[string]string{vanilla.PartialField: vanilla.FieldPartialTemplate}

	html := renderForm(t, renderer, form, render.RenderOptions{
		Attributes: []string{"email"},
		Theme:      cfg,
	})
	assertContains(t, html,
		`<div class="field required" data-widget="email">`,
		`<label for="signupform-email">Email</label>`,
	)
}

func TestRenderFieldPartialOption(t *testing.T) {
	renderer := newRenderer(t, vanilla.WithFieldPartial(vanilla.FieldPartialTemplate))
	form := testsupport.MustNewForm(t, &SignupForm{})

	html := renderForm(t, renderer, form, render.RenderOptions{Attributes: []string{"age"}})
	assertContains(t, html, `<div class="field" data-widget="number">`)
}

func TestRenderWidgetStylesheets(t *testing.T) {
	registry := widgets.NewDefaultRegistry()
	registry.MustRegister("rich-text", widgets.Descriptor{
		Renderer:    widgets.Textarea,
		Stylesheets: []string{"/assets/rich-text.css"},
	})
	renderer := newRenderer(t, vanilla.WithRegistry(registry))
	form := testsupport.MustNewForm(t, &SignupForm{})

	html := renderForm(t, renderer, form, render.RenderOptions{
		FieldOptions: map[string][]widgets.Option{
			"nickname": {widgets.WithWidget("rich-text")},
		},
	})
	assertContains(t, html, `<link rel="stylesheet" href="/assets/rich-text.css">`)
}

func TestRenderChromeClassOverrides(t *testing.T) {
	renderer := newRenderer(t, vanilla.WithChromeClasses(vanilla.ChromeClasses{
		Form:    "stack formkit-spoof",
		Actions: "toolbar",
	}))
	form := testsupport.MustNewForm(t, &SignupForm{})

	html := renderForm(t, renderer, form, render.RenderOptions{})
	assertContains(t, html,
		`<form class="stack" action="" method="post">`,
		`<div class="toolbar">`,
		`<div class="formkit-fields">`,
	)
}

func TestRenderConfigOverride(t *testing.T) {
	cfg := widgets.DefaultConfig()
	cfg.ContainerClass = "form-group"
	cfg.InputClass = "form-control"
	cfg.ButtonClass = "btn btn-primary"

	renderer := newRenderer(t)
	form := testsupport.MustNewForm(t, &SignupForm{})
	html := renderForm(t, renderer, form, render.RenderOptions{
		Attributes: []string{"password"},
		Config:     &cfg,
	})
	assertContains(t, html,
		`<div class="form-group">`,
		`class="form-control"`,
		`<button type="submit" class="btn btn-primary">Submit</button>`,
	)
}

func TestRenderCustomFormTemplateHelpers(t *testing.T) {
	templates := fstest.MapFS{
		"templates/form.tpl": {Data: []byte(`<form data-locale="{{ current_locale() }}" data-theme="{{ theme.name }}">
<h2>{{ translate("signup.title", "Sign up") }}</h2>
{{ field("email")|safe }}
<p>{{ label("email") }}|{{ input_name("email") }}|{% if has_error("email") %}{{ error("email") }}{% endif %}</p>
</form>`)},
	}
	renderer := newRenderer(t, vanilla.WithTemplatesFS(templates))
	form := testsupport.MustNewForm(t, &SignupForm{})

	translator := render.TranslatorFunc(func(locale, key string, _ ...any) (string, error) {
		if locale == "es" && key == "signup.title" {
			return "Registro", nil
		}
		return "", errors.New("missing")
	})
	html := renderForm(t, renderer, form, render.RenderOptions{
		Locale:     "es",
		Translator: translator,
		Theme:      testThemeConfig(),
		Errors:     map[string][]string{"email": {"Taken."}},
	})

	assertContains(t, html,
		`<form data-locale="es" data-theme="acme">`,
		`<h2>Registro</h2>`,
		`<label for="signupform-email">Email</label>`,
		`<p>Email|SignupForm[email]|Taken.</p>`,
	)
	assertNotContains(t, html, `signupform-password`)
}

func TestRenderTranslateHelperFallback(t *testing.T) {
	templates := fstest.MapFS{
		"templates/form.tpl": {Data: []byte(`{{ translate("signup.title", "Sign up") }}`)},
	}
	renderer := newRenderer(t, vanilla.WithTemplatesFS(templates))
	form := testsupport.MustNewForm(t, &SignupForm{})

	html := renderForm(t, renderer, form, render.RenderOptions{
		Translator: render.TranslatorFunc(func(string, string, ...any) (string, error) {
			return "", errors.New("missing")
		}),
	})
	if html != "Sign up" {
		t.Fatalf("expected the fallback text, got %q", html)
	}
}

func TestRenderErrors(t *testing.T) {
	renderer := newRenderer(t)
	if _, err := renderer.Render(testsupport.Context(), nil, render.RenderOptions{}); err == nil {
		t.Fatalf("expected error for nil form")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	form := testsupport.MustNewForm(t, &SignupForm{})
	if _, err := renderer.Render(ctx, form, render.RenderOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	_, err := renderer.Render(testsupport.Context(), form, render.RenderOptions{
		FieldOptions: map[string][]widgets.Option{"email": {widgets.WithWidget("missing")}},
	})
	if !errors.Is(err, widgets.ErrUnknownWidget) {
		t.Fatalf("expected ErrUnknownWidget, got %v", err)
	}
}

func TestAssetsFSExposesStylesheet(t *testing.T) {
	css, err := fs.ReadFile(vanilla.AssetsFS(), vanilla.StylesheetName)
	if err != nil {
		t.Fatalf("read stylesheet: %v", err)
	}
	if len(css) == 0 {
		t.Fatalf("bundled stylesheet is empty")
	}
	for _, name := range []string{vanilla.FormTemplate, vanilla.FieldPartialTemplate} {
		if _, err := fs.Stat(vanilla.TemplatesFS(), name+".tpl"); err != nil {
			t.Fatalf("bundled template %s: %v", name, err)
		}
	}
}

func testThemeConfig() *theme.RendererConfig {
	return &theme.RendererConfig{
		Theme:   "acme",
		Variant: "dark",
		Tokens: map[string]string{
			"brand": "#123456",
		},
		CSSVars: map[string]string{
			"--brand": "#123456",
		},
		AssetURL: func(key string) string {
			if key == "" {
				return ""
			}
			return "/themes/acme/" + key
		},
	}
}
