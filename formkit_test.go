package formkit_test

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	formkit "github.com/goliatone/go-formkit"
	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/renderers/tui"
	"github.com/goliatone/go-formkit/pkg/testsupport"
	"github.com/goliatone/go-formkit/pkg/uiconfig"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

type SignupForm struct {
	Email    string
	Password string
}

type ProfileForm struct {
	Zone string `widget:"timezone"`
}

type echoRenderer struct{}

func (echoRenderer) Name() string        { return "echo" }
func (echoRenderer) ContentType() string { return "text/plain" }
func (echoRenderer) Render(_ context.Context, form *model.FormModel, opts render.RenderOptions) ([]byte, error) {
	return []byte(form.FormName() + ":" + strings.Join(opts.Attributes, ",")), nil
}

func assertContains(t *testing.T, html string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected output to contain %q\n%s", fragment, html)
		}
	}
}

func TestGeneratorRegistersRenderers(t *testing.T) {
	gen, err := formkit.New(formkit.WithRenderer(echoRenderer{}))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	for _, name := range []string{"vanilla", tui.Name, "echo"} {
		if !gen.Registry().Has(name) {
			t.Fatalf("expected renderer %q registered", name)
		}
	}

	if gen.Registry().Default() != formkit.DefaultRenderer {
		t.Fatalf("unexpected default renderer %q", gen.Registry().Default())
	}
	if _, err := formkit.New(formkit.WithDefaultRenderer("missing")); !errors.Is(err, render.ErrUnknownRenderer) {
		t.Fatalf("expected ErrUnknownRenderer, got %v", err)
	}
	if _, err := gen.Render(testsupport.Context(), "", nil, formkit.RenderOptions{}); err == nil {
		t.Fatalf("expected nil form error")
	}
}

func TestGeneratorAppliesDefaults(t *testing.T) {
	overrides, err := uiconfig.Parse([]byte("forms:\n  SignupForm:\n    order: [email]\n    fields:\n      email:\n        label: Work email\n"), "inline.yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	widgetConfig := widgets.DefaultConfig()
	widgetConfig.ContainerClass = "row"

	gen, err := formkit.New(
		formkit.WithTheme(&theme.RendererConfig{Theme: "acme", Variant: "dark"}),
		formkit.WithUIConfig(overrides),
		formkit.WithWidgetConfig(widgetConfig),
	)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	form := testsupport.MustNewForm(t, &SignupForm{})
	out, err := gen.Render(testsupport.Context(), "", form, formkit.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	assertContains(t, html,
		`data-theme="acme"`,
		`<label for="signupform-email">Work email</label>`,
		`class="row`,
	)
	if strings.Contains(html, `SignupForm[password]`) {
		t.Fatalf("expected form order override to drop password\n%s", html)
	}
}

func TestGeneratorRendersTimezoneWidget(t *testing.T) {
	gen, err := formkit.New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	form := testsupport.MustNewForm(t, &ProfileForm{Zone: "Europe/Paris"})
	out, err := gen.Render(testsupport.Context(), "", form, formkit.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	assertContains(t, string(out), `<optgroup label="Europe">`, `<option value="Europe/Paris" selected>Paris</option>`)
}

func TestGeneratorRendersByName(t *testing.T) {
	gen, err := formkit.New(formkit.WithRenderer(echoRenderer{}), formkit.WithDefaultRenderer("echo"))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	form := testsupport.MustNewForm(t, &SignupForm{})
	out, err := gen.Render(testsupport.Context(), "", form, formkit.RenderOptions{Attributes: []string{"email"}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != "SignupForm:email" {
		t.Fatalf("unexpected output %q", out)
	}
	if _, err := gen.Render(testsupport.Context(), "missing", form, formkit.RenderOptions{}); !errors.Is(err, render.ErrUnknownRenderer) {
		t.Fatalf("expected ErrUnknownRenderer, got %v", err)
	}
}

func TestGenerateHTMLFromOpenAPI(t *testing.T) {
	document, err := os.ReadFile(filepath.Join("pkg", "openapi", "testdata", "signup.yaml"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	out, err := formkit.GenerateHTML(testsupport.Context(), document, "Signup", formkit.RenderOptions{Action: "/signup"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	assertContains(t, string(out),
		`action="/signup"`,
		`name="Signup[address][city]"`,
		`<option value="free" selected>free</option>`,
	)

	out, err = formkit.GenerateHTML(testsupport.Context(), document, "Signup", formkit.RenderOptions{
		FieldOptions: map[string][]widgets.Option{"plan": {widgets.WithItems(widgets.ItemsOf("free", "team")...)}},
	})
	if err != nil {
		t.Fatalf("generate with item override: %v", err)
	}
	assertContains(t, string(out), `<option value="team">team</option>`)
	if strings.Contains(string(out), `<option value="pro">`) {
		t.Fatalf("expected caller items to replace the enum items\n%s", out)
	}

	if _, err := formkit.GenerateHTML(testsupport.Context(), document, "Missing", formkit.RenderOptions{}); err == nil {
		t.Fatalf("expected missing component error")
	}
}

func TestRenderHTML(t *testing.T) {
	form := testsupport.MustNewForm(t, &SignupForm{Email: "ada@example.com"})
	out, err := formkit.RenderHTML(testsupport.Context(), form, formkit.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	assertContains(t, string(out), `value="ada@example.com"`, `</form>`)
}

func TestEmbeddedFilesystems(t *testing.T) {
	if _, err := fs.Stat(formkit.EmbeddedTemplates(), "templates/form.tpl"); err != nil {
		t.Fatalf("expected form template: %v", err)
	}
	if _, err := fs.Stat(formkit.AssetsFS(), "formkit-vanilla.css"); err != nil {
		t.Fatalf("expected stylesheet: %v", err)
	}
	presets, err := formkit.Presets()
	if err != nil {
		t.Fatalf("presets: %v", err)
	}
	if _, ok := presets.Config("bootstrap5"); !ok {
		t.Fatalf("expected bootstrap5 preset")
	}
}
