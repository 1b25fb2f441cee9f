package tui

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/testsupport"
	"github.com/goliatone/go-formkit/pkg/validation"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	multiIdx     [][]int
	confirm      []bool
	textAreas    []string
	passwords    []string
	infoMessages []string
	messages     []string
	prompts      []Prompt
	inputPos     int
	selectPos    int
	multiPos     int
	confirmPos   int
	textPos      int
	passPos      int
	err          error
}

func (s *stubDriver) record(p Prompt) {
	s.messages = append(s.messages, p.Message)
	s.prompts = append(s.prompts, p)
}

func (s *stubDriver) Input(_ context.Context, p Prompt) (string, error) {
	s.record(p)
	if s.err != nil {
		return "", s.err
	}
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Password(_ context.Context, p Prompt) (string, error) {
	s.record(p)
	if s.passPos >= len(s.passwords) {
		return "", errors.New("no password scripted")
	}
	val := s.passwords[s.passPos]
	s.passPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, p Prompt) (bool, error) {
	s.record(p)
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, p Prompt) (string, error) {
	s.record(p)
	if s.selectPos >= len(s.selectIdx) {
		return "", errors.New("no select scripted")
	}
	idx := s.selectIdx[s.selectPos]
	s.selectPos++
	if idx < 0 || idx >= len(p.Options) {
		return "", nil
	}
	return p.Options[idx], nil
}

func (s *stubDriver) MultiSelect(_ context.Context, p Prompt) ([]string, error) {
	s.record(p)
	if s.multiPos >= len(s.multiIdx) {
		return nil, errors.New("no multiselect scripted")
	}
	var out []string
	for _, idx := range s.multiIdx[s.multiPos] {
		out = append(out, p.Options[idx])
	}
	s.multiPos++
	return out, nil
}

func (s *stubDriver) TextArea(_ context.Context, p Prompt) (string, error) {
	s.record(p)
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

type SignupForm struct {
	Name       string
	Age        int
	Plan       string
	Tags       []string
	Password   string `widget:"password"`
	Bio        string `widget:"textarea"`
	Newsletter bool
	Address    struct {
		City string
	}
}

func newSignup(t *testing.T) *model.FormModel {
	t.Helper()
	return testsupport.MustNewForm(t, &SignupForm{}, model.WithRules(map[string][]validation.Rule{
		"name": {validation.Required()},
		"age":  {validation.Min(18)},
		"plan": {validation.In("free", "pro")},
	}))
}

func scriptedSignup() *stubDriver {
	return &stubDriver{
		inputs:    []string{"", "Ada", "abc", "21", "go, forms", "Paris"},
		selectIdx: []int{1},
		passwords: []string{"s3cret"},
		textAreas: []string{"Hello"},
		confirm:   []bool{true},
	}
}

func TestRendererRenderJSON(t *testing.T) {
	driver := scriptedSignup()
	renderer, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if renderer.Name() != Name || renderer.ContentType() != "application/json" {
		t.Fatalf("unexpected renderer identity %s %s", renderer.Name(), renderer.ContentType())
	}

	form := newSignup(t)
	out, err := renderer.Render(testsupport.Context(), form, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	want := map[string]any{
		"name":       "Ada",
		"age":        float64(21),
		"plan":       "pro",
		"tags":       []any{"go", "forms"},
		"password":   "s3cret",
		"bio":        "Hello",
		"newsletter": true,
		"address":    map[string]any{"city": "Paris"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}

	wantInfo := []string{"Name cannot be blank.", "Age must be an integer."}
	if diff := cmp.Diff(wantInfo, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
	if form.HasErrors() {
		t.Fatalf("expected no errors after successful retries, got %v", form.AllErrors())
	}
}

func TestRendererFormURLEncoded(t *testing.T) {
	renderer, err := New(WithPromptDriver(scriptedSignup()), WithOutputFormat(OutputFormatFormURLEncoded))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	out, err := renderer.Render(testsupport.Context(), newSignup(t), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	values, err := url.ParseQuery(string(out))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if values.Get("SignupForm[address][city]") != "Paris" {
		t.Fatalf("unexpected city in %v", values)
	}
	if diff := cmp.Diff([]string{"go", "forms"}, values["SignupForm[tags]"]); diff != "" {
		t.Fatalf("tags mismatch (-want +got):\n%s", diff)
	}
	if values.Get("SignupForm[newsletter]") != "true" {
		t.Fatalf("unexpected newsletter in %v", values)
	}
}

func TestRendererPrettyTextWithSubset(t *testing.T) {
	driver := &stubDriver{inputs: []string{"Ada"}, selectIdx: []int{0}}
	renderer, err := New(
		WithPromptDriver(driver),
		WithOutputFormat(OutputFormatPrettyText),
		WithTheme(Theme{PromptPrefix: "? ", InfoPrefix: "- ", ErrorPrefix: "! "}),
	)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	out, err := renderer.Render(testsupport.Context(), newSignup(t), render.RenderOptions{
		Attributes: []string{"plan", "name"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := string(out); got != "- Plan: free\n- Name: Ada\n" {
		t.Fatalf("unexpected output %q", got)
	}
	if diff := cmp.Diff([]string{"? Plan", "? Name"}, driver.messages); diff != "" {
		t.Fatalf("prompt order mismatch (-want +got):\n%s", diff)
	}
}

func TestRendererChoicesUseMultiSelect(t *testing.T) {
	driver := &stubDriver{multiIdx: [][]int{{0, 2}}}
	renderer, err := New(WithPromptDriver(driver), WithChoices("tags", "go", "rust", "zig"))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	form := newSignup(t)
	if err := renderer.Fill(testsupport.Context(), form, render.RenderOptions{Attributes: []string{"tags"}}); err != nil {
		t.Fatalf("fill: %v", err)
	}
	value, _ := form.Value("tags")
	if diff := cmp.Diff([]string{"go", "zig"}, value); diff != "" {
		t.Fatalf("tags mismatch (-want +got):\n%s", diff)
	}
}

func TestRendererTooManyAttempts(t *testing.T) {
	driver := &stubDriver{inputs: []string{"12", "15"}}
	renderer, err := New(WithPromptDriver(driver), WithMaxAttempts(2))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	form := newSignup(t)
	err = renderer.Fill(testsupport.Context(), form, render.RenderOptions{Attributes: []string{"age"}})
	if !errors.Is(err, ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
	if form.FirstError("age") != "Age must be no less than 18." {
		t.Fatalf("expected the last error to stay recorded, got %q", form.FirstError("age"))
	}
}

func TestRendererServerErrorsAndTransformer(t *testing.T) {
	driver := &stubDriver{inputs: []string{"Ada"}}
	renderer, err := New(
		WithPromptDriver(driver),
		WithSubmitTransformer(func(values map[string]any) (map[string]any, error) {
			values["source"] = "cli"
			return values, nil
		}),
	)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	out, err := renderer.Render(testsupport.Context(), newSignup(t), render.RenderOptions{
		Attributes: []string{"name"},
		Errors: map[string][]string{
			"name":             {"Name is taken."},
			"non_field_errors": {"Try again later."},
		},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if diff := cmp.Diff([]string{"Try again later.", "Name is taken."}, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(string(out), `"source": "cli"`) {
		t.Fatalf("expected transformed payload, got %s", out)
	}
}

func TestRendererPromptsCarryRules(t *testing.T) {
	driver := &stubDriver{inputs: []string{"Ada", "30"}}
	renderer, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	form := newSignup(t)
	if err := renderer.Fill(testsupport.Context(), form, render.RenderOptions{Attributes: []string{"name", "age"}}); err != nil {
		t.Fatalf("fill: %v", err)
	}
	if len(driver.prompts) != 2 {
		t.Fatalf("expected two prompts, got %d", len(driver.prompts))
	}

	name, age := driver.prompts[0], driver.prompts[1]
	if name.Attribute != "name" || !name.Required || name.Validate != nil {
		t.Fatalf("unexpected name prompt %+v", name)
	}
	if age.Required || age.Validate == nil {
		t.Fatalf("unexpected age prompt %+v", age)
	}
	if err := age.Validate("12"); err == nil || err.Error() != "Age must be no less than 18." {
		t.Fatalf("expected min rule error, got %v", err)
	}
	if err := age.Validate("abc"); err == nil || err.Error() != "Age must be an integer." {
		t.Fatalf("expected integer error, got %v", err)
	}
	if err := age.Validate("21"); err != nil {
		t.Fatalf("expected 21 to pass, got %v", err)
	}
	if err := age.Validate(""); err != nil {
		t.Fatalf("optional attribute should accept an empty answer, got %v", err)
	}
}

func TestRendererPromptDefaults(t *testing.T) {
	driver := &stubDriver{inputs: []string{"go"}, selectIdx: []int{1}}
	renderer, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	form := newSignup(t)
	form.Load(map[string]any{"SignupForm": map[string]any{"tags": []string{"a", "b"}, "plan": "pro"}})
	if err := renderer.Fill(testsupport.Context(), form, render.RenderOptions{Attributes: []string{"tags", "plan"}}); err != nil {
		t.Fatalf("fill: %v", err)
	}
	tags, plan := driver.prompts[0], driver.prompts[1]
	if tags.Default != "a, b" {
		t.Fatalf("unexpected tags default %q", tags.Default)
	}
	if diff := cmp.Diff([]string{"a", "b"}, tags.Defaults); diff != "" {
		t.Fatalf("tags defaults mismatch (-want +got):\n%s", diff)
	}
	if plan.Default != "pro" {
		t.Fatalf("unexpected plan default %q", plan.Default)
	}
	if diff := cmp.Diff([]string{"free", "pro"}, plan.Options); diff != "" {
		t.Fatalf("plan options mismatch (-want +got):\n%s", diff)
	}
}

func TestRendererPasswordPromptHasNoDefault(t *testing.T) {
	driver := &stubDriver{passwords: []string{"n3w"}}
	renderer, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	form := testsupport.MustNewForm(t, &SignupForm{Password: "old"})
	if err := renderer.Fill(testsupport.Context(), form, render.RenderOptions{Attributes: []string{"password"}}); err != nil {
		t.Fatalf("fill: %v", err)
	}
	if driver.prompts[0].Default != "" {
		t.Fatalf("password prompt leaked %q", driver.prompts[0].Default)
	}
	if value, _ := form.Value("password"); value != "n3w" {
		t.Fatalf("unexpected password %v", value)
	}
}

func TestParseOutputFormat(t *testing.T) {
	cases := map[string]struct {
		want        OutputFormat
		contentType string
	}{
		"":           {OutputFormatJSON, "application/json"},
		"JSON":       {OutputFormatJSON, "application/json"},
		"urlencoded": {OutputFormatFormURLEncoded, "application/x-www-form-urlencoded"},
		" text ":     {OutputFormatPrettyText, "text/plain; charset=utf-8"},
	}
	for name, tc := range cases {
		got, err := ParseOutputFormat(name)
		if err != nil {
			t.Fatalf("parse %q: %v", name, err)
		}
		if got != tc.want || got.ContentType() != tc.contentType {
			t.Fatalf("parse %q: got %q (%s)", name, got, got.ContentType())
		}
	}
	if _, err := ParseOutputFormat("xml"); err == nil {
		t.Fatalf("expected error for xml")
	}
}

func TestRendererErrors(t *testing.T) {
	if _, err := New(WithOutputFormat("xml")); err == nil {
		t.Fatalf("expected unsupported format error")
	}

	renderer, err := New(WithPromptDriver(&stubDriver{err: ErrAborted}))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ctx := testsupport.Context()
	if _, err := renderer.Render(ctx, nil, render.RenderOptions{}); err == nil {
		t.Fatalf("expected nil form error")
	}
	if _, err := renderer.Render(ctx, newSignup(t), render.RenderOptions{Attributes: []string{"name"}}); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	if _, err := renderer.Render(ctx, newSignup(t), render.RenderOptions{Attributes: []string{"missing"}}); !errors.Is(err, model.ErrUnknownAttribute) {
		t.Fatalf("expected ErrUnknownAttribute, got %v", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := renderer.Render(cancelled, newSignup(t), render.RenderOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRendererRegistersWithRegistry(t *testing.T) {
	renderer, err := New(WithPromptDriver(&stubDriver{}))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	registry := render.NewRegistry()
	if err := registry.Register(renderer); err != nil {
		t.Fatalf("register: %v", err)
	}
	if !registry.Has(Name) {
		t.Fatalf("expected %q registered", Name)
	}
}
