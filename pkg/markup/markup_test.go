package markup_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/markup"
)

func TestRenderAttributesOrdering(t *testing.T) {
	attrs := markup.Attributes{
		"required":     true,
		"disabled":     false,
		"placeholder":  nil,
		"value":        "v",
		"name":         "F[a]",
		"class":        []string{"x", "y"},
		"id":           "a",
		"type":         "text",
		"aria-invalid": "true",
		"data":         map[string]any{"role": "x"},
	}

	got := markup.RenderAttributes(attrs)
	want := ` type="text" id="a" class="x y" name="F[a]" value="v" aria-invalid="true" data-role="x" required`
	if got != want {
		t.Fatalf("attributes mismatch\nwant: %s\n got: %s", want, got)
	}
}

func TestRenderAttributesEscapesValues(t *testing.T) {
	got := markup.RenderAttributes(markup.Attributes{"value": `a"b<c`, "maxlength": 12, "step": 0.5})
	want := ` value="a&#34;b&lt;c" maxlength="12" step="0.5"`
	if got != want {
		t.Fatalf("attributes mismatch\nwant: %s\n got: %s", want, got)
	}
}

func TestAttributesMergeConcatenatesClasses(t *testing.T) {
	base := markup.Attributes{"class": "form-control", "id": "a", "data": map[string]any{"x": "1"}}
	merged := base.Merge(markup.Attributes{
		"class": []string{"is-invalid", "form-control"},
		"id":    "b",
		"data":  map[string]string{"y": "2"},
	})

	if diff := cmp.Diff([]string{"form-control", "is-invalid"}, merged["class"]); diff != "" {
		t.Fatalf("class mismatch (-want +got):\n%s", diff)
	}
	if merged["id"] != "b" {
		t.Fatalf("expected override id, got %v", merged["id"])
	}
	if diff := cmp.Diff(map[string]any{"x": "1", "y": "2"}, merged["data"]); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
	if base["id"] != "a" {
		t.Fatalf("merge mutated base attributes")
	}
}

func TestAddClassSkipsDuplicates(t *testing.T) {
	attrs := markup.Attributes{}
	attrs.AddClass("a", " ", "b a")
	attrs.AddClass("b")
	if !attrs.HasClass("a") || !attrs.HasClass("b") {
		t.Fatalf("expected classes a and b, got %v", attrs["class"])
	}
	if got := markup.RenderAttributes(attrs); got != ` class="a b"` {
		t.Fatalf("unexpected class rendering %q", got)
	}
}

func TestTagRendering(t *testing.T) {
	if got := markup.Tag("input", "ignored", markup.Attributes{"type": "text"}); got != `<input type="text">` {
		t.Fatalf("void tag mismatch: %s", got)
	}
	if got := markup.Tag("label", markup.Encode("A & B"), markup.Attributes{"for": "x"}); got != `<label for="x">A &amp; B</label>` {
		t.Fatalf("tag mismatch: %s", got)
	}
}

func TestInputNameAndID(t *testing.T) {
	cases := []struct {
		form, attribute string
		name, id        string
	}{
		{"LoginForm", "login", "LoginForm[login]", "loginform-login"},
		{"LoginForm", "[0]login", "LoginForm[0][login]", "loginform-0-login"},
		{"LoginForm", "user.login", "LoginForm[user][login]", "loginform-user-login"},
		{"LoginForm", "tags[]", "LoginForm[tags][]", "loginform-tags"},
		{"", "login", "login", "login"},
		{"", "user.login", "user[login]", "user-login"},
	}

	for _, tc := range cases {
		name, err := markup.InputName(tc.form, tc.attribute)
		if err != nil {
			t.Fatalf("input name %q: %v", tc.attribute, err)
		}
		if name != tc.name {
			t.Fatalf("input name %q: want %s, got %s", tc.attribute, tc.name, name)
		}
		id, err := markup.InputID(tc.form, tc.attribute)
		if err != nil {
			t.Fatalf("input id %q: %v", tc.attribute, err)
		}
		if id != tc.id {
			t.Fatalf("input id %q: want %s, got %s", tc.attribute, tc.id, id)
		}
	}
}

func TestInputNameRejectsTabularWithoutForm(t *testing.T) {
	if _, err := markup.InputName("", "[0]login"); !errors.Is(err, markup.ErrInvalidAttribute) {
		t.Fatalf("expected ErrInvalidAttribute, got %v", err)
	}
	if _, err := markup.InputName("F", "!!"); !errors.Is(err, markup.ErrInvalidAttribute) {
		t.Fatalf("expected ErrInvalidAttribute for invalid characters, got %v", err)
	}
}

func TestParseAttribute(t *testing.T) {
	prefix, name, suffix, err := markup.ParseAttribute("[0]name[1]")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if diff := cmp.Diff([]string{"[0]", "name", "[1]"}, []string{prefix, name, suffix}); diff != "" {
		t.Fatalf("parse mismatch (-want +got):\n%s", diff)
	}
}
