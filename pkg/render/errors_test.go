package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/render"
)

type owner struct {
	Email string
	Phone string
}

type ThingForm struct {
	Name  string
	Owner owner
	Tags  []string
}

func newThingForm(t *testing.T) *model.FormModel {
	t.Helper()
	form, err := model.New(&ThingForm{})
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	return form
}

func TestMapErrorPayload_PathStyles(t *testing.T) {
	form := newThingForm(t)

	payload := map[string][]string{
		"/body/name":                 {"Name is required"},
		"body.owner.email":           {"Email invalid"},
		"$.body.tags[0]":             {"Tags must be unique"},
		"ThingForm[owner][phone]":    {"Phone malformed", " Phone malformed "},
		"request.payload.owner":      {"Owner missing"},
		"non_field_errors":           {"Form level error"},
		"request/body/unknown-field": {"Should fall back to form errors"},
		"":                           {"Unscoped form error"},
	}

	mapped := render.MapErrorPayload(form, payload)

	wantFields := map[string][]string{
		"name":        {"Name is required"},
		"owner.email": {"Email invalid"},
		"owner.phone": {"Phone malformed"},
		"tags":        {"Tags must be unique"},
	}
	if diff := cmp.Diff(wantFields, mapped.Fields); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}

	wantForm := []string{"Unscoped form error", "Form level error", "Owner missing", "Should fall back to form errors"}
	if diff := cmp.Diff(wantForm, mapped.Form); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyErrorPayload(t *testing.T) {
	form := newThingForm(t)
	form.AddError("name", "Name is required")

	formLevel := render.ApplyErrorPayload(form, map[string][]string{
		"name":    {"Name is required", "Name is taken"},
		"__all__": {"Try again"},
	})

	if diff := cmp.Diff([]string{"Name is required", "Name is taken"}, form.Errors("name")); diff != "" {
		t.Fatalf("attribute errors mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Try again"}, formLevel); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeFormErrors(t *testing.T) {
	merged := render.MergeFormErrors([]string{" First ", "Second"}, "Second", "third", "  ")
	want := []string{"First", "Second", "third"}

	if diff := cmp.Diff(want, merged); diff != "" {
		t.Fatalf("merged form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestSelectAttributes(t *testing.T) {
	form := newThingForm(t)

	all, err := render.SelectAttributes(form, nil, []string{"tags"})
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if diff := cmp.Diff([]string{"name", "owner.email", "owner.phone"}, all); diff != "" {
		t.Fatalf("attributes mismatch (-want +got):\n%s", diff)
	}

	ordered, err := render.SelectAttributes(form, []string{"tags", "name", "tags"}, nil)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if diff := cmp.Diff([]string{"tags", "name"}, ordered); diff != "" {
		t.Fatalf("ordered mismatch (-want +got):\n%s", diff)
	}

	if _, err := render.SelectAttributes(form, []string{"missing"}, nil); err == nil {
		t.Fatalf("expected error for unknown attribute")
	}
}
