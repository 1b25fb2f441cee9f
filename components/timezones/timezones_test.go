package timezones

import (
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/validation"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

type ProfileForm struct {
	Zone string `widget:"timezone"`
}

func TestLoadZones_DedupesSortsAndIgnoresComments(t *testing.T) {
	input := strings.NewReader(`
# Comment
America/New_York
Europe/Paris
America/New_York

UTC
`)

	zones, err := LoadZones(input)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if diff := cmp.Diff([]string{"America/New_York", "Europe/Paris", "UTC"}, zones); diff != "" {
		t.Fatalf("zones mismatch (-want +got):\n%s", diff)
	}
	if _, err := LoadZones(nil); err == nil {
		t.Fatalf("expected missing reader error")
	}
}

func TestDefaultZones_ContainsCommonEntries(t *testing.T) {
	zones, err := DefaultZones()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(zones) < 200 {
		t.Fatalf("expected a reasonably sized list, got %d", len(zones))
	}
	for _, expected := range []string{"America/New_York", "Europe/Paris", "UTC"} {
		if !slices.Contains(zones, expected) {
			t.Fatalf("expected zone %q to be present", expected)
		}
	}

	zones[0] = "mutated"
	again, _ := DefaultZones()
	if again[0] == "mutated" {
		t.Fatalf("expected DefaultZones to return a copy")
	}
}

func TestSearch_PrefixBeforeContains(t *testing.T) {
	zones := []string{"x/a/b", "a/b", "a/b/c", "c/d"}

	if diff := cmp.Diff([]string{"a/b", "a/b/c", "x/a/b"}, Search(zones, "A/B", 0)); diff != "" {
		t.Fatalf("results mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a/b"}, Search(zones, "a/b", 1)); diff != "" {
		t.Fatalf("limited results mismatch (-want +got):\n%s", diff)
	}
	if Search(zones, "  ", 10) != nil {
		t.Fatalf("expected no results for an empty query")
	}
}

func TestGroups(t *testing.T) {
	groups := Groups([]string{"America/Argentina/Buenos_Aires", "America/New_York", "Europe/Paris", "UTC"})
	want := []widgets.Group{
		{Label: "America", Items: []widgets.Item{
			{Value: "America/Argentina/Buenos_Aires", Label: "Argentina / Buenos Aires"},
			{Value: "America/New_York", Label: "New York"},
		}},
		{Label: "Europe", Items: []widgets.Item{{Value: "Europe/Paris", Label: "Paris"}}},
		{Label: "Other", Items: []widgets.Item{{Value: "UTC", Label: "UTC"}}},
	}
	if diff := cmp.Diff(want, groups); diff != "" {
		t.Fatalf("groups mismatch (-want +got):\n%s", diff)
	}
}

func TestWidgetRendersGroupedSelect(t *testing.T) {
	registry := widgets.NewDefaultRegistry()
	if err := Register(registry); err != nil {
		t.Fatalf("register: %v", err)
	}
	descriptor, ok := registry.Descriptor(Widget)
	if !ok {
		t.Fatalf("expected %q registered", Widget)
	}

	form := model.MustNew(&ProfileForm{Zone: "Europe/Paris"})
	html, err := descriptor.Renderer(form, "zone")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, fragment := range []string{
		`<select id="profileform-zone" name="ProfileForm[zone]">`,
		`<option value=""></option>`,
		`<optgroup label="Europe">`,
		`<option value="Europe/Paris" selected>Paris</option>`,
	} {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected %q in\n%s", fragment, html)
		}
	}
}

func TestRule(t *testing.T) {
	if got := validation.ValidateValue("Zone", "Europe/Paris", Rule()); len(got) != 0 {
		t.Fatalf("expected valid zone, got %v", got)
	}
	got := validation.ValidateValue("Zone", "Mars/Olympus", Rule())
	if diff := cmp.Diff([]string{"Zone is not a known time zone."}, got); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}
