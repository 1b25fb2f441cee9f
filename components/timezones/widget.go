package timezones

import (
	"slices"

	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/validation"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

// Widget is the registry name of the timezone select.
const Widget = "timezone"

// Register adds the timezone widget to registry.
func Register(registry *widgets.Registry) error {
	return registry.Register(Widget, widgets.Descriptor{Renderer: Render})
}

// Render renders the embedded zones as a select grouped by region. Caller
// options come last so they can replace the prompt or add items.
func Render(form *model.FormModel, attribute string, opts ...widgets.Option) (string, error) {
	zones, err := DefaultZones()
	if err != nil {
		return "", err
	}
	base := []widgets.Option{
		widgets.WithPrompt(""),
		widgets.WithGroups(Groups(zones)...),
	}
	return widgets.Select(form, attribute, append(base, opts...)...)
}

// Rule rejects values that are not in the embedded zone list.
func Rule() validation.Rule {
	return validation.Func(func(value any) string {
		name, _ := value.(string)
		zones, err := DefaultZones()
		if err != nil {
			return err.Error()
		}
		if _, found := slices.BinarySearch(zones, name); !found {
			return "{label} is not a known time zone."
		}
		return ""
	})
}
