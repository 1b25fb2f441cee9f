package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating renderer configuration.
type RenderOptions struct {
	// Action is the form action URL.
	Action string
	// Method is the HTTP verb. Renderers translate PUT/PATCH/DELETE into a POST
	// plus a hidden _method input.
	Method string
	// Attributes limits and orders the rendered attributes. Empty renders every
	// attribute in declaration order.
	Attributes []string
	// Exclude drops attributes from the rendered set.
	Exclude []string
	// Errors surfaces server-side validation feedback keyed by field path. Paths
	// are mapped onto model attributes with MapErrorPayload; unmatched paths
	// become form-level messages in the error summary.
	Errors map[string][]string
	// HiddenFields are emitted right after the opening form tag.
	HiddenFields map[string]string
	// SubmitLabel overrides the submit button text.
	SubmitLabel string
	// Config overrides the renderer's widget configuration.
	Config *widgets.Config
	// FieldOptions passes per-attribute widget options (items, widget names).
	FieldOptions map[string][]widgets.Option
	// Decorators run against the model before rendering.
	Decorators []model.Decorator

	Locale     string
	Translator Translator
	OnMissing  MissingTranslationHandler

	// Theme carries the resolved go-theme selection (tokens, partials, assets).
	Theme *theme.RendererConfig
}
