package render

import (
	"context"

	"github.com/goliatone/go-formkit/pkg/model"
)

// Renderer converts a form model into a byte representation (HTML, partials).
// Renderers may mutate the model: server errors from RenderOptions.Errors are
// recorded on it and labels are localized in place.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form *model.FormModel, options RenderOptions) ([]byte, error)
}
