package template

import (
	"io"
)

// TemplateRenderer executes the templates a form renderer lays its payload
// out with. RenderTemplate takes a template name relative to the bundle;
// RenderString takes inline template source. The rendered text is returned
// and copied to every writer in out.
type TemplateRenderer interface {
	RenderTemplate(name string, data map[string]any, out ...io.Writer) (string, error)
	RenderString(source string, data map[string]any, out ...io.Writer) (string, error)
}
