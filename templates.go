package formkit

import (
	"io/fs"

	"github.com/goliatone/go-formkit/pkg/renderers/vanilla"
	"github.com/goliatone/go-formkit/pkg/uiconfig"
)

// EmbeddedTemplates exposes the built-in vanilla renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// AssetsFS exposes the bundled stylesheet so applications can serve it next
// to rendered forms.
//
// Typical mount:
//
//	mux.Handle("/formkit/",
//	  http.StripPrefix("/formkit/",
//	    http.FileServerFS(formkit.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}

// Presets loads the bundled CSS framework configurations (bootstrap5, bulma).
func Presets() (*uiconfig.Store, error) {
	return uiconfig.LoadPresets()
}
