package vanilla

import (
	"embed"
	"io/fs"
	"sync"
)

// Template names inside TemplatesFS, without the extension.
const (
	FormTemplate         = "templates/form"
	FieldPartialTemplate = "templates/partials/field"
)

// StylesheetName is the bundled stylesheet inside AssetsFS.
const StylesheetName = "formkit-vanilla.css"

var (
	//go:embed templates/*.tpl templates/partials/*.tpl
	bundledTemplates embed.FS

	//go:embed assets/*
	bundledAssets embed.FS
)

// TemplatesFS is the form and field template bundle the renderer uses unless
// WithTemplatesFS replaces it. Custom bundles must provide FormTemplate.
func TemplatesFS() fs.FS {
	return bundledTemplates
}

var assets = sync.OnceValue(func() fs.FS {
	sub, err := fs.Sub(bundledAssets, "assets")
	if err != nil {
		return bundledAssets
	}
	return sub
})

// AssetsFS holds the stylesheet, rooted so StylesheetName opens directly.
func AssetsFS() fs.FS {
	return assets()
}

// defaultStylesheet is inlined when inline styles are on and no theme asset
// resolves the stylesheet.
var defaultStylesheet = sync.OnceValue(func() string {
	data, err := fs.ReadFile(assets(), StylesheetName)
	if err != nil {
		return ""
	}
	return string(data)
})
