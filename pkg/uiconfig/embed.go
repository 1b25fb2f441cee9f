package uiconfig

import (
	"embed"
	"io/fs"
)

//go:embed presets/*
var embeddedPresets embed.FS

// PresetsFS returns the bundled widget configurations (bootstrap5, bulma).
// Callers may pass it to LoadFS.
func PresetsFS() fs.FS {
	sub, err := fs.Sub(embeddedPresets, "presets")
	if err != nil {
		panic(err)
	}
	return sub
}

// LoadPresets loads the bundled configurations.
func LoadPresets() (*Store, error) {
	return LoadFS(PresetsFS())
}
