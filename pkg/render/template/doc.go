// Package template defines the template rendering seam used by HTML
// renderers. The gotemplate subpackage provides the pongo2-backed engine.
package template
