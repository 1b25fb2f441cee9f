// Package widgets renders HTML fragments for form model attributes: labels,
// inputs, hints, errors, choice lists and the field container that composes
// them. Every widget merges caller options over computed defaults (id, name,
// value, classes, ARIA state) and returns the markup as a string.
package widgets
