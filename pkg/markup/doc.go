// Package markup renders HTML tags from attribute maps and derives form input
// names and ids from attribute expressions. Attribute maps follow the
// "options array" convention used by every widget: computed defaults are
// merged with caller overrides, classes are concatenated, and booleans toggle
// bare attributes. Rendering is deterministic so golden snapshots stay stable.
package markup
