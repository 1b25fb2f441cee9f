// Package model wraps a typed Go struct (or a dynamic attribute map) as a form
// model: attribute values, validation rules, per-attribute errors, labels,
// hints and placeholders. Widgets read everything they render from here.
//
// Attributes are the exported struct fields, named by the `form` tag or the
// lower camel case of the field name. Nested structs expose dotted attributes
// such as "user.login". Labels, hints, placeholders and widget names can be
// declared with the `label`, `hint`, `placeholder` and `widget` tags, through
// the optional provider interfaces, or through constructor options; options
// win over interfaces, interfaces over tags, and tags over generated labels.
//
// Loading request data coerces scalars into the declared field types.
// Unknown keys are ignored; values that cannot be coerced leave the zero value
// and surface as attribute errors.
package model
