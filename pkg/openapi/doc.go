// Package openapi builds form attributes and validation rules from the
// component schemas of an OpenAPI 3 document. Documents are parsed with
// kin-openapi; local $ref pointers are resolved before mapping.
package openapi
