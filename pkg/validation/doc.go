// Package validation holds declarative attribute rules and the validator that
// turns them into per-attribute error messages. Messages are templates with
// {label}, {value}, {min}, {max} and {other} placeholders.
package validation
