package vanilla

// ChromeClass is a typed identifier for semantic chrome CSS classes.
type ChromeClass string

const (
	ClassForm    ChromeClass = "formkit-form"
	ClassFields  ChromeClass = "formkit-fields"
	ClassActions ChromeClass = "formkit-actions"
	ClassErrors  ChromeClass = "formkit-errors"
)

// Default*Class values are applied when ChromeClasses overrides are empty.
const (
	DefaultFormClass    = string(ClassForm)
	DefaultFieldsClass  = string(ClassFields)
	DefaultActionsClass = string(ClassActions)
	DefaultErrorsClass  = string(ClassErrors)
)

// ChromeClasses are the classes placed on the elements the renderer adds
// around the fields.
type ChromeClasses struct {
	Form    string `json:"form" yaml:"form"`
	Fields  string `json:"fields" yaml:"fields"`
	Actions string `json:"actions" yaml:"actions"`
	Errors  string `json:"errors" yaml:"errors"`
}

// DefaultChromeClasses returns the built-in chrome classes.
func DefaultChromeClasses() ChromeClasses {
	return ChromeClasses{
		Form:    DefaultFormClass,
		Fields:  DefaultFieldsClass,
		Actions: DefaultActionsClass,
		Errors:  DefaultErrorsClass,
	}
}

func (c ChromeClasses) merge(overrides ChromeClasses) ChromeClasses {
	if value := sanitizeClassList(overrides.Form); value != "" {
		c.Form = value
	}
	if value := sanitizeClassList(overrides.Fields); value != "" {
		c.Fields = value
	}
	if value := sanitizeClassList(overrides.Actions); value != "" {
		c.Actions = value
	}
	if value := sanitizeClassList(overrides.Errors); value != "" {
		c.Errors = value
	}
	return c
}

func (c ChromeClasses) payload() map[string]string {
	return map[string]string{
		"form":    c.Form,
		"fields":  c.Fields,
		"actions": c.Actions,
		"errors":  c.Errors,
	}
}
