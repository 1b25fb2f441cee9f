package widgets

// Default template tokens substituted by the field container.
const (
	TokenLabel = "{label}"
	TokenInput = "{input}"
	TokenHint  = "{hint}"
	TokenError = "{error}"
)

// Validation state targets for Config.ValidationStateOn. The empty value
// marks both the input and the container.
const (
	StateOnInput     = "input"
	StateOnContainer = "container"
)

// DefaultTemplate lays the field parts out one per line.
const DefaultTemplate = TokenLabel + "\n" + TokenInput + "\n" + TokenHint + "\n" + TokenError

// Config holds the class names and layout shared by widgets. It decodes from
// YAML/JSON so presets (bootstrap, bulma, ...) can live in config files.
type Config struct {
	Template string `json:"template" yaml:"template"`

	ContainerTag           string `json:"containerTag" yaml:"containerTag"`
	ContainerClass         string `json:"containerClass" yaml:"containerClass"`
	ContainerRequiredClass string `json:"containerRequiredClass" yaml:"containerRequiredClass"`
	ContainerValidClass    string `json:"containerValidClass" yaml:"containerValidClass"`
	ContainerInvalidClass  string `json:"containerInvalidClass" yaml:"containerInvalidClass"`

	LabelClass string `json:"labelClass" yaml:"labelClass"`
	InputClass string `json:"inputClass" yaml:"inputClass"`

	HintTag    string `json:"hintTag" yaml:"hintTag"`
	HintClass  string `json:"hintClass" yaml:"hintClass"`
	ErrorTag   string `json:"errorTag" yaml:"errorTag"`
	ErrorClass string `json:"errorClass" yaml:"errorClass"`

	ValidClass   string `json:"validClass" yaml:"validClass"`
	InvalidClass string `json:"invalidClass" yaml:"invalidClass"`

	SummaryClass  string `json:"summaryClass" yaml:"summaryClass"`
	SummaryHeader string `json:"summaryHeader" yaml:"summaryHeader"`

	ButtonClass string `json:"buttonClass" yaml:"buttonClass"`

	// EnrichFromRules maps validation rules onto HTML5 attributes
	// (required, minlength, pattern, ...).
	EnrichFromRules        bool `json:"enrichFromRules" yaml:"enrichFromRules"`
	EncloseCheckboxByLabel bool `json:"encloseCheckboxByLabel" yaml:"encloseCheckboxByLabel"`

	// AriaRequired adds aria-required="true" to inputs with a required rule.
	AriaRequired bool `json:"ariaRequired" yaml:"ariaRequired"`
	// ContainerIDClass adds a "field-<input id>" class to the container.
	ContainerIDClass bool `json:"containerIdClass" yaml:"containerIdClass"`
	// ValidationStateOn picks where valid/invalid classes go: StateOnInput,
	// StateOnContainer, or both when empty. aria-invalid always stays on the
	// input.
	ValidationStateOn string `json:"validationStateOn" yaml:"validationStateOn"`
}

// DefaultConfig returns the built-in, framework-neutral class set.
func DefaultConfig() Config {
	return Config{
		Template:               DefaultTemplate,
		ContainerTag:           "div",
		ContainerClass:         "field",
		ContainerRequiredClass: "required",
		ContainerValidClass:    "has-success",
		ContainerInvalidClass:  "has-error",
		HintTag:                "div",
		HintClass:              "hint",
		ErrorTag:               "div",
		ErrorClass:             "error",
		ValidClass:             "is-valid",
		InvalidClass:           "is-invalid",
		SummaryClass:           "error-summary",
		SummaryHeader:          "Please fix the following errors:",
		EncloseCheckboxByLabel: true,
		AriaRequired:           true,
	}
}

func (c Config) hintTag() string {
	if c.HintTag == "" {
		return "div"
	}
	return c.HintTag
}

func (c Config) errorTag() string {
	if c.ErrorTag == "" {
		return "div"
	}
	return c.ErrorTag
}

func (c Config) template() string {
	if c.Template == "" {
		return DefaultTemplate
	}
	return c.Template
}

func (c Config) stateOnInput() bool {
	return c.ValidationStateOn != StateOnContainer
}

func (c Config) stateOnContainer() bool {
	return c.ValidationStateOn != StateOnInput
}
