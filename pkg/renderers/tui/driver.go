package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/validation"
)

// Prompt is the question asked for one form attribute. It carries what the
// model knows about the attribute so drivers can check answers before they
// are assigned.
type Prompt struct {
	Attribute   string
	Message     string
	Help        string
	Placeholder string
	// Default is the current value rendered as text; list attributes join
	// Defaults with ", ".
	Default  string
	Defaults []string
	Options  []string
	Required bool
	// Validate checks a raw answer against the attribute rules that do not
	// depend on other attributes. Nil accepts any answer.
	Validate func(answer string) error
}

// PromptDriver asks prompts. The terminal driver is the default; tests script
// answers through their own implementation.
type PromptDriver interface {
	Input(ctx context.Context, p Prompt) (string, error)
	Password(ctx context.Context, p Prompt) (string, error)
	Confirm(ctx context.Context, p Prompt) (bool, error)
	Select(ctx context.Context, p Prompt) (string, error)
	MultiSelect(ctx context.Context, p Prompt) ([]string, error)
	TextArea(ctx context.Context, p Prompt) (string, error)
	Info(ctx context.Context, msg string) error
}

// promptFor builds the prompt for attribute from its label, hint, current
// value and rules.
func promptFor(form *model.FormModel, attribute string, theme Theme, choices []string) Prompt {
	rules := form.Rules(attribute)
	kind := form.Kind(attribute)
	current, _ := form.Value(attribute)

	p := Prompt{
		Attribute:   attribute,
		Message:     theme.PromptPrefix + form.Label(attribute),
		Help:        form.Hint(attribute),
		Placeholder: form.Placeholder(attribute),
		Default:     displayValue(current),
		Options:     choices,
		Required:    validation.HasRule(rules, validation.RuleRequired),
		Validate:    answerValidator(form.Label(attribute), kind, rules),
	}
	if isList(kind) {
		p.Defaults = displayList(current)
		p.Default = strings.Join(p.Defaults, ", ")
	}
	return p
}

// answerValidator runs the attribute rules against a typed answer. Compare
// and custom rules need the assigned model value, so they run after
// assignment instead.
func answerValidator(label string, kind model.Kind, rules []validation.Rule) func(string) error {
	if kind == model.KindBool || isList(kind) {
		return nil
	}
	var checked []validation.Rule
	switch kind {
	case model.KindInt, model.KindUint:
		if !validation.HasRule(rules, validation.RuleInteger) {
			checked = append(checked, validation.Integer())
		}
	case model.KindFloat:
		if !validation.HasRule(rules, validation.RuleNumber) {
			checked = append(checked, validation.Number())
		}
	}
	for _, rule := range rules {
		switch rule.Kind {
		case validation.RuleRequired, validation.RuleCompare, validation.RuleCustom:
			continue
		}
		checked = append(checked, rule)
	}
	if len(checked) == 0 {
		return nil
	}
	return func(answer string) error {
		if messages := validation.ValidateValue(label, strings.TrimSpace(answer), checked...); len(messages) > 0 {
			return errors.New(messages[0])
		}
		return nil
	}
}

func isList(kind model.Kind) bool {
	return kind == model.KindStrings || kind == model.KindInts
}

type surveyDriver struct {
	out io.Writer
}

// NewSurveyDriver returns the interactive terminal driver. Info messages are
// written to out, or stdout when nil.
func NewSurveyDriver(out io.Writer) PromptDriver {
	if out == nil {
		out = os.Stdout
	}
	return &surveyDriver{out: out}
}

func (d *surveyDriver) Input(ctx context.Context, p Prompt) (string, error) {
	help := p.Help
	if help == "" && p.Placeholder != "" {
		help = p.Placeholder
	}
	return d.askString(ctx, &survey.Input{Message: p.Message, Help: help, Default: p.Default}, askOpts(p))
}

func (d *surveyDriver) Password(ctx context.Context, p Prompt) (string, error) {
	return d.askString(ctx, &survey.Password{Message: p.Message, Help: p.Help}, askOpts(p))
}

func (d *surveyDriver) TextArea(ctx context.Context, p Prompt) (string, error) {
	return d.askString(ctx, &survey.Multiline{Message: p.Message, Help: p.Help, Default: p.Default}, askOpts(p))
}

func (d *surveyDriver) askString(ctx context.Context, prompt survey.Prompt, opts []survey.AskOpt) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	if err := survey.AskOne(prompt, &out, opts...); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (d *surveyDriver) Confirm(ctx context.Context, p Prompt) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	checked, _ := strconv.ParseBool(p.Default)
	var out bool
	prompt := &survey.Confirm{Message: p.Message, Help: p.Help, Default: checked}
	if err := survey.AskOne(prompt, &out); err != nil {
		return false, translateSurveyErr(err)
	}
	return out, nil
}

func (d *surveyDriver) Select(ctx context.Context, p Prompt) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	prompt := &survey.Select{Message: p.Message, Options: p.Options, Help: p.Help}
	for _, option := range p.Options {
		if option == p.Default {
			prompt.Default = option
			break
		}
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (d *surveyDriver) MultiSelect(ctx context.Context, p Prompt) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []string
	prompt := &survey.MultiSelect{Message: p.Message, Options: p.Options, Help: p.Help}
	if defaults := knownOptions(p.Options, p.Defaults); len(defaults) > 0 {
		prompt.Default = defaults
	}
	var opts []survey.AskOpt
	if p.Required {
		opts = append(opts, survey.WithValidator(survey.Required))
	}
	if err := survey.AskOne(prompt, &out, opts...); err != nil {
		return nil, translateSurveyErr(err)
	}
	return out, nil
}

func (d *surveyDriver) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, msg)
	return err
}

// askOpts maps the prompt rules onto survey validators so invalid answers are
// rejected before they reach the model.
func askOpts(p Prompt) []survey.AskOpt {
	var opts []survey.AskOpt
	if p.Required {
		opts = append(opts, survey.WithValidator(survey.Required))
	}
	if p.Validate != nil {
		validate := p.Validate
		opts = append(opts, survey.WithValidator(func(ans any) error {
			value, _ := ans.(string)
			return validate(value)
		}))
	}
	return opts
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

// knownOptions keeps the values that are offered options, in option order.
func knownOptions(options, values []string) []string {
	var out []string
	for _, option := range options {
		for _, value := range values {
			if option == value {
				out = append(out, option)
				break
			}
		}
	}
	return out
}
