package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/validation"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

// Name is the registry key of the terminal renderer.
const Name = "tui"

const defaultMaxAttempts = 3

// Renderer fills a form model through interactive prompts and serializes the
// collected values. It satisfies render.Renderer so it can be registered next
// to the HTML renderers.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
	choices           map[string][]string
	maxAttempts       int
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a terminal renderer. Without WithPromptDriver it prompts on
// the process terminal.
func New(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		maxAttempts:  defaultMaxAttempts,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	if !r.outputFormat.valid() {
		return nil, fmt.Errorf("tui: unsupported output format %q", r.outputFormat)
	}
	return r, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return r.outputFormat.ContentType()
}

// Render prompts for every selected attribute and returns the serialized
// values.
func (r *Renderer) Render(ctx context.Context, form *model.FormModel, options render.RenderOptions) ([]byte, error) {
	attributes, err := r.fill(ctx, form, options)
	if err != nil {
		return nil, err
	}
	values, err := r.collect(form, attributes)
	if err != nil {
		return nil, err
	}
	return r.encode(form, attributes, values)
}

// Fill prompts for every selected attribute and stores the answers on form.
// Each answer is validated against the attribute rules before moving on.
func (r *Renderer) Fill(ctx context.Context, form *model.FormModel, options render.RenderOptions) error {
	_, err := r.fill(ctx, form, options)
	return err
}

func (r *Renderer) fill(ctx context.Context, form *model.FormModel, options render.RenderOptions) ([]string, error) {
	if form == nil {
		return nil, errors.New("tui: form model is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	decorators := append([]model.Decorator{render.Localizer(options)}, options.Decorators...)
	if err := form.Decorate(decorators...); err != nil {
		return nil, err
	}
	for _, message := range render.ApplyErrorPayload(form, options.Errors) {
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+message); err != nil {
			return nil, err
		}
	}

	attributes, err := render.SelectAttributes(form, options.Attributes, options.Exclude)
	if err != nil {
		return nil, err
	}
	for _, attribute := range attributes {
		if form.Widget(attribute) == widgets.WidgetHidden {
			continue
		}
		if err := r.promptAttribute(ctx, form, attribute); err != nil {
			return nil, err
		}
	}
	return attributes, nil
}

func (r *Renderer) promptAttribute(ctx context.Context, form *model.FormModel, attribute string) error {
	// Errors carried in from a previous submission are shown once.
	if message := form.FirstError(attribute); message != "" {
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+message); err != nil {
			return err
		}
	}

	for attempt := 0; attempt < r.maxAttempts; attempt++ {
		answer, err := r.ask(ctx, form, attribute)
		if err != nil {
			return err
		}

		form.ClearErrors(attribute)
		ok, err := form.Assign(attribute, answer)
		if err != nil {
			return err
		}
		if ok {
			result := validation.Validate(form, map[string][]validation.Rule{attribute: form.Rules(attribute)})
			messages := result.ErrorsFor(attribute)
			if len(messages) == 0 {
				return nil
			}
			for _, message := range messages {
				form.AddError(attribute, message)
			}
		}
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+form.FirstError(attribute)); err != nil {
			return err
		}
	}
	return fmt.Errorf("%w: %s", ErrTooManyAttempts, attribute)
}

// ask picks a prompt from the attribute kind, widget and choices.
func (r *Renderer) ask(ctx context.Context, form *model.FormModel, attribute string) (any, error) {
	choices := r.choicesFor(form, attribute)
	prompt := promptFor(form, attribute, r.theme, choices)
	kind := form.Kind(attribute)

	switch {
	case kind == model.KindBool:
		return r.driver.Confirm(ctx, prompt)
	case len(choices) > 0 && isList(kind):
		selected, err := r.driver.MultiSelect(ctx, prompt)
		if err != nil {
			return nil, err
		}
		return knownOptions(choices, selected), nil
	case len(choices) > 0:
		selected, err := r.driver.Select(ctx, prompt)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(choices, selected) {
			return "", nil
		}
		return selected, nil
	}

	switch form.Widget(attribute) {
	case widgets.WidgetPassword:
		prompt.Default = ""
		return r.driver.Password(ctx, prompt)
	case widgets.WidgetTextarea:
		return r.driver.TextArea(ctx, prompt)
	}

	answer, err := r.driver.Input(ctx, prompt)
	if err != nil {
		return nil, err
	}
	if isList(kind) {
		return splitList(answer), nil
	}
	return answer, nil
}

func (r *Renderer) choicesFor(form *model.FormModel, attribute string) []string {
	if values, ok := r.choices[attribute]; ok && len(values) > 0 {
		return values
	}
	for _, rule := range form.Rules(attribute) {
		if rule.Kind == validation.RuleIn && len(rule.Values) > 0 {
			return rule.Values
		}
	}
	return nil
}

func (r *Renderer) collect(form *model.FormModel, attributes []string) (map[string]any, error) {
	values := make(map[string]any, len(attributes))
	for _, attribute := range attributes {
		value, err := form.Value(attribute)
		if err != nil {
			return nil, err
		}
		values[attribute] = value
	}
	if r.submitTransformer == nil {
		return values, nil
	}
	transformed, err := r.submitTransformer(values)
	if err != nil {
		return nil, fmt.Errorf("tui: submit transformer: %w", err)
	}
	return transformed, nil
}

func (r *Renderer) encode(form *model.FormModel, attributes []string, values map[string]any) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		encoded := url.Values{}
		for _, key := range orderedKeys(attributes, values) {
			name, err := form.InputName(key)
			if err != nil {
				name = key
			}
			for _, item := range displayList(values[key]) {
				encoded.Add(name, item)
			}
		}
		return []byte(encoded.Encode()), nil

	case OutputFormatPrettyText:
		var b strings.Builder
		for _, key := range orderedKeys(attributes, values) {
			label := key
			if form.Has(key) {
				label = form.Label(key)
			}
			fmt.Fprintf(&b, "%s%s: %s\n", r.theme.InfoPrefix, label, strings.Join(displayList(values[key]), ", "))
		}
		return []byte(b.String()), nil

	default:
		payload, err := json.MarshalIndent(nest(values), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("tui: encode json: %w", err)
		}
		return payload, nil
	}
}

// orderedKeys keeps the prompt order and appends keys a transformer added,
// sorted.
func orderedKeys(attributes []string, values map[string]any) []string {
	out := make([]string, 0, len(values))
	for _, attribute := range attributes {
		if _, ok := values[attribute]; ok {
			out = append(out, attribute)
		}
	}
	var extra []string
	for key := range values {
		if !slices.Contains(attributes, key) {
			extra = append(extra, key)
		}
	}
	slices.Sort(extra)
	return append(out, extra...)
}

// nest expands dotted attribute names into nested objects.
func nest(values map[string]any) map[string]any {
	out := make(map[string]any, len(values))
	for key, value := range values {
		segments := strings.Split(key, ".")
		cursor := out
		for _, segment := range segments[:len(segments)-1] {
			next, ok := cursor[segment].(map[string]any)
			if !ok {
				next = make(map[string]any)
				cursor[segment] = next
			}
			cursor = next
		}
		cursor[segments[len(segments)-1]] = value
	}
	return out
}

func displayValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case time.Time:
		if v.IsZero() {
			return ""
		}
		if v.Hour() == 0 && v.Minute() == 0 && v.Second() == 0 {
			return v.Format(time.DateOnly)
		}
		return v.Format(time.RFC3339)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	default:
		return fmt.Sprint(v)
	}
}

func displayList(value any) []string {
	switch v := value.(type) {
	case nil:
		return nil
	case []string:
		return v
	case []int:
		out := make([]string, 0, len(v))
		for _, n := range v {
			out = append(out, strconv.Itoa(n))
		}
		return out
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, displayValue(item))
		}
		return out
	default:
		return []string{displayValue(v)}
	}
}

func splitList(answer string) []string {
	var out []string
	for _, part := range strings.Split(answer, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
