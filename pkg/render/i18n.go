package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formkit/pkg/model"
)

// ErrMissingTranslator is passed to MissingTranslationHandler when a
// translation key is present but no Translator is configured.
var ErrMissingTranslator = errors.New("render: translator not configured")

// Translator resolves a message key for locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// TranslatorFunc adapts a function into a Translator.
type TranslatorFunc func(locale, key string, args ...any) (string, error)

// Translate calls the underlying function.
func (fn TranslatorFunc) Translate(locale, key string, args ...any) (string, error) {
	return fn(locale, key, args...)
}

// MissingTranslationHandler decides the text used when a key cannot be
// translated. err is ErrMissingTranslator or the translator's error.
type MissingTranslationHandler func(locale, key string, args []any, err error) string

// missingTranslationDefault returns the "default" argument when present and
// falls back to the key itself.
func missingTranslationDefault(_ string, key string, args []any, _ error) string {
	for _, arg := range args {
		values, ok := arg.(map[string]any)
		if !ok {
			continue
		}
		if fallback, ok := values["default"]; ok {
			if text := strings.TrimSpace(fmt.Sprint(fallback)); text != "" {
				return text
			}
		}
	}
	return key
}

// LocalizeFormModel translates labels and hints of attributes declaring a
// labelKey or hintKey. Missing translations go through opts.OnMissing and
// default to the current label or hint.
func LocalizeFormModel(form *model.FormModel, opts RenderOptions) error {
	if form == nil {
		return nil
	}
	onMissing := opts.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}

	for _, attribute := range form.Attributes() {
		if key := form.LabelKey(attribute); key != "" {
			label := translate(opts.Locale, key, form.Label(attribute), opts.Translator, onMissing)
			if err := form.SetLabel(attribute, label); err != nil {
				return err
			}
		}
		if key := form.HintKey(attribute); key != "" {
			hint := translate(opts.Locale, key, form.Hint(attribute), opts.Translator, onMissing)
			if err := form.SetHint(attribute, hint); err != nil {
				return err
			}
		}
	}
	return nil
}

// Localizer returns a decorator applying LocalizeFormModel with opts.
func Localizer(opts RenderOptions) model.Decorator {
	return model.DecoratorFunc(func(form *model.FormModel) error {
		return LocalizeFormModel(form, opts)
	})
}

// Translate resolves key with the configured translator, falling back to
// fallback through the missing handler.
func (o RenderOptions) Translate(key, fallback string) string {
	onMissing := o.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}
	return translate(o.Locale, key, fallback, o.Translator, onMissing)
}

func translate(locale, key, fallback string, t Translator, onMissing MissingTranslationHandler) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}
	args := []any{map[string]any{"default": fallback}}
	if t == nil {
		return onMissing(locale, key, args, ErrMissingTranslator)
	}
	result, err := t.Translate(locale, key)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}
	return onMissing(locale, key, args, err)
}
