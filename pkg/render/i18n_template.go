package render

import (
	"fmt"
	"strings"
)

// TemplateI18nFuncs returns the translation helpers form templates call. They
// use the locale, translator and missing handler of opts:
//
//	{{ translate("form.title", "Sign up") }}
//	{{ translate("form.greeting", "Hello", name) }}
//	{{ current_locale() }}
//
// The optional second argument is the fallback text; further arguments are
// passed to the translator.
func TemplateI18nFuncs(opts RenderOptions) map[string]any {
	onMissing := opts.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}

	return map[string]any{
		"translate": func(key string, args ...any) string {
			key = strings.TrimSpace(key)
			fallback := ""
			if len(args) > 0 {
				fallback = fmt.Sprint(args[0])
				args = args[1:]
			}
			if key == "" {
				return fallback
			}
			missing := append([]any{map[string]any{"default": fallback}}, args...)
			if opts.Translator == nil {
				return onMissing(opts.Locale, key, missing, ErrMissingTranslator)
			}
			msg, err := opts.Translator.Translate(opts.Locale, key, args...)
			if err != nil || strings.TrimSpace(msg) == "" {
				return onMissing(opts.Locale, key, missing, err)
			}
			return msg
		},
		"current_locale": func() string {
			return opts.Locale
		},
	}
}
