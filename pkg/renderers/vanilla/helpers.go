package vanilla

import (
	"maps"
	"slices"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// sanitizeClassList collapses whitespace and drops tokens in the reserved
// "formkit-" namespace so overrides cannot impersonate built-in chrome.
func sanitizeClassList(value string) string {
	tokens := strings.Fields(value)
	keep := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if strings.HasPrefix(token, "formkit-") {
			continue
		}
		keep = append(keep, token)
	}
	return strings.Join(keep, " ")
}

type rendererTheme struct {
	Name         string
	Variant      string
	Partials     map[string]string
	Tokens       map[string]string
	CSSVars      map[string]string
	CSSVarsStyle string
}

// payload is the theme as form templates see it: {{ theme.name }}.
func (t rendererTheme) payload() map[string]any {
	return map[string]any{
		"name":           t.Name,
		"variant":        t.Variant,
		"partials":       t.Partials,
		"tokens":         t.Tokens,
		"css_vars":       t.CSSVars,
		"css_vars_style": t.CSSVarsStyle,
	}
}

func buildThemeContext(cfg *theme.RendererConfig) rendererTheme {
	if cfg == nil {
		return rendererTheme{}
	}
	ctx := rendererTheme{
		Name:     cfg.Theme,
		Variant:  cfg.Variant,
		Partials: maps.Clone(cfg.Partials),
		Tokens:   maps.Clone(cfg.Tokens),
		CSSVars:  maps.Clone(cfg.CSSVars),
	}
	ctx.CSSVarsStyle = cssVarsStyle(ctx.CSSVars)
	return ctx
}

func themeAssetResolver(cfg *theme.RendererConfig) func(string) string {
	if cfg == nil {
		return nil
	}
	return cfg.AssetURL
}

// cssVarsStyle renders vars as a :root block with keys sorted.
func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range slices.Sorted(maps.Keys(vars)) {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}
