// Package formkit renders form models as HTML or fills them interactively in
// a terminal.
//
// A form model wraps a tagged struct (model.New) or a declared attribute list
// (model.NewDynamic, openapi.Schema.Form). The Generator routes it through a
// renderer registry holding the vanilla HTML renderer and the tui renderer,
// applying shared defaults such as the theme, the widget configuration and
// per-form overrides loaded with uiconfig.
//
//	gen, err := formkit.New(formkit.WithTheme(themeCfg))
//	html, err := gen.Render(ctx, "", form, formkit.RenderOptions{Action: "/signup"})
package formkit
