package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
)

func main() {
	var opts options
	flag.StringVar(&opts.document, "openapi", "", "OpenAPI document path or URL")
	flag.StringVar(&opts.component, "component", "", "component schema to render")
	flag.BoolVar(&opts.remote, "remote", false, "allow fetching -openapi over HTTP")
	flag.StringVar(&opts.configDir, "config", "", "directory of JSON/YAML widget configs and form overrides")
	flag.StringVar(&opts.preset, "preset", "", "widget config name (from -config or the bundled presets)")
	flag.StringVar(&opts.valuesFile, "values", "", "JSON or YAML file with values to prefill")
	flag.StringVar(&opts.renderer, "renderer", "vanilla", "renderer to use (vanilla, tui)")
	flag.StringVar(&opts.format, "format", "json", "tui output format (json, form or urlencoded, pretty or text)")
	flag.BoolVar(&opts.interactive, "interactive", false, "prompt for values in the terminal before rendering")
	flag.BoolVar(&opts.validate, "validate", false, "validate values and render the errors")
	flag.StringVar(&opts.action, "action", "", "form action URL")
	flag.StringVar(&opts.method, "method", "post", "form method")
	flag.StringVar(&opts.themeName, "theme", "", "theme name exposed to templates")
	flag.StringVar(&opts.variant, "variant", "", "theme variant")
	flag.Func("token", "theme token as key=value (repeatable)", func(raw string) error {
		key, value, ok := strings.Cut(raw, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return fmt.Errorf("expected key=value, got %q", raw)
		}
		if opts.tokens == nil {
			opts.tokens = make(map[string]string)
		}
		opts.tokens[strings.TrimSpace(key)] = strings.TrimSpace(value)
		return nil
	})
	flag.StringVar(&opts.output, "output", "", "output file (stdout if empty)")
	flag.BoolVar(&opts.watch, "watch", false, "re-render when input files change (requires -output)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if opts.watch {
		if err := watch(ctx, opts); err != nil {
			log.Fatalf("Watch failed: %v", err)
		}
		return
	}

	out, err := run(ctx, opts)
	if err != nil {
		log.Fatalf("Failed to generate form: %v", err)
	}
	if err := write(opts.output, out); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}
}

func write(path string, out []byte) error {
	if path == "" {
		_, err := fmt.Println(string(out))
		return err
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return err
	}
	fmt.Printf("Form written to %s\n", path)
	return nil
}
