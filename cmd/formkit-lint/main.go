package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	formkit "github.com/goliatone/go-formkit"
	"github.com/goliatone/go-formkit/pkg/openapi"
	"github.com/goliatone/go-formkit/pkg/uiconfig"
)

func main() {
	flag.Usage = func() {
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [-openapi document] [config dirs...]\n", filepath.Base(os.Args[0])); err != nil {
			panic(err)
		}
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "\nLint form overrides against the widget registry and an OpenAPI document.\n"); err != nil {
			panic(err)
		}
	}
	document := flag.String("openapi", "", "OpenAPI document whose component schemas back the forms")
	flag.Parse()

	dirs := flag.Args()
	if len(dirs) == 0 {
		dirs = []string{"config"}
	}

	ctx := context.Background()
	var components map[string][]string
	if *document != "" {
		data, err := openapi.ReadDocument(ctx, *document)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lint %s: %v\n", *document, err)
			os.Exit(1)
		}
		components, err = componentAttributes(ctx, data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lint %s: %v\n", *document, err)
			os.Exit(1)
		}
	}

	registry, err := formkit.DefaultWidgets()
	if err != nil {
		fmt.Fprintf(os.Stderr, "lint: %v\n", err)
		os.Exit(1)
	}

	var violations []violation
	for _, dir := range dirs {
		store, err := uiconfig.LoadFS(os.DirFS(dir))
		if err != nil {
			fmt.Fprintf(os.Stderr, "lint %s: %v\n", dir, err)
			os.Exit(1)
		}
		violations = append(violations, lintStore(store, components, registry)...)
	}

	if len(violations) > 0 {
		sortViolations(violations)
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "%s: %s -> %s\n", v.file, v.location, v.message)
		}
		os.Exit(1)
	}
}
