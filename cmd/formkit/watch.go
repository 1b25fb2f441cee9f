package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// watch renders once and again after every write to the document, the values
// file or the config directory.
func watch(ctx context.Context, opts options) error {
	if opts.output == "" {
		return errors.New("-watch requires -output")
	}
	if opts.interactive {
		return errors.New("-watch cannot be combined with -interactive")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, path := range watchedPaths(opts) {
		if err := watcher.Add(path); err != nil {
			return err
		}
	}

	rebuild := func() {
		out, err := run(ctx, opts)
		if err != nil {
			log.Printf("Failed to generate form: %v", err)
			return
		}
		if err := write(opts.output, out); err != nil {
			log.Printf("Failed to write output: %v", err)
		}
	}
	rebuild()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				log.Printf("Changed %s", strings.ReplaceAll(event.Name, "\\", "/"))
				rebuild()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("Watch error: %v", err)
		}
	}
}

// watchedPaths lists the local inputs; remote documents are not watched.
func watchedPaths(opts options) []string {
	var paths []string
	if opts.document != "" && !strings.Contains(opts.document, "://") {
		paths = append(paths, opts.document)
	}
	if opts.valuesFile != "" {
		paths = append(paths, opts.valuesFile)
	}
	if opts.configDir != "" {
		_ = filepath.WalkDir(opts.configDir, func(path string, entry fs.DirEntry, err error) error {
			if err == nil && entry.IsDir() {
				paths = append(paths, path)
			}
			return nil
		})
	}
	return paths
}

