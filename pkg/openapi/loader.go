package openapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"
)

// LoaderOptions configures how ReadDocument resolves locations.
type LoaderOptions struct {
	// FileSystem resolves relative paths; the operating system is used when
	// nil.
	FileSystem fs.FS

	// HTTPClient enables http(s) locations. Remote loading stays disabled
	// when nil.
	HTTPClient *http.Client

	// RequestTimeout caps remote fetch durations.
	RequestTimeout time.Duration
}

// LoaderOption mutates LoaderOptions.
type LoaderOption func(*LoaderOptions)

// WithFileSystem injects an fs.FS implementation for relative paths.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// WithHTTPClient enables remote documents through client.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.HTTPClient = client
	}
}

// WithRequestTimeout caps remote fetches.
func WithRequestTimeout(timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.RequestTimeout = timeout
	}
}

// ErrRemoteDisabled is returned for http(s) locations when no HTTP client is
// configured.
var ErrRemoteDisabled = errors.New("openapi: remote documents require WithHTTPClient")

// ReadDocument returns the raw bytes stored at location: a path resolved in
// the configured filesystem (or on disk) or an http(s) URL.
func ReadDocument(ctx context.Context, location string, options ...LoaderOption) ([]byte, error) {
	cfg := LoaderOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, errors.New("openapi: document location is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		if cfg.HTTPClient == nil {
			return nil, fmt.Errorf("%w: %s", ErrRemoteDisabled, location)
		}
		return fetch(ctx, cfg, location)
	}

	var (
		data []byte
		err  error
	)
	if cfg.FileSystem != nil {
		data, err = fs.ReadFile(cfg.FileSystem, location)
	} else {
		data, err = os.ReadFile(location)
	}
	if err != nil {
		return nil, fmt.Errorf("openapi: read %s: %w", location, err)
	}
	return data, nil
}

func fetch(ctx context.Context, cfg LoaderOptions, location string) ([]byte, error) {
	if cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.RequestTimeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("openapi: build request: %w", err)
	}
	resp, err := cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openapi: fetch %s: %w", location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("openapi: fetch %s: unexpected status %d", location, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("openapi: read %s: %w", location, err)
	}
	return data, nil
}
