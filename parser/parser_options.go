package parser

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/oasdocs/oasdocs"
	"github.com/oasdocs/oasdocs/internal/options"
)

// Option is a function that configures a parse operation
type Option func(*parseConfig) error

// parseConfig holds configuration for a parse operation
type parseConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	url      *string
	reader   io.Reader
	bytes    []byte

	ctx         context.Context
	userAgent   string
	httpClient  *http.Client
	logger      Logger
	maxFileSize int64
	sourceName  *string
}

// ParseWithOptions loads an OpenAPI document using functional options.
//
// Example:
//
//	doc, err := parser.ParseWithOptions(
//	    parser.WithFilePath("openapi.yaml"),
//	    parser.WithLogger(parser.NewSlogAdapter(slog.Default())),
//	)
func ParseWithOptions(opts ...Option) (*Document, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("parser: invalid options: %w", err)
	}

	p := &Parser{
		UserAgent:   cfg.userAgent,
		HTTPClient:  cfg.httpClient,
		Logger:      cfg.logger,
		MaxFileSize: cfg.maxFileSize,
	}

	var doc *Document
	switch {
	case cfg.filePath != nil:
		doc, err = p.Parse(cfg.ctx, *cfg.filePath)
	case cfg.url != nil:
		doc, err = p.ParseURL(cfg.ctx, *cfg.url)
	case cfg.reader != nil:
		doc, err = p.ParseReader(cfg.reader)
	case cfg.bytes != nil:
		doc, err = p.ParseBytes(cfg.bytes)
	default:
		return nil, fmt.Errorf("parser: no input source specified")
	}
	if err != nil {
		return nil, err
	}

	if cfg.sourceName != nil {
		doc.SourcePath = *cfg.sourceName
	}
	return doc, nil
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*parseConfig, error) {
	cfg := &parseConfig{
		ctx:       context.Background(),
		userAgent: oasdocs.UserAgent(),
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateSingleInputSource(
		"parser: must specify an input source (use WithFilePath, WithURL, WithReader, or WithBytes)",
		"parser: must specify exactly one input source",
		cfg.filePath != nil, cfg.url != nil, cfg.reader != nil, cfg.bytes != nil,
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithFilePath specifies a file path or URL as the input source
func WithFilePath(path string) Option {
	return func(cfg *parseConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithURL specifies an http(s) URL as the input source
func WithURL(u string) Option {
	return func(cfg *parseConfig) error {
		if !isURL(u) {
			return fmt.Errorf("parser: URL must use http or https: %q", u)
		}
		cfg.url = &u
		return nil
	}
}

// WithReader specifies an io.Reader as the input source
func WithReader(r io.Reader) Option {
	return func(cfg *parseConfig) error {
		if r == nil {
			return fmt.Errorf("parser: reader cannot be nil")
		}
		cfg.reader = r
		return nil
	}
}

// WithBytes specifies a byte slice as the input source
func WithBytes(data []byte) Option {
	return func(cfg *parseConfig) error {
		if data == nil {
			return fmt.Errorf("parser: bytes cannot be nil")
		}
		cfg.bytes = data
		return nil
	}
}

// WithContext sets the context used for fetching URLs
func WithContext(ctx context.Context) Option {
	return func(cfg *parseConfig) error {
		if ctx == nil {
			return fmt.Errorf("parser: context cannot be nil")
		}
		cfg.ctx = ctx
		return nil
	}
}

// WithUserAgent sets the User-Agent string for HTTP requests
// Default: "oasdocs/vX.Y.Z"
func WithUserAgent(ua string) Option {
	return func(cfg *parseConfig) error {
		cfg.userAgent = ua
		return nil
	}
}

// WithHTTPClient sets a custom HTTP client for fetching URLs.
// If the client is nil, this option has no effect (default client is used).
//
// Example with custom timeout:
//
//	client := &http.Client{Timeout: 60 * time.Second}
//	doc, err := parser.ParseWithOptions(
//	    parser.WithURL("https://example.com/api.yaml"),
//	    parser.WithHTTPClient(client),
//	)
func WithHTTPClient(client *http.Client) Option {
	return func(cfg *parseConfig) error {
		cfg.httpClient = client
		return nil
	}
}

// WithLogger sets a structured logger for debug output during parsing.
func WithLogger(l Logger) Option {
	return func(cfg *parseConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithMaxFileSize bounds the number of bytes read from the source.
// A value of 0 means use the default (10MB).
func WithMaxFileSize(size int64) Option {
	return func(cfg *parseConfig) error {
		if size < 0 {
			return fmt.Errorf("parser: maxFileSize cannot be negative")
		}
		cfg.maxFileSize = size
		return nil
	}
}

// WithSourceName overrides Document.SourcePath, which otherwise defaults
// to the file path, URL, or "document.json"/"document.yaml".
func WithSourceName(name string) Option {
	return func(cfg *parseConfig) error {
		if name == "" {
			return fmt.Errorf("parser: source name cannot be empty")
		}
		cfg.sourceName = &name
		return nil
	}
}
