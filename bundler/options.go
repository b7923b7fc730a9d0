package bundler

import (
	"fmt"

	"go.yaml.in/yaml/v4"

	"github.com/oasdocs/oasdocs/internal/options"
	"github.com/oasdocs/oasdocs/oaserrors"
	"github.com/oasdocs/oasdocs/parser"
)

// Option is a function that configures a bundle operation
type Option func(*bundleConfig) error

type bundleConfig struct {
	// Input source (exactly one must be set)
	document *parser.Document
	root     *yaml.Node

	maxRefDepth int
	strict      bool
	logger      parser.Logger
}

// BundleWithOptions bundles a document using functional options.
//
// Example:
//
//	res, err := bundler.BundleWithOptions(
//	    bundler.WithDocument(doc),
//	    bundler.WithStrict(true),
//	)
func BundleWithOptions(opts ...Option) (*Result, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("bundler: invalid options: %w", err)
	}

	b := &Bundler{
		MaxRefDepth: cfg.maxRefDepth,
		Strict:      cfg.strict,
		Logger:      cfg.logger,
	}
	if cfg.document != nil {
		return b.BundleDocument(cfg.document)
	}
	res, err := b.Bundle(cfg.root)
	if err != nil {
		return nil, fmt.Errorf("bundler: %w", err)
	}
	return res, nil
}

func applyOptions(opts ...Option) (*bundleConfig, error) {
	cfg := &bundleConfig{
		maxRefDepth: DefaultMaxRefDepth,
		logger:      parser.NopLogger{},
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateSingleInputSource(
		"must specify an input source (use WithDocument or WithRoot)",
		"must specify exactly one input source",
		cfg.document != nil, cfg.root != nil,
	); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WithDocument bundles a parsed document. The result carries a bundled
// copy in Result.Document.
func WithDocument(doc *parser.Document) Option {
	return func(cfg *bundleConfig) error {
		cfg.document = doc
		return nil
	}
}

// WithRoot bundles a bare document node.
func WithRoot(root *yaml.Node) Option {
	return func(cfg *bundleConfig) error {
		cfg.root = root
		return nil
	}
}

// WithMaxRefDepth limits nested reference expansion.
func WithMaxRefDepth(depth int) Option {
	return func(cfg *bundleConfig) error {
		if depth <= 0 {
			return &oaserrors.ConfigError{Option: "maxRefDepth", Value: depth, Message: "must be positive"}
		}
		cfg.maxRefDepth = depth
		return nil
	}
}

// WithStrict fails on circular or unresolved references.
func WithStrict(strict bool) Option {
	return func(cfg *bundleConfig) error {
		cfg.strict = strict
		return nil
	}
}

// WithLogger sets the logger for reference diagnostics.
func WithLogger(l parser.Logger) Option {
	return func(cfg *bundleConfig) error {
		if l != nil {
			cfg.logger = l
		}
		return nil
	}
}
