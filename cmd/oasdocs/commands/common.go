// Package commands provides CLI command handlers for oasdocs.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/oasdocs/oasdocs/bundler"
	"github.com/oasdocs/oasdocs/navtree"
	"github.com/oasdocs/oasdocs/parser"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// stdout and stdin are replaced in tests.
var (
	stdout io.Writer = os.Stdout
	stdin  io.Reader = os.Stdin
)

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// OutputStructured writes data to w in the specified format (json or yaml).
// YAML output is produced from the JSON encoding so that custom JSON
// marshalers and json tags shape both formats the same way.
func OutputStructured(w io.Writer, data any, format string) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	switch format {
	case FormatJSON:
		Writef(w, "%s\n", raw)
		return nil
	case FormatYAML:
		var node yaml.Node
		if err := yaml.Unmarshal(raw, &node); err != nil {
			return fmt.Errorf("marshaling to %s: %w", format, err)
		}
		clearStyle(&node)
		out, err := yaml.Marshal(&node)
		if err != nil {
			return fmt.Errorf("marshaling to %s: %w", format, err)
		}
		Writef(w, "%s", out)
		return nil
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}
}

// clearStyle drops the flow and quoting styles a JSON decode leaves behind.
func clearStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		clearStyle(c)
	}
}

// FormatSpecPath returns a display-friendly path for the specification.
// Returns "<stdin>" if the path is StdinFilePath, otherwise returns the path as-is.
func FormatSpecPath(specPath string) string {
	if specPath == StdinFilePath {
		return "<stdin>"
	}
	return specPath
}

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil { //nolint:gosec // G705 - CLI tool, not a web server
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// newLogger builds a slog.Logger writing to w. format is "json" or "text".
func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level '%s'. Valid levels: debug, info, warn, error", level)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(format) {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format '%s'. Valid formats: json, text", format)
	}
}

// cliLogger returns the diagnostic logger for a one-shot command: debug
// output on stderr when verbose is set, nothing otherwise.
func cliLogger(verbose bool) parser.Logger {
	if !verbose {
		return parser.NopLogger{}
	}
	return parser.NewSlogAdapter(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
}

// loadedSpec is a parsed document, its bundled form and the tree built
// from the bundled form.
type loadedSpec struct {
	doc     *parser.Document
	bundled *bundler.Result
	svc     *navtree.ServiceNode
}

// loadSpec parses specPath (a file, an http(s) URL or "-" for stdin),
// inlines local references and builds the navigation tree.
func loadSpec(ctx context.Context, specPath string, maxRefDepth int, logger parser.Logger) (*loadedSpec, error) {
	popts := []parser.Option{parser.WithContext(ctx), parser.WithLogger(logger)}
	if specPath == StdinFilePath {
		popts = append(popts, parser.WithReader(stdin), parser.WithSourceName(FormatSpecPath(specPath)))
	} else {
		popts = append(popts, parser.WithFilePath(specPath))
	}

	doc, err := parser.ParseWithOptions(popts...)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FormatSpecPath(specPath), err)
	}

	bopts := []bundler.Option{bundler.WithDocument(doc), bundler.WithLogger(logger)}
	if maxRefDepth > 0 {
		bopts = append(bopts, bundler.WithMaxRefDepth(maxRefDepth))
	}
	res, err := bundler.BundleWithOptions(bopts...)
	if err != nil {
		return nil, fmt.Errorf("bundling %s: %w", FormatSpecPath(specPath), err)
	}

	svc, err := navtree.Transform(res.Document, navtree.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("building tree for %s: %w", FormatSpecPath(specPath), err)
	}

	return &loadedSpec{doc: doc, bundled: res, svc: svc}, nil
}
