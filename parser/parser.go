package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"go.yaml.in/yaml/v4"

	"github.com/oasdocs/oasdocs"
	"github.com/oasdocs/oasdocs/internal/nodeutil"
	"github.com/oasdocs/oasdocs/oaserrors"
)

// DefaultMaxFileSize bounds how many bytes are read from any single source.
const DefaultMaxFileSize int64 = 10 << 20

// SourceFormat is the serialization of the source document.
type SourceFormat string

const (
	// SourceFormatYAML indicates a YAML source.
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates a JSON source.
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatUnknown indicates the format has not been determined.
	SourceFormatUnknown SourceFormat = "unknown"
)

// Document is a loaded and classified OpenAPI description.
type Document struct {
	// Root is the decoded document node. Mapping keys keep source order.
	Root *yaml.Node
	// Raw is the source exactly as it was read.
	Raw []byte
	// Format is JSON when Raw is valid JSON, YAML otherwise.
	Format SourceFormat
	// SourcePath is the file path or URL the document came from.
	SourcePath string
	// Dialect is the classifier result for Root.
	Dialect Dialect
	// Version is the raw value of the openapi or swagger field.
	Version string
	// LoadTime is how long reading or fetching took.
	LoadTime time.Duration
}

// Content returns the resolved root mapping, or nil for an empty document.
func (d *Document) Content() *yaml.Node {
	if d == nil {
		return nil
	}
	return nodeutil.Resolve(d.Root)
}

// Parser loads OpenAPI documents.
type Parser struct {
	// UserAgent is sent when fetching URLs. Defaults to oasdocs.UserAgent().
	UserAgent string
	// HTTPClient is used for fetching URLs. If nil, a client with a
	// 30-second timeout is created.
	HTTPClient *http.Client
	// Logger receives debug output. Nil disables logging.
	Logger Logger
	// MaxFileSize bounds the bytes read from a source. 0 means
	// DefaultMaxFileSize.
	MaxFileSize int64
}

// New creates a Parser with default settings.
func New() *Parser {
	return &Parser{
		UserAgent: oasdocs.UserAgent(),
	}
}

func (p *Parser) log() Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return NopLogger{}
}

func (p *Parser) maxFileSize() int64 {
	if p.MaxFileSize > 0 {
		return p.MaxFileSize
	}
	return DefaultMaxFileSize
}

// Parse loads a document from a file path or an http(s) URL.
func (p *Parser) Parse(ctx context.Context, specPath string) (*Document, error) {
	if isURL(specPath) {
		return p.ParseURL(ctx, specPath)
	}

	start := time.Now()
	f, err := os.Open(specPath) //nolint:gosec // path is user input by design of the CLI
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read file: %w", err)
	}
	defer func() { _ = f.Close() }()

	data, err := p.readLimited(f)
	if err != nil {
		return nil, err
	}
	loadTime := time.Since(start)

	doc, err := p.ParseBytes(data)
	if err != nil {
		return nil, withPath(err, specPath)
	}
	doc.SourcePath = specPath
	doc.LoadTime = loadTime
	p.log().Debug("loaded document", "path", specPath, "format", doc.Format, "dialect", doc.Dialect.String())
	return doc, nil
}

// ParseURL fetches and loads a document over HTTP. Transport failures and
// non-200 responses are reported as *oaserrors.FetchError.
func (p *Parser) ParseURL(ctx context.Context, rawURL string) (*Document, error) {
	start := time.Now()
	data, err := p.fetchURL(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	loadTime := time.Since(start)

	doc, err := p.ParseBytes(data)
	if err != nil {
		return nil, withPath(err, rawURL)
	}
	doc.SourcePath = rawURL
	doc.LoadTime = loadTime
	p.log().Debug("fetched document", "url", rawURL, "bytes", len(data), "dialect", doc.Dialect.String())
	return doc, nil
}

// ParseReader loads a document from r.
func (p *Parser) ParseReader(r io.Reader) (*Document, error) {
	start := time.Now()
	data, err := p.readLimited(r)
	if err != nil {
		return nil, err
	}
	doc, err := p.ParseBytes(data)
	if err != nil {
		return nil, err
	}
	doc.LoadTime = time.Since(start)
	return doc, nil
}

// ParseBytes decodes and classifies data. Valid JSON is tagged as JSON;
// everything else goes through the YAML decoder, which accepts both.
func (p *Parser) ParseBytes(data []byte) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &oaserrors.ParseError{Message: "document is empty"}
	}

	format := SourceFormatYAML
	if json.Valid(data) {
		format = SourceFormatJSON
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &oaserrors.ParseError{
			Message: fmt.Sprintf("failed to decode %s", format),
			Cause:   err,
		}
	}

	doc := &Document{
		Root:       &root,
		Raw:        data,
		Format:     format,
		SourcePath: "document." + string(format),
		Dialect:    Classify(&root),
	}
	doc.Version = versionField(&root, doc.Dialect)
	return doc, nil
}

func (p *Parser) readLimited(r io.Reader) ([]byte, error) {
	limit := p.maxFileSize()
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read data: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("parser: document exceeds maximum size of %s", FormatBytes(limit))
	}
	return data, nil
}

func versionField(root *yaml.Node, d Dialect) string {
	key := "openapi"
	if d == DialectOAS2 {
		key = "swagger"
	}
	v, _ := nodeutil.Scalar(nodeutil.Lookup(root, key))
	return v
}

func withPath(err error, path string) error {
	var pe *oaserrors.ParseError
	if errors.As(err, &pe) && pe.Path == "" {
		pe.Path = path
	}
	return err
}
