package navtree

import (
	"fmt"
	"time"

	"github.com/oasdocs/oasdocs/internal/nodeutil"
	"github.com/oasdocs/oasdocs/normalizer"
	"github.com/oasdocs/oasdocs/oaserrors"
	"github.com/oasdocs/oasdocs/parser"
)

// DefaultJSONSchemaDialect is forced onto OpenAPI 3.1 documents before the
// walk.
const DefaultJSONSchemaDialect = "http://json-schema.org/draft-07/schema#"

// Option configures Transform.
type Option func(*transformConfig) error

type transformConfig struct {
	logger parser.Logger
	oas2   normalizer.Normalizer
	oas3   normalizer.Normalizer
}

// WithLogger sets the logger used to report tree construction.
func WithLogger(l parser.Logger) Option {
	return func(cfg *transformConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithNormalizers replaces the default OAS2 and OAS3 normalizers. A nil
// argument keeps the default for that dialect.
func WithNormalizers(oas2, oas3 normalizer.Normalizer) Option {
	return func(cfg *transformConfig) error {
		if oas2 != nil {
			cfg.oas2 = oas2
		}
		if oas3 != nil {
			cfg.oas3 = oas3
		}
		return nil
	}
}

// Transform classifies doc and builds its tree. Documents that are neither
// OAS2 nor OAS3 yield a *oaserrors.ParseError matching
// oaserrors.ErrUnrecognizedDocument.
func Transform(doc *parser.Document, opts ...Option) (*ServiceNode, error) {
	cfg := &transformConfig{
		logger: parser.NopLogger{},
		oas2:   normalizer.OAS2{},
		oas3:   normalizer.OAS3{},
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("navtree: invalid options: %w", err)
		}
	}
	if doc == nil {
		return nil, &oaserrors.ParseError{Unrecognized: true, Message: "no document"}
	}

	start := time.Now()
	root := doc.Content()

	// Re-classify so callers that edited Root get a consistent result.
	var svc *ServiceNode
	switch parser.Classify(root) {
	case parser.DialectOAS31:
		root = nodeutil.WithField(root, "jsonSchemaDialect", DefaultJSONSchemaDialect)
		svc = ComputeServiceNode(root, OAS3Rules, cfg.oas3)
	case parser.DialectOAS3:
		svc = ComputeServiceNode(root, OAS3Rules, cfg.oas3)
	case parser.DialectOAS2:
		svc = ComputeServiceNode(root, OAS2Rules, cfg.oas2)
	default:
		return nil, &oaserrors.ParseError{
			Path:         doc.SourcePath,
			Unrecognized: true,
			Message:      "not an OpenAPI 2.0 or 3.x document",
		}
	}

	cfg.logger.Debug("computed service node",
		"source", doc.SourcePath,
		"children", len(svc.Children),
		"elapsed", time.Since(start))
	return svc, nil
}
