package docserver

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/oasdocs/oasdocs/internal/config"
	"github.com/oasdocs/oasdocs/oaserrors"
)

// Layout selects how pages are rendered.
type Layout string

// Supported layouts.
const (
	LayoutSidebar    Layout = config.LayoutSidebar
	LayoutStacked    Layout = config.LayoutStacked
	LayoutResponsive Layout = config.LayoutResponsive
)

// ParseLayout maps a layout name to a Layout. The empty string selects
// the sidebar layout.
func ParseLayout(s string) (Layout, error) {
	switch Layout(s) {
	case "":
		return LayoutSidebar, nil
	case LayoutSidebar, LayoutStacked, LayoutResponsive:
		return Layout(s), nil
	}
	return "", &oaserrors.ConfigError{Option: "layout", Value: s, Message: "must be sidebar, stacked or responsive"}
}

// Options configures a Server.
type Options struct {
	// Source is the document file path or http(s) URL.
	Source string
	Layout Layout
	// BasePath is the URL prefix the documentation is served under.
	BasePath string
	// OuterRouter derives node paths from the full request path instead
	// of from the route match under BasePath.
	OuterRouter bool
	// Logo replaces the document's x-logo image.
	Logo         string
	HideExport   bool
	HideSchemas  bool
	HideInternal bool
	// MaxRefDepth limits nested reference inlining.
	MaxRefDepth int

	CacheSize int
	CacheTTL  time.Duration

	// HTTPClient fetches URL sources.
	HTTPClient *http.Client
	Logger     *slog.Logger
	// Registry receives the server metrics. A private registry is
	// created when nil.
	Registry *prometheus.Registry
	// DisableMetrics removes the /metrics endpoint.
	DisableMetrics bool
}

// OptionsFromConfig converts a loaded server configuration.
func OptionsFromConfig(cfg *config.Server) Options {
	return Options{
		Source:         cfg.Source,
		Layout:         Layout(cfg.Layout),
		BasePath:       cfg.BasePath,
		OuterRouter:    cfg.OuterRouter,
		Logo:           cfg.Logo,
		HideExport:     cfg.HideExport,
		HideSchemas:    cfg.HideSchemas,
		HideInternal:   cfg.HideInternal,
		MaxRefDepth:    cfg.MaxRefDepth,
		CacheSize:      cfg.CacheSize,
		CacheTTL:       cfg.CacheTTL,
		HTTPClient:     &http.Client{Timeout: cfg.FetchTimeout},
		DisableMetrics: !cfg.Metrics,
	}
}

func (o *Options) normalize() error {
	if o.Source == "" {
		return &oaserrors.ConfigError{Option: "source", Message: "is required"}
	}
	layout, err := ParseLayout(string(o.Layout))
	if err != nil {
		return err
	}
	o.Layout = layout

	if o.BasePath != "" && !strings.HasPrefix(o.BasePath, "/") {
		return &oaserrors.ConfigError{Option: "base_path", Value: o.BasePath, Message: "must start with /"}
	}
	if o.MaxRefDepth < 0 {
		return &oaserrors.ConfigError{Option: "max_ref_depth", Value: o.MaxRefDepth, Message: "must not be negative"}
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	if o.Registry == nil {
		o.Registry = prometheus.NewRegistry()
	}
	return nil
}

// mountPath is BasePath without a trailing slash; "" for the root.
func (o *Options) mountPath() string {
	return strings.TrimRight(o.BasePath, "/")
}
