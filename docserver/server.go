package docserver

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/oasdocs/oasdocs/bundler"
	"github.com/oasdocs/oasdocs/navtree"
	"github.com/oasdocs/oasdocs/oaserrors"
	"github.com/oasdocs/oasdocs/parser"
	"github.com/oasdocs/oasdocs/toc"
)

// errNotLoaded is reported until the first Reload.
var errNotLoaded = errors.New("docserver: document not loaded")

// snapshot is one loaded document and everything derived from it. A
// snapshot is never modified after it is stored.
type snapshot struct {
	original *parser.Document
	bundled  *bundler.Result
	svc      *navtree.ServiceNode
	tree     []toc.Item
	err      error
	loadedAt time.Time
}

// Server renders documentation for one document.
type Server struct {
	opts    Options
	log     *slog.Logger
	router  chi.Router
	cache   *navtree.Cache
	metrics *metrics
	md      *markdown
	pages   *template.Template

	state atomic.Pointer[snapshot]
}

// New creates a Server. The document is not loaded until Reload.
func New(opts Options) (*Server, error) {
	if err := opts.normalize(); err != nil {
		return nil, fmt.Errorf("docserver: %w", err)
	}

	s := &Server{
		opts: opts,
		log:  opts.Logger,
		md:   newMarkdown(),
	}
	s.cache = navtree.NewCache(opts.CacheSize, opts.CacheTTL,
		navtree.WithLogger(parser.NewSlogAdapter(opts.Logger)))
	s.metrics = newMetrics(opts.Registry, s.cache)

	pages, err := s.parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("docserver: %w", err)
	}
	s.pages = pages
	s.setupRoutes()
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))
	r.Use(s.metrics.instrument)

	r.Get("/healthz", s.handleHealth)
	if !s.opts.DisableMetrics {
		r.Handle("/metrics", s.metrics.handler())
	}

	docs := func(r chi.Router) {
		r.Get("/export/{variant}", s.handleExport)
		r.Route("/api", func(r chi.Router) {
			r.Get("/service", s.handleAPIService)
			r.Get("/toc", s.handleAPIToC)
			r.Get("/resolve", s.handleAPIResolve)
			r.Get("/tag-groups", s.handleAPITagGroups)
		})
		r.Get("/*", s.handlePage)
	}

	if base := s.opts.mountPath(); base != "" {
		r.Route(base, docs)
	} else {
		docs(r)
	}
	s.router = r
}

// Reload loads, bundles and transforms the source document and makes the
// result current. A failed load replaces the current document too, so
// pages show the failure.
func (s *Server) Reload(ctx context.Context) error {
	start := time.Now()
	snap := s.load(ctx)
	s.metrics.build.Observe(time.Since(start).Seconds())
	s.state.Store(snap)

	if snap.err != nil {
		s.metrics.loaded.Set(0)
		s.metrics.treeNodes.Set(0)
		s.metrics.reloads.WithLabelValues("error").Inc()
		s.log.Error("document load failed", "source", s.opts.Source, "error", snap.err)
		return snap.err
	}

	s.metrics.loaded.Set(1)
	s.metrics.treeNodes.Set(float64(len(snap.svc.Children)))
	s.metrics.reloads.WithLabelValues("ok").Inc()
	s.log.Info("document loaded",
		"source", s.opts.Source,
		"dialect", snap.original.Dialect.String(),
		"nodes", len(snap.svc.Children),
		"inlined_refs", snap.bundled.Inlined,
		"circular_refs", len(snap.bundled.Circular),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

func (s *Server) load(ctx context.Context) *snapshot {
	logger := parser.NewSlogAdapter(s.log)

	doc, err := parser.ParseWithOptions(
		parser.WithFilePath(s.opts.Source),
		parser.WithContext(ctx),
		parser.WithHTTPClient(s.opts.HTTPClient),
		parser.WithLogger(logger),
	)
	if err != nil {
		return &snapshot{err: err}
	}

	bopts := []bundler.Option{bundler.WithDocument(doc), bundler.WithLogger(logger)}
	if s.opts.MaxRefDepth > 0 {
		bopts = append(bopts, bundler.WithMaxRefDepth(s.opts.MaxRefDepth))
	}
	res, err := bundler.BundleWithOptions(bopts...)
	if err != nil {
		return &snapshot{err: err}
	}

	svc, err := s.cache.Get(res.Document)
	if err != nil {
		return &snapshot{err: err}
	}

	return &snapshot{
		original: doc,
		bundled:  res,
		svc:      svc,
		tree:     toc.ComputeAPITree(svc, toc.Config{HideSchemas: s.opts.HideSchemas, HideInternal: s.opts.HideInternal}),
		loadedAt: time.Now(),
	}
}

func (s *Server) current() *snapshot {
	if snap := s.state.Load(); snap != nil {
		return snap
	}
	return &snapshot{err: errNotLoaded}
}

// Watch reloads the document every interval until ctx is done, and
// sweeps expired trees from the cache.
func (s *Server) Watch(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	s.cache.StartSweeper(ctx, interval)
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				_ = s.Reload(ctx)
			}
		}
	}()
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully within shutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("starting oasdocs server", "addr", addr, "base_path", s.opts.BasePath, "layout", string(s.opts.Layout))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("docserver: %w", err)
	case <-ctx.Done():
	}

	s.log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("docserver: shutdown: %w", err)
	}
	return nil
}

// errorState maps a load failure to the message shown on pages and its
// HTTP status.
func errorState(err error) (title string, status int) {
	switch {
	case errors.Is(err, oaserrors.ErrParse), errors.Is(err, oaserrors.ErrReference):
		return "Failed to parse OpenAPI file", http.StatusUnprocessableEntity
	default:
		return "Document could not be loaded", http.StatusServiceUnavailable
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	snap := s.current()
	status := "ok"
	if snap.err != nil {
		status = "degraded"
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": status})
}
