package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oasdocs/oasdocs/docserver"
	"github.com/oasdocs/oasdocs/internal/config"
)

// ServeFlags contains flags for the serve command. Values are applied on
// top of the configuration file and environment only when set explicitly.
type ServeFlags struct {
	Config         string
	Addr           string
	Layout         string
	BasePath       string
	OuterRouter    bool
	Logo           string
	HideExport     bool
	HideSchemas    bool
	HideInternal   bool
	MaxRefDepth    int
	ReloadInterval time.Duration
	LogLevel       string
	LogFormat      string
}

// SetupServeFlags creates and configures a FlagSet for the serve command.
// Returns the FlagSet and a ServeFlags struct with bound flag variables.
func SetupServeFlags() (*flag.FlagSet, *ServeFlags) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	flags := &ServeFlags{}

	fs.StringVar(&flags.Config, "config", "", "path to a TOML configuration file")
	fs.StringVar(&flags.Addr, "addr", ":8080", "listen address")
	fs.StringVar(&flags.Layout, "layout", config.LayoutSidebar, "page layout: sidebar, stacked, or responsive")
	fs.StringVar(&flags.BasePath, "base-path", "", "URL prefix the documentation is served under")
	fs.BoolVar(&flags.OuterRouter, "outer-router", false, "derive node paths from the full request path")
	fs.StringVar(&flags.Logo, "logo", "", "logo image URL, replacing the document's x-logo")
	fs.BoolVar(&flags.HideExport, "hide-export", false, "hide the export links")
	fs.BoolVar(&flags.HideSchemas, "hide-schemas", false, "hide the Schemas section")
	fs.BoolVar(&flags.HideInternal, "hide-internal", false, "hide x-internal operations, webhooks and schemas")
	fs.IntVar(&flags.MaxRefDepth, "max-ref-depth", 0, "maximum nested $ref expansions (0 uses the default)")
	fs.DurationVar(&flags.ReloadInterval, "reload-interval", 0, "re-read the document this often (0 disables)")
	fs.StringVar(&flags.LogLevel, "log-level", "info", "log level: debug, info, warn, or error")
	fs.StringVar(&flags.LogFormat, "log-format", "json", "log format: json or text")

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: oasdocs serve [flags] [file|url]\n\n")
		Writef(output, "Serve browsable documentation for an OpenAPI document over HTTP.\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nExamples:\n")
		Writef(output, "  oasdocs serve openapi.yaml\n")
		Writef(output, "  oasdocs serve --layout stacked --addr :9000 openapi.yaml\n")
		Writef(output, "  oasdocs serve --base-path /docs --hide-internal https://example.com/api/openapi.yaml\n")
		Writef(output, "  oasdocs serve --config oasdocs.toml\n")
		Writef(output, "\nConfiguration:\n")
		Writef(output, "  Settings are read from the --config file, then OASDOCS_* environment\n")
		Writef(output, "  variables (e.g. OASDOCS_SOURCE, OASDOCS_LAYOUT), then explicit flags.\n")
		Writef(output, "\nEndpoints (under --base-path):\n")
		Writef(output, "  /                   overview\n")
		Writef(output, "  /<node uri>         operation, webhook or schema page\n")
		Writef(output, "  /export/original    source document download\n")
		Writef(output, "  /export/bundled     bundled document download\n")
		Writef(output, "  /api/toc            table of contents (JSON)\n")
		Writef(output, "  /healthz, /metrics  health and Prometheus metrics\n")
	}

	return fs, flags
}

// ServeConfig loads the configuration file and environment and applies the
// flags that were set on fs. A positional argument overrides the source.
func ServeConfig(fs *flag.FlagSet, flags *ServeFlags, getenv func(string) string) (*config.Server, error) {
	cfg, err := config.Load(flags.Config, getenv)
	if err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "addr":
			cfg.Addr = flags.Addr
		case "layout":
			cfg.Layout = flags.Layout
		case "base-path":
			cfg.BasePath = flags.BasePath
		case "outer-router":
			cfg.OuterRouter = flags.OuterRouter
		case "logo":
			cfg.Logo = flags.Logo
		case "hide-export":
			cfg.HideExport = flags.HideExport
		case "hide-schemas":
			cfg.HideSchemas = flags.HideSchemas
		case "hide-internal":
			cfg.HideInternal = flags.HideInternal
		case "max-ref-depth":
			cfg.MaxRefDepth = flags.MaxRefDepth
		case "reload-interval":
			cfg.ReloadInterval = flags.ReloadInterval
		case "log-level":
			cfg.LogLevel = flags.LogLevel
		case "log-format":
			cfg.LogFormat = flags.LogFormat
		}
	})
	if fs.NArg() > 0 {
		cfg.Source = fs.Arg(0)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Source == "" {
		return nil, fmt.Errorf("serve command requires a document: pass a file or URL, set source in --config, or set OASDOCS_SOURCE")
	}
	return cfg, nil
}

// HandleServe executes the serve command
func HandleServe(args []string) error {
	fs, flags := SetupServeFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return fmt.Errorf("serve command accepts at most one file path or URL")
	}

	cfg, err := ServeConfig(fs, flags, os.Getenv)
	if err != nil {
		return err
	}

	logger, err := newLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	opts := docserver.OptionsFromConfig(cfg)
	opts.Logger = logger
	srv, err := docserver.New(opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A failed first load is logged by Reload and served as an error page
	// until a later reload succeeds.
	_ = srv.Reload(ctx)
	srv.Watch(ctx, cfg.ReloadInterval)

	return srv.ListenAndServe(ctx, cfg.Addr, cfg.ShutdownTimeout)
}
