// Package config loads the documentation server configuration.
//
// Values come from three layers, later ones winning: built-in defaults,
// an optional TOML file, and OASDOCS_* environment variables. The merged
// map is decoded into Server with weak typing, so "true" and "30s" from
// the environment decode into bool and duration fields, and is then
// validated.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"

	"github.com/oasdocs/oasdocs/oaserrors"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "OASDOCS_"

// Layouts accepted by Server.Layout.
const (
	LayoutSidebar    = "sidebar"
	LayoutStacked    = "stacked"
	LayoutResponsive = "responsive"
)

// Server configures the documentation server.
type Server struct {
	// Addr is the listen address.
	Addr string `toml:"addr" validate:"required,hostname_port"`
	// Source is the document file path or URL.
	Source string `toml:"source"`

	Layout      string `toml:"layout" validate:"oneof=sidebar stacked responsive"`
	BasePath    string `toml:"base_path" validate:"omitempty,startswith=/"`
	OuterRouter bool   `toml:"outer_router"`
	// Logo overrides the document's x-logo image URL.
	Logo         string `toml:"logo" validate:"omitempty,url"`
	HideExport   bool   `toml:"hide_export"`
	HideSchemas  bool   `toml:"hide_schemas"`
	HideInternal bool   `toml:"hide_internal"`
	// MaxRefDepth limits nested reference inlining. Zero uses the
	// bundler default.
	MaxRefDepth int `toml:"max_ref_depth" validate:"gte=0"`

	CacheSize       int           `toml:"cache_size" validate:"gte=1"`
	CacheTTL        time.Duration `toml:"cache_ttl" validate:"gte=0"`
	FetchTimeout    time.Duration `toml:"fetch_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout" validate:"gt=0"`
	// ReloadInterval re-reads the source periodically. Zero disables it.
	ReloadInterval time.Duration `toml:"reload_interval" validate:"gte=0"`

	LogLevel  string `toml:"log_level" validate:"oneof=debug info warn error"`
	LogFormat string `toml:"log_format" validate:"oneof=json text"`
	Metrics   bool   `toml:"metrics"`
}

// Defaults returns the built-in configuration layer.
func Defaults() map[string]any {
	return map[string]any{
		"addr":             ":8080",
		"source":           "",
		"layout":           LayoutSidebar,
		"base_path":        "",
		"outer_router":     false,
		"logo":             "",
		"hide_export":      false,
		"hide_schemas":     false,
		"hide_internal":    false,
		"max_ref_depth":    0,
		"cache_size":       32,
		"cache_ttl":        "30m",
		"fetch_timeout":    "30s",
		"shutdown_timeout": "10s",
		"reload_interval":  "0s",
		"log_level":        "info",
		"log_format":       "json",
		"metrics":          true,
	}
}

// Load reads the TOML file at path (skipped when path is empty), overlays
// environment variables looked up through getenv (os.Getenv when nil),
// and returns the decoded, validated configuration.
func Load(path string, getenv func(string) string) (*Server, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	values := Defaults()
	if path != "" {
		file, err := readFile(path)
		if err != nil {
			return nil, err
		}
		if err := mergo.Merge(&values, file, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("config: merge %s: %w", path, err)
		}
	}
	if err := mergo.Merge(&values, fromEnv(getenv), mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("config: merge environment: %w", err)
	}

	cfg, err := Decode(values)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readFile(path string) (map[string]any, error) {
	var file map[string]any
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, &oaserrors.ConfigError{Option: "config", Value: path, Message: "cannot read TOML file", Cause: err}
	}
	return file, nil
}

// fromEnv collects OASDOCS_<KEY> for every known key.
func fromEnv(getenv func(string) string) map[string]any {
	out := make(map[string]any)
	for key := range Defaults() {
		if v := getenv(EnvPrefix + strings.ToUpper(key)); v != "" {
			out[key] = v
		}
	}
	return out
}

// Decode converts a merged value map into a Server. Unknown keys are an
// error.
func Decode(values map[string]any) (*Server, error) {
	var cfg Server
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "toml",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &cfg,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := dec.Decode(values); err != nil {
		return nil, &oaserrors.ConfigError{Option: "config", Message: "cannot decode values", Cause: err}
	}
	return &cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("toml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks every field constraint and reports one ConfigError per
// failing field.
func (s *Server) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &oaserrors.ConfigError{Option: "config", Message: "validation failed", Cause: err}
	}

	errs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		errs = append(errs, &oaserrors.ConfigError{
			Option:  fe.Field(),
			Value:   fe.Value(),
			Message: message(fe),
		})
	}
	return errors.Join(errs...)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "startswith":
		return "must start with " + fe.Param()
	case "hostname_port":
		return "must be host:port"
	case "url":
		return "must be an absolute URL"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	default:
		return "failed " + fe.Tag() + " check"
	}
}

// Keys returns the known configuration keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(Defaults()))
	for k := range Defaults() {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
