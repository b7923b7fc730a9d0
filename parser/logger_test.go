package parser

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNopLogger(t *testing.T) {
	l := NopLogger{}
	l.Debug("msg", "k", "v")
	l.Info("msg", "k", "v")
	l.Warn("msg", "k", "v")
	l.Error("msg", "k", "v")

	_, ok := l.With("k", "v").(NopLogger)
	assert.True(t, ok, "With should return NopLogger")
}

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := NewSlogAdapter(slog.New(handler))

	tests := []struct {
		name  string
		log   func(msg string, attrs ...any)
		level string
	}{
		{"debug", logger.Debug, "level=DEBUG"},
		{"info", logger.Info, "level=INFO"},
		{"warn", logger.Warn, "level=WARN"},
		{"error", logger.Error, "level=ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.log("hello", "doc", "petstore.yaml")
			out := buf.String()
			assert.Contains(t, out, tt.level)
			assert.Contains(t, out, "msg=hello")
			assert.Contains(t, out, "doc=petstore.yaml")
		})
	}

	t.Run("with attributes", func(t *testing.T) {
		buf.Reset()
		logger.With("component", "parser").Info("loaded")
		assert.Contains(t, buf.String(), "component=parser")
	})

	t.Run("nil uses default", func(t *testing.T) {
		a := NewSlogAdapter(nil)
		assert.Same(t, slog.Default(), a.Slog())
	})
}
