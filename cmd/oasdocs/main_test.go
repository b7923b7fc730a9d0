package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggestCommand(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// Typos within edit distance 2
		{"tre", "tree"},
		{"tee", "tree"},
		{"tocc", "toc"},
		{"resolv", "resolve"},
		{"rsolve", "resolve"},
		{"reslove", "resolve"},
		{"exprt", "export"},
		{"expot", "export"},
		{"serv", "serve"},
		{"server", "serve"},
		{"mc", "mcp"},
		{"versio", "version"},
		{"hep", "help"},
		{"hlp", "help"},

		// Too far - no suggestion (distance > 2)
		{"xyz", ""},
		{"foobar", ""},
		{"validate", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, suggestCommand(tt.input))
		})
	}
}

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "toc", 3},
		{"tree", "tree", 0},
		{"tree", "tre", 1},
		{"serve", "server", 1},
		{"kitten", "sitting", 3},
		{"mcp", "mpc", 2},
	}

	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, editDistance(tt.a, tt.b))
			assert.Equal(t, tt.want, editDistance(tt.b, tt.a))
		})
	}
}
