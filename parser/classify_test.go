package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
)

func classifySource(t *testing.T, src string) Dialect {
	t.Helper()
	var n yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(src), &n))
	return Classify(&n)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want Dialect
	}{
		{"swagger 2.0 string", `swagger: "2.0"`, DialectOAS2},
		{"swagger 2 number", `swagger: 2`, DialectOAS2},
		{"swagger 2.0 float", `swagger: 2.0`, DialectOAS2},
		{"swagger 1.2", `swagger: "1.2"`, DialectUnrecognized},
		{"swagger 3", `swagger: "3.0"`, DialectUnrecognized},
		{"openapi 3.0.3", `openapi: 3.0.3`, DialectOAS3},
		{"openapi 3.0 float", `openapi: 3.0`, DialectOAS3},
		{"openapi 3.1 string", `openapi: "3.1"`, DialectOAS31},
		{"openapi 3.1.0", `openapi: 3.1.0`, DialectOAS31},
		{"openapi 3.10 float", `openapi: 3.10`, DialectOAS31},
		{"openapi 3.2.0", `openapi: 3.2.0`, DialectOAS3},
		{"openapi 4", `openapi: "4.0"`, DialectOAS3},
		{"openapi 2.5", `openapi: "2.5"`, DialectUnrecognized},
		{"openapi wins over swagger", "openapi: 3.0.0\nswagger: '2.0'", DialectOAS3},
		{"bad openapi falls back to swagger", "openapi: abc\nswagger: '2.0'", DialectOAS2},
		{"json oas3", `{"openapi": "3.0.0", "info": {}}`, DialectOAS3},
		{"no version field", `info: {title: x}`, DialectUnrecognized},
		{"sequence root", `[1, 2]`, DialectUnrecognized},
		{"scalar root", `hello`, DialectUnrecognized},
		{"null openapi", `openapi: null`, DialectUnrecognized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifySource(t, tt.src))
		})
	}
}

func TestClassify_Nil(t *testing.T) {
	assert.Equal(t, DialectUnrecognized, Classify(nil))
}

func TestDialect_String(t *testing.T) {
	assert.Equal(t, "oas2", DialectOAS2.String())
	assert.Equal(t, "oas3", DialectOAS3.String())
	assert.Equal(t, "oas3_1", DialectOAS31.String())
	assert.Equal(t, "unrecognized", DialectUnrecognized.String())
	assert.True(t, DialectOAS31.IsOAS3())
	assert.False(t, DialectOAS2.IsOAS3())
}

func TestLeadingNumbers(t *testing.T) {
	floats := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"3.1.0", 3.1, true},
		{"3", 3, true},
		{" 3.0", 3, true},
		{"3.", 3, true},
		{".5", 0.5, true},
		{"1e1x", 10, true},
		{"1e", 1, true},
		{"v3", 0, false},
		{"", 0, false},
		{"-", 0, false},
	}
	for _, tt := range floats {
		got, ok := leadingFloat(tt.in)
		assert.Equal(t, tt.ok, ok, "leadingFloat(%q)", tt.in)
		assert.InDelta(t, tt.want, got, 1e-9, "leadingFloat(%q)", tt.in)
	}

	ints := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"2.0", 2, true},
		{"2", 2, true},
		{"-2", -2, true},
		{"x2", 0, false},
	}
	for _, tt := range ints {
		got, ok := leadingInt(tt.in)
		assert.Equal(t, tt.ok, ok, "leadingInt(%q)", tt.in)
		assert.Equal(t, tt.want, got, "leadingInt(%q)", tt.in)
	}
}
