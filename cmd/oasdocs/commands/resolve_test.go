package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oasdocs/oasdocs/internal/testutil"
)

func TestSetupResolveFlags(t *testing.T) {
	fs, flags := SetupResolveFlags()

	t.Run("default values", func(t *testing.T) {
		assert.Equal(t, FormatText, flags.Format)
		assert.Empty(t, flags.BasePath)
		assert.False(t, flags.OuterRouter)
		assert.False(t, flags.HideInternal)
	})

	t.Run("parse flags", func(t *testing.T) {
		args := []string{"--base-path", "/docs", "--outer-router", "--hide-internal", "test.yaml", "/docs/schemas/Pet"}
		require.NoError(t, fs.Parse(args))

		assert.Equal(t, "/docs", flags.BasePath)
		assert.True(t, flags.OuterRouter)
		assert.True(t, flags.HideInternal)
		assert.Equal(t, []string{"test.yaml", "/docs/schemas/Pet"}, fs.Args())
	})
}

func TestHandleResolve_Args(t *testing.T) {
	assert.NoError(t, HandleResolve([]string{"--help"}))
	assert.Error(t, HandleResolve([]string{}))
	assert.Error(t, HandleResolve([]string{"only-one.yaml"}))
}

func TestHandleResolve_Text(t *testing.T) {
	path := testutil.WriteTempFile(t, "petstore.yaml", testutil.PetstoreOAS3)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "service",
			args: []string{path, "/"},
			want: "Path: /\nKind: service\n",
		},
		{
			name: "operation",
			args: []string{path, "/paths/pets/post"},
			want: "Path: /paths/pets/post\nKind: child\nNode: http_operation /paths/pets/post\nName: Create pet\nMethod: POST\nTags: Pets\n",
		},
		{
			name: "model",
			args: []string{path, "/schemas/Error"},
			want: "Path: /schemas/Error\nKind: child\nNode: model /schemas/Error\nName: Error\n",
		},
		{
			name: "unknown path",
			args: []string{path, "/nope"},
			want: "Path: /nope\nKind: redirect_first\nRedirect: /\n",
		},
		{
			name: "internal hidden",
			args: []string{"--hide-internal", path, "/paths/pets-petId/delete"},
			want: "Path: /paths/pets-petId/delete\nKind: redirect_root\nRedirect: .\n",
		},
		{
			name: "outer router",
			args: []string{"--base-path", "/docs", "--outer-router", path, "/docs/schemas/Pet"},
			want: "Path: /schemas/Pet\nKind: child\nNode: model /schemas/Pet\nName: A Pet\nTags: Pets\n",
		},
		{
			name: "outer router base itself",
			args: []string{"--base-path", "/docs", "--outer-router", path, "/docs/"},
			want: "Path: /\nKind: service\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := captureStdout(t)
			require.NoError(t, HandleResolve(tt.args))
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestHandleResolve_JSON(t *testing.T) {
	out := captureStdout(t)
	path := testutil.WriteTempFile(t, "hooks.yaml", testutil.WebhooksOAS31)

	require.NoError(t, HandleResolve([]string{"--format", "json", path, "/webhooks/orderCreated/post"}))

	var result struct {
		RelativePath string `json:"relativePath"`
		Kind         string `json:"kind"`
		ShowExport   bool   `json:"showExport"`
		Node         struct {
			Type string `json:"type"`
			Name string `json:"name"`
			Data struct {
				Method string `json:"method"`
				Name   string `json:"name"`
			} `json:"data"`
		} `json:"node"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, "/webhooks/orderCreated/post", result.RelativePath)
	assert.Equal(t, "child", result.Kind)
	assert.False(t, result.ShowExport)
	assert.Equal(t, "http_webhook", result.Node.Type)
	assert.Equal(t, "Order created", result.Node.Name)
	assert.Equal(t, "post", result.Node.Data.Method)
	assert.Equal(t, "orderCreated", result.Node.Data.Name)
}
