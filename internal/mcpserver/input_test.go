package mcpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oasdocs/oasdocs/internal/testutil"
	"github.com/oasdocs/oasdocs/parser"
)

const minimalDoc = `openapi: "3.0.0"
info:
  title: Test
  version: "1.0"
paths: {}
`

func TestSpecInput_ResolveFile(t *testing.T) {
	specCache.reset()
	input := specInput{File: testutil.WriteTempFile(t, "petstore.yaml", testutil.PetstoreOAS3)}
	spec, err := input.resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Petstore", spec.svc.Name)
	assert.Equal(t, parser.DialectOAS3, spec.doc.Dialect)
	assert.Len(t, spec.svc.Children, 8)
}

func TestSpecInput_ResolveContent(t *testing.T) {
	specCache.reset()
	spec, err := specInput{Content: minimalDoc}.resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Test", spec.svc.Name)
	assert.Empty(t, spec.svc.Children)
}

func TestSpecInput_ResolveBundlesRefs(t *testing.T) {
	specCache.reset()
	content := `openapi: 3.0.0
info: {title: Refs, version: "1"}
paths:
  /a:
    get:
      summary: A
      tags: [t]
components:
  schemas:
    Pet:
      $ref: '#/components/schemas/Animal'
    Animal:
      type: object
      title: Animal
`
	spec, err := specInput{Content: content}.resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, spec.bundled.Inlined)

	node, ok := spec.svc.Child("/schemas/Pet")
	require.True(t, ok)
	assert.Equal(t, "Animal", node.Name)
	assert.Equal(t, "object", node.Schema["type"])
}

func TestSpecInput_ResolveSourceCount(t *testing.T) {
	tests := []struct {
		name  string
		input specInput
	}{
		{"none", specInput{}},
		{"file and content", specInput{File: "foo.yaml", Content: "bar"}},
		{"all three", specInput{File: "foo.yaml", URL: "https://example.com/a.yaml", Content: "bar"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.input.resolve(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), "exactly one of file, url, or content must be provided")
		})
	}
}

func TestSpecInput_ResolveFileNotFound(t *testing.T) {
	specCache.reset()
	_, err := specInput{File: "/nonexistent/path.yaml"}.resolve(context.Background())
	assert.Error(t, err)
}

func TestSpecInput_ResolveUnrecognized(t *testing.T) {
	specCache.reset()
	_, err := specInput{Content: testutil.Unrecognized}.resolve(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 0, specCache.size())
}

func TestSpecInput_InlineSizeLimit(t *testing.T) {
	old := cfg.MaxInlineSize
	cfg.MaxInlineSize = 16
	t.Cleanup(func() { cfg.MaxInlineSize = old })

	_, err := specInput{Content: minimalDoc}.resolve(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds maximum 16 bytes")
}

func TestSpecInput_URLBlocksLoopback(t *testing.T) {
	specCache.reset()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(minimalDoc))
	}))
	defer srv.Close()

	_, err := specInput{URL: srv.URL + "/openapi.yaml"}.resolve(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blocked")

	old := cfg.AllowPrivateIPs
	cfg.AllowPrivateIPs = true
	t.Cleanup(func() { cfg.AllowPrivateIPs = old })

	spec, err := specInput{URL: srv.URL + "/allowed.yaml"}.resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Test", spec.svc.Name)
}

func TestSpecCache_HitOnSameFile(t *testing.T) {
	specCache.reset()
	input := specInput{File: testutil.WriteTempFile(t, "petstore.yaml", testutil.PetstoreOAS3)}

	first, err := input.resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, specCache.size())

	second, err := input.resolve(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, second, "expected same pointer from cache hit")
}

func TestSpecCache_MissOnModifiedFile(t *testing.T) {
	specCache.reset()
	path := testutil.WriteTempFile(t, "spec.yaml", strings.Replace(minimalDoc, "title: Test", "title: Test V1", 1))

	input := specInput{File: path}
	first, err := input.resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Test V1", first.svc.Name)

	require.NoError(t, os.WriteFile(path, []byte(strings.Replace(minimalDoc, "title: Test", "title: Test V2", 1)), 0o600))
	// Ensure mtime differs from the first write on coarse-grained filesystems.
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, future, future))

	second, err := input.resolve(context.Background())
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Equal(t, "Test V2", second.svc.Name)
}

func TestSpecCache_ContentHash(t *testing.T) {
	specCache.reset()
	input := specInput{Content: minimalDoc}

	first, err := input.resolve(context.Background())
	require.NoError(t, err)
	second, err := input.resolve(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestSpecCache_Disabled(t *testing.T) {
	specCache.reset()
	old := cfg.CacheEnabled
	cfg.CacheEnabled = false
	t.Cleanup(func() { cfg.CacheEnabled = old })

	input := specInput{Content: minimalDoc}
	first, err := input.resolve(context.Background())
	require.NoError(t, err)
	second, err := input.resolve(context.Background())
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Equal(t, 0, specCache.size())
}

func TestSpecCache_LRUEviction(t *testing.T) {
	specCache.reset()

	var firstKey string
	for i := range specCache.maxSize + 1 {
		content := strings.Replace(minimalDoc, "title: Test", `title: "Spec `+string(rune('A'+i))+`"`, 1)
		if i == 0 {
			firstKey = makeCacheKey(specInput{Content: content})
		}
		_, err := specInput{Content: content}.resolve(context.Background())
		require.NoError(t, err)
	}

	assert.Equal(t, specCache.maxSize, specCache.size())
	assert.Nil(t, specCache.get(firstKey), "expected oldest entry to be evicted")
}

func TestSpecCache_Sweep(t *testing.T) {
	specCache.reset()
	specCache.putWithTTL("expired", &loadedSpec{}, -time.Second)
	specCache.putWithTTL("fresh", &loadedSpec{}, time.Hour)

	specCache.sweep()
	assert.Equal(t, 1, specCache.size())
	assert.NotNil(t, specCache.get("fresh"))
	assert.Nil(t, specCache.get("expired"))
}

func TestMakeCacheKey(t *testing.T) {
	path := testutil.WriteTempFile(t, "a.yaml", minimalDoc)

	assert.True(t, strings.HasPrefix(makeCacheKey(specInput{File: path}), "file:"))
	assert.Equal(t, "url:https://example.com/a.yaml", makeCacheKey(specInput{URL: "https://example.com/a.yaml"}))
	assert.True(t, strings.HasPrefix(makeCacheKey(specInput{Content: minimalDoc}), "content:"))
	assert.Empty(t, makeCacheKey(specInput{File: "/nonexistent/a.yaml"}))
	assert.Empty(t, makeCacheKey(specInput{}))
}
