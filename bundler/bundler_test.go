package bundler

import (
	"encoding/json"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"

	"github.com/oasdocs/oasdocs/internal/nodeutil"
	"github.com/oasdocs/oasdocs/internal/testutil"
	"github.com/oasdocs/oasdocs/oaserrors"
	"github.com/oasdocs/oasdocs/parser"
)

const refsDoc = `openapi: 3.0.3
info:
  title: Refs
  version: "1"
paths:
  /pets:
    get:
      summary: List
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/PetList'
components:
  schemas:
    PetList:
      type: array
      items:
        $ref: '#/components/schemas/Pet'
    Pet:
      type: object
      properties:
        name:
          type: string
        owner:
          $ref: '#/components/schemas/Owner'
          description: overridden
    Owner:
      type: object
      description: an owner
      properties:
        pets:
          $ref: '#/components/schemas/PetList'
    Remote:
      $ref: 'other.yaml#/Thing'
    Dangling:
      $ref: '#/components/schemas/Missing'
    Escaped:
      $ref: '#/paths/~1pets/get/summary'
`

func root(t *testing.T, src string) *yaml.Node {
	t.Helper()
	return testutil.NewDocument(t, src).Content()
}

func TestBundle(t *testing.T) {
	doc := root(t, refsDoc)
	res, err := New().Bundle(doc)
	require.NoError(t, err)

	schema := nodeutil.Get(res.Root, "paths", "/pets", "get", "responses", "200", "content", "application/json", "schema")
	assert.Equal(t, "array", nodeutil.String(schema, "type"))
	assert.Equal(t, "object", nodeutil.String(nodeutil.Lookup(schema, "items"), "type"))

	owner := nodeutil.Get(schema, "items", "properties", "owner")
	assert.Equal(t, "overridden", nodeutil.String(owner, "description"), "sibling keys override the target")
	assert.Equal(t, "object", nodeutil.String(owner, "type"))

	loop := nodeutil.Get(owner, "properties", "pets")
	assert.Equal(t, "#/components/schemas/PetList", nodeutil.String(loop, "$ref"), "circular reference stays")

	assert.Equal(t, "#/components/schemas/Missing", nodeutil.String(nodeutil.Get(res.Root, "components", "schemas", "Dangling"), "$ref"))
	assert.Equal(t, "other.yaml#/Thing", nodeutil.String(nodeutil.Get(res.Root, "components", "schemas", "Remote"), "$ref"))

	escaped, ok := nodeutil.Scalar(nodeutil.Get(res.Root, "components", "schemas", "Escaped"))
	assert.True(t, ok)
	assert.Equal(t, "List", escaped)

	assert.True(t, res.HasCircularRefs())
	assert.Contains(t, res.Circular, "#/components/schemas/PetList")
	assert.ElementsMatch(t, []string{"#/components/schemas/Missing", "other.yaml#/Thing"}, res.Unresolved)
	assert.Positive(t, res.Inlined)
}

func TestBundle_SourceUnchanged(t *testing.T) {
	doc := root(t, refsDoc)
	before, err := nodeutil.MarshalJSON(doc, "")
	require.NoError(t, err)

	_, err = New().Bundle(doc)
	require.NoError(t, err)

	after, err := nodeutil.MarshalJSON(doc, "")
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestBundle_KeepsKeyOrder(t *testing.T) {
	res, err := New().Bundle(root(t, refsDoc))
	require.NoError(t, err)

	var keys []string
	for k := range nodeutil.Pairs(nodeutil.Get(res.Root, "components", "schemas")) {
		keys = append(keys, k)
	}
	assert.Equal(t, []string{"PetList", "Pet", "Owner", "Remote", "Dangling", "Escaped"}, keys)
}

func TestBundle_MaxRefDepth(t *testing.T) {
	src := `a:
  $ref: '#/b'
b:
  next:
    $ref: '#/c'
c:
  next:
    $ref: '#/d'
d:
  leaf: true
`
	tests := []struct {
		depth     int
		truncated []string
	}{
		{1, []string{"#/c", "#/d"}},
		{2, []string{"#/d"}},
		{3, nil},
	}
	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.depth), func(t *testing.T) {
			b := New()
			b.MaxRefDepth = tt.depth
			res, err := b.Bundle(root(t, src))
			require.NoError(t, err)
			assert.Equal(t, tt.truncated, res.Truncated)
		})
	}
}

func TestBundle_Strict(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		circular bool
	}{
		{"circular", "a:\n  $ref: '#/a'\n", true},
		{"missing", "a:\n  $ref: '#/b'\n", false},
		{"root", "a:\n  $ref: '#'\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New()
			b.Strict = true
			_, err := b.Bundle(root(t, tt.src))
			require.Error(t, err)
			assert.True(t, errors.Is(err, oaserrors.ErrReference))
			assert.Equal(t, tt.circular, errors.Is(err, oaserrors.ErrCircularReference))

			var refErr *oaserrors.ReferenceError
			require.True(t, errors.As(err, &refErr))
		})
	}
}

func TestBundle_Aliases(t *testing.T) {
	src := "base: &b\n  type: string\nuse: *b\n"
	res, err := New().Bundle(root(t, src))
	require.NoError(t, err)

	use := res.Root.Content[3]
	assert.Equal(t, yaml.MappingNode, use.Kind, "aliases are expanded")
	assert.Equal(t, "string", nodeutil.String(use, "type"))
}

func TestBundle_Empty(t *testing.T) {
	res, err := New().Bundle(nil)
	require.NoError(t, err)
	assert.Nil(t, res.Root)
}

func TestBundleDocument(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		format parser.SourceFormat
	}{
		{"yaml", refsDoc, parser.SourceFormatYAML},
		{"json", `{"openapi":"3.0.0","info":{"title":"J","version":"1"},"x":{"$ref":"#/info"}}`, parser.SourceFormatJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := testutil.NewDocument(t, tt.src)
			res, err := New().BundleDocument(doc)
			require.NoError(t, err)
			require.NotNil(t, res.Document)

			assert.Equal(t, tt.format, res.Document.Format)
			assert.Equal(t, doc.Dialect, res.Document.Dialect)
			assert.NotEqual(t, string(doc.Raw), string(res.Document.Raw))
			assert.Equal(t, tt.format == parser.SourceFormatJSON, json.Valid(res.Document.Raw))

			reparsed := testutil.NewDocument(t, string(res.Document.Raw))
			assert.Equal(t, tt.format, reparsed.Format)
		})
	}
}

func TestBundleWithOptions(t *testing.T) {
	doc := testutil.NewDocument(t, refsDoc)

	res, err := BundleWithOptions(WithDocument(doc), WithMaxRefDepth(4), WithLogger(parser.NopLogger{}))
	require.NoError(t, err)
	assert.NotNil(t, res.Document)

	res, err = BundleWithOptions(WithRoot(doc.Root))
	require.NoError(t, err)
	assert.Nil(t, res.Document)
	assert.NotNil(t, res.Root)

	_, err = BundleWithOptions()
	assert.Error(t, err)

	_, err = BundleWithOptions(WithDocument(doc), WithRoot(doc.Root))
	assert.Error(t, err)

	_, err = BundleWithOptions(WithDocument(doc), WithMaxRefDepth(0))
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrConfig))

	_, err = BundleWithOptions(WithRoot(root(t, "a:\n  $ref: '#/a'\n")), WithStrict(true))
	assert.True(t, errors.Is(err, oaserrors.ErrCircularReference))
}
