package navtree

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"

	"github.com/oasdocs/oasdocs/internal/nodeutil"
	"github.com/oasdocs/oasdocs/internal/testutil"
	"github.com/oasdocs/oasdocs/normalizer"
	"github.com/oasdocs/oasdocs/oaserrors"
	"github.com/oasdocs/oasdocs/parser"
)

func TestTransform(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		children int
	}{
		{"oas3", testutil.PetstoreOAS3, 8},
		{"oas3.1", testutil.WebhooksOAS31, 4},
		{"oas2", testutil.LegacyOAS2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := Transform(testutil.NewDocument(t, tt.src))
			require.NoError(t, err)
			assert.Len(t, svc.Children, tt.children)
		})
	}
}

func TestTransform_OAS31ForcesDialect(t *testing.T) {
	doc := testutil.NewDocument(t, testutil.WebhooksOAS31)
	svc, err := Transform(doc)
	require.NoError(t, err)

	assert.Equal(t, DefaultJSONSchemaDialect, nodeutil.String(svc.Document, "jsonSchemaDialect"))
	assert.Equal(t, "", nodeutil.String(doc.Content(), "jsonSchemaDialect"), "source document must not change")
}

func TestTransform_OAS3KeepsDialect(t *testing.T) {
	svc, err := Transform(testutil.NewDocument(t, testutil.PetstoreOAS3))
	require.NoError(t, err)
	assert.Equal(t, "", nodeutil.String(svc.Document, "jsonSchemaDialect"))
}

func TestTransform_Unrecognized(t *testing.T) {
	doc := testutil.NewDocument(t, testutil.Unrecognized)
	svc, err := Transform(doc)
	assert.Nil(t, svc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrUnrecognizedDocument))
	assert.True(t, errors.Is(err, oaserrors.ErrParse))

	_, err = Transform(nil)
	assert.True(t, errors.Is(err, oaserrors.ErrUnrecognizedDocument))
}

type recordingNormalizer struct {
	normalizer.OAS3
	calls []string
}

func (r *recordingNormalizer) Operation(doc *yaml.Node, name, method string, cfg normalizer.Config) *normalizer.Operation {
	r.calls = append(r.calls, string(cfg.Kind)+" "+method+" "+name)
	return r.OAS3.Operation(doc, name, method, cfg)
}

func TestTransform_WithNormalizers(t *testing.T) {
	rec := &recordingNormalizer{}
	_, err := Transform(
		testutil.NewDocument(t, testutil.WebhooksOAS31),
		WithNormalizers(nil, rec),
		WithLogger(parser.NopLogger{}),
	)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"operation get /orders",
		"webhook post orderCreated",
		"webhook post order/updated",
		"webhook put plain",
	}, rec.calls)
}
