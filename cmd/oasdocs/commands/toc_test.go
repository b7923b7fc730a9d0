package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oasdocs/oasdocs/internal/testutil"
)

func TestSetupTOCFlags(t *testing.T) {
	fs, flags := SetupTOCFlags()

	t.Run("default values", func(t *testing.T) {
		assert.Equal(t, FormatText, flags.Format)
		assert.False(t, flags.HideSchemas)
		assert.False(t, flags.HideInternal)
	})

	t.Run("parse flags", func(t *testing.T) {
		args := []string{"--format", "json", "--hide-schemas", "--hide-internal", "test.yaml"}
		require.NoError(t, fs.Parse(args))

		assert.Equal(t, FormatJSON, flags.Format)
		assert.True(t, flags.HideSchemas)
		assert.True(t, flags.HideInternal)
		assert.Equal(t, "test.yaml", fs.Arg(0))
	})
}

func TestHandleTOC_NoArgs(t *testing.T) {
	assert.Error(t, HandleTOC([]string{}))
}

func TestHandleTOC_Help(t *testing.T) {
	assert.NoError(t, HandleTOC([]string{"--help"}))
}

func TestHandleTOC_Text(t *testing.T) {
	path := testutil.WriteTempFile(t, "petstore.yaml", testutil.PetstoreOAS3)

	tests := []struct {
		name    string
		args    []string
		want    string
		missing []string
	}{
		{
			name: "full",
			args: []string{path},
			want: "Overview  /\n" +
				"ENDPOINTS\n" +
				"  GET    Health  /paths/health/get\n" +
				"  Pets/\n" +
				"    GET    List pets  /operations/list-pets\n" +
				"    POST   Create pet  /paths/pets/post\n" +
				"    GET    /pets/{petId}  /paths/pets-petId/get\n" +
				"  admin/\n" +
				"    DELETE Delete pet  /paths/pets-petId/delete\n" +
				"SCHEMAS\n" +
				"  Error  /schemas/Error\n" +
				"  Secret  /schemas/Secret\n" +
				"  Pets/\n" +
				"    A Pet  /schemas/Pet\n",
		},
		{
			name: "hide internal and schemas",
			args: []string{"--hide-internal", "--hide-schemas", path},
			want: "Overview  /\n" +
				"ENDPOINTS\n" +
				"  GET    Health  /paths/health/get\n" +
				"  Pets/\n" +
				"    GET    List pets  /operations/list-pets\n" +
				"    POST   Create pet  /paths/pets/post\n" +
				"    GET    /pets/{petId}  /paths/pets-petId/get\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := captureStdout(t)
			require.NoError(t, HandleTOC(tt.args))
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestHandleTOC_JSON(t *testing.T) {
	out := captureStdout(t)
	path := testutil.WriteTempFile(t, "hooks.yaml", testutil.WebhooksOAS31)

	require.NoError(t, HandleTOC([]string{"--format", "json", path}))

	var items []map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &items))
	require.Len(t, items, 7)
	assert.Equal(t, "Overview", items[0]["title"])
	assert.Equal(t, "overview", items[0]["type"])
	assert.Equal(t, map[string]any{"title": "Webhooks"}, items[3])
	assert.Equal(t, "/webhooks/hook-upd", items[4]["slug"])
	assert.Equal(t, "http_webhook", items[6]["itemsType"])
}

func TestHandleTOC_MissingFile(t *testing.T) {
	err := HandleTOC([]string{"does-not-exist.yaml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does-not-exist.yaml")
}
