package navtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"

	"github.com/oasdocs/oasdocs/internal/testutil"
	"github.com/oasdocs/oasdocs/normalizer"
)

func decode(t *testing.T, src string) *yaml.Node {
	t.Helper()
	var n yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(src), &n))
	return &n
}

type childSummary struct {
	Type NodeType
	URI  string
	Name string
	Tags []string
}

func summarize(children []*ChildNode) []childSummary {
	out := make([]childSummary, 0, len(children))
	for _, c := range children {
		out = append(out, childSummary{c.Type, c.URI, c.Name, c.Tags})
	}
	return out
}

func TestComputeServiceNode_OAS3(t *testing.T) {
	doc := testutil.NewDocument(t, testutil.PetstoreOAS3)
	svc := ComputeServiceNode(doc.Root, OAS3Rules, normalizer.OAS3{})
	require.NotNil(t, svc)

	assert.Equal(t, NodeTypeService, svc.Type)
	assert.Equal(t, "/", svc.URI)
	assert.Equal(t, "Petstore", svc.Name)
	assert.Equal(t, []string{"Pets", "store"}, svc.Tags)
	require.NotNil(t, svc.Data)
	assert.Equal(t, "1.0.0", svc.Data.Version)

	want := []childSummary{
		{NodeTypeOperation, "/operations/list-pets", "List pets", []string{"pets"}},
		{NodeTypeOperation, "/paths/pets/post", "Create pet", []string{"Pets"}},
		{NodeTypeOperation, "/paths/pets-petId/get", "/pets/{petId}", []string{"pets"}},
		{NodeTypeOperation, "/paths/pets-petId/delete", "Delete pet", []string{"admin"}},
		{NodeTypeOperation, "/paths/health/get", "Health", []string{}},
		{NodeTypeModel, "/schemas/Pet", "A Pet", []string{"Pets"}},
		{NodeTypeModel, "/schemas/Error", "Error", []string{}},
		{NodeTypeModel, "/schemas/Secret", "Secret", []string{}},
	}
	assert.Equal(t, want, summarize(svc.Children))

	op := svc.Children[0].Operation
	require.NotNil(t, op)
	assert.Equal(t, "list-pets", op.IID)
	assert.Equal(t, "get", svc.Children[0].Method())
	assert.True(t, svc.Children[3].Operation.Internal)

	pet := svc.Children[5]
	assert.Nil(t, pet.Operation)
	assert.Equal(t, "object", pet.Schema["type"])
	assert.Equal(t, "", pet.Method())
}

func TestComputeServiceNode_Webhooks(t *testing.T) {
	doc := testutil.NewDocument(t, testutil.WebhooksOAS31)
	svc := ComputeServiceNode(doc.Root, OAS3Rules, normalizer.OAS3{})

	want := []childSummary{
		{NodeTypeOperation, "/paths/orders/get", "List orders", []string{"orders"}},
		{NodeTypeWebhook, "/webhooks/orderCreated/post", "Order created", []string{"orders"}},
		{NodeTypeWebhook, "/webhooks/hook-upd", "hook-upd", []string{}},
		{NodeTypeWebhook, "/webhooks/plain/put", "plain", []string{}},
	}
	assert.Equal(t, want, summarize(svc.Children))
	assert.Equal(t, "orderCreated", svc.Children[1].Operation.Name)
	assert.True(t, svc.Children[1].IsOperationLike())
}

func TestComputeServiceNode_OAS2(t *testing.T) {
	doc := testutil.NewDocument(t, testutil.LegacyOAS2)
	svc := ComputeServiceNode(doc.Root, OAS2Rules, normalizer.OAS2{})

	want := []childSummary{
		{NodeTypeOperation, "/paths/users/get", "List users", []string{"users"}},
		{NodeTypeModel, "/schemas/User", "User", []string{}},
	}
	assert.Equal(t, want, summarize(svc.Children))
}

func TestComputeServiceNode_OAS2RulesIgnoreWebhooks(t *testing.T) {
	doc := testutil.NewDocument(t, testutil.WebhooksOAS31)
	svc := ComputeServiceNode(doc.Root, OAS2Rules, normalizer.OAS3{})
	for _, c := range svc.Children {
		assert.NotEqual(t, NodeTypeWebhook, c.Type)
	}
}

func TestComputeServiceNode_Malformed(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"paths is a scalar", "openapi: 3.0.0\npaths: 5\n"},
		{"paths is a list", "openapi: 3.0.0\npaths: [a, b]\n"},
		{"path item is null", "openapi: 3.0.0\npaths:\n  /a: null\n"},
		{"operation is a scalar", "openapi: 3.0.0\npaths:\n  /a:\n    get: yes\n"},
		{"schema is null", "openapi: 3.1.0\ncomponents:\n  schemas:\n    Flag: ~\n"},
		{"components is null", "openapi: 3.0.0\ncomponents: ~\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := ComputeServiceNode(decode(t, tt.src), OAS3Rules, normalizer.OAS3{})
			require.NotNil(t, svc)
			assert.Empty(t, svc.Children)
			assert.NotNil(t, svc.Children)
		})
	}
}

func TestComputeServiceNode_NonMappingRoot(t *testing.T) {
	svc := ComputeServiceNode(decode(t, "[1, 2]"), OAS3Rules, normalizer.OAS3{})
	require.NotNil(t, svc)
	assert.Empty(t, svc.Children)
	assert.Equal(t, []string{}, svc.Tags)

	svc = ComputeServiceNode(nil, OAS3Rules, normalizer.OAS3{})
	require.NotNil(t, svc)
	assert.Equal(t, "", svc.Name)
}

func TestComputeServiceNode_UncompiledRules(t *testing.T) {
	rules := []Rule{{
		Match: `^paths$`,
		Type:  RulePaths,
		Children: []Rule{{
			Match:    `^~1only$`,
			Type:     RulePath,
			Children: []Rule{{Match: `^get$`, Type: RuleOperation}},
		}},
	}}
	src := `
openapi: 3.0.0
paths:
  /only:
    get: {summary: Only}
    post: {summary: Skipped}
  /other:
    get: {summary: Other}
`
	svc := ComputeServiceNode(decode(t, src), rules, normalizer.OAS3{})
	require.Len(t, svc.Children, 1)
	assert.Equal(t, "Only", svc.Children[0].Name)
}

func TestComputeServiceNode_InvalidRules(t *testing.T) {
	rules := []Rule{{Match: `(`, Type: RulePaths}}
	svc := ComputeServiceNode(decode(t, "paths: {}"), rules, normalizer.OAS3{})
	require.NotNil(t, svc)
	assert.Empty(t, svc.Children)
}

func TestComputeServiceNode_AnchoredRules(t *testing.T) {
	src := `
openapi: 3.0.0
paths:
  /a:
    getter: {summary: not a method}
    get: {summary: A}
mypaths:
  /b:
    get: {summary: B}
`
	svc := ComputeServiceNode(decode(t, src), OAS3Rules, normalizer.OAS3{})
	require.Len(t, svc.Children, 1)
	assert.Equal(t, "A", svc.Children[0].Name)
}

func TestComputeServiceNode_DuplicateKeys(t *testing.T) {
	src := `
openapi: 3.0.0
paths:
  /a:
    get: {summary: first}
  /b:
    get: {summary: B}
  /a:
    get: {summary: second}
`
	svc := ComputeServiceNode(decode(t, src), OAS3Rules, normalizer.OAS3{})
	require.Len(t, svc.Children, 2)
	assert.Equal(t, "second", svc.Children[0].Name)
	assert.Equal(t, "B", svc.Children[1].Name)
}

func TestComputeServiceNode_EncodedKeys(t *testing.T) {
	src := `
openapi: 3.0.0
paths:
  /a~b:
    get: {}
components:
  schemas:
    a~b: {type: string}
`
	svc := ComputeServiceNode(decode(t, src), OAS3Rules, normalizer.OAS3{})
	require.Len(t, svc.Children, 2)
	assert.Equal(t, "/paths/a~b/get", svc.Children[0].URI)
	assert.Equal(t, "/a~b", svc.Children[0].Name)
	assert.Equal(t, "/schemas/a~0b", svc.Children[1].URI)
	assert.Equal(t, "a~0b", svc.Children[1].Name)
}

func TestComputeServiceNode_SharedIID(t *testing.T) {
	src := `
openapi: 3.0.0
paths:
  /a:
    get: {summary: First, x-stoplight: {id: dup}}
  /b:
    get: {summary: Second, x-stoplight: {id: dup}}
`
	svc := ComputeServiceNode(decode(t, src), OAS3Rules, normalizer.OAS3{})
	want := []childSummary{
		{NodeTypeOperation, "/operations/dup", "First", []string{}},
		{NodeTypeOperation, "/operations/dup", "Second", []string{}},
	}
	assert.Equal(t, want, summarize(svc.Children))

	c, ok := svc.Child("/operations/dup")
	require.True(t, ok)
	assert.Same(t, svc.Children[0], c)
}

func TestComputeServiceNode_NonObjectSchemas(t *testing.T) {
	src := `
openapi: 3.1.0
components:
  schemas:
    Any: true
    Never: false
    Missing: ~
    Named: {title: Named thing}
`
	svc := ComputeServiceNode(decode(t, src), OAS3Rules, normalizer.OAS3{})
	want := []childSummary{
		{NodeTypeModel, "/schemas/Any", "Any", []string{}},
		{NodeTypeModel, "/schemas/Never", "Never", []string{}},
		{NodeTypeModel, "/schemas/Named", "Named thing", []string{}},
	}
	assert.Equal(t, want, summarize(svc.Children))
	assert.Equal(t, map[string]any{}, svc.Children[0].Schema)
}

func TestServiceNode_Child(t *testing.T) {
	doc := testutil.NewDocument(t, testutil.PetstoreOAS3)
	svc := ComputeServiceNode(doc.Root, OAS3Rules, normalizer.OAS3{})

	c, ok := svc.Child("/schemas/Pet")
	require.True(t, ok)
	assert.Equal(t, "A Pet", c.Name)

	_, ok = svc.Child("/nope")
	assert.False(t, ok)

	var nilSvc *ServiceNode
	_, ok = nilSvc.Child("/")
	assert.False(t, ok)
}

func TestChildNode_MarshalJSON(t *testing.T) {
	op := &ChildNode{
		Type:      NodeTypeOperation,
		URI:       "/paths/a/get",
		Name:      "A",
		Operation: &normalizer.Operation{ID: "1", Method: "get", Tags: []normalizer.Tag{}},
	}
	data, err := op.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"http_operation","uri":"/paths/a/get","name":"A","tags":[],
		"data":{"id":"1","kind":"","method":"get","tags":[]}}`, string(data))

	model := &ChildNode{Type: NodeTypeModel, URI: "/schemas/X", Name: "X", Tags: []string{"t"}, Schema: map[string]any{"type": "object"}}
	data, err = model.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"model","uri":"/schemas/X","name":"X","tags":["t"],"data":{"type":"object"}}`, string(data))
}
