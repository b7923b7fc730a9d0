package navtree

import (
	"encoding/json"

	"go.yaml.in/yaml/v4"

	"github.com/oasdocs/oasdocs/normalizer"
)

// NodeType is the kind of a tree node.
type NodeType string

const (
	// NodeTypeService is the root of the tree.
	NodeTypeService NodeType = "http_service"
	// NodeTypeOperation is an HTTP operation under paths.
	NodeTypeOperation NodeType = "http_operation"
	// NodeTypeWebhook is an HTTP operation under webhooks.
	NodeTypeWebhook NodeType = "http_webhook"
	// NodeTypeModel is a named schema.
	NodeTypeModel NodeType = "model"
)

// ServiceNode is the root of the tree. It is never mutated after
// construction.
type ServiceNode struct {
	Type     NodeType            `json:"type"`
	URI      string              `json:"uri"`
	Name     string              `json:"name"`
	Data     *normalizer.Service `json:"data"`
	Tags     []string            `json:"tags"`
	Children []*ChildNode        `json:"children"`

	// Document is the root the tree was computed from. For OpenAPI 3.1
	// sources it carries the forced jsonSchemaDialect.
	Document *yaml.Node `json:"-"`
}

// Child returns the child with the given URI.
func (s *ServiceNode) Child(uri string) (*ChildNode, bool) {
	if s == nil {
		return nil, false
	}
	for _, c := range s.Children {
		if c.URI == uri {
			return c, true
		}
	}
	return nil, false
}

// ChildNode is an operation, webhook or model in the tree. Exactly one of
// Operation or Schema is set, according to Type.
type ChildNode struct {
	Type NodeType
	URI  string
	Name string
	Tags []string

	// Operation is set for NodeTypeOperation and NodeTypeWebhook.
	Operation *normalizer.Operation
	// Schema is set for NodeTypeModel and holds the raw schema value.
	Schema map[string]any
}

// Method returns the HTTP method of an operation or webhook, or "".
func (c *ChildNode) Method() string {
	if c == nil || c.Operation == nil {
		return ""
	}
	return c.Operation.Method
}

// IsOperationLike reports whether c is an operation or a webhook.
func (c *ChildNode) IsOperationLike() bool {
	return c != nil && (c.Type == NodeTypeOperation || c.Type == NodeTypeWebhook)
}

type childNodeJSON struct {
	Type NodeType `json:"type"`
	URI  string   `json:"uri"`
	Name string   `json:"name"`
	Tags []string `json:"tags"`
	Data any      `json:"data"`
}

// MarshalJSON encodes the node with its record under "data".
func (c *ChildNode) MarshalJSON() ([]byte, error) {
	out := childNodeJSON{Type: c.Type, URI: c.URI, Name: c.Name, Tags: c.Tags}
	if out.Tags == nil {
		out.Tags = []string{}
	}
	if c.Operation != nil {
		out.Data = c.Operation
	} else {
		out.Data = c.Schema
	}
	return json.Marshal(out)
}
