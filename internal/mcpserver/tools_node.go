package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/oasdocs/oasdocs/navtree"
	"github.com/oasdocs/oasdocs/toc"
)

type nodeInput struct {
	Spec specInput `json:"spec" jsonschema:"The OpenAPI document"`
	URI  string    `json:"uri"  jsonschema:"Node URI; / is the service"`
}

type nodeOutput struct {
	Type     string   `json:"type"`
	URI      string   `json:"uri"`
	Name     string   `json:"name"`
	Tags     []string `json:"tags,omitempty"`
	Method   string   `json:"method,omitempty"`
	Internal bool     `json:"internal,omitempty"`
	Data     any      `json:"data,omitempty"`
}

func handleNode(ctx context.Context, _ *mcp.CallToolRequest, input nodeInput) (*mcp.CallToolResult, nodeOutput, error) {
	spec, err := input.Spec.resolve(ctx)
	if err != nil {
		return errResult(err), nodeOutput{}, nil
	}

	svc := spec.svc
	if input.URI == "" || input.URI == "/" {
		return nil, nodeOutput{
			Type: string(navtree.NodeTypeService),
			URI:  svc.URI,
			Name: svc.Name,
			Tags: svc.Tags,
			Data: svc.Data,
		}, nil
	}

	node, ok := svc.Child(input.URI)
	if !ok {
		return errResult(fmt.Errorf("no node at uri %q", input.URI)), nodeOutput{}, nil
	}

	output := nodeOutput{
		Type:     string(node.Type),
		URI:      node.URI,
		Name:     node.Name,
		Tags:     node.Tags,
		Method:   node.Method(),
		Internal: toc.IsInternal(node),
	}
	if node.Operation != nil {
		output.Data = node.Operation
	} else {
		output.Data = node.Schema
	}
	return nil, output, nil
}
