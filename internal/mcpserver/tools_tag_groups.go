package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/oasdocs/oasdocs/navtree"
	"github.com/oasdocs/oasdocs/toc"
)

type tagGroupsInput struct {
	Spec specInput `json:"spec"           jsonschema:"The OpenAPI document"`
	Type string    `json:"type,omitempty" jsonschema:"Node type to group: http_operation (default), http_webhook or model"`
}

type tagGroupOutput struct {
	Title string        `json:"title"`
	Items []nodeSummary `json:"items"`
}

type tagGroupsOutput struct {
	Type      string           `json:"type"`
	Groups    []tagGroupOutput `json:"groups,omitempty"`
	Ungrouped []nodeSummary    `json:"ungrouped,omitempty"`
}

func handleTagGroups(ctx context.Context, _ *mcp.CallToolRequest, input tagGroupsInput) (*mcp.CallToolResult, tagGroupsOutput, error) {
	kind := navtree.NodeType(input.Type)
	switch kind {
	case "":
		kind = navtree.NodeTypeOperation
	case navtree.NodeTypeOperation, navtree.NodeTypeWebhook, navtree.NodeTypeModel:
	default:
		return errResult(fmt.Errorf("invalid type %q; valid values: http_operation, http_webhook, model", input.Type)), tagGroupsOutput{}, nil
	}

	spec, err := input.Spec.resolve(ctx)
	if err != nil {
		return errResult(err), tagGroupsOutput{}, nil
	}

	groups, ungrouped := toc.ComputeTagGroups(spec.svc, kind)
	output := tagGroupsOutput{
		Type:      string(kind),
		Groups:    makeSlice[tagGroupOutput](len(groups)),
		Ungrouped: summarizeAll(ungrouped),
	}
	for _, g := range groups {
		output.Groups = append(output.Groups, tagGroupOutput{Title: g.Title, Items: summarizeAll(g.Items)})
	}
	return nil, output, nil
}
