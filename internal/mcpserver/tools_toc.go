package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/oasdocs/oasdocs/toc"
)

type tocInput struct {
	Spec         specInput `json:"spec"                    jsonschema:"The OpenAPI document"`
	HideInternal bool      `json:"hide_internal,omitempty" jsonschema:"Leave out x-internal operations and schemas"`
	HideSchemas  bool      `json:"hide_schemas,omitempty"  jsonschema:"Leave out the Schemas section"`
}

// tocEntry is one table of contents item. Group members follow their
// group at depth 1.
type tocEntry struct {
	Kind      string `json:"kind"`
	Title     string `json:"title"`
	Depth     int    `json:"depth"`
	Slug      string `json:"slug,omitempty"`
	Type      string `json:"type,omitempty"`
	Meta      string `json:"meta,omitempty"`
	ItemsType string `json:"items_type,omitempty"`
}

type tocOutput struct {
	Title   string     `json:"title"`
	Dialect string     `json:"dialect"`
	Entries []tocEntry `json:"entries"`
}

func handleToC(ctx context.Context, _ *mcp.CallToolRequest, input tocInput) (*mcp.CallToolResult, tocOutput, error) {
	spec, err := input.Spec.resolve(ctx)
	if err != nil {
		return errResult(err), tocOutput{}, nil
	}

	tree := toc.ComputeAPITree(spec.svc, toc.Config{
		HideSchemas:  input.HideSchemas || cfg.HideSchemas,
		HideInternal: input.HideInternal || cfg.HideInternal,
	})
	return nil, tocOutput{
		Title:   spec.svc.Name,
		Dialect: spec.doc.Dialect.String(),
		Entries: flattenToC(tree, 0, nil),
	}, nil
}

func flattenToC(items []toc.Item, depth int, out []tocEntry) []tocEntry {
	for _, it := range items {
		out = append(out, tocEntry{
			Kind:      string(it.Kind),
			Title:     it.Title,
			Depth:     depth,
			Slug:      it.Slug,
			Type:      it.Type,
			Meta:      it.Meta,
			ItemsType: string(it.ItemsType),
		})
		out = flattenToC(it.Items, depth+1, out)
	}
	return out
}
