package mcpserver

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/oasdocs/oasdocs/toc"
)

type resolveInput struct {
	Spec         specInput `json:"spec"                    jsonschema:"The OpenAPI document"`
	Path         string    `json:"path"                    jsonschema:"Browser path to resolve, e.g. /docs/paths/pets/get"`
	BasePath     string    `json:"base_path,omitempty"     jsonschema:"Path prefix the documentation is mounted under"`
	OuterRouter  bool      `json:"outer_router,omitempty"  jsonschema:"Strip base_path from path before matching"`
	HideInternal bool      `json:"hide_internal,omitempty" jsonschema:"Redirect x-internal nodes to the overview"`
}

type resolveOutput struct {
	RelativePath string       `json:"relative_path"`
	Kind         string       `json:"kind"`
	RedirectTo   string       `json:"redirect_to,omitempty"`
	Node         *nodeSummary `json:"node,omitempty"`
	ShowExport   bool         `json:"show_export"`
}

func handleResolve(ctx context.Context, _ *mcp.CallToolRequest, input resolveInput) (*mcp.CallToolResult, resolveOutput, error) {
	if input.Path == "" {
		return errResult(errors.New("path is required")), resolveOutput{}, nil
	}
	spec, err := input.Spec.resolve(ctx)
	if err != nil {
		return errResult(err), resolveOutput{}, nil
	}

	hideInternal := input.HideInternal || cfg.HideInternal
	tree := toc.ComputeAPITree(spec.svc, toc.Config{HideInternal: hideInternal, HideSchemas: cfg.HideSchemas})
	rel := toc.ResolveRelativePath(input.Path, input.BasePath, input.OuterRouter)
	res := toc.Locate(spec.svc, tree, rel, hideInternal)

	output := resolveOutput{
		RelativePath: rel,
		Kind:         res.Kind.String(),
		RedirectTo:   res.RedirectTo,
		ShowExport:   res.IsService(),
	}
	if res.Node != nil {
		s := summarize(res.Node)
		output.Node = &s
	}
	return nil, output, nil
}
