// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes the documentation tree as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/oasdocs/oasdocs"
	"github.com/oasdocs/oasdocs/navtree"
	"github.com/oasdocs/oasdocs/toc"
)

const serverInstructions = `oasdocs MCP server: builds the navigation tree of an OpenAPI 2.0, 3.0 or 3.1 document and answers questions about it.

Every tool takes a spec object with exactly one of file, url or content.

Configuration: defaults come from OASDOCS_* environment variables set in your MCP client config.

Key settings:
- OASDOCS_CACHE_FILE_TTL (default: 15m) - cache TTL for local file documents
- OASDOCS_CACHE_URL_TTL (default: 5m) - cache TTL for URL-fetched documents
- OASDOCS_CACHE_ENABLED (default: true) - disable document caching entirely
- OASDOCS_HIDE_INTERNAL (default: false) - hide x-internal operations and schemas by default
- OASDOCS_HIDE_SCHEMAS (default: false) - leave the Schemas section out of tables of contents
- OASDOCS_MAX_REF_DEPTH (default: 32) - nested $ref expansions when bundling
- OASDOCS_ALLOW_PRIVATE_IPS (default: false) - allow url inputs on private networks

Caching: loaded documents are cached per session. File entries use path+mtime as key. URL entries are cached with a shorter TTL. A background sweeper removes expired entries every 60s.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		specCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasdocs", Version: oasdocs.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "toc",
		Description: "Build the table of contents of an OpenAPI document: an Overview entry, then Endpoints, Webhooks and Schemas sections with tag groups. Entries are returned flat in display order with a depth of 0 or 1. Use hide_internal to drop x-internal items and hide_schemas to drop the Schemas section.",
	}, handleToC)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "resolve",
		Description: "Resolve a browser path to the node the documentation would show. Returns the kind of result (service, child, redirect_first, redirect_root or none), the redirect target and a summary of the node. Set base_path and outer_router to mirror how the documentation is mounted.",
	}, handleResolve)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "node",
		Description: "Return one node of the navigation tree by URI, such as / for the service, /paths/pets/get for an operation, /webhooks/orderCreated/post for a webhook or /schemas/Pet for a schema. The data field holds the normalized operation, the schema or the service description.",
	}, handleNode)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "tag_groups",
		Description: "Group the operations, webhooks or schemas of a document by tag. Groups follow the declared tag order, then first use. Nodes without a tag are returned as ungrouped. type is http_operation (default), http_webhook or model.",
	}, handleTagGroups)
}

// nodeSummary is the compact form of a tree node used in tool output.
type nodeSummary struct {
	Type     string   `json:"type"`
	URI      string   `json:"uri"`
	Name     string   `json:"name"`
	Method   string   `json:"method,omitempty"`
	Path     string   `json:"path,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Internal bool     `json:"internal,omitempty"`
}

func summarize(node *navtree.ChildNode) nodeSummary {
	s := nodeSummary{
		Type:     string(node.Type),
		URI:      node.URI,
		Name:     node.Name,
		Method:   node.Method(),
		Tags:     node.Tags,
		Internal: toc.IsInternal(node),
	}
	if node.Operation != nil {
		s.Path = node.Operation.Path
	}
	return s
}

func summarizeAll(nodes []*navtree.ChildNode) []nodeSummary {
	out := makeSlice[nodeSummary](len(nodes))
	for _, n := range nodes {
		out = append(out, summarize(n))
	}
	return out
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
