package normalizer

import (
	"sort"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/oasdocs/oasdocs/internal/nodeutil"
)

// OAS3 normalizes OpenAPI 3.0 and 3.1 documents.
type OAS3 struct{}

var _ Normalizer = OAS3{}

// Service implements Normalizer.
func (OAS3) Service(doc *yaml.Node) *Service {
	s := serviceInfo(doc)
	s.Servers = servers(nodeutil.Lookup(doc, "servers"))
	return s
}

// Operation implements Normalizer.
func (OAS3) Operation(doc *yaml.Node, name, method string, cfg Config) *Operation {
	pathItem, op := lookupOperation(doc, name, method, cfg)
	if op == nil {
		return nil
	}

	out := newOperation(doc, op, name, method, cfg, declaredTags(doc))

	// Operation servers override path item servers, which override the document's.
	for _, src := range []*yaml.Node{op, pathItem, doc} {
		if s := servers(nodeutil.Lookup(src, "servers")); len(s) > 0 {
			out.Servers = s
			break
		}
	}

	schemaOf := func(p *yaml.Node) any {
		if s := nodeutil.Lookup(p, "schema"); s != nil {
			return nodeutil.ToValue(s)
		}
		return nil
	}
	out.Parameters = mergeParameters(
		parameters(doc, nodeutil.Lookup(pathItem, "parameters"), schemaOf),
		parameters(doc, nodeutil.Lookup(op, "parameters"), schemaOf),
	)

	if rb := deref(doc, nodeutil.Lookup(op, "requestBody")); nodeutil.IsMap(rb) {
		out.RequestBody = &RequestBody{
			Description:  nodeutil.String(rb, "description"),
			Required:     nodeutil.Bool(rb, "required"),
			ContentTypes: keys(nodeutil.Lookup(rb, "content")),
		}
	}

	for code, r := range nodeutil.Pairs(nodeutil.Lookup(op, "responses")) {
		if strings.HasPrefix(code, "x-") {
			continue
		}
		r = deref(doc, r)
		out.Responses = append(out.Responses, Response{
			Code:         code,
			Description:  nodeutil.String(r, "description"),
			ContentTypes: keys(nodeutil.Lookup(r, "content")),
		})
	}
	sortResponses(out.Responses)

	return out
}

// sortResponses orders responses by code with "default" last, keeping
// document order among equal codes.
func sortResponses(rs []Response) {
	sort.SliceStable(rs, func(i, j int) bool {
		ci, cj := rs[i].Code, rs[j].Code
		if ci == "default" || cj == "default" {
			return cj == "default" && ci != "default"
		}
		return ci < cj
	})
}
