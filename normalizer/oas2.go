package normalizer

import (
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/oasdocs/oasdocs/internal/nodeutil"
)

// OAS2 normalizes Swagger 2.0 documents.
type OAS2 struct{}

var _ Normalizer = OAS2{}

// Service implements Normalizer.
func (OAS2) Service(doc *yaml.Node) *Service {
	s := serviceInfo(doc)
	s.Servers = oas2Servers(doc)
	return s
}

// Operation implements Normalizer.
func (OAS2) Operation(doc *yaml.Node, name, method string, cfg Config) *Operation {
	pathItem, op := lookupOperation(doc, name, method, cfg)
	if op == nil {
		return nil
	}

	out := newOperation(doc, op, name, method, cfg, declaredTags(doc))
	out.Servers = oas2Servers(doc)
	if schemes := nodeutil.Strings(op, "schemes"); len(schemes) > 0 {
		out.Servers = buildServers(doc, schemes)
	}

	// Swagger 2.0 keeps schema-ish fields directly on the parameter.
	schemaOf := func(p *yaml.Node) any {
		if s := nodeutil.Lookup(p, "schema"); s != nil {
			return nodeutil.ToValue(s)
		}
		if t := nodeutil.String(p, "type"); t != "" {
			schema := map[string]any{"type": t}
			if f := nodeutil.String(p, "format"); f != "" {
				schema["format"] = f
			}
			if items := nodeutil.Lookup(p, "items"); items != nil {
				schema["items"] = nodeutil.ToValue(items)
			}
			return schema
		}
		return nil
	}
	params := mergeParameters(
		parameters(doc, nodeutil.Lookup(pathItem, "parameters"), schemaOf),
		parameters(doc, nodeutil.Lookup(op, "parameters"), schemaOf),
	)

	consumes := nodeutil.Strings(op, "consumes")
	if len(consumes) == 0 {
		consumes = nodeutil.Strings(doc, "consumes")
	}
	produces := nodeutil.Strings(op, "produces")
	if len(produces) == 0 {
		produces = nodeutil.Strings(doc, "produces")
	}

	for _, p := range params {
		switch p.In {
		case "body":
			out.RequestBody = &RequestBody{
				Description:  p.Description,
				Required:     p.Required,
				ContentTypes: consumes,
			}
		case "formData":
			if out.RequestBody == nil {
				out.RequestBody = &RequestBody{ContentTypes: formContentTypes(consumes)}
			}
			if p.Required {
				out.RequestBody.Required = true
			}
		default:
			out.Parameters = append(out.Parameters, p)
		}
	}

	for code, r := range nodeutil.Pairs(nodeutil.Lookup(op, "responses")) {
		if strings.HasPrefix(code, "x-") {
			continue
		}
		r = deref(doc, r)
		resp := Response{Code: code, Description: nodeutil.String(r, "description")}
		if nodeutil.Lookup(r, "schema") != nil {
			resp.ContentTypes = produces
		}
		out.Responses = append(out.Responses, resp)
	}
	sortResponses(out.Responses)

	return out
}

func formContentTypes(consumes []string) []string {
	for _, c := range consumes {
		if c == "multipart/form-data" || c == "application/x-www-form-urlencoded" {
			return consumes
		}
	}
	return []string{"application/x-www-form-urlencoded"}
}

func oas2Servers(doc *yaml.Node) []Server {
	schemes := nodeutil.Strings(doc, "schemes")
	if len(schemes) == 0 {
		schemes = []string{"https"}
	}
	return buildServers(doc, schemes)
}

// buildServers derives server URLs from host, basePath and schemes.
// Without a host there is no absolute URL to offer.
func buildServers(doc *yaml.Node, schemes []string) []Server {
	host := nodeutil.String(doc, "host")
	if host == "" {
		return nil
	}
	basePath := nodeutil.String(doc, "basePath")
	if basePath != "" && !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	out := make([]Server, 0, len(schemes))
	for _, scheme := range schemes {
		out = append(out, Server{URL: scheme + "://" + host + strings.TrimSuffix(basePath, "/")})
	}
	return out
}
