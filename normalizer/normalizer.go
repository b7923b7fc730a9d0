package normalizer

import (
	"hash/fnv"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/oasdocs/oasdocs/internal/nodeutil"
	"github.com/oasdocs/oasdocs/internal/pathutil"
)

// Normalizer produces normalized records from a decoded document.
// Implementations never panic on malformed input; Operation returns nil
// when the addressed member is not an operation object.
type Normalizer interface {
	Service(doc *yaml.Node) *Service
	Operation(doc *yaml.Node, name, method string, cfg Config) *Operation
}

// maxRefHops bounds chains of "$ref" objects followed while normalizing.
const maxRefHops = 32

// deref follows local "$ref" members until a non-reference node is found.
// Unresolvable or remote references leave n as is.
func deref(doc, n *yaml.Node) *yaml.Node {
	n = nodeutil.Resolve(n)
	for range maxRefHops {
		ref := nodeutil.String(n, "$ref")
		if ref == "" || !strings.HasPrefix(ref, "#") {
			return n
		}
		target := nodeutil.Get(doc, pathutil.Split(ref)...)
		if target == nil {
			return n
		}
		n = target
	}
	return n
}

// lookupOperation finds the operation object addressed by cfg, name and
// method, following a "$ref" on the containing path item.
func lookupOperation(doc *yaml.Node, name, method string, cfg Config) (pathItem, op *yaml.Node) {
	pathItem = deref(doc, nodeutil.Get(doc, cfg.DocumentProp, name))
	op = deref(doc, nodeutil.Lookup(pathItem, method))
	if !nodeutil.IsMap(op) {
		return pathItem, nil
	}
	return pathItem, op
}

// newOperation fills the fields both dialects share.
func newOperation(doc, op *yaml.Node, name, method string, cfg Config, declared []Tag) *Operation {
	method = strings.ToLower(method)
	out := &Operation{
		IID:         nodeutil.String(nodeutil.Lookup(op, "x-stoplight"), "id"),
		ID:          stableID(string(cfg.Kind), method, name),
		Kind:        cfg.Kind,
		OperationID: nodeutil.String(op, "operationId"),
		Method:      method,
		Summary:     nodeutil.String(op, "summary"),
		Description: nodeutil.String(op, "description"),
		Tags:        operationTags(op, declared),
		Internal:    nodeutil.Bool(op, "x-internal"),
		Deprecated:  nodeutil.Bool(op, "deprecated"),
		Extensions:  extensions(op),
	}
	if cfg.NameProp == "name" {
		out.Name = name
	} else {
		out.Path = name
	}
	if sec := nodeutil.Lookup(op, "security"); sec != nil {
		out.Security = requirements(sec)
	} else {
		out.Security = requirements(nodeutil.Lookup(doc, "security"))
	}
	return out
}

// serviceInfo fills the fields both dialects read from the info object.
func serviceInfo(doc *yaml.Node) *Service {
	info := nodeutil.Lookup(doc, "info")
	s := &Service{
		Name:           nodeutil.String(info, "title"),
		Version:        scalar(nodeutil.Lookup(info, "version")),
		Summary:        nodeutil.String(info, "summary"),
		Description:    nodeutil.String(info, "description"),
		TermsOfService: nodeutil.String(info, "termsOfService"),
		Tags:           declaredTags(doc),
		Security:       requirements(nodeutil.Lookup(doc, "security")),
		Extensions:     extensions(doc),
	}
	s.ID = stableID("http_service", s.Name)

	if c := nodeutil.Lookup(info, "contact"); nodeutil.IsMap(c) {
		s.Contact = &Contact{
			Name:  nodeutil.String(c, "name"),
			URL:   nodeutil.String(c, "url"),
			Email: nodeutil.String(c, "email"),
		}
	}
	if l := nodeutil.Lookup(info, "license"); nodeutil.IsMap(l) {
		s.License = &License{
			Name: nodeutil.String(l, "name"),
			URL:  nodeutil.String(l, "url"),
		}
	}
	if logo := nodeutil.Lookup(info, "x-logo"); nodeutil.IsMap(logo) && nodeutil.String(logo, "url") != "" {
		s.Logo = &Logo{
			URL:             nodeutil.String(logo, "url"),
			AltText:         nodeutil.String(logo, "altText"),
			Href:            nodeutil.String(logo, "href"),
			BackgroundColor: nodeutil.String(logo, "backgroundColor"),
		}
	}
	return s
}

// declaredTags reads the top-level tags array, skipping duplicates by name.
func declaredTags(doc *yaml.Node) []Tag {
	var tags []Tag
	seen := make(map[string]bool)
	for t := range nodeutil.Items(nodeutil.Lookup(doc, "tags")) {
		name := nodeutil.String(t, "name")
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		tags = append(tags, Tag{Name: name, Description: nodeutil.String(t, "description")})
	}
	return tags
}

// operationTags resolves an operation's tag names against the declared
// tags to pick up descriptions.
func operationTags(op *yaml.Node, declared []Tag) []Tag {
	names := nodeutil.Strings(op, "tags")
	tags := make([]Tag, 0, len(names))
	for _, name := range names {
		tag := Tag{Name: name}
		for _, d := range declared {
			if d.Name == name {
				tag.Description = d.Description
				break
			}
		}
		tags = append(tags, tag)
	}
	return tags
}

func requirements(n *yaml.Node) []Requirement {
	var reqs []Requirement
	for item := range nodeutil.Items(n) {
		req := Requirement{}
		for scheme, scopes := range nodeutil.Pairs(item) {
			list := []string{}
			for s := range nodeutil.Items(scopes) {
				if v, ok := nodeutil.Scalar(s); ok {
					list = append(list, v)
				}
			}
			req[scheme] = list
		}
		reqs = append(reqs, req)
	}
	return reqs
}

// extensions collects the x- members of n other than x-stoplight.
func extensions(n *yaml.Node) map[string]any {
	var ext map[string]any
	for k, v := range nodeutil.Pairs(n) {
		if !strings.HasPrefix(k, "x-") || k == "x-stoplight" {
			continue
		}
		if ext == nil {
			ext = make(map[string]any)
		}
		ext[k] = nodeutil.ToValue(v)
	}
	return ext
}

// parameters reads a parameter list, keyed by name and location so
// operation-level entries can override path-level ones.
func parameters(doc, list *yaml.Node, schemaOf func(*yaml.Node) any) []Parameter {
	var params []Parameter
	for p := range nodeutil.Items(list) {
		p = deref(doc, p)
		name := nodeutil.String(p, "name")
		if name == "" {
			continue
		}
		params = append(params, Parameter{
			Name:        name,
			In:          nodeutil.String(p, "in"),
			Description: nodeutil.String(p, "description"),
			Required:    nodeutil.Bool(p, "required"),
			Deprecated:  nodeutil.Bool(p, "deprecated"),
			Schema:      schemaOf(p),
		})
	}
	return params
}

// mergeParameters overlays op on path, matching by name and location.
func mergeParameters(path, op []Parameter) []Parameter {
	if len(path) == 0 {
		return op
	}
	merged := make([]Parameter, 0, len(path)+len(op))
	for _, p := range path {
		overridden := false
		for _, o := range op {
			if o.Name == p.Name && o.In == p.In {
				overridden = true
				break
			}
		}
		if !overridden {
			merged = append(merged, p)
		}
	}
	return append(merged, op...)
}

func servers(n *yaml.Node) []Server {
	var out []Server
	for s := range nodeutil.Items(n) {
		u := nodeutil.String(s, "url")
		if u == "" {
			continue
		}
		srv := Server{
			URL:         u,
			Name:        nodeutil.String(s, "name"),
			Description: nodeutil.String(s, "description"),
		}
		for name, v := range nodeutil.Pairs(nodeutil.Lookup(s, "variables")) {
			if srv.Variables == nil {
				srv.Variables = make(map[string]ServerVariable)
			}
			srv.Variables[name] = ServerVariable{
				Default:     scalar(nodeutil.Lookup(v, "default")),
				Enum:        nodeutil.Strings(v, "enum"),
				Description: nodeutil.String(v, "description"),
			}
		}
		out = append(out, srv)
	}
	return out
}

func keys(n *yaml.Node) []string {
	var out []string
	for k := range nodeutil.Pairs(n) {
		out = append(out, k)
	}
	return out
}

func scalar(n *yaml.Node) string {
	v, _ := nodeutil.Scalar(n)
	return v
}

// stableID derives a short deterministic identifier from its parts.
func stableID(parts ...string) string {
	h := fnv.New64a()
	for i, p := range parts {
		if i > 0 {
			_, _ = h.Write([]byte{0})
		}
		_, _ = h.Write([]byte(p))
	}
	return strconv.FormatUint(h.Sum64(), 36)
}
