package navtree

import (
	"regexp"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/oasdocs/oasdocs/internal/nodeutil"
	"github.com/oasdocs/oasdocs/internal/pathutil"
	"github.com/oasdocs/oasdocs/normalizer"
)

// modelPrefix matches the container part of a schema pointer.
var modelPrefix = regexp.MustCompile(`((definitions|components)/?(schemas)?)/`)

// ComputeServiceNode walks doc against rules and builds the tree. Members
// whose value is not a mapping contribute nothing. Rules with invalid
// patterns are ignored rather than reported.
func ComputeServiceNode(doc *yaml.Node, rules []Rule, n normalizer.Normalizer) *ServiceNode {
	root := nodeutil.Resolve(doc)

	if !allCompiled(rules) {
		compiled, err := CompileRules(rules)
		if err != nil {
			compiled = nil
		}
		rules = compiled
	}

	svc := n.Service(root)
	if svc == nil {
		svc = &normalizer.Service{}
	}

	w := &walker{doc: root, norm: n, ptr: pathutil.Get()}
	defer pathutil.Put(w.ptr)

	children := w.walk(root, rules, "")
	if children == nil {
		children = []*ChildNode{}
	}

	return &ServiceNode{
		Type:     NodeTypeService,
		URI:      "/",
		Name:     svc.Name,
		Data:     svc,
		Tags:     svc.TagNames(),
		Children: children,
		Document: root,
	}
}

type walker struct {
	doc  *yaml.Node
	norm normalizer.Normalizer
	ptr  *pathutil.PointerBuilder
}

func (w *walker) walk(data *yaml.Node, rules []Rule, parentURI string) []*ChildNode {
	if !nodeutil.IsMap(data) || len(rules) == 0 {
		return nil
	}

	var nodes []*ChildNode
	seen := make(map[string]bool)
	for key := range nodeutil.Pairs(data) {
		// A repeated key keeps its first position and its last value.
		if seen[key] {
			continue
		}
		seen[key] = true

		encoded := pathutil.EncodeFragment(key)
		rule := findRule(encoded, rules)
		if rule == nil {
			continue
		}

		uri := parentURI + "/" + encoded
		value := nodeutil.Lookup(data, key)
		w.ptr.Push(key)

		switch {
		case rule.Type == RuleOperation && w.ptr.Len() == 3:
			if node := w.operationNode(uri, normalizer.OperationConfig); node != nil {
				nodes = append(nodes, node)
			}
		case rule.Type == RuleWebhook && w.ptr.Len() == 3:
			if node := w.operationNode(uri, normalizer.WebhookConfig); node != nil {
				nodes = append(nodes, node)
			}
		case rule.Type == RuleModel:
			if node := modelNode(uri, value); node != nil {
				nodes = append(nodes, node)
			}
		}

		if len(rule.Children) > 0 {
			nodes = append(nodes, w.walk(value, rule.Children, uri)...)
		}
		w.ptr.Pop()
	}
	return nodes
}

func (w *walker) operationNode(uri string, cfg normalizer.Config) *ChildNode {
	name, method := w.ptr.Segment(1), w.ptr.Segment(2)
	op := w.norm.Operation(w.doc, name, method, cfg)
	if op == nil {
		return nil
	}

	nodeType, prefix := NodeTypeOperation, "/operations/"
	if cfg.Kind == normalizer.KindWebhook {
		nodeType, prefix = NodeTypeWebhook, "/webhooks/"
	}

	if op.IID != "" {
		uri = prefix + op.IID
	} else {
		uri = strings.Replace(uri, pathutil.EncodeFragment(name), pathutil.Slugify(name), 1)
	}

	title := op.Summary
	if title == "" {
		title = op.IID
	}
	if title == "" {
		title = name
	}

	return &ChildNode{
		Type:      nodeType,
		URI:       uri,
		Name:      title,
		Tags:      op.TagNames(),
		Operation: op,
	}
}

func modelNode(uri string, value *yaml.Node) *ChildNode {
	if nodeutil.IsNull(value) {
		return nil
	}
	schema, ok := nodeutil.ToValue(value).(map[string]any)
	if !ok {
		schema = map[string]any{}
	}

	name := nodeutil.String(value, "title")
	if name == "" {
		name = uri[strings.LastIndexByte(uri, '/')+1:]
	}

	tags := nodeutil.Strings(value, "x-tags")
	if tags == nil {
		tags = []string{}
	}

	return &ChildNode{
		Type:   NodeTypeModel,
		URI:    replaceFirst(modelPrefix, uri, "schemas/"),
		Name:   name,
		Tags:   tags,
		Schema: schema,
	}
}

func replaceFirst(re *regexp.Regexp, s, repl string) string {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + repl + s[loc[1]:]
}
