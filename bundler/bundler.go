package bundler

import (
	"fmt"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/oasdocs/oasdocs/internal/nodeutil"
	"github.com/oasdocs/oasdocs/internal/pathutil"
	"github.com/oasdocs/oasdocs/oaserrors"
	"github.com/oasdocs/oasdocs/parser"
)

const (
	// DefaultMaxRefDepth is how many nested reference expansions are
	// inlined before the remaining references are left in place.
	DefaultMaxRefDepth = 32

	// maxNestingDepth bounds the structural depth of the copied tree.
	maxNestingDepth = 1000

	refKey = "$ref"
)

// Bundler inlines local references.
type Bundler struct {
	// MaxRefDepth limits nested reference expansion. Zero or negative
	// values use DefaultMaxRefDepth.
	MaxRefDepth int
	// Strict turns circular and unresolved references into errors.
	Strict bool
	// Logger receives a debug line per left-in-place reference.
	Logger parser.Logger
}

// New creates a Bundler with default settings.
func New() *Bundler {
	return &Bundler{MaxRefDepth: DefaultMaxRefDepth, Logger: parser.NopLogger{}}
}

// Result is the outcome of a bundle.
type Result struct {
	// Root is the bundled document root.
	Root *yaml.Node
	// Document is the bundled document when the input was a
	// *parser.Document. Raw holds the bundled bytes in the source format.
	Document *parser.Document
	// Inlined counts replaced references.
	Inlined int
	// Circular lists circular references left in place, in first-seen order.
	Circular []string
	// Unresolved lists references whose target could not be found, or that
	// point outside the document.
	Unresolved []string
	// Truncated lists references left in place because MaxRefDepth was
	// reached.
	Truncated []string
}

// HasCircularRefs reports whether any circular reference was found.
func (r *Result) HasCircularRefs() bool {
	return len(r.Circular) > 0
}

// Bundle inlines the local references reachable from root.
func (b *Bundler) Bundle(root *yaml.Node) (*Result, error) {
	root = nodeutil.Resolve(root)
	if root == nil {
		return &Result{}, nil
	}

	s := &state{
		b:         b,
		root:      root,
		maxDepth:  b.MaxRefDepth,
		logger:    b.Logger,
		resolving: make(map[string]bool),
		aliases:   make(map[*yaml.Node]bool),
		seen:      make(map[string]bool),
		res:       &Result{},
	}
	if s.maxDepth <= 0 {
		s.maxDepth = DefaultMaxRefDepth
	}
	if s.logger == nil {
		s.logger = parser.NopLogger{}
	}

	out, err := s.copy(root, 0, 0)
	if err != nil {
		return nil, err
	}
	s.res.Root = out
	return s.res, nil
}

// BundleDocument bundles doc and returns a new document holding the
// result. The bundled Raw bytes use the same format as doc.
func (b *Bundler) BundleDocument(doc *parser.Document) (*Result, error) {
	if doc == nil {
		return nil, fmt.Errorf("bundler: no document")
	}
	res, err := b.Bundle(doc.Content())
	if err != nil {
		return nil, fmt.Errorf("bundler: %w", err)
	}

	raw, err := encode(res.Root, doc.Format)
	if err != nil {
		return nil, fmt.Errorf("bundler: %w", err)
	}

	bundled := *doc
	bundled.Root = res.Root
	bundled.Raw = raw
	res.Document = &bundled
	return res, nil
}

func encode(n *yaml.Node, format parser.SourceFormat) ([]byte, error) {
	if n == nil {
		return nil, nil
	}
	if format == parser.SourceFormatJSON {
		return nodeutil.MarshalJSON(n, "  ")
	}
	return nodeutil.MarshalYAML(n)
}

type state struct {
	b        *Bundler
	root     *yaml.Node
	maxDepth int
	logger   parser.Logger

	// resolving holds the references currently being expanded.
	resolving map[string]bool
	// aliases holds the alias nodes currently being expanded.
	aliases map[*yaml.Node]bool
	// seen dedupes entries of the result lists.
	seen map[string]bool
	res  *Result
}

// copy returns a deep copy of n with local references inlined. nesting is
// the structural depth; refDepth counts the reference expansions above n.
func (s *state) copy(n *yaml.Node, nesting, refDepth int) (*yaml.Node, error) {
	if nesting > maxNestingDepth {
		return nil, &oaserrors.ReferenceError{Message: fmt.Sprintf("document nested deeper than %d levels", maxNestingDepth)}
	}

	if n.Kind == yaml.AliasNode {
		if n.Alias == nil {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
		}
		if s.aliases[n] {
			return nil, &oaserrors.ReferenceError{Ref: "*" + n.Value, IsCircular: true, Message: "recursive YAML alias"}
		}
		s.aliases[n] = true
		out, err := s.copy(n.Alias, nesting+1, refDepth)
		delete(s.aliases, n)
		return out, err
	}

	switch n.Kind {
	case yaml.MappingNode:
		if ref, ok := refOf(n); ok {
			return s.inline(n, ref, nesting, refDepth)
		}
		return s.copyChildren(n, nesting, refDepth)
	case yaml.SequenceNode, yaml.DocumentNode:
		return s.copyChildren(n, nesting, refDepth)
	default:
		cp := *n
		cp.Anchor = ""
		return &cp, nil
	}
}

func (s *state) copyChildren(n *yaml.Node, nesting, refDepth int) (*yaml.Node, error) {
	cp := *n
	cp.Anchor = ""
	cp.Content = make([]*yaml.Node, len(n.Content))
	for i, child := range n.Content {
		c, err := s.copy(child, nesting+1, refDepth)
		if err != nil {
			return nil, err
		}
		cp.Content[i] = c
	}
	return &cp, nil
}

// inline replaces the reference object n with its target. Sibling keys of
// "$ref" are kept and override the target's members of the same name.
func (s *state) inline(n *yaml.Node, ref string, nesting, refDepth int) (*yaml.Node, error) {
	if !strings.HasPrefix(ref, "#") {
		return s.keep(n, ref, &s.res.Unresolved, "external reference", nesting, refDepth)
	}
	if s.resolving[ref] || ref == "#" || ref == "#/" {
		if s.b.Strict {
			return nil, &oaserrors.ReferenceError{Ref: ref, IsCircular: true}
		}
		return s.keep(n, ref, &s.res.Circular, "circular reference", nesting, refDepth)
	}
	if refDepth >= s.maxDepth {
		return s.keep(n, ref, &s.res.Truncated, "maximum reference depth reached", nesting, refDepth)
	}

	target := nodeutil.At(s.root, pathutil.Split(ref)...)
	if target == nil {
		if s.b.Strict {
			return nil, &oaserrors.ReferenceError{Ref: ref, Message: "target not found"}
		}
		return s.keep(n, ref, &s.res.Unresolved, "target not found", nesting, refDepth)
	}

	s.resolving[ref] = true
	out, err := s.copy(target, nesting+1, refDepth+1)
	delete(s.resolving, ref)
	if err != nil {
		return nil, err
	}
	s.res.Inlined++

	if len(n.Content) > 2 && out.Kind == yaml.MappingNode {
		return s.overlay(out, n, nesting, refDepth)
	}
	return out, nil
}

// overlay merges the sibling keys of the reference object ref into the
// inlined mapping target.
func (s *state) overlay(target, ref *yaml.Node, nesting, refDepth int) (*yaml.Node, error) {
	siblings := make(map[string]*yaml.Node)
	var order []string
	for i := 0; i+1 < len(ref.Content); i += 2 {
		key := ref.Content[i].Value
		if key == refKey {
			continue
		}
		v, err := s.copy(ref.Content[i+1], nesting+1, refDepth)
		if err != nil {
			return nil, err
		}
		if _, ok := siblings[key]; !ok {
			order = append(order, key)
		}
		siblings[key] = v
	}

	out := *target
	out.Content = make([]*yaml.Node, 0, len(target.Content)+2*len(order))
	for i := 0; i+1 < len(target.Content); i += 2 {
		k, v := target.Content[i], target.Content[i+1]
		if sib, ok := siblings[k.Value]; ok {
			v = sib
			delete(siblings, k.Value)
		}
		out.Content = append(out.Content, k, v)
	}
	for _, key := range order {
		if v, ok := siblings[key]; ok {
			out.Content = append(out.Content, nodeutil.StringNode(key), v)
		}
	}
	return &out, nil
}

// keep copies a reference object unchanged and records ref in list.
func (s *state) keep(n *yaml.Node, ref string, list *[]string, reason string, nesting, refDepth int) (*yaml.Node, error) {
	key := reason + "\x00" + ref
	if !s.seen[key] {
		s.seen[key] = true
		*list = append(*list, ref)
		s.logger.Debug("reference left in place", "ref", ref, "reason", reason)
	}
	return s.copyChildren(n, nesting, refDepth)
}

// refOf returns the "$ref" string of a reference object.
func refOf(n *yaml.Node) (string, bool) {
	v := nodeutil.Lookup(n, refKey)
	if v == nil || v.Kind != yaml.ScalarNode || v.ShortTag() != "!!str" {
		return "", false
	}
	return v.Value, true
}
