// Package nodeutil provides order-preserving accessors over yaml.Node trees.
//
// Both YAML and JSON documents are decoded into yaml.Node so that mapping
// keys keep their source order. The helpers here unwrap document and alias
// nodes transparently, so callers can treat any node as its resolved value.
package nodeutil

import (
	"iter"
	"math"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"
)

const (
	tagNull  = "!!null"
	tagBool  = "!!bool"
	tagInt   = "!!int"
	tagFloat = "!!float"
)

// Resolve unwraps document and alias nodes. It returns nil for nil input
// and for an empty document.
func Resolve(n *yaml.Node) *yaml.Node {
	for n != nil {
		switch n.Kind {
		case yaml.DocumentNode:
			if len(n.Content) == 0 {
				return nil
			}
			n = n.Content[0]
		case yaml.AliasNode:
			n = n.Alias
		default:
			return n
		}
	}
	return nil
}

// IsMap reports whether n resolves to a mapping node.
func IsMap(n *yaml.Node) bool {
	n = Resolve(n)
	return n != nil && n.Kind == yaml.MappingNode
}

// IsSeq reports whether n resolves to a sequence node.
func IsSeq(n *yaml.Node) bool {
	n = Resolve(n)
	return n != nil && n.Kind == yaml.SequenceNode
}

// IsNull reports whether n is absent or an explicit null.
func IsNull(n *yaml.Node) bool {
	n = Resolve(n)
	return n == nil || (n.Kind == yaml.ScalarNode && n.ShortTag() == tagNull)
}

// Pairs yields the key/value pairs of a mapping in source order.
// Values are resolved. Non-mapping nodes yield nothing.
func Pairs(n *yaml.Node) iter.Seq2[string, *yaml.Node] {
	return func(yield func(string, *yaml.Node) bool) {
		n = Resolve(n)
		if n == nil || n.Kind != yaml.MappingNode {
			return
		}
		for i := 0; i+1 < len(n.Content); i += 2 {
			if !yield(n.Content[i].Value, Resolve(n.Content[i+1])) {
				return
			}
		}
	}
}

// Items yields the resolved elements of a sequence.
func Items(n *yaml.Node) iter.Seq[*yaml.Node] {
	return func(yield func(*yaml.Node) bool) {
		n = Resolve(n)
		if n == nil || n.Kind != yaml.SequenceNode {
			return
		}
		for _, c := range n.Content {
			if !yield(Resolve(c)) {
				return
			}
		}
	}
}

// Lookup returns the resolved value stored under key, or nil. When a key
// appears more than once the last occurrence wins, matching JSON decoders.
func Lookup(n *yaml.Node, key string) *yaml.Node {
	n = Resolve(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	var found *yaml.Node
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			found = n.Content[i+1]
		}
	}
	return Resolve(found)
}

// Get follows a chain of mapping keys.
func Get(n *yaml.Node, keys ...string) *yaml.Node {
	n = Resolve(n)
	for _, k := range keys {
		if n = Lookup(n, k); n == nil {
			return nil
		}
	}
	return n
}

// At follows decoded JSON Pointer tokens through mappings and sequences.
// Sequence tokens must be decimal indexes.
func At(n *yaml.Node, tokens ...string) *yaml.Node {
	n = Resolve(n)
	for _, tok := range tokens {
		if n == nil {
			return nil
		}
		switch n.Kind {
		case yaml.MappingNode:
			n = Lookup(n, tok)
		case yaml.SequenceNode:
			i, err := strconv.Atoi(tok)
			if err != nil || i < 0 || i >= len(n.Content) || tok != strconv.Itoa(i) {
				return nil
			}
			n = Resolve(n.Content[i])
		default:
			return nil
		}
	}
	return n
}

// Scalar returns the raw scalar text of n. ok is false for non-scalars
// and nulls.
func Scalar(n *yaml.Node) (string, bool) {
	n = Resolve(n)
	if n == nil || n.Kind != yaml.ScalarNode || n.ShortTag() == tagNull {
		return "", false
	}
	return n.Value, true
}

// String returns the value of key when it is a string scalar.
func String(n *yaml.Node, key string) string {
	v := Lookup(n, key)
	if v == nil || v.Kind != yaml.ScalarNode || v.ShortTag() != "!!str" {
		return ""
	}
	return v.Value
}

// Strings returns the string elements of the sequence stored under key.
func Strings(n *yaml.Node, key string) []string {
	var out []string
	for item := range Items(Lookup(n, key)) {
		if s, ok := Scalar(item); ok {
			out = append(out, s)
		}
	}
	return out
}

// Truthy applies JavaScript truthiness to n: absent, null, false, zero,
// NaN and the empty string are falsy; collections are always truthy.
func Truthy(n *yaml.Node) bool {
	n = Resolve(n)
	if n == nil {
		return false
	}
	if n.Kind != yaml.ScalarNode {
		return true
	}
	switch n.ShortTag() {
	case tagNull:
		return false
	case tagBool:
		b, err := strconv.ParseBool(strings.ToLower(n.Value))
		return err != nil || b
	case tagInt, tagFloat:
		var f float64
		if err := n.Decode(&f); err != nil {
			return true
		}
		return !math.IsNaN(f) && f != 0
	default:
		return n.Value != ""
	}
}

// Bool returns the truthiness of the value stored under key.
func Bool(n *yaml.Node, key string) bool {
	return Truthy(Lookup(n, key))
}

// WithField returns a shallow copy of mapping n with key set to a string
// value. Existing occurrences are replaced in place; otherwise the key is
// appended. n itself is never mutated.
func WithField(n *yaml.Node, key, value string) *yaml.Node {
	n = Resolve(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return n
	}
	cp := *n
	cp.Content = make([]*yaml.Node, 0, len(n.Content)+2)
	replaced := false
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Value == key {
			v = StringNode(value)
			replaced = true
		}
		cp.Content = append(cp.Content, k, v)
	}
	if !replaced {
		cp.Content = append(cp.Content, StringNode(key), StringNode(value))
	}
	return &cp
}

// StringNode builds a plain string scalar.
func StringNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}
