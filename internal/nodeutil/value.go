package nodeutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"go.yaml.in/yaml/v4"
)

// ToValue converts n into plain Go values: map[string]any, []any and
// decoded scalars. Mapping keys are stringified. Cyclic aliases are cut
// off and rendered as nil.
func ToValue(n *yaml.Node) any {
	return toValue(n, make(map[*yaml.Node]bool))
}

func toValue(n *yaml.Node, visiting map[*yaml.Node]bool) any {
	n = Resolve(n)
	if n == nil {
		return nil
	}
	if visiting[n] {
		return nil
	}
	switch n.Kind {
	case yaml.MappingNode:
		visiting[n] = true
		defer delete(visiting, n)
		m := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			m[n.Content[i].Value] = toValue(n.Content[i+1], visiting)
		}
		return m
	case yaml.SequenceNode:
		visiting[n] = true
		defer delete(visiting, n)
		s := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			s = append(s, toValue(c, visiting))
		}
		return s
	default:
		var v any
		if err := n.Decode(&v); err != nil {
			return n.Value
		}
		return v
	}
}

// MarshalJSON encodes n as JSON, keeping mapping keys in source order.
// A non-empty indent pretty-prints the output.
func MarshalJSON(n *yaml.Node, indent string) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeNodeJSON(&buf, n, make(map[*yaml.Node]bool)); err != nil {
		return nil, err
	}
	if indent == "" {
		return buf.Bytes(), nil
	}
	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", indent); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func writeNodeJSON(buf *bytes.Buffer, n *yaml.Node, visiting map[*yaml.Node]bool) error {
	n = Resolve(n)
	if n == nil {
		buf.WriteString("null")
		return nil
	}
	if visiting[n] {
		return fmt.Errorf("nodeutil: cyclic alias at line %d", n.Line)
	}

	switch n.Kind {
	case yaml.MappingNode:
		visiting[n] = true
		defer delete(visiting, n)

		// Content alternates: key, value, key, value...
		// Later duplicates override earlier ones but keep the first position.
		order := make([]string, 0, len(n.Content)/2)
		values := make(map[string]*yaml.Node, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i].Value
			if _, seen := values[k]; !seen {
				order = append(order, k)
			}
			values[k] = n.Content[i+1]
		}

		buf.WriteByte('{')
		for i, k := range order {
			if i > 0 {
				buf.WriteByte(',')
			}
			keyJSON, err := json.Marshal(k)
			if err != nil {
				return err
			}
			buf.Write(keyJSON)
			buf.WriteByte(':')
			if err := writeNodeJSON(buf, values[k], visiting); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil

	case yaml.SequenceNode:
		visiting[n] = true
		defer delete(visiting, n)

		buf.WriteByte('[')
		for i, c := range n.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeNodeJSON(buf, c, visiting); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil

	default:
		return writeScalarJSON(buf, n)
	}
}

func writeScalarJSON(buf *bytes.Buffer, n *yaml.Node) error {
	var v any
	if err := n.Decode(&v); err != nil {
		v = n.Value
	}
	data, err := json.Marshal(jsonSafe(v))
	if err != nil {
		return err
	}
	buf.Write(data)
	return nil
}

// jsonSafe replaces floats encoding/json rejects with their text form.
func jsonSafe(v any) any {
	if f, ok := v.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
		return fmt.Sprint(f)
	}
	return v
}

// MarshalYAML encodes n as YAML.
func MarshalYAML(n *yaml.Node) ([]byte, error) {
	if n == nil {
		return nil, nil
	}
	data, err := yaml.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("nodeutil: yaml encode: %w", err)
	}
	return data, nil
}
