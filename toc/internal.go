package toc

import (
	"math"

	"github.com/oasdocs/oasdocs/navtree"
)

// IsInternal reports whether a child node is flagged internal. Operations
// and webhooks use their normalized internal flag; models use a truthy
// x-internal member of the raw schema. The service node is never internal.
func IsInternal(node *navtree.ChildNode) bool {
	if node == nil {
		return false
	}
	if node.Operation != nil {
		return node.Operation.Internal
	}
	return truthy(node.Schema["x-internal"])
}

// truthy applies JavaScript truthiness to a decoded value.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case int:
		return x != 0
	case int64:
		return x != 0
	case uint64:
		return x != 0
	case float64:
		return x != 0 && !math.IsNaN(x)
	default:
		return true
	}
}
