package toc

import (
	"encoding/json"

	"github.com/oasdocs/oasdocs/navtree"
)

// ItemKind distinguishes the three shapes of a table of contents entry.
type ItemKind string

const (
	// KindLeaf links to a single node.
	KindLeaf ItemKind = "leaf"
	// KindGroup is a tag group header with nested leaves.
	KindGroup ItemKind = "group"
	// KindDivider is a bare section label.
	KindDivider ItemKind = "divider"
)

// OverviewType is the leaf type of the leading Overview entry.
const OverviewType = "overview"

// Item is one entry of a table of contents. Which fields are meaningful
// depends on Kind: leaves use ID, Slug, Title, Type and Meta; groups use
// Title, Items and ItemsType; dividers use Title only.
type Item struct {
	Kind ItemKind

	ID    string
	Slug  string
	Title string
	Type  string
	// Meta is the HTTP method of an operation or webhook leaf, else "".
	Meta string

	Items     []Item
	ItemsType navtree.NodeType
}

// MarshalJSON encodes only the fields of the item's kind.
func (it Item) MarshalJSON() ([]byte, error) {
	switch it.Kind {
	case KindLeaf:
		return json.Marshal(struct {
			ID    string `json:"id"`
			Slug  string `json:"slug"`
			Title string `json:"title"`
			Type  string `json:"type"`
			Meta  string `json:"meta"`
		}{it.ID, it.Slug, it.Title, it.Type, it.Meta})
	case KindGroup:
		items := it.Items
		if items == nil {
			items = []Item{}
		}
		return json.Marshal(struct {
			Title     string           `json:"title"`
			Items     []Item           `json:"items"`
			ItemsType navtree.NodeType `json:"itemsType"`
		}{it.Title, items, it.ItemsType})
	default:
		return json.Marshal(struct {
			Title string `json:"title"`
		}{it.Title})
	}
}

// Config controls ComputeAPITree.
type Config struct {
	// HideSchemas drops the Schemas section.
	HideSchemas bool
	// HideInternal drops internal nodes, and groups left empty by that.
	HideInternal bool
}

// ComputeAPITree builds the ordered table of contents for svc: the
// Overview leaf, then Endpoints, Webhooks and Schemas sections.
//
// The Endpoints and Webhooks labels appear whenever the tree has a node of
// that kind, even if every such node is hidden as internal. The Schemas
// label appears only when at least one visible model remains.
func ComputeAPITree(svc *navtree.ServiceNode, cfg Config) []Item {
	tree := []Item{{
		Kind:  KindLeaf,
		ID:    "/",
		Slug:  "/",
		Title: "Overview",
		Type:  OverviewType,
	}}
	if svc == nil {
		return tree
	}

	if hasKind(svc, navtree.NodeTypeOperation) {
		tree = append(tree, Item{Kind: KindDivider, Title: "Endpoints"})
		groups, ungrouped := ComputeTagGroups(svc, navtree.NodeTypeOperation)
		tree = appendTagGroups(tree, groups, ungrouped, navtree.NodeTypeOperation, cfg.HideInternal)
	}

	if hasKind(svc, navtree.NodeTypeWebhook) {
		tree = append(tree, Item{Kind: KindDivider, Title: "Webhooks"})
		groups, ungrouped := ComputeTagGroups(svc, navtree.NodeTypeWebhook)
		tree = appendTagGroups(tree, groups, ungrouped, navtree.NodeTypeWebhook, cfg.HideInternal)
	}

	schemas := 0
	for _, c := range svc.Children {
		if c.Type == navtree.NodeTypeModel && !(cfg.HideInternal && IsInternal(c)) {
			schemas++
		}
	}
	if !cfg.HideSchemas && schemas > 0 {
		tree = append(tree, Item{Kind: KindDivider, Title: "Schemas"})
		groups, ungrouped := ComputeTagGroups(svc, navtree.NodeTypeModel)
		tree = appendTagGroups(tree, groups, ungrouped, navtree.NodeTypeModel, cfg.HideInternal)
	}

	return tree
}

func hasKind(svc *navtree.ServiceNode, kind navtree.NodeType) bool {
	for _, c := range svc.Children {
		if c.Type == kind {
			return true
		}
	}
	return false
}

// appendTagGroups emits ungrouped leaves first, then one group item per
// tag group that still has visible leaves.
func appendTagGroups(tree []Item, groups []TagGroup, ungrouped []*navtree.ChildNode, itemsType navtree.NodeType, hideInternal bool) []Item {
	for _, node := range ungrouped {
		if hideInternal && IsInternal(node) {
			continue
		}
		tree = append(tree, leaf(node))
	}

	for _, g := range groups {
		var items []Item
		for _, node := range g.Items {
			if hideInternal && IsInternal(node) {
				continue
			}
			items = append(items, leaf(node))
		}
		if len(items) == 0 {
			continue
		}
		tree = append(tree, Item{
			Kind:      KindGroup,
			Title:     g.Title,
			Items:     items,
			ItemsType: itemsType,
		})
	}
	return tree
}

func leaf(node *navtree.ChildNode) Item {
	return Item{
		Kind:  KindLeaf,
		ID:    node.URI,
		Slug:  node.URI,
		Title: node.Name,
		Type:  string(node.Type),
		Meta:  node.Method(),
	}
}

// FindFirstNodeSlug returns the slug of the first leaf in depth-first
// order.
func FindFirstNodeSlug(items []Item) (string, bool) {
	for _, it := range items {
		switch it.Kind {
		case KindLeaf:
			return it.Slug, true
		case KindGroup:
			if slug, ok := FindFirstNodeSlug(it.Items); ok && slug != "" {
				return slug, true
			}
		}
	}
	return "", false
}
