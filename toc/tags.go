package toc

import (
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/oasdocs/oasdocs/navtree"
)

// TagGroup is the set of nodes sharing a tag.
type TagGroup struct {
	Title string               `json:"title"`
	Items []*navtree.ChildNode `json:"items"`
}

// ComputeTagGroups groups the children of svc of the given kind by tag.
//
// Tags are compared case-insensitively. A group's title is the casing the
// service declares for the tag when it declares one, otherwise the casing
// first seen on a node. A node joins one group per tag it carries; nodes
// without tags are returned in ungrouped instead, in document order.
// Groups are ordered by the position of their tag in the service's
// declaration; undeclared tags follow in first-seen order.
func ComputeTagGroups(svc *navtree.ServiceNode, kind navtree.NodeType) (groups []TagGroup, ungrouped []*navtree.ChildNode) {
	if svc == nil {
		return nil, nil
	}

	lower := cases.Lower(language.Und)
	declared := make(map[string]int, len(svc.Tags))
	for i, name := range svc.Tags {
		key := lower.String(name)
		if _, ok := declared[key]; !ok {
			declared[key] = i
		}
	}

	index := make(map[string]int)
	var keys []string
	for _, node := range svc.Children {
		if node.Type != kind {
			continue
		}
		if len(node.Tags) == 0 {
			ungrouped = append(ungrouped, node)
			continue
		}
		for _, tag := range node.Tags {
			key := lower.String(tag)
			if i, ok := index[key]; ok {
				groups[i].Items = append(groups[i].Items, node)
				continue
			}
			title := tag
			if i, ok := declared[key]; ok && svc.Tags[i] != "" {
				title = svc.Tags[i]
			}
			index[key] = len(groups)
			keys = append(keys, key)
			groups = append(groups, TagGroup{Title: title, Items: []*navtree.ChildNode{node}})
		}
	}

	rank := func(i int) int {
		if r, ok := declared[keys[i]]; ok {
			return r
		}
		return len(svc.Tags)
	}
	order := make([]int, len(groups))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return rank(order[a]) < rank(order[b]) })

	sorted := make([]TagGroup, len(groups))
	for i, j := range order {
		sorted[i] = groups[j]
	}
	return sorted, ungrouped
}
