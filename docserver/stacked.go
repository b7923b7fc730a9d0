package docserver

import (
	"net/http"
	"strings"

	"github.com/oasdocs/oasdocs/navtree"
	"github.com/oasdocs/oasdocs/toc"
)

// HashQueryParam carries a location hash to the stacked layout, since
// browsers never send the fragment itself. Both "#Pets" and "Pets" are
// accepted.
const HashQueryParam = "hash"

type stackedData struct {
	// EndpointsHeading is set only when operations and webhooks both
	// have tag groups.
	EndpointsHeading bool
	Operations       []stackedGroup
	Webhooks         []stackedGroup
}

type stackedGroup struct {
	Title    string
	Expanded bool
	Items    []stackedItem
}

type stackedItem struct {
	Node     *navtree.ChildNode
	Anchor   string
	Label    string
	Expanded bool
}

// ItemMatchesHash reports whether a location hash addresses an operation
// or webhook. Operations answer to "#{path}-{method}" and webhooks to
// "#{name}-{method}".
func ItemMatchesHash(hash string, node *navtree.ChildNode) bool {
	if node == nil || node.Operation == nil {
		return false
	}
	return strings.TrimPrefix(hash, "#") == itemAnchor(node)
}

// GroupMatchesHash reports whether a stacked group should render
// expanded: the hash names the group title or one of its items.
func GroupMatchesHash(hash string, group toc.TagGroup) bool {
	if strings.TrimPrefix(hash, "#") == group.Title {
		return true
	}
	for _, item := range group.Items {
		if ItemMatchesHash(hash, item) {
			return true
		}
	}
	return false
}

func itemAnchor(node *navtree.ChildNode) string {
	op := node.Operation
	if node.Type == navtree.NodeTypeOperation {
		return op.Path + "-" + op.Method
	}
	return op.Name + "-" + op.Method
}

func stackedGroups(groups []toc.TagGroup, hash string) []stackedGroup {
	out := make([]stackedGroup, 0, len(groups))
	for _, g := range groups {
		sg := stackedGroup{Title: g.Title, Expanded: GroupMatchesHash(hash, g)}
		for _, node := range g.Items {
			label := node.Name
			if node.Type == navtree.NodeTypeOperation {
				label = node.Operation.Path
			}
			sg.Items = append(sg.Items, stackedItem{
				Node:     node,
				Anchor:   itemAnchor(node),
				Label:    label,
				Expanded: ItemMatchesHash(hash, node),
			})
		}
		out = append(out, sg)
	}
	return out
}

func (s *Server) renderStacked(w http.ResponseWriter, r *http.Request, snap *snapshot) {
	svc := snap.svc
	hash := r.URL.Query().Get(HashQueryParam)

	operations, _ := toc.ComputeTagGroups(svc, navtree.NodeTypeOperation)
	webhooks, _ := toc.ComputeTagGroups(svc, navtree.NodeTypeWebhook)

	data := pageData{
		Title:      svc.Name,
		Layout:     LayoutStacked,
		Base:       s.href("/"),
		Logo:       s.logo(svc),
		Service:    svc,
		ShowExport: !s.opts.HideExport,
		Stacked: &stackedData{
			EndpointsHeading: len(operations) > 0 && len(webhooks) > 0,
			Operations:       stackedGroups(operations, hash),
			Webhooks:         stackedGroups(webhooks, hash),
		},
	}
	if svc.Data != nil {
		data.Excerpt = s.md.Excerpt(svc.Data.Description)
	}
	s.render(w, http.StatusOK, "stacked.html", data)
}
