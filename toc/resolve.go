package toc

import (
	"net/url"
	"strings"

	"github.com/oasdocs/oasdocs/navtree"
)

// canonicalOrigin is the base every path is resolved against.
var canonicalOrigin = &url.URL{Scheme: "http", Host: "localhost", Path: "/"}

// ResolveRelativePath strips the mount prefix basePath from currentPath.
//
// When outerRouter is false, basePath is empty, or basePath is "/",
// currentPath is returned unchanged. Otherwise both paths are resolved to
// absolute form, ignoring trailing slashes. If either cannot be resolved,
// or they are the same path, the result is "/". If currentPath lies under
// basePath the prefix is removed; any other path is returned in its
// resolved form.
func ResolveRelativePath(currentPath, basePath string, outerRouter bool) string {
	if !outerRouter || basePath == "" || basePath == "/" {
		return currentPath
	}

	base, ok := canonicalPath(basePath)
	if !ok {
		return "/"
	}
	current, ok := canonicalPath(currentPath)
	if !ok || base == current {
		return "/"
	}

	if base == "/" {
		return current
	}
	if rest, found := strings.CutPrefix(current, base); found && strings.HasPrefix(rest, "/") {
		return rest
	}
	return current
}

// canonicalPath resolves p against a fixed origin and drops any trailing
// slash other than the root's.
func canonicalPath(p string) (string, bool) {
	ref, err := url.Parse(p)
	if err != nil {
		return "", false
	}
	resolved := canonicalOrigin.ResolveReference(ref)
	if resolved.Host != canonicalOrigin.Host {
		return "", false
	}
	out := strings.TrimRight(resolved.Path, "/")
	if out == "" {
		out = "/"
	}
	return out, true
}

// ResolutionKind is the decision Locate makes for a path.
type ResolutionKind int

const (
	// ResolutionNone means there is nothing to render or navigate to.
	ResolutionNone ResolutionKind = iota
	// ResolutionService renders the service overview.
	ResolutionService
	// ResolutionChild renders a child node.
	ResolutionChild
	// ResolutionRedirectFirst navigates to the first slug of the tree.
	ResolutionRedirectFirst
	// ResolutionRedirectRoot navigates to the documentation root because
	// the requested node is hidden as internal.
	ResolutionRedirectRoot
)

// String returns a short name for the kind.
func (k ResolutionKind) String() string {
	switch k {
	case ResolutionService:
		return "service"
	case ResolutionChild:
		return "child"
	case ResolutionRedirectFirst:
		return "redirect_first"
	case ResolutionRedirectRoot:
		return "redirect_root"
	default:
		return "none"
	}
}

// Resolution is the active-node decision for one relative path.
type Resolution struct {
	Kind ResolutionKind
	// Path is the relative path that was resolved.
	Path string
	// Node is set for ResolutionChild.
	Node *navtree.ChildNode
	// RedirectTo is the target slug for ResolutionRedirectFirst, or "."
	// for ResolutionRedirectRoot.
	RedirectTo string
}

// Render reports whether the resolution shows a node.
func (r Resolution) Render() bool {
	return r.Kind == ResolutionService || r.Kind == ResolutionChild
}

// IsService reports whether the active node is the service itself.
func (r Resolution) IsService() bool {
	return r.Kind == ResolutionService
}

// Locate selects the active node for relativePath. The root path is the
// service; any other path must equal a child URI exactly. Unknown paths
// redirect to the first slug of tree, and internal nodes redirect to the
// root when hideInternal is set.
func Locate(svc *navtree.ServiceNode, tree []Item, relativePath string, hideInternal bool) Resolution {
	res := Resolution{Path: relativePath}
	if svc == nil {
		return res
	}

	if relativePath == "/" {
		res.Kind = ResolutionService
		return res
	}

	node, ok := svc.Child(relativePath)
	if !ok {
		if slug, ok := FindFirstNodeSlug(tree); ok {
			res.Kind = ResolutionRedirectFirst
			res.RedirectTo = slug
		}
		return res
	}

	if hideInternal && IsInternal(node) {
		res.Kind = ResolutionRedirectRoot
		res.RedirectTo = "."
		return res
	}

	res.Kind = ResolutionChild
	res.Node = node
	return res
}
