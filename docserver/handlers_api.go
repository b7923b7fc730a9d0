package docserver

import (
	"net/http"

	"github.com/oasdocs/oasdocs/navtree"
	"github.com/oasdocs/oasdocs/toc"
)

// loaded returns the current snapshot, or writes the load error and
// returns nil.
func (s *Server) loaded(w http.ResponseWriter) *snapshot {
	snap := s.current()
	if snap.err != nil {
		title, status := errorState(snap.err)
		writeJSON(w, status, map[string]string{"error": title, "detail": snap.err.Error()})
		return nil
	}
	return snap
}

func (s *Server) handleAPIService(w http.ResponseWriter, r *http.Request) {
	snap := s.loaded(w)
	if snap == nil {
		return
	}
	writeJSON(w, http.StatusOK, snap.svc)
}

func (s *Server) handleAPIToC(w http.ResponseWriter, r *http.Request) {
	snap := s.loaded(w)
	if snap == nil {
		return
	}
	writeJSON(w, http.StatusOK, snap.tree)
}

type resolveResponse struct {
	RelativePath string             `json:"relativePath"`
	Kind         string             `json:"kind"`
	RedirectTo   string             `json:"redirectTo,omitempty"`
	Node         *navtree.ChildNode `json:"node,omitempty"`
	HideExport   bool               `json:"hideExport"`
}

// handleAPIResolve answers which node a browser path shows. The path
// query parameter is the full path, including the base path.
func (s *Server) handleAPIResolve(w http.ResponseWriter, r *http.Request) {
	snap := s.loaded(w)
	if snap == nil {
		return
	}
	path := r.URL.Query().Get("path")
	if path == "" {
		jsonError(w, "missing path parameter", http.StatusBadRequest)
		return
	}

	rel := toc.ResolveRelativePath(path, s.opts.BasePath, true)
	res := toc.Locate(snap.svc, snap.tree, rel, s.opts.HideInternal)
	writeJSON(w, http.StatusOK, resolveResponse{
		RelativePath: rel,
		Kind:         res.Kind.String(),
		RedirectTo:   res.RedirectTo,
		Node:         res.Node,
		HideExport:   s.opts.HideExport || !res.IsService(),
	})
}

type tagGroupsResponse struct {
	Groups    []toc.TagGroup       `json:"groups"`
	Ungrouped []*navtree.ChildNode `json:"ungrouped"`
}

func (s *Server) handleAPITagGroups(w http.ResponseWriter, r *http.Request) {
	snap := s.loaded(w)
	if snap == nil {
		return
	}
	kind := navtree.NodeType(r.URL.Query().Get("type"))
	switch kind {
	case "":
		kind = navtree.NodeTypeOperation
	case navtree.NodeTypeOperation, navtree.NodeTypeWebhook, navtree.NodeTypeModel:
	default:
		jsonError(w, "type must be http_operation, http_webhook or model", http.StatusBadRequest)
		return
	}

	groups, ungrouped := toc.ComputeTagGroups(snap.svc, kind)
	if groups == nil {
		groups = []toc.TagGroup{}
	}
	if ungrouped == nil {
		ungrouped = []*navtree.ChildNode{}
	}
	writeJSON(w, http.StatusOK, tagGroupsResponse{Groups: groups, Ungrouped: ungrouped})
}
