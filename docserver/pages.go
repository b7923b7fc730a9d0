package docserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/oasdocs/oasdocs/toc"
)

// relativePath is the node path of a page request.
func (s *Server) relativePath(r *http.Request) string {
	if s.opts.OuterRouter {
		return toc.ResolveRelativePath(r.URL.Path, s.opts.BasePath, true)
	}
	return "/" + chi.URLParam(r, "*")
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	snap := s.current()
	if snap.err != nil {
		s.renderError(w, snap.err)
		return
	}

	if s.opts.Layout == LayoutStacked {
		s.renderStacked(w, r, snap)
		return
	}

	rel := s.relativePath(r)
	res := toc.Locate(snap.svc, snap.tree, rel, s.opts.HideInternal)
	switch res.Kind {
	case toc.ResolutionRedirectFirst:
		http.Redirect(w, r, s.href(res.RedirectTo), http.StatusFound)
		return
	case toc.ResolutionRedirectRoot:
		http.Redirect(w, r, s.href("/"), http.StatusFound)
		return
	case toc.ResolutionNone:
		w.WriteHeader(http.StatusNoContent)
		return
	}

	svc := snap.svc
	data := pageData{
		Title:      svc.Name,
		Layout:     s.opts.Layout,
		Compact:    s.opts.Layout == LayoutResponsive,
		Base:       s.href("/"),
		Logo:       s.logo(svc),
		Nav:        s.nav(snap.tree, rel),
		Service:    svc,
		ShowExport: !s.opts.HideExport && res.IsService(),
	}
	if svc.Data != nil {
		data.Excerpt = s.md.Excerpt(svc.Data.Description)
	}
	if res.Node != nil {
		data.Node = res.Node
		data.Title = res.Node.Name + " - " + svc.Name
		if op := res.Node.Operation; op != nil {
			data.Excerpt = s.md.Excerpt(op.Description)
		} else {
			data.Schema = prettySchema(res.Node.Schema)
			if d, ok := res.Node.Schema["description"].(string); ok {
				data.Excerpt = s.md.Excerpt(d)
			}
		}
	}
	s.render(w, http.StatusOK, "routed.html", data)
}
