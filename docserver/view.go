package docserver

import (
	"encoding/json"
	"html/template"
	"net/http"
	"strings"

	"github.com/oasdocs/oasdocs/navtree"
	"github.com/oasdocs/oasdocs/normalizer"
	"github.com/oasdocs/oasdocs/toc"
)

// navItem is a table of contents entry prepared for rendering.
type navItem struct {
	toc.Item
	Href     string
	Active   bool
	Children []navItem
}

type pageData struct {
	Title   string
	Excerpt string
	Layout  Layout
	Compact bool
	Base    string
	Logo    *normalizer.Logo

	Nav        []navItem
	Service    *navtree.ServiceNode
	Node       *navtree.ChildNode
	Schema     string
	ShowExport bool

	Stacked *stackedData
}

type errorData struct {
	Title   string
	Message string
	Detail  string
	Base    string
}

// href joins a slug to the mount path.
func (s *Server) href(slug string) string {
	base := s.opts.mountPath()
	if slug == "" || slug == "/" {
		return base + "/"
	}
	return base + slug
}

func (s *Server) nav(items []toc.Item, active string) []navItem {
	out := make([]navItem, 0, len(items))
	for _, it := range items {
		n := navItem{Item: it}
		if it.Kind == toc.KindLeaf {
			n.Href = s.href(it.Slug)
			n.Active = it.Slug == active
		}
		if len(it.Items) > 0 {
			n.Children = s.nav(it.Items, active)
		}
		out = append(out, n)
	}
	return out
}

// logo prefers the configured image over the document's x-logo.
func (s *Server) logo(svc *navtree.ServiceNode) *normalizer.Logo {
	if s.opts.Logo != "" {
		return &normalizer.Logo{URL: s.opts.Logo, AltText: svc.Name}
	}
	if svc.Data != nil {
		return svc.Data.Logo
	}
	return nil
}

func (s *Server) templateFuncs() template.FuncMap {
	return template.FuncMap{
		"href":     s.href,
		"export":   func(variant string) string { return s.href("/export/" + variant) },
		"markdown": s.md.HTML,
		"excerpt":  s.md.Excerpt,
		"upper":    strings.ToUpper,
		"join":     strings.Join,
		"tagNames": func(tags []normalizer.Tag) []string {
			names := make([]string, 0, len(tags))
			for _, t := range tags {
				names = append(names, t.Name)
			}
			return names
		},
	}
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	var buf strings.Builder
	if err := s.pages.ExecuteTemplate(&buf, name, data); err != nil {
		s.log.Error("template render failed", "template", name, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(buf.String()))
}

func (s *Server) renderError(w http.ResponseWriter, err error) {
	title, status := errorState(err)
	s.render(w, status, "error.html", errorData{
		Title:   title,
		Message: title,
		Detail:  err.Error(),
		Base:    s.href("/"),
	})
}

func prettySchema(schema map[string]any) string {
	if schema == nil {
		return ""
	}
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return ""
	}
	return string(data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, map[string]string{"error": msg})
}
