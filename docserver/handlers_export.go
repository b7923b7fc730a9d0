package docserver

import (
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/oasdocs/oasdocs/export"
)

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if s.opts.HideExport {
		http.NotFound(w, r)
		return
	}
	variant, err := export.ParseVariant(chi.URLParam(r, "variant"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	snap := s.current()
	if snap.err != nil {
		s.renderError(w, snap.err)
		return
	}

	f, err := export.Document(snap.original.Raw, snap.bundled.Root, variant)
	if err != nil {
		s.log.Error("export failed", "variant", string(variant), "error", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", f.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": f.Name}))
	w.Header().Set("Content-Length", strconv.Itoa(len(f.Body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(f.Body)
}
