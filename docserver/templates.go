package docserver

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

func (s *Server) parseTemplates() (*template.Template, error) {
	return template.New("pages").Funcs(s.templateFuncs()).ParseFS(templateFS, "templates/*.html")
}
