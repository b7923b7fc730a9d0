package docserver

import (
	"bytes"
	"html/template"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/net/html"
)

// excerptLength is the rune limit of a plain-text excerpt.
const excerptLength = 160

// markdown renders CommonMark descriptions. Raw HTML in the source is
// dropped by the renderer.
type markdown struct {
	md goldmark.Markdown
}

func newMarkdown() *markdown {
	return &markdown{md: goldmark.New(goldmark.WithExtensions(extension.GFM))}
}

// HTML renders src. Rendering errors fall back to escaped text.
func (m *markdown) HTML(src string) template.HTML {
	if strings.TrimSpace(src) == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(src), &buf); err != nil {
		return template.HTML("<p>" + template.HTMLEscapeString(src) + "</p>") //nolint:gosec // escaped above
	}
	return template.HTML(buf.String()) //nolint:gosec // goldmark omits raw HTML by default
}

// Excerpt renders src and returns its visible text, whitespace collapsed
// and cut to excerptLength runes at a word boundary.
func (m *markdown) Excerpt(src string) string {
	rendered := m.HTML(src)
	if rendered == "" {
		return ""
	}
	doc, err := html.Parse(strings.NewReader(string(rendered)))
	if err != nil {
		return ""
	}
	return truncate(strings.Join(strings.Fields(textContent(doc)), " "), excerptLength)
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
		case html.ElementNode:
			switch n.Data {
			case "script", "style":
				return
			case "p", "li", "h1", "h2", "h3", "h4", "h5", "h6", "br", "pre", "td":
				defer b.WriteByte(' ')
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)[:limit]
	cut := string(runes)
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}
