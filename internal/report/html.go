package report

import (
	"bytes"
	"io"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

const pageStyle = `<style>
body { font-family: sans-serif; max-width: 60rem; margin: 2rem auto; color: #222; }
table { border-collapse: collapse; margin: 0.5rem 0; }
th { background-color: #e0e0e0; color: black; }
th, td { border: 1px solid #ccc; padding: 0.25rem 0.6rem; }
img { max-width: 100%; }
.notice { background: #ffcd8e; padding: 0.5rem 1rem; }
</style>
`

const bodyOpen = "<body>\n\n"

// HTML renders Markdown as a complete HTML page. Raw HTML in md is escaped
// and shown as text.
func HTML(title, md string) []byte {
	return Page(title, "", md)
}

// Page is HTML with prelude, trusted markup, placed at the top of the body.
func Page(title, prelude, md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse([]byte(md))
	r := html.NewRenderer(html.RendererOptions{
		Title:          title,
		Flags:          html.CommonFlags | html.CompletePage,
		Head:           []byte(pageStyle),
		RenderNodeHook: escapeRawHTML,
	})
	out := markdown.Render(doc, r)
	if prelude == "" {
		return out
	}
	return bytes.Replace(out, []byte(bodyOpen), []byte(bodyOpen+prelude+"\n"), 1)
}

// escapeRawHTML renders inline and block HTML found in Markdown as text.
func escapeRawHTML(w io.Writer, node ast.Node, entering bool) (ast.WalkStatus, bool) {
	switch n := node.(type) {
	case *ast.HTMLSpan:
		html.EscapeHTML(w, n.Literal)
		return ast.GoToNext, true
	case *ast.HTMLBlock:
		io.WriteString(w, "<p>")
		html.EscapeHTML(w, n.Literal)
		io.WriteString(w, "</p>\n")
		return ast.GoToNext, true
	}
	return ast.GoToNext, false
}
