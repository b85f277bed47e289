package render

import (
	"io"
	"strings"

	"github.com/starbugmolt/starbug/pkg/vdom"
)

// PageData contains all data needed to render a complete HTML page.
type PageData struct {
	// Body is the root VNode placed inside <body>.
	Body *vdom.VNode

	// Title is the page title.
	Title string

	// Description is emitted as <meta name="description">.
	Description string

	// Meta contains extra meta tags.
	Meta []MetaTag

	// StyleSheets contains paths to external stylesheets.
	StyleSheets []string

	// Scripts contains deferred script paths, loaded after the body.
	Scripts []string

	// Lang is the language attribute for the html element.
	// Defaults to "en".
	Lang string
}

// MetaTag represents a meta element in the document head.
type MetaTag struct {
	Name     string
	Property string
	Content  string
}

// RenderPage renders a complete HTML document to the given writer.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	ew := &errWriter{w: w}
	ew.WriteString("<!DOCTYPE html>\n")
	ew.WriteString(`<html lang="` + escapeAttr(lang) + `">` + "\n")
	r.renderHead(ew, page)
	ew.WriteString("<body>\n")
	if ew.err != nil {
		return ew.err
	}

	r.renderNode(ew, page.Body, 0)

	for _, src := range page.Scripts {
		ew.WriteString("\n" + `<script src="` + escapeAttr(src) + `" defer></script>`)
	}
	ew.WriteString("\n</body>\n</html>\n")
	return ew.err
}

func (r *Renderer) renderHead(w *errWriter, page PageData) {
	w.WriteString("<head>\n")
	w.WriteString(`  <meta charset="utf-8">` + "\n")
	w.WriteString(`  <meta name="viewport" content="width=device-width, initial-scale=1">` + "\n")

	if page.Title != "" {
		w.WriteString("  <title>" + escapeHTML(page.Title) + "</title>\n")
	}
	if page.Description != "" {
		w.WriteString(`  <meta name="description" content="` + escapeAttr(page.Description) + `">` + "\n")
	}
	for _, meta := range page.Meta {
		var b strings.Builder
		b.WriteString("  <meta")
		if meta.Name != "" {
			b.WriteString(` name="` + escapeAttr(meta.Name) + `"`)
		}
		if meta.Property != "" {
			b.WriteString(` property="` + escapeAttr(meta.Property) + `"`)
		}
		b.WriteString(` content="` + escapeAttr(meta.Content) + `">` + "\n")
		w.WriteString(b.String())
	}
	for _, href := range page.StyleSheets {
		w.WriteString(`  <link rel="stylesheet" href="` + escapeAttr(href) + `">` + "\n")
	}

	w.WriteString("</head>\n")
}
