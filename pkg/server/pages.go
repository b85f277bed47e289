package server

import (
	"bytes"
	"context"
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/starbugmolt/starbug/internal/errors"
	"github.com/starbugmolt/starbug/pkg/render"
	"github.com/starbugmolt/starbug/pkg/routepath"
	"github.com/starbugmolt/starbug/pkg/router"
	"github.com/starbugmolt/starbug/pkg/site"
	"github.com/starbugmolt/starbug/pkg/vdom"
)

// requestCtx is the router.Ctx of one page request.
type requestCtx struct {
	path   string
	ctx    context.Context
	server *Server
}

func (c *requestCtx) Path() string             { return c.path }
func (c *requestCtx) Asset(name string) string { return c.server.resolver.Asset(name) }
func (c *requestCtx) Context() context.Context { return c.ctx }

// handlePage resolves the request path and renders a document or a
// fragment.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	input := r.URL.EscapedPath()
	if r.URL.RawQuery != "" {
		input += "?" + r.URL.RawQuery
	}
	result, err := routepath.Canonicalize(input)
	if err != nil {
		s.logger.Debug("invalid request path", "path", input, "error", errors.New("E111").Wrap(err))
		http.Error(w, "Invalid path", http.StatusBadRequest)
		return
	}
	if result.Changed {
		target := result.Path
		if result.Query != "" {
			target += "?" + result.Query
		}
		// 308 keeps the method.
		http.Redirect(w, r, target, http.StatusPermanentRedirect)
		return
	}

	fragment := r.Header.Get(FragmentHeader) == "1"
	mode := "document"
	if fragment {
		mode = "fragment"
	}

	ctx, span := s.startSpan(r.Context(), "page "+result.Path,
		attribute.String("starbug.path", result.Path),
		attribute.String("starbug.mode", mode),
	)
	start := time.Now()
	status, name, body, err := s.renderPage(ctx, result.Path, fragment)
	span.SetAttributes(attribute.String("starbug.route", name), attribute.Int("http.status_code", status))
	endSpan(span, err)

	if err != nil {
		s.logger.Error("render failed", "path", result.Path, "mode", mode, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	s.metrics.recordRender(name, mode, time.Since(start).Seconds())
	if status == http.StatusNotFound {
		s.metrics.recordNotFound()
	}

	h := w.Header()
	if fragment {
		h.Set("Content-Type", render.FragmentContentType)
	} else {
		h.Set("Content-Type", "text/html; charset=utf-8")
	}
	h.Set("Vary", FragmentHeader)
	h.Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(status)
	if r.Method != http.MethodHead {
		w.Write(body)
	}
}

// renderPage renders path into a buffer so render errors can still become
// a 500. It returns the status, the route name ("NotFound" for misses) and
// the body.
func (s *Server) renderPage(ctx context.Context, path string, fragment bool) (int, string, []byte, error) {
	rc := &requestCtx{path: path, ctx: ctx, server: s}
	status := http.StatusOK

	st := s.site.Load()
	var route *router.Route
	var page *vdom.VNode
	match, ok := st.Router.Match(path)
	if ok {
		route = match.Route
		page = route.Handler(rc)
	} else {
		status = http.StatusNotFound
		notFound := st.Router.NotFound()
		if notFound == nil {
			notFound = func(router.Ctx) *vdom.VNode { return vdom.P("Not found") }
		}
		page = notFound(rc)
		match = &router.MatchResult{Layouts: st.Router.LayoutsFor(path)}
	}

	name := "NotFound"
	if route != nil {
		name = route.Name
	}
	meta := st.Meta(route)

	var buf bytes.Buffer
	var err error
	if fragment {
		err = s.renderer.RenderFragment(&buf, render.Fragment{
			Path:   path,
			Name:   routeName(route),
			Title:  meta.Title,
			Status: status,
		}, page)
	} else {
		err = s.renderer.RenderPage(&buf, render.PageData{
			Body:        match.Wrap(rc, page),
			Title:       meta.Title,
			Description: meta.Description,
			Meta:        openGraph(meta, st.Content),
			Lang:        st.Content.Lang,
			StyleSheets: []string{s.resolver.Asset("site.css")},
			Scripts:     []string{s.resolver.Asset("starbug.js")},
		})
	}
	return status, name, buf.Bytes(), err
}

// openGraph describes the page for link previews.
func openGraph(meta router.PageMeta, c site.Content) []render.MetaTag {
	return []render.MetaTag{
		{Property: "og:site_name", Content: c.SiteTitle},
		{Property: "og:title", Content: meta.Title},
		{Property: "og:description", Content: meta.Description},
		{Property: "og:type", Content: "website"},
	}
}

func routeName(route *router.Route) string {
	if route == nil {
		return ""
	}
	return route.Name
}
