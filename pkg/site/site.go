package site

import (
	"context"
	"log/slog"

	"github.com/starbugmolt/starbug/internal/errors"
	"github.com/starbugmolt/starbug/pkg/demo"
	"github.com/starbugmolt/starbug/pkg/router"
	"github.com/starbugmolt/starbug/pkg/vdom"
)

const demosPath = "/demos"

// DemoPath returns the route path of a demo, e.g. "/demos/pong".
func DemoPath(k demo.Kind) string {
	return demosPath + "/" + k.Slug()
}

// Routes returns the route tree for c in registration order. Demo routes
// are generated from demo.Kinds.
func Routes(c Content) ([]router.Route, error) {
	about, err := RenderMarkdown(c.About)
	if err != nil {
		return nil, errors.New("E105").WithDetail("about").Wrap(err)
	}

	routes := []router.Route{
		{Path: "/", Name: "Home", Handler: HomePage(c), Meta: router.PageMeta{Title: c.SiteTitle}},
		{Path: "/about", Name: "About", Handler: AboutPage(about), Meta: router.PageMeta{Title: "About · " + c.SiteTitle}},
		{Path: "/projects", Name: "Projects", Handler: ProjectsPage(c.Projects), Meta: router.PageMeta{Title: "Projects · " + c.SiteTitle}},
		{Path: demosPath, Name: "Demos", Handler: DemosPage(demo.Kinds()), Meta: router.PageMeta{Title: "Demos · " + c.SiteTitle}},
	}
	for _, k := range demo.Kinds() {
		routes = append(routes, router.Route{
			Path:    DemoPath(k),
			Name:    k.String(),
			Handler: DemoPage(k),
			Meta: router.PageMeta{
				Title:       k.String() + " · " + c.SiteTitle,
				Description: k.Blurb(),
			},
		})
	}
	return routes, nil
}

// Options configures New.
type Options struct {
	Logger *slog.Logger
}

// Site is a built route tree together with the content it renders.
type Site struct {
	Router  *router.Router
	Content Content
}

// New builds the router for c, installs the shell and the not-found page,
// and checks that every link the site renders points at a route.
func New(c Content, opts Options) (*Site, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	routes, err := Routes(c)
	if err != nil {
		return nil, err
	}
	r, err := router.New(routes...)
	if err != nil {
		return nil, err
	}
	if err := r.Layout("/", Shell(c)); err != nil {
		return nil, err
	}
	r.SetNotFound(NotFoundPage())

	s := &Site{Router: r, Content: c}
	if err := r.CheckLinks(s.Links()); err != nil {
		return nil, err
	}
	logger.Debug("site built", "routes", r.Len())
	return s, nil
}

// Meta returns the metadata for route with site-wide defaults filled in.
// A nil route gives the not-found metadata.
func (s *Site) Meta(route *router.Route) router.PageMeta {
	meta := router.PageMeta{Title: "Not found · " + s.Content.SiteTitle}
	if route != nil {
		meta = route.Meta
	}
	if meta.Title == "" {
		meta.Title = s.Content.SiteTitle
	}
	if meta.Description == "" {
		meta.Description = s.Content.Tagline
	}
	return meta
}

// Links returns every link the site renders: the nav bar plus the links
// in each page, rendered with a placeholder context.
func (s *Site) Links() []router.Link {
	links := append([]router.Link(nil), s.Content.Nav...)
	collect := func(label string, page router.PageHandler, path string) {
		for _, href := range vdom.Links(page(probeCtx{path: path})) {
			links = append(links, router.Link{Label: label, Href: href})
		}
	}
	for _, route := range s.Router.Routes() {
		collect(route.Name, route.Handler, route.Path)
	}
	if nf := s.Router.NotFound(); nf != nil {
		collect("NotFound", nf, "/404")
	}
	return links
}

// probeCtx renders pages outside a request.
type probeCtx struct{ path string }

func (c probeCtx) Path() string             { return c.path }
func (c probeCtx) Asset(name string) string { return "/static/" + name }
func (c probeCtx) Context() context.Context { return context.Background() }
