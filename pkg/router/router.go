package router

import (
	"strings"

	"github.com/starbugmolt/starbug/internal/errors"
	"github.com/starbugmolt/starbug/pkg/routepath"
)

// ErrNotFound is returned by Resolve when no route matches. Errors returned
// by Resolve carry the requested path but match ErrNotFound under
// errors.Is.
var ErrNotFound = errors.New("E110")

// Router is the route table. It is read-only once the server starts.
type Router struct {
	root     *routeNode
	routes   []*Route
	byName   map[string]*Route
	notFound PageHandler
}

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{
		root:   newRouteNode(""),
		byName: make(map[string]*Route),
	}
}

// New creates a router populated with routes.
func New(routes ...Route) (*Router, error) {
	r := NewRouter()
	for _, route := range routes {
		if err := r.Add(route); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Add registers a route. Paths and names must be unique.
func (r *Router) Add(route Route) error {
	if err := routepath.ValidateRoutePath(route.Path); err != nil {
		return errors.New("E102").
			WithDetailf("route %q has path %q", route.Name, route.Path).
			WithSuggestion("Use a canonical static path such as /demos/pong").
			Wrap(err)
	}
	if route.Name == "" {
		return errors.New("E102").WithDetailf("route %q has no name", route.Path)
	}
	if route.Handler == nil {
		return errors.New("E103").WithDetailf("route %q (%s)", route.Name, route.Path)
	}

	node := r.root.insert(routepath.Segments(route.Path))
	if node.route != nil {
		return errors.New("E100").
			WithDetailf("path %q is registered by %q and %q", route.Path, node.route.Name, route.Name).
			WithSuggestion("Give every route a distinct path")
	}
	if existing, ok := r.byName[route.Name]; ok {
		return errors.New("E101").
			WithDetailf("name %q is used by %q and %q", route.Name, existing.Path, route.Path)
	}

	stored := route
	node.route = &stored
	r.routes = append(r.routes, &stored)
	r.byName[stored.Name] = &stored
	return nil
}

// Layout attaches a layout to path and everything below it.
func (r *Router) Layout(path string, handler LayoutHandler) error {
	if err := routepath.ValidateRoutePath(path); err != nil {
		return errors.New("E102").WithDetailf("layout path %q", path).Wrap(err)
	}
	r.root.insert(routepath.Segments(path)).layout = handler
	return nil
}

// SetNotFound sets the page rendered when nothing matches.
func (r *Router) SetNotFound(handler PageHandler) {
	r.notFound = handler
}

// NotFound returns the not-found page, or nil if none is set.
func (r *Router) NotFound() PageHandler {
	return r.notFound
}

// Match finds the route for path. A query string is ignored.
func (r *Router) Match(path string) (*MatchResult, bool) {
	path, _ = routepath.SplitPathAndQuery(path)
	if !strings.HasPrefix(path, "/") {
		return nil, false
	}

	node, layouts, ok := r.root.walk(routepath.Segments(path))
	if !ok || node.route == nil {
		return nil, false
	}
	return &MatchResult{Route: node.route, Layouts: layouts}, true
}

// Resolve is Match with an error result. It returns ErrNotFound for paths
// that are not in the table.
func (r *Router) Resolve(path string) (*MatchResult, error) {
	match, ok := r.Match(path)
	if !ok {
		return nil, errors.New("E110").WithDetailf("no route for %q", path)
	}
	return match, nil
}

// LayoutsFor returns the layouts that apply to path, following the tree as
// far as it matches. Used to wrap the not-found page.
func (r *Router) LayoutsFor(path string) []LayoutHandler {
	path, _ = routepath.SplitPathAndQuery(path)
	_, layouts, _ := r.root.walk(routepath.Segments(path))
	return layouts
}

// Lookup finds a route by name.
func (r *Router) Lookup(name string) (*Route, bool) {
	route, ok := r.byName[name]
	return route, ok
}

// Routes returns the routes in registration order.
func (r *Router) Routes() []Route {
	out := make([]Route, len(r.routes))
	for i, route := range r.routes {
		out[i] = *route
	}
	return out
}

// Len returns the number of routes.
func (r *Router) Len() int {
	return len(r.routes)
}
