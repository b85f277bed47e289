package router

import (
	"context"

	"github.com/starbugmolt/starbug/pkg/vdom"
)

// Ctx is the request view handed to pages and layouts.
type Ctx interface {
	// Path is the canonical request path.
	Path() string

	// Asset returns the public URL of a static asset.
	Asset(name string) string

	// Context returns the request context.
	Context() context.Context
}

// Slot is the child content passed to a layout.
type Slot = *vdom.VNode

// PageHandler renders a page.
type PageHandler func(ctx Ctx) *vdom.VNode

// LayoutHandler wraps child content in a layout.
type LayoutHandler func(ctx Ctx, children Slot) *vdom.VNode

// PageMeta contains page metadata emitted in the document head.
type PageMeta struct {
	Title       string
	Description string
}

// Route is one entry of the route table.
type Route struct {
	// Path is the static URL path, e.g. "/demos/pong".
	Path string

	// Name uniquely identifies the route, e.g. "Pong".
	Name string

	// Handler renders the page.
	Handler PageHandler

	// Meta overrides the site metadata for this route.
	Meta PageMeta
}

// MatchResult contains the result of matching a path against the router.
type MatchResult struct {
	// Route is the matched route.
	Route *Route

	// Layouts are the layout handlers in order (root to leaf).
	Layouts []LayoutHandler
}

// Wrap applies the layouts to node, innermost first.
func (m *MatchResult) Wrap(ctx Ctx, node *vdom.VNode) *vdom.VNode {
	return applyLayouts(ctx, m.Layouts, node)
}

func applyLayouts(ctx Ctx, layouts []LayoutHandler, node *vdom.VNode) *vdom.VNode {
	for i := len(layouts) - 1; i >= 0; i-- {
		node = layouts[i](ctx, node)
	}
	return node
}
