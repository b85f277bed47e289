package site

import (
	"slices"

	"github.com/starbugmolt/starbug/pkg/router"
	"github.com/starbugmolt/starbug/pkg/vdom"
)

// Shell returns the root layout: the nav bar, a <main> slot holding the
// page and the footer. The chrome depends only on c, never on the child.
func Shell(c Content) router.LayoutHandler {
	nav := slices.Clone(c.Nav)
	footer := c.Footer
	return func(ctx router.Ctx, children router.Slot) *vdom.VNode {
		return vdom.Fragment(
			vdom.Nav(
				vdom.Class("nav"),
				vdom.AriaLabel("Main"),
				vdom.Range(nav, func(l router.Link, _ int) *vdom.VNode {
					return vdom.A(vdom.Href(l.Href), l.Label)
				}),
			),
			vdom.Main(vdom.Class("main"), vdom.ID("main"), children),
			vdom.Footer(vdom.Class("footer"), vdom.P(footer)),
		)
	}
}
