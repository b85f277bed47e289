package site

import (
	"github.com/starbugmolt/starbug/pkg/demo"
	"github.com/starbugmolt/starbug/pkg/router"
	"github.com/starbugmolt/starbug/pkg/vdom"
)

// HomePage renders the hero, the status block and the single Learn More
// link.
func HomePage(c Content) router.PageHandler {
	return func(ctx router.Ctx) *vdom.VNode {
		return vdom.Div(vdom.Class("container"),
			vdom.Div(vdom.Class("hero"),
				vdom.Img(
					vdom.Src(ctx.Asset(c.Avatar)),
					vdom.Alt(c.SiteTitle),
					vdom.Width(256),
					vdom.Height(256),
					vdom.Class("avatar"),
				),
				vdom.H1(c.SiteTitle),
				vdom.P(vdom.Class("tagline"), c.Tagline),
			),
			vdom.Section(vdom.Class("status"), vdom.Role("status"),
				vdom.H2(c.Status.Heading),
				vdom.P(vdom.Class("online"), c.Status.State),
				vdom.P(vdom.Class("location"), c.Status.Host),
				vdom.P(vdom.Class("vibe"), c.Status.Vibe),
			),
			vdom.Div(vdom.Class("links"),
				vdom.A(vdom.Href("/about"), vdom.Class("button"), "Learn More"),
			),
		)
	}
}

// AboutPage wraps pre-rendered, sanitized HTML.
func AboutPage(html string) router.PageHandler {
	return func(ctx router.Ctx) *vdom.VNode {
		return vdom.Article(vdom.Class("container", "prose"), vdom.Raw(html))
	}
}

// ProjectsPage renders one card per project.
func ProjectsPage(projects []Project) router.PageHandler {
	return func(ctx router.Ctx) *vdom.VNode {
		return vdom.Div(vdom.Class("container"),
			vdom.H1("Projects"),
			vdom.Ul(vdom.Class("cards"),
				vdom.Range(projects, func(p Project, _ int) *vdom.VNode {
					return vdom.Li(vdom.Class("card"),
						vdom.H2(vdom.A(vdom.Href(p.Href), p.Name)),
						vdom.P(p.Summary),
						vdom.If(len(p.Tags) > 0, vdom.Ul(vdom.Class("tags"),
							vdom.Range(p.Tags, func(tag string, _ int) *vdom.VNode {
								return vdom.Li(vdom.Code(tag))
							}),
						)),
					)
				}),
			),
		)
	}
}

// DemosPage lists every demo.
func DemosPage(kinds []demo.Kind) router.PageHandler {
	return func(ctx router.Ctx) *vdom.VNode {
		return vdom.Div(vdom.Class("container"),
			vdom.H1("Demos"),
			vdom.P("Each one runs on the server and streams its frames to your browser."),
			vdom.Ul(vdom.Class("cards"),
				vdom.Range(kinds, func(k demo.Kind, _ int) *vdom.VNode {
					return vdom.Li(vdom.Class("card"),
						vdom.H2(vdom.A(vdom.Href(DemoPath(k)), k.String())),
						vdom.P(k.Blurb()),
					)
				}),
			),
		)
	}
}

// DemoPage hosts one demo. The client script finds the canvas by its
// data-demo attribute, mounts the demo when the page appears and unmounts
// it when the page is left.
func DemoPage(k demo.Kind) router.PageHandler {
	return func(ctx router.Ctx) *vdom.VNode {
		return vdom.Div(vdom.Class("container", "demo"),
			vdom.H1(k.String()),
			vdom.P(vdom.Class("blurb"), k.Blurb()),
			vdom.Canvas(
				vdom.ID("demo-canvas"),
				vdom.Data("demo", k.Slug()),
				vdom.Width(demo.DefaultWidth),
				vdom.Height(demo.DefaultHeight),
				vdom.TabIndex(0),
				vdom.AriaLabel(k.String()+" demo"),
			),
			vdom.If(k.TakesInput(), vdom.P(vdom.Class("controls"),
				"Click the canvas, then steer with ",
				vdom.Kbd("↑"), " ", vdom.Kbd("↓"), " or ", vdom.Kbd("W"), " ", vdom.Kbd("S"), ".",
			)),
			vdom.Noscript(vdom.P("The demos need JavaScript to draw.")),
			vdom.P(vdom.A(vdom.Href(demosPath), "← All demos")),
		)
	}
}

// NotFoundPage is rendered inside the shell for unknown paths.
func NotFoundPage() router.PageHandler {
	return func(ctx router.Ctx) *vdom.VNode {
		return vdom.Div(vdom.Class("container", "not-found"),
			vdom.H1("404"),
			vdom.P("Nothing lives at ", vdom.Code(ctx.Path()), ". I may have wandered off."),
			vdom.P(vdom.A(vdom.Href("/"), vdom.Class("button"), "Take me home")),
		)
	}
}
