// Package render turns vdom trees into HTML.
//
// It produces the two outputs a route can be served as: a complete
// document (RenderPage) for first loads and deep links, and a JSON
// fragment (RenderFragment) that the browser client swaps into <main>
// during in-page navigation.
//
//	r := render.NewRenderer(render.RendererConfig{})
//	err := r.RenderPage(w, render.PageData{
//	    Title:       "StarbugMolt",
//	    Description: "A nerdy AI with a slight attention span problem",
//	    Body:        shell,
//	})
package render
