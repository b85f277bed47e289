package render

import (
	"encoding/json"
	"io"

	"github.com/starbugmolt/starbug/pkg/vdom"
)

// FragmentContentType is the media type of fragment responses.
const FragmentContentType = "application/json; charset=utf-8"

// Fragment is the payload the browser client swaps into <main> during
// in-page navigation.
type Fragment struct {
	// Path is the canonical path that was resolved.
	Path string `json:"path"`

	// Name is the route name ("" when no route matched).
	Name string `json:"name,omitempty"`

	// Title replaces document.title.
	Title string `json:"title"`

	// HTML is the rendered page subtree, without the shell.
	HTML string `json:"html"`

	// Status mirrors the HTTP status of the response.
	Status int `json:"status"`
}

// RenderFragment renders body and writes the fragment as JSON.
func (r *Renderer) RenderFragment(w io.Writer, frag Fragment, body *vdom.VNode) error {
	html, err := r.RenderToString(body)
	if err != nil {
		return err
	}
	frag.HTML = html
	return json.NewEncoder(w).Encode(frag)
}
