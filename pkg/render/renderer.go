package render

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/starbugmolt/starbug/pkg/vdom"
)

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables indented output. Development only.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces.
	Indent string
}

// Renderer renders VNode trees to HTML. A Renderer holds no per-render
// state and may be shared between goroutines.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// RenderToString renders a VNode tree to an HTML string.
func (r *Renderer) RenderToString(node *vdom.VNode) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams a VNode tree to the given writer.
func (r *Renderer) RenderToWriter(w io.Writer, node *vdom.VNode) error {
	ew := &errWriter{w: w}
	r.renderNode(ew, node, 0)
	return ew.err
}

// errWriter remembers the first write error so the tree walk can stay
// linear.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) WriteString(s string) {
	if e.err != nil {
		return
	}
	_, e.err = io.WriteString(e.w, s)
}

func (r *Renderer) renderNode(w *errWriter, node *vdom.VNode, depth int) {
	if node == nil || w.err != nil {
		return
	}

	switch node.Kind {
	case vdom.KindElement:
		r.renderElement(w, node, depth)
	case vdom.KindText:
		w.WriteString(escapeHTML(node.Text))
	case vdom.KindFragment:
		for _, child := range node.Children {
			r.renderNode(w, child, depth)
		}
	case vdom.KindRaw:
		w.WriteString(node.Text)
	default:
		if w.err == nil {
			w.err = fmt.Errorf("unknown node kind: %d", node.Kind)
		}
	}
}

func (r *Renderer) renderElement(w *errWriter, node *vdom.VNode, depth int) {
	if r.config.Pretty && depth > 0 {
		r.writeIndent(w, depth)
	}

	w.WriteString("<" + node.Tag)
	r.renderAttributes(w, node)
	w.WriteString(">")

	if vdom.IsVoidElement(node.Tag) {
		if r.config.Pretty {
			w.WriteString("\n")
		}
		return
	}

	block := r.config.Pretty && hasElementChildren(node)
	if block {
		w.WriteString("\n")
	}
	for _, child := range node.Children {
		r.renderNode(w, child, depth+1)
	}
	if block {
		r.writeIndent(w, depth)
	}

	w.WriteString("</" + node.Tag + ">")
	if r.config.Pretty {
		w.WriteString("\n")
	}
}

// renderAttributes writes attributes in sorted order for deterministic
// output.
func (r *Renderer) renderAttributes(w *errWriter, node *vdom.VNode) {
	if len(node.Props) == 0 {
		return
	}

	keys := make([]string, 0, len(node.Props))
	for key := range node.Props {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if !validAttrName(key) {
			continue
		}
		switch v := node.Props[key].(type) {
		case nil:
		case bool:
			if v {
				w.WriteString(" " + key)
			}
		default:
			w.WriteString(" " + key + `="` + escapeAttr(attrToString(v)) + `"`)
		}
	}
}

func attrToString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func hasElementChildren(node *vdom.VNode) bool {
	for _, child := range node.Children {
		if child != nil && child.Kind == vdom.KindElement {
			return true
		}
	}
	return false
}

func (r *Renderer) writeIndent(w *errWriter, depth int) {
	for i := 0; i < depth; i++ {
		w.WriteString(r.config.Indent)
	}
}
