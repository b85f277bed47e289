package vdom

// Walk visits node and its descendants depth-first. Returning false from fn
// skips the node's children.
func Walk(node *VNode, fn func(*VNode) bool) {
	if node == nil {
		return
	}
	if !fn(node) {
		return
	}
	for _, child := range node.Children {
		Walk(child, fn)
	}
}

// FindAll returns every element with the given tag.
func FindAll(node *VNode, tag string) []*VNode {
	var out []*VNode
	Walk(node, func(n *VNode) bool {
		if n.Kind == KindElement && n.Tag == tag {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Links returns the href of every <a> element under node, in document order.
func Links(node *VNode) []string {
	var hrefs []string
	for _, a := range FindAll(node, "a") {
		if href := a.Prop("href"); href != "" {
			hrefs = append(hrefs, href)
		}
	}
	return hrefs
}

// TextContent concatenates every text node under node.
func TextContent(node *VNode) string {
	var buf []byte
	Walk(node, func(n *VNode) bool {
		if n.Kind == KindText {
			buf = append(buf, n.Text...)
		}
		return true
	})
	return string(buf)
}
