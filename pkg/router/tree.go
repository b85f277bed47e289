package router

// routeNode is a node in the segment tree.
type routeNode struct {
	// segment is the path segment this node matches
	segment string

	route  *Route
	layout LayoutHandler

	children []*routeNode
}

func newRouteNode(segment string) *routeNode {
	return &routeNode{segment: segment}
}

// findChild finds a child node with an exact segment match.
func (n *routeNode) findChild(segment string) *routeNode {
	for _, child := range n.children {
		if child.segment == segment {
			return child
		}
	}
	return nil
}

// addChild adds or retrieves a child node for the given segment.
func (n *routeNode) addChild(segment string) *routeNode {
	if child := n.findChild(segment); child != nil {
		return child
	}
	child := newRouteNode(segment)
	n.children = append(n.children, child)
	return child
}

// insert walks to the node for segments, creating nodes as needed.
func (n *routeNode) insert(segments []string) *routeNode {
	current := n
	for _, seg := range segments {
		current = current.addChild(seg)
	}
	return current
}

// walk follows segments as far as the tree allows. It returns the deepest
// node reached, the layouts collected on the way and whether every segment
// was consumed.
func (n *routeNode) walk(segments []string) (*routeNode, []LayoutHandler, bool) {
	var layouts []LayoutHandler
	current := n
	if current.layout != nil {
		layouts = append(layouts, current.layout)
	}
	for _, seg := range segments {
		child := current.findChild(seg)
		if child == nil {
			return current, layouts, false
		}
		current = child
		if current.layout != nil {
			layouts = append(layouts, current.layout)
		}
	}
	return current, layouts, true
}
