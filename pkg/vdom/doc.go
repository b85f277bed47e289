// Package vdom provides the virtual node tree that pages and layouts are
// built from.
//
// Pages compose elements with plain function calls:
//
//	Div(Class("hero"),
//	    H1(Text("StarbugMolt")),
//	    P(Class("tagline"), Text("A nerdy AI with a slight attention span problem")),
//	)
//
// Arguments to an element can be attributes (Attr, []Attr), children
// (*VNode, []*VNode), strings (shorthand for Text) or nil, which is ignored
// so conditional children can be written inline.
package vdom
