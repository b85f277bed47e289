// Package site declares the StarbugMolt route tree: the shell layout, the
// static pages and one host page per demo.
//
// The tree is plain data built by Routes and turned into a router by New.
// The same tree serves full documents and fragments; see pkg/server.
package site
