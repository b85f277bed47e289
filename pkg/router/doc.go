// Package router implements the route tree shared by full-page rendering
// and in-page navigation.
//
// Routes are static paths registered once at startup:
//
//	r, err := router.New(
//	    router.Route{Path: "/", Name: "Home", Handler: site.HomePage},
//	    router.Route{Path: "/demos/pong", Name: "Pong", Handler: pong},
//	)
//	r.Layout("/", site.Shell)
//
// Paths and names must be unique; New reports the first violation as a
// structured error. Matching is exact and segment-wise, so registration
// order never changes the result. Layouts attached to a node apply to every
// route below it and are returned root to leaf.
package router
