// Package server serves the site over HTTP.
//
// Every GET path is resolved against the site's route tree. A request
// carrying the X-Starbug-Fragment: 1 header gets the page subtree as JSON
// for in-page navigation; any other request gets a full document with the
// shell. Demos stream frames over a websocket at /_starbug/demo/{name}.
//
//	s, err := server.New(server.Config{Site: st, Assets: src})
//	if err != nil {
//	    return err
//	}
//	return s.Run(ctx)
package server
