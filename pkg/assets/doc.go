// Package assets serves static files from an embedded tree, a directory or
// an S3 bucket, and maps asset names to public URLs.
//
// Every Source sanitizes names with CleanName before touching storage, so
// a request path can never reach outside the configured root or prefix.
//
//	src := assets.NewFSSource(web.Static())
//	mux.Handle("/static/*", http.StripPrefix("/static", assets.Handler(src, assets.HandlerOptions{})))
package assets
