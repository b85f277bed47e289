// Package dev supports `starbug serve --dev`.
//
// A Watcher follows the content directory with fsnotify and calls a
// reload function once a burst of edits has settled. The serve command
// uses it to rebuild the site from about.md and swap it into the running
// server, so editing content needs no restart.
//
//	w, err := dev.NewWatcher(dev.WatcherConfig{
//	    Dir:    "content",
//	    Reload: rebuild,
//	})
//	if err != nil {
//	    return err
//	}
//	go w.Run(ctx)
//
// A reload that fails is logged and the previous site stays live.
package dev
