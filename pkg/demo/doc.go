// Package demo implements the interactive demos served under /demos.
//
// Every demo is one variant of a closed set (Kind) and is built from a
// Scene: a small simulation that advances with Step and records draw
// operations with Draw. Mount owns the lifecycle around a scene:
//
//	inst, err := demo.Mount(ctx, demo.KindPong, demo.Options{
//	    Bounds:  demo.Bounds{W: 640, H: 400},
//	    OnFrame: func(f demo.Frame) bool { return send(f) },
//	})
//	defer inst.Unmount()
//
// Mount starts a frame loop on its own goroutine. The scene is only ever
// touched from that goroutine, so scenes need no locking. Unmount cancels
// the loop and waits for it to exit; after it returns no further frame is
// produced and Tick reports ErrUnmounted.
package demo
