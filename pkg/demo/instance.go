package demo

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/starbugmolt/starbug/internal/errors"
)

// Defaults for Options.
const (
	DefaultFrameInterval = time.Second / 30
	DefaultWidth         = 640
	DefaultHeight        = 400
	MaxWidth             = 1920
	MaxHeight            = 1080
)

// ErrUnmounted is returned by operations on an unmounted instance.
var ErrUnmounted = errors.New("E131")

// Frame is one rendered frame of a demo.
type Frame struct {
	Seq    uint64 `json:"seq"`
	Demo   string `json:"demo"`
	Bounds Bounds `json:"bounds"`
	Ops    []Op   `json:"ops"`
}

// Options configures Mount.
type Options struct {
	// Bounds is the surface size. Zero values use the defaults.
	Bounds Bounds

	// FrameInterval is the time between frames. It is also the fixed
	// simulation step.
	FrameInterval time.Duration

	// Seed seeds the scene's random source. Zero uses the clock.
	Seed uint64

	// Ticks replaces the internal ticker. Tests use it to drive frames.
	Ticks <-chan time.Time

	// OnFrame receives each frame on the loop goroutine. It must not
	// block; return false to report the frame as dropped.
	OnFrame func(Frame) bool

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Instance is a mounted demo.
type Instance struct {
	kind   Kind
	scene  Scene
	canvas *Canvas
	opts   Options
	logger *slog.Logger

	cancel context.CancelFunc
	done   chan struct{}
	inputs chan Input
	ticks  chan chan Frame

	frames  atomic.Uint64
	dropped atomic.Uint64
	once    sync.Once
}

// Mount creates the scene for kind and starts its frame loop. The loop
// stops when Unmount is called or ctx is cancelled.
func Mount(ctx context.Context, kind Kind, opts Options) (*Instance, error) {
	scene, err := NewScene(kind)
	if err != nil {
		return nil, err
	}
	return mount(ctx, kind, scene, opts)
}

func mount(ctx context.Context, kind Kind, scene Scene, opts Options) (*Instance, error) {
	bounds, err := normalizeBounds(opts.Bounds)
	if err != nil {
		return nil, err
	}
	opts.Bounds = bounds
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = DefaultFrameInterval
	}
	if opts.Seed == 0 {
		opts.Seed = uint64(time.Now().UnixNano())
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	loopCtx, cancel := context.WithCancel(ctx)
	in := &Instance{
		kind:   kind,
		scene:  scene,
		canvas: NewCanvas(bounds),
		opts:   opts,
		logger: logger.With("demo", kind.String()),
		cancel: cancel,
		done:   make(chan struct{}),
		inputs: make(chan Input, 16),
		ticks:  make(chan chan Frame),
	}

	scene.Init(bounds, rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)))

	var ticker *time.Ticker
	ticks := opts.Ticks
	if ticks == nil {
		ticker = time.NewTicker(opts.FrameInterval)
		ticks = ticker.C
	}

	go in.loop(loopCtx, ticks, ticker)
	in.logger.Debug("demo mounted", "width", bounds.W, "height", bounds.H)
	return in, nil
}

// normalizeBounds applies defaults and rejects sizes the client could not
// have asked for honestly.
func normalizeBounds(b Bounds) (Bounds, error) {
	if b.W == 0 {
		b.W = DefaultWidth
	}
	if b.H == 0 {
		b.H = DefaultHeight
	}
	if b.W < 0 || b.H < 0 || b.W > MaxWidth || b.H > MaxHeight {
		return Bounds{}, errors.New("E132").WithDetailf("%gx%g", b.W, b.H)
	}
	return b, nil
}

func (in *Instance) loop(ctx context.Context, ticks <-chan time.Time, ticker *time.Ticker) {
	defer close(in.done)
	if ticker != nil {
		defer ticker.Stop()
	}

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-ticks:
			if !ok {
				return
			}
			frame := in.advance()
			if in.opts.OnFrame != nil && !in.opts.OnFrame(frame) {
				in.dropped.Add(1)
			}
		case reply := <-in.ticks:
			reply <- in.advance()
		case ev := <-in.inputs:
			if s, ok := in.scene.(Interactive); ok {
				s.Input(ev)
			}
		}
	}
}

// advance runs one fixed step and records a frame.
func (in *Instance) advance() Frame {
	in.scene.Step(in.opts.FrameInterval)
	in.scene.Draw(in.canvas)
	return Frame{
		Seq:    in.frames.Add(1),
		Demo:   in.kind.Slug(),
		Bounds: in.opts.Bounds,
		Ops:    in.canvas.take(),
	}
}

// Tick advances one frame synchronously on the loop goroutine and returns
// it without passing it to OnFrame.
func (in *Instance) Tick() (Frame, error) {
	select {
	case <-in.done:
		return Frame{}, ErrUnmounted
	default:
	}

	reply := make(chan Frame, 1)
	select {
	case in.ticks <- reply:
		return <-reply, nil
	case <-in.done:
		return Frame{}, ErrUnmounted
	}
}

// Send queues an input event for the scene. Events are dropped when the
// queue is full.
func (in *Instance) Send(ev Input) error {
	select {
	case <-in.done:
		return ErrUnmounted
	default:
	}

	select {
	case in.inputs <- ev:
	default:
		in.logger.Debug("input dropped", "type", ev.Type, "key", ev.Key)
	}
	return nil
}

// Unmount stops the frame loop and waits for it to exit. It is safe to call
// more than once and from multiple goroutines.
func (in *Instance) Unmount() {
	in.once.Do(func() {
		in.cancel()
		<-in.done
		in.logger.Debug("demo unmounted", "frames", in.frames.Load(), "dropped", in.dropped.Load())
	})
	<-in.done
}

// Done is closed once the loop has exited.
func (in *Instance) Done() <-chan struct{} {
	return in.done
}

// Kind returns the demo variant.
func (in *Instance) Kind() Kind { return in.kind }

// Bounds returns the surface size.
func (in *Instance) Bounds() Bounds { return in.opts.Bounds }

// Frames returns the number of frames produced.
func (in *Instance) Frames() uint64 { return in.frames.Load() }

// Dropped returns the number of frames OnFrame rejected.
func (in *Instance) Dropped() uint64 { return in.dropped.Load() }
