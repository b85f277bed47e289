package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"

	"github.com/starbugmolt/starbug/internal/errors"
	"github.com/starbugmolt/starbug/pkg/demo"
)

// maxInputMessage bounds one client input event.
const maxInputMessage = 1024

// sessionRegistry tracks live demo sessions and enforces the limit.
type sessionRegistry struct {
	mu       sync.Mutex
	max      int
	next     uint64
	closed   bool
	sessions map[uint64]context.CancelFunc
	wg       sync.WaitGroup
}

func newSessionRegistry(max int) *sessionRegistry {
	return &sessionRegistry{max: max, sessions: make(map[uint64]context.CancelFunc)}
}

// add reserves a slot. It fails with E133 when the registry is full or
// shutting down.
func (r *sessionRegistry) add(cancel context.CancelFunc) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return 0, errors.New("E133").WithDetail("server is shutting down")
	}
	if len(r.sessions) >= r.max {
		return 0, errors.New("E133").WithDetailf("%d sessions are running", len(r.sessions))
	}
	r.next++
	r.sessions[r.next] = cancel
	r.wg.Add(1)
	return r.next, nil
}

func (r *sessionRegistry) remove(id uint64) {
	r.mu.Lock()
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if ok {
		r.wg.Done()
	}
}

func (r *sessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// closeAll cancels every session and waits until all have been removed or
// ctx expires.
func (r *sessionRegistry) closeAll(ctx context.Context) error {
	r.mu.Lock()
	r.closed = true
	for _, cancel := range r.sessions {
		cancel()
	}
	r.mu.Unlock()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// demoBounds reads the w and h query parameters, clamped to the allowed
// surface. Missing or unparsable values fall back to the defaults.
func (s *Server) demoBounds(q url.Values) demo.Bounds {
	b := s.cfg.DemoBounds
	if w, err := strconv.Atoi(q.Get("w")); err == nil {
		b.W = clampDim(w, demo.MaxWidth)
	}
	if h, err := strconv.Atoi(q.Get("h")); err == nil {
		b.H = clampDim(h, demo.MaxHeight)
	}
	return b
}

func clampDim(v, max int) float64 {
	if v < 1 {
		return 1
	}
	if v > max {
		return float64(max)
	}
	return float64(v)
}

// handleDemo upgrades to a websocket and runs one demo until the socket
// closes or the server shuts down.
func (s *Server) handleDemo(w http.ResponseWriter, r *http.Request) {
	kind, err := demo.ParseKind(chi.URLParam(r, "name"))
	if err != nil {
		http.Error(w, "Unknown demo", http.StatusNotFound)
		return
	}

	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	id, err := s.sessions.add(cancel)
	if err != nil {
		s.logger.Warn("demo rejected", "demo", kind.Slug(), "error", err)
		s.metrics.demoRejected(kind.Slug(), "rejected")
		http.Error(w, "Too many demos running, try again shortly", http.StatusServiceUnavailable)
		return
	}
	defer s.sessions.remove(id)

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied.
		s.logger.Debug("websocket upgrade failed", "error", err)
		s.metrics.wsError("upgrade")
		return
	}

	sess := &demoSession{
		server: s,
		conn:   conn,
		kind:   kind,
		bounds: s.demoBounds(r.URL.Query()),
		logger: s.logger.With("demo", kind.Slug(), "session", id, "request_id", middleware.GetReqID(r.Context())),
	}

	ctx, span := s.startSpan(ctx, "demo "+kind.Slug(),
		attribute.String("starbug.demo", kind.Slug()),
		attribute.Float64("starbug.width", sess.bounds.W),
		attribute.Float64("starbug.height", sess.bounds.H),
	)
	err = sess.run(ctx, cancel)
	span.SetAttributes(attribute.Int64("starbug.frames_sent", int64(sess.sent)))
	endSpan(span, err)
}

// demoSession couples one socket to one mounted demo.
type demoSession struct {
	server *Server
	conn   *websocket.Conn
	kind   demo.Kind
	bounds demo.Bounds
	logger *slog.Logger
	sent   uint64
}

// run mounts the demo and pumps frames out and input in. The writer and
// reader each cancel ctx when they stop; run then unmounts the demo and
// closes the socket.
func (d *demoSession) run(ctx context.Context, cancel context.CancelFunc) error {
	s := d.server
	frames := make(chan demo.Frame, s.cfg.FrameBuffer)

	inst, err := demo.Mount(ctx, d.kind, demo.Options{
		Bounds:        d.bounds,
		FrameInterval: s.cfg.FrameInterval,
		Logger:        d.logger,
		OnFrame: func(f demo.Frame) bool {
			select {
			case frames <- f:
				return true
			default:
				s.metrics.frameDropped()
				return false
			}
		},
	})
	if err != nil {
		d.closeWith(websocket.CloseInternalServerErr, "mount failed")
		return err
	}
	s.metrics.demoMounted(d.kind.Slug())
	d.logger.Info("demo session started", "width", d.bounds.W, "height", d.bounds.H)

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		defer cancel()
		for f := range frames {
			d.conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
			if err := d.conn.WriteJSON(f); err != nil {
				s.metrics.wsError("write")
				return
			}
			d.sent++
			s.metrics.frameSent()
		}
	}()

	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		defer cancel()
		d.readInputs(inst)
	}()

	<-ctx.Done()
	inst.Unmount()
	close(frames)
	<-writerDone

	reason := "bye"
	if s.ctx.Err() != nil {
		reason = "server shutting down"
	}
	d.closeWith(websocket.CloseNormalClosure, reason)
	<-readerDone

	s.metrics.demoUnmounted(d.kind.Slug())
	d.logger.Info("demo session ended", "frames", inst.Frames(), "dropped", inst.Dropped(), "sent", d.sent)
	return nil
}

// readInputs forwards input events until the socket fails. Malformed
// messages are skipped.
func (d *demoSession) readInputs(inst *demo.Instance) {
	d.conn.SetReadLimit(maxInputMessage)
	for {
		_, msg, err := d.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				d.server.metrics.wsError("read")
				d.logger.Debug("demo socket read failed", "error", err)
			}
			return
		}
		var ev demo.Input
		if err := json.Unmarshal(msg, &ev); err != nil {
			d.logger.Debug("bad input event", "error", err)
			continue
		}
		if err := inst.Send(ev); err != nil {
			return
		}
	}
}

func (d *demoSession) closeWith(code int, reason string) {
	d.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(code, reason),
		time.Now().Add(time.Second))
	d.conn.Close()
}
