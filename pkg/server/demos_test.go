package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/starbugmolt/starbug/internal/errors"
	"github.com/starbugmolt/starbug/pkg/demo"
)

func dialDemo(t *testing.T, ts *httptest.Server, name, query string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	u := "ws" + strings.TrimPrefix(ts.URL, "http") + DemoPathPrefix + name
	if query != "" {
		u += "?" + query
	}
	return websocket.DefaultDialer.Dial(u, nil)
}

func readFrame(t *testing.T, conn *websocket.Conn) demo.Frame {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var f demo.Frame
	if err := conn.ReadJSON(&f); err != nil {
		t.Fatalf("read frame: %v", err)
	}
	return f
}

func waitForDemos(t *testing.T, s *Server, want int) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for s.ActiveDemos() != want {
		if time.Now().After(deadline) {
			t.Fatalf("ActiveDemos = %d, want %d", s.ActiveDemos(), want)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestDemoStreamsFrames(t *testing.T) {
	s := newTestServer(t, func(c *Config) { c.Metrics = NewMetrics("sbdemo") })
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	conn, _, err := dialDemo(t, ts, "pong", "w=320&h=200")
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	first := readFrame(t, conn)
	if first.Demo != "pong" {
		t.Errorf("Demo = %q, want pong", first.Demo)
	}
	if first.Bounds != (demo.Bounds{W: 320, H: 200}) {
		t.Errorf("Bounds = %+v", first.Bounds)
	}
	if len(first.Ops) == 0 || first.Ops[0].Op != "clear" {
		t.Errorf("first op should clear the surface, got %+v", first.Ops)
	}

	if err := conn.WriteJSON(demo.Input{Type: "keydown", Key: "ArrowUp"}); err != nil {
		t.Fatalf("write input: %v", err)
	}
	// Garbage is skipped, not fatal.
	if err := conn.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatalf("write garbage: %v", err)
	}
	next := readFrame(t, conn)
	for next.Seq <= first.Seq+2 {
		next = readFrame(t, conn)
	}

	waitForDemos(t, s, 1)
	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	conn.Close()
	waitForDemos(t, s, 0)
}

func TestDemoUnknown(t *testing.T) {
	s := newTestServer(t, nil)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	_, resp, err := dialDemo(t, ts, "tetris", "")
	if err == nil {
		t.Fatal("dial should fail for an unknown demo")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("response = %v, want 404", resp)
	}
}

func TestDemoSessionLimit(t *testing.T) {
	s := newTestServer(t, func(c *Config) { c.MaxDemoSessions = 1 })
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	conn, _, err := dialDemo(t, ts, "matrix", "")
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	readFrame(t, conn)

	_, resp, err := dialDemo(t, ts, "cosmos", "")
	if err == nil {
		t.Fatal("second session should be rejected")
	}
	if resp == nil || resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("response = %v, want 503", resp)
	}
	if s.ActiveDemos() != 1 {
		t.Errorf("ActiveDemos = %d, want 1", s.ActiveDemos())
	}
}

func TestShutdownUnmountsDemos(t *testing.T) {
	s := newTestServer(t, nil)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	var conns []*websocket.Conn
	for _, name := range []string{"particles", "neural", "wwii"} {
		conn, _, err := dialDemo(t, ts, name, "")
		if err != nil {
			t.Fatalf("dial %s: %v", name, err)
		}
		defer conn.Close()
		readFrame(t, conn)
		conns = append(conns, conn)
	}
	waitForDemos(t, s, 3)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if n := s.ActiveDemos(); n != 0 {
		t.Errorf("ActiveDemos after shutdown = %d", n)
	}

	for _, conn := range conns {
		conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		var err error
		for err == nil {
			_, _, err = conn.ReadMessage()
		}
		var ce *websocket.CloseError
		if !errors.As(err, &ce) {
			t.Fatalf("read error = %v, want a close frame", err)
		}
		if ce.Code != websocket.CloseNormalClosure || ce.Text != "server shutting down" {
			t.Errorf("close = %d %q", ce.Code, ce.Text)
		}
	}

	// New sessions are refused once shutdown has started.
	if _, resp, err := dialDemo(t, ts, "pong", ""); err == nil || resp == nil || resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("dial after shutdown: err=%v resp=%v", err, resp)
	}
}

func TestDemoBounds(t *testing.T) {
	s := newTestServer(t, nil)
	def := s.cfg.DemoBounds

	tests := []struct {
		query string
		want  demo.Bounds
	}{
		{"", def},
		{"w=320&h=200", demo.Bounds{W: 320, H: 200}},
		{"w=99999&h=99999", demo.Bounds{W: demo.MaxWidth, H: demo.MaxHeight}},
		{"w=-5&h=0", demo.Bounds{W: 1, H: 1}},
		{"w=wide", def},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			q, _ := url.ParseQuery(tt.query)
			if got := s.demoBounds(q); got != tt.want {
				t.Errorf("demoBounds(%q) = %+v, want %+v", tt.query, got, tt.want)
			}
		})
	}
}

func TestSessionRegistry(t *testing.T) {
	r := newSessionRegistry(2)
	noop := func() {}

	a, err := r.add(noop)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.add(noop); err != nil {
		t.Fatal(err)
	}
	if _, err := r.add(noop); !errors.Is(err, errors.New("E133")) {
		t.Errorf("add over limit = %v, want E133", err)
	}

	r.remove(a)
	r.remove(a)
	if r.Len() != 1 {
		t.Errorf("Len = %d, want 1", r.Len())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := r.closeAll(ctx); err == nil {
		t.Error("closeAll should time out while a session is still registered")
	}
	if _, err := r.add(noop); err == nil {
		t.Error("add after closeAll should fail")
	}
}
