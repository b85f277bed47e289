package server

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/starbugmolt/starbug/pkg/assets"
	"github.com/starbugmolt/starbug/pkg/demo"
	"github.com/starbugmolt/starbug/pkg/site"
	"go.opentelemetry.io/otel/trace"
)

// FragmentHeader selects fragment mode when set to "1".
const FragmentHeader = "X-Starbug-Fragment"

// DemoPathPrefix is where demo sockets are served.
const DemoPathPrefix = "/_starbug/demo/"

// Config configures a Server.
type Config struct {
	// Site is the route tree and its content. Required.
	Site *site.Site

	// Assets serves /static/*. Required.
	Assets assets.Source

	// AssetPrefix is the URL prefix of Assets (default "/static/").
	AssetPrefix string

	// Manifest maps asset names to fingerprinted names. Optional.
	Manifest *assets.Manifest

	// Address is the listen address used by Run.
	Address string

	// DevMode pretty-prints HTML and disables asset caching.
	DevMode bool

	// ShutdownTimeout bounds Run's graceful shutdown (default 10s).
	ShutdownTimeout time.Duration

	// FrameInterval is the demo frame period (default 1/30s).
	FrameInterval time.Duration

	// DemoBounds is the surface size used when a client sends none.
	DemoBounds demo.Bounds

	// MaxDemoSessions caps concurrently mounted demos (default 64).
	MaxDemoSessions int

	// FrameBuffer is the per-session frame queue length (default 8).
	FrameBuffer int

	// WriteTimeout bounds each websocket write (default 5s).
	WriteTimeout time.Duration

	// CheckOrigin validates websocket origins. Nil uses the gorilla default,
	// which requires the Origin host to match the request host.
	CheckOrigin func(r *http.Request) bool

	// Metrics enables Prometheus metrics when non-nil.
	Metrics *Metrics

	// MetricsPath is where Metrics is exposed (default "/metrics").
	MetricsPath string

	// Tracer traces page renders and demo sessions. Nil disables tracing.
	Tracer trace.Tracer

	Logger *slog.Logger
}

func (c *Config) applyDefaults() {
	if c.AssetPrefix == "" {
		c.AssetPrefix = "/static/"
	}
	if !strings.HasSuffix(c.AssetPrefix, "/") {
		c.AssetPrefix += "/"
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = 10 * time.Second
	}
	if c.FrameInterval <= 0 {
		c.FrameInterval = demo.DefaultFrameInterval
	}
	if c.DemoBounds.W <= 0 || c.DemoBounds.H <= 0 {
		c.DemoBounds = demo.Bounds{W: demo.DefaultWidth, H: demo.DefaultHeight}
	}
	if c.MaxDemoSessions <= 0 {
		c.MaxDemoSessions = 64
	}
	if c.FrameBuffer <= 0 {
		c.FrameBuffer = 8
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = 5 * time.Second
	}
	if c.MetricsPath == "" {
		c.MetricsPath = "/metrics"
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}
