package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	sberrors "github.com/starbugmolt/starbug/internal/errors"
	"github.com/starbugmolt/starbug/pkg/assets"
	"github.com/starbugmolt/starbug/pkg/render"
	"github.com/starbugmolt/starbug/pkg/site"
)

// Server serves pages, assets and demo sessions.
type Server struct {
	cfg      Config
	site     atomic.Pointer[site.Site]
	renderer *render.Renderer
	resolver assets.Resolver
	upgrader websocket.Upgrader
	sessions *sessionRegistry
	metrics  *Metrics
	tracer   trace.Tracer
	logger   *slog.Logger
	mux      http.Handler

	// ctx is cancelled by Shutdown and parents every demo session.
	ctx    context.Context
	cancel context.CancelFunc

	httpServer *http.Server
}

// New creates a server. It does not listen; use Run or Handler.
func New(cfg Config) (*Server, error) {
	if cfg.Site == nil {
		return nil, sberrors.Newf(sberrors.CategoryConfig, "server: Site is required")
	}
	if cfg.Assets == nil {
		return nil, sberrors.Newf(sberrors.CategoryConfig, "server: Assets is required")
	}
	cfg.applyDefaults()

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		cfg:      cfg,
		renderer: render.NewRenderer(render.RendererConfig{Pretty: cfg.DevMode}),
		resolver: assets.NewResolver(cfg.AssetPrefix, cfg.Manifest),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     cfg.CheckOrigin,
		},
		sessions: newSessionRegistry(cfg.MaxDemoSessions),
		metrics:  cfg.Metrics,
		tracer:   cfg.Tracer,
		logger:   cfg.Logger,
		ctx:      ctx,
		cancel:   cancel,
	}
	s.site.Store(cfg.Site)
	if s.tracer == nil {
		s.tracer = noopTracer()
	}
	s.mux = s.routes()
	return s, nil
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	cache := ""
	if s.cfg.DevMode {
		cache = "no-cache"
	}
	prefix := s.cfg.AssetPrefix
	r.Handle(prefix+"*", http.StripPrefix(prefix[:len(prefix)-1], assets.Handler(s.cfg.Assets, assets.HandlerOptions{
		CacheControl: cache,
		Logger:       s.logger,
	})))

	r.Get(DemoPathPrefix+"{name}", s.handleDemo)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})

	if s.metrics != nil {
		r.Handle(s.cfg.MetricsPath, s.metrics.Handler())
	}

	r.Get("/*", s.handlePage)
	r.Head("/*", s.handlePage)
	return r
}

// SetSite replaces the route tree. Requests already rendering keep the
// site they started with.
func (s *Server) SetSite(st *site.Site) {
	s.site.Store(st)
}

// Site returns the current route tree.
func (s *Server) Site() *site.Site {
	return s.site.Load()
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ActiveDemos returns the number of mounted demo sessions.
func (s *Server) ActiveDemos() int {
	return s.sessions.Len()
}

// Run listens on Config.Address until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("server starting", "address", s.cfg.Address)
		if err := s.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// Shutdown stops accepting requests, then unmounts every live demo and
// waits for its session to finish.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	if s.httpServer != nil {
		if err = s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("http shutdown failed", "error", err)
		}
	}

	s.cancel()
	if werr := s.sessions.closeAll(ctx); werr != nil {
		s.logger.Error("demo sessions did not stop in time", "remaining", s.sessions.Len())
		if err == nil {
			err = werr
		}
	}
	s.logger.Info("server shutdown complete")
	return err
}
