package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/starbugmolt/starbug/internal/config"
	"github.com/starbugmolt/starbug/internal/dev"
	"github.com/starbugmolt/starbug/internal/errors"
	"github.com/starbugmolt/starbug/pkg/assets"
	"github.com/starbugmolt/starbug/pkg/demo"
	"github.com/starbugmolt/starbug/pkg/server"
	"github.com/starbugmolt/starbug/pkg/site"
	"github.com/starbugmolt/starbug/web"
)

type serveFlags struct {
	configPath string
	host       string
	port       int
	dev        bool
}

func serveCmd() *cobra.Command {
	var f serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the site server",
		Long: `Start the site server.

Configuration is read from starbug.json or starbug.yaml in the working
directory, or from --config. Without a config file the defaults are used.

Examples:
  starbug serve
  starbug serve --port=8080 --host=0.0.0.0
  starbug serve --config=deploy/starbug.yaml
  starbug serve --dev`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(f)
		},
	}

	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "Path to a config file")
	cmd.Flags().IntVarP(&f.port, "port", "p", 0, "Port to listen on (default from config)")
	cmd.Flags().StringVarP(&f.host, "host", "H", "", "Host to bind to (default from config)")
	cmd.Flags().BoolVar(&f.dev, "dev", false, "Disable asset caching and pretty-print HTML")

	return cmd
}

func runServe(f serveFlags) error {
	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	content, err := site.LoadContent(cfg.ContentDir())
	if err != nil {
		return err
	}
	st, err := site.New(content, site.Options{Logger: logger})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, where := assetSource(cfg)
	manifest, err := assets.LoadManifest(ctx, src)
	if err != nil {
		return err
	}

	var metrics *server.Metrics
	if cfg.Metrics.Enabled {
		metrics = server.NewMetrics(cfg.Metrics.Namespace)
	}
	var tracer trace.Tracer
	if cfg.Tracing.Enabled {
		tracer = server.NewTracer(cfg.Tracing.TracerName)
	}

	srv, err := server.New(server.Config{
		Site:            st,
		Assets:          src,
		AssetPrefix:     cfg.Static.Prefix,
		Manifest:        manifest,
		Address:         cfg.Address(),
		DevMode:         cfg.Server.DevMode,
		ShutdownTimeout: cfg.ShutdownTimeout(),
		FrameInterval:   cfg.FrameInterval(),
		DemoBounds:      demo.Bounds{W: float64(cfg.Demos.Width), H: float64(cfg.Demos.Height)},
		MaxDemoSessions: cfg.Demos.MaxSessions,
		FrameBuffer:     cfg.Demos.FrameBuffer,
		Metrics:         metrics,
		MetricsPath:     cfg.Metrics.Path,
		Tracer:          tracer,
		Logger:          logger,
	})
	if err != nil {
		return err
	}

	printBanner()
	success("Serving on http://%s", cfg.Address())
	info("Routes:  %d", st.Router.Len())
	info("Assets:  %s (%d fingerprinted)", where, manifest.Len())
	if metrics != nil {
		info("Metrics: %s", cfg.Metrics.Path)
	}
	if cfg.Server.DevMode {
		warn("Dev mode: assets are not cached")
	}
	fmt.Println()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(gctx) })
	if cfg.Server.DevMode && cfg.ContentDir() != "" {
		w, err := dev.NewWatcher(dev.WatcherConfig{
			Dir:    cfg.ContentDir(),
			Reload: reloadSite(srv, cfg.ContentDir(), logger),
			Logger: logger,
		})
		if err != nil {
			return err
		}
		info("Watching %s for content changes", cfg.ContentDir())
		g.Go(func() error { return w.Run(gctx) })
	}

	if err := g.Wait(); err != nil {
		errorMsg("Server stopped: %v", err)
		return err
	}
	success("Stopped")
	return nil
}

// reloadSite rebuilds the route tree from dir and swaps it into srv. A
// broken about.md leaves the running site untouched.
func reloadSite(srv *server.Server, dir string, logger *slog.Logger) func(context.Context) error {
	return func(context.Context) error {
		content, err := site.LoadContent(dir)
		if err != nil {
			return err
		}
		st, err := site.New(content, site.Options{Logger: logger})
		if err != nil {
			return err
		}
		srv.SetSite(st)
		return nil
	}
}

// loadConfig reads the config named by --config, or the one in the working
// directory. Only an explicit --config must exist. Flags override the file.
func loadConfig(f serveFlags) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if f.configPath != "" {
		cfg, err = config.LoadFile(f.configPath)
	} else {
		var wd string
		if wd, err = os.Getwd(); err != nil {
			return nil, err
		}
		cfg, err = config.Load(wd)
		if errors.Is(err, errors.New("E121")) {
			cfg, err = config.New(), nil
		}
	}
	if err != nil {
		return nil, err
	}

	if f.port > 0 {
		cfg.Server.Port = f.port
	}
	if f.host != "" {
		cfg.Server.Host = f.host
	}
	if f.dev {
		cfg.Server.DevMode = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the process logger from the log section.
func newLogger(cfg *config.Config, w io.Writer) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, errors.New("E122").WithDetailf("log.level %q", cfg.Log.Level)
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

// assetSource picks where /static/ is served from: an S3 bucket, then a
// directory on disk, then the embedded tree. It also describes the choice.
func assetSource(cfg *config.Config) (assets.Source, string) {
	if s3cfg := cfg.Assets.S3; s3cfg.Bucket != "" {
		client := assets.NewS3Client(assets.S3Options{
			Region:    s3cfg.Region,
			Endpoint:  s3cfg.Endpoint,
			PathStyle: s3cfg.PathStyle,
		})
		return assets.NewS3Source(client, s3cfg.Bucket, s3cfg.Prefix), "s3://" + s3cfg.Bucket + "/" + s3cfg.Prefix
	}
	if dir := cfg.StaticDir(); dir != "" {
		return assets.NewFSSource(os.DirFS(dir)), dir
	}
	return assets.NewFSSource(web.Static()), "embedded"
}
