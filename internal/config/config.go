package config

import (
	"encoding/json"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/starbugmolt/starbug/internal/errors"
	"github.com/starbugmolt/starbug/pkg/demo"
)

const (
	// ConfigFileName is the JSON configuration file.
	ConfigFileName = "starbug.json"

	// YAMLConfigFileName is the YAML configuration file, used when no JSON
	// file exists.
	YAMLConfigFileName = "starbug.yaml"

	DefaultHost = "localhost"
	DefaultPort = 8042
)

// Config is the complete server configuration.
type Config struct {
	Server  ServerConfig  `json:"server" yaml:"server"`
	Static  StaticConfig  `json:"static" yaml:"static"`
	Assets  AssetsConfig  `json:"assets" yaml:"assets"`
	Demos   DemosConfig   `json:"demos" yaml:"demos"`
	Metrics MetricsConfig `json:"metrics" yaml:"metrics"`
	Tracing TracingConfig `json:"tracing" yaml:"tracing"`
	Log     LogConfig     `json:"log" yaml:"log"`
	Content ContentConfig `json:"content" yaml:"content"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains HTTP listener settings.
type ServerConfig struct {
	Host string `json:"host,omitempty" yaml:"host,omitempty"`
	Port int    `json:"port,omitempty" yaml:"port,omitempty"`

	// ShutdownTimeout bounds graceful shutdown, e.g. "10s".
	ShutdownTimeout string `json:"shutdownTimeout,omitempty" yaml:"shutdownTimeout,omitempty"`

	// DevMode disables asset caching and pretty-prints HTML.
	DevMode bool `json:"devMode,omitempty" yaml:"devMode,omitempty"`
}

// StaticConfig contains static file serving settings.
type StaticConfig struct {
	// Dir serves assets from disk instead of the embedded tree.
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty"`

	// Prefix is the URL prefix for assets (default "/static/").
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
}

// AssetsConfig selects a remote asset store.
type AssetsConfig struct {
	S3 S3Config `json:"s3" yaml:"s3"`
}

// S3Config serves assets from a bucket when Bucket is set. It takes
// precedence over Static.Dir.
type S3Config struct {
	Bucket    string `json:"bucket,omitempty" yaml:"bucket,omitempty"`
	Region    string `json:"region,omitempty" yaml:"region,omitempty"`
	Endpoint  string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	Prefix    string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	PathStyle bool   `json:"pathStyle,omitempty" yaml:"pathStyle,omitempty"`
}

// DemosConfig contains demo session settings.
type DemosConfig struct {
	FrameRate int `json:"frameRate,omitempty" yaml:"frameRate,omitempty"`
	Width     int `json:"width,omitempty" yaml:"width,omitempty"`
	Height    int `json:"height,omitempty" yaml:"height,omitempty"`

	// MaxSessions caps concurrently mounted demos across all clients.
	MaxSessions int `json:"maxSessions,omitempty" yaml:"maxSessions,omitempty"`

	// FrameBuffer is the per-session queue of frames awaiting the socket.
	// Frames beyond it are dropped.
	FrameBuffer int `json:"frameBuffer,omitempty" yaml:"frameBuffer,omitempty"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled" yaml:"enabled"`
	Path      string `json:"path,omitempty" yaml:"path,omitempty"`
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
}

// TracingConfig controls OpenTelemetry spans.
type TracingConfig struct {
	Enabled    bool   `json:"enabled" yaml:"enabled"`
	TracerName string `json:"tracerName,omitempty" yaml:"tracerName,omitempty"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`

	// Format is text or json.
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// ContentConfig points at editable page content.
type ContentConfig struct {
	// Dir may hold about.md, which replaces the built-in About page.
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty"`
}

// New creates a Config with default values.
func New() *Config {
	c := &Config{
		Metrics: MetricsConfig{Enabled: true},
	}
	c.applyDefaults()
	return c
}

// Load reads starbug.json, or failing that starbug.yaml, from dir.
func Load(dir string) (*Config, error) {
	for _, name := range []string{ConfigFileName, YAMLConfigFileName, "starbug.yml"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New("E121").
		WithDetail("No " + ConfigFileName + " or " + YAMLConfigFileName + " in " + dir).
		WithSuggestion("Create one, or run without --config to use the defaults")
}

// LoadFile reads configuration from path. Files ending in .yaml or .yml
// are YAML; anything else is JSON.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E121").WithDetail(path)
		}
		return nil, errors.New("E120").WithDetail(path).Wrap(err)
	}

	cfg := New()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.New("E120").
				WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
				WithSuggestion("Check that the file is valid YAML")
		}
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, errors.New("E120").
				WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
				WithSuggestion("Check that the file is valid JSON")
		}
	}

	cfg.configPath = path
	cfg.applyDefaults()
	return cfg, nil
}

// Path returns the path the config was loaded from, or "".
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = "10s"
	}

	if c.Static.Prefix == "" {
		c.Static.Prefix = "/static/"
	}

	if c.Demos.FrameRate == 0 {
		c.Demos.FrameRate = 30
	}
	if c.Demos.Width == 0 {
		c.Demos.Width = demo.DefaultWidth
	}
	if c.Demos.Height == 0 {
		c.Demos.Height = demo.DefaultHeight
	}
	if c.Demos.MaxSessions == 0 {
		c.Demos.MaxSessions = 64
	}
	if c.Demos.FrameBuffer == 0 {
		c.Demos.FrameBuffer = 8
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = "starbug"
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = "starbug"
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return errors.New("E122").WithDetailf(format, args...)
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return invalid("server.port must be between 0 and 65535, got %d", c.Server.Port)
	}
	if d, err := time.ParseDuration(c.Server.ShutdownTimeout); err != nil || d <= 0 {
		return invalid("server.shutdownTimeout %q is not a positive duration", c.Server.ShutdownTimeout)
	}
	if !strings.HasPrefix(c.Static.Prefix, "/") || !strings.HasSuffix(c.Static.Prefix, "/") {
		return invalid("static.prefix %q must start and end with /", c.Static.Prefix)
	}
	if c.Assets.S3.Bucket != "" && c.Assets.S3.Region == "" {
		return invalid("assets.s3.region is required when a bucket is set")
	}
	if c.Demos.FrameRate < 1 || c.Demos.FrameRate > 120 {
		return invalid("demos.frameRate must be between 1 and 120, got %d", c.Demos.FrameRate)
	}
	if c.Demos.Width < 1 || c.Demos.Width > demo.MaxWidth || c.Demos.Height < 1 || c.Demos.Height > demo.MaxHeight {
		return invalid("demos size %dx%d is outside 1x1..%dx%d", c.Demos.Width, c.Demos.Height, demo.MaxWidth, demo.MaxHeight)
	}
	if c.Demos.MaxSessions < 1 {
		return invalid("demos.maxSessions must be positive")
	}
	if c.Demos.FrameBuffer < 1 {
		return invalid("demos.frameBuffer must be positive")
	}
	if !strings.HasPrefix(c.Metrics.Path, "/") {
		return invalid("metrics.path %q must start with /", c.Metrics.Path)
	}
	if _, err := c.SlogLevel(); err != nil {
		return invalid("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return invalid("log.format %q is not text or json", c.Log.Format)
	}
	return nil
}

// Address returns the listen address, e.g. "localhost:8042".
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// ShutdownTimeout returns the parsed server.shutdownTimeout, or 10s when
// it does not parse.
func (c *Config) ShutdownTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.ShutdownTimeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// FrameInterval returns the time between demo frames.
func (c *Config) FrameInterval() time.Duration {
	if c.Demos.FrameRate <= 0 {
		return demo.DefaultFrameInterval
	}
	return time.Second / time.Duration(c.Demos.FrameRate)
}

// SlogLevel parses log.level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(c.Log.Level))
	return level, err
}

// StaticDir returns static.dir resolved against the config directory, or
// "" when unset.
func (c *Config) StaticDir() string {
	return c.resolve(c.Static.Dir)
}

// ContentDir returns content.dir resolved against the config directory, or
// "" when unset.
func (c *Config) ContentDir() string {
	return c.resolve(c.Content.Dir)
}

func (c *Config) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir(), path)
}
