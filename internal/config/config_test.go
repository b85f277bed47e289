package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/starbugmolt/starbug/internal/errors"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Address() != "localhost:8042" {
		t.Errorf("Address() = %q, want localhost:8042", cfg.Address())
	}
	if cfg.Static.Prefix != "/static/" {
		t.Errorf("Static.Prefix = %q", cfg.Static.Prefix)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Path != "/metrics" {
		t.Errorf("Metrics = %+v", cfg.Metrics)
	}
	if cfg.Tracing.Enabled {
		t.Error("tracing should be off by default")
	}
	if cfg.FrameInterval() != time.Second/30 {
		t.Errorf("FrameInterval() = %v", cfg.FrameInterval())
	}
	if cfg.ShutdownTimeout() != 10*time.Second {
		t.Errorf("ShutdownTimeout() = %v", cfg.ShutdownTimeout())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(dir); errors.Code(err) != "E121" {
		t.Fatalf("missing config err = %v, want E121", err)
	}

	writeFile(t, filepath.Join(dir, ConfigFileName), `{
  "server": {"host": "0.0.0.0", "port": 9000, "devMode": true},
  "static": {"dir": "public"},
  "demos": {"frameRate": 60, "maxSessions": 4},
  "metrics": {"namespace": "sb"},
  "log": {"level": "debug", "format": "json"}
}`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Address() != "0.0.0.0:9000" || !cfg.Server.DevMode {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.StaticDir() != filepath.Join(dir, "public") {
		t.Errorf("StaticDir() = %q", cfg.StaticDir())
	}
	if cfg.FrameInterval() != time.Second/60 || cfg.Demos.MaxSessions != 4 {
		t.Errorf("Demos = %+v", cfg.Demos)
	}
	// Unset fields keep their defaults.
	if cfg.Demos.Width != 640 || !cfg.Metrics.Enabled || cfg.Metrics.Namespace != "sb" {
		t.Errorf("defaults lost: demos %+v metrics %+v", cfg.Demos, cfg.Metrics)
	}
	if level, _ := cfg.SlogLevel(); level != slog.LevelDebug {
		t.Errorf("SlogLevel() = %v", level)
	}
	if cfg.Path() != filepath.Join(dir, ConfigFileName) {
		t.Errorf("Path() = %q", cfg.Path())
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, YAMLConfigFileName), `
server:
  port: 8080
  shutdownTimeout: 3s
assets:
  s3:
    bucket: starbug-site
    region: eu-west-2
    prefix: static/
    pathStyle: true
metrics:
  enabled: false
content:
  dir: /srv/content
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 || cfg.ShutdownTimeout() != 3*time.Second {
		t.Errorf("Server = %+v", cfg.Server)
	}
	want := S3Config{Bucket: "starbug-site", Region: "eu-west-2", Prefix: "static/", PathStyle: true}
	if cfg.Assets.S3 != want {
		t.Errorf("S3 = %+v, want %+v", cfg.Assets.S3, want)
	}
	if cfg.Metrics.Enabled {
		t.Error("metrics.enabled: false was ignored")
	}
	if cfg.ContentDir() != "/srv/content" {
		t.Errorf("ContentDir() = %q", cfg.ContentDir())
	}
}

func TestJSONPreferredOverYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ConfigFileName), `{"server": {"port": 1111}}`)
	writeFile(t, filepath.Join(dir, YAMLConfigFileName), "server:\n  port: 2222\n")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 1111 {
		t.Errorf("Port = %d, want 1111 from the JSON file", cfg.Server.Port)
	}
}

func TestLoadFileParseErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name, file, data string
	}{
		{"json", "bad.json", `{"server": `},
		{"yaml", "bad.yaml", "server: [1, 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			writeFile(t, path, tt.data)
			if _, err := LoadFile(path); errors.Code(err) != "E120" {
				t.Errorf("err = %v, want E120", err)
			}
		})
	}

	if _, err := LoadFile(filepath.Join(dir, "nope.json")); errors.Code(err) != "E121" {
		t.Errorf("missing file err = %v, want E121", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port", func(c *Config) { c.Server.Port = 70000 }},
		{"shutdown", func(c *Config) { c.Server.ShutdownTimeout = "soon" }},
		{"negative shutdown", func(c *Config) { c.Server.ShutdownTimeout = "-1s" }},
		{"prefix", func(c *Config) { c.Static.Prefix = "static" }},
		{"s3 region", func(c *Config) { c.Assets.S3.Bucket = "b" }},
		{"frame rate", func(c *Config) { c.Demos.FrameRate = 500 }},
		{"width", func(c *Config) { c.Demos.Width = 5000 }},
		{"sessions", func(c *Config) { c.Demos.MaxSessions = -1 }},
		{"buffer", func(c *Config) { c.Demos.FrameBuffer = -1 }},
		{"metrics path", func(c *Config) { c.Metrics.Path = "metrics" }},
		{"log level", func(c *Config) { c.Log.Level = "loud" }},
		{"log format", func(c *Config) { c.Log.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			if err := cfg.Validate(); errors.Code(err) != "E122" {
				t.Errorf("Validate() = %v, want E122", err)
			}
		})
	}
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
}
