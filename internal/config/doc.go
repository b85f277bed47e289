// Package config loads the server configuration from starbug.json or
// starbug.yaml.
//
// Every field has a default, so an empty file (or no file at all) gives a
// working server.
//
// # Configuration File Structure
//
//	{
//	  "server": {"host": "0.0.0.0", "port": 8042, "shutdownTimeout": "10s"},
//	  "static": {"dir": "", "prefix": "/static/"},
//	  "assets": {"s3": {"bucket": "starbug-site", "region": "eu-west-2", "prefix": "static/"}},
//	  "demos": {"frameRate": 30, "width": 640, "height": 400, "maxSessions": 64, "frameBuffer": 8},
//	  "metrics": {"enabled": true, "path": "/metrics", "namespace": "starbug"},
//	  "tracing": {"enabled": false, "tracerName": "starbug"},
//	  "log": {"level": "info", "format": "text"},
//	  "content": {"dir": "content"}
//	}
//
// The YAML form uses the same keys.
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Listening on", cfg.Address())
package config
