// Package config provides configuration parsing for markup projects.
//
// The configuration lives in markup.yaml (or markup.json) next to the
// document sources. Every field is optional; missing values are filled in
// with defaults.
//
// # Configuration File Structure
//
//	document:
//	  head: head.html
//	  body: body.md
//	  sanitize: true
//	server:
//	  host: localhost
//	  port: 3000
//	  flushThreshold: 4096
//	  metricsPath: /metrics
//	  previewPath: /_markup/preview
//	  watchInterval: 500ms
//	telemetry:
//	  metricsNamespace: markup
//	  tracerName: markup
//	publish:
//	  bucket: my-site
//	  prefix: docs/
//	  region: us-east-1
//	  key: index.html
//	log:
//	  level: info
//	  color: auto
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Port:", cfg.Server.Port)
package config
