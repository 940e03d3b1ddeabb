package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/markup/internal/errors"
)

const (
	// YAMLFileName is the preferred configuration file name.
	YAMLFileName = "markup.yaml"

	// JSONFileName is the alternative configuration file name.
	JSONFileName = "markup.json"

	// DefaultPort is the default server port.
	DefaultPort = 3000

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultFlushThreshold is the number of bytes written to an HTTP
	// response between flushes.
	DefaultFlushThreshold = 4096

	// DefaultMetricsPath is where Prometheus metrics are exposed.
	DefaultMetricsPath = "/metrics"

	// DefaultPreviewPath is the live preview WebSocket endpoint.
	DefaultPreviewPath = "/_markup/preview"

	// DefaultWatchInterval is how often watched sources are polled.
	DefaultWatchInterval = "500ms"

	// DefaultNamespace is used for metric names and the tracer.
	DefaultNamespace = "markup"

	// DefaultRegion is the default object store region.
	DefaultRegion = "us-east-1"

	// DefaultKey is the default object key for a published document.
	DefaultKey = "index.html"
)

// Config represents the complete markup configuration.
type Config struct {
	// Document names the head and body sources.
	Document DocumentConfig `json:"document,omitempty" yaml:"document,omitempty"`

	// Server contains HTTP serving configuration.
	Server ServerConfig `json:"server,omitempty" yaml:"server,omitempty"`

	// Telemetry contains metrics and tracing configuration.
	Telemetry TelemetryConfig `json:"telemetry,omitempty" yaml:"telemetry,omitempty"`

	// Publish contains object store configuration.
	Publish PublishConfig `json:"publish,omitempty" yaml:"publish,omitempty"`

	// Log contains logging configuration.
	Log LogConfig `json:"log,omitempty" yaml:"log,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// DocumentConfig names the files that fill the document slots.
type DocumentConfig struct {
	// Head is the path to the head source.
	Head string `json:"head,omitempty" yaml:"head,omitempty"`

	// Body is the path to the body source. Files ending in .md are
	// converted from Markdown.
	Body string `json:"body,omitempty" yaml:"body,omitempty"`

	// Sanitize runs the body through an HTML sanitizer.
	Sanitize bool `json:"sanitize,omitempty" yaml:"sanitize,omitempty"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty" yaml:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty" yaml:"port,omitempty"`

	// FlushThreshold is the number of bytes between response flushes.
	FlushThreshold int `json:"flushThreshold,omitempty" yaml:"flushThreshold,omitempty"`

	// MetricsPath is the Prometheus endpoint. Set to "-" to disable.
	MetricsPath string `json:"metricsPath,omitempty" yaml:"metricsPath,omitempty"`

	// PreviewPath is the live preview WebSocket endpoint.
	PreviewPath string `json:"previewPath,omitempty" yaml:"previewPath,omitempty"`

	// WatchInterval is the polling interval for source changes (e.g., "500ms").
	WatchInterval string `json:"watchInterval,omitempty" yaml:"watchInterval,omitempty"`
}

// TelemetryConfig contains metrics and tracing settings.
type TelemetryConfig struct {
	// MetricsNamespace prefixes every metric name.
	MetricsNamespace string `json:"metricsNamespace,omitempty" yaml:"metricsNamespace,omitempty"`

	// TracerName is the OpenTelemetry tracer name.
	TracerName string `json:"tracerName,omitempty" yaml:"tracerName,omitempty"`
}

// PublishConfig contains object store settings.
type PublishConfig struct {
	// Bucket is the destination bucket.
	Bucket string `json:"bucket,omitempty" yaml:"bucket,omitempty"`

	// Prefix is prepended to every object key.
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`

	// Region is the object store region.
	Region string `json:"region,omitempty" yaml:"region,omitempty"`

	// Key is the object key of the published document.
	Key string `json:"key,omitempty" yaml:"key,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`

	// Color is one of auto, always, never.
	Color string `json:"color,omitempty" yaml:"color,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from the specified directory, preferring
// markup.yaml over markup.json.
func Load(dir string) (*Config, error) {
	for _, name := range []string{YAMLFileName, JSONFileName} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New("E121").
		WithDetail("No " + YAMLFileName + " or " + JSONFileName + " found in " + dir).
		WithSuggestion("Pass --config or create " + YAMLFileName)
}

// LoadFile reads configuration from the specified file path. The format
// is chosen by extension: .json is JSON, anything else is YAML.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E121").
				WithDetail("No configuration file at " + path)
		}
		return nil, errors.New("E120").Wrap(err)
	}

	cfg := &Config{}
	if isJSON(path) {
		err = json.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.New("E120").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check the file syntax")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	if isJSON(path) {
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	} else {
		data, err = yaml.Marshal(c)
	}
	if err != nil {
		return errors.New("E120").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E120").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
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
	if c.Server.FlushThreshold == 0 {
		c.Server.FlushThreshold = DefaultFlushThreshold
	}
	if c.Server.MetricsPath == "" {
		c.Server.MetricsPath = DefaultMetricsPath
	}
	if c.Server.PreviewPath == "" {
		c.Server.PreviewPath = DefaultPreviewPath
	}
	if c.Server.WatchInterval == "" {
		c.Server.WatchInterval = DefaultWatchInterval
	}

	if c.Telemetry.MetricsNamespace == "" {
		c.Telemetry.MetricsNamespace = DefaultNamespace
	}
	if c.Telemetry.TracerName == "" {
		c.Telemetry.TracerName = DefaultNamespace
	}

	if c.Publish.Region == "" {
		c.Publish.Region = DefaultRegion
	}
	if c.Publish.Key == "" {
		c.Publish.Key = DefaultKey
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Color == "" {
		c.Log.Color = "auto"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("E120").
			WithDetail("server.port must be between 0 and 65535")
	}
	if c.Server.FlushThreshold < 0 {
		return errors.New("E120").
			WithDetail("server.flushThreshold must not be negative")
	}
	if _, err := time.ParseDuration(c.Server.WatchInterval); err != nil {
		return errors.New("E120").
			WithDetail("server.watchInterval is not a duration: " + c.Server.WatchInterval)
	}
	switch c.Log.Color {
	case "auto", "always", "never":
	default:
		return errors.New("E120").
			WithDetail("log.color must be auto, always or never")
	}
	return nil
}

// Address returns the listen address for the server.
func (c *Config) Address() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// WatchInterval returns the parsed polling interval.
func (c *Config) WatchInterval() time.Duration {
	d, err := time.ParseDuration(c.Server.WatchInterval)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(DefaultWatchInterval)
	}
	return d
}

// ResolvePath resolves a path relative to the config file's directory.
// Empty paths stay empty.
func (c *Config) ResolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir(), path)
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}
