package sorter

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"go.opentelemetry.io/otel/trace"
	"gopkg.in/yaml.v3"
)

// Option is a function that configures a Sorter.
// Options follow the functional options pattern for flexible configuration.
type Option func(*options)

// options holds the internal configuration for a Sorter.
type options struct {
	maxRunBytes int64       // In-memory run size before spilling to disk
	compression Compression // Codec for input, output and spilled runs
	workers     int         // Concurrent run sorters
	tempDir     string      // Directory for spilled runs
	logger      *slog.Logger
	tracer      trace.Tracer
}

const defaultMaxRunBytes = 64 << 20

func defaultOptions() options {
	return options{
		maxRunBytes: defaultMaxRunBytes,
		compression: CompressionNone,
		workers:     runtime.GOMAXPROCS(0),
		tempDir:     os.TempDir(),
		logger:      slog.Default(),
	}
}

// WithMaxRunBytes configures how many record bytes accumulate in memory
// before a run is sorted and spilled to disk. Smaller runs spill more
// often but bound memory; the default is 64 MiB.
func WithMaxRunBytes(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxRunBytes = n
		}
	}
}

// WithCompression configures the codec applied to spilled runs and to the
// input and output streams. The default is no compression.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithWorkers configures how many runs may sort and spill concurrently.
// The default is GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithTempDir configures the directory spilled runs are written to.
// The default is the system temp directory.
func WithTempDir(dir string) Option {
	return func(o *options) {
		if dir != "" {
			o.tempDir = dir
		}
	}
}

// WithLogger configures the logger for spill and merge progress. The
// default is slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithTracer configures an OpenTelemetry tracer wrapping each sort run in
// a span. Without one, no spans are created.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) {
		o.tracer = tracer
	}
}

// Config mirrors the Sorter options that can be loaded from a file.
type Config struct {
	MaxRunBytes int64       `json:"maxRunBytes" yaml:"maxRunBytes"`
	Compression Compression `json:"compression" yaml:"compression"`
	Workers     int         `json:"workers"     yaml:"workers"`
	TempDir     string      `json:"tempDir"     yaml:"tempDir"`
}

// LoadConfig reads a YAML Config from the given path.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sorter config: %w", err)
	}

	var cfg Config

	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse sorter config: %w", err)
	}

	if !cfg.Compression.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCompression, cfg.Compression)
	}

	return &cfg, nil
}

// Options converts the Config into the equivalent option list.
func (c *Config) Options() []Option {
	return []Option{
		WithMaxRunBytes(c.MaxRunBytes),
		WithCompression(c.Compression),
		WithWorkers(c.Workers),
		WithTempDir(c.TempDir),
	}
}
