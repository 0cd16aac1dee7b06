// Package config loads the qsynth server configuration.
//
// A YAML file is decoded over the defaults and the result is checked against
// an embedded CUE schema. The progress stream and oracle rendering constants
// are fixed and do not appear here.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaSource string

// Server holds the HTTP listener settings.
type Server struct {
	Addr            string `yaml:"addr" json:"addr"`
	StaticDir       string `yaml:"static_dir" json:"static_dir"`
	ShutdownTimeout string `yaml:"shutdown_timeout" json:"shutdown_timeout"`
}

// Shutdown returns the graceful shutdown timeout.
func (s Server) Shutdown() time.Duration {
	d, err := time.ParseDuration(s.ShutdownTimeout)
	if err != nil {
		return DefaultShutdownTimeout
	}
	return d
}

// Database holds the message board database location. An empty path
// disables the message endpoints.
type Database struct {
	Path string `yaml:"path" json:"path"`
}

// Oracle holds the oracle endpoint settings.
type Oracle struct {
	CacheSize int  `yaml:"cache_size" json:"cache_size"`
	Verify    bool `yaml:"verify" json:"verify"`
}

// Log holds logger settings. An empty File logs to stderr.
type Log struct {
	Level      string `yaml:"level" json:"level"`
	File       string `yaml:"file" json:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb" json:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" json:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days" json:"max_age_days"`
}

// Metrics toggles the /metrics endpoint.
type Metrics struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
}

// Config is the complete server configuration.
type Config struct {
	Server   Server   `yaml:"server" json:"server"`
	Database Database `yaml:"database" json:"database"`
	Oracle   Oracle   `yaml:"oracle" json:"oracle"`
	Log      Log      `yaml:"log" json:"log"`
	Metrics  Metrics  `yaml:"metrics" json:"metrics"`
}

// DefaultShutdownTimeout bounds graceful shutdown when none is configured.
const DefaultShutdownTimeout = 10 * time.Second

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server: Server{
			Addr:            ":5000",
			ShutdownTimeout: "10s",
		},
		Oracle: Oracle{
			CacheSize: 128,
		},
		Log: Log{
			Level:      "info",
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Metrics: Metrics{
			Enabled: true,
		},
	}
}

// ValidationError lists schema violations.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return "invalid config: " + e.Problems[0]
	}
	return fmt.Sprintf("invalid config: %d problems, first: %s", len(e.Problems), e.Problems[0])
}

// Load reads path and returns the validated configuration. An empty path
// returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, Validate(cfg)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "parse config %s", path)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cfg against the embedded schema.
func Validate(cfg Config) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource).LookupPath(cue.ParsePath("#Config"))
	if err := schema.Err(); err != nil {
		return errors.Wrap(err, "compile config schema")
	}

	v := schema.Unify(ctx.Encode(cfg))
	if err := v.Validate(cue.Concrete(true)); err != nil {
		ve := &ValidationError{}
		for _, e := range cueerrors.Errors(err) {
			ve.Problems = append(ve.Problems, e.Error())
		}
		if len(ve.Problems) == 0 {
			ve.Problems = []string{err.Error()}
		}
		return ve
	}
	return nil
}
