// Package config loads kmap settings from YAML, validated against an
// embedded CUE schema.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/roach88/kmap/internal/pathcache"
)

//go:embed schema.cue
var schemaCUE string

// Defaults.
const (
	DefaultDatabase  = "kmap.db"
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)

// Config holds the effective settings.
type Config struct {
	Database      string `json:"database"`
	LogLevel      string `json:"log_level"`
	LogFormat     string `json:"log_format"`
	CacheCapacity int    `json:"cache_capacity"`
}

// file mirrors the YAML document. Pointers distinguish absent keys from
// zero values.
type file struct {
	Database      *string `yaml:"database" json:"database,omitempty"`
	LogLevel      *string `yaml:"log_level" json:"log_level,omitempty"`
	LogFormat     *string `yaml:"log_format" json:"log_format,omitempty"`
	CacheCapacity *int    `yaml:"cache_capacity" json:"cache_capacity,omitempty"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Database:      DefaultDatabase,
		LogLevel:      DefaultLogLevel,
		LogFormat:     DefaultLogFormat,
		CacheCapacity: pathcache.DefaultCapacity,
	}
}

// Load reads path. A missing file yields Default().
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML document over the defaults. Unknown keys and values
// outside the schema are rejected.
func Parse(data []byte) (Config, error) {
	var f file
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := validate(f); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	cfg := Default()
	if f.Database != nil {
		cfg.Database = *f.Database
	}
	if f.LogLevel != nil {
		cfg.LogLevel = *f.LogLevel
	}
	if f.LogFormat != nil {
		cfg.LogFormat = *f.LogFormat
	}
	if f.CacheCapacity != nil {
		cfg.CacheCapacity = *f.CacheCapacity
	}
	return cfg, nil
}

func validate(f file) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE).LookupPath(cue.ParsePath("#Config"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	v := schema.Unify(ctx.Encode(f))
	return v.Validate(cue.Concrete(true))
}

// Level maps LogLevel to a slog level.
func (c Config) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// Logger builds a logger writing to w in the configured format.
func (c Config) Logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.Level()}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
