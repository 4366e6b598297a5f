package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kmap.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database: notes.db\nlog_level: debug\ncache_capacity: 32\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Config{
		Database:      "notes.db",
		LogLevel:      "debug",
		LogFormat:     DefaultLogFormat,
		CacheCapacity: 32,
	}, cfg)
}

func TestParseEmptyDocument(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown key", "databse: x.db\n"},
		{"bad level", "log_level: loud\n"},
		{"bad format", "log_format: xml\n"},
		{"zero capacity", "cache_capacity: 0\n"},
		{"negative capacity", "cache_capacity: -4\n"},
		{"empty database", "database: \"\"\n"},
		{"wrong type", "cache_capacity: lots\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelWarn,
	}
	for in, want := range tests {
		assert.Equal(t, want, Config{LogLevel: in}.Level(), in)
	}
}

func TestLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	Config{LogLevel: "info", LogFormat: "json"}.Logger(&buf).Info("hello", "k", 1)
	assert.True(t, strings.HasPrefix(buf.String(), "{"), buf.String())

	buf.Reset()
	Config{LogLevel: "info", LogFormat: "text"}.Logger(&buf).Info("hello")
	assert.Contains(t, buf.String(), "msg=hello")

	buf.Reset()
	Config{LogLevel: "error"}.Logger(&buf).Info("dropped")
	assert.Empty(t, buf.String())
}
