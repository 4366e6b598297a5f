package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenario_ValidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "basic.yaml")
	content := `
name: basic
description: nested creation
steps:
  - op: create
    path: /notes.todo
  - op: reorder
    path: /notes
    order: [todo]
expect:
  - type: exists
    path: /notes.todo
    value: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "basic", s.Name)
	assert.Equal(t, "nested creation", s.Description)
	require.Len(t, s.Steps, 2)
	assert.Equal(t, OpCreate, s.Steps[0].Op)
	assert.Equal(t, []string{"todo"}, s.Steps[1].Order)
	require.Len(t, s.Expect, 1)
	require.NotNil(t, s.Expect[0].Value)
	assert.True(t, *s.Expect[0].Value)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestParseScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"unknown field", "name: x\nstepz: []\n", "failed to parse YAML"},
		{"missing name", "steps:\n  - op: reload\n", "name is required"},
		{"no steps", "name: x\n", "steps list is required"},
		{"missing op", "name: x\nsteps:\n  - path: /a\n", "op is required"},
		{"unknown op", "name: x\nsteps:\n  - op: rename\n    path: /a\n", `unknown op "rename"`},
		{"create without path", "name: x\nsteps:\n  - op: create\n", "create requires path"},
		{"alias without to", "name: x\nsteps:\n  - op: alias\n    path: /a\n", "alias requires to"},
		{"tag without tag", "name: x\nsteps:\n  - op: tag\n    path: /a\n", "tag requires tag"},
		{"reorder without order", "name: x\nsteps:\n  - op: reorder\n    path: /a\n", "reorder requires order"},
		{"exists without value", "name: x\nsteps:\n  - op: reload\nexpect:\n  - type: exists\n    path: /a\n", "exists requires value"},
		{"resolve without to", "name: x\nsteps:\n  - op: reload\nexpect:\n  - type: resolve\n    path: /a\n", "resolve requires to"},
		{"unknown expectation", "name: x\nsteps:\n  - op: reload\nexpect:\n  - type: size\n    path: /a\n", "unknown expectation type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestScenarioFilesParse(t *testing.T) {
	files, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, files)
	for _, f := range files {
		_, err := LoadScenario(f)
		assert.NoError(t, err, f)
	}
}
