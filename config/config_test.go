package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/textconsole/console"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "console.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, console.Character('q'), cfg.QuitBinding())
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
backend: tcell
color_mode: "256"
quit_key: escape
debug: true
escape_timeout_ms: 25
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendTcell, cfg.Backend)
	assert.Equal(t, "256", cfg.ColorMode)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 25, cfg.EscapeTimeoutMs)
	assert.Equal(t, console.Special(console.KeyEsc), cfg.QuitBinding())

	// Keys absent from the file keep their defaults
	assert.Equal(t, defLogDir, cfg.LogDir)
	assert.Equal(t, defTitle, cfg.Title)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "backend: tcell\ntitle: from file\n")
	t.Setenv("TC_BACKEND", "ansi")
	t.Setenv("TC_QUIT_KEY", "ctrl_c")
	t.Setenv("TC_DEBUG", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendANSI, cfg.Backend)
	assert.Equal(t, "from file", cfg.Title)
	assert.True(t, cfg.Debug)
	assert.Equal(t, console.Special(console.CtrlPlus('c')), cfg.QuitBinding())
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown backend", "backend: curses\n"},
		{"unknown color mode", "color_mode: rainbow\n"},
		{"bad quit key", "quit_key: hyper_q\n"},
		{"zero escape timeout", "escape_timeout_ms: 0\n"},
		{"malformed yaml", "backend: [unterminated\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(errors.Cause(err)))
}

func TestLoadDirectory(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.Error(t, err)
}
