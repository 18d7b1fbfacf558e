package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 96, cfg.Display.Width)
	assert.Equal(t, "default", cfg.Display.ColorScheme)
	assert.Equal(t, "monokai", cfg.Display.CodeTheme)
	assert.Equal(t, ColorAuto, cfg.Display.Color)
	assert.Equal(t, "./prompts", cfg.Prompts.Dir)
	assert.False(t, cfg.Log.Enabled)
}

func TestLoad_ExpandsEnvAndFillsDefaults(t *testing.T) {
	t.Setenv("TRACEVIEW_PROMPTS", "/srv/prompts")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
display:
  width: 120
  color: never
  show_raw: true
prompts:
  dir: ${TRACEVIEW_PROMPTS}
log:
  enabled: true
  dir: ./logs
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 120, cfg.Display.Width)
	assert.Equal(t, ColorNever, cfg.Display.Color)
	assert.True(t, cfg.Display.ShowRaw)
	assert.Equal(t, "monokai", cfg.Display.CodeTheme, "unset fields get defaults")
	assert.Equal(t, "/srv/prompts", cfg.Prompts.Dir)
	assert.True(t, cfg.Log.Enabled)
	assert.Equal(t, "./logs", cfg.Log.Dir)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestParse_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{
			name:    "width too small",
			content: "display:\n  width: 10\n",
			errMsg:  "display.width",
		},
		{
			name:    "unknown color mode",
			content: "display:\n  color: sometimes\n",
			errMsg:  "display.color",
		},
		{
			name:    "prompt source without type",
			content: "prompt_sources:\n  - config:\n      base_dir: ./x\n",
			errMsg:  "prompt_sources[0].type",
		},
		{
			name:    "invalid yaml",
			content: "display: [",
			errMsg:  "failed to parse yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
