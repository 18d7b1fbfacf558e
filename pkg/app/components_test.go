package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilkoid/poncho-trace/pkg/config"
	"github.com/ilkoid/poncho-trace/pkg/prompts"
	"github.com/ilkoid/poncho-trace/pkg/render"
)

type fixedFinder string

func (f fixedFinder) FindConfigPath() string { return string(f) }

func TestDefaultConfigPathFinder_FlagWins(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")

	finder := &DefaultConfigPathFinder{ConfigFlag: path}
	assert.Equal(t, path, finder.FindConfigPath())
}

func TestInitializeConfig_MissingDefaultUsesBuiltin(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "config.yaml")

	cfg, path, err := InitializeConfig(fixedFinder(missing), false)
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, config.Default(), cfg)
}

func TestInitializeConfig_MissingRequired(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "config.yaml")

	_, _, err := InitializeConfig(fixedFinder(missing), true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestInitializeConfig_LoadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("display:\n  width: 120\n  color: never\n"), 0644))

	cfg, gotPath, err := InitializeConfig(fixedFinder(path), false)
	require.NoError(t, err)
	assert.Equal(t, path, gotPath)
	assert.Equal(t, 120, cfg.Display.Width)
	assert.Equal(t, config.ColorNever, cfg.Display.Color)
}

func TestInitialize(t *testing.T) {
	cfg := config.Default()
	cfg.Prompts.Dir = t.TempDir()

	comps, err := Initialize(cfg)
	require.NoError(t, err)

	assert.Same(t, cfg, comps.Config)
	require.NotNil(t, comps.Prompts)

	file, err := comps.Prompts.Load(prompts.PubMedAgentPromptID)
	require.NoError(t, err)
	assert.Contains(t, file.System, "pubmed_fetch_contents")

	assert.Equal(t, 96, comps.RenderOptions.Width)
}

func TestInitialize_NilConfig(t *testing.T) {
	_, err := Initialize(nil)
	assert.Error(t, err)
}

func TestRenderOptions(t *testing.T) {
	opts := RenderOptions(config.DisplayConfig{
		Width:       64,
		ColorScheme: "dracula",
		CodeTheme:   "dracula",
		Color:       config.ColorAlways,
	})

	assert.Equal(t, 64, opts.Width)
	assert.Equal(t, render.GetColorScheme("dracula"), opts.Scheme)
	assert.Equal(t, "dracula", opts.CodeTheme)
	assert.Equal(t, "dark", opts.MarkdownStyle)
	assert.Equal(t, render.ColorAlways, opts.Color)
	assert.Equal(t, render.DefaultTitle, opts.Title)
}

func TestReadRecord(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trace.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"input": "from file"}`), 0644))

	tests := []struct {
		name      string
		path      string
		stdin     string
		wantName  string
		wantInput string
		wantErr   string
	}{
		{name: "file", path: path, wantName: "trace.json", wantInput: "from file"},
		{name: "stdin by dash", path: "-", stdin: `{"input": "piped"}`, wantName: "stdin", wantInput: "piped"},
		{name: "stdin by default", stdin: `{"input": "piped"}`, wantName: "stdin", wantInput: "piped"},
		{name: "missing file", path: filepath.Join(dir, "nope.json"), wantErr: "failed to read nope.json"},
		{name: "invalid json", path: "-", stdin: `{"input":`, wantErr: "failed to parse stdin"},
		{name: "not an object", path: "-", stdin: `[1, 2]`, wantErr: "failed to parse stdin"},
		{
			name:    "non-JSON preview is truncated",
			path:    "-",
			stdin:   "Traceback (most recent call last): File \"agent.py\", line 12\n  raise",
			wantErr: `starts with "Traceback (most recent call last): File ..."`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, name, err := ReadRecord(tt.path, strings.NewReader(tt.stdin))

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantInput, rec.Input)
		})
	}
}
