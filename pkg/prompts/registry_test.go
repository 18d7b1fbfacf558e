package prompts

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilkoid/poncho-trace/pkg/config"
)

func TestLoadPubMedAgentPrompt_Default(t *testing.T) {
	cfg := config.Default()
	cfg.Prompts.Dir = t.TempDir() // пустая директория, файла нет

	text, err := LoadPubMedAgentPrompt(cfg)
	require.NoError(t, err)

	assert.Equal(t, PubMedAgentPrompt, text)
	assert.Contains(t, text, "pubmed-mcp-server")
	assert.Contains(t, text, "`pubmed_fetch_contents`")
	assert.Contains(t, text, `detailLevel: "abstract_plus"`)
	assert.Contains(t, text, "`retstart` and `retmax`")
	assert.Contains(t, text, "(Max 200)")
	assert.True(t, strings.HasSuffix(text, "Do not add markdown formatting.\n"))
}

func TestLoadPubMedAgentPrompt_FileOverride(t *testing.T) {
	dir := t.TempDir()
	content := "system: |\n  Custom PubMed instructions.\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, PubMedAgentPromptID+".yaml"), []byte(content), 0644))

	cfg := config.Default()
	cfg.Prompts.Dir = dir

	text, err := LoadPubMedAgentPrompt(cfg)
	require.NoError(t, err)
	assert.Equal(t, "Custom PubMed instructions.\n", text)
}

func TestCreateSourceRegistry_ExtraSourceOrder(t *testing.T) {
	primary := t.TempDir()
	extra := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(extra, "summary.yaml"), []byte("system: from extra\n"), 0644))

	cfg := config.Default()
	cfg.Prompts.Dir = primary
	cfg.PromptSources = []config.PromptSourceConfig{
		{Type: "file", Config: map[string]string{"base_dir": extra}},
	}

	registry, err := CreateSourceRegistry(cfg)
	require.NoError(t, err)

	file, err := registry.Load("summary")
	require.NoError(t, err)
	assert.Equal(t, "from extra", file.System)
	assert.Equal(t, "file:"+filepath.Join(extra, "summary.yaml"), file.Metadata["source"])
}

func TestCreateSourceRegistry_UnknownType(t *testing.T) {
	cfg := config.Default()
	cfg.PromptSources = []config.PromptSourceConfig{{Type: "api"}}

	_, err := CreateSourceRegistry(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown prompt source type")
}

func TestLoadPrompt_UnknownID(t *testing.T) {
	cfg := config.Default()
	cfg.Prompts.Dir = t.TempDir()

	_, err := LoadPrompt(cfg, "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLoadPrompt_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "blank.yaml"), []byte("metadata:\n  version: 1\n"), 0644))

	cfg := config.Default()
	cfg.Prompts.Dir = dir

	_, err := LoadPrompt(cfg, "blank")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmpty))
}

func TestBuiltinPromptIDs(t *testing.T) {
	ids := BuiltinPromptIDs()

	assert.Equal(t, []string{PubMedAgentPromptID}, ids)

	cfg := config.Default()
	cfg.Prompts.Dir = t.TempDir()
	for _, id := range ids {
		text, err := LoadPrompt(cfg, id)
		require.NoError(t, err)
		assert.NotEmpty(t, text)
	}
}

func TestSourceRegistry_NoSources(t *testing.T) {
	registry := NewSourceRegistry()

	assert.False(t, registry.HasSources())
	_, err := registry.Load("anything")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "no sources configured")

	cfg := config.Default()
	cfg.Prompts.Dir = ""
	registry, err = CreateSourceRegistry(cfg)
	require.NoError(t, err)
	assert.True(t, registry.HasSources())
}
