package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_NoopBeforeInit(t *testing.T) {
	Close()

	// Не должно паниковать и не должно создавать файлов
	Info("ignored", "key", "value")
	assert.Empty(t, LogPath())
}

func TestLogger_WritesKeyValues(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, InitLogger(dir))
	defer Close()

	path := LogPath()
	require.NotEmpty(t, path)
	assert.Equal(t, dir, filepath.Dir(path))

	Info("Rendered report", "steps", 2, "dangling")
	Error("Failed to read input", "error", "boom")

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "INFO: Logger initialized")
	assert.Contains(t, content, "INFO: Rendered report steps=2\n")
	assert.Contains(t, content, "ERROR: Failed to read input error=boom")
	assert.NotContains(t, content, "dangling")
}
