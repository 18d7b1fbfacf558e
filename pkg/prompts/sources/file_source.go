package sources

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrNoFile возвращается, когда YAML файла промпта нет на диске.
var ErrNoFile = errors.New("prompt file not found")

// PromptData - сырые данные промпта без импорта pkg/prompts.
type PromptData struct {
	System   string         `yaml:"system"`
	Metadata map[string]any `yaml:"metadata"`
}

// FileSource - загрузка промптов из YAML файлов.
//
// Использует baseDir для поиска файлов: <baseDir>/<promptID>.yaml
type FileSource struct {
	baseDir string
}

// NewFileSource создаёт FileSource с указанной базовой директорией.
func NewFileSource(baseDir string) *FileSource {
	return &FileSource{
		baseDir: baseDir,
	}
}

// Load загружает промпт из YAML файла.
//
// Формат файла:
//
//	system: |
//	  You are an expert biomedical research assistant...
//	metadata:
//	  version: "2"
func (s *FileSource) Load(promptID string) (*PromptData, error) {
	path := filepath.Join(s.baseDir, promptID+".yaml")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoFile, path)
		}
		return nil, fmt.Errorf("failed to read prompt file: %w", err)
	}

	var file PromptData
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse prompt YAML %s: %w", path, err)
	}

	if file.Metadata == nil {
		file.Metadata = make(map[string]any)
	}
	if _, ok := file.Metadata["source"]; !ok {
		file.Metadata["source"] = "file:" + path
	}

	return &file, nil
}
