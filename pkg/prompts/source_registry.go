package prompts

import (
	"fmt"

	"github.com/ilkoid/poncho-trace/pkg/utils"
)

// SourceRegistry - реестр источников промптов с fallback chain.
//
// Источники пробуются по порядку добавления.
// Первый успешный Load() возвращается, ошибки остальных игнорируются.
// Если все источники не справились, возвращается последняя ошибка.
type SourceRegistry struct {
	sources []PromptSource
}

// NewSourceRegistry создаёт новый реестр источников.
func NewSourceRegistry() *SourceRegistry {
	return &SourceRegistry{
		sources: make([]PromptSource, 0),
	}
}

// AddSource добавляет источник в fallback chain.
func (r *SourceRegistry) AddSource(source PromptSource) {
	r.sources = append(r.sources, source)
}

// Load загружает промпт из первого доступного источника.
func (r *SourceRegistry) Load(promptID string) (*PromptFile, error) {
	if !r.HasSources() {
		return nil, fmt.Errorf("no sources configured for prompt '%s': %w", promptID, ErrNotFound)
	}

	var lastErr error

	for i, source := range r.sources {
		file, err := source.Load(promptID)
		if err == nil {
			return file, nil
		}
		lastErr = fmt.Errorf("source %d: %w", i, err)
	}

	return nil, fmt.Errorf("all sources failed for '%s': %w", promptID, lastErr)
}

// System возвращает текст системного промпта.
//
// Пустой промпт - ошибка ErrEmpty.
func (r *SourceRegistry) System(promptID string) (string, error) {
	file, err := r.Load(promptID)
	if err != nil {
		return "", fmt.Errorf("failed to load %s prompt: %w", promptID, err)
	}

	if file.System == "" {
		return "", fmt.Errorf("%s: %w", promptID, ErrEmpty)
	}

	utils.Debug("Prompt loaded", "id", promptID, "source", file.Metadata["source"])
	return file.System, nil
}

// HasSources проверяет, есть ли хотя бы один источник.
func (r *SourceRegistry) HasSources() bool {
	return len(r.sources) > 0
}
