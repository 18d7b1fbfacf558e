package prompts

import "errors"

// PromptFile - содержимое загруженного промпта.
//
// Используется всеми реализациями PromptSource интерфейса.
type PromptFile struct {
	// System - текст системного промпта
	System string `yaml:"system"`

	// Metadata - метаданные промпта (source, version, ...)
	Metadata map[string]any `yaml:"metadata"`
}

// ErrNotFound возвращается когда источник не содержит промпт.
var ErrNotFound = errors.New("prompt not found in source")

// ErrEmpty возвращается когда промпт найден, но поле system пустое.
var ErrEmpty = errors.New("prompt is empty")
