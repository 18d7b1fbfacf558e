package prompts

// PromptSource - интерфейс для загрузки промптов из различных источников.
//
// Реализации: YAML файлы и встроенные Go defaults.
type PromptSource interface {
	// Load загружает промпт по идентификатору.
	// Возвращает ошибку, если источник не содержит промпт.
	Load(promptID string) (*PromptFile, error)
}
