package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Допустимые режимы цвета.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// AppConfig - корневая структура конфигурации.
// Она зеркалит структуру config.yaml.
type AppConfig struct {
	Display       DisplayConfig        `yaml:"display"`
	Prompts       PromptsConfig        `yaml:"prompts"`
	PromptSources []PromptSourceConfig `yaml:"prompt_sources"`
	Log           LogConfig            `yaml:"log"`
}

// DisplayConfig - настройки отрисовки отчёта.
type DisplayConfig struct {
	Width         int    `yaml:"width"`          // Ширина консоли в колонках
	ColorScheme   string `yaml:"color_scheme"`   // default, dark, light, dracula
	CodeTheme     string `yaml:"code_theme"`     // Тема chroma для JSON (monokai, dracula, ...)
	MarkdownStyle string `yaml:"markdown_style"` // Стиль glamour для финального ответа
	Color         string `yaml:"color"`          // auto, always, never
	ShowRaw       bool   `yaml:"show_raw"`       // Печатать сырую структуру ответа
	Pager         bool   `yaml:"pager"`          // Открывать отчёт в пейджере
}

// GetDefaults возвращает дефолтные значения для незаполненных полей.
func (c *DisplayConfig) GetDefaults() DisplayConfig {
	result := *c

	if result.Width == 0 {
		result.Width = 96
	}
	if result.ColorScheme == "" {
		result.ColorScheme = "default"
	}
	if result.CodeTheme == "" {
		result.CodeTheme = "monokai"
	}
	if result.MarkdownStyle == "" {
		result.MarkdownStyle = "dark"
	}
	if result.Color == "" {
		result.Color = ColorAuto
	}

	return result
}

// PromptsConfig - где искать YAML-переопределения промптов.
type PromptsConfig struct {
	Dir string `yaml:"dir"` // Поддерживает ${VAR}
}

// PromptSourceConfig - дополнительный источник промптов.
//
// Пример:
//
//	prompt_sources:
//	  - type: file
//	    config:
//	      base_dir: ./team-prompts
type PromptSourceConfig struct {
	Type   string            `yaml:"type"`
	Config map[string]string `yaml:"config"`
}

// LogConfig - настройки файлового логгера.
type LogConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

// Default возвращает конфигурацию, используемую когда config.yaml не найден.
func Default() *AppConfig {
	cfg := &AppConfig{
		Prompts: PromptsConfig{Dir: "./prompts"},
	}
	cfg.Display = cfg.Display.GetDefaults()
	return cfg
}

// Load читает YAML файл, подставляет ENV переменные и возвращает готовую структуру.
func Load(path string) (*AppConfig, error) {
	// 1. Проверяем существование файла
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found at: %s", path)
	}

	// 2. Читаем файл целиком
	rawBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(rawBytes)
}

// Parse разбирает содержимое config.yaml.
//
// os.ExpandEnv заменяет ${VAR} или $VAR на значение из окружения
// до разбора YAML.
func Parse(rawBytes []byte) (*AppConfig, error) {
	contentWithEnv := os.ExpandEnv(string(rawBytes))

	var cfg AppConfig
	if err := yaml.Unmarshal([]byte(contentWithEnv), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	cfg.Display = cfg.Display.GetDefaults()
	if cfg.Prompts.Dir == "" {
		cfg.Prompts.Dir = "./prompts"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate проверяет значения после подстановки дефолтов.
func (c *AppConfig) Validate() error {
	if c.Display.Width < 20 {
		return fmt.Errorf("display.width must be at least 20, got %d", c.Display.Width)
	}
	switch c.Display.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("display.color must be one of auto|always|never, got '%s'", c.Display.Color)
	}
	for i, src := range c.PromptSources {
		if src.Type == "" {
			return fmt.Errorf("prompt_sources[%d].type is required", i)
		}
	}
	return nil
}
