// Package app собирает компоненты traceview из конфигурации:
// поиск config.yaml, логгер, реестр промптов, настройки рендерера и
// чтение трейса из файла или stdin.
//
// Используется CLI, но не зависит от флагов: всё передаётся явно.
package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ilkoid/poncho-trace/pkg/config"
	"github.com/ilkoid/poncho-trace/pkg/prompts"
	"github.com/ilkoid/poncho-trace/pkg/render"
	"github.com/ilkoid/poncho-trace/pkg/trace"
	"github.com/ilkoid/poncho-trace/pkg/utils"
)

// DefaultConfigName - имя файла конфигурации по умолчанию.
const DefaultConfigName = "config.yaml"

// Components содержит всё, что нужно для отрисовки отчёта.
type Components struct {
	Config        *config.AppConfig
	Prompts       *prompts.SourceRegistry
	RenderOptions render.Options
}

// ConfigPathFinder определяет стратегию поиска пути к config.yaml.
//
// По умолчанию используется DefaultConfigPathFinder, но можно
// реализовать свою стратегию для тестов.
type ConfigPathFinder interface {
	FindConfigPath() string
}

// DefaultConfigPathFinder реализует стандартную стратегию поиска config.yaml.
//
// Порядок поиска:
// 1. Флаг -config (если указан)
// 2. Текущая директория (./config.yaml)
// 3. Директория бинарника
type DefaultConfigPathFinder struct {
	// ConfigFlag - значение флага -config, если указан
	ConfigFlag string
}

// FindConfigPath находит путь к config.yaml.
//
// Если файл нигде не найден, возвращает ./config.yaml (даже если не существует).
func (f *DefaultConfigPathFinder) FindConfigPath() string {
	// 1. Флаг имеет приоритет
	if f.ConfigFlag != "" {
		return resolveAbsPath(f.ConfigFlag)
	}

	// 2. Текущая директория
	if _, err := os.Stat(DefaultConfigName); err == nil {
		return resolveAbsPath(DefaultConfigName)
	}

	// 3. Директория бинарника
	if execPath, err := os.Executable(); err == nil {
		cfgPath := filepath.Join(filepath.Dir(execPath), DefaultConfigName)
		if _, err := os.Stat(cfgPath); err == nil {
			return cfgPath
		}
	}

	return resolveAbsPath(DefaultConfigName)
}

func resolveAbsPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

// InitializeConfig находит и загружает конфигурацию.
//
// required=false: отсутствующий файл не ошибка, возвращаются встроенные
// дефолты и пустой путь. required=true (явный -config): файл обязан быть.
func InitializeConfig(finder ConfigPathFinder, required bool) (*config.AppConfig, string, error) {
	cfgPath := finder.FindConfigPath()

	if _, err := os.Stat(cfgPath); os.IsNotExist(err) && !required {
		return config.Default(), "", nil
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config from %s: %w", cfgPath, err)
	}

	return cfg, cfgPath, nil
}

// Initialize создаёт компоненты по конфигурации.
//
// Если log.enabled, поднимает файловый логгер в log.dir.
func Initialize(cfg *config.AppConfig) (*Components, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	if cfg.Log.Enabled {
		if err := utils.InitLogger(cfg.Log.Dir); err != nil {
			return nil, fmt.Errorf("failed to init logger: %w", err)
		}
	}
	utils.Info("Initializing components",
		"width", cfg.Display.Width, "scheme", cfg.Display.ColorScheme, "color", cfg.Display.Color)

	registry, err := prompts.CreateSourceRegistry(cfg)
	if err != nil {
		utils.Error("Prompt registry creation failed", "error", err)
		return nil, fmt.Errorf("failed to create prompt registry: %w", err)
	}

	return &Components{
		Config:        cfg,
		Prompts:       registry,
		RenderOptions: RenderOptions(cfg.Display),
	}, nil
}

// RenderOptions переводит display-секцию конфигурации в render.Options.
func RenderOptions(d config.DisplayConfig) render.Options {
	d = d.GetDefaults()

	opts := render.DefaultOptions()
	opts.Width = d.Width
	opts.Scheme = render.GetColorScheme(d.ColorScheme)
	opts.CodeTheme = d.CodeTheme
	opts.MarkdownStyle = d.MarkdownStyle
	opts.Color = render.ColorMode(d.Color)
	return opts
}

// inputPreviewRunes - длина начала входа в ошибке разбора.
const inputPreviewRunes = 40

// ReadRecord читает трейс из файла или stdin.
//
// Путь "" или "-" означает stdin. Второе значение - имя источника
// для заголовка пейджера.
func ReadRecord(path string, stdin io.Reader) (*trace.Record, string, error) {
	var (
		data []byte
		name string
		err  error
	)

	if path == "" || path == "-" {
		name = "stdin"
		data, err = io.ReadAll(stdin)
	} else {
		name = filepath.Base(path)
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to read %s: %w", name, err)
	}

	rec, err := trace.Parse(data)
	if err != nil {
		preview := utils.Truncate(utils.FirstLine(strings.TrimSpace(string(data))), inputPreviewRunes)
		return nil, "", fmt.Errorf("failed to parse %s (starts with %q): %w", name, preview, err)
	}

	utils.Info("Trace loaded", "source", name, "bytes", len(data),
		"steps", len(rec.Steps), "messages", len(rec.Messages))
	return rec, name, nil
}
