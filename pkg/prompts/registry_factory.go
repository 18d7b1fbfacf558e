package prompts

import (
	"errors"
	"fmt"

	"github.com/ilkoid/poncho-trace/pkg/config"
	"github.com/ilkoid/poncho-trace/pkg/prompts/sources"
)

// PubMedAgentPromptID - идентификатор промпта биомедицинского поискового агента.
const PubMedAgentPromptID = sources.PubMedAgentPromptID

// PubMedAgentPrompt - встроенный текст промпта PubMed-агента.
//
// Потребляется внешним агентным рантаймом как есть.
const PubMedAgentPrompt = sources.PubMedAgentPrompt

// CreateSourceRegistry создаёт реестр источников промптов из конфигурации.
//
// Fallback Chain:
// 1. File source из cfg.Prompts.Dir
// 2. Дополнительные источники из prompt_sources (в порядке объявления)
// 3. Default source (Go defaults) - всегда последним
func CreateSourceRegistry(cfg *config.AppConfig) (*SourceRegistry, error) {
	registry := NewSourceRegistry()

	if cfg.Prompts.Dir != "" {
		registry.AddSource(&fileSourceAdapter{src: sources.NewFileSource(cfg.Prompts.Dir)})
	}

	for _, sourceCfg := range cfg.PromptSources {
		source, err := createSource(sourceCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create prompt source type '%s': %w", sourceCfg.Type, err)
		}
		registry.AddSource(source)
	}

	defaultSrc := sources.NewDefaultSource()
	defaultSrc.PopulateDefaults()
	registry.AddSource(&defaultSourceAdapter{src: defaultSrc})

	return registry, nil
}

// BuiltinPromptIDs возвращает идентификаторы промптов, доступных без YAML-файлов.
func BuiltinPromptIDs() []string {
	defaultSrc := sources.NewDefaultSource()
	defaultSrc.PopulateDefaults()
	return defaultSrc.IDs()
}

// createSource создаёт источник промптов по типу.
func createSource(cfg config.PromptSourceConfig) (PromptSource, error) {
	switch cfg.Type {
	case "file":
		baseDir := cfg.Config["base_dir"]
		if baseDir == "" {
			return nil, fmt.Errorf("file source requires 'base_dir' config")
		}
		return &fileSourceAdapter{src: sources.NewFileSource(baseDir)}, nil

	default:
		return nil, fmt.Errorf("unknown prompt source type: '%s'", cfg.Type)
	}
}

// === Adapters: sources.PromptData → prompts.PromptFile ===

type fileSourceAdapter struct {
	src *sources.FileSource
}

func (a *fileSourceAdapter) Load(promptID string) (*PromptFile, error) {
	data, err := a.src.Load(promptID)
	if err != nil {
		if errors.Is(err, sources.ErrNoFile) {
			return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
		}
		return nil, err
	}
	return &PromptFile{System: data.System, Metadata: data.Metadata}, nil
}

type defaultSourceAdapter struct {
	src *sources.DefaultSource
}

func (a *defaultSourceAdapter) Load(promptID string) (*PromptFile, error) {
	data, err := a.src.Load(promptID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return &PromptFile{System: data.System, Metadata: data.Metadata}, nil
}

// LoadPrompt загружает системный промпт по идентификатору через SourceRegistry.
//
// Возвращает текст промпта или ошибку если все источники failed.
func LoadPrompt(cfg *config.AppConfig, promptID string) (string, error) {
	registry, err := CreateSourceRegistry(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to create source registry: %w", err)
	}

	return registry.System(promptID)
}

// LoadPubMedAgentPrompt загружает промпт PubMed-агента.
//
// YAML-файл <prompts_dir>/pubmed_agent.yaml имеет приоритет,
// встроенный текст - резерв.
func LoadPubMedAgentPrompt(cfg *config.AppConfig) (string, error) {
	return LoadPrompt(cfg, PubMedAgentPromptID)
}
