package main

import (
	"fmt"

	"github.com/ilkoid/poncho-trace/pkg/app"
	"github.com/ilkoid/poncho-trace/pkg/config"
	"github.com/ilkoid/poncho-trace/pkg/render"
)

// loadConfig находит и загружает config.yaml.
//
// Явно указанный -config обязан существовать, найденный по умолчанию - нет.
func loadConfig(flagPath string) (*config.AppConfig, string, error) {
	finder := &app.DefaultConfigPathFinder{ConfigFlag: flagPath}
	return app.InitializeConfig(finder, flagPath != "")
}

// flagOverrides - значения флагов, перекрывающие config.yaml.
// Нулевые значения ничего не меняют.
type flagOverrides struct {
	Width   int
	Color   string
	Scheme  string
	ShowRaw bool
	Pager   bool
	Log     bool
}

// apply переносит флаги в конфигурацию и заново её валидирует.
func (o flagOverrides) apply(cfg *config.AppConfig) error {
	if o.Width != 0 {
		cfg.Display.Width = o.Width
	}
	if o.Color != "" {
		cfg.Display.Color = o.Color
	}
	if o.Scheme != "" {
		if _, ok := render.ColorSchemes[o.Scheme]; !ok {
			return fmt.Errorf("unknown color scheme '%s'", o.Scheme)
		}
		cfg.Display.ColorScheme = o.Scheme
	}
	if o.ShowRaw {
		cfg.Display.ShowRaw = true
	}
	if o.Pager {
		cfg.Display.Pager = true
	}
	if o.Log {
		cfg.Log.Enabled = true
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	return nil
}
