package render

import (
	"os"
	"sync"

	"github.com/ilkoid/poncho-trace/pkg/trace"
)

var (
	defaultMu       sync.Mutex
	defaultRenderer *Renderer
)

// SetDefault заменяет процесс-глобальный рендерер, используемый Visualize.
//
// nil возвращает рендерер по умолчанию (stdout, DefaultOptions).
func SetDefault(r *Renderer) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultRenderer = r
}

// Visualize печатает отчёт по ответу агента в stdout.
//
// Главная точка входа библиотеки:
//
//	result := map[string]any{"input": "...", "messages": msgs}
//	render.Visualize(result, false)
func Visualize(response map[string]any, showRaw bool) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultRenderer == nil {
		defaultRenderer = New(os.Stdout, DefaultOptions())
	}
	defaultRenderer.Render(trace.FromMap(response), showRaw)
}
