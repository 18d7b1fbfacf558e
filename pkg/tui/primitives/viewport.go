// Package primitives содержит строительные блоки пейджера:
// потокобезопасный viewport и сохранение отчёта в файл.
package primitives

import (
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wrap"
)

// MinWidth - минимальная ширина viewport.
const MinWidth = 20

// ViewportManager управляет viewport с потокобезопасными операциями.
//
// Хранит исходные строки без переноса: при каждом resize контент
// переносится заново под новую ширину.
type ViewportManager struct {
	viewport viewport.Model
	lines    []string // исходные строки без word-wrap
	mu       sync.RWMutex
}

// NewViewportManager создаёт пустой ViewportManager.
func NewViewportManager() *ViewportManager {
	return &ViewportManager{
		viewport: viewport.New(0, 0),
	}
}

// SetContent заменяет контент и прокручивает в начало.
func (vm *ViewportManager) SetContent(content string) {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	vm.lines = strings.Split(content, "\n")
	vm.reflow()
	vm.viewport.GotoTop()
}

// HandleResize обрабатывает изменение размера окна.
//
// Высота viewport не меньше 1, ширина не меньше MinWidth.
// Если пользователь был внизу, он остаётся внизу.
func (vm *ViewportManager) HandleResize(msg tea.WindowSizeMsg, headerHeight, footerHeight int) {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	vpHeight := msg.Height - headerHeight - footerHeight
	if vpHeight < 1 {
		vpHeight = 1
	}
	vpWidth := msg.Width
	if vpWidth < MinWidth {
		vpWidth = MinWidth
	}

	// wasAtBottom считаем ДО изменения высоты
	total := vm.viewport.TotalLineCount()
	wasAtBottom := total > 0 && vm.viewport.YOffset+vm.viewport.Height >= total

	vm.viewport.Height = vpHeight
	vm.viewport.Width = vpWidth
	vm.reflow()

	if wasAtBottom {
		vm.viewport.GotoBottom()
		return
	}

	maxOffset := vm.viewport.TotalLineCount() - vm.viewport.Height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if vm.viewport.YOffset > maxOffset {
		vm.viewport.SetYOffset(maxOffset)
	}
}

// reflow переносит исходные строки под текущую ширину.
// Вызывается под vm.mu.
func (vm *ViewportManager) reflow() {
	width := vm.viewport.Width
	if width <= 0 {
		vm.viewport.SetContent(strings.Join(vm.lines, "\n"))
		return
	}

	wrapped := make([]string, 0, len(vm.lines))
	for _, line := range vm.lines {
		wrapped = append(wrapped, strings.Split(wrap.String(line, width), "\n")...)
	}
	vm.viewport.SetContent(strings.Join(wrapped, "\n"))
}

// Content возвращает исходные строки (без переноса).
func (vm *ViewportManager) Content() []string {
	vm.mu.RLock()
	defer vm.mu.RUnlock()

	out := make([]string, len(vm.lines))
	copy(out, vm.lines)
	return out
}

// View возвращает видимую часть контента.
func (vm *ViewportManager) View() string {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.viewport.View()
}

// ScrollUp прокручивает вверх на n строк.
func (vm *ViewportManager) ScrollUp(n int) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.viewport.LineUp(n)
}

// ScrollDown прокручивает вниз на n строк.
func (vm *ViewportManager) ScrollDown(n int) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.viewport.LineDown(n)
}

// PageUp прокручивает вверх на высоту viewport.
func (vm *ViewportManager) PageUp() {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.viewport.LineUp(vm.viewport.Height)
}

// PageDown прокручивает вниз на высоту viewport.
func (vm *ViewportManager) PageDown() {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.viewport.LineDown(vm.viewport.Height)
}

// GotoTop прокручивает в начало.
func (vm *ViewportManager) GotoTop() {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.viewport.GotoTop()
}

// GotoBottom прокручивает в конец.
func (vm *ViewportManager) GotoBottom() {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.viewport.GotoBottom()
}

// YOffset возвращает текущее смещение прокрутки.
func (vm *ViewportManager) YOffset() int {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.viewport.YOffset
}

// TotalLineCount возвращает число строк после переноса.
func (vm *ViewportManager) TotalLineCount() int {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.viewport.TotalLineCount()
}

// ScrollPercent возвращает позицию прокрутки от 0 до 1.
func (vm *ViewportManager) ScrollPercent() float64 {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.viewport.ScrollPercent()
}

// GetDimensions возвращает текущие размеры viewport.
func (vm *ViewportManager) GetDimensions() (width, height int) {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.viewport.Width, vm.viewport.Height
}
