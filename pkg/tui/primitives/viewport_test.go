package primitives

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numberedLines(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("Line %d", i+1)
	}
	return strings.Join(lines, "\n")
}

func TestViewportManager_SetContent(t *testing.T) {
	vm := NewViewportManager()
	vm.SetContent("Line 1\nLine 2")

	assert.Equal(t, []string{"Line 1", "Line 2"}, vm.Content())
	assert.Equal(t, 2, vm.TotalLineCount())
	assert.Equal(t, 0, vm.YOffset())
}

func TestViewportManager_MinHeightEnforcement(t *testing.T) {
	vm := NewViewportManager()
	vm.SetContent("Test content")

	// header + footer больше высоты окна
	vm.HandleResize(tea.WindowSizeMsg{Width: 80, Height: 5}, 3, 3)

	width, height := vm.GetDimensions()
	assert.Equal(t, 80, width)
	assert.Equal(t, 1, height, "Height should be minimum 1, not 0 or negative")
}

func TestViewportManager_MinWidthEnforcement(t *testing.T) {
	vm := NewViewportManager()
	vm.SetContent("Test content")

	vm.HandleResize(tea.WindowSizeMsg{Width: 10, Height: 20}, 3, 2)

	width, _ := vm.GetDimensions()
	assert.Equal(t, MinWidth, width)
}

func TestViewportManager_ReflowOnResize(t *testing.T) {
	vm := NewViewportManager()
	vm.SetContent(strings.Repeat("x", 50))

	vm.HandleResize(tea.WindowSizeMsg{Width: 20, Height: 20}, 1, 1)
	assert.Equal(t, 3, vm.TotalLineCount(), "50 chars at width 20 wrap into 3 lines")

	vm.HandleResize(tea.WindowSizeMsg{Width: 80, Height: 20}, 1, 1)
	assert.Equal(t, 1, vm.TotalLineCount())

	assert.Len(t, vm.Content(), 1, "original lines are kept unwrapped")
}

func TestViewportManager_StaysAtBottomOnResize(t *testing.T) {
	vm := NewViewportManager()
	vm.SetContent(numberedLines(30))
	vm.HandleResize(tea.WindowSizeMsg{Width: 80, Height: 10}, 3, 2) // vpHeight = 5

	vm.GotoBottom()
	require.Equal(t, 25, vm.YOffset())

	vm.HandleResize(tea.WindowSizeMsg{Width: 80, Height: 13}, 3, 2) // vpHeight = 8

	_, height := vm.GetDimensions()
	assert.Equal(t, 8, height)
	assert.Equal(t, vm.TotalLineCount()-height, vm.YOffset())
}

func TestViewportManager_ClampOffsetOnResize(t *testing.T) {
	vm := NewViewportManager()
	vm.SetContent(numberedLines(30))
	vm.HandleResize(tea.WindowSizeMsg{Width: 80, Height: 10}, 3, 2) // vpHeight = 5

	vm.GotoBottom()
	vm.ScrollUp(5)
	require.Equal(t, 20, vm.YOffset())

	vm.HandleResize(tea.WindowSizeMsg{Width: 80, Height: 30}, 3, 2) // vpHeight = 25

	assert.Equal(t, 5, vm.YOffset(), "offset is clamped to total - height")
}

func TestViewportManager_ScrollOperations(t *testing.T) {
	vm := NewViewportManager()
	vm.SetContent(numberedLines(30))
	vm.HandleResize(tea.WindowSizeMsg{Width: 80, Height: 10}, 3, 2) // vpHeight = 5

	vm.PageDown()
	assert.Equal(t, 5, vm.YOffset())

	vm.ScrollDown(2)
	assert.Equal(t, 7, vm.YOffset())

	vm.ScrollUp(1)
	assert.Equal(t, 6, vm.YOffset())

	vm.PageUp()
	assert.Equal(t, 1, vm.YOffset())

	vm.GotoBottom()
	assert.Equal(t, 25, vm.YOffset())
	assert.InDelta(t, 1.0, vm.ScrollPercent(), 0.001)

	vm.GotoTop()
	assert.Equal(t, 0, vm.YOffset())
	assert.Contains(t, vm.View(), "Line 1")
	assert.NotContains(t, vm.View(), "Line 6")
}

func TestViewportManager_SetContentResetsScroll(t *testing.T) {
	vm := NewViewportManager()
	vm.SetContent(numberedLines(30))
	vm.HandleResize(tea.WindowSizeMsg{Width: 80, Height: 10}, 3, 2)
	vm.GotoBottom()

	vm.SetContent(numberedLines(40))

	assert.Equal(t, 0, vm.YOffset())
	assert.Equal(t, 40, vm.TotalLineCount())
}

func TestViewportManager_ThreadSafety(t *testing.T) {
	vm := NewViewportManager()
	vm.SetContent(numberedLines(50))

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			vm.HandleResize(tea.WindowSizeMsg{Width: 40 + i%40, Height: 20 + i%10}, 3, 2)
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			vm.ScrollDown(1)
			vm.ScrollUp(1)
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			_ = vm.View()
			_ = vm.Content()
			_, _ = vm.GetDimensions()
		}
	}()

	wg.Wait()

	assert.Len(t, vm.Content(), 50)
	assert.Greater(t, vm.TotalLineCount(), 0)
}
