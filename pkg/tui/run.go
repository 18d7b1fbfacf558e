package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ilkoid/poncho-trace/pkg/utils"
)

// Run показывает отчёт в пейджере и блокируется до выхода пользователя.
//
// Отмена ctx закрывает пейджер и не считается ошибкой.
//
// # Basic Usage
//
//	var buf bytes.Buffer
//	render.New(&buf, opts).Render(rec, false)
//	if err := tui.Run(ctx, buf.String(), tui.WithTitle("report.json")); err != nil {
//	    log.Fatal(err)
//	}
func Run(ctx context.Context, content string, opts ...Option) error {
	model := NewModel(content, opts...)

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	utils.Debug("Starting pager", "lines", len(model.viewportMgr.Content()))
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil && errors.Is(err, tea.ErrProgramKilled) {
			utils.Info("Pager stopped by context", "reason", ctx.Err())
			return nil
		}
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
