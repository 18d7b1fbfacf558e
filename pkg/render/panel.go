package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ilkoid/poncho-trace/pkg/utils"
)

// panel - рамка вокруг текста с опциональным заголовком в верхней границе.
//
//	╭─ START ─────────────╮
//	│ User Input:         │
//	│ find asthma papers  │
//	╰─────────────────────╯
type panel struct {
	body       string
	title      string
	titleAlign lipgloss.Position
	border     lipgloss.Border
	style      lipgloss.Style // цвет текста и рамки
	expand     bool           // растянуть на всю ширину
	width      int            // полная ширина, включая рамку
}

func (p panel) render() string {
	innerWidth := p.width - 4 // рамка + padding
	if innerWidth < 1 {
		innerWidth = 1
	}
	body := wrapText(p.body, innerWidth)

	box := p.style.
		Padding(0, 1).
		Border(p.border).
		BorderForeground(p.style.GetForeground())
	if p.expand {
		// В lipgloss v1 Width включает padding, но не рамку
		box = box.Width(p.width - 2)
	}

	if p.title == "" {
		return box.Render(body)
	}

	out := box.BorderTop(false).Render(body)
	total := lipgloss.Width(utils.FirstLine(out))
	return p.topBorder(total) + "\n" + out
}

// topBorder строит верхнюю границу с заголовком нужной ширины.
func (p panel) topBorder(total int) string {
	b := p.border
	label := " " + p.title + " "

	fill := total - lipgloss.Width(b.TopLeft) - lipgloss.Width(b.TopRight) -
		lipgloss.Width(b.Top) - lipgloss.Width(label)
	if fill < 0 {
		fill = 0
	}

	var line string
	if p.titleAlign == lipgloss.Right {
		line = b.TopLeft + strings.Repeat(b.Top, fill) + label + b.Top + b.TopRight
	} else {
		line = b.TopLeft + b.Top + label + strings.Repeat(b.Top, fill) + b.TopRight
	}

	return p.style.Render(line)
}
