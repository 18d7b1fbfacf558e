// Package tui показывает готовый отчёт в полноэкранном пейджере Bubble Tea.
//
// Отчёт рендерится заранее (pkg/render), пейджер только прокручивает его,
// переносит строки под ширину окна и умеет сохранить отчёт в файл.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ilkoid/poncho-trace/pkg/tui/primitives"
	"github.com/ilkoid/poncho-trace/pkg/utils"
)

// DefaultTitle - заголовок пейджера по умолчанию.
const DefaultTitle = "traceview"

// Model - модель пейджера для Bubble Tea.
type Model struct {
	viewportMgr *primitives.ViewportManager
	keys        KeyMap
	help        help.Model
	styles      pagerStyles

	title    string
	saveDir  string
	now      func() time.Time
	showHelp bool
	ready    bool

	width  int
	height int

	notice      string
	noticeIsErr bool
}

type pagerStyles struct {
	title  lipgloss.Style
	status lipgloss.Style
	notice lipgloss.Style
	error  lipgloss.Style
}

func newPagerStyles(scheme ColorScheme) pagerStyles {
	return pagerStyles{
		title: lipgloss.NewStyle().Foreground(scheme.Title).Bold(true).
			BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).
			BorderForeground(scheme.Border),
		status: lipgloss.NewStyle().
			Background(scheme.StatusBackground).
			Foreground(scheme.StatusForeground),
		notice: lipgloss.NewStyle().Foreground(scheme.Notice),
		error:  lipgloss.NewStyle().Foreground(scheme.ErrorMessage),
	}
}

// Option - функция для кастомизации пейджера.
type Option func(*Model)

// WithTitle устанавливает заголовок пейджера.
func WithTitle(title string) Option {
	return func(m *Model) {
		if title != "" {
			m.title = title
		}
	}
}

// WithSaveDir задаёт каталог, куда сохраняется отчёт по клавише s.
func WithSaveDir(dir string) Option {
	return func(m *Model) {
		m.saveDir = dir
	}
}

// WithColorScheme выбирает цветовую схему по имени.
func WithColorScheme(name string) Option {
	return func(m *Model) {
		m.styles = newPagerStyles(GetColorScheme(name))
	}
}

// withClock подменяет часы (для тестов).
func withClock(now func() time.Time) Option {
	return func(m *Model) {
		m.now = now
	}
}

// NewModel создаёт пейджер с готовым (уже отрендеренным) отчётом.
func NewModel(content string, opts ...Option) *Model {
	m := &Model{
		viewportMgr: primitives.NewViewportManager(),
		keys:        DefaultKeyMap(),
		help:        help.New(),
		styles:      newPagerStyles(DefaultColorScheme()),
		title:       DefaultTitle,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.viewportMgr.SetContent(strings.TrimRight(content, "\n"))
	return m
}

// Init реализует tea.Model интерфейс.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update реализует tea.Model интерфейс.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)
	}

	return m, nil
}

// handleKeyPress обрабатывает нажатия клавиш.
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.viewportMgr.ScrollUp(1)

	case key.Matches(msg, m.keys.Down):
		m.viewportMgr.ScrollDown(1)

	case key.Matches(msg, m.keys.PageUp):
		m.viewportMgr.PageUp()

	case key.Matches(msg, m.keys.PageDown):
		m.viewportMgr.PageDown()

	case key.Matches(msg, m.keys.Top):
		m.viewportMgr.GotoTop()

	case key.Matches(msg, m.keys.Bottom):
		m.viewportMgr.GotoBottom()

	case key.Matches(msg, m.keys.SaveToFile):
		m.save()

	case key.Matches(msg, m.keys.ToggleHelp):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		m.layout()
	}

	return m, nil
}

// handleMouseMsg прокручивает колёсиком по 3 строки.
func (m *Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.viewportMgr.ScrollUp(3)
	case tea.MouseButtonWheelDown:
		m.viewportMgr.ScrollDown(3)
	}
	return m, nil
}

func (m *Model) save() {
	path, err := primitives.SaveReport(m.saveDir, m.viewportMgr.Content(), m.now())
	if err != nil {
		utils.Error("Report save failed", "dir", m.saveDir, "error", err)
		m.notice = fmt.Sprintf("Save failed: %v", err)
		m.noticeIsErr = true
		return
	}

	utils.Info("Report saved", "path", path)
	m.notice = "Saved: " + path
	m.noticeIsErr = false
}

// layout пересчитывает высоту viewport под заголовок, статус и help.
func (m *Model) layout() {
	if !m.ready {
		return
	}

	headerHeight := lipgloss.Height(m.renderTitle())
	footerHeight := 1 // статус-бар
	if m.showHelp {
		footerHeight += lipgloss.Height(m.help.View(m.keys))
	}

	m.viewportMgr.HandleResize(tea.WindowSizeMsg{Width: m.width, Height: m.height},
		headerHeight, footerHeight)
}

// View реализует tea.Model интерфейс.
//
// Возвращает заголовок, видимую часть отчёта, статус-бар и
// (если включен) help.
func (m *Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	parts := []string{
		m.renderTitle(),
		m.viewportMgr.View(),
		m.renderStatus(),
	}
	if m.showHelp {
		parts = append(parts, m.help.View(m.keys))
	}
	return strings.Join(parts, "\n")
}

func (m *Model) renderTitle() string {
	width, _ := m.viewportMgr.GetDimensions()
	if m.width > width {
		width = m.width
	}
	return m.styles.title.Width(width).Render(m.title)
}

func (m *Model) renderStatus() string {
	position := fmt.Sprintf(" %3.f%% ", m.viewportMgr.ScrollPercent()*100)

	hint := " ? help "
	if m.notice != "" {
		style := m.styles.notice
		if m.noticeIsErr {
			style = m.styles.error
		}
		hint = " " + style.Render(m.notice) + " "
	}

	width, _ := m.viewportMgr.GetDimensions()
	gap := width - lipgloss.Width(position) - lipgloss.Width(hint)
	if gap < 0 {
		gap = 0
	}

	return m.styles.status.Render(hint + strings.Repeat(" ", gap) + position)
}

// Notice возвращает последнее служебное сообщение ("Saved: ...").
func (m *Model) Notice() string {
	return m.notice
}
