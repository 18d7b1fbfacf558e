package render

import "github.com/charmbracelet/lipgloss"

// ColorScheme определяет цвета для элементов отчёта.
//
// Каждое поле - это lipgloss.Color (может быть hex, ANSI, или named color).
type ColorScheme struct {
	Header      lipgloss.Color // Панель заголовка отчёта
	Input       lipgloss.Color // Панель START с вводом пользователя
	Section     lipgloss.Color // Заголовки секций истории
	InputLabel  lipgloss.Color // "Input:" / "Args:"
	OutputLabel lipgloss.Color // "Observation:" / "Output:"
	FinalAnswer lipgloss.Color // Панель финального ответа
	Dim         lipgloss.Color // Служебные строки, id вызовов, END
	Raw         lipgloss.Color // Заголовок raw dump
	Guide       lipgloss.Color // Линии деревьев
}

// ColorSchemes предоставляет предустановленные цветовые схемы.
var ColorSchemes = map[string]ColorScheme{
	"default": {
		Header:      lipgloss.Color("6"),
		Input:       lipgloss.Color("2"),
		Section:     lipgloss.Color("3"),
		InputLabel:  lipgloss.Color("6"),
		OutputLabel: lipgloss.Color("2"),
		FinalAnswer: lipgloss.Color("5"),
		Dim:         lipgloss.Color("242"),
		Raw:         lipgloss.Color("1"),
		Guide:       lipgloss.Color("240"),
	},
	"dark": {
		Header:      lipgloss.Color("14"),
		Input:       lipgloss.Color("10"),
		Section:     lipgloss.Color("11"),
		InputLabel:  lipgloss.Color("14"),
		OutputLabel: lipgloss.Color("10"),
		FinalAnswer: lipgloss.Color("13"),
		Dim:         lipgloss.Color("8"),
		Raw:         lipgloss.Color("9"),
		Guide:       lipgloss.Color("8"),
	},
	"light": {
		Header:      lipgloss.Color("31"),
		Input:       lipgloss.Color("28"),
		Section:     lipgloss.Color("130"),
		InputLabel:  lipgloss.Color("31"),
		OutputLabel: lipgloss.Color("28"),
		FinalAnswer: lipgloss.Color("90"),
		Dim:         lipgloss.Color("245"),
		Raw:         lipgloss.Color("1"),
		Guide:       lipgloss.Color("250"),
	},
	"dracula": {
		Header:      lipgloss.Color("#8be9fd"),
		Input:       lipgloss.Color("#50fa7b"),
		Section:     lipgloss.Color("#f1fa8c"),
		InputLabel:  lipgloss.Color("#8be9fd"),
		OutputLabel: lipgloss.Color("#50fa7b"),
		FinalAnswer: lipgloss.Color("#ff79c6"),
		Dim:         lipgloss.Color("#6272a4"),
		Raw:         lipgloss.Color("#ff5555"),
		Guide:       lipgloss.Color("#44475a"),
	},
}

// DefaultColorScheme возвращает схему по умолчанию.
func DefaultColorScheme() ColorScheme {
	return ColorSchemes["default"]
}

// GetColorScheme возвращает цветовую схему по имени.
//
// Если схема не найдена, возвращает default.
func GetColorScheme(name string) ColorScheme {
	if scheme, ok := ColorSchemes[name]; ok {
		return scheme
	}
	return DefaultColorScheme()
}

// styles - готовые стили отчёта, привязанные к lipgloss.Renderer.
type styles struct {
	header      lipgloss.Style
	input       lipgloss.Style
	section     lipgloss.Style
	bold        lipgloss.Style
	inputLabel  lipgloss.Style
	outputLabel lipgloss.Style
	final       lipgloss.Style
	dim         lipgloss.Style
	logLine     lipgloss.Style
	raw         lipgloss.Style
	guide       lipgloss.Style
}

func newStyles(r *lipgloss.Renderer, scheme ColorScheme) styles {
	return styles{
		header:      r.NewStyle().Foreground(scheme.Header).Bold(true),
		input:       r.NewStyle().Foreground(scheme.Input),
		section:     r.NewStyle().Foreground(scheme.Section).Bold(true),
		bold:        r.NewStyle().Bold(true),
		inputLabel:  r.NewStyle().Foreground(scheme.InputLabel),
		outputLabel: r.NewStyle().Foreground(scheme.OutputLabel),
		final:       r.NewStyle().Foreground(scheme.FinalAnswer),
		dim:         r.NewStyle().Foreground(scheme.Dim),
		logLine:     r.NewStyle().Foreground(scheme.Dim).Italic(true),
		raw:         r.NewStyle().Foreground(scheme.Raw).Bold(true),
		guide:       r.NewStyle().Foreground(scheme.Guide).PaddingRight(1),
	}
}
