package tui

import "github.com/charmbracelet/lipgloss"

// ColorScheme определяет цвета служебных элементов пейджера.
//
// Сам отчёт уже раскрашен рендерером, здесь только рамка вокруг него.
type ColorScheme struct {
	StatusBackground lipgloss.Color // Фон статус-бара
	StatusForeground lipgloss.Color // Текст в статус-баре
	Title            lipgloss.Color // Заголовок пейджера
	Notice           lipgloss.Color // Сообщения "Saved: ..."
	ErrorMessage     lipgloss.Color // Ошибки
	Border           lipgloss.Color // Разделители
}

// ColorSchemes предоставляет предустановленные цветовые схемы.
//
// Имена совпадают со схемами рендерера, так что одна настройка
// display.color_scheme управляет обоими.
var ColorSchemes = map[string]ColorScheme{
	"default": {
		StatusBackground: lipgloss.Color("235"),
		StatusForeground: lipgloss.Color("252"),
		Title:            lipgloss.Color("86"),
		Notice:           lipgloss.Color("242"),
		ErrorMessage:     lipgloss.Color("196"),
		Border:           lipgloss.Color("240"),
	},
	"dark": {
		StatusBackground: lipgloss.Color("0"),
		StatusForeground: lipgloss.Color("15"),
		Title:            lipgloss.Color("14"),
		Notice:           lipgloss.Color("8"),
		ErrorMessage:     lipgloss.Color("9"),
		Border:           lipgloss.Color("4"),
	},
	"light": {
		StatusBackground: lipgloss.Color("255"),
		StatusForeground: lipgloss.Color("0"),
		Title:            lipgloss.Color("31"),
		Notice:           lipgloss.Color("8"),
		ErrorMessage:     lipgloss.Color("1"),
		Border:           lipgloss.Color("8"),
	},
	"dracula": {
		StatusBackground: lipgloss.Color("#282a36"),
		StatusForeground: lipgloss.Color("#f8f8f2"),
		Title:            lipgloss.Color("#8be9fd"),
		Notice:           lipgloss.Color("#6272a4"),
		ErrorMessage:     lipgloss.Color("#ff5555"),
		Border:           lipgloss.Color("#44475a"),
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
