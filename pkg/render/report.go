// Package render печатает трейс выполнения агента в терминал:
// панели, деревья вызовов инструментов, финальный ответ и raw dump.
//
// Рендерер ничего не возвращает и не падает: всё, что не удалось красиво
// отформатировать, печатается как обычный текст.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/davecgh/go-spew/spew"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/ilkoid/poncho-trace/pkg/trace"
	"github.com/ilkoid/poncho-trace/pkg/utils"
)

// ColorMode - когда печатать ANSI цвета.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // только если вывод - терминал
	ColorAlways ColorMode = "always" // всегда (например, для пейджера)
	ColorNever  ColorMode = "never"  // никогда
)

// DefaultTitle - заголовок отчёта по умолчанию.
const DefaultTitle = "Agent Trace Report"

// Options настраивает Renderer.
type Options struct {
	Title         string
	Width         int
	Scheme        ColorScheme
	CodeTheme     string // тема chroma для JSON
	MarkdownStyle string // стиль glamour для финального ответа
	Color         ColorMode
}

// DefaultOptions возвращает настройки по умолчанию: ширина 96 колонок,
// схема default, тема monokai.
func DefaultOptions() Options {
	return Options{
		Title:         DefaultTitle,
		Width:         96,
		Scheme:        DefaultColorScheme(),
		CodeTheme:     "monokai",
		MarkdownStyle: "dark",
		Color:         ColorAuto,
	}
}

// Renderer печатает отчёты в io.Writer.
//
// Не потокобезопасен: один Renderer - один поток вывода.
type Renderer struct {
	out  io.Writer
	lg   *lipgloss.Renderer
	opts Options
	st   styles
	md   *glamour.TermRenderer
}

// New создаёт Renderer, пишущий в w.
func New(w io.Writer, opts Options) *Renderer {
	defaults := DefaultOptions()
	if opts.Title == "" {
		opts.Title = defaults.Title
	}
	if opts.Width <= 0 {
		opts.Width = defaults.Width
	}
	if opts.Scheme == (ColorScheme{}) {
		opts.Scheme = defaults.Scheme
	}
	if opts.CodeTheme == "" {
		opts.CodeTheme = defaults.CodeTheme
	}
	if opts.MarkdownStyle == "" {
		opts.MarkdownStyle = defaults.MarkdownStyle
	}
	if opts.Color == "" {
		opts.Color = defaults.Color
	}

	lg := lipgloss.NewRenderer(w)
	switch opts.Color {
	case ColorNever:
		lg.SetColorProfile(termenv.Ascii)
	case ColorAlways:
		if lg.ColorProfile() == termenv.Ascii {
			lg.SetColorProfile(termenv.ANSI256)
		}
	default:
		if !isTerminal(w) {
			lg.SetColorProfile(termenv.Ascii)
		}
	}

	return &Renderer{
		out:  w,
		lg:   lg,
		opts: opts,
		st:   newStyles(lg, opts.Scheme),
	}
}

// Options возвращает итоговые настройки (с подставленными дефолтами).
func (r *Renderer) Options() Options {
	return r.opts
}

// Render печатает полный отчёт по ответу агента.
//
// Порядок: заголовок, ввод, история инструментов, финальный ответ,
// опционально сырая структура ответа.
func (r *Renderer) Render(rec *trace.Record, showRaw bool) {
	if rec == nil {
		rec = trace.FromMap(nil)
	}
	utils.Debug("Rendering trace report",
		"steps", len(rec.Steps), "messages", len(rec.Messages), "show_raw", showRaw)

	r.PrintHeader(r.opts.Title)

	// 1. Ввод
	switch {
	case rec.Has(trace.KeyInput):
		r.PrintInput(rec.Input)
	case rec.Has(trace.KeyMessages) && len(rec.Messages) > 0:
		r.PrintInput(rec.Messages[0].Content)
	}

	// 2. Промежуточная работа: intermediate_steps приоритетнее messages
	switch {
	case rec.Has(trace.KeyIntermediateSteps):
		r.PrintIntermediateSteps(rec.Steps)
	case rec.Has(trace.KeyMessages):
		r.PrintMessageHistory(rec.Messages)
	default:
		r.println(r.st.dim.Render("No tool execution history found."))
		r.println("")
	}

	// 3. Финальный ответ
	switch {
	case rec.Has(trace.KeyOutput):
		r.PrintFinalAnswer(rec.Output)
	case rec.Has(trace.KeyMessages) && len(rec.Messages) > 0:
		r.PrintFinalAnswer(rec.Messages[len(rec.Messages)-1])
	}

	// 4. Debug
	if showRaw {
		r.PrintRaw(rec.Raw)
	}
}

// PrintHeader печатает заголовок в жирной рамке (не растянутой).
func (r *Renderer) PrintHeader(text string) {
	r.println("")
	r.println(panel{
		body:   text,
		border: lipgloss.ThickBorder(),
		style:  r.st.header,
		width:  r.opts.Width,
	}.render())
}

// PrintInput печатает панель START с вводом пользователя.
func (r *Renderer) PrintInput(input any) {
	body := r.st.bold.Render("User Input:") + "\n" + inputContent(input)

	r.println(panel{
		body:       body,
		title:      "START",
		titleAlign: lipgloss.Left,
		border:     lipgloss.RoundedBorder(),
		style:      r.st.input,
		expand:     true,
		width:      r.opts.Width,
	}.render())
}

// PrintIntermediateSteps печатает шаги legacy-исполнителя.
//
// Для каждого шага: дерево "Step N: tool" с входом, первой строкой лога
// (если она не упоминает инструмент) и наблюдением.
func (r *Renderer) PrintIntermediateSteps(steps []trace.Step) {
	if len(steps) == 0 {
		return
	}

	r.println("")
	r.println(r.st.section.Render("🛠️  Tool Execution History (Executor):"))

	contentWidth := r.opts.Width - treeIndent
	for i, step := range steps {
		toolName := step.Action.Tool
		if toolName == "" {
			toolName = trace.UnknownTool
		}

		t := r.newTree(r.st.bold.Render(fmt.Sprintf("Step %d: %s", i+1, toolName)))
		t.Child(r.newTree(r.st.inputLabel.Render("Input:")).
			Child(r.renderJSONOrText(step.Action.ToolInput, contentWidth)))

		if step.Action.Log != "" {
			cleanLog := utils.FirstLine(step.Action.Log)
			if !strings.Contains(cleanLog, toolName) {
				t.Child(r.st.logLine.Render("Log: " + cleanLog))
			}
		}

		t.Child(r.newTree(r.st.outputLabel.Render("Observation:")).
			Child(r.renderJSONOrText(step.Observation, contentWidth)))

		r.println(t.String())
		r.println("")
	}
}

// PrintMessageHistory печатает вызовы инструментов и их результаты,
// извлечённые из истории сообщений.
func (r *Renderer) PrintMessageHistory(messages []trace.Message) {
	events := trace.ToolEvents(messages)
	if len(events) == 0 {
		return
	}

	r.println("")
	r.println(r.st.section.Render("🔗 Message History:"))

	contentWidth := r.opts.Width - treeIndent
	for _, ev := range events {
		id := r.st.dim.Render(fmt.Sprintf("(%s)", ev.ID))

		switch ev.Type {
		case trace.EventCall:
			t := r.newTree(r.st.bold.Render("Invoke: "+ev.Name) + " " + id)
			t.Child(r.newTree(r.st.inputLabel.Render("Args:")).
				Child(r.renderJSONOrText(ev.Args, contentWidth)))
			r.println(t.String())

		case trace.EventResult:
			t := r.newTree(r.st.bold.Render("Result") + " " + id)
			t.Child(r.newTree(r.st.outputLabel.Render("Output:")).
				Child(r.renderJSONOrText(ev.Content, contentWidth)))
			r.println(t.String())
			r.println("")
		}
	}
}

// PrintFinalAnswer печатает финальный ответ и закрывающую панель END.
//
// Строки рендерятся как Markdown, map/slice - как JSON,
// остальное - строковым представлением.
func (r *Renderer) PrintFinalAnswer(output any) {
	r.println(panel{
		body:   r.st.bold.Render("🤖 Final Answer:"),
		border: lipgloss.HiddenBorder(),
		style:  r.st.final,
		expand: true,
		width:  r.opts.Width,
	}.render())

	content := messageContent(output)
	switch c := content.(type) {
	case string:
		r.println(r.renderMarkdown(c))
	default:
		r.println(r.renderJSONOrText(c, r.opts.Width))
	}

	r.println(panel{
		body:       "End of Interaction",
		title:      "END",
		titleAlign: lipgloss.Right,
		border:     lipgloss.RoundedBorder(),
		style:      r.st.dim,
		expand:     true,
		width:      r.opts.Width,
	}.render())
}

// PrintRaw печатает сырую структуру ответа через go-spew.
func (r *Renderer) PrintRaw(raw map[string]any) {
	size := "unknown size"
	if data, err := utils.MarshalIndent(raw); err == nil {
		size = humanize.Bytes(uint64(len(data)))
	}

	r.println("")
	r.println(r.st.raw.Render(fmt.Sprintf("🔍 Raw Response Structure (%s):", size)))

	dumper := spew.ConfigState{
		Indent:                  "  ",
		SortKeys:                true,
		DisablePointerAddresses: true,
		DisableCapacities:       true,
	}
	r.println(wrapText(strings.TrimRight(dumper.Sdump(raw), "\n"), r.opts.Width))
}

func (r *Renderer) newTree(root string) *tree.Tree {
	return tree.Root(root).
		Enumerator(tree.DefaultEnumerator).
		EnumeratorStyle(r.st.guide)
}

func (r *Renderer) println(s string) {
	fmt.Fprintln(r.out, s)
}

// isTerminal проверяет, что w - файл, подключённый к терминалу.
func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
