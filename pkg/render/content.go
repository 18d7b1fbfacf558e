package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
	"github.com/muesli/termenv"

	"github.com/ilkoid/poncho-trace/pkg/trace"
	"github.com/ilkoid/poncho-trace/pkg/utils"
)

// treeIndent - сколько колонок съедают ветки дерева до содержимого.
const treeIndent = 8

// renderJSONOrText показывает значение как подсвеченный JSON, если это
// структура, иначе как строку.
//
// Вложенные JSON-строки сначала разворачиваются через utils.NormalizeJSON.
func (r *Renderer) renderJSONOrText(data any, width int) string {
	clean := utils.NormalizeJSON(data)

	switch clean.(type) {
	case map[string]any, []any:
		text, err := utils.MarshalIndent(clean)
		if err != nil {
			utils.Debug("JSON marshal failed, falling back to text", "error", err)
			break
		}
		return wrapText(r.highlightJSON(text), width)
	}

	return wrapText(plainText(clean), width)
}

// highlightJSON подсвечивает JSON через chroma. Без цвета возвращает текст как есть.
func (r *Renderer) highlightJSON(text string) string {
	formatter := chromaFormatter(r.lg.ColorProfile())
	if formatter == "" {
		return text
	}

	var buf bytes.Buffer
	if err := quick.Highlight(&buf, text, "json", formatter, r.opts.CodeTheme); err != nil {
		utils.Debug("JSON highlight failed", "theme", r.opts.CodeTheme, "error", err)
		return text
	}
	return strings.TrimRight(buf.String(), "\n")
}

// renderMarkdown рендерит финальный ответ через glamour.
//
// Ответ, который после снятия ```json обёртки оказывается JSON объектом
// или массивом, показывается как JSON: PubMed-агент обязан возвращать
// сырой JSON инструмента.
func (r *Renderer) renderMarkdown(text string) string {
	if cleaned := utils.CleanJsonBlock(text); utils.LooksLikeJSON(cleaned) {
		parsed := utils.NormalizeJSON(cleaned)
		if _, stillText := parsed.(string); !stillText {
			return r.renderJSONOrText(parsed, r.opts.Width)
		}
	}

	md, err := r.markdownRenderer()
	if err != nil {
		utils.Warn("Markdown renderer unavailable", "error", err)
		return wrapText(text, r.opts.Width)
	}

	out, err := md.Render(text)
	if err != nil {
		utils.Debug("Markdown render failed", "error", err)
		return wrapText(text, r.opts.Width)
	}
	return strings.Trim(out, "\n")
}

func (r *Renderer) markdownRenderer() (*glamour.TermRenderer, error) {
	if r.md != nil {
		return r.md, nil
	}

	style := r.opts.MarkdownStyle
	if r.lg.ColorProfile() == termenv.Ascii {
		style = "notty"
	}

	md, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(r.opts.Width),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	r.md = md
	return md, nil
}

// messageContent достаёт content из сообщения или message-подобного map.
func messageContent(v any) any {
	switch m := v.(type) {
	case trace.Message:
		return m.Content
	case *trace.Message:
		if m != nil {
			return m.Content
		}
	case map[string]any:
		content, hasContent := m["content"]
		_, hasType := m["type"]
		_, hasRole := m["role"]
		if hasContent && (hasType || hasRole) {
			return content
		}
	}
	return v
}

// inputContent - текст для панели START.
//
// Для map берётся "input", затем "query", иначе весь map как JSON.
func inputContent(v any) string {
	m, ok := v.(map[string]any)
	if !ok {
		if _, isText := v.(string); isText {
			return plainText(v)
		}
		// map[string]string и прочие map из Go-кода
		if m, ok = utils.NormalizeJSON(v).(map[string]any); !ok {
			return plainText(v)
		}
	}

	for _, key := range []string{"input", "query"} {
		if s := plainText(m[key]); m[key] != nil && s != "" {
			return s
		}
	}

	text, err := utils.MarshalIndent(m)
	if err != nil {
		return plainText(m)
	}
	return text
}

func plainText(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}

// wrapText переносит по словам, а слишком длинные слова режет жёстко.
// Оба шага учитывают ANSI-последовательности.
func wrapText(s string, width int) string {
	if width < 1 {
		return s
	}
	return wrap.String(wordwrap.String(s, width), width)
}

// chromaFormatter подбирает форматтер chroma под цветовой профиль терминала.
func chromaFormatter(p termenv.Profile) string {
	switch p {
	case termenv.TrueColor:
		return "terminal16m"
	case termenv.ANSI256:
		return "terminal256"
	case termenv.ANSI:
		return "terminal16"
	}
	return ""
}
