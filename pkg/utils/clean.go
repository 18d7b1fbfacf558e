// Package utils предоставляет вспомогательные функции для обработки данных.
//
// Включает нормализацию JSON-строк внутри трейсов агента, очистку ответов
// LLM от markdown-обёртки и простой файловый логгер.
package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"
	"unicode/utf8"
)

// CleanJsonBlock удаляет markdown-обёртку вокруг JSON.
//
// LLM часто возвращает JSON обёрнутым в markdown кодовые блоки:
//
//	```json
//	{"key": "value"}
//	```
//
// Эта функция очищает такие обёртки, возвращая чистый JSON.
//
// Примеры:
//
//	```json {"a": 1} ``` → {"a": 1}
//	``` {"a": 1} ``` → {"a": 1}
func CleanJsonBlock(s string) string {
	s = strings.TrimSpace(s)

	// Удаляем ```json в начале
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```JSON")
	s = strings.TrimPrefix(s, "```Json")

	// Удаляем ``` в начале
	s = strings.TrimPrefix(s, "```")

	// Удаляем ``` в конце
	s = strings.TrimSuffix(s, "```")

	return strings.TrimSpace(s)
}

// LooksLikeJSON проверяет, похожа ли строка на JSON объект или массив.
//
// Только синтаксическая эвристика по скобкам после обрезки пробелов:
// строка должна начинаться с '{' и заканчиваться '}', либо '[' и ']'.
// Валидность JSON не проверяется.
func LooksLikeJSON(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return false
	}
	first, last := s[0], s[len(s)-1]
	return (first == '{' && last == '}') || (first == '[' && last == ']')
}

// NormalizeJSON рекурсивно обходит структуру (map/slice) и разворачивает
// строки, которые выглядят как JSON, в настоящие объекты.
//
// Инструменты агента часто возвращают "text" поля с экранированным JSON
// вида "{\n  \"queryTerm\": ...}" вместо вложенных объектов. После
// нормализации такие поля становятся map[string]any / []any.
//
// Строки, которые не парсятся, остаются как есть. Входное значение не
// модифицируется. Повторный вызов на результате ничего не меняет.
//
// Числа декодируются как json.Number, чтобы длинные идентификаторы
// (например, PMID) не теряли точность.
//
// Типизированные map и slice из Go-кода (map[string]string,
// []map[string]int и т.п.) приводятся к map[string]any / []any.
func NormalizeJSON(data any) any {
	switch v := data.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, value := range v {
			out[key] = NormalizeJSON(value)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = NormalizeJSON(item)
		}
		return out
	case []map[string]any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = NormalizeJSON(item)
		}
		return out
	case []string:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = NormalizeJSON(item)
		}
		return out
	case string:
		if !LooksLikeJSON(v) {
			return v
		}
		parsed, ok := decodeJSON(v)
		if !ok {
			return v
		}
		// Распарсенный объект тоже может содержать JSON-строки
		return NormalizeJSON(parsed)
	case nil, []byte:
		return data
	}

	return normalizeReflect(data)
}

// normalizeReflect разворачивает прочие map и slice через reflect.
// nil-коллекции и скаляры возвращаются без изменений.
func normalizeReflect(data any) any {
	rv := reflect.ValueOf(data)

	switch rv.Kind() {
	case reflect.Map:
		if rv.IsNil() {
			return data
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[mapKey(iter.Key())] = NormalizeJSON(iter.Value().Interface())
		}
		return out
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return data
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = NormalizeJSON(rv.Index(i).Interface())
		}
		return out
	}

	return data
}

// mapKey приводит ключ map к строке так же, как это делает encoding/json.
func mapKey(k reflect.Value) string {
	if k.Kind() == reflect.Interface && !k.IsNil() {
		k = k.Elem()
	}
	if k.Kind() == reflect.String {
		return k.String()
	}
	return fmt.Sprint(k.Interface())
}

// decodeJSON парсит строку целиком, лишние данные после значения - ошибка.
func decodeJSON(s string) (any, bool) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var parsed any
	if err := dec.Decode(&parsed); err != nil {
		return nil, false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, false
	}
	return parsed, true
}

// MarshalIndent сериализует значение в JSON с отступом в два пробела.
//
// В отличие от json.MarshalIndent не экранирует <, > и &, чтобы
// фрагменты XML/HTML из ответов инструментов оставались читаемыми.
func MarshalIndent(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// FirstLine возвращает первую строку текста.
func FirstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// Truncate обрезает строку до maxRunes символов, добавляя "...".
//
// Работает по рунам, а не байтам, чтобы не ломать кириллицу.
func Truncate(s string, maxRunes int) string {
	if maxRunes <= 0 || utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxRunes]) + "..."
}
