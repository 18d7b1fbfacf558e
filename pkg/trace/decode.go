package trace

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// ErrNotObject возвращается, когда JSON ответа не является объектом.
var ErrNotObject = errors.New("response record must be a JSON object")

// Parse декодирует ответ агента из JSON.
//
// Числа сохраняются как json.Number. Ошибкой считается только невалидный
// JSON или не-объект на верхнем уровне; форма полей проверяется защитно
// в FromMap.
func Parse(data []byte) (*Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse response record: %w", err)
	}

	m, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w, got %T", ErrNotObject, raw)
	}

	return FromMap(m), nil
}

// FromMap строит Record из слабо типизированного map.
//
// Принимает как результат json.Unmarshal, так и map, собранный в Go-коде
// (в т.ч. с []Step / []Message внутри). Неизвестные ключи игнорируются,
// но остаются в Raw.
func FromMap(m map[string]any) *Record {
	rec := &Record{
		Raw:     m,
		present: make(map[string]bool, len(m)),
	}
	if m == nil {
		return rec
	}

	for _, key := range []string{KeyInput, KeyIntermediateSteps, KeyMessages, KeyOutput} {
		if _, ok := m[key]; ok {
			rec.present[key] = true
		}
	}

	rec.Input = m[KeyInput]
	rec.Output = m[KeyOutput]
	rec.Steps = decodeSteps(m[KeyIntermediateSteps])
	rec.Messages = decodeMessages(m[KeyMessages])

	return rec
}

func decodeSteps(v any) []Step {
	if steps, ok := v.([]Step); ok {
		return steps
	}

	items := asSlice(v)
	steps := make([]Step, 0, len(items))
	for _, item := range items {
		steps = append(steps, decodeStep(item))
	}
	return steps
}

// decodeStep понимает пары [action, observation] и объекты
// {"action": ..., "observation": ...}.
func decodeStep(item any) Step {
	switch v := item.(type) {
	case Step:
		return v
	case *Step:
		if v != nil {
			return *v
		}
	case []any:
		if len(v) >= 2 {
			return Step{Action: decodeAction(v[0]), Observation: v[1]}
		}
		if len(v) == 1 {
			return Step{Action: decodeAction(v[0])}
		}
	case map[string]any:
		if action, ok := v["action"]; ok {
			return Step{Action: decodeAction(action), Observation: v["observation"]}
		}
	}

	return Step{Action: Action{Tool: UnknownTool}, Observation: item}
}

func decodeAction(v any) Action {
	switch a := v.(type) {
	case Action:
		return a
	case *Action:
		if a != nil {
			return *a
		}
	case map[string]any:
		fields := unwrapSerialized(a)
		action := Action{
			Tool:      asString(fields["tool"]),
			ToolInput: fields["tool_input"],
			Log:       asString(fields["log"]),
		}
		if action.Tool == "" {
			action.Tool = UnknownTool
		}
		if action.ToolInput == nil {
			action.ToolInput = ""
		}
		return action
	case string:
		return Action{Tool: UnknownTool, ToolInput: "", Log: a}
	}

	return Action{Tool: UnknownTool, ToolInput: ""}
}

func decodeMessages(v any) []Message {
	if msgs, ok := v.([]Message); ok {
		return msgs
	}

	items := asSlice(v)
	msgs := make([]Message, 0, len(items))
	for _, item := range items {
		msgs = append(msgs, decodeMessage(item))
	}
	return msgs
}

// decodeMessage определяет диалект сообщения.
//
// Диалект фреймворка использует ключ "type" ("ai", "tool", ...),
// OpenAI chat-completion диалект - ключ "role" ("assistant", "tool", ...).
// Сериализованные объекты вида {"lc": 1, "id": [..., "AIMessage"], "kwargs": {...}}
// разворачиваются перед разбором.
func decodeMessage(item any) Message {
	switch v := item.(type) {
	case Message:
		return v
	case *Message:
		if v != nil {
			return *v
		}
		return Message{}
	case string:
		return Message{Role: RoleHuman, Content: v}
	case map[string]any:
		if role, ok := serializedRole(v); ok {
			fields := unwrapSerialized(v)
			msg := decodeFrameworkMessage(fields)
			msg.Role = role
			return msg
		}
		if _, hasType := v["type"]; !hasType {
			if _, hasRole := v["role"]; hasRole {
				if msg, err := decodeOpenAIMessage(v); err == nil {
					return msg
				}
			}
		}
		return decodeFrameworkMessage(v)
	}

	return Message{Content: item}
}

func decodeFrameworkMessage(m map[string]any) Message {
	role := asString(m["type"])
	if role == "" {
		role = asString(m["role"])
	}

	msg := Message{
		Role:       normalizeRole(role),
		Content:    flattenContent(m["content"]),
		ToolCallID: asString(m["tool_call_id"]),
		Name:       asString(m["name"]),
	}

	for _, raw := range asSlice(m["tool_calls"]) {
		call, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		msg.ToolCalls = append(msg.ToolCalls, decodeToolCall(call))
	}

	return msg
}

// decodeToolCall понимает {"name","args","id"} и
// {"id","function":{"name","arguments"}}.
func decodeToolCall(call map[string]any) ToolCall {
	if fn, ok := call["function"].(map[string]any); ok {
		return ToolCall{
			Name: asString(fn["name"]),
			Args: fn["arguments"],
			ID:   asString(call["id"]),
		}
	}
	return ToolCall{
		Name: asString(call["name"]),
		Args: call["args"],
		ID:   asString(call["id"]),
	}
}

// decodeOpenAIMessage разбирает сообщение через openai.ChatCompletionMessage.
func decodeOpenAIMessage(m map[string]any) (Message, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return Message{}, fmt.Errorf("failed to marshal message: %w", err)
	}

	var oai openai.ChatCompletionMessage
	if err := json.Unmarshal(data, &oai); err != nil {
		return Message{}, fmt.Errorf("failed to decode openai message: %w", err)
	}

	msg := Message{
		Role:       normalizeRole(oai.Role),
		Content:    oai.Content,
		ToolCallID: oai.ToolCallID,
		Name:       oai.Name,
	}

	if len(oai.MultiContent) > 0 {
		var parts []string
		for _, part := range oai.MultiContent {
			if part.Type == openai.ChatMessagePartTypeText {
				parts = append(parts, part.Text)
			}
		}
		msg.Content = strings.Join(parts, "\n")
	}

	for _, call := range oai.ToolCalls {
		msg.ToolCalls = append(msg.ToolCalls, ToolCall{
			Name: call.Function.Name,
			Args: call.Function.Arguments,
			ID:   call.ID,
		})
	}

	// Устаревший формат function_call
	if len(msg.ToolCalls) == 0 && oai.FunctionCall != nil {
		msg.ToolCalls = append(msg.ToolCalls, ToolCall{
			Name: oai.FunctionCall.Name,
			Args: oai.FunctionCall.Arguments,
		})
	}

	return msg, nil
}

// normalizeRole сводит роли OpenAI к ролям фреймворка.
func normalizeRole(role string) string {
	switch strings.ToLower(role) {
	case openai.ChatMessageRoleUser, RoleHuman:
		return RoleHuman
	case openai.ChatMessageRoleAssistant, RoleAI:
		return RoleAI
	case openai.ChatMessageRoleSystem, "developer":
		return RoleSystem
	case openai.ChatMessageRoleTool, openai.ChatMessageRoleFunction:
		return RoleTool
	}
	return role
}

// flattenContent склеивает content-блоки [{"type":"text","text":...}] в строку.
// Если среди блоков есть не-текстовые (картинки), content возвращается как есть.
func flattenContent(v any) any {
	items, ok := v.([]any)
	if !ok || len(items) == 0 {
		return v
	}

	parts := make([]string, 0, len(items))
	for _, item := range items {
		switch block := item.(type) {
		case string:
			parts = append(parts, block)
		case map[string]any:
			if asString(block["type"]) != "text" {
				return v
			}
			parts = append(parts, asString(block["text"]))
		default:
			return v
		}
	}
	return strings.Join(parts, "\n")
}

var serializedClasses = map[string]string{
	"HumanMessage":      RoleHuman,
	"HumanMessageChunk": RoleHuman,
	"AIMessage":         RoleAI,
	"AIMessageChunk":    RoleAI,
	"SystemMessage":     RoleSystem,
	"ToolMessage":       RoleTool,
	"FunctionMessage":   RoleTool,
}

// serializedRole возвращает роль для {"lc": 1, "id": [..., "AIMessage"]}.
func serializedRole(m map[string]any) (string, bool) {
	if _, ok := m["lc"]; !ok {
		return "", false
	}
	ids := asSlice(m["id"])
	if len(ids) == 0 {
		return "", false
	}
	role, ok := serializedClasses[asString(ids[len(ids)-1])]
	return role, ok
}

// unwrapSerialized возвращает kwargs сериализованного объекта или сам map.
func unwrapSerialized(m map[string]any) map[string]any {
	if _, ok := m["lc"]; ok {
		if kwargs, ok := m["kwargs"].(map[string]any); ok {
			return kwargs
		}
	}
	return m
}

func asSlice(v any) []any {
	switch s := v.(type) {
	case []any:
		return s
	case []map[string]any:
		out := make([]any, len(s))
		for i := range s {
			out[i] = s[i]
		}
		return out
	}
	return nil
}

func asString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case json.Number:
		return s.String()
	case fmt.Stringer:
		return s.String()
	}
	return fmt.Sprint(v)
}
