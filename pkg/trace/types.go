// Package trace описывает ответ агента (response record) и его представления:
// шаги legacy-исполнителя и историю сообщений.
//
// Формат ответа задаётся внешним агентным фреймворком, поэтому все поля
// опциональны и читаются защитно: отсутствующее поле - не ошибка.
package trace

// Ключи ответа агента.
const (
	KeyInput             = "input"
	KeyIntermediateSteps = "intermediate_steps"
	KeyMessages          = "messages"
	KeyOutput            = "output"
)

// Роли сообщений в нотации фреймворка ("type").
const (
	RoleHuman  = "human"
	RoleAI     = "ai"
	RoleSystem = "system"
	RoleTool   = "tool"
)

// UnknownTool подставляется, когда у action нет имени инструмента.
const UnknownTool = "Unknown Tool"

// Record - ответ агента.
//
// Наличие ключа отслеживается отдельно от значения: ключ "messages" со
// значением null всё равно выбирает ветку истории сообщений.
type Record struct {
	// Input - значение ключа "input" (строка, map или что угодно)
	Input any

	// Steps - шаги legacy-исполнителя (ключ "intermediate_steps")
	Steps []Step

	// Messages - история сообщений (ключ "messages")
	Messages []Message

	// Output - значение ключа "output"
	Output any

	// Raw - исходная структура, используется для raw dump
	Raw map[string]any

	present map[string]bool
}

// Has сообщает, присутствовал ли ключ в исходном ответе.
func (r *Record) Has(key string) bool {
	if r == nil {
		return false
	}
	return r.present[key]
}

// Step - один шаг исполнителя: действие и наблюдение.
type Step struct {
	Action      Action
	Observation any
}

// Action - вызов инструмента в legacy-формате.
type Action struct {
	Tool      string
	ToolInput any
	Log       string
}

// Message - одно сообщение истории.
//
// Полиморфно по роли: AI-сообщение может нести ToolCalls,
// tool-сообщение несёт результат (Content, ToolCallID, Name).
type Message struct {
	Role       string
	Content    any
	ToolCalls  []ToolCall
	ToolCallID string
	Name       string
}

// IsTool сообщает, является ли сообщение результатом инструмента.
func (m Message) IsTool() bool {
	return m.Role == RoleTool
}

// ToolCall - вызов инструмента внутри AI-сообщения.
type ToolCall struct {
	Name string
	Args any
	ID   string
}

// EventType - тип события в истории инструментов.
type EventType string

const (
	EventCall   EventType = "call"
	EventResult EventType = "result"
)

// ToolEvent - элемент плоской последовательности вызовов и результатов.
type ToolEvent struct {
	Type EventType
	Name string
	ID   string

	// Args заполнено для EventCall
	Args any

	// Content заполнено для EventResult
	Content any
}

// ToolEvents разворачивает сообщения в последовательность событий.
//
// Сообщение с непустыми ToolCalls даёт по событию на каждый вызов,
// tool-сообщение даёт одно событие результата. Порядок сохраняется.
func ToolEvents(messages []Message) []ToolEvent {
	var events []ToolEvent

	for _, msg := range messages {
		switch {
		case len(msg.ToolCalls) > 0:
			for _, call := range msg.ToolCalls {
				events = append(events, ToolEvent{
					Type: EventCall,
					Name: call.Name,
					ID:   call.ID,
					Args: call.Args,
				})
			}
		case msg.IsTool():
			events = append(events, ToolEvent{
				Type:    EventResult,
				Name:    msg.Name,
				ID:      msg.ToolCallID,
				Content: msg.Content,
			})
		}
	}

	return events
}
