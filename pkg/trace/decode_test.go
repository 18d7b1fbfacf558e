package trace

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_InputOnly(t *testing.T) {
	rec, err := Parse([]byte(`{"input": "find asthma papers"}`))
	require.NoError(t, err)

	assert.True(t, rec.Has(KeyInput))
	assert.False(t, rec.Has(KeyMessages))
	assert.False(t, rec.Has(KeyIntermediateSteps))
	assert.False(t, rec.Has(KeyOutput))
	assert.Equal(t, "find asthma papers", rec.Input)
	assert.Empty(t, rec.Steps)
	assert.Empty(t, rec.Messages)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte(`{broken`))
	assert.Error(t, err)

	_, err = Parse([]byte(`[1, 2]`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotObject))
}

func TestParse_KeyPresentWithNull(t *testing.T) {
	rec, err := Parse([]byte(`{"messages": null}`))
	require.NoError(t, err)

	assert.True(t, rec.Has(KeyMessages))
	assert.Empty(t, rec.Messages)
}

func TestParse_IntermediateSteps(t *testing.T) {
	data := `{
		"input": "q",
		"intermediate_steps": [
			[{"tool": "pubmed_search_articles", "tool_input": {"queryTerm": "asthma"}, "log": "Invoking search\nmore"}, "{\"pmids\": [\"1\"]}"],
			{"action": {"tool_input": "x"}, "observation": 7},
			"garbage"
		],
		"output": "done"
	}`

	rec, err := Parse([]byte(data))
	require.NoError(t, err)
	require.Len(t, rec.Steps, 3)

	first := rec.Steps[0]
	assert.Equal(t, "pubmed_search_articles", first.Action.Tool)
	assert.Equal(t, map[string]any{"queryTerm": "asthma"}, first.Action.ToolInput)
	assert.Equal(t, "Invoking search\nmore", first.Action.Log)
	assert.Equal(t, "{\"pmids\": [\"1\"]}", first.Observation)

	second := rec.Steps[1]
	assert.Equal(t, UnknownTool, second.Action.Tool)
	assert.Equal(t, "x", second.Action.ToolInput)
	assert.Equal(t, json.Number("7"), second.Observation)

	third := rec.Steps[2]
	assert.Equal(t, UnknownTool, third.Action.Tool)
	assert.Equal(t, "garbage", third.Observation)
}

func TestParse_FrameworkMessages(t *testing.T) {
	data := `{"messages": [
		{"type": "human", "content": "find asthma papers"},
		{"type": "ai", "content": "", "tool_calls": [
			{"name": "pubmed_search_articles", "args": {"queryTerm": "asthma"}, "id": "call_1"},
			{"name": "pubmed_fetch_contents", "args": {"pmids": ["1"]}, "id": "call_2"}
		]},
		{"type": "tool", "content": [{"type": "text", "text": "{\"count\": 1}"}], "tool_call_id": "call_1", "name": "pubmed_search_articles"},
		{"type": "ai", "content": "final"}
	]}`

	rec, err := Parse([]byte(data))
	require.NoError(t, err)
	require.Len(t, rec.Messages, 4)

	assert.Equal(t, RoleHuman, rec.Messages[0].Role)
	assert.Equal(t, "find asthma papers", rec.Messages[0].Content)

	tool := rec.Messages[2]
	assert.True(t, tool.IsTool())
	assert.Equal(t, "{\"count\": 1}", tool.Content, "text blocks should be flattened")
	assert.Equal(t, "call_1", tool.ToolCallID)

	events := ToolEvents(rec.Messages)
	require.Len(t, events, 3)
	assert.Equal(t, EventCall, events[0].Type)
	assert.Equal(t, "pubmed_search_articles", events[0].Name)
	assert.Equal(t, "call_1", events[0].ID)
	assert.Equal(t, EventCall, events[1].Type)
	assert.Equal(t, "call_2", events[1].ID)
	assert.Equal(t, EventResult, events[2].Type)
	assert.Equal(t, "call_1", events[2].ID)
	assert.Equal(t, "pubmed_search_articles", events[2].Name)
}

func TestParse_OpenAIMessagesMatchFrameworkEvents(t *testing.T) {
	openaiData := `{"messages": [
		{"role": "user", "content": "find asthma papers"},
		{"role": "assistant", "content": null, "tool_calls": [
			{"id": "call_1", "type": "function", "function": {"name": "pubmed_search_articles", "arguments": "{\"queryTerm\":\"asthma\"}"}}
		]},
		{"role": "tool", "content": "{\"count\": 1}", "tool_call_id": "call_1", "name": "pubmed_search_articles"}
	]}`
	frameworkData := `{"messages": [
		{"type": "human", "content": "find asthma papers"},
		{"type": "ai", "content": "", "tool_calls": [
			{"name": "pubmed_search_articles", "args": "{\"queryTerm\":\"asthma\"}", "id": "call_1"}
		]},
		{"type": "tool", "content": "{\"count\": 1}", "tool_call_id": "call_1", "name": "pubmed_search_articles"}
	]}`

	oai, err := Parse([]byte(openaiData))
	require.NoError(t, err)
	fw, err := Parse([]byte(frameworkData))
	require.NoError(t, err)

	assert.Equal(t, RoleHuman, oai.Messages[0].Role)
	assert.Equal(t, RoleAI, oai.Messages[1].Role)
	assert.Equal(t, ToolEvents(fw.Messages), ToolEvents(oai.Messages))
}

func TestParse_SerializedMessages(t *testing.T) {
	data := `{"messages": [
		{"lc": 1, "type": "constructor", "id": ["langchain", "schema", "messages", "AIMessage"],
		 "kwargs": {"content": "", "tool_calls": [{"name": "search", "args": {}, "id": "c1"}]}},
		{"lc": 1, "type": "constructor", "id": ["langchain", "schema", "messages", "ToolMessage"],
		 "kwargs": {"content": "ok", "tool_call_id": "c1", "name": "search"}}
	]}`

	rec, err := Parse([]byte(data))
	require.NoError(t, err)
	require.Len(t, rec.Messages, 2)

	assert.Equal(t, RoleAI, rec.Messages[0].Role)
	assert.Equal(t, RoleTool, rec.Messages[1].Role)
	assert.Len(t, ToolEvents(rec.Messages), 2)
}

func TestFromMap_TypedValues(t *testing.T) {
	rec := FromMap(map[string]any{
		KeyMessages: []Message{
			{Role: RoleAI, ToolCalls: []ToolCall{{Name: "search", ID: "c1"}}},
			{Role: RoleTool, Content: "ok", ToolCallID: "c1"},
		},
		KeyIntermediateSteps: []map[string]any{
			{"action": map[string]any{"tool": "search"}, "observation": "ok"},
		},
	})

	assert.Len(t, rec.Messages, 2)
	require.Len(t, rec.Steps, 1)
	assert.Equal(t, "search", rec.Steps[0].Action.Tool)
	assert.Equal(t, "", rec.Steps[0].Action.ToolInput)
}

func TestFromMap_Nil(t *testing.T) {
	rec := FromMap(nil)

	assert.False(t, rec.Has(KeyInput))
	assert.Empty(t, rec.Messages)
}

func TestToolEvents_IgnoresPlainMessages(t *testing.T) {
	events := ToolEvents([]Message{
		{Role: RoleHuman, Content: "hi"},
		{Role: RoleAI, Content: "hello"},
	})

	assert.Empty(t, events)
}
