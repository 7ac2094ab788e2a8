package llm

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func completionResponse(content string, toolCalls ...map[string]any) map[string]any {
	message := map[string]any{"role": "assistant", "content": content}
	if len(toolCalls) > 0 {
		message["tool_calls"] = toolCalls
	}
	return map[string]any{
		"id":    "chatcmpl-test",
		"model": "gpt-4o-mini",
		"choices": []map[string]any{
			{"message": message, "finish_reason": "stop"},
		},
		"usage": map[string]any{"prompt_tokens": 10, "completion_tokens": 5},
	}
}

func TestChatRequestShape(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("auth header = %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(completionResponse("hi there"))
	}))
	defer srv.Close()

	c := NewOpenAIClient("test-key", srv.URL, slog.Default())
	tools := []map[string]any{{"type": "function", "function": map[string]any{"name": "check_availability"}}}

	resp, err := c.Chat(context.Background(), "gpt-4o-mini", []Message{
		{Role: "user", Content: "hello"},
	}, tools, Options{Temperature: 0.7, TopP: 1, MaxTokens: 300})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if resp.Message.Content != "hi there" {
		t.Errorf("content = %q", resp.Message.Content)
	}
	if resp.InputTokens != 10 || resp.OutputTokens != 5 {
		t.Errorf("tokens = %d/%d", resp.InputTokens, resp.OutputTokens)
	}

	if got["model"] != "gpt-4o-mini" {
		t.Errorf("model = %v", got["model"])
	}
	if got["temperature"] != 0.7 {
		t.Errorf("temperature = %v", got["temperature"])
	}
	if got["max_tokens"] != float64(300) {
		t.Errorf("max_tokens = %v", got["max_tokens"])
	}
	// Tool calls are forced sequential unless explicitly allowed.
	if got["parallel_tool_calls"] != false {
		t.Errorf("parallel_tool_calls = %v, want false", got["parallel_tool_calls"])
	}
	if _, present := got["response_format"]; present {
		t.Error("response_format should be absent without JSONOnly")
	}
}

func TestChatJSONMode(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		json.NewEncoder(w).Encode(completionResponse(`{"category":"get_pricing"}`))
	}))
	defer srv.Close()

	c := NewOpenAIClient("test-key", srv.URL, slog.Default())
	_, err := c.Chat(context.Background(), "gpt-4o-mini", []Message{
		{Role: "user", Content: "prices?"},
	}, nil, Options{Temperature: 0.3, MaxTokens: 150, JSONOnly: true})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}

	rf, ok := got["response_format"].(map[string]any)
	if !ok || rf["type"] != "json_object" {
		t.Errorf("response_format = %v, want json_object", got["response_format"])
	}
	if _, present := got["parallel_tool_calls"]; present {
		t.Error("parallel_tool_calls should be absent without tools")
	}
}

func TestChatToolCallDecoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(completionResponse("",
			map[string]any{
				"id":   "call_1",
				"type": "function",
				"function": map[string]any{
					"name":      "check_availability",
					"arguments": `{"event_date":"2026-06-15"}`,
				},
			},
		))
	}))
	defer srv.Close()

	c := NewOpenAIClient("test-key", srv.URL, slog.Default())
	resp, err := c.Chat(context.Background(), "gpt-4o-mini", []Message{{Role: "user", Content: "june 15?"}}, nil, Options{})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if len(resp.Message.ToolCalls) != 1 {
		t.Fatalf("tool calls = %d, want 1", len(resp.Message.ToolCalls))
	}
	call := resp.Message.ToolCalls[0]
	if call.ID != "call_1" || call.Function.Name != "check_availability" {
		t.Errorf("call = %+v", call)
	}
	if call.Function.Arguments["event_date"] != "2026-06-15" {
		t.Errorf("arguments = %v", call.Function.Arguments)
	}
}

func TestChatMalformedToolArguments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(completionResponse("",
			map[string]any{
				"id":   "call_1",
				"type": "function",
				"function": map[string]any{
					"name":      "check_availability",
					"arguments": `{not json`,
				},
			},
		))
	}))
	defer srv.Close()

	c := NewOpenAIClient("test-key", srv.URL, slog.Default())
	resp, err := c.Chat(context.Background(), "gpt-4o-mini", []Message{{Role: "user", Content: "x"}}, nil, Options{})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	args := resp.Message.ToolCalls[0].Function.Arguments
	if args["_raw"] != `{not json` {
		t.Errorf("malformed args = %v, want preserved under _raw", args)
	}
}

func TestChatNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	c := NewOpenAIClient("test-key", srv.URL, slog.Default())
	if _, err := c.Chat(context.Background(), "gpt-4o-mini", []Message{{Role: "user", Content: "x"}}, nil, Options{}); err == nil {
		t.Error("expected error on empty choices")
	}
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") == "Bearer bad-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	good := NewOpenAIClient("test-key", srv.URL, slog.Default())
	if err := good.Ping(context.Background()); err != nil {
		t.Errorf("ping: %v", err)
	}

	bad := NewOpenAIClient("bad-key", srv.URL, slog.Default())
	if err := bad.Ping(context.Background()); err == nil {
		t.Error("expected error for rejected key")
	}
}
