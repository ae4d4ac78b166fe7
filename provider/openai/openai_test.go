package openai_provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/livewell-ai/livewell/models"
)

func newTestClient(baseURL string) *client {
	return NewOpenAIClient("test-key", "gpt-4o-mini", baseURL, 0.3, 2048, 5*time.Second)
}

func serve(t *testing.T, handler func(t *testing.T, req map[string]interface{}) string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		var req map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(handler(t, req)))
	}))
}

func TestChatCompletionText(t *testing.T) {
	srv := serve(t, func(t *testing.T, req map[string]interface{}) string {
		if req["model"] != "gpt-4o-mini" {
			t.Errorf("model = %v", req["model"])
		}
		if req["tool_choice"] != "required" {
			t.Errorf("tool_choice = %v, want required", req["tool_choice"])
		}
		if tools, ok := req["tools"].([]interface{}); !ok || len(tools) != 1 {
			t.Errorf("tools = %v, want one declared capability", req["tools"])
		}
		return `{"choices":[{"message":{"content":"Day 1: rest."}}]}`
	})
	defer srv.Close()

	c := newTestClient(srv.URL)
	resp, err := c.ChatCompletion(context.Background(), models.ChatRequest{
		Messages:   []models.Message{models.UserMessage("plan my week")},
		Tools:      []models.ToolDefinition{{Name: "weather", Description: "outlook", Parameters: map[string]interface{}{"type": "object"}}},
		ToolChoice: models.ToolChoiceRequired,
	})
	if err != nil {
		t.Fatalf("ChatCompletion: %v", err)
	}
	if resp.Content != "Day 1: rest." || resp.HasToolCalls() {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestChatCompletionOmitsToolsWhenNone(t *testing.T) {
	srv := serve(t, func(t *testing.T, req map[string]interface{}) string {
		if _, ok := req["tools"]; ok {
			t.Error("tools should be omitted when tool use is disabled")
		}
		if _, ok := req["tool_choice"]; ok {
			t.Error("tool_choice should be omitted when tool use is disabled")
		}
		return `{"choices":[{"message":{"content":"done"}}]}`
	})
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.ChatCompletion(context.Background(), models.ChatRequest{
		Messages:   []models.Message{models.UserMessage("finish up")},
		Tools:      []models.ToolDefinition{{Name: "weather"}},
		ToolChoice: models.ToolChoiceNone,
	})
	if err != nil {
		t.Fatalf("ChatCompletion: %v", err)
	}
}

func TestChatCompletionDecodesToolCalls(t *testing.T) {
	srv := serve(t, func(t *testing.T, req map[string]interface{}) string {
		return `{"choices":[{"message":{"content":"","tool_calls":[
			{"id":"call_1","type":"function","function":{"name":"weather","arguments":"{\"days\":3}"}}
		]}}]}`
	})
	defer srv.Close()

	c := newTestClient(srv.URL)
	resp, err := c.ChatCompletion(context.Background(), models.ChatRequest{
		Messages:   []models.Message{models.UserMessage("check the weather")},
		ToolChoice: models.ToolChoiceAuto,
	})
	if err != nil {
		t.Fatalf("ChatCompletion: %v", err)
	}
	if len(resp.ToolCalls) != 1 {
		t.Fatalf("tool calls = %d, want 1", len(resp.ToolCalls))
	}
	tc := resp.ToolCalls[0]
	if tc.ID != "call_1" || tc.Name != "weather" {
		t.Fatalf("unexpected tool call: %+v", tc)
	}
	if got, ok := tc.Arguments["days"].(float64); !ok || got != 3 {
		t.Fatalf("arguments = %v", tc.Arguments)
	}
}

func TestChatCompletionMarshalsToolTurns(t *testing.T) {
	srv := serve(t, func(t *testing.T, req map[string]interface{}) string {
		msgs := req["messages"].([]interface{})
		if len(msgs) != 3 {
			t.Fatalf("messages = %d, want 3", len(msgs))
		}
		assistant := msgs[1].(map[string]interface{})
		calls := assistant["tool_calls"].([]interface{})
		fn := calls[0].(map[string]interface{})["function"].(map[string]interface{})
		if fn["arguments"] != `{"days":3}` {
			t.Errorf("arguments marshaled as %v", fn["arguments"])
		}
		toolTurn := msgs[2].(map[string]interface{})
		if toolTurn["tool_call_id"] != "call_1" || toolTurn["role"] != "tool" {
			t.Errorf("tool turn = %v", toolTurn)
		}
		return `{"choices":[{"message":{"content":"ok"}}]}`
	})
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.ChatCompletion(context.Background(), models.ChatRequest{
		Messages: []models.Message{
			models.UserMessage("check the weather"),
			{Role: models.RoleAssistant, ToolCalls: []models.ToolCall{
				{ID: "call_1", Name: "weather", Arguments: map[string]interface{}{"days": 3}},
			}},
			{Role: models.RoleTool, ToolCallID: "call_1", Content: "2025-09-25: Rainy"},
		},
		ToolChoice: models.ToolChoiceAuto,
	})
	if err != nil {
		t.Fatalf("ChatCompletion: %v", err)
	}
}

func TestChatCompletionMalformed(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"empty message", `{"choices":[{"message":{"content":""}}]}`},
		{"no choices", `{"choices":[]}`},
		{"bad tool arguments", `{"choices":[{"message":{"tool_calls":[{"id":"c","function":{"name":"weather","arguments":"not json"}}]}}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := serve(t, func(t *testing.T, req map[string]interface{}) string { return tc.body })
			defer srv.Close()

			c := newTestClient(srv.URL)
			_, err := c.ChatCompletion(context.Background(), models.ChatRequest{
				Messages: []models.Message{models.UserMessage("hi")},
			})
			if !errors.Is(err, models.ErrMalformedResponse) {
				t.Fatalf("err = %v, want ErrMalformedResponse", err)
			}
		})
	}
}

func TestChatCompletionHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.ChatCompletion(context.Background(), models.ChatRequest{
		Messages: []models.Message{models.UserMessage("hi")},
	})
	if err == nil {
		t.Fatal("expected an error for a non-200 status")
	}
}
