package openai_provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/livewell-ai/livewell/models"
)

const defaultBaseURL = "https://api.openai.com/v1"

// client implements the provider interface using OpenAI's chat completions API
type client struct {
	apiKey      string
	model       string
	baseURL     string
	temperature float64
	maxTokens   int
	httpClient  *http.Client
}

// NewOpenAIClient creates a new OpenAI client
func NewOpenAIClient(apiKey, model, baseURL string, temperature float64, maxTokens int, timeout time.Duration) *client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &client{
		apiKey:      apiKey,
		model:       model,
		baseURL:     baseURL,
		temperature: temperature,
		maxTokens:   maxTokens,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// Wire types for the chat completions API.
type chatToolCall struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Function struct {
		Name      string `json:"name"`
		Arguments string `json:"arguments"`
	} `json:"function"`
}

type chatMessage struct {
	Role       string         `json:"role"`
	Content    string         `json:"content"`
	ToolCalls  []chatToolCall `json:"tool_calls,omitempty"`
	ToolCallID string         `json:"tool_call_id,omitempty"`
}

type chatTool struct {
	Type     string `json:"type"`
	Function struct {
		Name        string                 `json:"name"`
		Description string                 `json:"description"`
		Parameters  map[string]interface{} `json:"parameters"`
	} `json:"function"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Tools       []chatTool    `json:"tools,omitempty"`
	ToolChoice  string        `json:"tool_choice,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

// ChatCompletion sends one transcript to OpenAI and returns either final text
// or the capability requests the model made.
func (c *client) ChatCompletion(ctx context.Context, req models.ChatRequest) (models.ChatResponse, error) {
	wire := chatRequest{
		Model:       c.model,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}
	if req.Temperature > 0 {
		wire.Temperature = req.Temperature
	}
	if req.MaxTokens > 0 {
		wire.MaxTokens = req.MaxTokens
	}

	for _, m := range req.Messages {
		cm := chatMessage{Role: string(m.Role), Content: m.Content, ToolCallID: m.ToolCallID}
		for _, tc := range m.ToolCalls {
			wc := chatToolCall{ID: tc.ID, Type: "function"}
			wc.Function.Name = tc.Name
			args, err := json.Marshal(tc.Arguments)
			if err != nil {
				return models.ChatResponse{}, fmt.Errorf("marshal tool arguments: %w", err)
			}
			wc.Function.Arguments = string(args)
			cm.ToolCalls = append(cm.ToolCalls, wc)
		}
		wire.Messages = append(wire.Messages, cm)
	}

	// Declared capabilities are only sent when tool use is allowed.
	if req.ToolChoice != models.ToolChoiceNone {
		for _, t := range req.Tools {
			ct := chatTool{Type: "function"}
			ct.Function.Name = t.Name
			ct.Function.Description = t.Description
			ct.Function.Parameters = t.Parameters
			wire.Tools = append(wire.Tools, ct)
		}
		if len(wire.Tools) > 0 {
			wire.ToolChoice = string(req.ToolChoice)
		}
	}

	body, err := json.Marshal(wire)
	if err != nil {
		return models.ChatResponse{}, fmt.Errorf("marshal: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewBuffer(body))
	if err != nil {
		return models.ChatResponse{}, fmt.Errorf("request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return models.ChatResponse{}, fmt.Errorf("do: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return models.ChatResponse{}, fmt.Errorf("OpenAI status %d", resp.StatusCode)
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content   string         `json:"content"`
				ToolCalls []chatToolCall `json:"tool_calls"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return models.ChatResponse{}, fmt.Errorf("decode: %w", err)
	}
	if len(out.Choices) == 0 {
		return models.ChatResponse{}, fmt.Errorf("no choices: %w", models.ErrMalformedResponse)
	}

	msg := out.Choices[0].Message
	result := models.ChatResponse{Content: msg.Content}
	for _, tc := range msg.ToolCalls {
		call := models.ToolCall{ID: tc.ID, Name: tc.Function.Name}
		if tc.Function.Arguments != "" {
			if err := json.Unmarshal([]byte(tc.Function.Arguments), &call.Arguments); err != nil {
				return models.ChatResponse{}, fmt.Errorf("tool call %s arguments: %w", tc.ID, models.ErrMalformedResponse)
			}
		}
		result.ToolCalls = append(result.ToolCalls, call)
	}

	if result.Content == "" && len(result.ToolCalls) == 0 {
		return models.ChatResponse{}, models.ErrMalformedResponse
	}
	return result, nil
}
