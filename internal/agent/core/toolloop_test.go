package core

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/livewell-ai/livewell/internal/capability"
	"github.com/livewell-ai/livewell/models"
)

// stubProvider scripts reasoning-engine responses and records every request.
type stubProvider struct {
	responses []models.ChatResponse
	err       error
	requests  []models.ChatRequest
}

func (s *stubProvider) ChatCompletion(ctx context.Context, req models.ChatRequest) (models.ChatResponse, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return models.ChatResponse{}, s.err
	}
	i := len(s.requests) - 1
	if i >= len(s.responses) {
		i = len(s.responses) - 1
	}
	return s.responses[i], nil
}

func testLogger() *log.Logger { return log.New(io.Discard, "", 0) }

func echoRegistry(t *testing.T) *capability.Registry {
	t.Helper()
	reg := capability.NewRegistry()
	err := reg.Register(capability.Capability{
		Name:        "weather",
		Description: "forecast",
		Exec: func(ctx context.Context, args map[string]interface{}) (string, error) {
			return "2025-01-01: Rainy", nil
		},
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	return reg
}

func toolCallResponse(id, name string) models.ChatResponse {
	return models.ChatResponse{ToolCalls: []models.ToolCall{{ID: id, Name: name}}}
}

func TestRunReturnsFinalTextOnFirstCall(t *testing.T) {
	p := &stubProvider{responses: []models.ChatResponse{{Content: "final plan"}}}
	loop := NewToolLoop(p, echoRegistry(t), testLogger(), nil, 3)

	text, err := loop.Run(context.Background(), "system", "user")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if text != "final plan" {
		t.Fatalf("unexpected text: %q", text)
	}
	if len(p.requests) != 1 {
		t.Fatalf("expected exactly 1 engine call, got %d", len(p.requests))
	}
	if p.requests[0].ToolChoice != models.ToolChoiceRequired {
		t.Fatalf("initial call must require tool use, got %s", p.requests[0].ToolChoice)
	}
}

func TestRunHopBound(t *testing.T) {
	const hops = 3
	// Engine that always asks for another capability.
	p := &stubProvider{responses: []models.ChatResponse{toolCallResponse("call_1", "weather")}}
	loop := NewToolLoop(p, echoRegistry(t), testLogger(), nil, hops)

	text, err := loop.Run(context.Background(), "system", "user")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if text == "" {
		t.Fatalf("loop returned empty text")
	}
	// 1 initial + hops rounds + 1 forced fallback.
	if len(p.requests) != hops+2 {
		t.Fatalf("expected %d engine calls, got %d", hops+2, len(p.requests))
	}
	last := p.requests[len(p.requests)-1]
	if last.ToolChoice != models.ToolChoiceNone {
		t.Fatalf("fallback call must disable capabilities, got %s", last.ToolChoice)
	}
	if len(last.Tools) != 0 {
		t.Fatalf("fallback call must not declare capabilities")
	}
}

func TestRunFallbackSubstitutesNonEmptyText(t *testing.T) {
	// Tool requests until exhaustion, then an empty-content final turn.
	p := &stubProvider{responses: []models.ChatResponse{
		toolCallResponse("call_1", "weather"),
		toolCallResponse("call_2", "weather"),
		{Content: "   "},
	}}
	loop := NewToolLoop(p, echoRegistry(t), testLogger(), nil, 1)

	text, err := loop.Run(context.Background(), "system", "user")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if text != FallbackAnswer {
		t.Fatalf("expected substitute fallback answer, got %q", text)
	}
}

func TestRunUnknownCapabilityContinues(t *testing.T) {
	p := &stubProvider{responses: []models.ChatResponse{
		toolCallResponse("call_1", "bogus"),
		{Content: "answer after bogus tool"},
	}}
	loop := NewToolLoop(p, echoRegistry(t), testLogger(), nil, 3)

	text, err := loop.Run(context.Background(), "system", "user")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if text != "answer after bogus tool" {
		t.Fatalf("unexpected text: %q", text)
	}

	// The second request's transcript must carry the unknown-capability
	// marker attributed to the originating request id.
	second := p.requests[1]
	var found bool
	for _, m := range second.Messages {
		if m.Role == models.RoleTool && m.ToolCallID == "call_1" {
			found = true
			if !strings.Contains(m.Content, "Unknown capability: bogus") {
				t.Fatalf("missing unknown-capability marker: %q", m.Content)
			}
		}
	}
	if !found {
		t.Fatalf("no capability-result turn for call_1 in transcript")
	}
}

func TestRunAttributesResultsPerRequestID(t *testing.T) {
	p := &stubProvider{responses: []models.ChatResponse{
		{ToolCalls: []models.ToolCall{
			{ID: "call_a", Name: "weather"},
			{ID: "call_b", Name: "bogus"},
		}},
		{Content: "done"},
	}}
	loop := NewToolLoop(p, echoRegistry(t), testLogger(), nil, 3)

	if _, err := loop.Run(context.Background(), "system", "user"); err != nil {
		t.Fatalf("Run: %v", err)
	}

	second := p.requests[1]
	byID := map[string]string{}
	var order []string
	for _, m := range second.Messages {
		if m.Role == models.RoleTool {
			byID[m.ToolCallID] = m.Content
			order = append(order, m.ToolCallID)
		}
	}
	if len(order) != 2 || order[0] != "call_a" || order[1] != "call_b" {
		t.Fatalf("results out of request order: %v", order)
	}
	if !strings.Contains(byID["call_a"], "Rainy") {
		t.Fatalf("call_a result misattributed: %q", byID["call_a"])
	}
	if !strings.Contains(byID["call_b"], "Unknown capability") {
		t.Fatalf("call_b result misattributed: %q", byID["call_b"])
	}
}

func TestRunSurfacesTransportFailure(t *testing.T) {
	p := &stubProvider{err: errors.New("connection refused")}
	loop := NewToolLoop(p, echoRegistry(t), testLogger(), nil, 3)

	if _, err := loop.Run(context.Background(), "system", "user"); err == nil {
		t.Fatalf("expected transport error to surface")
	}
}

func TestRunDefaultsHopBound(t *testing.T) {
	p := &stubProvider{responses: []models.ChatResponse{toolCallResponse("call_1", "weather")}}
	loop := NewToolLoop(p, echoRegistry(t), testLogger(), nil, 0)

	if _, err := loop.Run(context.Background(), "system", "user"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(p.requests) != DefaultMaxHops+2 {
		t.Fatalf("expected %d engine calls with default bound, got %d", DefaultMaxHops+2, len(p.requests))
	}
}
