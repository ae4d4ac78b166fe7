package core

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/livewell-ai/livewell/internal/capability"
	"github.com/livewell-ai/livewell/internal/telemetry"
	"github.com/livewell-ai/livewell/models"
	"github.com/livewell-ai/livewell/provider"
	"github.com/livewell-ai/livewell/utils"
)

// DefaultMaxHops bounds how many capability-granting rounds one loop
// invocation may run before the engine is forced to answer.
const DefaultMaxHops = 3

// FallbackAnswer is returned when even the forced final call produced no
// text. The loop never returns an empty string.
const FallbackAnswer = "I could not put together a complete answer this time. " +
	"Please try again, ideally with a bit more detail about your goal and constraints."

// ToolLoop runs one step's bounded conversation with the reasoning engine:
// send a request, execute any capabilities the engine asked for, feed the
// results back, and repeat until the engine answers or the hop budget runs
// out, at which point one last call with capabilities disabled forces a
// final answer.
type ToolLoop struct {
	provider  provider.Provider
	registry  *capability.Registry
	logger    *log.Logger
	telemetry *telemetry.Telemetry
	maxHops   int
}

// NewToolLoop creates a tool-call loop. maxHops <= 0 selects DefaultMaxHops.
func NewToolLoop(p provider.Provider, reg *capability.Registry, logger *log.Logger, tele *telemetry.Telemetry, maxHops int) *ToolLoop {
	if maxHops <= 0 {
		maxHops = DefaultMaxHops
	}
	return &ToolLoop{
		provider:  p,
		registry:  reg,
		logger:    logger,
		telemetry: tele,
		maxHops:   maxHops,
	}
}

// Run executes the loop for one system instruction and user content and
// returns non-empty final text. Only a transport failure of the reasoning
// engine itself surfaces as an error; unknown capabilities, capability
// failures and hop exhaustion are all absorbed.
func (tl *ToolLoop) Run(ctx context.Context, system, user string) (string, error) {
	transcript := []models.Message{
		models.SystemMessage(system),
		models.UserMessage(user),
	}
	tools := tl.registry.Definitions()

	// The first call requires tool use so the engine cannot silently skip
	// the capabilities the step declared necessary.
	resp, err := tl.send(ctx, transcript, tools, models.ToolChoiceRequired)
	if err != nil {
		return "", fmt.Errorf("reasoning engine: %w", err)
	}

	hops := 0
	for resp.HasToolCalls() {
		if hops >= tl.maxHops || ctx.Err() != nil {
			// Hop budget exhausted (or cancelled): drop the unexecuted
			// request turn and force a final answer below.
			break
		}

		transcript = append(transcript, models.Message{
			Role:      models.RoleAssistant,
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})

		// Execute in the order the engine requested; each result is
		// attributed back to its originating request id.
		for _, tc := range resp.ToolCalls {
			text, failed := tl.registry.Invoke(ctx, tc.Name, tc.Arguments)
			tl.telemetry.RecordCapability(tc.Name, failed)
			if failed {
				tl.logger.Printf("capability %s failed: %s", tc.Name, text)
			} else {
				tl.logger.Printf("capability %s -> %s", tc.Name, utils.Truncate(text, 120))
			}
			transcript = append(transcript, models.Message{
				Role:       models.RoleTool,
				Content:    text,
				ToolCallID: tc.ID,
			})
		}

		hops++
		resp, err = tl.send(ctx, transcript, tools, models.ToolChoiceAuto)
		if err != nil {
			return "", fmt.Errorf("reasoning engine: %w", err)
		}
	}

	if resp.HasToolCalls() {
		// Forced fallback: resend with capability access disabled so the
		// engine has to answer. Whatever comes back is treated as final.
		tl.logger.Printf("tool hop budget (%d) exhausted, forcing final answer", tl.maxHops)
		resp, err = tl.send(ctx, transcript, nil, models.ToolChoiceNone)
		if err != nil {
			return "", fmt.Errorf("reasoning engine: %w", err)
		}
	}

	text := strings.TrimSpace(resp.Content)
	if text == "" {
		text = FallbackAnswer
	}
	return text, nil
}

func (tl *ToolLoop) send(ctx context.Context, transcript []models.Message, tools []models.ToolDefinition, choice models.ToolChoice) (models.ChatResponse, error) {
	resp, err := tl.provider.ChatCompletion(ctx, models.ChatRequest{
		Messages:   transcript,
		Tools:      tools,
		ToolChoice: choice,
	})
	tl.telemetry.RecordProviderCall(err == nil)
	return resp, err
}
