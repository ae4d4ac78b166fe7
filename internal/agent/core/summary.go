package core

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/livewell-ai/livewell/models"
	"github.com/livewell-ai/livewell/provider"
)

// SummaryStep asks the reasoning engine to compress the accumulated plans
// into one action plan. It never uses capabilities, and falls back to a
// basic, non-engine summary when the transport fails.
type SummaryStep struct {
	provider provider.Provider
	logger   *log.Logger
}

// NewSummaryStep creates the summarizer step.
func NewSummaryStep(p provider.Provider, logger *log.Logger) *SummaryStep {
	return &SummaryStep{provider: p, logger: logger}
}

func (s *SummaryStep) Name() string { return "summary" }

func (s *SummaryStep) Run(ctx context.Context, snap Snapshot) (Update, error) {
	goal := strings.TrimSpace(snap.Get(KeyUserGoal))
	fitness := strings.TrimSpace(snap.Get(KeyFitnessPlan))
	nutritionPlan := strings.TrimSpace(snap.Get(KeyNutritionPlan))
	hydrationPlan := strings.TrimSpace(snap.Get(KeyHydrationPlan))

	if fitness == "" && nutritionPlan == "" && hydrationPlan == "" {
		return Update{KeySummary: "No consultation data to summarize."}, nil
	}

	var b strings.Builder
	if goal != "" {
		fmt.Fprintf(&b, "User Goals: %s\n\n", goal)
	}
	if fitness != "" {
		fmt.Fprintf(&b, "Fitness Plan:\n%s\n\n", fitness)
	}
	if nutritionPlan != "" {
		fmt.Fprintf(&b, "Nutrition Plan:\n%s\n\n", nutritionPlan)
	}
	if hydrationPlan != "" {
		fmt.Fprintf(&b, "Hydration & Supplement Plan:\n%s\n\n", hydrationPlan)
	}

	resp, err := s.provider.ChatCompletion(ctx, models.ChatRequest{
		Messages: []models.Message{
			models.SystemMessage(summarySystem),
			models.UserMessage(summaryUserPrompt(b.String())),
		},
	})
	if err != nil || strings.TrimSpace(resp.Content) == "" {
		if err != nil {
			s.logger.Printf("summary step degraded: %v", err)
		}
		return Update{KeySummary: formatSummary(s.basicSummary(goal, fitness, nutritionPlan, hydrationPlan))}, nil
	}

	return Update{KeySummary: formatSummary(resp.Content)}, nil
}

// basicSummary is the non-engine fallback: it only counts what was produced.
func (s *SummaryStep) basicSummary(goal, fitness, nutritionPlan, hydrationPlan string) string {
	plans := 0
	for _, p := range []string{fitness, nutritionPlan, hydrationPlan} {
		if p != "" {
			plans++
		}
	}
	goals := 0
	if goal != "" {
		goals = 1
	}
	return fmt.Sprintf(
		"Goals identified: %d\nPlans generated: %d\n\n"+
			"Unable to generate a detailed summary at this time. "+
			"Your consultation sections above remain available for review.",
		goals, plans)
}
