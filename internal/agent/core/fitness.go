package core

import (
	"context"
	"log"
	"strings"
)

// FitnessStep produces a 2-week workout plan. It is the one step that runs a
// tool-call loop: the engine may request local time and the weather outlook
// before composing the plan.
type FitnessStep struct {
	loop   *ToolLoop
	logger *log.Logger
}

// NewFitnessStep creates the fitness planning step.
func NewFitnessStep(loop *ToolLoop, logger *log.Logger) *FitnessStep {
	return &FitnessStep{loop: loop, logger: logger}
}

func (s *FitnessStep) Name() string { return "fitness" }

// Run reads the user goal and writes fitness_plan plus user_context for the
// downstream steps. A blank goal yields a placeholder without contacting the
// engine; a transport failure degrades to a readable message instead of
// aborting the pipeline.
func (s *FitnessStep) Run(ctx context.Context, snap Snapshot) (Update, error) {
	goal := strings.TrimSpace(snap.Get(KeyUserGoal))
	if goal == "" {
		return Update{
			KeyFitnessPlan: "Please provide your goal and constraints so a workout plan can be drawn up.",
		}, nil
	}

	text, err := s.loop.Run(ctx, fitnessSystem, fitnessUserPrompt(goal))
	if err != nil {
		s.logger.Printf("fitness step degraded: %v", err)
		return Update{
			KeyFitnessPlan: "The planning service was unreachable, so no workout plan could be generated this time. " +
				"Please try again in a few minutes.",
			KeyUserContext: goal,
		}, nil
	}

	return Update{
		KeyFitnessPlan: text,
		KeyUserContext: goal,
	}, nil
}
