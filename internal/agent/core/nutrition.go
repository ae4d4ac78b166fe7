package core

import (
	"context"
	"strings"

	"github.com/livewell-ai/livewell/internal/nutrition"
)

// NutritionStep computes daily calorie/macro targets and a 7-day rotation
// with the deterministic calculator; no reasoning engine involved.
type NutritionStep struct {
	prefs nutrition.Prefs
}

// NewNutritionStep creates the nutrition step with default calculation policy.
func NewNutritionStep() *NutritionStep {
	return &NutritionStep{prefs: nutrition.DefaultPrefs()}
}

func (s *NutritionStep) Name() string { return "nutrition" }

func (s *NutritionStep) Run(ctx context.Context, snap Snapshot) (Update, error) {
	goal := strings.TrimSpace(snap.Get(KeyUserContext))
	if goal == "" {
		goal = strings.TrimSpace(snap.Get(KeyUserGoal))
	}
	if goal == "" {
		return Update{
			KeyNutritionPlan: "Please provide your goal so nutrition targets can be calculated.",
		}, nil
	}

	plan := nutrition.BuildPlan(nutrition.Profile{Goal: goal}, s.prefs)
	return Update{KeyNutritionPlan: plan.Format()}, nil
}
