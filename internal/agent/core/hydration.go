package core

import (
	"context"
	"strings"

	"github.com/livewell-ai/livewell/internal/hydration"
)

// HydrationStep derives hydration volumes and a supplement cheatsheet from
// the deterministic calculator, using a typical week aligned with the
// fitness plan's training cadence.
type HydrationStep struct {
	climate hydration.Climate
}

// NewHydrationStep creates the hydration step for the given climate.
func NewHydrationStep(climate hydration.Climate) *HydrationStep {
	return &HydrationStep{climate: climate}
}

func (s *HydrationStep) Name() string { return "hydration" }

func (s *HydrationStep) Run(ctx context.Context, snap Snapshot) (Update, error) {
	profile := strings.TrimSpace(snap.Get(KeyUserContext))
	if profile == "" {
		profile = strings.TrimSpace(snap.Get(KeyUserGoal))
	}
	if profile == "" {
		return Update{
			KeyHydrationPlan: "Please provide your profile, climate and workouts so hydration targets can be calculated.",
		}, nil
	}

	week := []hydration.Workout{
		{Day: "Mon", Minutes: 45, Intensity: "moderate"},
		{Day: "Wed", Minutes: 30, Intensity: "vigorous"},
		{Day: "Sat", Minutes: 60, Intensity: "moderate"},
	}
	plan := hydration.Build(hydration.Profile{MassKg: 70, VitaminDLow: true}, s.climate, week)
	return Update{KeyHydrationPlan: plan.Format()}, nil
}
