// Package session defines persistence for completed consultations.
package session

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no consultation exists for an id.
var ErrNotFound = errors.New("consultation not found")

// Consultation is one finished advisory run.
type Consultation struct {
	ID            string    `json:"id"`
	Goal          string    `json:"goal"`
	FitnessPlan   string    `json:"fitness_plan"`
	NutritionPlan string    `json:"nutrition_plan"`
	HydrationPlan string    `json:"hydration_plan"`
	Summary       string    `json:"summary"`
	CreatedAt     time.Time `json:"created_at"`
}

// Store persists consultations for later retrieval.
type Store interface {
	Save(ctx context.Context, c Consultation) error
	Get(ctx context.Context, id string) (Consultation, error)
}
