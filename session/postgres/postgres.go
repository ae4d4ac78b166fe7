// Package postgres persists consultations in PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/livewell-ai/livewell/session"
)

const schema = `
CREATE TABLE IF NOT EXISTS consultations (
	id             TEXT PRIMARY KEY,
	goal           TEXT NOT NULL,
	fitness_plan   TEXT NOT NULL DEFAULT '',
	nutrition_plan TEXT NOT NULL DEFAULT '',
	hydration_plan TEXT NOT NULL DEFAULT '',
	summary        TEXT NOT NULL DEFAULT '',
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Store keeps consultations in a PostgreSQL table.
type Store struct {
	db *sql.DB
}

// NewStore opens the database, verifies the connection and ensures the
// consultations table exists.
func NewStore(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Save(ctx context.Context, c session.Consultation) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO consultations (id, goal, fitness_plan, nutrition_plan, hydration_plan, summary, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			goal = EXCLUDED.goal,
			fitness_plan = EXCLUDED.fitness_plan,
			nutrition_plan = EXCLUDED.nutrition_plan,
			hydration_plan = EXCLUDED.hydration_plan,
			summary = EXCLUDED.summary`,
		c.ID, c.Goal, c.FitnessPlan, c.NutritionPlan, c.HydrationPlan, c.Summary, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert consultation: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (session.Consultation, error) {
	var c session.Consultation
	err := s.db.QueryRowContext(ctx, `
		SELECT id, goal, fitness_plan, nutrition_plan, hydration_plan, summary, created_at
		FROM consultations WHERE id = $1`, id).
		Scan(&c.ID, &c.Goal, &c.FitnessPlan, &c.NutritionPlan, &c.HydrationPlan, &c.Summary, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return session.Consultation{}, session.ErrNotFound
	}
	if err != nil {
		return session.Consultation{}, fmt.Errorf("select consultation: %w", err)
	}
	return c, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error { return s.db.Close() }
