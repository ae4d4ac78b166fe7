package core

import "context"

// Step is one stage of the consultation pipeline. A step reads a snapshot of
// the shared state and returns the partial update it wants applied; it never
// mutates state directly. Returning an error is reserved for programming or
// contract violations and aborts the run; ordinary failures (blank inputs,
// capability errors, engine transport trouble) must be absorbed into a
// user-facing placeholder update instead.
type Step interface {
	Name() string
	Run(ctx context.Context, snap Snapshot) (Update, error)
}
