package core

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/livewell-ai/livewell/internal/telemetry"
)

// Pipeline executes an ordered sequence of steps over a shared state record.
// Steps run strictly sequentially; after each one the returned partial
// update is applied before the next step reads its snapshot. The pipeline is
// the sole owner of state writes.
type Pipeline struct {
	steps     []Step
	logger    *log.Logger
	telemetry *telemetry.Telemetry
}

// NewPipeline builds a pipeline over the given steps in declared order.
func NewPipeline(logger *log.Logger, tele *telemetry.Telemetry, steps ...Step) *Pipeline {
	return &Pipeline{steps: steps, logger: logger, telemetry: tele}
}

// StepNames returns the execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, s := range p.steps {
		names[i] = s.Name()
	}
	return names
}

// Run threads the seed state through every step and returns the final state.
// A no-op update from a step never aborts the run; only a step returning an
// error (programming/contract violation class) does.
func (p *Pipeline) Run(ctx context.Context, seed Update) (Snapshot, error) {
	state := NewState(seed)

	for _, step := range p.steps {
		start := time.Now()
		update, err := step.Run(ctx, state.Snapshot())
		if err != nil {
			p.telemetry.RecordConsultation(false)
			return nil, fmt.Errorf("step %s: %w", step.Name(), err)
		}
		state.Apply(update)
		elapsed := time.Since(start)
		p.telemetry.ObserveStep(step.Name(), elapsed)
		p.logger.Printf("step %s finished in %s (%d fields updated)", step.Name(), elapsed.Round(time.Millisecond), len(update))
	}

	p.telemetry.RecordConsultation(true)
	return state.Snapshot(), nil
}
