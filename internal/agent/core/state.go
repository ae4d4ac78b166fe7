package core

// State field names. The schema is fixed when the pipeline is built; every
// step reads and writes these keys only.
const (
	KeyUserGoal      = "user_goal"
	KeyUserContext   = "user_context"
	KeyFitnessPlan   = "fitness_plan"
	KeyNutritionPlan = "nutrition_plan"
	KeyHydrationPlan = "hydration_plan"
	KeySummary       = "summary"
)

// StateKeys lists the schema in canonical order.
var StateKeys = []string{
	KeyUserGoal,
	KeyUserContext,
	KeyFitnessPlan,
	KeyNutritionPlan,
	KeyHydrationPlan,
	KeySummary,
}

// Update is the partial state diff a step returns. Keys absent from the
// update leave the corresponding state fields untouched.
type Update map[string]string

// Snapshot is the read-only view of state handed to steps. It is a copy, so
// a step cannot mutate shared state outside the diff-and-apply protocol.
type Snapshot map[string]string

// Get returns the value for key, or "" when unset.
func (s Snapshot) Get(key string) string { return s[key] }

// State is the shared record threaded through one consultation run. It is
// mutated exclusively through Apply, which the pipeline owns.
type State struct {
	values map[string]string
}

// NewState creates a run state seeded with the given fields.
func NewState(seed Update) *State {
	s := &State{values: make(map[string]string, len(StateKeys))}
	s.Apply(seed)
	return s
}

// Get returns the value for key, or "" when unset.
func (s *State) Get(key string) string { return s.values[key] }

// Apply merges a partial update: every key present overwrites, every key
// absent is untouched. Apply is total and never fails.
func (s *State) Apply(update Update) {
	for k, v := range update {
		s.values[k] = v
	}
}

// Snapshot returns a copy of the current state for a step to read.
func (s *State) Snapshot() Snapshot {
	snap := make(Snapshot, len(s.values))
	for k, v := range s.values {
		snap[k] = v
	}
	return snap
}
