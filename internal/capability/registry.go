package capability

import (
	"context"
	"fmt"

	"github.com/livewell-ai/livewell/models"
)

// Executor runs one capability invocation. Arguments arrive as decoded JSON.
type Executor func(ctx context.Context, args map[string]interface{}) (string, error)

// Capability is a named text-producing function the reasoning engine may
// request mid-conversation.
type Capability struct {
	Name        string
	Description string
	Parameters  map[string]interface{} // JSON schema for arguments
	Exec        Executor
}

// EmptyParameters is the schema for capabilities that take no arguments.
func EmptyParameters() map[string]interface{} {
	return map[string]interface{}{
		"type":                 "object",
		"properties":           map[string]interface{}{},
		"additionalProperties": false,
	}
}

// Registry holds capabilities keyed by name. It is populated at startup and
// read-only afterwards, so concurrent Invoke calls are safe.
type Registry struct {
	order []string
	caps  map[string]Capability
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{caps: make(map[string]Capability)}
}

// Register adds a capability. Duplicate names are rejected.
func (r *Registry) Register(c Capability) error {
	if c.Name == "" {
		return fmt.Errorf("capability name is empty")
	}
	if c.Exec == nil {
		return fmt.Errorf("capability %s has no executor", c.Name)
	}
	if _, ok := r.caps[c.Name]; ok {
		return fmt.Errorf("capability %s already registered", c.Name)
	}
	if c.Parameters == nil {
		c.Parameters = EmptyParameters()
	}
	r.caps[c.Name] = c
	r.order = append(r.order, c.Name)
	return nil
}

// Definitions returns declared capabilities in registration order.
func (r *Registry) Definitions() []models.ToolDefinition {
	defs := make([]models.ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		c := r.caps[name]
		defs = append(defs, models.ToolDefinition{
			Name:        c.Name,
			Description: c.Description,
			Parameters:  c.Parameters,
		})
	}
	return defs
}

// Invoke runs a capability by name. It never returns an error to the caller:
// unknown names, executor failures and panics all come back as failure text
// so the tool-call loop can feed them to the engine as ordinary results.
func (r *Registry) Invoke(ctx context.Context, name string, args map[string]interface{}) (text string, failed bool) {
	c, ok := r.caps[name]
	if !ok {
		return fmt.Sprintf("Unknown capability: %s", name), true
	}

	defer func() {
		if rec := recover(); rec != nil {
			text = fmt.Sprintf("(capability '%s' failed: panic: %v)", name, rec)
			failed = true
		}
	}()

	out, err := c.Exec(ctx, args)
	if err != nil {
		return fmt.Sprintf("(capability '%s' failed: %v)", name, err), true
	}
	return out, false
}
