package capability

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestRegisterRejectsDuplicates(t *testing.T) {
	reg := NewRegistry()
	cap := Capability{
		Name: "time",
		Exec: func(ctx context.Context, args map[string]interface{}) (string, error) { return "now", nil },
	}
	if err := reg.Register(cap); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := reg.Register(cap); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
}

func TestDefinitionsPreserveRegistrationOrder(t *testing.T) {
	reg := NewRegistry()
	for _, name := range []string{"weather", "time"} {
		err := reg.Register(Capability{
			Name: name,
			Exec: func(ctx context.Context, args map[string]interface{}) (string, error) { return "", nil },
		})
		if err != nil {
			t.Fatalf("Register %s: %v", name, err)
		}
	}
	defs := reg.Definitions()
	if len(defs) != 2 || defs[0].Name != "weather" || defs[1].Name != "time" {
		t.Fatalf("unexpected definitions order: %+v", defs)
	}
	if defs[0].Parameters == nil {
		t.Fatalf("expected default parameters schema")
	}
}

func TestInvokeUnknownCapability(t *testing.T) {
	reg := NewRegistry()
	text, failed := reg.Invoke(context.Background(), "bogus", nil)
	if !failed {
		t.Fatalf("expected failure for unknown capability")
	}
	if !strings.Contains(text, "Unknown capability: bogus") {
		t.Fatalf("missing unknown-capability marker: %q", text)
	}
}

func TestInvokeAbsorbsExecutorError(t *testing.T) {
	reg := NewRegistry()
	err := reg.Register(Capability{
		Name: "weather",
		Exec: func(ctx context.Context, args map[string]interface{}) (string, error) {
			return "", errors.New("upstream timeout")
		},
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	text, failed := reg.Invoke(context.Background(), "weather", nil)
	if !failed {
		t.Fatalf("expected failure text")
	}
	if !strings.Contains(text, "weather") || !strings.Contains(text, "upstream timeout") {
		t.Fatalf("failure text should name capability and cause: %q", text)
	}
}

func TestInvokeAbsorbsPanic(t *testing.T) {
	reg := NewRegistry()
	err := reg.Register(Capability{
		Name: "time",
		Exec: func(ctx context.Context, args map[string]interface{}) (string, error) {
			panic("boom")
		},
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	text, failed := reg.Invoke(context.Background(), "time", nil)
	if !failed || !strings.Contains(text, "boom") {
		t.Fatalf("expected panic to be absorbed into failure text, got %q", text)
	}
}

func TestInvokeSuccess(t *testing.T) {
	reg := NewRegistry()
	err := reg.Register(Capability{
		Name: "time",
		Exec: func(ctx context.Context, args map[string]interface{}) (string, error) {
			return "Local time now: 12:00", nil
		},
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	text, failed := reg.Invoke(context.Background(), "time", map[string]interface{}{})
	if failed {
		t.Fatalf("unexpected failure: %q", text)
	}
	if text != "Local time now: 12:00" {
		t.Fatalf("unexpected text: %q", text)
	}
}
