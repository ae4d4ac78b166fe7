package inmemory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/livewell-ai/livewell/session"
)

func TestSaveAndGet(t *testing.T) {
	s := NewStore(0)
	ctx := context.Background()

	c := session.Consultation{ID: "abc", Goal: "run a 10k", Summary: "train weekly"}
	if err := s.Save(ctx, c); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Get(ctx, "abc")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Goal != "run a 10k" || got.Summary != "train weekly" {
		t.Fatalf("unexpected consultation: %+v", got)
	}
}

func TestGetMissing(t *testing.T) {
	s := NewStore(0)
	if _, err := s.Get(context.Background(), "nope"); !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestTTLExpiry(t *testing.T) {
	s := NewStore(10 * time.Millisecond)
	ctx := context.Background()

	if err := s.Save(ctx, session.Consultation{ID: "old"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	if _, err := s.Get(ctx, "old"); !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound after expiry", err)
	}
}
