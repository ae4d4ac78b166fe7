package localtime

import (
	"strings"
	"testing"
	"time"
)

func TestFormat(t *testing.T) {
	ts := time.Date(2025, 9, 25, 14, 30, 5, 0, time.UTC)
	got := Format("Asia/Singapore", ts)
	want := "Local time in Asia/Singapore now: 2025-09-25 14:30:05"
	if got != want {
		t.Fatalf("Format = %q, want %q", got, want)
	}
}

func TestNow(t *testing.T) {
	got, err := Now("UTC")
	if err != nil {
		t.Fatalf("Now(UTC): %v", err)
	}
	if !strings.HasPrefix(got, "Local time in UTC now: ") {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestNowInvalidTimezone(t *testing.T) {
	if _, err := Now("Nowhere/Never"); err == nil {
		t.Fatal("expected an error for an unknown timezone")
	}
}
