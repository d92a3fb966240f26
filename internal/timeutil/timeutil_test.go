package timeutil

import (
	"testing"
	"time"
)

func TestDateUsesManila(t *testing.T) {
	// 18:30 UTC is already the next day in Manila.
	ts := time.Date(2024, 3, 9, 18, 30, 0, 0, time.UTC)
	if got := Date(ts); got != "2024-03-10" {
		t.Fatalf("expected 2024-03-10, got %s", got)
	}
	start := StartOfDay(ts)
	if start.Hour() != 0 || start.Day() != 10 {
		t.Fatalf("unexpected start of day: %v", start)
	}
}
