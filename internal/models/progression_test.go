package models

import (
	"testing"
	"time"
)

func TestLevelForScore(t *testing.T) {
	cases := []struct {
		score int
		level int
	}{
		{0, 1},
		{50, 1},
		{99, 1},
		{100, 2},
		{199, 2},
		{200, 3},
		{1000, 11},
	}

	for _, tc := range cases {
		if got := LevelForScore(tc.score); got != tc.level {
			t.Fatalf("score %d: expected level %d, got %d", tc.score, tc.level, got)
		}
	}
}

func TestRollWindow(t *testing.T) {
	now := time.Date(2025, 6, 15, 13, 30, 0, 0, time.UTC)

	p := &Progression{
		UserID:              1,
		DailyMessagesSent:   12,
		DailyImagesUnlocked: 2,
		DayWindowStart:      time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC),
	}

	if !p.RollWindow(now) {
		t.Fatal("expected a reset for a stale window")
	}
	if p.DailyMessagesSent != 0 || p.DailyImagesUnlocked != 0 {
		t.Fatalf("daily counters not reset: %+v", p)
	}
	if !p.DayWindowStart.Equal(now.Truncate(24 * time.Hour)) {
		t.Fatalf("window not moved to today: %v", p.DayWindowStart)
	}
}

func TestRollWindowSameDay(t *testing.T) {
	now := time.Date(2025, 6, 15, 23, 59, 0, 0, time.UTC)

	p := &Progression{
		UserID:            1,
		DailyMessagesSent: 3,
		DayWindowStart:    time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
	}

	if p.RollWindow(now) {
		t.Fatal("unexpected reset within the same day")
	}
	if p.DailyMessagesSent != 3 {
		t.Fatalf("counter changed without a reset: %d", p.DailyMessagesSent)
	}
}

func TestRollWindowCrossesMidnight(t *testing.T) {
	p := &Progression{
		UserID:            1,
		DailyMessagesSent: 7,
		DayWindowStart:    time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
	}

	justBefore := time.Date(2025, 6, 15, 23, 59, 59, 0, time.UTC)
	if p.RollWindow(justBefore) {
		t.Fatal("unexpected reset before midnight")
	}

	justAfter := time.Date(2025, 6, 16, 0, 0, 1, 0, time.UTC)
	if !p.RollWindow(justAfter) {
		t.Fatal("expected a reset after midnight")
	}
}
