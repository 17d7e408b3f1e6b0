package services

import (
	"errors"
	"testing"

	"companion/internal/models"
)

func TestApplyReward(t *testing.T) {
	state := models.Progression{UserID: 1, FavorabilityScore: 95, Level: 1}

	next, err := ApplyReward(state, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.FavorabilityScore != 105 {
		t.Fatalf("expected score 105, got %d", next.FavorabilityScore)
	}
	if next.Level != 2 {
		t.Fatalf("expected level 2, got %d", next.Level)
	}

	// input must stay untouched
	if state.FavorabilityScore != 95 || state.Level != 1 {
		t.Fatalf("input state mutated: %+v", state)
	}
}

func TestApplyRewardZero(t *testing.T) {
	state := models.Progression{UserID: 1, FavorabilityScore: 100, Level: 1}

	next, err := ApplyReward(state, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.FavorabilityScore != 100 {
		t.Fatalf("expected score 100, got %d", next.FavorabilityScore)
	}
	// level rederived even on a zero delta
	if next.Level != 2 {
		t.Fatalf("expected level 2, got %d", next.Level)
	}
}

func TestApplyRewardNegative(t *testing.T) {
	state := models.Progression{UserID: 1, FavorabilityScore: 50, Level: 1}

	_, err := ApplyReward(state, -5)
	if !errors.Is(err, ErrInvalidRewardAmount) {
		t.Fatalf("expected ErrInvalidRewardAmount, got %v", err)
	}
}

func TestApplyRewardLevelInvariant(t *testing.T) {
	state := models.Progression{UserID: 1}
	for i := 0; i < 1000; i++ {
		next, err := ApplyReward(state, i%7)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := models.LevelForScore(next.FavorabilityScore); next.Level != want {
			t.Fatalf("score %d: expected level %d, got %d", next.FavorabilityScore, want, next.Level)
		}
		if next.Level < state.Level {
			t.Fatalf("level went down: %d -> %d", state.Level, next.Level)
		}
		state = next
	}
}

func TestMessageReward(t *testing.T) {
	cases := []struct {
		count  int
		reward int
	}{
		{1, 1},
		{2, 1},
		{4, 1},
		{5, 2},
		{6, 1},
		{10, 2},
		{15, 2},
		{49, 1},
		{50, 2},
	}

	for _, tc := range cases {
		if got := MessageReward(tc.count); got != tc.reward {
			t.Fatalf("count %d: expected reward %d, got %d", tc.count, tc.reward, got)
		}
	}
}
