package models

import (
	"testing"
)

func TestFindPersona(t *testing.T) {
	persona, ok := FindPersona(DefaultPersonaID)
	if !ok {
		t.Fatal("default persona must exist")
	}
	if persona.Name != "Aria" {
		t.Fatalf("expected Aria, got %q", persona.Name)
	}

	if _, ok := FindPersona("nobody"); ok {
		t.Fatal("unknown persona id must not resolve")
	}
}

func TestAchievementsFor(t *testing.T) {
	if got := AchievementsFor(nil); len(got) != 0 {
		t.Fatalf("expected no achievements for nil progression, got %d", len(got))
	}

	fresh := &Progression{Level: 1}
	if got := AchievementsFor(fresh); len(got) != 0 {
		t.Fatalf("expected no achievements for a fresh ledger, got %v", got)
	}

	veteran := &Progression{
		FavorabilityScore: 520,
		Level:             LevelForScore(520),
		DailyMessagesSent: 51,
	}
	got := AchievementsFor(veteran)
	if len(got) != 3 {
		t.Fatalf("expected 3 achievements, got %v", got)
	}
}
