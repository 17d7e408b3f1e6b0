package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Progression is the per-user favorability ledger row. Level is always a
// pure function of the score; it is stored denormalized for cheap reads
// but must be recomputed on every mutation.
type Progression struct {
	bun.BaseModel       `bun:"table:progression"`
	UserID              int64     `bun:"user_id,pk" json:"user_id"`
	FavorabilityScore   int       `bun:"favorability_score" json:"favorability_score"`
	Level               int       `bun:"level" json:"level"`
	DailyMessagesSent   int       `bun:"daily_messages_sent" json:"daily_messages_sent"`
	DailyImagesUnlocked int       `bun:"daily_images_unlocked" json:"daily_images_unlocked"`
	DayWindowStart      time.Time `bun:"day_window_start" json:"day_window_start"`
	CreatedAt           time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
	UpdatedAt           time.Time `bun:"updated_at" json:"updated_at"`
}

// LevelForScore derives the tier from a favorability score.
func LevelForScore(score int) int {
	return score/100 + 1
}

// RollWindow resets the daily counters when the stored UTC day is older
// than the day of now. Returns true when a reset happened. Callers invoke
// this before touching the daily counters so stale windows never leak
// into a new day.
func (p *Progression) RollWindow(now time.Time) bool {
	today := now.UTC().Truncate(24 * time.Hour)
	if !p.DayWindowStart.Before(today) {
		return false
	}

	p.DailyMessagesSent = 0
	p.DailyImagesUnlocked = 0
	p.DayWindowStart = today
	return true
}
