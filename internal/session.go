package internal

import (
	"time"
)

// ChatSession is the per-user conversation context kept in redis. Topic
// is the "sticky topic": the last explicitly matched image topic, reused
// for follow-up image requests until a new keyword overrides it.
type ChatSession struct {
	UserID        int64      `json:"user_id"`
	Topic         string     `json:"topic"`
	StartedAt     time.Time  `json:"started_at"`
	LastMessageAt *time.Time `json:"last_message_at"`
}

type GateState string

const (
	GateIdle    GateState = "idle"
	GatePending GateState = "pending"
	GateGranted GateState = "granted"
)

// RewardSession is the ephemeral unlock flow for a single gated message.
// At most one pending session exists per user; a missing redis entry
// means Idle.
type RewardSession struct {
	UserID    int64     `json:"user_id"`
	State     GateState `json:"state"`
	MessageID string    `json:"message_id"`
	StartedAt time.Time `json:"started_at"`
}

func (s *RewardSession) Pending() bool {
	return s != nil && s.State == GatePending
}
