package services

import (
	"errors"
	"testing"
	"time"

	"companion/internal"
	"companion/internal/models"
)

func lockableMessage() *models.ChatMessage {
	return &models.ChatMessage{
		ID:        "msg-1",
		UserID:    42,
		Message:   IMAGE_ACK_REPLY,
		HasImage:  true,
		CreatedAt: time.Now(),
	}
}

func TestBeginGateSession(t *testing.T) {
	session, err := BeginGateSession(nil, lockableMessage())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.State != internal.GatePending {
		t.Fatalf("expected pending state, got %q", session.State)
	}
	if session.UserID != 42 || session.MessageID != "msg-1" {
		t.Fatalf("session not bound to target: %+v", session)
	}
}

func TestBeginGateSessionBusy(t *testing.T) {
	current := &internal.RewardSession{
		UserID:    42,
		State:     internal.GatePending,
		MessageID: "msg-0",
		StartedAt: time.Now(),
	}

	_, err := BeginGateSession(current, lockableMessage())
	if !errors.Is(err, ErrGateBusy) {
		t.Fatalf("expected ErrGateBusy, got %v", err)
	}
}

func TestBeginGateSessionAfterGrant(t *testing.T) {
	// a granted session is spent; a new flow may start
	current := &internal.RewardSession{
		UserID:    42,
		State:     internal.GateGranted,
		MessageID: "msg-0",
		StartedAt: time.Now(),
	}

	session, err := BeginGateSession(current, lockableMessage())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.MessageID != "msg-1" {
		t.Fatalf("expected new target, got %q", session.MessageID)
	}
}

func TestBeginGateSessionInvalidTarget(t *testing.T) {
	_, err := BeginGateSession(nil, nil)
	if !errors.Is(err, ErrInvalidGateTarget) {
		t.Fatalf("expected ErrInvalidGateTarget for nil target, got %v", err)
	}

	// plain text turn
	_, err = BeginGateSession(nil, &models.ChatMessage{ID: "msg-2", UserID: 42, Message: "hello"})
	if !errors.Is(err, ErrInvalidGateTarget) {
		t.Fatalf("expected ErrInvalidGateTarget for text turn, got %v", err)
	}

	// already unlocked
	unlocked := lockableMessage()
	unlocked.ImageUnlocked = true
	_, err = BeginGateSession(nil, unlocked)
	if !errors.Is(err, ErrInvalidGateTarget) {
		t.Fatalf("expected ErrInvalidGateTarget for unlocked turn, got %v", err)
	}
}

func TestGrantGateSession(t *testing.T) {
	current := &internal.RewardSession{
		UserID:    42,
		State:     internal.GatePending,
		MessageID: "msg-1",
		StartedAt: time.Now(),
	}

	granted, err := GrantGateSession(current, "msg-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if granted.State != internal.GateGranted {
		t.Fatalf("expected granted state, got %q", granted.State)
	}
	// the pending session must not be mutated in place
	if current.State != internal.GatePending {
		t.Fatalf("input session mutated: %+v", current)
	}
}

func TestGrantGateSessionNotPending(t *testing.T) {
	if _, err := GrantGateSession(nil, "msg-1"); !errors.Is(err, ErrGateNotPending) {
		t.Fatalf("expected ErrGateNotPending for nil session, got %v", err)
	}

	current := &internal.RewardSession{
		UserID:    42,
		State:     internal.GatePending,
		MessageID: "msg-1",
		StartedAt: time.Now(),
	}
	if _, err := GrantGateSession(current, "msg-other"); !errors.Is(err, ErrGateNotPending) {
		t.Fatalf("expected ErrGateNotPending for mismatched target, got %v", err)
	}

	spent := &internal.RewardSession{
		UserID:    42,
		State:     internal.GateGranted,
		MessageID: "msg-1",
		StartedAt: time.Now(),
	}
	if _, err := GrantGateSession(spent, "msg-1"); !errors.Is(err, ErrGateNotPending) {
		t.Fatalf("expected ErrGateNotPending for spent session, got %v", err)
	}
}

func TestRewardSessionPending(t *testing.T) {
	var session *internal.RewardSession
	if session.Pending() {
		t.Fatal("nil session must not report pending")
	}

	session = &internal.RewardSession{State: internal.GatePending}
	if !session.Pending() {
		t.Fatal("pending session must report pending")
	}

	session.State = internal.GateGranted
	if session.Pending() {
		t.Fatal("granted session must not report pending")
	}
}
