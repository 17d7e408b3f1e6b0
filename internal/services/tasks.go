package services

import (
	"time"
)

type TaskStatus struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	Progress  int    `json:"progress"`
	Total     int    `json:"total"`
}

// ComputeDailyTasks projects the day's counters into task statuses. It
// reads counters only, never mutates them, and is safe to recompute at
// any frequency.
func ComputeDailyTasks(messagesSent int, imagesUnlocked int, sessionElapsed time.Duration) []TaskStatus {
	sessionMinutes := int(sessionElapsed.Minutes())

	return []TaskStatus{
		{
			ID:        "messages",
			Title:     "Send 5 Messages",
			Completed: messagesSent >= TASK_MESSAGES_TARGET,
			Progress:  clampProgress(messagesSent, TASK_MESSAGES_TARGET),
			Total:     TASK_MESSAGES_TARGET,
		},
		{
			ID:        "image",
			Title:     "Unlock an Image",
			Completed: imagesUnlocked >= TASK_IMAGES_TARGET,
			Progress:  clampProgress(imagesUnlocked, TASK_IMAGES_TARGET),
			Total:     TASK_IMAGES_TARGET,
		},
		{
			ID:        "session",
			Title:     "Chat for 10 minutes",
			Completed: sessionMinutes >= TASK_SESSION_TARGET_MINUTES,
			Progress:  clampProgress(sessionMinutes, TASK_SESSION_TARGET_MINUTES),
			Total:     TASK_SESSION_TARGET_MINUTES,
		},
	}
}

func clampProgress(value, total int) int {
	if value > total {
		return total
	}
	if value < 0 {
		return 0
	}
	return value
}
