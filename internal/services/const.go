package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrChatLocked = errors.New("chat session locked")
var ErrGateLocked = errors.New("gate session locked")
var ErrGateBusy = errors.New("another unlock is already pending")
var ErrGateNotPending = errors.New("no pending unlock for this message")
var ErrInvalidGateTarget = errors.New("message is not eligible for unlock")
var ErrInvalidRewardAmount = errors.New("reward amount must not be negative")
var ErrPersonaNotFound = errors.New("unknown persona")

const (
	CONFIG_SERVER_MODE        = "SERVER_MODE"
	CONFIG_CHAT_HISTORY_LIMIT = "CHAT_HISTORY_LIMIT"
	CONFIG_TEXT_PROMPT_PREFIX = "TEXT_PROMPT_PREFIX"
	CONFIG_IMAGE_PROMPT_BASE  = "IMAGE_PROMPT_BASE"

	SERVER_MODE_DEVELOPMENT = "development"
	SERVER_MODE_STAGING     = "staging"
	SERVER_MODE_PRODUCTION  = "production"

	CHAT_HISTORY_DEFAULT_LIMIT = 200

	MESSAGE_REWARD_POINT       = 1
	MESSAGE_REWARD_BONUS_EVERY = 5
	IMAGE_UNLOCK_REWARD_POINT  = 15

	TASK_MESSAGES_TARGET        = 5
	TASK_IMAGES_TARGET          = 1
	TASK_SESSION_TARGET_MINUTES = 10

	CHAT_RATE_LIMIT_PER_MINUTE = 30

	CACHE_TTL_5_SECONDS = 5 * time.Second
	CACHE_TTL_1_MIN     = 1 * time.Minute
	CACHE_TTL_5_MINS    = 5 * time.Minute
	CACHE_TTL_1_HOUR    = 1 * time.Hour
	CACHE_TTL_1_DAY     = 24 * time.Hour
)

func LockKeyUserChat(userID int64) string {
	return fmt.Sprintf("lock:chat:%d", userID)
}

func LockKeyUserGate(userID int64) string {
	return fmt.Sprintf("lock:gate:%d", userID)
}

// db
func DBKeyUser(userID int64) string {
	return fmt.Sprintf("user:%d", userID)
}

func DBKeyMe(userID int64) string {
	return fmt.Sprintf("me:%d", userID)
}

func DBKeyConfig(key string) string {
	return fmt.Sprintf("config:%s", strings.ToLower(key))
}

func DBKeyUserProgression(userID int64) string {
	return fmt.Sprintf("progression:%d", userID)
}

func DBKeyUserMessages(userID int64) string {
	return fmt.Sprintf("chat_messages:%d", userID)
}

func LimitKeyUserChat(userID int64) string {
	return fmt.Sprintf("limit:chat:%d", userID)
}
