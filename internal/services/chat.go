package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"companion/internal"
	"companion/internal/datastore"
	"companion/internal/datastore/redis_store"
	"companion/internal/models"
	"companion/internal/pkg/caching"

	"github.com/go-redsync/redsync/v4"
	"github.com/google/uuid"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

const DEFAULT_TEXT_PROMPT_PREFIX = "Reply in a flirty, sweet, and loving tone as an AI girlfriend. Keep responses under 100 words and be affectionate"

// vocabulary that flips a turn into an image request
var imageKeywords = []string{"pic", "picture", "photo", "image", "show me", "selfie", "send"}

// topic keywords in priority order; first hit wins and overrides the
// sticky topic
var topicKeywords = []string{TOPIC_BEACH, TOPIC_CUTE, TOPIC_DRESS}

// StyleOptions carries the per-call prompt customization. Passed
// explicitly so the engine holds no ambient per-user settings.
type StyleOptions struct {
	TextStyle  string `json:"text_style"`
	ImageStyle string `json:"image_style"`
}

// IsImageRequest scans the message for the image-request vocabulary.
func IsImageRequest(text string) bool {
	lowered := strings.ToLower(text)
	for _, keyword := range imageKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

// DeriveTopic resolves the image topic for a request: an explicit
// keyword match wins, otherwise the sticky topic from earlier turns,
// otherwise the portrait default.
func DeriveTopic(text string, sticky string) string {
	lowered := strings.ToLower(text)
	for _, keyword := range topicKeywords {
		if strings.Contains(lowered, keyword) {
			return keyword
		}
	}

	if sticky != "" {
		return sticky
	}

	return TOPIC_PORTRAIT
}

type ServiceChat struct {
	container          *do.Injector
	redisDB            redis.UniversalClient
	rs                 *redsync.Redsync
	postgresDB         *bun.DB
	readonlyPostgresDB *bun.DB
	cache              caching.Cache
	readonlyCache      caching.ReadOnlyCache

	serviceProgression *ServiceProgression
	serviceGenerator   *ServiceGenerator
	serviceConfig      *ServiceConfig
}

func NewServiceChat(container *do.Injector) (*ServiceChat, error) {
	redisDB, err := do.InvokeNamed[redis.UniversalClient](container, "redis-db")
	if err != nil {
		return nil, err
	}

	rs, err := do.Invoke[*redsync.Redsync](container)
	if err != nil {
		return nil, err
	}

	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	readonlyPostgresDB, err := do.InvokeNamed[*bun.DB](container, "db-readonly")
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	readonlyCache, err := do.Invoke[caching.ReadOnlyCache](container)
	if err != nil {
		return nil, err
	}

	serviceProgression, err := do.Invoke[*ServiceProgression](container)
	if err != nil {
		return nil, err
	}

	serviceGenerator, err := do.Invoke[*ServiceGenerator](container)
	if err != nil {
		return nil, err
	}

	serviceConfig, err := do.Invoke[*ServiceConfig](container)
	if err != nil {
		return nil, err
	}

	return &ServiceChat{
		container, redisDB, rs, postgresDB, readonlyPostgresDB, cache, readonlyCache,
		serviceProgression, serviceGenerator, serviceConfig,
	}, nil
}

type SubmitResult struct {
	UserTurn    *models.ChatMessage `json:"user_turn"`
	ReplyTurn   *models.ChatMessage `json:"reply_turn"`
	Progression *models.Progression `json:"progression"`
	Reward      int                 `json:"reward"`
}

// SubmitMessage runs one full conversation turn: persist the user turn,
// classify intent, produce the reply (acknowledgement or generated),
// persist it, then grant the message reward. The whole call is
// serialized per user so the sticky topic and day counters cannot race.
// Empty input is a silent no-op.
func (service *ServiceChat) SubmitMessage(ctx context.Context, user *models.User, text string, opts StyleOptions) (*SubmitResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	mutex := service.rs.NewMutex(LockKeyUserChat(user.ID))
	if err := mutex.Lock(); err != nil {
		return nil, errorx.Wrap(ErrChatLocked, errorx.RateLimiting)
	}
	//nolint:errcheck
	defer mutex.Unlock()

	session, err := service.getOrNewChatSession(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	userTurn := &models.ChatMessage{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Message:   text,
		IsUser:    true,
		CreatedAt: time.Now(),
	}
	if _, err := datastore.InsertChatMessage(ctx, service.postgresDB, userTurn); err != nil {
		return nil, err
	}

	var replyTurn *models.ChatMessage
	if IsImageRequest(text) {
		topic := DeriveTopic(text, session.Topic)
		session.Topic = topic

		replyTurn = &models.ChatMessage{
			ID:           uuid.NewString(),
			UserID:       user.ID,
			Message:      IMAGE_ACK_REPLY,
			IsUser:       false,
			HasImage:     true,
			ContextTopic: &topic,
			CreatedAt:    time.Now(),
		}
	} else {
		replyTurn = &models.ChatMessage{
			ID:        uuid.NewString(),
			UserID:    user.ID,
			Message:   service.generateReply(ctx, user, text, opts),
			IsUser:    false,
			CreatedAt: time.Now(),
		}
	}

	// the user turn is already committed; a failure here must surface
	// rather than leave the conversation without its counterpart
	if _, err := datastore.InsertChatMessage(ctx, service.postgresDB, replyTurn); err != nil {
		return nil, err
	}

	progression, reward, err := service.serviceProgression.GrantMessageReward(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session.LastMessageAt = &now
	if _, err := redis_store.SaveChatSession(ctx, service.redisDB, session); err != nil {
		log.Println(err)
	}

	if err := service.cache.Delete(ctx, DBKeyUserMessages(user.ID)); err != nil {
		log.Println(err)
	}

	return &SubmitResult{
		UserTurn:    userTurn,
		ReplyTurn:   replyTurn,
		Progression: progression,
		Reward:      reward,
	}, nil
}

func (service *ServiceChat) generateReply(ctx context.Context, user *models.User, text string, opts StyleOptions) string {
	prefix := opts.TextStyle
	if prefix == "" {
		prefix, _ = service.serviceConfig.GetStringConfig(ctx, CONFIG_TEXT_PROMPT_PREFIX, DEFAULT_TEXT_PROMPT_PREFIX)
	}

	prompt := fmt.Sprintf("%s: %s", prefix, text)
	if persona, ok := models.FindPersona(user.PersonaID); ok {
		prompt = fmt.Sprintf("%s. Your personality: %s: %s", prefix, persona.Personality, text)
	}

	reply, err := service.serviceGenerator.GenerateText(prompt)
	if err != nil {
		// intentionally invisible to the user
		log.Println("text generator:", err)
		return FALLBACK_TEXT_REPLY
	}

	return reply
}

func (service *ServiceChat) GetMessages(ctx context.Context, userID int64) ([]*models.ChatMessage, error) {
	limit, err := service.serviceConfig.GetIntConfig(ctx, CONFIG_CHAT_HISTORY_LIMIT, CHAT_HISTORY_DEFAULT_LIMIT)
	if err != nil {
		limit = CHAT_HISTORY_DEFAULT_LIMIT
	}

	callback := func() ([]*models.ChatMessage, error) {
		return datastore.GetChatMessagesByUser(ctx, service.readonlyPostgresDB, userID, limit, 0)
	}

	return caching.UseCacheWithRO(ctx, service.readonlyCache, service.cache, DBKeyUserMessages(userID), CACHE_TTL_5_SECONDS, callback)
}

// SessionElapsed reports how long the current chat session has been
// running; zero when no session exists yet.
func (service *ServiceChat) SessionElapsed(ctx context.Context, userID int64) time.Duration {
	session, err := redis_store.GetChatSession(ctx, service.redisDB, userID)
	if err != nil || session == nil {
		return 0
	}

	return time.Since(session.StartedAt)
}

func (service *ServiceChat) getOrNewChatSession(ctx context.Context, userID int64) (*internal.ChatSession, error) {
	session, err := redis_store.GetChatSession(ctx, service.redisDB, userID)
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}

	if session == nil {
		session = &internal.ChatSession{
			UserID:    userID,
			StartedAt: time.Now(),
		}
	}

	return session, nil
}
