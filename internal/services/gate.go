package services

import (
	"context"
	"errors"
	"log"
	"time"

	"companion/internal"
	"companion/internal/datastore"
	"companion/internal/datastore/redis_store"
	"companion/internal/models"
	"companion/internal/pkg/caching"

	"github.com/go-redsync/redsync/v4"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

const DEFAULT_IMAGE_PROMPT_BASE = "beautiful anime girlfriend, high quality, detailed"

// BeginGateSession is the Idle → Pending transition. The target must be
// a locked image turn and no other session may be pending for the user.
func BeginGateSession(current *internal.RewardSession, target *models.ChatMessage) (*internal.RewardSession, error) {
	if current.Pending() {
		return nil, ErrGateBusy
	}

	if target == nil || !target.Lockable() {
		return nil, ErrInvalidGateTarget
	}

	return &internal.RewardSession{
		UserID:    target.UserID,
		State:     internal.GatePending,
		MessageID: target.ID,
		StartedAt: time.Now(),
	}, nil
}

// GrantGateSession is the Pending → Granted transition; it only checks
// the state machine, the unlock side effects live with the caller.
func GrantGateSession(current *internal.RewardSession, messageID string) (*internal.RewardSession, error) {
	if !current.Pending() || current.MessageID != messageID {
		return nil, ErrGateNotPending
	}

	granted := *current
	granted.State = internal.GateGranted
	return &granted, nil
}

type ServiceRewardGate struct {
	container          *do.Injector
	redisDB            redis.UniversalClient
	rs                 *redsync.Redsync
	postgresDB         *bun.DB
	cache              caching.Cache

	serviceProgression *ServiceProgression
	serviceGenerator   *ServiceGenerator
	serviceConfig      *ServiceConfig
}

func NewServiceRewardGate(container *do.Injector) (*ServiceRewardGate, error) {
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

	cache, err := do.Invoke[caching.Cache](container)
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

	return &ServiceRewardGate{
		container, redisDB, rs, postgresDB, cache,
		serviceProgression, serviceGenerator, serviceConfig,
	}, nil
}

// Begin opens the unlock flow for a gated message.
func (service *ServiceRewardGate) Begin(ctx context.Context, user *models.User, messageID string) (*internal.RewardSession, error) {
	mutex := service.rs.NewMutex(LockKeyUserGate(user.ID))
	if err := mutex.Lock(); err != nil {
		return nil, errorx.Wrap(ErrGateLocked, errorx.RateLimiting)
	}
	//nolint:errcheck
	defer mutex.Unlock()

	current, err := service.currentSession(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	message, err := datastore.FindChatMessageByID(ctx, service.postgresDB, user.ID, messageID)
	if err != nil {
		return nil, errorx.Wrap(ErrInvalidGateTarget, errorx.NotExist)
	}

	session, err := BeginGateSession(current, message)
	if err != nil {
		return nil, err
	}

	return redis_store.SaveGateSession(ctx, service.redisDB, session)
}

// Complete consumes the reward-completed signal: unlock the image with a
// generated (or fallback) URL and grant the unlock reward. The signal is
// trusted as-is; verifying the ad actually played is out of scope.
func (service *ServiceRewardGate) Complete(ctx context.Context, user *models.User, messageID string, opts StyleOptions) (*models.ChatMessage, *models.Progression, error) {
	mutex := service.rs.NewMutex(LockKeyUserGate(user.ID))
	if err := mutex.Lock(); err != nil {
		return nil, nil, errorx.Wrap(ErrGateLocked, errorx.RateLimiting)
	}
	//nolint:errcheck
	defer mutex.Unlock()

	current, err := service.currentSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	granted, err := GrantGateSession(current, messageID)
	if err != nil {
		return nil, nil, err
	}

	message, err := datastore.FindChatMessageByID(ctx, service.postgresDB, user.ID, messageID)
	if err != nil {
		return nil, nil, errorx.Wrap(ErrInvalidGateTarget, errorx.NotExist)
	}

	imageURL := service.resolveImageURL(ctx, message.Topic(), opts)

	unlocked, err := datastore.UnlockChatMessageImage(ctx, service.postgresDB, user.ID, messageID, imageURL)
	if err != nil {
		return nil, nil, err
	}
	if !unlocked {
		// lost the race with another writer; reward stays single-shot
		return nil, nil, ErrInvalidGateTarget
	}

	progression, err := service.serviceProgression.GrantUnlockReward(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	if _, err := redis_store.SaveGateSession(ctx, service.redisDB, granted); err != nil {
		log.Println(err)
	}

	if err := service.cache.Delete(ctx, DBKeyUserMessages(user.ID)); err != nil {
		log.Println(err)
	}

	message.ImageUnlocked = true
	message.ImageURL = &imageURL
	return message, progression, nil
}

// Cancel dismisses a pending flow with no side effects. Dismissing when
// nothing is pending is a no-op.
func (service *ServiceRewardGate) Cancel(ctx context.Context, user *models.User, messageID string) error {
	mutex := service.rs.NewMutex(LockKeyUserGate(user.ID))
	if err := mutex.Lock(); err != nil {
		return errorx.Wrap(ErrGateLocked, errorx.RateLimiting)
	}
	//nolint:errcheck
	defer mutex.Unlock()

	current, err := service.currentSession(ctx, user.ID)
	if err != nil {
		return err
	}

	if !current.Pending() {
		return nil
	}

	if current.MessageID != messageID {
		return ErrGateNotPending
	}

	return redis_store.DeleteGateSession(ctx, service.redisDB, user.ID)
}

func (service *ServiceRewardGate) Session(ctx context.Context, userID int64) (*internal.RewardSession, error) {
	return service.currentSession(ctx, userID)
}

func (service *ServiceRewardGate) currentSession(ctx context.Context, userID int64) (*internal.RewardSession, error) {
	session, err := redis_store.GetGateSession(ctx, service.redisDB, userID)
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}

	return session, nil
}

// resolveImageURL never fails: generator errors downgrade to the
// deterministic per-topic fallback so the unlock always completes.
func (service *ServiceRewardGate) resolveImageURL(ctx context.Context, topic string, opts StyleOptions) string {
	promptBase := opts.ImageStyle
	if promptBase == "" {
		promptBase, _ = service.serviceConfig.GetStringConfig(ctx, CONFIG_IMAGE_PROMPT_BASE, DEFAULT_IMAGE_PROMPT_BASE)
	}

	url, err := service.serviceGenerator.GenerateImage(promptBase, topic)
	if err != nil {
		log.Println("image generator:", err)
		return FallbackImageURL(topic)
	}

	return url
}
