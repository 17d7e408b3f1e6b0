package services

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"companion/internal/datastore"
	"companion/internal/models"
	"companion/internal/pkg/caching"

	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

// ApplyReward adds a non-negative point delta to the favorability score
// and rederives the level. Pure: the input state is never mutated and
// persistence stays with the caller.
func ApplyReward(state models.Progression, amount int) (models.Progression, error) {
	if amount < 0 {
		return state, ErrInvalidRewardAmount
	}

	state.FavorabilityScore += amount
	state.Level = models.LevelForScore(state.FavorabilityScore)
	return state, nil
}

// MessageReward computes the points for one sent message given the daily
// count after the increment: base point plus a bonus on every 5th.
func MessageReward(dailyMessagesSent int) int {
	reward := MESSAGE_REWARD_POINT
	if dailyMessagesSent > 0 && dailyMessagesSent%MESSAGE_REWARD_BONUS_EVERY == 0 {
		reward++
	}
	return reward
}

type ServiceProgression struct {
	container          *do.Injector
	postgresDB         *bun.DB
	readonlyPostgresDB *bun.DB
	cache              caching.Cache
	readonlyCache      caching.ReadOnlyCache
}

func NewServiceProgression(container *do.Injector) (*ServiceProgression, error) {
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

	return &ServiceProgression{container, postgresDB, readonlyPostgresDB, cache, readonlyCache}, nil
}

func (service *ServiceProgression) GetProgression(ctx context.Context, userID int64) (*models.Progression, error) {
	callback := func() (*models.Progression, error) {
		return datastore.FindProgressionByUserID(ctx, service.readonlyPostgresDB, userID)
	}

	return caching.UseCacheWithRO(ctx, service.readonlyCache, service.cache, DBKeyUserProgression(userID), CACHE_TTL_1_MIN, callback)
}

func (service *ServiceProgression) GetOrCreateProgression(ctx context.Context, userID int64) (*models.Progression, error) {
	progression, err := service.GetProgression(ctx, userID)
	if err == nil && progression != nil {
		return progression, nil
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) && !errors.Is(err, redis.Nil) {
		return nil, err
	}

	progression = &models.Progression{
		UserID:            userID,
		FavorabilityScore: 0,
		Level:             models.LevelForScore(0),
		DayWindowStart:    time.Now().UTC().Truncate(24 * time.Hour),
		CreatedAt:         time.Now(),
	}

	if _, err := datastore.InsertProgression(ctx, service.postgresDB, progression); err != nil {
		return nil, err
	}

	return progression, nil
}

// GrantMessageReward rolls the day window, counts the message, and
// applies the per-message reward. Returns the persisted state and the
// points granted. Callers hold the user's chat mutex.
func (service *ServiceProgression) GrantMessageReward(ctx context.Context, userID int64) (*models.Progression, int, error) {
	progression, err := service.GetOrCreateProgression(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	progression.RollWindow(time.Now())
	progression.DailyMessagesSent++

	reward := MessageReward(progression.DailyMessagesSent)
	next, err := ApplyReward(*progression, reward)
	if err != nil {
		return nil, 0, err
	}

	if _, err := datastore.UpdateProgression(ctx, service.postgresDB, &next); err != nil {
		return nil, 0, err
	}

	service.clearCache(ctx, userID)
	return &next, reward, nil
}

// GrantUnlockReward applies the fixed image-unlock reward and counts the
// unlock against the daily window. Callers hold the user's gate mutex.
func (service *ServiceProgression) GrantUnlockReward(ctx context.Context, userID int64) (*models.Progression, error) {
	progression, err := service.GetOrCreateProgression(ctx, userID)
	if err != nil {
		return nil, err
	}

	progression.RollWindow(time.Now())
	progression.DailyImagesUnlocked++

	next, err := ApplyReward(*progression, IMAGE_UNLOCK_REWARD_POINT)
	if err != nil {
		return nil, err
	}

	if _, err := datastore.UpdateProgression(ctx, service.postgresDB, &next); err != nil {
		return nil, err
	}

	service.clearCache(ctx, userID)
	return &next, nil
}

func (service *ServiceProgression) clearCache(ctx context.Context, userID int64) {
	if err := service.cache.Delete(ctx, DBKeyUserProgression(userID)); err != nil {
		log.Println(err)
	}
	if err := service.cache.Delete(ctx, DBKeyMe(userID)); err != nil {
		log.Println(err)
	}
}
