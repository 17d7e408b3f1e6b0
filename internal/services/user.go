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

type ServiceUser struct {
	container          *do.Injector
	postgresDB         *bun.DB
	readonlyPostgresDB *bun.DB
	cache              caching.Cache
	readonlyCache      caching.ReadOnlyCache

	serviceProgression *ServiceProgression
}

func NewServiceUser(container *do.Injector) (*ServiceUser, error) {
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

	return &ServiceUser{container, postgresDB, readonlyPostgresDB, cache, readonlyCache, serviceProgression}, nil
}

func (service *ServiceUser) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	callback := func() (*models.User, error) {
		return datastore.FindUserByID(ctx, service.readonlyPostgresDB, userID)
	}

	return caching.UseCacheWithRO(ctx, service.readonlyCache, service.cache, DBKeyUser(userID), CACHE_TTL_5_MINS, callback)
}

func (service *ServiceUser) FindOrCreateUser(ctx context.Context, userAuth *models.UserFromAuth) (*models.User, error) {
	user, err := service.GetUser(ctx, userAuth.ID)
	if err == nil && user != nil {
		return user, nil
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) && !errors.Is(err, redis.Nil) {
		return nil, err
	}

	user = &models.User{
		ID:        userAuth.ID,
		Username:  userAuth.Username,
		PersonaID: models.DefaultPersonaID,
		CreatedAt: time.Now(),
		IsNewUser: true,
	}

	if _, err := datastore.CreateUser(ctx, service.postgresDB, user); err != nil {
		return nil, err
	}

	// seed the ledger row so the first turn reads a consistent state
	if _, err := service.serviceProgression.GetOrCreateProgression(ctx, user.ID); err != nil {
		return nil, err
	}

	return user, nil
}

// Me returns the user hydrated with progression and derived achievement
// badges.
func (service *ServiceUser) Me(ctx context.Context, user *models.User) (*models.User, error) {
	progression, err := service.serviceProgression.GetOrCreateProgression(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	user.Progression = progression
	user.Achievements = models.AchievementsFor(progression)
	return user, nil
}

func (service *ServiceUser) SelectPersona(ctx context.Context, user *models.User, personaID string) (*models.User, error) {
	if _, ok := models.FindPersona(personaID); !ok {
		return nil, ErrPersonaNotFound
	}

	if err := datastore.UpdateUserPersona(ctx, service.postgresDB, user.ID, personaID); err != nil {
		return nil, err
	}

	user.PersonaID = personaID
	service.ClearUserCache(ctx, user.ID)
	return user, nil
}

func (service *ServiceUser) UpdateProfile(ctx context.Context, user *models.User, username string) (*models.User, error) {
	user.Username = username
	if _, err := datastore.UpdateUserProfile(ctx, service.postgresDB, user); err != nil {
		return nil, err
	}

	service.ClearUserCache(ctx, user.ID)
	return user, nil
}

func (service *ServiceUser) ClearUserCache(ctx context.Context, userID int64) {
	if err := service.cache.Delete(ctx, DBKeyUser(userID)); err != nil {
		log.Println(err)
	}
	if err := service.cache.Delete(ctx, DBKeyMe(userID)); err != nil {
		log.Println(err)
	}
}
