package datastore

import (
	"context"
	"time"

	"companion/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableProgression(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Progression)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewRaw(`
		alter table "progression"
			add if not exists daily_images_unlocked int default 0;
		alter table "progression"
			alter column created_at set default current_timestamp;`).Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func FindProgressionByUserID(ctx context.Context, db *bun.DB, userID int64) (*models.Progression, error) {
	var progression models.Progression
	err := db.NewSelect().Model(&progression).Where("user_id = ?", userID).Scan(ctx)
	if err != nil {
		return nil, err
	}

	return &progression, nil
}

func InsertProgression(ctx context.Context, db *bun.DB, progression *models.Progression) (*models.Progression, error) {
	_, err := db.NewInsert().Model(progression).On("conflict (user_id) DO nothing").Exec(ctx)
	if err != nil {
		return nil, err
	}

	return progression, nil
}

func UpdateProgression(ctx context.Context, db *bun.DB, progression *models.Progression) (*models.Progression, error) {
	progression.UpdatedAt = time.Now()
	_, err := db.NewUpdate().Model(progression).WherePK().Exec(ctx)
	if err != nil {
		return nil, err
	}

	return progression, nil
}

// ResetStaleDayWindows zeroes daily counters for every row whose window
// started before the given UTC day. Used by the cron sweep; the lazy
// reset in the services covers active users.
func ResetStaleDayWindows(ctx context.Context, db *bun.DB, today time.Time) (int64, error) {
	res, err := db.NewUpdate().
		Model((*models.Progression)(nil)).
		Set("daily_messages_sent = 0").
		Set("daily_images_unlocked = 0").
		Set("day_window_start = ?", today).
		Set("updated_at = ?", time.Now()).
		Where("day_window_start < ?", today).
		Exec(ctx)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}
