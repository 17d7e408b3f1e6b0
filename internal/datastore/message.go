package datastore

import (
	"context"

	"companion/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableChatMessage(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.ChatMessage)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.ChatMessage)(nil)).Index("index_chat_message_user_id").IfNotExists().Column("user_id").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.ChatMessage)(nil)).Index("index_chat_message_user_id_created_at").IfNotExists().Column("user_id", "created_at").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func InsertChatMessage(ctx context.Context, db *bun.DB, message *models.ChatMessage) (*models.ChatMessage, error) {
	_, err := db.NewInsert().Model(message).Exec(ctx)
	if err != nil {
		return nil, err
	}

	return message, nil
}

func FindChatMessageByID(ctx context.Context, db *bun.DB, userID int64, messageID string) (*models.ChatMessage, error) {
	var message models.ChatMessage
	err := db.NewSelect().Model(&message).
		Where("id = ?", messageID).
		Where("user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return &message, nil
}

func GetChatMessagesByUser(ctx context.Context, db *bun.DB, userID int64, limit, offset int) ([]*models.ChatMessage, error) {
	var messages []*models.ChatMessage
	q := db.NewSelect().Model(&messages).
		Where("user_id = ?", userID).
		Order("created_at ASC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	err := q.Scan(ctx)
	if err != nil {
		return nil, err
	}

	return messages, nil
}

// UnlockChatMessageImage performs the one-way lock transition. The guard
// on image_unlocked makes the update a no-op when another writer got
// there first; callers treat zero affected rows as an ineligible target.
func UnlockChatMessageImage(ctx context.Context, db *bun.DB, userID int64, messageID string, imageURL string) (bool, error) {
	res, err := db.NewUpdate().
		Model((*models.ChatMessage)(nil)).
		Set("image_unlocked = true").
		Set("image_url = ?", imageURL).
		Where("id = ?", messageID).
		Where("user_id = ?", userID).
		Where("has_image = true").
		Where("image_unlocked = false").
		Exec(ctx)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

func CountDailyUnlockedImages(ctx context.Context, db *bun.DB, userID int64) (int, error) {
	count, err := db.NewSelect().Model((*models.ChatMessage)(nil)).
		Where("user_id = ?", userID).
		Where("image_unlocked = true").
		Where("created_at >= date_trunc('day', now() at time zone 'utc')").
		Count(ctx)
	if err != nil {
		return 0, err
	}

	return count, nil
}
