package redis_store

import (
	"fmt"
	"time"

	"context"

	"companion/internal"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	// gate sessions are abandoned if the reward flow never finishes
	GATE_SESSION_TTL = 30 * time.Minute
	// chat context survives a day of inactivity, then the topic resets
	CHAT_SESSION_TTL = 24 * time.Hour
)

func dbKeyChatSession(userID int64) string {
	return fmt.Sprintf("chat_session:%d", userID)
}

func dbKeyGateSession(userID int64) string {
	return fmt.Sprintf("gate_session:%d", userID)
}

func GetChatSession(ctx context.Context, cmd redis.Cmdable, userID int64) (*internal.ChatSession, error) {
	var v *internal.ChatSession
	b, err := cmd.Get(ctx, dbKeyChatSession(userID)).Bytes()
	if err != nil {
		return nil, err
	}

	err = msgpack.Unmarshal(b, &v)
	return v, err
}

func SaveChatSession(ctx context.Context, cmd redis.Cmdable, v *internal.ChatSession) (*internal.ChatSession, error) {
	if v.UserID == 0 {
		return nil, fmt.Errorf("invalid chat session")
	}

	b, err := msgpack.Marshal(v)
	if err != nil {
		return nil, err
	}

	err = cmd.Set(ctx, dbKeyChatSession(v.UserID), b, CHAT_SESSION_TTL).Err()
	if err != nil {
		return nil, err
	}

	return v, nil
}

func GetGateSession(ctx context.Context, cmd redis.Cmdable, userID int64) (*internal.RewardSession, error) {
	var v *internal.RewardSession
	b, err := cmd.Get(ctx, dbKeyGateSession(userID)).Bytes()
	if err != nil {
		return nil, err
	}

	err = msgpack.Unmarshal(b, &v)
	return v, err
}

func SaveGateSession(ctx context.Context, cmd redis.Cmdable, v *internal.RewardSession) (*internal.RewardSession, error) {
	if v.UserID == 0 || v.MessageID == "" {
		return nil, fmt.Errorf("invalid gate session")
	}

	b, err := msgpack.Marshal(v)
	if err != nil {
		return nil, err
	}

	err = cmd.Set(ctx, dbKeyGateSession(v.UserID), b, GATE_SESSION_TTL).Err()
	if err != nil {
		return nil, err
	}

	return v, nil
}

func DeleteGateSession(ctx context.Context, cmd redis.Cmdable, userID int64) error {
	return cmd.Del(ctx, dbKeyGateSession(userID)).Err()
}
