package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrRedisUnavailable = errors.New("redis unavailable")
	ErrExtendFailed     = errors.New("session extend failed")
	ErrSessionDeleted   = errors.New("session delete failed")
)

const (
	SessionKeyPrefix = "session:user:token"
	SessionTTL       = 30 * time.Minute
)

// SessionRepository 服务端会话：每用户一个在途 access token，滑动过期
type SessionRepository struct{}

func (r *SessionRepository) Put(usrID uint64, token string) error {
	key := fmt.Sprintf("%s:%d", SessionKeyPrefix, usrID)
	if err := Client.Set(context.Background(), key, token, SessionTTL).Err(); err != nil {
		return ErrRedisUnavailable
	}
	return nil
}

func (r *SessionRepository) Get(usrID uint64) (string, error) {
	key := fmt.Sprintf("%s:%d", SessionKeyPrefix, usrID)
	token, err := Client.Get(context.Background(), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrSessionNotFound
	}
	if err != nil {
		return "", ErrRedisUnavailable
	}
	return token, nil
}

// Extend 校验通过后滑动续期
func (r *SessionRepository) Extend(usrID uint64) error {
	key := fmt.Sprintf("%s:%d", SessionKeyPrefix, usrID)
	_, err := Client.Expire(context.Background(), key, SessionTTL).Result()
	if err != nil {
		return ErrExtendFailed
	}
	return nil
}

func (r *SessionRepository) Delete(usrID uint64) error {
	key := fmt.Sprintf("%s:%d", SessionKeyPrefix, usrID)
	err := Client.Del(context.Background(), key).Err()
	if err != nil {
		return ErrSessionDeleted
	}
	return nil
}
