package redis_test

import (
	"context"
	"testing"
	"time"

	"whome/internal/repository/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	require.NoError(t, redis.Init(mr.Addr(), "", 0))
	return mr
}

func TestSession_PutGetDelete(t *testing.T) {
	setupRedis(t)
	repo := &redis.SessionRepository{}

	_, err := repo.Get(42)
	assert.ErrorIs(t, err, redis.ErrSessionNotFound)

	require.NoError(t, repo.Put(42, "token-a"))
	token, err := repo.Get(42)
	require.NoError(t, err)
	assert.Equal(t, "token-a", token)

	// 再次 Put 覆盖旧 token，单会话
	require.NoError(t, repo.Put(42, "token-b"))
	token, err = repo.Get(42)
	require.NoError(t, err)
	assert.Equal(t, "token-b", token)

	require.NoError(t, repo.Delete(42))
	_, err = repo.Get(42)
	assert.ErrorIs(t, err, redis.ErrSessionNotFound)
}

func TestSession_SlidingExpiry(t *testing.T) {
	mr := setupRedis(t)
	repo := &redis.SessionRepository{}

	require.NoError(t, repo.Put(7, "token"))

	// 快到期时续期，会话继续有效
	mr.FastForward(redis.SessionTTL - time.Minute)
	require.NoError(t, repo.Extend(7))
	mr.FastForward(redis.SessionTTL - time.Minute)
	_, err := repo.Get(7)
	require.NoError(t, err)

	// 不续期则过期
	mr.FastForward(2 * redis.SessionTTL)
	_, err = repo.Get(7)
	assert.ErrorIs(t, err, redis.ErrSessionNotFound)
}

func TestLikeCountCache(t *testing.T) {
	setupRedis(t)
	repo := redis.NewLikeCountRepository()
	ctx := context.Background()

	_, hit, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, repo.Set(ctx, 1, 5))
	val, hit, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, int64(5), val)

	require.NoError(t, repo.Delete(ctx, 1))
	_, hit, err = repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.False(t, hit)

	// 删不存在的 Key 不报错
	require.NoError(t, repo.Delete(ctx, 999))
}
