package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	LikeCntTTL       = 24 * time.Hour
	LikeCntKeyPrefix = "like:cnt:post" // 缓存某个帖子的点赞计数
)

// LikeCountRepository 点赞计数缓存。数据库是唯一事实，
// 写路径翻转后直接回填新值，读 miss 由调用方回源再 Set
type LikeCountRepository struct {
	likeCntTTL time.Duration
}

func NewLikeCountRepository() *LikeCountRepository {
	return &LikeCountRepository{likeCntTTL: LikeCntTTL}
}

func (r *LikeCountRepository) key(postID uint64) string {
	return fmt.Sprintf("%s:%d", LikeCntKeyPrefix, postID)
}

// Get 读缓存，第二个返回值表示是否命中
func (r *LikeCountRepository) Get(ctx context.Context, postID uint64) (int64, bool, error) {
	val, err := Client.Get(ctx, r.key(postID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	return val, true, err
}

// Set 回填计数
func (r *LikeCountRepository) Set(ctx context.Context, postID uint64, cnt int64) error {
	return Client.Set(ctx, r.key(postID), cnt, r.likeCntTTL).Err()
}

// Delete 删除计数 Key，交给读侧重建
func (r *LikeCountRepository) Delete(ctx context.Context, postID uint64) error {
	if err := Client.Del(ctx, r.key(postID)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	return nil
}
