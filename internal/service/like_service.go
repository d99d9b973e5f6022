package service

import (
	"context"

	"whome/internal/repository/mysql"
	"whome/internal/repository/redis"

	"gorm.io/gorm"
)

type LikeService struct {
	repo  *mysql.LikeRepository
	cache *redis.LikeCountRepository
}

func NewLikeService(db *gorm.DB) *LikeService {
	return &LikeService{
		repo:  &mysql.LikeRepository{DB: db},
		cache: redis.NewLikeCountRepository(),
	}
}

// Toggle 先写库拿到翻转后的真实计数，再回填缓存；回填失败就删 Key 交给读侧重建
func (s *LikeService) Toggle(ctx context.Context, userID, postID uint64) (liked bool, count int64, err error) {
	liked, count, err = s.repo.Toggle(ctx, userID, postID)
	if err != nil {
		return false, 0, err
	}

	if err := s.cache.Set(ctx, postID, count); err != nil {
		_ = s.cache.Delete(ctx, postID)
	}
	return liked, count, nil
}

// GetCount 缓存优先，miss 回源 MySQL 并回填
func (s *LikeService) GetCount(ctx context.Context, postID uint64) (int64, error) {
	if v, ok, err := s.cache.Get(ctx, postID); err == nil && ok {
		return v, nil
	}

	v, err := s.repo.Count(ctx, postID)
	if err != nil {
		return 0, err
	}
	_ = s.cache.Set(ctx, postID, v)
	return v, nil
}

func (s *LikeService) IsLiked(ctx context.Context, userID, postID uint64) (bool, error) {
	return s.repo.IsLiked(ctx, userID, postID)
}
