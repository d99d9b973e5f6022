package mysql

import (
	"context"
	"errors"

	"whome/internal/model"

	"gorm.io/gorm"
)

type LikeRepository struct {
	DB *gorm.DB
}

// Toggle 点赞开关：存在则删，不存在则插，以 uk_user_post 唯一索引为准。
// 返回翻转后的状态与该帖当前总点赞数，计数在同一事务内重新统计
func (r *LikeRepository) Toggle(ctx context.Context, userID, postID uint64) (liked bool, count int64, err error) {
	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&model.Post{}).Where("id = ?", postID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return model.ErrNotFound
		}

		res := tx.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&model.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			liked = false
			if err := insertOutbox(tx, "post.unliked", userID, postID); err != nil {
				return err
			}
		} else {
			if err := tx.Create(&model.Like{UserID: userID, PostID: postID}).Error; err != nil {
				// 并发双击：另一请求刚插入同一对，唯一索引裁决，向上报冲突
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return model.ErrAlreadyExists
				}
				return err
			}
			liked = true
			if err := insertOutbox(tx, "post.liked", userID, postID); err != nil {
				return err
			}
		}

		return tx.Model(&model.Like{}).Where("post_id = ?", postID).Count(&count).Error
	})
	return liked, count, err
}

func (r *LikeRepository) Count(ctx context.Context, postID uint64) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Like{}).
		Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

func (r *LikeRepository) IsLiked(ctx context.Context, userID, postID uint64) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).Count(&count).Error
	return count > 0, err
}
