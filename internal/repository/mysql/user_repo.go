package mysql

import (
	"context"
	"errors"
	"time"

	"whome/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func (r *UserRepository) Create(user *model.User) error {
	err := r.DB.Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return model.ErrAlreadyExists
	}
	return err
}

func (r *UserRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrNotFound
	}
	return &user, err
}

func (r *UserRepository) FindByID(id uint64) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrNotFound
	}
	return &user, err
}

// TouchLastVisit 登录成功后更新最近访问时间
func (r *UserRepository) TouchLastVisit(id uint64) error {
	return r.DB.Model(&model.User{}).Where("id = ?", id).
		Update("last_visit", time.Now()).Error
}

func (r *UserRepository) UpdateProfile(id uint64, firstName, lastName, avatar string) error {
	return r.DB.Model(&model.User{}).Where("id = ?", id).
		Updates(map[string]any{
			"first_name": firstName,
			"last_name":  lastName,
			"avatar":     avatar,
		}).Error
}

// SetVerified 加 V 与认证事件同事务落库；重复认证不再写事件（幂等）
func (r *UserRepository) SetVerified(ctx context.Context, actorID, userID uint64) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.User{}).
			Where("id = ? AND is_verified = ?", userID, false).
			Update("is_verified", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// 已认证或用户不存在，区分后者
			var n int64
			if err := tx.Model(&model.User{}).Where("id = ?", userID).Count(&n).Error; err != nil {
				return err
			}
			if n == 0 {
				return model.ErrNotFound
			}
			return nil
		}
		return insertOutbox(tx, "user.verified", actorID, userID)
	})
}

// List 管理后台用户列表，按 id 倒序
func (r *UserRepository) List() ([]model.User, error) {
	var list []model.User
	err := r.DB.Order("id desc").Find(&list).Error
	return list, err
}
