package mysql

import (
	"context"
	"errors"

	"whome/internal/model"

	"gorm.io/gorm"
)

type ChannelRepository struct {
	DB *gorm.DB
}

// ChannelMessageRow 频道消息行，带发送者展示属性
type ChannelMessageRow struct {
	ID             uint64 `json:"id"`
	ChannelID      uint64 `json:"channel_id"`
	SenderID       uint64 `json:"sender_id"`
	SenderUsername string `json:"sender_username"`
	SenderAvatar   string `json:"sender_avatar"`
	Content        string `json:"content,omitempty"`
	Image          string `json:"image,omitempty"`
	CreatedAt      int64  `json:"created_at"`
}

func (r *ChannelRepository) Create(ch *model.Channel) error {
	err := r.DB.Create(ch).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return model.ErrAlreadyExists
	}
	return err
}

func (r *ChannelRepository) FindByID(id uint64) (*model.Channel, error) {
	var ch model.Channel
	err := r.DB.First(&ch, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrNotFound
	}
	return &ch, err
}

func (r *ChannelRepository) List(offset, limit int) ([]model.Channel, error) {
	var list []model.Channel
	err := r.DB.Order("id desc").Offset(offset).Limit(limit).Find(&list).Error
	return list, err
}

func (r *ChannelRepository) CreateMessage(msg *model.ChannelMessage) error {
	return r.DB.Create(msg).Error
}

// ListMessages 频道消息按插入顺序（旧的在前）
func (r *ChannelRepository) ListMessages(ctx context.Context, channelID uint64) ([]ChannelMessageRow, error) {
	var rows []ChannelMessageRow
	err := r.DB.WithContext(ctx).Model(&model.ChannelMessage{}).
		Select("channel_messages.id, channel_messages.channel_id, channel_messages.sender_id, users.username AS sender_username, users.avatar AS sender_avatar, channel_messages.content, channel_messages.image, channel_messages.created_at").
		Joins("JOIN users ON users.id = channel_messages.sender_id").
		Where("channel_messages.channel_id = ?", channelID).
		Order("channel_messages.id ASC").
		Find(&rows).Error
	return rows, err
}
