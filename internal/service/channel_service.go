package service

import (
	"context"
	"strings"

	"whome/internal/model"
	"whome/internal/repository/mysql"

	"gorm.io/gorm"
)

type ChannelService struct {
	repo     *mysql.ChannelRepository
	userRepo *mysql.UserRepository
}

func NewChannelService(db *gorm.DB) *ChannelService {
	return &ChannelService{
		repo:     &mysql.ChannelRepository{DB: db},
		userRepo: &mysql.UserRepository{DB: db},
	}
}

// CreateChannel 仅管理员可建，名字全局唯一
func (s *ChannelService) CreateChannel(actorID uint64, name, desc string) (*model.Channel, error) {
	if strings.TrimSpace(name) == "" {
		return nil, model.ErrEmptyContent
	}

	actor, err := s.userRepo.FindByID(actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin {
		return nil, model.ErrPermissionDenied
	}

	ch := &model.Channel{
		Name:        name,
		Description: desc,
		OwnerID:     actorID,
	}
	if err := s.repo.Create(ch); err != nil {
		return nil, err
	}
	return ch, nil
}

// PostMessage 任何登录用户都能往频道发（公共广播板）。
// 正文和图片至少要有一个
func (s *ChannelService) PostMessage(channelID, senderID uint64, content, image string) (*model.ChannelMessage, error) {
	if _, err := s.repo.FindByID(channelID); err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" && image == "" {
		return nil, model.ErrEmptyContent
	}

	msg := &model.ChannelMessage{
		ChannelID: channelID,
		SenderID:  senderID,
		Content:   content,
		Image:     image,
	}
	if err := s.repo.CreateMessage(msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *ChannelService) ListMessages(ctx context.Context, channelID uint64) ([]mysql.ChannelMessageRow, error) {
	if _, err := s.repo.FindByID(channelID); err != nil {
		return nil, err
	}
	return s.repo.ListMessages(ctx, channelID)
}

func (s *ChannelService) ListChannels(page, size int) ([]model.Channel, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 50 {
		size = 20
	}
	offset := (page - 1) * size
	return s.repo.List(offset, size)
}
