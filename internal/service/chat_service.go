package service

import (
	"context"
	"strings"

	"whome/internal/model"
	"whome/internal/repository/mysql"

	"gorm.io/gorm"
)

type ChatService struct {
	repo     *mysql.ChatRepository
	userRepo *mysql.UserRepository
}

func NewChatService(db *gorm.DB) *ChatService {
	return &ChatService{
		repo:     &mysql.ChatRepository{DB: db},
		userRepo: &mysql.UserRepository{DB: db},
	}
}

// StartChat 按用户名找对端并解析（必要时新建）会话
func (s *ChatService) StartChat(ctx context.Context, actorID uint64, peerUsername string) (uint64, *model.User, error) {
	peer, err := s.userRepo.FindByUsername(peerUsername)
	if err != nil {
		return 0, nil, err
	}
	chatID, err := s.repo.IDFor(ctx, actorID, peer.ID)
	if err != nil {
		return 0, nil, err
	}
	return chatID, peer, nil
}

// ChatIDFor 无序对 -> 会话 id，对称且幂等
func (s *ChatService) ChatIDFor(ctx context.Context, a, b uint64) (uint64, error) {
	return s.repo.IDFor(ctx, a, b)
}

// SendMessage kind 只认 text/gift；gift 的 body 必须在礼物目录里。
// 发送者必须是会话一侧
func (s *ChatService) SendMessage(ctx context.Context, chatID, senderID uint64, kind, body string) (*model.Message, error) {
	chat, err := s.repo.FindByID(chatID)
	if err != nil {
		return nil, err
	}
	if senderID != chat.User1ID && senderID != chat.User2ID {
		return nil, model.ErrPermissionDenied
	}

	switch kind {
	case model.MessageKindText:
		if strings.TrimSpace(body) == "" {
			return nil, model.ErrEmptyContent
		}
	case model.MessageKindGift:
		if !model.IsGift(body) {
			return nil, model.ErrInvalidGift
		}
	default:
		return nil, model.ErrInvalidKind
	}

	msg := &model.Message{
		ChatID:   chatID,
		SenderID: senderID,
		Kind:     kind,
		Body:     body,
	}
	if err := s.repo.CreateMessage(msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *ChatService) ListMessages(ctx context.Context, chatID uint64) ([]mysql.MessageRow, error) {
	if _, err := s.repo.FindByID(chatID); err != nil {
		return nil, err
	}
	return s.repo.ListMessages(ctx, chatID)
}

func (s *ChatService) ListDialogs(ctx context.Context, userID uint64) ([]mysql.Dialog, error) {
	return s.repo.ListDialogs(ctx, userID)
}
