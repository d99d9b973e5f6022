package mysql

import (
	"context"
	"errors"

	"whome/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChatRepository struct {
	DB *gorm.DB
}

// MessageRow 消息行，带发送者用户名用于展示
type MessageRow struct {
	ID             uint64 `json:"id"`
	ChatID         uint64 `json:"chat_id"`
	SenderID       uint64 `json:"sender_id"`
	SenderUsername string `json:"sender_username"`
	Kind           string `json:"kind"`
	Body           string `json:"body"`
	CreatedAt      int64  `json:"created_at"`
}

// Dialog 会话列表行，peer 取会话里“另一侧”的用户
type Dialog struct {
	ChatID       uint64 `json:"chat_id"`
	PeerID       uint64 `json:"peer_id"`
	PeerUsername string `json:"peer_username"`
	PeerName     string `json:"peer_name"`
	PeerAvatar   string `json:"peer_avatar"`
	PeerVerified bool   `json:"peer_verified"`
}

// IDFor 归一化无序对：小 id 在前，查不到则插入。并发首聊由
// uk_chat_pair 唯一索引裁决，DoNothing 后回查，两侧拿到同一行
func (r *ChatRepository) IDFor(ctx context.Context, a, b uint64) (uint64, error) {
	if a == b {
		return 0, model.ErrSelfChat
	}
	x, y := a, b
	if x > y {
		x, y = y, x
	}

	var chat model.Chat
	err := r.DB.WithContext(ctx).
		Where("user1_id = ? AND user2_id = ?", x, y).
		First(&chat).Error
	if err == nil {
		return chat.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	chat = model.Chat{User1ID: x, User2ID: y}
	if err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user1_id"}, {Name: "user2_id"}},
		DoNothing: true,
	}).Create(&chat).Error; err != nil {
		return 0, err
	}
	if chat.ID != 0 {
		return chat.ID, nil
	}

	// 被对方抢先建好了，回查
	if err := r.DB.WithContext(ctx).
		Where("user1_id = ? AND user2_id = ?", x, y).
		First(&chat).Error; err != nil {
		return 0, err
	}
	return chat.ID, nil
}

func (r *ChatRepository) FindByID(id uint64) (*model.Chat, error) {
	var chat model.Chat
	err := r.DB.First(&chat, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrNotFound
	}
	return &chat, err
}

func (r *ChatRepository) CreateMessage(msg *model.Message) error {
	return r.DB.Create(msg).Error
}

// ListMessages 按 id 升序即严格按插入顺序
func (r *ChatRepository) ListMessages(ctx context.Context, chatID uint64) ([]MessageRow, error) {
	var rows []MessageRow
	err := r.DB.WithContext(ctx).Model(&model.Message{}).
		Select("messages.id, messages.chat_id, messages.sender_id, users.username AS sender_username, messages.kind, messages.body, messages.created_at").
		Joins("JOIN users ON users.id = messages.sender_id").
		Where("messages.chat_id = ?", chatID).
		Order("messages.id ASC").
		Find(&rows).Error
	return rows, err
}

// ListDialogs 用户参与的所有会话，新会话在前
func (r *ChatRepository) ListDialogs(ctx context.Context, userID uint64) ([]Dialog, error) {
	var chats []model.Chat
	if err := r.DB.WithContext(ctx).
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Order("id DESC").
		Find(&chats).Error; err != nil {
		return nil, err
	}
	if len(chats) == 0 {
		return []Dialog{}, nil
	}

	peerIDs := make([]uint64, 0, len(chats))
	for _, c := range chats {
		if c.User1ID == userID {
			peerIDs = append(peerIDs, c.User2ID)
		} else {
			peerIDs = append(peerIDs, c.User1ID)
		}
	}

	var peers []model.User
	if err := r.DB.WithContext(ctx).Where("id IN ?", peerIDs).Find(&peers).Error; err != nil {
		return nil, err
	}
	peerByID := make(map[uint64]model.User, len(peers))
	for _, u := range peers {
		peerByID[u.ID] = u
	}

	dialogs := make([]Dialog, 0, len(chats))
	for _, c := range chats {
		pid := c.User1ID
		if pid == userID {
			pid = c.User2ID
		}
		p := peerByID[pid]
		name := p.FirstName
		if p.LastName != "" {
			if name != "" {
				name += " "
			}
			name += p.LastName
		}
		dialogs = append(dialogs, Dialog{
			ChatID:       c.ID,
			PeerID:       pid,
			PeerUsername: p.Username,
			PeerName:     name,
			PeerAvatar:   p.Avatar,
			PeerVerified: p.IsVerified,
		})
	}
	return dialogs, nil
}
