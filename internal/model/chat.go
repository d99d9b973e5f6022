package model

import "time"

// Chat 两个用户之间唯一的会话。存储时保证 user1_id < user2_id，
// 配合 uk_chat_pair 唯一索引，一对用户永远只有一行
type Chat struct {
	ID        uint64 `gorm:"primaryKey"`
	User1ID   uint64 `gorm:"not null;uniqueIndex:uk_chat_pair;index"`
	User2ID   uint64 `gorm:"not null;uniqueIndex:uk_chat_pair;index"`
	CreatedAt time.Time
}

const (
	MessageKindText = "text"
	MessageKindGift = "gift"
)

type Message struct {
	ID       uint64 `gorm:"primaryKey"`
	ChatID   uint64 `gorm:"not null;index:idx_message_chat"`
	SenderID uint64 `gorm:"not null"`
	Kind     string `gorm:"size:8;not null;default:'text'"`
	Body     string `gorm:"type:text;not null"`

	// unix 秒，展示按 id 升序即插入顺序
	CreatedAt int64 `gorm:"autoCreateTime"`
}
