package model

import "time"

type Channel struct {
	ID          uint64 `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex;size:64;not null"`
	Description string `gorm:"type:text"`
	OwnerID     uint64 `gorm:"not null;index"`
	CreatedAt   time.Time
}

type ChannelMessage struct {
	ID        uint64 `gorm:"primaryKey"`
	ChannelID uint64 `gorm:"not null;index:idx_chmsg_channel"`
	SenderID  uint64 `gorm:"not null"`
	Content   string `gorm:"type:text"`
	Image     string `gorm:"size:255"`

	CreatedAt int64 `gorm:"autoCreateTime"`
}
