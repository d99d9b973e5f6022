package model

import "time"

type Post struct {
	ID      uint64 `gorm:"primaryKey"`
	UserID  uint64 `gorm:"not null;index:idx_post_user"`
	Content string `gorm:"type:text;not null"`
	Image   string `gorm:"size:255"`

	CreatedAt time.Time `gorm:"index:idx_post_time,sort:desc"`
}

type Comment struct {
	ID      uint64 `gorm:"primaryKey"`
	PostID  uint64 `gorm:"not null;index:idx_comment_post"`
	UserID  uint64 `gorm:"not null"`
	Content string `gorm:"type:text;not null"`

	CreatedAt time.Time
}
