package model

import "time"

// Like 点赞关系。(user_id, post_id) 唯一索引是并发双击的最终裁决
type Like struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	UserID    uint64 `gorm:"not null;uniqueIndex:uk_user_post"`
	PostID    uint64 `gorm:"not null;uniqueIndex:uk_user_post;index"`
	CreatedAt time.Time
}

func (Like) TableName() string {
	return "likes"
}
