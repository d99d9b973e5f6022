package model

import "time"

type User struct {
	ID         uint64 `gorm:"primaryKey"`
	Username   string `gorm:"uniqueIndex;size:32;not null"`
	Email      string `gorm:"uniqueIndex;size:64;not null"`
	Password   string `gorm:"size:255;not null"`
	FirstName  string `gorm:"size:64"`
	LastName   string `gorm:"size:64"`
	Avatar     string `gorm:"size:255"`
	IsAdmin    bool   `gorm:"not null;default:false"`
	IsVerified bool   `gorm:"not null;default:false"`
	IsPremium  bool   `gorm:"not null;default:false"`

	RegisteredAt time.Time `gorm:"autoCreateTime"`
	LastVisit    time.Time `gorm:"autoCreateTime"`
}
