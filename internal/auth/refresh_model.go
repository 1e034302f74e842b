package auth

import "time"

type RefreshToken struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index"`
	FamilyID  string    `gorm:"index"`
	Hash      string    `gorm:"uniqueIndex"`
	IsAdmin   bool      `gorm:"not null"`
	ExpiresAt time.Time `gorm:"index"`
	RevokedAt *time.Time
	CreatedAt time.Time
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}
