package usuario

import "time"

// Usuario do back office. IsAdmin libera a gestão de usuários.
type Usuario struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Nome      string    `gorm:"size:100;not null" json:"nome"`
	Email     string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	IsAdmin   bool      `gorm:"not null" json:"isAdmin"`
	Ativo     bool      `gorm:"not null" json:"ativo"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Usuario) TableName() string {
	return "usuarios"
}
