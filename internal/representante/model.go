package representante

import "time"

// Representante é o parceiro comercial que divulga cupons e recebe comissão.
type Representante struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Nome      string    `gorm:"size:150;not null" json:"nome"`
	Email     string    `gorm:"size:150" json:"email"`
	Telefone  string    `gorm:"size:20" json:"telefone"`
	ChavePix  string    `gorm:"size:150" json:"chavePix"`
	Ativo     bool      `gorm:"not null" json:"ativo"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Representante) TableName() string {
	return "representantes"
}
