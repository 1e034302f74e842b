package logo

import "time"

// Logo de cliente exibido na vitrine do site. Posicao define a ordem (menor primeiro).
type Logo struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Nome      string    `gorm:"size:120;not null" json:"nome"`
	ImagemURL string    `gorm:"size:500;not null" json:"imagemUrl"`
	Link      string    `gorm:"size:500" json:"link"`
	Posicao   int       `gorm:"not null;index" json:"posicao"`
	Ativo     bool      `gorm:"not null" json:"ativo"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Logo) TableName() string {
	return "logos"
}
