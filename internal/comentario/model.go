package comentario

import (
	"gorm.io/gorm"

	"github.com/SigaRastreamento/api-site/internal/usuario"
)

// Comentario é uma anotação interna numa solicitação. Comentários de sistema
// registram mudanças de status e pagamento.
type Comentario struct {
	gorm.Model
	Texto         string           `gorm:"type:text;not null" json:"texto"`
	SolicitacaoID uint             `gorm:"not null;index" json:"solicitacaoId"`
	UsuarioID     *uint            `gorm:"index" json:"usuarioId"`
	Usuario       *usuario.Usuario `gorm:"foreignKey:UsuarioID;constraint:OnDelete:SET NULL" json:"-"`
	Sistema       bool             `gorm:"not null" json:"sistema"`
}

func (Comentario) TableName() string {
	return "comentarios"
}
