package contrato

import (
	"time"

	"gorm.io/gorm"
)

// Contrato referencia o documento assinado de uma solicitação (link ou chave
// do objeto no storage).
type Contrato struct {
	gorm.Model

	SolicitacaoID  uint       `gorm:"not null;index" json:"solicitacaoId"`
	Tipo           string     `gorm:"size:50;not null" json:"tipo"`
	URL            string     `gorm:"not null" json:"url"`
	DataAssinatura *time.Time `json:"dataAssinatura"`
	Status         string     `gorm:"size:30;not null" json:"status"`
}

func (Contrato) TableName() string {
	return "contratos"
}

const (
	StatusPendente = "pendente"
	StatusAssinado = "assinado"
)

const (
	TipoAdesao   = "adesao"
	TipoComodato = "comodato"
	TipoAditivo  = "aditivo"
)
