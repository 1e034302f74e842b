package cupom

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/SigaRastreamento/api-site/internal/cotacao"
)

// Cupom de desconto divulgado por um representante. O código é único e
// sempre gravado em maiúsculas.
type Cupom struct {
	ID                  uint          `gorm:"primaryKey" json:"id"`
	Codigo              string        `gorm:"size:40;not null;uniqueIndex" json:"codigo"`
	Ativo               bool          `gorm:"not null" json:"ativo"`
	DescontoInstalacao  cotacao.Regra `gorm:"embedded;embeddedPrefix:desconto_instalacao_" json:"descontoInstalacao"`
	DescontoMensalidade cotacao.Regra `gorm:"embedded;embeddedPrefix:desconto_mensalidade_" json:"descontoMensalidade"`
	Comissao            cotacao.Regra `gorm:"embedded;embeddedPrefix:comissao_" json:"comissao"`
	RepresentanteID     *uint         `gorm:"index" json:"representanteId"`
	CreatedAt           time.Time     `json:"createdAt"`
	UpdatedAt           time.Time     `json:"updatedAt"`
}

func (Cupom) TableName() string {
	return "cupons"
}

func (c *Cupom) BeforeSave(tx *gorm.DB) error {
	c.Codigo = NormalizarCodigo(c.Codigo)
	return nil
}

// NormalizarCodigo é aplicado tanto na escrita quanto na busca.
func NormalizarCodigo(codigo string) string {
	return strings.ToUpper(strings.TrimSpace(codigo))
}

// ParaCotacao recorta o que o cálculo de preço precisa.
func (c *Cupom) ParaCotacao() *cotacao.Cupom {
	if c == nil {
		return nil
	}
	return &cotacao.Cupom{
		Codigo:      c.Codigo,
		Instalacao:  c.DescontoInstalacao,
		Mensalidade: c.DescontoMensalidade,
	}
}
