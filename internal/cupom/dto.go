package cupom

import (
	"github.com/shopspring/decimal"

	"github.com/SigaRastreamento/api-site/internal/cotacao"
)

type RegraRequest struct {
	Tipo  string          `json:"tipo" validate:"omitempty,oneof=percentual fixo"`
	Valor decimal.Decimal `json:"valor"`
}

func (r RegraRequest) Regra() cotacao.Regra {
	if r.Tipo == "" {
		return cotacao.Nenhuma()
	}
	return cotacao.Regra{Tipo: cotacao.TipoRegra(r.Tipo), Valor: r.Valor}
}

// CriarRequest é usado em POST /cupons
type CriarRequest struct {
	Codigo              string       `json:"codigo" validate:"required,min=2,max=40"`
	Ativo               *bool        `json:"ativo"`
	DescontoInstalacao  RegraRequest `json:"descontoInstalacao"`
	DescontoMensalidade RegraRequest `json:"descontoMensalidade"`
	Comissao            RegraRequest `json:"comissao"`
	RepresentanteID     *uint        `json:"representanteId"`
}

// AtualizarRequest é usado em PUT /cupons/{id}
type AtualizarRequest struct {
	Codigo              *string       `json:"codigo,omitempty" validate:"omitempty,min=2,max=40"`
	Ativo               *bool         `json:"ativo,omitempty"`
	DescontoInstalacao  *RegraRequest `json:"descontoInstalacao,omitempty"`
	DescontoMensalidade *RegraRequest `json:"descontoMensalidade,omitempty"`
	Comissao            *RegraRequest `json:"comissao,omitempty"`
	RepresentanteID     *uint         `json:"representanteId,omitempty"`
	// RemoverRepresentante desvincula o cupom; RepresentanteID nil só significa "não alterar".
	RemoverRepresentante bool `json:"removerRepresentante,omitempty"`
}

type ValidarRequest struct {
	Codigo string `json:"codigo" validate:"required,max=40"`
}

// ValidarResponse é o que o formulário público recebe.
type ValidarResponse struct {
	Valido      bool           `json:"valido"`
	Codigo      string         `json:"codigo,omitempty"`
	Descricao   *string        `json:"descricao,omitempty"`
	Instalacao  *cotacao.Regra `json:"descontoInstalacao,omitempty"`
	Mensalidade *cotacao.Regra `json:"descontoMensalidade,omitempty"`
	Mensagem    string         `json:"mensagem,omitempty"`
}
