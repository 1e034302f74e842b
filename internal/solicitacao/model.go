package solicitacao

import (
	"strings"
	"time"
)

const (
	PessoaFisica   = "fisica"
	PessoaJuridica = "juridica"
)

// Solicitacao é o formulário de contratação enviado pelo site. Depois de
// criada só muda por ação do back office (status e pagamento).
type Solicitacao struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Protocolo string `gorm:"size:36;not null;uniqueIndex" json:"protocolo"`

	// Identificação
	TipoPessoa   string `gorm:"size:10;not null" json:"tipoPessoa"`
	Nome         string `gorm:"size:150;not null" json:"nome"`
	CPF          string `gorm:"size:11" json:"cpf"`
	RazaoSocial  string `gorm:"size:200" json:"razaoSocial"`
	NomeFantasia string `gorm:"size:200" json:"nomeFantasia"`
	CNPJ         string `gorm:"size:14" json:"cnpj"`
	Email        string `gorm:"size:150;not null" json:"email"`
	Telefone     string `gorm:"size:20;not null" json:"telefone"`

	// Veículo
	Categoria string `gorm:"size:30;not null" json:"categoria"`
	Bloqueio  string `gorm:"size:3;not null" json:"bloqueio"`
	Marca     string `gorm:"size:60" json:"marca"`
	Modelo    string `gorm:"size:80" json:"modelo"`
	Ano       string `gorm:"size:4" json:"ano"`
	Placa     string `gorm:"size:7;index" json:"placa"`
	Cor       string `gorm:"size:30" json:"cor"`

	// Endereço de instalação
	CEP         string `gorm:"size:8" json:"cep"`
	Logradouro  string `gorm:"size:200" json:"logradouro"`
	Numero      string `gorm:"size:20" json:"numero"`
	Complemento string `gorm:"size:100" json:"complemento"`
	Bairro      string `gorm:"size:100" json:"bairro"`
	Cidade      string `gorm:"size:100" json:"cidade"`
	UF          string `gorm:"size:2" json:"uf"`

	// Cotação no momento do envio. Os rótulos são exibidos como vieram; os
	// centavos são a fonte numérica.
	Plano                   string `gorm:"size:30;not null" json:"plano"`
	ValorMensal             string `gorm:"size:40;not null" json:"valorMensal"`
	ValorInstalacao         string `gorm:"size:60;not null" json:"valorInstalacao"`
	ValorMensalCentavos     *int64 `json:"valorMensalCentavos"`
	ValorInstalacaoCentavos *int64 `json:"valorInstalacaoCentavos"`
	CodigoCupom             string `gorm:"size:40;index" json:"codigoCupom"`
	DescricaoDesconto       string `gorm:"size:300" json:"descricaoDesconto"`

	Observacoes string `gorm:"type:text" json:"observacoes"`

	Status             Status     `gorm:"size:20;not null;index" json:"status"`
	MotivoCancelamento string     `gorm:"size:500" json:"motivoCancelamento"`
	InstalacaoPaga     bool       `gorm:"not null" json:"instalacaoPaga"`
	InstaladoEm        *time.Time `json:"instaladoEm"`
	PagoEm             *time.Time `json:"pagoEm"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Solicitacao) TableName() string {
	return "solicitacoes"
}

// NomeExibicao é o nome mostrado em listas e no relatório de comissões.
func (s *Solicitacao) NomeExibicao() string {
	if s.TipoPessoa == PessoaJuridica {
		if n := strings.TrimSpace(s.NomeFantasia); n != "" {
			return n
		}
		if n := strings.TrimSpace(s.RazaoSocial); n != "" {
			return n
		}
	}
	return s.Nome
}
