package solicitacao

import (
	"strings"

	"github.com/SigaRastreamento/api-site/internal/apperr"
	"github.com/SigaRastreamento/api-site/internal/cotacao"
	"github.com/SigaRastreamento/api-site/internal/validacao"
)

// CriarRequest é o formulário público de contratação (POST /solicitacoes).
type CriarRequest struct {
	TipoPessoa   string `json:"tipoPessoa" validate:"required,oneof=fisica juridica"`
	Nome         string `json:"nome" validate:"required,min=3,max=150"`
	CPF          string `json:"cpf" validate:"omitempty,cpf"`
	RazaoSocial  string `json:"razaoSocial" validate:"max=200"`
	NomeFantasia string `json:"nomeFantasia" validate:"max=200"`
	CNPJ         string `json:"cnpj" validate:"omitempty,cnpj"`
	Email        string `json:"email" validate:"required,email,max=150"`
	Telefone     string `json:"telefone" validate:"required,telefone"`

	Categoria string `json:"categoria" validate:"required"`
	Bloqueio  string `json:"bloqueio" validate:"max=10"`
	Marca     string `json:"marca" validate:"required,max=60"`
	Modelo    string `json:"modelo" validate:"required,max=80"`
	Ano       string `json:"ano" validate:"omitempty,len=4,numeric"`
	Placa     string `json:"placa" validate:"omitempty,placa"`
	Cor       string `json:"cor" validate:"max=30"`

	CEP         string `json:"cep" validate:"required,cep"`
	Logradouro  string `json:"logradouro" validate:"required,max=200"`
	Numero      string `json:"numero" validate:"required,max=20"`
	Complemento string `json:"complemento" validate:"max=100"`
	Bairro      string `json:"bairro" validate:"required,max=100"`
	Cidade      string `json:"cidade" validate:"required,max=100"`
	UF          string `json:"uf" validate:"required,uf"`

	Cupom        string `json:"cupom" validate:"max=40"`
	Observacoes  string `json:"observacoes" validate:"max=1000"`
	AceiteTermos bool   `json:"aceiteTermos" validate:"required"`
	CaptchaToken string `json:"captchaToken"`
}

// Validar cobre o que depende de mais de um campo.
func (req *CriarRequest) Validar() error {
	detalhes := map[string]string{}
	switch req.TipoPessoa {
	case PessoaFisica:
		if req.CPF == "" {
			detalhes["cpf"] = "obrigatório"
		}
	case PessoaJuridica:
		if req.CNPJ == "" {
			detalhes["cnpj"] = "obrigatório"
		}
		if strings.TrimSpace(req.RazaoSocial) == "" {
			detalhes["razaoSocial"] = "obrigatório"
		}
	}
	if !cotacao.NormalizarCategoria(req.Categoria).Valida() {
		detalhes["categoria"] = "categoria inválida"
	}
	if len(detalhes) > 0 {
		return apperr.New(apperr.CodeValidation, "dados inválidos").WithDetails(detalhes)
	}
	return nil
}

// Normalizar guarda documentos, telefone, CEP e placa só com o essencial.
func (req *CriarRequest) Normalizar() {
	req.CPF = validacao.SomenteDigitos(req.CPF)
	req.CNPJ = validacao.SomenteDigitos(req.CNPJ)
	req.Telefone = validacao.SomenteDigitos(req.Telefone)
	req.CEP = validacao.SomenteDigitos(req.CEP)
	req.Placa = validacao.NormalizarPlaca(req.Placa)
	req.UF = strings.ToUpper(strings.TrimSpace(req.UF))
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Nome = strings.TrimSpace(req.Nome)
	if req.TipoPessoa == PessoaFisica {
		req.CNPJ, req.RazaoSocial, req.NomeFantasia = "", "", ""
	} else {
		req.CPF = ""
	}
}

// CriarResponse é o que o site mostra na tela de confirmação.
type CriarResponse struct {
	Protocolo         string `json:"protocolo"`
	Status            Status `json:"status"`
	Plano             string `json:"plano"`
	ValorMensal       string `json:"valorMensal"`
	ValorInstalacao   string `json:"valorInstalacao"`
	CodigoCupom       string `json:"codigoCupom,omitempty"`
	DescricaoDesconto string `json:"descricaoDesconto,omitempty"`
}

// AtualizarStatusRequest é usado em PATCH /solicitacoes/{id}/status
type AtualizarStatusRequest struct {
	Status Status `json:"status" validate:"required"`
	Motivo string `json:"motivo" validate:"max=500"`
}

// AtualizarPagamentoRequest é usado em PATCH /solicitacoes/{id}/pagamento
type AtualizarPagamentoRequest struct {
	InstalacaoPaga *bool `json:"instalacaoPaga" validate:"required"`
}

// ListaResponse é a página devolvida em GET /solicitacoes
type ListaResponse struct {
	Itens     []Solicitacao `json:"itens"`
	Total     int64         `json:"total"`
	Pagina    int           `json:"pagina"`
	PorPagina int           `json:"porPagina"`
}
