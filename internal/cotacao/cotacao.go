package cotacao

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Placeholder ocupa plano e preços enquanto a categoria não foi escolhida.
const Placeholder = "-"

const prefixoAPartirDe = "A partir de "

// Plano é um dos três níveis fixos de serviço.
type Plano struct {
	Nome        string
	Mensalidade decimal.Decimal
	Instalacao  decimal.Decimal
	// APartirDe marca a instalação como preço mínimo ("A partir de R$ ...").
	APartirDe bool
}

var (
	PlanoEssencial = Plano{
		Nome:        "Essencial",
		Mensalidade: decimal.RequireFromString("58.90"),
		Instalacao:  decimal.RequireFromString("120.00"),
	}
	PlanoSeguranca = Plano{
		Nome:        "Segurança",
		Mensalidade: decimal.RequireFromString("64.90"),
		Instalacao:  decimal.RequireFromString("120.00"),
	}
	PlanoPesados = Plano{
		Nome:        "Pesados",
		Mensalidade: decimal.RequireFromString("68.90"),
		Instalacao:  decimal.RequireFromString("150.00"),
		APartirDe:   true,
	}
)

// SelecionarPlano deriva o plano de (categoria, bloqueio). O segundo retorno é
// falso quando a categoria não foi escolhida ou não é reconhecida.
func SelecionarPlano(categoria Categoria, bloqueio string) (Plano, bool) {
	if !categoria.Valida() {
		return Plano{}, false
	}
	if categoria.Pesada() {
		return PlanoPesados, true
	}
	if ResolverBloqueio(bloqueio) == BloqueioNao {
		return PlanoEssencial, true
	}
	return PlanoSeguranca, true
}

// Cupom é o recorte do cupom que interessa à cotação.
type Cupom struct {
	Codigo      string
	Instalacao  Regra
	Mensalidade Regra
}

// Cotacao é o resumo de preço exibido no formulário e gravado na solicitação.
type Cotacao struct {
	Definida          bool            `json:"definida"`
	Plano             string          `json:"plano"`
	Mensalidade       decimal.Decimal `json:"mensalidade"`
	Instalacao        decimal.Decimal `json:"instalacao"`
	RotuloMensalidade string          `json:"rotuloMensalidade"`
	RotuloInstalacao  string          `json:"rotuloInstalacao"`
	LinhaCupom        *string         `json:"linhaCupom"`
}

func indefinida() Cotacao {
	return Cotacao{
		Plano:             Placeholder,
		RotuloMensalidade: Placeholder,
		RotuloInstalacao:  Placeholder,
	}
}

// Calcular resolve plano, preços e a linha de desconto do cupom. Nunca falha:
// categoria vazia produz a cotação indefinida.
func Calcular(categoria Categoria, bloqueio string, cupom *Cupom) Cotacao {
	plano, ok := SelecionarPlano(categoria, bloqueio)
	if !ok {
		return indefinida()
	}

	mensalidade := plano.Mensalidade
	instalacao := plano.Instalacao
	var linha *string

	if cupom != nil {
		instalacao = cupom.Instalacao.Aplicar(instalacao)
		mensalidade = cupom.Mensalidade.Aplicar(mensalidade)
		linha = cupom.Descricao()
	}

	rotuloInstalacao := RotuloMoeda(instalacao)
	if plano.APartirDe {
		rotuloInstalacao = prefixoAPartirDe + rotuloInstalacao
	}

	return Cotacao{
		Definida:          true,
		Plano:             plano.Nome,
		Mensalidade:       mensalidade,
		Instalacao:        instalacao,
		RotuloMensalidade: RotuloMoeda(mensalidade),
		RotuloInstalacao:  rotuloInstalacao,
		LinhaCupom:        linha,
	}
}

// Descricao monta a linha exibida abaixo do resumo, ex.:
// "PROMO10 — desconto na instalação de 10% e na mensalidade de R$ 5,00.".
// Nil quando nenhuma das regras está ativa.
func (c *Cupom) Descricao() *string {
	var partes []string
	if r := c.Instalacao.Rotulo(); r != "" {
		partes = append(partes, "desconto na instalação de "+r)
	}
	if r := c.Mensalidade.Rotulo(); r != "" {
		if len(partes) == 0 {
			partes = append(partes, "desconto na mensalidade de "+r)
		} else {
			partes = append(partes, "na mensalidade de "+r)
		}
	}
	if len(partes) == 0 {
		return nil
	}
	linha := strings.ToUpper(strings.TrimSpace(c.Codigo)) + " — " + strings.Join(partes, " e ") + "."
	return &linha
}
