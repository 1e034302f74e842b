package cotacao

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TipoRegra identifica como o valor de uma Regra é interpretado.
type TipoRegra string

const (
	RegraNenhuma    TipoRegra = ""
	RegraPercentual TipoRegra = "percentual"
	RegraFixa       TipoRegra = "fixo"
)

var cem = decimal.NewFromInt(100)

// Regra é um desconto ou comissão: nenhum, percentual ou valor fixo em reais.
// A mesma forma serve para desconto na instalação, na mensalidade e para a
// comissão do representante.
type Regra struct {
	Tipo  TipoRegra       `gorm:"size:20;not null;default:''" json:"tipo"`
	Valor decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"valor"`
}

func Nenhuma() Regra {
	return Regra{}
}

func Percentual(v decimal.Decimal) Regra {
	return Regra{Tipo: RegraPercentual, Valor: v}
}

func Fixa(v decimal.Decimal) Regra {
	return Regra{Tipo: RegraFixa, Valor: v}
}

// Ativa indica se a regra tem efeito. Tipos desconhecidos não têm.
func (r Regra) Ativa() bool {
	return r.Tipo == RegraPercentual || r.Tipo == RegraFixa
}

// Aplicar desconta a regra de base. O resultado nunca fica abaixo de zero.
func (r Regra) Aplicar(base decimal.Decimal) decimal.Decimal {
	var final decimal.Decimal
	switch r.Tipo {
	case RegraPercentual:
		final = base.Mul(decimal.NewFromInt(1).Sub(r.Valor.Div(cem)))
	case RegraFixa:
		final = base.Sub(r.Valor)
	default:
		return base
	}
	if final.IsNegative() {
		return decimal.Zero
	}
	return final.Round(2)
}

// Sobre calcula o valor da regra sobre base (usado na comissão): percentual
// devolve a fração de base, fixa devolve o próprio valor.
func (r Regra) Sobre(base decimal.Decimal) decimal.Decimal {
	switch r.Tipo {
	case RegraPercentual:
		return base.Mul(r.Valor).Div(cem).Round(2)
	case RegraFixa:
		return r.Valor
	}
	return decimal.Zero
}

// Rotulo devolve "10%" ou "R$ 20,00"; vazio quando a regra não está ativa.
func (r Regra) Rotulo() string {
	switch r.Tipo {
	case RegraPercentual:
		return FormatarPercentual(r.Valor)
	case RegraFixa:
		return RotuloMoeda(r.Valor)
	}
	return ""
}

// Validar é usado na escrita de cupons pelo back office.
func (r Regra) Validar() error {
	switch r.Tipo {
	case RegraNenhuma:
		return nil
	case RegraPercentual, RegraFixa:
		if r.Valor.IsNegative() {
			return fmt.Errorf("valor da regra não pode ser negativo")
		}
		return nil
	}
	return fmt.Errorf("tipo de regra inválido: %q", r.Tipo)
}
