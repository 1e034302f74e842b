package cotacao

import (
	"strings"

	"github.com/shopspring/decimal"
)

const prefixoReal = "R$ "

// FormatarMoeda formata no padrão brasileiro: 1234.5 -> "1.234,50".
func FormatarMoeda(v decimal.Decimal) string {
	s := v.StringFixed(2)
	sinal := ""
	if strings.HasPrefix(s, "-") {
		sinal = "-"
		s = s[1:]
	}
	inteiro, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range inteiro {
		if i > 0 && (len(inteiro)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return sinal + b.String() + "," + frac
}

// RotuloMoeda devolve o valor com o prefixo "R$ ".
func RotuloMoeda(v decimal.Decimal) string {
	return prefixoReal + FormatarMoeda(v)
}

// FormatarPercentual remove zeros à direita: 10 -> "10%", 12.5 -> "12,5%".
func FormatarPercentual(v decimal.Decimal) string {
	return strings.Replace(v.String(), ".", ",", 1) + "%"
}

// ParseMoeda lê de volta um rótulo de moeda. Tudo que não for dígito, vírgula
// ou ponto é descartado; havendo vírgula ela é o separador decimal e os pontos
// são de milhar. Entradas ilegíveis valem zero.
func ParseMoeda(s string) decimal.Decimal {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' {
			b.WriteRune(r)
		}
	}
	limpo := b.String()
	if limpo == "" {
		return decimal.Zero
	}

	switch {
	case strings.Contains(limpo, ","):
		limpo = strings.ReplaceAll(limpo, ".", "")
		limpo = strings.Replace(limpo, ",", ".", 1)
	case strings.Count(limpo, ".") > 1:
		limpo = strings.ReplaceAll(limpo, ".", "")
	}

	v, err := decimal.NewFromString(limpo)
	if err != nil {
		return decimal.Zero
	}
	return v
}

// Centavos converte para unidades mínimas, arredondando ao centavo.
func Centavos(v decimal.Decimal) int64 {
	return v.Round(2).Shift(2).IntPart()
}

// DeCentavos é o inverso de Centavos.
func DeCentavos(c int64) decimal.Decimal {
	return decimal.New(c, -2)
}
