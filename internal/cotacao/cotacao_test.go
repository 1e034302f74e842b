package cotacao

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var leves = []Categoria{CategoriaMoto, CategoriaCarro, CategoriaCaminhonete, CategoriaVan, CategoriaOutro}

func TestCalcularSemCategoriaDevolvePlaceholder(t *testing.T) {
	q := Calcular("", "sim", &Cupom{Codigo: "X", Instalacao: Fixa(decimal.NewFromInt(10))})

	assert.False(t, q.Definida)
	assert.Equal(t, Placeholder, q.Plano)
	assert.Equal(t, Placeholder, q.RotuloMensalidade)
	assert.Equal(t, Placeholder, q.RotuloInstalacao)
	assert.Nil(t, q.LinhaCupom)
}

func TestCalcularCategoriaDesconhecidaDevolvePlaceholder(t *testing.T) {
	q := Calcular(Categoria("bicicleta"), "nao", nil)
	assert.False(t, q.Definida)
	assert.Equal(t, Placeholder, q.Plano)
}

func TestCalcularLeveSemBloqueioEssencial(t *testing.T) {
	for _, c := range leves {
		q := Calcular(c, "nao", nil)
		assert.Equal(t, "Essencial", q.Plano, c)
		assert.Equal(t, "R$ 58,90", q.RotuloMensalidade, c)
		assert.Equal(t, "R$ 120,00", q.RotuloInstalacao, c)
		assert.Equal(t, "120.00", q.Instalacao.StringFixed(2), c)
	}
}

func TestCalcularLeveComBloqueioSeguranca(t *testing.T) {
	for _, c := range leves {
		for _, pref := range []string{"sim", "yes"} {
			q := Calcular(c, pref, nil)
			assert.Equal(t, "Segurança", q.Plano, c)
			assert.Equal(t, "R$ 64,90", q.RotuloMensalidade, c)
		}
	}
}

// Preferência vazia é tratada como "sim" de propósito: o padrão é o plano com
// bloqueio remoto. Mudar isso altera preço exibido ao cliente.
func TestCalcularBloqueioVazioPadraoSeguranca(t *testing.T) {
	for _, c := range leves {
		q := Calcular(c, "", nil)
		assert.Equal(t, "Segurança", q.Plano, c)
		assert.Equal(t, "R$ 64,90", q.RotuloMensalidade, c)
		assert.Equal(t, "R$ 120,00", q.RotuloInstalacao, c)
	}
}

func TestCalcularPesadoIgnoraBloqueio(t *testing.T) {
	for _, c := range []Categoria{CategoriaCaminhao, CategoriaTratorMaquina, CategoriaEmbarcacao, CategoriaAeronave} {
		for _, pref := range []string{"", "sim", "nao", "qualquer"} {
			q := Calcular(c, pref, nil)
			assert.Equal(t, "Pesados", q.Plano)
			assert.Equal(t, "R$ 68,90", q.RotuloMensalidade)
			assert.Equal(t, "A partir de R$ 150,00", q.RotuloInstalacao)
		}
	}
}

func TestCalcularPercentualNuncaNegativo(t *testing.T) {
	cupom := &Cupom{Codigo: "MEGA", Instalacao: Percentual(decimal.NewFromInt(150))}
	q := Calcular(CategoriaCarro, "sim", cupom)

	assert.Equal(t, "R$ 0,00", q.RotuloInstalacao)
	assert.True(t, q.Instalacao.IsZero())
}

func TestCalcularFixoNuncaNegativo(t *testing.T) {
	cupom := &Cupom{Codigo: "MEGA", Instalacao: Fixa(decimal.NewFromInt(500))}
	q := Calcular(CategoriaCaminhao, "", cupom)

	assert.Equal(t, "A partir de R$ 0,00", q.RotuloInstalacao)
}

func TestCalcularDescontoFixo(t *testing.T) {
	cupom := &Cupom{Codigo: "promo20", Instalacao: Fixa(decimal.NewFromInt(20))}
	q := Calcular(CategoriaCarro, "sim", cupom)

	assert.Equal(t, "100.00", q.Instalacao.StringFixed(2))
	assert.Equal(t, "R$ 100,00", q.RotuloInstalacao)
	require.NotNil(t, q.LinhaCupom)
	assert.Equal(t, "PROMO20 — desconto na instalação de R$ 20,00.", *q.LinhaCupom)
}

func TestCalcularDescontoPercentualSemZeroNoFinal(t *testing.T) {
	cupom := &Cupom{Codigo: "DEZ", Instalacao: Percentual(decimal.RequireFromString("10.00"))}
	q := Calcular(CategoriaMoto, "nao", cupom)

	assert.Equal(t, "R$ 108,00", q.RotuloInstalacao)
	require.NotNil(t, q.LinhaCupom)
	assert.Contains(t, *q.LinhaCupom, "10%")
	assert.NotContains(t, *q.LinhaCupom, "10.0%")
	assert.NotContains(t, *q.LinhaCupom, "10,0%")
}

func TestCalcularSemRegraAtivaNaoGeraLinha(t *testing.T) {
	cupom := &Cupom{Codigo: "VAZIO", Instalacao: Regra{Tipo: "desconhecido", Valor: decimal.NewFromInt(30)}}
	q := Calcular(CategoriaCarro, "sim", cupom)

	assert.Nil(t, q.LinhaCupom)
	assert.Equal(t, "R$ 120,00", q.RotuloInstalacao)
}

func TestCalcularDescontoNaMensalidade(t *testing.T) {
	cupom := &Cupom{Codigo: "MES", Mensalidade: Percentual(decimal.NewFromInt(10))}
	q := Calcular(CategoriaCarro, "nao", cupom)

	assert.Equal(t, "R$ 53,01", q.RotuloMensalidade)
	assert.Equal(t, "R$ 120,00", q.RotuloInstalacao)
	require.NotNil(t, q.LinhaCupom)
	assert.Equal(t, "MES — desconto na mensalidade de 10%.", *q.LinhaCupom)
}

func TestCalcularDescontoNosDois(t *testing.T) {
	cupom := &Cupom{
		Codigo:      "COMBO",
		Instalacao:  Fixa(decimal.NewFromInt(20)),
		Mensalidade: Fixa(decimal.RequireFromString("4.90")),
	}
	q := Calcular(CategoriaCarro, "sim", cupom)

	assert.Equal(t, "R$ 60,00", q.RotuloMensalidade)
	require.NotNil(t, q.LinhaCupom)
	assert.Equal(t, "COMBO — desconto na instalação de R$ 20,00 e na mensalidade de R$ 4,90.", *q.LinhaCupom)
}

func TestNormalizarCategoria(t *testing.T) {
	assert.Equal(t, CategoriaCaminhao, NormalizarCategoria(" Caminhão "))
	assert.Equal(t, CategoriaTratorMaquina, NormalizarCategoria("trator/máquina"))
	assert.Equal(t, CategoriaCarro, NormalizarCategoria("CARRO"))
	assert.Equal(t, Categoria(""), NormalizarCategoria("patinete"))
	assert.Equal(t, Categoria(""), NormalizarCategoria(""))
}

func TestResolverBloqueio(t *testing.T) {
	assert.Equal(t, BloqueioSim, ResolverBloqueio(""))
	assert.Equal(t, BloqueioSim, ResolverBloqueio("sim"))
	assert.Equal(t, BloqueioSim, ResolverBloqueio("yes"))
	assert.Equal(t, BloqueioNao, ResolverBloqueio("nao"))
	assert.Equal(t, BloqueioNao, ResolverBloqueio("Não"))
	assert.Equal(t, BloqueioNao, ResolverBloqueio("no"))
}
