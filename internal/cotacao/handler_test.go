package cotacao

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SigaRastreamento/api-site/internal/logger"
	"github.com/SigaRastreamento/api-site/internal/metricas"
)

type fakeCupons map[string]*Cupom

func (f fakeCupons) CupomCotacao(_ context.Context, codigo string) (*Cupom, error) {
	codigo = strings.ToUpper(codigo)
	if codigo == "ERRO" {
		return nil, errors.New("timeout")
	}
	return f[codigo], nil
}

func cotar(t *testing.T, h *Handler, query string) (*httptest.ResponseRecorder, Resposta) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.Calcular(rec, httptest.NewRequest(http.MethodGet, "/cotacao?"+query, nil))
	var out Resposta
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func TestHandlerCalcular(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metricas.New(reg)
	h := NewHandler(fakeCupons{
		"FIXO20": {Codigo: "FIXO20", Instalacao: Fixa(decimal.NewFromInt(20))},
	}, m, logger.Nop())

	rec, out := cotar(t, h, "categoria=carro&bloqueio=sim&cupom=fixo20")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, out.Definida)
	assert.True(t, out.CupomAplicado)
	assert.Equal(t, "Segurança", out.Plano)
	assert.Equal(t, "R$ 100,00", out.RotuloInstalacao)
	require.NotNil(t, out.LinhaCupom)
	assert.Equal(t, "FIXO20 — desconto na instalação de R$ 20,00.", *out.LinhaCupom)

	_, out = cotar(t, h, "categoria=caminhao&bloqueio=nao&cupom=nada")
	assert.Equal(t, "Pesados", out.Plano)
	assert.False(t, out.CupomAplicado)
	assert.Equal(t, "Cupom inválido ou expirado.", out.MensagemCupom)
	assert.Nil(t, out.LinhaCupom)

	_, out = cotar(t, h, "")
	assert.False(t, out.Definida)
	assert.Equal(t, Placeholder, out.Plano)

	rec = httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `site_cotacoes_total{plano="Segurança"} 1`)
	assert.Contains(t, rec.Body.String(), `site_cotacoes_total{plano="Pesados"} 1`)
}

func TestHandlerCalcularErros(t *testing.T) {
	h := NewHandler(fakeCupons{}, nil, logger.Nop())

	rec, _ := cotar(t, h, "categoria=bicicleta")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = cotar(t, h, "categoria=carro&cupom=erro")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
