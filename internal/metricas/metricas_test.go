package metricas

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestContadores(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.Cotacao("Essencial")
	m.Cotacao("Essencial")
	m.Solicitacao("Pesados")
	m.ValidacaoCupom("valido")
	m.ValidacaoCupom("")
	m.Relatorio(10 * time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.cotacoes.WithLabelValues("Essencial")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.solicitacoes.WithLabelValues("Pesados")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.validacoesCupom.WithLabelValues("desconhecido")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.relatorios))
}

func TestNilNaoQuebra(t *testing.T) {
	var m *Metricas
	m.Cotacao("x")
	m.Relatorio(time.Second)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerExpoeMetricas(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.Cotacao("Segurança")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "site_cotacoes_total")
}
