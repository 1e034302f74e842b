package metricas

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metricas agrupa os contadores de negócio do site. Um *Metricas nil é válido
// e não registra nada.
type Metricas struct {
	cotacoes        *prometheus.CounterVec
	solicitacoes    *prometheus.CounterVec
	validacoesCupom *prometheus.CounterVec
	relatorios      prometheus.Counter
	duracaoRelat    prometheus.Histogram
	gatherer        prometheus.Gatherer
}

func New(reg *prometheus.Registry) *Metricas {
	if reg == nil {
		return nil
	}
	m := &Metricas{
		cotacoes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "site_cotacoes_total",
			Help: "Cotações calculadas, por plano.",
		}, []string{"plano"}),
		solicitacoes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "site_solicitacoes_total",
			Help: "Solicitações de contratação recebidas, por plano.",
		}, []string{"plano"}),
		validacoesCupom: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "site_cupom_validacoes_total",
			Help: "Validações de cupom, por resultado.",
		}, []string{"resultado"}),
		relatorios: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "site_relatorios_comissao_total",
			Help: "Relatórios de comissão gerados.",
		}),
		duracaoRelat: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "site_relatorio_comissao_duracao_segundos",
			Help:    "Tempo de montagem do relatório de comissão.",
			Buckets: prometheus.DefBuckets,
		}),
		gatherer: reg,
	}
	reg.MustRegister(m.cotacoes, m.solicitacoes, m.validacoesCupom, m.relatorios, m.duracaoRelat)
	return m
}

func (m *Metricas) Cotacao(plano string) {
	if m == nil {
		return
	}
	m.cotacoes.WithLabelValues(rotulo(plano)).Inc()
}

func (m *Metricas) Solicitacao(plano string) {
	if m == nil {
		return
	}
	m.solicitacoes.WithLabelValues(rotulo(plano)).Inc()
}

// ValidacaoCupom registra "valido", "invalido" ou "erro".
func (m *Metricas) ValidacaoCupom(resultado string) {
	if m == nil {
		return
	}
	m.validacoesCupom.WithLabelValues(rotulo(resultado)).Inc()
}

func (m *Metricas) Relatorio(d time.Duration) {
	if m == nil {
		return
	}
	m.relatorios.Inc()
	m.duracaoRelat.Observe(d.Seconds())
}

// Handler expõe /metrics.
func (m *Metricas) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func rotulo(v string) string {
	if v == "" {
		return "desconhecido"
	}
	return v
}
