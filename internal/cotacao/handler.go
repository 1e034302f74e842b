package cotacao

import (
	"context"
	"net/http"
	"strings"

	"github.com/SigaRastreamento/api-site/internal/apperr"
	"github.com/SigaRastreamento/api-site/internal/logger"
	"github.com/SigaRastreamento/api-site/internal/metricas"
	"github.com/SigaRastreamento/api-site/internal/utils/resposta"
)

type fonteCupom interface {
	CupomCotacao(ctx context.Context, codigo string) (*Cupom, error)
}

type Handler struct {
	Cupons   fonteCupom
	Metricas *metricas.Metricas
	Log      *logger.Logger
}

func NewHandler(cupons fonteCupom, m *metricas.Metricas, logg *logger.Logger) *Handler {
	return &Handler{Cupons: cupons, Metricas: m, Log: logg}
}

// Resposta acrescenta à cotação o retorno sobre o cupom informado.
type Resposta struct {
	Cotacao
	CupomAplicado bool   `json:"cupomAplicado"`
	MensagemCupom string `json:"mensagemCupom,omitempty"`
}

// GET /cotacao?categoria=&bloqueio=&cupom=
func (h *Handler) Calcular(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	bruta := strings.TrimSpace(q.Get("categoria"))
	categoria := NormalizarCategoria(bruta)
	if bruta != "" && !categoria.Valida() {
		resposta.Erro(ctx, h.Log, w, apperr.New(apperr.CodeValidation, "categoria inválida").
			WithDetails(map[string]any{"categoria": Categorias()}))
		return
	}

	var out Resposta
	var cupom *Cupom
	if codigo := strings.TrimSpace(q.Get("cupom")); codigo != "" && h.Cupons != nil {
		c, err := h.Cupons.CupomCotacao(ctx, codigo)
		if err != nil {
			resposta.Erro(ctx, h.Log, w, apperr.Wrap(apperr.CodeInternal, err, "erro ao consultar cupom"))
			return
		}
		if c == nil {
			out.MensagemCupom = "Cupom inválido ou expirado."
		} else {
			cupom = c
			out.CupomAplicado = true
		}
	}

	out.Cotacao = Calcular(categoria, q.Get("bloqueio"), cupom)
	if out.Definida {
		h.Metricas.Cotacao(out.Plano)
	}
	resposta.JSON(w, http.StatusOK, out)
}
