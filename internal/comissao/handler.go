package comissao

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/SigaRastreamento/api-site/internal/apperr"
	"github.com/SigaRastreamento/api-site/internal/logger"
	"github.com/SigaRastreamento/api-site/internal/utils/resposta"
)

type gerador interface {
	Gerar(ctx context.Context, filtro string) ([]Relatorio, error)
}

type Handler struct {
	Service gerador
	Log     *logger.Logger
}

func NewHandler(s *Service, logg *logger.Logger) *Handler {
	return &Handler{Service: s, Log: logg}
}

func filtroDaQuery(r *http.Request) (string, error) {
	filtro := strings.TrimSpace(r.URL.Query().Get("representante"))
	if TodosRepresentantes(filtro) {
		return filtro, nil
	}
	if id, err := strconv.ParseUint(filtro, 10, 64); err != nil || id == 0 {
		return "", apperr.New(apperr.CodeValidation, "representante inválido").
			WithDetails(map[string]string{"representante": "use o ID do representante ou \"todos\""})
	}
	return filtro, nil
}

// GET /comissoes?representante=<id|todos>
func (h *Handler) Relatorio(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filtro, err := filtroDaQuery(r)
	if err != nil {
		resposta.Erro(ctx, h.Log, w, err)
		return
	}
	relatorios, err := h.Service.Gerar(ctx, filtro)
	if err != nil {
		resposta.Erro(ctx, h.Log, w, apperr.FromDB(err, "erro ao gerar relatório de comissões"))
		return
	}
	resposta.JSON(w, http.StatusOK, relatorios)
}

// GET /comissoes/resumo
func (h *Handler) Resumo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	relatorios, err := h.Service.Gerar(ctx, "todos")
	if err != nil {
		resposta.Erro(ctx, h.Log, w, apperr.FromDB(err, "erro ao gerar resumo de comissões"))
		return
	}
	resposta.JSON(w, http.StatusOK, Resumir(relatorios))
}
