package contrato

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/SigaRastreamento/api-site/internal/apperr"
	"github.com/SigaRastreamento/api-site/internal/logger"
	"github.com/SigaRastreamento/api-site/internal/utils"
	"github.com/SigaRastreamento/api-site/internal/utils/resposta"
	"github.com/SigaRastreamento/api-site/internal/validacao"
)

type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Log        *logger.Logger
}

func NewHandler(db *gorm.DB, logg *logger.Logger) *Handler {
	return &Handler{DB: db, Repository: NewRepository(), Log: logg}
}

// POST /solicitacoes/{id}/contratos
func (h *Handler) CriarParaSolicitacao(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	solID, err := utils.IDParam(r, "id")
	if err != nil {
		resposta.Erro(ctx, h.Log, w, err)
		return
	}
	var req CriarRequest
	if err := validacao.DecodeJSONBody(r, &req); err != nil {
		resposta.Erro(ctx, h.Log, w, err)
		return
	}

	db := h.DB.WithContext(ctx)
	var n int64
	if err := db.Table("solicitacoes").Where("id = ?", solID).Count(&n).Error; err != nil {
		resposta.Erro(ctx, h.Log, w, apperr.FromDB(err, "erro ao buscar solicitação"))
		return
	}
	if n == 0 {
		resposta.Erro(ctx, h.Log, w, apperr.New(apperr.CodeNotFound, "solicitação não encontrada"))
		return
	}

	c := Contrato{
		SolicitacaoID:  solID,
		Tipo:           req.Tipo,
		URL:            req.URL,
		DataAssinatura: req.DataAssinatura,
		Status:         statusPorAssinatura(req.DataAssinatura),
	}
	if err := h.Repository.Criar(db, &c); err != nil {
		resposta.Erro(ctx, h.Log, w, apperr.FromDB(err, "erro ao salvar contrato"))
		return
	}
	resposta.JSON(w, http.StatusCreated, c)
}

// GET /solicitacoes/{id}/contratos
func (h *Handler) ListarPorSolicitacao(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	solID, err := utils.IDParam(r, "id")
	if err != nil {
		resposta.Erro(ctx, h.Log, w, err)
		return
	}
	list, err := h.Repository.ListarPorSolicitacao(h.DB.WithContext(ctx), solID)
	if err != nil {
		resposta.Erro(ctx, h.Log, w, apperr.FromDB(err, "erro ao listar contratos"))
		return
	}
	resposta.JSON(w, http.StatusOK, list)
}

// GET /contratos
func (h *Handler) ListarTodos(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	list, err := h.Repository.ListarTodos(h.DB.WithContext(ctx))
	if err != nil {
		resposta.Erro(ctx, h.Log, w, apperr.FromDB(err, "erro ao listar contratos"))
		return
	}
	resposta.JSON(w, http.StatusOK, list)
}

// PUT /contratos/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := utils.IDParam(r, "id")
	if err != nil {
		resposta.Erro(ctx, h.Log, w, err)
		return
	}
	var req AtualizarRequest
	if err := validacao.DecodeJSONBody(r, &req); err != nil {
		resposta.Erro(ctx, h.Log, w, err)
		return
	}

	db := h.DB.WithContext(ctx)
	c, err := h.Repository.BuscarPorID(db, id)
	if err != nil {
		resposta.Erro(ctx, h.Log, w, apperr.FromDB(err, "contrato não encontrado"))
		return
	}
	if req.Tipo != nil {
		c.Tipo = *req.Tipo
	}
	if req.URL != nil {
		c.URL = *req.URL
	}
	if req.DataAssinatura != nil {
		c.DataAssinatura = req.DataAssinatura
	}
	c.Status = statusPorAssinatura(c.DataAssinatura)

	if err := h.Repository.Atualizar(db, c); err != nil {
		resposta.Erro(ctx, h.Log, w, apperr.FromDB(err, "erro ao atualizar contrato"))
		return
	}
	resposta.JSON(w, http.StatusOK, c)
}

// DELETE /contratos/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := utils.IDParam(r, "id")
	if err != nil {
		resposta.Erro(ctx, h.Log, w, err)
		return
	}
	if err := h.Repository.Deletar(h.DB.WithContext(ctx), id); err != nil {
		resposta.Erro(ctx, h.Log, w, apperr.FromDB(err, "erro ao excluir contrato"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
