package comentario

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/SigaRastreamento/api-site/internal/apperr"
	"github.com/SigaRastreamento/api-site/internal/auth"
	"github.com/SigaRastreamento/api-site/internal/logger"
	"github.com/SigaRastreamento/api-site/internal/utils"
	"github.com/SigaRastreamento/api-site/internal/utils/resposta"
	"github.com/SigaRastreamento/api-site/internal/validacao"
)

// Handler encapsula o DB e o Repository
type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Log        *logger.Logger
}

func NewHandler(db *gorm.DB, logg *logger.Logger) *Handler {
	return &Handler{DB: db, Repository: NewRepository(), Log: logg}
}

func (h *Handler) solicitacaoExiste(db *gorm.DB, id uint) error {
	var n int64
	if err := db.Table("solicitacoes").Where("id = ?", id).Count(&n).Error; err != nil {
		return apperr.FromDB(err, "erro ao buscar solicitação")
	}
	if n == 0 {
		return apperr.New(apperr.CodeNotFound, "solicitação não encontrada")
	}
	return nil
}

// POST /solicitacoes/{id}/comentarios
func (h *Handler) CriarComentario(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	solID, err := utils.IDParam(r, "id")
	if err != nil {
		resposta.Erro(ctx, h.Log, w, err)
		return
	}
	userID, ok := auth.UsuarioID(ctx)
	if !ok {
		resposta.Erro(ctx, h.Log, w, apperr.New(apperr.CodeUnauthorized, "não autenticado"))
		return
	}
	var req CriarRequest
	if err := validacao.DecodeJSONBody(r, &req); err != nil {
		resposta.Erro(ctx, h.Log, w, err)
		return
	}

	db := h.DB.WithContext(ctx)
	if err := h.solicitacaoExiste(db, solID); err != nil {
		resposta.Erro(ctx, h.Log, w, err)
		return
	}

	c := Comentario{Texto: req.Texto, SolicitacaoID: solID, UsuarioID: &userID}
	if err := h.Repository.Criar(db, &c); err != nil {
		resposta.Erro(ctx, h.Log, w, apperr.FromDB(err, "erro ao criar comentário"))
		return
	}
	criado, err := h.Repository.BuscarPorID(db, c.ID)
	if err != nil {
		resposta.Erro(ctx, h.Log, w, apperr.FromDB(err, "erro ao buscar comentário"))
		return
	}
	resposta.JSON(w, http.StatusCreated, toDTO(*criado))
}

// GET /solicitacoes/{id}/comentarios
func (h *Handler) ListarPorSolicitacao(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	solID, err := utils.IDParam(r, "id")
	if err != nil {
		resposta.Erro(ctx, h.Log, w, err)
		return
	}
	list, err := h.Repository.ListarPorSolicitacao(h.DB.WithContext(ctx), solID)
	if err != nil {
		resposta.Erro(ctx, h.Log, w, apperr.FromDB(err, "erro ao listar comentários"))
		return
	}
	resposta.JSON(w, http.StatusOK, toDTOs(list))
}

// PUT /comentarios/{id}: só o autor edita, comentários de sistema são imutáveis.
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
		resposta.Erro(ctx, h.Log, w, apperr.FromDB(err, "comentário não encontrado"))
		return
	}
	if err := h.podeAlterar(r, c); err != nil {
		resposta.Erro(ctx, h.Log, w, err)
		return
	}
	if err := h.Repository.Atualizar(db, id, req.Texto); err != nil {
		resposta.Erro(ctx, h.Log, w, apperr.FromDB(err, "erro ao atualizar comentário"))
		return
	}
	c.Texto = req.Texto
	resposta.JSON(w, http.StatusOK, toDTO(*c))
}

// DELETE /comentarios/{id}
func (h *Handler) RemoverComentario(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := utils.IDParam(r, "id")
	if err != nil {
		resposta.Erro(ctx, h.Log, w, err)
		return
	}
	db := h.DB.WithContext(ctx)
	c, err := h.Repository.BuscarPorID(db, id)
	if err != nil {
		resposta.Erro(ctx, h.Log, w, apperr.FromDB(err, "comentário não encontrado"))
		return
	}
	if err := h.podeAlterar(r, c); err != nil {
		resposta.Erro(ctx, h.Log, w, err)
		return
	}
	if err := h.Repository.Remover(db, id); err != nil {
		resposta.Erro(ctx, h.Log, w, apperr.FromDB(err, "erro ao remover comentário"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) podeAlterar(r *http.Request, c *Comentario) error {
	if c.Sistema {
		return apperr.New(apperr.CodeForbidden, "comentários do sistema não podem ser alterados")
	}
	userID, _ := auth.UsuarioID(r.Context())
	if auth.IsAdmin(r.Context()) || (c.UsuarioID != nil && *c.UsuarioID == userID) {
		return nil
	}
	return apperr.New(apperr.CodeForbidden, "apenas o autor pode alterar o comentário")
}
