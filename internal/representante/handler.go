package representante

import (
	"net/http"

	"github.com/SigaRastreamento/api-site/internal/apperr"
	"github.com/SigaRastreamento/api-site/internal/logger"
	"github.com/SigaRastreamento/api-site/internal/utils"
	"github.com/SigaRastreamento/api-site/internal/utils/resposta"
	"github.com/SigaRastreamento/api-site/internal/validacao"
	"gorm.io/gorm"
)

// Handler encapsula DB e repository
type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Log        *logger.Logger
}

func NewHandler(db *gorm.DB, logg *logger.Logger) *Handler {
	return &Handler{DB: db, Repository: NewRepository(), Log: logg}
}

// POST /representantes
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req CriarRequest
	if err := validacao.DecodeJSONBody(r, &req); err != nil {
		resposta.Erro(ctx, h.Log, w, err)
		return
	}

	rep := Representante{
		Nome:     req.Nome,
		Email:    req.Email,
		Telefone: req.Telefone,
		ChavePix: req.ChavePix,
		Ativo:    req.Ativo == nil || *req.Ativo,
	}
	if err := h.Repository.Salvar(h.DB.WithContext(ctx), &rep); err != nil {
		resposta.Erro(ctx, h.Log, w, apperr.FromDB(err, "erro ao salvar representante"))
		return
	}
	resposta.JSON(w, http.StatusCreated, rep)
}

// GET /representantes
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	list, err := h.Repository.ListarTodos(h.DB.WithContext(ctx))
	if err != nil {
		resposta.Erro(ctx, h.Log, w, apperr.FromDB(err, "erro ao listar representantes"))
		return
	}
	resposta.JSON(w, http.StatusOK, list)
}

// GET /representantes/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := utils.IDParam(r, "id")
	if err != nil {
		resposta.Erro(ctx, h.Log, w, err)
		return
	}
	rep, err := h.Repository.BuscarPorID(h.DB.WithContext(ctx), id)
	if err != nil {
		resposta.Erro(ctx, h.Log, w, apperr.FromDB(err, "representante não encontrado"))
		return
	}
	resposta.JSON(w, http.StatusOK, rep)
}

// PUT /representantes/{id}
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
	rep, err := h.Repository.Atualizar(h.DB.WithContext(ctx), id, &req)
	if err != nil {
		resposta.Erro(ctx, h.Log, w, apperr.FromDB(err, "erro ao atualizar representante"))
		return
	}
	resposta.JSON(w, http.StatusOK, rep)
}

// DELETE /representantes/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := utils.IDParam(r, "id")
	if err != nil {
		resposta.Erro(ctx, h.Log, w, err)
		return
	}
	if err := h.Repository.Deletar(h.DB.WithContext(ctx), id); err != nil {
		resposta.Erro(ctx, h.Log, w, apperr.FromDB(err, "erro ao excluir representante"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
