package logo

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

// POST /logos
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req CriarRequest
	if err := validacao.DecodeJSONBody(r, &req); err != nil {
		resposta.Erro(ctx, h.Log, w, err)
		return
	}

	db := h.DB.WithContext(ctx)
	l := Logo{
		Nome:      req.Nome,
		ImagemURL: req.ImagemURL,
		Link:      req.Link,
		Ativo:     req.Ativo == nil || *req.Ativo,
	}
	if req.Posicao != nil {
		l.Posicao = *req.Posicao
	} else {
		pos, err := h.Repository.ProximaPosicao(db)
		if err != nil {
			resposta.Erro(ctx, h.Log, w, apperr.FromDB(err, "erro ao criar logo"))
			return
		}
		l.Posicao = pos
	}

	if err := h.Repository.Salvar(db, &l); err != nil {
		resposta.Erro(ctx, h.Log, w, apperr.FromDB(err, "erro ao criar logo"))
		return
	}
	resposta.JSON(w, http.StatusCreated, l)
}

// GET /logos (admin, inclui inativos)
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	h.listar(w, r, false)
}

// GET /site/logos
func (h *Handler) ListarPublico(w http.ResponseWriter, r *http.Request) {
	h.listar(w, r, true)
}

func (h *Handler) listar(w http.ResponseWriter, r *http.Request, somenteAtivos bool) {
	ctx := r.Context()
	list, err := h.Repository.Listar(h.DB.WithContext(ctx), somenteAtivos)
	if err != nil {
		resposta.Erro(ctx, h.Log, w, apperr.FromDB(err, "erro ao listar logos"))
		return
	}
	if list == nil {
		list = []Logo{}
	}
	resposta.JSON(w, http.StatusOK, list)
}

// GET /logos/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := utils.IDParam(r, "id")
	if err != nil {
		resposta.Erro(ctx, h.Log, w, err)
		return
	}
	l, err := h.Repository.BuscarPorID(h.DB.WithContext(ctx), id)
	if err != nil {
		resposta.Erro(ctx, h.Log, w, apperr.FromDB(err, "logo não encontrado"))
		return
	}
	resposta.JSON(w, http.StatusOK, l)
}

// PUT /logos/{id}
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
	l, err := h.Repository.BuscarPorID(db, id)
	if err != nil {
		resposta.Erro(ctx, h.Log, w, apperr.FromDB(err, "logo não encontrado"))
		return
	}
	if req.Nome != nil {
		l.Nome = *req.Nome
	}
	if req.ImagemURL != nil {
		l.ImagemURL = *req.ImagemURL
	}
	if req.Link != nil {
		l.Link = *req.Link
	}
	if req.Posicao != nil {
		l.Posicao = *req.Posicao
	}
	if req.Ativo != nil {
		l.Ativo = *req.Ativo
	}
	if err := h.Repository.Atualizar(db, l); err != nil {
		resposta.Erro(ctx, h.Log, w, apperr.FromDB(err, "erro ao atualizar logo"))
		return
	}
	resposta.JSON(w, http.StatusOK, l)
}

// PUT /logos/ordem
func (h *Handler) Reordenar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req ReordenarRequest
	if err := validacao.DecodeJSONBody(r, &req); err != nil {
		resposta.Erro(ctx, h.Log, w, err)
		return
	}
	db := h.DB.WithContext(ctx)
	if err := h.Repository.Reordenar(db, req.IDs); err != nil {
		resposta.Erro(ctx, h.Log, w, apperr.FromDB(err, "logo não encontrado"))
		return
	}
	list, err := h.Repository.Listar(db, false)
	if err != nil {
		resposta.Erro(ctx, h.Log, w, apperr.FromDB(err, "erro ao listar logos"))
		return
	}
	resposta.JSON(w, http.StatusOK, list)
}

// DELETE /logos/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := utils.IDParam(r, "id")
	if err != nil {
		resposta.Erro(ctx, h.Log, w, err)
		return
	}
	if err := h.Repository.Deletar(h.DB.WithContext(ctx), id); err != nil {
		resposta.Erro(ctx, h.Log, w, apperr.FromDB(err, "logo não encontrado"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
