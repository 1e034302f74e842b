package cupom

import (
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/SigaRastreamento/api-site/internal/apperr"
	"github.com/SigaRastreamento/api-site/internal/cotacao"
	"github.com/SigaRastreamento/api-site/internal/logger"
	"github.com/SigaRastreamento/api-site/internal/metricas"
	"github.com/SigaRastreamento/api-site/internal/representante"
	"github.com/SigaRastreamento/api-site/internal/utils"
	"github.com/SigaRastreamento/api-site/internal/utils/resposta"
	"github.com/SigaRastreamento/api-site/internal/validacao"
)

const mensagemCupomInvalido = "Cupom inválido ou expirado."

type Handler struct {
	DB                *gorm.DB
	Repository        Repository
	RepresentanteRepo representante.Repository
	Buscador          *Buscador
	Metricas          *metricas.Metricas
	Log               *logger.Logger
}

func NewHandler(db *gorm.DB, buscador *Buscador, m *metricas.Metricas, logg *logger.Logger) *Handler {
	return &Handler{
		DB:                db,
		Repository:        NewRepository(),
		RepresentanteRepo: representante.NewRepository(),
		Buscador:          buscador,
		Metricas:          m,
		Log:               logg,
	}
}

// POST /cupons
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req CriarRequest
	if err := validacao.DecodeJSONBody(r, &req); err != nil {
		resposta.Erro(ctx, h.Log, w, err)
		return
	}

	c := Cupom{
		Codigo:              req.Codigo,
		Ativo:               req.Ativo == nil || *req.Ativo,
		DescontoInstalacao:  req.DescontoInstalacao.Regra(),
		DescontoMensalidade: req.DescontoMensalidade.Regra(),
		Comissao:            req.Comissao.Regra(),
		RepresentanteID:     req.RepresentanteID,
	}
	if err := h.validar(r, &c); err != nil {
		resposta.Erro(ctx, h.Log, w, err)
		return
	}
	if err := h.Repository.Salvar(h.DB.WithContext(ctx), &c); err != nil {
		resposta.Erro(ctx, h.Log, w, apperr.FromDB(err, "já existe um cupom com esse código"))
		return
	}
	h.Buscador.Invalidar(ctx, c.Codigo)
	resposta.JSON(w, http.StatusCreated, c)
}

// GET /cupons
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	list, err := h.Repository.ListarTodos(h.DB.WithContext(ctx))
	if err != nil {
		resposta.Erro(ctx, h.Log, w, apperr.FromDB(err, "erro ao listar cupons"))
		return
	}
	resposta.JSON(w, http.StatusOK, list)
}

// GET /cupons/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := utils.IDParam(r, "id")
	if err != nil {
		resposta.Erro(ctx, h.Log, w, err)
		return
	}
	c, err := h.Repository.BuscarPorID(h.DB.WithContext(ctx), id)
	if err != nil {
		resposta.Erro(ctx, h.Log, w, apperr.FromDB(err, "cupom não encontrado"))
		return
	}
	resposta.JSON(w, http.StatusOK, c)
}

// PUT /cupons/{id}
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
		resposta.Erro(ctx, h.Log, w, apperr.FromDB(err, "cupom não encontrado"))
		return
	}
	codigoAnterior := c.Codigo

	if req.Codigo != nil {
		c.Codigo = *req.Codigo
	}
	if req.Ativo != nil {
		c.Ativo = *req.Ativo
	}
	if req.DescontoInstalacao != nil {
		c.DescontoInstalacao = req.DescontoInstalacao.Regra()
	}
	if req.DescontoMensalidade != nil {
		c.DescontoMensalidade = req.DescontoMensalidade.Regra()
	}
	if req.Comissao != nil {
		c.Comissao = req.Comissao.Regra()
	}
	if req.RemoverRepresentante {
		c.RepresentanteID = nil
	} else if req.RepresentanteID != nil {
		c.RepresentanteID = req.RepresentanteID
	}

	if err := h.validar(r, c); err != nil {
		resposta.Erro(ctx, h.Log, w, err)
		return
	}
	if err := h.Repository.Atualizar(db, c); err != nil {
		resposta.Erro(ctx, h.Log, w, apperr.FromDB(err, "já existe um cupom com esse código"))
		return
	}
	h.Buscador.Invalidar(ctx, codigoAnterior, c.Codigo)
	resposta.JSON(w, http.StatusOK, c)
}

// DELETE /cupons/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := utils.IDParam(r, "id")
	if err != nil {
		resposta.Erro(ctx, h.Log, w, err)
		return
	}
	db := h.DB.WithContext(ctx)
	c, err := h.Repository.BuscarPorID(db, id)
	if err != nil {
		resposta.Erro(ctx, h.Log, w, apperr.FromDB(err, "cupom não encontrado"))
		return
	}
	if err := h.Repository.Deletar(db, id); err != nil {
		resposta.Erro(ctx, h.Log, w, apperr.FromDB(err, "erro ao excluir cupom"))
		return
	}
	h.Buscador.Invalidar(ctx, c.Codigo)
	w.WriteHeader(http.StatusNoContent)
}

// POST /cupons/validar (público)
func (h *Handler) Validar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req ValidarRequest
	if err := validacao.DecodeJSONBody(r, &req); err != nil {
		resposta.Erro(ctx, h.Log, w, err)
		return
	}

	c, err := h.Buscador.Ativo(ctx, req.Codigo)
	if err != nil {
		h.Metricas.ValidacaoCupom("erro")
		resposta.Erro(ctx, h.Log, w, apperr.Wrap(apperr.CodeInternal, err, "erro ao validar cupom"))
		return
	}
	if c == nil {
		h.Metricas.ValidacaoCupom("invalido")
		resposta.JSON(w, http.StatusOK, ValidarResponse{Valido: false, Mensagem: mensagemCupomInvalido})
		return
	}

	h.Metricas.ValidacaoCupom("valido")
	resposta.JSON(w, http.StatusOK, ValidarResponse{
		Valido:      true,
		Codigo:      c.Codigo,
		Descricao:   c.ParaCotacao().Descricao(),
		Instalacao:  &c.DescontoInstalacao,
		Mensalidade: &c.DescontoMensalidade,
	})
}

func (h *Handler) validar(r *http.Request, c *Cupom) error {
	detalhes := map[string]string{}
	regras := []struct {
		campo string
		regra cotacao.Regra
	}{
		{"descontoInstalacao", c.DescontoInstalacao},
		{"descontoMensalidade", c.DescontoMensalidade},
		{"comissao", c.Comissao},
	}
	for _, item := range regras {
		if err := item.regra.Validar(); err != nil {
			detalhes[item.campo] = err.Error()
		}
	}
	if NormalizarCodigo(c.Codigo) == "" {
		detalhes["codigo"] = "obrigatório"
	}
	if len(detalhes) > 0 {
		return apperr.New(apperr.CodeValidation, "dados inválidos").WithDetails(detalhes)
	}

	if c.RepresentanteID != nil {
		_, err := h.RepresentanteRepo.BuscarPorID(h.DB.WithContext(r.Context()), *c.RepresentanteID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.CodeValidation, "dados inválidos").
				WithDetails(map[string]string{"representanteId": "representante não encontrado"})
		}
		if err != nil {
			return apperr.FromDB(err, "erro ao buscar representante")
		}
	}
	return nil
}
