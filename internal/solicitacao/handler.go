package solicitacao

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/SigaRastreamento/api-site/internal/apperr"
	"github.com/SigaRastreamento/api-site/internal/comentario"
	"github.com/SigaRastreamento/api-site/internal/cotacao"
	"github.com/SigaRastreamento/api-site/internal/cupom"
	"github.com/SigaRastreamento/api-site/internal/logger"
	"github.com/SigaRastreamento/api-site/internal/metricas"
	"github.com/SigaRastreamento/api-site/internal/notificacao"
	"github.com/SigaRastreamento/api-site/internal/utils"
	"github.com/SigaRastreamento/api-site/internal/utils/resposta"
	"github.com/SigaRastreamento/api-site/internal/validacao"
)

type verificadorCaptcha interface {
	Verificar(ctx context.Context, token, ip string) error
}

type buscadorCupom interface {
	Ativo(ctx context.Context, codigo string) (*cupom.Cupom, error)
}

type notificador interface {
	Enviar(ctx context.Context, e notificacao.Email)
}

type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Captcha    verificadorCaptcha
	Cupons     buscadorCupom
	Notificar  notificador
	Metricas   *metricas.Metricas
	Log        *logger.Logger
	agora      func() time.Time
}

func NewHandler(db *gorm.DB, v verificadorCaptcha, b buscadorCupom, n notificador, m *metricas.Metricas, logg *logger.Logger) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		Captcha:    v,
		Cupons:     b,
		Notificar:  n,
		Metricas:   m,
		Log:        logg,
		agora:      time.Now,
	}
}

// POST /solicitacoes (público)
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req CriarRequest
	if err := validacao.DecodeJSONBody(r, &req); err != nil {
		resposta.Erro(ctx, h.Log, w, err)
		return
	}
	if err := req.Validar(); err != nil {
		resposta.Erro(ctx, h.Log, w, err)
		return
	}
	req.Normalizar()

	if h.Captcha != nil {
		if err := h.Captcha.Verificar(ctx, req.CaptchaToken, utils.ClientIP(r)); err != nil {
			resposta.Erro(ctx, h.Log, w, err)
			return
		}
	}

	var cupomCotacao *cotacao.Cupom
	codigo := cupom.NormalizarCodigo(req.Cupom)
	if codigo != "" {
		c, err := h.Cupons.Ativo(ctx, codigo)
		if err != nil {
			resposta.Erro(ctx, h.Log, w, err)
			return
		}
		if c == nil {
			resposta.Erro(ctx, h.Log, w, apperr.New(apperr.CodeValidation, "dados inválidos").
				WithDetails(map[string]string{"cupom": "Cupom inválido ou expirado."}))
			return
		}
		cupomCotacao = c.ParaCotacao()
	}

	categoria := cotacao.NormalizarCategoria(req.Categoria)
	bloqueio := cotacao.ResolverBloqueio(req.Bloqueio)
	cot := cotacao.Calcular(categoria, string(bloqueio), cupomCotacao)

	mensal := cotacao.Centavos(cot.Mensalidade)
	instalacao := cotacao.Centavos(cot.Instalacao)
	s := Solicitacao{
		Protocolo:               uuid.NewString(),
		TipoPessoa:              req.TipoPessoa,
		Nome:                    req.Nome,
		CPF:                     req.CPF,
		RazaoSocial:             req.RazaoSocial,
		NomeFantasia:            req.NomeFantasia,
		CNPJ:                    req.CNPJ,
		Email:                   req.Email,
		Telefone:                req.Telefone,
		Categoria:               string(categoria),
		Bloqueio:                string(bloqueio),
		Marca:                   req.Marca,
		Modelo:                  req.Modelo,
		Ano:                     req.Ano,
		Placa:                   req.Placa,
		Cor:                     req.Cor,
		CEP:                     req.CEP,
		Logradouro:              req.Logradouro,
		Numero:                  req.Numero,
		Complemento:             req.Complemento,
		Bairro:                  req.Bairro,
		Cidade:                  req.Cidade,
		UF:                      req.UF,
		Plano:                   cot.Plano,
		ValorMensal:             cot.RotuloMensalidade,
		ValorInstalacao:         cot.RotuloInstalacao,
		ValorMensalCentavos:     &mensal,
		ValorInstalacaoCentavos: &instalacao,
		Observacoes:             req.Observacoes,
		Status:                  StatusNovo,
	}
	if cupomCotacao != nil {
		s.CodigoCupom = cupomCotacao.Codigo
		if cot.LinhaCupom != nil {
			s.DescricaoDesconto = *cot.LinhaCupom
		}
	}

	if err := h.Repository.Salvar(h.DB.WithContext(ctx), &s); err != nil {
		resposta.Erro(ctx, h.Log, w, apperr.FromDB(err, "erro ao registrar solicitação"))
		return
	}
	h.Metricas.Solicitacao(s.Plano)
	h.Log.Info(h.Log.WithFields(ctx, map[string]any{
		"protocolo": s.Protocolo,
		"plano":     s.Plano,
		"cupom":     s.CodigoCupom,
	}), "solicitacao.created")

	if h.Notificar != nil {
		bg := context.WithoutCancel(ctx)
		equipe, cliente := emailEquipe(&s), emailCliente(&s)
		go func() {
			h.Notificar.Enviar(bg, equipe)
			h.Notificar.Enviar(bg, cliente)
		}()
	}

	resposta.JSON(w, http.StatusCreated, CriarResponse{
		Protocolo:         s.Protocolo,
		Status:            s.Status,
		Plano:             s.Plano,
		ValorMensal:       s.ValorMensal,
		ValorInstalacao:   s.ValorInstalacao,
		CodigoCupom:       s.CodigoCupom,
		DescricaoDesconto: s.DescricaoDesconto,
	})
}

// GET /solicitacoes?status=&cupom=&busca=&pagina=&porPagina=
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()
	f := Filtro{
		Status: Status(q.Get("status")),
		Cupom:  q.Get("cupom"),
		Busca:  q.Get("busca"),
	}
	if f.Status != "" && !f.Status.Valido() {
		resposta.Erro(ctx, h.Log, w, apperr.New(apperr.CodeValidation, "status inválido"))
		return
	}
	f.Pagina, _ = strconv.Atoi(q.Get("pagina"))
	f.PorPagina, _ = strconv.Atoi(q.Get("porPagina"))
	f.normalizar()

	list, total, err := h.Repository.Listar(h.DB.WithContext(ctx), f)
	if err != nil {
		resposta.Erro(ctx, h.Log, w, apperr.FromDB(err, "erro ao listar solicitações"))
		return
	}
	if list == nil {
		list = []Solicitacao{}
	}
	resposta.JSON(w, http.StatusOK, ListaResponse{Itens: list, Total: total, Pagina: f.Pagina, PorPagina: f.PorPagina})
}

// GET /solicitacoes/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := utils.IDParam(r, "id")
	if err != nil {
		resposta.Erro(ctx, h.Log, w, err)
		return
	}
	s, err := h.Repository.BuscarPorID(h.DB.WithContext(ctx), id)
	if err != nil {
		resposta.Erro(ctx, h.Log, w, apperr.FromDB(err, "solicitação não encontrada"))
		return
	}
	resposta.JSON(w, http.StatusOK, s)
}

// PATCH /solicitacoes/{id}/status
func (h *Handler) AtualizarStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := utils.IDParam(r, "id")
	if err != nil {
		resposta.Erro(ctx, h.Log, w, err)
		return
	}
	var req AtualizarStatusRequest
	if err := validacao.DecodeJSONBody(r, &req); err != nil {
		resposta.Erro(ctx, h.Log, w, err)
		return
	}

	var s *Solicitacao
	err = h.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		atual, err := h.Repository.BuscarPorID(tx, id)
		if err != nil {
			return apperr.FromDB(err, "solicitação não encontrada")
		}
		s = atual
		if err := ValidarTransicao(s.Status, s.InstalacaoPaga, req.Status); err != nil {
			return err
		}
		if s.Status == req.Status {
			return nil
		}

		anterior := s.Status
		s.Status = req.Status
		texto := fmt.Sprintf("Status alterado de %s para %s.", anterior, req.Status)
		switch req.Status {
		case StatusInstalado:
			agora := h.agora()
			s.InstaladoEm = &agora
		case StatusCancelado:
			s.MotivoCancelamento = req.Motivo
			if req.Motivo != "" {
				texto += " Motivo: " + req.Motivo
			}
		}
		if err := h.Repository.Atualizar(tx, s); err != nil {
			return apperr.FromDB(err, "erro ao atualizar solicitação")
		}
		return comentario.Sistema(tx, s.ID, texto)
	})
	if err != nil {
		resposta.Erro(ctx, h.Log, w, err)
		return
	}
	h.Log.Info(h.Log.WithFields(ctx, map[string]any{"solicitacao_id": s.ID, "status": s.Status}), "solicitacao.status_updated")
	resposta.JSON(w, http.StatusOK, s)
}

// PATCH /solicitacoes/{id}/pagamento
func (h *Handler) AtualizarPagamento(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := utils.IDParam(r, "id")
	if err != nil {
		resposta.Erro(ctx, h.Log, w, err)
		return
	}
	var req AtualizarPagamentoRequest
	if err := validacao.DecodeJSONBody(r, &req); err != nil {
		resposta.Erro(ctx, h.Log, w, err)
		return
	}
	pago := *req.InstalacaoPaga

	var s *Solicitacao
	err = h.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		atual, err := h.Repository.BuscarPorID(tx, id)
		if err != nil {
			return apperr.FromDB(err, "solicitação não encontrada")
		}
		s = atual
		if err := ValidarPagamento(s.Status, s.InstalacaoPaga, pago); err != nil {
			return err
		}
		if s.InstalacaoPaga == pago {
			return nil
		}

		s.InstalacaoPaga = pago
		texto := "Instalação marcada como pendente de pagamento."
		if pago {
			agora := h.agora()
			s.PagoEm = &agora
			texto = "Instalação marcada como paga."
		} else {
			s.PagoEm = nil
		}
		if err := h.Repository.Atualizar(tx, s); err != nil {
			return apperr.FromDB(err, "erro ao atualizar solicitação")
		}
		return comentario.Sistema(tx, s.ID, texto)
	})
	if err != nil {
		resposta.Erro(ctx, h.Log, w, err)
		return
	}
	resposta.JSON(w, http.StatusOK, s)
}
