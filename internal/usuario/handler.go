package usuario

import (
	"context"
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/SigaRastreamento/api-site/internal/apperr"
	"github.com/SigaRastreamento/api-site/internal/auth"
	"github.com/SigaRastreamento/api-site/internal/config"
	"github.com/SigaRastreamento/api-site/internal/logger"
	"github.com/SigaRastreamento/api-site/internal/utils"
	"github.com/SigaRastreamento/api-site/internal/utils/resposta"
	"github.com/SigaRastreamento/api-site/internal/validacao"
)

type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Auth       *auth.Servico
	Log        *logger.Logger
}

func NewHandler(db *gorm.DB, a *auth.Servico, logg *logger.Logger) *Handler {
	return &Handler{DB: db, Repository: NewRepository(), Auth: a, Log: logg}
}

var errCredenciais = apperr.New(apperr.CodeUnauthorized, "credenciais inválidas")

// POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req LoginRequest
	if err := validacao.DecodeJSONBody(r, &req); err != nil {
		resposta.Erro(ctx, h.Log, w, err)
		return
	}

	db := h.DB.WithContext(ctx)
	u, err := h.Repository.BuscarPorEmail(db, req.Email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		resposta.Erro(ctx, h.Log, w, errCredenciais)
		return
	}
	if err != nil {
		resposta.Erro(ctx, h.Log, w, apperr.FromDB(err, "erro ao buscar usuário"))
		return
	}
	if !u.Ativo || !utils.CheckSenha(u.Password, req.Password) {
		resposta.Erro(ctx, h.Log, w, errCredenciais)
		return
	}

	// access token no corpo, refresh em cookie httpOnly
	tokens, err := h.Auth.EmitirNoLogin(db, w, u.ID, u.IsAdmin)
	if err != nil {
		resposta.Erro(ctx, h.Log, w, apperr.Wrap(apperr.CodeInternal, err, "erro ao gerar tokens"))
		return
	}
	h.Log.Info(h.Log.WithUserID(ctx, u.ID), "usuario.login")
	resposta.JSON(w, http.StatusOK, tokens)
}

// GET /auth/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := auth.UsuarioID(ctx)
	if !ok {
		resposta.Erro(ctx, h.Log, w, apperr.New(apperr.CodeUnauthorized, "não autenticado"))
		return
	}
	u, err := h.Repository.BuscarPorID(h.DB.WithContext(ctx), id)
	if err != nil {
		resposta.Erro(ctx, h.Log, w, apperr.FromDB(err, "usuário não encontrado"))
		return
	}
	resposta.JSON(w, http.StatusOK, u)
}

// PUT /auth/senha
func (h *Handler) TrocarSenha(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := auth.UsuarioID(ctx)
	if !ok {
		resposta.Erro(ctx, h.Log, w, apperr.New(apperr.CodeUnauthorized, "não autenticado"))
		return
	}
	var req TrocarSenhaRequest
	if err := validacao.DecodeJSONBody(r, &req); err != nil {
		resposta.Erro(ctx, h.Log, w, err)
		return
	}

	db := h.DB.WithContext(ctx)
	u, err := h.Repository.BuscarPorID(db, id)
	if err != nil {
		resposta.Erro(ctx, h.Log, w, apperr.FromDB(err, "usuário não encontrado"))
		return
	}
	if !utils.CheckSenha(u.Password, req.SenhaAtual) {
		resposta.Erro(ctx, h.Log, w, apperr.New(apperr.CodeValidation, "senha atual incorreta"))
		return
	}
	hash, err := utils.HashSenha(req.NovaSenha)
	if err != nil {
		resposta.Erro(ctx, h.Log, w, apperr.Wrap(apperr.CodeInternal, err, "erro ao gerar hash"))
		return
	}
	u.Password = hash
	if err := h.Repository.Atualizar(db, u); err != nil {
		resposta.Erro(ctx, h.Log, w, apperr.FromDB(err, "erro ao trocar senha"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /usuarios
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req CriarRequest
	if err := validacao.DecodeJSONBody(r, &req); err != nil {
		resposta.Erro(ctx, h.Log, w, err)
		return
	}

	senha := req.Senha
	var temporaria string
	if senha == "" {
		var err error
		if temporaria, err = utils.GerarSenhaTemporaria(); err != nil {
			resposta.Erro(ctx, h.Log, w, apperr.Wrap(apperr.CodeInternal, err, "erro ao gerar senha"))
			return
		}
		senha = temporaria
	}
	hash, err := utils.HashSenha(senha)
	if err != nil {
		resposta.Erro(ctx, h.Log, w, apperr.Wrap(apperr.CodeInternal, err, "erro ao gerar hash"))
		return
	}

	u := Usuario{Nome: req.Nome, Email: req.Email, Password: hash, IsAdmin: req.IsAdmin, Ativo: true}
	if err := h.Repository.Salvar(h.DB.WithContext(ctx), &u); err != nil {
		resposta.Erro(ctx, h.Log, w, apperr.FromDB(err, "e-mail já cadastrado"))
		return
	}
	resposta.JSON(w, http.StatusCreated, CriarResponse{Usuario: u, SenhaTemporaria: temporaria})
}

// GET /usuarios
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	list, err := h.Repository.ListarTodos(h.DB.WithContext(ctx))
	if err != nil {
		resposta.Erro(ctx, h.Log, w, apperr.FromDB(err, "erro ao listar usuários"))
		return
	}
	resposta.JSON(w, http.StatusOK, list)
}

// GET /usuarios/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := utils.IDParam(r, "id")
	if err != nil {
		resposta.Erro(ctx, h.Log, w, err)
		return
	}
	u, err := h.Repository.BuscarPorID(h.DB.WithContext(ctx), id)
	if err != nil {
		resposta.Erro(ctx, h.Log, w, apperr.FromDB(err, "usuário não encontrado"))
		return
	}
	resposta.JSON(w, http.StatusOK, u)
}

// PUT /usuarios/{id}
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
	u, err := h.Repository.BuscarPorID(db, id)
	if err != nil {
		resposta.Erro(ctx, h.Log, w, apperr.FromDB(err, "usuário não encontrado"))
		return
	}
	// o admin logado não pode se rebaixar nem se desativar
	if atual, _ := auth.UsuarioID(ctx); atual == u.ID &&
		((req.IsAdmin != nil && !*req.IsAdmin) || (req.Ativo != nil && !*req.Ativo)) {
		resposta.Erro(ctx, h.Log, w, apperr.New(apperr.CodeValidation, "não é possível remover o próprio acesso"))
		return
	}
	if req.Nome != nil {
		u.Nome = *req.Nome
	}
	if req.IsAdmin != nil {
		u.IsAdmin = *req.IsAdmin
	}
	if req.Ativo != nil {
		u.Ativo = *req.Ativo
	}
	if err := h.Repository.Atualizar(db, u); err != nil {
		resposta.Erro(ctx, h.Log, w, apperr.FromDB(err, "erro ao atualizar usuário"))
		return
	}
	resposta.JSON(w, http.StatusOK, u)
}

// DELETE /usuarios/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := utils.IDParam(r, "id")
	if err != nil {
		resposta.Erro(ctx, h.Log, w, err)
		return
	}
	if atual, _ := auth.UsuarioID(ctx); atual == id {
		resposta.Erro(ctx, h.Log, w, apperr.New(apperr.CodeValidation, "não é possível excluir o próprio usuário"))
		return
	}
	if err := h.Repository.Deletar(h.DB.WithContext(ctx), id); err != nil {
		resposta.Erro(ctx, h.Log, w, apperr.FromDB(err, "erro ao excluir usuário"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GarantirAdmin cria o administrador inicial quando não existe nenhum usuário.
func GarantirAdmin(ctx context.Context, db *gorm.DB, cfg config.AdminConfig, logg *logger.Logger) error {
	if cfg.Email == "" || cfg.Senha == "" {
		return nil
	}
	repo := NewRepository()
	db = db.WithContext(ctx)
	n, err := repo.Contar(db)
	if err != nil || n > 0 {
		return err
	}
	hash, err := utils.HashSenha(cfg.Senha)
	if err != nil {
		return err
	}
	u := Usuario{Nome: cfg.Nome, Email: cfg.Email, Password: hash, IsAdmin: true, Ativo: true}
	if err := repo.Salvar(db, &u); err != nil {
		return err
	}
	logg.Info(logg.WithField(ctx, "email", u.Email), "usuario.admin_inicial_criado")
	return nil
}
