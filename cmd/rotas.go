package main

import (
	"net/http"
	"net/netip"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/SigaRastreamento/api-site/internal/auth"
	"github.com/SigaRastreamento/api-site/internal/captcha"
	"github.com/SigaRastreamento/api-site/internal/comentario"
	"github.com/SigaRastreamento/api-site/internal/comissao"
	"github.com/SigaRastreamento/api-site/internal/contrato"
	"github.com/SigaRastreamento/api-site/internal/cotacao"
	"github.com/SigaRastreamento/api-site/internal/cupom"
	"github.com/SigaRastreamento/api-site/internal/logger"
	"github.com/SigaRastreamento/api-site/internal/logo"
	"github.com/SigaRastreamento/api-site/internal/metricas"
	"github.com/SigaRastreamento/api-site/internal/middleware"
	"github.com/SigaRastreamento/api-site/internal/notificacao"
	"github.com/SigaRastreamento/api-site/internal/representante"
	"github.com/SigaRastreamento/api-site/internal/solicitacao"
	"github.com/SigaRastreamento/api-site/internal/usuario"
	"github.com/SigaRastreamento/api-site/internal/utils/resposta"
)

type limitesPublicos struct {
	cupom       func(http.Handler) http.Handler
	solicitacao func(http.Handler) http.Handler
}

type dependencias struct {
	db          *gorm.DB
	log         *logger.Logger
	auth        *auth.Servico
	metricas    *metricas.Metricas
	buscador    *cupom.Buscador
	verificador *captcha.Verificador
	webhook     *notificacao.Webhook
	limites     limitesPublicos
	proxies     []netip.Prefix
}

func novoRouter(d dependencias) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestID(d.log), middleware.RealIP(d.proxies), middleware.Logging(d.log), middleware.Recoverer(d.log))

	cotacaoHandler := cotacao.NewHandler(d.buscador, d.metricas, d.log)
	cupomHandler := cupom.NewHandler(d.db, d.buscador, d.metricas, d.log)
	solicitacaoHandler := solicitacao.NewHandler(d.db, d.verificador, d.buscador, d.webhook, d.metricas, d.log)
	representanteHandler := representante.NewHandler(d.db, d.log)
	comentarioHandler := comentario.NewHandler(d.db, d.log)
	contratoHandler := contrato.NewHandler(d.db, d.log)
	logoHandler := logo.NewHandler(d.db, d.log)
	usuarioHandler := usuario.NewHandler(d.db, d.auth, d.log)
	comissaoHandler := comissao.NewHandler(comissao.NewService(d.db, d.metricas, d.log), d.log)

	// Públicas (site)
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		resposta.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	r.Handle("/metrics", d.metricas.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/cotacao", cotacaoHandler.Calcular).Methods(http.MethodGet)
	r.Handle("/cupons/validar", d.limites.cupom(http.HandlerFunc(cupomHandler.Validar))).Methods(http.MethodPost)
	r.Handle("/solicitacoes", d.limites.solicitacao(http.HandlerFunc(solicitacaoHandler.Criar))).Methods(http.MethodPost)
	r.HandleFunc("/site/logos", logoHandler.ListarPublico).Methods(http.MethodGet)

	// Autenticação
	r.HandleFunc("/auth/login", usuarioHandler.Login).Methods(http.MethodPost)
	r.HandleFunc("/auth/refresh", d.auth.RefreshHTTPHandler(d.db)).Methods(http.MethodPost)
	r.HandleFunc("/auth/logout", d.auth.LogoutHTTPHandler(d.db)).Methods(http.MethodPost)
	r.HandleFunc("/.well-known/jwks.json", d.auth.JWKSHandler).Methods(http.MethodGet)

	// Back office (token obrigatório)
	api := r.NewRoute().Subrouter()
	api.Use(d.auth.MiddlewareAutenticacao)

	api.HandleFunc("/auth/me", usuarioHandler.Me).Methods(http.MethodGet)
	api.HandleFunc("/auth/senha", usuarioHandler.TrocarSenha).Methods(http.MethodPut)

	api.HandleFunc("/solicitacoes", solicitacaoHandler.Listar).Methods(http.MethodGet)
	api.HandleFunc("/solicitacoes/{id}", solicitacaoHandler.BuscarPorID).Methods(http.MethodGet)
	api.HandleFunc("/solicitacoes/{id}/status", solicitacaoHandler.AtualizarStatus).Methods(http.MethodPatch)
	api.HandleFunc("/solicitacoes/{id}/pagamento", solicitacaoHandler.AtualizarPagamento).Methods(http.MethodPatch)

	api.HandleFunc("/solicitacoes/{id}/comentarios", comentarioHandler.CriarComentario).Methods(http.MethodPost)
	api.HandleFunc("/solicitacoes/{id}/comentarios", comentarioHandler.ListarPorSolicitacao).Methods(http.MethodGet)
	api.HandleFunc("/comentarios/{id}", comentarioHandler.Atualizar).Methods(http.MethodPut)
	api.HandleFunc("/comentarios/{id}", comentarioHandler.RemoverComentario).Methods(http.MethodDelete)

	api.HandleFunc("/solicitacoes/{id}/contratos", contratoHandler.CriarParaSolicitacao).Methods(http.MethodPost)
	api.HandleFunc("/solicitacoes/{id}/contratos", contratoHandler.ListarPorSolicitacao).Methods(http.MethodGet)
	api.HandleFunc("/contratos", contratoHandler.ListarTodos).Methods(http.MethodGet)
	api.HandleFunc("/contratos/{id}", contratoHandler.Atualizar).Methods(http.MethodPut)
	api.HandleFunc("/contratos/{id}", contratoHandler.Deletar).Methods(http.MethodDelete)

	api.HandleFunc("/representantes", representanteHandler.Criar).Methods(http.MethodPost)
	api.HandleFunc("/representantes", representanteHandler.Listar).Methods(http.MethodGet)
	api.HandleFunc("/representantes/{id}", representanteHandler.BuscarPorID).Methods(http.MethodGet)
	api.HandleFunc("/representantes/{id}", representanteHandler.Atualizar).Methods(http.MethodPut)
	api.HandleFunc("/representantes/{id}", representanteHandler.Deletar).Methods(http.MethodDelete)

	api.HandleFunc("/cupons", cupomHandler.Criar).Methods(http.MethodPost)
	api.HandleFunc("/cupons", cupomHandler.Listar).Methods(http.MethodGet)
	api.HandleFunc("/cupons/{id}", cupomHandler.BuscarPorID).Methods(http.MethodGet)
	api.HandleFunc("/cupons/{id}", cupomHandler.Atualizar).Methods(http.MethodPut)
	api.HandleFunc("/cupons/{id}", cupomHandler.Deletar).Methods(http.MethodDelete)

	api.HandleFunc("/comissoes", comissaoHandler.Relatorio).Methods(http.MethodGet)
	api.HandleFunc("/comissoes/resumo", comissaoHandler.Resumo).Methods(http.MethodGet)

	api.HandleFunc("/logos", logoHandler.Criar).Methods(http.MethodPost)
	api.HandleFunc("/logos", logoHandler.Listar).Methods(http.MethodGet)
	api.HandleFunc("/logos/ordem", logoHandler.Reordenar).Methods(http.MethodPut)
	api.HandleFunc("/logos/{id}", logoHandler.BuscarPorID).Methods(http.MethodGet)
	api.HandleFunc("/logos/{id}", logoHandler.Atualizar).Methods(http.MethodPut)
	api.HandleFunc("/logos/{id}", logoHandler.Deletar).Methods(http.MethodDelete)

	// Usuários (somente administradores)
	usuarios := api.PathPrefix("/usuarios").Subrouter()
	usuarios.Use(auth.RequireAdmin)
	usuarios.HandleFunc("", usuarioHandler.Criar).Methods(http.MethodPost)
	usuarios.HandleFunc("", usuarioHandler.Listar).Methods(http.MethodGet)
	usuarios.HandleFunc("/{id}", usuarioHandler.BuscarPorID).Methods(http.MethodGet)
	usuarios.HandleFunc("/{id}", usuarioHandler.Atualizar).Methods(http.MethodPut)
	usuarios.HandleFunc("/{id}", usuarioHandler.Deletar).Methods(http.MethodDelete)

	return r
}
