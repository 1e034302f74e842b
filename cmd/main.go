package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/cors"

	"github.com/SigaRastreamento/api-site/internal/auth"
	"github.com/SigaRastreamento/api-site/internal/captcha"
	"github.com/SigaRastreamento/api-site/internal/comentario"
	"github.com/SigaRastreamento/api-site/internal/config"
	"github.com/SigaRastreamento/api-site/internal/contrato"
	"github.com/SigaRastreamento/api-site/internal/cupom"
	"github.com/SigaRastreamento/api-site/internal/logger"
	"github.com/SigaRastreamento/api-site/internal/logo"
	"github.com/SigaRastreamento/api-site/internal/metricas"
	"github.com/SigaRastreamento/api-site/internal/middleware"
	"github.com/SigaRastreamento/api-site/internal/notificacao"
	"github.com/SigaRastreamento/api-site/internal/representante"
	"github.com/SigaRastreamento/api-site/internal/solicitacao"
	"github.com/SigaRastreamento/api-site/internal/usuario"
	"github.com/SigaRastreamento/api-site/internal/utils"
	"github.com/SigaRastreamento/api-site/internal/utils/cache"
	"github.com/SigaRastreamento/api-site/internal/utils/db"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Options{ServiceName: "api-site"}).Error(context.Background(), "config.load_failed", err)
		os.Exit(1)
	}

	logg := logger.New(logger.Options{
		ServiceName: "api-site",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Console:     cfg.App.IsDev(),
	})
	ctx := context.Background()

	database, err := db.ConnectDataBase(cfg.DB)
	if err != nil {
		fatal(ctx, logg, "db.connect_failed", err)
	}

	if cfg.App.AutoMigrate {
		if err := database.AutoMigrate(
			&usuario.Usuario{},
			&auth.RefreshToken{},
			&representante.Representante{},
			&cupom.Cupom{},
			&solicitacao.Solicitacao{},
			&comentario.Comentario{},
			&contrato.Contrato{},
			&logo.Logo{},
		); err != nil {
			fatal(ctx, logg, "db.automigrate_failed", err)
		}
	}
	if err := usuario.GarantirAdmin(ctx, database, cfg.Admin, logg); err != nil {
		fatal(ctx, logg, "usuario.admin_seed_failed", err)
	}

	chaves, err := auth.CarregarChaves(cfg.Auth)
	if err != nil {
		fatal(ctx, logg, "auth.keys_failed", err)
	}
	authSvc := auth.NewServico(chaves, cfg.Auth, logg)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metricas.New(reg)

	proxies, err := utils.ParsePrefixos(cfg.App.TrustedProxies)
	if err != nil {
		fatal(ctx, logg, "config.trusted_proxies_invalid", err)
	}

	buscador := cupom.NewBuscador(database, nil, cfg.Cupom.CacheTTL, logg)
	politicaCupom := middleware.PoliticaRateLimit{Nome: "cupom", Janela: cfg.Cupom.RateLimitWindow, Limite: cfg.Cupom.RateLimitIP}
	politicaSolicitacao := middleware.PoliticaRateLimit{Nome: "solicitacao", Janela: cfg.Solicitacao.RateLimitWindow, Limite: cfg.Solicitacao.RateLimitIP}
	limites := limitesPublicos{
		cupom:       middleware.RateLimitIP(politicaCupom, nil, logg),
		solicitacao: middleware.RateLimitIP(politicaSolicitacao, nil, logg),
	}
	if cfg.Redis.Enabled() {
		rc, err := cache.New(ctx, cfg.Redis)
		if err != nil {
			fatal(ctx, logg, "redis.connect_failed", err)
		}
		defer rc.Close()
		buscador.Cache = rc
		limites.cupom = middleware.RateLimitIP(politicaCupom, rc, logg)
		limites.solicitacao = middleware.RateLimitIP(politicaSolicitacao, rc, logg)
	} else {
		logg.Warn(ctx, "redis.disabled")
	}

	verificador := captcha.Inicializar(cfg.Captcha)
	if !verificador.Habilitado() {
		logg.Warn(ctx, "captcha.disabled")
	}
	webhook := notificacao.NewWebhook(cfg.Notificacao, logg)

	deps := dependencias{
		db:          database,
		log:         logg,
		auth:        authSvc,
		metricas:    m,
		buscador:    buscador,
		verificador: verificador,
		webhook:     webhook,
		limites:     limites,
		proxies:     proxies,
	}
	r := novoRouter(deps)

	handler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", middleware.HeaderRequestID},
		ExposedHeaders:   []string{middleware.HeaderRequestID},
		AllowCredentials: true,
	}).Handler(r)

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logg.Info(logg.WithField(ctx, "addr", srv.Addr), "server.listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "server.listen_failed", err)
			stop()
		}
	}()

	<-sigCtx.Done()
	logg.Info(ctx, "server.shutting_down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.Error(ctx, "server.shutdown_failed", err)
	}
}

func fatal(ctx context.Context, logg *logger.Logger, msg string, err error) {
	logg.Error(ctx, msg, err)
	os.Exit(1)
}
