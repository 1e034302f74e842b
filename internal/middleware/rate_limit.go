package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/SigaRastreamento/api-site/internal/apperr"
	"github.com/SigaRastreamento/api-site/internal/logger"
	"github.com/SigaRastreamento/api-site/internal/utils"
	"github.com/SigaRastreamento/api-site/internal/utils/cache"
	"github.com/SigaRastreamento/api-site/internal/utils/resposta"
)

type rateLimiterStore interface {
	IncrWithTTL(context.Context, string, time.Duration) (int64, error)
}

// PoliticaRateLimit limita requisições por IP numa janela fixa.
type PoliticaRateLimit struct {
	Nome   string
	Janela time.Duration
	Limite int
}

func (p PoliticaRateLimit) ativa() bool {
	return p.Janela > 0 && p.Limite > 0
}

// RateLimitIP aplica a política. Sem store (Redis desligado) vira no-op.
func RateLimitIP(p PoliticaRateLimit, store rateLimiterStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !p.ativa() || store == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ip := utils.ClientIP(r)
			count, err := store.IncrWithTTL(ctx, cache.RateLimitKey(p.Nome, ip), p.Janela)
			if err != nil {
				// Redis fora do ar não derruba o endpoint público.
				if logg != nil {
					logg.Error(ctx, "rate_limit.store_error", err)
				}
				next.ServeHTTP(w, r)
				return
			}
			if count > int64(p.Limite) {
				if logg != nil {
					logg.Warn(logg.WithFields(ctx, map[string]any{
						"policy":   p.Nome,
						"ip":       ip,
						"attempts": count,
						"limit":    p.Limite,
					}), "rate_limit.blocked")
				}
				resposta.Erro(ctx, nil, w, apperr.New(apperr.CodeRateLimit, "muitas requisições, tente novamente em instantes"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
