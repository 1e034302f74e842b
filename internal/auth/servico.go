package auth

import (
	"time"

	"github.com/SigaRastreamento/api-site/internal/config"
	"github.com/SigaRastreamento/api-site/internal/logger"
)

const RefreshCookie = "rt"

// Servico concentra emissão e validação de tokens do back office.
type Servico struct {
	chaves       *Chaves
	accessTTL    time.Duration
	refreshTTL   time.Duration
	cookieSecure bool
	Log          *logger.Logger
}

func NewServico(ch *Chaves, cfg config.AuthConfig, logg *logger.Logger) *Servico {
	s := &Servico{
		chaves:       ch,
		accessTTL:    cfg.AccessTTL,
		refreshTTL:   cfg.RefreshTTL,
		cookieSecure: cfg.CookieSecure,
		Log:          logg,
	}
	if s.accessTTL <= 0 {
		s.accessTTL = 15 * time.Minute
	}
	if s.refreshTTL <= 0 {
		s.refreshTTL = 30 * 24 * time.Hour
	}
	return s
}

func (s *Servico) AccessTTL() time.Duration {
	return s.accessTTL
}
