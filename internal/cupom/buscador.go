package cupom

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/SigaRastreamento/api-site/internal/cotacao"
	"github.com/SigaRastreamento/api-site/internal/logger"
	"github.com/SigaRastreamento/api-site/internal/utils/cache"
)

type cacheStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Incr(ctx context.Context, key string) (int64, error)
}

// entradaCache carrega a geração vigente quando o cupom foi lido do banco.
// Uma entrada de geração anterior é descartada na leitura.
type entradaCache struct {
	Geracao string `json:"geracao"`
	Cupom   Cupom  `json:"cupom"`
}

// Buscador resolve cupons ativos por código, passando pelo Redis quando
// configurado. Falhas do cache caem direto no banco.
type Buscador struct {
	DB         *gorm.DB
	Repository Repository
	Cache      cacheStore
	TTL        time.Duration
	Log        *logger.Logger
}

func NewBuscador(db *gorm.DB, store cacheStore, ttl time.Duration, logg *logger.Logger) *Buscador {
	return &Buscador{DB: db, Repository: NewRepository(), Cache: store, TTL: ttl, Log: logg}
}

// Ativo devolve (nil, nil) quando o código não existe ou o cupom está inativo.
func (b *Buscador) Ativo(ctx context.Context, codigo string) (*Cupom, error) {
	codigo = NormalizarCodigo(codigo)
	if codigo == "" {
		return nil, nil
	}

	// a geração é lida antes do banco: um Invalidar concorrente a avança e
	// torna inútil o que for gravado com a geração antiga
	geracao, usarCache := b.geracao(ctx, codigo)
	if usarCache {
		if c, ok := b.doCache(ctx, codigo, geracao); ok {
			return c, nil
		}
	}

	c, err := b.Repository.BuscarPorCodigo(b.DB.WithContext(ctx), codigo)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !c.Ativo {
		return nil, nil
	}

	if usarCache {
		b.guardar(ctx, codigo, geracao, c)
	}
	return c, nil
}

// CupomCotacao é Ativo já recortado para o cálculo de preço.
func (b *Buscador) CupomCotacao(ctx context.Context, codigo string) (*cotacao.Cupom, error) {
	c, err := b.Ativo(ctx, codigo)
	if err != nil {
		return nil, err
	}
	return c.ParaCotacao(), nil
}

// Invalidar avança a geração e remove do cache os códigos informados
// (antigo e novo numa troca de código).
func (b *Buscador) Invalidar(ctx context.Context, codigos ...string) {
	if b.Cache == nil || len(codigos) == 0 {
		return
	}
	keys := make([]string, 0, len(codigos))
	for _, c := range codigos {
		if c = NormalizarCodigo(c); c == "" {
			continue
		}
		if _, err := b.Cache.Incr(ctx, cache.CupomGeracaoKey(c)); err != nil && b.Log != nil {
			b.Log.Error(ctx, "cupom.cache.generation_failed", err)
		}
		keys = append(keys, cache.CupomKey(c))
	}
	if len(keys) == 0 {
		return
	}
	if err := b.Cache.Del(ctx, keys...); err != nil && b.Log != nil {
		b.Log.Error(ctx, "cupom.cache.invalidate_failed", err)
	}
}

// geracao devolve false quando o cache não deve ser usado nesta leitura.
func (b *Buscador) geracao(ctx context.Context, codigo string) (string, bool) {
	if b.Cache == nil {
		return "", false
	}
	g, err := b.Cache.Get(ctx, cache.CupomGeracaoKey(codigo))
	if errors.Is(err, cache.ErrMiss) {
		return "0", true
	}
	if err != nil {
		if b.Log != nil {
			b.Log.Error(ctx, "cupom.cache.get_failed", err)
		}
		return "", false
	}
	return g, true
}

func (b *Buscador) doCache(ctx context.Context, codigo, geracao string) (*Cupom, bool) {
	raw, err := b.Cache.Get(ctx, cache.CupomKey(codigo))
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) && b.Log != nil {
			b.Log.Error(ctx, "cupom.cache.get_failed", err)
		}
		return nil, false
	}
	var e entradaCache
	if err := json.Unmarshal([]byte(raw), &e); err != nil || e.Geracao != geracao {
		return nil, false
	}
	return &e.Cupom, true
}

func (b *Buscador) guardar(ctx context.Context, codigo, geracao string, c *Cupom) {
	raw, err := json.Marshal(entradaCache{Geracao: geracao, Cupom: *c})
	if err != nil {
		return
	}
	if err := b.Cache.Set(ctx, cache.CupomKey(codigo), string(raw), b.TTL); err != nil && b.Log != nil {
		b.Log.Error(ctx, "cupom.cache.set_failed", err)
	}
}
