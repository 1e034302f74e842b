package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SigaRastreamento/api-site/internal/config"
	"github.com/redis/go-redis/v9"
)

const (
	keyNamespace    = "site"
	cupomPrefix     = "cupom"
	geracaoPrefix   = "cupomgen"
	rateLimitPrefix = "rl"
)

// ErrMiss indica chave ausente.
var ErrMiss = errors.New("cache: chave não encontrada")

type cmdable interface {
	Ping(context.Context) *redis.StatusCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	Get(context.Context, string) *redis.StringCmd
	Incr(context.Context, string) *redis.IntCmd
	Expire(context.Context, string, time.Duration) *redis.BoolCmd
	Del(context.Context, ...string) *redis.IntCmd
}

// Client embrulha o go-redis com as poucas operações usadas pelo site.
type Client struct {
	store cmdable
	raw   *redis.Client
}

// New conecta e valida com PING.
func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	opts.DialTimeout = cfg.DialTimeout
	opts.ReadTimeout = cfg.ReadTimeout
	opts.WriteTimeout = cfg.WriteTimeout

	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		_ = raw.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Client{store: raw, raw: raw}, nil
}

func (c *Client) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if c.store == nil {
		return errors.New("redis client not initialized")
	}
	return c.store.Set(ctx, key, value, ttl).Err()
}

// Get devolve ErrMiss quando a chave não existe.
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	if c.store == nil {
		return "", errors.New("redis client not initialized")
	}
	val, err := c.store.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrMiss
	}
	return val, err
}

func (c *Client) Del(ctx context.Context, keys ...string) error {
	if c.store == nil {
		return errors.New("redis client not initialized")
	}
	return c.store.Del(ctx, keys...).Err()
}

// Incr incrementa sem prazo de expiração.
func (c *Client) Incr(ctx context.Context, key string) (int64, error) {
	if c.store == nil {
		return 0, errors.New("redis client not initialized")
	}
	return c.store.Incr(ctx, key).Result()
}

// IncrWithTTL incrementa e aplica o TTL no primeiro incremento da janela.
func (c *Client) IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	if c.store == nil {
		return 0, errors.New("redis client not initialized")
	}
	count, err := c.store.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if ttl > 0 && count == 1 {
		if _, err := c.store.Expire(ctx, key, ttl).Result(); err != nil {
			return count, err
		}
	}
	return count, nil
}

func (c *Client) Ping(ctx context.Context) error {
	if c.store == nil {
		return errors.New("redis client not initialized")
	}
	return c.store.Ping(ctx).Err()
}

func (c *Client) Close() error {
	if c.raw == nil {
		return nil
	}
	return c.raw.Close()
}

// CupomKey devolve a chave do cupom já normalizado.
func CupomKey(codigo string) string {
	return buildKey(cupomPrefix, strings.ToUpper(codigo))
}

// CupomGeracaoKey guarda o contador de invalidações do código.
func CupomGeracaoKey(codigo string) string {
	return buildKey(geracaoPrefix, strings.ToUpper(codigo))
}

func RateLimitKey(politica, ip string) string {
	return buildKey(rateLimitPrefix, politica, ip)
}

func buildKey(parts ...string) string {
	clean := []string{keyNamespace}
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		clean = append(clean, part)
	}
	return strings.Join(clean, ":")
}
