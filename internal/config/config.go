package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	App         AppConfig
	DB          DBConfig
	Redis       RedisConfig
	Auth        AuthConfig
	CORS        CORSConfig
	Captcha     CaptchaConfig
	Notificacao NotificacaoConfig
	Cupom       CupomConfig
	Solicitacao SolicitacaoConfig
	Admin       AdminConfig
}

// Load lê o .env (quando existir) e preenche a configuração a partir do ambiente.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"APP_ENV" default:"dev"`
	Port         string `envconfig:"APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LOG_WARN_STACK" default:"false"`
	AutoMigrate  bool   `envconfig:"AUTO_MIGRATE" default:"true"`

	// IPs ou CIDRs dos proxies cujo X-Forwarded-For é aceito. Vazio: só o socket.
	TrustedProxies []string `envconfig:"TRUSTED_PROXIES"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	Driver   string `envconfig:"DB_DRIVER" default:"postgres"`
	DSN      string `envconfig:"DB_DSN"`
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     uint   `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USERNAME" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD"`
	Name     string `envconfig:"DB_NAME" default:"site"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"1h"`
}

func (d DBConfig) validate() error {
	switch strings.ToLower(d.Driver) {
	case DriverPostgres:
		return nil
	case DriverSQLite:
		if d.DSN == "" {
			return fmt.Errorf("DB_DSN é obrigatório com DB_DRIVER=sqlite")
		}
		return nil
	}
	return fmt.Errorf("DB_DRIVER inválido: %q", d.Driver)
}

// PostgresDSN monta o DSN no formato chave=valor quando DB_DSN não foi informado.
func (d DBConfig) PostgresDSN() string {
	if d.DSN != "" {
		return d.DSN
	}
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d", d.Host, d.User, d.Password, d.Name, d.Port)
	if d.SSLMode != "" {
		dsn += " sslmode=" + d.SSLMode
	}
	return dsn
}

// RedisConfig é opcional: sem URL o cache de cupons e o rate limit ficam desligados.
type RedisConfig struct {
	URL          string        `envconfig:"REDIS_URL"`
	PoolSize     int           `envconfig:"REDIS_POOL_SIZE" default:"10"`
	DialTimeout  time.Duration `envconfig:"REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"REDIS_WRITE_TIMEOUT" default:"3s"`
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != ""
}

type AuthConfig struct {
	PrivateKeyPath string        `envconfig:"AUTH_RSA_PRIVATE_PATH"`
	KID            string        `envconfig:"AUTH_KID"`
	Issuer         string        `envconfig:"AUTH_ISSUER"`
	Audience       string        `envconfig:"AUTH_AUDIENCE"`
	AccessTTL      time.Duration `envconfig:"AUTH_ACCESS_TTL" default:"15m"`
	RefreshTTL     time.Duration `envconfig:"AUTH_REFRESH_TTL" default:"720h"`
	CookieSecure   bool          `envconfig:"COOKIE_SECURE" default:"false"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

type CaptchaConfig struct {
	Secret    string  `envconfig:"RECAPTCHA_SECRET"`
	VerifyURL string  `envconfig:"RECAPTCHA_VERIFY_URL" default:"https://www.google.com/recaptcha/api/siteverify"`
	MinScore  float64 `envconfig:"RECAPTCHA_MIN_SCORE" default:"0.5"`
}

type NotificacaoConfig struct {
	WebhookURL   string        `envconfig:"EMAIL_WEBHOOK_URL"`
	Destinatario string        `envconfig:"EMAIL_DESTINATARIO"`
	Timeout      time.Duration `envconfig:"EMAIL_WEBHOOK_TIMEOUT" default:"10s"`
}

type CupomConfig struct {
	CacheTTL        time.Duration `envconfig:"CUPOM_CACHE_TTL" default:"5m"`
	RateLimitWindow time.Duration `envconfig:"CUPOM_RATE_LIMIT_WINDOW" default:"1m"`
	RateLimitIP     int           `envconfig:"CUPOM_RATE_LIMIT_IP" default:"30"`
}

// SolicitacaoConfig limita envios do formulário público por IP.
type SolicitacaoConfig struct {
	RateLimitWindow time.Duration `envconfig:"SOLICITACAO_RATE_LIMIT_WINDOW" default:"10m"`
	RateLimitIP     int           `envconfig:"SOLICITACAO_RATE_LIMIT_IP" default:"5"`
}

// AdminConfig cria o primeiro usuário administrador quando a tabela está vazia.
type AdminConfig struct {
	Nome  string `envconfig:"ADMIN_NOME" default:"Administrador"`
	Email string `envconfig:"ADMIN_EMAIL"`
	Senha string `envconfig:"ADMIN_SENHA"`
}
