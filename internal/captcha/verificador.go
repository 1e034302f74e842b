package captcha

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/SigaRastreamento/api-site/internal/apperr"
	"github.com/SigaRastreamento/api-site/internal/config"
)

// Verificador confere tokens do reCAPTCHA no servidor. Sem secret configurado
// fica desligado e aceita qualquer token.
type Verificador struct {
	secret   string
	url      string
	minScore float64
	client   *http.Client
}

type respostaSiteverify struct {
	Success    bool     `json:"success"`
	Score      *float64 `json:"score"`
	Action     string   `json:"action"`
	ErrorCodes []string `json:"error-codes"`
}

var (
	global     *Verificador
	globalOnce sync.Once
)

// Inicializar cria o verificador do processo uma única vez; chamadas seguintes
// devolvem a mesma instância, qualquer que seja a config passada.
func Inicializar(cfg config.CaptchaConfig) *Verificador {
	globalOnce.Do(func() {
		global = New(cfg, nil)
	})
	return global
}

func New(cfg config.CaptchaConfig, client *http.Client) *Verificador {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Verificador{
		secret:   strings.TrimSpace(cfg.Secret),
		url:      cfg.VerifyURL,
		minScore: cfg.MinScore,
		client:   client,
	}
}

func (v *Verificador) Habilitado() bool {
	return v != nil && v.secret != ""
}

func (v *Verificador) Verificar(ctx context.Context, token, ip string) error {
	if !v.Habilitado() {
		return nil
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return apperr.New(apperr.CodeValidation, "confirme que você não é um robô")
	}

	form := url.Values{}
	form.Set("secret", v.secret)
	form.Set("response", token)
	if ip != "" {
		form.Set("remoteip", ip)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.url, strings.NewReader(form.Encode()))
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, err, "montando verificação do captcha")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		return apperr.Wrap(apperr.CodeDependency, err, "verificando captcha")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apperr.Wrap(apperr.CodeDependency, fmt.Errorf("siteverify status %d", resp.StatusCode), "verificando captcha")
	}

	var out respostaSiteverify
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return apperr.Wrap(apperr.CodeDependency, err, "lendo resposta do captcha")
	}
	if !out.Success {
		return apperr.New(apperr.CodeValidation, "captcha inválido").
			WithDetails(map[string]any{"codigos": out.ErrorCodes})
	}
	// v2 não devolve score
	if out.Score != nil && *out.Score < v.minScore {
		return apperr.New(apperr.CodeValidation, "captcha inválido")
	}
	return nil
}
