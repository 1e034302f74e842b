package notificacao

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/SigaRastreamento/api-site/internal/config"
	"github.com/SigaRastreamento/api-site/internal/logger"
)

// Email é o payload aceito pelo webhook de entrega de e-mails.
type Email struct {
	Para          string `json:"para"`
	Assunto       string `json:"assunto"`
	Corpo         string `json:"corpo"`
	ResponderPara string `json:"responderPara,omitempty"`
}

// Webhook posta e-mails no serviço de entrega configurado. Sem URL não faz nada.
type Webhook struct {
	url          string
	destinatario string
	client       *http.Client
	log          *logger.Logger
}

func NewWebhook(cfg config.NotificacaoConfig, logg *logger.Logger) *Webhook {
	return &Webhook{
		url:          strings.TrimSpace(cfg.WebhookURL),
		destinatario: cfg.Destinatario,
		client:       &http.Client{Timeout: cfg.Timeout},
		log:          logg,
	}
}

func (w *Webhook) Habilitado() bool {
	return w != nil && w.url != ""
}

// Enviar nunca devolve erro: falhas são apenas registradas, a solicitação do
// cliente já foi gravada quando a notificação sai.
func (w *Webhook) Enviar(ctx context.Context, e Email) {
	if !w.Habilitado() {
		return
	}
	if e.Para == "" {
		e.Para = w.destinatario
	}
	if err := w.post(ctx, e); err != nil && w.log != nil {
		w.log.Error(w.log.WithField(ctx, "assunto", e.Assunto), "notificacao.webhook_failed", err)
	}
}

func (w *Webhook) post(ctx context.Context, e Email) error {
	body, err := json.Marshal(e)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("enviando webhook: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("webhook respondeu %d", resp.StatusCode)
	}
	return nil
}
