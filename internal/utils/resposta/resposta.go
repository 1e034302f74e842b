package resposta

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/SigaRastreamento/api-site/internal/apperr"
	"github.com/SigaRastreamento/api-site/internal/logger"
)

type erroPayload struct {
	Code     string `json:"code"`
	Mensagem string `json:"mensagem"`
	Detalhes any    `json:"detalhes,omitempty"`
}

type erroEnvelope struct {
	Erro erroPayload `json:"erro"`
}

// JSON escreve o payload com o status informado.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// Erro converte err em resposta JSON. Erros não tipados viram INTERNAL_ERROR.
func Erro(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	if err == nil {
		err = errors.New("erro desconhecido")
	}

	typed := apperr.As(err)
	if typed == nil {
		typed = apperr.Wrap(apperr.CodeInternal, err, "erro inesperado")
	}
	meta := apperr.MetadataFor(typed.Code())

	msg := meta.PublicMessage
	if typed.Code() != apperr.CodeInternal && typed.Code() != apperr.CodeDependency && typed.Message() != "" {
		msg = typed.Message()
	}

	payload := erroEnvelope{Erro: erroPayload{Code: string(typed.Code()), Mensagem: msg}}
	if meta.DetailsAllowed {
		payload.Erro.Detalhes = typed.Details()
	}

	if logg != nil {
		if meta.HTTPStatus >= http.StatusInternalServerError {
			logg.Error(ctx, "request.error", err)
		} else {
			logg.Warn(logg.WithField(ctx, "error", err.Error()), "request.rejected")
		}
	}

	JSON(w, meta.HTTPStatus, payload)
}
