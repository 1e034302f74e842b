package contrato

import "time"

// CriarRequest é usado em POST /solicitacoes/{id}/contratos
type CriarRequest struct {
	Tipo           string     `json:"tipo" validate:"required,oneof=adesao comodato aditivo"`
	URL            string     `json:"url" validate:"required,url,max=500"`
	DataAssinatura *time.Time `json:"dataAssinatura"`
}

// AtualizarRequest é usado em PUT /contratos/{id}
type AtualizarRequest struct {
	Tipo           *string    `json:"tipo,omitempty" validate:"omitempty,oneof=adesao comodato aditivo"`
	URL            *string    `json:"url,omitempty" validate:"omitempty,url,max=500"`
	DataAssinatura *time.Time `json:"dataAssinatura,omitempty"`
}

func statusPorAssinatura(data *time.Time) string {
	if data != nil && !data.IsZero() {
		return StatusAssinado
	}
	return StatusPendente
}
