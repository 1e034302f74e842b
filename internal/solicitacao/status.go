package solicitacao

import (
	"fmt"

	"github.com/SigaRastreamento/api-site/internal/apperr"
)

// Status é o ciclo de vida da solicitação.
type Status string

const (
	StatusNovo       Status = "novo"
	StatusRecebido   Status = "recebido"
	StatusConfirmado Status = "confirmado"
	StatusInstalado  Status = "instalado"
	StatusCancelado  Status = "cancelado"
)

var transicoes = map[Status][]Status{
	StatusNovo:       {StatusRecebido, StatusConfirmado, StatusCancelado},
	StatusRecebido:   {StatusConfirmado, StatusCancelado},
	StatusConfirmado: {StatusInstalado, StatusCancelado},
	StatusInstalado:  {StatusCancelado},
}

func (s Status) Valido() bool {
	switch s {
	case StatusNovo, StatusRecebido, StatusConfirmado, StatusInstalado, StatusCancelado:
		return true
	}
	return false
}

// Terminal: cancelada, ou instalada com a instalação paga.
func Terminal(s Status, instalacaoPaga bool) bool {
	return s == StatusCancelado || (s == StatusInstalado && instalacaoPaga)
}

func erroTransicao(msg string, de, para any) *apperr.Error {
	return apperr.New(apperr.CodeStateConflict, msg).
		WithDetails(map[string]any{"de": de, "para": para})
}

// ValidarTransicao devolve nil também para o mesmo status (no-op).
func ValidarTransicao(atual Status, instalacaoPaga bool, novo Status) error {
	if !novo.Valido() {
		return apperr.New(apperr.CodeValidation, "status inválido").
			WithDetails(map[string]string{"status": fmt.Sprintf("deve ser um de: %s %s %s %s %s",
				StatusNovo, StatusRecebido, StatusConfirmado, StatusInstalado, StatusCancelado)})
	}
	if atual == novo {
		return nil
	}
	if Terminal(atual, instalacaoPaga) {
		return erroTransicao("solicitação encerrada não pode mudar de status", atual, novo)
	}
	for _, permitido := range transicoes[atual] {
		if permitido == novo {
			return nil
		}
	}
	return erroTransicao("transição de status não permitida", atual, novo)
}

// ValidarPagamento: cancelada não muda, e uma instalação paga não volta a
// ficar pendente.
func ValidarPagamento(atual Status, pagoAtual, novoPago bool) error {
	if pagoAtual == novoPago {
		return nil
	}
	if atual == StatusCancelado {
		return erroTransicao("solicitação cancelada não aceita alteração de pagamento", pagoAtual, novoPago)
	}
	if atual == StatusInstalado && pagoAtual && !novoPago {
		return erroTransicao("pagamento de instalação concluída não pode ser desfeito", pagoAtual, novoPago)
	}
	return nil
}
