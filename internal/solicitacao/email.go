package solicitacao

import (
	"fmt"
	"strings"

	"github.com/SigaRastreamento/api-site/internal/notificacao"
)

// emailEquipe é o aviso interno de nova solicitação.
func emailEquipe(s *Solicitacao) notificacao.Email {
	var b strings.Builder
	fmt.Fprintf(&b, "Nova solicitação de contratação recebida pelo site.\n\n")
	fmt.Fprintf(&b, "Protocolo: %s\n", s.Protocolo)
	fmt.Fprintf(&b, "Cliente: %s\n", s.NomeExibicao())
	if s.TipoPessoa == PessoaJuridica {
		fmt.Fprintf(&b, "CNPJ: %s\n", s.CNPJ)
	} else {
		fmt.Fprintf(&b, "CPF: %s\n", s.CPF)
	}
	fmt.Fprintf(&b, "E-mail: %s\nTelefone: %s\n\n", s.Email, s.Telefone)
	fmt.Fprintf(&b, "Veículo: %s %s", s.Marca, s.Modelo)
	if s.Ano != "" {
		fmt.Fprintf(&b, " (%s)", s.Ano)
	}
	if s.Placa != "" {
		fmt.Fprintf(&b, " placa %s", s.Placa)
	}
	fmt.Fprintf(&b, "\nCategoria: %s\nBloqueio: %s\n\n", s.Categoria, s.Bloqueio)
	fmt.Fprintf(&b, "Plano: %s\nMensalidade: %s\nInstalação: %s\n", s.Plano, s.ValorMensal, s.ValorInstalacao)
	if s.DescricaoDesconto != "" {
		fmt.Fprintf(&b, "Cupom: %s\n", s.DescricaoDesconto)
	}
	fmt.Fprintf(&b, "\nEndereço: %s, %s", s.Logradouro, s.Numero)
	if s.Complemento != "" {
		fmt.Fprintf(&b, " - %s", s.Complemento)
	}
	fmt.Fprintf(&b, "\n%s - %s/%s - CEP %s\n", s.Bairro, s.Cidade, s.UF, s.CEP)
	if s.Observacoes != "" {
		fmt.Fprintf(&b, "\nObservações:\n%s\n", s.Observacoes)
	}

	return notificacao.Email{
		Assunto:       fmt.Sprintf("Nova solicitação %s - %s (%s)", s.Plano, s.NomeExibicao(), s.Protocolo[:8]),
		Corpo:         b.String(),
		ResponderPara: s.Email,
	}
}

func emailCliente(s *Solicitacao) notificacao.Email {
	corpo := fmt.Sprintf(
		"Olá, %s!\n\nRecebemos sua solicitação de contratação do plano %s.\n"+
			"Protocolo: %s\nMensalidade: %s\nInstalação: %s\n\n"+
			"Nossa equipe entrará em contato para agendar a instalação.\n\nSiga Rastreamento",
		s.NomeExibicao(), s.Plano, s.Protocolo, s.ValorMensal, s.ValorInstalacao,
	)
	return notificacao.Email{
		Para:    s.Email,
		Assunto: "Recebemos sua solicitação - Siga Rastreamento",
		Corpo:   corpo,
	}
}
