package comissao

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SigaRastreamento/api-site/internal/cotacao"
	"github.com/SigaRastreamento/api-site/internal/cupom"
	"github.com/SigaRastreamento/api-site/internal/representante"
	"github.com/SigaRastreamento/api-site/internal/solicitacao"
)

// Entrada é uma solicitação que gera comissão.
type Entrada struct {
	SolicitacaoID   uint            `json:"solicitacaoId"`
	Protocolo       string          `json:"protocolo"`
	Cliente         string          `json:"cliente"`
	Data            time.Time       `json:"data"`
	ValorInstalacao decimal.Decimal `json:"valorInstalacao"`
	Comissao        decimal.Decimal `json:"comissao"`
}

type GrupoCupom struct {
	Codigo   string          `json:"codigo"`
	Regra    cotacao.Regra   `json:"regra"`
	Entradas []Entrada       `json:"entradas"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// Relatorio agrupa as comissões de um representante por cupom.
type Relatorio struct {
	RepresentanteID uint            `json:"representanteId"`
	Nome            string          `json:"nome"`
	ChavePix        string          `json:"chavePix"`
	Cupons          []GrupoCupom    `json:"cupons"`
	Total           decimal.Decimal `json:"total"`
}

// Quantidade de solicitações que entraram no relatório.
func (r Relatorio) Quantidade() int {
	n := 0
	for _, g := range r.Cupons {
		n += len(g.Entradas)
	}
	return n
}

// Elegivel: instalada e com a instalação paga. Status "confirmado" não conta,
// mesmo pago.
func Elegivel(s *solicitacao.Solicitacao) bool {
	return s.Status == solicitacao.StatusInstalado && s.InstalacaoPaga
}

func comissiona(c *cupom.Cupom) bool {
	return c.RepresentanteID != nil && c.Comissao.Ativa() && c.Comissao.Valor.IsPositive()
}

// valorInstalacao prefere os centavos gravados; solicitações antigas só têm o
// rótulo, que é relido (ilegível vale zero).
func valorInstalacao(s *solicitacao.Solicitacao) decimal.Decimal {
	if s.ValorInstalacaoCentavos != nil {
		return cotacao.DeCentavos(*s.ValorInstalacaoCentavos)
	}
	return cotacao.ParseMoeda(s.ValorInstalacao)
}

// MontarRelatorio cruza representantes, cupons e solicitações. A ordem de
// entrada é mantida em todos os níveis e representantes sem nenhuma entrada
// ficam de fora.
func MontarRelatorio(representantes []representante.Representante, cupons []cupom.Cupom, solicitacoes []solicitacao.Solicitacao) []Relatorio {
	porCodigo := make(map[string]*cupom.Cupom, len(cupons))
	porRepresentante := map[uint][]*cupom.Cupom{}
	// o primeiro cupom de cada código decide, mesmo que não comissione
	vistos := make(map[string]bool, len(cupons))
	for i := range cupons {
		c := &cupons[i]
		codigo := cupom.NormalizarCodigo(c.Codigo)
		if vistos[codigo] {
			continue
		}
		vistos[codigo] = true
		if !comissiona(c) {
			continue
		}
		porCodigo[codigo] = c
		porRepresentante[*c.RepresentanteID] = append(porRepresentante[*c.RepresentanteID], c)
	}

	entradas := map[string][]Entrada{}
	for i := range solicitacoes {
		s := &solicitacoes[i]
		if !Elegivel(s) {
			continue
		}
		codigo := cupom.NormalizarCodigo(s.CodigoCupom)
		c, ok := porCodigo[codigo]
		if !ok {
			continue
		}
		base := valorInstalacao(s)
		entradas[codigo] = append(entradas[codigo], Entrada{
			SolicitacaoID:   s.ID,
			Protocolo:       s.Protocolo,
			Cliente:         s.NomeExibicao(),
			Data:            s.CreatedAt,
			ValorInstalacao: base,
			Comissao:        c.Comissao.Sobre(base),
		})
	}

	out := []Relatorio{}
	for _, rep := range representantes {
		rel := Relatorio{
			RepresentanteID: rep.ID,
			Nome:            rep.Nome,
			ChavePix:        rep.ChavePix,
			Total:           decimal.Zero,
		}
		for _, c := range porRepresentante[rep.ID] {
			codigo := cupom.NormalizarCodigo(c.Codigo)
			es := entradas[codigo]
			if len(es) == 0 {
				continue
			}
			g := GrupoCupom{Codigo: codigo, Regra: c.Comissao, Entradas: es, Subtotal: decimal.Zero}
			for _, e := range es {
				g.Subtotal = g.Subtotal.Add(e.Comissao)
			}
			rel.Cupons = append(rel.Cupons, g)
			rel.Total = rel.Total.Add(g.Subtotal)
		}
		if len(rel.Cupons) > 0 {
			out = append(out, rel)
		}
	}
	return out
}

// TodosRepresentantes reconhece os filtros que significam "sem filtro".
func TodosRepresentantes(filtro string) bool {
	switch strings.ToLower(strings.TrimSpace(filtro)) {
	case "", "todos", "all":
		return true
	}
	return false
}

// Filtrar restringe o relatório a um representante pelo ID.
func Filtrar(relatorios []Relatorio, filtro string) []Relatorio {
	if TodosRepresentantes(filtro) {
		return relatorios
	}
	id, err := strconv.ParseUint(strings.TrimSpace(filtro), 10, 64)
	out := []Relatorio{}
	if err != nil {
		return out
	}
	for _, r := range relatorios {
		if uint64(r.RepresentanteID) == id {
			out = append(out, r)
		}
	}
	return out
}

// Resumo é uma linha por representante, sem o detalhe das solicitações.
type Resumo struct {
	RepresentanteID uint            `json:"representanteId"`
	Nome            string          `json:"nome"`
	ChavePix        string          `json:"chavePix"`
	Instalacoes     int             `json:"instalacoes"`
	Total           decimal.Decimal `json:"total"`
	TotalFormatado  string          `json:"totalFormatado"`
}

func Resumir(relatorios []Relatorio) []Resumo {
	out := make([]Resumo, 0, len(relatorios))
	for _, r := range relatorios {
		out = append(out, Resumo{
			RepresentanteID: r.RepresentanteID,
			Nome:            r.Nome,
			ChavePix:        r.ChavePix,
			Instalacoes:     r.Quantidade(),
			Total:           r.Total,
			TotalFormatado:  cotacao.RotuloMoeda(r.Total),
		})
	}
	return out
}
