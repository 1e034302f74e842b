package cotacao

import "strings"

// Categoria é o tipo de veículo escolhido no formulário de contratação.
type Categoria string

const (
	CategoriaMoto          Categoria = "moto"
	CategoriaCarro         Categoria = "carro"
	CategoriaCaminhonete   Categoria = "caminhonete"
	CategoriaVan           Categoria = "van"
	CategoriaCaminhao      Categoria = "caminhao"
	CategoriaTratorMaquina Categoria = "trator_maquina"
	CategoriaEmbarcacao    Categoria = "embarcacao"
	CategoriaAeronave      Categoria = "aeronave"
	CategoriaOutro         Categoria = "outro"
)

var categorias = []Categoria{
	CategoriaMoto,
	CategoriaCarro,
	CategoriaCaminhonete,
	CategoriaVan,
	CategoriaCaminhao,
	CategoriaTratorMaquina,
	CategoriaEmbarcacao,
	CategoriaAeronave,
	CategoriaOutro,
}

// pesadas sempre caem no plano Pesados, qualquer que seja o bloqueio.
var pesadas = map[Categoria]bool{
	CategoriaCaminhao:      true,
	CategoriaTratorMaquina: true,
	CategoriaEmbarcacao:    true,
	CategoriaAeronave:      true,
}

var aliasesCategoria = map[string]Categoria{
	"caminhão":       CategoriaCaminhao,
	"trator":         CategoriaTratorMaquina,
	"maquina":        CategoriaTratorMaquina,
	"máquina":        CategoriaTratorMaquina,
	"trator/maquina": CategoriaTratorMaquina,
	"trator/máquina": CategoriaTratorMaquina,
	"embarcação":     CategoriaEmbarcacao,
	"barco":          CategoriaEmbarcacao,
	"avião":          CategoriaAeronave,
	"aviao":          CategoriaAeronave,
}

// Categorias devolve as categorias aceitas, na ordem do formulário.
func Categorias() []Categoria {
	out := make([]Categoria, len(categorias))
	copy(out, categorias)
	return out
}

// NormalizarCategoria aceita o valor cru do formulário (com acentos ou apelidos).
// Valores desconhecidos voltam como Categoria vazia.
func NormalizarCategoria(raw string) Categoria {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" {
		return ""
	}
	if c, ok := aliasesCategoria[v]; ok {
		return c
	}
	c := Categoria(v)
	if c.Valida() {
		return c
	}
	return ""
}

func (c Categoria) Valida() bool {
	for _, known := range categorias {
		if c == known {
			return true
		}
	}
	return false
}

func (c Categoria) Pesada() bool {
	return pesadas[c]
}

// Bloqueio é a preferência por bloqueio remoto do veículo.
type Bloqueio string

const (
	BloqueioSim Bloqueio = "sim"
	BloqueioNao Bloqueio = "nao"
)

// ResolverBloqueio aplica a regra de padrão do bloqueio remoto: preferência
// vazia (ou não reconhecida) vira "sim", levando ao plano Segurança.
func ResolverBloqueio(raw string) Bloqueio {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "nao", "não", "no", "n", "false":
		return BloqueioNao
	}
	return BloqueioSim
}
