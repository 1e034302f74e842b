package validacao

import (
	"regexp"
	"strings"
)

// SomenteDigitos remove máscara de documentos e telefones.
func SomenteDigitos(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func todosIguais(d string) bool {
	return strings.Count(d, d[:1]) == len(d)
}

func digitoVerificador(digitos string, pesos []int) byte {
	soma := 0
	for i, p := range pesos {
		soma += int(digitos[i]-'0') * p
	}
	resto := soma % 11
	if resto < 2 {
		return '0'
	}
	return byte('0' + 11 - resto)
}

// CPFValido confere os dois dígitos verificadores. Aceita com ou sem máscara.
func CPFValido(cpf string) bool {
	d := SomenteDigitos(cpf)
	if len(d) != 11 || todosIguais(d) {
		return false
	}
	p1 := []int{10, 9, 8, 7, 6, 5, 4, 3, 2}
	p2 := []int{11, 10, 9, 8, 7, 6, 5, 4, 3, 2}
	return d[9] == digitoVerificador(d, p1) && d[10] == digitoVerificador(d, p2)
}

// CNPJValido confere os dois dígitos verificadores. Aceita com ou sem máscara.
func CNPJValido(cnpj string) bool {
	d := SomenteDigitos(cnpj)
	if len(d) != 14 || todosIguais(d) {
		return false
	}
	p1 := []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	p2 := []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	return d[12] == digitoVerificador(d, p1) && d[13] == digitoVerificador(d, p2)
}

// TelefoneValido aceita fixo (10 dígitos) ou celular (11, começando com 9),
// com DDD entre 11 e 99. O prefixo 55 do país é ignorado.
func TelefoneValido(tel string) bool {
	d := SomenteDigitos(tel)
	if len(d) == 13 && strings.HasPrefix(d, "55") {
		d = d[2:]
	}
	if len(d) == 12 && strings.HasPrefix(d, "55") {
		d = d[2:]
	}
	if len(d) != 10 && len(d) != 11 {
		return false
	}
	if d[0] == '0' || d[1] == '0' {
		return false
	}
	if len(d) == 11 && d[2] != '9' {
		return false
	}
	return true
}

var (
	placaAntiga   = regexp.MustCompile(`^[A-Z]{3}[0-9]{4}$`)
	placaMercosul = regexp.MustCompile(`^[A-Z]{3}[0-9][A-Z][0-9]{2}$`)
)

// NormalizarPlaca deixa a placa em maiúsculas, sem hífen nem espaços.
func NormalizarPlaca(placa string) string {
	p := strings.ToUpper(strings.TrimSpace(placa))
	p = strings.ReplaceAll(p, "-", "")
	return strings.ReplaceAll(p, " ", "")
}

// PlacaValida aceita o padrão antigo (ABC1234) e o Mercosul (ABC1D23).
func PlacaValida(placa string) bool {
	p := NormalizarPlaca(placa)
	return placaAntiga.MatchString(p) || placaMercosul.MatchString(p)
}

// CEPValido aceita 8 dígitos, com ou sem hífen.
func CEPValido(cep string) bool {
	d := SomenteDigitos(cep)
	return len(d) == 8 && strings.Count(cep, "-") <= 1
}

var ufs = map[string]bool{
	"AC": true, "AL": true, "AP": true, "AM": true, "BA": true, "CE": true, "DF": true,
	"ES": true, "GO": true, "MA": true, "MT": true, "MS": true, "MG": true, "PA": true,
	"PB": true, "PR": true, "PE": true, "PI": true, "RJ": true, "RN": true, "RS": true,
	"RO": true, "RR": true, "SC": true, "SP": true, "SE": true, "TO": true,
}

func UFValida(uf string) bool {
	return ufs[strings.ToUpper(strings.TrimSpace(uf))]
}
