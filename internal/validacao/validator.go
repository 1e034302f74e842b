package validacao

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/SigaRastreamento/api-site/internal/apperr"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	registrar(v, "cpf", CPFValido)
	registrar(v, "cnpj", CNPJValido)
	registrar(v, "telefone", TelefoneValido)
	registrar(v, "placa", PlacaValida)
	registrar(v, "cep", CEPValido)
	registrar(v, "uf", UFValida)
	return v
}

func registrar(v *validator.Validate, tag string, fn func(string) bool) {
	_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return fn(fl.Field().String())
	})
}

// DecodeJSONBody decodifica o corpo em dest e roda as validações da struct.
func DecodeJSONBody(r *http.Request, dest any) error {
	defer func() {
		_, _ = io.Copy(io.Discard, r.Body)
	}()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		return apperr.Wrap(apperr.CodeValidation, err, "JSON mal formado").WithDetails(map[string]any{"erro": err.Error()})
	}
	return Struct(dest)
}

// Struct valida uma struct já preenchida.
func Struct(dest any) error {
	if err := validate.Struct(dest); err != nil {
		return formatarErros(err)
	}
	return nil
}

func formatarErros(err error) *apperr.Error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		detalhes := map[string]string{}
		for _, fieldErr := range errs {
			detalhes[fieldErr.Field()] = mensagem(fieldErr)
		}
		return apperr.New(apperr.CodeValidation, "dados inválidos").WithDetails(detalhes)
	}
	return apperr.Wrap(apperr.CodeValidation, err, "dados inválidos")
}

func mensagem(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "obrigatório"
	case "min":
		return fmt.Sprintf("deve ter no mínimo %s", fe.Param())
	case "max":
		return fmt.Sprintf("deve ter no máximo %s", fe.Param())
	case "email":
		return "e-mail inválido"
	case "oneof":
		return fmt.Sprintf("deve ser um de: %s", fe.Param())
	case "cpf":
		return "CPF inválido"
	case "cnpj":
		return "CNPJ inválido"
	case "telefone":
		return "telefone inválido"
	case "placa":
		return "placa inválida"
	case "cep":
		return "CEP inválido"
	case "uf":
		return "UF inválida"
	}
	return "inválido"
}
