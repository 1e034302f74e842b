package apperr

import (
	stdErrors "errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"
)

type Code string

const (
	CodeValidation    Code = "VALIDATION_ERROR"
	CodeUnauthorized  Code = "UNAUTHORIZED"
	CodeForbidden     Code = "FORBIDDEN"
	CodeNotFound      Code = "NOT_FOUND"
	CodeConflict      Code = "CONFLICT"
	CodeStateConflict Code = "STATE_CONFLICT"
	CodeRateLimit     Code = "RATE_LIMIT_EXCEEDED"
	CodeInternal      Code = "INTERNAL_ERROR"
	CodeDependency    Code = "DEPENDENCY_ERROR"
)

type Metadata struct {
	HTTPStatus     int
	PublicMessage  string
	DetailsAllowed bool
}

var metadataByCode = map[Code]Metadata{
	CodeValidation:    {HTTPStatus: http.StatusBadRequest, PublicMessage: "dados inválidos", DetailsAllowed: true},
	CodeUnauthorized:  {HTTPStatus: http.StatusUnauthorized, PublicMessage: "autenticação necessária"},
	CodeForbidden:     {HTTPStatus: http.StatusForbidden, PublicMessage: "acesso negado"},
	CodeNotFound:      {HTTPStatus: http.StatusNotFound, PublicMessage: "registro não encontrado"},
	CodeConflict:      {HTTPStatus: http.StatusConflict, PublicMessage: "registro duplicado"},
	CodeStateConflict: {HTTPStatus: http.StatusUnprocessableEntity, PublicMessage: "transição de status não permitida", DetailsAllowed: true},
	CodeRateLimit:     {HTTPStatus: http.StatusTooManyRequests, PublicMessage: "muitas requisições"},
	CodeInternal:      {HTTPStatus: http.StatusInternalServerError, PublicMessage: "erro interno"},
	CodeDependency:    {HTTPStatus: http.StatusServiceUnavailable, PublicMessage: "serviço externo indisponível"},
}

func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

// FromDB traduz erros do gorm: registro ausente vira NOT_FOUND, o resto INTERNAL.
func FromDB(err error, message string) *Error {
	if err == nil {
		return nil
	}
	if stdErrors.Is(err, gorm.ErrRecordNotFound) {
		return Wrap(CodeNotFound, err, message)
	}
	if stdErrors.Is(err, gorm.ErrDuplicatedKey) {
		return Wrap(CodeConflict, err, message)
	}
	return Wrap(CodeInternal, err, message)
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}
