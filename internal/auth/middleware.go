package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/SigaRastreamento/api-site/internal/apperr"
	"github.com/SigaRastreamento/api-site/internal/utils/resposta"
)

type ctxKey string

const (
	CtxUserID  ctxKey = "usuarioID"
	CtxIsAdmin ctxKey = "isAdmin"
)

// ComUsuario grava o usuário autenticado no contexto.
func ComUsuario(ctx context.Context, userID uint, isAdmin bool) context.Context {
	ctx = context.WithValue(ctx, CtxUserID, userID)
	return context.WithValue(ctx, CtxIsAdmin, isAdmin)
}

func UsuarioID(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(CtxUserID).(uint)
	return id, ok && id != 0
}

func IsAdmin(ctx context.Context) bool {
	ok, _ := ctx.Value(CtxIsAdmin).(bool)
	return ok
}

func (s *Servico) MiddlewareAutenticacao(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		ctx := r.Context()
		h := r.Header.Get("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			resposta.Erro(ctx, s.Log, w, apperr.New(apperr.CodeUnauthorized, "token ausente"))
			return
		}
		claims, err := s.Validar(strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			resposta.Erro(ctx, s.Log, w, apperr.Wrap(apperr.CodeUnauthorized, err, "token inválido"))
			return
		}
		ctx = ComUsuario(ctx, claims.UserID, claims.IsAdmin)
		if s.Log != nil {
			ctx = s.Log.WithUserID(ctx, claims.UserID)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsAdmin(r.Context()) {
			resposta.Erro(r.Context(), nil, w, apperr.New(apperr.CodeForbidden, "acesso restrito a administradores"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
