package middleware

import (
	"net/http"
	"net/netip"

	"github.com/SigaRastreamento/api-site/internal/utils"
)

// RealIP resolve o IP do cliente uma vez por requisição. Sem proxies
// confiáveis vale sempre o endereço do socket.
func RealIP(confiaveis []netip.Prefix) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := utils.ResolverClientIP(r, confiaveis)
			next.ServeHTTP(w, r.WithContext(utils.ComClientIP(r.Context(), ip)))
		})
	}
}
