package utils

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"strings"

	"github.com/SigaRastreamento/api-site/internal/apperr"
	"github.com/gorilla/mux"
)

// IDParam lê um ID numérico das variáveis de rota.
func IDParam(r *http.Request, nome string) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)[nome], 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.New(apperr.CodeValidation, "ID inválido")
	}
	return uint(id), nil
}

type chaveClientIP struct{}

// ComClientIP guarda no contexto o IP já resolvido pelo middleware RealIP.
func ComClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, chaveClientIP{}, ip)
}

// ClientIP devolve o IP resolvido pelo RealIP ou, sem ele, o do socket.
// Cabeçalhos de encaminhamento nunca são lidos aqui.
func ClientIP(r *http.Request) string {
	if ip, ok := r.Context().Value(chaveClientIP{}).(string); ok && ip != "" {
		return ip
	}
	return hostRemoto(r)
}

// ResolverClientIP só considera X-Forwarded-For e X-Real-IP quando o socket
// vem de um proxy confiável. O X-Forwarded-For é lido da direita para a
// esquerda e vence o primeiro salto fora da lista; entradas inválidas param
// a leitura no último salto confiável.
func ResolverClientIP(r *http.Request, confiaveis []netip.Prefix) string {
	remoto := hostRemoto(r)
	if !confiavel(remoto, confiaveis) {
		return remoto
	}

	if header := r.Header.Values("X-Forwarded-For"); len(header) > 0 {
		saltos := strings.Split(strings.Join(header, ","), ",")
		ultimo := remoto
		for i := len(saltos) - 1; i >= 0; i-- {
			salto := strings.TrimSpace(saltos[i])
			if _, err := netip.ParseAddr(salto); err != nil {
				return ultimo
			}
			if !confiavel(salto, confiaveis) {
				return salto
			}
			ultimo = salto
		}
		return ultimo
	}

	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		if _, err := netip.ParseAddr(ip); err == nil {
			return ip
		}
	}
	return remoto
}

// ParsePrefixos aceita IPs soltos ou CIDRs.
func ParsePrefixos(valores []string) ([]netip.Prefix, error) {
	out := make([]netip.Prefix, 0, len(valores))
	for _, v := range valores {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if strings.Contains(v, "/") {
			p, err := netip.ParsePrefix(v)
			if err != nil {
				return nil, fmt.Errorf("proxy confiável inválido %q: %w", v, err)
			}
			out = append(out, p.Masked())
			continue
		}
		a, err := netip.ParseAddr(v)
		if err != nil {
			return nil, fmt.Errorf("proxy confiável inválido %q: %w", v, err)
		}
		a = a.Unmap()
		out = append(out, netip.PrefixFrom(a, a.BitLen()))
	}
	return out, nil
}

func confiavel(ip string, confiaveis []netip.Prefix) bool {
	if len(confiaveis) == 0 {
		return false
	}
	a, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	a = a.Unmap()
	for _, p := range confiaveis {
		if p.Contains(a) {
			return true
		}
	}
	return false
}

func hostRemoto(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
