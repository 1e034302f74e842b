package auth

import (
	"encoding/base64"
	"math/big"
	"net/http"

	"github.com/SigaRastreamento/api-site/internal/apperr"
	"github.com/SigaRastreamento/api-site/internal/utils/resposta"
)

type jwk struct {
	Kty string `json:"kty"`
	Alg string `json:"alg"`
	Use string `json:"use"`
	Kid string `json:"kid"`
	N   string `json:"n"`
	E   string `json:"e"`
}

// GET /.well-known/jwks.json
func (s *Servico) JWKSHandler(w http.ResponseWriter, r *http.Request) {
	if s.chaves == nil {
		resposta.Erro(r.Context(), s.Log, w, apperr.New(apperr.CodeInternal, "jwks indisponível"))
		return
	}
	keys := make([]jwk, 0, len(s.chaves.pubs))
	for kid, pub := range s.chaves.pubs {
		keys = append(keys, jwk{
			Kty: "RSA",
			Alg: "RS256",
			Use: "sig",
			Kid: kid,
			N:   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
			E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
		})
	}
	resposta.JSON(w, http.StatusOK, struct {
		Keys []jwk `json:"keys"`
	}{Keys: keys})
}
