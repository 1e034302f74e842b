package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims do access token (inclui RBAC simples: IsAdmin)
type Claims struct {
	UserID  uint `json:"userId"`
	IsAdmin bool `json:"isAdmin"`
	jwt.RegisteredClaims
}

// GerarAccessToken gera um JWT RS256 com kid, iss, aud, iat, nbf e jti.
func (s *Servico) GerarAccessToken(userID uint, isAdmin bool) (string, error) {
	if s.chaves == nil || s.chaves.priv == nil {
		return "", errors.New("private key not loaded (check AUTH_RSA_PRIVATE_PATH)")
	}

	now := time.Now()
	claims := &Claims{
		UserID:  userID,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.chaves.issuer,
			Audience:  []string{s.chaves.audience},
			Subject:   fmt.Sprint(userID),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now.Add(-1 * time.Minute)),
			ID:        fmt.Sprintf("%d-%d", userID, now.UnixNano()),
		},
	}

	tok := jwt.NewWithClaims(signMethod(), claims)
	tok.Header["kid"] = s.chaves.kid
	return tok.SignedString(s.chaves.priv)
}

// Validar confere assinatura, iss, aud e exp.
func (s *Servico) Validar(tokenStr string) (*Claims, error) {
	if s.chaves == nil {
		return nil, errors.New("chaves não carregadas")
	}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithIssuer(s.chaves.issuer),
		jwt.WithAudience(s.chaves.audience),
		jwt.WithExpirationRequired(),
	)
	tok, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		k, _ := t.Header["kid"].(string)
		if k == "" {
			return nil, errors.New("kid ausente")
		}
		pub, ok := s.chaves.pub(k)
		if !ok {
			return nil, errors.New("kid desconhecido")
		}
		return pub, nil
	})
	if err != nil {
		return nil, err
	}
	c, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, errors.New("token inválido")
	}
	return c, nil
}
