package auth

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"

	"github.com/SigaRastreamento/api-site/internal/config"
)

// Chaves guarda a chave RSA ativa e as públicas aceitas (kid -> pub).
type Chaves struct {
	priv     *rsa.PrivateKey
	pubs     map[string]*rsa.PublicKey
	kid      string
	issuer   string
	audience string
}

// CarregarChaves lê a chave privada (PKCS#1 ou PKCS#8) do caminho configurado.
func CarregarChaves(cfg config.AuthConfig) (*Chaves, error) {
	if cfg.PrivateKeyPath == "" || cfg.KID == "" || cfg.Issuer == "" || cfg.Audience == "" {
		return nil, errors.New("missing envs: AUTH_RSA_PRIVATE_PATH/AUTH_KID/AUTH_ISSUER/AUTH_AUDIENCE")
	}

	b, err := os.ReadFile(cfg.PrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("read private key: %w", err)
	}
	block, _ := pem.Decode(b)
	if block == nil {
		return nil, errors.New("pem decode private key failed")
	}

	var pk any
	if k, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		pk = k
	} else if k8, err2 := x509.ParsePKCS8PrivateKey(block.Bytes); err2 == nil {
		pk = k8
	} else {
		return nil, fmt.Errorf("parse private key: %v / %v", err, err2)
	}

	priv, ok := pk.(*rsa.PrivateKey)
	if !ok {
		return nil, errors.New("private key is not RSA")
	}
	return NovasChaves(priv, cfg.KID, cfg.Issuer, cfg.Audience), nil
}

func NovasChaves(priv *rsa.PrivateKey, kid, issuer, audience string) *Chaves {
	return &Chaves{
		priv:     priv,
		pubs:     map[string]*rsa.PublicKey{kid: &priv.PublicKey},
		kid:      kid,
		issuer:   issuer,
		audience: audience,
	}
}

func (c *Chaves) pub(kid string) (*rsa.PublicKey, bool) {
	p, ok := c.pubs[kid]
	return p, ok
}

func signMethod() jwt.SigningMethod { return jwt.SigningMethodRS256 }
