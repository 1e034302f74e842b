package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/SigaRastreamento/api-site/internal/config"
	"github.com/SigaRastreamento/api-site/internal/logger"
)

func novaChave(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	k, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return k
}

func novoServico(t *testing.T) *Servico {
	t.Helper()
	ch := NovasChaves(novaChave(t), "k1", "siga", "site-admin")
	return NewServico(ch, config.AuthConfig{AccessTTL: time.Minute, RefreshTTL: time.Hour}, logger.Nop())
}

func novoDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&RefreshToken{}))
	return db
}

func TestCarregarChavesPKCS8(t *testing.T) {
	k := novaChave(t)
	der, err := x509.MarshalPKCS8PrivateKey(k)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "key.pem")
	require.NoError(t, os.WriteFile(path, pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}), 0o600))

	ch, err := CarregarChaves(config.AuthConfig{PrivateKeyPath: path, KID: "k1", Issuer: "i", Audience: "a"})
	require.NoError(t, err)
	assert.Equal(t, "k1", ch.kid)

	_, err = CarregarChaves(config.AuthConfig{PrivateKeyPath: path})
	assert.Error(t, err)
}

func TestGerarEValidar(t *testing.T) {
	s := novoServico(t)
	tok, err := s.GerarAccessToken(7, true)
	require.NoError(t, err)

	c, err := s.Validar(tok)
	require.NoError(t, err)
	assert.Equal(t, uint(7), c.UserID)
	assert.True(t, c.IsAdmin)

	outro := novoServico(t)
	_, err = outro.Validar(tok)
	assert.Error(t, err)
}

func TestMiddlewareAutenticacao(t *testing.T) {
	s := novoServico(t)
	var visto uint
	h := s.MiddlewareAutenticacao(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		visto, _ = UsuarioID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer lixo")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	tok, err := s.GerarAccessToken(3, false)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(3), visto)
}

func TestRequireAdmin(t *testing.T) {
	h := RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req.WithContext(ComUsuario(req.Context(), 1, false)))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req.WithContext(ComUsuario(req.Context(), 1, true)))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRefreshRotacionaCookie(t *testing.T) {
	s := novoServico(t)
	db := novoDB(t)

	rec := httptest.NewRecorder()
	_, err := s.EmitirNoLogin(db, rec, 5, true)
	require.NoError(t, err)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	primeiro := cookies[0]

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	req.AddCookie(primeiro)
	rec = httptest.NewRecorder()
	s.RefreshHTTPHandler(db).ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	c, err := s.Validar(out.AccessToken)
	require.NoError(t, err)
	assert.True(t, c.IsAdmin)

	// o cookie antigo foi revogado
	req = httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	req.AddCookie(primeiro)
	rec = httptest.NewRecorder()
	s.RefreshHTTPHandler(db).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutRevoga(t *testing.T) {
	s := novoServico(t)
	db := novoDB(t)

	rec := httptest.NewRecorder()
	_, err := s.EmitirNoLogin(db, rec, 5, false)
	require.NoError(t, err)
	ck := rec.Result().Cookies()[0]

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(ck)
	rec = httptest.NewRecorder()
	s.LogoutHTTPHandler(db).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	var rt RefreshToken
	require.NoError(t, db.First(&rt).Error)
	assert.NotNil(t, rt.RevokedAt)
}

func TestJWKS(t *testing.T) {
	s := novoServico(t)
	rec := httptest.NewRecorder()
	s.JWKSHandler(rec, httptest.NewRequest(http.MethodGet, "/.well-known/jwks.json", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Keys []jwk `json:"keys"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out.Keys, 1)
	assert.Equal(t, "k1", out.Keys[0].Kid)
	assert.Equal(t, "AQAB", out.Keys[0].E)
}
