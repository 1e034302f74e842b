package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/SigaRastreamento/api-site/internal/apperr"
	"github.com/SigaRastreamento/api-site/internal/utils/resposta"
)

// TokenResponse é devolvido no login e no refresh.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

func genRaw() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func hashRaw(raw string) string {
	h := sha256.Sum256([]byte(raw))
	return base64.RawURLEncoding.EncodeToString(h[:])
}

// Em localhost precisa ser Secure=false; em produção COOKIE_SECURE=true.
func (s *Servico) setRTCookie(w http.ResponseWriter, raw string, exp time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookie,
		Value:    raw,
		Path:     "/auth",
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  exp,
	})
}

func (s *Servico) clearRTCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookie,
		Value:    "",
		Path:     "/auth",
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func (s *Servico) novoRefresh(db *gorm.DB, w http.ResponseWriter, userID uint, familyID string, isAdmin bool) error {
	raw, err := genRaw()
	if err != nil {
		return err
	}
	rt := RefreshToken{
		UserID:    userID,
		FamilyID:  familyID,
		Hash:      hashRaw(raw),
		IsAdmin:   isAdmin,
		ExpiresAt: time.Now().Add(s.refreshTTL),
	}
	if err := db.Create(&rt).Error; err != nil {
		return err
	}
	s.setRTCookie(w, raw, rt.ExpiresAt)
	return nil
}

// EmitirNoLogin é chamado depois de validar e-mail e senha.
func (s *Servico) EmitirNoLogin(db *gorm.DB, w http.ResponseWriter, userID uint, isAdmin bool) (*TokenResponse, error) {
	access, err := s.GerarAccessToken(userID, isAdmin)
	if err != nil {
		return nil, err
	}
	if err := s.novoRefresh(db, w, userID, fmt.Sprintf("fam-%d", userID), isAdmin); err != nil {
		return nil, err
	}
	return &TokenResponse{AccessToken: access, TokenType: "Bearer", ExpiresIn: int(s.accessTTL.Seconds())}, nil
}

// POST /auth/refresh
func (s *Servico) RefreshHTTPHandler(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		c, err := r.Cookie(RefreshCookie)
		if err != nil || c.Value == "" {
			resposta.Erro(ctx, s.Log, w, apperr.New(apperr.CodeUnauthorized, "refresh ausente"))
			return
		}
		tx := db.WithContext(ctx)

		var cur RefreshToken
		if err := tx.Where("hash = ?", hashRaw(c.Value)).First(&cur).Error; err != nil {
			s.clearRTCookie(w)
			resposta.Erro(ctx, s.Log, w, apperr.Wrap(apperr.CodeUnauthorized, err, "refresh inválido"))
			return
		}
		if cur.RevokedAt != nil || time.Now().After(cur.ExpiresAt) {
			s.clearRTCookie(w)
			resposta.Erro(ctx, s.Log, w, apperr.New(apperr.CodeUnauthorized, "refresh expirado"))
			return
		}

		now := time.Now()
		if err := tx.Model(&cur).Update("revoked_at", &now).Error; err != nil {
			resposta.Erro(ctx, s.Log, w, apperr.FromDB(err, "erro ao revogar refresh"))
			return
		}

		// o papel salvo no refresh é preservado
		access, err := s.GerarAccessToken(cur.UserID, cur.IsAdmin)
		if err != nil {
			s.clearRTCookie(w)
			resposta.Erro(ctx, s.Log, w, apperr.Wrap(apperr.CodeInternal, err, "erro ao gerar token"))
			return
		}
		if err := s.novoRefresh(tx, w, cur.UserID, cur.FamilyID, cur.IsAdmin); err != nil {
			s.clearRTCookie(w)
			resposta.Erro(ctx, s.Log, w, apperr.Wrap(apperr.CodeInternal, err, "erro ao gerar refresh"))
			return
		}

		resposta.JSON(w, http.StatusOK, TokenResponse{AccessToken: access, TokenType: "Bearer", ExpiresIn: int(s.accessTTL.Seconds())})
	}
}

// POST /auth/logout
func (s *Servico) LogoutHTTPHandler(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie(RefreshCookie); err == nil && c.Value != "" {
			now := time.Now()
			_ = db.WithContext(r.Context()).Model(&RefreshToken{}).
				Where("hash = ?", hashRaw(c.Value)).
				Update("revoked_at", &now).Error
		}
		s.clearRTCookie(w)
		w.WriteHeader(http.StatusNoContent)
	}
}
