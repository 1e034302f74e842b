package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SigaRastreamento/api-site/internal/apperr"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDParam(t *testing.T) {
	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/x/7", nil), map[string]string{"id": "7"})
	id, err := IDParam(req, "id")
	require.NoError(t, err)
	assert.Equal(t, uint(7), id)

	for _, bad := range []string{"", "0", "-1", "abc"} {
		req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/x", nil), map[string]string{"id": bad})
		_, err := IDParam(req, "id")
		require.Error(t, err, bad)
		assert.Equal(t, apperr.CodeValidation, apperr.As(err).Code())
	}
}

func TestClientIPIgnoraCabecalhosSemRealIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "9.9.9.9:5123"
	req.Header.Set("X-Forwarded-For", "10.0.0.1")
	req.Header.Set("X-Real-IP", "10.0.0.2")
	assert.Equal(t, "9.9.9.9", ClientIP(req))

	req = req.WithContext(ComClientIP(req.Context(), "200.1.2.3"))
	assert.Equal(t, "200.1.2.3", ClientIP(req))
}

func TestResolverClientIP(t *testing.T) {
	confiaveis, err := ParsePrefixos([]string{"10.0.0.0/8", " 172.16.0.5 ", ""})
	require.NoError(t, err)
	require.Len(t, confiaveis, 2)

	novo := func(remote string, headers ...string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = remote
		for i := 0; i+1 < len(headers); i += 2 {
			req.Header.Add(headers[i], headers[i+1])
		}
		return req
	}

	cases := []struct {
		nome string
		req  *http.Request
		want string
	}{
		{"socket sem proxy", novo("9.9.9.9:1"), "9.9.9.9"},
		{"cabeçalho de cliente direto é ignorado", novo("9.9.9.9:1", "X-Forwarded-For", "1.1.1.1", "X-Real-IP", "2.2.2.2"), "9.9.9.9"},
		{"salto mais à direita fora da lista", novo("10.0.0.1:1", "X-Forwarded-For", "6.6.6.6, 200.1.2.3"), "200.1.2.3"},
		{"pula saltos confiáveis", novo("10.0.0.1:1", "X-Forwarded-For", "6.6.6.6, 200.1.2.3, 172.16.0.5, 10.2.3.4"), "200.1.2.3"},
		{"vários cabeçalhos", novo("10.0.0.1:1", "X-Forwarded-For", "6.6.6.6", "X-Forwarded-For", "200.1.2.3"), "200.1.2.3"},
		{"lixo para no último confiável", novo("10.0.0.1:1", "X-Forwarded-For", "nada, 10.0.0.7"), "10.0.0.7"},
		{"todos confiáveis", novo("10.0.0.1:1", "X-Forwarded-For", "10.9.9.9"), "10.9.9.9"},
		{"x-real-ip atrás de proxy", novo("172.16.0.5:1", "X-Real-IP", "200.1.2.4"), "200.1.2.4"},
		{"x-real-ip inválido", novo("172.16.0.5:1", "X-Real-IP", "abc"), "172.16.0.5"},
	}
	for _, tc := range cases {
		t.Run(tc.nome, func(t *testing.T) {
			assert.Equal(t, tc.want, ResolverClientIP(tc.req, confiaveis))
		})
	}

	_, err = ParsePrefixos([]string{"10.0.0.0/99"})
	assert.Error(t, err)
	_, err = ParsePrefixos([]string{"proxy.local"})
	assert.Error(t, err)
}
