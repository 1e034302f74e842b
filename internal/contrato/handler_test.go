package contrato

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/SigaRastreamento/api-site/internal/logger"
)

func novoDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Contrato{}))
	require.NoError(t, db.Exec("CREATE TABLE solicitacoes (id integer primary key)").Error)
	require.NoError(t, db.Exec("INSERT INTO solicitacoes (id) VALUES (1)").Error)
	return db
}

func novoRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/solicitacoes/{id}/contratos", h.CriarParaSolicitacao).Methods(http.MethodPost)
	r.HandleFunc("/solicitacoes/{id}/contratos", h.ListarPorSolicitacao).Methods(http.MethodGet)
	r.HandleFunc("/contratos", h.ListarTodos).Methods(http.MethodGet)
	r.HandleFunc("/contratos/{id}", h.Atualizar).Methods(http.MethodPut)
	r.HandleFunc("/contratos/{id}", h.Deletar).Methods(http.MethodDelete)
	return r
}

func chamar(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, path, &buf))
	return rec
}

func TestCriarContratoPendenteEAssinar(t *testing.T) {
	db := novoDB(t)
	r := novoRouter(NewHandler(db, logger.Nop()))

	rec := chamar(t, r, http.MethodPost, "/solicitacoes/1/contratos", map[string]any{
		"tipo": "adesao",
		"url":  "https://docs.siga.com.br/contratos/abc.pdf",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var c Contrato
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &c))
	assert.Equal(t, StatusPendente, c.Status)

	rec = chamar(t, r, http.MethodPut, "/contratos/1", map[string]any{"dataAssinatura": "2026-03-10T14:00:00Z"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &c))
	assert.Equal(t, StatusAssinado, c.Status)

	rec = chamar(t, r, http.MethodGet, "/solicitacoes/1/contratos", nil)
	var list []Contrato
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 1)
}

func TestCriarContratoValida(t *testing.T) {
	db := novoDB(t)
	r := novoRouter(NewHandler(db, logger.Nop()))

	assert.Equal(t, http.StatusBadRequest, chamar(t, r, http.MethodPost, "/solicitacoes/1/contratos", map[string]any{"tipo": "outro", "url": "https://x.com/a.pdf"}).Code)
	assert.Equal(t, http.StatusBadRequest, chamar(t, r, http.MethodPost, "/solicitacoes/1/contratos", map[string]any{"tipo": "adesao", "url": "nao-e-url"}).Code)
	assert.Equal(t, http.StatusNotFound, chamar(t, r, http.MethodPost, "/solicitacoes/7/contratos", map[string]any{"tipo": "adesao", "url": "https://x.com/a.pdf"}).Code)
}

func TestDeletarContrato(t *testing.T) {
	db := novoDB(t)
	r := novoRouter(NewHandler(db, logger.Nop()))
	require.NoError(t, db.Create(&Contrato{SolicitacaoID: 1, Tipo: TipoAdesao, URL: "https://x.com/a.pdf", Status: StatusPendente}).Error)

	assert.Equal(t, http.StatusNoContent, chamar(t, r, http.MethodDelete, "/contratos/1", nil).Code)
	assert.Equal(t, http.StatusNotFound, chamar(t, r, http.MethodDelete, "/contratos/1", nil).Code)
}
