package representante

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
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Representante{}))
	// tabela mínima de cupons para o desvínculo no delete
	require.NoError(t, db.Exec("CREATE TABLE cupons (id integer primary key, representante_id integer)").Error)
	return db
}

func novoRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/representantes", h.Criar).Methods(http.MethodPost)
	r.HandleFunc("/representantes", h.Listar).Methods(http.MethodGet)
	r.HandleFunc("/representantes/{id}", h.BuscarPorID).Methods(http.MethodGet)
	r.HandleFunc("/representantes/{id}", h.Atualizar).Methods(http.MethodPut)
	r.HandleFunc("/representantes/{id}", h.Deletar).Methods(http.MethodDelete)
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

func TestCriarRepresentanteAtivoPorPadrao(t *testing.T) {
	db := novoDB(t)
	r := novoRouter(NewHandler(db, logger.Nop()))

	rec := chamar(t, r, http.MethodPost, "/representantes", map[string]any{"nome": "Ana Souza", "email": "ana@exemplo.com"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var rep Representante
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rep))
	assert.NotZero(t, rep.ID)
	assert.True(t, rep.Ativo)
}

func TestCriarRepresentanteValidaCampos(t *testing.T) {
	db := novoDB(t)
	r := novoRouter(NewHandler(db, logger.Nop()))

	rec := chamar(t, r, http.MethodPost, "/representantes", map[string]any{"nome": "A", "email": "nao-e-email"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
	assert.Contains(t, rec.Body.String(), "email")
}

func TestListarRepresentantesEmOrdemDeCadastro(t *testing.T) {
	db := novoDB(t)
	r := novoRouter(NewHandler(db, logger.Nop()))

	for _, nome := range []string{"Zeca", "Bruna", "Mário"} {
		require.Equal(t, http.StatusCreated, chamar(t, r, http.MethodPost, "/representantes", map[string]any{"nome": nome}).Code)
	}

	rec := chamar(t, r, http.MethodGet, "/representantes", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []Representante
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 3)
	assert.Equal(t, "Zeca", list[0].Nome)
	assert.Equal(t, "Mário", list[2].Nome)
}

func TestAtualizarRepresentanteParcial(t *testing.T) {
	db := novoDB(t)
	r := novoRouter(NewHandler(db, logger.Nop()))
	require.NoError(t, db.Create(&Representante{Nome: "Carlos", ChavePix: "carlos@pix", Ativo: true}).Error)

	rec := chamar(t, r, http.MethodPut, "/representantes/1", map[string]any{"ativo": false})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var rep Representante
	require.NoError(t, db.First(&rep, 1).Error)
	assert.False(t, rep.Ativo)
	assert.Equal(t, "carlos@pix", rep.ChavePix)
}

func TestBuscarRepresentanteInexistente(t *testing.T) {
	db := novoDB(t)
	r := novoRouter(NewHandler(db, logger.Nop()))

	rec := chamar(t, r, http.MethodGet, "/representantes/99", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = chamar(t, r, http.MethodGet, "/representantes/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeletarRepresentanteSoltaCupons(t *testing.T) {
	db := novoDB(t)
	r := novoRouter(NewHandler(db, logger.Nop()))
	require.NoError(t, db.Create(&Representante{Nome: "Dora", Ativo: true}).Error)
	require.NoError(t, db.Exec("INSERT INTO cupons (id, representante_id) VALUES (1, 1)").Error)

	rec := chamar(t, r, http.MethodDelete, "/representantes/1", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	var row struct{ RepresentanteID *uint }
	require.NoError(t, db.Raw("SELECT representante_id FROM cupons WHERE id = 1").Scan(&row).Error)
	assert.Nil(t, row.RepresentanteID)

	rec = chamar(t, r, http.MethodDelete, "/representantes/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
