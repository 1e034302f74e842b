package comentario

import (
	"bytes"
	"context"
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

	"github.com/SigaRastreamento/api-site/internal/auth"
	"github.com/SigaRastreamento/api-site/internal/logger"
	"github.com/SigaRastreamento/api-site/internal/usuario"
)

func novoDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&usuario.Usuario{}, &Comentario{}))
	require.NoError(t, db.Exec("CREATE TABLE solicitacoes (id integer primary key)").Error)
	require.NoError(t, db.Exec("INSERT INTO solicitacoes (id) VALUES (1)").Error)
	require.NoError(t, db.Create(&usuario.Usuario{Nome: "Bia", Email: "bia@siga.com.br", Password: "x", Ativo: true}).Error)
	require.NoError(t, db.Create(&usuario.Usuario{Nome: "Caio", Email: "caio@siga.com.br", Password: "x", Ativo: true}).Error)
	return db
}

func novoRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/solicitacoes/{id}/comentarios", h.CriarComentario).Methods(http.MethodPost)
	r.HandleFunc("/solicitacoes/{id}/comentarios", h.ListarPorSolicitacao).Methods(http.MethodGet)
	r.HandleFunc("/comentarios/{id}", h.Atualizar).Methods(http.MethodPut)
	r.HandleFunc("/comentarios/{id}", h.RemoverComentario).Methods(http.MethodDelete)
	return r
}

func chamar(t *testing.T, r http.Handler, ctx context.Context, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, path, &buf).WithContext(ctx))
	return rec
}

func TestCriarEListarComentarios(t *testing.T) {
	db := novoDB(t)
	r := novoRouter(NewHandler(db, logger.Nop()))
	bia := auth.ComUsuario(context.Background(), 1, false)

	require.NoError(t, Sistema(db, 1, "Status alterado de novo para recebido."))
	rec := chamar(t, r, bia, http.MethodPost, "/solicitacoes/1/comentarios", map[string]string{"texto": "Cliente pediu instalação à tarde."})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = chamar(t, r, bia, http.MethodGet, "/solicitacoes/1/comentarios", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []ComentarioDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "sistema", list[0].Author.Type)
	assert.Equal(t, "usuario", list[1].Author.Type)
	assert.Equal(t, "Bia", list[1].Author.Nome)
}

func TestCriarComentarioSolicitacaoInexistente(t *testing.T) {
	db := novoDB(t)
	r := novoRouter(NewHandler(db, logger.Nop()))

	rec := chamar(t, r, auth.ComUsuario(context.Background(), 1, false), http.MethodPost, "/solicitacoes/99/comentarios", map[string]string{"texto": "x"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = chamar(t, r, context.Background(), http.MethodPost, "/solicitacoes/1/comentarios", map[string]string{"texto": "x"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSoAutorOuAdminAltera(t *testing.T) {
	db := novoDB(t)
	r := novoRouter(NewHandler(db, logger.Nop()))
	bia := auth.ComUsuario(context.Background(), 1, false)
	caio := auth.ComUsuario(context.Background(), 2, false)
	admin := auth.ComUsuario(context.Background(), 2, true)

	require.Equal(t, http.StatusCreated, chamar(t, r, bia, http.MethodPost, "/solicitacoes/1/comentarios", map[string]string{"texto": "original"}).Code)

	assert.Equal(t, http.StatusForbidden, chamar(t, r, caio, http.MethodPut, "/comentarios/1", map[string]string{"texto": "hack"}).Code)
	assert.Equal(t, http.StatusOK, chamar(t, r, bia, http.MethodPut, "/comentarios/1", map[string]string{"texto": "editado"}).Code)

	var c Comentario
	require.NoError(t, db.First(&c, 1).Error)
	assert.Equal(t, "editado", c.Texto)

	assert.Equal(t, http.StatusNoContent, chamar(t, r, admin, http.MethodDelete, "/comentarios/1", nil).Code)
	assert.Equal(t, http.StatusNotFound, chamar(t, r, admin, http.MethodDelete, "/comentarios/1", nil).Code)
}

func TestComentarioDeSistemaImutavel(t *testing.T) {
	db := novoDB(t)
	r := novoRouter(NewHandler(db, logger.Nop()))
	require.NoError(t, Sistema(db, 1, "Instalação marcada como paga."))

	admin := auth.ComUsuario(context.Background(), 1, true)
	assert.Equal(t, http.StatusForbidden, chamar(t, r, admin, http.MethodDelete, "/comentarios/1", nil).Code)
}
