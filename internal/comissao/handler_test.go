package comissao

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/SigaRastreamento/api-site/internal/cotacao"
	"github.com/SigaRastreamento/api-site/internal/cupom"
	"github.com/SigaRastreamento/api-site/internal/logger"
	"github.com/SigaRastreamento/api-site/internal/representante"
	"github.com/SigaRastreamento/api-site/internal/solicitacao"
)

func novoDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&representante.Representante{}, &cupom.Cupom{}, &solicitacao.Solicitacao{}))
	return db
}

func popular(t *testing.T, db *gorm.DB) {
	t.Helper()
	ana := representante.Representante{Nome: "Ana", ChavePix: "ana@pix", Ativo: true}
	bruno := representante.Representante{Nome: "Bruno", Ativo: true}
	require.NoError(t, db.Create(&ana).Error)
	require.NoError(t, db.Create(&bruno).Error)

	require.NoError(t, db.Create(&cupom.Cupom{Codigo: "ana10", Ativo: true, RepresentanteID: &ana.ID, Comissao: cotacao.Percentual(dec("10"))}).Error)
	require.NoError(t, db.Create(&cupom.Cupom{Codigo: "BRUNO", Ativo: true, RepresentanteID: &bruno.ID, Comissao: cotacao.Fixa(dec("30"))}).Error)

	sols := []solicitacao.Solicitacao{
		{Protocolo: "p1", Nome: "Maria", Email: "m@x.com", Telefone: "1", Categoria: "carro", Bloqueio: "sim",
			Plano: "Segurança", ValorMensal: "R$ 64,90", ValorInstalacao: "R$ 150,00", CodigoCupom: "ANA10",
			Status: solicitacao.StatusInstalado, InstalacaoPaga: true},
		{Protocolo: "p2", Nome: "João", Email: "j@x.com", Telefone: "1", Categoria: "carro", Bloqueio: "sim",
			Plano: "Segurança", ValorMensal: "R$ 64,90", ValorInstalacao: "R$ 120,00", CodigoCupom: "BRUNO",
			Status: solicitacao.StatusConfirmado, InstalacaoPaga: true},
		{Protocolo: "p3", Nome: "Rita", Email: "r@x.com", Telefone: "1", Categoria: "moto", Bloqueio: "nao",
			Plano: "Essencial", ValorMensal: "R$ 58,90", ValorInstalacao: "R$ 120,00",
			Status: solicitacao.StatusInstalado, InstalacaoPaga: true},
	}
	require.NoError(t, db.Create(&sols).Error)
}

func novoRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/comissoes", h.Relatorio).Methods(http.MethodGet)
	r.HandleFunc("/comissoes/resumo", h.Resumo).Methods(http.MethodGet)
	return r
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestServiceGerar(t *testing.T) {
	db := novoDB(t)
	popular(t, db)
	s := NewService(db, nil, logger.Nop())

	out, err := s.Gerar(context.Background(), "todos")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Ana", out[0].Nome)
	require.Len(t, out[0].Cupons, 1)
	assert.Equal(t, "ANA10", out[0].Cupons[0].Codigo)
	assert.Equal(t, "Maria", out[0].Cupons[0].Entradas[0].Cliente)
	assert.True(t, dec("15").Equal(out[0].Total))

	require.NoError(t, db.Exec("UPDATE solicitacoes SET status = ? WHERE protocolo = ?", solicitacao.StatusInstalado, "p2").Error)
	out, err = s.Gerar(context.Background(), "2")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Bruno", out[0].Nome)
	assert.True(t, dec("30").Equal(out[0].Total))
}

func TestRelatorioHTTP(t *testing.T) {
	db := novoDB(t)
	popular(t, db)
	r := novoRouter(NewHandler(NewService(db, nil, logger.Nop()), logger.Nop()))

	rec := get(r, "/comissoes?representante=todos")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var out []Relatorio
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.True(t, dec("15").Equal(out[0].Total))

	rec = get(r, "/comissoes?representante=2")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = get(r, "/comissoes?representante=ana")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = get(r, "/comissoes/resumo")
	require.Equal(t, http.StatusOK, rec.Code)
	var resumo []Resumo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resumo))
	require.Len(t, resumo, 1)
	assert.Equal(t, 1, resumo[0].Instalacoes)
	assert.Equal(t, "R$ 15,00", resumo[0].TotalFormatado)
}

type geradorComErro struct{}

func (geradorComErro) Gerar(context.Context, string) ([]Relatorio, error) {
	return nil, errors.New("conexão recusada")
}

func TestRelatorioFalhaNoBanco(t *testing.T) {
	r := novoRouter(&Handler{Service: geradorComErro{}, Log: logger.Nop()})
	rec := get(r, "/comissoes")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "conexão recusada")
}
