package solicitacao

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SigaRastreamento/api-site/internal/apperr"
)

func TestValidarTransicao(t *testing.T) {
	casos := []struct {
		de    Status
		pago  bool
		para  Status
		valid bool
	}{
		{StatusNovo, false, StatusRecebido, true},
		{StatusNovo, false, StatusConfirmado, true},
		{StatusNovo, false, StatusInstalado, false},
		{StatusRecebido, false, StatusConfirmado, true},
		{StatusRecebido, false, StatusNovo, false},
		{StatusConfirmado, false, StatusInstalado, true},
		{StatusConfirmado, true, StatusInstalado, true},
		{StatusConfirmado, false, StatusRecebido, false},
		{StatusInstalado, false, StatusCancelado, true},
		{StatusInstalado, true, StatusCancelado, false},
		{StatusInstalado, false, StatusConfirmado, false},
		{StatusCancelado, false, StatusNovo, false},
		{StatusCancelado, false, StatusConfirmado, false},
	}
	for _, c := range casos {
		err := ValidarTransicao(c.de, c.pago, c.para)
		if c.valid {
			assert.NoError(t, err, "%s(pago=%v) -> %s", c.de, c.pago, c.para)
			continue
		}
		require.Error(t, err, "%s(pago=%v) -> %s", c.de, c.pago, c.para)
		assert.Equal(t, apperr.CodeStateConflict, apperr.As(err).Code())
	}
}

func TestValidarTransicaoMesmoStatusENoOp(t *testing.T) {
	assert.NoError(t, ValidarTransicao(StatusCancelado, false, StatusCancelado))
	assert.NoError(t, ValidarTransicao(StatusInstalado, true, StatusInstalado))
}

func TestValidarTransicaoStatusDesconhecido(t *testing.T) {
	err := ValidarTransicao(StatusNovo, false, Status("pago"))
	require.Error(t, err)
	assert.Equal(t, apperr.CodeValidation, apperr.As(err).Code())
}

func TestValidarPagamento(t *testing.T) {
	assert.NoError(t, ValidarPagamento(StatusConfirmado, false, true))
	assert.NoError(t, ValidarPagamento(StatusInstalado, false, true))
	assert.NoError(t, ValidarPagamento(StatusConfirmado, true, false))
	assert.NoError(t, ValidarPagamento(StatusCancelado, true, true))
	assert.Error(t, ValidarPagamento(StatusInstalado, true, false))
	assert.Error(t, ValidarPagamento(StatusCancelado, false, true))
}
