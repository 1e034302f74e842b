package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashECheckSenha(t *testing.T) {
	hash, err := HashSenha("s3nh@forte")
	require.NoError(t, err)

	assert.NotEqual(t, "s3nh@forte", hash)
	assert.True(t, CheckSenha(hash, "s3nh@forte"))
	assert.False(t, CheckSenha(hash, "outra"))
}

func TestGerarSenhaTemporaria(t *testing.T) {
	a, err := GerarSenhaTemporaria()
	require.NoError(t, err)
	b, err := GerarSenhaTemporaria()
	require.NoError(t, err)

	assert.Len(t, a, 12)
	assert.NotEqual(t, a, b)
}
