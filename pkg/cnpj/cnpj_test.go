package cnpj_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wendriu/estoque-api/pkg/cnpj"
)

// ──────────────────────────────────────────────────────────────────────────────
// Vetores de referência do módulo 11 da Receita Federal. Se alguém alterar a
// sequência de pesos ou a regra resto < 2 -> 0, estes testes quebram antes de
// qualquer fornecedor inválido chegar ao banco.
// ──────────────────────────────────────────────────────────────────────────────

func TestValid_CNPJValido(t *testing.T) {
	assert.True(t, cnpj.Valid("11222333000181"))
	assert.True(t, cnpj.Valid("00000000000191")) // DVs 9 e 1, base quase toda zero
}

func TestValid_AceitaFormatacao(t *testing.T) {
	// O formulário envia com pontos/barra/hífen; só os dígitos contam.
	assert.True(t, cnpj.Valid("11.222.333/0001-81"))
}

func TestValid_DigitoVerificadorErrado(t *testing.T) {
	assert.False(t, cnpj.Valid("11222333000180"))
	assert.False(t, cnpj.Valid("11222333000171"))
}

func TestValid_TamanhoErrado(t *testing.T) {
	assert.False(t, cnpj.Valid(""))
	assert.False(t, cnpj.Valid("1122233300018"))    // 13 dígitos
	assert.False(t, cnpj.Valid("112223330001811"))  // 15 dígitos
	assert.False(t, cnpj.Valid("sem dígito algum"))
}

func TestValid_DigitosRepetidos(t *testing.T) {
	// Passam na conta do módulo 11 mas são triviais: rejeitados.
	assert.False(t, cnpj.Valid("11111111111111"))
	assert.False(t, cnpj.Valid("00000000000000"))
	assert.False(t, cnpj.Valid("99999999999999"))
}

func TestCheckDigits_CompletaBase(t *testing.T) {
	d1, d2, err := cnpj.CheckDigits("112223330001")
	require.NoError(t, err)
	assert.Equal(t, byte('8'), d1)
	assert.Equal(t, byte('1'), d2)
}

func TestCheckDigits_BaseCurta(t *testing.T) {
	_, _, err := cnpj.CheckDigits("11222333")
	assert.Error(t, err)
}
