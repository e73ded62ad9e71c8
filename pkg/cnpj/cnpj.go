package cnpj

import (
	"fmt"
	"unicode"
)

// pesos para o cálculo dos dígitos verificadores do CNPJ (módulo 11 da Receita Federal).
// Aplicam-se da esquerda para a direita sobre os 12 (primeiro DV) e 13 (segundo DV)
// primeiros dígitos; equivalem à sequência 2..9 repetida da direita para a esquerda.
var (
	firstDigitWeights  = [12]int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	secondDigitWeights = [13]int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// Valid informa se o CNPJ (com ou sem pontos/barra/hífen) tem 14 dígitos e
// dígitos verificadores corretos. Sequências de um mesmo dígito repetido
// ("11111111111111") passam na conta do módulo 11 mas são inválidas na prática.
func Valid(raw string) bool {
	digits := extractDigits(raw)
	if len(digits) != 14 {
		return false
	}
	if allSameDigit(digits) {
		return false
	}
	d1 := checkDigit(digits[:12], firstDigitWeights[:])
	d2 := checkDigit(digits[:13], secondDigitWeights[:])
	return digits[12] == d1 && digits[13] == d2
}

// CheckDigits calcula os dois dígitos verificadores para os 12 primeiros dígitos
// do CNPJ. Útil para completar um CNPJ base antes do cadastro.
func CheckDigits(raw string) (byte, byte, error) {
	digits := extractDigits(raw)
	if len(digits) < 12 {
		return 0, 0, fmt.Errorf("cnpj: são necessários ao menos 12 dígitos para calcular os verificadores, encontrados %d", len(digits))
	}
	d1 := checkDigit(digits[:12], firstDigitWeights[:])
	base13 := append(append([]byte{}, digits[:12]...), d1)
	d2 := checkDigit(base13, secondDigitWeights[:])
	return d1, d2, nil
}

// checkDigit soma ponderada módulo 11: resto < 2 -> 0, senão 11 - resto.
func checkDigit(digits []byte, weights []int) byte {
	var sum int
	for i, d := range digits {
		sum += int(d-'0') * weights[i]
	}
	rest := sum % 11
	if rest < 2 {
		return '0'
	}
	return byte('0' + 11 - rest)
}

func allSameDigit(digits []byte) bool {
	for _, d := range digits[1:] {
		if d != digits[0] {
			return false
		}
	}
	return true
}

func extractDigits(s string) []byte {
	var out []byte
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, byte(r))
		}
	}
	return out
}
