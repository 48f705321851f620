// internal/utils/slug_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"spaces to dashes", "Bolsa Tote Couro", "bolsa-tote-couro"},
		{"accents stripped", "Coleção Verão", "colecao-verao"},
		{"cedilla", "Calça", "calca"},
		{"punctuation collapsed", "Bolsa -- Edição Limitada!", "bolsa-edicao-limitada"},
		{"leading and trailing junk trimmed", "  Carteira  ", "carteira"},
		{"numbers kept", "Cinto 40mm", "cinto-40mm"},
		{"already a slug", "bolsa-tote", "bolsa-tote"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}
