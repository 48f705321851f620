// internal/utils/brdoc_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCPF(t *testing.T) {
	tests := []struct {
		name  string
		cpf   string
		valid bool
	}{
		{"valid plain", "11144477735", true},
		{"valid formatted", "111.444.777-35", true},
		{"repeated digits pass checksum but rejected", "11111111111", false},
		{"repeated zeros", "00000000000", false},
		{"bad first check digit", "11144477745", false},
		{"bad second check digit", "11144477736", false},
		{"too short", "1114447773", false},
		{"too long", "111444777350", false},
		{"empty", "", false},
		{"letters only", "abcdefghijk", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidateCPF(tt.cpf))
		})
	}
}

func TestStripNonDigits(t *testing.T) {
	assert.Equal(t, "11144477735", StripNonDigits("111.444.777-35"))
	assert.Equal(t, "5511999990000", StripNonDigits("+55 (11) 99999-0000"))
	assert.Equal(t, "", StripNonDigits("abc"))
}

func TestFormatCPF(t *testing.T) {
	assert.Equal(t, "111.444.777-35", FormatCPF("11144477735"))
	assert.Equal(t, "111.444.777-35", FormatCPF("111.444.777-35"))
	// Not 11 digits: returned untouched.
	assert.Equal(t, "12345", FormatCPF("12345"))
}

func TestValidateCEP(t *testing.T) {
	assert.True(t, ValidateCEP("01310-100"))
	assert.True(t, ValidateCEP("01310100"))
	assert.False(t, ValidateCEP("0131010"))
	assert.False(t, ValidateCEP(""))
}

func TestFormatCEP(t *testing.T) {
	assert.Equal(t, "01310-100", FormatCEP("01310100"))
	assert.Equal(t, "01310-100", FormatCEP("01310-100"))
	assert.Equal(t, "123", FormatCEP("123"))
}

func TestMaskPhone(t *testing.T) {
	assert.Equal(t, "*********0000", MaskPhone("+55 11 99999-0000"))
	assert.Equal(t, "123", MaskPhone("123"))
}
