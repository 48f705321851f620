// internal/utils/brdoc.go
package utils

import (
	"regexp"
	"strings"
)

var nonDigits = regexp.MustCompile(`\D`)

// StripNonDigits removes everything but 0-9 from s.
func StripNonDigits(s string) string {
	return nonDigits.ReplaceAllString(s, "")
}

// ValidateCPF implements the standard two-pass weighted checksum over the 11
// digits of a Brazilian CPF. Formatting characters are stripped before
// validation. Sequences of a single repeated digit are rejected even though
// some pass the checksum.
func ValidateCPF(cpf string) bool {
	digits := StripNonDigits(cpf)
	if len(digits) != 11 {
		return false
	}

	allEqual := true
	for i := 1; i < 11; i++ {
		if digits[i] != digits[0] {
			allEqual = false
			break
		}
	}
	if allEqual {
		return false
	}

	if checkDigit(digits, 9) != int(digits[9]-'0') {
		return false
	}
	return checkDigit(digits, 10) == int(digits[10]-'0')
}

// checkDigit computes the verification digit over digits[0:n] with weights
// n+1 down to 2, mapping remainders 10 and 11 to 0.
func checkDigit(digits string, n int) int {
	sum := 0
	for i := 0; i < n; i++ {
		sum += int(digits[i]-'0') * (n + 1 - i)
	}
	remainder := (sum * 10) % 11
	if remainder >= 10 {
		return 0
	}
	return remainder
}

// FormatCPF renders an 11-digit CPF as 000.000.000-00. Input that is not 11
// digits long is returned unchanged.
func FormatCPF(cpf string) string {
	digits := StripNonDigits(cpf)
	if len(digits) != 11 {
		return cpf
	}
	return digits[0:3] + "." + digits[3:6] + "." + digits[6:9] + "-" + digits[9:11]
}

// ValidateCEP accepts 8-digit Brazilian postal codes, formatted or not.
func ValidateCEP(cep string) bool {
	return len(StripNonDigits(cep)) == 8
}

// FormatCEP renders an 8-digit CEP as 00000-000.
func FormatCEP(cep string) string {
	digits := StripNonDigits(cep)
	if len(digits) != 8 {
		return cep
	}
	return digits[0:5] + "-" + digits[5:8]
}

// MaskPhone keeps only the last four digits visible.
func MaskPhone(phone string) string {
	digits := StripNonDigits(phone)
	if len(digits) <= 4 {
		return phone
	}
	return strings.Repeat("*", len(digits)-4) + digits[len(digits)-4:]
}
