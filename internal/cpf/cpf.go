// Package cpf normaliza, valida e formata o CPF (Cadastro de Pessoas Físicas).
package cpf

import "strings"

// Length é a quantidade de dígitos de um CPF normalizado.
const Length = 11

// Normalize remove tudo que não for dígito decimal.
func Normalize(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	for i := 0; i < len(input); i++ {
		if c := input[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Validate checks length, rejects repeated digits and verifies both check digits.
func Validate(input string) bool {
	digits := Normalize(input)
	if len(digits) != Length {
		return false
	}

	allEqual := true
	for i := 1; i < Length; i++ {
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

// checkDigit computes the verifier for position n (9 or 10) using weights n+1 down to 2.
func checkDigit(digits string, n int) int {
	sum := 0
	for i := 0; i < n; i++ {
		sum += int(digits[i]-'0') * (n + 1 - i)
	}
	check := 11 - sum%11
	if check >= 10 {
		return 0
	}
	return check
}

// Format renders XXX.XXX.XXX-XX. Input that doesn't normalize to 11 digits is returned as is.
func Format(input string) string {
	d := Normalize(input)
	if len(d) != Length {
		return input
	}
	return d[0:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:11]
}

// Mask esconde o CPF para logs: 123.***.***-**
func Mask(input string) string {
	d := Normalize(input)
	if len(d) < 3 {
		return "***.***.***-**"
	}
	return d[:3] + ".***.***-**"
}
