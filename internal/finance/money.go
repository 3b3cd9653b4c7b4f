// Package finance holds the sale settlement and profitability core. Every
// function here is pure and total: no I/O, no mutation of its inputs, and no
// errors: malformed input degrades to zero/false/empty so that callers
// (handlers rendering live form state included) never have to guard.
package finance

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatBRL renders an amount as Brazilian currency, e.g. "R$ 1.234,56".
func FormatBRL(amount decimal.Decimal) string {
	neg := amount.IsNegative()
	fixed := amount.Abs().StringFixed(2) // "1234.56"

	intPart := fixed[:len(fixed)-3]
	centPart := fixed[len(fixed)-2:]

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString("R$ ")
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(centPart)
	return b.String()
}

// ParseAmount is the forgiving inverse of FormatBRL: every non-digit
// character is stripped and the trailing two digits are taken as cents.
// Empty or digit-free input yields zero. It never fails.
func ParseAmount(s string) decimal.Decimal {
	digits := keepDigits(s)
	if digits == "" {
		return decimal.Zero
	}
	for len(digits) < 3 {
		digits = "0" + digits
	}
	d, err := decimal.NewFromString(digits[:len(digits)-2] + "." + digits[len(digits)-2:])
	if err != nil {
		return decimal.Zero
	}
	return d
}

// MaskAmount formats a raw digit stream the way an ATM does, right to left:
// "1" -> "0,01", "123456" -> "1.234,56". Empty input yields an empty string.
func MaskAmount(raw string) string {
	digits := keepDigits(raw)
	if digits == "" {
		return ""
	}
	digits = strings.TrimLeft(digits, "0")
	for len(digits) < 3 {
		digits = "0" + digits
	}

	intPart := digits[:len(digits)-2]
	centPart := digits[len(digits)-2:]

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(centPart)
	return b.String()
}

func keepDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
