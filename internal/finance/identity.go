package finance

import "strings"

// ValidCPF checks the two verification digits of an 11-digit CPF.
// Formatting characters are ignored; wrong lengths and the classic
// all-repeated-digit sequences ("111.111.111-11") are rejected.
func ValidCPF(s string) bool {
	digits := keepDigits(s)
	if len(digits) != 11 {
		return false
	}

	repeated := true
	for i := 1; i < 11; i++ {
		if digits[i] != digits[0] {
			repeated = false
			break
		}
	}
	if repeated {
		return false
	}

	if cpfCheckDigit(digits, 9) != int(digits[9]-'0') {
		return false
	}
	return cpfCheckDigit(digits, 10) == int(digits[10]-'0')
}

// cpfCheckDigit computes the verification digit over the first n digits,
// with weights n+1 down to 2.
func cpfCheckDigit(digits string, n int) int {
	sum := 0
	for i := 0; i < n; i++ {
		sum += int(digits[i]-'0') * (n + 1 - i)
	}
	d := sum * 10 % 11
	if d == 10 {
		d = 0
	}
	return d
}

// MaskPhone formats Brazilian phone digits as "(11) 91234-5678" (mobile) or
// "(11) 1234-5678" (landline). Partial input is formatted as far as it goes.
func MaskPhone(s string) string {
	digits := keepDigits(s)
	if len(digits) > 11 {
		digits = digits[:11]
	}
	switch {
	case len(digits) == 0:
		return ""
	case len(digits) <= 2:
		return "(" + digits
	case len(digits) <= 6:
		return "(" + digits[:2] + ") " + digits[2:]
	case len(digits) <= 10:
		return "(" + digits[:2] + ") " + digits[2:len(digits)-4] + "-" + digits[len(digits)-4:]
	default:
		return "(" + digits[:2] + ") " + digits[2:7] + "-" + digits[7:]
	}
}

// MaskCEP formats postal-code digits as "01310-100".
func MaskCEP(s string) string {
	digits := keepDigits(s)
	if len(digits) > 8 {
		digits = digits[:8]
	}
	if len(digits) <= 5 {
		return digits
	}
	return digits[:5] + "-" + digits[5:]
}

// MaskPlate normalizes a license plate: uppercased, alphanumeric only, with
// a dash inserted for the pre-Mercosul "ABC1234" format. Mercosul plates
// ("ABC1D23") are left undashed.
func MaskPlate(s string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(s) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
		if b.Len() == 7 {
			break
		}
	}
	plate := b.String()
	if len(plate) == 7 && isLetters(plate[:3]) && isNumbers(plate[3:]) {
		return plate[:3] + "-" + plate[3:]
	}
	return plate
}

func isLetters(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}

func isNumbers(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
