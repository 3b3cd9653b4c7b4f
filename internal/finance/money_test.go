package finance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatBRL(t *testing.T) {
	assert.Equal(t, "R$ 0,00", FormatBRL(decimal.Zero))
	assert.Equal(t, "R$ 1.234,56", FormatBRL(decimal.RequireFromString("1234.56")))
	assert.Equal(t, "R$ 1.999,50", FormatBRL(decimal.RequireFromString("1999.5")))
	assert.Equal(t, "R$ 35.000,00", FormatBRL(decimal.NewFromInt(35000)))
	assert.Equal(t, "R$ 1.234.567,89", FormatBRL(decimal.RequireFromString("1234567.89")))
	assert.Equal(t, "-R$ 500,00", FormatBRL(decimal.NewFromInt(-500)))
}

func TestParseAmount(t *testing.T) {
	assert.True(t, ParseAmount("").IsZero())
	assert.True(t, ParseAmount("R$ ,,,").IsZero())
	assert.Equal(t, "1234.56", ParseAmount("R$ 1.234,56").String())
	assert.Equal(t, "0.01", ParseAmount("1").String())
	assert.Equal(t, "0.5", ParseAmount("50").String())
	// sign characters are stripped like everything else non-numeric
	assert.Equal(t, "500", ParseAmount("-R$ 500,00").String())
}

func TestMoneyRoundTrip(t *testing.T) {
	for _, s := range []string{"0", "0.01", "1999.5", "35000", "1234567.89"} {
		d := decimal.RequireFromString(s)
		assert.True(t, ParseAmount(FormatBRL(d)).Equal(d), "round trip failed for %s", s)
	}
}

func TestMaskAmount(t *testing.T) {
	assert.Equal(t, "", MaskAmount(""))
	assert.Equal(t, "", MaskAmount("abc"))
	assert.Equal(t, "0,01", MaskAmount("1"))
	assert.Equal(t, "0,12", MaskAmount("12"))
	assert.Equal(t, "1,23", MaskAmount("123"))
	assert.Equal(t, "1.234,56", MaskAmount("123456"))
	assert.Equal(t, "1.234,56", MaskAmount("0123456"))
	assert.Equal(t, "12,34", MaskAmount("12a34"))
}
