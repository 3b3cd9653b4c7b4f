package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidCPF(t *testing.T) {
	// checksum-correct ids
	assert.True(t, ValidCPF("52998224725"))
	assert.True(t, ValidCPF("529.982.247-25"))
	assert.True(t, ValidCPF("11144477735"))

	// repeated-digit sequences pass the checksum but are not real ids
	assert.False(t, ValidCPF("11111111111"))
	assert.False(t, ValidCPF("00000000000"))
	assert.False(t, ValidCPF("999.999.999-99"))

	// wrong lengths and bad checksums
	assert.False(t, ValidCPF(""))
	assert.False(t, ValidCPF("5299822472"))
	assert.False(t, ValidCPF("529982247255"))
	assert.False(t, ValidCPF("52998224726"))
	assert.False(t, ValidCPF("52998224735"))
}

func TestMaskPhone(t *testing.T) {
	assert.Equal(t, "", MaskPhone(""))
	assert.Equal(t, "(1", MaskPhone("1"))
	assert.Equal(t, "(11) 9123", MaskPhone("119123"))
	assert.Equal(t, "(11) 1234-5678", MaskPhone("1112345678"))
	assert.Equal(t, "(11) 91234-5678", MaskPhone("11912345678"))
	assert.Equal(t, "(11) 91234-5678", MaskPhone("(11) 91234-5678"))
}

func TestMaskCEP(t *testing.T) {
	assert.Equal(t, "", MaskCEP(""))
	assert.Equal(t, "01310", MaskCEP("01310"))
	assert.Equal(t, "01310-100", MaskCEP("01310100"))
	assert.Equal(t, "01310-100", MaskCEP("013101009999"))
}

func TestMaskPlate(t *testing.T) {
	assert.Equal(t, "ABC-1234", MaskPlate("abc1234"))
	assert.Equal(t, "ABC-1234", MaskPlate("ABC 1234"))
	assert.Equal(t, "ABC1D23", MaskPlate("abc1d23")) // Mercosul stays undashed
	assert.Equal(t, "AB", MaskPlate("ab"))
	assert.Equal(t, "", MaskPlate(""))
}
