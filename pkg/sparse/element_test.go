package sparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSupportedTypes(t *testing.T) {
	types := SupportedTypes()
	assert.Len(t, types, 10)
	assert.Contains(t, types, "int8")
	assert.Contains(t, types, "uint64")
	assert.Contains(t, types, "float32")
	assert.Contains(t, types, "float64")
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "-5", FormatValue(int8(-5)))
	assert.Equal(t, "-300", FormatValue(int16(-300)))
	assert.Equal(t, "100000", FormatValue(int32(100000)))
	assert.Equal(t, "-9223372036854775808", FormatValue(int64(-9223372036854775808)))
	assert.Equal(t, "255", FormatValue(uint8(255)))
	assert.Equal(t, "65535", FormatValue(uint16(65535)))
	assert.Equal(t, "4294967295", FormatValue(uint32(4294967295)))
	assert.Equal(t, "18446744073709551615", FormatValue(uint64(18446744073709551615)))
	assert.Equal(t, "1.5", FormatValue(float32(1.5)))
	assert.Equal(t, "0.25", FormatValue(float64(0.25)))
}

func TestFormatValue_Zero(t *testing.T) {
	assert.Equal(t, "0", FormatValue(int32(0)))
	assert.Equal(t, "0", FormatValue(uint8(0)))
	assert.Equal(t, "0", FormatValue(float64(0)))
}
