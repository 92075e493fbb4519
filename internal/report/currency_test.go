package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPHP(t *testing.T) {
	assert.Equal(t, "₱0.00", FormatPHP(0))
	assert.Equal(t, "₱750.00", FormatPHP(750))
	assert.Equal(t, "₱1,234.50", FormatPHP(1234.5))
	assert.Equal(t, "₱12,345,678.90", FormatPHP(12345678.9))
}

func TestParseAmount(t *testing.T) {
	t.Run("accepts decimals and surrounding whitespace", func(t *testing.T) {
		value, err := ParseAmount(" 250.75 ")
		require.NoError(t, err)
		assert.Equal(t, 250.75, value)
	})

	t.Run("accepts zero", func(t *testing.T) {
		value, err := ParseAmount("0")
		require.NoError(t, err)
		assert.Zero(t, value)
	})

	t.Run("rejects non-numeric input", func(t *testing.T) {
		_, err := ParseAmount("two hundred")
		assert.Error(t, err)
	})

	t.Run("rejects NaN and infinities", func(t *testing.T) {
		for _, input := range []string{"NaN", "Inf", "-Inf"} {
			_, err := ParseAmount(input)
			assert.Error(t, err, input)
		}
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		_, err := ParseAmount("-5")
		assert.Error(t, err)
	})
}
