package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sangkips/catering-api/internal/domain/pricing"
)

func TestFormatCurrency(t *testing.T) {
	cases := map[string]string{
		"0":          "$0.00",
		"5":          "$5.00",
		"1234.5":     "$1,234.50",
		"695.3":      "$695.30",
		"999.995":    "$1,000.00",
		"1234567.89": "$1,234,567.89",
		"-104.7":     "-$104.70",
		"-0.001":     "$0.00",
		"100000":     "$100,000.00",
	}

	for in, want := range cases {
		require.Equal(t, want, pricing.FormatCurrency(dec(in)), in)
	}
}

func TestCents(t *testing.T) {
	require.Equal(t, int64(34765), pricing.Cents(dec("347.65")))
	require.Equal(t, int64(1001), pricing.Cents(dec("10.005")))
	require.Equal(t, int64(-10470), pricing.Cents(dec("-104.70")))
}
