package sales

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeValue(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"plain digits", "1234", "12.34"},
		{"padded negative", "-50", "-0.50"},
		{"single digit", "7", "0.07"},
		{"empty", "", "0"},
		{"lone minus", "-", "0"},
		{"double minus", "--", "0"},
		{"no digits", "n/a", "0"},
		{"all zeros", "000", "0"},
		{"thousand and decimal separators", "1.234,56", "1234.56"},
		{"spaces", " 1 234 56 ", "1234.56"},
		{"embedded minus", "12-34", "-12.34"},
		{"currency noise", "EUR 99,95", "99.95"},
		{"long digit string", "123456789012345678901234", "1234567890123456789012.34"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeValue(tc.raw)
			want := decimal.RequireFromString(tc.want)
			assert.True(t, want.Equal(got), "NormalizeValue(%q) = %s, want %s", tc.raw, got, want)
		})
	}
}

func TestNormalizeOptional(t *testing.T) {
	assert.True(t, NormalizeOptional(nil).IsZero())

	raw := "250"
	assert.True(t, decimal.RequireFromString("2.50").Equal(NormalizeOptional(&raw)))
}

func TestPrepareSalesToken(t *testing.T) {
	assert.Equal(t, "1234.56", PrepareSalesToken("1.234,56"))
	assert.Equal(t, "-10.00", PrepareSalesToken(" -10,00 "))
	assert.Equal(t, "50", PrepareSalesToken("50"))
}

func TestNormalizedMagnitudeIsDigitsOverHundred(t *testing.T) {
	inputs := []string{"0,01", "9", "1.000.000,00", "-3 210", "12ab34"}
	for _, raw := range inputs {
		got := NormalizeValue(raw)
		digits := ""
		for _, r := range raw {
			if r >= '0' && r <= '9' {
				digits += string(r)
			}
		}
		magnitude := decimal.RequireFromString(digits).Shift(-2)
		assert.True(t, magnitude.Equal(got.Abs()), "magnitude of %q", raw)
		assert.Equal(t, strings.Contains(raw, "-"), got.IsNegative(), "sign of %q", raw)
	}
}
