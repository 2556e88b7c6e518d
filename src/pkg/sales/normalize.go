package sales

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

/*
NormalizeValue turns a locale-formatted amount into a signed decimal with two
fractional digits.

Every non-digit is discarded and the last two digits remaining are the cents,
so "1.234,56", "1234,56" and "1 234 56" all become 1234.56, and "50" becomes
0.50. A minus anywhere makes the result negative. Input without digits is 0.
*/
func NormalizeValue(raw string) decimal.Decimal {
	negative := strings.Contains(raw, "-")

	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return decimal.Zero
	}

	cents, parseErr := decimal.NewFromString(digits.String())
	if parseErr != nil {
		return decimal.Zero
	}

	amount := cents.Shift(-2)
	if negative {
		amount = amount.Neg()
	}
	return amount
}

// NormalizeOptional is NormalizeValue for a value that may be missing; nil is 0.
func NormalizeOptional(raw *string) decimal.Decimal {
	if raw == nil {
		return decimal.Zero
	}
	return NormalizeValue(*raw)
}

/*
PrepareSalesToken applies the export's separator conventions to a raw sales
cell: whitespace and thousand dots are removed and the decimal comma becomes
a point. The result is what NormalizeValue receives.
*/
func PrepareSalesToken(raw string) string {
	withoutSpace := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
	withoutThousands := strings.ReplaceAll(withoutSpace, ".", "")
	return strings.ReplaceAll(withoutThousands, ",", ".")
}
