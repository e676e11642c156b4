// Package format holds the display transforms applied to upstream values.
// Every function is pure.
package format

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Symbols used by en-US currency formatting. Codes missing here are
// rendered as "CODE 1.00".
var symbols = map[string]string{
	"AUD": "A$",
	"BRL": "R$",
	"CAD": "CA$",
	"CNY": "CN¥",
	"EUR": "€",
	"GBP": "£",
	"HKD": "HK$",
	"ILS": "₪",
	"INR": "₹",
	"JPY": "¥",
	"KRW": "₩",
	"MXN": "MX$",
	"NZD": "NZ$",
	"PHP": "₱",
	"TWD": "NT$",
	"USD": "$",
	"VND": "₫",
}

// Money formats an amount in the en-US currency style, e.g. "$1,234.50".
// The amount is rounded to the currency's standard minor units; it is never
// converted.
func Money(amount, currencyCode string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(currencyCode))
	if !isCurrencyCode(code) {
		return "", fmt.Errorf("invalid currency code %q", currencyCode)
	}

	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return "", fmt.Errorf("invalid amount %q: %w", amount, err)
	}

	scale := 2
	if unit, err := currency.ParseISO(code); err == nil {
		scale, _ = currency.Standard.Rounding(unit)
	}

	number := groupThousands(d.Abs().StringFixed(int32(scale)))

	var b strings.Builder
	if d.Sign() < 0 {
		b.WriteByte('-')
	}
	if sym, ok := symbols[code]; ok {
		b.WriteString(sym)
	} else {
		b.WriteString(code)
		b.WriteString(" ")
	}
	b.WriteString(number)
	return b.String(), nil
}

func isCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return false
		}
	}
	return true
}

// groupThousands inserts "," separators into the integer part of a plain
// decimal string.
func groupThousands(s string) string {
	intPart, frac, hasFrac := strings.Cut(s, ".")
	if len(intPart) <= 3 {
		return s
	}

	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}
