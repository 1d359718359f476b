package saleform

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

var (
	currencySymbols = regexp.MustCompile(`[$৳]`)
	leadingInt      = regexp.MustCompile(`^([+-]?)(?:0[xX]([0-9a-fA-F]+)|(\d+))`)
	leadingFloat    = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)
)

// StripCurrency removes the currency symbols stored alongside product prices.
func StripCurrency(price string) string {
	return currencySymbols.ReplaceAllString(price, "")
}

// trimLeadingSpace drops the characters browsers skip before a number,
// the byte order mark included.
func trimLeadingSpace(raw string) string {
	return strings.TrimLeftFunc(raw, func(r rune) bool {
		return r == '\ufeff' || unicode.IsSpace(r)
	})
}

// ParseQuantity reads the leading integer of raw, ignoring leading whitespace
// and anything after the digits. A 0x prefix reads hexadecimal digits.
// Unparseable input and zero both yield 1.
func ParseQuantity(raw string) int {
	m := leadingInt.FindStringSubmatch(trimLeadingSpace(raw))
	if m == nil {
		return 1
	}
	digits, base := m[3], 10
	if m[2] != "" {
		digits, base = m[2], 16
	}

	n, err := strconv.ParseInt(digits, base, 0)
	if err != nil {
		// only a range error is possible here
		n = math.MaxInt
	}
	if m[1] == "-" {
		n = -n
	}
	if n == 0 {
		return 1
	}
	return int(n)
}

// ParsePrice reads the leading decimal number of raw. Anything that does not
// start with a finite number yields 0.
func ParsePrice(raw string) float64 {
	m := leadingFloat.FindString(trimLeadingSpace(raw))
	if m == "" {
		return 0
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0
	}
	return f
}

// FormatAmount renders f with exactly two decimals. Rounding works on the
// binary value of f, so 1.005 (stored as 1.00499...) becomes "1.00".
func FormatAmount(f float64) string {
	return decimal.NewFromFloatWithExponent(f, -2).StringFixed(2)
}
