// Package money parses user-typed currency amounts and formats them for print.
package money

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CurrencySymbol is printed in front of the net payable amount.
const CurrencySymbol = "₹"

var (
	// ErrEmpty is returned when nothing is left after stripping separators and currency markers.
	ErrEmpty = errors.New("money: empty value")
	// ErrInvalid is returned when the remainder is not a decimal number.
	ErrInvalid = errors.New("money: not a number")

	currencyMarker = regexp.MustCompile(`(?i)(rs\.?|₹)`)
)

// Parse reads a number the way people type it into the invoice form:
// "1,25,000", "Rs. 450", "₹ 12.5" and "rs450" all parse.
func Parse(raw string) (decimal.Decimal, error) {
	s := strings.ReplaceAll(raw, ",", "")
	s = currencyMarker.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrEmpty
	}
	s = strings.TrimPrefix(s, "+")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errors.Wrapf(ErrInvalid, "%q", raw)
	}
	return d, nil
}

// Round2 rounds to paise using round-half-even.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(2)
}

// Plain renders d with exactly two decimals and no grouping ("125000.00").
func Plain(d decimal.Decimal) string {
	return d.StringFixedBank(2)
}

// Grouped renders d with two decimals and thousands separators ("125,000.00").
// Digits come from the decimal itself, so large amounts print exactly.
func Grouped(d decimal.Decimal) string {
	s := Round2(d).StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")
	return sign + groupDigits(whole) + "." + frac
}

func groupDigits(whole string) string {
	if n, err := strconv.ParseInt(whole, 10, 64); err == nil {
		return message.NewPrinter(language.English).Sprintf("%d", n)
	}

	// beyond int64
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// WithSymbol renders d as Grouped prefixed by the rupee sign ("₹ 125,000.00").
func WithSymbol(d decimal.Decimal) string {
	return CurrencySymbol + " " + Grouped(d)
}
