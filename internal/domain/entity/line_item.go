package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// RawLineItem is one form row exactly as typed. Nothing here is validated.
type RawLineItem struct {
	No          string `json:"no"`
	Description string `json:"description"`
	Weight      string `json:"weight"`
	Rate        string `json:"rate"`
	Amount      string `json:"amount"`
}

// IsBlank reports whether every field is empty after trimming whitespace.
func (r RawLineItem) IsBlank() bool {
	for _, v := range []string{r.No, r.Description, r.Weight, r.Rate, r.Amount} {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// LineItem is a validated row. Weight, Rate and Amount carry two decimals.
type LineItem struct {
	No          int             `json:"no"`
	Description string          `json:"description"`
	Weight      decimal.Decimal `json:"weight"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
}
