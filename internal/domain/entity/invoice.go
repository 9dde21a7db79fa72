package entity

import (
	"github.com/rishabgems/invoice-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// InvoiceTotals are derived from the line items. Rounding + Subtotal == NetPayable exactly.
type InvoiceTotals struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	Rounding   decimal.Decimal `json:"rounding"`
	NetPayable decimal.Decimal `json:"net_payable"`
}

// ComputeTotals sums the amounts and rounds the sum to a whole rupee, half to even.
func ComputeTotals(items []LineItem) InvoiceTotals {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Amount)
	}
	net := subtotal.RoundBank(0)
	return InvoiceTotals{
		Subtotal:   subtotal,
		Rounding:   net.Sub(subtotal),
		NetPayable: net,
	}
}

// Invoice is a validated form: sorted items, normalized bill info and totals.
type Invoice struct {
	Bill          BillInfo           `json:"bill"`
	PaymentMethod enum.PaymentMethod `json:"payment_method"`
	Items         []LineItem         `json:"items"`
	Totals        InvoiceTotals      `json:"totals"`
}

// RenderedInvoice is a filled document ready for download.
type RenderedInvoice struct {
	Filename    string
	ContentType string
	Data        []byte
}
