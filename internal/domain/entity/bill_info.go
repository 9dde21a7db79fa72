package entity

import (
	"time"
)

// MaxClientAddressLen is the number of characters of the client address that fit on the document.
const MaxClientAddressLen = 65

// DisplayDateLayout is how dates are printed on the document.
const DisplayDateLayout = "02-01-2006"

// RawBillInfo holds the bill and client fields as typed.
type RawBillInfo struct {
	BillDate      string `json:"bill_date"`
	DueDate       string `json:"due_date"`
	BillerName    string `json:"biller_name"`
	ClientAddress string `json:"client_address"`
	ClientPhone   string `json:"client_phone"`
	ClientEmail   string `json:"client_email"`
	ClientBillTo  string `json:"client_bill_to"`
}

// BillInfo is the normalized bill and client metadata printed on the invoice.
type BillInfo struct {
	BillNo        string    `json:"bill_no"`
	BillDate      time.Time `json:"bill_date"`
	DueDate       time.Time `json:"due_date"`
	BillerName    string    `json:"biller_name"`
	ClientAddress string    `json:"client_address"`
	ClientPhone   string    `json:"client_phone"`
	ClientEmail   string    `json:"client_email"`
	ClientBillTo  string    `json:"client_bill_to"`
}

// TruncateAddress cuts s to MaxClientAddressLen characters.
func TruncateAddress(s string) string {
	r := []rune(s)
	if len(r) <= MaxClientAddressLen {
		return s
	}
	return string(r[:MaxClientAddressLen])
}
