package request

import "github.com/rishabgems/invoice-api/internal/domain/enum"

// UpdateBillRequest represents a bill and client details update. Absent fields are kept.
type UpdateBillRequest struct {
	BillDate      *string             `json:"bill_date" binding:"omitempty,max=32"`
	DueDate       *string             `json:"due_date" binding:"omitempty,max=32"`
	BillerName    *string             `json:"biller_name" binding:"omitempty,max=255"`
	ClientAddress *string             `json:"client_address" binding:"omitempty,max=1000"`
	ClientPhone   *string             `json:"client_phone" binding:"omitempty,max=64"`
	ClientEmail   *string             `json:"client_email" binding:"omitempty,max=255"`
	ClientBillTo  *string             `json:"client_bill_to" binding:"omitempty,max=255"`
	PaymentMethod *enum.PaymentMethod `json:"payment_method"`
}

// UpdateRowRequest represents a line item update. Values are kept as typed.
type UpdateRowRequest struct {
	No          *string `json:"no" binding:"omitempty,max=32"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	Weight      *string `json:"weight" binding:"omitempty,max=64"`
	Rate        *string `json:"rate" binding:"omitempty,max=64"`
	Amount      *string `json:"amount" binding:"omitempty,max=64"`
}

// RowIndexURI binds the row position from the path
type RowIndexURI struct {
	Index *int `uri:"index" binding:"required,min=0"`
}

// ArchiveFilterRequest represents archive listing parameters
type ArchiveFilterRequest struct {
	Search  string `form:"search" binding:"omitempty,max=255"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}

// ArchiveTokenRequest carries the operator's archive key
type ArchiveTokenRequest struct {
	APIKey string `json:"api_key" binding:"required,max=255"`
}
