package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/rishabgems/invoice-api/internal/domain/entity"
	"github.com/rishabgems/invoice-api/pkg/money"
	"github.com/samber/lo"
)

// SessionResponse is the raw form as the client last sent it
type SessionResponse struct {
	ID            uuid.UUID            `json:"id"`
	BillNo        string               `json:"bill_no"`
	Bill          entity.RawBillInfo   `json:"bill"`
	PaymentMethod string               `json:"payment_method"`
	Rows          []entity.RawLineItem `json:"rows"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// StartSessionResponse carries the token that addresses the new session
type StartSessionResponse struct {
	Token     string           `json:"token"`
	ExpiresIn int64            `json:"expires_in"`
	Session   *SessionResponse `json:"session"`
}

// ArchiveTokenResponse carries a token for the archive routes
type ArchiveTokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

// LineItemResponse is one validated row formatted as it is printed
type LineItemResponse struct {
	No          int    `json:"no"`
	Description string `json:"description"`
	Weight      string `json:"weight"`
	Rate        string `json:"rate"`
	Amount      string `json:"amount"`
}

// InvoicePreviewResponse is a validated invoice formatted as it is printed
type InvoicePreviewResponse struct {
	BillNo        string             `json:"bill_no"`
	BillDate      string             `json:"bill_date"`
	DueDate       string             `json:"due_date"`
	BillerName    string             `json:"biller_name"`
	ClientBillTo  string             `json:"client_bill_to"`
	ClientAddress string             `json:"client_address"`
	ClientPhone   string             `json:"client_phone"`
	ClientEmail   string             `json:"client_email"`
	PaymentMethod string             `json:"payment_method"`
	Items         []LineItemResponse `json:"items"`
	Subtotal      string             `json:"subtotal"`
	Rounding      string             `json:"rounding"`
	NetPayable    string             `json:"net_payable"`
	Capacity      int                `json:"capacity"`
}

// GeneratedInvoiceResponse is an archive record
type GeneratedInvoiceResponse struct {
	ID            uuid.UUID `json:"id"`
	BillNo        string    `json:"bill_no"`
	BillDate      string    `json:"bill_date"`
	DueDate       string    `json:"due_date"`
	ClientBillTo  string    `json:"client_bill_to"`
	ClientPhone   string    `json:"client_phone"`
	ClientEmail   string    `json:"client_email"`
	PaymentMethod string    `json:"payment_method"`
	ItemCount     int       `json:"item_count"`
	Subtotal      string    `json:"subtotal"`
	Rounding      string    `json:"rounding"`
	NetPayable    string    `json:"net_payable"`
	Filename      string    `json:"filename"`
	HasDocument   bool      `json:"has_document"`
	GeneratedAt   time.Time `json:"generated_at"`
}

// NewSessionResponse converts a form session
func NewSessionResponse(s *entity.FormSession) *SessionResponse {
	return &SessionResponse{
		ID:            s.ID,
		BillNo:        s.BillNo,
		Bill:          s.Bill,
		PaymentMethod: s.PaymentMethod.String(),
		Rows:          s.Rows,
		UpdatedAt:     s.UpdatedAt,
	}
}

// NewInvoicePreviewResponse formats a validated invoice
func NewInvoicePreviewResponse(inv *entity.Invoice, capacity int) *InvoicePreviewResponse {
	return &InvoicePreviewResponse{
		BillNo:        inv.Bill.BillNo,
		BillDate:      inv.Bill.BillDate.Format(entity.DisplayDateLayout),
		DueDate:       inv.Bill.DueDate.Format(entity.DisplayDateLayout),
		BillerName:    inv.Bill.BillerName,
		ClientBillTo:  inv.Bill.ClientBillTo,
		ClientAddress: inv.Bill.ClientAddress,
		ClientPhone:   inv.Bill.ClientPhone,
		ClientEmail:   inv.Bill.ClientEmail,
		PaymentMethod: inv.PaymentMethod.String(),
		Items: lo.Map(inv.Items, func(it entity.LineItem, _ int) LineItemResponse {
			return LineItemResponse{
				No:          it.No,
				Description: it.Description,
				Weight:      money.Plain(it.Weight),
				Rate:        money.Plain(it.Rate),
				Amount:      money.Grouped(it.Amount),
			}
		}),
		Subtotal:   money.Grouped(inv.Totals.Subtotal),
		Rounding:   money.Grouped(inv.Totals.Rounding),
		NetPayable: money.WithSymbol(inv.Totals.NetPayable),
		Capacity:   capacity,
	}
}

// NewGeneratedInvoiceResponse converts an archive record
func NewGeneratedInvoiceResponse(g *entity.GeneratedInvoice) GeneratedInvoiceResponse {
	return GeneratedInvoiceResponse{
		ID:            g.ID,
		BillNo:        g.BillNo,
		BillDate:      g.BillDate.Format(entity.DisplayDateLayout),
		DueDate:       g.DueDate.Format(entity.DisplayDateLayout),
		ClientBillTo:  g.ClientBillTo,
		ClientPhone:   g.ClientPhone,
		ClientEmail:   g.ClientEmail,
		PaymentMethod: g.PaymentMethod.String(),
		ItemCount:     g.ItemCount,
		Subtotal:      money.Grouped(g.Subtotal),
		Rounding:      money.Grouped(g.Rounding),
		NetPayable:    money.WithSymbol(g.NetPayable),
		Filename:      g.Filename,
		HasDocument:   g.HasDocument(),
		GeneratedAt:   g.GeneratedAt,
	}
}
