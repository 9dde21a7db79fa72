package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/rishabgems/invoice-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// GeneratedInvoice records one successfully generated document.
type GeneratedInvoice struct {
	ID            uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	BillNo        string             `gorm:"size:64;not null;index" json:"bill_no"`
	SessionID     uuid.UUID          `gorm:"type:uuid;index" json:"session_id"`
	BillDate      time.Time          `gorm:"type:date" json:"bill_date"`
	DueDate       time.Time          `gorm:"type:date" json:"due_date"`
	BillerName    string             `gorm:"size:255" json:"biller_name"`
	ClientBillTo  string             `gorm:"size:255;index" json:"client_bill_to"`
	ClientPhone   string             `gorm:"size:64" json:"client_phone"`
	ClientEmail   string             `gorm:"size:255" json:"client_email"`
	ClientAddress string             `gorm:"size:65" json:"client_address"`
	PaymentMethod enum.PaymentMethod `gorm:"type:smallint;not null;default:0" json:"payment_method"`
	ItemCount     int                `gorm:"not null" json:"item_count"`
	Subtotal      decimal.Decimal    `gorm:"type:numeric(16,2);not null" json:"subtotal"`
	Rounding      decimal.Decimal    `gorm:"type:numeric(16,2);not null" json:"rounding"`
	NetPayable    decimal.Decimal    `gorm:"type:numeric(16,2);not null" json:"net_payable"`
	Filename      string             `gorm:"size:512;not null" json:"filename"`
	StorageDriver string             `gorm:"size:16" json:"storage_driver"`
	StorageKey    string             `gorm:"size:512" json:"storage_key,omitempty"`
	GeneratedAt   time.Time          `gorm:"not null;index" json:"generated_at"`
}

// TableName returns the table name for GeneratedInvoice
func (GeneratedInvoice) TableName() string {
	return "generated_invoices"
}

// HasDocument reports whether a copy of the document was stored.
func (g *GeneratedInvoice) HasDocument() bool {
	return g.StorageKey != ""
}
