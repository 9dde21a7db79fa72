package service

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rishabgems/invoice-api/internal/domain/entity"
	"github.com/rishabgems/invoice-api/internal/domain/enum"
	"github.com/rishabgems/invoice-api/pkg/apperror"
	"github.com/rishabgems/invoice-api/pkg/money"
	"github.com/shopspring/decimal"
)

// InputDateLayout is the date format the form sends and pre-fills.
const InputDateLayout = "2006-01-02"

var acceptedDateLayouts = []string{InputDateLayout, entity.DisplayDateLayout}

const (
	msgNo             = "No. must be a positive integer."
	msgDescription    = "Item Description cannot be empty."
	msgWeightNumber   = "Weight must be a number (e.g. 1.25)."
	msgWeightNegative = "Weight must be non-negative."
	msgRateNumber     = "Rate (₹) must be a number (e.g. 45000)."
	msgRateNegative   = "Rate (₹) must be non-negative."
	msgAmountNumber   = "Amount (₹) must be a number (e.g. 56250) or left blank for auto-calc."
	msgAmountNegative = "Amount (₹) must be non-negative."
	msgBillDate       = "Bill Date must be a date (YYYY-MM-DD)."
	msgDueDate        = "Due Date must be a date (YYYY-MM-DD)."
)

var maxLineNo = decimal.NewFromInt(math.MaxInt32)

// InvoiceValidator turns a raw form into a canonical invoice.
type InvoiceValidator struct {
	loc *time.Location
}

// NewInvoiceValidator creates a validator that reads dates in loc.
func NewInvoiceValidator(loc *time.Location) *InvoiceValidator {
	return &InvoiceValidator{loc: loc}
}

// ValidateInput is a snapshot of a form session.
type ValidateInput struct {
	BillNo        string
	Bill          entity.RawBillInfo
	PaymentMethod enum.PaymentMethod
	Rows          []entity.RawLineItem
}

// Validate returns the invoice with items sorted by No., or an *apperror.AppError.
// Blank rows are ignored and rows are numbered by position among the rest.
// Any error rejects the whole form; every message is reported.
func (v *InvoiceValidator) Validate(input *ValidateInput) (*entity.Invoice, error) {
	rows := make([]entity.RawLineItem, 0, len(input.Rows))
	for _, r := range input.Rows {
		if !r.IsBlank() {
			rows = append(rows, r)
		}
	}
	if len(rows) == 0 {
		return nil, apperror.ErrEmptySubmission
	}

	var fieldErrors []apperror.FieldError

	bill, billErrs := v.normalizeBill(input.BillNo, input.Bill)
	fieldErrors = append(fieldErrors, billErrs...)

	items := make([]entity.LineItem, 0, len(rows))
	firstRowForNo := make(map[int]int)
	for i, raw := range rows {
		n := i + 1
		item, errs, noOK := validateRow(raw)
		if noOK {
			if prev, dup := firstRowForNo[item.No]; dup {
				errs = append(errs, fmt.Sprintf("No. %d is already used by row %d.", item.No, prev))
			} else {
				firstRowForNo[item.No] = n
			}
		}
		if len(errs) > 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   "row_" + strconv.Itoa(n),
				Message: fmt.Sprintf("Row %d: %s", n, strings.Join(errs, "; ")),
			})
			continue
		}
		items = append(items, item)
	}

	if len(fieldErrors) > 0 {
		return nil, apperror.NewRowValidationError(fieldErrors)
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].No < items[j].No })

	return &entity.Invoice{
		Bill:          bill,
		PaymentMethod: input.PaymentMethod,
		Items:         items,
		Totals:        entity.ComputeTotals(items),
	}, nil
}

// validateRow checks one non-blank row. noOK reports whether item.No is usable
// even when other fields failed.
func validateRow(raw entity.RawLineItem) (item entity.LineItem, errs []string, noOK bool) {
	if no, err := money.Parse(raw.No); err != nil || !no.IsInteger() || no.Sign() <= 0 || no.GreaterThan(maxLineNo) {
		errs = append(errs, msgNo)
	} else {
		item.No = int(no.IntPart())
		noOK = true
	}

	item.Description = strings.TrimSpace(raw.Description)
	if item.Description == "" {
		errs = append(errs, msgDescription)
	}

	weight, weightErr := money.Parse(raw.Weight)
	switch {
	case weightErr != nil:
		errs = append(errs, msgWeightNumber)
	case weight.IsNegative():
		errs = append(errs, msgWeightNegative)
	}

	rate, rateErr := money.Parse(raw.Rate)
	switch {
	case rateErr != nil:
		errs = append(errs, msgRateNumber)
	case rate.IsNegative():
		errs = append(errs, msgRateNegative)
	}

	var amount decimal.Decimal
	var amountErr error
	if strings.TrimSpace(raw.Amount) == "" {
		if weightErr != nil {
			amountErr = weightErr
		} else if rateErr != nil {
			amountErr = rateErr
		} else {
			amount = weight.Mul(rate)
		}
	} else {
		amount, amountErr = money.Parse(raw.Amount)
	}
	switch {
	case amountErr != nil:
		errs = append(errs, msgAmountNumber)
	case amount.IsNegative():
		errs = append(errs, msgAmountNegative)
	}

	item.Weight = money.Round2(weight)
	item.Rate = money.Round2(rate)
	item.Amount = money.Round2(amount)
	return item, errs, noOK
}

func (v *InvoiceValidator) normalizeBill(billNo string, raw entity.RawBillInfo) (entity.BillInfo, []apperror.FieldError) {
	var errs []apperror.FieldError

	billDate, ok := v.parseDate(raw.BillDate)
	if !ok {
		errs = append(errs, apperror.FieldError{Field: "bill_date", Message: msgBillDate})
	}
	dueDate, ok := v.parseDate(raw.DueDate)
	if !ok {
		errs = append(errs, apperror.FieldError{Field: "due_date", Message: msgDueDate})
	}

	return entity.BillInfo{
		BillNo:        billNo,
		BillDate:      billDate,
		DueDate:       dueDate,
		BillerName:    strings.TrimSpace(raw.BillerName),
		ClientAddress: entity.TruncateAddress(strings.TrimSpace(raw.ClientAddress)),
		ClientPhone:   strings.TrimSpace(raw.ClientPhone),
		ClientEmail:   strings.TrimSpace(raw.ClientEmail),
		ClientBillTo:  strings.TrimSpace(raw.ClientBillTo),
	}, errs
}

func (v *InvoiceValidator) parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range acceptedDateLayouts {
		if t, err := time.ParseInLocation(layout, s, v.loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
