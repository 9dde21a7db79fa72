package service

import (
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/rishabgems/invoice-api/internal/domain/entity"
	"github.com/rishabgems/invoice-api/internal/domain/enum"
	"github.com/rishabgems/invoice-api/pkg/apperror"
	"github.com/rishabgems/invoice-api/pkg/logger"
	"github.com/rishabgems/invoice-api/pkg/money"
	"github.com/rishabgems/invoice-api/pkg/pptx"
	"github.com/samber/lo"
)

// Shape and table names the invoice template must use.
const (
	LineItemsTable      = "LineItems"
	BillingSummaryTable = "BillingSummary"

	lineItemColumns = 5
	summaryRows     = 4
	summaryColumns  = 2

	checkMark = "✔"
)

var (
	defaultFont = pptx.Font{Name: "Poppins", Size: pptx.Pt(12)}
	labelFont   = pptx.Font{Name: "Poppins", Size: pptx.Pt(12), Bold: lo.ToPtr(true)}
	valueFont   = pptx.Font{Name: "Poppins", Size: pptx.Pt(12), Bold: lo.ToPtr(false)}
)

type textField struct {
	shape string
	label string
	value func(b *entity.BillInfo) string
}

var textFields = []textField{
	{"Bill No", "Bill No: ", func(b *entity.BillInfo) string { return b.BillNo }},
	{"Bill Date", "Bill Date: ", func(b *entity.BillInfo) string { return b.BillDate.Format(entity.DisplayDateLayout) }},
	{"Due Date", "Due Date: ", func(b *entity.BillInfo) string { return b.DueDate.Format(entity.DisplayDateLayout) }},
	{"Biller Name", "Biller Name: ", func(b *entity.BillInfo) string { return b.BillerName }},
	{"Client Bill To", "Bill To: ", func(b *entity.BillInfo) string { return b.ClientBillTo }},
	{"Client Address", "Address: ", func(b *entity.BillInfo) string { return entity.TruncateAddress(b.ClientAddress) }},
	{"Client Phone Number", "Phone: ", func(b *entity.BillInfo) string { return b.ClientPhone }},
	{"Client Email", "Email ID: ", func(b *entity.BillInfo) string { return b.ClientEmail }},
}

// TemplateLayout describes what a template offers.
type TemplateLayout struct {
	// LineItemRows is the number of data rows below the line-item header.
	LineItemRows int
	// MissingShapes lists text and checkbox shapes that will be skipped.
	MissingShapes []string
}

// TemplateFiller writes an invoice into a copy of the presentation template.
type TemplateFiller struct {
	log *logger.Logger
}

// NewTemplateFiller creates a new template filler
func NewTemplateFiller(log *logger.Logger) *TemplateFiller {
	return &TemplateFiller{log: log}
}

type invoiceTables struct {
	items   *pptx.Table
	summary *pptx.Table
}

func (f *TemplateFiller) open(template []byte) (*pptx.Presentation, *pptx.Slide, *invoiceTables, error) {
	p, err := pptx.Open(template)
	if err != nil {
		f.log.Errorw("template is not a readable presentation", "error", err)
		return nil, nil, nil, apperror.NewTemplateIntegrityError("the invoice template is not a valid presentation")
	}
	slide, err := p.Slide(1)
	if err != nil {
		f.log.Errorw("template has no usable first slide", "error", err)
		return nil, nil, nil, apperror.NewTemplateIntegrityError("the invoice template has no first slide")
	}

	tables := &invoiceTables{
		items:   slide.Table(LineItemsTable),
		summary: slide.Table(BillingSummaryTable),
	}
	if tables.items == nil || tables.summary == nil {
		return nil, nil, nil, apperror.NewTemplateIntegrityError("Could not find LineItems or BillingSummary table in template.")
	}
	if tables.items.ColumnCount() < lineItemColumns {
		return nil, nil, nil, apperror.NewTemplateIntegrityError("the LineItems table needs at least 5 columns")
	}
	if tables.summary.RowCount() < summaryRows || tables.summary.ColumnCount() < summaryColumns {
		return nil, nil, nil, apperror.NewTemplateIntegrityError("the BillingSummary table needs at least 4 rows and 2 columns")
	}
	return p, slide, tables, nil
}

// Inspect checks that template has every required region and reports its capacity.
func (f *TemplateFiller) Inspect(template []byte) (*TemplateLayout, error) {
	_, slide, tables, err := f.open(template)
	if err != nil {
		return nil, err
	}

	layout := &TemplateLayout{LineItemRows: max(tables.items.RowCount()-1, 0)}
	for _, tf := range textFields {
		if slide.Shape(tf.shape) == nil {
			layout.MissingShapes = append(layout.MissingShapes, tf.shape)
		}
	}
	for _, m := range enum.PaymentMethods() {
		if slide.Shape(m.CheckboxShape()) == nil {
			layout.MissingShapes = append(layout.MissingShapes, m.CheckboxShape())
		}
	}
	return layout, nil
}

// Fill returns the template with inv written into it. template is not modified.
// Equal inputs produce byte-identical output.
func (f *TemplateFiller) Fill(template []byte, inv *entity.Invoice) ([]byte, error) {
	p, slide, tables, err := f.open(template)
	if err != nil {
		return nil, err
	}

	dataRows := max(tables.items.RowCount()-1, 0)
	if len(inv.Items) > dataRows {
		return nil, apperror.NewTooManyItemsError(dataRows)
	}

	fillTextFields(slide, &inv.Bill)
	fillPaymentMethod(slide, inv.PaymentMethod)

	base := sampleFont(tables.items)
	fillLineItems(tables.items, inv.Items, base)
	fillSummary(tables.summary, inv.Totals, base)

	out, err := p.Bytes()
	if err != nil {
		f.log.Errorw("failed to serialize invoice", "bill_no", inv.Bill.BillNo, "error", errors.WithStack(err))
		return nil, apperror.ErrSerializationFail
	}
	return out, nil
}

func fillTextFields(slide *pptx.Slide, bill *entity.BillInfo) {
	byName := lo.KeyBy(textFields, func(tf textField) string { return tf.shape })
	for _, shape := range slide.Shapes() {
		field, ok := byName[shape.Name()]
		if !ok {
			continue
		}
		frame := shape.TextFrame()
		para := frame.Clear()
		para.AddRun(field.label, labelFont)
		para.AddRun(field.value(bill), valueFont)
		frame.SetVerticalAnchor(pptx.AnchorMiddle)
	}
}

func fillPaymentMethod(slide *pptx.Slide, selected enum.PaymentMethod) {
	checkboxes := lo.Map(enum.PaymentMethods(), func(m enum.PaymentMethod, _ int) string { return m.CheckboxShape() })
	for _, shape := range slide.Shapes() {
		name := shape.Name()
		if !lo.Contains(checkboxes, name) {
			continue
		}
		frame := shape.TextFrame()
		if name != selected.CheckboxShape() {
			frame.SetText("")
			continue
		}
		para := frame.Clear()
		para.AddRun(checkMark, defaultFont)
		para.SetAlign(pptx.AlignCenter)
		frame.SetVerticalAnchor(pptx.AnchorMiddle)
	}
}

// sampleFont reads the font of the first data cell, or the header cell when the
// table has no data rows, falling back to Poppins 12pt.
func sampleFont(t *pptx.Table) pptx.Font {
	row := lo.Ternary(t.RowCount() > 1, 1, 0)
	font := defaultFont

	cell := t.Cell(row, 0)
	if cell == nil {
		return font
	}
	paras := cell.TextFrame().Paragraphs()
	if len(paras) == 0 {
		return font
	}
	runs := paras[0].Runs()
	if len(runs) == 0 {
		return font
	}
	sample := runs[0].Font()
	if sample.Name != "" {
		font.Name = sample.Name
	}
	if sample.Size > 0 {
		font.Size = sample.Size
	}
	return font
}

func writeCell(cell *pptx.Cell, text string, font pptx.Font) {
	if cell == nil {
		return
	}
	para := cell.TextFrame().Clear()
	para.AddRun(text, font)
	para.SetAlign(pptx.AlignCenter)
}

func fillLineItems(t *pptx.Table, items []entity.LineItem, font pptx.Font) {
	cols := t.ColumnCount()
	for r := 1; r < t.RowCount(); r++ {
		for c := 0; c < cols; c++ {
			writeCell(t.Cell(r, c), "", font)
		}
	}

	for i, it := range items {
		values := []string{
			strconv.Itoa(it.No),
			it.Description,
			money.Plain(it.Weight),
			money.Plain(it.Rate),
			money.Grouped(it.Amount),
		}
		for c, v := range values {
			writeCell(t.Cell(i+1, c), v, font)
		}
	}
}

func fillSummary(t *pptx.Table, totals entity.InvoiceTotals, font pptx.Font) {
	writeCell(t.Cell(1, 1), money.Grouped(totals.Subtotal), font)
	writeCell(t.Cell(2, 1), money.Grouped(totals.Rounding), font)
	writeCell(t.Cell(3, 1), money.WithSymbol(totals.NetPayable), font)
}
