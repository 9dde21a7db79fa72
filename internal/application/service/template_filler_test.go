package service

import (
	"bytes"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/rishabgems/invoice-api/internal/domain/entity"
	"github.com/rishabgems/invoice-api/internal/domain/enum"
	"github.com/rishabgems/invoice-api/pkg/apperror"
	"github.com/rishabgems/invoice-api/pkg/logger"
	"github.com/rishabgems/invoice-api/pkg/pptx"
	"github.com/rishabgems/invoice-api/pkg/pptx/pptxtest"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInvoice(items ...entity.LineItem) *entity.Invoice {
	if len(items) == 0 {
		items = []entity.LineItem{{
			No:          1,
			Description: "Ring",
			Weight:      decimal.RequireFromString("2.50"),
			Rate:        decimal.RequireFromString("50000.00"),
			Amount:      decimal.RequireFromString("125000.00"),
		}}
	}
	return &entity.Invoice{
		Bill: entity.BillInfo{
			BillNo:        "RG-20240305-101500",
			BillDate:      time.Date(2024, 3, 5, 0, 0, 0, 0, kolkata),
			DueDate:       time.Date(2024, 3, 12, 0, 0, 0, 0, kolkata),
			BillerName:    "Rishab Gems",
			ClientAddress: "12 MG Road",
			ClientPhone:   "9876543210",
			ClientEmail:   "asha@example.com",
			ClientBillTo:  "Asha Rao",
		},
		PaymentMethod: enum.PaymentMethodUPI,
		Items:         items,
		Totals:        entity.ComputeTotals(items),
	}
}

func fillSlide(t *testing.T, template []byte, inv *entity.Invoice) *pptx.Slide {
	t.Helper()
	out, err := NewTemplateFiller(logger.NewNop()).Fill(template, inv)
	require.NoError(t, err)

	p, err := pptx.Open(out)
	require.NoError(t, err)
	slide, err := p.Slide(1)
	require.NoError(t, err)
	return slide
}

func cellText(t *pptx.Table, r, c int) string {
	return t.Cell(r, c).TextFrame().Text()
}

func TestFill_TextFields(t *testing.T) {
	slide := fillSlide(t, pptxtest.InvoiceTemplate(5), sampleInvoice())

	want := map[string]string{
		"Bill No":             "Bill No: RG-20240305-101500",
		"Bill Date":           "Bill Date: 05-03-2024",
		"Due Date":            "Due Date: 12-03-2024",
		"Biller Name":         "Biller Name: Rishab Gems",
		"Client Bill To":      "Bill To: Asha Rao",
		"Client Address":      "Address: 12 MG Road",
		"Client Phone Number": "Phone: 9876543210",
		"Client Email":        "Email ID: asha@example.com",
	}
	for name, text := range want {
		frame := slide.Shape(name).TextFrame()
		assert.Equal(t, text, frame.Text(), name)
		assert.Equal(t, pptx.AnchorMiddle, frame.VerticalAnchor(), name)
	}

	runs := slide.Shape("Bill No").TextFrame().Paragraphs()[0].Runs()
	require.Len(t, runs, 2)
	assert.Equal(t, "Poppins", runs[0].Font().Name)
	assert.Equal(t, pptx.Pt(12), runs[0].Font().Size)
	assert.True(t, *runs[0].Font().Bold)
	assert.False(t, *runs[1].Font().Bold)
}

func TestFill_PaymentCheckbox(t *testing.T) {
	slide := fillSlide(t, pptxtest.InvoiceTemplate(5), sampleInvoice())

	for _, m := range enum.PaymentMethods() {
		frame := slide.Shape(m.CheckboxShape()).TextFrame()
		if m == enum.PaymentMethodUPI {
			assert.Equal(t, "✔", frame.Text())
			assert.Equal(t, pptx.AlignCenter, frame.Paragraphs()[0].Align())
			continue
		}
		assert.Equal(t, "", frame.Text(), m.String())
	}
}

func TestFill_LineItemsAndSummary(t *testing.T) {
	slide := fillSlide(t, pptxtest.InvoiceTemplate(3), sampleInvoice())

	items := slide.Table(LineItemsTable)
	assert.Equal(t, "No.", cellText(items, 0, 0), "header untouched")
	assert.Equal(t, []string{"1", "Ring", "2.50", "50000.00", "125,000.00"}, []string{
		cellText(items, 1, 0), cellText(items, 1, 1), cellText(items, 1, 2), cellText(items, 1, 3), cellText(items, 1, 4),
	})
	for r := 2; r < items.RowCount(); r++ {
		for c := 0; c < items.ColumnCount(); c++ {
			assert.Equal(t, "", cellText(items, r, c), "placeholder at %d,%d is cleared", r, c)
		}
	}

	summary := slide.Table(BillingSummaryTable)
	assert.Equal(t, "Sub Total", cellText(summary, 1, 0))
	assert.Equal(t, "125,000.00", cellText(summary, 1, 1))
	assert.Equal(t, "0.00", cellText(summary, 2, 1))
	assert.Equal(t, "₹ 125,000.00", cellText(summary, 3, 1))
}

func TestFill_UsesTableFont(t *testing.T) {
	slide := fillSlide(t, pptxtest.InvoiceTemplate(2), sampleInvoice())

	para := slide.Table(LineItemsTable).Cell(1, 1).TextFrame().Paragraphs()[0]
	assert.Equal(t, pptx.AlignCenter, para.Align())
	font := para.Runs()[0].Font()
	assert.Equal(t, "Arial", font.Name)
	assert.Equal(t, pptx.Pt(10), font.Size)

	summaryFont := slide.Table(BillingSummaryTable).Cell(3, 1).TextFrame().Paragraphs()[0].Runs()[0].Font()
	assert.Equal(t, "Arial", summaryFont.Name)
}

func TestFill_FallbackFont(t *testing.T) {
	deck := pptxtest.InvoiceDeck(2)
	deck.Tables[0].CellFont = ""
	deck.Tables[0].CellSize = 0

	slide := fillSlide(t, pptxtest.Build(deck), sampleInvoice())
	font := slide.Table(LineItemsTable).Cell(1, 0).TextFrame().Paragraphs()[0].Runs()[0].Font()
	assert.Equal(t, "Poppins", font.Name)
	assert.Equal(t, pptx.Pt(12), font.Size)
}

func TestFill_NegativeRounding(t *testing.T) {
	inv := sampleInvoice(entity.LineItem{
		No: 1, Description: "Ring",
		Weight: decimal.NewFromInt(1), Rate: decimal.NewFromInt(1),
		Amount: decimal.RequireFromString("125000.40"),
	})
	slide := fillSlide(t, pptxtest.InvoiceTemplate(2), inv)

	summary := slide.Table(BillingSummaryTable)
	assert.Equal(t, "125,000.40", cellText(summary, 1, 1))
	assert.Equal(t, "-0.40", cellText(summary, 2, 1))
	assert.Equal(t, "₹ 125,000.00", cellText(summary, 3, 1))
}

func TestFill_ByteIdentical(t *testing.T) {
	tmpl := pptxtest.InvoiceTemplate(4)
	orig := bytes.Clone(tmpl)
	filler := NewTemplateFiller(logger.NewNop())

	a, err := filler.Fill(tmpl, sampleInvoice())
	require.NoError(t, err)
	b, err := filler.Fill(tmpl, sampleInvoice())
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, orig, tmpl, "template bytes are not modified")
}

func TestFill_ExactCapacity(t *testing.T) {
	items := lo.Times(3, func(i int) entity.LineItem {
		return entity.LineItem{No: i + 1, Description: "Item", Amount: decimal.NewFromInt(10)}
	})
	slide := fillSlide(t, pptxtest.InvoiceTemplate(3), sampleInvoice(items...))
	assert.Equal(t, "3", cellText(slide.Table(LineItemsTable), 3, 0))
}

func TestFill_TooManyItems(t *testing.T) {
	items := lo.Times(3, func(i int) entity.LineItem {
		return entity.LineItem{No: i + 1, Description: "Item", Amount: decimal.NewFromInt(10)}
	})
	_, err := NewTemplateFiller(logger.NewNop()).Fill(pptxtest.InvoiceTemplate(2), sampleInvoice(items...))

	appErr := apperror.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.Code)
	assert.Equal(t, "Too many line items: the invoice template holds at most 2 rows.", appErr.Message)
}

func TestFill_MissingTable(t *testing.T) {
	deck := pptxtest.InvoiceDeck(2)
	deck.Tables = deck.Tables[:1]

	_, err := NewTemplateFiller(logger.NewNop()).Fill(pptxtest.Build(deck), sampleInvoice())
	appErr := apperror.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusInternalServerError, appErr.Code)
	assert.True(t, strings.HasPrefix(appErr.Message, "Unexpected error during invoice generation: "))
	assert.Contains(t, appErr.Message, "Could not find LineItems or BillingSummary table in template.")
}

func TestFill_NotAPresentation(t *testing.T) {
	_, err := NewTemplateFiller(logger.NewNop()).Fill([]byte("not a zip"), sampleInvoice())
	appErr := apperror.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusInternalServerError, appErr.Code)
}

func TestFill_MissingShapeSkipped(t *testing.T) {
	deck := pptxtest.InvoiceDeck(2)
	deck.Shapes = lo.Reject(deck.Shapes, func(s pptxtest.Shape, _ int) bool { return s.Name == "Client Email" })
	tmpl := pptxtest.Build(deck)

	layout, err := NewTemplateFiller(logger.NewNop()).Inspect(tmpl)
	require.NoError(t, err)
	assert.Equal(t, 2, layout.LineItemRows)
	assert.Equal(t, []string{"Client Email"}, layout.MissingShapes)

	slide := fillSlide(t, tmpl, sampleInvoice())
	assert.Nil(t, slide.Shape("Client Email"))
	assert.Equal(t, "Bill To: Asha Rao", slide.Shape("Client Bill To").TextFrame().Text())
}

func TestInspect_FullTemplate(t *testing.T) {
	layout, err := NewTemplateFiller(logger.NewNop()).Inspect(pptxtest.InvoiceTemplate(12))
	require.NoError(t, err)
	assert.Equal(t, 12, layout.LineItemRows)
	assert.Empty(t, layout.MissingShapes)
}
