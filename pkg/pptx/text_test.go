package pptx_test

import (
	"testing"

	"github.com/rishabgems/invoice-api/pkg/pptx"
	"github.com/rishabgems/invoice-api/pkg/pptx/pptxtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextFrame_SetTextReplacesAllParagraphs(t *testing.T) {
	s := openSlide(t, pptxtest.InvoiceTemplate(1))
	tf := s.Shape("Bill Date").TextFrame()

	tf.Clear().AddRun("first", pptx.Font{})
	tf.SetText("second")

	require.Len(t, tf.Paragraphs(), 1)
	assert.Equal(t, "second", tf.Text())
}

func TestTextFrame_SetTextEmpty(t *testing.T) {
	s := openSlide(t, pptxtest.InvoiceTemplate(1))
	tf := s.Shape("UPI Check").TextFrame()

	tf.SetText("")

	require.Len(t, tf.Paragraphs(), 1)
	assert.Empty(t, tf.Paragraphs()[0].Runs())
	assert.Equal(t, "", tf.Text())
}

func TestTextFrame_Anchor(t *testing.T) {
	s := openSlide(t, pptxtest.InvoiceTemplate(1))
	tf := s.Shape("Bill No").TextFrame()

	assert.Equal(t, pptx.Anchor(""), tf.VerticalAnchor())
	tf.SetVerticalAnchor(pptx.AnchorMiddle)
	assert.Equal(t, pptx.AnchorMiddle, tf.VerticalAnchor())
}

func TestParagraph_Align(t *testing.T) {
	s := openSlide(t, pptxtest.InvoiceTemplate(1))
	p := s.Table("LineItems").Cell(1, 2).TextFrame().Clear()

	p.SetAlign(pptx.AlignCenter)
	p.AddRun("1.25", pptx.Font{Size: pptx.Pt(12)})

	assert.Equal(t, pptx.AlignCenter, p.Align())
	assert.Equal(t, "1.25", p.Text())
}

func TestRun_SetFontKeepsUnsetFields(t *testing.T) {
	s := openSlide(t, pptxtest.InvoiceTemplate(1))
	run := s.Table("LineItems").Cell(1, 0).TextFrame().Paragraphs()[0].Runs()[0]

	run.SetFont(pptx.Font{Size: pptx.Pt(14)})

	f := run.Font()
	assert.Equal(t, "Arial", f.Name)
	assert.Equal(t, 14.0, f.Size.Points())
}

func TestPt(t *testing.T) {
	assert.Equal(t, pptx.FontSize(1200), pptx.Pt(12))
	assert.Equal(t, pptx.FontSize(1050), pptx.Pt(10.5))
}
