package pptx

import (
	"math"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/samber/lo"
)

// Align is a paragraph's horizontal alignment (a:pPr/@algn).
type Align string

const (
	AlignLeft   Align = "l"
	AlignCenter Align = "ctr"
	AlignRight  Align = "r"
)

// Anchor is a text body's vertical anchor (a:bodyPr/@anchor).
type Anchor string

const (
	AnchorTop    Anchor = "t"
	AnchorMiddle Anchor = "ctr"
	AnchorBottom Anchor = "b"
)

// FontSize is measured in hundredths of a point, as stored in a:rPr/@sz.
type FontSize int

// Pt converts points to a FontSize.
func Pt(points float64) FontSize {
	return FontSize(math.Round(points * 100))
}

// Points converts back to points.
func (s FontSize) Points() float64 {
	return float64(s) / 100
}

// Font holds the run properties this package reads and writes.
// Zero fields are left untouched by SetFont.
type Font struct {
	Name string
	Size FontSize
	Bold *bool
}

// TextFrame is a text body (p:txBody or a:txBody).
type TextFrame struct {
	body *etree.Element
}

// Paragraphs returns the paragraphs in order.
func (tf *TextFrame) Paragraphs() []*Paragraph {
	els := tf.body.SelectElements("a:p")
	ps := make([]*Paragraph, 0, len(els))
	for _, el := range els {
		ps = append(ps, &Paragraph{el: el})
	}
	return ps
}

// Text joins the paragraphs' text with newlines.
func (tf *TextFrame) Text() string {
	return strings.Join(lo.Map(tf.Paragraphs(), func(p *Paragraph, _ int) string {
		return p.Text()
	}), "\n")
}

// Clear removes every paragraph but the first and empties that one, keeping its
// paragraph properties. The remaining paragraph is returned.
func (tf *TextFrame) Clear() *Paragraph {
	ps := tf.body.SelectElements("a:p")
	if len(ps) == 0 {
		return &Paragraph{el: tf.body.CreateElement("a:p")}
	}
	for _, p := range ps[1:] {
		tf.body.RemoveChild(p)
	}
	first := &Paragraph{el: ps[0]}
	first.Clear()
	return first
}

// SetText replaces all text with a single unformatted run.
// An empty string leaves one empty paragraph.
func (tf *TextFrame) SetText(text string) *Paragraph {
	p := tf.Clear()
	if text != "" {
		p.AddRun(text, Font{})
	}
	return p
}

// SetVerticalAnchor sets where the text sits vertically inside the shape.
func (tf *TextFrame) SetVerticalAnchor(a Anchor) {
	bodyPr := tf.body.SelectElement("a:bodyPr")
	if bodyPr == nil {
		bodyPr = etree.NewElement("a:bodyPr")
		tf.body.InsertChildAt(0, bodyPr)
	}
	bodyPr.CreateAttr("anchor", string(a))
}

// VerticalAnchor returns the anchor, or "" when inherited.
func (tf *TextFrame) VerticalAnchor() Anchor {
	if bodyPr := tf.body.SelectElement("a:bodyPr"); bodyPr != nil {
		return Anchor(bodyPr.SelectAttrValue("anchor", ""))
	}
	return ""
}

// Paragraph is an a:p element.
type Paragraph struct {
	el *etree.Element
}

// Clear removes runs, line breaks and fields.
func (p *Paragraph) Clear() {
	for _, c := range p.el.ChildElements() {
		if c.Space != "a" {
			continue
		}
		switch c.Tag {
		case "r", "br", "fld":
			p.el.RemoveChild(c)
		}
	}
}

// AddRun appends a run with the given text and font. The run is placed before
// a:endParaRPr so the paragraph stays schema-valid.
func (p *Paragraph) AddRun(text string, f Font) *Run {
	r := etree.NewElement("a:r")
	r.CreateElement("a:rPr").CreateAttr("lang", "en-US")
	r.CreateElement("a:t").SetText(text)

	if end := p.el.SelectElement("a:endParaRPr"); end != nil {
		p.el.InsertChildAt(end.Index(), r)
	} else {
		p.el.AddChild(r)
	}

	run := &Run{el: r}
	run.SetFont(f)
	return run
}

// Runs returns the paragraph's runs in order.
func (p *Paragraph) Runs() []*Run {
	els := p.el.SelectElements("a:r")
	runs := make([]*Run, 0, len(els))
	for _, el := range els {
		runs = append(runs, &Run{el: el})
	}
	return runs
}

// Text concatenates the runs' text.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs() {
		sb.WriteString(r.Text())
	}
	return sb.String()
}

// SetAlign sets horizontal alignment.
func (p *Paragraph) SetAlign(a Align) {
	pPr := p.el.SelectElement("a:pPr")
	if pPr == nil {
		pPr = etree.NewElement("a:pPr")
		p.el.InsertChildAt(0, pPr)
	}
	pPr.CreateAttr("algn", string(a))
}

// Align returns the alignment, or "" when inherited.
func (p *Paragraph) Align() Align {
	if pPr := p.el.SelectElement("a:pPr"); pPr != nil {
		return Align(pPr.SelectAttrValue("algn", ""))
	}
	return ""
}

// Run is an a:r element.
type Run struct {
	el *etree.Element
}

// Text returns the run text.
func (r *Run) Text() string {
	if t := r.el.SelectElement("a:t"); t != nil {
		return t.Text()
	}
	return ""
}

// Font returns the explicitly set run properties. Inherited values are not resolved.
func (r *Run) Font() Font {
	var f Font
	rPr := r.el.SelectElement("a:rPr")
	if rPr == nil {
		return f
	}
	if latin := rPr.SelectElement("a:latin"); latin != nil {
		f.Name = latin.SelectAttrValue("typeface", "")
	}
	if sz, err := strconv.Atoi(rPr.SelectAttrValue("sz", "")); err == nil {
		f.Size = FontSize(sz)
	}
	if b := rPr.SelectAttr("b"); b != nil {
		f.Bold = lo.ToPtr(b.Value == "1" || b.Value == "true")
	}
	return f
}

// SetFont writes the non-zero fields of f into the run properties.
func (r *Run) SetFont(f Font) {
	rPr := r.el.SelectElement("a:rPr")
	if rPr == nil {
		rPr = etree.NewElement("a:rPr")
		r.el.InsertChildAt(0, rPr)
	}
	if f.Size > 0 {
		rPr.CreateAttr("sz", strconv.Itoa(int(f.Size)))
	}
	if f.Bold != nil {
		rPr.CreateAttr("b", lo.Ternary(*f.Bold, "1", "0"))
	}
	if f.Name != "" {
		latin := rPr.SelectElement("a:latin")
		if latin == nil {
			latin = rPr.CreateElement("a:latin")
		}
		latin.CreateAttr("typeface", f.Name)
	}
}
