// Package pptxtest builds small .pptx packages for tests.
package pptxtest

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/klauspost/compress/zip"
)

const (
	nsP = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsA = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

// Modified is the timestamp written on every zip entry.
var Modified = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

// Shape is a named text shape. NoTextBody leaves out p:txBody and ExtLst
// closes the shape with an empty p:extLst.
type Shape struct {
	Name       string
	Text       string
	NoTextBody bool
	ExtLst     bool
}

// Table is a named graphic frame holding a table. Cells is indexed [row][col].
// CellFont, when set, is written on every cell run.
type Table struct {
	Name     string
	Cells    [][]string
	CellFont string
	CellSize int
}

// Deck describes a single-slide presentation.
type Deck struct {
	Shapes []Shape
	Tables []Table
}

// Build returns the .pptx bytes for d. Output is deterministic.
func Build(d Deck) []byte {
	return BuildOrdered([]Deck{d}, []int{1})
}

// BuildOrdered writes decks[i] as ppt/slides/slide<i+1>.xml and lists the
// slides in presentation order by those part numbers, so order {2, 1}
// makes slide2.xml the first slide shown.
func BuildOrdered(decks []Deck, order []int) []byte {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	write := func(name string, data []byte) {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate, Modified: Modified})
		if err != nil {
			panic(err)
		}
		if _, err := w.Write(data); err != nil {
			panic(err)
		}
	}

	write("[Content_Types].xml", []byte(contentTypes(len(decks))))
	write("_rels/.rels", []byte(rootRels))
	write("ppt/presentation.xml", []byte(presentation(order)))
	write("ppt/_rels/presentation.xml.rels", []byte(presentationRels(len(decks))))
	for i, d := range decks {
		write(fmt.Sprintf("ppt/slides/slide%d.xml", i+1), slideXML(d))
	}

	if err := zw.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// InvoiceTemplate returns a deck with every shape and table an invoice needs.
// The line-item table has one header row plus dataRows data rows, set in
// Arial 10pt so font sampling can be observed.
func InvoiceTemplate(dataRows int) []byte {
	return Build(InvoiceDeck(dataRows))
}

// InvoiceDeck is the Deck behind InvoiceTemplate, for tests that need to alter it.
func InvoiceDeck(dataRows int) Deck {
	var d Deck
	for _, name := range []string{
		"Bill No", "Bill Date", "Due Date", "Biller Name",
		"Client Bill To", "Client Address", "Client Phone Number", "Client Email",
		"Cash Check", "NEFT Check", "UPI Check", "Cheque Check",
	} {
		d.Shapes = append(d.Shapes, Shape{Name: name, Text: "placeholder"})
	}

	items := [][]string{{"No.", "Item Description", "Weight", "Rate (₹)", "Amount (₹)"}}
	for i := 0; i < dataRows; i++ {
		items = append(items, []string{"x", "x", "x", "x", "x"})
	}
	d.Tables = append(d.Tables,
		Table{Name: "LineItems", Cells: items, CellFont: "Arial", CellSize: 1000},
		Table{Name: "BillingSummary", Cells: [][]string{
			{"Summary", ""},
			{"Sub Total", "0.00"},
			{"Rounding", "0.00"},
			{"Net Payable", "₹ 0.00"},
		}},
	)
	return d
}

func slideXML(d Deck) []byte {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)

	sld := doc.CreateElement("p:sld")
	sld.CreateAttr("xmlns:a", nsA)
	sld.CreateAttr("xmlns:r", nsR)
	sld.CreateAttr("xmlns:p", nsP)

	tree := sld.CreateElement("p:cSld").CreateElement("p:spTree")
	grp := tree.CreateElement("p:nvGrpSpPr")
	nv := grp.CreateElement("p:cNvPr")
	nv.CreateAttr("id", "1")
	nv.CreateAttr("name", "")
	grp.CreateElement("p:cNvGrpSpPr")
	grp.CreateElement("p:nvPr")
	tree.CreateElement("p:grpSpPr")

	id := 2
	for _, s := range d.Shapes {
		sp := tree.CreateElement("p:sp")
		nvSp := sp.CreateElement("p:nvSpPr")
		c := nvSp.CreateElement("p:cNvPr")
		c.CreateAttr("id", strconv.Itoa(id))
		c.CreateAttr("name", s.Name)
		nvSp.CreateElement("p:cNvSpPr")
		nvSp.CreateElement("p:nvPr")
		sp.CreateElement("p:spPr")
		if !s.NoTextBody {
			textBody(sp, "p:txBody", s.Text, "", 0)
		}
		if s.ExtLst {
			sp.CreateElement("p:extLst")
		}
		id++
	}

	for _, t := range d.Tables {
		frame := tree.CreateElement("p:graphicFrame")
		nvFr := frame.CreateElement("p:nvGraphicFramePr")
		c := nvFr.CreateElement("p:cNvPr")
		c.CreateAttr("id", strconv.Itoa(id))
		c.CreateAttr("name", t.Name)
		nvFr.CreateElement("p:cNvGraphicFramePr")
		nvFr.CreateElement("p:nvPr")
		frame.CreateElement("p:xfrm")

		data := frame.CreateElement("a:graphic").CreateElement("a:graphicData")
		data.CreateAttr("uri", "http://schemas.openxmlformats.org/drawingml/2006/table")
		tbl := data.CreateElement("a:tbl")
		tbl.CreateElement("a:tblPr")
		grid := tbl.CreateElement("a:tblGrid")
		cols := 0
		if len(t.Cells) > 0 {
			cols = len(t.Cells[0])
		}
		for i := 0; i < cols; i++ {
			grid.CreateElement("a:gridCol").CreateAttr("w", "1000000")
		}
		for _, row := range t.Cells {
			tr := tbl.CreateElement("a:tr")
			tr.CreateAttr("h", "370840")
			for _, text := range row {
				tc := tr.CreateElement("a:tc")
				textBody(tc, "a:txBody", text, t.CellFont, t.CellSize)
				tc.CreateElement("a:tcPr")
			}
		}
		id++
	}

	doc.Indent(2)
	b, err := doc.WriteToBytes()
	if err != nil {
		panic(err)
	}
	return b
}

func textBody(parent *etree.Element, tag, text, font string, size int) {
	body := parent.CreateElement(tag)
	body.CreateElement("a:bodyPr")
	body.CreateElement("a:lstStyle")
	p := body.CreateElement("a:p")
	if text != "" {
		r := p.CreateElement("a:r")
		rPr := r.CreateElement("a:rPr")
		rPr.CreateAttr("lang", "en-US")
		if size > 0 {
			rPr.CreateAttr("sz", strconv.Itoa(size))
		}
		if font != "" {
			rPr.CreateElement("a:latin").CreateAttr("typeface", font)
		}
		r.CreateElement("a:t").SetText(text)
	}
	p.CreateElement("a:endParaRPr").CreateAttr("lang", "en-US")
}

func contentTypes(slides int) string {
	var overrides strings.Builder
	for i := 1; i <= slides; i++ {
		fmt.Fprintf(&overrides, `<Override PartName="/ppt/slides/slide%d.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slide+xml"/>`, i)
	}
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>` + overrides.String() + `</Types>`
}

const rootRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="ppt/presentation.xml"/></Relationships>`

func presentation(order []int) string {
	var ids strings.Builder
	for i, n := range order {
		fmt.Fprintf(&ids, `<p:sldId id="%d" r:id="rId%d"/>`, 256+i, n+1)
	}
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:presentation xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"><p:sldIdLst>` + ids.String() + `</p:sldIdLst><p:sldSz cx="9144000" cy="6858000"/><p:notesSz cx="6858000" cy="9144000"/></p:presentation>`
}

func presentationRels(slides int) string {
	var rels strings.Builder
	for i := 1; i <= slides; i++ {
		fmt.Fprintf(&rels, `<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide%d.xml"/>`, i+1, i)
	}
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` + rels.String() + `</Relationships>`
}
