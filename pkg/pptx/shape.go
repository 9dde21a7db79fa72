package pptx

import (
	"github.com/beevik/etree"
)

// Slide is one parsed slide part.
type Slide struct {
	doc *etree.Document
}

// Shapes returns every shape (p:sp) on the slide, including shapes inside groups,
// in document order.
func (s *Slide) Shapes() []*Shape {
	els := s.doc.FindElements("//p:sp")
	shapes := make([]*Shape, 0, len(els))
	for _, el := range els {
		shapes = append(shapes, &Shape{el: el})
	}
	return shapes
}

// Shape returns the first shape with the given name, or nil.
func (s *Slide) Shape(name string) *Shape {
	for _, sh := range s.Shapes() {
		if sh.Name() == name {
			return sh
		}
	}
	return nil
}

// Table returns the table held by the graphic frame with the given name, or nil.
func (s *Slide) Table(name string) *Table {
	for _, frame := range s.doc.FindElements("//p:graphicFrame") {
		if nonVisualName(frame, "p:nvGraphicFramePr/p:cNvPr") != name {
			continue
		}
		if tbl := frame.FindElement("a:graphic/a:graphicData/a:tbl"); tbl != nil {
			return &Table{tbl: tbl}
		}
	}
	return nil
}

func nonVisualName(el *etree.Element, path string) string {
	if c := el.FindElement(path); c != nil {
		return c.SelectAttrValue("name", "")
	}
	return ""
}

// Shape is an auto shape or text box.
type Shape struct {
	el *etree.Element
}

// Name is the shape name shown in PowerPoint's selection pane.
func (sh *Shape) Name() string {
	return nonVisualName(sh.el, "p:nvSpPr/p:cNvPr")
}

// TextFrame returns the shape's text body, creating an empty one if missing.
// A created body goes ahead of p:extLst, which must stay the last child.
func (sh *Shape) TextFrame() *TextFrame {
	body := sh.el.SelectElement("p:txBody")
	if body == nil {
		body = newTextBody("p:txBody")
		if ext := sh.el.SelectElement("p:extLst"); ext != nil {
			sh.el.InsertChildAt(ext.Index(), body)
		} else {
			sh.el.AddChild(body)
		}
	}
	return &TextFrame{body: body}
}

// Table is a DrawingML table (a:tbl).
type Table struct {
	tbl *etree.Element
}

func (t *Table) rows() []*etree.Element {
	return t.tbl.SelectElements("a:tr")
}

// RowCount is the number of rows, header included.
func (t *Table) RowCount() int {
	return len(t.rows())
}

// ColumnCount is the number of grid columns.
func (t *Table) ColumnCount() int {
	if grid := t.tbl.SelectElement("a:tblGrid"); grid != nil {
		return len(grid.SelectElements("a:gridCol"))
	}
	if rows := t.rows(); len(rows) > 0 {
		return len(rows[0].SelectElements("a:tc"))
	}
	return 0
}

// Cell returns the cell at row, col (both 0-based), or nil when out of range.
func (t *Table) Cell(row, col int) *Cell {
	rows := t.rows()
	if row < 0 || row >= len(rows) {
		return nil
	}
	cells := rows[row].SelectElements("a:tc")
	if col < 0 || col >= len(cells) {
		return nil
	}
	return &Cell{tc: cells[col]}
}

// Cell is one table cell.
type Cell struct {
	tc *etree.Element
}

// TextFrame returns the cell's text body, creating it as the first child if missing.
func (c *Cell) TextFrame() *TextFrame {
	body := c.tc.SelectElement("a:txBody")
	if body == nil {
		body = newTextBody("a:txBody")
		c.tc.InsertChildAt(0, body)
	}
	return &TextFrame{body: body}
}

func newTextBody(tag string) *etree.Element {
	body := etree.NewElement(tag)
	body.CreateElement("a:bodyPr")
	body.CreateElement("a:lstStyle")
	body.CreateElement("a:p")
	return body
}
