// Package pptx edits the slides of an existing PowerPoint (.pptx) document in memory.
//
// It does not create presentations. It opens a template, lets callers find named
// shapes and tables on a slide, rewrite their text, and serializes the result back
// into a package whose untouched parts are copied byte for byte.
package pptx

import (
	"bytes"
	"io"
	"path"
	"strings"

	"github.com/beevik/etree"
	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/zip"
)

// MIMEType is the media type of a .pptx document.
const MIMEType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

const (
	relTypeOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	defaultMainPart       = "ppt/presentation.xml"
)

var (
	// ErrPartNotFound is returned when a requested package part does not exist.
	ErrPartNotFound = errors.New("pptx: part not found")
	// ErrMalformed is returned when the package or one of its XML parts cannot be read.
	ErrMalformed = errors.New("pptx: malformed package")
)

type part struct {
	header zip.FileHeader
	data   []byte
}

// Presentation is an opened, in-memory copy of a .pptx package.
// It is not safe for concurrent use; open one per request.
type Presentation struct {
	parts  []*part
	index  map[string]*part
	slides map[string]*Slide
}

// Open reads a .pptx package from data. data is not retained or modified.
func Open(data []byte) (*Presentation, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "pptx: open package"), ErrMalformed)
	}

	p := &Presentation{
		index:  make(map[string]*part, len(zr.File)),
		slides: make(map[string]*Slide),
	}
	for _, f := range zr.File {
		b, err := readZipFile(f)
		if err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "pptx: read part %s", f.Name), ErrMalformed)
		}
		pt := &part{header: f.FileHeader, data: b}
		p.parts = append(p.parts, pt)
		p.index[f.Name] = pt
	}
	return p, nil
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// Slide returns the n-th slide (1-based) in presentation order, as listed by
// the slide id list of the main part. Repeated calls return the same *Slide,
// so edits accumulate until Bytes is called.
func (p *Presentation) Slide(n int) (*Slide, error) {
	name, err := p.slidePartName(n)
	if err != nil {
		return nil, err
	}
	if s, ok := p.slides[name]; ok {
		return s, nil
	}

	pt, ok := p.index[name]
	if !ok {
		return nil, errors.Wrapf(ErrPartNotFound, "slide %d (%s)", n, name)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(pt.data); err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "pptx: parse %s", name), ErrMalformed)
	}

	s := &Slide{doc: doc}
	p.slides[name] = s
	return s, nil
}

// slidePartName follows presentation.xml's p:sldIdLst to the n-th slide
// and resolves its relationship to a part name.
func (p *Presentation) slidePartName(n int) (string, error) {
	main := p.mainPartName()
	pres, err := p.readXML(main)
	if err != nil {
		return "", err
	}

	ids := pres.FindElements("//p:sldIdLst/p:sldId")
	if n < 1 || n > len(ids) {
		return "", errors.Wrapf(ErrPartNotFound, "slide %d", n)
	}
	relID := ids[n-1].SelectAttrValue("r:id", "")

	rels, err := p.readXML(relsPartName(main))
	if err != nil {
		return "", err
	}
	for _, rel := range rels.FindElements("//Relationship") {
		if rel.SelectAttrValue("Id", "") == relID {
			return resolveTarget(main, rel.SelectAttrValue("Target", "")), nil
		}
	}
	return "", errors.Wrapf(ErrPartNotFound, "slide %d relationship %q", n, relID)
}

// mainPartName reads the officeDocument relationship from the package rels.
func (p *Presentation) mainPartName() string {
	rels, err := p.readXML("_rels/.rels")
	if err != nil {
		return defaultMainPart
	}
	for _, rel := range rels.FindElements("//Relationship") {
		if rel.SelectAttrValue("Type", "") == relTypeOfficeDocument {
			return resolveTarget("", rel.SelectAttrValue("Target", ""))
		}
	}
	return defaultMainPart
}

func (p *Presentation) readXML(name string) (*etree.Document, error) {
	pt, ok := p.index[name]
	if !ok {
		return nil, errors.Wrapf(ErrPartNotFound, "%s", name)
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(pt.data); err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "pptx: parse %s", name), ErrMalformed)
	}
	return doc, nil
}

// relsPartName maps "ppt/presentation.xml" to "ppt/_rels/presentation.xml.rels".
func relsPartName(source string) string {
	return path.Join(path.Dir(source), "_rels", path.Base(source)+".rels")
}

// resolveTarget resolves a relationship target against the part that owns it.
func resolveTarget(source, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Join(path.Dir(source), target)
}

// Bytes serializes the package. Parts keep their original order, names,
// compression method and timestamps, so equal edits produce equal output.
func (p *Presentation) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, pt := range p.parts {
		data := pt.data
		if s, ok := p.slides[pt.header.Name]; ok {
			b, err := s.doc.WriteToBytes()
			if err != nil {
				return nil, errors.Wrapf(err, "pptx: serialize %s", pt.header.Name)
			}
			data = b
		}

		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     pt.header.Name,
			Comment:  pt.header.Comment,
			Method:   pt.header.Method,
			Modified: pt.header.Modified,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "pptx: write header %s", pt.header.Name)
		}
		if _, err := w.Write(data); err != nil {
			return nil, errors.Wrapf(err, "pptx: write part %s", pt.header.Name)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, errors.Wrap(err, "pptx: finish package")
	}
	return buf.Bytes(), nil
}
