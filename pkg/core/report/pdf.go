package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

const (
	pdfMargin    = 20.0
	pdfLineH     = 6.0
	pdfCellH     = 8.0
	pdfTableW    = 170.0
	pdfFontTitle = 18.0
	pdfFontHead  = 13.0
	pdfFontBody  = 10.0
)

// PDF renders the document with fpdf core fonts. Text is translated to
// cp1252, so characters outside it are dropped.
func (d *Document) PDF() ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.SetTitle(d.Title, true)
	pdf.SetSubject(d.Company, true)
	if !d.GeneratedAt.IsZero() {
		pdf.SetCreationDate(d.GeneratedAt)
	}
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", pdfFontTitle)
	pdf.CellFormat(0, 12, tr(d.Title), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	for _, s := range d.Sections {
		pdf.SetFont("Helvetica", "B", pdfFontHead)
		pdf.CellFormat(0, pdfCellH, tr(s.Heading), "", 1, "L", false, 0, "")
		pdf.Ln(2)

		pdf.SetFont("Helvetica", "", pdfFontBody)
		for _, p := range s.Paragraphs {
			pdf.MultiCell(0, pdfLineH, tr(p), "", "L", false)
		}
		if s.Table != nil {
			pdf.Ln(2)
			pdfTable(pdf, tr, s.Table)
		}
		pdf.Ln(6)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// pdfTable draws a centred grid with a light grey header row.
func pdfTable(pdf *fpdf.Fpdf, tr func(string) string, t *Table) {
	if len(t.Header) == 0 {
		return
	}
	colW := pdfTableW / float64(len(t.Header))

	pdf.SetFont("Helvetica", "B", pdfFontBody)
	pdf.SetFillColor(211, 211, 211)
	for _, h := range t.Header {
		pdf.CellFormat(colW, pdfCellH, tr(h), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", pdfFontBody)
	for _, row := range t.Rows {
		for i := range t.Header {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			pdf.CellFormat(colW, pdfCellH, tr(cell), "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}
}
