package certificate

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"
)

const (
	pageMargin    = 50.0
	title         = "Railway Track Fitting Certificate"
	detailHeading = "Item Details"
)

// field is one "Label: value" line of the item details block.
type field struct {
	Label string
	Value string
}

// document is everything printed on a certificate page.
type document struct {
	Fields      []field
	GeneratedOn string
	DocumentID  int64
	CreatedAt   time.Time
}

// renderPDF writes a single A4 page for the document. Field lengths are capped
// by request validation so the details block always fits.
func renderPDF(w io.Writer, doc document, compress bool) error {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, pageMargin)
	pdf.SetCompression(compress)
	pdf.SetTitle(title, true)
	pdf.SetCreator("railfit", true)
	if !doc.CreatedAt.IsZero() {
		pdf.SetCreationDate(doc.CreatedAt)
	}

	pdf.AddUTF8FontFromBytes(fontFamily, "", fontTTF)
	pdf.AddPage()

	pdf.SetFont(fontFamily, "", 24)
	pdf.CellFormat(0, 30, title, "", 1, "C", false, 0, "")
	pdf.Ln(24)

	pdf.SetFont(fontFamily, "U", 16)
	pdf.CellFormat(0, 20, detailHeading, "", 1, "L", false, 0, "")
	pdf.Ln(16)

	pdf.SetFont(fontFamily, "", 12)
	for _, f := range doc.Fields {
		pdf.MultiCell(0, 16, fmt.Sprintf("%s: %s", f.Label, f.Value), "", "L", false)
		pdf.Ln(6)
	}

	pdf.Ln(12)
	pdf.SetFont(fontFamily, "", 10)
	pdf.CellFormat(0, 14, "Generated on: "+doc.GeneratedOn, "", 1, "L", false, 0, "")
	pdf.Ln(10)
	pdf.CellFormat(0, 14, "Document ID: "+strconv.FormatInt(doc.DocumentID, 10), "", 1, "L", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}
