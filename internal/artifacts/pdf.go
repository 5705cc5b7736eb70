package artifacts

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// A4 portrait, millimetres.
const (
	pageCenterX = 105.0
	titleY      = 20.0
	dateX       = 20.0
	dateY       = 35.0
	qrX         = 55.0
	qrY         = 55.0
	qrSide      = 100.0
)

// EventPDF lays out the event title, its start date and the QR image on a
// single page.
func EventPDF(title, date string, qrPNG []byte) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "", 18)
	t := tr(title)
	pdf.Text(pageCenterX-pdf.GetStringWidth(t)/2, titleY, t)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(dateX, dateY, tr("Start Date: "+date))

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", qrX, qrY, qrSide, qrSide, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
