// Package artifacts builds the files handed to admins: QR images, the
// printable QR PDF and the registrations workbook.
package artifacts

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/skip2/go-qrcode"
)

const QRSize = 256

var whitespace = regexp.MustCompile(`\s+`)

// QRCode encodes url as a PNG. The output depends only on url.
func QRCode(url string) ([]byte, error) {
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("qr content is empty")
	}
	png, err := qrcode.Encode(url, qrcode.Medium, QRSize)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr code: %w", err)
	}
	return png, nil
}

// EventLink is the public registration address for an event.
func EventLink(baseURL, eventID string) string {
	return strings.TrimRight(baseURL, "/") + "/events/" + eventID
}

func sanitizeName(name string) string {
	return whitespace.ReplaceAllString(name, "_")
}

// PDFFileName replaces each whitespace run in title with "_".
func PDFFileName(title string) string {
	return sanitizeName(title) + ".pdf"
}

// ExportFileName is {eventName}_{dd-mm-yyyy}.xlsx, "Event" when the name is blank.
func ExportFileName(eventName string, now time.Time) string {
	if strings.TrimSpace(eventName) == "" {
		eventName = "Event"
	}
	return fmt.Sprintf("%s_%s.xlsx", sanitizeName(eventName), now.Format("02-01-2006"))
}
