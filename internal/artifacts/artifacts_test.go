package artifacts

import (
	"bytes"
	"testing"
	"time"

	"github.com/joshua-takyi/enquiry/internal/models"
	"github.com/xuri/excelize/v2"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestQRCodeIsDeterministicPNG(t *testing.T) {
	a, err := QRCode("https://example.com/events/abc")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(a, pngMagic) {
		t.Fatal("output is not a PNG")
	}
	b, _ := QRCode("https://example.com/events/abc")
	if !bytes.Equal(a, b) {
		t.Error("same url produced different images")
	}
	c, _ := QRCode("https://example.com/events/xyz")
	if bytes.Equal(a, c) {
		t.Error("different urls produced identical images")
	}
}

func TestQRCodeRejectsEmpty(t *testing.T) {
	if _, err := QRCode("  "); err == nil {
		t.Error("expected error for empty content")
	}
}

func TestEventPDF(t *testing.T) {
	png, _ := QRCode("https://example.com/events/abc")
	out, err := EventPDF("Spring Fest", "01/05/2025", png)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Error("missing PDF header")
	}
}

func TestFileNames(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		got, want string
	}{
		{PDFFileName("Spring  Fest 2025"), "Spring_Fest_2025.pdf"},
		{ExportFileName("Spring Fest", now), "Spring_Fest_01-05-2025.xlsx"},
		{ExportFileName("", now), "Event_01-05-2025.xlsx"},
		{ExportFileName("a\tb", now), "a_b_01-05-2025.xlsx"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}

func TestEventLink(t *testing.T) {
	if got := EventLink("https://site.test/", "e1"); got != "https://site.test/events/e1" {
		t.Errorf("got %q", got)
	}
}

func at(s string) *time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return &t
}

func TestExportRowsNewestFirst(t *testing.T) {
	users := []*models.RegisteredUser{
		{Name: "old", RegisteredAt: at("2025-05-01T09:00:00Z")},
		{Name: "none"},
		{Name: "new", RegisteredAt: at("2025-05-03T18:30:00Z")},
		{Name: "mid", RegisteredAt: at("2025-05-02T10:05:00Z")},
	}
	rows := ExportRows(users, time.UTC)
	if len(rows) != len(users) {
		t.Fatalf("got %d rows, want %d", len(rows), len(users))
	}
	want := []string{"new", "mid", "old", "none"}
	for i, r := range rows {
		if r.Name != want[i] {
			t.Errorf("row %d = %q, want %q", i, r.Name, want[i])
		}
		if r.SrNo != i+1 {
			t.Errorf("row %d srNo = %d", i, r.SrNo)
		}
	}
	if rows[0].RegisteredAt != "Sat, 03/05/25 18:30" {
		t.Errorf("formatted time = %q", rows[0].RegisteredAt)
	}
	if rows[3].RegisteredAt != "" {
		t.Errorf("missing time rendered as %q", rows[3].RegisteredAt)
	}
}

func TestRegistrationsWorkbook(t *testing.T) {
	rows := ExportRows([]*models.RegisteredUser{
		{Name: "Asha", PhoneNumber: "9876543210", BHK: "2 BHK", Services: "CCTV", EnquiryType: "Packers & Movers", RegisteredAt: at("2025-05-01T09:00:00Z")},
		{Name: "Ravi", PhoneNumber: "9000000000", BHK: "Shop", Services: "Pest Control"},
	}, time.UTC)

	data, err := RegistrationsWorkbook(rows)
	if err != nil {
		t.Fatal(err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("workbook unreadable: %v", err)
	}
	defer f.Close()

	got, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d rows including header, want 3", len(got))
	}
	if got[0][0] != "SrNo" || got[0][7] != "RegisteredAt" {
		t.Errorf("header = %v", got[0])
	}
	if got[1][1] != "Asha" || got[1][0] != "1" {
		t.Errorf("first data row = %v", got[1])
	}
}
