package artifacts

import (
	"fmt"
	"sort"
	"time"

	"github.com/joshua-takyi/enquiry/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	SheetName       = "Registered Users"
	registeredAtFmt = "Mon, 02/01/06 15:04"
)

var sheetHeader = []interface{}{
	"SrNo", "Name", "PhoneNumber", "BHK", "Services", "Comment", "EnquiryType", "RegisteredAt",
}

type ExportRow struct {
	SrNo         int
	Name         string
	PhoneNumber  string
	BHK          string
	Services     string
	Comment      string
	EnquiryType  string
	RegisteredAt string
}

// ExportRows orders users newest first and numbers them from 1. Users
// without a registration time sort last.
func ExportRows(users []*models.RegisteredUser, loc *time.Location) []ExportRow {
	if loc == nil {
		loc = time.UTC
	}
	sorted := make([]*models.RegisteredUser, len(users))
	copy(sorted, users)
	sort.SliceStable(sorted, func(i, j int) bool {
		return unixOrZero(sorted[i].RegisteredAt) > unixOrZero(sorted[j].RegisteredAt)
	})

	rows := make([]ExportRow, 0, len(sorted))
	for i, u := range sorted {
		var at string
		if u.RegisteredAt != nil {
			at = u.RegisteredAt.In(loc).Format(registeredAtFmt)
		}
		rows = append(rows, ExportRow{
			SrNo:         i + 1,
			Name:         u.Name,
			PhoneNumber:  u.PhoneNumber,
			BHK:          u.BHK,
			Services:     u.Services,
			Comment:      u.Comment,
			EnquiryType:  u.EnquiryType,
			RegisteredAt: at,
		})
	}
	return rows
}

func unixOrZero(t *time.Time) int64 {
	if t == nil {
		return 0
	}
	return t.Unix()
}

// RegistrationsWorkbook writes rows to a single sheet workbook.
func RegistrationsWorkbook(rows []ExportRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &sheetHeader); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := []interface{}{
			r.SrNo, r.Name, r.PhoneNumber, r.BHK, r.Services, r.Comment, r.EnquiryType, r.RegisteredAt,
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
