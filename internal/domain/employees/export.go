package employees

import (
	"bytes"
	"errors"
	"fmt"
	"sort"

	"github.com/jung-kurt/gofpdf"
)

var ErrEmptyDirectory = errors.New("no employees cached to export")

// ExportPDF renders the cached directory as a PDF, sorted by last name.
// Refresh the collection first; this works entirely off the local cache.
func (s *Service) ExportPDF() ([]byte, error) {
	items := s.col.Items()
	if len(items) == 0 {
		return nil, ErrEmptyDirectory
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].LastName != items[j].LastName {
			return items[i].LastName < items[j].LastName
		}
		return items[i].FirstName < items[j].FirstName
	})

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Employee Directory")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(55, 7, "Name", "1", 0, "", false, 0, "")
	pdf.CellFormat(60, 7, "Email", "1", 0, "", false, 0, "")
	pdf.CellFormat(40, 7, "Phone", "1", 0, "", false, 0, "")
	pdf.CellFormat(35, 7, "Joined", "1", 1, "", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, e := range items {
		joined := ""
		if !e.DateOfJoining.IsZero() {
			joined = e.DateOfJoining.Format("2006-01-02")
		}
		name := e.FullName()
		if e.Position != "" {
			name = fmt.Sprintf("%s (%s)", name, e.Position)
		}
		pdf.CellFormat(55, 7, name, "1", 0, "", false, 0, "")
		pdf.CellFormat(60, 7, e.Email, "1", 0, "", false, 0, "")
		pdf.CellFormat(40, 7, e.PhoneNumber, "1", 0, "", false, 0, "")
		pdf.CellFormat(35, 7, joined, "1", 1, "", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
