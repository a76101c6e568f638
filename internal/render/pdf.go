package render

import (
	"fmt"

	"github.com/go-pdf/fpdf"

	"hourcal/internal/report"
)

const pdfColWidth = 60.0 // three equal columns on an A4 page with margins

// PDF writes the hour report as a PDF document at path. company is the
// label printed in the document header.
func PDF(path, company string, rep report.Report) error {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(15, 20, 15)
	doc.AddPage()

	// Header block: title plus company label.
	doc.SetFont("Helvetica", "B", 16)
	doc.Cell(0, 10, "Hour report")
	doc.Ln(14)

	doc.SetFont("Helvetica", "", 11)
	doc.Cell(40, 7, "Company:")
	doc.Cell(0, 7, company)
	doc.Ln(14)

	// Column headers.
	doc.SetFont("Helvetica", "B", 11)
	for _, h := range []string{"Date", "Time", "Duration"} {
		doc.CellFormat(pdfColWidth, 8, h, "", 0, "L", false, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Helvetica", "", 11)
	for _, ev := range rep.Events {
		doc.CellFormat(pdfColWidth, 7, ev.Date, "", 0, "L", false, 0, "")
		doc.CellFormat(pdfColWidth, 7, ev.Time, "", 0, "L", false, 0, "")
		doc.CellFormat(pdfColWidth, 7, ev.Duration, "", 0, "L", false, 0, "")
		doc.Ln(-1)
	}

	// Spacer, then the total row.
	doc.Ln(8)
	doc.CellFormat(pdfColWidth, 7, "", "", 0, "L", false, 0, "")
	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(pdfColWidth, 7, "Total", "", 0, "L", false, 0, "")
	doc.CellFormat(pdfColWidth, 7, rep.Total(), "", 0, "L", false, 0, "")
	doc.Ln(-1)

	if err := doc.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf %s: %w", path, err)
	}
	return nil
}
