package utils

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"
)

// SheetRow is one reservation line on the printed service sheet.
type SheetRow struct {
	Time   string
	Name   string
	People int
	Phone  string
	Status string
}

// SheetSlot groups rows by slot with the seats taken.
type SheetSlot struct {
	Time     string
	Booked   int
	Capacity int
	Rows     []SheetRow
}

// ReservationSheetPDF renders the service sheet for one day.
func ReservationSheetPDF(title, date string, slots []SheetSlot) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr(title+" "+date), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(title), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 8, tr("Service du "+date), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	total := 0
	for _, slot := range slots {
		total += slot.Booked
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetFillColor(235, 235, 235)
		header := fmt.Sprintf("%s   %d / %d couverts", slot.Time, slot.Booked, slot.Capacity)
		pdf.CellFormat(0, 8, tr(header), "1", 1, "L", true, 0, "")

		pdf.SetFont("Helvetica", "", 10)
		if len(slot.Rows) == 0 {
			pdf.CellFormat(0, 7, tr("Aucune réservation"), "LRB", 1, "L", false, 0, "")
			continue
		}
		for _, r := range slot.Rows {
			pdf.CellFormat(70, 7, tr(r.Name), "LB", 0, "L", false, 0, "")
			pdf.CellFormat(20, 7, fmt.Sprintf("%d", r.People), "B", 0, "C", false, 0, "")
			pdf.CellFormat(50, 7, r.Phone, "B", 0, "L", false, 0, "")
			pdf.CellFormat(0, 7, tr(r.Status), "RB", 1, "L", false, 0, "")
		}
		pdf.Ln(2)
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("Total : %d couverts", total)), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
