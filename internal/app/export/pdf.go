package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

const (
	pdfFont       = "Helvetica"
	pdfRowHeight  = 7.0
	pdfPageMargin = 15.0
)

type pdfDoc struct {
	*fpdf.Fpdf
}

func newPDF(title string) *pdfDoc {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfPageMargin, pdfPageMargin, pdfPageMargin)
	pdf.SetAutoPageBreak(true, pdfPageMargin)
	pdf.SetTitle(Transliterate(title), false)
	pdf.SetCreator("seasonledger", false)
	pdf.AddPage()
	return &pdfDoc{Fpdf: pdf}
}

func (d *pdfDoc) heading(text string) {
	d.SetFont(pdfFont, "B", 16)
	d.CellFormat(0, 10, Transliterate(text), "", 1, "L", false, 0, "")
}

func (d *pdfDoc) line(text string) {
	d.SetFont(pdfFont, "", 11)
	d.CellFormat(0, pdfRowHeight, Transliterate(text), "", 1, "L", false, 0, "")
}

// table draws a header row and body rows. aligns has one entry per column.
func (d *pdfDoc) table(widths []float64, aligns []string, headers []string, rows [][]string) {
	d.SetFont(pdfFont, "B", 10)
	d.SetFillColor(230, 230, 230)
	for i, h := range headers {
		d.CellFormat(widths[i], pdfRowHeight, Transliterate(h), "1", 0, "C", true, 0, "")
	}
	d.Ln(-1)

	d.SetFont(pdfFont, "", 10)
	for _, row := range rows {
		for i, cell := range row {
			d.CellFormat(widths[i], pdfRowHeight, Transliterate(cell), "1", 0, aligns[i], false, 0, "")
		}
		d.Ln(-1)
	}
}

func (d *pdfDoc) bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// SeasonPDF renders the season report with an optional phone column.
func SeasonPDF(sheet SeasonSheet) ([]byte, error) {
	d := newPDF(sheet.Title())
	d.heading(sheet.Title())
	d.line(fmt.Sprintf("Total Amount: %s", sheet.TotalSum))
	d.line(fmt.Sprintf("Generated: %s", sheet.GeneratedAt.Format(dateTimeLayout)))
	d.Ln(4)

	widths := []float64{10, 50, 45, 30, 20, 25}
	aligns := []string{"R", "L", "L", "L", "R", "R"}
	if !sheet.IncludePhone {
		widths = []float64{10, 65, 60, 20, 25}
		aligns = []string{"R", "L", "L", "R", "R"}
	}

	rows := make([][]string, 0, len(sheet.Rows))
	for i, r := range sheet.Rows {
		row := []string{fmt.Sprint(i + 1), r.Name, r.GameName}
		if sheet.IncludePhone {
			row = append(row, r.PhoneNumber)
		}
		row = append(row, fmt.Sprint(r.EventsCount), r.TotalPayment.String())
		rows = append(rows, row)
	}
	d.table(widths, aligns, sheet.headers(), rows)

	return d.bytes()
}

// PlayerPDF renders a player's events in a season.
func PlayerPDF(sheet PlayerSheet) ([]byte, error) {
	d := newPDF(sheet.Title())
	d.heading(sheet.Title())
	d.line(fmt.Sprintf("Name: %s", displayName(sheet.Person.Name, sheet.Person.GameName)))
	d.line(fmt.Sprintf("Phone: %s", sheet.Person.PhoneNumber))
	d.line(fmt.Sprintf("Season: %d (%s)", sheet.Season.ID, sheet.Season.StartDate.Format("2006-01-02")))
	d.line(fmt.Sprintf("Total Events: %d", sheet.TotalCount))
	d.line(fmt.Sprintf("Total Payment: %s", sheet.TotalSum))
	d.Ln(4)

	rows := make([][]string, 0, len(sheet.Rows))
	for i, r := range sheet.Rows {
		rows = append(rows, []string{fmt.Sprint(i + 1), r.EventName, r.DateTime.Format(dateTimeLayout), r.Payment.String()})
	}
	d.table([]float64{10, 85, 45, 40}, []string{"R", "L", "L", "R"}, playerHeaders, rows)

	return d.bytes()
}
