package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
	"github.com/yigit/seasonledger/internal/app/models"
)

const (
	seasonSheetName = "Season Report"
	playerSheetName = "Player Report"
	// Built-in excelize number format "0.00".
	numFmtTwoDecimals = 2
)

type workbook struct {
	f      *excelize.File
	sheet  string
	bold   int
	amount int
	row    int
}

func newWorkbook(sheet string) (*workbook, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	amount, err := f.NewStyle(&excelize.Style{NumFmt: numFmtTwoDecimals})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create amount style: %w", err)
	}
	return &workbook{f: f, sheet: sheet, bold: bold, amount: amount, row: 1}, nil
}

// writeRow puts values into the next row. Money values get the two-decimal style.
func (w *workbook) writeRow(style int, values ...interface{}) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, w.row)
		if err != nil {
			return err
		}
		cellStyle := style
		if m, ok := v.(models.Money); ok {
			v = m.Float64()
			if cellStyle == 0 {
				cellStyle = w.amount
			}
		}
		if err := w.f.SetCellValue(w.sheet, cell, v); err != nil {
			return fmt.Errorf("failed to write cell %s: %w", cell, err)
		}
		if cellStyle != 0 {
			if err := w.f.SetCellStyle(w.sheet, cell, cell, cellStyle); err != nil {
				return fmt.Errorf("failed to style cell %s: %w", cell, err)
			}
		}
	}
	w.row++
	return nil
}

func (w *workbook) skip() { w.row++ }

func (w *workbook) bytes() ([]byte, error) {
	defer w.f.Close()
	buf, err := w.f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func stringsToValues(items []string) []interface{} {
	values := make([]interface{}, len(items))
	for i, s := range items {
		values[i] = s
	}
	return values
}

// SeasonXLSX renders the season report as a single-sheet workbook with a totals row.
func SeasonXLSX(sheet SeasonSheet) ([]byte, error) {
	w, err := newWorkbook(seasonSheetName)
	if err != nil {
		return nil, err
	}

	headers := sheet.headers()
	write := func() error {
		if err := w.writeRow(w.bold, sheet.Title()); err != nil {
			return err
		}
		w.skip()
		if err := w.writeRow(w.bold, stringsToValues(headers)...); err != nil {
			return err
		}
		for i, r := range sheet.Rows {
			values := []interface{}{i + 1, r.Name, r.GameName}
			if sheet.IncludePhone {
				values = append(values, r.PhoneNumber)
			}
			values = append(values, r.EventsCount, r.TotalPayment)
			if err := w.writeRow(0, values...); err != nil {
				return err
			}
		}

		// Total sits under the Amount column.
		totals := make([]interface{}, len(headers))
		totals[0] = "Total Amount"
		for i := 1; i < len(headers)-1; i++ {
			totals[i] = ""
		}
		totals[len(headers)-1] = sheet.TotalSum
		if err := w.writeRow(0, totals...); err != nil {
			return err
		}
		return w.f.SetColWidth(w.sheet, "B", "D", 24)
	}
	if err := write(); err != nil {
		w.f.Close()
		return nil, err
	}
	return w.bytes()
}

// PlayerXLSX renders a player's events with a header block and totals.
func PlayerXLSX(sheet PlayerSheet) ([]byte, error) {
	w, err := newWorkbook(playerSheetName)
	if err != nil {
		return nil, err
	}

	write := func() error {
		if err := w.writeRow(w.bold, sheet.Title()); err != nil {
			return err
		}
		header := [][]interface{}{
			{"Name", sheet.Person.Name},
			{"Game Name", sheet.Person.GameName},
			{"Phone", sheet.Person.PhoneNumber},
			{"Season", fmt.Sprintf("%d (%s)", sheet.Season.ID, sheet.Season.StartDate.Format(models.DateLayout))},
			{"Total Events", sheet.TotalCount},
			{"Total Payment", sheet.TotalSum},
		}
		for _, line := range header {
			if err := w.writeRow(0, line...); err != nil {
				return err
			}
		}
		w.skip()
		if err := w.writeRow(w.bold, stringsToValues(playerHeaders)...); err != nil {
			return err
		}
		for i, r := range sheet.Rows {
			if err := w.writeRow(0, i+1, r.EventName, r.DateTime.Format(dateTimeLayout), r.Payment); err != nil {
				return err
			}
		}
		return w.f.SetColWidth(w.sheet, "B", "C", 24)
	}
	if err := write(); err != nil {
		w.f.Close()
		return nil, err
	}
	return w.bytes()
}
