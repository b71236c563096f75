// Package export renders a sheet as a two-worksheet .xlsx report.
package export

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/xuri/excelize/v2"

	"github.com/mmynk/societyledger/internal/calculator"
	"github.com/mmynk/societyledger/internal/models"
)

const (
	MaintenanceSheet = "Maintenance"
	ExpensesSheet    = "Expenses"

	// ContentType is the MIME type of the workbook.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	floorsPerBand = 4
	blockWidth    = 5 // four columns plus a spacer
	bandHeight    = 15
)

// Snapshot is everything the report shows for one sheet.
type Snapshot struct {
	SheetName   string
	Summary     calculator.SheetSummary
	Residents   []*models.Resident
	Collections []*models.Collection
	Expenses    []*models.Expense
}

// Filename is the download name for a sheet's report.
func Filename(sheetName string) string {
	name := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == ':' {
			return '_'
		}
		return r
	}, strings.TrimSpace(sheetName))
	return name + "_Report.xlsx"
}

// FloorOf groups a flat by the first digit in its number. Flats without
// digits land on floor "0".
func FloorOf(flatNo string) string {
	for _, r := range flatNo {
		if unicode.IsDigit(r) {
			return string(r)
		}
	}
	return "0"
}

type styles struct {
	floor, header, border, paid, pending, muted int
}

// WriteWorkbook writes the report to w.
func WriteWorkbook(w io.Writer, snap Snapshot) error {
	f := excelize.NewFile()
	defer f.Close()

	st, err := newStyles(f)
	if err != nil {
		return err
	}

	if err := f.SetSheetName("Sheet1", MaintenanceSheet); err != nil {
		return fmt.Errorf("failed to name worksheet: %w", err)
	}
	if err := writeMaintenance(f, st, snap); err != nil {
		return err
	}

	if _, err := f.NewSheet(ExpensesSheet); err != nil {
		return fmt.Errorf("failed to create worksheet: %w", err)
	}
	if err := writeExpenses(f, st, snap); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeMaintenance(f *excelize.File, st styles, snap Snapshot) error {
	rows := calculator.ComputePaymentStatus(snap.Residents, snap.Collections, calculator.FilterAll)

	floors := make(map[string][]calculator.PaymentRow)
	for _, row := range rows {
		key := FloorOf(row.FlatNo)
		floors[key] = append(floors[key], row)
	}
	keys := make([]string, 0, len(floors))
	for k := range floors {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for i, key := range keys {
		col := (i%floorsPerBand)*blockWidth + 1
		top := (i/floorsPerBand)*bandHeight + 1

		if err := setCell(f, MaintenanceSheet, col, top, "Floor "+key, st.floor); err != nil {
			return err
		}
		if err := mergeRow(f, MaintenanceSheet, col, col+3, top); err != nil {
			return err
		}
		for j, h := range []string{"Room", "Owner", "Amount Paid", "Status"} {
			if err := setCell(f, MaintenanceSheet, col+j, top+1, h, st.header); err != nil {
				return err
			}
		}

		for j, row := range floors[key] {
			r := top + 2 + j
			style := st.pending
			switch row.Status {
			case calculator.StatusPaid:
				style = st.paid
			case calculator.StatusNotApplicable:
				style = st.muted
			}
			cells := []struct {
				value any
				style int
			}{
				{row.FlatNo, st.border},
				{row.OwnerName, st.border},
				{row.Amount.InexactFloat64(), style},
				{string(row.Status), style},
			}
			for k, c := range cells {
				if err := setCell(f, MaintenanceSheet, col+k, r, c.value, c.style); err != nil {
					return err
				}
			}
		}
	}

	if err := f.SetColWidth(MaintenanceSheet, "A", "T", 12); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}
	return nil
}

func writeExpenses(f *excelize.File, st styles, snap Snapshot) error {
	for i, h := range []string{"Date", "Description", "Amount"} {
		if err := setCell(f, ExpensesSheet, i+1, 1, h, st.header); err != nil {
			return err
		}
	}

	expenses := sortExpensesByDate(snap.Expenses)
	for i, e := range expenses {
		r := i + 2
		if err := setCell(f, ExpensesSheet, 1, r, e.Date, st.border); err != nil {
			return err
		}
		if err := setCell(f, ExpensesSheet, 2, r, e.Description, st.border); err != nil {
			return err
		}
		if err := setCell(f, ExpensesSheet, 3, r, e.Amount.InexactFloat64(), st.border); err != nil {
			return err
		}
	}

	// Balance block under the list.
	r := len(expenses) + 3
	totals := []struct {
		label string
		value float64
	}{
		{"Opening Balance", snap.Summary.Opening.InexactFloat64()},
		{"Collected", snap.Summary.Collected.InexactFloat64()},
		{"Spent", snap.Summary.Spent.InexactFloat64()},
		{"Closing Balance", snap.Summary.Closing.InexactFloat64()},
	}
	for i, t := range totals {
		if err := setCell(f, ExpensesSheet, 2, r+i, t.label, st.header); err != nil {
			return err
		}
		if err := setCell(f, ExpensesSheet, 3, r+i, t.value, st.border); err != nil {
			return err
		}
	}

	widths := map[string]float64{"A": 15, "B": 40, "C": 15}
	for col, width := range widths {
		if err := f.SetColWidth(ExpensesSheet, col, col, width); err != nil {
			return fmt.Errorf("failed to size columns: %w", err)
		}
	}
	return nil
}

// sortExpensesByDate orders a copy of expenses oldest first. Dates that do
// not parse as YYYY-MM-DD compare as text.
func sortExpensesByDate(expenses []*models.Expense) []*models.Expense {
	out := make([]*models.Expense, len(expenses))
	copy(out, expenses)
	sort.SliceStable(out, func(i, j int) bool {
		a, errA := time.Parse(time.DateOnly, out[i].Date)
		b, errB := time.Parse(time.DateOnly, out[j].Date)
		if errA != nil || errB != nil {
			return out[i].Date < out[j].Date
		}
		return a.Before(b)
	})
	return out
}

func setCell(f *excelize.File, sheet string, col, row int, value any, style int) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("failed to address cell: %w", err)
	}
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		return fmt.Errorf("failed to set %s!%s: %w", sheet, cell, err)
	}
	if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
		return fmt.Errorf("failed to style %s!%s: %w", sheet, cell, err)
	}
	return nil
}

func mergeRow(f *excelize.File, sheet string, fromCol, toCol, row int) error {
	from, err := excelize.CoordinatesToCellName(fromCol, row)
	if err != nil {
		return err
	}
	to, err := excelize.CoordinatesToCellName(toCol, row)
	if err != nil {
		return err
	}
	if err := f.MergeCell(sheet, from, to); err != nil {
		return fmt.Errorf("failed to merge %s:%s: %w", from, to, err)
	}
	return nil
}

func newStyles(f *excelize.File) (styles, error) {
	thin := []excelize.Border{
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}
	fill := func(rgb string) excelize.Fill {
		return excelize.Fill{Type: "pattern", Color: []string{rgb}, Pattern: 1}
	}
	defs := []*excelize.Style{
		{Fill: fill("FFFF00"), Font: &excelize.Font{Bold: true}, Alignment: &excelize.Alignment{Horizontal: "center"}, Border: thin},
		{Fill: fill("2F75B5"), Font: &excelize.Font{Bold: true, Color: "FFFFFF"}, Border: thin},
		{Border: thin},
		{Fill: fill("228B22"), Font: &excelize.Font{Color: "FFFFFF"}, Border: thin, NumFmt: 2},
		{Fill: fill("FF0000"), Font: &excelize.Font{Color: "FFFFFF"}, Border: thin, NumFmt: 2},
		{Fill: fill("D9D9D9"), Border: thin, NumFmt: 2},
	}
	ids := make([]int, len(defs))
	for i, d := range defs {
		id, err := f.NewStyle(d)
		if err != nil {
			return styles{}, fmt.Errorf("failed to create style: %w", err)
		}
		ids[i] = id
	}
	return styles{floor: ids[0], header: ids[1], border: ids[2], paid: ids[3], pending: ids[4], muted: ids[5]}, nil
}
