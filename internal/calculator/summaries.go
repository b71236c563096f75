package calculator

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mmynk/societyledger/internal/models"
)

// RunningTotal is the society-wide balance across all monthly summaries.
func RunningTotal(summaries []*models.MonthlySummary) decimal.Decimal {
	total := decimal.Zero
	for _, s := range summaries {
		if s != nil {
			total = total.Add(s.Net())
		}
	}
	return total
}

// SortSummariesNewestFirst orders a copy of summaries by CreatedAt descending.
func SortSummariesNewestFirst(summaries []*models.MonthlySummary) []*models.MonthlySummary {
	out := make([]*models.MonthlySummary, len(summaries))
	copy(out, summaries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// ActiveSheetsNewestFirst returns the dashboard sheets.
func ActiveSheetsNewestFirst(sheets []*models.Sheet) []*models.Sheet {
	return filterSheets(sheets, models.SheetActive)
}

// DeletedSheets returns the recycle bin contents, newest first.
func DeletedSheets(sheets []*models.Sheet) []*models.Sheet {
	return filterSheets(sheets, models.SheetDeleted)
}

func filterSheets(sheets []*models.Sheet, state models.SheetState) []*models.Sheet {
	var out []*models.Sheet
	for _, s := range sheets {
		if s != nil && s.State == state {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
