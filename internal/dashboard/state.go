// Package dashboard holds the signed-in administrator's view state. Live
// snapshots and user actions are events; Reduce folds them into State and
// Derive computes what the screens show.
package dashboard

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/societyledger/internal/calculator"
	"github.com/mmynk/societyledger/internal/live"
	"github.com/mmynk/societyledger/internal/models"
	"github.com/mmynk/societyledger/internal/storage"
)

// State is the cached result of every open query plus the user's selection.
// Each snapshot replaces its slice wholesale.
type State struct {
	Residents   []*models.Resident
	Sheets      []*models.Sheet
	Summaries   []*models.MonthlySummary
	Collections []*models.Collection
	Expenses    []*models.Expense

	CurrentSheetID string
	Filter         calculator.StatusFilter

	// Generation changes whenever the opening balance of the current
	// sheet must be recomputed. Results for older generations are dropped.
	Generation   uint64
	Opening      decimal.Decimal
	OpeningReady bool
	OpeningErr   error

	// LastErr is the most recent snapshot read failure. The previous
	// data is kept.
	LastErr error
}

// Event is anything that changes State.
type Event interface {
	isEvent()
}

// SnapshotReceived carries one live query delivery.
type SnapshotReceived struct {
	Snapshot live.Snapshot
}

// SheetOpened selects a sheet for the detail view.
type SheetOpened struct {
	SheetID string
}

// SheetClosed leaves the detail view.
type SheetClosed struct{}

// FilterChanged switches the payment status filter.
type FilterChanged struct {
	Filter calculator.StatusFilter
}

// OpeningComputed reports an opening balance computation.
type OpeningComputed struct {
	Generation uint64
	Value      decimal.Decimal
	Err        error
}

func (SnapshotReceived) isEvent() {}
func (SheetOpened) isEvent() {}
func (SheetClosed) isEvent() {}
func (FilterChanged) isEvent() {}
func (OpeningComputed) isEvent() {}

// Reduce returns the state after ev. It does no I/O.
func Reduce(s State, ev Event) State {
	switch ev := ev.(type) {
	case SnapshotReceived:
		return reduceSnapshot(s, ev.Snapshot)

	case SheetOpened:
		if ev.SheetID == s.CurrentSheetID {
			return s
		}
		s.CurrentSheetID = ev.SheetID
		s.Collections = nil
		s.Expenses = nil
		return invalidateOpening(s)

	case SheetClosed:
		s.CurrentSheetID = ""
		s.Collections = nil
		s.Expenses = nil
		return invalidateOpening(s)

	case FilterChanged:
		s.Filter = ev.Filter
		return s

	case OpeningComputed:
		if ev.Generation != s.Generation || s.CurrentSheetID == "" {
			return s
		}
		s.OpeningReady = true
		s.Opening = ev.Value
		s.OpeningErr = ev.Err
		return s
	}
	return s
}

func reduceSnapshot(s State, snap live.Snapshot) State {
	q := snap.Query
	sheetScoped := q.Collection == storage.CollectionPayments || q.Collection == storage.CollectionExpenses
	if sheetScoped && q.SheetID != s.CurrentSheetID {
		// Late delivery from a sheet that is no longer open.
		return s
	}
	if snap.Err != nil {
		s.LastErr = snap.Err
		return s
	}
	s.LastErr = nil

	switch q.Collection {
	case storage.CollectionResidents:
		s.Residents = snap.Residents
	case storage.CollectionSheets:
		s.Sheets = snap.Sheets
		if s.CurrentSheetID != "" {
			s = refreshOpening(s)
		}
	case storage.CollectionSummaries:
		s.Summaries = snap.Summaries
	case storage.CollectionPayments:
		s.Collections = snap.Collections
		s = refreshOpening(s)
	case storage.CollectionExpenses:
		s.Expenses = snap.Expenses
		s = refreshOpening(s)
	}
	return s
}

// refreshOpening asks for a new opening balance for the open sheet. Prior
// sheets are not subscribed, so every delivery for this sheet is the
// trigger. The last value stays on screen until the new one lands.
func refreshOpening(s State) State {
	s.Generation++
	s.OpeningReady = false
	s.OpeningErr = nil
	return s
}

func invalidateOpening(s State) State {
	s.Generation++
	s.Opening = decimal.Zero
	s.OpeningReady = false
	s.OpeningErr = nil
	return s
}

// CurrentSheet returns the open sheet, or nil when none is open or the
// sheets snapshot has not arrived yet.
func (s State) CurrentSheet() *models.Sheet {
	if s.CurrentSheetID == "" {
		return nil
	}
	for _, sh := range s.Sheets {
		if sh != nil && sh.ID == s.CurrentSheetID {
			return sh
		}
	}
	return nil
}

// View is what the screens render.
type View struct {
	ActiveSheets  []*models.Sheet
	DeletedSheets []*models.Sheet
	Residents     []*models.Resident
	Summaries     []*models.MonthlySummary
	RunningTotal  decimal.Decimal

	// Detail view; empty when no sheet is open.
	Sheet        *models.Sheet
	Payments     []calculator.PaymentRow
	Collections  []*models.Collection
	Expenses     []*models.Expense
	SheetSummary calculator.SheetSummary
	OpeningReady bool

	Err error
}

// Derive computes the view from s. It works on partial state: missing
// snapshots read as empty lists.
func Derive(s State) View {
	v := View{
		ActiveSheets:  calculator.ActiveSheetsNewestFirst(s.Sheets),
		DeletedSheets: calculator.DeletedSheets(s.Sheets),
		Residents:     calculator.SortResidents(s.Residents),
		Summaries:     calculator.SortSummariesNewestFirst(s.Summaries),
		RunningTotal:  calculator.RunningTotal(s.Summaries),
		Err:           s.LastErr,
	}

	if s.CurrentSheetID == "" {
		return v
	}
	v.Sheet = s.CurrentSheet()
	v.Collections = s.Collections
	v.Expenses = s.Expenses
	v.Payments = calculator.ComputePaymentStatus(s.Residents, s.Collections, s.Filter)
	v.SheetSummary = calculator.ComputeSheetSummary(s.Opening, s.Collections, s.Expenses)
	v.OpeningReady = s.OpeningReady
	if s.OpeningErr != nil && v.Err == nil {
		v.Err = s.OpeningErr
	}
	return v
}
