package dashboard

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/societyledger/internal/calculator"
	"github.com/mmynk/societyledger/internal/live"
	"github.com/mmynk/societyledger/internal/models"
	"github.com/mmynk/societyledger/internal/storage"
)

func snapshot(collection, sheetID string) live.Snapshot {
	return live.Snapshot{Query: live.Query{Collection: collection, SheetID: sheetID}}
}

func TestReducePartialState(t *testing.T) {
	s := Reduce(State{Filter: calculator.FilterAll}, SheetOpened{SheetID: "s1"})

	snap := snapshot(storage.CollectionPayments, "s1")
	snap.Collections = []*models.Collection{{FlatNo: "A1", Amount: decimal.NewFromInt(100), SheetID: "s1"}}
	s = Reduce(s, SnapshotReceived{Snapshot: snap})

	v := Derive(s)
	assert.Empty(t, v.Payments, "no residents yet means no rows")
	assert.True(t, v.SheetSummary.Collected.Equal(decimal.NewFromInt(100)))
	assert.Nil(t, v.Sheet, "sheets snapshot not received yet")

	rsnap := snapshot(storage.CollectionResidents, "")
	rsnap.Residents = []*models.Resident{
		{FlatNo: "A1", Status: models.ResidentSold},
		{FlatNo: "A2", Status: models.ResidentUnsold},
	}
	s = Reduce(s, SnapshotReceived{Snapshot: rsnap})
	v = Derive(s)
	require.Len(t, v.Payments, 2)
	assert.Equal(t, calculator.StatusPaid, v.Payments[0].Status)
	assert.Equal(t, calculator.StatusNotApplicable, v.Payments[1].Status)

	s = Reduce(s, FilterChanged{Filter: calculator.FilterPending})
	assert.Empty(t, Derive(s).Payments)
}

func TestReduceReplacesNotMerges(t *testing.T) {
	s := State{}
	first := snapshot(storage.CollectionResidents, "")
	first.Residents = []*models.Resident{{FlatNo: "A1"}, {FlatNo: "A2"}}
	s = Reduce(s, SnapshotReceived{Snapshot: first})

	second := snapshot(storage.CollectionResidents, "")
	second.Residents = []*models.Resident{{FlatNo: "B1"}}
	s = Reduce(s, SnapshotReceived{Snapshot: second})

	require.Len(t, s.Residents, 1)
	assert.Equal(t, "B1", s.Residents[0].FlatNo)
}

func TestReduceDropsStaleDeliveries(t *testing.T) {
	s := Reduce(State{}, SheetOpened{SheetID: "s1"})
	genS1 := s.Generation
	s = Reduce(s, SheetOpened{SheetID: "s2"})

	late := snapshot(storage.CollectionExpenses, "s1")
	late.Expenses = []*models.Expense{{Amount: decimal.NewFromInt(5), SheetID: "s1"}}
	s = Reduce(s, SnapshotReceived{Snapshot: late})
	assert.Empty(t, s.Expenses, "snapshot for a sheet no longer open")

	s = Reduce(s, OpeningComputed{Generation: genS1, Value: decimal.NewFromInt(999)})
	assert.False(t, s.OpeningReady, "opening from the previous sheet")

	s = Reduce(s, OpeningComputed{Generation: s.Generation, Value: decimal.NewFromInt(42)})
	assert.True(t, s.OpeningReady)
	assert.True(t, s.Opening.Equal(decimal.NewFromInt(42)))
}

func TestReduceSheetsSnapshotInvalidatesOpening(t *testing.T) {
	s := Reduce(State{}, SheetOpened{SheetID: "s1"})
	s = Reduce(s, OpeningComputed{Generation: s.Generation, Value: decimal.NewFromInt(10)})
	require.True(t, s.OpeningReady)

	sheets := snapshot(storage.CollectionSheets, "")
	sheets.Sheets = []*models.Sheet{{ID: "s1", Name: "March", CreatedAt: time.Now(), State: models.SheetActive}}
	before := s.Generation
	s = Reduce(s, SnapshotReceived{Snapshot: sheets})

	assert.False(t, s.OpeningReady)
	assert.Greater(t, s.Generation, before)
	assert.NotNil(t, s.CurrentSheet())
}

func TestReduceLedgerSnapshotRefreshesOpening(t *testing.T) {
	for _, collection := range []string{storage.CollectionPayments, storage.CollectionExpenses} {
		t.Run(collection, func(t *testing.T) {
			s := Reduce(State{}, SheetOpened{SheetID: "s1"})
			s = Reduce(s, OpeningComputed{Generation: s.Generation, Value: decimal.NewFromInt(5000)})
			require.True(t, s.OpeningReady)

			before := s.Generation
			s = Reduce(s, SnapshotReceived{Snapshot: snapshot(collection, "s1")})
			assert.False(t, s.OpeningReady)
			assert.Greater(t, s.Generation, before)
			assert.True(t, s.Opening.Equal(decimal.NewFromInt(5000)), "previous value kept until recomputed")

			s = Reduce(s, OpeningComputed{Generation: before, Value: decimal.NewFromInt(1)})
			assert.False(t, s.OpeningReady, "result for the older generation")

			s = Reduce(s, OpeningComputed{Generation: s.Generation, Value: decimal.NewFromInt(4000)})
			assert.True(t, s.OpeningReady)
			assert.True(t, s.Opening.Equal(decimal.NewFromInt(4000)))
		})
	}
}

func TestReduceKeepsDataOnReadError(t *testing.T) {
	ok := snapshot(storage.CollectionSummaries, "")
	ok.Summaries = []*models.MonthlySummary{{MonthName: "Jan", TotalCollection: decimal.NewFromInt(10)}}
	s := Reduce(State{}, SnapshotReceived{Snapshot: ok})

	failed := snapshot(storage.CollectionSummaries, "")
	failed.Err = errors.New("store unavailable")
	s = Reduce(s, SnapshotReceived{Snapshot: failed})

	assert.Len(t, s.Summaries, 1)
	assert.Error(t, Derive(s).Err)
	assert.True(t, Derive(s).RunningTotal.Equal(decimal.NewFromInt(10)))
}

func TestSheetClosedClearsDetail(t *testing.T) {
	s := Reduce(State{}, SheetOpened{SheetID: "s1"})
	snap := snapshot(storage.CollectionPayments, "s1")
	snap.Collections = []*models.Collection{{FlatNo: "A1"}}
	s = Reduce(s, SnapshotReceived{Snapshot: snap})

	s = Reduce(s, SheetClosed{})
	v := Derive(s)
	assert.Empty(t, s.CurrentSheetID)
	assert.Empty(t, s.Collections)
	assert.Nil(t, v.Payments)
}
