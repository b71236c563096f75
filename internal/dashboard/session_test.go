package dashboard

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/societyledger/internal/live"
	"github.com/mmynk/societyledger/internal/models"
	"github.com/mmynk/societyledger/internal/storage/sqlite"
)

type fixture struct {
	hub   *live.Hub
	store *live.Store
	sess  *Session
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	inner, err := sqlite.New(filepath.Join(t.TempDir(), "dash.db"))
	require.NoError(t, err)
	hub := live.NewHub(inner)
	store := live.NewStore(inner, hub)

	sess, err := NewSession(context.Background(), hub, store)
	require.NoError(t, err)
	t.Cleanup(func() {
		sess.Close()
		hub.Close()
		inner.Close()
	})
	return &fixture{hub: hub, store: store, sess: sess}
}

func (f *fixture) waitFor(t *testing.T, msg string, cond func(View) bool) View {
	t.Helper()
	require.Eventually(t, func() bool { return cond(f.sess.View()) }, 3*time.Second, 10*time.Millisecond, msg)
	return f.sess.View()
}

func (f *fixture) sheet(t *testing.T, name string, created time.Time) *models.Sheet {
	t.Helper()
	sh := models.NewSheet(name, created)
	require.NoError(t, f.store.CreateSheet(context.Background(), sh))
	return sh
}

func (f *fixture) pay(t *testing.T, sheetID, flat, amount string) {
	t.Helper()
	c := &models.Collection{
		Date: "2025-01-05", FlatNo: flat, OwnerName: "owner",
		Amount: decimal.RequireFromString(amount), Mode: "Cash", SheetID: sheetID,
	}
	require.NoError(t, f.store.CreateCollection(context.Background(), c))
}

func (f *fixture) spend(t *testing.T, sheetID, amount string) {
	t.Helper()
	e := &models.Expense{Date: "2025-01-06", Description: "Repairs", Amount: decimal.RequireFromString(amount), SheetID: sheetID}
	require.NoError(t, f.store.CreateExpense(context.Background(), e))
}

func TestSessionOpeningBalanceFollowsLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	jan := f.sheet(t, "January", base)
	f.pay(t, jan.ID, "101", "5000")
	f.spend(t, jan.ID, "1200.50")
	feb := f.sheet(t, "February", base.AddDate(0, 1, 0))
	f.pay(t, feb.ID, "101", "3000")

	require.NoError(t, f.sess.OpenSheet(feb.ID))
	v := f.waitFor(t, "opening for February", func(v View) bool {
		return v.OpeningReady && len(v.Collections) == 1
	})
	assert.True(t, v.SheetSummary.Opening.Equal(decimal.RequireFromString("3799.50")), "got %s", v.SheetSummary.Opening)
	assert.True(t, v.SheetSummary.Closing.Equal(decimal.RequireFromString("6799.50")), "got %s", v.SheetSummary.Closing)

	require.NoError(t, f.store.SetSheetState(ctx, jan.ID, models.SheetDeleted))
	f.waitFor(t, "deleted January stops contributing", func(v View) bool {
		return v.OpeningReady && v.SheetSummary.Opening.IsZero() && len(v.DeletedSheets) == 1
	})

	require.NoError(t, f.store.SetSheetState(ctx, jan.ID, models.SheetActive))
	f.waitFor(t, "restored January contributes again", func(v View) bool {
		return v.OpeningReady && v.SheetSummary.Opening.Equal(decimal.RequireFromString("3799.50"))
	})
}

func TestSessionPriorSheetWriteReachesOpening(t *testing.T) {
	f := newFixture(t)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	jan := f.sheet(t, "January", base)
	f.pay(t, jan.ID, "101", "5000")
	feb := f.sheet(t, "February", base.AddDate(0, 1, 0))

	require.NoError(t, f.sess.OpenSheet(feb.ID))
	f.waitFor(t, "opening from January", func(v View) bool {
		return v.OpeningReady && v.SheetSummary.Opening.Equal(decimal.NewFromInt(5000))
	})

	// January is not subscribed; the next February delivery picks it up.
	f.spend(t, jan.ID, "1000")
	f.pay(t, feb.ID, "102", "10")

	v := f.waitFor(t, "opening after January expense", func(v View) bool {
		return v.OpeningReady && len(v.Collections) == 1 && v.SheetSummary.Opening.Equal(decimal.NewFromInt(4000))
	})
	assert.True(t, v.SheetSummary.Closing.Equal(decimal.NewFromInt(4010)), "got %s", v.SheetSummary.Closing)
}

func TestSessionSwitchingSheetsCancelsSubscriptions(t *testing.T) {
	f := newFixture(t)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	jan := f.sheet(t, "January", base)
	feb := f.sheet(t, "February", base.AddDate(0, 1, 0))

	require.Eventually(t, func() bool { return f.hub.Len() == 3 }, 3*time.Second, 10*time.Millisecond)

	require.NoError(t, f.sess.OpenSheet(jan.ID))
	require.Eventually(t, func() bool { return f.hub.Len() == 5 }, 3*time.Second, 10*time.Millisecond)

	require.NoError(t, f.sess.OpenSheet(feb.ID))
	f.waitFor(t, "February open", func(v View) bool { return v.Sheet != nil && v.Sheet.ID == feb.ID })
	require.Eventually(t, func() bool { return f.hub.Len() == 5 }, 3*time.Second, 10*time.Millisecond)

	f.pay(t, jan.ID, "101", "100")
	f.pay(t, feb.ID, "102", "200")
	v := f.waitFor(t, "February payment visible", func(v View) bool { return len(v.Collections) == 1 })
	assert.Equal(t, feb.ID, v.Collections[0].SheetID)

	require.NoError(t, f.sess.CloseSheet())
	require.Eventually(t, func() bool { return f.hub.Len() == 3 }, 3*time.Second, 10*time.Millisecond)
	assert.Nil(t, f.sess.View().Sheet)
}

func TestSessionPaymentRowsAndFilter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sh := f.sheet(t, "March", time.Now())

	for _, r := range []*models.Resident{
		{FlatNo: "A2", OwnerName: "Ravi", MaintAmount: decimal.NewFromInt(1000), Status: models.ResidentUnsold},
		{FlatNo: "A1", OwnerName: "Asha", MaintAmount: decimal.NewFromInt(1000), Status: models.ResidentSold},
		{FlatNo: "A10", OwnerName: "Dev", MaintAmount: decimal.NewFromInt(1000), Status: models.ResidentSold},
	} {
		require.NoError(t, f.store.CreateResident(ctx, r))
	}
	f.pay(t, sh.ID, " A1 ", "1000")

	require.NoError(t, f.sess.OpenSheet(sh.ID))
	v := f.waitFor(t, "rows", func(v View) bool { return len(v.Payments) == 3 && len(v.Collections) == 1 })
	assert.Equal(t, "A1", v.Payments[0].FlatNo)
	assert.Equal(t, "A10", v.Payments[1].FlatNo)
	assert.Equal(t, "A2", v.Payments[2].FlatNo)

	require.NoError(t, f.sess.SetFilter("pending"))
	v = f.waitFor(t, "pending only", func(v View) bool { return len(v.Payments) == 1 })
	assert.Equal(t, "A10", v.Payments[0].FlatNo)
}

func TestSessionRunningTotal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	m := &models.MonthlySummary{MonthName: "January", TotalCollection: decimal.NewFromInt(5000), TotalExpense: decimal.NewFromInt(1500)}
	require.NoError(t, f.store.CreateSummary(ctx, m))
	f.waitFor(t, "first summary", func(v View) bool { return v.RunningTotal.Equal(decimal.NewFromInt(3500)) })

	m.TotalExpense = decimal.NewFromInt(500)
	require.NoError(t, f.store.UpdateSummary(ctx, m))
	f.waitFor(t, "edited summary", func(v View) bool { return v.RunningTotal.Equal(decimal.NewFromInt(4500)) })
}

func TestSessionCloseTearsDown(t *testing.T) {
	f := newFixture(t)
	sh := f.sheet(t, "March", time.Now())
	require.NoError(t, f.sess.OpenSheet(sh.ID))
	require.Eventually(t, func() bool { return f.hub.Len() == 5 }, 3*time.Second, 10*time.Millisecond)

	f.sess.Close()
	require.Eventually(t, func() bool { return f.hub.Len() == 0 }, 3*time.Second, 10*time.Millisecond)

	assert.ErrorIs(t, f.sess.OpenSheet(sh.ID), ErrSessionClosed)
	_, open := <-f.sess.Updates()
	for open {
		_, open = <-f.sess.Updates()
	}
}
