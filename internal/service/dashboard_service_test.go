package service

import (
	"context"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/societyledger/pkg/api"
)

// receiveUntil reads views until cond holds.
func receiveUntil(t *testing.T, stream *connect.ServerStreamForClient[api.DashboardView], cond func(*api.DashboardView) bool) *api.DashboardView {
	t.Helper()
	for stream.Receive() {
		if v := stream.Msg(); cond(v) {
			return v
		}
	}
	t.Fatalf("stream ended before the expected view: %v", stream.Err())
	return nil
}

func TestWatch(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	jan := createSheet(t, c, "Jan")
	feb := createSheet(t, c, "Feb")
	createResident(t, c, "101", "Asha", "1500", "Sold")
	createResident(t, c, "102", "Bala", "1500", "Sold")
	addCollection(t, c, jan.ID, "101", "2000")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stream, err := c.dashboard.Watch(ctx, connect.NewRequest(&api.WatchRequest{SheetID: feb.ID, Filter: "pending"}))
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	defer stream.Close()

	v := receiveUntil(t, stream, func(v *api.DashboardView) bool {
		return v.Sheet != nil && v.OpeningReady && len(v.Payments) == 2 && len(v.ActiveSheets) == 2
	})
	expectAmount(t, "opening", v.Summary.Opening, "2000")
	if v.ActiveSheets[0].ID != feb.ID {
		t.Errorf("expected newest sheet first, got %s", v.ActiveSheets[0].Name)
	}

	addCollection(t, c, feb.ID, "101", "1500")

	v = receiveUntil(t, stream, func(v *api.DashboardView) bool {
		return len(v.Payments) == 1 && v.Summary != nil && v.Summary.Collected.Equal(decimal.NewFromInt(1500))
	})
	if v.Payments[0].FlatNo != "102" {
		t.Errorf("pending filter: expected only 102, got %s", v.Payments[0].FlatNo)
	}
	expectAmount(t, "closing", v.Summary.Closing, "3500")

	// Deleting the older sheet drops it from the opening balance.
	if _, err := c.sheets.SoftDeleteSheet(context.Background(), connect.NewRequest(&api.SoftDeleteSheetRequest{ID: jan.ID, Confirm: true})); err != nil {
		t.Fatalf("SoftDeleteSheet failed: %v", err)
	}
	v = receiveUntil(t, stream, func(v *api.DashboardView) bool {
		return len(v.DeletedSheets) == 1 && v.OpeningReady
	})
	expectAmount(t, "opening after delete", v.Summary.Opening, "0")
	expectAmount(t, "closing after delete", v.Summary.Closing, "1500")
}

func TestWatch_WithoutSheet(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stream, err := c.dashboard.Watch(ctx, connect.NewRequest(&api.WatchRequest{}))
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	defer stream.Close()

	if _, err := c.summaries.CreateSummary(context.Background(), connect.NewRequest(&api.CreateSummaryRequest{
		MonthName: "March 2026", TotalCollection: "900", TotalExpense: "400",
	})); err != nil {
		t.Fatalf("CreateSummary failed: %v", err)
	}

	v := receiveUntil(t, stream, func(v *api.DashboardView) bool {
		return len(v.Summaries) == 1
	})
	expectAmount(t, "running total", v.RunningTotal, "500")
	if v.Sheet != nil || v.Summary != nil {
		t.Error("expected no detail view without a sheet")
	}
}
