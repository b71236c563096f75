package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/societyledger/pkg/api"
)

func TestSummaries(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	created := make([]*api.MonthlySummary, 0, 2)
	for _, req := range []*api.CreateSummaryRequest{
		{MonthName: "January 2026", TotalCollection: "5000", TotalExpense: "3000"},
		{MonthName: "February 2026", TotalCollection: "4000", TotalExpense: "2500"},
	} {
		resp, err := c.summaries.CreateSummary(ctx, connect.NewRequest(req))
		if err != nil {
			t.Fatalf("CreateSummary failed: %v", err)
		}
		created = append(created, resp.Msg.Summary)
	}
	expectAmount(t, "net", created[0].Net, "2000")

	list, err := c.summaries.ListSummaries(ctx, connect.NewRequest(&api.ListSummariesRequest{}))
	if err != nil {
		t.Fatalf("ListSummaries failed: %v", err)
	}
	if len(list.Msg.Summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(list.Msg.Summaries))
	}
	expectAmount(t, "running total", list.Msg.RunningTotal, "3500")

	updated, err := c.summaries.UpdateSummary(ctx, connect.NewRequest(&api.UpdateSummaryRequest{
		ID:              created[1].ID,
		MonthName:       "February 2026",
		TotalCollection: "5000",
		TotalExpense:    "2500",
	}))
	if err != nil {
		t.Fatalf("UpdateSummary failed: %v", err)
	}
	if !updated.Msg.Summary.CreatedAt.Equal(created[1].CreatedAt) {
		t.Errorf("update changed CreatedAt: %v -> %v", created[1].CreatedAt, updated.Msg.Summary.CreatedAt)
	}

	list, _ = c.summaries.ListSummaries(ctx, connect.NewRequest(&api.ListSummariesRequest{}))
	expectAmount(t, "running total after update", list.Msg.RunningTotal, "4500")

	if _, err := c.summaries.DeleteSummary(ctx, connect.NewRequest(&api.DeleteRequest{ID: created[0].ID})); err != nil {
		t.Fatalf("DeleteSummary failed: %v", err)
	}
	list, _ = c.summaries.ListSummaries(ctx, connect.NewRequest(&api.ListSummariesRequest{}))
	if len(list.Msg.Summaries) != 1 {
		t.Errorf("expected 1 summary after delete, got %d", len(list.Msg.Summaries))
	}
	expectAmount(t, "running total after delete", list.Msg.RunningTotal, "2500")
}

func TestSummaries_Errors(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	_, err := c.summaries.CreateSummary(ctx, connect.NewRequest(&api.CreateSummaryRequest{TotalCollection: "10"}))
	expectCode(t, err, connect.CodeInvalidArgument)

	_, err = c.summaries.CreateSummary(ctx, connect.NewRequest(&api.CreateSummaryRequest{MonthName: "May", TotalExpense: "-5"}))
	expectCode(t, err, connect.CodeInvalidArgument)

	_, err = c.summaries.UpdateSummary(ctx, connect.NewRequest(&api.UpdateSummaryRequest{ID: "nonexistent-id", MonthName: "May"}))
	expectCode(t, err, connect.CodeNotFound)

	_, err = c.summaries.DeleteSummary(ctx, connect.NewRequest(&api.DeleteRequest{ID: "nonexistent-id"}))
	expectCode(t, err, connect.CodeNotFound)
}
