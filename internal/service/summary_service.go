package service

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/societyledger/internal/calculator"
	"github.com/mmynk/societyledger/internal/models"
	"github.com/mmynk/societyledger/internal/storage"
	"github.com/mmynk/societyledger/pkg/api"
)

// SummaryService implements the Connect SummaryService for the manual
// monthly rollups. They are independent of sheets.
type SummaryService struct {
	store storage.SummaryStore
}

// NewSummaryService creates a new SummaryService with the given storage backend.
func NewSummaryService(store storage.SummaryStore) *SummaryService {
	return &SummaryService{store: store}
}

func summaryFromForm(id, monthName, totalCollection, totalExpense string) (*models.MonthlySummary, error) {
	collected, err := parseAmount("total_collection", totalCollection)
	if err != nil {
		return nil, err
	}
	spent, err := parseAmount("total_expense", totalExpense)
	if err != nil {
		return nil, err
	}

	m := &models.MonthlySummary{
		ID:              id,
		MonthName:       strings.TrimSpace(monthName),
		TotalCollection: collected,
		TotalExpense:    spent,
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// CreateSummary records a monthly rollup.
func (s *SummaryService) CreateSummary(ctx context.Context, req *connect.Request[api.CreateSummaryRequest]) (*connect.Response[api.SummaryResponse], error) {
	slog.Info("CreateSummary request received", "month", req.Msg.MonthName)

	summary, err := summaryFromForm("", req.Msg.MonthName, req.Msg.TotalCollection, req.Msg.TotalExpense)
	if err != nil {
		return nil, toConnectError(err)
	}
	if err := s.store.CreateSummary(ctx, summary); err != nil {
		slog.Error("CreateSummary failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Summary created", "summary_id", summary.ID)
	return connect.NewResponse(&api.SummaryResponse{Summary: toAPISummary(summary)}), nil
}

// UpdateSummary overwrites month name and totals.
func (s *SummaryService) UpdateSummary(ctx context.Context, req *connect.Request[api.UpdateSummaryRequest]) (*connect.Response[api.SummaryResponse], error) {
	slog.Info("UpdateSummary request received", "summary_id", req.Msg.ID)

	if err := requireID(req.Msg.ID); err != nil {
		return nil, toConnectError(err)
	}
	summary, err := summaryFromForm(req.Msg.ID, req.Msg.MonthName, req.Msg.TotalCollection, req.Msg.TotalExpense)
	if err != nil {
		return nil, toConnectError(err)
	}
	if err := s.store.UpdateSummary(ctx, summary); err != nil {
		slog.Error("UpdateSummary failed", "summary_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}

	// Re-read for CreatedAt.
	updated, err := s.store.GetSummary(ctx, summary.ID)
	if err != nil {
		slog.Error("Failed to fetch updated summary", "summary_id", summary.ID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.SummaryResponse{Summary: toAPISummary(updated)}), nil
}

// DeleteSummary removes a rollup.
func (s *SummaryService) DeleteSummary(ctx context.Context, req *connect.Request[api.DeleteRequest]) (*connect.Response[api.Empty], error) {
	slog.Info("DeleteSummary request received", "summary_id", req.Msg.ID)

	if err := requireID(req.Msg.ID); err != nil {
		return nil, toConnectError(err)
	}
	if err := s.store.DeleteSummary(ctx, req.Msg.ID); err != nil {
		slog.Error("DeleteSummary failed", "summary_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.Empty{}), nil
}

// ListSummaries returns every rollup, newest first, with the running total.
func (s *SummaryService) ListSummaries(ctx context.Context, req *connect.Request[api.ListSummariesRequest]) (*connect.Response[api.ListSummariesResponse], error) {
	summaries, err := s.store.ListSummaries(ctx)
	if err != nil {
		slog.Error("ListSummaries failed", "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.ListSummariesResponse{
		Summaries:    toAPISummaries(calculator.SortSummariesNewestFirst(summaries)),
		RunningTotal: calculator.RunningTotal(summaries),
	}), nil
}
