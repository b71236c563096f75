package service

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/societyledger/internal/calculator"
	"github.com/mmynk/societyledger/internal/models"
	"github.com/mmynk/societyledger/internal/storage"
	"github.com/mmynk/societyledger/pkg/api"
)

// SheetService implements the Connect SheetService: sheet creation and the
// active -> deleted -> purged lifecycle.
type SheetService struct {
	store storage.SheetStore
	now   func() time.Time
}

// NewSheetService creates a new SheetService with the given storage backend.
func NewSheetService(store storage.SheetStore) *SheetService {
	return &SheetService{store: store, now: time.Now}
}

// CreateSheet opens a new active sheet stamped with the current time.
func (s *SheetService) CreateSheet(ctx context.Context, req *connect.Request[api.CreateSheetRequest]) (*connect.Response[api.SheetResponse], error) {
	slog.Info("CreateSheet request received", "name", req.Msg.Name)

	sheet := models.NewSheet(req.Msg.Name, s.now())
	if err := sheet.Validate(); err != nil {
		return nil, toConnectError(err)
	}

	if err := s.store.CreateSheet(ctx, sheet); err != nil {
		slog.Error("CreateSheet failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Sheet created", "sheet_id", sheet.ID, "name", sheet.Name)
	return connect.NewResponse(&api.SheetResponse{Sheet: toAPISheet(sheet)}), nil
}

// GetSheet retrieves a sheet by ID in any state.
func (s *SheetService) GetSheet(ctx context.Context, req *connect.Request[api.GetSheetRequest]) (*connect.Response[api.SheetResponse], error) {
	if err := requireID(req.Msg.ID); err != nil {
		return nil, toConnectError(err)
	}
	sheet, err := s.store.GetSheet(ctx, req.Msg.ID)
	if err != nil {
		slog.Error("GetSheet failed", "sheet_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.SheetResponse{Sheet: toAPISheet(sheet)}), nil
}

// SoftDeleteSheet moves an active sheet to the recycle bin. Its ledger is
// kept but stops counting toward later opening balances.
func (s *SheetService) SoftDeleteSheet(ctx context.Context, req *connect.Request[api.SoftDeleteSheetRequest]) (*connect.Response[api.SheetResponse], error) {
	slog.Info("SoftDeleteSheet request received", "sheet_id", req.Msg.ID)

	if !req.Msg.Confirm {
		return nil, toConnectError(ErrConfirmationRequired)
	}
	sheet, err := s.transition(ctx, req.Msg.ID, models.EventSoftDelete)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.SheetResponse{Sheet: toAPISheet(sheet)}), nil
}

// RestoreSheet moves a sheet out of the recycle bin.
func (s *SheetService) RestoreSheet(ctx context.Context, req *connect.Request[api.RestoreSheetRequest]) (*connect.Response[api.SheetResponse], error) {
	slog.Info("RestoreSheet request received", "sheet_id", req.Msg.ID)

	sheet, err := s.transition(ctx, req.Msg.ID, models.EventRestore)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.SheetResponse{Sheet: toAPISheet(sheet)}), nil
}

// PurgeSheet permanently removes a deleted sheet with all of its
// collections and expenses. Either everything goes or nothing does.
func (s *SheetService) PurgeSheet(ctx context.Context, req *connect.Request[api.PurgeSheetRequest]) (*connect.Response[api.Empty], error) {
	slog.Info("PurgeSheet request received", "sheet_id", req.Msg.ID)

	if !req.Msg.Confirm {
		return nil, toConnectError(ErrConfirmationRequired)
	}
	sheet, err := s.load(ctx, req.Msg.ID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if _, err := sheet.State.Next(models.EventPurge); err != nil {
		slog.Warn("PurgeSheet rejected", "sheet_id", sheet.ID, "state", sheet.State, "error", err)
		return nil, toConnectError(err)
	}

	if err := s.store.PurgeSheet(ctx, sheet.ID); err != nil {
		slog.Error("PurgeSheet failed", "sheet_id", sheet.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Sheet purged", "sheet_id", sheet.ID, "name", sheet.Name)
	return connect.NewResponse(&api.Empty{}), nil
}

// ListActiveSheets returns the dashboard sheets, newest first.
func (s *SheetService) ListActiveSheets(ctx context.Context, req *connect.Request[api.ListSheetsRequest]) (*connect.Response[api.ListSheetsResponse], error) {
	sheets, err := s.store.ListSheets(ctx)
	if err != nil {
		slog.Error("ListActiveSheets failed", "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.ListSheetsResponse{
		Sheets: toAPISheets(calculator.ActiveSheetsNewestFirst(sheets)),
	}), nil
}

// ListDeletedSheets returns the recycle bin.
func (s *SheetService) ListDeletedSheets(ctx context.Context, req *connect.Request[api.ListSheetsRequest]) (*connect.Response[api.ListSheetsResponse], error) {
	sheets, err := s.store.ListSheets(ctx)
	if err != nil {
		slog.Error("ListDeletedSheets failed", "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.ListSheetsResponse{
		Sheets: toAPISheets(calculator.DeletedSheets(sheets)),
	}), nil
}

func (s *SheetService) load(ctx context.Context, id string) (*models.Sheet, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	sheet, err := s.store.GetSheet(ctx, id)
	if err != nil {
		slog.Error("Failed to load sheet", "sheet_id", id, "error", err)
		return nil, err
	}
	return sheet, nil
}

// transition applies ev to the stored sheet and persists the new state.
func (s *SheetService) transition(ctx context.Context, id string, ev models.SheetEvent) (*models.Sheet, error) {
	sheet, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := sheet.State.Next(ev)
	if err != nil {
		slog.Warn("Sheet transition rejected", "sheet_id", id, "state", sheet.State, "event", ev)
		return nil, err
	}
	if err := s.store.SetSheetState(ctx, id, next); err != nil {
		slog.Error("Failed to set sheet state", "sheet_id", id, "state", next, "error", err)
		return nil, err
	}

	slog.Info("Sheet state changed", "sheet_id", id, "from", sheet.State, "to", next)
	sheet.State = next
	return sheet, nil
}
