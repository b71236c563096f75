package service

import (
	"bytes"
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/societyledger/internal/export"
	"github.com/mmynk/societyledger/internal/models"
	"github.com/mmynk/societyledger/internal/storage"
	"github.com/mmynk/societyledger/pkg/api"
)

// ExportService implements the Connect ExportService.
type ExportService struct {
	store storage.Store
}

// NewExportService creates a new ExportService with the given storage backend.
func NewExportService(store storage.Store) *ExportService {
	return &ExportService{store: store}
}

// ExportSheet renders a sheet's payment status and expenses as an .xlsx
// workbook.
func (s *ExportService) ExportSheet(ctx context.Context, req *connect.Request[api.ExportSheetRequest]) (*connect.Response[api.ExportSheetResponse], error) {
	slog.Info("ExportSheet request received", "sheet_id", req.Msg.SheetID)

	if req.Msg.SheetID == "" {
		return nil, toConnectError(models.ErrEmptySheetID)
	}
	sheet, err := s.store.GetSheet(ctx, req.Msg.SheetID)
	if err != nil {
		slog.Error("ExportSheet failed", "sheet_id", req.Msg.SheetID, "error", err)
		return nil, toConnectError(err)
	}

	balance, err := loadSheetBalance(ctx, s.store, sheet)
	if err != nil {
		slog.Error("ExportSheet failed to compute balance", "sheet_id", sheet.ID, "error", err)
		return nil, toConnectError(err)
	}
	residents, err := s.store.ListResidents(ctx)
	if err != nil {
		slog.Error("ExportSheet failed to load residents", "error", err)
		return nil, toConnectError(err)
	}

	var buf bytes.Buffer
	err = export.WriteWorkbook(&buf, export.Snapshot{
		SheetName:   sheet.Name,
		Summary:     balance.Summary,
		Residents:   residents,
		Collections: balance.Collections,
		Expenses:    balance.Expenses,
	})
	if err != nil {
		slog.Error("ExportSheet failed to render workbook", "sheet_id", sheet.ID, "error", err)
		return nil, toConnectError(err)
	}

	filename := export.Filename(sheet.Name)
	slog.Info("Sheet exported", "sheet_id", sheet.ID, "filename", filename, "bytes", buf.Len())

	resp := connect.NewResponse(&api.ExportSheetResponse{
		Filename: filename,
		Content:  buf.Bytes(),
	})
	resp.Header().Set("X-Export-Content-Type", export.ContentType)
	return resp, nil
}
