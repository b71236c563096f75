package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/societyledger/internal/calculator"
	"github.com/mmynk/societyledger/internal/metrics"
	"github.com/mmynk/societyledger/internal/models"
	"github.com/mmynk/societyledger/internal/storage"
	"github.com/mmynk/societyledger/pkg/api"
)

// LedgerService implements the Connect LedgerService: collections,
// expenses and the per-sheet balance and payment status views.
type LedgerService struct {
	store storage.Store
}

// NewLedgerService creates a new LedgerService with the given storage backend.
func NewLedgerService(store storage.Store) *LedgerService {
	return &LedgerService{store: store}
}

// AddCollection logs a maintenance payment. A flat can pay at most once
// per sheet. When the owner name is left blank it is taken from the roster.
func (s *LedgerService) AddCollection(ctx context.Context, req *connect.Request[api.AddCollectionRequest]) (*connect.Response[api.CollectionResponse], error) {
	slog.Info("AddCollection request received",
		"sheet_id", req.Msg.SheetID,
		"flat_no", req.Msg.FlatNo,
		"amount", req.Msg.Amount,
	)

	amount, err := parseAmount("amount", req.Msg.Amount)
	if err != nil {
		return nil, toConnectError(err)
	}
	collection := &models.Collection{
		Date:      strings.TrimSpace(req.Msg.Date),
		FlatNo:    models.NormalizeFlatNo(req.Msg.FlatNo),
		OwnerName: strings.TrimSpace(req.Msg.OwnerName),
		Amount:    amount,
		Mode:      strings.TrimSpace(req.Msg.Mode),
		SheetID:   req.Msg.SheetID,
	}
	if err := collection.Validate(); err != nil {
		slog.Warn("AddCollection rejected", "flat_no", req.Msg.FlatNo, "error", err)
		return nil, toConnectError(err)
	}

	if _, err := s.activeSheet(ctx, collection.SheetID); err != nil {
		return nil, toConnectError(err)
	}

	existing, err := s.store.ListCollections(ctx, collection.SheetID)
	if err != nil {
		slog.Error("AddCollection failed to load sheet collections", "sheet_id", collection.SheetID, "error", err)
		return nil, toConnectError(err)
	}
	if err := calculator.DuplicatePaymentGuard(collection.FlatNo, existing); err != nil {
		slog.Warn("AddCollection rejected", "sheet_id", collection.SheetID, "flat_no", collection.FlatNo, "error", err)
		return nil, toConnectError(err)
	}

	if collection.OwnerName == "" {
		resident, err := findByFlat(ctx, s.store, collection.FlatNo)
		if err != nil {
			return nil, toConnectError(err)
		}
		if resident != nil {
			collection.OwnerName = resident.OwnerName
		}
	}

	if err := s.store.CreateCollection(ctx, collection); err != nil {
		// The unique index catches a concurrent add that passed the guard.
		if errors.Is(err, storage.ErrDuplicate) {
			err = fmt.Errorf("%w: %s", calculator.ErrDuplicatePayment, collection.FlatNo)
			slog.Warn("AddCollection rejected", "sheet_id", collection.SheetID, "flat_no", collection.FlatNo, "error", err)
			return nil, toConnectError(err)
		}
		slog.Error("AddCollection failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Collection added", "collection_id", collection.ID, "sheet_id", collection.SheetID)
	return connect.NewResponse(&api.CollectionResponse{Collection: toAPICollection(collection)}), nil
}

// DeleteCollection removes a payment.
func (s *LedgerService) DeleteCollection(ctx context.Context, req *connect.Request[api.DeleteRequest]) (*connect.Response[api.Empty], error) {
	slog.Info("DeleteCollection request received", "collection_id", req.Msg.ID)

	if err := requireID(req.Msg.ID); err != nil {
		return nil, toConnectError(err)
	}
	if err := s.store.DeleteCollection(ctx, req.Msg.ID); err != nil {
		slog.Error("DeleteCollection failed", "collection_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.Empty{}), nil
}

// ListCollections returns a sheet's payments, latest date first.
func (s *LedgerService) ListCollections(ctx context.Context, req *connect.Request[api.SheetScopedRequest]) (*connect.Response[api.ListCollectionsResponse], error) {
	if req.Msg.SheetID == "" {
		return nil, toConnectError(models.ErrEmptySheetID)
	}
	collections, err := s.store.ListCollections(ctx, req.Msg.SheetID)
	if err != nil {
		slog.Error("ListCollections failed", "sheet_id", req.Msg.SheetID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.ListCollectionsResponse{Collections: toAPICollections(collections)}), nil
}

// AddExpense logs money spent from a sheet.
func (s *LedgerService) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.ExpenseResponse], error) {
	slog.Info("AddExpense request received",
		"sheet_id", req.Msg.SheetID,
		"amount", req.Msg.Amount,
	)

	amount, err := parseAmount("amount", req.Msg.Amount)
	if err != nil {
		return nil, toConnectError(err)
	}
	expense := &models.Expense{
		Date:        strings.TrimSpace(req.Msg.Date),
		Amount:      amount,
		Description: strings.TrimSpace(req.Msg.Description),
		SheetID:     req.Msg.SheetID,
	}
	if err := expense.Validate(); err != nil {
		slog.Warn("AddExpense rejected", "sheet_id", req.Msg.SheetID, "error", err)
		return nil, toConnectError(err)
	}

	if _, err := s.activeSheet(ctx, expense.SheetID); err != nil {
		return nil, toConnectError(err)
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("AddExpense failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Expense added", "expense_id", expense.ID, "sheet_id", expense.SheetID)
	return connect.NewResponse(&api.ExpenseResponse{Expense: toAPIExpense(expense)}), nil
}

// DeleteExpense removes an expense.
func (s *LedgerService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteRequest]) (*connect.Response[api.Empty], error) {
	slog.Info("DeleteExpense request received", "expense_id", req.Msg.ID)

	if err := requireID(req.Msg.ID); err != nil {
		return nil, toConnectError(err)
	}
	if err := s.store.DeleteExpense(ctx, req.Msg.ID); err != nil {
		slog.Error("DeleteExpense failed", "expense_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.Empty{}), nil
}

// ListExpenses returns a sheet's expenses, latest date first.
func (s *LedgerService) ListExpenses(ctx context.Context, req *connect.Request[api.SheetScopedRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	if req.Msg.SheetID == "" {
		return nil, toConnectError(models.ErrEmptySheetID)
	}
	expenses, err := s.store.ListExpenses(ctx, req.Msg.SheetID)
	if err != nil {
		slog.Error("ListExpenses failed", "sheet_id", req.Msg.SheetID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.ListExpensesResponse{Expenses: toAPIExpenses(expenses)}), nil
}

// GetSheetSummary returns opening, collected, spent and closing for a sheet.
func (s *LedgerService) GetSheetSummary(ctx context.Context, req *connect.Request[api.SheetScopedRequest]) (*connect.Response[api.SheetSummaryResponse], error) {
	slog.Info("GetSheetSummary request received", "sheet_id", req.Msg.SheetID)

	if req.Msg.SheetID == "" {
		return nil, toConnectError(models.ErrEmptySheetID)
	}
	sheet, err := s.store.GetSheet(ctx, req.Msg.SheetID)
	if err != nil {
		slog.Error("GetSheetSummary failed", "sheet_id", req.Msg.SheetID, "error", err)
		return nil, toConnectError(err)
	}

	balance, err := loadSheetBalance(ctx, s.store, sheet)
	if err != nil {
		slog.Error("GetSheetSummary failed", "sheet_id", sheet.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("GetSheetSummary successful",
		"sheet_id", sheet.ID,
		"opening", balance.Summary.Opening.String(),
		"closing", balance.Summary.Closing.String(),
	)
	return connect.NewResponse(&api.SheetSummaryResponse{
		Summary: toAPISheetSummary(sheet.ID, balance.Summary),
	}), nil
}

// GetPaymentStatus reconciles the roster against a sheet's payments.
func (s *LedgerService) GetPaymentStatus(ctx context.Context, req *connect.Request[api.GetPaymentStatusRequest]) (*connect.Response[api.GetPaymentStatusResponse], error) {
	if req.Msg.SheetID == "" {
		return nil, toConnectError(models.ErrEmptySheetID)
	}

	residents, err := s.store.ListResidents(ctx)
	if err != nil {
		slog.Error("GetPaymentStatus failed to load residents", "error", err)
		return nil, toConnectError(err)
	}
	collections, err := s.store.ListCollections(ctx, req.Msg.SheetID)
	if err != nil {
		slog.Error("GetPaymentStatus failed to load collections", "sheet_id", req.Msg.SheetID, "error", err)
		return nil, toConnectError(err)
	}

	rows := calculator.ComputePaymentStatus(residents, collections, calculator.ParseStatusFilter(req.Msg.Filter))
	return connect.NewResponse(&api.GetPaymentStatusResponse{Rows: toAPIPaymentRows(rows)}), nil
}

// activeSheet loads a sheet and rejects writes to one in the recycle bin.
func (s *LedgerService) activeSheet(ctx context.Context, id string) (*models.Sheet, error) {
	sheet, err := s.store.GetSheet(ctx, id)
	if err != nil {
		return nil, err
	}
	if !sheet.IsActive() {
		slog.Warn("Write to inactive sheet rejected", "sheet_id", id, "state", sheet.State)
		return nil, fmt.Errorf("%w: %s", models.ErrSheetNotActive, sheet.Name)
	}
	return sheet, nil
}

// sheetBalance is a sheet's ledger with its computed summary.
type sheetBalance struct {
	Collections []*models.Collection
	Expenses    []*models.Expense
	Summary     calculator.SheetSummary
}

func loadSheetBalance(ctx context.Context, store storage.Store, sheet *models.Sheet) (*sheetBalance, error) {
	sheets, err := store.ListSheets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sheets: %w", err)
	}

	start := time.Now()
	opening, err := calculator.ComputeOpeningBalance(ctx, sheet, sheets, store)
	metrics.OpeningBalanceDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	collections, err := store.ListCollections(ctx, sheet.ID)
	if err != nil {
		return nil, err
	}
	expenses, err := store.ListExpenses(ctx, sheet.ID)
	if err != nil {
		return nil, err
	}

	return &sheetBalance{
		Collections: collections,
		Expenses:    expenses,
		Summary:     calculator.ComputeSheetSummary(opening, collections, expenses),
	}, nil
}
