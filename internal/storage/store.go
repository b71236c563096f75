// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/societyledger/internal/models"
)

// Logical collection names. They double as live-query topics.
const (
	CollectionResidents = "residents"
	CollectionSheets    = "expense_sheets"
	CollectionPayments  = "maintenance"
	CollectionExpenses  = "expenses"
	CollectionSummaries = "monthly_summary"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a write violates a uniqueness constraint.
	ErrDuplicate = errors.New("duplicate record")
)

// Store defines the interface for society ledger storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	ResidentStore
	SheetStore
	LedgerStore
	SummaryStore

	// Close releases any resources held by the store.
	Close() error
}

// ResidentStore persists the resident roster.
type ResidentStore interface {
	// CreateResident persists a new resident. resident.ID is populated by the store.
	CreateResident(ctx context.Context, resident *models.Resident) error
	GetResident(ctx context.Context, id string) (*models.Resident, error)
	// UpdateResident overwrites the editable fields of an existing resident.
	UpdateResident(ctx context.Context, resident *models.Resident) error
	DeleteResident(ctx context.Context, id string) error
	ListResidents(ctx context.Context) ([]*models.Resident, error)
}

// SheetStore persists expense sheets and their lifecycle state.
type SheetStore interface {
	// CreateSheet persists a new sheet. sheet.ID is populated by the store.
	CreateSheet(ctx context.Context, sheet *models.Sheet) error
	GetSheet(ctx context.Context, id string) (*models.Sheet, error)
	ListSheets(ctx context.Context) ([]*models.Sheet, error)
	// SetSheetState records a soft delete or restore.
	SetSheetState(ctx context.Context, id string, state models.SheetState) error
	// PurgeSheet removes the sheet and every collection and expense
	// referencing it in one transaction. Either all rows go or none do.
	PurgeSheet(ctx context.Context, id string) error
}

// LedgerStore persists collections and expenses.
type LedgerStore interface {
	// CreateCollection persists a payment. Returns ErrDuplicate when the
	// flat already has a collection in the sheet.
	CreateCollection(ctx context.Context, collection *models.Collection) error
	DeleteCollection(ctx context.Context, id string) error
	ListCollections(ctx context.Context, sheetID string) ([]*models.Collection, error)
	// ListCollectionsForSheets is the batched read used for opening balances.
	ListCollectionsForSheets(ctx context.Context, sheetIDs []string) ([]*models.Collection, error)

	CreateExpense(ctx context.Context, expense *models.Expense) error
	DeleteExpense(ctx context.Context, id string) error
	ListExpenses(ctx context.Context, sheetID string) ([]*models.Expense, error)
	ListExpensesForSheets(ctx context.Context, sheetIDs []string) ([]*models.Expense, error)
}

// SummaryStore persists the manual monthly summaries.
type SummaryStore interface {
	CreateSummary(ctx context.Context, summary *models.MonthlySummary) error
	GetSummary(ctx context.Context, id string) (*models.MonthlySummary, error)
	UpdateSummary(ctx context.Context, summary *models.MonthlySummary) error
	DeleteSummary(ctx context.Context, id string) error
	ListSummaries(ctx context.Context) ([]*models.MonthlySummary, error)
}
