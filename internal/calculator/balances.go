package calculator

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/societyledger/internal/models"
)

// LedgerReader is the batched multi-get the opening balance needs.
// Implementations must return an empty result for an empty id list.
type LedgerReader interface {
	ListCollectionsForSheets(ctx context.Context, sheetIDs []string) ([]*models.Collection, error)
	ListExpensesForSheets(ctx context.Context, sheetIDs []string) ([]*models.Expense, error)
}

// SheetSummary is the balance view of one sheet.
type SheetSummary struct {
	Opening   decimal.Decimal
	Collected decimal.Decimal
	Spent     decimal.Decimal
	Closing   decimal.Decimal

	// Overdrawn is set when Closing is below zero. It is a display state, not an error.
	Overdrawn bool
}

// PriorActiveSheetIDs returns the ids of active sheets created strictly
// before target. Sheets sharing target's CreatedAt are not included.
func PriorActiveSheetIDs(target *models.Sheet, all []*models.Sheet) []string {
	var ids []string
	for _, s := range all {
		if s == nil || !s.IsActive() {
			continue
		}
		if s.CreatedAt.Before(target.CreatedAt) {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

// ComputeOpeningBalance carries forward the net of every active sheet
// created before target. The result may be negative.
//
// Algorithm:
// - prior = active sheets with CreatedAt < target.CreatedAt
// - no prior sheets: 0, and the ledger is not queried
// - otherwise Σ collections(prior) - Σ expenses(prior), fetched concurrently
func ComputeOpeningBalance(ctx context.Context, target *models.Sheet, all []*models.Sheet, ledger LedgerReader) (decimal.Decimal, error) {
	if target == nil {
		return decimal.Zero, fmt.Errorf("target sheet is required")
	}

	ids := PriorActiveSheetIDs(target, all)
	if len(ids) == 0 {
		return decimal.Zero, nil
	}

	var (
		collections []*models.Collection
		expenses    []*models.Expense
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		collections, err = ledger.ListCollectionsForSheets(gctx, ids)
		if err != nil {
			return fmt.Errorf("failed to load prior collections: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		expenses, err = ledger.ListExpensesForSheets(gctx, ids)
		if err != nil {
			return fmt.Errorf("failed to load prior expenses: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return decimal.Zero, err
	}

	return SumCollections(collections).Sub(SumExpenses(expenses)), nil
}

// ComputeSheetSummary derives the period totals and closing balance.
// It has no side effects and can be called on partial state.
func ComputeSheetSummary(opening decimal.Decimal, collections []*models.Collection, expenses []*models.Expense) SheetSummary {
	collected := SumCollections(collections)
	spent := SumExpenses(expenses)
	closing := opening.Add(collected).Sub(spent)

	return SheetSummary{
		Opening:   opening,
		Collected: collected,
		Spent:     spent,
		Closing:   closing,
		Overdrawn: closing.IsNegative(),
	}
}

// SumCollections totals collection amounts. An empty slice sums to zero.
func SumCollections(collections []*models.Collection) decimal.Decimal {
	total := decimal.Zero
	for _, c := range collections {
		if c != nil {
			total = total.Add(c.Amount)
		}
	}
	return total
}

// SumExpenses totals expense amounts. An empty slice sums to zero.
func SumExpenses(expenses []*models.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		if e != nil {
			total = total.Add(e.Amount)
		}
	}
	return total
}
