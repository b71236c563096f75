package sqlite

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/societyledger/internal/models"
	"github.com/mmynk/societyledger/internal/storage"
)

const (
	collectionColumns = "id, date, flat_no, owner_name, amount, mode, sheet_id"
	expenseColumns    = "id, date, amount, description, sheet_id"
)

// CreateCollection persists a payment. The (sheet_id, flat_key) unique
// index turns a racing second payment for the same flat into ErrDuplicate.
func (s *SQLiteStore) CreateCollection(ctx context.Context, c *models.Collection) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO maintenance (id, date, flat_no, flat_key, owner_name, amount, mode, sheet_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Date, c.FlatNo, models.NormalizeFlatNo(c.FlatNo), c.OwnerName,
		c.Amount.StringFixed(models.CurrencyPlaces), c.Mode, c.SheetID,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: collection for flat %s in sheet %s",
			storage.ErrDuplicate, models.NormalizeFlatNo(c.FlatNo), c.SheetID)
	}
	if err != nil {
		return fmt.Errorf("failed to insert collection: %w", err)
	}
	return nil
}

// DeleteCollection removes a payment by ID.
func (s *SQLiteStore) DeleteCollection(ctx context.Context, id string) error {
	return s.execOne(ctx, "collection", id, "DELETE FROM maintenance WHERE id = ?", id)
}

// ListCollections returns the payments of one sheet, newest date first.
func (s *SQLiteStore) ListCollections(ctx context.Context, sheetID string) ([]*models.Collection, error) {
	return s.queryCollections(ctx,
		"SELECT "+collectionColumns+" FROM maintenance WHERE sheet_id = ? ORDER BY date DESC, flat_no",
		sheetID)
}

// ListCollectionsForSheets returns the payments of several sheets.
func (s *SQLiteStore) ListCollectionsForSheets(ctx context.Context, sheetIDs []string) ([]*models.Collection, error) {
	if len(sheetIDs) == 0 {
		return nil, nil
	}
	in, args := placeholders(sheetIDs)
	return s.queryCollections(ctx,
		"SELECT "+collectionColumns+" FROM maintenance WHERE sheet_id IN ("+in+")",
		args...)
}

func (s *SQLiteStore) queryCollections(ctx context.Context, query string, args ...any) ([]*models.Collection, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	defer rows.Close()

	var collections []*models.Collection
	for rows.Next() {
		var (
			c      models.Collection
			amount string
		)
		if err := rows.Scan(&c.ID, &c.Date, &c.FlatNo, &c.OwnerName, &amount, &c.Mode, &c.SheetID); err != nil {
			return nil, fmt.Errorf("failed to scan collection: %w", err)
		}
		if c.Amount, err = parseDecimal(amount); err != nil {
			return nil, err
		}
		collections = append(collections, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate collections: %w", err)
	}
	return collections, nil
}

// CreateExpense persists an expense.
func (s *SQLiteStore) CreateExpense(ctx context.Context, e *models.Expense) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO expenses (id, date, amount, description, sheet_id) VALUES (?, ?, ?, ?, ?)",
		e.ID, e.Date, e.Amount.StringFixed(models.CurrencyPlaces), e.Description, e.SheetID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}
	return nil
}

// DeleteExpense removes an expense by ID.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, id string) error {
	return s.execOne(ctx, "expense", id, "DELETE FROM expenses WHERE id = ?", id)
}

// ListExpenses returns the expenses of one sheet, newest date first.
func (s *SQLiteStore) ListExpenses(ctx context.Context, sheetID string) ([]*models.Expense, error) {
	return s.queryExpenses(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE sheet_id = ? ORDER BY date DESC, id",
		sheetID)
}

// ListExpensesForSheets returns the expenses of several sheets.
func (s *SQLiteStore) ListExpensesForSheets(ctx context.Context, sheetIDs []string) ([]*models.Expense, error) {
	if len(sheetIDs) == 0 {
		return nil, nil
	}
	in, args := placeholders(sheetIDs)
	return s.queryExpenses(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE sheet_id IN ("+in+")",
		args...)
}

func (s *SQLiteStore) queryExpenses(ctx context.Context, query string, args ...any) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		var (
			e      models.Expense
			amount string
		)
		if err := rows.Scan(&e.ID, &e.Date, &amount, &e.Description, &e.SheetID); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		if e.Amount, err = parseDecimal(amount); err != nil {
			return nil, err
		}
		expenses = append(expenses, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	return expenses, nil
}
