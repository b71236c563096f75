package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/societyledger/internal/models"
	"github.com/mmynk/societyledger/internal/storage"
)

// CreateSheet persists a new sheet. CreatedAt is stored with millisecond
// precision and the model is truncated to match.
func (s *SQLiteStore) CreateSheet(ctx context.Context, sheet *models.Sheet) error {
	if sheet.ID == "" {
		sheet.ID = uuid.New().String()
	}
	if sheet.CreatedAt.IsZero() {
		sheet.CreatedAt = time.Now()
	}
	if sheet.State == "" {
		sheet.State = models.SheetActive
	}
	sheet.CreatedAt = fromMillis(toMillis(sheet.CreatedAt))

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO expense_sheets (id, name, created_at, status) VALUES (?, ?, ?, ?)",
		sheet.ID, sheet.Name, toMillis(sheet.CreatedAt), string(sheet.State),
	)
	if err != nil {
		return fmt.Errorf("failed to insert sheet: %w", err)
	}
	return nil
}

// GetSheet retrieves a sheet by ID.
func (s *SQLiteStore) GetSheet(ctx context.Context, id string) (*models.Sheet, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, created_at, status FROM expense_sheets WHERE id = ?", id)
	sheet, err := scanSheet(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: sheet %s", storage.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sheet: %w", err)
	}
	return sheet, nil
}

// ListSheets returns every stored sheet, oldest first.
func (s *SQLiteStore) ListSheets(ctx context.Context) ([]*models.Sheet, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, created_at, status FROM expense_sheets ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list sheets: %w", err)
	}
	defer rows.Close()

	var sheets []*models.Sheet
	for rows.Next() {
		sheet, err := scanSheet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sheet: %w", err)
		}
		sheets = append(sheets, sheet)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sheets: %w", err)
	}
	return sheets, nil
}

// SetSheetState stores a soft delete or restore. Purged is not a stored
// state; use PurgeSheet.
func (s *SQLiteStore) SetSheetState(ctx context.Context, id string, state models.SheetState) error {
	if _, err := models.ParseSheetState(string(state)); err != nil {
		return err
	}
	return s.execOne(ctx, "sheet", id,
		"UPDATE expense_sheets SET status = ? WHERE id = ?", string(state), id)
}

// PurgeSheet deletes the sheet with all of its collections and expenses
// in a single transaction. Children go first so the foreign keys hold at
// every step.
func (s *SQLiteStore) PurgeSheet(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	steps := []struct {
		name  string
		query string
	}{
		{"maintenance", "DELETE FROM maintenance WHERE sheet_id = ?"},
		{"expenses", "DELETE FROM expenses WHERE sheet_id = ?"},
		{"expense_sheets", "DELETE FROM expense_sheets WHERE id = ?"},
	}

	for _, step := range steps {
		res, err := tx.ExecContext(ctx, step.query, id)
		if err != nil {
			return fmt.Errorf("failed to purge %s: %w", step.name, err)
		}
		if step.name == "expense_sheets" {
			if n, err := res.RowsAffected(); err == nil && n == 0 {
				return fmt.Errorf("%w: sheet %s", storage.ErrNotFound, id)
			}
		}
		if s.purgeStep != nil {
			if err := s.purgeStep(step.name); err != nil {
				return fmt.Errorf("failed to purge %s: %w", step.name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit purge: %w", err)
	}
	return nil
}

func scanSheet(sc scanner) (*models.Sheet, error) {
	var (
		sheet     models.Sheet
		createdAt int64
		status    string
	)
	if err := sc.Scan(&sheet.ID, &sheet.Name, &createdAt, &status); err != nil {
		return nil, err
	}
	state, err := models.ParseSheetState(status)
	if err != nil {
		return nil, err
	}
	sheet.CreatedAt = fromMillis(createdAt)
	sheet.State = state
	return &sheet, nil
}
