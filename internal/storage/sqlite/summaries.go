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

const summaryColumns = "id, month_name, total_collection, total_expense, created_at"

// CreateSummary persists a monthly summary.
func (s *SQLiteStore) CreateSummary(ctx context.Context, m *models.MonthlySummary) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	m.CreatedAt = fromMillis(toMillis(m.CreatedAt))

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO monthly_summary ("+summaryColumns+") VALUES (?, ?, ?, ?, ?)",
		m.ID, m.MonthName,
		m.TotalCollection.StringFixed(models.CurrencyPlaces),
		m.TotalExpense.StringFixed(models.CurrencyPlaces),
		toMillis(m.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert summary: %w", err)
	}
	return nil
}

// GetSummary retrieves a summary by ID.
func (s *SQLiteStore) GetSummary(ctx context.Context, id string) (*models.MonthlySummary, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+summaryColumns+" FROM monthly_summary WHERE id = ?", id)
	m, err := scanSummary(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: summary %s", storage.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get summary: %w", err)
	}
	return m, nil
}

// UpdateSummary overwrites month name and totals. CreatedAt is kept.
func (s *SQLiteStore) UpdateSummary(ctx context.Context, m *models.MonthlySummary) error {
	return s.execOne(ctx, "summary", m.ID,
		"UPDATE monthly_summary SET month_name = ?, total_collection = ?, total_expense = ? WHERE id = ?",
		m.MonthName,
		m.TotalCollection.StringFixed(models.CurrencyPlaces),
		m.TotalExpense.StringFixed(models.CurrencyPlaces),
		m.ID,
	)
}

// DeleteSummary removes a summary by ID.
func (s *SQLiteStore) DeleteSummary(ctx context.Context, id string) error {
	return s.execOne(ctx, "summary", id, "DELETE FROM monthly_summary WHERE id = ?", id)
}

// ListSummaries returns every summary, most recently created first.
func (s *SQLiteStore) ListSummaries(ctx context.Context) ([]*models.MonthlySummary, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+summaryColumns+" FROM monthly_summary ORDER BY created_at DESC, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list summaries: %w", err)
	}
	defer rows.Close()

	var summaries []*models.MonthlySummary
	for rows.Next() {
		m, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan summary: %w", err)
		}
		summaries = append(summaries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate summaries: %w", err)
	}
	return summaries, nil
}

func scanSummary(sc scanner) (*models.MonthlySummary, error) {
	var (
		m                  models.MonthlySummary
		collected, expense string
		createdAt          int64
	)
	if err := sc.Scan(&m.ID, &m.MonthName, &collected, &expense, &createdAt); err != nil {
		return nil, err
	}
	var err error
	if m.TotalCollection, err = parseDecimal(collected); err != nil {
		return nil, err
	}
	if m.TotalExpense, err = parseDecimal(expense); err != nil {
		return nil, err
	}
	m.CreatedAt = fromMillis(createdAt)
	return &m, nil
}
