package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/societyledger/internal/models"
	"github.com/mmynk/societyledger/internal/storage"
)

// CreateResident persists a new resident.
func (s *SQLiteStore) CreateResident(ctx context.Context, r *models.Resident) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO residents (id, flat_no, owner_name, maint_amount, status) VALUES (?, ?, ?, ?, ?)",
		r.ID, r.FlatNo, r.OwnerName, r.MaintAmount.StringFixed(models.CurrencyPlaces), string(r.Status),
	)
	if err != nil {
		return fmt.Errorf("failed to insert resident: %w", err)
	}
	return nil
}

// GetResident retrieves a resident by ID.
func (s *SQLiteStore) GetResident(ctx context.Context, id string) (*models.Resident, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, flat_no, owner_name, maint_amount, status FROM residents WHERE id = ?", id)
	r, err := scanResident(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: resident %s", storage.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get resident: %w", err)
	}
	return r, nil
}

// UpdateResident overwrites the resident's editable fields.
func (s *SQLiteStore) UpdateResident(ctx context.Context, r *models.Resident) error {
	return s.execOne(ctx, "resident", r.ID,
		"UPDATE residents SET flat_no = ?, owner_name = ?, maint_amount = ?, status = ? WHERE id = ?",
		r.FlatNo, r.OwnerName, r.MaintAmount.StringFixed(models.CurrencyPlaces), string(r.Status), r.ID,
	)
}

// DeleteResident hard-deletes a resident. Past collections keep their
// denormalized owner name.
func (s *SQLiteStore) DeleteResident(ctx context.Context, id string) error {
	return s.execOne(ctx, "resident", id, "DELETE FROM residents WHERE id = ?", id)
}

// ListResidents returns the roster ordered by flat number.
func (s *SQLiteStore) ListResidents(ctx context.Context) ([]*models.Resident, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, flat_no, owner_name, maint_amount, status FROM residents ORDER BY flat_no")
	if err != nil {
		return nil, fmt.Errorf("failed to list residents: %w", err)
	}
	defer rows.Close()

	var residents []*models.Resident
	for rows.Next() {
		r, err := scanResident(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resident: %w", err)
		}
		residents = append(residents, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate residents: %w", err)
	}
	return residents, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanResident(sc scanner) (*models.Resident, error) {
	var (
		r      models.Resident
		amount string
		status string
	)
	if err := sc.Scan(&r.ID, &r.FlatNo, &r.OwnerName, &amount, &status); err != nil {
		return nil, err
	}
	var err error
	if r.MaintAmount, err = parseDecimal(amount); err != nil {
		return nil, err
	}
	if r.Status, err = models.ParseResidentStatus(status); err != nil {
		return nil, err
	}
	return &r, nil
}
