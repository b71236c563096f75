package live

import (
	"context"

	"github.com/mmynk/societyledger/internal/models"
	"github.com/mmynk/societyledger/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store wraps a storage.Store and publishes a Change after every
// successful write. Reads pass straight through.
type Store struct {
	storage.Store
	hub *Hub
}

// NewStore decorates inner so its writes reach hub.
func NewStore(inner storage.Store, hub *Hub) *Store {
	return &Store{Store: inner, hub: hub}
}

func (s *Store) publish(ctx context.Context, err error, c Change) error {
	if err != nil {
		return err
	}
	s.hub.Publish(ctx, c)
	return nil
}

func (s *Store) CreateResident(ctx context.Context, r *models.Resident) error {
	err := s.Store.CreateResident(ctx, r)
	return s.publish(ctx, err, Change{Collection: storage.CollectionResidents, Op: OpCreate, ID: r.ID})
}

func (s *Store) UpdateResident(ctx context.Context, r *models.Resident) error {
	err := s.Store.UpdateResident(ctx, r)
	return s.publish(ctx, err, Change{Collection: storage.CollectionResidents, Op: OpUpdate, ID: r.ID})
}

func (s *Store) DeleteResident(ctx context.Context, id string) error {
	err := s.Store.DeleteResident(ctx, id)
	return s.publish(ctx, err, Change{Collection: storage.CollectionResidents, Op: OpDelete, ID: id})
}

func (s *Store) CreateSheet(ctx context.Context, sheet *models.Sheet) error {
	err := s.Store.CreateSheet(ctx, sheet)
	return s.publish(ctx, err, Change{Collection: storage.CollectionSheets, Op: OpCreate, ID: sheet.ID})
}

func (s *Store) SetSheetState(ctx context.Context, id string, state models.SheetState) error {
	err := s.Store.SetSheetState(ctx, id, state)
	return s.publish(ctx, err, Change{Collection: storage.CollectionSheets, Op: OpUpdate, ID: id})
}

// PurgeSheet publishes for the sheet and both child collections.
func (s *Store) PurgeSheet(ctx context.Context, id string) error {
	if err := s.Store.PurgeSheet(ctx, id); err != nil {
		return err
	}
	s.hub.Publish(ctx, Change{Collection: storage.CollectionPayments, SheetID: id, Op: OpDelete})
	s.hub.Publish(ctx, Change{Collection: storage.CollectionExpenses, SheetID: id, Op: OpDelete})
	s.hub.Publish(ctx, Change{Collection: storage.CollectionSheets, Op: OpDelete, ID: id})
	return nil
}

func (s *Store) CreateCollection(ctx context.Context, c *models.Collection) error {
	err := s.Store.CreateCollection(ctx, c)
	return s.publish(ctx, err, Change{Collection: storage.CollectionPayments, SheetID: c.SheetID, Op: OpCreate, ID: c.ID})
}

// DeleteCollection does not know the sheet, so every payments query refreshes.
func (s *Store) DeleteCollection(ctx context.Context, id string) error {
	err := s.Store.DeleteCollection(ctx, id)
	return s.publish(ctx, err, Change{Collection: storage.CollectionPayments, Op: OpDelete, ID: id})
}

func (s *Store) CreateExpense(ctx context.Context, e *models.Expense) error {
	err := s.Store.CreateExpense(ctx, e)
	return s.publish(ctx, err, Change{Collection: storage.CollectionExpenses, SheetID: e.SheetID, Op: OpCreate, ID: e.ID})
}

func (s *Store) DeleteExpense(ctx context.Context, id string) error {
	err := s.Store.DeleteExpense(ctx, id)
	return s.publish(ctx, err, Change{Collection: storage.CollectionExpenses, Op: OpDelete, ID: id})
}

func (s *Store) CreateSummary(ctx context.Context, m *models.MonthlySummary) error {
	err := s.Store.CreateSummary(ctx, m)
	return s.publish(ctx, err, Change{Collection: storage.CollectionSummaries, Op: OpCreate, ID: m.ID})
}

func (s *Store) UpdateSummary(ctx context.Context, m *models.MonthlySummary) error {
	err := s.Store.UpdateSummary(ctx, m)
	return s.publish(ctx, err, Change{Collection: storage.CollectionSummaries, Op: OpUpdate, ID: m.ID})
}

func (s *Store) DeleteSummary(ctx context.Context, id string) error {
	err := s.Store.DeleteSummary(ctx, id)
	return s.publish(ctx, err, Change{Collection: storage.CollectionSummaries, Op: OpDelete, ID: id})
}
