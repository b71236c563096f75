// Package live turns the store into a live-query source: subscribers get
// the full result set of a query once on subscribe and again after every
// committed write that touches it.
package live

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mmynk/societyledger/internal/calculator"
	"github.com/mmynk/societyledger/internal/metrics"
	"github.com/mmynk/societyledger/internal/models"
	"github.com/mmynk/societyledger/internal/storage"
)

var (
	ErrUnknownCollection = errors.New("unknown collection")
	ErrSheetRequired     = errors.New("sheet id is required for this collection")
	ErrHubClosed         = errors.New("live hub is closed")
)

// Op is the kind of write a Change describes.
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Change describes one committed write. An empty SheetID on a sheet-scoped
// collection means the sheet is unknown and every sheet's query is refreshed.
type Change struct {
	Collection string
	SheetID    string
	Op         Op
	ID         string
}

// Notifier receives every change published through the hub.
type Notifier interface {
	Notify(ctx context.Context, change Change) error
}

// Query selects a collection, optionally scoped to one sheet.
type Query struct {
	Collection string
	SheetID    string
}

func (q Query) validate() error {
	switch q.Collection {
	case storage.CollectionResidents, storage.CollectionSheets, storage.CollectionSummaries:
		return nil
	case storage.CollectionPayments, storage.CollectionExpenses:
		if q.SheetID == "" {
			return ErrSheetRequired
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCollection, q.Collection)
	}
}

func (q Query) matches(c Change) bool {
	if q.Collection != c.Collection {
		return false
	}
	return q.SheetID == "" || c.SheetID == "" || q.SheetID == c.SheetID
}

// Snapshot is the full result set of a query at one point in time. Only
// the slice for the query's collection is populated. Err is set when the
// read failed; the subscription stays open and the next write retries.
type Snapshot struct {
	Query       Query
	Residents   []*models.Resident
	Sheets      []*models.Sheet
	Collections []*models.Collection
	Expenses    []*models.Expense
	Summaries   []*models.MonthlySummary
	Err         error
}

// Hub fans committed writes out to matching subscriptions.
type Hub struct {
	store storage.Store

	mu        sync.Mutex
	subs      map[*Subscription]struct{}
	notifiers []Notifier
	closed    bool
}

// NewHub creates a hub that reads snapshots from store.
func NewHub(store storage.Store) *Hub {
	return &Hub{
		store: store,
		subs:  make(map[*Subscription]struct{}),
	}
}

// AddNotifier registers an out-of-process sink for changes.
func (h *Hub) AddNotifier(n Notifier) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.notifiers = append(h.notifiers, n)
}

// Subscribe opens a live query. The first snapshot is delivered as soon as
// it is read. The subscription ends when ctx is cancelled or Close is called.
func (h *Hub) Subscribe(ctx context.Context, q Query) (*Subscription, error) {
	if err := q.validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	sub := &Subscription{
		hub:    h,
		query:  q,
		ctx:    ctx,
		cancel: cancel,
		events: make(chan Snapshot, 1),
		kick:   make(chan struct{}, 1),
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		cancel()
		return nil, ErrHubClosed
	}
	h.subs[sub] = struct{}{}
	h.mu.Unlock()

	metrics.ActiveSubscriptions.Inc()
	go sub.run()
	return sub, nil
}

// Publish refreshes local subscriptions and forwards the change to every
// notifier. Notifier failures are logged and never fail the write.
func (h *Hub) Publish(ctx context.Context, c Change) {
	h.Refresh(c)

	h.mu.Lock()
	notifiers := append([]Notifier(nil), h.notifiers...)
	h.mu.Unlock()

	for _, n := range notifiers {
		if err := n.Notify(ctx, c); err != nil {
			slog.Warn("Failed to forward change", "collection", c.Collection, "op", c.Op, "error", err)
		}
	}
}

// Refresh wakes the subscriptions matching c without forwarding it.
// Used for changes that arrive from other processes.
func (h *Hub) Refresh(c Change) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs {
		if sub.query.matches(c) {
			sub.wake()
		}
	}
}

// Close ends every subscription. Later Subscribe calls fail.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	subs := make([]*Subscription, 0, len(h.subs))
	for sub := range h.subs {
		subs = append(subs, sub)
	}
	h.mu.Unlock()

	for _, sub := range subs {
		sub.Close()
	}
}

// Len reports the number of open subscriptions.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[sub]; ok {
		delete(h.subs, sub)
		metrics.ActiveSubscriptions.Dec()
	}
}

func (h *Hub) load(ctx context.Context, q Query) Snapshot {
	snap := Snapshot{Query: q}
	var err error
	switch q.Collection {
	case storage.CollectionResidents:
		var residents []*models.Resident
		if residents, err = h.store.ListResidents(ctx); err == nil {
			snap.Residents = calculator.SortResidents(residents)
		}
	case storage.CollectionSheets:
		snap.Sheets, err = h.store.ListSheets(ctx)
	case storage.CollectionSummaries:
		snap.Summaries, err = h.store.ListSummaries(ctx)
	case storage.CollectionPayments:
		snap.Collections, err = h.store.ListCollections(ctx, q.SheetID)
	case storage.CollectionExpenses:
		snap.Expenses, err = h.store.ListExpenses(ctx, q.SheetID)
	}
	if err != nil {
		snap.Err = fmt.Errorf("failed to load %s: %w", q.Collection, err)
	}
	return snap
}

// Subscription is one open live query.
type Subscription struct {
	hub    *Hub
	query  Query
	ctx    context.Context
	cancel context.CancelFunc
	events chan Snapshot
	kick   chan struct{}
}

// Query returns the query this subscription watches.
func (s *Subscription) Query() Query {
	return s.query
}

// Events delivers snapshots. A reader that falls behind only sees the
// newest one. The channel is closed when the subscription ends.
func (s *Subscription) Events() <-chan Snapshot {
	return s.events
}

// Close ends the subscription. Safe to call more than once.
func (s *Subscription) Close() {
	s.cancel()
}

func (s *Subscription) wake() {
	select {
	case s.kick <- struct{}{}:
	default:
	}
}

func (s *Subscription) run() {
	defer close(s.events)
	defer s.hub.remove(s)

	for {
		snap := s.hub.load(s.ctx, s.query)
		if s.ctx.Err() != nil {
			return
		}
		s.deliver(snap)

		select {
		case <-s.ctx.Done():
			return
		case <-s.kick:
		}
	}
}

// deliver replaces any snapshot the reader has not taken yet.
func (s *Subscription) deliver(snap Snapshot) {
	collection := s.query.Collection
	select {
	case s.events <- snap:
		metrics.SnapshotDeliveries.WithLabelValues(collection).Inc()
		return
	default:
	}

	select {
	case <-s.events:
		metrics.SnapshotsReplaced.WithLabelValues(collection).Inc()
	default:
	}

	select {
	case s.events <- snap:
		metrics.SnapshotDeliveries.WithLabelValues(collection).Inc()
	default:
	}
}
