package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/mmynk/societyledger/internal/calculator"
	"github.com/mmynk/societyledger/internal/live"
	"github.com/mmynk/societyledger/internal/metrics"
	"github.com/mmynk/societyledger/internal/storage"
)

var ErrSessionClosed = errors.New("dashboard session is closed")

// Subscriber opens live queries.
type Subscriber interface {
	Subscribe(ctx context.Context, q live.Query) (*live.Subscription, error)
}

// Session owns one administrator's State. A single goroutine applies every
// event in order; opening balances are computed off that goroutine and
// posted back as events.
type Session struct {
	subs   Subscriber
	ledger calculator.LedgerReader

	ctx    context.Context
	cancel context.CancelFunc
	events chan Event
	done   chan struct{}

	updates chan View
	current atomic.Pointer[View]
	state   atomic.Pointer[State]

	// loop-owned
	sheetCancel  context.CancelFunc
	requestedGen uint64
}

// NewSession starts the residents, sheets and summaries subscriptions and
// the event loop. They live until Close or until ctx is cancelled.
func NewSession(ctx context.Context, subs Subscriber, ledger calculator.LedgerReader) (*Session, error) {
	ctx, cancel := context.WithCancel(ctx)
	s := &Session{
		subs:    subs,
		ledger:  ledger,
		ctx:     ctx,
		cancel:  cancel,
		events:  make(chan Event, 16),
		done:    make(chan struct{}),
		updates: make(chan View, 1),
	}

	initial := State{Filter: calculator.FilterAll}
	s.publish(initial)

	for _, collection := range []string{
		storage.CollectionResidents,
		storage.CollectionSheets,
		storage.CollectionSummaries,
	} {
		if err := s.follow(ctx, live.Query{Collection: collection}); err != nil {
			cancel()
			return nil, err
		}
	}

	go s.run(initial)
	return s, nil
}

// Updates delivers a new View after every event. A slow reader only sees
// the newest. The channel closes when the session ends.
func (s *Session) Updates() <-chan View {
	return s.updates
}

// View returns the most recent view.
func (s *Session) View() View {
	return *s.current.Load()
}

// State returns the most recent state.
func (s *Session) State() State {
	return *s.state.Load()
}

// OpenSheet switches the detail view to sheetID. The previous sheet's
// subscriptions are cancelled.
func (s *Session) OpenSheet(sheetID string) error {
	return s.send(SheetOpened{SheetID: sheetID})
}

// CloseSheet leaves the detail view and stops its subscriptions.
func (s *Session) CloseSheet() error {
	return s.send(SheetClosed{})
}

// SetFilter changes the payment status filter.
func (s *Session) SetFilter(filter string) error {
	return s.send(FilterChanged{Filter: calculator.ParseStatusFilter(filter)})
}

// Close tears down every subscription, as on sign-out, and waits for the
// loop to exit.
func (s *Session) Close() {
	s.cancel()
	<-s.done
}

// Done is closed once the session has stopped.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

func (s *Session) send(ev Event) error {
	if s.ctx.Err() != nil {
		return ErrSessionClosed
	}
	select {
	case <-s.ctx.Done():
		return ErrSessionClosed
	case s.events <- ev:
		return nil
	}
}

// follow subscribes to q and forwards its snapshots into the loop.
func (s *Session) follow(ctx context.Context, q live.Query) error {
	sub, err := s.subs.Subscribe(ctx, q)
	if err != nil {
		return err
	}
	go func() {
		defer sub.Close()
		for snap := range sub.Events() {
			select {
			case s.events <- SnapshotReceived{Snapshot: snap}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}

func (s *Session) run(state State) {
	defer close(s.done)
	defer close(s.updates)
	defer s.stopSheet()

	for {
		select {
		case <-s.ctx.Done():
			return
		case ev := <-s.events:
			state = s.apply(state, ev)
		}
	}
}

func (s *Session) apply(state State, ev Event) State {
	switch ev := ev.(type) {
	case SheetOpened:
		if ev.SheetID != state.CurrentSheetID {
			s.startSheet(ev.SheetID)
		}
	case SheetClosed:
		s.stopSheet()
	}

	state = Reduce(state, ev)
	s.maybeComputeOpening(state)
	s.publish(state)
	return state
}

func (s *Session) startSheet(sheetID string) {
	s.stopSheet()
	if sheetID == "" {
		return
	}

	ctx, cancel := context.WithCancel(s.ctx)
	s.sheetCancel = cancel
	for _, collection := range []string{storage.CollectionPayments, storage.CollectionExpenses} {
		q := live.Query{Collection: collection, SheetID: sheetID}
		if err := s.follow(ctx, q); err != nil {
			slog.Error("Failed to subscribe to sheet", "sheet_id", sheetID, "collection", collection, "error", err)
		}
	}
}

func (s *Session) stopSheet() {
	if s.sheetCancel != nil {
		s.sheetCancel()
		s.sheetCancel = nil
	}
}

// maybeComputeOpening starts one computation per generation once the open
// sheet is known. The result comes back as OpeningComputed.
func (s *Session) maybeComputeOpening(state State) {
	if state.OpeningReady || state.Generation == s.requestedGen {
		return
	}
	target := state.CurrentSheet()
	if target == nil {
		return
	}
	s.requestedGen = state.Generation

	gen := state.Generation
	sheets := state.Sheets
	go func() {
		start := time.Now()
		value, err := calculator.ComputeOpeningBalance(s.ctx, target, sheets, s.ledger)
		metrics.OpeningBalanceDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			slog.Warn("Opening balance failed", "sheet_id", target.ID, "error", err)
		}
		select {
		case s.events <- OpeningComputed{Generation: gen, Value: value, Err: err}:
		case <-s.ctx.Done():
		}
	}()
}

func (s *Session) publish(state State) {
	view := Derive(state)
	s.state.Store(&state)
	s.current.Store(&view)

	select {
	case s.updates <- view:
		return
	default:
	}
	select {
	case <-s.updates:
	default:
	}
	select {
	case s.updates <- view:
	default:
	}
}
