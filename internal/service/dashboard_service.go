package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/societyledger/internal/auth"
	"github.com/mmynk/societyledger/internal/calculator"
	"github.com/mmynk/societyledger/internal/dashboard"
	"github.com/mmynk/societyledger/internal/middleware"
	"github.com/mmynk/societyledger/pkg/api"
)

// SessionObserver reports sign-ins and sign-outs.
type SessionObserver interface {
	OnSessionChange(fn func(auth.SessionEvent)) (cancel func())
}

// DashboardService implements the Connect DashboardService. Each Watch
// call owns one dashboard.Session for as long as the stream stays open.
type DashboardService struct {
	subs     dashboard.Subscriber
	ledger   calculator.LedgerReader
	sessions SessionObserver
}

// NewDashboardService creates a DashboardService. sessions may be nil, in
// which case streams only end when the caller disconnects.
func NewDashboardService(subs dashboard.Subscriber, ledger calculator.LedgerReader, sessions SessionObserver) *DashboardService {
	return &DashboardService{subs: subs, ledger: ledger, sessions: sessions}
}

// Watch streams the dashboard view after every change. Signing out the
// token that opened the stream ends it.
func (s *DashboardService) Watch(ctx context.Context, req *connect.Request[api.WatchRequest], stream *connect.ServerStream[api.DashboardView]) error {
	userID := middleware.GetUserID(ctx)
	sessionID := middleware.GetSessionID(ctx)
	slog.Info("Watch request received", "user_id", userID, "sheet_id", req.Msg.SheetID)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if s.sessions != nil && sessionID != "" {
		stop := s.sessions.OnSessionChange(func(ev auth.SessionEvent) {
			if !ev.SignedIn() && ev.SessionID == sessionID {
				cancel()
			}
		})
		defer stop()
	}

	session, err := dashboard.NewSession(ctx, s.subs, s.ledger)
	if err != nil {
		slog.Error("Watch failed to start session", "error", err)
		return toConnectError(err)
	}
	defer session.Close()

	if err := session.SetFilter(req.Msg.Filter); err != nil {
		return toConnectError(err)
	}
	if req.Msg.SheetID != "" {
		if err := session.OpenSheet(req.Msg.SheetID); err != nil {
			return toConnectError(err)
		}
	}

	for view := range session.Updates() {
		if err := stream.Send(toAPIView(view)); err != nil {
			slog.Warn("Watch stream send failed", "user_id", userID, "error", err)
			return err
		}
	}

	slog.Info("Watch stream closed", "user_id", userID)
	return nil
}
