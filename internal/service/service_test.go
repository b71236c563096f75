package service

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/societyledger/internal/live"
	"github.com/mmynk/societyledger/internal/storage/sqlite"
	"github.com/mmynk/societyledger/pkg/api"
)

type testClients struct {
	residents *api.ResidentServiceClient
	sheets    *api.SheetServiceClient
	ledger    *api.LedgerServiceClient
	summaries *api.SummaryServiceClient
	export    *api.ExportServiceClient
	dashboard *api.DashboardServiceClient
}

func newTestClients(baseURL string) *testClients {
	return &testClients{
		residents: api.NewResidentServiceClient(http.DefaultClient, baseURL),
		sheets:    api.NewSheetServiceClient(http.DefaultClient, baseURL),
		ledger:    api.NewLedgerServiceClient(http.DefaultClient, baseURL),
		summaries: api.NewSummaryServiceClient(http.DefaultClient, baseURL),
		export:    api.NewExportServiceClient(http.DefaultClient, baseURL),
		dashboard: api.NewDashboardServiceClient(http.DefaultClient, baseURL),
	}
}

// stepClock returns a clock that advances one minute per call so sheets
// created back to back get distinct, ordered timestamps.
func stepClock() func() time.Time {
	var mu sync.Mutex
	now := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(time.Minute)
		return now
	}
}

// setupTestServer creates a test server with a temp SQLite database and
// every ledger service mounted without authentication.
func setupTestServer(t *testing.T) (*testClients, func()) {
	t.Helper()

	inner, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	hub := live.NewHub(inner)
	store := live.NewStore(inner, hub)

	sheetSvc := NewSheetService(store)
	sheetSvc.now = stepClock()

	mux := http.NewServeMux()
	mux.Handle(api.NewResidentServiceHandler(NewResidentService(store)))
	mux.Handle(api.NewSheetServiceHandler(sheetSvc))
	mux.Handle(api.NewLedgerServiceHandler(NewLedgerService(store)))
	mux.Handle(api.NewSummaryServiceHandler(NewSummaryService(store)))
	mux.Handle(api.NewExportServiceHandler(NewExportService(store)))
	mux.Handle(api.NewDashboardServiceHandler(NewDashboardService(hub, store, nil)))

	server := httptest.NewServer(mux)

	cleanup := func() {
		server.Close()
		hub.Close()
		inner.Close()
	}
	return newTestClients(server.URL), cleanup
}

func expectCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v, got nil error", want)
	}
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		t.Fatalf("expected connect.Error, got %T", err)
	}
	if connectErr.Code() != want {
		t.Errorf("expected %v, got %v (%v)", want, connectErr.Code(), err)
	}
}

func expectAmount(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("%s: expected %s, got %s", name, want, got.String())
	}
}
