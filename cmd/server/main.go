package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/societyledger/internal/auth"
	"github.com/mmynk/societyledger/internal/broker"
	"github.com/mmynk/societyledger/internal/config"
	"github.com/mmynk/societyledger/internal/live"
	"github.com/mmynk/societyledger/internal/metrics"
	"github.com/mmynk/societyledger/internal/middleware"
	"github.com/mmynk/societyledger/internal/service"
	"github.com/mmynk/societyledger/internal/storage/sqlite"
	"github.com/mmynk/societyledger/pkg/api"
	"github.com/mmynk/societyledger/pkg/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize SQLite storage
	db, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	hub := live.NewHub(db)
	defer hub.Close()
	store := live.NewStore(db, hub)

	g, ctx := errgroup.WithContext(ctx)

	if cfg.AMQPURL != "" {
		client, err := broker.NewClient(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			// Fan-out is optional; this process still serves its own subscribers.
			slog.Warn("AMQP unavailable, change fan-out disabled", "error", err)
		} else {
			defer client.Close()
			hub.AddNotifier(client)
			g.Go(func() error {
				if err := client.PublishLoop(ctx); !errors.Is(err, context.Canceled) {
					slog.Error("Change publisher stopped", "error", err)
				}
				return nil
			})
			g.Go(func() error {
				err := client.Consume(ctx, hub.Refresh)
				if err != nil && !errors.Is(err, context.Canceled) {
					slog.Error("Change consumer stopped", "error", err)
				}
				return nil
			})
			slog.Info("AMQP fan-out enabled", "exchange", cfg.AMQPExchange, "origin", client.Origin())
		}
	}

	authenticator := auth.NewPasswordAuthenticator(db)
	if err := auth.EnsureAdmin(ctx, authenticator, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return err
	}
	provider := auth.NewProvider(authenticator, auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL))

	interceptors := connect.WithInterceptors(
		middleware.MetricsInterceptor(),
		middleware.LoggingInterceptor(slog.Default()),
		middleware.RequireAuth(provider, api.AuthServiceSignInProcedure),
	)

	mux := http.NewServeMux()

	// Register Connect services
	mux.Handle(api.NewAuthServiceHandler(service.NewAuthService(provider, db, slog.Default()), interceptors))
	mux.Handle(api.NewResidentServiceHandler(service.NewResidentService(store), interceptors))
	mux.Handle(api.NewSheetServiceHandler(service.NewSheetService(store), interceptors))
	mux.Handle(api.NewLedgerServiceHandler(service.NewLedgerService(store), interceptors))
	mux.Handle(api.NewSummaryServiceHandler(service.NewSummaryService(store), interceptors))
	mux.Handle(api.NewExportServiceHandler(service.NewExportService(store), interceptors))
	mux.Handle(api.NewDashboardServiceHandler(service.NewDashboardService(hub, store, provider), interceptors))

	if cfg.MetricsEnabled {
		mux.Handle("/metrics", metrics.Handler())
	}

	staticDir, err := filepath.Abs(cfg.StaticPath)
	if err != nil {
		return err
	}
	slog.Info("Serving static files", "path", staticDir)
	mux.HandleFunc("/", staticHandler(staticDir))

	// Wrap with h2c for HTTP/2 without TLS (required for Connect streaming)
	handler := h2c.NewHandler(corsMiddleware(cfg.CORSOrigin, mux), &http2.Server{})

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		// Dashboard streams end with the process context instead of
		// holding Shutdown open.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	g.Go(func() error {
		slog.Info("Connect server starting", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		slog.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// staticHandler serves the dashboard frontend. Unknown paths fall back to
// index.html; RPC paths that reach it are not found.
func staticHandler(staticDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/society.v1.") {
			http.NotFound(w, r)
			return
		}

		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}

		filePath := filepath.Join(staticDir, filepath.Clean(urlPath))
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
			return
		}

		http.ServeFile(w, r, filePath)
	}
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(origin string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
