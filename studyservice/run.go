// Package studyservice wires the study store, its durable slots, and the
// HTTP API into a runnable service.
package studyservice

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/studysmarter/studysmarter/internal/api"
	"github.com/studysmarter/studysmarter/internal/concepts"
	"github.com/studysmarter/studysmarter/internal/config"
	"github.com/studysmarter/studysmarter/internal/health"
	"github.com/studysmarter/studysmarter/internal/logger"
	"github.com/studysmarter/studysmarter/internal/notify"
	"github.com/studysmarter/studysmarter/internal/slot"
	"github.com/studysmarter/studysmarter/internal/study"
	"github.com/studysmarter/studysmarter/internal/writequeue"
)

// Run starts the study service HTTP server and blocks until shutdown or error.
func Run() error {
	log := logger.New("study-service")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}

	log.Info().
		Str("storage_driver", cfg.StorageDriver).
		Str("state_dir", cfg.StateDir).
		Int("http_port", cfg.HTTPPort).
		Str("ollama_url", cfg.OllamaURL).
		Str("ollama_model", cfg.OllamaModel).
		Msg("Study service starting")

	// Create cancellable root context bound to SIGINT/SIGTERM
	ctx, stop := newServerContext()
	defer stop()

	// Slot storage
	st, closeStore, err := newSlotStore(cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	// Watcher picks up writes from other processes sharing the slots.
	watcher := slot.NewWatcher(st, study.SlotKeys(),
		time.Duration(cfg.WatchIntervalMS)*time.Millisecond, log)

	// Persist queue: one attempt per write, failures are logged and the
	// in-memory state stays authoritative.
	queue := writequeue.New(writequeue.Config{
		MaxAttempts: 1,
		ErrorHandler: func(err error) {
			log.Warn().Err(err).Msg("slot persist failed")
		},
		Log: log,
	})
	defer queue.Stop()

	notifier := notify.LogNotifier{Log: log}
	store := study.NewStore(ctx, watcher.ObserveStore(st), queue, notifier, log)

	watcher.Prime(ctx)
	watcher.OnChange(store.ApplyExternalChange)
	go watcher.Start(ctx)

	expander := concepts.NewOllamaExpander(cfg.OllamaURL, cfg.OllamaModel)

	// Build router
	router := api.NewRouter(store, expander)

	// Start health checkers and bind service health
	startHealthCheckers(ctx, cfg, log, st, expander)

	// HTTP server and serve
	server := newHTTPServer(ctx, cfg, router)
	errCh := serveHTTP(server, log, cfg)

	// Graceful shutdown on context cancel or server error
	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Err(err).Msg("Server forced to shutdown")
			return err
		}
		if err := store.Flush(ctxShutdown); err != nil {
			log.Warn().Err(err).Msg("flush on shutdown failed")
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Err(err).Msg("HTTP server failed")
		return err
	}
}

// newSlotStore builds the configured slot store and a close func.
func newSlotStore(cfg *config.Config, log zerolog.Logger) (slot.Store, func(), error) {
	switch cfg.StorageDriver {
	case "sqlite":
		st, err := slot.NewSQLiteStore(cfg.SQLitePath)
		if err != nil {
			log.Error().Err(err).Str("path", cfg.SQLitePath).Msg("sqlite store unavailable")
			return nil, nil, err
		}
		return st, func() { _ = st.Close() }, nil
	case "file":
		st, err := slot.NewFileStore(cfg.StateDir)
		if err != nil {
			log.Error().Err(err).Str("dir", cfg.StateDir).Msg("file store unavailable")
			return nil, nil, err
		}
		return st, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported storage driver: %s", cfg.StorageDriver)
	}
}

// startHealthCheckers starts component checkers and the service-level
// aggregator, then binds the health endpoint to it.
func startHealthCheckers(ctx context.Context, cfg *config.Config, log zerolog.Logger, st slot.Store, expander *concepts.OllamaExpander) *health.ServiceHealthChecker {
	probeTimeout := time.Duration(cfg.HealthProbeTimeoutSeconds) * time.Second
	interval := time.Duration(cfg.HealthIntervalSeconds) * time.Second

	storagePing := health.PingFunc(func(ctx context.Context) error {
		_, err := st.Keys(ctx)
		return err
	})
	storageChecker := health.NewPingChecker("slot-storage", storagePing, log, probeTimeout)
	go storageChecker.Start(ctx, interval)

	ollamaChecker := health.NewPingChecker("ollama", health.PingFunc(expander.HealthPing), log, probeTimeout)
	go ollamaChecker.Start(ctx, interval)

	// The expansion backend is optional at runtime so only storage gates
	// service health; ollama state still shows up in the logs.
	svcHealth := health.NewServiceHealthChecker(log, storageChecker)
	go svcHealth.Start(ctx, interval)
	api.BindServiceHealth(svcHealth.IsHealthy)
	return svcHealth
}

func newHTTPServer(ctx context.Context, cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.GetHTTPAddr(),
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
}

func serveHTTP(server *http.Server, log zerolog.Logger, cfg *config.Config) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	return errCh
}

// newServerContext returns a cancellable context that is cancelled on SIGINT/SIGTERM.
func newServerContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
