package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"taxportal/internal/assistant"
	"taxportal/internal/form"
	"taxportal/internal/importer"
	"taxportal/internal/platform/config"
	"taxportal/internal/platform/httpserver"
	"taxportal/internal/platform/logger"
	"taxportal/internal/platform/metrics"
	"taxportal/internal/screening"
	"taxportal/internal/session"
	"taxportal/internal/submission"
	httptransport "taxportal/internal/transport/http"
	"taxportal/pkg/platform/audit/publisher"
	"taxportal/pkg/platform/audit/store/memory"
)

const shutdownTimeout = 10 * time.Second

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Form logic lives in the internal packages.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "taxportal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	fraud, err := loadFraudRegistry(cfg.FraudRegistryPath)
	if err != nil {
		return err
	}
	quotes, err := loadQuotes(cfg.QuotesPath)
	if err != nil {
		return err
	}

	m := metrics.NewWithRegisterer(prometheus.DefaultRegisterer)

	auditStore := memory.NewInMemoryStore(memory.WithCapacity(cfg.AuditRetention))
	auditor := publisher.NewPublisher(auditStore,
		publisher.WithAsyncBuffer(cfg.AuditBuffer),
		publisher.WithLogger(log),
	)
	defer auditor.Close()

	resolver, err := assistant.NewResolver(fraud, form.DefaultRegistry(), quotes,
		assistant.WithLogger(log),
		assistant.WithMetrics(m),
	)
	if err != nil {
		return fmt.Errorf("build resolver: %w", err)
	}
	gate := submission.NewGate(fraud,
		submission.WithLogger(log),
		submission.WithMetrics(m),
		submission.WithAuditor(auditor),
	)
	sessions, err := session.NewManager(resolver, gate,
		session.WithManagerLogger(log),
		session.WithManagerMetrics(m),
		session.WithManagerAuditor(auditor),
		session.WithManagerAuditLog(auditor),
		session.WithManagerIdleTimeout(cfg.SessionIdleTimeout),
		session.WithMaxSessions(cfg.MaxSessions),
		session.WithSimulatorFactory(func() *importer.Simulator {
			return importer.New(
				importer.WithDelay(cfg.ImportDelay),
				importer.WithLogger(log),
				importer.WithMetrics(m),
			)
		}),
	)
	if err != nil {
		return fmt.Errorf("build session manager: %w", err)
	}

	handler := httptransport.New(sessions, log)
	router := httptransport.NewRouter(handler, log, prometheus.DefaultGatherer)
	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting taxportal",
			"addr", cfg.Addr,
			"import_delay", cfg.ImportDelay.String(),
			"fraud_records", fraud.Len(),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		log.Info("shutting down")
		serverErr := srv.Shutdown(shutdownCtx)
		sessionErr := sessions.Shutdown(shutdownCtx)
		return errors.Join(serverErr, sessionErr)
	})

	if err := g.Wait(); err != nil {
		log.Error("taxportal stopped with error", "error", err)
		return err
	}
	log.Info("taxportal stopped")
	return nil
}

func loadFraudRegistry(path string) (*screening.Registry, error) {
	if path == "" {
		return screening.DefaultRegistry(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fraud registry: %w", err)
	}
	defer f.Close()
	registry, err := screening.LoadRegistry(f)
	if err != nil {
		return nil, fmt.Errorf("load fraud registry %s: %w", path, err)
	}
	return registry, nil
}

func loadQuotes(path string) (assistant.QuoteSource, error) {
	if path == "" {
		return assistant.DefaultQuotes(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open quotes: %w", err)
	}
	defer f.Close()
	quotes, err := assistant.LoadQuotes(f)
	if err != nil {
		return nil, fmt.Errorf("load quotes %s: %w", path, err)
	}
	return quotes, nil
}
