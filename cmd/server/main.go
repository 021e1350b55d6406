package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/p-n-ai/pathfinder/internal/account"
	"github.com/p-n-ai/pathfinder/internal/advisor"
	"github.com/p-n-ai/pathfinder/internal/catalog"
	"github.com/p-n-ai/pathfinder/internal/httpapi"
	"github.com/p-n-ai/pathfinder/internal/platform/cache"
	"github.com/p-n-ai/pathfinder/internal/platform/config"
	"github.com/p-n-ai/pathfinder/internal/platform/database"
	"github.com/p-n-ai/pathfinder/internal/quiz"
	"github.com/p-n-ai/pathfinder/internal/quizws"
	"github.com/p-n-ai/pathfinder/internal/scoring"
	"github.com/p-n-ai/pathfinder/internal/session"
	"github.com/p-n-ai/pathfinder/internal/vote"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(newLogger(cfg.Log, os.Stdout))

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	// Graceful shutdown on SIGTERM/SIGINT.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	handler, cleanup, err := buildHandler(ctx, cfg)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "storage", cfg.Storage.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

// newLogger builds the process logger from the log config.
func newLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Format, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// buildHandler wires stores, engine and API from cfg. The returned cleanup
// closes any connections that were opened.
func buildHandler(ctx context.Context, cfg *config.Config) (http.Handler, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	fail := func(err error) (http.Handler, func(), error) {
		cleanup()
		return nil, func() {}, err
	}

	bank, err := loadBank(cfg.QuestionBankPath)
	if err != nil {
		return fail(err)
	}
	cat, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		return fail(err)
	}

	checks := map[string]httpapi.Check{}
	var (
		votes  vote.Store = vote.NewMemoryStore()
		events advisor.EventLogger
	)
	if cfg.UsesPostgres() {
		db, err := database.Open(ctx, cfg.Database)
		if err != nil {
			return fail(fmt.Errorf("opening database: %w", err))
		}
		closers = append(closers, db.Close)
		checks["database"] = db.HealthCheck

		pgVotes, err := vote.NewPostgresStore(db.Pool)
		if err != nil {
			return fail(err)
		}
		votes = pgVotes
		events = advisor.NewPostgresEventLogger(db.Pool)
		slog.Info("database connected")
	}

	var sessions session.Store = session.NewMemoryStore(cfg.Session.TTL)
	if cfg.Cache.URL != "" {
		c, err := cache.New(ctx, cfg.Cache.URL)
		if err != nil {
			return fail(fmt.Errorf("connecting to cache: %w", err))
		}
		closers = append(closers, func() { _ = c.Close() })
		checks["cache"] = c.HealthCheck
		sessions = session.NewRedisStore(c, cfg.Session.TTL)
		slog.Info("cache connected")
	}

	engine := advisor.NewEngine(advisor.EngineConfig{
		Bank: bank,
		Gate: scoring.GateConfig{
			AgeThreshold:   cfg.Gate.AgeThreshold,
			FastTrackBoost: cfg.Gate.FastTrackBoost,
		},
		Events: events,
	})

	api := httpapi.New(httpapi.Deps{
		Engine:   engine,
		Catalog:  cat,
		Accounts: account.NewRegistry(cfg.Auth.AdminEmail),
		Votes:    vote.NewService(votes),
		QuizWS:   quizws.NewHandler(engine, sessions, cat, nil),
		Checks:   checks,
	})
	return api.Handler(), cleanup, nil
}

func loadBank(path string) (*quiz.Bank, error) {
	if path == "" {
		return quiz.Default()
	}
	return quiz.LoadFile(path)
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.LoadFile(path)
}
