// Copyright (c) 2026 Rafaela Botelho
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/rafaelabotelho/portfolio-go/internal/cache"
	"github.com/rafaelabotelho/portfolio-go/internal/config"
	"github.com/rafaelabotelho/portfolio-go/internal/handler"
	"github.com/rafaelabotelho/portfolio-go/internal/i18n"
	"github.com/rafaelabotelho/portfolio-go/internal/logging"
	"github.com/rafaelabotelho/portfolio-go/internal/middleware"
	"github.com/rafaelabotelho/portfolio-go/internal/session"
	"github.com/rafaelabotelho/portfolio-go/internal/store"
	"github.com/rafaelabotelho/portfolio-go/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Portfolio backend\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_DB_URL           Storage: empty = in-memory, mysql:// DSN, or SQLite path\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_SERVER_PORT      Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_ENV              Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_ADMIN_EMAIL      Account provisioned with the admin role\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_ADMIN_PASSWORD   Initial admin password (set on first start)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_REDIS_URL        Redis URL for the list cache (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTFOLIO_ALLOWED_ORIGINS  Comma-separated CORS origins (optional)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Printf("portfolio %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	versionInfo := &version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	logger := logging.New(cfg.LogLevel, cfg.IsDevelopment())
	slog.SetDefault(logger)

	if err := i18n.Init(logger); err != nil {
		return fmt.Errorf("initializing i18n: %w", err)
	}

	// Storage backend from the database URL. A configured database that
	// fails at startup is an error; failures after startup trip the
	// in-memory fallback instead.
	var (
		db           *sql.DB
		contentStore store.Store
	)
	switch cfg.Backend() {
	case config.BackendMemory:
		slog.Warn("no database configured, using in-memory storage; data is lost on restart")
		contentStore = store.NewMemoryStore()
	case config.BackendMySQL:
		db, err = store.NewMySQLDB(cfg.MySQLDSN())
		if err != nil {
			return fmt.Errorf("opening mysql: %w", err)
		}
		if err := store.Migrate(db, "mysql"); err != nil {
			return fmt.Errorf("migrating mysql: %w", err)
		}
		contentStore = store.NewFallbackStore(store.NewSQLStore(db), logger)
	default:
		db, err = store.NewSQLiteDB(cfg.DBURL)
		if err != nil {
			return fmt.Errorf("opening sqlite: %w", err)
		}
		if err := store.Migrate(db, "sqlite3"); err != nil {
			return fmt.Errorf("migrating sqlite: %w", err)
		}
		contentStore = store.NewFallbackStore(store.NewSQLStore(db), logger)
	}
	if db != nil {
		defer func() {
			if err := db.Close(); err != nil {
				slog.Error("closing database", "error", err)
			}
		}()
	}

	ctx := context.Background()
	if err := store.EnsureAdmin(ctx, contentStore, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return fmt.Errorf("provisioning admin account: %w", err)
	}

	// Sessions ride on the SQLite database when there is one, so they
	// survive restarts alongside the content.
	var sessionManager = session.NewMemory(cfg.IsDevelopment())
	if db != nil && cfg.Backend() == config.BackendSQLite {
		sessionManager = session.New(db, cfg.IsDevelopment())
	}

	listCache, err := cache.New(cache.Config{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: time.Duration(cfg.CacheTTL) * time.Second,
		MaxEntries: cfg.CacheMax,
	})
	if err != nil {
		return fmt.Errorf("initializing cache: %w", err)
	}
	defer func() {
		if err := listCache.Close(); err != nil {
			slog.Error("closing cache", "error", err)
		}
	}()

	loginGuard := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())

	h := handler.New(contentStore, sessionManager,
		listCache, time.Duration(cfg.CacheTTL)*time.Second, loginGuard, versionInfo)

	router := handler.Routes(h, contentStore, handler.RouterOptions{
		AllowedOrigins: cfg.Origins(),
		DevAutologin:   cfg.DevAutologin,
	})
	if cfg.DevAutologin {
		slog.Warn("dev auto-login enabled: anonymous requests act as the admin")
	}

	// Maintenance jobs: the fallback recovery probe and pruning of old
	// read notifications.
	jobs := cron.New()
	if fb, ok := contentStore.(*store.FallbackStore); ok {
		if _, err := jobs.AddFunc("@every 30s", func() {
			probeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			fb.Probe(probeCtx)
		}); err != nil {
			return fmt.Errorf("scheduling recovery probe: %w", err)
		}
	}
	if _, err := jobs.AddFunc("@daily", func() {
		pruneCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		cutoff := time.Now().AddDate(0, 0, -30)
		if n, err := contentStore.PruneReadNotifications(pruneCtx, cutoff); err != nil {
			slog.Error("pruning notifications", "error", err)
		} else if n > 0 {
			slog.Info("pruned read notifications", "count", n)
		}
	}); err != nil {
		return fmt.Errorf("scheduling notification pruning: %w", err)
	}
	jobs.Start()
	defer jobs.Stop()

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "backend", cfg.Backend())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
