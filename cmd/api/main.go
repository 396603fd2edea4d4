package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Suds666/IMG2TXT/internal/app/migrate"
	httpx "github.com/Suds666/IMG2TXT/internal/http"
	"github.com/Suds666/IMG2TXT/internal/ocr"
	"github.com/Suds666/IMG2TXT/internal/repository/postgres"
	"github.com/Suds666/IMG2TXT/internal/service/account"
	"github.com/Suds666/IMG2TXT/internal/service/extract"
	"github.com/Suds666/IMG2TXT/internal/upload"
	"github.com/Suds666/IMG2TXT/pkg/config"
	"github.com/Suds666/IMG2TXT/pkg/logger"
)

func main() {
	cfg := config.LoadServerConfig()
	log := logger.New("api", slog.LevelInfo)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	runner, err := migrate.New(pool, cfg.DatabaseURL, cfg.MigrationsDir, log)
	if err != nil {
		log.Error("failed to configure migrations", "error", err)
		os.Exit(1)
	}
	defer runner.Close()
	if err := runner.Ping(ctx); err != nil {
		log.Error("database ping failed", "error", err)
		os.Exit(1)
	}
	if err := runner.Ensure(ctx); err != nil {
		log.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	uploads, err := upload.NewStore(cfg.UploadDir)
	if err != nil {
		log.Error("failed to prepare upload directory", "error", err)
		os.Exit(1)
	}

	repo := postgres.New(pool)
	engine := ocr.NewTesseract(ocr.Config{
		Language:    cfg.OCRLanguage,
		PageSegMode: cfg.OCRPageSegMode,
		EngineMode:  cfg.OCREngineMode,
	})

	accountSvc := account.New(repo, log)
	extractSvc := extract.New(uploads, engine, repo, log)

	router := httpx.NewRouter(log, accountSvc, extractSvc, pool.Ping)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errorCh := make(chan error, 1)
	go func() {
		log.Info("api server starting", "addr", cfg.Addr)
		errorCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
		log.Info("api server stopped")
	case err := <-errorCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}
}
