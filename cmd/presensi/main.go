package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sman1kwanyar/presensi/internal/backup"
	"github.com/sman1kwanyar/presensi/internal/config"
	"github.com/sman1kwanyar/presensi/internal/httpapi"
	"github.com/sman1kwanyar/presensi/internal/insight"
	"github.com/sman1kwanyar/presensi/internal/jobs"
	"github.com/sman1kwanyar/presensi/internal/logging"
	"github.com/sman1kwanyar/presensi/internal/models"
	"github.com/sman1kwanyar/presensi/internal/observability"
	"github.com/sman1kwanyar/presensi/internal/store"
)

var release = "dev"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("tidak ada .env, memakai environment proses")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("konfigurasi: %v", err)
	}

	lg, err := logging.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer lg.Closer()

	flushSentry, err := observability.InitSentry(cfg.SentryDSN, cfg.Env, release)
	if err != nil {
		lg.Sugar.Warnw("sentry init", "err", err)
	}
	defer flushSentry()

	backend, err := openBackend(cfg)
	if err != nil {
		lg.Sugar.Fatalw("open backend", "backend", cfg.DataBackend, "err", err)
	}
	defer func() { _ = backend.Close() }()

	st := store.New(backend)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := httpapi.New(httpapi.Params{
		Store:     st,
		Generator: insight.New(cfg.GeminiKey),
		Log:       lg,
		Location:  cfg.Location,
		JWTSecret: cfg.JWTSecret,
		Pinger:    pinger(backend),
	})
	_ = httpapi.Start(ctx, cfg.HTTPAddr, srv)
	lg.Sugar.Infow("http listening", "addr", cfg.HTTPAddr, "backend", cfg.DataBackend)

	runner := jobs.New(ctx)
	runner.Every(cfg.BackupEvery, "backup", func(ctx context.Context) error {
		state, err := st.Get(ctx)
		if err != nil {
			return err
		}
		date := time.Now().In(cfg.Location).Format(models.DateLayout)
		path, err := backup.WriteFile(cfg.BackupDir, state, date)
		if err != nil {
			return err
		}
		lg.Sugar.Infow("backup written", "path", path)
		return nil
	})

	<-ctx.Done()
	lg.Sugar.Infow("shutting down")
}

func openBackend(cfg *config.Config) (store.Backend, error) {
	switch cfg.DataBackend {
	case config.BackendMemory:
		return store.NewMemoryBackend(), nil
	case config.BackendSQLite:
		return store.NewSQLiteBackend(cfg.DataPath)
	case config.BackendPostgres:
		return store.NewPostgresBackend(cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("DATA_BACKEND tidak dikenal: %s", cfg.DataBackend)
	}
}

// pinger exposes the backend's health probe when it has one; the memory
// backend does not.
func pinger(b store.Backend) httpapi.Pinger {
	if p, ok := b.(httpapi.Pinger); ok {
		return p
	}
	return nil
}
