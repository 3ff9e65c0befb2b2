package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Backend selects where the document slot lives.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

type Config struct {
	HTTPAddr    string
	LogLevel    string
	Env         string // dev|prod
	SentryDSN   string
	Location    *time.Location
	DataBackend string // memory|sqlite|postgres
	DataPath    string // sqlite file path
	DatabaseURL string // postgres DSN, required for the postgres backend
	GeminiKey   string // empty disables the insight call
	JWTSecret   string
	BackupDir   string
	BackupEvery time.Duration // 0 disables the backup job
}

func Load() (*Config, error) {
	tz := getenv("TZ", "Asia/Jakarta")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.Local
	}

	backupEvery, err := parseDuration(getenv("BACKUP_INTERVAL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("BACKUP_INTERVAL: %w", err)
	}

	cfg := &Config{
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		Env:         getenv("ENV", "dev"),
		SentryDSN:   os.Getenv("SENTRY_DSN"),
		Location:    loc,
		DataBackend: getenv("DATA_BACKEND", BackendSQLite),
		DataPath:    getenv("DATA_PATH", "./data/presensi.db"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		GeminiKey:   os.Getenv("GEMINI_API_KEY"),
		JWTSecret:   mustEnv("JWT_SECRET"),
		BackupDir:   getenv("BACKUP_DIR", "./backups"),
		BackupEvery: backupEvery,
	}
	if cfg.DataBackend == BackendPostgres && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required for DATA_BACKEND=postgres")
	}
	return cfg, nil
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("required env " + k + " is empty")
	}
	return v
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// parseDuration also accepts a bare number of hours; "0" disables.
func parseDuration(s string) (time.Duration, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Hour, nil
	}
	return time.ParseDuration(s)
}
