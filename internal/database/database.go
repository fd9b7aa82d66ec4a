package database

import (
	"context"
	"database/sql"
	"net/url"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "github.com/lib/pq"              // driver: postgres
	_ "github.com/mattn/go-sqlite3"    // driver: sqlite3
	"go.uber.org/zap"

	"github.com/eaugusto/vendas/internal/config"
	"github.com/eaugusto/vendas/sqlp"
)

// DSN composes the data source name for cfg's driver.
// Postgres URLs may be given in JDBC form (jdbc:postgresql://...). Credentials come from
// DB_USERNAME and DB_PASSWORD unless the URL already carries them.
func DSN(cfg config.Config) (string, error) {
	raw := strings.TrimSpace(cfg.DBURL)
	if raw == "" {
		return "", sqlp.ConnectionError("database URL is not configured, set DB_URL", nil)
	}
	if cfg.Driver == "sqlite3" {
		return raw, nil
	}

	u, err := url.Parse(strings.TrimPrefix(raw, "jdbc:"))
	if err != nil {
		return "", sqlp.ConnectionError("database URL is invalid", err)
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return "", sqlp.ConnectionError("database URL must be a postgres URL, got scheme "+u.Scheme, nil)
	}
	if u.User == nil {
		if cfg.DBUsername == "" || cfg.DBPassword == "" {
			return "", sqlp.ConnectionError("database credentials are not configured, set DB_USERNAME and DB_PASSWORD", nil)
		}
		u.User = url.UserPassword(cfg.DBUsername, cfg.DBPassword)
	}
	return u.String(), nil
}

// Open opens and pings the configured database.
func Open(ctx context.Context, cfg config.Config, logger *zap.Logger) (*sqlp.DB, error) {
	dsn, err := DSN(cfg)
	if err != nil {
		return nil, err
	}
	db, err := sqlp.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, err
	}
	db.SetConnMaxLifetime(30 * time.Minute)
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, sqlp.ConnectionError("failed to connect to the database", err)
	}
	logger.Info("database connected", zap.String("driver", cfg.Driver), zap.String("dialect", db.Dialect().Name))
	return db, nil
}

// Apply runs idempotent DDL in order. Duplicate object errors are skipped.
func Apply(ctx context.Context, db *sql.DB, stmts []string, logger *zap.Logger) error {
	for _, stmt := range stmts {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			if alreadyExists(err) {
				logger.Info("DDL skipped (already exists)", zap.Error(err))
				continue
			}
			return sqlp.StorageError("", "DDL apply failed", err)
		}
		logger.Debug("DDL applied", zap.String("sql", stmt))
	}
	return nil
}
