package sqlp

import (
	"context"
	"database/sql"
	"fmt"
)

// Provider hands out connections, one per statement the engine runs.
// Callers own the returned connection and must Close it, which returns it to the pool.
type Provider interface {
	Conn(ctx context.Context) (*sql.Conn, error)
	Dialect() Dialect
}

// DB extends the stdlib sql.DB type with a dialect, and is the standard Provider.
type DB struct {
	*sql.DB
	dialect Dialect
}

// NewDB builds a new sqlp.DB for when you already have an existing sql.DB.
func NewDB(db *sql.DB, dialect Dialect) *DB {
	return &DB{DB: db, dialect: dialect}
}

// Open opens a database with the dialect matching driverName.
func Open(driverName, dataSourceName string) (*DB, error) {
	dialect, err := DialectFor(driverName)
	if err != nil {
		return nil, ConnectionError(fmt.Sprintf("failed to open %s database", driverName), err)
	}
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, ConnectionError(fmt.Sprintf("failed to open %s database", driverName), err)
	}

	return NewDB(db, dialect), nil
}

func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Conn acquires a single connection, failing with ErrConnection.
func (db *DB) Conn(ctx context.Context) (*sql.Conn, error) {
	conn, err := db.DB.Conn(ctx)
	if err != nil {
		return nil, ConnectionError("failed to acquire database connection", err)
	}
	return conn, nil
}

////////////////////////////////////////////////////////////////////////////////
// Standardized APIs

// Exec runs ExecContext.
func (db *DB) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.DB.ExecContext(ctx, query, args...)
}

// Query runs QueryContext.
func (db *DB) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.DB.QueryContext(ctx, query, args...)
}

// QueryRow runs QueryRowContext.
func (db *DB) QueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return db.DB.QueryRowContext(ctx, query, args...)
}
