package dao

import (
	"context"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/eaugusto/vendas/sqlp"
)

// testDB returns a SQLite database with a fresh schema, and a cleanup function.
func testDB(t *testing.T) (*sqlp.DB, context.Context, func()) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)

	db, err := sqlp.Open("sqlite3", "./test.db")
	require.NoError(t, err, "testDB failed to open")
	for _, table := range []string{"tb_inventory", "tb_product", "tb_client"} {
		_, err := db.Exec(ctx, "DROP TABLE IF EXISTS "+table)
		require.NoError(t, err, "testDB failed to drop %s", table)
	}
	stmts, err := Schema(db.Dialect())
	require.NoError(t, err, "testDB failed to derive schema")
	for _, stmt := range stmts {
		_, err := db.Exec(ctx, stmt)
		require.NoError(t, err, "testDB failed to create schema")
	}
	return db, ctx, func() {
		db.Close()
		cancel()
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
