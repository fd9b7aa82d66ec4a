package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	for _, k := range []string{
		"VENDAS_CONFIG", "VENDAS_DRIVER", "DB_URL", "DB_USERNAME", "DB_PASSWORD", "VENDAS_ADDR",
		"VENDAS_DEBUG", "VENDAS_MIGRATE", "VENDAS_MAX_OPEN_CONNS", "VENDAS_MAX_IDLE_CONNS",
	} {
		t.Setenv(k, "")
	}

	t.Run("defaults", func(t *testing.T) {
		cfg, rest, err := Load(nil)
		require.NoError(t, err)
		assert.Equal(t, def(), cfg)
		assert.Empty(t, rest)
	})

	path := filepath.Join(t.TempDir(), "vendas.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
driver: pgx
dbUrl: postgres://db.internal:5432/vendas
dbUsername: app
maxOpenConns: 20
addr: ":9000"
migrate: true
`), 0o600))

	t.Run("yaml file", func(t *testing.T) {
		cfg, _, err := Load([]string{"-config", path})
		require.NoError(t, err)
		assert.Equal(t, "pgx", cfg.Driver)
		assert.Equal(t, "postgres://db.internal:5432/vendas", cfg.DBURL)
		assert.Equal(t, "app", cfg.DBUsername)
		assert.Equal(t, 20, cfg.MaxOpenConns)
		assert.Equal(t, 5, cfg.MaxIdleConns, "unset keys keep their defaults")
		assert.Equal(t, ":9000", cfg.Addr)
		assert.True(t, cfg.Migrate)
	})

	t.Run("env over yaml, flags over env", func(t *testing.T) {
		t.Setenv("VENDAS_CONFIG", path)
		t.Setenv("DB_URL", "postgres://localhost:5432/vendas")
		t.Setenv("DB_PASSWORD", "secret")
		t.Setenv("VENDAS_ADDR", ":7000")
		t.Setenv("VENDAS_MIGRATE", "no")

		cfg, rest, err := Load([]string{"-addr", ":6000", "-debug", "clients"})
		require.NoError(t, err)
		assert.Equal(t, "pgx", cfg.Driver)
		assert.Equal(t, "postgres://localhost:5432/vendas", cfg.DBURL)
		assert.Equal(t, "app", cfg.DBUsername)
		assert.Equal(t, "secret", cfg.DBPassword)
		assert.Equal(t, ":6000", cfg.Addr)
		assert.True(t, cfg.Debug)
		assert.False(t, cfg.Migrate)
		assert.Equal(t, []string{"clients"}, rest)
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := Load([]string{"-config", filepath.Join(t.TempDir(), "nope.yaml")})
		assert.ErrorContains(t, err, "failed to read config")
	})

	t.Run("bad flag", func(t *testing.T) {
		_, _, err := Load([]string{"-nope"})
		assert.ErrorContains(t, err, "failed to parse flags")
	})
}
