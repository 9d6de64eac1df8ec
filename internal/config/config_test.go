package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.DatabaseDriver)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "CoreBanking", cfg.ChannelID)
	assert.Contains(t, cfg.DatabaseDSN, "dbname=retail_ledger_db")
	assert.Contains(t, cfg.DatabaseDSN, "sslmode=disable")
}

func TestLoadSQLiteDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DATABASE_DRIVER", "sqlite")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.DatabaseDriver)
	assert.Equal(t, filepath.Join("data", "retail_ledger.db"), cfg.DatabaseDSN)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("listenAddr: \":9000\"\nchannelId: FileChannel\n"), 0o600))

	t.Setenv("CHANNEL_ID", "EnvChannel")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "EnvChannel", cfg.ChannelID)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DATABASE_DRIVER", "oracle")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadExplicitMissingConfigFileFails(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_FILE", "does-not-exist.yaml")

	_, err := Load()
	require.Error(t, err)
}

func TestNormalizeConnectionString(t *testing.T) {
	got := normalizeConnectionString("Host=db;Port=5433;Database=ledger;Username=app;Password=secret;Timeout=10")

	assert.Contains(t, got, "host=db")
	assert.Contains(t, got, "port=5433")
	assert.Contains(t, got, "dbname=ledger")
	assert.Contains(t, got, "user=app")
	assert.Contains(t, got, "password=secret")
	assert.Contains(t, got, "connect_timeout=10")
	assert.Contains(t, got, "sslmode=disable")
}

func TestNormalizeConnectionStringKeepsSSLMode(t *testing.T) {
	got := normalizeConnectionString("Host=db;Database=ledger;SSLMode=require")
	assert.Contains(t, got, "sslmode=require")
	assert.NotContains(t, got, "sslmode=disable")
}
