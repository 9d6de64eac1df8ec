package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const defaultConnectionString = "Host=localhost;Port=5432;Database=retail_ledger_db;Username=postgres;Password=postgres;Timeout=30;CommandTimeout=30"
const defaultListenAddr = ":8080"
const defaultChannelID = "CoreBanking"
const defaultChannelKey = "CoreBankingKey001"

type Config struct {
	DatabaseDriver string `yaml:"databaseDriver"`
	DatabaseDSN    string `yaml:"databaseDsn"`
	MigrationsDir  string `yaml:"migrationsDir"`
	ListenAddr     string `yaml:"listenAddr"`
	ChannelID      string `yaml:"channelId"`
	ChannelKey     string `yaml:"channelKey"`
}

// Load builds the configuration from an optional YAML file (CONFIG_FILE,
// defaulting to config.yaml when present) with environment variables taking
// precedence over file values.
func Load() (Config, error) {
	cfg := Config{
		DatabaseDriver: DriverPostgres,
		MigrationsDir:  "migrations",
		ListenAddr:     defaultListenAddr,
		ChannelID:      defaultChannelID,
		ChannelKey:     defaultChannelKey,
	}

	path := strings.TrimSpace(os.Getenv("CONFIG_FILE"))
	if path == "" {
		path = "config.yaml"
	}
	if raw, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %q: %w", path, err)
		}
	} else if strings.TrimSpace(os.Getenv("CONFIG_FILE")) != "" {
		return Config{}, fmt.Errorf("read config file %q: %w", path, err)
	}

	applyEnv(&cfg)

	cfg.DatabaseDriver = strings.ToLower(strings.TrimSpace(cfg.DatabaseDriver))
	switch cfg.DatabaseDriver {
	case DriverPostgres:
		if strings.TrimSpace(cfg.DatabaseDSN) == "" {
			cfg.DatabaseDSN = defaultConnectionString
		}
		cfg.DatabaseDSN = normalizeConnectionString(cfg.DatabaseDSN)
	case DriverSQLite:
		if strings.TrimSpace(cfg.DatabaseDSN) == "" {
			cfg.DatabaseDSN = filepath.Join("data", "retail_ledger.db")
		}
	default:
		return Config{}, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("DATABASE_DRIVER")); v != "" {
		cfg.DatabaseDriver = v
	}
	if v := strings.TrimSpace(os.Getenv("DATABASE_DSN")); v != "" {
		cfg.DatabaseDSN = v
	}
	if v := strings.TrimSpace(os.Getenv("MIGRATIONS_DIR")); v != "" {
		cfg.MigrationsDir = v
	}
	if v := strings.TrimSpace(os.Getenv("LISTEN_ADDR")); v != "" {
		cfg.ListenAddr = v
	}
	if v := strings.TrimSpace(os.Getenv("CHANNEL_ID")); v != "" {
		cfg.ChannelID = v
	}
	if v := strings.TrimSpace(os.Getenv("CHANNEL_KEY")); v != "" {
		cfg.ChannelKey = v
	}
}

// normalizeConnectionString converts a semicolon key=value connection string
// into the space-separated form lib/pq expects.
func normalizeConnectionString(raw string) string {
	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	hasSSLMode := false

	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}

		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(kv[0]))
		val := strings.TrimSpace(kv[1])

		switch key {
		case "host":
			out = append(out, "host="+val)
		case "port":
			out = append(out, "port="+val)
		case "database":
			out = append(out, "dbname="+val)
		case "username":
			out = append(out, "user="+val)
		case "password":
			out = append(out, "password="+val)
		case "timeout", "connect timeout":
			out = append(out, "connect_timeout="+val)
		case "commandtimeout", "command timeout":
			out = append(out, "statement_timeout="+val+"s")
		case "sslmode":
			hasSSLMode = true
			out = append(out, "sslmode="+val)
		default:
			out = append(out, key+"="+val)
		}
	}

	if len(out) == 0 {
		return raw
	}

	if !hasSSLMode {
		out = append(out, "sslmode=disable")
	}

	return strings.Join(out, " ")
}
