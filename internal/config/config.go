package config

import (
	"flag"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Driver     string `yaml:"driver"` // "postgres" (lib/pq), "pgx" or "sqlite3"
	DBURL      string `yaml:"dbUrl"`
	DBUsername string `yaml:"dbUsername"`
	DBPassword string `yaml:"dbPassword"`

	MaxOpenConns int `yaml:"maxOpenConns"`
	MaxIdleConns int `yaml:"maxIdleConns"`

	Addr    string `yaml:"addr"` // HTTP listen address
	Debug   bool   `yaml:"debug"`
	Migrate bool   `yaml:"migrate"` // create tables and sequences on startup
}

func def() Config {
	return Config{
		Driver:       "postgres",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		Addr:         ":8080",
	}
}

func loadYAML(path string, c *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read config %s", path)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return errors.Wrapf(err, "failed to parse config %s", path)
	}
	return nil
}

func getenv(k, fallback string) string {
	if v, ok := os.LookupEnv(k); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func getenvBool(k string, fallback bool) bool {
	if v, ok := os.LookupEnv(k); ok {
		v = strings.TrimSpace(strings.ToLower(v))
		if v == "1" || v == "true" || v == "yes" {
			return true
		}
		if v == "0" || v == "false" || v == "no" {
			return false
		}
	}
	return fallback
}

func getenvInt(k string, fallback int) int {
	if v, err := strconv.Atoi(getenv(k, "")); err == nil {
		return v
	}
	return fallback
}

// Load layers configuration: defaults, then the YAML file (named by -config or VENDAS_CONFIG),
// then environment, then flags given in args. Returns the arguments left after flags.
func Load(args []string) (Config, []string, error) {
	fs := flag.NewFlagSet("vendas", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	path := fs.String("config", getenv("VENDAS_CONFIG", ""), "Path to config YAML")
	driver := fs.String("driver", "", "Database driver (postgres, pgx, sqlite3)")
	db := fs.String("db", "", "Database URL")
	addr := fs.String("addr", "", "HTTP listen address")
	debug := fs.Bool("debug", false, "Enable debug logging")
	migrate := fs.Bool("migrate", false, "Create tables and sequences on startup")
	if err := fs.Parse(args); err != nil {
		return Config{}, nil, errors.Wrap(err, "failed to parse flags")
	}

	cfg := def()

	// YAML (if configured)
	if *path != "" {
		if err := loadYAML(*path, &cfg); err != nil {
			return cfg, nil, err
		}
	}

	// ENV overrides
	cfg.Driver = getenv("VENDAS_DRIVER", cfg.Driver)
	cfg.DBURL = getenv("DB_URL", cfg.DBURL)
	cfg.DBUsername = getenv("DB_USERNAME", cfg.DBUsername)
	cfg.DBPassword = getenv("DB_PASSWORD", cfg.DBPassword)
	cfg.MaxOpenConns = getenvInt("VENDAS_MAX_OPEN_CONNS", cfg.MaxOpenConns)
	cfg.MaxIdleConns = getenvInt("VENDAS_MAX_IDLE_CONNS", cfg.MaxIdleConns)
	cfg.Addr = getenv("VENDAS_ADDR", cfg.Addr)
	cfg.Debug = getenvBool("VENDAS_DEBUG", cfg.Debug)
	cfg.Migrate = getenvBool("VENDAS_MIGRATE", cfg.Migrate)

	// Flags overrides, only those actually given
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "driver":
			cfg.Driver = strings.TrimSpace(*driver)
		case "db":
			cfg.DBURL = strings.TrimSpace(*db)
		case "addr":
			cfg.Addr = strings.TrimSpace(*addr)
		case "debug":
			cfg.Debug = *debug
		case "migrate":
			cfg.Migrate = *migrate
		}
	})

	return cfg, fs.Args(), nil
}

// Usage prints flag help to w.
func Usage(w io.Writer) {
	fs := flag.NewFlagSet("vendas", flag.ContinueOnError)
	fs.SetOutput(w)
	fs.String("config", "", "Path to config YAML")
	fs.String("driver", "postgres", "Database driver (postgres, pgx, sqlite3)")
	fs.String("db", "", "Database URL")
	fs.String("addr", ":8080", "HTTP listen address")
	fs.Bool("debug", false, "Enable debug logging")
	fs.Bool("migrate", false, "Create tables and sequences on startup")
	fs.PrintDefaults()
}
