// Package config loads run configuration from defaults, an optional YAML
// file and MCM_ environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix     = "MCM_"
	envConfigFile = "MCM_CONFIG"

	defaultSQLitePath = "contest.db"
)

// Config contains run configuration.
type Config struct {
	// DBDriver is a database/sql driver name: postgres, pgx or sqlite3.
	DBDriver string `koanf:"db_driver"`
	// DBDSN overrides the connection string built from the DB* fields.
	DBDSN      string `koanf:"db_dsn"`
	DBHost     string `koanf:"db_host"`
	DBPort     int    `koanf:"db_port"`
	DBUser     string `koanf:"db_user"`
	DBPassword string `koanf:"db_password"`
	DBName     string `koanf:"db_name"`
	DBSSLMode  string `koanf:"db_sslmode"`

	// Delimiters cut qualifiers off institution names.
	Delimiters string `koanf:"delimiters"`
	// OutputDir receives Institutions.csv and Teams.csv.
	OutputDir string `koanf:"output_dir"`
	// ReportPath is the text report file.
	ReportPath string `koanf:"report_path"`
}

// New returns a Config holding the defaults.
func New() *Config {
	return &Config{
		DBDriver:   "postgres",
		DBHost:     "localhost",
		DBPort:     5432,
		DBUser:     "postgres",
		DBName:     "contest",
		DBSSLMode:  "disable",
		Delimiters: ",",
		OutputDir:  ".",
		ReportPath: "report.txt",
	}
}

// Load layers, from low to high precedence: defaults, the YAML file named by
// MCM_CONFIG, and MCM_ environment variables (MCM_DB_HOST -> db_host). A .env
// file in the working directory is read into the environment first.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	k := koanf.New(".")

	if path := os.Getenv(envConfigFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error loading config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("error loading environment: %w", err)
	}

	cfg := New()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the fields a run cannot do without.
func (c *Config) Validate() error {
	if c.DBDriver == "" {
		return errors.New("db_driver must not be empty")
	}
	if c.Delimiters == "" {
		return errors.New("delimiters must not be empty")
	}
	if c.ReportPath == "" {
		return errors.New("report_path must not be empty")
	}
	return nil
}

// DSN returns DBDSN if set, otherwise a connection string for DBDriver.
func (c *Config) DSN() string {
	if c.DBDSN != "" {
		return c.DBDSN
	}
	if c.DBDriver == "sqlite3" {
		return defaultSQLitePath
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}
