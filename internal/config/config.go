// Package config loads the service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variable names.
const (
	EnvDriver       = "CATALOG_DB_DRIVER"
	EnvDSN          = "CATALOG_DB_DSN"
	EnvAddr         = "CATALOG_ADDR"
	EnvSeed         = "CATALOG_SEED"
	EnvServerTiming = "CATALOG_SERVER_TIMING"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds the runtime settings of the catalog server.
type Config struct {
	// Driver selects the database driver: "sqlite" (default) or "postgres".
	Driver string
	// DSN is the driver-specific connection string. Required for postgres;
	// defaults to a local file for sqlite.
	DSN string
	// Addr is the HTTP listen address.
	Addr string
	// Seed loads the built-in sample catalog on startup when the store is
	// empty. Development convenience only.
	Seed bool
	// ServerTiming enables the Server-Timing response header.
	ServerTiming bool
}

// Load reads the configuration from the environment, applying defaults and
// validating required settings.
func Load() (Config, error) {
	cfg := Config{
		Driver: getenv(EnvDriver, DriverSQLite),
		DSN:    os.Getenv(EnvDSN),
		Addr:   getenv(EnvAddr, ":8080"),
	}

	switch cfg.Driver {
	case DriverSQLite:
		if cfg.DSN == "" {
			cfg.DSN = "catalog.db"
		}
	case DriverPostgres:
		if cfg.DSN == "" {
			return Config{}, fmt.Errorf("config: %s is required when %s=%s", EnvDSN, EnvDriver, DriverPostgres)
		}
	default:
		return Config{}, fmt.Errorf("config: unsupported driver %q", cfg.Driver)
	}

	var err error
	if cfg.Seed, err = getBool(EnvSeed, false); err != nil {
		return Config{}, err
	}
	if cfg.ServerTiming, err = getBool(EnvServerTiming, false); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getBool(key string, fallback bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("config: invalid boolean for %s: %q", key, raw)
	}
	return value, nil
}
