package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv(EnvDriver, "")
	t.Setenv(EnvDSN, "")
	t.Setenv(EnvAddr, "")
	t.Setenv(EnvSeed, "")
	t.Setenv(EnvServerTiming, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Driver != DriverSQLite {
		t.Errorf("Expected the sqlite driver by default, got %q", cfg.Driver)
	}
	if cfg.DSN != "catalog.db" {
		t.Errorf("Expected the local file DSN, got %q", cfg.DSN)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("Expected the default listen address, got %q", cfg.Addr)
	}
	if cfg.Seed || cfg.ServerTiming {
		t.Error("Expected seeding and server timing to default off")
	}
}

func TestLoadPostgres(t *testing.T) {
	t.Setenv(EnvDriver, DriverPostgres)
	t.Setenv(EnvDSN, "")

	if _, err := Load(); err == nil {
		t.Error("Expected an error when postgres has no DSN")
	}

	t.Setenv(EnvDSN, "host=localhost user=catalog dbname=catalog")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Driver != DriverPostgres {
		t.Errorf("Expected postgres, got %q", cfg.Driver)
	}
}

func TestLoadUnsupportedDriver(t *testing.T) {
	t.Setenv(EnvDriver, "oracle")

	if _, err := Load(); err == nil {
		t.Error("Expected an error for an unsupported driver")
	}
}

func TestLoadBooleans(t *testing.T) {
	t.Setenv(EnvDriver, "")
	t.Setenv(EnvDSN, "")

	t.Setenv(EnvSeed, "true")
	t.Setenv(EnvServerTiming, "1")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !cfg.Seed || !cfg.ServerTiming {
		t.Error("Expected both flags on")
	}

	t.Setenv(EnvSeed, "maybe")
	if _, err := Load(); err == nil {
		t.Error("Expected an error for an invalid boolean")
	}
}
