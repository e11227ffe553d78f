// Command catalogserver runs the catalog GraphQL service.
//
// Configuration comes from the environment: CATALOG_DB_DRIVER
// (sqlite/postgres), CATALOG_DB_DSN, CATALOG_ADDR, CATALOG_SEED,
// CATALOG_SERVER_TIMING.
package main

import (
	"context"
	"log/slog"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	catalog "github.com/merchkit/catalog"
	"github.com/merchkit/catalog/internal/config"
	"github.com/merchkit/catalog/internal/importer"
	"github.com/merchkit/catalog/internal/model"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	db, err := openDatabase(cfg)
	if err != nil {
		logger.Error("failed to connect to database", "driver", cfg.Driver, "error", err)
		os.Exit(1)
	}

	service, err := catalog.NewServiceWithConfig(db, catalog.ServiceConfig{
		Logger:             logger,
		ServiceName:        "catalogserver",
		EnableServerTiming: cfg.ServerTiming,
	})
	if err != nil {
		logger.Error("failed to build service", "error", err)
		os.Exit(1)
	}

	if err := service.AutoMigrate(); err != nil {
		logger.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	if cfg.Seed {
		if err := seedIfEmpty(db, logger); err != nil {
			logger.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	if err := service.ListenAndServe(cfg.Addr); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func openDatabase(cfg config.Config) (*gorm.DB, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{})
	default:
		return gorm.Open(sqlite.Open(cfg.DSN), &gorm.Config{})
	}
}

// seedIfEmpty loads the built-in sample catalog when no categories exist.
func seedIfEmpty(db *gorm.DB, logger *slog.Logger) error {
	var count int64
	if err := db.Model(&model.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	summary, err := importer.New(db, logger).Import(context.Background(), sampleCatalog(), false)
	if err != nil {
		return err
	}
	logger.Info("seeded sample catalog",
		"categories", summary.Categories,
		"products", summary.Products)
	return nil
}
