// Command catalogimport loads a catalog data file into the store.
//
//	catalogimport [-replace] data.json
//
// Database settings come from the same environment variables as
// catalogserver. The import runs in one transaction; on any error nothing is
// written.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/merchkit/catalog/internal/config"
	"github.com/merchkit/catalog/internal/importer"
	"github.com/merchkit/catalog/internal/model"
)

func main() {
	replace := flag.Bool("replace", false, "delete existing catalog rows before importing")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: catalogimport [-replace] <data.json>")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	var db *gorm.DB
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err = gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{})
	default:
		db, err = gorm.Open(sqlite.Open(cfg.DSN), &gorm.Config{})
	}
	if err != nil {
		logger.Error("failed to connect to database", "driver", cfg.Driver, "error", err)
		os.Exit(1)
	}

	if err := db.AutoMigrate(
		&model.Category{},
		&model.Product{},
		&model.ProductImage{},
		&model.AttributeSet{},
		&model.AttributeItem{},
		&model.Price{},
	); err != nil {
		logger.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	file, err := os.Open(flag.Arg(0))
	if err != nil {
		logger.Error("failed to open data file", "error", err)
		os.Exit(1)
	}
	defer file.Close()

	summary, err := importer.New(db, logger).Run(context.Background(), file, *replace)
	if err != nil {
		logger.Error("import failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Imported %d categories and %d products\n", summary.Categories, summary.Products)
}
